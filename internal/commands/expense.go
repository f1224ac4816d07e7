package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/budgetbuddy-dev/budgetbuddy/internal/activity"
	"github.com/budgetbuddy-dev/budgetbuddy/internal/ledger"
	"github.com/budgetbuddy-dev/budgetbuddy/internal/model"
	"github.com/budgetbuddy-dev/budgetbuddy/internal/render"
)

func newExpenseCommand() *cobra.Command {
	expenseCmd := &cobra.Command{
		Use:   "expense",
		Short: "Record and list expenses",
	}
	expenseCmd.AddCommand(
		newExpenseAddCommand(),
		newExpenseEditCommand(),
		newExpenseDeleteCommand(),
		newExpenseListCommand(),
	)
	return expenseCmd
}

type expenseFlags struct {
	date, category, amount, description string
}

func (f *expenseFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.date, "date", "", "date as YYYY-MM-DD (default today)")
	cmd.Flags().StringVar(&f.category, "category", "", "category ID")
	cmd.Flags().StringVar(&f.amount, "amount", "", "amount")
	cmd.Flags().StringVar(&f.description, "description", "", "description")
}

// apply overlays the flags the user set onto base.
func (f *expenseFlags) apply(cmd *cobra.Command, base ledger.NewExpense) (ledger.NewExpense, error) {
	var err error
	if cmd.Flags().Changed("date") {
		if base.Date, err = model.ParseDate(f.date); err != nil {
			return base, err
		}
	}
	if cmd.Flags().Changed("category") {
		base.Category = f.category
	}
	if cmd.Flags().Changed("amount") {
		if base.Amount, err = parseAmount(f.amount); err != nil {
			return base, err
		}
	}
	if cmd.Flags().Changed("description") {
		base.Description = f.description
	}
	return base, nil
}

func newExpenseAddCommand() *cobra.Command {
	var f expenseFlags

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record an expense",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app) error {
				in, err := f.apply(cmd, ledger.NewExpense{Date: a.book.Today()})
				if err != nil {
					return err
				}
				e, err := a.book.AddExpense(in)
				if err != nil {
					return err
				}
				if err := a.commit(ctx, expenseEntry(activity.ExpenseAdded, e)); err != nil {
					return err
				}
				a.printf("Recorded %s: %s %s on %s\n", e.ID, render.Money(a.cfg.Currency, e.Amount), e.Category, e.Date.Format(model.DateFormat))
				return nil
			})
		},
	}

	f.register(cmd)
	_ = cmd.MarkFlagRequired("category")
	_ = cmd.MarkFlagRequired("amount")
	return cmd
}

func newExpenseEditCommand() *cobra.Command {
	var f expenseFlags

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change an expense; unset flags keep their value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app) error {
				old, err := a.book.Snapshot().Expense(args[0])
				if err != nil {
					return err
				}
				in, err := f.apply(cmd, ledger.NewExpense{
					Date:        old.Date,
					Category:    old.Category,
					Amount:      old.Amount,
					Description: old.Description,
				})
				if err != nil {
					return err
				}
				e, err := a.book.EditExpense(old.ID, in)
				if err != nil {
					return err
				}
				if err := a.commit(ctx, expenseEntry(activity.ExpenseEdited, e)); err != nil {
					return err
				}
				a.printf("Updated %s\n", e.ID)
				return nil
			})
		},
	}

	f.register(cmd)
	return cmd
}

func newExpenseDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an expense",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app) error {
				e, err := a.book.Snapshot().Expense(args[0])
				if err != nil {
					return err
				}
				if err := a.book.DeleteExpense(e.ID); err != nil {
					return err
				}
				if err := a.commit(ctx, expenseEntry(activity.ExpenseDeleted, e)); err != nil {
					return err
				}
				a.printf("Deleted %s\n", e.ID)
				return nil
			})
		},
	}
}

func newExpenseListCommand() *cobra.Command {
	var from, to, category string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List expenses in a date range",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app) error {
				start, end, err := parseRange(from, to, a.book.Today())
				if err != nil {
					return err
				}
				t := render.Table{Headers: []string{"ID", "Date", "Category", "Amount", "Description"}}
				for _, e := range a.book.Snapshot().QueryByRange(start, end) {
					if category != "" && e.Category != category {
						continue
					}
					t.Rows = append(t.Rows, []string{
						e.ID,
						e.Date.Format(model.DateFormat),
						e.Category,
						render.Money(a.cfg.Currency, e.Amount),
						e.Description,
					})
				}
				if len(t.Rows) == 0 {
					a.println("No expenses.")
					return nil
				}
				a.printf("%s", render.RenderTable(t))
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "first date (default start of this month)")
	cmd.Flags().StringVar(&to, "to", "", "last date (default end of this month)")
	cmd.Flags().StringVar(&category, "category", "", "only this category")
	return cmd
}

func expenseEntry(action activity.Action, e model.Expense) activity.Entry {
	return activity.Entry{
		Action:   action,
		RecordID: e.ID,
		Details:  fmt.Sprintf("%s %s %s", e.Date.Format(model.DateFormat), e.Category, e.Amount.StringFixed(2)),
	}
}
