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

func newIncomeCommand() *cobra.Command {
	incomeCmd := &cobra.Command{
		Use:   "income",
		Short: "Record and list income",
	}
	incomeCmd.AddCommand(
		newIncomeAddCommand(),
		newIncomeEditCommand(),
		newIncomeDeleteCommand(),
		newIncomeListCommand(),
	)
	return incomeCmd
}

type incomeFlags struct {
	date, source, amount, description string
}

func (f *incomeFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.date, "date", "", "date as YYYY-MM-DD (default today)")
	cmd.Flags().StringVar(&f.source, "source", "", "where the money came from")
	cmd.Flags().StringVar(&f.amount, "amount", "", "amount")
	cmd.Flags().StringVar(&f.description, "description", "", "description")
}

func (f *incomeFlags) apply(cmd *cobra.Command, base ledger.NewIncome) (ledger.NewIncome, error) {
	var err error
	if cmd.Flags().Changed("date") {
		if base.Date, err = model.ParseDate(f.date); err != nil {
			return base, err
		}
	}
	if cmd.Flags().Changed("source") {
		base.Source = f.source
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

func newIncomeAddCommand() *cobra.Command {
	var f incomeFlags

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record an income",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app) error {
				in, err := f.apply(cmd, ledger.NewIncome{Date: a.book.Today()})
				if err != nil {
					return err
				}
				rec, err := a.book.AddIncome(in)
				if err != nil {
					return err
				}
				if err := a.commit(ctx, incomeEntry(activity.IncomeAdded, rec)); err != nil {
					return err
				}
				a.printf("Recorded %s: %s from %s\n", rec.ID, render.Money(a.cfg.Currency, rec.Amount), rec.Source)
				return nil
			})
		},
	}

	f.register(cmd)
	_ = cmd.MarkFlagRequired("source")
	_ = cmd.MarkFlagRequired("amount")
	return cmd
}

func newIncomeEditCommand() *cobra.Command {
	var f incomeFlags

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change an income; unset flags keep their value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app) error {
				old, err := a.book.Snapshot().Income(args[0])
				if err != nil {
					return err
				}
				in, err := f.apply(cmd, ledger.NewIncome{
					Date:        old.Date,
					Source:      old.Source,
					Amount:      old.Amount,
					Description: old.Description,
				})
				if err != nil {
					return err
				}
				rec, err := a.book.EditIncome(old.ID, in)
				if err != nil {
					return err
				}
				if err := a.commit(ctx, incomeEntry(activity.IncomeEdited, rec)); err != nil {
					return err
				}
				a.printf("Updated %s\n", rec.ID)
				return nil
			})
		},
	}

	f.register(cmd)
	return cmd
}

func newIncomeDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an income",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app) error {
				rec, err := a.book.Snapshot().Income(args[0])
				if err != nil {
					return err
				}
				if err := a.book.DeleteIncome(rec.ID); err != nil {
					return err
				}
				if err := a.commit(ctx, incomeEntry(activity.IncomeDeleted, rec)); err != nil {
					return err
				}
				a.printf("Deleted %s\n", rec.ID)
				return nil
			})
		},
	}
}

func newIncomeListCommand() *cobra.Command {
	var from, to string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List income in a date range",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app) error {
				start, end, err := parseRange(from, to, a.book.Today())
				if err != nil {
					return err
				}
				incomes := a.book.Snapshot().QueryIncomeByRange(start, end)
				if len(incomes) == 0 {
					a.println("No income.")
					return nil
				}
				t := render.Table{Headers: []string{"ID", "Date", "Source", "Amount", "Description"}}
				for _, in := range incomes {
					t.Rows = append(t.Rows, []string{
						in.ID,
						in.Date.Format(model.DateFormat),
						in.Source,
						render.Money(a.cfg.Currency, in.Amount),
						in.Description,
					})
				}
				a.printf("%s", render.RenderTable(t))
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "first date (default start of this month)")
	cmd.Flags().StringVar(&to, "to", "", "last date (default end of this month)")
	return cmd
}

func incomeEntry(action activity.Action, in model.Income) activity.Entry {
	return activity.Entry{
		Action:   action,
		RecordID: in.ID,
		Details:  fmt.Sprintf("%s %s %s", in.Date.Format(model.DateFormat), in.Source, in.Amount.StringFixed(2)),
	}
}
