package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/budgetbuddy-dev/budgetbuddy/internal/activity"
	"github.com/budgetbuddy-dev/budgetbuddy/internal/allocation"
	"github.com/budgetbuddy-dev/budgetbuddy/internal/model"
)

func newBudgetCommand() *cobra.Command {
	budgetCmd := &cobra.Command{
		Use:   "budget",
		Short: "Set and show monthly budgets",
	}
	budgetCmd.AddCommand(newBudgetSetCommand(), newBudgetShowCommand())
	return budgetCmd
}

func newBudgetSetCommand() *cobra.Command {
	var period, income, needs, wants, savings string

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Set the budget for a month from its income",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app) error {
				p, err := parsePeriod(period, a.book.Today())
				if err != nil {
					return err
				}
				amount, err := parseAmount(income)
				if err != nil {
					return err
				}

				split := a.cfg.DefaultSplit()
				if needs != "" || wants != "" || savings != "" {
					if split, err = allocation.ParseSplit(needs, wants, savings); err != nil {
						return fmt.Errorf("%w (give all of --needs, --wants and --savings)", err)
					}
				}

				bp, err := a.book.SetBudget(p, amount, split)
				if err != nil {
					return err
				}
				if err := a.commit(ctx, activity.Entry{
					Action:   activity.BudgetSet,
					RecordID: p.String(),
					Details:  fmt.Sprintf("income %s split %s/%s/%s", bp.Income, bp.Split.Needs, bp.Split.Wants, bp.Split.Savings),
				}); err != nil {
					return err
				}
				a.printf("%s", views{a.cfg.Currency}.budget(bp))
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&period, "period", "", "month as YYYY-MM (default current month)")
	cmd.Flags().StringVar(&income, "income", "", "monthly income (required)")
	_ = cmd.MarkFlagRequired("income")
	cmd.Flags().StringVar(&needs, "needs", "", "needs percentage")
	cmd.Flags().StringVar(&wants, "wants", "", "wants percentage")
	cmd.Flags().StringVar(&savings, "savings", "", "savings percentage")

	return cmd
}

func newBudgetShowCommand() *cobra.Command {
	var period string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show a month's budget and progress against it",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app) error {
				p, err := parsePeriod(period, a.book.Today())
				if err != nil {
					return err
				}
				snap := a.book.Snapshot()
				bp, ok := snap.Budget(p)
				if !ok {
					return fmt.Errorf("%w for %s: run 'budgetbuddy budget set'", model.ErrNoBudgetConfigured, p)
				}
				progress, err := snap.Progress(p)
				if err != nil {
					return err
				}
				v := views{a.cfg.Currency}
				a.printf("%s%s", v.budget(bp), v.progress(progress))
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&period, "period", "", "month as YYYY-MM (default current month)")
	return cmd
}
