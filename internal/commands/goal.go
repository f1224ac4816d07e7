package commands

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/budgetbuddy-dev/budgetbuddy/internal/activity"
	"github.com/budgetbuddy-dev/budgetbuddy/internal/goals"
	"github.com/budgetbuddy-dev/budgetbuddy/internal/render"
)

func newGoalCommand() *cobra.Command {
	goalCmd := &cobra.Command{
		Use:   "goal",
		Short: "Track savings goals",
	}
	goalCmd.AddCommand(
		newGoalAddCommand(),
		newGoalContributeCommand(),
		newGoalListCommand(),
		newGoalRemoveCommand(),
	)
	return goalCmd
}

func newGoalAddCommand() *cobra.Command {
	var name, target, saved, deadline, description string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a savings goal",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app) error {
				g := goals.NewGoal{Name: name, Description: description}
				var err error
				if g.Target, err = parseAmount(target); err != nil {
					return err
				}
				if saved != "" {
					if g.Contributed, err = parseAmount(saved); err != nil {
						return err
					}
				}
				if g.Deadline, err = parseDay(deadline, time.Time{}); err != nil {
					return err
				}

				rec, err := a.book.AddGoal(g)
				if err != nil {
					return err
				}
				if err := a.commit(ctx, activity.Entry{Action: activity.GoalAdded, RecordID: rec.ID, Details: rec.Name}); err != nil {
					return err
				}
				a.printf("Created %s: %s, target %s\n", rec.ID, rec.Name, render.Money(a.cfg.Currency, rec.Target))
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "goal name (required)")
	_ = cmd.MarkFlagRequired("name")
	cmd.Flags().StringVar(&target, "target", "", "target amount (required)")
	_ = cmd.MarkFlagRequired("target")
	cmd.Flags().StringVar(&saved, "saved", "", "amount already saved")
	cmd.Flags().StringVar(&deadline, "deadline", "", "deadline as YYYY-MM-DD")
	cmd.Flags().StringVar(&description, "description", "", "description")
	return cmd
}

func newGoalContributeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "contribute <id> <amount>",
		Short: "Add money to a goal",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app) error {
				amount, err := parseAmount(args[1])
				if err != nil {
					return err
				}
				g, err := a.book.Contribute(args[0], amount)
				if err != nil {
					return err
				}
				if err := a.commit(ctx, activity.Entry{Action: activity.GoalContributed, RecordID: g.ID, Details: amount.StringFixed(2)}); err != nil {
					return err
				}
				a.printf("%s: %s of %s saved (%s)\n", g.Name,
					render.Money(a.cfg.Currency, g.Contributed),
					render.Money(a.cfg.Currency, g.Target),
					render.Percent(goals.Progress(g)*100))
				return nil
			})
		},
	}
}

func newGoalListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List goals and their progress",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app) error {
				st := a.book.Snapshot().GoalStatus()
				if len(st) == 0 {
					a.println("No goals.")
					return nil
				}
				a.printf("%s", views{a.cfg.Currency}.goals(st))
				return nil
			})
		},
	}
}

func newGoalRemoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <id>",
		Short: "Remove a goal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app) error {
				if err := a.book.RemoveGoal(args[0]); err != nil {
					return err
				}
				if err := a.commit(ctx, activity.Entry{Action: activity.GoalRemoved, RecordID: args[0]}); err != nil {
					return err
				}
				a.printf("Removed %s\n", args[0])
				return nil
			})
		},
	}
}
