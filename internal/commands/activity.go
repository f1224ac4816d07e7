package commands

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/budgetbuddy-dev/budgetbuddy/internal/activity"
	"github.com/budgetbuddy-dev/budgetbuddy/internal/render"
)

func newActivityCommand() *cobra.Command {
	var last int

	cmd := &cobra.Command{
		Use:   "activity",
		Short: "Show the log of recorded changes",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app) error {
				entries, err := activity.Read(a.dataDir())
				if err != nil {
					return err
				}
				if len(entries) == 0 {
					a.println("No activity yet.")
					return nil
				}
				t := render.Table{Headers: []string{"When", "Action", "Record", "Details"}}
				for _, e := range activity.Last(entries, last) {
					t.Rows = append(t.Rows, []string{
						e.Timestamp.Local().Format(time.DateTime),
						string(e.Action),
						e.RecordID,
						e.Details,
					})
				}
				a.printf("%s", render.RenderTable(t))
				return nil
			})
		},
	}

	cmd.Flags().IntVar(&last, "last", 20, "show only the most recent entries (0 for all)")
	return cmd
}
