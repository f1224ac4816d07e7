package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/budgetbuddy-dev/budgetbuddy/internal/aggregate"
	"github.com/budgetbuddy-dev/budgetbuddy/internal/model"
	"github.com/budgetbuddy-dev/budgetbuddy/internal/render"
	"github.com/budgetbuddy-dev/budgetbuddy/internal/stats"
)

func newCheckCommand() *cobra.Command {
	var period string

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check a month for overspending and get suggestions",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app) error {
				snap := a.book.Snapshot()
				p, err := parsePeriod(period, snap.Today())
				if err != nil {
					return err
				}
				suggestions, err := snap.Suggestions(p)
				if err != nil {
					return err
				}
				a.printf("%s", views{a.cfg.Currency}.advice(suggestions, snap.Insights(p)))
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&period, "period", "", "month as YYYY-MM (default current month)")
	return cmd
}

func newStatsCommand() *cobra.Command {
	var from, to string

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Describe expense amounts in a date range",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app) error {
				snap := a.book.Snapshot()
				start, end, err := parseRange(from, to, snap.Today())
				if err != nil {
					return err
				}
				s, err := snap.Stats(start, end)
				if isMissing(err) {
					a.println("No expenses in range.")
					return nil
				}
				if err != nil {
					return err
				}
				a.printf("%s", views{a.cfg.Currency}.stats(s))
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "first date (default start of this month)")
	cmd.Flags().StringVar(&to, "to", "", "last date (default end of this month)")
	return cmd
}

func newTrendCommand() *cobra.Command {
	var end, by string
	var windows int

	cmd := &cobra.Command{
		Use:   "trend",
		Short: "Fit a trend line to recent spending",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app) error {
				g, err := aggregate.ParseGranularity(by)
				if err != nil {
					return err
				}
				snap := a.book.Snapshot()
				last, err := parseDay(end, snap.Today())
				if err != nil {
					return err
				}
				series, err := snap.LastWindows(last, g, windows)
				if err != nil {
					return err
				}
				v := views{a.cfg.Currency}
				a.printf("%s", v.windows(series))

				t, err := stats.ProjectTrend(stats.PointsFromWindows(series))
				if isMissing(err) {
					a.println(render.Muted("Not enough windows for a trend."))
					return nil
				}
				if err != nil {
					return err
				}
				a.printf("%s", v.trend(t))
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&end, "end", "", "last date of the series (default today)")
	cmd.Flags().StringVar(&by, "by", string(aggregate.Month), "granularity: week, month or year")
	cmd.Flags().IntVar(&windows, "windows", 6, "number of windows")
	return cmd
}

func newReportCommand() *cobra.Command {
	var period, by string
	var windows int

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Everything about one month in one report",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app) error {
				g, err := aggregate.ParseGranularity(by)
				if err != nil {
					return err
				}
				p, err := parsePeriod(period, a.book.Today())
				if err != nil {
					return err
				}
				r, err := a.book.Report(ctx, p, g, windows)
				if err != nil {
					return err
				}

				v := views{a.cfg.Currency}
				a.println(render.Title("BudgetBuddy report " + p.String()))
				a.printf("%s%s", v.summary("Spending", r.Summary), v.income(r.Income))
				if r.Budget == nil {
					a.println(render.Muted(fmt.Sprintf("No budget for %s.", p)))
				} else {
					a.printf("%s%s", v.budget(*r.Budget), v.progress(*r.Progress))
				}
				if r.Budget != nil || len(r.Insights) > 0 {
					a.printf("%s", v.advice(r.Suggestions, r.Insights))
				}
				if r.Stats != nil {
					a.printf("%s", v.stats(*r.Stats))
				}
				if len(r.Series) > 0 {
					a.printf("%s", v.windows(r.Series))
				}
				if r.Trend != nil {
					a.printf("%s", v.trend(*r.Trend))
				}
				if len(r.Goals) > 0 {
					a.println(render.Heading("Goals"))
					a.printf("%s", v.goals(r.Goals))
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&period, "period", "", "month as YYYY-MM (default current month)")
	cmd.Flags().StringVar(&by, "by", string(aggregate.Month), "trend granularity: week, month or year")
	cmd.Flags().IntVar(&windows, "windows", 6, "number of trend windows")
	return cmd
}

// isMissing reports errors that mean "nothing to show" rather than failure.
func isMissing(err error) bool {
	return errors.Is(err, model.ErrEmptyInput) || errors.Is(err, model.ErrInsufficientData)
}
