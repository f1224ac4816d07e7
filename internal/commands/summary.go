package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/budgetbuddy-dev/budgetbuddy/internal/aggregate"
	"github.com/budgetbuddy-dev/budgetbuddy/internal/model"
	"github.com/budgetbuddy-dev/budgetbuddy/internal/render"
)

func newSummaryCommand() *cobra.Command {
	var period, week, from, to string
	var year int

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Summarize spending and income for a month, week, year or date range",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app) error {
				snap := a.book.Snapshot()
				v := views{a.cfg.Currency}

				var title, footer string
				var s aggregate.Summary
				switch {
				case cmd.Flags().Changed("week"):
					day, err := model.ParseDate(week)
					if err != nil {
						return err
					}
					s = snap.WeekSummary(day)
					title = "Week " + aggregate.Label(s.Start, aggregate.Week)
				case cmd.Flags().Changed("year"):
					ys := snap.YearSummary(year)
					s = ys.Summary
					title = fmt.Sprintf("Year %d", year)
					footer = fmt.Sprintf("Average per month over %d months: %s\n", ys.Months, render.Money(a.cfg.Currency, ys.AveragePerMonth))
				case cmd.Flags().Changed("from") || cmd.Flags().Changed("to"):
					start, end, err := parseRange(from, to, snap.Today())
					if err != nil {
						return err
					}
					s = snap.Summary(start, end)
					title = "Spending"
				default:
					p, err := parsePeriod(period, snap.Today())
					if err != nil {
						return err
					}
					s = snap.MonthSummary(p)
					title = "Month " + p.String()
				}

				a.printf("%s%s%s", v.summary(title, s), footer, v.income(snap.IncomeSummary(s.Start, s.End)))
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&period, "period", "", "month as YYYY-MM (default current month)")
	cmd.Flags().StringVar(&week, "week", "", "any date in the week, YYYY-MM-DD")
	cmd.Flags().IntVar(&year, "year", 0, "calendar year")
	cmd.Flags().StringVar(&from, "from", "", "first date of a custom range")
	cmd.Flags().StringVar(&to, "to", "", "last date of a custom range")
	cmd.MarkFlagsMutuallyExclusive("period", "week", "year", "from")
	cmd.MarkFlagsMutuallyExclusive("period", "week", "year", "to")
	return cmd
}

func newWindowsCommand() *cobra.Command {
	var from, to, by string

	cmd := &cobra.Command{
		Use:   "windows",
		Short: "Total spending per week, month or year",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app) error {
				g, err := aggregate.ParseGranularity(by)
				if err != nil {
					return err
				}
				snap := a.book.Snapshot()
				start, end, err := parseRange(from, to, snap.Today())
				if err != nil {
					return err
				}
				ws, err := snap.Windowed(start, end, g)
				if err != nil {
					return err
				}
				if len(ws) == 0 {
					a.println("No windows in range.")
					return nil
				}
				a.printf("%s", views{a.cfg.Currency}.windows(ws))
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "first date (default start of this month)")
	cmd.Flags().StringVar(&to, "to", "", "last date (default end of this month)")
	cmd.Flags().StringVar(&by, "by", string(aggregate.Week), "granularity: week, month or year")
	return cmd
}
