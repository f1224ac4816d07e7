package commands

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/budgetbuddy-dev/budgetbuddy/internal/advisor"
	"github.com/budgetbuddy-dev/budgetbuddy/internal/aggregate"
	"github.com/budgetbuddy-dev/budgetbuddy/internal/goals"
	"github.com/budgetbuddy-dev/budgetbuddy/internal/model"
	"github.com/budgetbuddy-dev/budgetbuddy/internal/render"
	"github.com/budgetbuddy-dev/budgetbuddy/internal/stats"
)

// views render engine results for the terminal in one currency.
type views struct {
	currency string
}

func (v views) budget(bp model.BudgetPeriod) string {
	t := render.Table{
		Title:   fmt.Sprintf("Budget %s, income %s", bp.Period, render.Money(v.currency, bp.Income)),
		Headers: []string{"Type", "Split", "Limit"},
	}
	for _, typ := range model.Types() {
		t.Rows = append(t.Rows, []string{
			typ.Label(),
			bp.Split.Get(typ).String() + "%",
			render.Money(v.currency, bp.Limit(typ)),
		})
	}
	return render.RenderTable(t)
}

func (v views) progress(p advisor.Progress) string {
	t := render.Table{
		Title:   "Progress " + p.Period.String(),
		Headers: []string{"Type", "Spent", "Limit", "Remaining", "Used"},
	}
	for _, tp := range p.Types {
		t.Rows = append(t.Rows, []string{
			tp.Type.Label(),
			render.Money(v.currency, tp.Spent),
			render.Money(v.currency, tp.Limit),
			render.Money(v.currency, tp.Remaining),
			render.ProgressBar(tp.Percent/100, 10),
		})
	}
	t.Rows = append(t.Rows, render.Separator, []string{
		"Total vs income",
		render.Money(v.currency, p.Spent),
		render.Money(v.currency, p.Income),
		render.Money(v.currency, p.Remaining),
		render.ProgressBar(p.Percent/100, 10),
	})
	return render.RenderTable(t)
}

func (v views) advice(suggestions []advisor.Suggestion, insights []advisor.Insight) string {
	if len(suggestions) == 0 && len(insights) == 0 {
		return render.Status("Spending is within budget.", render.Within) + "\n"
	}
	var b strings.Builder
	for _, s := range suggestions {
		tone := render.Near
		if s.Level >= advisor.LevelMajor {
			tone = render.Over
		}
		b.WriteString(render.Status("! ", tone))
		b.WriteString(advisor.Render(s, v.currency))
		b.WriteString("\n")
	}
	for _, in := range insights {
		b.WriteString("- ")
		b.WriteString(advisor.RenderInsight(in, v.currency))
		b.WriteString("\n")
	}
	return b.String()
}

func (v views) summary(title string, s aggregate.Summary) string {
	t := render.Table{
		Title:   fmt.Sprintf("%s (%s to %s)", title, s.Start.Format(model.DateFormat), s.End.Format(model.DateFormat)),
		Headers: []string{"Category", "Total"},
	}
	for _, ct := range s.Ranked() {
		t.Rows = append(t.Rows, []string{ct.Category, render.Money(v.currency, ct.Total)})
	}
	t.Rows = append(t.Rows, render.Separator)
	for _, typ := range model.Types() {
		t.Rows = append(t.Rows, []string{typ.Label(), render.Money(v.currency, s.ByType.Get(typ))})
	}
	t.Rows = append(t.Rows, render.Separator, []string{
		fmt.Sprintf("Total (%s expenses)", render.Count(s.Count)),
		render.Money(v.currency, s.Total),
	})
	return render.RenderTable(t)
}

func (v views) income(s aggregate.IncomeSummary) string {
	t := render.Table{
		Title:   "Income",
		Headers: []string{"Source", "Total"},
	}
	for _, src := range sortedKeys(s.BySource) {
		t.Rows = append(t.Rows, []string{src, render.Money(v.currency, s.BySource[src])})
	}
	t.Rows = append(t.Rows, render.Separator, []string{
		fmt.Sprintf("Total (%s incomes)", render.Count(s.Count)),
		render.Money(v.currency, s.Total),
	})
	return render.RenderTable(t)
}

func (v views) windows(ws []aggregate.Window) string {
	t := render.Table{Headers: []string{"Window", "From", "To", "Expenses", "Total"}}
	values := make([]float64, 0, len(ws))
	for _, w := range ws {
		t.Rows = append(t.Rows, []string{
			w.Label,
			w.Start.Format(model.DateFormat),
			w.End.Format(model.DateFormat),
			render.Count(w.Count),
			render.Money(v.currency, w.Total),
		})
		values = append(values, w.Total.InexactFloat64())
	}
	return render.RenderTable(t) + "  " + render.Sparkline(values) + "\n"
}

func (v views) stats(s stats.ExpenseSummary) string {
	d := s.Amounts
	t := render.Table{
		Title:   "Expense statistics",
		Headers: []string{"Measure", "Value"},
		Rows: [][]string{
			{"Expenses", render.Count(s.Count)},
			{"Total", render.Money(v.currency, s.Total)},
			{"Mean", v.currency + render.Float(d.Mean)},
			{"Median", v.currency + render.Float(d.Median)},
			{"Std dev", v.currency + render.Float(d.StdDev)},
			{"Min", v.currency + render.Float(d.Min)},
			{"Max", v.currency + render.Float(d.Max)},
			{"Most frequent", fmt.Sprintf("%s (%d)", s.MostFrequent.Category, s.MostFrequent.Count)},
		},
	}
	return render.RenderTable(t)
}

func (v views) trend(t stats.Trend) string {
	return fmt.Sprintf("Trend: %s, %s per window; next window about %s%s\n",
		t.Direction(), render.Float(t.Slope), v.currency, render.Float(t.Next()))
}

func (v views) goals(st []goals.Status) string {
	t := render.Table{Headers: []string{"ID", "Goal", "Saved", "Target", "Progress", "Due"}}
	for _, s := range st {
		due := "-"
		if s.HasDue {
			due = fmt.Sprintf("%s (%d days)", s.Goal.Deadline.Format(model.DateFormat), s.DaysLeft)
		}
		t.Rows = append(t.Rows, []string{
			s.Goal.ID,
			s.Goal.Name,
			render.Money(v.currency, s.Goal.Contributed),
			render.Money(v.currency, s.Goal.Target),
			render.ProgressBar(s.Percent/100, 10),
			due,
		})
	}
	return render.RenderTable(t)
}

func sortedKeys[V any](m map[string]V) []string {
	return slices.Sorted(maps.Keys(m))
}
