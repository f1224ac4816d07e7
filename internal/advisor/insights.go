package advisor

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/budgetbuddy-dev/budgetbuddy/internal/aggregate"
	"github.com/budgetbuddy-dev/budgetbuddy/internal/model"
)

// Thresholds tune the spending-pattern insights.
type Thresholds struct {
	// HighAverage is the per-expense average above which a category is
	// flagged.
	HighAverage decimal.Decimal
	// RecentWindow is how many of the latest expenses are examined.
	RecentWindow int
	// MinHistory is how many expenses must exist before patterns are
	// reported at all.
	MinHistory int
}

// DefaultThresholds returns 50 over the last 10 expenses, needing at least 5.
func DefaultThresholds() Thresholds {
	return Thresholds{
		HighAverage:  decimal.NewFromInt(50),
		RecentWindow: 10,
		MinHistory:   5,
	}
}

// InsightKind distinguishes insight records.
type InsightKind string

const (
	InsightIncomeExceeded InsightKind = "income_exceeded"
	InsightHighAverage    InsightKind = "high_average"
)

// Insight is an observation about spending that is not tied to a type limit.
type Insight struct {
	Kind     InsightKind
	Category string          // high_average only
	Amount   decimal.Decimal // overspend for income_exceeded, average for high_average
	Count    int             // expenses averaged
}

// Insights reports when the period's total spending exceeds its income and
// which categories have a high average among the most recent expenses up to
// the end of period. Without a budget only the latter are reported.
func (a *Advisor) Insights(period model.Period) []Insight {
	var out []Insight

	if bp, ok := a.plans.Get(period); ok {
		spent := aggregate.MonthSummary(a.expenses, a.types, period).Total
		if spent.GreaterThan(bp.Income) {
			out = append(out, Insight{Kind: InsightIncomeExceeded, Amount: spent.Sub(bp.Income)})
		}
	}

	return append(out, a.highAverages(period.End())...)
}

func (a *Advisor) highAverages(asOf time.Time) []Insight {
	var history []model.Expense
	for _, e := range a.expenses {
		if !e.Date.After(asOf) {
			history = append(history, e)
		}
	}
	if len(history) < a.thresholds.MinHistory || a.thresholds.RecentWindow <= 0 {
		return nil
	}

	// Latest first; equal dates keep recording order.
	sort.SliceStable(history, func(i, j int) bool { return history[i].Date.After(history[j].Date) })
	if len(history) > a.thresholds.RecentWindow {
		history = history[:a.thresholds.RecentWindow]
	}

	var order []string
	sums := make(map[string]decimal.Decimal)
	counts := make(map[string]int)
	for _, e := range history {
		if _, seen := counts[e.Category]; !seen {
			order = append(order, e.Category)
		}
		sums[e.Category] = sums[e.Category].Add(e.Amount)
		counts[e.Category]++
	}

	var out []Insight
	for _, cat := range order {
		avg := sums[cat].Div(decimal.NewFromInt(int64(counts[cat]))).Round(2)
		if avg.GreaterThan(a.thresholds.HighAverage) {
			out = append(out, Insight{Kind: InsightHighAverage, Category: cat, Amount: avg, Count: counts[cat]})
		}
	}
	return out
}
