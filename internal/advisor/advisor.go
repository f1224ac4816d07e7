// Package advisor compares spending against a period's budget and produces
// ranked overspending suggestions, progress reports and spending insights.
// Every call recomputes from the records it was given; nothing is cached.
package advisor

import (
	"fmt"
	"math"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/budgetbuddy-dev/budgetbuddy/internal/aggregate"
	"github.com/budgetbuddy-dev/budgetbuddy/internal/model"
)

// PlanSource looks up the budget for a period.
type PlanSource interface {
	Get(period model.Period) (model.BudgetPeriod, bool)
}

// Level buckets a severity ratio.
type Level int

const (
	LevelMinor Level = iota
	LevelModerate
	LevelMajor
	LevelCritical
)

func (l Level) String() string {
	switch l {
	case LevelMinor:
		return "minor"
	case LevelModerate:
		return "moderate"
	case LevelMajor:
		return "major"
	default:
		return "critical"
	}
}

// LevelOf maps a severity ratio (over-amount / limit) to its bucket.
func LevelOf(severity float64) Level {
	switch {
	case severity < 0.10:
		return LevelMinor
	case severity < 0.25:
		return LevelModerate
	case severity < 0.50:
		return LevelMajor
	default:
		return LevelCritical
	}
}

// Suggestion describes one over-limit type.
type Suggestion struct {
	Type       model.Type
	Total      decimal.Decimal
	Limit      decimal.Decimal
	OverAmount decimal.Decimal
	Severity   float64 // +Inf when the limit is zero
	Level      Level

	// Contributors are the type's categories ranked by total.
	Contributors []aggregate.CategoryTotal
	TopCategory  string
	TopShare     decimal.Decimal // percent of the type's total, one decimal
}

// Advisor analyzes a fixed set of expenses against a plan book.
type Advisor struct {
	expenses   []model.Expense
	types      aggregate.TypeResolver
	plans      PlanSource
	thresholds Thresholds
}

// New returns an Advisor over expenses. The slice must be in recording order
// and is not modified.
func New(expenses []model.Expense, types aggregate.TypeResolver, plans PlanSource, thresholds Thresholds) *Advisor {
	return &Advisor{expenses: expenses, types: types, plans: plans, thresholds: thresholds}
}

// Analyze returns a suggestion for every type whose spending in period
// exceeds its limit, ranked by Rank. It fails with ErrNoBudgetConfigured when
// the period has no plan.
func (a *Advisor) Analyze(period model.Period) ([]Suggestion, error) {
	bp, ok := a.plans.Get(period)
	if !ok {
		return nil, fmt.Errorf("%w for %s", model.ErrNoBudgetConfigured, period)
	}

	summary := aggregate.MonthSummary(a.expenses, a.types, period)

	suggestions := make([]Suggestion, 0)
	for _, t := range model.Types() {
		total := summary.ByType.Get(t)
		if total.IsNegative() {
			panic(fmt.Sprintf("advisor: negative %s total %s", t, total))
		}
		limit := bp.Limit(t)
		if !total.GreaterThan(limit) {
			continue
		}
		suggestions = append(suggestions, a.suggest(t, total, limit, summary.ByCategory))
	}

	Rank(suggestions)
	return suggestions, nil
}

func (a *Advisor) suggest(t model.Type, total, limit decimal.Decimal, byCategory map[string]decimal.Decimal) Suggestion {
	over := total.Sub(limit)
	severity := math.Inf(1)
	if !limit.IsZero() {
		severity = over.Div(limit).InexactFloat64()
	}

	ofType := make(map[string]decimal.Decimal)
	for cat, amt := range byCategory {
		if ct, ok := a.types.TypeOf(cat); ok && ct == t {
			ofType[cat] = amt
		}
	}
	contributors := aggregate.RankCategories(ofType)

	s := Suggestion{
		Type:         t,
		Total:        total,
		Limit:        limit,
		OverAmount:   over,
		Severity:     severity,
		Level:        LevelOf(severity),
		Contributors: contributors,
	}
	if len(contributors) > 0 {
		s.TopCategory = contributors[0].Category
		s.TopShare = contributors[0].Total.Mul(model.Hundred).Div(total).Round(1)
	}
	return s
}

// Rank orders suggestions by severity descending, then by type order
// (Needs, Wants, Savings).
func Rank(suggestions []Suggestion) {
	sort.SliceStable(suggestions, func(i, j int) bool {
		si, sj := suggestions[i].Severity, suggestions[j].Severity
		if si != sj {
			return si > sj
		}
		return suggestions[i].Type.Rank() < suggestions[j].Type.Rank()
	})
}
