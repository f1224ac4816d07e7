package advisor

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"

	"github.com/budgetbuddy-dev/budgetbuddy/internal/aggregate"
	"github.com/budgetbuddy-dev/budgetbuddy/internal/model"
)

// TypeProgress is spending against one type's limit.
type TypeProgress struct {
	Type      model.Type
	Spent     decimal.Decimal
	Limit     decimal.Decimal
	Remaining decimal.Decimal // negative when over
	Percent   float64
}

// Over reports whether spending exceeds the limit.
func (p TypeProgress) Over() bool { return p.Spent.GreaterThan(p.Limit) }

// Progress is a period's spending against its budget.
type Progress struct {
	Period    model.Period
	Types     []TypeProgress
	Spent     decimal.Decimal
	Income    decimal.Decimal
	Remaining decimal.Decimal
	Percent   float64
}

// Progress reports spent, limit and remaining for each type and in total.
func (a *Advisor) Progress(period model.Period) (Progress, error) {
	bp, ok := a.plans.Get(period)
	if !ok {
		return Progress{}, fmt.Errorf("%w for %s", model.ErrNoBudgetConfigured, period)
	}

	summary := aggregate.MonthSummary(a.expenses, a.types, period)
	p := Progress{
		Period:    period,
		Spent:     summary.Total,
		Income:    bp.Income,
		Remaining: bp.Income.Sub(summary.Total),
		Percent:   percent(summary.Total, bp.Income),
	}
	for _, t := range model.Types() {
		spent, limit := summary.ByType.Get(t), bp.Limit(t)
		p.Types = append(p.Types, TypeProgress{
			Type:      t,
			Spent:     spent,
			Limit:     limit,
			Remaining: limit.Sub(spent),
			Percent:   percent(spent, limit),
		})
	}
	return p, nil
}

// percent returns part/whole × 100; +Inf when whole is zero and part is not.
func percent(part, whole decimal.Decimal) float64 {
	if whole.IsZero() {
		if part.IsZero() {
			return 0
		}
		return math.Inf(1)
	}
	return part.Mul(model.Hundred).Div(whole).InexactFloat64()
}
