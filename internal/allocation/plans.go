package allocation

import (
	"sort"

	"github.com/budgetbuddy-dev/budgetbuddy/internal/model"
)

// Plans holds at most one BudgetPeriod per period.
type Plans struct {
	byPeriod map[model.Period]model.BudgetPeriod
}

// NewPlans returns an empty plan book.
func NewPlans() *Plans {
	return &Plans{byPeriod: make(map[model.Period]model.BudgetPeriod)}
}

// Restore rebuilds a plan book from persisted budgets. Limits are recomputed
// from income and split; a later entry for the same period wins.
func Restore(budgets []model.BudgetPeriod) (*Plans, error) {
	p := NewPlans()
	for _, b := range budgets {
		bp, err := Compute(b.Period, b.Income, b.Split)
		if err != nil {
			return nil, err
		}
		p.Set(bp)
	}
	return p, nil
}

// Set installs bp for its period, replacing any previous plan.
func (p *Plans) Set(bp model.BudgetPeriod) {
	p.byPeriod[bp.Period] = bp
}

// Get returns the plan for period.
func (p *Plans) Get(period model.Period) (model.BudgetPeriod, bool) {
	bp, ok := p.byPeriod[period]
	return bp, ok
}

// All returns every plan ordered by period.
func (p *Plans) All() []model.BudgetPeriod {
	out := make([]model.BudgetPeriod, 0, len(p.byPeriod))
	for _, bp := range p.byPeriod {
		out = append(out, bp)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Period.Before(out[j].Period)
	})
	return out
}

// Clone returns an independent copy.
func (p *Plans) Clone() *Plans {
	c := NewPlans()
	for k, v := range p.byPeriod {
		c.byPeriod[k] = v
	}
	return c
}
