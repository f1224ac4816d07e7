package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense is one recorded spending transaction.
type Expense struct {
	ID          string
	Date        time.Time //nolint:revive // plain field name is clearest
	Category    string
	Amount      decimal.Decimal
	Description string
}

// Income is one recorded income transaction.
type Income struct {
	ID          string
	Date        time.Time //nolint:revive
	Source      string
	Amount      decimal.Decimal
	Description string
}

// BudgetPeriod is the limit set computed for one period.
type BudgetPeriod struct {
	Period Period
	Income decimal.Decimal
	Split  TypeValues // percentages, summing to 100
	Limits TypeValues // absolute amounts, rounded to cents
}

// Limit returns the absolute limit for t.
func (b BudgetPeriod) Limit(t Type) decimal.Decimal {
	return b.Limits.Get(t)
}

// Goal is a savings target.
type Goal struct {
	ID          string
	Name        string
	Target      decimal.Decimal
	Contributed decimal.Decimal // never exceeds Target
	Deadline    time.Time       // zero when open-ended
	Description string
}

// Complete reports whether the goal has been fully funded.
func (g Goal) Complete() bool {
	return g.Contributed.GreaterThanOrEqual(g.Target)
}

// Remaining returns how much is still needed to reach the target.
func (g Goal) Remaining() decimal.Decimal {
	r := g.Target.Sub(g.Contributed)
	if r.IsNegative() {
		return decimal.Zero
	}
	return r
}
