// Package allocation turns income and a percentage split into per-type
// budget limits, and keeps the active limit set for each period.
package allocation

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/budgetbuddy-dev/budgetbuddy/internal/model"
)

// splitTolerance absorbs accumulation error in caller-supplied percentages.
var splitTolerance = decimal.RequireFromString("0.01")

// StandardSplit returns the 50/30/20 preset.
func StandardSplit() model.TypeValues {
	return model.TypeValues{
		Needs:   decimal.NewFromInt(50),
		Wants:   decimal.NewFromInt(30),
		Savings: decimal.NewFromInt(20),
	}
}

// ValidateSplit checks that every percentage is non-negative and that they
// sum to 100 within 0.01.
func ValidateSplit(split model.TypeValues) error {
	for _, t := range model.Types() {
		if split.Get(t).IsNegative() {
			return fmt.Errorf("%w: %s percentage %s is negative", model.ErrInvalidSplit, t, split.Get(t))
		}
	}
	sum := split.Sum()
	if sum.Sub(model.Hundred).Abs().GreaterThan(splitTolerance) {
		return fmt.Errorf("%w: percentages sum to %s, want 100", model.ErrInvalidSplit, sum)
	}
	return nil
}

// ParseSplit parses three percentage strings into a split and validates it.
func ParseSplit(needs, wants, savings string) (model.TypeValues, error) {
	var split model.TypeValues
	for _, f := range []struct {
		t model.Type
		s string
	}{
		{model.TypeNeeds, needs},
		{model.TypeWants, wants},
		{model.TypeSavings, savings},
	} {
		d, err := decimal.NewFromString(f.s)
		if err != nil {
			return model.TypeValues{}, fmt.Errorf("%w: %s percentage %q is not a number", model.ErrInvalidSplit, f.t, f.s)
		}
		split = split.Set(f.t, d)
	}
	if err := ValidateSplit(split); err != nil {
		return model.TypeValues{}, err
	}
	return split, nil
}

// Compute derives the BudgetPeriod for income under split. Each limit is
// income × percentage / 100 rounded half-up to cents. Zero income is valid
// and yields zero limits.
func Compute(period model.Period, income decimal.Decimal, split model.TypeValues) (model.BudgetPeriod, error) {
	if period.IsZero() {
		return model.BudgetPeriod{}, fmt.Errorf("%w: missing period", model.ErrInvalidPeriod)
	}
	if income.IsNegative() {
		return model.BudgetPeriod{}, fmt.Errorf("%w: income %s is negative", model.ErrInvalidAmount, income)
	}
	if err := ValidateSplit(split); err != nil {
		return model.BudgetPeriod{}, err
	}

	var limits model.TypeValues
	for _, t := range model.Types() {
		limits = limits.Set(t, income.Mul(split.Get(t)).Div(model.Hundred).Round(2))
	}

	return model.BudgetPeriod{
		Period: period,
		Income: income,
		Split:  split,
		Limits: limits,
	}, nil
}
