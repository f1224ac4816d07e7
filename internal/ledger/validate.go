package ledger

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/budgetbuddy-dev/budgetbuddy/internal/model"
)

// CategoryResolver tests whether a category ID exists in the registry.
type CategoryResolver interface {
	Exists(id string) bool
}

// ValidateAmount rejects negative amounts and amounts with more than two
// decimal places.
func ValidateAmount(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return fmt.Errorf("%w: %s is negative", model.ErrInvalidAmount, amount)
	}
	if !model.HasCents(amount) {
		return fmt.Errorf("%w: %s has more than 2 decimal places", model.ErrInvalidAmount, amount)
	}
	return nil
}

func validateExpense(e NewExpense, categories CategoryResolver) error {
	if e.Date.IsZero() {
		return fmt.Errorf("%w: expense has no date", model.ErrInvalidDate)
	}
	if err := ValidateAmount(e.Amount); err != nil {
		return err
	}
	if !categories.Exists(e.Category) {
		return fmt.Errorf("%w: unknown category %q", model.ErrInvalidCategory, e.Category)
	}
	return nil
}

func validateIncome(in NewIncome) error {
	if in.Date.IsZero() {
		return fmt.Errorf("%w: income has no date", model.ErrInvalidDate)
	}
	if err := ValidateAmount(in.Amount); err != nil {
		return err
	}
	if strings.TrimSpace(in.Source) == "" {
		return fmt.Errorf("%w: income source is empty", model.ErrMissingField)
	}
	return nil
}
