package stats

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/budgetbuddy-dev/budgetbuddy/internal/aggregate"
	"github.com/budgetbuddy-dev/budgetbuddy/internal/model"
)

// CategoryCount names a category and how many expenses it has.
type CategoryCount struct {
	Category string
	Count    int
}

// ExpenseSummary describes a set of expenses.
type ExpenseSummary struct {
	Total        decimal.Decimal
	Count        int
	Amounts      Description
	MostFrequent CategoryCount
}

// ExpenseStats describes expense amounts and finds the most frequent
// category. Ties go to the category that appears first.
func ExpenseStats(expenses []model.Expense) (ExpenseSummary, error) {
	if len(expenses) == 0 {
		return ExpenseSummary{}, fmt.Errorf("%w: no expenses", model.ErrEmptyInput)
	}

	values := make([]float64, len(expenses))
	counts := make(map[string]int)
	var order []string
	for i, e := range expenses {
		values[i] = e.Amount.InexactFloat64()
		if counts[e.Category] == 0 {
			order = append(order, e.Category)
		}
		counts[e.Category]++
	}

	desc, err := Describe(values)
	if err != nil {
		return ExpenseSummary{}, err
	}

	var top CategoryCount
	for _, cat := range order {
		if counts[cat] > top.Count {
			top = CategoryCount{Category: cat, Count: counts[cat]}
		}
	}

	return ExpenseSummary{
		Total:        aggregate.Total(expenses),
		Count:        len(expenses),
		Amounts:      desc,
		MostFrequent: top,
	}, nil
}
