// Package aggregate computes categorized and time-windowed totals over ledger
// records. Every function is pure; callers pass the records to read.
package aggregate

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/budgetbuddy-dev/budgetbuddy/internal/model"
)

// TypeResolver maps a category ID to its type.
type TypeResolver interface {
	TypeOf(id string) (model.Type, bool)
}

// CategoryTotal is one entry of a ranked category breakdown.
type CategoryTotal struct {
	Category string
	Total    decimal.Decimal
}

// SummarizeByCategory sums expenses per category. Categories whose total is
// zero are omitted.
func SummarizeByCategory(expenses []model.Expense) map[string]decimal.Decimal {
	totals := make(map[string]decimal.Decimal)
	for _, e := range expenses {
		totals[e.Category] = totals[e.Category].Add(e.Amount)
	}
	for cat, total := range totals {
		if total.IsZero() {
			delete(totals, cat)
		}
	}
	return totals
}

// SummarizeByType sums expenses per type. All three types are present,
// zero when nothing was spent.
func SummarizeByType(expenses []model.Expense, types TypeResolver) model.TypeValues {
	var out model.TypeValues
	for _, e := range expenses {
		t, ok := types.TypeOf(e.Category)
		if !ok {
			continue
		}
		out = out.Set(t, out.Get(t).Add(e.Amount))
	}
	return out
}

// RankCategories orders category totals descending, breaking ties by
// category ID.
func RankCategories(totals map[string]decimal.Decimal) []CategoryTotal {
	out := make([]CategoryTotal, 0, len(totals))
	for cat, total := range totals {
		out = append(out, CategoryTotal{Category: cat, Total: total})
	}
	sort.Slice(out, func(i, j int) bool {
		if c := out[i].Total.Cmp(out[j].Total); c != 0 {
			return c > 0
		}
		return out[i].Category < out[j].Category
	})
	return out
}

// Total sums the amounts of expenses.
func Total(expenses []model.Expense) decimal.Decimal {
	sum := decimal.Zero
	for _, e := range expenses {
		sum = sum.Add(e.Amount)
	}
	return sum
}
