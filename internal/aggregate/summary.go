package aggregate

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/budgetbuddy-dev/budgetbuddy/internal/ledger"
	"github.com/budgetbuddy-dev/budgetbuddy/internal/model"
)

// Summary describes spending over one date range.
type Summary struct {
	Start      time.Time
	End        time.Time
	Total      decimal.Decimal
	Count      int
	ByCategory map[string]decimal.Decimal // sparse
	ByType     model.TypeValues
}

// Ranked returns the category breakdown ordered by total.
func (s Summary) Ranked() []CategoryTotal {
	return RankCategories(s.ByCategory)
}

// YearSummary adds a monthly average to a calendar-year Summary.
type YearSummary struct {
	Summary
	Months          int // months elapsed in the year as of the query date
	AveragePerMonth decimal.Decimal
}

// IncomeSummary describes income over one date range.
type IncomeSummary struct {
	Total    decimal.Decimal
	Count    int
	BySource map[string]decimal.Decimal
}

// Summarize totals the expenses dated within [start, end].
func Summarize(expenses []model.Expense, types TypeResolver, start, end time.Time) Summary {
	in := ledger.FilterExpenses(expenses, start, end)
	return Summary{
		Start:      model.Day(start),
		End:        model.Day(end),
		Total:      Total(in),
		Count:      len(in),
		ByCategory: SummarizeByCategory(in),
		ByType:     SummarizeByType(in, types),
	}
}

// MonthSummary summarizes one budget period.
func MonthSummary(expenses []model.Expense, types TypeResolver, p model.Period) Summary {
	return Summarize(expenses, types, p.Start(), p.End())
}

// WeekSummary summarizes the Monday-to-Sunday week containing day.
func WeekSummary(expenses []model.Expense, types TypeResolver, day time.Time) Summary {
	start := Align(day, Week)
	return Summarize(expenses, types, start, start.AddDate(0, 0, 6))
}

// SummarizeYear summarizes a calendar year. The monthly average divides by the
// months elapsed as of asOf: all twelve for past years, none for future ones.
func SummarizeYear(expenses []model.Expense, types TypeResolver, year int, asOf time.Time) YearSummary {
	s := Summarize(expenses, types, model.Date(year, time.January, 1), model.Date(year, time.December, 31))

	months := 12
	switch {
	case year == asOf.Year():
		months = int(asOf.Month())
	case year > asOf.Year():
		months = 0
	}

	avg := decimal.Zero
	if months > 0 {
		avg = s.Total.Div(decimal.NewFromInt(int64(months))).Round(2)
	}
	return YearSummary{Summary: s, Months: months, AveragePerMonth: avg}
}

// SummarizeIncome totals incomes dated within [start, end] by source.
func SummarizeIncome(incomes []model.Income, start, end time.Time) IncomeSummary {
	in := ledger.FilterIncomes(incomes, start, end)
	out := IncomeSummary{Total: decimal.Zero, Count: len(in), BySource: make(map[string]decimal.Decimal)}
	for _, i := range in {
		out.Total = out.Total.Add(i.Amount)
		out.BySource[i.Source] = out.BySource[i.Source].Add(i.Amount)
	}
	return out
}
