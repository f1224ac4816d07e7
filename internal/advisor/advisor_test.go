package advisor

import (
	"math"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/budgetbuddy-dev/budgetbuddy/internal/allocation"
	"github.com/budgetbuddy-dev/budgetbuddy/internal/categories"
	"github.com/budgetbuddy-dev/budgetbuddy/internal/id"
	"github.com/budgetbuddy-dev/budgetbuddy/internal/model"
)

var jan = model.Period{Year: 2025, Month: 1}

func date(y, m, d int) time.Time {
	return model.Date(y, time.Month(m), d)
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func exp(seq int, d time.Time, cat, amt string) model.Expense {
	return model.Expense{ID: id.Format(id.ExpensePrefix, seq), Date: d, Category: cat, Amount: dec(amt)}
}

func plansFor(t *testing.T, income string, split model.TypeValues) *allocation.Plans {
	t.Helper()
	bp, err := allocation.Compute(jan, dec(income), split)
	require.NoError(t, err)
	p := allocation.NewPlans()
	p.Set(bp)
	return p
}

func scenario() []model.Expense {
	return []model.Expense{
		exp(1, date(2025, 1, 1), "rent", "800"),
		exp(2, date(2025, 1, 3), "groceries", "150"),
		exp(3, date(2025, 1, 8), "dining", "700"),
	}
}

func TestAnalyze_Scenario(t *testing.T) {
	a := New(scenario(), categories.NewRegistry(), plansFor(t, "2000", allocation.StandardSplit()), DefaultThresholds())

	got, err := a.Analyze(jan)
	require.NoError(t, err)
	require.Len(t, got, 1, "needs at 950 of 1000 is under budget")

	s := got[0]
	assert.Equal(t, model.TypeWants, s.Type)
	assert.True(t, s.Total.Equal(dec("700")))
	assert.True(t, s.Limit.Equal(dec("600")))
	assert.True(t, s.OverAmount.Equal(dec("100")))
	assert.InDelta(t, 1.0/6.0, s.Severity, 1e-9)
	assert.Equal(t, LevelModerate, s.Level)
	assert.Equal(t, "dining", s.TopCategory)
	assert.True(t, s.TopShare.Equal(dec("100")))

	text := Render(s, "$")
	assert.Contains(t, text, "Reduce spending on dining, which accounts for 100% of your Wants overspend")
	assert.Contains(t, text, "$100.00")
}

func TestAnalyze_NoBudget(t *testing.T) {
	a := New(scenario(), categories.NewRegistry(), allocation.NewPlans(), DefaultThresholds())
	_, err := a.Analyze(jan)
	assert.ErrorIs(t, err, model.ErrNoBudgetConfigured)

	_, err = a.Progress(jan)
	assert.ErrorIs(t, err, model.ErrNoBudgetConfigured)
}

func TestAnalyze_UnderBudgetIsEmptyNotError(t *testing.T) {
	a := New(nil, categories.NewRegistry(), plansFor(t, "2000", allocation.StandardSplit()), DefaultThresholds())
	got, err := a.Analyze(jan)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestAnalyze_ZeroLimitIsCritical(t *testing.T) {
	split := model.TypeValues{Needs: dec("80"), Wants: dec("20"), Savings: dec("0")}
	expenses := []model.Expense{exp(1, date(2025, 1, 2), "savings", "10")}
	a := New(expenses, categories.NewRegistry(), plansFor(t, "1000", split), DefaultThresholds())

	got, err := a.Analyze(jan)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.True(t, math.IsInf(got[0].Severity, 1))
	assert.Equal(t, LevelCritical, got[0].Level)
}

func TestAnalyze_OrdersBySeverity(t *testing.T) {
	// Needs and Wants both 500; Wants over by more.
	split := model.TypeValues{Needs: dec("50"), Wants: dec("50"), Savings: dec("0")}
	expenses := []model.Expense{
		exp(1, date(2025, 1, 2), "rent", "550"),
		exp(2, date(2025, 1, 2), "dining", "600"),
		exp(3, date(2025, 1, 2), "shopping", "150"),
	}
	a := New(expenses, categories.NewRegistry(), plansFor(t, "1000", split), DefaultThresholds())

	got, err := a.Analyze(jan)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, model.TypeWants, got[0].Type)
	assert.Equal(t, model.TypeNeeds, got[1].Type)

	require.Len(t, got[0].Contributors, 2)
	assert.Equal(t, "dining", got[0].Contributors[0].Category)
	assert.True(t, got[0].TopShare.Equal(dec("80")))
}

func TestRank_TiesByTypeOrder(t *testing.T) {
	s := []Suggestion{
		{Type: model.TypeSavings, Severity: 0.2},
		{Type: model.TypeWants, Severity: 0.2},
		{Type: model.TypeNeeds, Severity: 0.2},
		{Type: model.TypeWants, Severity: math.Inf(1)},
	}
	Rank(s)
	assert.True(t, math.IsInf(s[0].Severity, 1))
	assert.Equal(t, model.TypeNeeds, s[1].Type)
	assert.Equal(t, model.TypeWants, s[2].Type)
	assert.Equal(t, model.TypeSavings, s[3].Type)
}

func TestAnalyze_IgnoresOtherPeriods(t *testing.T) {
	expenses := append(scenario(), exp(4, date(2025, 2, 1), "rent", "5000"))
	a := New(expenses, categories.NewRegistry(), plansFor(t, "2000", allocation.StandardSplit()), DefaultThresholds())
	got, err := a.Analyze(jan)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestAnalyze_Deterministic(t *testing.T) {
	a := New(scenario(), categories.NewRegistry(), plansFor(t, "2000", allocation.StandardSplit()), DefaultThresholds())
	first, err := a.Analyze(jan)
	require.NoError(t, err)
	second, err := a.Analyze(jan)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestAnalyze_NegativeTotalPanics(t *testing.T) {
	expenses := []model.Expense{exp(1, date(2025, 1, 2), "rent", "-5")}
	a := New(expenses, categories.NewRegistry(), plansFor(t, "2000", allocation.StandardSplit()), DefaultThresholds())
	assert.Panics(t, func() { _, _ = a.Analyze(jan) })
}

func TestLevelOf(t *testing.T) {
	assert.Equal(t, LevelMinor, LevelOf(0.05))
	assert.Equal(t, LevelModerate, LevelOf(0.10))
	assert.Equal(t, LevelMajor, LevelOf(0.25))
	assert.Equal(t, LevelCritical, LevelOf(0.50))
	assert.Equal(t, LevelCritical, LevelOf(math.Inf(1)))
	assert.Equal(t, "major", LevelMajor.String())
}
