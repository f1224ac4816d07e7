package allocation

import (
	"bytes"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/budgetbuddy-dev/budgetbuddy/internal/model"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func split(n, w, s string) model.TypeValues {
	return model.TypeValues{Needs: dec(n), Wants: dec(w), Savings: dec(s)}
}

var jan = model.Period{Year: 2025, Month: 1}

func TestCompute_StandardSplit(t *testing.T) {
	bp, err := Compute(jan, dec("2000"), StandardSplit())
	require.NoError(t, err)

	assert.Equal(t, jan, bp.Period)
	assert.True(t, bp.Limit(model.TypeNeeds).Equal(dec("1000")))
	assert.True(t, bp.Limit(model.TypeWants).Equal(dec("600")))
	assert.True(t, bp.Limit(model.TypeSavings).Equal(dec("400")))
}

func TestCompute_RoundsHalfUp(t *testing.T) {
	bp, err := Compute(jan, dec("100.01"), StandardSplit())
	require.NoError(t, err)

	// 50.005 → 50.01, 30.003 → 30.00, 20.002 → 20.00
	assert.Equal(t, "50.01", bp.Limits.Needs.StringFixed(2))
	assert.Equal(t, "30.00", bp.Limits.Wants.StringFixed(2))
	assert.Equal(t, "20.00", bp.Limits.Savings.StringFixed(2))
}

func TestCompute_ZeroIncome(t *testing.T) {
	bp, err := Compute(jan, decimal.Zero, StandardSplit())
	require.NoError(t, err)
	for _, typ := range model.Types() {
		assert.True(t, bp.Limit(typ).IsZero(), typ)
	}
}

func TestCompute_Errors(t *testing.T) {
	tests := []struct {
		name   string
		period model.Period
		income string
		split  model.TypeValues
		want   error
	}{
		{"sum 110", jan, "2000", split("60", "30", "20"), model.ErrInvalidSplit},
		{"sum 99", jan, "2000", split("50", "30", "19"), model.ErrInvalidSplit},
		{"negative pct", jan, "2000", split("120", "-40", "20"), model.ErrInvalidSplit},
		{"negative income", jan, "-1", StandardSplit(), model.ErrInvalidAmount},
		{"missing period", model.Period{}, "2000", StandardSplit(), model.ErrInvalidPeriod},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Compute(tt.period, dec(tt.income), tt.split)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestValidateSplit_Tolerance(t *testing.T) {
	assert.NoError(t, ValidateSplit(split("33.33", "33.33", "33.34")))
	assert.NoError(t, ValidateSplit(split("33.33", "33.33", "33.33")), "99.99 within tolerance")
	assert.ErrorIs(t, ValidateSplit(split("33.33", "33.33", "33.32")), model.ErrInvalidSplit)
	assert.NoError(t, ValidateSplit(split("100", "0", "0")))
}

func TestCompute_LimitsSumToIncome(t *testing.T) {
	incomes := []string{"0", "0.01", "1", "999.99", "1234.56", "2000", "3333.33", "98765.43"}
	splits := []model.TypeValues{
		StandardSplit(),
		split("33.33", "33.33", "33.34"),
		split("70", "20", "10"),
		split("0", "0", "100"),
	}
	oneCentPerType := dec("0.03")

	for _, in := range incomes {
		for _, s := range splits {
			bp, err := Compute(jan, dec(in), s)
			require.NoError(t, err)
			diff := bp.Limits.Sum().Sub(dec(in)).Abs()
			assert.True(t, diff.LessThanOrEqual(oneCentPerType),
				"income %s split %v: limits sum %s", in, s, bp.Limits.Sum())
			for _, typ := range model.Types() {
				assert.False(t, bp.Limit(typ).IsNegative())
			}
		}
	}
}

func TestParseSplit(t *testing.T) {
	s, err := ParseSplit("60", "25", "15")
	require.NoError(t, err)
	assert.True(t, s.Needs.Equal(dec("60")))
	assert.True(t, s.Savings.Equal(dec("15")))

	_, err = ParseSplit("60", "abc", "15")
	assert.ErrorIs(t, err, model.ErrInvalidSplit)

	_, err = ParseSplit("60", "30", "20")
	assert.ErrorIs(t, err, model.ErrInvalidSplit)
}

func TestPlans(t *testing.T) {
	p := NewPlans()
	_, ok := p.Get(jan)
	assert.False(t, ok)

	feb := model.Period{Year: 2025, Month: 2}
	bpFeb, err := Compute(feb, dec("3000"), StandardSplit())
	require.NoError(t, err)
	bpJan, err := Compute(jan, dec("2000"), StandardSplit())
	require.NoError(t, err)
	p.Set(bpFeb)
	p.Set(bpJan)

	all := p.All()
	require.Len(t, all, 2)
	assert.Equal(t, jan, all[0].Period)
	assert.Equal(t, feb, all[1].Period)

	// replacing a period keeps one entry
	bpJan2, err := Compute(jan, dec("2500"), StandardSplit())
	require.NoError(t, err)
	c := p.Clone()
	p.Set(bpJan2)
	assert.Len(t, p.All(), 2)
	got, _ := p.Get(jan)
	assert.True(t, got.Income.Equal(dec("2500")))

	old, _ := c.Get(jan)
	assert.True(t, old.Income.Equal(dec("2000")), "clone is independent")
}

func TestBudgetsCSV_RoundTripAndRestore(t *testing.T) {
	bp, err := Compute(jan, dec("2000"), split("60", "25", "15"))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteBudgets(&buf, []model.BudgetPeriod{bp}))
	assert.Contains(t, buf.String(), "2025-01,2000,60,25,15,1200.00,500.00,300.00")

	got, err := ReadBudgets(&buf)
	require.NoError(t, err)
	require.Len(t, got, 1)

	// tampered limits are recomputed on restore
	got[0].Limits.Wants = dec("1")
	plans, err := Restore(got)
	require.NoError(t, err)
	restored, ok := plans.Get(jan)
	require.True(t, ok)
	assert.True(t, restored.Limit(model.TypeWants).Equal(dec("500")))
}

func TestRestore_RejectsBadSplit(t *testing.T) {
	_, err := Restore([]model.BudgetPeriod{{Period: jan, Income: dec("100"), Split: split("10", "10", "10")}})
	assert.ErrorIs(t, err, model.ErrInvalidSplit)
}
