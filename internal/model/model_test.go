package model

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseType(t *testing.T) {
	tests := []struct {
		input string
		want  Type
	}{
		{"needs", TypeNeeds},
		{"Wants", TypeWants},
		{" SAVINGS ", TypeSavings},
	}
	for _, tt := range tests {
		got, err := ParseType(tt.input)
		require.NoError(t, err, "input: %q", tt.input)
		assert.Equal(t, tt.want, got)
	}

	_, err := ParseType("luxuries")
	assert.ErrorIs(t, err, ErrInvalidCategory)
}

func TestTypeRankAndLabel(t *testing.T) {
	for i, typ := range Types() {
		assert.Equal(t, i, typ.Rank())
		assert.True(t, typ.Valid())
	}
	assert.Equal(t, -1, Type("other").Rank())
	assert.Equal(t, "Wants", TypeWants.Label())
}

func TestParsePeriod(t *testing.T) {
	p, err := ParsePeriod("2025-02")
	require.NoError(t, err)
	assert.Equal(t, Period{Year: 2025, Month: time.February}, p)
	assert.Equal(t, "2025-02", p.String())
	assert.Equal(t, Date(2025, 2, 1), p.Start())
	assert.Equal(t, Date(2025, 2, 28), p.End())

	_, err = ParsePeriod("2025/02")
	assert.ErrorIs(t, err, ErrInvalidPeriod)
}

func TestPeriodBefore(t *testing.T) {
	assert.True(t, Period{2024, 12}.Before(Period{2025, 1}))
	assert.True(t, Period{2025, 1}.Before(Period{2025, 2}))
	assert.False(t, Period{2025, 2}.Before(Period{2025, 2}))
}

func TestDayDropsTime(t *testing.T) {
	loc := time.FixedZone("x", 5*3600)
	got := Day(time.Date(2025, 3, 9, 23, 30, 0, 0, loc))
	assert.Equal(t, Date(2025, 3, 9), got)
}

func TestHasCents(t *testing.T) {
	assert.True(t, HasCents(decimal.RequireFromString("12.34")))
	assert.True(t, HasCents(decimal.RequireFromString("12")))
	assert.False(t, HasCents(decimal.RequireFromString("12.345")))
}

func TestTypeValues(t *testing.T) {
	v := TypeValues{}.
		Set(TypeNeeds, decimal.NewFromInt(50)).
		Set(TypeWants, decimal.NewFromInt(30)).
		Set(TypeSavings, decimal.NewFromInt(20))
	assert.True(t, v.Sum().Equal(decimal.NewFromInt(100)))
	assert.True(t, v.Get(TypeWants).Equal(decimal.NewFromInt(30)))
	assert.True(t, v.Get(Type("x")).IsZero())
}

func TestGoalComplete(t *testing.T) {
	g := Goal{Target: decimal.NewFromInt(100), Contributed: decimal.NewFromInt(40)}
	assert.False(t, g.Complete())
	assert.True(t, g.Remaining().Equal(decimal.NewFromInt(60)))

	g.Contributed = decimal.NewFromInt(100)
	assert.True(t, g.Complete())
	assert.True(t, g.Remaining().IsZero())
}
