package aggregate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/budgetbuddy-dev/budgetbuddy/internal/model"
)

func labels(ws []Window) []string {
	out := make([]string, len(ws))
	for i, w := range ws {
		out[i] = w.Label
	}
	return out
}

func TestWindowed_WeeksStartMonday(t *testing.T) {
	got, err := Windowed(sampleExpenses(), date(2025, 1, 1), date(2025, 1, 31), Week)
	require.NoError(t, err)

	assert.Equal(t, []string{"2025-W01", "2025-W02", "2025-W03", "2025-W04", "2025-W05"}, labels(got))
	assert.Equal(t, date(2024, 12, 30), got[0].Start, "edge window keeps its aligned bounds")
	assert.Equal(t, date(2025, 1, 5), got[0].End)

	assert.True(t, got[0].Total.Equal(dec("900")), "rent + groceries on the 5th (a Sunday)")
	assert.True(t, got[1].Total.Equal(dec("750")))
	assert.True(t, got[2].Total.IsZero())
	assert.Equal(t, 0, got[2].Count)
	assert.Equal(t, 1, got[3].Count, "zero-amount expense still counted")
	assert.True(t, got[4].Total.IsZero())
}

func TestWindowed_DenseMonths(t *testing.T) {
	expenses := []model.Expense{
		exp("exp-000001", date(2025, 1, 10), "rent", "100"),
		exp("exp-000002", date(2025, 4, 1), "rent", "50"),
		exp("exp-000003", date(2025, 4, 3), "rent", "999"),
		exp("exp-000004", date(2025, 1, 14), "rent", "999"),
	}
	got, err := Windowed(expenses, date(2025, 1, 15), date(2025, 4, 2), Month)
	require.NoError(t, err)

	assert.Equal(t, []string{"2025-01", "2025-02", "2025-03", "2025-04"}, labels(got))
	assert.True(t, got[0].Total.IsZero(), "expenses before start are not counted")
	assert.True(t, got[1].Total.IsZero())
	assert.True(t, got[2].Total.IsZero())
	assert.True(t, got[3].Total.Equal(dec("50")), "expenses after end are not counted")
	assert.Equal(t, date(2025, 4, 30), got[3].End)
}

func TestWindowed_Years(t *testing.T) {
	got, err := Windowed(nil, date(2023, 6, 1), date(2025, 1, 1), Year)
	require.NoError(t, err)
	assert.Equal(t, []string{"2023", "2024", "2025"}, labels(got))
	for _, w := range got {
		assert.True(t, w.Total.IsZero())
	}
}

func TestWindowed_LengthMatchesCalendar(t *testing.T) {
	tests := []struct {
		start, end string
		g          Granularity
		want       int
	}{
		{"2025-01-06", "2025-01-12", Week, 1},
		{"2025-01-06", "2025-01-13", Week, 2},
		{"2024-12-31", "2025-01-01", Month, 2},
		{"2025-02-01", "2025-02-01", Month, 1},
		{"2020-01-01", "2025-12-31", Year, 6},
		{"2024-01-01", "2024-12-31", Week, 53},
	}
	for _, tt := range tests {
		s, _ := model.ParseDate(tt.start)
		e, _ := model.ParseDate(tt.end)
		got, err := Windowed(nil, s, e, tt.g)
		require.NoError(t, err)
		assert.Len(t, got, tt.want, "%s..%s by %s", tt.start, tt.end, tt.g)
	}
}

func TestWindowed_EmptyAndInvalid(t *testing.T) {
	got, err := Windowed(nil, date(2025, 2, 1), date(2025, 1, 1), Month)
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = Windowed(nil, date(2025, 1, 1), date(2025, 2, 1), Granularity("fortnight"))
	assert.ErrorIs(t, err, model.ErrInvalidPeriod)
}

func TestWindowed_Deterministic(t *testing.T) {
	a, err := Windowed(sampleExpenses(), date(2025, 1, 1), date(2025, 1, 31), Week)
	require.NoError(t, err)
	b, err := Windowed(sampleExpenses(), date(2025, 1, 1), date(2025, 1, 31), Week)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestParseGranularity(t *testing.T) {
	g, err := ParseGranularity("Month")
	require.NoError(t, err)
	assert.Equal(t, Month, g)

	_, err = ParseGranularity("day")
	assert.ErrorIs(t, err, model.ErrInvalidPeriod)
}

func TestShift(t *testing.T) {
	assert.Equal(t, date(2024, 11, 1), Shift(date(2025, 1, 1), Month, -2))
	assert.Equal(t, date(2024, 12, 23), Shift(date(2025, 1, 6), Week, -2))
	assert.Equal(t, date(2027, 1, 1), Shift(date(2025, 1, 1), Year, 2))
}
