package goals

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/budgetbuddy-dev/budgetbuddy/internal/model"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func date(y, m, d int) time.Time {
	return model.Date(y, time.Month(m), d)
}

func TestAddAndContribute(t *testing.T) {
	tr := NewTracker()
	g, err := tr.Add(NewGoal{Name: "Vacation", Target: dec("2000"), Deadline: date(2024, 12, 31), Description: "Trip to Europe"})
	require.NoError(t, err)
	assert.Equal(t, "goal-000001", g.ID)
	assert.True(t, g.Contributed.IsZero())

	g, err = tr.Contribute(g.ID, dec("500"))
	require.NoError(t, err)
	assert.True(t, g.Contributed.Equal(dec("500")))
	assert.InDelta(t, 0.25, Progress(g), 1e-9)

	g, err = tr.Contribute(g.ID, dec("1500"))
	require.NoError(t, err)
	assert.True(t, g.Complete())
}

func TestContribute_Saturates(t *testing.T) {
	tr := NewTracker()
	g, err := tr.Add(NewGoal{Name: "Laptop", Target: dec("1000")})
	require.NoError(t, err)

	g, err = tr.Contribute(g.ID, dec("1500"))
	require.NoError(t, err)
	assert.True(t, g.Contributed.Equal(dec("1000")))
	assert.Equal(t, 1.0, Progress(g))
}

func TestContribute_Errors(t *testing.T) {
	tr := NewTracker()
	g, err := tr.Add(NewGoal{Name: "Fund", Target: dec("100")})
	require.NoError(t, err)

	_, err = tr.Contribute(g.ID, decimal.Zero)
	assert.ErrorIs(t, err, model.ErrInvalidAmount)
	_, err = tr.Contribute(g.ID, dec("-5"))
	assert.ErrorIs(t, err, model.ErrInvalidAmount)
	_, err = tr.Contribute("goal-000099", dec("5"))
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestAdd_Validation(t *testing.T) {
	tr := NewTracker()
	_, err := tr.Add(NewGoal{Name: "x", Target: decimal.Zero})
	assert.ErrorIs(t, err, model.ErrInvalidAmount)
	_, err = tr.Add(NewGoal{Name: " ", Target: dec("10")})
	assert.ErrorIs(t, err, model.ErrMissingField)

	g, err := tr.Add(NewGoal{Name: "Car", Target: dec("10"), Contributed: dec("25")})
	require.NoError(t, err)
	assert.True(t, g.Contributed.Equal(dec("10")), "starting balance clamped")
}

func TestRemove(t *testing.T) {
	tr := NewTracker()
	a, _ := tr.Add(NewGoal{Name: "A", Target: dec("1")})
	b, _ := tr.Add(NewGoal{Name: "B", Target: dec("1")})

	require.NoError(t, tr.Remove(a.ID))
	assert.ErrorIs(t, tr.Remove(a.ID), model.ErrNotFound)

	got, err := tr.Goal(b.ID)
	require.NoError(t, err)
	assert.Equal(t, "B", got.Name)
	assert.Len(t, tr.All(), 1)
}

func TestStatus(t *testing.T) {
	tr := NewTracker()
	g, _ := tr.Add(NewGoal{Name: "Vacation", Target: dec("2000"), Deadline: date(2025, 3, 1)})
	_, _ = tr.Contribute(g.ID, dec("500"))
	_, _ = tr.Add(NewGoal{Name: "Open", Target: dec("100")})

	st := tr.Status(date(2025, 2, 1))
	require.Len(t, st, 2)
	assert.InDelta(t, 25.0, st[0].Percent, 1e-9)
	assert.True(t, st[0].Remaining.Equal(dec("1500")))
	assert.True(t, st[0].HasDue)
	assert.Equal(t, 28, st[0].DaysLeft)
	assert.False(t, st[0].Complete)
	assert.False(t, st[1].HasDue)

	late := tr.Status(date(2025, 3, 11))
	assert.Equal(t, -10, late[0].DaysLeft)
}

func TestRestore(t *testing.T) {
	tr, err := Restore([]model.Goal{
		{ID: "goal-000004", Name: "B", Target: dec("10"), Contributed: dec("3")},
		{ID: "goal-000002", Name: "A", Target: dec("10")},
	})
	require.NoError(t, err)
	all := tr.All()
	require.Len(t, all, 2)
	assert.Equal(t, "goal-000002", all[0].ID)

	g, err := tr.Add(NewGoal{Name: "C", Target: dec("1")})
	require.NoError(t, err)
	assert.Equal(t, "goal-000005", g.ID)

	_, err = Restore([]model.Goal{{ID: "goal-000001", Name: "A", Target: dec("-1")}})
	assert.ErrorIs(t, err, model.ErrInvalidAmount)
}
