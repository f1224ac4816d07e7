package sqlitestore

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/budgetbuddy-dev/budgetbuddy/internal/allocation"
	"github.com/budgetbuddy-dev/budgetbuddy/internal/categories"
	"github.com/budgetbuddy-dev/budgetbuddy/internal/logging"
	"github.com/budgetbuddy-dev/budgetbuddy/internal/model"
)

func openTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "nested", "budgetbuddy.db")
	s, err := Open(path, logging.Discard())
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s, path
}

func dec(v string) decimal.Decimal { return decimal.RequireFromString(v) }

func TestEmptyDatabase(t *testing.T) {
	s, _ := openTestStore(t)
	ctx := context.Background()

	cats, err := s.LoadCategories(ctx)
	require.NoError(t, err)
	assert.Empty(t, cats)

	exps, err := s.LoadExpenses(ctx)
	require.NoError(t, err)
	assert.Empty(t, exps)
}

func TestRoundTrip(t *testing.T) {
	s, path := openTestStore(t)
	ctx := context.Background()
	day := model.Date(2025, time.January, 3)

	cats := categories.Builtins()
	require.NoError(t, s.SaveCategories(ctx, cats))

	expenses := []model.Expense{
		{ID: "exp-000002", Date: day, Category: "rent", Amount: dec("800.00"), Description: "January"},
		{ID: "exp-000001", Date: day, Category: "dining", Amount: dec("12.34")},
	}
	require.NoError(t, s.SaveExpenses(ctx, expenses))

	incomes := []model.Income{{ID: "inc-000001", Date: day, Source: "salary", Amount: dec("2000.01")}}
	require.NoError(t, s.SaveIncomes(ctx, incomes))

	bp, err := allocation.Compute(model.Period{Year: 2025, Month: time.January}, dec("2000"), allocation.StandardSplit())
	require.NoError(t, err)
	require.NoError(t, s.SaveBudgets(ctx, []model.BudgetPeriod{bp}))

	goals := []model.Goal{{ID: "goal-000001", Name: "Vacation", Target: dec("2000"), Contributed: dec("500"), Deadline: day}}
	require.NoError(t, s.SaveGoals(ctx, goals))
	require.NoError(t, s.Close())

	// Reopen to prove the data reached disk and migrations are idempotent.
	s2, err := Open(path, logging.Discard())
	require.NoError(t, err)
	defer s2.Close()

	gotCats, err := s2.LoadCategories(ctx)
	require.NoError(t, err)
	assert.Equal(t, cats, gotCats, "order and builtin flags preserved")

	gotExps, err := s2.LoadExpenses(ctx)
	require.NoError(t, err)
	require.Len(t, gotExps, 2)
	assert.Equal(t, "exp-000002", gotExps[0].ID, "saved order preserved")
	assert.Equal(t, "12.34", gotExps[1].Amount.StringFixed(2))
	assert.Equal(t, day, gotExps[0].Date)

	gotIncs, err := s2.LoadIncomes(ctx)
	require.NoError(t, err)
	require.Len(t, gotIncs, 1)
	assert.True(t, gotIncs[0].Amount.Equal(dec("2000.01")))

	gotBudgets, err := s2.LoadBudgets(ctx)
	require.NoError(t, err)
	require.Len(t, gotBudgets, 1)
	assert.True(t, gotBudgets[0].Limits.Wants.Equal(dec("600")))

	gotGoals, err := s2.LoadGoals(ctx)
	require.NoError(t, err)
	require.Len(t, gotGoals, 1)
	assert.Equal(t, day, gotGoals[0].Deadline)
}

func TestSaveReplacesTable(t *testing.T) {
	s, _ := openTestStore(t)
	ctx := context.Background()
	day := model.Date(2025, time.January, 3)

	require.NoError(t, s.SaveExpenses(ctx, []model.Expense{
		{ID: "exp-000001", Date: day, Category: "rent", Amount: dec("1")},
		{ID: "exp-000002", Date: day, Category: "rent", Amount: dec("2")},
	}))
	require.NoError(t, s.SaveExpenses(ctx, []model.Expense{
		{ID: "exp-000002", Date: day, Category: "rent", Amount: dec("2")},
	}))

	got, err := s.LoadExpenses(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "exp-000002", got[0].ID)
}
