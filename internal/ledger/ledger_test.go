package ledger

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/budgetbuddy-dev/budgetbuddy/internal/model"
)

type mockCategories map[string]bool

func newMockCategories(ids ...string) mockCategories {
	m := make(mockCategories)
	for _, id := range ids {
		m[id] = true
	}
	return m
}

func (m mockCategories) Exists(id string) bool { return m[id] }

func date(y, m, d int) time.Time {
	return model.Date(y, time.Month(m), d)
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func newTestLedger() *Ledger {
	return New(newMockCategories("rent", "groceries", "dining"))
}

func TestAddExpense_AssignsSequentialIDs(t *testing.T) {
	l := newTestLedger()

	e1, err := l.AddExpense(NewExpense{Date: date(2025, 1, 3), Category: "rent", Amount: dec("800.00")})
	require.NoError(t, err)
	e2, err := l.AddExpense(NewExpense{Date: date(2025, 1, 4), Category: "dining", Amount: dec("42.50")})
	require.NoError(t, err)

	assert.Equal(t, "exp-000001", e1.ID)
	assert.Equal(t, "exp-000002", e2.ID)
	assert.Len(t, l.Expenses(), 2)
}

func TestAddExpense_Validation(t *testing.T) {
	tests := []struct {
		name string
		e    NewExpense
		want error
	}{
		{"negative", NewExpense{Date: date(2025, 1, 1), Category: "rent", Amount: dec("-1")}, model.ErrInvalidAmount},
		{"sub-cent", NewExpense{Date: date(2025, 1, 1), Category: "rent", Amount: dec("1.005")}, model.ErrInvalidAmount},
		{"unknown category", NewExpense{Date: date(2025, 1, 1), Category: "yachts", Amount: dec("1")}, model.ErrInvalidCategory},
		{"no date", NewExpense{Category: "rent", Amount: dec("1")}, model.ErrInvalidDate},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := newTestLedger()
			_, err := l.AddExpense(tt.e)
			assert.ErrorIs(t, err, tt.want)
			assert.Empty(t, l.Expenses(), "invalid record must not be admitted")
		})
	}
}

func TestAddExpense_ZeroAmountAllowed(t *testing.T) {
	l := newTestLedger()
	_, err := l.AddExpense(NewExpense{Date: date(2025, 1, 1), Category: "rent", Amount: decimal.Zero})
	assert.NoError(t, err)
}

func TestAddExpense_DropsTimeOfDay(t *testing.T) {
	l := newTestLedger()
	e, err := l.AddExpense(NewExpense{
		Date:     time.Date(2025, 1, 5, 18, 45, 0, 0, time.UTC),
		Category: "dining",
		Amount:   dec("10"),
	})
	require.NoError(t, err)
	assert.Equal(t, date(2025, 1, 5), e.Date)
}

func TestEditExpense_ReplacesWholeRecord(t *testing.T) {
	l := newTestLedger()
	orig, err := l.AddExpense(NewExpense{Date: date(2025, 1, 3), Category: "groceries", Amount: dec("50"), Description: "market"})
	require.NoError(t, err)

	edited, err := l.EditExpense(orig.ID, NewExpense{Date: date(2025, 1, 10), Category: "dining", Amount: dec("75.25")})
	require.NoError(t, err)
	assert.Equal(t, orig.ID, edited.ID)

	got := l.QueryByRange(date(2025, 1, 10), date(2025, 1, 10))
	require.Len(t, got, 1)
	assert.Equal(t, orig.ID, got[0].ID)
	assert.Equal(t, "dining", got[0].Category)
	assert.True(t, got[0].Amount.Equal(dec("75.25")))
	assert.Empty(t, got[0].Description, "edit does not merge old fields")

	assert.Empty(t, l.QueryByRange(date(2025, 1, 3), date(2025, 1, 3)))
}

func TestEditExpense_Errors(t *testing.T) {
	l := newTestLedger()
	_, err := l.EditExpense("exp-000009", NewExpense{Date: date(2025, 1, 1), Category: "rent", Amount: dec("1")})
	assert.ErrorIs(t, err, model.ErrNotFound)

	e, err := l.AddExpense(NewExpense{Date: date(2025, 1, 1), Category: "rent", Amount: dec("1")})
	require.NoError(t, err)
	_, err = l.EditExpense(e.ID, NewExpense{Date: date(2025, 1, 1), Category: "rent", Amount: dec("-5")})
	assert.ErrorIs(t, err, model.ErrInvalidAmount)

	kept, err := l.Expense(e.ID)
	require.NoError(t, err)
	assert.True(t, kept.Amount.Equal(dec("1")), "failed edit leaves record untouched")
}

func TestDeleteExpense(t *testing.T) {
	l := newTestLedger()
	e1, _ := l.AddExpense(NewExpense{Date: date(2025, 1, 1), Category: "rent", Amount: dec("1")})
	e2, _ := l.AddExpense(NewExpense{Date: date(2025, 1, 2), Category: "rent", Amount: dec("2")})
	e3, _ := l.AddExpense(NewExpense{Date: date(2025, 1, 3), Category: "rent", Amount: dec("3")})

	require.NoError(t, l.DeleteExpense(e2.ID))
	assert.ErrorIs(t, l.DeleteExpense(e2.ID), model.ErrNotFound)

	_, err := l.Expense(e2.ID)
	assert.ErrorIs(t, err, model.ErrNotFound)

	got, err := l.Expense(e3.ID)
	require.NoError(t, err)
	assert.Equal(t, e3.ID, got.ID, "index rebuilt after delete")

	// IDs are never reused.
	e4, err := l.AddExpense(NewExpense{Date: date(2025, 1, 4), Category: "rent", Amount: dec("4")})
	require.NoError(t, err)
	assert.Equal(t, "exp-000004", e4.ID)

	ids := []string{}
	for _, e := range l.Expenses() {
		ids = append(ids, e.ID)
	}
	assert.Equal(t, []string{e1.ID, e3.ID, e4.ID}, ids)
}

func TestQueryByRange_InclusiveAndStable(t *testing.T) {
	l := newTestLedger()
	add := func(d time.Time, amt string) string {
		e, err := l.AddExpense(NewExpense{Date: d, Category: "groceries", Amount: dec(amt)})
		require.NoError(t, err)
		return e.ID
	}
	a := add(date(2025, 1, 15), "5")
	b := add(date(2025, 1, 1), "100")
	c := add(date(2025, 1, 15), "1")
	d := add(date(2025, 1, 31), "9")
	add(date(2025, 2, 1), "9")
	add(date(2024, 12, 31), "9")

	got := l.QueryByRange(date(2025, 1, 1), date(2025, 1, 31))
	ids := make([]string, len(got))
	for i, e := range got {
		ids[i] = e.ID
	}
	assert.Equal(t, []string{b, a, c, d}, ids, "by date, then recording order, never by amount")

	assert.Empty(t, l.QueryByRange(date(2025, 3, 1), date(2025, 2, 1)))
}

func TestUsesCategory(t *testing.T) {
	l := newTestLedger()
	_, err := l.AddExpense(NewExpense{Date: date(2025, 1, 1), Category: "dining", Amount: dec("1")})
	require.NoError(t, err)
	assert.True(t, l.UsesCategory("dining"))
	assert.False(t, l.UsesCategory("rent"))
}

func TestIncomeLifecycle(t *testing.T) {
	l := newTestLedger()

	in, err := l.AddIncome(NewIncome{Date: date(2025, 1, 1), Source: "salary", Amount: dec("2000")})
	require.NoError(t, err)
	assert.Equal(t, "inc-000001", in.ID)

	_, err = l.AddIncome(NewIncome{Date: date(2025, 1, 1), Source: " ", Amount: dec("1")})
	assert.ErrorIs(t, err, model.ErrMissingField)
	_, err = l.AddIncome(NewIncome{Date: date(2025, 1, 1), Source: "gift", Amount: dec("-1")})
	assert.ErrorIs(t, err, model.ErrInvalidAmount)

	edited, err := l.EditIncome(in.ID, NewIncome{Date: date(2025, 1, 2), Source: "salary", Amount: dec("2100")})
	require.NoError(t, err)
	assert.Equal(t, in.ID, edited.ID)

	got := l.QueryIncomeByRange(date(2025, 1, 1), date(2025, 1, 31))
	require.Len(t, got, 1)
	assert.True(t, got[0].Amount.Equal(dec("2100")))

	require.NoError(t, l.DeleteIncome(in.ID))
	assert.Empty(t, l.Incomes())
	_, err = l.Income(in.ID)
	assert.ErrorIs(t, err, model.ErrNotFound)
	_, err = l.EditIncome(in.ID, NewIncome{Date: date(2025, 1, 2), Source: "salary", Amount: dec("1")})
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestRestore(t *testing.T) {
	cats := newMockCategories("rent", "dining")
	expenses := []model.Expense{
		{ID: "exp-000007", Date: date(2025, 1, 2), Category: "dining", Amount: dec("20")},
		{ID: "exp-000003", Date: date(2025, 1, 2), Category: "rent", Amount: dec("800")},
	}
	incomes := []model.Income{
		{ID: "inc-000002", Date: date(2025, 1, 1), Source: "salary", Amount: dec("2000")},
	}

	l, err := Restore(cats, expenses, incomes)
	require.NoError(t, err)

	all := l.Expenses()
	require.Len(t, all, 2)
	assert.Equal(t, "exp-000003", all[0].ID, "recording order follows ID sequence")

	e, err := l.AddExpense(NewExpense{Date: date(2025, 1, 3), Category: "rent", Amount: dec("1")})
	require.NoError(t, err)
	assert.Equal(t, "exp-000008", e.ID)

	in, err := l.AddIncome(NewIncome{Date: date(2025, 1, 3), Source: "bonus", Amount: dec("1")})
	require.NoError(t, err)
	assert.Equal(t, "inc-000003", in.ID)
}

func TestRestore_Rejects(t *testing.T) {
	cats := newMockCategories("rent")

	_, err := Restore(cats, []model.Expense{
		{ID: "exp-000001", Date: date(2025, 1, 1), Category: "rent", Amount: dec("1")},
		{ID: "exp-000001", Date: date(2025, 1, 2), Category: "rent", Amount: dec("2")},
	}, nil)
	assert.ErrorIs(t, err, model.ErrDuplicateKey)

	_, err = Restore(cats, []model.Expense{
		{ID: "exp-000001", Date: date(2025, 1, 1), Category: "gone", Amount: dec("1")},
	}, nil)
	assert.ErrorIs(t, err, model.ErrInvalidCategory)

	_, err = Restore(cats, []model.Expense{
		{ID: "inc-000001", Date: date(2025, 1, 1), Category: "rent", Amount: dec("1")},
	}, nil)
	assert.Error(t, err)

	_, err = Restore(cats, []model.Expense{
		{ID: "exp-000042", Date: date(2025, 1, 1), Category: "rent", Amount: dec("1")},
		{ID: "exp-42", Date: date(2025, 1, 2), Category: "rent", Amount: dec("2")},
	}, nil)
	assert.ErrorContains(t, err, `"exp-42"`)
}
