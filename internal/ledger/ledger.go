// Package ledger owns the recorded expenses and incomes. Every record that
// enters the ledger has been validated, so readers never re-check amounts or
// category references.
package ledger

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/budgetbuddy-dev/budgetbuddy/internal/id"
	"github.com/budgetbuddy-dev/budgetbuddy/internal/model"
)

// NewExpense holds the caller-supplied fields of an expense. It is used for
// both creation and whole-record edits.
type NewExpense struct {
	Date        time.Time
	Category    string
	Amount      decimal.Decimal
	Description string
}

// NewIncome holds the caller-supplied fields of an income.
type NewIncome struct {
	Date        time.Time
	Source      string
	Amount      decimal.Decimal
	Description string
}

// Ledger holds expenses and incomes in recording order.
type Ledger struct {
	categories CategoryResolver

	expenses []model.Expense
	expByID  map[string]int
	expSeq   *id.Sequence

	incomes []model.Income
	incByID map[string]int
	incSeq  *id.Sequence
}

// New creates an empty Ledger that validates categories against categories.
func New(categories CategoryResolver) *Ledger {
	return &Ledger{
		categories: categories,
		expByID:    make(map[string]int),
		expSeq:     id.NewSequence(id.ExpensePrefix),
		incByID:    make(map[string]int),
		incSeq:     id.NewSequence(id.IncomePrefix),
	}
}

// Restore rebuilds a Ledger from persisted records. Records are re-validated,
// put back in recording order by their ID sequence, and new IDs continue
// after the highest one seen.
func Restore(categories CategoryResolver, expenses []model.Expense, incomes []model.Income) (*Ledger, error) {
	l := New(categories)

	exps := append([]model.Expense(nil), expenses...)
	expSeqs := make(map[string]int, len(exps))
	for _, e := range exps {
		seq, err := l.expSeq.Observe(e.ID)
		if err != nil {
			return nil, fmt.Errorf("restoring expense: %w", err)
		}
		if _, dup := expSeqs[e.ID]; dup {
			return nil, fmt.Errorf("%w: expense %s", model.ErrDuplicateKey, e.ID)
		}
		expSeqs[e.ID] = seq
		if err := validateExpense(expenseFields(e), categories); err != nil {
			return nil, fmt.Errorf("restoring expense %s: %w", e.ID, err)
		}
	}
	sort.SliceStable(exps, func(i, j int) bool { return expSeqs[exps[i].ID] < expSeqs[exps[j].ID] })
	for _, e := range exps {
		e.Date = model.Day(e.Date)
		l.expByID[e.ID] = len(l.expenses)
		l.expenses = append(l.expenses, e)
	}

	incs := append([]model.Income(nil), incomes...)
	incSeqs := make(map[string]int, len(incs))
	for _, in := range incs {
		seq, err := l.incSeq.Observe(in.ID)
		if err != nil {
			return nil, fmt.Errorf("restoring income: %w", err)
		}
		if _, dup := incSeqs[in.ID]; dup {
			return nil, fmt.Errorf("%w: income %s", model.ErrDuplicateKey, in.ID)
		}
		incSeqs[in.ID] = seq
		if err := validateIncome(incomeFields(in)); err != nil {
			return nil, fmt.Errorf("restoring income %s: %w", in.ID, err)
		}
	}
	sort.SliceStable(incs, func(i, j int) bool { return incSeqs[incs[i].ID] < incSeqs[incs[j].ID] })
	for _, in := range incs {
		in.Date = model.Day(in.Date)
		l.incByID[in.ID] = len(l.incomes)
		l.incomes = append(l.incomes, in)
	}

	return l, nil
}

// AddExpense validates e, assigns it a fresh ID and appends it.
func (l *Ledger) AddExpense(e NewExpense) (model.Expense, error) {
	if err := validateExpense(e, l.categories); err != nil {
		return model.Expense{}, err
	}
	rec := model.Expense{
		ID:          l.expSeq.Next(),
		Date:        model.Day(e.Date),
		Category:    e.Category,
		Amount:      e.Amount,
		Description: e.Description,
	}
	l.expByID[rec.ID] = len(l.expenses)
	l.expenses = append(l.expenses, rec)
	return rec, nil
}

// CheckExpense reports whether e would be accepted by AddExpense.
func (l *Ledger) CheckExpense(e NewExpense) error {
	return validateExpense(e, l.categories)
}

// EditExpense replaces every field of the expense with the given ID. The ID
// and recording position are kept.
func (l *Ledger) EditExpense(expenseID string, e NewExpense) (model.Expense, error) {
	idx, ok := l.expByID[expenseID]
	if !ok {
		return model.Expense{}, fmt.Errorf("%w: expense %s", model.ErrNotFound, expenseID)
	}
	if err := validateExpense(e, l.categories); err != nil {
		return model.Expense{}, err
	}
	rec := model.Expense{
		ID:          expenseID,
		Date:        model.Day(e.Date),
		Category:    e.Category,
		Amount:      e.Amount,
		Description: e.Description,
	}
	l.expenses[idx] = rec
	return rec, nil
}

// DeleteExpense permanently removes an expense.
func (l *Ledger) DeleteExpense(expenseID string) error {
	idx, ok := l.expByID[expenseID]
	if !ok {
		return fmt.Errorf("%w: expense %s", model.ErrNotFound, expenseID)
	}
	l.expenses = append(l.expenses[:idx], l.expenses[idx+1:]...)
	delete(l.expByID, expenseID)
	for i := idx; i < len(l.expenses); i++ {
		l.expByID[l.expenses[i].ID] = i
	}
	return nil
}

// Expense returns the expense with the given ID.
func (l *Ledger) Expense(expenseID string) (model.Expense, error) {
	idx, ok := l.expByID[expenseID]
	if !ok {
		return model.Expense{}, fmt.Errorf("%w: expense %s", model.ErrNotFound, expenseID)
	}
	return l.expenses[idx], nil
}

// Expenses returns a copy of all expenses in recording order.
func (l *Ledger) Expenses() []model.Expense {
	return append([]model.Expense(nil), l.expenses...)
}

// QueryByRange returns the expenses dated within [start, end], ordered by date
// and then recording order.
func (l *Ledger) QueryByRange(start, end time.Time) []model.Expense {
	return FilterExpenses(l.expenses, start, end)
}

// UsesCategory reports whether any expense references the category.
func (l *Ledger) UsesCategory(categoryID string) bool {
	for _, e := range l.expenses {
		if e.Category == categoryID {
			return true
		}
	}
	return false
}

// AddIncome validates in, assigns it a fresh ID and appends it.
func (l *Ledger) AddIncome(in NewIncome) (model.Income, error) {
	if err := validateIncome(in); err != nil {
		return model.Income{}, err
	}
	rec := model.Income{
		ID:          l.incSeq.Next(),
		Date:        model.Day(in.Date),
		Source:      in.Source,
		Amount:      in.Amount,
		Description: in.Description,
	}
	l.incByID[rec.ID] = len(l.incomes)
	l.incomes = append(l.incomes, rec)
	return rec, nil
}

// EditIncome replaces every field of the income with the given ID.
func (l *Ledger) EditIncome(incomeID string, in NewIncome) (model.Income, error) {
	idx, ok := l.incByID[incomeID]
	if !ok {
		return model.Income{}, fmt.Errorf("%w: income %s", model.ErrNotFound, incomeID)
	}
	if err := validateIncome(in); err != nil {
		return model.Income{}, err
	}
	rec := model.Income{
		ID:          incomeID,
		Date:        model.Day(in.Date),
		Source:      in.Source,
		Amount:      in.Amount,
		Description: in.Description,
	}
	l.incomes[idx] = rec
	return rec, nil
}

// DeleteIncome permanently removes an income.
func (l *Ledger) DeleteIncome(incomeID string) error {
	idx, ok := l.incByID[incomeID]
	if !ok {
		return fmt.Errorf("%w: income %s", model.ErrNotFound, incomeID)
	}
	l.incomes = append(l.incomes[:idx], l.incomes[idx+1:]...)
	delete(l.incByID, incomeID)
	for i := idx; i < len(l.incomes); i++ {
		l.incByID[l.incomes[i].ID] = i
	}
	return nil
}

// Income returns the income with the given ID.
func (l *Ledger) Income(incomeID string) (model.Income, error) {
	idx, ok := l.incByID[incomeID]
	if !ok {
		return model.Income{}, fmt.Errorf("%w: income %s", model.ErrNotFound, incomeID)
	}
	return l.incomes[idx], nil
}

// Incomes returns a copy of all incomes in recording order.
func (l *Ledger) Incomes() []model.Income {
	return append([]model.Income(nil), l.incomes...)
}

// QueryIncomeByRange returns the incomes dated within [start, end].
func (l *Ledger) QueryIncomeByRange(start, end time.Time) []model.Income {
	return FilterIncomes(l.incomes, start, end)
}

// FilterExpenses selects the expenses dated within [start, end] from a slice
// in recording order and sorts them by date, keeping recording order for
// equal dates.
func FilterExpenses(expenses []model.Expense, start, end time.Time) []model.Expense {
	start, end = model.Day(start), model.Day(end)
	out := make([]model.Expense, 0)
	for _, e := range expenses {
		if !e.Date.Before(start) && !e.Date.After(end) {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

// FilterIncomes is FilterExpenses for incomes.
func FilterIncomes(incomes []model.Income, start, end time.Time) []model.Income {
	start, end = model.Day(start), model.Day(end)
	out := make([]model.Income, 0)
	for _, in := range incomes {
		if !in.Date.Before(start) && !in.Date.After(end) {
			out = append(out, in)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

func expenseFields(e model.Expense) NewExpense {
	return NewExpense{Date: e.Date, Category: e.Category, Amount: e.Amount, Description: e.Description}
}

func incomeFields(in model.Income) NewIncome {
	return NewIncome{Date: in.Date, Source: in.Source, Amount: in.Amount, Description: in.Description}
}
