// Package engine ties the registry, ledger, plan book and goal tracker into
// one Book. Mutations are serialized under a write lock; analysis runs on an
// immutable Snapshot taken under the read lock.
package engine

import (
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/budgetbuddy-dev/budgetbuddy/internal/advisor"
	"github.com/budgetbuddy-dev/budgetbuddy/internal/allocation"
	"github.com/budgetbuddy-dev/budgetbuddy/internal/categories"
	"github.com/budgetbuddy-dev/budgetbuddy/internal/goals"
	"github.com/budgetbuddy-dev/budgetbuddy/internal/ledger"
	"github.com/budgetbuddy-dev/budgetbuddy/internal/model"
)

// Book is one independent budget: its categories, records, plans and goals.
type Book struct {
	mu         sync.RWMutex
	registry   *categories.Registry
	ledger     *ledger.Ledger
	plans      *allocation.Plans
	goals      *goals.Tracker
	thresholds advisor.Thresholds
	now        func() time.Time
}

// Option configures a Book.
type Option func(*Book)

// WithThresholds sets the advisor thresholds.
func WithThresholds(t advisor.Thresholds) Option {
	return func(b *Book) { b.thresholds = t }
}

// WithClock sets the clock used for "today".
func WithClock(now func() time.Time) Option {
	return func(b *Book) { b.now = now }
}

// New returns an empty Book seeded with the built-in categories.
func New(opts ...Option) *Book {
	reg := categories.NewRegistry()
	b := &Book{
		registry:   reg,
		ledger:     ledger.New(reg),
		plans:      allocation.NewPlans(),
		goals:      goals.NewTracker(),
		thresholds: advisor.DefaultThresholds(),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Today returns the current date per the Book's clock.
func (b *Book) Today() time.Time {
	return model.Day(b.now())
}

// RegisterCategory adds a custom category.
func (b *Book) RegisterCategory(c model.Category) (model.Category, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.registry.Register(c); err != nil {
		return model.Category{}, err
	}
	return b.registry.Resolve(c.ID)
}

// UpdateCategory changes a category's display metadata.
func (b *Book) UpdateCategory(id string, u categories.Update) (model.Category, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.registry.Update(id, u)
}

// RemoveCategory deletes a custom category no expense refers to.
func (b *Book) RemoveCategory(id string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, err := b.registry.Resolve(id); err != nil {
		return err
	}
	if b.ledger.UsesCategory(id) {
		return fmt.Errorf("%w: %s has expenses", model.ErrCategoryInUse, id)
	}
	return b.registry.Remove(id)
}

// AddExpense records an expense.
func (b *Book) AddExpense(e ledger.NewExpense) (model.Expense, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.ledger.AddExpense(e)
}

// AddExpenses records a batch of expenses. Either all are recorded or, if
// any is invalid, none.
func (b *Book) AddExpenses(batch []ledger.NewExpense) ([]model.Expense, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.checkExpenses(batch); err != nil {
		return nil, err
	}
	out := make([]model.Expense, 0, len(batch))
	for _, e := range batch {
		rec, err := b.ledger.AddExpense(e)
		if err != nil {
			return out, err
		}
		out = append(out, rec)
	}
	return out, nil
}

// CheckExpenses validates a batch without recording it.
func (b *Book) CheckExpenses(batch []ledger.NewExpense) error {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.checkExpenses(batch)
}

func (b *Book) checkExpenses(batch []ledger.NewExpense) error {
	for i, e := range batch {
		if err := b.ledger.CheckExpense(e); err != nil {
			return fmt.Errorf("expense %d: %w", i+1, err)
		}
	}
	return nil
}

// EditExpense replaces an expense.
func (b *Book) EditExpense(id string, e ledger.NewExpense) (model.Expense, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.ledger.EditExpense(id, e)
}

// DeleteExpense removes an expense.
func (b *Book) DeleteExpense(id string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.ledger.DeleteExpense(id)
}

// AddIncome records an income.
func (b *Book) AddIncome(in ledger.NewIncome) (model.Income, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.ledger.AddIncome(in)
}

// EditIncome replaces an income.
func (b *Book) EditIncome(id string, in ledger.NewIncome) (model.Income, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.ledger.EditIncome(id, in)
}

// DeleteIncome removes an income.
func (b *Book) DeleteIncome(id string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.ledger.DeleteIncome(id)
}

// SetBudget computes and installs the plan for period, replacing any
// existing one.
func (b *Book) SetBudget(period model.Period, income decimal.Decimal, split model.TypeValues) (model.BudgetPeriod, error) {
	bp, err := allocation.Compute(period, income, split)
	if err != nil {
		return model.BudgetPeriod{}, err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.plans.Set(bp)
	return bp, nil
}

// AddGoal creates a savings goal.
func (b *Book) AddGoal(g goals.NewGoal) (model.Goal, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.goals.Add(g)
}

// Contribute adds to a goal.
func (b *Book) Contribute(id string, amount decimal.Decimal) (model.Goal, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.goals.Contribute(id, amount)
}

// RemoveGoal deletes a goal.
func (b *Book) RemoveGoal(id string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.goals.Remove(id)
}
