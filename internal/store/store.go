// Package store defines the persistence collaborator the engine loads from
// and saves to, and opens the configured backend.
package store

import (
	"context"

	"github.com/budgetbuddy-dev/budgetbuddy/internal/model"
)

// Store persists every collection of a budget book. Each Save replaces the
// whole collection. Round-trips keep record IDs and exact amounts.
type Store interface {
	LoadCategories(ctx context.Context) ([]model.Category, error)
	LoadExpenses(ctx context.Context) ([]model.Expense, error)
	LoadIncomes(ctx context.Context) ([]model.Income, error)
	LoadBudgets(ctx context.Context) ([]model.BudgetPeriod, error)
	LoadGoals(ctx context.Context) ([]model.Goal, error)

	SaveCategories(ctx context.Context, cats []model.Category) error
	SaveExpenses(ctx context.Context, expenses []model.Expense) error
	SaveIncomes(ctx context.Context, incomes []model.Income) error
	SaveBudgets(ctx context.Context, budgets []model.BudgetPeriod) error
	SaveGoals(ctx context.Context, goals []model.Goal) error

	Close() error
}
