package engine

import (
	"context"
	"fmt"

	"github.com/budgetbuddy-dev/budgetbuddy/internal/allocation"
	"github.com/budgetbuddy-dev/budgetbuddy/internal/categories"
	"github.com/budgetbuddy-dev/budgetbuddy/internal/goals"
	"github.com/budgetbuddy-dev/budgetbuddy/internal/ledger"
	"github.com/budgetbuddy-dev/budgetbuddy/internal/store"
)

// Load replaces the Book's state with what st holds. Every record is
// re-validated; on error the Book is left unchanged.
func (b *Book) Load(ctx context.Context, st store.Store) error {
	cats, err := st.LoadCategories(ctx)
	if err != nil {
		return fmt.Errorf("loading categories: %w", err)
	}
	expenses, err := st.LoadExpenses(ctx)
	if err != nil {
		return fmt.Errorf("loading expenses: %w", err)
	}
	incomes, err := st.LoadIncomes(ctx)
	if err != nil {
		return fmt.Errorf("loading incomes: %w", err)
	}
	budgets, err := st.LoadBudgets(ctx)
	if err != nil {
		return fmt.Errorf("loading budgets: %w", err)
	}
	gs, err := st.LoadGoals(ctx)
	if err != nil {
		return fmt.Errorf("loading goals: %w", err)
	}

	reg, err := categories.Restore(cats)
	if err != nil {
		return fmt.Errorf("restoring categories: %w", err)
	}
	led, err := ledger.Restore(reg, expenses, incomes)
	if err != nil {
		return fmt.Errorf("restoring ledger: %w", err)
	}
	plans, err := allocation.Restore(budgets)
	if err != nil {
		return fmt.Errorf("restoring budgets: %w", err)
	}
	tracker, err := goals.Restore(gs)
	if err != nil {
		return fmt.Errorf("restoring goals: %w", err)
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.registry, b.ledger, b.plans, b.goals = reg, led, plans, tracker
	return nil
}

// Save writes the Book's state to st.
func (b *Book) Save(ctx context.Context, st store.Store) error {
	snap := b.Snapshot()

	if err := st.SaveCategories(ctx, snap.categories); err != nil {
		return fmt.Errorf("saving categories: %w", err)
	}
	if err := st.SaveExpenses(ctx, snap.expenses); err != nil {
		return fmt.Errorf("saving expenses: %w", err)
	}
	if err := st.SaveIncomes(ctx, snap.incomes); err != nil {
		return fmt.Errorf("saving incomes: %w", err)
	}
	if err := st.SaveBudgets(ctx, snap.plans.All()); err != nil {
		return fmt.Errorf("saving budgets: %w", err)
	}
	if err := st.SaveGoals(ctx, snap.goals); err != nil {
		return fmt.Errorf("saving goals: %w", err)
	}
	return nil
}
