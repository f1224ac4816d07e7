// Package csvstore keeps each collection in its own CSV file under a data
// directory. Files are replaced atomically: written to a temp file, then
// renamed over the original.
package csvstore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/budgetbuddy-dev/budgetbuddy/internal/allocation"
	"github.com/budgetbuddy-dev/budgetbuddy/internal/categories"
	"github.com/budgetbuddy-dev/budgetbuddy/internal/goals"
	"github.com/budgetbuddy-dev/budgetbuddy/internal/ledger"
	"github.com/budgetbuddy-dev/budgetbuddy/internal/logging"
	"github.com/budgetbuddy-dev/budgetbuddy/internal/model"
)

// File names inside the data directory.
const (
	CategoriesFile = "categories.csv"
	ExpensesFile   = "expenses.csv"
	IncomesFile    = "incomes.csv"
	BudgetsFile    = "budgets.csv"
	GoalsFile      = "goals.csv"
)

// Store is a CSV-backed store.
type Store struct {
	dir    string
	logger *logging.Logger
}

// New returns a Store rooted at dir. The directory is created on first save.
func New(dir string, logger *logging.Logger) *Store {
	return &Store{dir: dir, logger: logger.WithComponent(logging.ComponentStorage)}
}

// Dir returns the data directory.
func (s *Store) Dir() string { return s.dir }

// LoadCategories reads categories.csv; a missing file means no categories.
func (s *Store) LoadCategories(ctx context.Context) ([]model.Category, error) {
	return load(ctx, s, CategoriesFile, categories.ReadCategories)
}

// LoadExpenses reads expenses.csv; a missing file means no expenses.
func (s *Store) LoadExpenses(ctx context.Context) ([]model.Expense, error) {
	return load(ctx, s, ExpensesFile, ledger.ReadExpenses)
}

// LoadIncomes reads incomes.csv; a missing file means no incomes.
func (s *Store) LoadIncomes(ctx context.Context) ([]model.Income, error) {
	return load(ctx, s, IncomesFile, ledger.ReadIncomes)
}

// LoadBudgets reads budgets.csv; a missing file means no budgets.
func (s *Store) LoadBudgets(ctx context.Context) ([]model.BudgetPeriod, error) {
	return load(ctx, s, BudgetsFile, allocation.ReadBudgets)
}

// LoadGoals reads goals.csv; a missing file means no goals.
func (s *Store) LoadGoals(ctx context.Context) ([]model.Goal, error) {
	return load(ctx, s, GoalsFile, goals.ReadGoals)
}

// SaveCategories atomically replaces categories.csv.
func (s *Store) SaveCategories(ctx context.Context, cats []model.Category) error {
	return save(ctx, s, CategoriesFile, len(cats), func(w io.Writer) error {
		return categories.WriteCategories(w, cats)
	})
}

// SaveExpenses atomically replaces expenses.csv.
func (s *Store) SaveExpenses(ctx context.Context, expenses []model.Expense) error {
	return save(ctx, s, ExpensesFile, len(expenses), func(w io.Writer) error {
		return ledger.WriteExpenses(w, expenses)
	})
}

// SaveIncomes atomically replaces incomes.csv.
func (s *Store) SaveIncomes(ctx context.Context, incomes []model.Income) error {
	return save(ctx, s, IncomesFile, len(incomes), func(w io.Writer) error {
		return ledger.WriteIncomes(w, incomes)
	})
}

// SaveBudgets atomically replaces budgets.csv.
func (s *Store) SaveBudgets(ctx context.Context, budgets []model.BudgetPeriod) error {
	return save(ctx, s, BudgetsFile, len(budgets), func(w io.Writer) error {
		return allocation.WriteBudgets(w, budgets)
	})
}

// SaveGoals atomically replaces goals.csv.
func (s *Store) SaveGoals(ctx context.Context, gs []model.Goal) error {
	return save(ctx, s, GoalsFile, len(gs), func(w io.Writer) error {
		return goals.WriteGoals(w, gs)
	})
}

// Close is a no-op; files are closed after every operation.
func (s *Store) Close() error { return nil }

// load reads one file. A missing file is an empty collection.
func load[T any](ctx context.Context, s *Store, name string, read func(io.Reader) ([]T, error)) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path := filepath.Join(s.dir, name)
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	items, err := read(f)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	s.logger.Debug("loaded", logging.FieldPath, path, logging.FieldCount, len(items))
	return items, nil
}

func save(ctx context.Context, s *Store, name string, n int, write func(io.Writer) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("creating data dir: %w", err)
	}

	path := filepath.Join(s.dir, name)
	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("creating %s: %w", tmp, err)
	}
	if err := write(f); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("closing %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("replacing %s: %w", path, err)
	}
	s.logger.Debug("saved", logging.FieldPath, path, logging.FieldCount, n)
	return nil
}
