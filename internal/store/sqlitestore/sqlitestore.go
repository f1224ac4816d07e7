// Package sqlitestore keeps a budget book in a SQLite database. Amounts are
// stored as decimal text so they round-trip exactly.
package sqlitestore

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/budgetbuddy-dev/budgetbuddy/internal/allocation"
	"github.com/budgetbuddy-dev/budgetbuddy/internal/categories"
	"github.com/budgetbuddy-dev/budgetbuddy/internal/goals"
	"github.com/budgetbuddy-dev/budgetbuddy/internal/ledger"
	"github.com/budgetbuddy-dev/budgetbuddy/internal/logging"
	"github.com/budgetbuddy-dev/budgetbuddy/internal/model"
)

// Store is a SQLite-backed store.
type Store struct {
	db     *sql.DB
	logger *logging.Logger
}

// Open opens (creating if needed) the database at dbPath and migrates it.
func Open(dbPath string, logger *logging.Logger) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db, logger: logger.WithComponent(logging.ComponentStorage)}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// LoadCategories reads the categories table.
func (s *Store) LoadCategories(ctx context.Context) ([]model.Category, error) {
	return query(ctx, s, "categories",
		`SELECT id, name, type, color, icon, builtin FROM categories ORDER BY position`,
		func(rows *sql.Rows) ([]string, error) {
			rec := make([]string, 6)
			err := rows.Scan(&rec[0], &rec[1], &rec[2], &rec[3], &rec[4], &rec[5])
			return rec, err
		},
		categories.UnmarshalCategory)
}

// LoadExpenses reads the expenses table.
func (s *Store) LoadExpenses(ctx context.Context) ([]model.Expense, error) {
	return query(ctx, s, "expenses",
		`SELECT id, date, category, amount, description FROM expenses ORDER BY position`,
		scanFive, ledger.UnmarshalExpense)
}

// LoadIncomes reads the incomes table.
func (s *Store) LoadIncomes(ctx context.Context) ([]model.Income, error) {
	return query(ctx, s, "incomes",
		`SELECT id, date, source, amount, description FROM incomes ORDER BY position`,
		scanFive, ledger.UnmarshalIncome)
}

// LoadBudgets reads the budgets table.
func (s *Store) LoadBudgets(ctx context.Context) ([]model.BudgetPeriod, error) {
	return query(ctx, s, "budgets",
		`SELECT period, income, needs_pct, wants_pct, savings_pct, needs_limit, wants_limit, savings_limit
		 FROM budgets ORDER BY period`,
		func(rows *sql.Rows) ([]string, error) {
			rec := make([]string, 8)
			err := rows.Scan(&rec[0], &rec[1], &rec[2], &rec[3], &rec[4], &rec[5], &rec[6], &rec[7])
			return rec, err
		},
		allocation.UnmarshalBudget)
}

// LoadGoals reads the goals table.
func (s *Store) LoadGoals(ctx context.Context) ([]model.Goal, error) {
	return query(ctx, s, "goals",
		`SELECT id, name, target, contributed, deadline, description FROM goals ORDER BY position`,
		func(rows *sql.Rows) ([]string, error) {
			rec := make([]string, 6)
			err := rows.Scan(&rec[0], &rec[1], &rec[2], &rec[3], &rec[4], &rec[5])
			return rec, err
		},
		goals.UnmarshalGoal)
}

// SaveCategories replaces the categories table in one transaction.
func (s *Store) SaveCategories(ctx context.Context, cats []model.Category) error {
	rows := make([][]string, len(cats))
	for i, c := range cats {
		rows[i] = categories.MarshalCategory(c)
	}
	return replace(ctx, s, "categories",
		`INSERT INTO categories (id, name, type, color, icon, builtin, position) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rows, true)
}

// SaveExpenses replaces the expenses table in one transaction.
func (s *Store) SaveExpenses(ctx context.Context, expenses []model.Expense) error {
	rows := make([][]string, len(expenses))
	for i, e := range expenses {
		rows[i] = ledger.MarshalExpense(e)
	}
	return replace(ctx, s, "expenses",
		`INSERT INTO expenses (id, date, category, amount, description, position) VALUES (?, ?, ?, ?, ?, ?)`,
		rows, true)
}

// SaveIncomes replaces the incomes table in one transaction.
func (s *Store) SaveIncomes(ctx context.Context, incomes []model.Income) error {
	rows := make([][]string, len(incomes))
	for i, in := range incomes {
		rows[i] = ledger.MarshalIncome(in)
	}
	return replace(ctx, s, "incomes",
		`INSERT INTO incomes (id, date, source, amount, description, position) VALUES (?, ?, ?, ?, ?, ?)`,
		rows, true)
}

// SaveBudgets replaces the budgets table in one transaction.
func (s *Store) SaveBudgets(ctx context.Context, budgets []model.BudgetPeriod) error {
	rows := make([][]string, len(budgets))
	for i, bp := range budgets {
		rows[i] = allocation.MarshalBudget(bp)
	}
	return replace(ctx, s, "budgets",
		`INSERT INTO budgets (period, income, needs_pct, wants_pct, savings_pct, needs_limit, wants_limit, savings_limit)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rows, false)
}

// SaveGoals replaces the goals table in one transaction.
func (s *Store) SaveGoals(ctx context.Context, gs []model.Goal) error {
	rows := make([][]string, len(gs))
	for i, g := range gs {
		rows[i] = goals.MarshalGoal(g)
	}
	return replace(ctx, s, "goals",
		`INSERT INTO goals (id, name, target, contributed, deadline, description, position) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rows, true)
}

func scanFive(rows *sql.Rows) ([]string, error) {
	rec := make([]string, 5)
	err := rows.Scan(&rec[0], &rec[1], &rec[2], &rec[3], &rec[4])
	return rec, err
}

// query runs stmt and decodes each row through the collection's CSV codec,
// so both backends share one record format.
func query[T any](ctx context.Context, s *Store, table, stmt string,
	scan func(*sql.Rows) ([]string, error), decode func([]string) (T, error)) ([]T, error) {
	rows, err := s.db.QueryContext(ctx, stmt)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", table, err)
	}
	defer rows.Close()

	var out []T
	for rows.Next() {
		rec, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", table, err)
		}
		item, err := decode(rec)
		if err != nil {
			return nil, fmt.Errorf("decode %s row %d: %w", table, len(out)+1, err)
		}
		out = append(out, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s: %w", table, err)
	}
	s.logger.Debug("loaded", "table", table, logging.FieldCount, len(out))
	return out, nil
}

// replace swaps the table's contents in one transaction. With positioned
// set, each row's index is appended as the position column.
func replace(ctx context.Context, s *Store, table, insert string, rows [][]string, positioned bool) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin %s: %w", table, err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
		return fmt.Errorf("clear %s: %w", table, err)
	}

	stmt, err := tx.PrepareContext(ctx, insert)
	if err != nil {
		return fmt.Errorf("prepare %s insert: %w", table, err)
	}
	defer stmt.Close()

	for i, row := range rows {
		args := make([]any, 0, len(row)+1)
		for _, v := range row {
			args = append(args, v)
		}
		if positioned {
			args = append(args, i)
		}
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return fmt.Errorf("insert %s row %d: %w", table, i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit %s: %w", table, err)
	}
	s.logger.Debug("saved", "table", table, logging.FieldCount, len(rows))
	return nil
}
