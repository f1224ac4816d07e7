package engine

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/budgetbuddy-dev/budgetbuddy/internal/advisor"
	"github.com/budgetbuddy-dev/budgetbuddy/internal/aggregate"
	"github.com/budgetbuddy-dev/budgetbuddy/internal/allocation"
	"github.com/budgetbuddy-dev/budgetbuddy/internal/goals"
	"github.com/budgetbuddy-dev/budgetbuddy/internal/ledger"
	"github.com/budgetbuddy-dev/budgetbuddy/internal/model"
	"github.com/budgetbuddy-dev/budgetbuddy/internal/stats"
)

// Snapshot is a point-in-time copy of a Book. It never changes, so any
// number of goroutines may read it at once.
type Snapshot struct {
	categories []model.Category
	types      typeIndex
	expenses   []model.Expense
	incomes    []model.Income
	plans      *allocation.Plans
	goals      []model.Goal
	thresholds advisor.Thresholds
	today      time.Time
}

type typeIndex map[string]model.Type

func (t typeIndex) TypeOf(id string) (model.Type, bool) {
	typ, ok := t[id]
	return typ, ok
}

// Snapshot copies the Book's current state.
func (b *Book) Snapshot() *Snapshot {
	b.mu.RLock()
	defer b.mu.RUnlock()

	cats := b.registry.All()
	types := make(typeIndex, len(cats))
	for _, c := range cats {
		types[c.ID] = c.Type
	}
	return &Snapshot{
		categories: cats,
		types:      types,
		expenses:   b.ledger.Expenses(),
		incomes:    b.ledger.Incomes(),
		plans:      b.plans.Clone(),
		goals:      b.goals.All(),
		thresholds: b.thresholds,
		today:      model.Day(b.now()),
	}
}

// Today is the date the snapshot was taken.
func (s *Snapshot) Today() time.Time { return s.today }

// Categories returns every category in registration order.
func (s *Snapshot) Categories() []model.Category {
	return append([]model.Category(nil), s.categories...)
}

// CategoriesByType returns the categories of type t.
func (s *Snapshot) CategoriesByType(t model.Type) []model.Category {
	var out []model.Category
	for _, c := range s.categories {
		if c.Type == t {
			out = append(out, c)
		}
	}
	return out
}

// Category returns one category.
func (s *Snapshot) Category(id string) (model.Category, error) {
	for _, c := range s.categories {
		if c.ID == id {
			return c, nil
		}
	}
	return model.Category{}, fmt.Errorf("%w: category %q", model.ErrNotFound, id)
}

// Expenses returns every expense in recording order.
func (s *Snapshot) Expenses() []model.Expense {
	return append([]model.Expense(nil), s.expenses...)
}

// Expense returns one expense.
func (s *Snapshot) Expense(id string) (model.Expense, error) {
	for _, e := range s.expenses {
		if e.ID == id {
			return e, nil
		}
	}
	return model.Expense{}, fmt.Errorf("%w: expense %s", model.ErrNotFound, id)
}

// Incomes returns every income in recording order.
func (s *Snapshot) Incomes() []model.Income {
	return append([]model.Income(nil), s.incomes...)
}

// Income returns one income.
func (s *Snapshot) Income(id string) (model.Income, error) {
	for _, in := range s.incomes {
		if in.ID == id {
			return in, nil
		}
	}
	return model.Income{}, fmt.Errorf("%w: income %s", model.ErrNotFound, id)
}

// QueryByRange returns expenses dated within [start, end] by date.
func (s *Snapshot) QueryByRange(start, end time.Time) []model.Expense {
	return ledger.FilterExpenses(s.expenses, start, end)
}

// QueryIncomeByRange returns incomes dated within [start, end] by date.
func (s *Snapshot) QueryIncomeByRange(start, end time.Time) []model.Income {
	return ledger.FilterIncomes(s.incomes, start, end)
}

// Budget returns the plan for period.
func (s *Snapshot) Budget(period model.Period) (model.BudgetPeriod, bool) {
	return s.plans.Get(period)
}

// Budgets returns every plan ordered by period.
func (s *Snapshot) Budgets() []model.BudgetPeriod {
	return s.plans.All()
}

// SummarizeByCategory totals expenses in [start, end] per category, omitting
// zero totals.
func (s *Snapshot) SummarizeByCategory(start, end time.Time) map[string]decimal.Decimal {
	return aggregate.SummarizeByCategory(s.QueryByRange(start, end))
}

// SummarizeByType totals expenses in [start, end] per type.
func (s *Snapshot) SummarizeByType(start, end time.Time) model.TypeValues {
	return aggregate.SummarizeByType(s.QueryByRange(start, end), s.types)
}

// Summary summarizes spending in [start, end].
func (s *Snapshot) Summary(start, end time.Time) aggregate.Summary {
	return aggregate.Summarize(s.expenses, s.types, start, end)
}

// MonthSummary summarizes one period.
func (s *Snapshot) MonthSummary(period model.Period) aggregate.Summary {
	return aggregate.MonthSummary(s.expenses, s.types, period)
}

// WeekSummary summarizes the week containing day.
func (s *Snapshot) WeekSummary(day time.Time) aggregate.Summary {
	return aggregate.WeekSummary(s.expenses, s.types, day)
}

// YearSummary summarizes a calendar year as of the snapshot date.
func (s *Snapshot) YearSummary(year int) aggregate.YearSummary {
	return aggregate.SummarizeYear(s.expenses, s.types, year, s.today)
}

// IncomeSummary totals income in [start, end] by source.
func (s *Snapshot) IncomeSummary(start, end time.Time) aggregate.IncomeSummary {
	return aggregate.SummarizeIncome(s.incomes, start, end)
}

// Windowed returns the dense windowed series over [start, end].
func (s *Snapshot) Windowed(start, end time.Time, g aggregate.Granularity) ([]aggregate.Window, error) {
	return aggregate.Windowed(s.expenses, start, end, g)
}

// LastWindows returns the n windows of granularity g ending with the one
// that contains end.
func (s *Snapshot) LastWindows(end time.Time, g aggregate.Granularity, n int) ([]aggregate.Window, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: need at least one window", model.ErrInsufficientData)
	}
	start := aggregate.Shift(aggregate.Align(end, g), g, -(n - 1))
	return s.Windowed(start, end, g)
}

func (s *Snapshot) newAdvisor() *advisor.Advisor {
	return advisor.New(s.expenses, s.types, s.plans, s.thresholds)
}

// Suggestions analyzes overspending for period.
func (s *Snapshot) Suggestions(period model.Period) ([]advisor.Suggestion, error) {
	return s.newAdvisor().Analyze(period)
}

// Progress reports spending against the period's budget.
func (s *Snapshot) Progress(period model.Period) (advisor.Progress, error) {
	return s.newAdvisor().Progress(period)
}

// Insights reports spending-pattern observations for period.
func (s *Snapshot) Insights(period model.Period) []advisor.Insight {
	return s.newAdvisor().Insights(period)
}

// Stats describes the expenses in [start, end].
func (s *Snapshot) Stats(start, end time.Time) (stats.ExpenseSummary, error) {
	return stats.ExpenseStats(s.QueryByRange(start, end))
}

// Trend fits a line to the last n windows ending at end and returns it with
// the series it was fitted to.
func (s *Snapshot) Trend(end time.Time, g aggregate.Granularity, n int) (stats.Trend, []stats.Point, error) {
	windows, err := s.LastWindows(end, g, n)
	if err != nil {
		return stats.Trend{}, nil, err
	}
	points := stats.PointsFromWindows(windows)
	t, err := stats.ProjectTrend(points)
	if err != nil {
		return stats.Trend{}, points, err
	}
	return t, points, nil
}

// Goals returns every goal.
func (s *Snapshot) Goals() []model.Goal {
	return append([]model.Goal(nil), s.goals...)
}

// GoalStatus reports goal progress as of the snapshot date.
func (s *Snapshot) GoalStatus() []goals.Status {
	return goals.StatusOf(s.goals, s.today)
}
