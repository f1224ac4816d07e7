package engine

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"

	"github.com/budgetbuddy-dev/budgetbuddy/internal/advisor"
	"github.com/budgetbuddy-dev/budgetbuddy/internal/aggregate"
	"github.com/budgetbuddy-dev/budgetbuddy/internal/goals"
	"github.com/budgetbuddy-dev/budgetbuddy/internal/model"
	"github.com/budgetbuddy-dev/budgetbuddy/internal/stats"
)

// Report gathers every analysis of one period. Sections that need a budget
// or enough data are nil when the precondition is missing.
type Report struct {
	Period      model.Period
	Summary     aggregate.Summary
	Income      aggregate.IncomeSummary
	Budget      *model.BudgetPeriod
	Progress    *advisor.Progress
	Suggestions []advisor.Suggestion
	Insights    []advisor.Insight
	Stats       *stats.ExpenseSummary
	Series      []aggregate.Window
	Trend       *stats.Trend
	Goals       []goals.Status
}

// Report computes the sections of a period report in parallel over one
// snapshot. The trend covers the last `windows` windows of granularity g
// ending with the period.
func (b *Book) Report(ctx context.Context, period model.Period, g aggregate.Granularity, windows int) (*Report, error) {
	snap := b.Snapshot()
	r := &Report{Period: period}
	start, end := period.Start(), period.End()

	if bp, ok := snap.Budget(period); ok {
		r.Budget = &bp
	}

	eg, ctx := errgroup.WithContext(ctx)

	eg.Go(func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		r.Summary = snap.MonthSummary(period)
		r.Income = snap.IncomeSummary(start, end)
		return nil
	})

	eg.Go(func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		p, err := snap.Progress(period)
		if err != nil {
			return ignore(err, model.ErrNoBudgetConfigured)
		}
		r.Progress = &p
		return nil
	})

	eg.Go(func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		s, err := snap.Suggestions(period)
		if err != nil {
			return ignore(err, model.ErrNoBudgetConfigured)
		}
		r.Suggestions = s
		return nil
	})

	eg.Go(func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		r.Insights = snap.Insights(period)
		return nil
	})

	eg.Go(func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		s, err := snap.Stats(start, end)
		if err != nil {
			return ignore(err, model.ErrEmptyInput)
		}
		r.Stats = &s
		return nil
	})

	eg.Go(func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		series, err := snap.LastWindows(end, g, windows)
		if err != nil {
			return ignore(err, model.ErrInsufficientData)
		}
		r.Series = series
		t, err := stats.ProjectTrend(stats.PointsFromWindows(series))
		if err != nil {
			return ignore(err, model.ErrInsufficientData)
		}
		r.Trend = &t
		return nil
	})

	eg.Go(func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		r.Goals = snap.GoalStatus()
		return nil
	})

	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return r, nil
}

// ignore swallows err when it is of kind target.
func ignore(err, target error) error {
	if errors.Is(err, target) {
		return nil
	}
	return err
}
