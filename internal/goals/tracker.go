// Package goals tracks savings goals and contributions toward them.
package goals

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/budgetbuddy-dev/budgetbuddy/internal/id"
	"github.com/budgetbuddy-dev/budgetbuddy/internal/model"
)

// NewGoal holds the caller-supplied fields of a goal.
type NewGoal struct {
	Name        string
	Target      decimal.Decimal
	Contributed decimal.Decimal // optional starting balance, clamped to Target
	Deadline    time.Time       // zero for no deadline
	Description string
}

// Tracker holds goals in creation order.
type Tracker struct {
	goals []model.Goal
	byID  map[string]int
	seq   *id.Sequence
}

// NewTracker returns an empty Tracker.
func NewTracker() *Tracker {
	return &Tracker{byID: make(map[string]int), seq: id.NewSequence(id.GoalPrefix)}
}

// Restore rebuilds a Tracker from persisted goals.
func Restore(goals []model.Goal) (*Tracker, error) {
	t := NewTracker()
	seqs := make(map[string]int, len(goals))
	sorted := append([]model.Goal(nil), goals...)
	for _, g := range sorted {
		seq, err := t.seq.Observe(g.ID)
		if err != nil {
			return nil, fmt.Errorf("restoring goal: %w", err)
		}
		if _, dup := seqs[g.ID]; dup {
			return nil, fmt.Errorf("%w: goal %s", model.ErrDuplicateKey, g.ID)
		}
		seqs[g.ID] = seq
		if err := validate(g.Name, g.Target, g.Contributed); err != nil {
			return nil, fmt.Errorf("restoring goal %s: %w", g.ID, err)
		}
	}
	sort.SliceStable(sorted, func(i, j int) bool { return seqs[sorted[i].ID] < seqs[sorted[j].ID] })
	for _, g := range sorted {
		g.Contributed = clamp(g.Contributed, g.Target)
		t.byID[g.ID] = len(t.goals)
		t.goals = append(t.goals, g)
	}
	return t, nil
}

func validate(name string, target, contributed decimal.Decimal) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: goal name is empty", model.ErrMissingField)
	}
	if !target.IsPositive() || !model.HasCents(target) {
		return fmt.Errorf("%w: target %s must be positive with at most 2 decimals", model.ErrInvalidAmount, target)
	}
	if contributed.IsNegative() || !model.HasCents(contributed) {
		return fmt.Errorf("%w: contributed %s", model.ErrInvalidAmount, contributed)
	}
	return nil
}

func clamp(contributed, target decimal.Decimal) decimal.Decimal {
	if contributed.GreaterThan(target) {
		return target
	}
	return contributed
}

// Add creates a goal.
func (t *Tracker) Add(g NewGoal) (model.Goal, error) {
	if err := validate(g.Name, g.Target, g.Contributed); err != nil {
		return model.Goal{}, err
	}
	goal := model.Goal{
		ID:          t.seq.Next(),
		Name:        strings.TrimSpace(g.Name),
		Target:      g.Target,
		Contributed: clamp(g.Contributed, g.Target),
		Description: g.Description,
	}
	if !g.Deadline.IsZero() {
		goal.Deadline = model.Day(g.Deadline)
	}
	t.byID[goal.ID] = len(t.goals)
	t.goals = append(t.goals, goal)
	return goal, nil
}

// Contribute adds amount to a goal. Contributions past the target saturate
// at the target.
func (t *Tracker) Contribute(goalID string, amount decimal.Decimal) (model.Goal, error) {
	if !amount.IsPositive() || !model.HasCents(amount) {
		return model.Goal{}, fmt.Errorf("%w: contribution %s must be positive", model.ErrInvalidAmount, amount)
	}
	idx, ok := t.byID[goalID]
	if !ok {
		return model.Goal{}, fmt.Errorf("%w: goal %s", model.ErrNotFound, goalID)
	}
	g := &t.goals[idx]
	g.Contributed = clamp(g.Contributed.Add(amount), g.Target)
	return *g, nil
}

// Goal returns the goal with the given ID.
func (t *Tracker) Goal(goalID string) (model.Goal, error) {
	idx, ok := t.byID[goalID]
	if !ok {
		return model.Goal{}, fmt.Errorf("%w: goal %s", model.ErrNotFound, goalID)
	}
	return t.goals[idx], nil
}

// All returns every goal in creation order.
func (t *Tracker) All() []model.Goal {
	return append([]model.Goal(nil), t.goals...)
}

// Remove deletes a goal.
func (t *Tracker) Remove(goalID string) error {
	idx, ok := t.byID[goalID]
	if !ok {
		return fmt.Errorf("%w: goal %s", model.ErrNotFound, goalID)
	}
	t.goals = append(t.goals[:idx], t.goals[idx+1:]...)
	delete(t.byID, goalID)
	for i := idx; i < len(t.goals); i++ {
		t.byID[t.goals[i].ID] = i
	}
	return nil
}

// Progress returns contributed / target in [0, 1].
func Progress(g model.Goal) float64 {
	if !g.Target.IsPositive() {
		return 0
	}
	r := g.Contributed.Div(g.Target).InexactFloat64()
	return math.Min(1, math.Max(0, r))
}

// Status is a goal's progress as of a date.
type Status struct {
	Goal      model.Goal
	Percent   float64
	Remaining decimal.Decimal
	Complete  bool
	DaysLeft  int  // negative once the deadline has passed
	HasDue    bool // false when the goal has no deadline
}

// Status reports every goal's progress as of asOf.
func (t *Tracker) Status(asOf time.Time) []Status {
	return StatusOf(t.goals, asOf)
}

// StatusOf reports progress for goals as of asOf.
func StatusOf(goals []model.Goal, asOf time.Time) []Status {
	day := model.Day(asOf)
	out := make([]Status, 0, len(goals))
	for _, g := range goals {
		s := Status{
			Goal:      g,
			Percent:   Progress(g) * 100,
			Remaining: g.Remaining(),
			Complete:  g.Complete(),
		}
		if !g.Deadline.IsZero() {
			s.HasDue = true
			s.DaysLeft = int(g.Deadline.Sub(day).Hours() / 24)
		}
		out = append(out, s)
	}
	return out
}
