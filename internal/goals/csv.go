package goals

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/budgetbuddy-dev/budgetbuddy/internal/model"
)

// Header is the CSV header for goals.csv.
const Header = "id,name,target,contributed,deadline,description"

const (
	numFields      = 6
	colID          = 0
	colName        = 1
	colTarget      = 2
	colContributed = 3
	colDeadline    = 4
	colDesc        = 5
)

// ReadGoals reads goals.csv.
func ReadGoals(r io.Reader) ([]model.Goal, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading goals CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	var goals []model.Goal
	for i, rec := range records[1:] {
		g, err := UnmarshalGoal(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		goals = append(goals, g)
	}
	return goals, nil
}

// WriteGoals writes goals.csv (including header).
func WriteGoals(w io.Writer, goals []model.Goal) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(strings.Split(Header, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, g := range goals {
		if err := cw.Write(MarshalGoal(g)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// MarshalGoal converts a Goal to a CSV row. An open-ended goal has an empty
// deadline.
func MarshalGoal(g model.Goal) []string {
	row := make([]string, numFields)
	row[colID] = g.ID
	row[colName] = g.Name
	row[colTarget] = g.Target.StringFixed(2)
	row[colContributed] = g.Contributed.StringFixed(2)
	if !g.Deadline.IsZero() {
		row[colDeadline] = g.Deadline.Format(model.DateFormat)
	}
	row[colDesc] = g.Description
	return row
}

// UnmarshalGoal converts a CSV row to a Goal.
func UnmarshalGoal(record []string) (model.Goal, error) {
	if len(record) != numFields {
		return model.Goal{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	target, err := decimal.NewFromString(record[colTarget])
	if err != nil {
		return model.Goal{}, fmt.Errorf("parsing target %q: %w", record[colTarget], err)
	}
	contributed, err := decimal.NewFromString(record[colContributed])
	if err != nil {
		return model.Goal{}, fmt.Errorf("parsing contributed %q: %w", record[colContributed], err)
	}

	var deadline time.Time
	if record[colDeadline] != "" {
		deadline, err = model.ParseDate(record[colDeadline])
		if err != nil {
			return model.Goal{}, err
		}
	}

	return model.Goal{
		ID:          record[colID],
		Name:        record[colName],
		Target:      target,
		Contributed: contributed,
		Deadline:    deadline,
		Description: record[colDesc],
	}, nil
}
