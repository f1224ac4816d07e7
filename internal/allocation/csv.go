package allocation

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/shopspring/decimal"

	"github.com/budgetbuddy-dev/budgetbuddy/internal/model"
)

const (
	numFields    = 8
	colPeriod    = 0
	colIncome    = 1
	colNeedsPct  = 2
	colWantsPct  = 3
	colSavePct   = 4
	colNeedsLim  = 5
	colWantsLim  = 6
	colSavingLim = 7
)

// ReadBudgets reads budgets.csv.
func ReadBudgets(r io.Reader) ([]model.BudgetPeriod, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading budgets CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	var budgets []model.BudgetPeriod
	for i, rec := range records[1:] {
		bp, err := UnmarshalBudget(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		budgets = append(budgets, bp)
	}
	return budgets, nil
}

// WriteBudgets writes budgets.csv.
func WriteBudgets(w io.Writer, budgets []model.BudgetPeriod) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	header := []string{"period", "income", "needs_pct", "wants_pct", "savings_pct", "needs_limit", "wants_limit", "savings_limit"}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, bp := range budgets {
		if err := cw.Write(MarshalBudget(bp)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// MarshalBudget converts a BudgetPeriod to a CSV row.
func MarshalBudget(bp model.BudgetPeriod) []string {
	row := make([]string, numFields)
	row[colPeriod] = bp.Period.String()
	row[colIncome] = bp.Income.String()
	row[colNeedsPct] = bp.Split.Needs.String()
	row[colWantsPct] = bp.Split.Wants.String()
	row[colSavePct] = bp.Split.Savings.String()
	row[colNeedsLim] = bp.Limits.Needs.StringFixed(2)
	row[colWantsLim] = bp.Limits.Wants.StringFixed(2)
	row[colSavingLim] = bp.Limits.Savings.StringFixed(2)
	return row
}

// UnmarshalBudget converts a CSV row to a BudgetPeriod. Limits are read as
// written; Restore recomputes them.
func UnmarshalBudget(record []string) (model.BudgetPeriod, error) {
	if len(record) != numFields {
		return model.BudgetPeriod{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	period, err := model.ParsePeriod(record[colPeriod])
	if err != nil {
		return model.BudgetPeriod{}, err
	}

	var d [numFields]decimal.Decimal
	names := [numFields]string{"", "income", "needs_pct", "wants_pct", "savings_pct", "needs_limit", "wants_limit", "savings_limit"}
	for col := colIncome; col < numFields; col++ {
		d[col], err = decimal.NewFromString(record[col])
		if err != nil {
			return model.BudgetPeriod{}, fmt.Errorf("parsing %s %q: %w", names[col], record[col], err)
		}
	}

	return model.BudgetPeriod{
		Period: period,
		Income: d[colIncome],
		Split:  model.TypeValues{Needs: d[colNeedsPct], Wants: d[colWantsPct], Savings: d[colSavePct]},
		Limits: model.TypeValues{Needs: d[colNeedsLim], Wants: d[colWantsLim], Savings: d[colSavingLim]},
	}, nil
}
