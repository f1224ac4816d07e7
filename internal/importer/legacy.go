package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/budgetbuddy-dev/budgetbuddy/internal/ledger"
	"github.com/budgetbuddy-dev/budgetbuddy/internal/model"
)

// LegacyParser reads the expenses.csv written by the earlier BudgetBuddy
// script: a header row naming date, category, amount and description in any
// order, ISO dates and float amounts.
type LegacyParser struct{}

// description is optional.
var legacyRequired = []string{"date", "category", "amount"}

// Format returns the parser name.
func (p *LegacyParser) Format() string { return "legacy" }

// Parse reads a legacy export. Amounts are rounded to cents and category
// names are lower-cased to match category IDs.
func (p *LegacyParser) Parse(r io.Reader) ([]ledger.NewExpense, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading legacy CSV header: %w", err)
	}
	cols, err := legacyIndex(header)
	if err != nil {
		return nil, err
	}

	var out []ledger.NewExpense
	for row := 2; ; row++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading legacy CSV: %w", err)
		}
		if len(rec) < len(header) {
			return nil, fmt.Errorf("row %d: want %d fields, got %d", row, len(header), len(rec))
		}
		e, err := parseLegacyRow(rec, cols)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", row, err)
		}
		out = append(out, e)
	}
	return out, nil
}

func legacyIndex(header []string) (map[string]int, error) {
	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, want := range legacyRequired {
		if _, ok := cols[want]; !ok {
			return nil, fmt.Errorf("%w: legacy CSV has no %q column", model.ErrMissingField, want)
		}
	}
	return cols, nil
}

func parseLegacyRow(rec []string, cols map[string]int) (ledger.NewExpense, error) {
	d, err := model.ParseDate(strings.TrimSpace(rec[cols["date"]]))
	if err != nil {
		return ledger.NewExpense{}, err
	}

	raw := strings.TrimSpace(rec[cols["amount"]])
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return ledger.NewExpense{}, fmt.Errorf("parsing amount %q: %w", raw, model.ErrInvalidAmount)
	}

	e := ledger.NewExpense{
		Date:     d,
		Category: strings.ToLower(strings.TrimSpace(rec[cols["category"]])),
		Amount:   amount.Round(2),
	}
	if i, ok := cols["description"]; ok {
		e.Description = strings.TrimSpace(rec[i])
		// pandas writes missing strings as "nan".
		if e.Description == "nan" {
			e.Description = ""
		}
	}
	return e, nil
}
