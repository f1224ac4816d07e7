package ledger

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/budgetbuddy-dev/budgetbuddy/internal/model"
)

// CSV headers for expenses.csv and incomes.csv.
const (
	ExpenseHeader = "id,date,category,amount,description"
	IncomeHeader  = "id,date,source,amount,description"
)

const (
	numFields = 5
	colID     = 0
	colDate   = 1
	colRef    = 2 // category for expenses, source for incomes
	colAmount = 3
	colDesc   = 4
)

// ReadExpenses reads all expenses from an expenses.csv reader.
func ReadExpenses(r io.Reader) ([]model.Expense, error) {
	records, err := readRows(r)
	if err != nil {
		return nil, fmt.Errorf("reading expenses CSV: %w", err)
	}
	var expenses []model.Expense
	for i, rec := range records {
		e, err := UnmarshalExpense(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		expenses = append(expenses, e)
	}
	return expenses, nil
}

// WriteExpenses writes expenses (including header).
func WriteExpenses(w io.Writer, expenses []model.Expense) error {
	rows := make([][]string, len(expenses))
	for i, e := range expenses {
		rows[i] = MarshalExpense(e)
	}
	return writeRows(w, ExpenseHeader, rows)
}

// ReadIncomes reads all incomes from an incomes.csv reader.
func ReadIncomes(r io.Reader) ([]model.Income, error) {
	records, err := readRows(r)
	if err != nil {
		return nil, fmt.Errorf("reading incomes CSV: %w", err)
	}
	var incomes []model.Income
	for i, rec := range records {
		in, err := UnmarshalIncome(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		incomes = append(incomes, in)
	}
	return incomes, nil
}

// WriteIncomes writes incomes (including header).
func WriteIncomes(w io.Writer, incomes []model.Income) error {
	rows := make([][]string, len(incomes))
	for i, in := range incomes {
		rows[i] = MarshalIncome(in)
	}
	return writeRows(w, IncomeHeader, rows)
}

// MarshalExpense converts an Expense to a CSV row.
func MarshalExpense(e model.Expense) []string {
	row := make([]string, numFields)
	row[colID] = e.ID
	row[colDate] = e.Date.Format(model.DateFormat)
	row[colRef] = e.Category
	row[colAmount] = e.Amount.StringFixed(2)
	row[colDesc] = e.Description
	return row
}

// UnmarshalExpense converts a CSV row to an Expense.
func UnmarshalExpense(record []string) (model.Expense, error) {
	if len(record) != numFields {
		return model.Expense{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}
	date, amount, err := parseCommon(record)
	if err != nil {
		return model.Expense{}, err
	}
	return model.Expense{
		ID:          record[colID],
		Date:        date,
		Category:    record[colRef],
		Amount:      amount,
		Description: record[colDesc],
	}, nil
}

// MarshalIncome converts an Income to a CSV row.
func MarshalIncome(in model.Income) []string {
	row := make([]string, numFields)
	row[colID] = in.ID
	row[colDate] = in.Date.Format(model.DateFormat)
	row[colRef] = in.Source
	row[colAmount] = in.Amount.StringFixed(2)
	row[colDesc] = in.Description
	return row
}

// UnmarshalIncome converts a CSV row to an Income.
func UnmarshalIncome(record []string) (model.Income, error) {
	if len(record) != numFields {
		return model.Income{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}
	date, amount, err := parseCommon(record)
	if err != nil {
		return model.Income{}, err
	}
	return model.Income{
		ID:          record[colID],
		Date:        date,
		Source:      record[colRef],
		Amount:      amount,
		Description: record[colDesc],
	}, nil
}

func parseCommon(record []string) (date time.Time, amount decimal.Decimal, err error) {
	date, err = model.ParseDate(record[colDate])
	if err != nil {
		return date, amount, err
	}
	amount, err = decimal.NewFromString(record[colAmount])
	if err != nil {
		return date, amount, fmt.Errorf("parsing amount %q: %w", record[colAmount], err)
	}
	return date, amount, nil
}

// readRows returns the data rows, skipping the header.
func readRows(r io.Reader) ([][]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}
	return records[1:], nil
}

func writeRows(w io.Writer, header string, rows [][]string) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(strings.Split(header, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, row := range rows {
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
