package categories

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/budgetbuddy-dev/budgetbuddy/internal/model"
)

const (
	numFields  = 6
	colID      = 0
	colName    = 1
	colType    = 2
	colColor   = 3
	colIcon    = 4
	colBuiltin = 5
)

// ReadCategories reads categories.csv.
func ReadCategories(r io.Reader) ([]model.Category, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading categories CSV: %w", err)
	}

	if len(records) == 0 {
		return nil, nil
	}

	var cats []model.Category
	for i, rec := range records[1:] {
		c, err := UnmarshalCategory(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		cats = append(cats, c)
	}
	return cats, nil
}

// WriteCategories writes categories.csv.
func WriteCategories(w io.Writer, cats []model.Category) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write([]string{"id", "name", "type", "color", "icon", "builtin"}); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, c := range cats {
		if err := cw.Write(MarshalCategory(c)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// MarshalCategory converts a Category to a CSV row.
func MarshalCategory(c model.Category) []string {
	row := make([]string, numFields)
	row[colID] = c.ID
	row[colName] = c.Name
	row[colType] = string(c.Type)
	row[colColor] = c.Color
	row[colIcon] = c.Icon
	row[colBuiltin] = strconv.FormatBool(c.Builtin)
	return row
}

// UnmarshalCategory converts a CSV row to a Category.
func UnmarshalCategory(record []string) (model.Category, error) {
	if len(record) != numFields {
		return model.Category{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	typ, err := model.ParseType(record[colType])
	if err != nil {
		return model.Category{}, err
	}

	var builtin bool
	if record[colBuiltin] != "" {
		builtin, err = strconv.ParseBool(record[colBuiltin])
		if err != nil {
			return model.Category{}, fmt.Errorf("parsing builtin %q: %w", record[colBuiltin], err)
		}
	}

	return model.Category{
		ID:      record[colID],
		Name:    record[colName],
		Type:    typ,
		Color:   record[colColor],
		Icon:    record[colIcon],
		Builtin: builtin,
	}, nil
}
