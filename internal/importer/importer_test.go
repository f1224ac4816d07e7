package importer

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/budgetbuddy-dev/budgetbuddy/internal/model"
)

func TestLegacyParser_Parse(t *testing.T) {
	f, err := os.Open("../../testdata/legacy_expenses.csv")
	require.NoError(t, err)
	defer f.Close()

	p := &LegacyParser{}
	got, err := p.Parse(f)
	require.NoError(t, err)
	require.Len(t, got, 5)

	assert.Equal(t, model.Date(2025, 1, 1), got[0].Date)
	assert.Equal(t, "rent", got[0].Category)
	assert.Equal(t, "800.00", got[0].Amount.StringFixed(2))
	assert.Equal(t, "January rent", got[0].Description)

	// Rounded to cents.
	assert.Equal(t, "152.46", got[1].Amount.String())

	assert.Equal(t, "dining", got[2].Category)
	assert.Equal(t, "Dinner, with friends", got[2].Description)

	assert.Empty(t, got[3].Description)
}

func TestLegacyParser_ColumnOrderAndOptionalDescription(t *testing.T) {
	in := "amount,category,date\n12.5,dining,2025-02-01\n"
	got, err := (&LegacyParser{}).Parse(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "12.5", got[0].Amount.String())
	assert.Equal(t, model.Date(2025, 2, 1), got[0].Date)
	assert.Empty(t, got[0].Description)
}

func TestLegacyParser_EmptyFile(t *testing.T) {
	p := &LegacyParser{}

	got, err := p.Parse(strings.NewReader(""))
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = p.Parse(strings.NewReader("date,category,amount,description\n"))
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestLegacyParser_Errors(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"missing column", "date,amount\n2025-01-01,3\n", `no "category" column`},
		{"bad date", "date,category,amount\n01/03/2025,rent,4\n", "row 2: parsing date"},
		{"bad amount", "date,category,amount\n2025-01-03,rent,lots\n", "row 2: parsing amount"},
		{"short row", "date,category,amount\n2025-01-03,rent\n", "row 2: want 3 fields"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := (&LegacyParser{}).Parse(strings.NewReader(tt.in))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLegacyParser_Format(t *testing.T) {
	assert.Equal(t, "legacy", (&LegacyParser{}).Format())
}

func TestRegistry_GetUnknown(t *testing.T) {
	r := NewRegistry()
	assert.Nil(t, r.Get("nonexistent"))
}

func TestRegistry_CaseInsensitive(t *testing.T) {
	r := NewRegistry()
	r.Register(&LegacyParser{})
	assert.NotNil(t, r.Get("Legacy"))
	assert.NotNil(t, r.Get("LEGACY"))
	assert.Panics(t, func() { r.Register(&LegacyParser{}) })
}

func TestDefaultRegistry(t *testing.T) {
	r := DefaultRegistry()
	assert.NotNil(t, r.Get("legacy"))
	assert.Equal(t, []string{"legacy"}, r.Formats())
}

func TestScan_FindsCSVs(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(Dir(dir), 0o755))

	require.NoError(t, os.WriteFile(filepath.Join(Dir(dir), "old.csv"), []byte("data"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(Dir(dir), "other.txt"), []byte("data"), 0o644))

	files, err := Scan(dir)
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "old.csv", files[0].Name)
	assert.Equal(t, int64(4), files[0].Size)
}

func TestScan_IgnoresProcessedDir(t *testing.T) {
	dir := t.TempDir()
	processed := filepath.Join(Dir(dir), "processed")
	require.NoError(t, os.MkdirAll(processed, 0o755))

	require.NoError(t, os.WriteFile(filepath.Join(Dir(dir), "new.csv"), []byte("data"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(processed, "old.csv"), []byte("data"), 0o644))

	files, err := Scan(dir)
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "new.csv", files[0].Name)
}

func TestScan_MissingDir(t *testing.T) {
	files, err := Scan(t.TempDir())
	require.NoError(t, err)
	assert.Nil(t, files)
}

func TestParseFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "x.csv")
	require.NoError(t, os.WriteFile(path, []byte("date,category,amount\n2025-01-01,rent,bad\n"), 0o644))

	_, err := ParseFile(&LegacyParser{}, path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "x.csv: row 2")

	_, err = ParseFile(&LegacyParser{}, filepath.Join(dir, "missing.csv"))
	assert.Error(t, err)
}

func TestMarkProcessed(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(Dir(dir), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(Dir(dir), "a.csv"), []byte("data"), 0o644))

	require.NoError(t, MarkProcessed(dir, "a.csv"))

	_, err := os.Stat(filepath.Join(Dir(dir), "a.csv"))
	assert.True(t, os.IsNotExist(err))

	info, err := os.Stat(filepath.Join(dir, "import", "processed", "a.csv"))
	require.NoError(t, err)
	assert.False(t, info.IsDir())
}
