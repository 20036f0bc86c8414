package source

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Table is one rectangular sheet of raw string cells with a header row.
type Table struct {
	Path   string
	Header []string
	Rows   [][]string

	index map[string]int
}

// ReadTable loads the header and data rows from a CSV or XLSX file.
// XLSX files contribute their first sheet only.
func ReadTable(path string) (*Table, error) {
	var (
		rows [][]string
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		rows, err = readXLSXRows(path)
	default:
		rows, err = readCSVRows(path)
	}
	if err != nil {
		return nil, err
	}

	t := &Table{Path: path}
	if len(rows) > 0 {
		t.Header = rows[0]
		t.Rows = rows[1:]
	}
	t.index = make(map[string]int, len(t.Header))
	for i, name := range t.Header {
		key := normalizeColumn(name)
		if _, exists := t.index[key]; !exists {
			t.index[key] = i
		}
	}
	return t, nil
}

func readCSVRows(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // ragged rows are tolerated; cells resolve by header index
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return rows, nil
}

func readXLSXRows(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("reading %s sheet %q: %w", path, sheet, err)
	}
	return rows, nil
}

// Column resolves a column title to its index, case-insensitively.
func (t *Table) Column(name string) (int, bool) {
	i, ok := t.index[normalizeColumn(name)]
	return i, ok
}

// Missing returns the required column titles absent from the header.
func (t *Table) Missing(required ...string) []string {
	var missing []string
	for _, name := range required {
		if _, ok := t.Column(name); !ok {
			missing = append(missing, name)
		}
	}
	return missing
}

// Cell returns the trimmed cell at col, tolerating short rows.
func Cell(row []string, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[col])
}

func normalizeColumn(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
