package preprocess

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Dataset is a column-ordered table of raw cell values, the working
// representation of a bookings CSV inside the preprocessing pipeline.
// Empty cells stand for missing values.
type Dataset struct {
	Columns []string
	Rows    [][]string
}

// ReadCSV loads a dataset from a CSV file with a header row.
func ReadCSV(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %q: %w", path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse CSV %q: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("CSV %q has no header row", path)
	}

	return &Dataset{Columns: records[0], Rows: records[1:]}, nil
}

// WriteCSV writes the dataset to a CSV file with a header row.
func (ds *Dataset) WriteCSV(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %q: %w", path, err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	if err := writer.Write(ds.Columns); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, row := range ds.Rows {
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}
	writer.Flush()
	return writer.Error()
}

// Copy returns a deep copy of the dataset.
func (ds *Dataset) Copy() *Dataset {
	columns := make([]string, len(ds.Columns))
	copy(columns, ds.Columns)
	rows := make([][]string, len(ds.Rows))
	for i, row := range ds.Rows {
		rows[i] = make([]string, len(row))
		copy(rows[i], row)
	}
	return &Dataset{Columns: columns, Rows: rows}
}

// ColumnIndex returns the index of a column, or -1 when absent.
func (ds *Dataset) ColumnIndex(name string) int {
	for i, c := range ds.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// HasColumn reports whether the column exists.
func (ds *Dataset) HasColumn(name string) bool {
	return ds.ColumnIndex(name) >= 0
}

// Column returns a copy of the column's cells.
func (ds *Dataset) Column(name string) []string {
	idx := ds.ColumnIndex(name)
	if idx < 0 {
		return nil
	}
	values := make([]string, len(ds.Rows))
	for i, row := range ds.Rows {
		values[i] = row[idx]
	}
	return values
}

// AddColumn appends a column. The value count must match the row count.
func (ds *Dataset) AddColumn(name string, values []string) error {
	if len(values) != len(ds.Rows) {
		return fmt.Errorf("column %q has %d values for %d rows", name, len(values), len(ds.Rows))
	}
	if ds.HasColumn(name) {
		return fmt.Errorf("column %q already exists", name)
	}
	ds.Columns = append(ds.Columns, name)
	for i := range ds.Rows {
		ds.Rows[i] = append(ds.Rows[i], values[i])
	}
	return nil
}

// DropColumns removes the named columns, silently ignoring absent ones.
func (ds *Dataset) DropColumns(names ...string) {
	drop := make(map[string]struct{}, len(names))
	for _, n := range names {
		drop[n] = struct{}{}
	}

	keep := make([]int, 0, len(ds.Columns))
	columns := make([]string, 0, len(ds.Columns))
	for i, c := range ds.Columns {
		if _, gone := drop[c]; gone {
			continue
		}
		keep = append(keep, i)
		columns = append(columns, c)
	}

	for r, row := range ds.Rows {
		next := make([]string, len(keep))
		for j, i := range keep {
			next[j] = row[i]
		}
		ds.Rows[r] = next
	}
	ds.Columns = columns
}

// Filter keeps only the rows for which keep returns true.
func (ds *Dataset) Filter(keep func(row []string) bool) {
	kept := ds.Rows[:0]
	for _, row := range ds.Rows {
		if keep(row) {
			kept = append(kept, row)
		}
	}
	ds.Rows = kept
}

// IsNumericColumn reports whether every non-empty cell of the column parses
// as a number and at least one cell is non-empty.
func (ds *Dataset) IsNumericColumn(name string) bool {
	idx := ds.ColumnIndex(name)
	if idx < 0 {
		return false
	}
	nonEmpty := 0
	for _, row := range ds.Rows {
		cell := strings.TrimSpace(row[idx])
		if cell == "" {
			continue
		}
		nonEmpty++
		if _, err := strconv.ParseFloat(cell, 64); err != nil {
			return false
		}
	}
	return nonEmpty > 0
}

// NumericColumns returns the columns whose cells all parse as numbers.
func (ds *Dataset) NumericColumns() []string {
	var cols []string
	for _, c := range ds.Columns {
		if ds.IsNumericColumn(c) {
			cols = append(cols, c)
		}
	}
	return cols
}

// CategoricalColumns returns the columns that are not numeric.
func (ds *Dataset) CategoricalColumns() []string {
	var cols []string
	for _, c := range ds.Columns {
		if !ds.IsNumericColumn(c) {
			cols = append(cols, c)
		}
	}
	return cols
}

func parseCell(cell string) (float64, bool) {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(cell, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func formatCell(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
