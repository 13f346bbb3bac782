package preprocess

import (
	"sort"
	"strings"
)

// ImputeMedian fills empty cells of the given numeric columns with the
// column median of the non-empty cells.
func ImputeMedian(ds *Dataset, columns []string) {
	for _, name := range columns {
		idx := ds.ColumnIndex(name)
		if idx < 0 {
			continue
		}

		var values []float64
		for _, row := range ds.Rows {
			if v, ok := parseCell(row[idx]); ok {
				values = append(values, v)
			}
		}
		if len(values) == 0 {
			continue
		}

		fill := formatCell(median(values))
		for _, row := range ds.Rows {
			if strings.TrimSpace(row[idx]) == "" {
				row[idx] = fill
			}
		}
	}
}

// ImputeMode fills empty cells of the given columns with the most frequent
// non-empty value. Ties break to the lexicographically smallest value, the
// same convention as sklearn's most_frequent strategy.
func ImputeMode(ds *Dataset, columns []string) {
	for _, name := range columns {
		idx := ds.ColumnIndex(name)
		if idx < 0 {
			continue
		}

		counts := make(map[string]int)
		for _, row := range ds.Rows {
			cell := strings.TrimSpace(row[idx])
			if cell != "" {
				counts[cell]++
			}
		}
		if len(counts) == 0 {
			continue
		}

		fill := mostFrequent(counts)
		for _, row := range ds.Rows {
			if strings.TrimSpace(row[idx]) == "" {
				row[idx] = fill
			}
		}
	}
}

// DropIncompleteRows removes every row containing an empty cell.
func DropIncompleteRows(ds *Dataset) int {
	before := len(ds.Rows)
	ds.Filter(func(row []string) bool {
		for _, cell := range row {
			if strings.TrimSpace(cell) == "" {
				return false
			}
		}
		return true
	})
	return before - len(ds.Rows)
}

// ColumnMedian returns the median of a numeric column's non-empty cells.
func ColumnMedian(ds *Dataset, name string) (float64, bool) {
	idx := ds.ColumnIndex(name)
	if idx < 0 {
		return 0, false
	}
	var values []float64
	for _, row := range ds.Rows {
		if v, ok := parseCell(row[idx]); ok {
			values = append(values, v)
		}
	}
	if len(values) == 0 {
		return 0, false
	}
	return median(values), true
}

func median(values []float64) float64 {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

func mostFrequent(counts map[string]int) string {
	best := ""
	bestCount := -1
	for value, count := range counts {
		if count > bestCount || (count == bestCount && value < best) {
			best = value
			bestCount = count
		}
	}
	return best
}
