package preprocess

import (
	"strconv"
	"strings"
	"time"
)

// ExtractDateFeatures replaces a date column with four derived columns:
// <prefix>_year, <prefix>_month, <prefix>_day and <prefix>_weekday
// (Monday=0, pandas convention). Unparseable cells yield empty derived
// cells, mirroring pandas' coerce-to-NaT behavior.
func ExtractDateFeatures(ds *Dataset, column, prefix string) {
	idx := ds.ColumnIndex(column)
	if idx < 0 {
		return
	}

	n := len(ds.Rows)
	years := make([]string, n)
	months := make([]string, n)
	days := make([]string, n)
	weekdays := make([]string, n)

	for i, row := range ds.Rows {
		t, ok := parseDateCell(row[idx])
		if !ok {
			continue
		}
		years[i] = strconv.Itoa(t.Year())
		months[i] = strconv.Itoa(int(t.Month()))
		days[i] = strconv.Itoa(t.Day())
		weekdays[i] = strconv.Itoa((int(t.Weekday()) + 6) % 7)
	}

	_ = ds.AddColumn(prefix+"_year", years)
	_ = ds.AddColumn(prefix+"_month", months)
	_ = ds.AddColumn(prefix+"_day", days)
	_ = ds.AddColumn(prefix+"_weekday", weekdays)

	ds.DropColumns(column)
}

func parseDateCell(cell string) (time.Time, bool) {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse("2006-01-02", cell); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, cell); err == nil {
		return t, true
	}
	return time.Time{}, false
}
