package preprocess

import (
	"sort"
	"strings"

	"hbp-server/features"
)

// OneHotEncode replaces the given categorical columns with binary indicator
// columns using pandas get_dummies semantics: remaining columns keep their
// order, indicator columns are appended grouped per source column, category
// values sorted, named "<column>_<value>". With dropFirst the first sorted
// category of each column gets no indicator and becomes the baseline.
// Empty cells activate no indicator. The observed category sets are
// returned for the serving schema.
func OneHotEncode(ds *Dataset, columns []string, dropFirst bool) []features.CategoricalField {
	var fields []features.CategoricalField

	for _, name := range columns {
		idx := ds.ColumnIndex(name)
		if idx < 0 {
			continue
		}

		categories := observedCategories(ds, idx)
		if len(categories) == 0 {
			ds.DropColumns(name)
			continue
		}

		fields = append(fields, features.CategoricalField{Name: name, Categories: categories})

		encoded := categories
		if dropFirst {
			encoded = categories[1:]
		}

		cells := ds.Column(name)
		ds.DropColumns(name)
		for _, category := range encoded {
			indicator := make([]string, len(cells))
			for i, cell := range cells {
				if strings.TrimSpace(cell) == category {
					indicator[i] = "1"
				} else {
					indicator[i] = "0"
				}
			}
			_ = ds.AddColumn(features.DummyColumn(name, category), indicator)
		}
	}

	return fields
}

func observedCategories(ds *Dataset, idx int) []string {
	seen := make(map[string]struct{})
	for _, row := range ds.Rows {
		cell := strings.TrimSpace(row[idx])
		if cell == "" {
			continue
		}
		seen[cell] = struct{}{}
	}
	categories := make([]string, 0, len(seen))
	for c := range seen {
		categories = append(categories, c)
	}
	sort.Strings(categories)
	return categories
}
