package preprocess

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractDateFeatures(t *testing.T) {
	ds := &Dataset{
		Columns: []string{"hotel", "reservation_status_date"},
		Rows: [][]string{
			{"Resort Hotel", "2016-08-19"}, // a Friday
			{"City Hotel", "2015-07-06"},   // a Monday
		},
	}

	ExtractDateFeatures(ds, "reservation_status_date", "reservation")

	require.Equal(t, []string{"hotel", "reservation_year", "reservation_month", "reservation_day", "reservation_weekday"}, ds.Columns)
	assert.Equal(t, []string{"Resort Hotel", "2016", "8", "19", "4"}, ds.Rows[0])
	assert.Equal(t, []string{"City Hotel", "2015", "7", "6", "0"}, ds.Rows[1])
}

func TestExtractDateFeatures_UnparseableCellLeftEmpty(t *testing.T) {
	ds := &Dataset{
		Columns: []string{"reservation_status_date"},
		Rows:    [][]string{{"garbage"}, {""}},
	}

	ExtractDateFeatures(ds, "reservation_status_date", "reservation")

	assert.Equal(t, []string{"", "", "", ""}, ds.Rows[0])
	assert.Equal(t, []string{"", "", "", ""}, ds.Rows[1])
}

func TestExtractDateFeatures_MissingColumnIsNoop(t *testing.T) {
	ds := &Dataset{
		Columns: []string{"hotel"},
		Rows:    [][]string{{"Resort Hotel"}},
	}

	ExtractDateFeatures(ds, "reservation_status_date", "reservation")

	assert.Equal(t, []string{"hotel"}, ds.Columns)
}
