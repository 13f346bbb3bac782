package preprocess

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func smallDataset() *Dataset {
	return &Dataset{
		Columns: []string{"hotel", "lead_time", "adults", "country"},
		Rows: [][]string{
			{"Resort Hotel", "342", "2", "PRT"},
			{"City Hotel", "12", "2", "GBR"},
			{"City Hotel", "85", "1", ""},
		},
	}
}

func TestReadWriteCSV_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bookings.csv")
	original := smallDataset()

	require.NoError(t, original.WriteCSV(path))

	loaded, err := ReadCSV(path)
	require.NoError(t, err)
	assert.Equal(t, original.Columns, loaded.Columns)
	assert.Equal(t, original.Rows, loaded.Rows)
}

func TestReadCSV_MissingFile(t *testing.T) {
	_, err := ReadCSV(filepath.Join(t.TempDir(), "nope.csv"))
	assert.Error(t, err)
}

func TestDropColumns(t *testing.T) {
	ds := smallDataset()

	ds.DropColumns("country", "not_a_column")

	assert.Equal(t, []string{"hotel", "lead_time", "adults"}, ds.Columns)
	assert.Equal(t, []string{"Resort Hotel", "342", "2"}, ds.Rows[0])
}

func TestAddColumn(t *testing.T) {
	ds := smallDataset()

	err := ds.AddColumn("babies", []string{"0", "1", "0"})
	require.NoError(t, err)
	assert.Equal(t, "1", ds.Rows[1][4])

	assert.Error(t, ds.AddColumn("babies", []string{"0", "0", "0"}), "duplicate column")
	assert.Error(t, ds.AddColumn("children", []string{"0"}), "wrong length")
}

func TestNumericAndCategoricalColumns(t *testing.T) {
	ds := smallDataset()

	assert.Equal(t, []string{"lead_time", "adults"}, ds.NumericColumns())
	assert.Equal(t, []string{"hotel", "country"}, ds.CategoricalColumns())
}

func TestIsNumericColumn_IgnoresEmptyCells(t *testing.T) {
	ds := &Dataset{
		Columns: []string{"children"},
		Rows:    [][]string{{"1"}, {""}, {"0"}},
	}
	assert.True(t, ds.IsNumericColumn("children"))
}

func TestIsNumericColumn_AllEmptyIsNotNumeric(t *testing.T) {
	ds := &Dataset{
		Columns: []string{"agent"},
		Rows:    [][]string{{""}, {""}},
	}
	assert.False(t, ds.IsNumericColumn("agent"))
}

func TestFilter(t *testing.T) {
	ds := smallDataset()

	ds.Filter(func(row []string) bool { return row[0] == "City Hotel" })

	assert.Len(t, ds.Rows, 2)
}

func TestCopy_IsIndependent(t *testing.T) {
	ds := smallDataset()
	cp := ds.Copy()

	cp.Rows[0][0] = "changed"
	cp.DropColumns("country")

	assert.Equal(t, "Resort Hotel", ds.Rows[0][0])
	assert.Len(t, ds.Columns, 4)
}
