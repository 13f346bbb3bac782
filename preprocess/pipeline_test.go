package preprocess

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bookingsDataset() *Dataset {
	return &Dataset{
		Columns: []string{
			"hotel", "is_canceled", "lead_time", "adults", "children", "babies",
			"company", "agent", "country", "deposit_type", "reservation_status_date", "adr",
		},
		Rows: [][]string{
			{"Resort Hotel", "0", "100", "2", "0", "0", "", "5", "PRT", "No Deposit", "2016-08-19", "80.5"},
			{"City Hotel", "1", "30", "2", "1", "0", "", "", "GBR", "Non Refund", "2015-07-06", "120"},
			{"City Hotel", "0", "10", "0", "0", "0", "", "", "PRT", "No Deposit", "2016-01-10", "50"},
			{"City Hotel", "1", "200", "1", "0", "0", "", "", "", "Non Refund", "2016-03-03", "90"},
			{"Resort Hotel", "0", "60", "2", "0", "1", "", "", "ESP", "No Deposit", "2017-02-14", "75"},
		},
	}
}

func TestPipeline_Classification(t *testing.T) {
	pipeline := NewPipeline(ClassificationPipelineConfig())

	result, err := pipeline.Run(bookingsDataset())
	require.NoError(t, err)

	// the row with an empty country is dropped, then the zero-guest row
	assert.Equal(t, 1, result.RowsDroppedEmpty)
	assert.Equal(t, 1, result.RowsDroppedGuests)
	assert.Len(t, result.Dataset.Rows, 3)

	expectedColumns := []string{
		"lead_time", "adults", "children", "babies",
		"reservation_year", "reservation_month", "reservation_day", "reservation_weekday",
		"hotel_Resort Hotel", "deposit_type_Non Refund",
	}
	assert.Equal(t, expectedColumns, result.DummyColumns)

	// kept lead_time values are 100, 30 and 60
	assert.Equal(t, 60.0, result.NumericDefaults["lead_time"])

	require.Len(t, result.CategoricalFields, 2)
	assert.Equal(t, "hotel", result.CategoricalFields[0].Name)
	assert.Equal(t, []string{"City Hotel", "Resort Hotel"}, result.CategoricalFields[0].Categories)
}

func TestPipeline_Regression(t *testing.T) {
	pipeline := NewPipeline(RegressionPipelineConfig())

	result, err := pipeline.Run(bookingsDataset())
	require.NoError(t, err)

	// missing values are imputed instead of dropped, only the zero-guest row goes
	assert.Equal(t, 0, result.RowsDroppedEmpty)
	assert.Equal(t, 1, result.RowsDroppedGuests)
	assert.Len(t, result.Dataset.Rows, 4)

	// country is kept and fully encoded, PRT imputed into the empty cell
	assert.Contains(t, result.DummyColumns, "country_PRT")
	assert.Contains(t, result.DummyColumns, "country_GBR")
	assert.Contains(t, result.DummyColumns, "country_ESP")

	// no drop-first: both hotel indicators exist
	assert.Contains(t, result.DummyColumns, "hotel_City Hotel")
	assert.Contains(t, result.DummyColumns, "hotel_Resort Hotel")

	// targets never survive into the feature matrix
	assert.NotContains(t, result.DummyColumns, "adr")
	assert.NotContains(t, result.DummyColumns, "is_canceled")
}

func TestPipeline_BuildSchema(t *testing.T) {
	pipeline := NewPipeline(ClassificationPipelineConfig())

	result, err := pipeline.Run(bookingsDataset())
	require.NoError(t, err)

	schema := pipeline.BuildSchema(result, "cancellation-test-1")
	require.NoError(t, schema.Validate())

	assert.Equal(t, "cancellation-test-1", schema.ModelVersion)
	assert.Equal(t, result.DummyColumns, schema.Columns)
	require.NotNil(t, schema.Date)
	assert.Equal(t, "reservation_status_date", schema.Date.Name)
	assert.Equal(t, "reservation", schema.Date.DerivedPrefix)

	// every numeric column carries its training median as the default
	defaults := make(map[string]float64)
	for _, nf := range schema.Numeric {
		defaults[nf.Name] = nf.Default
	}
	assert.Equal(t, 60.0, defaults["lead_time"])
	assert.Equal(t, 2016.0, defaults["reservation_year"])
}
