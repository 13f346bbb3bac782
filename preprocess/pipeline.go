package preprocess

import (
	"fmt"
	"log"

	"hbp-server/features"
)

// Guest count columns used by the no-guest filter.
const ADULTS_COLUMN = "adults"
const CHILDREN_COLUMN = "children"
const BABIES_COLUMN = "babies"

const RESERVATION_DATE_COLUMN = "reservation_status_date"
const RESERVATION_DATE_PREFIX = "reservation"

const IFOREST_NUM_TREES = 50
const IFOREST_CONTAMINATION = 0.1
const IFOREST_SEED = 42

// PipelineConfig describes one task's training-data preparation.
type PipelineConfig struct {
	Task                 string
	InitialDropColumns   []string
	SecondaryDropColumns []string
	TargetColumns        []string
	// ImputeMissing fills gaps with medians/modes; otherwise incomplete rows
	// are dropped.
	ImputeMissing bool
	DropFirst     bool
	DateColumn    string
	DatePrefix    string
}

// ClassificationPipelineConfig prepares data for the cancellation classifier.
func ClassificationPipelineConfig() PipelineConfig {
	return PipelineConfig{
		Task:               "cancellation",
		InitialDropColumns: []string{"company", "agent"},
		SecondaryDropColumns: []string{
			"days_in_waiting_list", "arrival_date_year", "arrival_date_month",
			"assigned_room_type", "booking_changes", "reservation_status", "country",
			"arrival_date_week_number",
		},
		TargetColumns: []string{"is_canceled", "adr"},
		ImputeMissing: false,
		DropFirst:     true,
		DateColumn:    RESERVATION_DATE_COLUMN,
		DatePrefix:    RESERVATION_DATE_PREFIX,
	}
}

// RegressionPipelineConfig prepares data for the ADR regressor.
func RegressionPipelineConfig() PipelineConfig {
	return PipelineConfig{
		Task: "adr",
		InitialDropColumns: []string{
			"is_canceled", "booking_changes", "assigned_room_type",
			"reservation_status", "agent", "company", "days_in_waiting_list",
		},
		TargetColumns: []string{"adr"},
		ImputeMissing: true,
		DropFirst:     false,
		DateColumn:    RESERVATION_DATE_COLUMN,
		DatePrefix:    RESERVATION_DATE_PREFIX,
	}
}

// PipelineResult is the encoded dataset plus everything the serving side
// needs: the ordered dummy columns and the field declarations that become
// the schema artifact.
type PipelineResult struct {
	Dataset           *Dataset
	DummyColumns      []string
	NumericDefaults   map[string]float64
	CategoricalFields []features.CategoricalField
	RowsDroppedEmpty  int
	RowsDroppedGuests int
	RowsDroppedOutlie int
}

// Pipeline runs the offline preprocessing for one task.
type Pipeline struct {
	config PipelineConfig
}

// NewPipeline constructs a Pipeline for the given config.
func NewPipeline(config PipelineConfig) *Pipeline {
	return &Pipeline{config: config}
}

// Run executes the preparation steps in training order: column drops,
// imputation or row drops, the no-guest filter, date feature extraction,
// isolation-forest outlier removal, secondary drops, one-hot encoding and
// target removal.
func (p *Pipeline) Run(input *Dataset) (*PipelineResult, error) {
	ds := input.Copy()
	result := &PipelineResult{NumericDefaults: make(map[string]float64)}

	// 1) Drop unwanted columns
	ds.DropColumns(p.config.InitialDropColumns...)

	// 2) Handle missing values
	if p.config.ImputeMissing {
		ImputeMedian(ds, ds.NumericColumns())
		ImputeMode(ds, ds.CategoricalColumns())
	} else {
		result.RowsDroppedEmpty = DropIncompleteRows(ds)
	}

	// 3) Filter out rows with no guests
	result.RowsDroppedGuests = p.filterNoGuestRows(ds)

	// 4) Extract date features
	if p.config.DateColumn != "" && ds.HasColumn(p.config.DateColumn) {
		ExtractDateFeatures(ds, p.config.DateColumn, p.config.DatePrefix)
	}

	// 5) Outlier removal on numeric predictors, excluding targets
	dropped, err := p.removeOutliers(ds)
	if err != nil {
		// The original pipeline warns and continues when the forest cannot run.
		log.Printf("[Pipeline] IsolationForest skipped: %v", err)
	}
	result.RowsDroppedOutlie = dropped

	// 6) Drop useless columns identified during training
	ds.DropColumns(p.config.SecondaryDropColumns...)

	// 7) Record numeric medians for the serving schema before encoding
	for _, name := range ds.NumericColumns() {
		if isTarget(p.config.TargetColumns, name) {
			continue
		}
		if m, ok := ColumnMedian(ds, name); ok {
			result.NumericDefaults[name] = m
		}
	}

	// 8) One-hot encode categorical variables
	categorical := excludeTargets(ds.CategoricalColumns(), p.config.TargetColumns)
	result.CategoricalFields = OneHotEncode(ds, categorical, p.config.DropFirst)

	// 9) Remove targets from the feature matrix
	ds.DropColumns(p.config.TargetColumns...)

	result.Dataset = ds
	result.DummyColumns = append([]string(nil), ds.Columns...)

	log.Printf("[Pipeline] task=%s rows=%d columns=%d (dropped: %d empty, %d no-guest, %d outliers)",
		p.config.Task, len(ds.Rows), len(ds.Columns),
		result.RowsDroppedEmpty, result.RowsDroppedGuests, result.RowsDroppedOutlie)

	return result, nil
}

// BuildSchema turns a pipeline result into the serving-time schema artifact
// consumed by the feature reconstructor.
func (p *Pipeline) BuildSchema(result *PipelineResult, modelVersion string) *features.Schema {
	// Date-derived columns carry defaults too: they are what a record
	// without the raw date falls back to at serving time.
	var numeric []features.NumericField
	for _, column := range result.DummyColumns {
		if def, ok := result.NumericDefaults[column]; ok {
			numeric = append(numeric, features.NumericField{Name: column, Default: def})
		}
	}

	schema := &features.Schema{
		ModelVersion: modelVersion,
		Columns:      result.DummyColumns,
		Numeric:      numeric,
		Categorical:  result.CategoricalFields,
	}
	if p.config.DateColumn != "" {
		schema.Date = &features.DateField{
			Name:          p.config.DateColumn,
			DerivedPrefix: p.config.DatePrefix,
		}
	}
	return schema
}

// filterNoGuestRows drops rows where adults, children and babies are all
// zero. Applied to training data only; live inference never gates on guest
// counts.
func (p *Pipeline) filterNoGuestRows(ds *Dataset) int {
	adultsIdx := ds.ColumnIndex(ADULTS_COLUMN)
	childrenIdx := ds.ColumnIndex(CHILDREN_COLUMN)
	babiesIdx := ds.ColumnIndex(BABIES_COLUMN)
	if adultsIdx < 0 || childrenIdx < 0 || babiesIdx < 0 {
		return 0
	}

	before := len(ds.Rows)
	ds.Filter(func(row []string) bool {
		adults, _ := parseCell(row[adultsIdx])
		children, _ := parseCell(row[childrenIdx])
		babies, _ := parseCell(row[babiesIdx])
		return adults != 0 || children != 0 || babies != 0
	})
	return before - len(ds.Rows)
}

func (p *Pipeline) removeOutliers(ds *Dataset) (int, error) {
	predictors := excludeTargets(ds.NumericColumns(), p.config.TargetColumns)
	if len(predictors) == 0 {
		return 0, fmt.Errorf("no numeric predictor columns")
	}
	if len(ds.Rows) < 2 {
		return 0, fmt.Errorf("not enough rows")
	}

	indices := make([]int, len(predictors))
	for i, name := range predictors {
		indices[i] = ds.ColumnIndex(name)
	}

	matrix := make([][]float64, len(ds.Rows))
	for r, row := range ds.Rows {
		point := make([]float64, len(indices))
		for j, idx := range indices {
			v, _ := parseCell(row[idx])
			point[j] = v
		}
		matrix[r] = point
	}

	forest := NewIsolationForest(IFOREST_NUM_TREES, 256, IFOREST_CONTAMINATION, IFOREST_SEED)
	if err := forest.Fit(matrix); err != nil {
		return 0, err
	}
	labels, err := forest.Predict(matrix)
	if err != nil {
		return 0, err
	}

	before := len(ds.Rows)
	kept := ds.Rows[:0]
	for r, row := range ds.Rows {
		if labels[r] != -1 {
			kept = append(kept, row)
		}
	}
	ds.Rows = kept
	return before - len(ds.Rows), nil
}

func excludeTargets(columns, targets []string) []string {
	var out []string
	for _, c := range columns {
		if !isTarget(targets, c) {
			out = append(out, c)
		}
	}
	return out
}

func isTarget(targets []string, name string) bool {
	for _, t := range targets {
		if t == name {
			return true
		}
	}
	return false
}
