package features

import (
	"encoding/json"
	"fmt"
	"os"
)

// NumericField declares a numeric input field together with the imputation
// default recorded at training time (the training median where available).
type NumericField struct {
	Name    string  `json:"name"`
	Default float64 `json:"default"`
}

// CategoricalField declares a categorical input field together with the fixed
// category set observed at training time. Values outside the set map to the
// baseline category, which has no indicator column.
type CategoricalField struct {
	Name       string   `json:"name"`
	Categories []string `json:"categories"`
}

// DateField declares the raw date field whose derived features
// (<prefix>_year, <prefix>_month, <prefix>_day, <prefix>_weekday) were
// extracted at training time.
type DateField struct {
	Name          string `json:"name"`
	DerivedPrefix string `json:"derived_prefix"`
}

// Schema is the serving-time record of what a trained model expects: the
// exact post-encoding column order plus the field declarations needed to
// rebuild it from a raw booking record. It is produced by the offline
// preprocessing pipeline alongside the model artifact.
type Schema struct {
	ModelVersion string             `json:"model_version"`
	Columns      []string           `json:"columns"`
	Numeric      []NumericField     `json:"numeric"`
	Categorical  []CategoricalField `json:"categorical"`
	Date         *DateField         `json:"date,omitempty"`
}

// LoadSchema reads and validates a schema artifact from disk.
func LoadSchema(path string) (*Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema file %q: %w", path, err)
	}
	var s Schema
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to unmarshal schema %q: %w", path, err)
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("invalid schema %q: %w", path, err)
	}
	return &s, nil
}

// Save validates the schema and writes it to disk as indented JSON.
func (s *Schema) Save(path string) error {
	if err := s.Validate(); err != nil {
		return fmt.Errorf("refusing to save invalid schema: %w", err)
	}
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal schema: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write schema file %q: %w", path, err)
	}
	return nil
}

// Validate checks the structural invariants the reconstructor relies on.
func (s *Schema) Validate() error {
	if len(s.Columns) == 0 {
		return fmt.Errorf("schema has no columns")
	}
	seen := make(map[string]struct{}, len(s.Columns))
	for _, c := range s.Columns {
		if c == "" {
			return fmt.Errorf("schema contains an empty column name")
		}
		if _, dup := seen[c]; dup {
			return fmt.Errorf("schema contains duplicate column %q", c)
		}
		seen[c] = struct{}{}
	}
	for _, cf := range s.Categorical {
		if len(cf.Categories) == 0 {
			return fmt.Errorf("categorical field %q has no categories", cf.Name)
		}
	}
	return nil
}

// DummyColumn returns the pandas-style indicator column name for a
// categorical field value, e.g. ("hotel", "Resort Hotel") -> "hotel_Resort Hotel".
func DummyColumn(field, value string) string {
	return field + "_" + value
}
