package features

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"hbp-server/models"
)

// MIN_RESERVATION_YEAR is the lower bound of the accepted
// reservation_status_date range. Dates before it, or after the next calendar
// year, are rejected instead of being silently coerced.
const MIN_RESERVATION_YEAR = 1990

// ValidationError reports a raw field value that cannot be turned into a
// feature. Handlers surface it as a client error rather than a crash.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid value for field %q: %s", e.Field, e.Reason)
}

// Reconstructor transforms one raw booking record into the exact ordered
// feature vector the trained model bound to its schema expects.
type Reconstructor struct {
	schema   *Schema
	colIndex map[string]int
}

// NewReconstructor builds a Reconstructor for the given schema.
func NewReconstructor(schema *Schema) *Reconstructor {
	colIndex := make(map[string]int, len(schema.Columns))
	for i, c := range schema.Columns {
		colIndex[c] = i
	}
	return &Reconstructor{schema: schema, colIndex: colIndex}
}

// Schema returns the schema this reconstructor is bound to.
func (r *Reconstructor) Schema() *Schema {
	return r.schema
}

// Reconstruct maps a raw record into a vector aligned to the schema column
// order. Missing numeric fields take the schema default, unknown categorical
// values activate no indicator, and columns the record cannot produce stay 0.
// The only failure modes are non-coercible numerics and out-of-range dates,
// both returned as *ValidationError.
func (r *Reconstructor) Reconstruct(record models.BookingRecord) ([]float64, error) {
	vec := make([]float64, len(r.schema.Columns))

	for _, nf := range r.schema.Numeric {
		idx, declared := r.colIndex[nf.Name]
		if !declared {
			continue
		}
		raw, present := record[nf.Name]
		if !present || isEmpty(raw) {
			vec[idx] = nf.Default
			continue
		}
		v, err := coerceFloat(raw)
		if err != nil {
			return nil, &ValidationError{Field: nf.Name, Reason: err.Error()}
		}
		vec[idx] = v
	}

	for _, cf := range r.schema.Categorical {
		raw, present := record[cf.Name]
		if !present || isEmpty(raw) {
			continue
		}
		value, ok := raw.(string)
		if !ok {
			continue
		}
		if !containsCategory(cf.Categories, value) {
			// Unknown category: baseline, no indicator set.
			continue
		}
		if idx, ok := r.colIndex[DummyColumn(cf.Name, value)]; ok {
			vec[idx] = 1
		}
	}

	if r.schema.Date != nil {
		if err := r.applyDateFeatures(record, vec); err != nil {
			return nil, err
		}
	}

	return vec, nil
}

func (r *Reconstructor) applyDateFeatures(record models.BookingRecord, vec []float64) error {
	df := r.schema.Date
	raw, present := record[df.Name]
	if !present || isEmpty(raw) {
		// Derived columns stay at zero.
		return nil
	}
	value, ok := raw.(string)
	if !ok {
		return &ValidationError{Field: df.Name, Reason: "expected a date string"}
	}

	t, err := parseDate(value)
	if err != nil {
		return &ValidationError{Field: df.Name, Reason: fmt.Sprintf("not a valid date: %q", value)}
	}

	year := t.Year()
	if year < MIN_RESERVATION_YEAR || year > time.Now().Year()+1 {
		return &ValidationError{
			Field:  df.Name,
			Reason: fmt.Sprintf("year %d outside the accepted range [%d, %d]", year, MIN_RESERVATION_YEAR, time.Now().Year()+1),
		}
	}

	r.setColumn(vec, df.DerivedPrefix+"_year", float64(year))
	r.setColumn(vec, df.DerivedPrefix+"_month", float64(int(t.Month())))
	r.setColumn(vec, df.DerivedPrefix+"_day", float64(t.Day()))
	// pandas weekday convention: Monday=0 .. Sunday=6.
	r.setColumn(vec, df.DerivedPrefix+"_weekday", float64((int(t.Weekday())+6)%7))
	return nil
}

func (r *Reconstructor) setColumn(vec []float64, column string, value float64) {
	if idx, ok := r.colIndex[column]; ok {
		vec[idx] = value
	}
}

func parseDate(value string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, value)
}

func coerceFloat(raw interface{}) (float64, error) {
	switch v := raw.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case json.Number:
		return v.Float64()
	case bool:
		if v {
			return 1, nil
		}
		return 0, nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, fmt.Errorf("cannot coerce %q to a number", v)
		}
		return f, nil
	default:
		return 0, fmt.Errorf("cannot coerce value of type %T to a number", raw)
	}
}

func isEmpty(raw interface{}) bool {
	if raw == nil {
		return true
	}
	if s, ok := raw.(string); ok {
		return strings.TrimSpace(s) == ""
	}
	return false
}

func containsCategory(categories []string, value string) bool {
	for _, c := range categories {
		if c == value {
			return true
		}
	}
	return false
}
