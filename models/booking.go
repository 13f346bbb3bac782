package models

// BookingRecord is one raw booking as submitted by the frontend form: a flat
// mapping from field name to value, numeric fields as numbers and categorical
// fields as strings. Keys may be missing or empty.
type BookingRecord map[string]interface{}

// PredictionRequest is the body accepted by both prediction endpoints.
type PredictionRequest struct {
	Features BookingRecord `json:"features"`
}
