package models

// ErrorResponse is the JSON error body returned by the prediction endpoints.
type ErrorResponse struct {
	Detail string `json:"detail"`
}
