package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"hbp-server/features"
	"hbp-server/models"
)

// stubPredictionService returns canned results or errors.
type stubPredictionService struct {
	adr             *models.AdrPrediction
	adrErr          error
	cancellation    *models.CancellationPrediction
	cancellationErr error
}

func (s *stubPredictionService) PredictADR(record models.BookingRecord) (*models.AdrPrediction, error) {
	return s.adr, s.adrErr
}

func (s *stubPredictionService) PredictCancellation(record models.BookingRecord) (*models.CancellationPrediction, error) {
	return s.cancellation, s.cancellationErr
}

func TestPredictADR_Success(t *testing.T) {
	// Setup
	handler := NewPredictionHandler(&stubPredictionService{
		adr: &models.AdrPrediction{PredictedADR: 101.55},
	})

	req := httptest.NewRequest("POST", "/predict/adr", strings.NewReader(`{"features": {"hotel": "Resort Hotel"}}`))
	rr := httptest.NewRecorder()

	// Act
	handler.PredictADR(rr, req)

	// Assert
	if rr.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rr.Code)
	}
	var body map[string]float64
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if body["predicted_adr"] != 101.55 {
		t.Errorf("Expected predicted_adr 101.55, got %f", body["predicted_adr"])
	}
}

func TestPredictCancellation_Success(t *testing.T) {
	// Setup
	handler := NewPredictionHandler(&stubPredictionService{
		cancellation: &models.CancellationPrediction{PredictedClass: 1, CancellationProbability: 88.08},
	})

	req := httptest.NewRequest("POST", "/predict/cancellation", strings.NewReader(`{"features": {"lead_time": 150}}`))
	rr := httptest.NewRecorder()

	// Act
	handler.PredictCancellation(rr, req)

	// Assert
	if rr.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rr.Code)
	}
	var body struct {
		PredictedClass          int     `json:"predicted_class"`
		CancellationProbability float64 `json:"cancellation_probability"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if body.PredictedClass != 1 {
		t.Errorf("Expected predicted_class 1, got %d", body.PredictedClass)
	}
	if body.CancellationProbability != 88.08 {
		t.Errorf("Expected cancellation_probability 88.08, got %f", body.CancellationProbability)
	}
}

func TestPredictADR_InvalidBody(t *testing.T) {
	handler := NewPredictionHandler(&stubPredictionService{})

	tests := []struct {
		name string
		body string
	}{
		{"not json", "{not json"},
		{"missing features", `{"something": "else"}`},
		{"empty body", ""},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/predict/adr", strings.NewReader(test.body))
			rr := httptest.NewRecorder()

			handler.PredictADR(rr, req)

			if rr.Code != http.StatusBadRequest {
				t.Errorf("Expected status 400, got %d", rr.Code)
			}
			var body models.ErrorResponse
			if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
				t.Fatalf("Failed to unmarshal error response: %v", err)
			}
			if body.Detail == "" {
				t.Error("Expected a non-empty detail message")
			}
		})
	}
}

func TestPredictADR_ValidationErrorIsBadRequest(t *testing.T) {
	handler := NewPredictionHandler(&stubPredictionService{
		adrErr: &features.ValidationError{Field: "lead_time", Reason: "cannot coerce \"ninety\" to a number"},
	})

	req := httptest.NewRequest("POST", "/predict/adr", strings.NewReader(`{"features": {"lead_time": "ninety"}}`))
	rr := httptest.NewRecorder()

	handler.PredictADR(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("Expected status 400, got %d", rr.Code)
	}
	var body models.ErrorResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("Failed to unmarshal error response: %v", err)
	}
	if !strings.Contains(body.Detail, "lead_time") {
		t.Errorf("Expected detail to name the field, got %q", body.Detail)
	}
}

func TestPredictCancellation_InternalError(t *testing.T) {
	handler := NewPredictionHandler(&stubPredictionService{
		cancellationErr: errors.New("model exploded"),
	})

	req := httptest.NewRequest("POST", "/predict/cancellation", strings.NewReader(`{"features": {}}`))
	rr := httptest.NewRecorder()

	handler.PredictCancellation(rr, req)

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("Expected status 500, got %d", rr.Code)
	}
}

func TestPing(t *testing.T) {
	handler := NewPredictionHandler(&stubPredictionService{})

	req := httptest.NewRequest("GET", "/ping", nil)
	rr := httptest.NewRecorder()

	handler.Ping(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rr.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if body["status"] != "pong" {
		t.Errorf("Expected status 'pong', got %q", body["status"])
	}
}
