package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
)

// MockPredictionHandler is a mock implementation of PredictionHandlers.
type MockPredictionHandler struct{}

func (h *MockPredictionHandler) PredictADR(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"predicted_adr": 100.0}`))
}

func (h *MockPredictionHandler) PredictCancellation(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"predicted_class": 1, "cancellation_probability": 75.0}`))
}

func (h *MockPredictionHandler) Ping(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "pong"}`))
}

func TestRouter_RegisterRoutes(t *testing.T) {
	// Setup
	mockPredictionHandler := &MockPredictionHandler{}
	router := mux.NewRouter()
	appRouter := NewRouter(mockPredictionHandler, router)
	appRouter.RegisterRoutes()

	// Test Cases
	tests := []struct {
		name       string
		method     string
		path       string
		statusCode int
		response   string
	}{
		{
			name:       "Predict ADR",
			method:     "POST",
			path:       "/predict/adr",
			statusCode: http.StatusOK,
			response:   `{"predicted_adr": 100.0}`,
		},
		{
			name:       "Predict Cancellation",
			method:     "POST",
			path:       "/predict/cancellation",
			statusCode: http.StatusOK,
			response:   `{"predicted_class": 1, "cancellation_probability": 75.0}`,
		},
		{
			name:       "Ping Route",
			method:     "GET",
			path:       "/ping",
			statusCode: http.StatusOK,
			response:   `{"status": "pong"}`,
		},
		{
			name:       "Predict ADR wrong method",
			method:     "GET",
			path:       "/predict/adr",
			statusCode: http.StatusMethodNotAllowed,
		},
		{
			name:       "Invalid Route",
			method:     "GET",
			path:       "/invalid",
			statusCode: http.StatusNotFound,
		},
	}

	// Run tests
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			req := httptest.NewRequest(test.method, test.path, nil)
			rr := httptest.NewRecorder()

			router.ServeHTTP(rr, req)

			// Assert status code
			if rr.Code != test.statusCode {
				t.Errorf("Expected status %d, got %d", test.statusCode, rr.Code)
			}

			// Assert response body, if applicable
			if test.response != "" && rr.Body.String() != test.response {
				t.Errorf("Expected response %s, got %s", test.response, rr.Body.String())
			}
		})
	}
}
