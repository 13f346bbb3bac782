package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"hbp-server/features"
	"hbp-server/models"
)

// PredictionAPI is the slice of the prediction service the handler needs.
type PredictionAPI interface {
	PredictADR(record models.BookingRecord) (*models.AdrPrediction, error)
	PredictCancellation(record models.BookingRecord) (*models.CancellationPrediction, error)
}

// PredictionHandler serves the two inference endpoints. Each invocation is a
// single bounded computation with no state held across calls.
type PredictionHandler struct {
	predictionService PredictionAPI
}

func NewPredictionHandler(predictionService PredictionAPI) *PredictionHandler {
	return &PredictionHandler{predictionService: predictionService}
}

// PredictADR handles POST /predict/adr
func (h *PredictionHandler) PredictADR(w http.ResponseWriter, r *http.Request) {
	// 1) Decode the request body
	req, ok := h.decodeRequest(w, r)
	if !ok {
		return // error already written
	}

	// 2) Run reconstruction + inference
	prediction, err := h.predictionService.PredictADR(req.Features)
	if err != nil {
		h.writeError(w, "adr", err)
		return
	}

	// 3) Write JSON
	writeJSON(w, http.StatusOK, prediction)
}

// PredictCancellation handles POST /predict/cancellation
func (h *PredictionHandler) PredictCancellation(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeRequest(w, r)
	if !ok {
		return
	}

	prediction, err := h.predictionService.PredictCancellation(req.Features)
	if err != nil {
		h.writeError(w, "cancellation", err)
		return
	}

	writeJSON(w, http.StatusOK, prediction)
}

// Ping handles GET /ping
func (h *PredictionHandler) Ping(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "pong"})
}

func (h *PredictionHandler) decodeRequest(w http.ResponseWriter, r *http.Request) (*models.PredictionRequest, bool) {
	var req models.PredictionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Detail: "invalid request body: " + err.Error()})
		return nil, false
	}
	if req.Features == nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Detail: `invalid request body: expected {"features": {...}}`})
		return nil, false
	}
	return &req, true
}

// Validation failures are the caller's fault; everything else is a generic
// prediction error with the underlying message logged.
func (h *PredictionHandler) writeError(w http.ResponseWriter, task string, err error) {
	var validationErr *features.ValidationError
	if errors.As(err, &validationErr) {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Detail: validationErr.Error()})
		return
	}

	log.Printf("[PredictionHandler] Prediction failed for task=%s: %v", task, err)
	writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Detail: "prediction failed: " + err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Println("Error encoding response:", err)
	}
}
