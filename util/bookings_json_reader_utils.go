package util

import (
	"encoding/json"
	"fmt"
	"os"

	"hbp-server/models"
)

// ReadBookingRecordsFromJSON loads a slice of raw booking records from JSON
// on disk.
func ReadBookingRecordsFromJSON(filePath string) ([]models.BookingRecord, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %q: %w", filePath, err)
	}
	var records []models.BookingRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to unmarshal booking records: %w", err)
	}
	return records, nil
}

// ReadPredictionRequestFromJSON loads a single PredictionRequest from JSON
// on disk.
func ReadPredictionRequestFromJSON(filePath string) (*models.PredictionRequest, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %q: %w", filePath, err)
	}
	var req models.PredictionRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("failed to unmarshal PredictionRequest: %w", err)
	}
	return &req, nil
}
