package util

import (
	"os"
	"path/filepath"
	"testing"
)

func createTempFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.json")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write temp file: %v", err)
	}
	return path
}

func TestReadBookingRecordsFromJSON(t *testing.T) {
	// Arrange
	content := `[
		{
			"hotel": "Resort Hotel",
			"lead_time": 342,
			"adults": 2,
			"reservation_status_date": "2015-07-01"
		},
		{
			"hotel": "City Hotel",
			"lead_time": 12
		}
	]`
	tempFile := createTempFile(t, content)

	// Act
	records, err := ReadBookingRecordsFromJSON(tempFile)

	// Assert
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("Expected 2 records, got %d", len(records))
	}
	if records[0]["hotel"] != "Resort Hotel" {
		t.Errorf("Expected hotel 'Resort Hotel', got %v", records[0]["hotel"])
	}
	if records[0]["lead_time"] != 342.0 {
		t.Errorf("Expected lead_time 342, got %v", records[0]["lead_time"])
	}
	if records[1]["hotel"] != "City Hotel" {
		t.Errorf("Expected hotel 'City Hotel', got %v", records[1]["hotel"])
	}
}

func TestReadBookingRecordsFromJSON_InvalidJSON(t *testing.T) {
	tempFile := createTempFile(t, "{not json")

	_, err := ReadBookingRecordsFromJSON(tempFile)
	if err == nil {
		t.Fatal("Expected an error for invalid JSON")
	}
}

func TestReadBookingRecordsFromJSON_MissingFile(t *testing.T) {
	_, err := ReadBookingRecordsFromJSON(filepath.Join(t.TempDir(), "nope.json"))
	if err == nil {
		t.Fatal("Expected an error for a missing file")
	}
}

func TestReadPredictionRequestFromJSON(t *testing.T) {
	// Arrange
	content := `{"features": {"hotel": "Resort Hotel", "lead_time": 10}}`
	tempFile := createTempFile(t, content)

	// Act
	req, err := ReadPredictionRequestFromJSON(tempFile)

	// Assert
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if req.Features == nil {
		t.Fatal("Expected features to be set")
	}
	if req.Features["hotel"] != "Resort Hotel" {
		t.Errorf("Expected hotel 'Resort Hotel', got %v", req.Features["hotel"])
	}
}
