package registry

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"hbp-server/api"
	"hbp-server/features"
	"hbp-server/ml"
)

func testArtifact() *ml.Artifact {
	return &ml.Artifact{
		Name:        "cancellation_model",
		Version:     "2024-06-01",
		Objective:   ml.ObjectiveBinaryLogistic,
		BaseScore:   0,
		NumFeatures: 2,
		Trees: []ml.Tree{
			{Nodes: []ml.TreeNode{
				{Feature: 0, Threshold: 1, Left: 1, Right: 2},
				{Leaf: true, Value: -0.5},
				{Leaf: true, Value: 0.5},
			}},
		},
	}
}

func TestRegistryClient_GetModelArtifact(t *testing.T) {
	// Mock server setup
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/models/cancellation_model" {
			t.Errorf("Expected endpoint '/models/cancellation_model', got '%s'", r.URL.Path)
		}
		if got := r.Header.Get("X-Api-Key"); got != "secret" {
			t.Errorf("Expected X-Api-Key 'secret', got '%s'", got)
		}
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(testArtifact())
	}))
	defer mockServer.Close()

	client := NewRegistryClient(api.NewHTTPClient(mockServer.URL))
	client.SetCredentials("secret")

	// Act
	artifact, err := client.GetModelArtifact("cancellation_model")

	// Assert
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if artifact.Version != "2024-06-01" {
		t.Errorf("Expected version 2024-06-01, got %s", artifact.Version)
	}
	if len(artifact.Trees) != 1 {
		t.Errorf("Expected 1 tree, got %d", len(artifact.Trees))
	}
}

func TestRegistryClient_GetModelArtifact_Invalid(t *testing.T) {
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		// No trees: fails artifact verification.
		json.NewEncoder(w).Encode(&ml.Artifact{Version: "x", Objective: ml.ObjectiveRegression, NumFeatures: 1})
	}))
	defer mockServer.Close()

	client := NewRegistryClient(api.NewHTTPClient(mockServer.URL))

	_, err := client.GetModelArtifact("adr_model")
	if err == nil {
		t.Fatalf("Expected an error for an invalid artifact, got nil")
	}
}

func TestRegistryClient_GetSchema(t *testing.T) {
	schema := &features.Schema{
		ModelVersion: "2024-06-01",
		Columns:      []string{"lead_time", "hotel_Resort Hotel"},
		Numeric:      []features.NumericField{{Name: "lead_time"}},
		Categorical:  []features.CategoricalField{{Name: "hotel", Categories: []string{"City Hotel", "Resort Hotel"}}},
	}

	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/schemas/cancellation_schema" {
			t.Errorf("Expected endpoint '/schemas/cancellation_schema', got '%s'", r.URL.Path)
		}
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(schema)
	}))
	defer mockServer.Close()

	client := NewRegistryClient(api.NewHTTPClient(mockServer.URL))

	got, err := client.GetSchema("cancellation_schema")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(got.Columns) != 2 {
		t.Errorf("Expected 2 columns, got %d", len(got.Columns))
	}
}

func TestRegistryClient_ServerError(t *testing.T) {
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer mockServer.Close()

	client := NewRegistryClient(api.NewHTTPClient(mockServer.URL))

	if _, err := client.GetSchema("adr_schema"); err == nil {
		t.Fatalf("Expected an error on 500, got nil")
	}
}
