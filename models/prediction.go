package models

import "time"

// AdrPrediction is the response of POST /predict/adr. PredictedADR is on the
// original price scale, after inverting the log transform used at training.
type AdrPrediction struct {
	PredictedADR float64 `json:"predicted_adr"`
}

// CancellationPrediction is the response of POST /predict/cancellation.
// CancellationProbability is the positive-class probability scaled to a
// percentage, rounded to two decimals.
type CancellationPrediction struct {
	PredictedClass          int     `json:"predicted_class"`
	CancellationProbability float64 `json:"cancellation_probability"`
}

// CachedPrediction is the cache entry stored per scored record. Models are
// deterministic and read-only, so an entry stays valid as long as the model
// version it was produced with is still the one loaded.
type CachedPrediction struct {
	PredictionID string                  `json:"prediction_id"`
	Task         string                  `json:"task"`
	ModelVersion string                  `json:"model_version"`
	CreatedAt    time.Time               `json:"created_at"`
	Adr          *AdrPrediction          `json:"adr,omitempty"`
	Cancellation *CancellationPrediction `json:"cancellation,omitempty"`
}
