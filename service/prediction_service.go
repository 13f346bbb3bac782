package services

import (
	"fmt"
	"log"
	"math"
	"time"

	"github.com/google/uuid"

	redisdao "hbp-server/dao/redis"
	"hbp-server/features"
	"hbp-server/ml"
	"hbp-server/models"
)

const TASK_ADR = "adr"
const TASK_CANCELLATION = "cancellation"

// PredictionService binds each task's feature reconstructor to its trained
// model and answers predictions. Both predictors are loaded once at startup
// and shared read-only; every call is stateless.
type PredictionService struct {
	adrReconstructor          *features.Reconstructor
	cancellationReconstructor *features.Reconstructor
	adrPredictor              *ml.Predictor
	cancellationPredictor     *ml.Predictor
	predictionDao             *redisdao.RedisPredictionDAO
}

// NewPredictionService constructs a PredictionService with its model and
// cache dependencies.
func NewPredictionService(
	adrReconstructor *features.Reconstructor,
	cancellationReconstructor *features.Reconstructor,
	adrPredictor *ml.Predictor,
	cancellationPredictor *ml.Predictor,
	predictionDao *redisdao.RedisPredictionDAO,
) *PredictionService {
	return &PredictionService{
		adrReconstructor:          adrReconstructor,
		cancellationReconstructor: cancellationReconstructor,
		adrPredictor:              adrPredictor,
		cancellationPredictor:     cancellationPredictor,
		predictionDao:             predictionDao,
	}
}

// ModelVersions reports the loaded artifact version per task.
func (ps *PredictionService) ModelVersions() map[string]string {
	return map[string]string{
		TASK_ADR:          ps.adrPredictor.Version(),
		TASK_CANCELLATION: ps.cancellationPredictor.Version(),
	}
}

// PredictADR reconstructs the regression feature vector for a raw booking
// record, predicts in log space and inverts the log1p transform used at
// training to recover the Average Daily Rate in original units.
func (ps *PredictionService) PredictADR(record models.BookingRecord) (*models.AdrPrediction, error) {
	recordHash := ps.lookupHash(record)
	if cached := ps.cachedPrediction(TASK_ADR, recordHash, ps.adrPredictor.Version()); cached != nil && cached.Adr != nil {
		return cached.Adr, nil
	}

	vector, err := ps.adrReconstructor.Reconstruct(record)
	if err != nil {
		return nil, err
	}

	logAdr, err := ps.adrPredictor.Predict(vector)
	if err != nil {
		return nil, fmt.Errorf("adr model prediction failed: %w", err)
	}

	result := &models.AdrPrediction{PredictedADR: math.Expm1(logAdr)}

	ps.storePrediction(TASK_ADR, recordHash, &models.CachedPrediction{
		PredictionID: uuid.NewString(),
		Task:         TASK_ADR,
		ModelVersion: ps.adrPredictor.Version(),
		CreatedAt:    time.Now().UTC(),
		Adr:          result,
	})

	return result, nil
}

// PredictCancellation reconstructs the classification feature vector for a
// raw booking record and returns the predicted class plus the cancellation
// probability scaled to a percentage.
func (ps *PredictionService) PredictCancellation(record models.BookingRecord) (*models.CancellationPrediction, error) {
	recordHash := ps.lookupHash(record)
	if cached := ps.cachedPrediction(TASK_CANCELLATION, recordHash, ps.cancellationPredictor.Version()); cached != nil && cached.Cancellation != nil {
		return cached.Cancellation, nil
	}

	vector, err := ps.cancellationReconstructor.Reconstruct(record)
	if err != nil {
		return nil, err
	}

	probability, err := ps.cancellationPredictor.PredictProba(vector)
	if err != nil {
		return nil, fmt.Errorf("cancellation model prediction failed: %w", err)
	}

	predictedClass := 0
	if probability >= 0.5 {
		predictedClass = 1
	}

	result := &models.CancellationPrediction{
		PredictedClass:          predictedClass,
		CancellationProbability: roundTwoDecimals(probability * 100),
	}

	ps.storePrediction(TASK_CANCELLATION, recordHash, &models.CachedPrediction{
		PredictionID: uuid.NewString(),
		Task:         TASK_CANCELLATION,
		ModelVersion: ps.cancellationPredictor.Version(),
		CreatedAt:    time.Now().UTC(),
		Cancellation: result,
	})

	return result, nil
}

// lookupHash returns the cache key hash for a record, or "" when the record
// cannot be hashed. Cache trouble never fails a prediction.
func (ps *PredictionService) lookupHash(record models.BookingRecord) string {
	hash, err := ps.predictionDao.RecordHash(record)
	if err != nil {
		log.Printf("[PredictionService] Failed to hash record, skipping cache: %v", err)
		return ""
	}
	return hash
}

func (ps *PredictionService) cachedPrediction(task, recordHash, modelVersion string) *models.CachedPrediction {
	if recordHash == "" {
		return nil
	}
	cached, err := ps.predictionDao.GetPrediction(task, recordHash)
	if err != nil {
		log.Printf("[PredictionService] Cache lookup failed for task=%s: %v", task, err)
		return nil
	}
	if cached == nil || cached.ModelVersion != modelVersion {
		return nil
	}
	return cached
}

func (ps *PredictionService) storePrediction(task, recordHash string, p *models.CachedPrediction) {
	if recordHash == "" {
		return
	}
	if err := ps.predictionDao.SetPrediction(task, recordHash, p); err != nil {
		log.Printf("[PredictionService] Failed to cache prediction for task=%s: %v", task, err)
	}
}

func roundTwoDecimals(x float64) float64 {
	return math.Round(x*100) / 100
}
