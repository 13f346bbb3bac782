package services

import (
	"fmt"
	"log"
	"path/filepath"

	"hbp-server/util"
)

// BatchScoringService scores a file of booking records through both models
// and renders summary charts. Used for offline sanity checks of new model
// artifacts against a held-out sample.
type BatchScoringService struct {
	predictionService *PredictionService
}

// NewBatchScoringService constructs a BatchScoringService.
func NewBatchScoringService(predictionService *PredictionService) *BatchScoringService {
	return &BatchScoringService{predictionService: predictionService}
}

// ScoreFile reads booking records from a JSON file, scores each one with
// both models, logs a summary and writes the charts into outputDir.
// Records failing validation are skipped and counted, not fatal.
func (bs *BatchScoringService) ScoreFile(inputPath, outputDir string) error {
	records, err := util.ReadBookingRecordsFromJSON(inputPath)
	if err != nil {
		return fmt.Errorf("failed to read bookings from %q: %w", inputPath, err)
	}
	log.Printf("[BatchScoringService] Scoring %d records from %s", len(records), inputPath)

	var adrValues []float64
	var cancellationPcts []float64
	predictedCancellations := 0
	failed := 0

	for i, record := range records {
		adr, err := bs.predictionService.PredictADR(record)
		if err != nil {
			log.Printf("[BatchScoringService] Record %d failed ADR scoring: %v", i, err)
			failed++
			continue
		}

		cancellation, err := bs.predictionService.PredictCancellation(record)
		if err != nil {
			log.Printf("[BatchScoringService] Record %d failed cancellation scoring: %v", i, err)
			failed++
			continue
		}

		adrValues = append(adrValues, adr.PredictedADR)
		cancellationPcts = append(cancellationPcts, cancellation.CancellationProbability)
		if cancellation.PredictedClass == 1 {
			predictedCancellations++
		}
	}

	if len(adrValues) == 0 {
		return fmt.Errorf("no records could be scored from %q", inputPath)
	}

	log.Printf("[BatchScoringService] Scored %d records (%d failed), mean ADR %.2f, %d predicted cancellations",
		len(adrValues), failed, mean(adrValues), predictedCancellations)

	adrChart := filepath.Join(outputDir, "adr_distribution.html")
	if err := util.PlotAdrDistribution(adrValues, adrChart); err != nil {
		return fmt.Errorf("failed to render ADR chart: %w", err)
	}

	cancellationChart := filepath.Join(outputDir, "cancellation_probabilities.html")
	if err := util.PlotCancellationProbabilities(cancellationPcts, cancellationChart); err != nil {
		return fmt.Errorf("failed to render cancellation chart: %w", err)
	}

	log.Printf("[BatchScoringService] Charts written: %s, %s", adrChart, cancellationChart)
	return nil
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
