package main

import (
	"flag"
	"fmt"
	"log"
	"path/filepath"
	"time"

	"hbp-server/config"
	"hbp-server/di"
	"hbp-server/preprocess"
)

func runServer(env string) {
	container := di.NewContainer(env)

	fmt.Println("starting cache janitor job!")
	container.CacheJanitorService.StartPeriodicJob(config.CACHE_JANITOR_SCHEDULE_MINUTES * time.Minute)

	fmt.Println("starting server!")
	container.PredictionHttpServer.Start()
	fmt.Println("server stopped!")
}

// runPreprocess executes one task's training-data preparation on a raw CSV
// and writes the encoded matrix plus the serving schema next to it.
func runPreprocess(task, inputPath, outputDir, modelVersion string) {
	var cfg preprocess.PipelineConfig
	switch task {
	case "adr":
		cfg = preprocess.RegressionPipelineConfig()
	case "cancellation":
		cfg = preprocess.ClassificationPipelineConfig()
	default:
		log.Fatalf("Unknown task %q, expected adr or cancellation", task)
	}

	dataset, err := preprocess.ReadCSV(inputPath)
	if err != nil {
		log.Fatalf("Failed to read dataset %s: %v", inputPath, err)
	}

	pipeline := preprocess.NewPipeline(cfg)
	result, err := pipeline.Run(dataset)
	if err != nil {
		log.Fatalf("Preprocessing failed: %v", err)
	}

	encodedPath := filepath.Join(outputDir, task+"_encoded.csv")
	if err := result.Dataset.WriteCSV(encodedPath); err != nil {
		log.Fatalf("Failed to write encoded dataset: %v", err)
	}

	schema := pipeline.BuildSchema(result, modelVersion)
	schemaPath := filepath.Join(outputDir, task+"_schema.json")
	if err := schema.Save(schemaPath); err != nil {
		log.Fatalf("Failed to write schema: %v", err)
	}

	log.Printf("[MAIN] Preprocessing done: %s, %s", encodedPath, schemaPath)
}

func runBatchScoring(env, inputPath, outputDir string) {
	container := di.NewContainer(env)
	if err := container.BatchScoringService.ScoreFile(inputPath, outputDir); err != nil {
		log.Fatalf("Batch scoring failed: %v", err)
	}
}

func main() {
	config.LoadEnv()

	env := flag.String("env", "prod", "environment: prod uses live Redis and the model registry")
	mode := flag.String("mode", "serve", "serve | preprocess | batch")
	task := flag.String("task", "adr", "preprocess task: adr | cancellation")
	input := flag.String("input", config.GetResourcePath(config.SAMPLE_BOOKINGS_RESOURCE), "input file path")
	output := flag.String("output", ".", "output directory")
	modelVersion := flag.String("model-version", "dev", "model version stamped into generated schemas")
	flag.Parse()

	switch *mode {
	case "serve":
		runServer(*env)
	case "preprocess":
		runPreprocess(*task, *input, *output, *modelVersion)
	case "batch":
		runBatchScoring(*env, *input, *output)
	default:
		log.Fatalf("Unknown mode %q, expected serve, preprocess or batch", *mode)
	}
}
