package di

import (
	"context"
	"fmt"
	"log"
	"os"

	"hbp-server/api"
	"hbp-server/api/registry"
	"hbp-server/config"
	redisdao "hbp-server/dao/redis"
	"hbp-server/db"
	"hbp-server/features"
	"hbp-server/ml"
	"hbp-server/server"
	"hbp-server/server/handlers"
	services "hbp-server/service"

	goredis "github.com/go-redis/redis/v8"
	"github.com/gorilla/mux"
)

// Container holds all application dependencies.
type Container struct {
	RedisClient          db.RedisClient
	RedisPredictionDao   *redisdao.RedisPredictionDAO
	RegistryAPI          registry.RegistryAPI
	PredictionService    *services.PredictionService
	PredictionHandler    *handlers.PredictionHandler
	MuxRouter            *mux.Router
	Router               *server.Router
	PredictionHttpServer *server.PredictionHttpServer
	CacheJanitorService  *services.CacheJanitorService
	BatchScoringService  *services.BatchScoringService
}

// NewContainer initializes and wires up all dependencies.
func NewContainer(env string) *Container {
	log.Printf("initializing container - env: %s", env)
	ctx := context.Background()

	// Initialize Redis client
	var redisClient db.RedisClient
	if env != "prod" {
		redisClient = db.NewMockRedisClient(ctx)
		log.Printf("Using mock redis client")
	} else {
		redisInternalClient := goredis.NewClient(&goredis.Options{
			Addr:     config.GetRedisAddress(),
			Password: config.REDIS_DB_PASSWORD,
			DB:       config.REDIS_DB,
		})
		redisClient = db.NewCacheRedisClient(ctx, redisInternalClient)
	}

	// Initialize Redis Prediction DAO
	redisPredictionDao := redisdao.NewRedisPredictionDAO(redisClient)

	// Initialize model registry - using fixture-backed mock outside prod
	var registryApiClient registry.RegistryAPI
	if env != "prod" {
		registryApiClient = registry.NewRegistryClientMock()
		log.Printf("Using mock model registry api")
	} else {
		log.Printf("Using prod model registry api")
		httpClient := api.NewHTTPClient(config.GetRegistryEndpoint())

		registryApiClient = registry.NewRegistryClient(httpClient)
		registryApiClient.SetCredentials(config.GetRegistryApiKey())
	}

	// Load model artifacts and schemas, preferring the local resources and
	// falling back to the registry for anything missing on disk.
	adrSchema := loadSchema(registryApiClient, config.ADR_SCHEMA_RESOURCE, config.ADR_SCHEMA_NAME)
	cancellationSchema := loadSchema(registryApiClient, config.CANCELLATION_SCHEMA_RESOURCE, config.CANCELLATION_SCHEMA_NAME)
	adrPredictor := loadPredictor(registryApiClient, config.ADR_MODEL_RESOURCE, config.ADR_MODEL_NAME)
	cancellationPredictor := loadPredictor(registryApiClient, config.CANCELLATION_MODEL_RESOURCE, config.CANCELLATION_MODEL_NAME)

	// Initialize per-task feature reconstructors
	adrReconstructor := features.NewReconstructor(adrSchema)
	cancellationReconstructor := features.NewReconstructor(cancellationSchema)

	// Initialize service layer
	predictionService := services.NewPredictionService(
		adrReconstructor,
		cancellationReconstructor,
		adrPredictor,
		cancellationPredictor,
		redisPredictionDao,
	)

	// Initialize prediction handler
	predictionHandler := handlers.NewPredictionHandler(predictionService)

	// Initialize mux router
	muxRouter := mux.NewRouter()

	// Initialize router
	router := server.NewRouter(predictionHandler, muxRouter)

	// Initialize prediction server
	predictionHttpServer := server.NewPredictionHttpServer(router, muxRouter, config.SERVER_ADDRESS)

	cacheJanitorService := services.NewCacheJanitorService(redisPredictionDao, predictionService.ModelVersions())

	batchScoringService := services.NewBatchScoringService(predictionService)

	return &Container{
		RedisClient:          redisClient,
		RedisPredictionDao:   redisPredictionDao,
		RegistryAPI:          registryApiClient,
		PredictionService:    predictionService,
		PredictionHandler:    predictionHandler,
		MuxRouter:            muxRouter,
		Router:               router,
		PredictionHttpServer: predictionHttpServer,
		CacheJanitorService:  cacheJanitorService,
		BatchScoringService:  batchScoringService,
	}
}

func loadSchema(registryApi registry.RegistryAPI, resourceFile, registryName string) *features.Schema {
	path := config.GetModelPath(resourceFile)
	if _, err := os.Stat(path); err == nil {
		schema, err := features.LoadSchema(path)
		if err != nil {
			panic(fmt.Sprintf("Failed to load schema %s: %v", path, err))
		}
		return schema
	}

	log.Printf("Schema %s not found locally, fetching %q from the registry", path, registryName)
	schema, err := registryApi.GetSchema(registryName)
	if err != nil {
		panic(fmt.Sprintf("Failed to fetch schema %q from the registry: %v", registryName, err))
	}
	return schema
}

func loadPredictor(registryApi registry.RegistryAPI, resourceFile, registryName string) *ml.Predictor {
	path := config.GetModelPath(resourceFile)
	if _, err := os.Stat(path); err == nil {
		predictor, err := ml.LoadPredictor(path)
		if err != nil {
			panic(fmt.Sprintf("Failed to load model %s: %v", path, err))
		}
		return predictor
	}

	log.Printf("Model %s not found locally, fetching %q from the registry", path, registryName)
	artifact, err := registryApi.GetModelArtifact(registryName)
	if err != nil {
		panic(fmt.Sprintf("Failed to fetch model %q from the registry: %v", registryName, err))
	}
	predictor, err := ml.NewPredictor(artifact)
	if err != nil {
		panic(fmt.Sprintf("Registry model %q failed verification: %v", registryName, err))
	}
	return predictor
}
