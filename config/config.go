package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// Server config
const SERVER_ADDRESS = ":8000"

// Redis Config
const REDIS_DB_ADDRESS = "redis:6379"
const REDIS_DB_PASSWORD = ""
const REDIS_DB = 0

// Cache janitor config
const CACHE_JANITOR_SCHEDULE_MINUTES = 30

// Model Registry
const MODEL_REGISTRY_ENDPOINT_BASE_V1 = "http://model-registry:9000/api/v1"

// Resources file paths
const RESOURCES_PATH_PREFIX = "resources"
const MODELS_PATH_PREFIX = "models"
const ADR_MODEL_RESOURCE = "adr_model.json"
const ADR_SCHEMA_RESOURCE = "adr_schema.json"
const CANCELLATION_MODEL_RESOURCE = "cancellation_model.json"
const CANCELLATION_SCHEMA_RESOURCE = "cancellation_schema.json"
const SAMPLE_BOOKINGS_RESOURCE = "sample_bookings.json"

// Registry artifact names
const ADR_MODEL_NAME = "adr_model"
const ADR_SCHEMA_NAME = "adr_schema"
const CANCELLATION_MODEL_NAME = "cancellation_model"
const CANCELLATION_SCHEMA_NAME = "cancellation_schema"

// LoadEnv loads a .env file when present so container deployments can
// override the defaults below without rebuilding.
func LoadEnv() {
	_ = godotenv.Load()
}

// BaseDir returns the absolute path of the project root directory
func BaseDir() string {
	// Check if PROJECT_ROOT is set
	if root := os.Getenv("PROJECT_ROOT"); root != "" {
		return root
	}

	// Default to the current working directory
	wd, err := os.Getwd()
	if err != nil {
		panic("Unable to determine working directory: " + err.Error())
	}

	return wd
}

func GetResourcePath(resourceFile string) string {
	return filepath.Join(BaseDir(), RESOURCES_PATH_PREFIX, resourceFile)
}

func GetModelPath(resourceFile string) string {
	return filepath.Join(BaseDir(), RESOURCES_PATH_PREFIX, MODELS_PATH_PREFIX, resourceFile)
}

// GetRedisAddress returns the Redis address, honoring the REDIS_ADDRESS
// environment variable when set.
func GetRedisAddress() string {
	if addr := os.Getenv("REDIS_ADDRESS"); addr != "" {
		return addr
	}
	return REDIS_DB_ADDRESS
}

// GetRegistryEndpoint returns the model registry base URL, honoring the
// MODEL_REGISTRY_ENDPOINT environment variable when set.
func GetRegistryEndpoint() string {
	if endpoint := os.Getenv("MODEL_REGISTRY_ENDPOINT"); endpoint != "" {
		return endpoint
	}
	return MODEL_REGISTRY_ENDPOINT_BASE_V1
}

// GetRegistryApiKey returns the model registry API key from the environment.
func GetRegistryApiKey() string {
	return os.Getenv("MODEL_REGISTRY_API_KEY")
}
