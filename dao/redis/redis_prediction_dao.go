package redis

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"hbp-server/db"
	"hbp-server/models"
)

const PREDICTION_KEY_FORMAT_V1 = "prediction_v1:%s:%s"
const PREDICTION_KEY_PATTERN_V1 = "prediction_v1:*"

// RedisPredictionDAO caches prediction results in Redis. Models are
// deterministic, so a record hash fully identifies its prediction for a
// given model version.
type RedisPredictionDAO struct {
	client db.RedisClient
}

// NewRedisPredictionDAO initializes a RedisPredictionDAO with the Redis client.
func NewRedisPredictionDAO(client db.RedisClient) *RedisPredictionDAO {
	return &RedisPredictionDAO{client: client}
}

// RecordHash returns the cache key component for a raw booking record: the
// hex SHA-256 of its canonical JSON form. Go marshals map keys in sorted
// order, so field ordering in the request does not change the hash.
func (dao *RedisPredictionDAO) RecordHash(record models.BookingRecord) (string, error) {
	data, err := json.Marshal(record)
	if err != nil {
		return "", fmt.Errorf("failed to marshal booking record: %w", err)
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}

// SetPrediction caches a prediction for the given task and record hash.
func (dao *RedisPredictionDAO) SetPrediction(task, recordHash string, p *models.CachedPrediction) error {
	key := fmt.Sprintf(PREDICTION_KEY_FORMAT_V1, task, recordHash)
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to marshal prediction %s: %w", p.PredictionID, err)
	}
	if err := dao.client.Set(key, string(data)); err != nil {
		return fmt.Errorf("failed to set prediction in redis: %w", err)
	}
	return nil
}

// GetPrediction retrieves the cached prediction for a task and record hash.
// A cache miss returns (nil, nil).
func (dao *RedisPredictionDAO) GetPrediction(task, recordHash string) (*models.CachedPrediction, error) {
	key := fmt.Sprintf(PREDICTION_KEY_FORMAT_V1, task, recordHash)
	return dao.GetPredictionByKey(key)
}

// GetPredictionByKey retrieves a cached prediction by its full Redis key.
// A cache miss returns (nil, nil).
func (dao *RedisPredictionDAO) GetPredictionByKey(key string) (*models.CachedPrediction, error) {
	str, err := dao.client.Get(key)
	if err != nil {
		if isCacheMiss(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get prediction from redis: %w", err)
	}
	var p models.CachedPrediction
	if err := json.Unmarshal([]byte(str), &p); err != nil {
		return nil, fmt.Errorf("failed to unmarshal prediction JSON: %w", err)
	}
	return &p, nil
}

// ListPredictionKeys returns the Redis keys of all cached predictions.
func (dao *RedisPredictionDAO) ListPredictionKeys() ([]string, error) {
	keys, err := dao.client.Keys(PREDICTION_KEY_PATTERN_V1)
	if err != nil {
		return nil, fmt.Errorf("failed to list prediction keys: %w", err)
	}
	return keys, nil
}

// DeletePredictionKey removes a cached prediction by its full Redis key.
func (dao *RedisPredictionDAO) DeletePredictionKey(key string) error {
	if err := dao.client.Del(key); err != nil {
		return fmt.Errorf("failed to delete prediction key %s: %w", key, err)
	}
	log.Printf("[RedisPredictionDAO] Deleted cached prediction %s", key)
	return nil
}

// go-redis reports missing keys as redis.Nil; the mock client uses the same
// sentinel wording.
func isCacheMiss(err error) bool {
	return strings.Contains(err.Error(), "nil")
}
