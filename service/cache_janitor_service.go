package services

import (
	"log"
	"time"

	redisdao "hbp-server/dao/redis"
)

// CacheJanitorService periodically sweeps the prediction cache and removes
// entries produced by model versions that are no longer loaded, so a model
// rollout cannot keep serving stale scores out of Redis.
type CacheJanitorService struct {
	predictionDao *redisdao.RedisPredictionDAO
	modelVersions map[string]string
}

// NewCacheJanitorService constructs a janitor bound to the versions the
// process loaded at startup.
func NewCacheJanitorService(
	predictionDao *redisdao.RedisPredictionDAO,
	modelVersions map[string]string,
) *CacheJanitorService {
	return &CacheJanitorService{
		predictionDao: predictionDao,
		modelVersions: modelVersions,
	}
}

// StartPeriodicJob launches the background sweep loop at the given interval.
func (cj *CacheJanitorService) StartPeriodicJob(interval time.Duration) {
	go cj.startPeriodicJob(interval)
}

func (cj *CacheJanitorService) startPeriodicJob(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for range ticker.C {
		log.Println("[CacheJanitorService] Running periodic cache sweep.")
		if err := cj.SweepStaleEntries(); err != nil {
			log.Printf("[CacheJanitorService] SweepStaleEntries returned error: %v", err)
		} else {
			log.Println("[CacheJanitorService] SweepStaleEntries completed successfully.")
		}
	}
}

// SweepStaleEntries deletes every cached prediction whose model version does
// not match the currently loaded artifact for its task.
func (cj *CacheJanitorService) SweepStaleEntries() error {
	keys, err := cj.predictionDao.ListPredictionKeys()
	if err != nil {
		log.Printf("[CacheJanitorService] Error listing prediction keys: %v", err)
		return err
	}
	log.Printf("[CacheJanitorService] Found %d cached predictions", len(keys))

	deleted := 0
	for _, key := range keys {
		cached, err := cj.predictionDao.GetPredictionByKey(key)
		if err != nil {
			log.Printf("[CacheJanitorService] Failed reading %s, deleting: %v", key, err)
			if delErr := cj.predictionDao.DeletePredictionKey(key); delErr != nil {
				log.Printf("[CacheJanitorService] Delete failed for %s: %v", key, delErr)
			} else {
				deleted++
			}
			continue
		}
		if cached == nil {
			continue
		}

		want, known := cj.modelVersions[cached.Task]
		if known && cached.ModelVersion == want {
			continue
		}

		log.Printf("[CacheJanitorService] Removing stale prediction %s (task=%s version=%s)", key, cached.Task, cached.ModelVersion)
		if err := cj.predictionDao.DeletePredictionKey(key); err != nil {
			log.Printf("[CacheJanitorService] Delete failed for %s: %v", key, err)
			continue
		}
		deleted++
	}

	log.Printf("[CacheJanitorService] Sweep finished, deleted %d entries", deleted)
	return nil
}
