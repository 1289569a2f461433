package database

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/yeonwoo-dev/bodycheck-backend/internal/domain/entities"
	"github.com/yeonwoo-dev/bodycheck-backend/internal/domain/providers"
	"github.com/yeonwoo-dev/bodycheck-backend/internal/domain/repositories"
	"github.com/yeonwoo-dev/bodycheck-backend/internal/infrastructure/observability"
)

// CachedPredictionAdapter wraps PredictionAdapter with caching. Predictions
// are immutable once written, so the only invalidation points are Create,
// Replace and Delete.
type CachedPredictionAdapter struct {
	adapter repositories.PredictionRepository
	cache   providers.CacheProvider
	metrics *observability.Metrics
}

// NewCachedPredictionAdapter creates a new cached prediction adapter.
// Metrics may be nil when OTEL is disabled.
func NewCachedPredictionAdapter(adapter repositories.PredictionRepository, cache providers.CacheProvider, metrics *observability.Metrics) repositories.PredictionRepository {
	return &CachedPredictionAdapter{
		adapter: adapter,
		cache:   cache,
		metrics: metrics,
	}
}

// Cache TTL (in seconds)
const predictionByRecordTTL = 600

func predictionCacheKey(recordID string) string {
	return fmt.Sprintf("prediction:record:%s", recordID)
}

// Create writes through and invalidates any stale entry for the record.
func (a *CachedPredictionAdapter) Create(ctx context.Context, prediction *entities.Prediction, ranks []*entities.PredictionRank) error {
	if err := a.adapter.Create(ctx, prediction, ranks); err != nil {
		return err
	}
	a.invalidate(ctx, prediction.RecordID)
	return nil
}

// Replace writes through and invalidates the record's cache entry.
func (a *CachedPredictionAdapter) Replace(ctx context.Context, prediction *entities.Prediction, ranks []*entities.PredictionRank) error {
	if err := a.adapter.Replace(ctx, prediction, ranks); err != nil {
		return err
	}
	a.invalidate(ctx, prediction.RecordID)
	return nil
}

// GetByRecordID retrieves a prediction with caching.
func (a *CachedPredictionAdapter) GetByRecordID(ctx context.Context, recordID string) (*entities.Prediction, error) {
	cacheKey := predictionCacheKey(recordID)

	if cached, err := a.cache.Get(ctx, cacheKey); err == nil {
		var prediction entities.Prediction
		if err := json.Unmarshal(cached, &prediction); err == nil {
			if a.metrics != nil {
				observability.RecordCacheHit(ctx, a.metrics, "prediction")
			}
			return &prediction, nil
		}
		log.Printf("Failed to unmarshal cached prediction for record %s: %v", recordID, err)
	}

	if a.metrics != nil {
		observability.RecordCacheMiss(ctx, a.metrics, "prediction")
	}

	prediction, err := a.adapter.GetByRecordID(ctx, recordID)
	if err != nil {
		return nil, err
	}

	// Update cache asynchronously to avoid blocking the response
	go func() {
		bgCtx := context.Background()
		if data, err := json.Marshal(prediction); err == nil {
			if err := a.cache.Set(bgCtx, cacheKey, data, predictionByRecordTTL); err != nil {
				log.Printf("Failed to cache prediction for record %s: %v", recordID, err)
			}
		}
	}()

	return prediction, nil
}

// DeleteByRecordID deletes the prediction and its cache entry.
func (a *CachedPredictionAdapter) DeleteByRecordID(ctx context.Context, recordID string) error {
	if err := a.adapter.DeleteByRecordID(ctx, recordID); err != nil {
		return err
	}
	a.invalidate(ctx, recordID)
	return nil
}

func (a *CachedPredictionAdapter) invalidate(ctx context.Context, recordID string) {
	if err := a.cache.Delete(ctx, predictionCacheKey(recordID)); err != nil {
		log.Printf("Failed to invalidate cached prediction for record %s: %v", recordID, err)
	}
}
