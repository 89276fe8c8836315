package services

import (
	"context"
	"fmt"

	"github.com/ywyher/survey/internal/database"
	"github.com/ywyher/survey/internal/logger"
)

const (
	responseListCacheKeyPrefix = "responses:all"
	ResponseListGenerationKey  = "responses:generation"
)

// ResponseListCacheKey scopes the cached list to a generation. A list written
// under an older generation is never read again and expires with its TTL.
func ResponseListCacheKey(generation int64) string {
	return fmt.Sprintf("%s:%d", responseListCacheKeyPrefix, generation)
}

// ResponseListGeneration reads the current list generation. A missing counter
// is generation zero.
func ResponseListGeneration(ctx context.Context, db database.DB) (int64, error) {
	var generation int64
	if _, err := database.NewCacheBuilder(db.Cache.Responses, ResponseListGenerationKey).
		WithContext(ctx).
		Get(&generation); err != nil {
		return 0, err
	}
	return generation, nil
}

type CacheInvalidationService struct {
	db  database.DB
	log logger.Logger
}

func NewCacheInvalidationService(db database.DB) *CacheInvalidationService {
	return &CacheInvalidationService{
		db:  db,
		log: logger.New("CacheInvalidationService"),
	}
}

// InvalidateResponseList advances the list generation so the next read goes
// to the database. It is a no-op when no cache is configured.
func (s *CacheInvalidationService) InvalidateResponseList(ctx context.Context) error {
	generation, err := database.NewCacheBuilder(s.db.Cache.Responses, ResponseListGenerationKey).
		WithContext(ctx).
		Increment()
	if err != nil {
		return s.log.Function("InvalidateResponseList").
			Err("failed to invalidate response list cache", err, "key", ResponseListGenerationKey)
	}

	s.log.Function("InvalidateResponseList").Debug("advanced response list generation", "generation", generation)
	return nil
}
