// internal/cache/summary.go

// Package cache keeps LLM-generated feedback summaries in redis so
// repeated dashboard loads don't burn completion calls. Misses and
// redis outages degrade to recomputing; nothing here is load-bearing.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"tuali-backend/internal/common/database"
	"tuali-backend/internal/common/logger"
)

const summaryTTL = time.Hour

type SummaryCache struct {
	redis  *database.RedisClient
	logger logger.Logger
}

func NewSummaryCache(rdb *database.RedisClient, log logger.Logger) *SummaryCache {
	return &SummaryCache{
		redis:  rdb,
		logger: log.With(map[string]interface{}{"component": "cache"}),
	}
}

func summaryKey(storeID int) string {
	return fmt.Sprintf("feedback_summary:%d", storeID)
}

// Get returns the cached summary for a store, or "" on miss or when
// the cache is unavailable.
func (c *SummaryCache) Get(ctx context.Context, storeID int) string {
	if c == nil || c.redis == nil {
		return ""
	}
	val, err := c.redis.Get(ctx, summaryKey(storeID))
	if err == redis.Nil {
		return ""
	}
	if err != nil {
		c.logger.Warn("summary cache read failed", map[string]interface{}{
			"storeId": storeID,
			"error":   err.Error(),
		})
		return ""
	}
	return val
}

// Set stores a summary with the fixed TTL. Failures are logged only.
func (c *SummaryCache) Set(ctx context.Context, storeID int, summary string) {
	if c == nil || c.redis == nil {
		return
	}
	if err := c.redis.Set(ctx, summaryKey(storeID), summary, summaryTTL); err != nil {
		c.logger.Warn("summary cache write failed", map[string]interface{}{
			"storeId": storeID,
			"error":   err.Error(),
		})
	}
}
