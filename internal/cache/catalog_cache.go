// internal/cache/catalog_cache.go
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"storefront-filters/internal/common/logger"
	"storefront-filters/internal/common/metrics"
)

// CatalogCache is a redis-backed read-through cache for resolved filter
// configurations and category universes. Every failure degrades to a miss:
// the caller falls back to postgres and the error is only logged.
type CatalogCache struct {
	client *redis.Client
	ttl    time.Duration
	logger logger.Logger
}

func New(client *redis.Client, ttl time.Duration, log logger.Logger) *CatalogCache {
	return &CatalogCache{
		client: client,
		ttl:    ttl,
		logger: log.WithFields(map[string]interface{}{"component": "catalog-cache"}),
	}
}

func filterConfigKey(categoryID int64) string {
	return fmt.Sprintf("catalog:filterconfig:%d", categoryID)
}

func universeKey(categoryID int64) string {
	return fmt.Sprintf("catalog:universe:%d", categoryID)
}

// GetFilterConfig returns the cached raw filter-config document.
func (c *CatalogCache) GetFilterConfig(ctx context.Context, categoryID int64) ([]byte, bool) {
	return c.get(ctx, filterConfigKey(categoryID), "filter_config")
}

// SetFilterConfig stores the raw filter-config document.
func (c *CatalogCache) SetFilterConfig(ctx context.Context, categoryID int64, raw []byte) {
	c.set(ctx, filterConfigKey(categoryID), raw)
}

// GetUniverse returns the cached product-ID universe for a category.
func (c *CatalogCache) GetUniverse(ctx context.Context, categoryID int64) ([]int64, bool) {
	raw, ok := c.get(ctx, universeKey(categoryID), "universe")
	if !ok {
		return nil, false
	}
	var ids []int64
	if err := json.Unmarshal(raw, &ids); err != nil {
		c.logger.Warn("dropping undecodable universe entry", map[string]interface{}{
			"categoryId": categoryID,
			"error":      err.Error(),
		})
		return nil, false
	}
	return ids, true
}

// SetUniverse stores the product-ID universe for a category.
func (c *CatalogCache) SetUniverse(ctx context.Context, categoryID int64, ids []int64) {
	raw, err := json.Marshal(ids)
	if err != nil {
		return
	}
	c.set(ctx, universeKey(categoryID), raw)
}

// Invalidate drops both entries for a category.
func (c *CatalogCache) Invalidate(ctx context.Context, categoryID int64) {
	if err := c.client.Del(ctx, filterConfigKey(categoryID), universeKey(categoryID)).Err(); err != nil {
		c.logger.Warn("cache invalidation failed", map[string]interface{}{
			"categoryId": categoryID,
			"error":      err.Error(),
		})
	}
}

func (c *CatalogCache) get(ctx context.Context, key, kind string) ([]byte, bool) {
	raw, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		metrics.CacheLookups.WithLabelValues(kind, "miss").Inc()
		return nil, false
	}
	if err != nil {
		metrics.CacheLookups.WithLabelValues(kind, "error").Inc()
		c.logger.Warn("cache read failed", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})
		return nil, false
	}
	metrics.CacheLookups.WithLabelValues(kind, "hit").Inc()
	return raw, true
}

func (c *CatalogCache) set(ctx context.Context, key string, raw []byte) {
	if err := c.client.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		c.logger.Warn("cache write failed", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})
	}
}
