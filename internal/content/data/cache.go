package data

import (
	"context"
	"encoding/json"

	"github.com/cdnstack/content-service/internal/content/biz"
	"github.com/cdnstack/content-service/internal/pkg/logger"
	"github.com/cdnstack/content-service/internal/pkg/redis"
	"go.uber.org/zap"
)

const contentCacheKeyPrefix = "content:"

// RedisContentCache keeps single-entry lookups in Redis. The store stays
// authoritative: any cache failure degrades to a miss and is logged.
type RedisContentCache struct {
	client *redis.Client
	logger *logger.Logger
}

// NewRedisContentCache creates the Redis-backed entry cache
func NewRedisContentCache(client *redis.Client, log *logger.Logger) biz.ContentCache {
	return &RedisContentCache{
		client: client,
		logger: log,
	}
}

func (c *RedisContentCache) Get(ctx context.Context, id string) (*biz.Content, bool) {
	key := contentCacheKeyPrefix + id

	raw, err := c.client.Get(ctx, key)
	if err != nil {
		if !redis.IsNil(err) {
			c.logger.Warn("content cache read failed, treating as miss",
				zap.String("id", id),
				zap.Error(err))
		}
		return nil, false
	}

	var content biz.Content
	if err := json.Unmarshal([]byte(raw), &content); err != nil {
		c.logger.Warn("content cache entry corrupt, dropping it",
			zap.String("id", id),
			zap.Error(err))
		c.Invalidate(ctx, id)
		return nil, false
	}

	return &content, true
}

func (c *RedisContentCache) Put(ctx context.Context, id string, content *biz.Content) {
	raw, err := json.Marshal(content)
	if err != nil {
		c.logger.Warn("content cache marshal failed",
			zap.String("id", id),
			zap.Error(err))
		return
	}

	// No TTL: write-path invalidation keeps entries correct, and bounding
	// is delegated to the Redis maxmemory policy.
	if err := c.client.Set(ctx, contentCacheKeyPrefix+id, raw, 0); err != nil {
		c.logger.Warn("content cache write failed",
			zap.String("id", id),
			zap.Error(err))
	}
}

func (c *RedisContentCache) Invalidate(ctx context.Context, id string) {
	if _, err := c.client.Del(ctx, contentCacheKeyPrefix+id); err != nil {
		c.logger.Warn("content cache invalidate failed",
			zap.String("id", id),
			zap.Error(err))
	}
}
