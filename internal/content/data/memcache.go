package data

import (
	"context"
	"time"

	"github.com/cdnstack/content-service/internal/content/biz"
	"github.com/viccon/sturdyc"
)

const (
	defaultMemoryCacheCapacity = 10000
	memoryCacheShards          = 64
	memoryCacheTTL             = 24 * time.Hour
	memoryCacheEvictionPercent = 10
)

// MemoryContentCache is the in-process alternative to the Redis cache,
// for single-instance deployments. Capacity bounds the entry count;
// the long TTL exists only because the underlying cache requires one,
// correctness still comes from write-path invalidation.
type MemoryContentCache struct {
	cache *sturdyc.Client[*biz.Content]
}

// NewMemoryContentCache creates a bounded in-process entry cache
func NewMemoryContentCache(capacity int) biz.ContentCache {
	if capacity <= 0 {
		capacity = defaultMemoryCacheCapacity
	}
	return &MemoryContentCache{
		cache: sturdyc.New[*biz.Content](capacity, memoryCacheShards, memoryCacheTTL, memoryCacheEvictionPercent),
	}
}

func (c *MemoryContentCache) Get(_ context.Context, id string) (*biz.Content, bool) {
	content, ok := c.cache.Get(contentCacheKeyPrefix + id)
	if !ok {
		return nil, false
	}
	// Copy so callers never mutate the cached entry in place
	copied := *content
	return &copied, true
}

func (c *MemoryContentCache) Put(_ context.Context, id string, content *biz.Content) {
	copied := *content
	c.cache.Set(contentCacheKeyPrefix+id, &copied)
}

func (c *MemoryContentCache) Invalidate(_ context.Context, id string) {
	c.cache.Delete(contentCacheKeyPrefix + id)
}
