package data

import (
	"context"
	"testing"

	"github.com/cdnstack/content-service/internal/content/biz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryContentCachePutGetInvalidate(t *testing.T) {
	cache := NewMemoryContentCache(100)
	ctx := context.Background()

	_, ok := cache.Get(ctx, "missing")
	assert.False(t, ok)

	content := &biz.Content{ID: "id-1", Title: "Cached", DownloadCount: 3}
	cache.Put(ctx, content.ID, content)

	got, ok := cache.Get(ctx, "id-1")
	require.True(t, ok)
	assert.Equal(t, "Cached", got.Title)
	assert.Equal(t, int64(3), got.DownloadCount)

	cache.Invalidate(ctx, "id-1")
	_, ok = cache.Get(ctx, "id-1")
	assert.False(t, ok)
}

func TestMemoryContentCacheReturnsCopies(t *testing.T) {
	cache := NewMemoryContentCache(100)
	ctx := context.Background()

	content := &biz.Content{ID: "id-1", Title: "Original"}
	cache.Put(ctx, content.ID, content)

	// Mutating either the source or a fetched copy must not leak into
	// the cached entry.
	content.Title = "Mutated Source"

	got, ok := cache.Get(ctx, "id-1")
	require.True(t, ok)
	assert.Equal(t, "Original", got.Title)

	got.Title = "Mutated Copy"

	again, ok := cache.Get(ctx, "id-1")
	require.True(t, ok)
	assert.Equal(t, "Original", again.Title)
}

func TestMemoryContentCacheDefaultCapacity(t *testing.T) {
	// Non-positive capacity falls back to the default instead of panicking
	cache := NewMemoryContentCache(0)
	ctx := context.Background()

	content := &biz.Content{ID: "id-1"}
	cache.Put(ctx, content.ID, content)

	_, ok := cache.Get(ctx, "id-1")
	assert.True(t, ok)
}
