package caching

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mapCache is a minimal in-memory cache for exercising the read-through
// pattern without TTL behavior.
type mapCache struct {
	items map[string][]byte
}

func newMapCache() *mapCache {
	return &mapCache{items: make(map[string][]byte)}
}

func (c *mapCache) Has(ctx context.Context, key string) bool {
	_, ok := c.items[key]
	return ok
}

func (c *mapCache) Get(ctx context.Context, key string) ([]byte, bool) {
	v, ok := c.items[key]
	return v, ok
}

func (c *mapCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	c.items[key] = value
	return nil
}

func (c *mapCache) Delete(ctx context.Context, keys ...string) error {
	for _, key := range keys {
		delete(c.items, key)
	}
	return nil
}

type payload struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestGetOrComputeComputesOnce(t *testing.T) {
	cache := newMapCache()
	ctx := context.Background()

	calls := 0
	compute := func(ctx context.Context) (payload, error) {
		calls++
		return payload{Name: "laptop", Count: 5}, nil
	}

	first, err := GetOrCompute(ctx, cache, "latest-products", 0, compute)
	require.NoError(t, err)

	second, err := GetOrCompute(ctx, cache, "latest-products", 0, compute)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, calls)
}

func TestGetOrComputeRecomputesAfterInvalidation(t *testing.T) {
	cache := newMapCache()
	ctx := context.Background()

	calls := 0
	compute := func(ctx context.Context) (payload, error) {
		calls++
		return payload{Name: "laptop", Count: calls}, nil
	}

	_, err := GetOrCompute(ctx, cache, "latest-products", 0, compute)
	require.NoError(t, err)

	require.NoError(t, cache.Delete(ctx, "latest-products"))

	got, err := GetOrCompute(ctx, cache, "latest-products", 0, compute)
	require.NoError(t, err)

	assert.Equal(t, 2, calls)
	assert.Equal(t, 2, got.Count)
}

func TestGetOrComputePropagatesComputeError(t *testing.T) {
	cache := newMapCache()
	ctx := context.Background()

	wantErr := errors.New("store unavailable")
	_, err := GetOrCompute(ctx, cache, "latest-products", 0, func(ctx context.Context) (payload, error) {
		return payload{}, wantErr
	})

	assert.ErrorIs(t, err, wantErr)
	assert.False(t, cache.Has(ctx, "latest-products"))
}

func TestGetOrComputeTreatsCorruptEntryAsMiss(t *testing.T) {
	cache := newMapCache()
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "latest-products", []byte("{not json"), 0))

	got, err := GetOrCompute(ctx, cache, "latest-products", 0, func(ctx context.Context) (payload, error) {
		return payload{Name: "laptop", Count: 1}, nil
	})
	require.NoError(t, err)

	assert.Equal(t, payload{Name: "laptop", Count: 1}, got)

	raw, ok := cache.Get(ctx, "latest-products")
	require.True(t, ok)
	assert.JSONEq(t, `{"name":"laptop","count":1}`, string(raw))
}
