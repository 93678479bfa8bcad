package caching

import (
	"context"
	"encoding/json"
	"time"

	"storefront-backend/application/ports"
)

// GetOrCompute is the read-through pattern: return the cached value under
// key if present, otherwise run compute, store its JSON encoding under key,
// and return it. A zero ttl leaves the entry at the cache's default
// lifetime, so it lives until invalidated.
//
// Concurrent misses on the same key may each run compute and overwrite one
// another's entry; there is no single-flight coalescing. The last write
// wins, and every caller still receives a correct value.
func GetOrCompute[T any](ctx context.Context, cache ports.Cache, key string, ttl time.Duration, compute func(ctx context.Context) (T, error)) (T, error) {
	var result T

	if raw, ok := cache.Get(ctx, key); ok {
		if err := json.Unmarshal(raw, &result); err == nil {
			return result, nil
		}
		// An undecodable entry is treated as a miss and overwritten below.
	}

	result, err := compute(ctx)
	if err != nil {
		return result, err
	}

	raw, err := json.Marshal(result)
	if err != nil {
		return result, err
	}

	if err := cache.Set(ctx, key, raw, ttl); err != nil {
		return result, err
	}

	return result, nil
}
