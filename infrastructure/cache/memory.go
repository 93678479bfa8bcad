package cache

import (
	"context"
	"sync"
	"time"
)

// Options configures the in-memory cache explicitly instead of relying on
// library defaults.
type Options struct {
	// DefaultTTL applies when Set is called with a zero ttl. Zero means
	// entries never expire until invalidated.
	DefaultTTL time.Duration

	// MaxEntries caps the map size. When full, sets of new keys are
	// dropped; existing keys can still be overwritten. Zero means no cap.
	MaxEntries int

	// CleanupInterval is the janitor's sweep period. Zero disables the
	// background sweep; expired entries are then dropped lazily on read.
	CleanupInterval time.Duration
}

// InMemoryCache provides a process-wide in-memory cache with per-entry
// expiry. Values are opaque serialized blobs.
type InMemoryCache struct {
	mu    sync.RWMutex
	items map[string]cacheItem
	opts  Options
	stop  chan struct{}
}

type cacheItem struct {
	value     []byte
	expiresAt time.Time // zero means no expiry
}

func (i cacheItem) expired(now time.Time) bool {
	return !i.expiresAt.IsZero() && now.After(i.expiresAt)
}

// NewInMemoryCache creates a cache and starts its cleanup goroutine when a
// sweep interval is configured.
func NewInMemoryCache(opts Options) *InMemoryCache {
	c := &InMemoryCache{
		items: make(map[string]cacheItem),
		opts:  opts,
		stop:  make(chan struct{}),
	}

	if opts.CleanupInterval > 0 {
		go c.cleanupExpired()
	}

	return c
}

// Has reports whether key holds a live entry.
func (c *InMemoryCache) Has(ctx context.Context, key string) bool {
	_, ok := c.Get(ctx, key)
	return ok
}

// Get retrieves a value from the cache.
func (c *InMemoryCache) Get(ctx context.Context, key string) ([]byte, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	item, exists := c.items[key]
	if !exists || item.expired(time.Now()) {
		return nil, false
	}

	return item.value, true
}

// Set stores a value. A zero ttl falls back to the configured default TTL;
// if that is also zero the entry lives until invalidated.
func (c *InMemoryCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.items[key]; !exists &&
		c.opts.MaxEntries > 0 && len(c.items) >= c.opts.MaxEntries {
		return nil
	}

	if ttl == 0 {
		ttl = c.opts.DefaultTTL
	}

	var expiresAt time.Time
	if ttl > 0 {
		expiresAt = time.Now().Add(ttl)
	}

	c.items[key] = cacheItem{value: value, expiresAt: expiresAt}
	return nil
}

// Delete removes every named key in one call. Unknown keys are ignored.
func (c *InMemoryCache) Delete(ctx context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, key := range keys {
		delete(c.items, key)
	}
	return nil
}

// Len returns the number of stored entries, expired or not.
func (c *InMemoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// Close stops the cleanup goroutine.
func (c *InMemoryCache) Close() {
	close(c.stop)
}

// cleanupExpired periodically removes expired items.
func (c *InMemoryCache) cleanupExpired() {
	ticker := time.NewTicker(c.opts.CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-c.stop:
			return
		case <-ticker.C:
			c.mu.Lock()
			now := time.Now()
			for key, item := range c.items {
				if item.expired(now) {
					delete(c.items, key)
				}
			}
			c.mu.Unlock()
		}
	}
}
