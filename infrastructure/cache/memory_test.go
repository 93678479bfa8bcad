package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetAndGet(t *testing.T) {
	c := NewInMemoryCache(Options{})
	defer c.Close()
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", []byte("v"), 0))

	got, ok := c.Get(ctx, "k")
	require.True(t, ok)
	assert.Equal(t, []byte("v"), got)
	assert.True(t, c.Has(ctx, "k"))
}

func TestGetMiss(t *testing.T) {
	c := NewInMemoryCache(Options{})
	defer c.Close()

	_, ok := c.Get(context.Background(), "absent")
	assert.False(t, ok)
}

func TestEntryExpires(t *testing.T) {
	c := NewInMemoryCache(Options{})
	defer c.Close()
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", []byte("v"), 10*time.Millisecond))

	_, ok := c.Get(ctx, "k")
	require.True(t, ok)

	time.Sleep(20 * time.Millisecond)

	_, ok = c.Get(ctx, "k")
	assert.False(t, ok)
}

func TestZeroTTLFallsBackToDefault(t *testing.T) {
	c := NewInMemoryCache(Options{DefaultTTL: 10 * time.Millisecond})
	defer c.Close()
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", []byte("v"), 0))

	time.Sleep(20 * time.Millisecond)

	_, ok := c.Get(ctx, "k")
	assert.False(t, ok)
}

func TestZeroTTLWithoutDefaultNeverExpires(t *testing.T) {
	c := NewInMemoryCache(Options{})
	defer c.Close()
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", []byte("v"), 0))

	time.Sleep(10 * time.Millisecond)

	_, ok := c.Get(ctx, "k")
	assert.True(t, ok)
}

func TestBulkDelete(t *testing.T) {
	c := NewInMemoryCache(Options{})
	defer c.Close()
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "a", []byte("1"), 0))
	require.NoError(t, c.Set(ctx, "b", []byte("2"), 0))
	require.NoError(t, c.Set(ctx, "c", []byte("3"), 0))

	require.NoError(t, c.Delete(ctx, "a", "b", "missing"))

	assert.False(t, c.Has(ctx, "a"))
	assert.False(t, c.Has(ctx, "b"))
	assert.True(t, c.Has(ctx, "c"))
}

func TestMaxEntriesDropsNewKeys(t *testing.T) {
	c := NewInMemoryCache(Options{MaxEntries: 2})
	defer c.Close()
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "a", []byte("1"), 0))
	require.NoError(t, c.Set(ctx, "b", []byte("2"), 0))

	// A third key is silently dropped at the cap.
	require.NoError(t, c.Set(ctx, "c", []byte("3"), 0))
	assert.False(t, c.Has(ctx, "c"))
	assert.Equal(t, 2, c.Len())

	// Existing keys can still be overwritten.
	require.NoError(t, c.Set(ctx, "a", []byte("updated"), 0))
	got, ok := c.Get(ctx, "a")
	require.True(t, ok)
	assert.Equal(t, []byte("updated"), got)
}

func TestCleanupSweepRemovesExpired(t *testing.T) {
	c := NewInMemoryCache(Options{CleanupInterval: 10 * time.Millisecond})
	defer c.Close()
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", []byte("v"), 5*time.Millisecond))

	assert.Eventually(t, func() bool {
		return c.Len() == 0
	}, 500*time.Millisecond, 10*time.Millisecond)
}
