package caching

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

// recordingCache captures Delete calls and can simulate failures.
type recordingCache struct {
	deleted   []string
	deleteErr error
}

func (c *recordingCache) Has(ctx context.Context, key string) bool           { return false }
func (c *recordingCache) Get(ctx context.Context, key string) ([]byte, bool) { return nil, false }
func (c *recordingCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return nil
}

func (c *recordingCache) Delete(ctx context.Context, keys ...string) error {
	if c.deleteErr != nil {
		return c.deleteErr
	}
	c.deleted = append(c.deleted, keys...)
	return nil
}

func TestInvalidateProductFlags(t *testing.T) {
	cache := &recordingCache{}
	inv := NewInvalidator(cache, zap.NewNop())

	inv.Invalidate(context.Background(), Flags{
		Product:    true,
		ProductIDs: []string{"p1", "p2"},
	})

	assert.ElementsMatch(t, []string{
		"latest-products", "categories", "admin-products",
		"product-p1", "product-p2",
	}, cache.deleted)
}

func TestInvalidateOrderFlags(t *testing.T) {
	cache := &recordingCache{}
	inv := NewInvalidator(cache, zap.NewNop())

	inv.Invalidate(context.Background(), Flags{
		Order:   true,
		UserID:  "u1",
		OrderID: "o1",
	})

	assert.ElementsMatch(t, []string{
		"all-order", "my-order-u1", "order-o1",
	}, cache.deleted)
}

func TestInvalidateOrderFlagsWithoutIDs(t *testing.T) {
	cache := &recordingCache{}
	inv := NewInvalidator(cache, zap.NewNop())

	inv.Invalidate(context.Background(), Flags{Order: true})

	// Empty-suffix keys are deleted harmlessly; nothing is ever stored
	// under them.
	assert.ElementsMatch(t, []string{
		"all-order", "my-order-", "order-",
	}, cache.deleted)
}

func TestInvalidateAdminFlags(t *testing.T) {
	cache := &recordingCache{}
	inv := NewInvalidator(cache, zap.NewNop())

	inv.Invalidate(context.Background(), Flags{Admin: true})

	assert.ElementsMatch(t, []string{
		"admin-stats", "admin-pie-charts", "admin-bar-charts", "admin-line-charts",
	}, cache.deleted)
}

func TestInvalidateCombinedFlags(t *testing.T) {
	cache := &recordingCache{}
	inv := NewInvalidator(cache, zap.NewNop())

	inv.Invalidate(context.Background(), Flags{
		Product:    true,
		Order:      true,
		Admin:      true,
		UserID:     "u1",
		ProductIDs: []string{"p1"},
	})

	assert.ElementsMatch(t, []string{
		"latest-products", "categories", "admin-products", "product-p1",
		"all-order", "my-order-u1", "order-",
		"admin-stats", "admin-pie-charts", "admin-bar-charts", "admin-line-charts",
	}, cache.deleted)
}

func TestInvalidateNoFlagsIsNoop(t *testing.T) {
	cache := &recordingCache{}
	inv := NewInvalidator(cache, zap.NewNop())

	inv.Invalidate(context.Background(), Flags{UserID: "u1", OrderID: "o1"})

	assert.Empty(t, cache.deleted)
}

func TestInvalidateSwallowsDeleteFailure(t *testing.T) {
	cache := &recordingCache{deleteErr: errors.New("cache down")}
	inv := NewInvalidator(cache, zap.NewNop())

	// Must not panic or propagate; invalidation is fire-and-forget.
	inv.Invalidate(context.Background(), Flags{Admin: true})

	assert.Empty(t, cache.deleted)
}
