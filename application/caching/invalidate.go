package caching

import (
	"context"

	"storefront-backend/application/ports"

	"go.uber.org/zap"
)

// Flags describes what a mutation touched. Each set flag expands to the key
// family it can have staled.
type Flags struct {
	Product bool
	Order   bool
	Admin   bool

	// UserID and OrderID parameterize the order keys. They may be empty;
	// the resulting empty-suffix key is deleted harmlessly.
	UserID  string
	OrderID string

	// ProductIDs parameterizes the product detail keys, one per affected
	// product.
	ProductIDs []string
}

// Invalidator maps mutation flags to cache deletions. Invalidation is
// fire-and-forget: failures are logged and never surface to the mutation
// that triggered them.
type Invalidator struct {
	cache  ports.Cache
	logger *zap.Logger
}

// NewInvalidator creates an invalidator over the given cache.
func NewInvalidator(cache ports.Cache, logger *zap.Logger) *Invalidator {
	return &Invalidator{cache: cache, logger: logger}
}

// Invalidate deletes exactly the keys implied by flags.
func (i *Invalidator) Invalidate(ctx context.Context, flags Flags) {
	var keys []string

	if flags.Product {
		keys = append(keys, KeyLatestProducts, KeyCategories, KeyAdminProducts)
		for _, id := range flags.ProductIDs {
			keys = append(keys, ProductKey(id))
		}
	}

	if flags.Order {
		keys = append(keys, KeyAllOrders, MyOrdersKey(flags.UserID), OrderKey(flags.OrderID))
	}

	if flags.Admin {
		keys = append(keys, adminKeys()...)
	}

	if len(keys) == 0 {
		return
	}

	if err := i.cache.Delete(ctx, keys...); err != nil {
		i.logger.Warn("Cache invalidation failed",
			zap.Strings("keys", keys),
			zap.Error(err),
		)
		return
	}

	i.logger.Debug("Cache invalidated", zap.Strings("keys", keys))
}
