package ports

import (
	"context"
	"time"

	"storefront-backend/domain/entities"
	"storefront-backend/domain/events"
)

// TimeRange bounds a createdAt window, inclusive on both ends.
type TimeRange struct {
	Start time.Time
	End   time.Time
}

// ProductFilter narrows product queries. Zero values mean "no constraint".
type ProductFilter struct {
	Search        string // substring match on name, case-insensitive
	Category      string
	MaxPrice      float64
	CreatedWithin *TimeRange
	OutOfStock    bool   // stock == 0 only
	PriceSort     string // "asc" or "desc"
	NewestFirst   bool
	Limit         int
	Skip          int
}

// ProductRepository is the product collection.
// This is a port in hexagonal architecture - the domain doesn't know about
// the implementation.
type ProductRepository interface {
	Create(ctx context.Context, product *entities.Product) error
	GetByID(ctx context.Context, id string) (*entities.Product, error)
	Save(ctx context.Context, product *entities.Product) error
	Delete(ctx context.Context, id string) error
	Find(ctx context.Context, filter ProductFilter) ([]*entities.Product, error)
	Count(ctx context.Context, filter ProductFilter) (int, error)
	DistinctCategories(ctx context.Context) ([]string, error)
}

// UserFilter narrows user queries. Zero values mean "no constraint".
type UserFilter struct {
	Gender        entities.Gender
	Role          entities.Role
	CreatedWithin *TimeRange
}

// UserRepository is the user collection.
type UserRepository interface {
	Create(ctx context.Context, user *entities.User) error
	GetByID(ctx context.Context, id string) (*entities.User, error)
	Delete(ctx context.Context, id string) error
	Find(ctx context.Context, filter UserFilter) ([]*entities.User, error)
	Count(ctx context.Context, filter UserFilter) (int, error)
}

// OrderFilter narrows order queries. Zero values mean "no constraint".
type OrderFilter struct {
	UserID        string
	Status        entities.OrderStatus
	CreatedWithin *TimeRange
	Limit         int
}

// OrderRepository is the order collection.
type OrderRepository interface {
	Create(ctx context.Context, order *entities.Order) error
	GetByID(ctx context.Context, id string) (*entities.Order, error)
	Save(ctx context.Context, order *entities.Order) error
	Delete(ctx context.Context, id string) error
	Find(ctx context.Context, filter OrderFilter) ([]*entities.Order, error)
	Count(ctx context.Context, filter OrderFilter) (int, error)
}

// CouponRepository is the coupon collection.
type CouponRepository interface {
	Create(ctx context.Context, coupon *entities.Coupon) error
	GetByID(ctx context.Context, id string) (*entities.Coupon, error)
	GetByCode(ctx context.Context, code string) (*entities.Coupon, error)
	Delete(ctx context.Context, id string) error
	FindAll(ctx context.Context) ([]*entities.Coupon, error)
}

// Cache is a process-wide key/value store with per-entry expiry. Values are
// opaque serialized blobs; encoding is the caller's concern.
type Cache interface {
	// Has reports whether key holds a live entry.
	Has(ctx context.Context, key string) bool

	// Get retrieves a value. The second return is false on miss or expiry.
	Get(ctx context.Context, key string) ([]byte, bool)

	// Set stores a value. A zero ttl uses the cache's default.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes every named key in one call.
	Delete(ctx context.Context, keys ...string) error
}

// EventPublisher sends domain events to the bus after mutations commit.
type EventPublisher interface {
	Publish(ctx context.Context, event events.DomainEvent) error
	PublishBatch(ctx context.Context, events []events.DomainEvent) error
}

// PaymentIntent is the gateway's handle for a pending charge.
type PaymentIntent struct {
	ID           string
	ClientSecret string
	Amount       int64 // smallest currency unit
	Currency     string
}

// PaymentGateway creates payment intents with the external processor.
type PaymentGateway interface {
	CreateIntent(ctx context.Context, amount int64, currency string) (*PaymentIntent, error)
}
