package memory

import (
	"context"
	"sort"
	"sync"

	"storefront-backend/application/ports"
	"storefront-backend/domain/entities"

	apperrors "storefront-backend/pkg/errors"
)

// OrderRepository is an in-memory OrderRepository
type OrderRepository struct {
	mu     sync.RWMutex
	orders map[string]*entities.Order
}

// NewOrderRepository creates an empty in-memory order repository
func NewOrderRepository() *OrderRepository {
	return &OrderRepository{orders: make(map[string]*entities.Order)}
}

// Create persists a new order
func (r *OrderRepository) Create(ctx context.Context, order *entities.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *order
	r.orders[order.ID] = &clone
	return nil
}

// GetByID fetches one order
func (r *OrderRepository) GetByID(ctx context.Context, id string) (*entities.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	order, ok := r.orders[id]
	if !ok {
		return nil, apperrors.NewNotFoundError("Order")
	}
	clone := *order
	return &clone, nil
}

// Save overwrites an existing order
func (r *OrderRepository) Save(ctx context.Context, order *entities.Order) error {
	return r.Create(ctx, order)
}

// Delete removes an order
func (r *OrderRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.orders, id)
	return nil
}

// Find returns the orders matching filter, newest first
func (r *OrderRepository) Find(ctx context.Context, filter ports.OrderFilter) ([]*entities.Order, error) {
	r.mu.RLock()
	matched := []*entities.Order{}
	for _, order := range r.orders {
		if matchesOrder(order, filter) {
			clone := *order
			matched = append(matched, &clone)
		}
	}
	r.mu.RUnlock()

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	if filter.Limit > 0 && len(matched) > filter.Limit {
		matched = matched[:filter.Limit]
	}

	return matched, nil
}

// Count returns the number of orders matching filter
func (r *OrderRepository) Count(ctx context.Context, filter ports.OrderFilter) (int, error) {
	filter.Limit = 0
	orders, err := r.Find(ctx, filter)
	if err != nil {
		return 0, err
	}
	return len(orders), nil
}

func matchesOrder(order *entities.Order, filter ports.OrderFilter) bool {
	if filter.UserID != "" && order.UserID != filter.UserID {
		return false
	}
	if filter.Status != "" && order.Status != filter.Status {
		return false
	}
	if filter.CreatedWithin != nil &&
		(order.CreatedAt.Before(filter.CreatedWithin.Start) || order.CreatedAt.After(filter.CreatedWithin.End)) {
		return false
	}
	return true
}
