package queries

import (
	"context"
	"errors"

	"storefront-backend/application/caching"
	"storefront-backend/application/ports"
	"storefront-backend/application/queries/bus"
	"storefront-backend/domain/entities"

	apperrors "storefront-backend/pkg/errors"
)

// MyOrdersQuery represents a query for one customer's orders
type MyOrdersQuery struct {
	UserID string
}

// Validate validates the MyOrdersQuery
func (q MyOrdersQuery) Validate() error {
	if q.UserID == "" {
		return errors.New("user ID is required")
	}
	return nil
}

// MyOrdersHandler handles the MyOrdersQuery
type MyOrdersHandler struct {
	orders ports.OrderRepository
	cache  ports.Cache
}

// NewMyOrdersHandler creates a new handler instance
func NewMyOrdersHandler(orders ports.OrderRepository, cache ports.Cache) *MyOrdersHandler {
	return &MyOrdersHandler{orders: orders, cache: cache}
}

// Handle executes the my orders query
func (h *MyOrdersHandler) Handle(ctx context.Context, query bus.Query) (interface{}, error) {
	q, ok := query.(MyOrdersQuery)
	if !ok {
		return nil, errors.New("unexpected query type")
	}

	return caching.GetOrCompute(ctx, h.cache, caching.MyOrdersKey(q.UserID), 0,
		func(ctx context.Context) ([]*entities.Order, error) {
			return h.orders.Find(ctx, ports.OrderFilter{UserID: q.UserID})
		})
}

// AllOrdersQuery represents the admin listing of every order
type AllOrdersQuery struct{}

// Validate validates the AllOrdersQuery
func (q AllOrdersQuery) Validate() error { return nil }

// AllOrdersHandler handles the AllOrdersQuery. Each order is decorated with
// the customer's name and email for the admin table.
type AllOrdersHandler struct {
	orders ports.OrderRepository
	users  ports.UserRepository
	cache  ports.Cache
}

// NewAllOrdersHandler creates a new handler instance
func NewAllOrdersHandler(orders ports.OrderRepository, users ports.UserRepository, cache ports.Cache) *AllOrdersHandler {
	return &AllOrdersHandler{orders: orders, users: users, cache: cache}
}

// Handle executes the all orders query
func (h *AllOrdersHandler) Handle(ctx context.Context, query bus.Query) (interface{}, error) {
	if _, ok := query.(AllOrdersQuery); !ok {
		return nil, errors.New("unexpected query type")
	}

	return caching.GetOrCompute(ctx, h.cache, caching.KeyAllOrders, 0,
		func(ctx context.Context) ([]*entities.Order, error) {
			orders, err := h.orders.Find(ctx, ports.OrderFilter{})
			if err != nil {
				return nil, err
			}

			for _, order := range orders {
				user, err := h.users.GetByID(ctx, order.UserID)
				if err != nil {
					// Deleted accounts leave their orders unattributed.
					if apperrors.IsNotFound(err) {
						continue
					}
					return nil, err
				}
				order.UserName = user.Name
				order.UserEmail = user.Email
			}

			return orders, nil
		})
}

// GetOrderQuery represents a query for a single order's detail
type GetOrderQuery struct {
	OrderID string
}

// Validate validates the GetOrderQuery
func (q GetOrderQuery) Validate() error {
	if q.OrderID == "" {
		return errors.New("order ID is required")
	}
	return nil
}

// GetOrderHandler handles the GetOrderQuery
type GetOrderHandler struct {
	orders ports.OrderRepository
	cache  ports.Cache
}

// NewGetOrderHandler creates a new handler instance
func NewGetOrderHandler(orders ports.OrderRepository, cache ports.Cache) *GetOrderHandler {
	return &GetOrderHandler{orders: orders, cache: cache}
}

// Handle executes the get order query
func (h *GetOrderHandler) Handle(ctx context.Context, query bus.Query) (interface{}, error) {
	q, ok := query.(GetOrderQuery)
	if !ok {
		return nil, errors.New("unexpected query type")
	}

	return caching.GetOrCompute(ctx, h.cache, caching.OrderKey(q.OrderID), 0,
		func(ctx context.Context) (*entities.Order, error) {
			return h.orders.GetByID(ctx, q.OrderID)
		})
}
