package commands

import (
	"context"
	"errors"

	"storefront-backend/application/caching"
	"storefront-backend/application/commands/bus"
	"storefront-backend/application/ports"
	"storefront-backend/domain/entities"
	"storefront-backend/domain/events"

	"go.uber.org/zap"
)

// PlaceOrderCommand represents the command to place an order. Monetary
// fields arrive precomputed from the checkout flow.
type PlaceOrderCommand struct {
	ShippingInfo    entities.ShippingInfo `json:"shippingInfo" validate:"required"`
	UserID          string                `json:"user" validate:"required"`
	SubTotal        float64               `json:"subTotal" validate:"required,gt=0"`
	Tax             float64               `json:"tax" validate:"gte=0"`
	ShippingCharges float64               `json:"shippingCharges" validate:"gte=0"`
	Discount        float64               `json:"discount" validate:"gte=0"`
	Total           float64               `json:"total" validate:"required,gt=0"`
	Items           []entities.OrderItem  `json:"orderItems" validate:"required,min=1,dive"`
}

// Validate validates the command
func (cmd PlaceOrderCommand) Validate() error {
	if cmd.UserID == "" {
		return errors.New("user ID is required")
	}
	if len(cmd.Items) == 0 {
		return errors.New("order needs at least one item")
	}
	if cmd.Total <= 0 {
		return errors.New("order total must be positive")
	}
	return nil
}

// StockAdjustment records one line item's stock decrement.
type StockAdjustment struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
	Remaining int    `json:"remaining"`
}

// PlaceOrderResult is the order together with the stock decrements it caused.
type PlaceOrderResult struct {
	Order       *entities.Order   `json:"order"`
	Adjustments []StockAdjustment `json:"adjustments"`
}

// PlaceOrderHandler handles the PlaceOrderCommand
type PlaceOrderHandler struct {
	orders      ports.OrderRepository
	products    ports.ProductRepository
	invalidator *caching.Invalidator
	publisher   ports.EventPublisher
	logger      *zap.Logger
}

// NewPlaceOrderHandler creates a new handler instance
func NewPlaceOrderHandler(
	orders ports.OrderRepository,
	products ports.ProductRepository,
	invalidator *caching.Invalidator,
	publisher ports.EventPublisher,
	logger *zap.Logger,
) *PlaceOrderHandler {
	return &PlaceOrderHandler{
		orders:      orders,
		products:    products,
		invalidator: invalidator,
		publisher:   publisher,
		logger:      logger,
	}
}

// Handle executes the place order command. The order record is created
// first, then stock is decremented item by item. A missing product aborts
// the remaining decrements; the order and the decrements already applied
// stand, matching the store's long-standing checkout behavior.
func (h *PlaceOrderHandler) Handle(ctx context.Context, cmd bus.Command) (interface{}, error) {
	c, ok := cmd.(PlaceOrderCommand)
	if !ok {
		return nil, errors.New("unexpected command type")
	}

	order, err := entities.NewOrder(
		c.UserID, c.ShippingInfo, c.Items,
		c.SubTotal, c.Tax, c.ShippingCharges, c.Discount, c.Total,
	)
	if err != nil {
		return nil, err
	}

	if err := h.orders.Create(ctx, order); err != nil {
		return nil, err
	}

	adjustments := make([]StockAdjustment, 0, len(order.Items))
	for _, item := range order.Items {
		product, err := h.products.GetByID(ctx, item.ProductID)
		if err != nil {
			return nil, err
		}
		if err := product.ReduceStock(item.Quantity); err != nil {
			return nil, err
		}
		if err := h.products.Save(ctx, product); err != nil {
			return nil, err
		}
		adjustments = append(adjustments, StockAdjustment{
			ProductID: product.ID,
			Quantity:  item.Quantity,
			Remaining: product.Stock,
		})
	}

	// The new order is not cached yet, so no order-{id} key is named; the
	// empty-suffix key the flag expansion produces deletes nothing.
	h.invalidator.Invalidate(ctx, caching.Flags{
		Product:    true,
		Order:      true,
		Admin:      true,
		UserID:     order.UserID,
		ProductIDs: order.ProductIDs(),
	})

	if err := h.publisher.Publish(ctx, events.NewOrderPlaced(order.ID, order.UserID, order.Total, order.ProductIDs())); err != nil {
		h.logger.Warn("Failed to publish order placed event",
			zap.String("orderID", order.ID),
			zap.Error(err),
		)
	}

	return &PlaceOrderResult{Order: order, Adjustments: adjustments}, nil
}

// ProcessOrderCommand represents the command to advance an order's
// fulfillment status
type ProcessOrderCommand struct {
	OrderID string `json:"orderId" validate:"required"`
}

// Validate validates the command
func (cmd ProcessOrderCommand) Validate() error {
	if cmd.OrderID == "" {
		return errors.New("order ID is required")
	}
	return nil
}

// ProcessOrderHandler handles the ProcessOrderCommand
type ProcessOrderHandler struct {
	orders      ports.OrderRepository
	invalidator *caching.Invalidator
	publisher   ports.EventPublisher
	logger      *zap.Logger
}

// NewProcessOrderHandler creates a new handler instance
func NewProcessOrderHandler(
	orders ports.OrderRepository,
	invalidator *caching.Invalidator,
	publisher ports.EventPublisher,
	logger *zap.Logger,
) *ProcessOrderHandler {
	return &ProcessOrderHandler{
		orders:      orders,
		invalidator: invalidator,
		publisher:   publisher,
		logger:      logger,
	}
}

// Handle executes the process order command. Processing a delivered order is
// a no-op that still succeeds.
func (h *ProcessOrderHandler) Handle(ctx context.Context, cmd bus.Command) (interface{}, error) {
	c, ok := cmd.(ProcessOrderCommand)
	if !ok {
		return nil, errors.New("unexpected command type")
	}

	order, err := h.orders.GetByID(ctx, c.OrderID)
	if err != nil {
		return nil, err
	}

	advanced := order.AdvanceStatus()
	if advanced {
		if err := h.orders.Save(ctx, order); err != nil {
			return nil, err
		}
	}

	h.invalidator.Invalidate(ctx, caching.Flags{
		Order:   true,
		Admin:   true,
		UserID:  order.UserID,
		OrderID: order.ID,
	})

	if advanced {
		if err := h.publisher.Publish(ctx, events.NewOrderStatusChanged(order.ID, string(order.Status))); err != nil {
			h.logger.Warn("Failed to publish order status event",
				zap.String("orderID", order.ID),
				zap.Error(err),
			)
		}
	}

	return order, nil
}

// DeleteOrderCommand represents the command to remove an order
type DeleteOrderCommand struct {
	OrderID string `json:"orderId" validate:"required"`
}

// Validate validates the command
func (cmd DeleteOrderCommand) Validate() error {
	if cmd.OrderID == "" {
		return errors.New("order ID is required")
	}
	return nil
}

// DeleteOrderHandler handles the DeleteOrderCommand
type DeleteOrderHandler struct {
	orders      ports.OrderRepository
	invalidator *caching.Invalidator
	publisher   ports.EventPublisher
	logger      *zap.Logger
}

// NewDeleteOrderHandler creates a new handler instance
func NewDeleteOrderHandler(
	orders ports.OrderRepository,
	invalidator *caching.Invalidator,
	publisher ports.EventPublisher,
	logger *zap.Logger,
) *DeleteOrderHandler {
	return &DeleteOrderHandler{
		orders:      orders,
		invalidator: invalidator,
		publisher:   publisher,
		logger:      logger,
	}
}

// Handle executes the delete order command
func (h *DeleteOrderHandler) Handle(ctx context.Context, cmd bus.Command) (interface{}, error) {
	c, ok := cmd.(DeleteOrderCommand)
	if !ok {
		return nil, errors.New("unexpected command type")
	}

	order, err := h.orders.GetByID(ctx, c.OrderID)
	if err != nil {
		return nil, err
	}

	if err := h.orders.Delete(ctx, order.ID); err != nil {
		return nil, err
	}

	h.invalidator.Invalidate(ctx, caching.Flags{
		Order:   true,
		Admin:   true,
		UserID:  order.UserID,
		OrderID: order.ID,
	})

	if err := h.publisher.Publish(ctx, events.NewOrderDeleted(order.ID, order.UserID)); err != nil {
		h.logger.Warn("Failed to publish order deleted event",
			zap.String("orderID", order.ID),
			zap.Error(err),
		)
	}

	return order, nil
}
