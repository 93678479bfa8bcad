// Package commands holds the write-side operations. Each command carries the
// request payload and validates itself; its handler mutates the store, evicts
// the cache keys the mutation can have staled, and publishes domain events.
package commands

import (
	"context"
	"errors"
	"strings"

	"storefront-backend/application/caching"
	"storefront-backend/application/commands/bus"
	"storefront-backend/application/ports"
	"storefront-backend/domain/entities"
	"storefront-backend/domain/events"

	"go.uber.org/zap"
)

// CreateProductCommand represents the command to add a catalog entry
type CreateProductCommand struct {
	Name     string  `json:"name" validate:"required"`
	Photo    string  `json:"photo" validate:"required"`
	Price    float64 `json:"price" validate:"required,gt=0"`
	Stock    int     `json:"stock" validate:"gte=0"`
	Category string  `json:"category" validate:"required"`
}

// Validate validates the command
func (cmd CreateProductCommand) Validate() error {
	if cmd.Name == "" {
		return errors.New("product name is required")
	}
	if cmd.Category == "" {
		return errors.New("product category is required")
	}
	if cmd.Price <= 0 {
		return errors.New("product price must be positive")
	}
	return nil
}

// CreateProductHandler handles the CreateProductCommand
type CreateProductHandler struct {
	products    ports.ProductRepository
	invalidator *caching.Invalidator
	publisher   ports.EventPublisher
	logger      *zap.Logger
}

// NewCreateProductHandler creates a new handler instance
func NewCreateProductHandler(
	products ports.ProductRepository,
	invalidator *caching.Invalidator,
	publisher ports.EventPublisher,
	logger *zap.Logger,
) *CreateProductHandler {
	return &CreateProductHandler{
		products:    products,
		invalidator: invalidator,
		publisher:   publisher,
		logger:      logger,
	}
}

// Handle executes the create product command
func (h *CreateProductHandler) Handle(ctx context.Context, cmd bus.Command) (interface{}, error) {
	c, ok := cmd.(CreateProductCommand)
	if !ok {
		return nil, errors.New("unexpected command type")
	}

	product, err := entities.NewProduct(c.Name, c.Photo, c.Category, c.Price, c.Stock)
	if err != nil {
		return nil, err
	}

	if err := h.products.Create(ctx, product); err != nil {
		return nil, err
	}

	// A new product changes the listings and the dashboard aggregates but has
	// no cached detail entry yet.
	h.invalidator.Invalidate(ctx, caching.Flags{Product: true, Admin: true})

	if err := h.publisher.Publish(ctx, events.NewProductCreated(product.ID, product.Category)); err != nil {
		h.logger.Warn("Failed to publish product created event",
			zap.String("productID", product.ID),
			zap.Error(err),
		)
	}

	return product, nil
}

// UpdateProductCommand represents the command to edit a catalog entry. Nil
// fields leave the current value in place; Stock is a delta added to the
// current stock.
type UpdateProductCommand struct {
	ProductID string   `json:"productId" validate:"required"`
	Name      *string  `json:"name,omitempty"`
	Photo     *string  `json:"photo,omitempty"`
	Price     *float64 `json:"price,omitempty"`
	Stock     *int     `json:"stock,omitempty"`
	Category  *string  `json:"category,omitempty"`
}

// Validate validates the command
func (cmd UpdateProductCommand) Validate() error {
	if cmd.ProductID == "" {
		return errors.New("product ID is required")
	}
	if cmd.Price != nil && *cmd.Price <= 0 {
		return errors.New("product price must be positive")
	}
	return nil
}

// UpdateProductHandler handles the UpdateProductCommand
type UpdateProductHandler struct {
	products    ports.ProductRepository
	invalidator *caching.Invalidator
	publisher   ports.EventPublisher
	logger      *zap.Logger
}

// NewUpdateProductHandler creates a new handler instance
func NewUpdateProductHandler(
	products ports.ProductRepository,
	invalidator *caching.Invalidator,
	publisher ports.EventPublisher,
	logger *zap.Logger,
) *UpdateProductHandler {
	return &UpdateProductHandler{
		products:    products,
		invalidator: invalidator,
		publisher:   publisher,
		logger:      logger,
	}
}

// Handle executes the update product command
func (h *UpdateProductHandler) Handle(ctx context.Context, cmd bus.Command) (interface{}, error) {
	c, ok := cmd.(UpdateProductCommand)
	if !ok {
		return nil, errors.New("unexpected command type")
	}

	product, err := h.products.GetByID(ctx, c.ProductID)
	if err != nil {
		return nil, err
	}

	if c.Name != nil {
		product.Name = *c.Name
	}
	if c.Photo != nil {
		product.Photo = *c.Photo
	}
	if c.Price != nil {
		product.Price = *c.Price
	}
	if c.Stock != nil {
		product.AddStock(*c.Stock)
	}
	if c.Category != nil {
		product.Category = strings.ToLower(*c.Category)
	}

	if err := h.products.Save(ctx, product); err != nil {
		return nil, err
	}

	h.invalidator.Invalidate(ctx, caching.Flags{
		Product:    true,
		Admin:      true,
		ProductIDs: []string{product.ID},
	})

	if err := h.publisher.Publish(ctx, events.NewProductUpdated(product.ID)); err != nil {
		h.logger.Warn("Failed to publish product updated event",
			zap.String("productID", product.ID),
			zap.Error(err),
		)
	}

	return product, nil
}

// DeleteProductCommand represents the command to remove a catalog entry
type DeleteProductCommand struct {
	ProductID string `json:"productId" validate:"required"`
}

// Validate validates the command
func (cmd DeleteProductCommand) Validate() error {
	if cmd.ProductID == "" {
		return errors.New("product ID is required")
	}
	return nil
}

// DeleteProductHandler handles the DeleteProductCommand
type DeleteProductHandler struct {
	products    ports.ProductRepository
	invalidator *caching.Invalidator
	publisher   ports.EventPublisher
	logger      *zap.Logger
}

// NewDeleteProductHandler creates a new handler instance
func NewDeleteProductHandler(
	products ports.ProductRepository,
	invalidator *caching.Invalidator,
	publisher ports.EventPublisher,
	logger *zap.Logger,
) *DeleteProductHandler {
	return &DeleteProductHandler{
		products:    products,
		invalidator: invalidator,
		publisher:   publisher,
		logger:      logger,
	}
}

// Handle executes the delete product command
func (h *DeleteProductHandler) Handle(ctx context.Context, cmd bus.Command) (interface{}, error) {
	c, ok := cmd.(DeleteProductCommand)
	if !ok {
		return nil, errors.New("unexpected command type")
	}

	product, err := h.products.GetByID(ctx, c.ProductID)
	if err != nil {
		return nil, err
	}

	if err := h.products.Delete(ctx, product.ID); err != nil {
		return nil, err
	}

	h.invalidator.Invalidate(ctx, caching.Flags{
		Product:    true,
		Admin:      true,
		ProductIDs: []string{product.ID},
	})

	if err := h.publisher.Publish(ctx, events.NewProductDeleted(product.ID)); err != nil {
		h.logger.Warn("Failed to publish product deleted event",
			zap.String("productID", product.ID),
			zap.Error(err),
		)
	}

	return product, nil
}
