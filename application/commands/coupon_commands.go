package commands

import (
	"context"
	"errors"

	"storefront-backend/application/commands/bus"
	"storefront-backend/application/ports"
	"storefront-backend/domain/entities"
	"storefront-backend/domain/events"

	apperrors "storefront-backend/pkg/errors"

	"go.uber.org/zap"
)

// CreateCouponCommand represents the command to issue a discount code
type CreateCouponCommand struct {
	Code   string  `json:"coupon" validate:"required"`
	Amount float64 `json:"amount" validate:"required,gt=0"`
}

// Validate validates the command
func (cmd CreateCouponCommand) Validate() error {
	if cmd.Code == "" {
		return errors.New("coupon code is required")
	}
	if cmd.Amount <= 0 {
		return errors.New("coupon amount must be positive")
	}
	return nil
}

// CreateCouponHandler handles the CreateCouponCommand
type CreateCouponHandler struct {
	coupons   ports.CouponRepository
	publisher ports.EventPublisher
	logger    *zap.Logger
}

// NewCreateCouponHandler creates a new handler instance
func NewCreateCouponHandler(
	coupons ports.CouponRepository,
	publisher ports.EventPublisher,
	logger *zap.Logger,
) *CreateCouponHandler {
	return &CreateCouponHandler{
		coupons:   coupons,
		publisher: publisher,
		logger:    logger,
	}
}

// Handle executes the create coupon command
func (h *CreateCouponHandler) Handle(ctx context.Context, cmd bus.Command) (interface{}, error) {
	c, ok := cmd.(CreateCouponCommand)
	if !ok {
		return nil, errors.New("unexpected command type")
	}

	if existing, err := h.coupons.GetByCode(ctx, c.Code); err == nil && existing != nil {
		return nil, apperrors.NewConflictError("Coupon already exists")
	} else if err != nil && !apperrors.IsNotFound(err) {
		return nil, err
	}

	coupon, err := entities.NewCoupon(c.Code, c.Amount)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	if err := h.coupons.Create(ctx, coupon); err != nil {
		return nil, err
	}

	if err := h.publisher.Publish(ctx, events.NewCouponCreated(coupon.ID, coupon.Code, coupon.Amount)); err != nil {
		h.logger.Warn("Failed to publish coupon created event",
			zap.String("couponID", coupon.ID),
			zap.Error(err),
		)
	}

	return coupon, nil
}

// DeleteCouponCommand represents the command to revoke a discount code
type DeleteCouponCommand struct {
	CouponID string `json:"couponId" validate:"required"`
}

// Validate validates the command
func (cmd DeleteCouponCommand) Validate() error {
	if cmd.CouponID == "" {
		return errors.New("coupon ID is required")
	}
	return nil
}

// DeleteCouponHandler handles the DeleteCouponCommand
type DeleteCouponHandler struct {
	coupons ports.CouponRepository
	logger  *zap.Logger
}

// NewDeleteCouponHandler creates a new handler instance
func NewDeleteCouponHandler(coupons ports.CouponRepository, logger *zap.Logger) *DeleteCouponHandler {
	return &DeleteCouponHandler{coupons: coupons, logger: logger}
}

// Handle executes the delete coupon command
func (h *DeleteCouponHandler) Handle(ctx context.Context, cmd bus.Command) (interface{}, error) {
	c, ok := cmd.(DeleteCouponCommand)
	if !ok {
		return nil, errors.New("unexpected command type")
	}

	coupon, err := h.coupons.GetByID(ctx, c.CouponID)
	if err != nil {
		return nil, err
	}

	if err := h.coupons.Delete(ctx, coupon.ID); err != nil {
		return nil, err
	}

	return coupon, nil
}
