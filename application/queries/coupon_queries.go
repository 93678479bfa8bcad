package queries

import (
	"context"
	"errors"

	"storefront-backend/application/ports"
	"storefront-backend/application/queries/bus"

	apperrors "storefront-backend/pkg/errors"
)

// AllCouponsQuery represents the admin listing of every coupon
type AllCouponsQuery struct{}

// Validate validates the AllCouponsQuery
func (q AllCouponsQuery) Validate() error { return nil }

// AllCouponsHandler handles the AllCouponsQuery
type AllCouponsHandler struct {
	coupons ports.CouponRepository
}

// NewAllCouponsHandler creates a new handler instance
func NewAllCouponsHandler(coupons ports.CouponRepository) *AllCouponsHandler {
	return &AllCouponsHandler{coupons: coupons}
}

// Handle executes the all coupons query
func (h *AllCouponsHandler) Handle(ctx context.Context, query bus.Query) (interface{}, error) {
	if _, ok := query.(AllCouponsQuery); !ok {
		return nil, errors.New("unexpected query type")
	}
	return h.coupons.FindAll(ctx)
}

// ApplyDiscountQuery resolves a coupon code to its discount amount
type ApplyDiscountQuery struct {
	Code string
}

// Validate validates the ApplyDiscountQuery
func (q ApplyDiscountQuery) Validate() error {
	if q.Code == "" {
		return errors.New("coupon code is required")
	}
	return nil
}

// ApplyDiscountResult carries the resolved discount.
type ApplyDiscountResult struct {
	Discount float64 `json:"discount"`
}

// ApplyDiscountHandler handles the ApplyDiscountQuery
type ApplyDiscountHandler struct {
	coupons ports.CouponRepository
}

// NewApplyDiscountHandler creates a new handler instance
func NewApplyDiscountHandler(coupons ports.CouponRepository) *ApplyDiscountHandler {
	return &ApplyDiscountHandler{coupons: coupons}
}

// Handle executes the apply discount query. An unknown code is reported as
// invalid rather than missing so clients show a form error, not a 404 page.
func (h *ApplyDiscountHandler) Handle(ctx context.Context, query bus.Query) (interface{}, error) {
	q, ok := query.(ApplyDiscountQuery)
	if !ok {
		return nil, errors.New("unexpected query type")
	}

	coupon, err := h.coupons.GetByCode(ctx, q.Code)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, apperrors.NewValidationError("Invalid Coupon Code")
		}
		return nil, err
	}

	return &ApplyDiscountResult{Discount: coupon.Amount}, nil
}
