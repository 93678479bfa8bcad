package entities

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Coupon grants a flat discount amount when its code is applied at checkout.
type Coupon struct {
	ID        string    `json:"_id"`
	Code      string    `json:"code"`
	Amount    float64   `json:"amount"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewCoupon creates a coupon.
func NewCoupon(code string, amount float64) (*Coupon, error) {
	if code == "" {
		return nil, errors.New("coupon code is required")
	}
	if amount <= 0 {
		return nil, errors.New("coupon amount must be positive")
	}
	return &Coupon{
		ID:        uuid.New().String(),
		Code:      code,
		Amount:    amount,
		CreatedAt: time.Now().UTC(),
	}, nil
}
