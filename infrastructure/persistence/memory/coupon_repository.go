package memory

import (
	"context"
	"sort"
	"sync"

	"storefront-backend/domain/entities"

	apperrors "storefront-backend/pkg/errors"
)

// CouponRepository is an in-memory CouponRepository
type CouponRepository struct {
	mu      sync.RWMutex
	coupons map[string]*entities.Coupon
}

// NewCouponRepository creates an empty in-memory coupon repository
func NewCouponRepository() *CouponRepository {
	return &CouponRepository{coupons: make(map[string]*entities.Coupon)}
}

// Create persists a new coupon
func (r *CouponRepository) Create(ctx context.Context, coupon *entities.Coupon) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *coupon
	r.coupons[coupon.ID] = &clone
	return nil
}

// GetByID fetches one coupon
func (r *CouponRepository) GetByID(ctx context.Context, id string) (*entities.Coupon, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	coupon, ok := r.coupons[id]
	if !ok {
		return nil, apperrors.NewNotFoundError("Coupon")
	}
	clone := *coupon
	return &clone, nil
}

// GetByCode resolves a coupon by its code
func (r *CouponRepository) GetByCode(ctx context.Context, code string) (*entities.Coupon, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, coupon := range r.coupons {
		if coupon.Code == code {
			clone := *coupon
			return &clone, nil
		}
	}
	return nil, apperrors.NewNotFoundError("Coupon")
}

// Delete removes a coupon
func (r *CouponRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.coupons, id)
	return nil
}

// FindAll returns every coupon
func (r *CouponRepository) FindAll(ctx context.Context) ([]*entities.Coupon, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	coupons := make([]*entities.Coupon, 0, len(r.coupons))
	for _, coupon := range r.coupons {
		clone := *coupon
		coupons = append(coupons, &clone)
	}
	sort.SliceStable(coupons, func(i, j int) bool {
		return coupons[i].CreatedAt.Before(coupons[j].CreatedAt)
	})
	return coupons, nil
}
