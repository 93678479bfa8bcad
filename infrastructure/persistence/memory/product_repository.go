// Package memory holds in-process implementations of the repository ports.
// They back local development and tests, where a DynamoDB endpoint is not
// available, with the same filter semantics.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"storefront-backend/application/ports"
	"storefront-backend/domain/entities"

	apperrors "storefront-backend/pkg/errors"
)

// ProductRepository is an in-memory ProductRepository
type ProductRepository struct {
	mu       sync.RWMutex
	products map[string]*entities.Product
}

// NewProductRepository creates an empty in-memory product repository
func NewProductRepository() *ProductRepository {
	return &ProductRepository{products: make(map[string]*entities.Product)}
}

// Create persists a new product
func (r *ProductRepository) Create(ctx context.Context, product *entities.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *product
	r.products[product.ID] = &clone
	return nil
}

// GetByID fetches one product
func (r *ProductRepository) GetByID(ctx context.Context, id string) (*entities.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	product, ok := r.products[id]
	if !ok {
		return nil, apperrors.NewNotFoundError("Product")
	}
	clone := *product
	return &clone, nil
}

// Save overwrites an existing product
func (r *ProductRepository) Save(ctx context.Context, product *entities.Product) error {
	return r.Create(ctx, product)
}

// Delete removes a product
func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.products, id)
	return nil
}

// Find returns the products matching filter
func (r *ProductRepository) Find(ctx context.Context, filter ports.ProductFilter) ([]*entities.Product, error) {
	r.mu.RLock()
	matched := []*entities.Product{}
	for _, product := range r.products {
		if matchesProduct(product, filter) {
			clone := *product
			matched = append(matched, &clone)
		}
	}
	r.mu.RUnlock()

	switch {
	case filter.PriceSort == "asc":
		sort.SliceStable(matched, func(i, j int) bool { return matched[i].Price < matched[j].Price })
	case filter.PriceSort == "desc":
		sort.SliceStable(matched, func(i, j int) bool { return matched[i].Price > matched[j].Price })
	default:
		// Map iteration order is random; default to newest first so listings
		// are deterministic.
		sort.SliceStable(matched, func(i, j int) bool { return matched[i].CreatedAt.After(matched[j].CreatedAt) })
	}

	if filter.Skip > 0 {
		if filter.Skip >= len(matched) {
			return []*entities.Product{}, nil
		}
		matched = matched[filter.Skip:]
	}
	if filter.Limit > 0 && len(matched) > filter.Limit {
		matched = matched[:filter.Limit]
	}

	return matched, nil
}

// Count returns the number of products matching filter
func (r *ProductRepository) Count(ctx context.Context, filter ports.ProductFilter) (int, error) {
	filter.Limit = 0
	filter.Skip = 0

	r.mu.RLock()
	defer r.mu.RUnlock()
	count := 0
	for _, product := range r.products {
		if matchesProduct(product, filter) {
			count++
		}
	}
	return count, nil
}

// DistinctCategories returns the sorted set of category values in use
func (r *ProductRepository) DistinctCategories(ctx context.Context) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[string]bool)
	categories := []string{}
	for _, product := range r.products {
		if !seen[product.Category] {
			seen[product.Category] = true
			categories = append(categories, product.Category)
		}
	}
	sort.Strings(categories)
	return categories, nil
}

func matchesProduct(product *entities.Product, filter ports.ProductFilter) bool {
	if filter.Search != "" &&
		!strings.Contains(strings.ToLower(product.Name), strings.ToLower(filter.Search)) {
		return false
	}
	if filter.Category != "" && product.Category != strings.ToLower(filter.Category) {
		return false
	}
	if filter.MaxPrice > 0 && product.Price > filter.MaxPrice {
		return false
	}
	if filter.OutOfStock && product.Stock != 0 {
		return false
	}
	if filter.CreatedWithin != nil &&
		(product.CreatedAt.Before(filter.CreatedWithin.Start) || product.CreatedAt.After(filter.CreatedWithin.End)) {
		return false
	}
	return true
}
