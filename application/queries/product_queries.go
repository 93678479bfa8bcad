// Package queries holds the read-side operations. The hot catalog and order
// reads go through the cache under well-known keys; everything else hits the
// store directly.
package queries

import (
	"context"
	"errors"
	"math"

	"storefront-backend/application/caching"
	"storefront-backend/application/ports"
	"storefront-backend/application/queries/bus"
	"storefront-backend/domain/entities"
)

// LatestProductsQuery represents a query for the newest catalog entries
type LatestProductsQuery struct{}

// Validate validates the LatestProductsQuery
func (q LatestProductsQuery) Validate() error { return nil }

// LatestProductsHandler serves the storefront's landing strip: the five
// newest products, cached under a single shared key.
type LatestProductsHandler struct {
	products ports.ProductRepository
	cache    ports.Cache
}

// NewLatestProductsHandler creates a new handler instance
func NewLatestProductsHandler(products ports.ProductRepository, cache ports.Cache) *LatestProductsHandler {
	return &LatestProductsHandler{products: products, cache: cache}
}

// Handle executes the latest products query
func (h *LatestProductsHandler) Handle(ctx context.Context, query bus.Query) (interface{}, error) {
	if _, ok := query.(LatestProductsQuery); !ok {
		return nil, errors.New("unexpected query type")
	}

	return caching.GetOrCompute(ctx, h.cache, caching.KeyLatestProducts, 0,
		func(ctx context.Context) ([]*entities.Product, error) {
			return h.products.Find(ctx, ports.ProductFilter{NewestFirst: true, Limit: 5})
		})
}

// CategoriesQuery represents a query for the distinct product categories
type CategoriesQuery struct{}

// Validate validates the CategoriesQuery
func (q CategoriesQuery) Validate() error { return nil }

// CategoriesHandler handles the CategoriesQuery
type CategoriesHandler struct {
	products ports.ProductRepository
	cache    ports.Cache
}

// NewCategoriesHandler creates a new handler instance
func NewCategoriesHandler(products ports.ProductRepository, cache ports.Cache) *CategoriesHandler {
	return &CategoriesHandler{products: products, cache: cache}
}

// Handle executes the categories query
func (h *CategoriesHandler) Handle(ctx context.Context, query bus.Query) (interface{}, error) {
	if _, ok := query.(CategoriesQuery); !ok {
		return nil, errors.New("unexpected query type")
	}

	return caching.GetOrCompute(ctx, h.cache, caching.KeyCategories, 0,
		func(ctx context.Context) ([]string, error) {
			return h.products.DistinctCategories(ctx)
		})
}

// AdminProductsQuery represents the admin's full catalog listing
type AdminProductsQuery struct{}

// Validate validates the AdminProductsQuery
func (q AdminProductsQuery) Validate() error { return nil }

// AdminProductsHandler handles the AdminProductsQuery
type AdminProductsHandler struct {
	products ports.ProductRepository
	cache    ports.Cache
}

// NewAdminProductsHandler creates a new handler instance
func NewAdminProductsHandler(products ports.ProductRepository, cache ports.Cache) *AdminProductsHandler {
	return &AdminProductsHandler{products: products, cache: cache}
}

// Handle executes the admin products query
func (h *AdminProductsHandler) Handle(ctx context.Context, query bus.Query) (interface{}, error) {
	if _, ok := query.(AdminProductsQuery); !ok {
		return nil, errors.New("unexpected query type")
	}

	return caching.GetOrCompute(ctx, h.cache, caching.KeyAdminProducts, 0,
		func(ctx context.Context) ([]*entities.Product, error) {
			return h.products.Find(ctx, ports.ProductFilter{})
		})
}

// GetProductQuery represents a query for a single product's detail
type GetProductQuery struct {
	ProductID string
}

// Validate validates the GetProductQuery
func (q GetProductQuery) Validate() error {
	if q.ProductID == "" {
		return errors.New("product ID is required")
	}
	return nil
}

// GetProductHandler handles the GetProductQuery
type GetProductHandler struct {
	products ports.ProductRepository
	cache    ports.Cache
}

// NewGetProductHandler creates a new handler instance
func NewGetProductHandler(products ports.ProductRepository, cache ports.Cache) *GetProductHandler {
	return &GetProductHandler{products: products, cache: cache}
}

// Handle executes the get product query
func (h *GetProductHandler) Handle(ctx context.Context, query bus.Query) (interface{}, error) {
	q, ok := query.(GetProductQuery)
	if !ok {
		return nil, errors.New("unexpected query type")
	}

	return caching.GetOrCompute(ctx, h.cache, caching.ProductKey(q.ProductID), 0,
		func(ctx context.Context) (*entities.Product, error) {
			return h.products.GetByID(ctx, q.ProductID)
		})
}

// SearchProductsQuery filters the storefront catalog. Results are paginated
// and never cached; the filter space is too wide for the key taxonomy.
type SearchProductsQuery struct {
	Search   string
	Category string
	MaxPrice float64
	Sort     string // "asc" or "desc" by price
	Page     int
}

// Validate validates the SearchProductsQuery
func (q SearchProductsQuery) Validate() error {
	if q.Sort != "" && q.Sort != "asc" && q.Sort != "desc" {
		return errors.New("sort must be asc or desc")
	}
	if q.Page < 0 {
		return errors.New("page cannot be negative")
	}
	return nil
}

// SearchProductsResult pages the filtered catalog.
type SearchProductsResult struct {
	Products  []*entities.Product `json:"products"`
	TotalPage int                 `json:"totalPage"`
}

// SearchProductsHandler handles the SearchProductsQuery
type SearchProductsHandler struct {
	products        ports.ProductRepository
	productsPerPage int
}

// NewSearchProductsHandler creates a new handler instance
func NewSearchProductsHandler(products ports.ProductRepository, productsPerPage int) *SearchProductsHandler {
	if productsPerPage <= 0 {
		productsPerPage = 8
	}
	return &SearchProductsHandler{products: products, productsPerPage: productsPerPage}
}

// Handle executes the search products query
func (h *SearchProductsHandler) Handle(ctx context.Context, query bus.Query) (interface{}, error) {
	q, ok := query.(SearchProductsQuery)
	if !ok {
		return nil, errors.New("unexpected query type")
	}

	page := q.Page
	if page < 1 {
		page = 1
	}

	filter := ports.ProductFilter{
		Search:    q.Search,
		Category:  q.Category,
		MaxPrice:  q.MaxPrice,
		PriceSort: q.Sort,
	}

	total, err := h.products.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	filter.Limit = h.productsPerPage
	filter.Skip = h.productsPerPage * (page - 1)

	products, err := h.products.Find(ctx, filter)
	if err != nil {
		return nil, err
	}

	return &SearchProductsResult{
		Products:  products,
		TotalPage: int(math.Ceil(float64(total) / float64(h.productsPerPage))),
	}, nil
}
