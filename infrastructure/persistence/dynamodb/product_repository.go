package dynamodb

import (
	"context"
	"sort"
	"strings"
	"time"

	"storefront-backend/application/ports"
	"storefront-backend/domain/entities"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"go.uber.org/zap"

	apperrors "storefront-backend/pkg/errors"
)

// ProductRepository implements the ProductRepository interface using DynamoDB
type ProductRepository struct {
	client    *dynamodb.Client
	tableName string
	logger    *zap.Logger
}

// NewProductRepository creates a new ProductRepository
func NewProductRepository(client *dynamodb.Client, tableName string, logger *zap.Logger) ports.ProductRepository {
	return &ProductRepository{
		client:    client,
		tableName: tableName,
		logger:    logger,
	}
}

// productItem represents the DynamoDB item structure for a product
type productItem struct {
	PK        string  `dynamodbav:"PK"`
	Name      string  `dynamodbav:"Name"`
	NameLower string  `dynamodbav:"NameLower"`
	Photo     string  `dynamodbav:"Photo"`
	Price     float64 `dynamodbav:"Price"`
	Stock     int     `dynamodbav:"Stock"`
	Category  string  `dynamodbav:"Category"`
	CreatedAt string  `dynamodbav:"CreatedAt"`
	UpdatedAt string  `dynamodbav:"UpdatedAt"`
}

func toProductItem(p *entities.Product) productItem {
	return productItem{
		PK:        p.ID,
		Name:      p.Name,
		NameLower: strings.ToLower(p.Name),
		Photo:     p.Photo,
		Price:     p.Price,
		Stock:     p.Stock,
		Category:  p.Category,
		CreatedAt: p.CreatedAt.UTC().Format(time.RFC3339Nano),
		UpdatedAt: p.UpdatedAt.UTC().Format(time.RFC3339Nano),
	}
}

func (i productItem) toEntity() *entities.Product {
	createdAt, _ := time.Parse(time.RFC3339Nano, i.CreatedAt)
	updatedAt, _ := time.Parse(time.RFC3339Nano, i.UpdatedAt)
	return &entities.Product{
		ID:        i.PK,
		Name:      i.Name,
		Photo:     i.Photo,
		Price:     i.Price,
		Stock:     i.Stock,
		Category:  i.Category,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}
}

// Create persists a new product
func (r *ProductRepository) Create(ctx context.Context, product *entities.Product) error {
	return putItem(ctx, r.client, r.tableName, toProductItem(product))
}

// GetByID fetches one product
func (r *ProductRepository) GetByID(ctx context.Context, id string) (*entities.Product, error) {
	item, found, err := getItem[productItem](ctx, r.client, r.tableName, id)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, apperrors.NewNotFoundError("Product")
	}
	return item.toEntity(), nil
}

// Save overwrites an existing product
func (r *ProductRepository) Save(ctx context.Context, product *entities.Product) error {
	return putItem(ctx, r.client, r.tableName, toProductItem(product))
}

// Delete removes a product
func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	return deleteItem(ctx, r.client, r.tableName, id)
}

// Find returns the products matching filter. The server-side scan narrows by
// attribute conditions; sort, skip and limit run on the scanned set.
func (r *ProductRepository) Find(ctx context.Context, filter ports.ProductFilter) ([]*entities.Product, error) {
	expr, err := buildProductFilter(filter)
	if err != nil {
		return nil, err
	}

	items, err := scanAll[productItem](ctx, r.client, r.tableName, expr)
	if err != nil {
		return nil, err
	}

	products := make([]*entities.Product, 0, len(items))
	for _, item := range items {
		products = append(products, item.toEntity())
	}

	sortProducts(products, filter)

	if filter.Skip > 0 {
		if filter.Skip >= len(products) {
			return []*entities.Product{}, nil
		}
		products = products[filter.Skip:]
	}
	if filter.Limit > 0 && len(products) > filter.Limit {
		products = products[:filter.Limit]
	}

	return products, nil
}

// Count returns the number of products matching filter.
func (r *ProductRepository) Count(ctx context.Context, filter ports.ProductFilter) (int, error) {
	// Limit and Skip are pagination concerns, not part of the matched set.
	filter.Limit = 0
	filter.Skip = 0

	expr, err := buildProductFilter(filter)
	if err != nil {
		return 0, err
	}

	items, err := scanAll[productItem](ctx, r.client, r.tableName, expr)
	if err != nil {
		return 0, err
	}
	return len(items), nil
}

// DistinctCategories returns the sorted set of category values in use.
func (r *ProductRepository) DistinctCategories(ctx context.Context) ([]string, error) {
	items, err := scanAll[productItem](ctx, r.client, r.tableName, nil)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	categories := []string{}
	for _, item := range items {
		if !seen[item.Category] {
			seen[item.Category] = true
			categories = append(categories, item.Category)
		}
	}
	sort.Strings(categories)
	return categories, nil
}

func buildProductFilter(filter ports.ProductFilter) (*expression.Expression, error) {
	var cond expression.ConditionBuilder
	hasCond := false

	add := func(c expression.ConditionBuilder) {
		if !hasCond {
			cond = c
			hasCond = true
			return
		}
		cond = cond.And(c)
	}

	if filter.Search != "" {
		add(expression.Name("NameLower").Contains(strings.ToLower(filter.Search)))
	}
	if filter.Category != "" {
		add(expression.Name("Category").Equal(expression.Value(strings.ToLower(filter.Category))))
	}
	if filter.MaxPrice > 0 {
		add(expression.Name("Price").LessThanEqual(expression.Value(filter.MaxPrice)))
	}
	if filter.OutOfStock {
		add(expression.Name("Stock").Equal(expression.Value(0)))
	}
	if filter.CreatedWithin != nil {
		cond, hasCond = createdWithin(cond, hasCond, filter.CreatedWithin.Start, filter.CreatedWithin.End)
	}

	return buildFilter(cond, hasCond)
}

func sortProducts(products []*entities.Product, filter ports.ProductFilter) {
	switch {
	case filter.PriceSort == "asc":
		sort.SliceStable(products, func(i, j int) bool { return products[i].Price < products[j].Price })
	case filter.PriceSort == "desc":
		sort.SliceStable(products, func(i, j int) bool { return products[i].Price > products[j].Price })
	case filter.NewestFirst:
		sort.SliceStable(products, func(i, j int) bool { return products[i].CreatedAt.After(products[j].CreatedAt) })
	}
}
