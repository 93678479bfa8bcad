package memory

import (
	"context"
	"testing"
	"time"

	"storefront-backend/application/ports"
	"storefront-backend/domain/entities"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustProduct(t *testing.T, name, category string, price float64, stock int) *entities.Product {
	t.Helper()
	product, err := entities.NewProduct(name, "uploads/"+name+".jpg", category, price, stock)
	require.NoError(t, err)
	return product
}

func seedCatalog(t *testing.T) *ProductRepository {
	t.Helper()
	repo := NewProductRepository()
	ctx := context.Background()

	base := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	for i, p := range []*entities.Product{
		mustProduct(t, "MacBook Pro", "laptop", 2000, 5),
		mustProduct(t, "ThinkPad", "laptop", 1200, 0),
		mustProduct(t, "Pixel", "mobile", 800, 10),
		mustProduct(t, "iPhone", "mobile", 1100, 3),
	} {
		p.CreatedAt = base.AddDate(0, 0, i)
		p.UpdatedAt = p.CreatedAt
		require.NoError(t, repo.Create(ctx, p))
	}
	return repo
}

func TestFindSearchIsCaseInsensitive(t *testing.T) {
	repo := seedCatalog(t)

	found, err := repo.Find(context.Background(), ports.ProductFilter{Search: "macbook"})
	require.NoError(t, err)

	require.Len(t, found, 1)
	assert.Equal(t, "MacBook Pro", found[0].Name)
}

func TestFindFiltersCombine(t *testing.T) {
	repo := seedCatalog(t)

	found, err := repo.Find(context.Background(), ports.ProductFilter{
		Category: "mobile",
		MaxPrice: 1000,
	})
	require.NoError(t, err)

	require.Len(t, found, 1)
	assert.Equal(t, "Pixel", found[0].Name)
}

func TestFindPriceSort(t *testing.T) {
	repo := seedCatalog(t)

	asc, err := repo.Find(context.Background(), ports.ProductFilter{PriceSort: "asc"})
	require.NoError(t, err)
	require.Len(t, asc, 4)
	assert.Equal(t, "Pixel", asc[0].Name)
	assert.Equal(t, "MacBook Pro", asc[3].Name)

	desc, err := repo.Find(context.Background(), ports.ProductFilter{PriceSort: "desc"})
	require.NoError(t, err)
	assert.Equal(t, "MacBook Pro", desc[0].Name)
}

func TestFindDefaultsToNewestFirst(t *testing.T) {
	repo := seedCatalog(t)

	found, err := repo.Find(context.Background(), ports.ProductFilter{})
	require.NoError(t, err)

	require.Len(t, found, 4)
	assert.Equal(t, "iPhone", found[0].Name)
	assert.Equal(t, "MacBook Pro", found[3].Name)
}

func TestFindSkipAndLimit(t *testing.T) {
	repo := seedCatalog(t)
	ctx := context.Background()

	page, err := repo.Find(ctx, ports.ProductFilter{PriceSort: "asc", Limit: 2, Skip: 2})
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, "ThinkPad", page[0].Name)

	past, err := repo.Find(ctx, ports.ProductFilter{Skip: 10})
	require.NoError(t, err)
	assert.Empty(t, past)
}

func TestCountIgnoresPagination(t *testing.T) {
	repo := seedCatalog(t)

	count, err := repo.Count(context.Background(), ports.ProductFilter{Limit: 1, Skip: 3})
	require.NoError(t, err)
	assert.Equal(t, 4, count)
}

func TestFindOutOfStock(t *testing.T) {
	repo := seedCatalog(t)

	found, err := repo.Find(context.Background(), ports.ProductFilter{OutOfStock: true})
	require.NoError(t, err)

	require.Len(t, found, 1)
	assert.Equal(t, "ThinkPad", found[0].Name)
}

func TestDistinctCategories(t *testing.T) {
	repo := seedCatalog(t)

	categories, err := repo.DistinctCategories(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"laptop", "mobile"}, categories)
}

func TestGetByIDReturnsClone(t *testing.T) {
	repo := NewProductRepository()
	ctx := context.Background()

	product := mustProduct(t, "MacBook Pro", "laptop", 2000, 5)
	require.NoError(t, repo.Create(ctx, product))

	got, err := repo.GetByID(ctx, product.ID)
	require.NoError(t, err)

	got.Stock = 0

	again, err := repo.GetByID(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, again.Stock)
}
