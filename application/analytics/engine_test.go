package analytics

import (
	"context"
	"fmt"
	"testing"
	"time"

	"storefront-backend/domain/entities"
	"storefront-backend/infrastructure/persistence/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestEngine(t *testing.T, now time.Time) (*Engine, *memory.ProductRepository, *memory.UserRepository, *memory.OrderRepository) {
	t.Helper()

	products := memory.NewProductRepository()
	users := memory.NewUserRepository()
	orders := memory.NewOrderRepository()

	engine := NewEngine(products, users, orders, zap.NewNop()).
		WithClock(func() time.Time { return now })

	return engine, products, users, orders
}

func seedProduct(t *testing.T, repo *memory.ProductRepository, name, category string, stock int, createdAt time.Time) *entities.Product {
	t.Helper()

	product, err := entities.NewProduct(name, "uploads/"+name+".jpg", category, 100, stock)
	require.NoError(t, err)
	product.CreatedAt = createdAt
	product.UpdatedAt = createdAt
	require.NoError(t, repo.Create(context.Background(), product))
	return product
}

func seedUser(t *testing.T, repo *memory.UserRepository, id string, gender entities.Gender, dob, createdAt time.Time) *entities.User {
	t.Helper()

	user, err := entities.NewUser(id, "User "+id, id+"@example.com", "", gender, dob)
	require.NoError(t, err)
	user.CreatedAt = createdAt
	user.UpdatedAt = createdAt
	require.NoError(t, repo.Create(context.Background(), user))
	return user
}

func seedOrder(t *testing.T, repo *memory.OrderRepository, userID string, total, discount float64, createdAt time.Time) *entities.Order {
	t.Helper()

	order, err := entities.NewOrder(userID, entities.ShippingInfo{
		Address: "1 Market Street", City: "Mumbai", State: "MH", Country: "India", PinCode: 400001,
	}, []entities.OrderItem{
		{Name: "item", Price: total, Quantity: 1, ProductID: "p1"},
	}, total, 0, 0, discount, total)
	require.NoError(t, err)
	order.CreatedAt = createdAt
	order.UpdatedAt = createdAt
	require.NoError(t, repo.Create(context.Background(), order))
	return order
}

func TestCategoryDistribution(t *testing.T) {
	now := time.Date(2024, time.March, 15, 12, 0, 0, 0, time.UTC)
	engine, products, _, _ := newTestEngine(t, now)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		seedProduct(t, products, fmt.Sprintf("laptop-%d", i), "laptop", 5, now)
	}
	for i := 0; i < 7; i++ {
		seedProduct(t, products, fmt.Sprintf("mobile-%d", i), "mobile", 5, now)
	}

	got, err := engine.CategoryDistribution(ctx, []string{"laptop", "mobile"}, 10)
	require.NoError(t, err)

	assert.Equal(t, []map[string]int{
		{"laptop": 30},
		{"mobile": 70},
	}, got)
}

func TestCategoryDistributionEmptyCatalog(t *testing.T) {
	now := time.Date(2024, time.March, 15, 12, 0, 0, 0, time.UTC)
	engine, _, _, _ := newTestEngine(t, now)

	got, err := engine.CategoryDistribution(context.Background(), []string{"laptop"}, 0)
	require.NoError(t, err)

	assert.Equal(t, []map[string]int{{"laptop": 0}}, got)
}

func TestDashboardStats(t *testing.T) {
	now := time.Date(2024, time.March, 15, 12, 0, 0, 0, time.UTC)
	engine, products, users, orders := newTestEngine(t, now)
	ctx := context.Background()

	seedProduct(t, products, "laptop-1", "laptop", 5, now.AddDate(0, 0, -1))
	seedProduct(t, products, "mobile-1", "mobile", 5, now.AddDate(0, -1, 0))

	dob := time.Date(1995, time.June, 1, 0, 0, 0, 0, time.UTC)
	seedUser(t, users, "u1", entities.GenderMale, dob, now.AddDate(0, 0, -2))
	seedUser(t, users, "u2", entities.GenderFemale, dob, now.AddDate(0, -1, 0))
	seedUser(t, users, "u3", entities.GenderFemale, dob, now.AddDate(0, -2, 0))

	seedOrder(t, orders, "u1", 300, 0, now.AddDate(0, 0, -1))
	seedOrder(t, orders, "u2", 150, 10, now.AddDate(0, -1, 0))

	stats, err := engine.DashboardStats(ctx)
	require.NoError(t, err)

	assert.Equal(t, GenderRatio{Male: 1, Female: 2}, stats.UserGenderRatio)
	assert.Equal(t, Totals{Revenue: 450, User: 3, Product: 2, Order: 2}, stats.Count)

	// One order this month against one last month, 300 against 150.
	assert.Equal(t, 100.0, stats.ChangePercent.Order)
	assert.Equal(t, 200.0, stats.ChangePercent.Revenue)

	// This month's order lands in the last bucket, last month's one back.
	assert.Equal(t, []float64{0, 0, 0, 0, 1, 1}, stats.Chart.Order)
	assert.Equal(t, []float64{0, 0, 0, 0, 150, 300}, stats.Chart.Revenue)

	assert.Len(t, stats.LatestTransaction, 2)
}

func TestPieCharts(t *testing.T) {
	now := time.Date(2024, time.March, 15, 12, 0, 0, 0, time.UTC)
	engine, products, users, orders := newTestEngine(t, now)
	ctx := context.Background()

	seedProduct(t, products, "laptop-1", "laptop", 5, now)
	seedProduct(t, products, "laptop-2", "laptop", 0, now)

	seedUser(t, users, "teen", entities.GenderMale,
		time.Date(2008, time.January, 1, 0, 0, 0, 0, time.UTC), now)
	seedUser(t, users, "adult", entities.GenderFemale,
		time.Date(1990, time.January, 1, 0, 0, 0, 0, time.UTC), now)
	seedUser(t, users, "old", entities.GenderFemale,
		time.Date(1960, time.January, 1, 0, 0, 0, 0, time.UTC), now)

	order := seedOrder(t, orders, "adult", 1000, 100, now)
	order.AdvanceStatus()
	require.NoError(t, orders.Save(ctx, order))
	seedOrder(t, orders, "teen", 500, 0, now)

	charts, err := engine.PieCharts(ctx)
	require.NoError(t, err)

	assert.Equal(t, OrderFulfillment{Processing: 1, Shipped: 1, Delivered: 0}, charts.OrderFulfillment)
	assert.Equal(t, StockAvailability{InStock: 1, OutOfStock: 1}, charts.StockAvailability)
	assert.Equal(t, AgeGroups{Teen: 1, Adult: 1, Old: 1}, charts.UsersAgeGroup)
	assert.Equal(t, AdminCustomer{Admin: 0, Customer: 3}, charts.AdminCustomer)

	// Gross 1500, marketing 30 percent, the rest after discount and costs.
	assert.Equal(t, 450.0, charts.RevenueDistribution.MarketingCost)
	assert.Equal(t, 100.0, charts.RevenueDistribution.Discount)
	assert.Equal(t, 950.0, charts.RevenueDistribution.NetMargin)
}

func TestBarCharts(t *testing.T) {
	now := time.Date(2024, time.March, 15, 12, 0, 0, 0, time.UTC)
	engine, products, users, orders := newTestEngine(t, now)
	ctx := context.Background()

	seedProduct(t, products, "laptop-1", "laptop", 5, now.AddDate(0, -2, 0))
	seedUser(t, users, "u1", entities.GenderMale,
		time.Date(1995, time.June, 1, 0, 0, 0, 0, time.UTC), now)
	seedOrder(t, orders, "u1", 100, 0, now.AddDate(0, -4, 0))

	charts, err := engine.BarCharts(ctx)
	require.NoError(t, err)

	assert.Equal(t, []float64{0, 0, 0, 1, 0, 0}, charts.Products)
	assert.Equal(t, []float64{0, 0, 0, 0, 0, 1}, charts.Users)
	assert.Len(t, charts.Orders, 12)
	assert.Equal(t, 1.0, charts.Orders[7])
}

func TestLineCharts(t *testing.T) {
	now := time.Date(2024, time.March, 15, 12, 0, 0, 0, time.UTC)
	engine, products, users, orders := newTestEngine(t, now)
	ctx := context.Background()

	seedProduct(t, products, "laptop-1", "laptop", 5, now)
	seedUser(t, users, "u1", entities.GenderMale,
		time.Date(1995, time.June, 1, 0, 0, 0, 0, time.UTC), now)
	seedOrder(t, orders, "u1", 250, 25, now.AddDate(0, -1, 0))

	charts, err := engine.LineCharts(ctx)
	require.NoError(t, err)

	assert.Equal(t, 1.0, charts.Products[11])
	assert.Equal(t, 1.0, charts.Users[11])
	assert.Equal(t, 250.0, charts.Revenue[10])
	assert.Equal(t, 25.0, charts.Discount[10])
}
