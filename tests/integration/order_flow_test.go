package integration

import (
	"context"
	"testing"

	"storefront-backend/application/caching"
	"storefront-backend/application/commands"
	"storefront-backend/application/commands/bus"
	"storefront-backend/application/ports"
	"storefront-backend/application/queries"
	querybus "storefront-backend/application/queries/bus"
	"storefront-backend/domain/entities"
	"storefront-backend/infrastructure/cache"
	"storefront-backend/infrastructure/messaging"
	"storefront-backend/infrastructure/persistence/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fixture wires the command and query paths over in-memory infrastructure,
// the same shape the development container assembles.
type fixture struct {
	products    *memory.ProductRepository
	orders      *memory.OrderRepository
	cache       *cache.InMemoryCache
	invalidator *caching.Invalidator
	commandBus  *bus.CommandBus
	queryBus    *querybus.QueryBus
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	logger := zap.NewNop()
	products := memory.NewProductRepository()
	orders := memory.NewOrderRepository()
	store := cache.NewInMemoryCache(cache.Options{})
	t.Cleanup(store.Close)

	invalidator := caching.NewInvalidator(store, logger)
	publisher := messaging.NewLogPublisher(logger)

	commandBus := bus.NewCommandBus()
	require.NoError(t, commandBus.Register(commands.PlaceOrderCommand{},
		commands.NewPlaceOrderHandler(orders, products, invalidator, publisher, logger)))
	require.NoError(t, commandBus.Register(commands.ProcessOrderCommand{},
		commands.NewProcessOrderHandler(orders, invalidator, publisher, logger)))
	require.NoError(t, commandBus.Register(commands.CreateProductCommand{},
		commands.NewCreateProductHandler(products, invalidator, publisher, logger)))

	queryBus := querybus.NewQueryBus()
	require.NoError(t, queryBus.Register(queries.LatestProductsQuery{},
		queries.NewLatestProductsHandler(products, store)))
	require.NoError(t, queryBus.Register(queries.GetProductQuery{},
		queries.NewGetProductHandler(products, store)))

	return &fixture{
		products:    products,
		orders:      orders,
		cache:       store,
		invalidator: invalidator,
		commandBus:  commandBus,
		queryBus:    queryBus,
	}
}

func (f *fixture) seedProduct(t *testing.T, name string, stock int) *entities.Product {
	t.Helper()

	product, err := entities.NewProduct(name, "uploads/"+name+".jpg", "laptop", 500, stock)
	require.NoError(t, err)
	require.NoError(t, f.products.Create(context.Background(), product))
	return product
}

func (f *fixture) warmCache(t *testing.T, keys ...string) {
	t.Helper()

	for _, key := range keys {
		require.NoError(t, f.cache.Set(context.Background(), key, []byte("{}"), 0))
	}
}

func placeOrderCommand(p1, p2 *entities.Product) commands.PlaceOrderCommand {
	return commands.PlaceOrderCommand{
		ShippingInfo: entities.ShippingInfo{
			Address: "1 Market Street", City: "Mumbai", State: "MH",
			Country: "India", PinCode: 400001,
		},
		UserID:   "u1",
		SubTotal: 3500,
		Tax:      630,
		Total:    4130,
		Items: []entities.OrderItem{
			{Name: p1.Name, Price: p1.Price, Quantity: 2, ProductID: p1.ID},
			{Name: p2.Name, Price: p2.Price, Quantity: 5, ProductID: p2.ID},
		},
	}
}

func TestPlaceOrderReducesStockAndEvictsCaches(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	p1 := f.seedProduct(t, "laptop-a", 10)
	p2 := f.seedProduct(t, "laptop-b", 5)

	f.warmCache(t,
		caching.KeyAdminProducts,
		caching.ProductKey(p1.ID),
		caching.ProductKey(p2.ID),
		caching.KeyAdminStats,
		caching.KeyAdminPieCharts,
		caching.KeyAdminBarCharts,
		caching.KeyAdminLineCharts,
		caching.MyOrdersKey("u1"),
	)

	result, err := f.commandBus.Send(ctx, placeOrderCommand(p1, p2))
	require.NoError(t, err)

	placed, ok := result.(*commands.PlaceOrderResult)
	require.True(t, ok)
	assert.Equal(t, entities.StatusProcessing, placed.Order.Status)
	require.Len(t, placed.Adjustments, 2)
	assert.Equal(t, 8, placed.Adjustments[0].Remaining)
	assert.Equal(t, 0, placed.Adjustments[1].Remaining)

	stored1, err := f.products.GetByID(ctx, p1.ID)
	require.NoError(t, err)
	assert.Equal(t, 8, stored1.Stock)

	stored2, err := f.products.GetByID(ctx, p2.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, stored2.Stock)

	for _, key := range []string{
		caching.KeyAdminProducts,
		caching.ProductKey(p1.ID),
		caching.ProductKey(p2.ID),
		caching.KeyAdminStats,
		caching.KeyAdminPieCharts,
		caching.KeyAdminBarCharts,
		caching.KeyAdminLineCharts,
		caching.MyOrdersKey("u1"),
	} {
		assert.False(t, f.cache.Has(ctx, key), "expected %s to be evicted", key)
	}
}

func TestPlaceOrderMissingProductLeavesPartialState(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	p1 := f.seedProduct(t, "laptop-a", 10)
	p2 := f.seedProduct(t, "laptop-b", 5)
	require.NoError(t, f.products.Delete(ctx, p2.ID))

	_, err := f.commandBus.Send(ctx, placeOrderCommand(p1, p2))
	require.Error(t, err)

	// The first decrement and the order record both stand.
	stored1, err := f.products.GetByID(ctx, p1.ID)
	require.NoError(t, err)
	assert.Equal(t, 8, stored1.Stock)

	orders, err := f.orders.Find(ctx, ports.OrderFilter{UserID: "u1"})
	require.NoError(t, err)
	assert.Len(t, orders, 1)
}

func TestProcessOrderAdvancesToDelivered(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	p1 := f.seedProduct(t, "laptop-a", 10)
	p2 := f.seedProduct(t, "laptop-b", 5)

	result, err := f.commandBus.Send(ctx, placeOrderCommand(p1, p2))
	require.NoError(t, err)
	orderID := result.(*commands.PlaceOrderResult).Order.ID

	for _, want := range []entities.OrderStatus{
		entities.StatusShipped,
		entities.StatusDelivered,
	} {
		processed, err := f.commandBus.Send(ctx, commands.ProcessOrderCommand{OrderID: orderID})
		require.NoError(t, err)
		assert.Equal(t, want, processed.(*entities.Order).Status)
	}

	// Processing a delivered order succeeds without changing anything.
	processed, err := f.commandBus.Send(ctx, commands.ProcessOrderCommand{OrderID: orderID})
	require.NoError(t, err)
	assert.Equal(t, entities.StatusDelivered, processed.(*entities.Order).Status)
}

func TestReadThroughThenInvalidateOnCreate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.seedProduct(t, "laptop-a", 10)

	first, err := f.queryBus.Ask(ctx, queries.LatestProductsQuery{})
	require.NoError(t, err)
	assert.Len(t, first.([]*entities.Product), 1)
	assert.True(t, f.cache.Has(ctx, caching.KeyLatestProducts))

	_, err = f.commandBus.Send(ctx, commands.CreateProductCommand{
		Name: "laptop-b", Photo: "uploads/laptop-b.jpg",
		Price: 900, Stock: 3, Category: "laptop",
	})
	require.NoError(t, err)

	assert.False(t, f.cache.Has(ctx, caching.KeyLatestProducts))

	second, err := f.queryBus.Ask(ctx, queries.LatestProductsQuery{})
	require.NoError(t, err)
	assert.Len(t, second.([]*entities.Product), 2)
}
