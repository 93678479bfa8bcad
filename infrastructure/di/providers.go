// Package di wires the application together. Providers are plain
// constructors composed by Wire; the dev/production split (in-memory versus
// DynamoDB, log-only versus EventBridge) happens here and nowhere else.
package di

import (
	"context"
	"fmt"
	"reflect"

	"storefront-backend/application/analytics"
	"storefront-backend/application/caching"
	"storefront-backend/application/commands"
	"storefront-backend/application/commands/bus"
	"storefront-backend/application/ports"
	"storefront-backend/application/queries"
	querybus "storefront-backend/application/queries/bus"
	"storefront-backend/infrastructure/cache"
	"storefront-backend/infrastructure/config"
	"storefront-backend/infrastructure/messaging"
	"storefront-backend/infrastructure/messaging/eventbridge"
	"storefront-backend/infrastructure/payment"
	"storefront-backend/infrastructure/persistence/dynamodb"
	"storefront-backend/infrastructure/persistence/memory"
	"storefront-backend/pkg/observability"

	apperrors "storefront-backend/pkg/errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awscloudwatch "github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	awseventbridge "github.com/aws/aws-sdk-go-v2/service/eventbridge"
	"go.uber.org/zap"
)

// Container holds all application dependencies
type Container struct {
	Config         *config.Config
	Logger         *zap.Logger
	ProductRepo    ports.ProductRepository
	UserRepo       ports.UserRepository
	OrderRepo      ports.OrderRepository
	CouponRepo     ports.CouponRepository
	Cache          ports.Cache
	Invalidator    *caching.Invalidator
	EventPublisher ports.EventPublisher
	PaymentGateway ports.PaymentGateway
	Engine         *analytics.Engine
	CommandBus     *bus.CommandBus
	QueryBus       *querybus.QueryBus
	Metrics        *observability.Metrics
	Tracer         *observability.Tracer
	ErrorHandler   *apperrors.ErrorHandler
}

// ProvideLogger creates a new logger instance
func ProvideLogger(cfg *config.Config) (*zap.Logger, error) {
	var logger *zap.Logger
	var err error

	if cfg.Environment == "production" {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}

	if err != nil {
		return nil, err
	}

	return logger, nil
}

// ProvideAWSConfig creates AWS configuration
func ProvideAWSConfig(ctx context.Context, cfg *config.Config) (aws.Config, error) {
	return awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.AWSRegion),
	)
}

// ProvideDynamoDBClient creates a DynamoDB client
func ProvideDynamoDBClient(awsCfg aws.Config) *awsdynamodb.Client {
	return awsdynamodb.NewFromConfig(awsCfg)
}

// ProvideEventBridgeClient creates an EventBridge client
func ProvideEventBridgeClient(awsCfg aws.Config) *awseventbridge.Client {
	return awseventbridge.NewFromConfig(awsCfg)
}

// ProvideCloudWatchClient creates a CloudWatch client
func ProvideCloudWatchClient(awsCfg aws.Config) *awscloudwatch.Client {
	return awscloudwatch.NewFromConfig(awsCfg)
}

// ProvideCache creates the process-wide cache
func ProvideCache(cfg *config.Config) ports.Cache {
	return cache.NewInMemoryCache(cache.Options{
		DefaultTTL:      cfg.CacheDefaultTTL,
		MaxEntries:      cfg.CacheMaxEntries,
		CleanupInterval: cfg.CacheCleanupInterval,
	})
}

// ProvideInvalidator creates the cache invalidator
func ProvideInvalidator(c ports.Cache, logger *zap.Logger) *caching.Invalidator {
	return caching.NewInvalidator(c, logger)
}

// ProvideProductRepository creates a product repository
func ProvideProductRepository(client *awsdynamodb.Client, cfg *config.Config, logger *zap.Logger) ports.ProductRepository {
	if cfg.IsDevelopment() {
		return memory.NewProductRepository()
	}
	return dynamodb.NewProductRepository(client, cfg.ProductsTable, logger)
}

// ProvideUserRepository creates a user repository
func ProvideUserRepository(client *awsdynamodb.Client, cfg *config.Config, logger *zap.Logger) ports.UserRepository {
	if cfg.IsDevelopment() {
		return memory.NewUserRepository()
	}
	return dynamodb.NewUserRepository(client, cfg.UsersTable, logger)
}

// ProvideOrderRepository creates an order repository
func ProvideOrderRepository(client *awsdynamodb.Client, cfg *config.Config, logger *zap.Logger) ports.OrderRepository {
	if cfg.IsDevelopment() {
		return memory.NewOrderRepository()
	}
	return dynamodb.NewOrderRepository(client, cfg.OrdersTable, logger)
}

// ProvideCouponRepository creates a coupon repository
func ProvideCouponRepository(client *awsdynamodb.Client, cfg *config.Config, logger *zap.Logger) ports.CouponRepository {
	if cfg.IsDevelopment() {
		return memory.NewCouponRepository()
	}
	return dynamodb.NewCouponRepository(client, cfg.CouponsTable, logger)
}

// ProvideEventPublisher creates an event publisher
func ProvideEventPublisher(client *awseventbridge.Client, cfg *config.Config, logger *zap.Logger) ports.EventPublisher {
	if cfg.IsDevelopment() {
		return messaging.NewLogPublisher(logger)
	}
	return eventbridge.NewEventBridgePublisher(client, cfg.EventBusName, logger)
}

// ProvidePaymentGateway creates the payment gateway client
func ProvidePaymentGateway(cfg *config.Config, logger *zap.Logger) ports.PaymentGateway {
	return payment.NewStripeGateway(cfg.PaymentEndpoint, cfg.PaymentKey, logger)
}

// ProvideMetrics creates metrics instance
func ProvideMetrics(client *awscloudwatch.Client, cfg *config.Config, logger *zap.Logger) *observability.Metrics {
	namespace := fmt.Sprintf("Storefront/%s", cfg.Environment)
	return observability.NewMetrics(client, namespace, logger)
}

// ProvideTracer creates a tracer instance
func ProvideTracer(cfg *config.Config) *observability.Tracer {
	return observability.NewTracer("storefront-backend")
}

// ProvideEngine creates the analytics aggregation engine
func ProvideEngine(
	products ports.ProductRepository,
	users ports.UserRepository,
	orders ports.OrderRepository,
	logger *zap.Logger,
) *analytics.Engine {
	return analytics.NewEngine(products, users, orders, logger)
}

// ProvideErrorHandler creates the central HTTP error handler
func ProvideErrorHandler(logger *zap.Logger) *apperrors.ErrorHandler {
	return apperrors.NewErrorHandler(logger)
}

// commandMetricsAdapter bridges observability.Metrics to the command bus
// middleware contract.
type commandMetricsAdapter struct {
	metrics *observability.Metrics
}

func (a commandMetricsAdapter) StartTimer(metric, label string) bus.Timer {
	return a.metrics.StartTimer(metric, label)
}

func (a commandMetricsAdapter) Increment(metric, label string) {
	a.metrics.Increment(metric, label)
}

// queryMetricsAdapter bridges observability.Metrics to the query bus
// middleware contract.
type queryMetricsAdapter struct {
	metrics *observability.Metrics
}

func (a queryMetricsAdapter) StartTimer(metric, label string) querybus.Timer {
	return a.metrics.StartTimer(metric, label)
}

func (a queryMetricsAdapter) Increment(metric, label string) {
	a.metrics.Increment(metric, label)
}

// tracingCommandMiddleware wraps each command in an X-Ray subsegment.
func tracingCommandMiddleware(tracer *observability.Tracer) bus.Middleware {
	return func(next bus.CommandHandler) bus.CommandHandler {
		return bus.CommandHandlerFunc(func(ctx context.Context, cmd bus.Command) (interface{}, error) {
			var result interface{}
			err := tracer.Capture(ctx, "command."+reflect.TypeOf(cmd).Name(), func(ctx context.Context) error {
				var handleErr error
				result, handleErr = next.Handle(ctx, cmd)
				return handleErr
			})
			return result, err
		})
	}
}

// tracingQueryMiddleware wraps each query in an X-Ray subsegment.
func tracingQueryMiddleware(tracer *observability.Tracer) querybus.Middleware {
	return func(next querybus.QueryHandler) querybus.QueryHandler {
		return querybus.QueryHandlerFunc(func(ctx context.Context, query querybus.Query) (interface{}, error) {
			var result interface{}
			err := tracer.Capture(ctx, "query."+reflect.TypeOf(query).Name(), func(ctx context.Context) error {
				var handleErr error
				result, handleErr = next.Handle(ctx, query)
				return handleErr
			})
			return result, err
		})
	}
}

// ProvideCommandBus creates a command bus with registered handlers
func ProvideCommandBus(
	products ports.ProductRepository,
	users ports.UserRepository,
	orders ports.OrderRepository,
	coupons ports.CouponRepository,
	invalidator *caching.Invalidator,
	publisher ports.EventPublisher,
	metrics *observability.Metrics,
	tracer *observability.Tracer,
	cfg *config.Config,
	logger *zap.Logger,
) *bus.CommandBus {
	middlewares := []bus.Middleware{bus.LoggingMiddleware(logger)}
	if cfg.EnableMetrics {
		middlewares = append(middlewares, bus.MetricsMiddleware(commandMetricsAdapter{metrics}))
	}
	if cfg.EnableTracing {
		middlewares = append(middlewares, tracingCommandMiddleware(tracer))
	}

	commandBus := bus.NewCommandBus(middlewares...)

	commandBus.Register(commands.CreateProductCommand{}, commands.NewCreateProductHandler(products, invalidator, publisher, logger))
	commandBus.Register(commands.UpdateProductCommand{}, commands.NewUpdateProductHandler(products, invalidator, publisher, logger))
	commandBus.Register(commands.DeleteProductCommand{}, commands.NewDeleteProductHandler(products, invalidator, publisher, logger))
	commandBus.Register(commands.PlaceOrderCommand{}, commands.NewPlaceOrderHandler(orders, products, invalidator, publisher, logger))
	commandBus.Register(commands.ProcessOrderCommand{}, commands.NewProcessOrderHandler(orders, invalidator, publisher, logger))
	commandBus.Register(commands.DeleteOrderCommand{}, commands.NewDeleteOrderHandler(orders, invalidator, publisher, logger))
	commandBus.Register(commands.RegisterUserCommand{}, commands.NewRegisterUserHandler(users, publisher, logger))
	commandBus.Register(commands.DeleteUserCommand{}, commands.NewDeleteUserHandler(users, logger))
	commandBus.Register(commands.CreateCouponCommand{}, commands.NewCreateCouponHandler(coupons, publisher, logger))
	commandBus.Register(commands.DeleteCouponCommand{}, commands.NewDeleteCouponHandler(coupons, logger))

	return commandBus
}

// ProvideQueryBus creates a query bus with registered handlers
func ProvideQueryBus(
	products ports.ProductRepository,
	users ports.UserRepository,
	orders ports.OrderRepository,
	coupons ports.CouponRepository,
	engine *analytics.Engine,
	c ports.Cache,
	metrics *observability.Metrics,
	tracer *observability.Tracer,
	cfg *config.Config,
	logger *zap.Logger,
) *querybus.QueryBus {
	middlewares := []querybus.Middleware{querybus.LoggingMiddleware(logger)}
	if cfg.EnableMetrics {
		middlewares = append(middlewares, querybus.NewMetricsMiddleware(queryMetricsAdapter{metrics}).AsMiddleware())
	}
	if cfg.EnableTracing {
		middlewares = append(middlewares, tracingQueryMiddleware(tracer))
	}

	queryBus := querybus.NewQueryBus(middlewares...)

	queryBus.Register(queries.LatestProductsQuery{}, queries.NewLatestProductsHandler(products, c))
	queryBus.Register(queries.CategoriesQuery{}, queries.NewCategoriesHandler(products, c))
	queryBus.Register(queries.AdminProductsQuery{}, queries.NewAdminProductsHandler(products, c))
	queryBus.Register(queries.GetProductQuery{}, queries.NewGetProductHandler(products, c))
	queryBus.Register(queries.SearchProductsQuery{}, queries.NewSearchProductsHandler(products, cfg.ProductsPerPage))
	queryBus.Register(queries.MyOrdersQuery{}, queries.NewMyOrdersHandler(orders, c))
	queryBus.Register(queries.AllOrdersQuery{}, queries.NewAllOrdersHandler(orders, users, c))
	queryBus.Register(queries.GetOrderQuery{}, queries.NewGetOrderHandler(orders, c))
	queryBus.Register(queries.AllUsersQuery{}, queries.NewAllUsersHandler(users))
	queryBus.Register(queries.GetUserQuery{}, queries.NewGetUserHandler(users))
	queryBus.Register(queries.AllCouponsQuery{}, queries.NewAllCouponsHandler(coupons))
	queryBus.Register(queries.ApplyDiscountQuery{}, queries.NewApplyDiscountHandler(coupons))
	queryBus.Register(queries.StatsQuery{}, queries.NewStatsHandler(engine, c))
	queryBus.Register(queries.PieChartsQuery{}, queries.NewPieChartsHandler(engine, c))
	queryBus.Register(queries.BarChartsQuery{}, queries.NewBarChartsHandler(engine, c))
	queryBus.Register(queries.LineChartsQuery{}, queries.NewLineChartsHandler(engine, c))

	return queryBus
}
