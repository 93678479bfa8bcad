// Package analytics computes the dashboard aggregates straight from the
// document store. The engine never reads or writes the cache; the query
// layer wraps it with the read-through pattern.
package analytics

import (
	"context"
	"math"
	"time"

	"storefront-backend/application/ports"
	"storefront-backend/domain/entities"

	"go.uber.org/zap"
)

// Engine runs the aggregation queries behind the admin dashboard.
type Engine struct {
	products ports.ProductRepository
	users    ports.UserRepository
	orders   ports.OrderRepository
	logger   *zap.Logger
	now      func() time.Time
}

// NewEngine creates an aggregation engine over the store collections.
func NewEngine(
	products ports.ProductRepository,
	users ports.UserRepository,
	orders ports.OrderRepository,
	logger *zap.Logger,
) *Engine {
	return &Engine{
		products: products,
		users:    users,
		orders:   orders,
		logger:   logger,
		now:      time.Now,
	}
}

// WithClock overrides the engine's notion of "today". Month bucketing and
// age computation depend on it.
func (e *Engine) WithClock(now func() time.Time) *Engine {
	e.now = now
	return e
}

// monthWindow is a calendar-month query range.
type monthWindow struct {
	start time.Time
	end   time.Time
}

// currentAndPreviousMonth returns this month (ending now) and the full
// previous month.
func currentAndPreviousMonth(now time.Time) (thisMonth, lastMonth monthWindow) {
	thisMonthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	thisMonth = monthWindow{start: thisMonthStart, end: now}
	lastMonth = monthWindow{
		start: thisMonthStart.AddDate(0, -1, 0),
		end:   thisMonthStart.AddDate(0, 0, -1),
	}
	return thisMonth, lastMonth
}

func (w monthWindow) timeRange() *ports.TimeRange {
	return &ports.TimeRange{Start: w.start, End: w.end}
}

// DashboardStats computes the admin-stats payload.
func (e *Engine) DashboardStats(ctx context.Context) (*StatsOverview, error) {
	now := e.now()
	thisMonth, lastMonth := currentAndPreviousMonth(now)
	sixMonthsAgo := now.AddDate(0, -6, 0)

	thisMonthProducts, err := e.products.Count(ctx, ports.ProductFilter{CreatedWithin: thisMonth.timeRange()})
	if err != nil {
		return nil, err
	}
	lastMonthProducts, err := e.products.Count(ctx, ports.ProductFilter{CreatedWithin: lastMonth.timeRange()})
	if err != nil {
		return nil, err
	}
	thisMonthUsers, err := e.users.Count(ctx, ports.UserFilter{CreatedWithin: thisMonth.timeRange()})
	if err != nil {
		return nil, err
	}
	lastMonthUsers, err := e.users.Count(ctx, ports.UserFilter{CreatedWithin: lastMonth.timeRange()})
	if err != nil {
		return nil, err
	}
	thisMonthOrders, err := e.orders.Find(ctx, ports.OrderFilter{CreatedWithin: thisMonth.timeRange()})
	if err != nil {
		return nil, err
	}
	lastMonthOrders, err := e.orders.Find(ctx, ports.OrderFilter{CreatedWithin: lastMonth.timeRange()})
	if err != nil {
		return nil, err
	}
	lastSixMonthOrders, err := e.orders.Find(ctx, ports.OrderFilter{
		CreatedWithin: &ports.TimeRange{Start: sixMonthsAgo, End: now},
	})
	if err != nil {
		return nil, err
	}
	productCount, err := e.products.Count(ctx, ports.ProductFilter{})
	if err != nil {
		return nil, err
	}
	userCount, err := e.users.Count(ctx, ports.UserFilter{})
	if err != nil {
		return nil, err
	}
	allOrders, err := e.orders.Find(ctx, ports.OrderFilter{})
	if err != nil {
		return nil, err
	}
	categories, err := e.products.DistinctCategories(ctx)
	if err != nil {
		return nil, err
	}
	femaleUsers, err := e.users.Count(ctx, ports.UserFilter{Gender: entities.GenderFemale})
	if err != nil {
		return nil, err
	}
	latestOrders, err := e.orders.Find(ctx, ports.OrderFilter{Limit: 4})
	if err != nil {
		return nil, err
	}

	changePercent := ChangePercent{
		Revenue: PercentageChange(sumTotals(thisMonthOrders), sumTotals(lastMonthOrders)),
		Product: PercentageChange(float64(thisMonthProducts), float64(lastMonthProducts)),
		User:    PercentageChange(float64(thisMonthUsers), float64(lastMonthUsers)),
		Order:   PercentageChange(float64(len(thisMonthOrders)), float64(len(lastMonthOrders))),
	}

	orderCounts := MonthlySums(6, now, orderSamples(lastSixMonthOrders, func(o *entities.Order) float64 { return 1 }))
	orderRevenue := MonthlySums(6, now, orderSamples(lastSixMonthOrders, func(o *entities.Order) float64 { return o.Total }))

	categoryCount, err := e.CategoryDistribution(ctx, categories, productCount)
	if err != nil {
		return nil, err
	}

	latest := make([]TransactionSummary, 0, len(latestOrders))
	for _, o := range latestOrders {
		latest = append(latest, TransactionSummary{
			ID:       o.ID,
			Discount: o.Discount,
			Amount:   o.Total,
			Quantity: len(o.Items),
			Status:   string(o.Status),
		})
	}

	return &StatsOverview{
		CategoryCount: categoryCount,
		UserGenderRatio: GenderRatio{
			Male:   userCount - femaleUsers,
			Female: femaleUsers,
		},
		ChangePercent:     changePercent,
		LatestTransaction: latest,
		Count: Totals{
			Revenue: sumTotals(allOrders),
			User:    userCount,
			Product: productCount,
			Order:   len(allOrders),
		},
		Chart: OrderChart{Order: orderCounts, Revenue: orderRevenue},
	}, nil
}

// PieCharts computes the admin-pie-charts payload.
func (e *Engine) PieCharts(ctx context.Context) (*PieCharts, error) {
	now := e.now()

	processing, err := e.orders.Count(ctx, ports.OrderFilter{Status: entities.StatusProcessing})
	if err != nil {
		return nil, err
	}
	shipped, err := e.orders.Count(ctx, ports.OrderFilter{Status: entities.StatusShipped})
	if err != nil {
		return nil, err
	}
	delivered, err := e.orders.Count(ctx, ports.OrderFilter{Status: entities.StatusDelivered})
	if err != nil {
		return nil, err
	}
	categories, err := e.products.DistinctCategories(ctx)
	if err != nil {
		return nil, err
	}
	productCount, err := e.products.Count(ctx, ports.ProductFilter{})
	if err != nil {
		return nil, err
	}
	outOfStock, err := e.products.Count(ctx, ports.ProductFilter{OutOfStock: true})
	if err != nil {
		return nil, err
	}
	allOrders, err := e.orders.Find(ctx, ports.OrderFilter{})
	if err != nil {
		return nil, err
	}
	allUsers, err := e.users.Find(ctx, ports.UserFilter{})
	if err != nil {
		return nil, err
	}
	adminUsers, err := e.users.Count(ctx, ports.UserFilter{Role: entities.RoleAdmin})
	if err != nil {
		return nil, err
	}
	customerUsers, err := e.users.Count(ctx, ports.UserFilter{Role: entities.RoleUser})
	if err != nil {
		return nil, err
	}

	productCategories, err := e.CategoryDistribution(ctx, categories, productCount)
	if err != nil {
		return nil, err
	}

	gross := sumTotals(allOrders)
	discount := sumOrders(allOrders, func(o *entities.Order) float64 { return o.Discount })
	productionCost := sumOrders(allOrders, func(o *entities.Order) float64 { return o.ShippingCharges })
	burnt := sumOrders(allOrders, func(o *entities.Order) float64 { return o.Tax })
	marketingCost := math.Round(gross * 0.3)
	netMargin := gross - discount - productionCost - burnt - marketingCost

	ageGroups := AgeGroups{}
	for _, u := range allUsers {
		age := u.Age(now)
		switch {
		case age < 20:
			ageGroups.Teen++
		case age < 40:
			ageGroups.Adult++
		default:
			ageGroups.Old++
		}
	}

	return &PieCharts{
		OrderFulfillment: OrderFulfillment{
			Processing: processing,
			Shipped:    shipped,
			Delivered:  delivered,
		},
		ProductCategories: productCategories,
		StockAvailability: StockAvailability{
			InStock:    productCount - outOfStock,
			OutOfStock: outOfStock,
		},
		RevenueDistribution: RevenueDistribution{
			NetMargin:      netMargin,
			Discount:       discount,
			ProductionCost: productionCost,
			Burnt:          burnt,
			MarketingCost:  marketingCost,
		},
		UsersAgeGroup: ageGroups,
		AdminCustomer: AdminCustomer{Admin: adminUsers, Customer: customerUsers},
	}, nil
}

// BarCharts computes the admin-bar-charts payload.
func (e *Engine) BarCharts(ctx context.Context) (*BarCharts, error) {
	now := e.now()
	sixMonthsAgo := now.AddDate(0, -6, 0)
	twelveMonthsAgo := now.AddDate(0, -12, 0)

	products, err := e.products.Find(ctx, ports.ProductFilter{
		CreatedWithin: &ports.TimeRange{Start: sixMonthsAgo, End: now},
	})
	if err != nil {
		return nil, err
	}
	users, err := e.users.Find(ctx, ports.UserFilter{
		CreatedWithin: &ports.TimeRange{Start: sixMonthsAgo, End: now},
	})
	if err != nil {
		return nil, err
	}
	orders, err := e.orders.Find(ctx, ports.OrderFilter{
		CreatedWithin: &ports.TimeRange{Start: twelveMonthsAgo, End: now},
	})
	if err != nil {
		return nil, err
	}

	productTimes := make([]time.Time, 0, len(products))
	for _, p := range products {
		productTimes = append(productTimes, p.CreatedAt)
	}
	userTimes := make([]time.Time, 0, len(users))
	for _, u := range users {
		userTimes = append(userTimes, u.CreatedAt)
	}
	orderTimes := make([]time.Time, 0, len(orders))
	for _, o := range orders {
		orderTimes = append(orderTimes, o.CreatedAt)
	}

	return &BarCharts{
		Products: MonthlyCounts(6, now, productTimes),
		Users:    MonthlyCounts(6, now, userTimes),
		Orders:   MonthlyCounts(12, now, orderTimes),
	}, nil
}

// LineCharts computes the admin-line-charts payload.
func (e *Engine) LineCharts(ctx context.Context) (*LineCharts, error) {
	now := e.now()
	window := &ports.TimeRange{Start: now.AddDate(0, -12, 0), End: now}

	products, err := e.products.Find(ctx, ports.ProductFilter{CreatedWithin: window})
	if err != nil {
		return nil, err
	}
	users, err := e.users.Find(ctx, ports.UserFilter{CreatedWithin: window})
	if err != nil {
		return nil, err
	}
	orders, err := e.orders.Find(ctx, ports.OrderFilter{CreatedWithin: window})
	if err != nil {
		return nil, err
	}

	productTimes := make([]time.Time, 0, len(products))
	for _, p := range products {
		productTimes = append(productTimes, p.CreatedAt)
	}
	userTimes := make([]time.Time, 0, len(users))
	for _, u := range users {
		userTimes = append(userTimes, u.CreatedAt)
	}

	return &LineCharts{
		Products: MonthlyCounts(12, now, productTimes),
		Users:    MonthlyCounts(12, now, userTimes),
		Revenue:  MonthlySums(12, now, orderSamples(orders, func(o *entities.Order) float64 { return o.Total })),
		Discount: MonthlySums(12, now, orderSamples(orders, func(o *entities.Order) float64 { return o.Discount })),
	}, nil
}

// CategoryDistribution maps each category to its rounded share of the
// catalog, preserving input order. A zero total yields zero percent rather
// than dividing by zero.
func (e *Engine) CategoryDistribution(ctx context.Context, categories []string, totalProducts int) ([]map[string]int, error) {
	distribution := make([]map[string]int, 0, len(categories))

	for _, category := range categories {
		count, err := e.products.Count(ctx, ports.ProductFilter{Category: category})
		if err != nil {
			return nil, err
		}

		percent := 0
		if totalProducts > 0 {
			percent = int(math.Round(float64(count) / float64(totalProducts) * 100))
		}

		distribution = append(distribution, map[string]int{category: percent})
	}

	return distribution, nil
}

func sumTotals(orders []*entities.Order) float64 {
	return sumOrders(orders, func(o *entities.Order) float64 { return o.Total })
}

func sumOrders(orders []*entities.Order, value func(*entities.Order) float64) float64 {
	var total float64
	for _, o := range orders {
		total += value(o)
	}
	return total
}

func orderSamples(orders []*entities.Order, value func(*entities.Order) float64) []Sample {
	samples := make([]Sample, 0, len(orders))
	for _, o := range orders {
		samples = append(samples, Sample{At: o.CreatedAt, Value: value(o)})
	}
	return samples
}
