package queries

import (
	"context"
	"errors"

	"storefront-backend/application/analytics"
	"storefront-backend/application/caching"
	"storefront-backend/application/ports"
	"storefront-backend/application/queries/bus"
)

// The four dashboard queries wrap the aggregation engine with the
// read-through cache. Mutations evict all four keys together, so a stale
// chart never outlives the data it summarizes.

// StatsQuery represents a query for the dashboard overview
type StatsQuery struct{}

// Validate validates the StatsQuery
func (q StatsQuery) Validate() error { return nil }

// StatsHandler handles the StatsQuery
type StatsHandler struct {
	engine *analytics.Engine
	cache  ports.Cache
}

// NewStatsHandler creates a new handler instance
func NewStatsHandler(engine *analytics.Engine, cache ports.Cache) *StatsHandler {
	return &StatsHandler{engine: engine, cache: cache}
}

// Handle executes the stats query
func (h *StatsHandler) Handle(ctx context.Context, query bus.Query) (interface{}, error) {
	if _, ok := query.(StatsQuery); !ok {
		return nil, errors.New("unexpected query type")
	}

	return caching.GetOrCompute(ctx, h.cache, caching.KeyAdminStats, 0,
		func(ctx context.Context) (*analytics.StatsOverview, error) {
			return h.engine.DashboardStats(ctx)
		})
}

// PieChartsQuery represents a query for the dashboard pie charts
type PieChartsQuery struct{}

// Validate validates the PieChartsQuery
func (q PieChartsQuery) Validate() error { return nil }

// PieChartsHandler handles the PieChartsQuery
type PieChartsHandler struct {
	engine *analytics.Engine
	cache  ports.Cache
}

// NewPieChartsHandler creates a new handler instance
func NewPieChartsHandler(engine *analytics.Engine, cache ports.Cache) *PieChartsHandler {
	return &PieChartsHandler{engine: engine, cache: cache}
}

// Handle executes the pie charts query
func (h *PieChartsHandler) Handle(ctx context.Context, query bus.Query) (interface{}, error) {
	if _, ok := query.(PieChartsQuery); !ok {
		return nil, errors.New("unexpected query type")
	}

	return caching.GetOrCompute(ctx, h.cache, caching.KeyAdminPieCharts, 0,
		func(ctx context.Context) (*analytics.PieCharts, error) {
			return h.engine.PieCharts(ctx)
		})
}

// BarChartsQuery represents a query for the dashboard bar charts
type BarChartsQuery struct{}

// Validate validates the BarChartsQuery
func (q BarChartsQuery) Validate() error { return nil }

// BarChartsHandler handles the BarChartsQuery
type BarChartsHandler struct {
	engine *analytics.Engine
	cache  ports.Cache
}

// NewBarChartsHandler creates a new handler instance
func NewBarChartsHandler(engine *analytics.Engine, cache ports.Cache) *BarChartsHandler {
	return &BarChartsHandler{engine: engine, cache: cache}
}

// Handle executes the bar charts query
func (h *BarChartsHandler) Handle(ctx context.Context, query bus.Query) (interface{}, error) {
	if _, ok := query.(BarChartsQuery); !ok {
		return nil, errors.New("unexpected query type")
	}

	return caching.GetOrCompute(ctx, h.cache, caching.KeyAdminBarCharts, 0,
		func(ctx context.Context) (*analytics.BarCharts, error) {
			return h.engine.BarCharts(ctx)
		})
}

// LineChartsQuery represents a query for the dashboard line charts
type LineChartsQuery struct{}

// Validate validates the LineChartsQuery
func (q LineChartsQuery) Validate() error { return nil }

// LineChartsHandler handles the LineChartsQuery
type LineChartsHandler struct {
	engine *analytics.Engine
	cache  ports.Cache
}

// NewLineChartsHandler creates a new handler instance
func NewLineChartsHandler(engine *analytics.Engine, cache ports.Cache) *LineChartsHandler {
	return &LineChartsHandler{engine: engine, cache: cache}
}

// Handle executes the line charts query
func (h *LineChartsHandler) Handle(ctx context.Context, query bus.Query) (interface{}, error) {
	if _, ok := query.(LineChartsQuery); !ok {
		return nil, errors.New("unexpected query type")
	}

	return caching.GetOrCompute(ctx, h.cache, caching.KeyAdminLineCharts, 0,
		func(ctx context.Context) (*analytics.LineCharts, error) {
			return h.engine.LineCharts(ctx)
		})
}
