package handlers

import (
	"net/http"

	"storefront-backend/application/queries"
	querybus "storefront-backend/application/queries/bus"
	"storefront-backend/pkg/common"

	"go.uber.org/zap"

	apperrors "storefront-backend/pkg/errors"
)

// DashboardHandler serves the admin analytics endpoints
type DashboardHandler struct {
	queryBus     *querybus.QueryBus
	errorHandler *apperrors.ErrorHandler
	logger       *zap.Logger
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(
	queryBus *querybus.QueryBus,
	errorHandler *apperrors.ErrorHandler,
	logger *zap.Logger,
) *DashboardHandler {
	return &DashboardHandler{
		queryBus:     queryBus,
		errorHandler: errorHandler,
		logger:       logger,
	}
}

// Stats handles GET /dashboard/stats
func (h *DashboardHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.queryBus.Ask(r.Context(), queries.StatsQuery{})
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, common.Fields{"stats": stats})
}

// PieCharts handles GET /dashboard/pie
func (h *DashboardHandler) PieCharts(w http.ResponseWriter, r *http.Request) {
	charts, err := h.queryBus.Ask(r.Context(), queries.PieChartsQuery{})
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, common.Fields{"charts": charts})
}

// BarCharts handles GET /dashboard/bar
func (h *DashboardHandler) BarCharts(w http.ResponseWriter, r *http.Request) {
	charts, err := h.queryBus.Ask(r.Context(), queries.BarChartsQuery{})
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, common.Fields{"charts": charts})
}

// LineCharts handles GET /dashboard/line
func (h *DashboardHandler) LineCharts(w http.ResponseWriter, r *http.Request) {
	charts, err := h.queryBus.Ask(r.Context(), queries.LineChartsQuery{})
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, common.Fields{"charts": charts})
}
