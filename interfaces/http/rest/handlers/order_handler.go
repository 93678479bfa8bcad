package handlers

import (
	"net/http"

	"storefront-backend/application/commands"
	"storefront-backend/application/commands/bus"
	"storefront-backend/application/queries"
	querybus "storefront-backend/application/queries/bus"
	"storefront-backend/pkg/auth"
	"storefront-backend/pkg/common"
	"storefront-backend/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	apperrors "storefront-backend/pkg/errors"
)

// OrderHandler handles order-related HTTP requests
type OrderHandler struct {
	commandBus   *bus.CommandBus
	queryBus     *querybus.QueryBus
	errorHandler *apperrors.ErrorHandler
	logger       *zap.Logger
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(
	commandBus *bus.CommandBus,
	queryBus *querybus.QueryBus,
	errorHandler *apperrors.ErrorHandler,
	logger *zap.Logger,
) *OrderHandler {
	return &OrderHandler{
		commandBus:   commandBus,
		queryBus:     queryBus,
		errorHandler: errorHandler,
		logger:       logger,
	}
}

// PlaceOrder handles POST /order/new
func (h *OrderHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	var cmd commands.PlaceOrderCommand
	if err := common.ParseJSONBody(w, r, &cmd, maxBodyBytes); err != nil {
		h.errorHandler.Handle(w, r, apperrors.NewValidationError("Invalid request body"))
		return
	}

	// The authenticated identity owns the order regardless of the body.
	user, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		h.errorHandler.Handle(w, r, apperrors.NewUnauthorizedError("Authentication required"))
		return
	}
	cmd.UserID = user.UserID

	if err := utils.ValidateStruct(cmd); err != nil {
		h.errorHandler.Handle(w, r, apperrors.NewValidationError(err.Error()))
		return
	}

	if _, err := h.commandBus.Send(r.Context(), cmd); err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	common.RespondMessage(w, http.StatusCreated, "Order Placed Successfully")
}

// MyOrders handles GET /order/my
func (h *OrderHandler) MyOrders(w http.ResponseWriter, r *http.Request) {
	user, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		h.errorHandler.Handle(w, r, apperrors.NewUnauthorizedError("Authentication required"))
		return
	}

	orders, err := h.queryBus.Ask(r.Context(), queries.MyOrdersQuery{UserID: user.UserID})
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, common.Fields{"orders": orders})
}

// AllOrders handles GET /order/all
func (h *OrderHandler) AllOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.queryBus.Ask(r.Context(), queries.AllOrdersQuery{})
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, common.Fields{"orders": orders})
}

// GetOrder handles GET /order/{orderID}
func (h *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	orderID, err := h.orderID(r)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	order, err := h.queryBus.Ask(r.Context(), queries.GetOrderQuery{OrderID: orderID})
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, common.Fields{"order": order})
}

// ProcessOrder handles PUT /order/{orderID}
func (h *OrderHandler) ProcessOrder(w http.ResponseWriter, r *http.Request) {
	orderID, err := h.orderID(r)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	if _, err := h.commandBus.Send(r.Context(), commands.ProcessOrderCommand{OrderID: orderID}); err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	common.RespondMessage(w, http.StatusOK, "Order Processed Successfully")
}

// DeleteOrder handles DELETE /order/{orderID}
func (h *OrderHandler) DeleteOrder(w http.ResponseWriter, r *http.Request) {
	orderID, err := h.orderID(r)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	if _, err := h.commandBus.Send(r.Context(), commands.DeleteOrderCommand{OrderID: orderID}); err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	common.RespondMessage(w, http.StatusOK, "Order Deleted Successfully")
}

func (h *OrderHandler) orderID(r *http.Request) (string, error) {
	raw := chi.URLParam(r, "orderID")
	if _, err := uuid.Parse(raw); err != nil {
		return "", apperrors.NewCastError(raw)
	}
	return raw, nil
}
