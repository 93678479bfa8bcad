package handlers

import (
	"net/http"

	"storefront-backend/application/commands"
	"storefront-backend/application/commands/bus"
	"storefront-backend/application/ports"
	"storefront-backend/application/queries"
	querybus "storefront-backend/application/queries/bus"
	"storefront-backend/pkg/common"
	"storefront-backend/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	apperrors "storefront-backend/pkg/errors"
)

// PaymentHandler handles payment intents and coupon endpoints
type PaymentHandler struct {
	commandBus   *bus.CommandBus
	queryBus     *querybus.QueryBus
	gateway      ports.PaymentGateway
	currency     string
	errorHandler *apperrors.ErrorHandler
	logger       *zap.Logger
}

// NewPaymentHandler creates a new payment handler
func NewPaymentHandler(
	commandBus *bus.CommandBus,
	queryBus *querybus.QueryBus,
	gateway ports.PaymentGateway,
	currency string,
	errorHandler *apperrors.ErrorHandler,
	logger *zap.Logger,
) *PaymentHandler {
	return &PaymentHandler{
		commandBus:   commandBus,
		queryBus:     queryBus,
		gateway:      gateway,
		currency:     currency,
		errorHandler: errorHandler,
		logger:       logger,
	}
}

type createIntentRequest struct {
	Amount float64 `json:"amount" validate:"required,gt=0"`
}

// CreateIntent handles POST /payment/create
func (h *PaymentHandler) CreateIntent(w http.ResponseWriter, r *http.Request) {
	var req createIntentRequest
	if err := common.ParseJSONBody(w, r, &req, maxBodyBytes); err != nil {
		h.errorHandler.Handle(w, r, apperrors.NewValidationError("Please enter amount"))
		return
	}

	if err := utils.ValidateStruct(req); err != nil {
		h.errorHandler.Handle(w, r, apperrors.NewValidationError("Please enter amount"))
		return
	}

	// The processor counts in the smallest currency unit.
	intent, err := h.gateway.CreateIntent(r.Context(), int64(req.Amount*100), h.currency)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusCreated, common.Fields{
		"clientSecret": intent.ClientSecret,
	})
}

// ApplyDiscount handles GET /payment/discount
func (h *PaymentHandler) ApplyDiscount(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("coupon")

	result, err := h.queryBus.Ask(r.Context(), queries.ApplyDiscountQuery{Code: code})
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	discount, ok := result.(*queries.ApplyDiscountResult)
	if !ok {
		h.errorHandler.Handle(w, r, apperrors.NewInternalError("unexpected query result"))
		return
	}

	common.RespondJSON(w, http.StatusOK, common.Fields{"discount": discount.Discount})
}

// CreateCoupon handles POST /payment/coupon/new
func (h *PaymentHandler) CreateCoupon(w http.ResponseWriter, r *http.Request) {
	var cmd commands.CreateCouponCommand
	if err := common.ParseJSONBody(w, r, &cmd, maxBodyBytes); err != nil {
		h.errorHandler.Handle(w, r, apperrors.NewValidationError("Invalid request body"))
		return
	}

	if err := utils.ValidateStruct(cmd); err != nil {
		h.errorHandler.Handle(w, r, apperrors.NewValidationError(err.Error()))
		return
	}

	coupon, err := h.commandBus.Send(r.Context(), cmd)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusCreated, common.Fields{
		"message": "Coupon created successfully",
		"coupon":  coupon,
	})
}

// AllCoupons handles GET /payment/coupon/all
func (h *PaymentHandler) AllCoupons(w http.ResponseWriter, r *http.Request) {
	coupons, err := h.queryBus.Ask(r.Context(), queries.AllCouponsQuery{})
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, common.Fields{"coupons": coupons})
}

// DeleteCoupon handles DELETE /payment/coupon/{couponID}
func (h *PaymentHandler) DeleteCoupon(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "couponID")
	if _, err := uuid.Parse(raw); err != nil {
		h.errorHandler.Handle(w, r, apperrors.NewCastError(raw))
		return
	}

	if _, err := h.commandBus.Send(r.Context(), commands.DeleteCouponCommand{CouponID: raw}); err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	common.RespondMessage(w, http.StatusOK, "Coupon Deleted Successfully")
}
