// Package handlers translates HTTP requests into commands and queries. Every
// handler validates its input, dispatches on a bus, and writes the success
// envelope; failures go through the central error handler.
package handlers

import (
	"net/http"
	"strconv"

	"storefront-backend/application/commands"
	"storefront-backend/application/commands/bus"
	"storefront-backend/application/queries"
	querybus "storefront-backend/application/queries/bus"
	"storefront-backend/pkg/common"
	"storefront-backend/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	apperrors "storefront-backend/pkg/errors"
)

// ProductHandler handles product-related HTTP requests
type ProductHandler struct {
	commandBus   *bus.CommandBus
	queryBus     *querybus.QueryBus
	errorHandler *apperrors.ErrorHandler
	logger       *zap.Logger
}

// NewProductHandler creates a new product handler
func NewProductHandler(
	commandBus *bus.CommandBus,
	queryBus *querybus.QueryBus,
	errorHandler *apperrors.ErrorHandler,
	logger *zap.Logger,
) *ProductHandler {
	return &ProductHandler{
		commandBus:   commandBus,
		queryBus:     queryBus,
		errorHandler: errorHandler,
		logger:       logger,
	}
}

const maxBodyBytes = 1 << 20

// CreateProduct handles POST /product/new
func (h *ProductHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var cmd commands.CreateProductCommand
	if err := common.ParseJSONBody(w, r, &cmd, maxBodyBytes); err != nil {
		h.errorHandler.Handle(w, r, apperrors.NewValidationError("Invalid request body"))
		return
	}

	if err := utils.ValidateStruct(cmd); err != nil {
		h.errorHandler.Handle(w, r, apperrors.NewValidationError(err.Error()))
		return
	}

	result, err := h.commandBus.Send(r.Context(), cmd)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusCreated, common.Fields{
		"message": "Product created successfully",
		"product": result,
	})
}

// LatestProducts handles GET /product/latest
func (h *ProductHandler) LatestProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.queryBus.Ask(r.Context(), queries.LatestProductsQuery{})
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, common.Fields{"products": products})
}

// Categories handles GET /product/categories
func (h *ProductHandler) Categories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.queryBus.Ask(r.Context(), queries.CategoriesQuery{})
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, common.Fields{"categories": categories})
}

// AdminProducts handles GET /product/admin-products
func (h *ProductHandler) AdminProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.queryBus.Ask(r.Context(), queries.AdminProductsQuery{})
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, common.Fields{"products": products})
}

// SearchProducts handles GET /product/all
func (h *ProductHandler) SearchProducts(w http.ResponseWriter, r *http.Request) {
	query := queries.SearchProductsQuery{
		Search:   r.URL.Query().Get("search"),
		Category: r.URL.Query().Get("category"),
		Sort:     r.URL.Query().Get("sort"),
	}
	if raw := r.URL.Query().Get("price"); raw != "" {
		price, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			h.errorHandler.Handle(w, r, apperrors.NewValidationError("Invalid price"))
			return
		}
		query.MaxPrice = price
	}
	if raw := r.URL.Query().Get("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil {
			h.errorHandler.Handle(w, r, apperrors.NewValidationError("Invalid page"))
			return
		}
		query.Page = page
	}

	result, err := h.queryBus.Ask(r.Context(), query)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	searchResult, ok := result.(*queries.SearchProductsResult)
	if !ok {
		h.errorHandler.Handle(w, r, apperrors.NewInternalError("unexpected query result"))
		return
	}

	common.RespondJSON(w, http.StatusOK, common.Fields{
		"products":  searchResult.Products,
		"totalPage": searchResult.TotalPage,
	})
}

// GetProduct handles GET /product/{productID}
func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	productID, err := h.productID(r)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	product, err := h.queryBus.Ask(r.Context(), queries.GetProductQuery{ProductID: productID})
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, common.Fields{"product": product})
}

// UpdateProduct handles PUT /product/{productID}
func (h *ProductHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	productID, err := h.productID(r)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	var cmd commands.UpdateProductCommand
	if err := common.ParseJSONBody(w, r, &cmd, maxBodyBytes); err != nil {
		h.errorHandler.Handle(w, r, apperrors.NewValidationError("Invalid request body"))
		return
	}
	cmd.ProductID = productID

	result, err := h.commandBus.Send(r.Context(), cmd)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, common.Fields{
		"message": "Product updated successfully",
		"product": result,
	})
}

// DeleteProduct handles DELETE /product/{productID}
func (h *ProductHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	productID, err := h.productID(r)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	if _, err := h.commandBus.Send(r.Context(), commands.DeleteProductCommand{ProductID: productID}); err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	common.RespondMessage(w, http.StatusOK, "Product deleted successfully")
}

// productID extracts and checks the path ID. Malformed IDs are rejected as
// cast errors, never forwarded to the store.
func (h *ProductHandler) productID(r *http.Request) (string, error) {
	raw := chi.URLParam(r, "productID")
	if _, err := uuid.Parse(raw); err != nil {
		return "", apperrors.NewCastError(raw)
	}
	return raw, nil
}
