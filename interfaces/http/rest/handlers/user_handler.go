package handlers

import (
	"net/http"

	"storefront-backend/application/commands"
	"storefront-backend/application/commands/bus"
	"storefront-backend/application/queries"
	querybus "storefront-backend/application/queries/bus"
	"storefront-backend/pkg/common"
	"storefront-backend/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	apperrors "storefront-backend/pkg/errors"
)

// UserHandler handles user-related HTTP requests
type UserHandler struct {
	commandBus   *bus.CommandBus
	queryBus     *querybus.QueryBus
	errorHandler *apperrors.ErrorHandler
	logger       *zap.Logger
}

// NewUserHandler creates a new user handler
func NewUserHandler(
	commandBus *bus.CommandBus,
	queryBus *querybus.QueryBus,
	errorHandler *apperrors.ErrorHandler,
	logger *zap.Logger,
) *UserHandler {
	return &UserHandler{
		commandBus:   commandBus,
		queryBus:     queryBus,
		errorHandler: errorHandler,
		logger:       logger,
	}
}

// RegisterUser handles POST /user/new. Registration is idempotent: a repeat
// call for a known ID greets the user instead of failing.
func (h *UserHandler) RegisterUser(w http.ResponseWriter, r *http.Request) {
	var cmd commands.RegisterUserCommand
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

	registration, ok := result.(*commands.RegisterUserResult)
	if !ok {
		h.errorHandler.Handle(w, r, apperrors.NewInternalError("unexpected command result"))
		return
	}

	status := http.StatusOK
	if registration.Created {
		status = http.StatusCreated
	}
	common.RespondMessage(w, status, registration.Message)
}

// AllUsers handles GET /user/all
func (h *UserHandler) AllUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.queryBus.Ask(r.Context(), queries.AllUsersQuery{})
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, common.Fields{"users": users})
}

// GetUser handles GET /user/{userID}
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	user, err := h.queryBus.Ask(r.Context(), queries.GetUserQuery{UserID: userID})
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, common.Fields{"user": user})
}

// DeleteUser handles DELETE /user/{userID}
func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	if _, err := h.commandBus.Send(r.Context(), commands.DeleteUserCommand{UserID: userID}); err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	common.RespondMessage(w, http.StatusOK, "User Deleted Successfully")
}
