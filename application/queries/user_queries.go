package queries

import (
	"context"
	"errors"

	"storefront-backend/application/ports"
	"storefront-backend/application/queries/bus"
)

// AllUsersQuery represents the admin listing of every account
type AllUsersQuery struct{}

// Validate validates the AllUsersQuery
func (q AllUsersQuery) Validate() error { return nil }

// AllUsersHandler handles the AllUsersQuery
type AllUsersHandler struct {
	users ports.UserRepository
}

// NewAllUsersHandler creates a new handler instance
func NewAllUsersHandler(users ports.UserRepository) *AllUsersHandler {
	return &AllUsersHandler{users: users}
}

// Handle executes the all users query
func (h *AllUsersHandler) Handle(ctx context.Context, query bus.Query) (interface{}, error) {
	if _, ok := query.(AllUsersQuery); !ok {
		return nil, errors.New("unexpected query type")
	}
	return h.users.Find(ctx, ports.UserFilter{})
}

// GetUserQuery represents a query for a single account
type GetUserQuery struct {
	UserID string
}

// Validate validates the GetUserQuery
func (q GetUserQuery) Validate() error {
	if q.UserID == "" {
		return errors.New("user ID is required")
	}
	return nil
}

// GetUserHandler handles the GetUserQuery
type GetUserHandler struct {
	users ports.UserRepository
}

// NewGetUserHandler creates a new handler instance
func NewGetUserHandler(users ports.UserRepository) *GetUserHandler {
	return &GetUserHandler{users: users}
}

// Handle executes the get user query
func (h *GetUserHandler) Handle(ctx context.Context, query bus.Query) (interface{}, error) {
	q, ok := query.(GetUserQuery)
	if !ok {
		return nil, errors.New("unexpected query type")
	}
	return h.users.GetByID(ctx, q.UserID)
}
