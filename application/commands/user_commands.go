package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"storefront-backend/application/commands/bus"
	"storefront-backend/application/ports"
	"storefront-backend/domain/entities"
	"storefront-backend/domain/events"

	apperrors "storefront-backend/pkg/errors"

	"go.uber.org/zap"
)

// RegisterUserCommand represents the command to register an account. The ID
// comes from the identity provider, so re-registration with a known ID is a
// welcome-back, not a conflict.
type RegisterUserCommand struct {
	UserID string `json:"_id" validate:"required"`
	Name   string `json:"name" validate:"required"`
	Email  string `json:"email" validate:"required,email"`
	Photo  string `json:"photo" validate:"required"`
	Gender string `json:"gender" validate:"required,oneof=male female"`
	DOB    string `json:"dob" validate:"required"`
}

// Validate validates the command
func (cmd RegisterUserCommand) Validate() error {
	if cmd.UserID == "" {
		return errors.New("user ID is required")
	}
	if cmd.Name == "" {
		return errors.New("user name is required")
	}
	if cmd.Email == "" {
		return errors.New("user email is required")
	}
	return nil
}

// RegisterUserResult reports whether a record was created and the greeting
// to show.
type RegisterUserResult struct {
	User    *entities.User `json:"user"`
	Created bool           `json:"created"`
	Message string         `json:"message"`
}

// RegisterUserHandler handles the RegisterUserCommand
type RegisterUserHandler struct {
	users     ports.UserRepository
	publisher ports.EventPublisher
	logger    *zap.Logger
}

// NewRegisterUserHandler creates a new handler instance
func NewRegisterUserHandler(
	users ports.UserRepository,
	publisher ports.EventPublisher,
	logger *zap.Logger,
) *RegisterUserHandler {
	return &RegisterUserHandler{
		users:     users,
		publisher: publisher,
		logger:    logger,
	}
}

// Handle executes the register user command
func (h *RegisterUserHandler) Handle(ctx context.Context, cmd bus.Command) (interface{}, error) {
	c, ok := cmd.(RegisterUserCommand)
	if !ok {
		return nil, errors.New("unexpected command type")
	}

	existing, err := h.users.GetByID(ctx, c.UserID)
	if err == nil {
		return &RegisterUserResult{
			User:    existing,
			Created: false,
			Message: fmt.Sprintf("Welcome, %s", existing.Name),
		}, nil
	}
	if !apperrors.IsNotFound(err) {
		return nil, err
	}

	dob, err := time.Parse(time.RFC3339, c.DOB)
	if err != nil {
		// Date-only payloads are accepted too.
		dob, err = time.Parse("2006-01-02", c.DOB)
		if err != nil {
			return nil, apperrors.NewValidationError("invalid date of birth")
		}
	}

	user, err := entities.NewUser(c.UserID, c.Name, c.Email, c.Photo, entities.Gender(c.Gender), dob)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	if err := h.users.Create(ctx, user); err != nil {
		return nil, err
	}

	if err := h.publisher.Publish(ctx, events.NewUserRegistered(user.ID)); err != nil {
		h.logger.Warn("Failed to publish user registered event",
			zap.String("userID", user.ID),
			zap.Error(err),
		)
	}

	return &RegisterUserResult{
		User:    user,
		Created: true,
		Message: fmt.Sprintf("Welcome, %s", user.Name),
	}, nil
}

// DeleteUserCommand represents the command to remove an account
type DeleteUserCommand struct {
	UserID string `json:"userId" validate:"required"`
}

// Validate validates the command
func (cmd DeleteUserCommand) Validate() error {
	if cmd.UserID == "" {
		return errors.New("user ID is required")
	}
	return nil
}

// DeleteUserHandler handles the DeleteUserCommand
type DeleteUserHandler struct {
	users  ports.UserRepository
	logger *zap.Logger
}

// NewDeleteUserHandler creates a new handler instance
func NewDeleteUserHandler(users ports.UserRepository, logger *zap.Logger) *DeleteUserHandler {
	return &DeleteUserHandler{users: users, logger: logger}
}

// Handle executes the delete user command
func (h *DeleteUserHandler) Handle(ctx context.Context, cmd bus.Command) (interface{}, error) {
	c, ok := cmd.(DeleteUserCommand)
	if !ok {
		return nil, errors.New("unexpected command type")
	}

	user, err := h.users.GetByID(ctx, c.UserID)
	if err != nil {
		return nil, err
	}

	if err := h.users.Delete(ctx, user.ID); err != nil {
		return nil, err
	}

	return user, nil
}
