package memory

import (
	"context"
	"sync"

	"storefront-backend/application/ports"
	"storefront-backend/domain/entities"

	apperrors "storefront-backend/pkg/errors"
)

// UserRepository is an in-memory UserRepository
type UserRepository struct {
	mu    sync.RWMutex
	users map[string]*entities.User
}

// NewUserRepository creates an empty in-memory user repository
func NewUserRepository() *UserRepository {
	return &UserRepository{users: make(map[string]*entities.User)}
}

// Create persists a new user
func (r *UserRepository) Create(ctx context.Context, user *entities.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

// GetByID fetches one user
func (r *UserRepository) GetByID(ctx context.Context, id string) (*entities.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	user, ok := r.users[id]
	if !ok {
		return nil, apperrors.NewNotFoundError("User")
	}
	clone := *user
	return &clone, nil
}

// Delete removes a user
func (r *UserRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.users, id)
	return nil
}

// Find returns the users matching filter
func (r *UserRepository) Find(ctx context.Context, filter ports.UserFilter) ([]*entities.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := []*entities.User{}
	for _, user := range r.users {
		if matchesUser(user, filter) {
			clone := *user
			matched = append(matched, &clone)
		}
	}
	return matched, nil
}

// Count returns the number of users matching filter
func (r *UserRepository) Count(ctx context.Context, filter ports.UserFilter) (int, error) {
	users, err := r.Find(ctx, filter)
	if err != nil {
		return 0, err
	}
	return len(users), nil
}

func matchesUser(user *entities.User, filter ports.UserFilter) bool {
	if filter.Gender != "" && user.Gender != filter.Gender {
		return false
	}
	if filter.Role != "" && user.Role != filter.Role {
		return false
	}
	if filter.CreatedWithin != nil &&
		(user.CreatedAt.Before(filter.CreatedWithin.Start) || user.CreatedAt.After(filter.CreatedWithin.End)) {
		return false
	}
	return true
}
