package dynamodb

import (
	"context"
	"time"

	"storefront-backend/application/ports"
	"storefront-backend/domain/entities"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"go.uber.org/zap"

	apperrors "storefront-backend/pkg/errors"
)

// UserRepository implements the UserRepository interface using DynamoDB
type UserRepository struct {
	client    *dynamodb.Client
	tableName string
	logger    *zap.Logger
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(client *dynamodb.Client, tableName string, logger *zap.Logger) ports.UserRepository {
	return &UserRepository{
		client:    client,
		tableName: tableName,
		logger:    logger,
	}
}

// userItem represents the DynamoDB item structure for a user
type userItem struct {
	PK        string `dynamodbav:"PK"`
	Name      string `dynamodbav:"Name"`
	Email     string `dynamodbav:"Email"`
	Photo     string `dynamodbav:"Photo"`
	Role      string `dynamodbav:"Role"`
	Gender    string `dynamodbav:"Gender"`
	DOB       string `dynamodbav:"DOB"`
	CreatedAt string `dynamodbav:"CreatedAt"`
	UpdatedAt string `dynamodbav:"UpdatedAt"`
}

func toUserItem(u *entities.User) userItem {
	return userItem{
		PK:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Photo:     u.Photo,
		Role:      string(u.Role),
		Gender:    string(u.Gender),
		DOB:       u.DOB.UTC().Format(time.RFC3339Nano),
		CreatedAt: u.CreatedAt.UTC().Format(time.RFC3339Nano),
		UpdatedAt: u.UpdatedAt.UTC().Format(time.RFC3339Nano),
	}
}

func (i userItem) toEntity() *entities.User {
	dob, _ := time.Parse(time.RFC3339Nano, i.DOB)
	createdAt, _ := time.Parse(time.RFC3339Nano, i.CreatedAt)
	updatedAt, _ := time.Parse(time.RFC3339Nano, i.UpdatedAt)
	return &entities.User{
		ID:        i.PK,
		Name:      i.Name,
		Email:     i.Email,
		Photo:     i.Photo,
		Role:      entities.Role(i.Role),
		Gender:    entities.Gender(i.Gender),
		DOB:       dob,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}
}

// Create persists a new user
func (r *UserRepository) Create(ctx context.Context, user *entities.User) error {
	return putItem(ctx, r.client, r.tableName, toUserItem(user))
}

// GetByID fetches one user
func (r *UserRepository) GetByID(ctx context.Context, id string) (*entities.User, error) {
	item, found, err := getItem[userItem](ctx, r.client, r.tableName, id)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, apperrors.NewNotFoundError("User")
	}
	return item.toEntity(), nil
}

// Delete removes a user
func (r *UserRepository) Delete(ctx context.Context, id string) error {
	return deleteItem(ctx, r.client, r.tableName, id)
}

// Find returns the users matching filter
func (r *UserRepository) Find(ctx context.Context, filter ports.UserFilter) ([]*entities.User, error) {
	expr, err := buildUserFilter(filter)
	if err != nil {
		return nil, err
	}

	items, err := scanAll[userItem](ctx, r.client, r.tableName, expr)
	if err != nil {
		return nil, err
	}

	users := make([]*entities.User, 0, len(items))
	for _, item := range items {
		users = append(users, item.toEntity())
	}
	return users, nil
}

// Count returns the number of users matching filter
func (r *UserRepository) Count(ctx context.Context, filter ports.UserFilter) (int, error) {
	users, err := r.Find(ctx, filter)
	if err != nil {
		return 0, err
	}
	return len(users), nil
}

func buildUserFilter(filter ports.UserFilter) (*expression.Expression, error) {
	var cond expression.ConditionBuilder
	hasCond := false

	add := func(c expression.ConditionBuilder) {
		if !hasCond {
			cond = c
			hasCond = true
			return
		}
		cond = cond.And(c)
	}

	if filter.Gender != "" {
		add(expression.Name("Gender").Equal(expression.Value(string(filter.Gender))))
	}
	if filter.Role != "" {
		add(expression.Name("Role").Equal(expression.Value(string(filter.Role))))
	}
	if filter.CreatedWithin != nil {
		cond, hasCond = createdWithin(cond, hasCond, filter.CreatedWithin.Start, filter.CreatedWithin.End)
	}

	return buildFilter(cond, hasCond)
}
