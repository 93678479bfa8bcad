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

// CouponRepository implements the CouponRepository interface using DynamoDB
type CouponRepository struct {
	client    *dynamodb.Client
	tableName string
	logger    *zap.Logger
}

// NewCouponRepository creates a new CouponRepository
func NewCouponRepository(client *dynamodb.Client, tableName string, logger *zap.Logger) ports.CouponRepository {
	return &CouponRepository{
		client:    client,
		tableName: tableName,
		logger:    logger,
	}
}

// couponItem represents the DynamoDB item structure for a coupon
type couponItem struct {
	PK        string  `dynamodbav:"PK"`
	Code      string  `dynamodbav:"Code"`
	Amount    float64 `dynamodbav:"Amount"`
	CreatedAt string  `dynamodbav:"CreatedAt"`
}

func toCouponItem(c *entities.Coupon) couponItem {
	return couponItem{
		PK:        c.ID,
		Code:      c.Code,
		Amount:    c.Amount,
		CreatedAt: c.CreatedAt.UTC().Format(time.RFC3339Nano),
	}
}

func (i couponItem) toEntity() *entities.Coupon {
	createdAt, _ := time.Parse(time.RFC3339Nano, i.CreatedAt)
	return &entities.Coupon{
		ID:        i.PK,
		Code:      i.Code,
		Amount:    i.Amount,
		CreatedAt: createdAt,
	}
}

// Create persists a new coupon
func (r *CouponRepository) Create(ctx context.Context, coupon *entities.Coupon) error {
	return putItem(ctx, r.client, r.tableName, toCouponItem(coupon))
}

// GetByID fetches one coupon
func (r *CouponRepository) GetByID(ctx context.Context, id string) (*entities.Coupon, error) {
	item, found, err := getItem[couponItem](ctx, r.client, r.tableName, id)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, apperrors.NewNotFoundError("Coupon")
	}
	return item.toEntity(), nil
}

// GetByCode resolves a coupon by its code
func (r *CouponRepository) GetByCode(ctx context.Context, code string) (*entities.Coupon, error) {
	expr, err := buildFilter(expression.Name("Code").Equal(expression.Value(code)), true)
	if err != nil {
		return nil, err
	}

	items, err := scanAll[couponItem](ctx, r.client, r.tableName, expr)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, apperrors.NewNotFoundError("Coupon")
	}
	return items[0].toEntity(), nil
}

// Delete removes a coupon
func (r *CouponRepository) Delete(ctx context.Context, id string) error {
	return deleteItem(ctx, r.client, r.tableName, id)
}

// FindAll returns every coupon
func (r *CouponRepository) FindAll(ctx context.Context) ([]*entities.Coupon, error) {
	items, err := scanAll[couponItem](ctx, r.client, r.tableName, nil)
	if err != nil {
		return nil, err
	}

	coupons := make([]*entities.Coupon, 0, len(items))
	for _, item := range items {
		coupons = append(coupons, item.toEntity())
	}
	return coupons, nil
}
