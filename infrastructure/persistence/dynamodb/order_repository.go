package dynamodb

import (
	"context"
	"sort"
	"time"

	"storefront-backend/application/ports"
	"storefront-backend/domain/entities"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"go.uber.org/zap"

	apperrors "storefront-backend/pkg/errors"
)

// OrderRepository implements the OrderRepository interface using DynamoDB
type OrderRepository struct {
	client    *dynamodb.Client
	tableName string
	logger    *zap.Logger
}

// NewOrderRepository creates a new OrderRepository
func NewOrderRepository(client *dynamodb.Client, tableName string, logger *zap.Logger) ports.OrderRepository {
	return &OrderRepository{
		client:    client,
		tableName: tableName,
		logger:    logger,
	}
}

// orderItemRecord mirrors one purchased line inside the order item
type orderItemRecord struct {
	Name      string  `dynamodbav:"Name"`
	Photo     string  `dynamodbav:"Photo"`
	Price     float64 `dynamodbav:"Price"`
	Quantity  int     `dynamodbav:"Quantity"`
	ProductID string  `dynamodbav:"ProductID"`
}

// orderRecord represents the DynamoDB item structure for an order
type orderRecord struct {
	PK              string            `dynamodbav:"PK"`
	UserID          string            `dynamodbav:"UserID"`
	Address         string            `dynamodbav:"Address"`
	City            string            `dynamodbav:"City"`
	State           string            `dynamodbav:"State"`
	Country         string            `dynamodbav:"Country"`
	PinCode         int               `dynamodbav:"PinCode"`
	SubTotal        float64           `dynamodbav:"SubTotal"`
	Tax             float64           `dynamodbav:"Tax"`
	ShippingCharges float64           `dynamodbav:"ShippingCharges"`
	Discount        float64           `dynamodbav:"Discount"`
	Total           float64           `dynamodbav:"Total"`
	Status          string            `dynamodbav:"Status"`
	Items           []orderItemRecord `dynamodbav:"Items"`
	CreatedAt       string            `dynamodbav:"CreatedAt"`
	UpdatedAt       string            `dynamodbav:"UpdatedAt"`
}

func toOrderRecord(o *entities.Order) orderRecord {
	items := make([]orderItemRecord, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, orderItemRecord{
			Name:      item.Name,
			Photo:     item.Photo,
			Price:     item.Price,
			Quantity:  item.Quantity,
			ProductID: item.ProductID,
		})
	}
	return orderRecord{
		PK:              o.ID,
		UserID:          o.UserID,
		Address:         o.ShippingInfo.Address,
		City:            o.ShippingInfo.City,
		State:           o.ShippingInfo.State,
		Country:         o.ShippingInfo.Country,
		PinCode:         o.ShippingInfo.PinCode,
		SubTotal:        o.SubTotal,
		Tax:             o.Tax,
		ShippingCharges: o.ShippingCharges,
		Discount:        o.Discount,
		Total:           o.Total,
		Status:          string(o.Status),
		Items:           items,
		CreatedAt:       o.CreatedAt.UTC().Format(time.RFC3339Nano),
		UpdatedAt:       o.UpdatedAt.UTC().Format(time.RFC3339Nano),
	}
}

func (rec orderRecord) toEntity() *entities.Order {
	items := make([]entities.OrderItem, 0, len(rec.Items))
	for _, item := range rec.Items {
		items = append(items, entities.OrderItem{
			Name:      item.Name,
			Photo:     item.Photo,
			Price:     item.Price,
			Quantity:  item.Quantity,
			ProductID: item.ProductID,
		})
	}
	createdAt, _ := time.Parse(time.RFC3339Nano, rec.CreatedAt)
	updatedAt, _ := time.Parse(time.RFC3339Nano, rec.UpdatedAt)
	return &entities.Order{
		ID: rec.PK,
		ShippingInfo: entities.ShippingInfo{
			Address: rec.Address,
			City:    rec.City,
			State:   rec.State,
			Country: rec.Country,
			PinCode: rec.PinCode,
		},
		UserID:          rec.UserID,
		SubTotal:        rec.SubTotal,
		Tax:             rec.Tax,
		ShippingCharges: rec.ShippingCharges,
		Discount:        rec.Discount,
		Total:           rec.Total,
		Status:          entities.OrderStatus(rec.Status),
		Items:           items,
		CreatedAt:       createdAt,
		UpdatedAt:       updatedAt,
	}
}

// Create persists a new order
func (r *OrderRepository) Create(ctx context.Context, order *entities.Order) error {
	return putItem(ctx, r.client, r.tableName, toOrderRecord(order))
}

// GetByID fetches one order
func (r *OrderRepository) GetByID(ctx context.Context, id string) (*entities.Order, error) {
	rec, found, err := getItem[orderRecord](ctx, r.client, r.tableName, id)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, apperrors.NewNotFoundError("Order")
	}
	return rec.toEntity(), nil
}

// Save overwrites an existing order
func (r *OrderRepository) Save(ctx context.Context, order *entities.Order) error {
	return putItem(ctx, r.client, r.tableName, toOrderRecord(order))
}

// Delete removes an order
func (r *OrderRepository) Delete(ctx context.Context, id string) error {
	return deleteItem(ctx, r.client, r.tableName, id)
}

// Find returns the orders matching filter, newest first.
func (r *OrderRepository) Find(ctx context.Context, filter ports.OrderFilter) ([]*entities.Order, error) {
	expr, err := buildOrderFilter(filter)
	if err != nil {
		return nil, err
	}

	records, err := scanAll[orderRecord](ctx, r.client, r.tableName, expr)
	if err != nil {
		return nil, err
	}

	orders := make([]*entities.Order, 0, len(records))
	for _, rec := range records {
		orders = append(orders, rec.toEntity())
	}

	sort.SliceStable(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})

	if filter.Limit > 0 && len(orders) > filter.Limit {
		orders = orders[:filter.Limit]
	}

	return orders, nil
}

// Count returns the number of orders matching filter
func (r *OrderRepository) Count(ctx context.Context, filter ports.OrderFilter) (int, error) {
	// Limit is a presentation concern, not part of the matched set.
	filter.Limit = 0

	orders, err := r.Find(ctx, filter)
	if err != nil {
		return 0, err
	}
	return len(orders), nil
}

func buildOrderFilter(filter ports.OrderFilter) (*expression.Expression, error) {
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

	if filter.UserID != "" {
		add(expression.Name("UserID").Equal(expression.Value(filter.UserID)))
	}
	if filter.Status != "" {
		add(expression.Name("Status").Equal(expression.Value(string(filter.Status))))
	}
	if filter.CreatedWithin != nil {
		cond, hasCond = createdWithin(cond, hasCond, filter.CreatedWithin.Start, filter.CreatedWithin.End)
	}

	return buildFilter(cond, hasCond)
}
