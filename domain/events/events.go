package events

import "time"

// SourceBackend identifies this service on the event bus.
const SourceBackend = "storefront.backend"

// DomainEvent is the base interface for all domain events.
// Events represent something that has happened in the past.
type DomainEvent interface {
	GetAggregateID() string
	GetEventType() string
	GetTimestamp() time.Time
}

// BaseEvent provides common event fields.
type BaseEvent struct {
	AggregateID string    `json:"aggregate_id"`
	EventType   string    `json:"event_type"`
	Timestamp   time.Time `json:"timestamp"`
}

func (e BaseEvent) GetAggregateID() string  { return e.AggregateID }
func (e BaseEvent) GetEventType() string    { return e.EventType }
func (e BaseEvent) GetTimestamp() time.Time { return e.Timestamp }

func newBase(aggregateID, eventType string) BaseEvent {
	return BaseEvent{
		AggregateID: aggregateID,
		EventType:   eventType,
		Timestamp:   time.Now().UTC(),
	}
}

// Product events

// ProductCreated is raised when a catalog entry is added.
type ProductCreated struct {
	BaseEvent
	ProductID string `json:"product_id"`
	Category  string `json:"category"`
}

func NewProductCreated(productID, category string) ProductCreated {
	return ProductCreated{
		BaseEvent: newBase(productID, "product.created"),
		ProductID: productID,
		Category:  category,
	}
}

// ProductUpdated is raised after a product edit commits.
type ProductUpdated struct {
	BaseEvent
	ProductID string `json:"product_id"`
}

func NewProductUpdated(productID string) ProductUpdated {
	return ProductUpdated{
		BaseEvent: newBase(productID, "product.updated"),
		ProductID: productID,
	}
}

// ProductDeleted is raised after a product is removed.
type ProductDeleted struct {
	BaseEvent
	ProductID string `json:"product_id"`
}

func NewProductDeleted(productID string) ProductDeleted {
	return ProductDeleted{
		BaseEvent: newBase(productID, "product.deleted"),
		ProductID: productID,
	}
}

// Order events

// OrderPlaced is raised after an order and its stock decrements commit.
type OrderPlaced struct {
	BaseEvent
	OrderID    string   `json:"order_id"`
	UserID     string   `json:"user_id"`
	Total      float64  `json:"total"`
	ProductIDs []string `json:"product_ids"`
}

func NewOrderPlaced(orderID, userID string, total float64, productIDs []string) OrderPlaced {
	return OrderPlaced{
		BaseEvent:  newBase(orderID, "order.placed"),
		OrderID:    orderID,
		UserID:     userID,
		Total:      total,
		ProductIDs: productIDs,
	}
}

// OrderStatusChanged is raised when fulfillment advances.
type OrderStatusChanged struct {
	BaseEvent
	OrderID string `json:"order_id"`
	Status  string `json:"status"`
}

func NewOrderStatusChanged(orderID, status string) OrderStatusChanged {
	return OrderStatusChanged{
		BaseEvent: newBase(orderID, "order.status_changed"),
		OrderID:   orderID,
		Status:    status,
	}
}

// OrderDeleted is raised after an order is removed.
type OrderDeleted struct {
	BaseEvent
	OrderID string `json:"order_id"`
	UserID  string `json:"user_id"`
}

func NewOrderDeleted(orderID, userID string) OrderDeleted {
	return OrderDeleted{
		BaseEvent: newBase(orderID, "order.deleted"),
		OrderID:   orderID,
		UserID:    userID,
	}
}

// User and coupon events

// UserRegistered is raised when a new account record is created.
type UserRegistered struct {
	BaseEvent
	UserID string `json:"user_id"`
}

func NewUserRegistered(userID string) UserRegistered {
	return UserRegistered{
		BaseEvent: newBase(userID, "user.registered"),
		UserID:    userID,
	}
}

// CouponCreated is raised when a discount code is issued.
type CouponCreated struct {
	BaseEvent
	CouponID string  `json:"coupon_id"`
	Code     string  `json:"code"`
	Amount   float64 `json:"amount"`
}

func NewCouponCreated(couponID, code string, amount float64) CouponCreated {
	return CouponCreated{
		BaseEvent: newBase(couponID, "coupon.created"),
		CouponID:  couponID,
		Code:      code,
		Amount:    amount,
	}
}
