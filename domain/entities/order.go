package entities

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// OrderStatus tracks fulfillment progress.
type OrderStatus string

const (
	StatusProcessing OrderStatus = "Processing"
	StatusShipped    OrderStatus = "Shipped"
	StatusDelivered  OrderStatus = "Delivered"
)

// ShippingInfo is the delivery address captured at checkout.
type ShippingInfo struct {
	Address string `json:"address"`
	City    string `json:"city"`
	State   string `json:"state"`
	Country string `json:"country"`
	PinCode int    `json:"pinCode"`
}

// OrderItem is one purchased line: a product snapshot plus quantity.
type OrderItem struct {
	Name      string  `json:"name"`
	Photo     string  `json:"photo"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	ProductID string  `json:"productID"`
}

// Order is a placed purchase. Monetary fields are kept separately rather
// than derived so the analytics decomposition (discount, tax, shipping)
// reads them straight off the record.
type Order struct {
	ID              string       `json:"_id"`
	ShippingInfo    ShippingInfo `json:"shippingInfo"`
	UserID          string       `json:"user"`
	SubTotal        float64      `json:"subTotal"`
	Tax             float64      `json:"tax"`
	ShippingCharges float64      `json:"shippingCharges"`
	Discount        float64      `json:"discount"`
	Total           float64      `json:"total"`
	Status          OrderStatus  `json:"status"`
	Items           []OrderItem  `json:"orderItems"`
	CreatedAt       time.Time    `json:"createdAt"`
	UpdatedAt       time.Time    `json:"updatedAt"`

	// UserName/UserEmail are populated for the admin order listing only.
	UserName  string `json:"userName,omitempty"`
	UserEmail string `json:"userEmail,omitempty"`
}

// NewOrder creates an order in the Processing state.
func NewOrder(userID string, shipping ShippingInfo, items []OrderItem, subTotal, tax, shippingCharges, discount, total float64) (*Order, error) {
	if userID == "" {
		return nil, errors.New("order user is required")
	}
	if len(items) == 0 {
		return nil, errors.New("order needs at least one item")
	}
	if total <= 0 {
		return nil, errors.New("order total must be positive")
	}

	now := time.Now().UTC()
	return &Order{
		ID:              uuid.New().String(),
		ShippingInfo:    shipping,
		UserID:          userID,
		SubTotal:        subTotal,
		Tax:             tax,
		ShippingCharges: shippingCharges,
		Discount:        discount,
		Total:           total,
		Status:          StatusProcessing,
		Items:           items,
		CreatedAt:       now,
		UpdatedAt:       now,
	}, nil
}

// AdvanceStatus moves the order one step toward Delivered. Returns false if
// the order was already delivered and nothing changed.
func (o *Order) AdvanceStatus() bool {
	switch o.Status {
	case StatusProcessing:
		o.Status = StatusShipped
	case StatusShipped:
		o.Status = StatusDelivered
	default:
		return false
	}
	o.UpdatedAt = time.Now().UTC()
	return true
}

// ProductIDs returns the referenced product ID of every line item.
func (o *Order) ProductIDs() []string {
	ids := make([]string, 0, len(o.Items))
	for _, item := range o.Items {
		ids = append(ids, item.ProductID)
	}
	return ids
}

// Delivered reports whether fulfillment is complete.
func (o *Order) Delivered() bool {
	return o.Status == StatusDelivered
}
