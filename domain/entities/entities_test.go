package entities

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProductNormalizesCategory(t *testing.T) {
	product, err := NewProduct("MacBook", "uploads/mb.jpg", "Laptop", 1200, 5)
	require.NoError(t, err)

	assert.Equal(t, "laptop", product.Category)
	assert.NotEmpty(t, product.ID)
}

func TestNewProductRejectsBadInput(t *testing.T) {
	_, err := NewProduct("", "p.jpg", "laptop", 100, 1)
	assert.Error(t, err)

	_, err = NewProduct("x", "p.jpg", "", 100, 1)
	assert.Error(t, err)

	_, err = NewProduct("x", "p.jpg", "laptop", -1, 1)
	assert.Error(t, err)

	_, err = NewProduct("x", "p.jpg", "laptop", 100, -1)
	assert.Error(t, err)
}

func TestReduceStockCanGoNegative(t *testing.T) {
	product, err := NewProduct("MacBook", "uploads/mb.jpg", "laptop", 1200, 2)
	require.NoError(t, err)

	// Checkout decrements are applied without a floor; oversell shows up as
	// negative stock rather than a failed order.
	require.NoError(t, product.ReduceStock(5))
	assert.Equal(t, -3, product.Stock)
	assert.False(t, product.InStock())

	assert.Error(t, product.ReduceStock(0))
}

func TestUserAge(t *testing.T) {
	dob := time.Date(1990, time.June, 15, 0, 0, 0, 0, time.UTC)
	user, err := NewUser("u1", "Test User", "u1@example.com", "", GenderFemale, dob)
	require.NoError(t, err)

	tests := []struct {
		name string
		now  time.Time
		want int
	}{
		{name: "before birthday", now: time.Date(2024, time.June, 14, 0, 0, 0, 0, time.UTC), want: 33},
		{name: "on birthday", now: time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC), want: 34},
		{name: "after birthday", now: time.Date(2024, time.December, 1, 0, 0, 0, 0, time.UTC), want: 34},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, user.Age(tt.now))
		})
	}
}

func TestNewUserValidation(t *testing.T) {
	dob := time.Date(1990, time.June, 15, 0, 0, 0, 0, time.UTC)

	_, err := NewUser("", "Name", "a@b.com", "", GenderMale, dob)
	assert.Error(t, err)

	_, err = NewUser("u1", "Name", "a@b.com", "", Gender("other"), dob)
	assert.Error(t, err)
}

func TestOrderAdvanceStatus(t *testing.T) {
	order, err := NewOrder("u1", ShippingInfo{Address: "1 Market Street"}, []OrderItem{
		{Name: "item", Price: 100, Quantity: 1, ProductID: "p1"},
	}, 100, 0, 0, 0, 100)
	require.NoError(t, err)

	assert.Equal(t, StatusProcessing, order.Status)

	assert.True(t, order.AdvanceStatus())
	assert.Equal(t, StatusShipped, order.Status)

	assert.True(t, order.AdvanceStatus())
	assert.Equal(t, StatusDelivered, order.Status)
	assert.True(t, order.Delivered())

	assert.False(t, order.AdvanceStatus())
	assert.Equal(t, StatusDelivered, order.Status)
}

func TestOrderProductIDs(t *testing.T) {
	order, err := NewOrder("u1", ShippingInfo{}, []OrderItem{
		{Name: "a", Price: 10, Quantity: 1, ProductID: "p1"},
		{Name: "b", Price: 20, Quantity: 2, ProductID: "p2"},
	}, 50, 0, 0, 0, 50)
	require.NoError(t, err)

	assert.Equal(t, []string{"p1", "p2"}, order.ProductIDs())
}
