package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderItem_Creation(t *testing.T) {
	item := OrderItem{
		ID:         1,
		OrderID:    100,
		ProductID:  5,
		Quantity:   3,
		UnitPrice:  29.99,
		TotalPrice: 89.97,
	}

	assert.Equal(t, uint(1), item.ID)
	assert.Equal(t, uint(100), item.OrderID)
	assert.Equal(t, uint(5), item.ProductID)
	assert.Equal(t, 3, item.Quantity)
	assert.Equal(t, 29.99, item.UnitPrice)
	assert.Equal(t, 89.97, item.TotalPrice)
}

func TestOrderItem_PriceSnapshotIndependentOfProduct(t *testing.T) {
	// The line item keeps the price paid even after the catalog price moves.
	product := Product{ID: 5, Name: "Solar Lantern", Price: 1500}

	item := OrderItem{
		OrderID:    100,
		ProductID:  product.ID,
		Quantity:   2,
		UnitPrice:  1200,
		TotalPrice: 2400,
	}

	product.Price = 1800

	assert.Equal(t, 1200.0, item.UnitPrice)
	assert.Equal(t, 2400.0, item.TotalPrice)
}

func TestOrderItem_MultipleItemsSameOrder(t *testing.T) {
	items := []OrderItem{
		{ID: 1, OrderID: 100, ProductID: 5, Quantity: 2, UnitPrice: 100, TotalPrice: 200},
		{ID: 2, OrderID: 100, ProductID: 10, Quantity: 3, UnitPrice: 50, TotalPrice: 150},
	}

	assert.Len(t, items, 2)
	assert.Equal(t, 200.0, items[0].TotalPrice)
	assert.Equal(t, 150.0, items[1].TotalPrice)
	assert.Equal(t, uint(100), items[0].OrderID)
	assert.Equal(t, uint(100), items[1].OrderID)
}
