package domain

import "time"

// OrderItem is one product-and-quantity line within an order. UnitPrice is a
// snapshot taken at purchase time and does not follow later catalog changes.
type OrderItem struct {
	ID          uint
	OrderID     uint
	ProductID   uint
	ProductName string
	Quantity    int
	UnitPrice   float64
	TotalPrice  float64
	CreatedAt   time.Time
}
