package domain

import "time"

type Order struct {
	ID                     uint
	Code                   string
	CustomerName           string
	CustomerPhone          string
	CustomerEmail          *string
	DeliveryAddress        string
	County                 string
	Town                   string
	TotalAmount            float64
	DeliveryFee            float64
	Status                 string
	PaymentMethod          string
	MpesaTransactionCode   *string
	MpesaCheckoutRequestID *string
	EstimatedDeliveryDate  *time.Time
	CreatedAt              time.Time
	UpdatedAt              time.Time
}

const (
	OrderStatusPending   = "pending"
	OrderStatusConfirmed = "confirmed"
	OrderStatusShipped   = "shipped"
	OrderStatusDelivered = "delivered"
	OrderStatusCancelled = "cancelled"
)

// OrderStatuses lists every status an order may hold. Any status may
// overwrite any other; there is deliberately no transition table so the
// admin panel can correct a mis-set order.
var OrderStatuses = []string{
	OrderStatusPending,
	OrderStatusConfirmed,
	OrderStatusShipped,
	OrderStatusDelivered,
	OrderStatusCancelled,
}

func ValidOrderStatus(status string) bool {
	for _, s := range OrderStatuses {
		if s == status {
			return true
		}
	}
	return false
}

const PaymentMethodMpesa = "mpesa"
