package dto

import "time"

type OrderDTO struct {
	ID                    uint       `json:"id"`
	Code                  string     `json:"orderCode"`
	CustomerName          string     `json:"customerName"`
	CustomerPhone         string     `json:"customerPhone"`
	CustomerEmail         *string    `json:"customerEmail,omitempty"`
	DeliveryAddress       string     `json:"deliveryAddress"`
	County                string     `json:"county"`
	Town                  string     `json:"town"`
	TotalAmount           float64    `json:"totalAmount"`
	DeliveryFee           float64    `json:"deliveryFee"`
	Status                string     `json:"status"`
	PaymentMethod         string     `json:"paymentMethod"`
	MpesaTransactionCode  *string    `json:"mpesaTransactionCode,omitempty"`
	EstimatedDeliveryDate *string    `json:"estimatedDeliveryDate,omitempty"`
	CreatedAt             time.Time  `json:"createdAt"`
	UpdatedAt             time.Time  `json:"updatedAt"`
}

type OrderItemDTO struct {
	ProductID   uint    `json:"productId"`
	ProductName string  `json:"productName,omitempty"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unitPrice"`
	TotalPrice  float64 `json:"totalPrice"`
}

type CreateOrderResponse struct {
	TraceID   string         `json:"traceId"`
	Order     OrderDTO       `json:"order"`
	Items     []OrderItemDTO `json:"items"`
	Timestamp time.Time      `json:"timestamp"`
}

type TrackOrderResponse struct {
	Found bool           `json:"found"`
	Order *OrderDTO      `json:"order,omitempty"`
	Items []OrderItemDTO `json:"items,omitempty"`
}

type UpdateOrderStatusResponse struct {
	OrderCode string `json:"orderCode"`
	Status    string `json:"status"`
}
