package dto

type CreateOrderRequest struct {
	CustomerName    string             `json:"customerName"`
	CustomerPhone   string             `json:"customerPhone"`
	CustomerEmail   string             `json:"customerEmail,omitempty"`
	DeliveryAddress string             `json:"deliveryAddress"`
	County          string             `json:"county"`
	Town            string             `json:"town"`
	TotalAmount     float64            `json:"totalAmount"`
	DeliveryFee     float64            `json:"deliveryFee"`
	Items           []OrderItemRequest `json:"items"`
}

type OrderItemRequest struct {
	ProductID  uint    `json:"productId"`
	Quantity   int     `json:"quantity"`
	UnitPrice  float64 `json:"unitPrice"`
	TotalPrice float64 `json:"totalPrice"`
}

type TrackOrderRequest struct {
	OrderCode string `json:"orderCode"`
	Phone     string `json:"phone"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status"`
}
