package dto

// The payment surface is parameterized by an `action` query value. Each
// action gets its own request type, decoded and validated at the boundary
// before any business logic runs.

type InitiatePaymentRequest struct {
	OrderCode string  `json:"orderId"`
	Phone     string  `json:"phone"`
	Amount    float64 `json:"amount"`
}

type PaymentCallbackRequest struct {
	OrderCode       string `json:"orderId"`
	TransactionCode string `json:"transactionCode"`
	Status          string `json:"status"`
	ResultDesc      string `json:"resultDesc,omitempty"`
}

type VerifyPaymentRequest struct {
	OrderCode       string `json:"orderId"`
	TransactionCode string `json:"transactionCode"`
}

type InitiatePaymentResponse struct {
	Success           bool   `json:"success"`
	CheckoutRequestID string `json:"checkoutRequestId"`
	CustomerMessage   string `json:"customerMessage"`
	Instructions      string `json:"instructions"`
}

type PaymentResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
