package notification

import "slmarkets/internal/domain"

const (
	JobKindOperator = "operator"
	JobKindCustomer = "customer"
)

// EmailJob is the unit of work carried over the notification queue. One order
// fans out into an operator job and, when the customer left an email address,
// a customer job.
type EmailJob struct {
	Kind      string             `json:"kind"`
	To        string             `json:"to"`
	Subject   string             `json:"subject"`
	OrderCode string             `json:"orderCode"`
	Order     domain.Order       `json:"order"`
	Items     []domain.OrderItem `json:"items"`
}
