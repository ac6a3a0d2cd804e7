package notification

import (
	"fmt"
	"html"
	"strings"

	"slmarkets/internal/domain"
)

// BuildOperatorEmail renders the "new order" alert sent to the shop operator.
func BuildOperatorEmail(order domain.Order, items []domain.OrderItem) string {
	var b strings.Builder

	b.WriteString(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">`)
	b.WriteString(`<h2 style="color: #16a34a;">New Order Received</h2>`)
	fmt.Fprintf(&b, `<p>Order <strong>%s</strong> has been placed and is awaiting payment confirmation.</p>`,
		html.EscapeString(order.Code))

	b.WriteString(`<h3>Customer Details</h3><ul>`)
	fmt.Fprintf(&b, `<li><strong>Name:</strong> %s</li>`, html.EscapeString(order.CustomerName))
	fmt.Fprintf(&b, `<li><strong>Phone:</strong> %s</li>`, html.EscapeString(order.CustomerPhone))
	if order.CustomerEmail != nil && *order.CustomerEmail != "" {
		fmt.Fprintf(&b, `<li><strong>Email:</strong> %s</li>`, html.EscapeString(*order.CustomerEmail))
	}
	fmt.Fprintf(&b, `<li><strong>Delivery:</strong> %s, %s, %s</li>`,
		html.EscapeString(order.DeliveryAddress),
		html.EscapeString(order.Town),
		html.EscapeString(order.County))
	b.WriteString(`</ul>`)

	b.WriteString(itemsTable(items))

	fmt.Fprintf(&b, `<p style="font-size: 18px;"><strong>Total: KSh %.2f</strong> (delivery KSh %.2f)</p>`,
		order.TotalAmount, order.DeliveryFee)
	b.WriteString(`</div>`)

	return b.String()
}

// BuildCustomerEmail renders the order confirmation sent to the customer.
func BuildCustomerEmail(order domain.Order, items []domain.OrderItem) string {
	var b strings.Builder

	b.WriteString(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">`)
	b.WriteString(`<h2 style="color: #16a34a;">Thank you for your order!</h2>`)
	fmt.Fprintf(&b, `<p>Hi %s,</p>`, html.EscapeString(order.CustomerName))
	fmt.Fprintf(&b, `<p>We have received your order <strong>%s</strong>. You can use this code together with your phone number to track it at any time.</p>`,
		html.EscapeString(order.Code))

	b.WriteString(itemsTable(items))

	fmt.Fprintf(&b, `<p style="font-size: 18px;"><strong>Total: KSh %.2f</strong></p>`, order.TotalAmount)
	fmt.Fprintf(&b, `<p>Delivery to: %s, %s, %s</p>`,
		html.EscapeString(order.DeliveryAddress),
		html.EscapeString(order.Town),
		html.EscapeString(order.County))
	b.WriteString(`<p>We will notify you once your payment is confirmed and your order is on its way.</p>`)
	b.WriteString(`</div>`)

	return b.String()
}

func itemsTable(items []domain.OrderItem) string {
	var b strings.Builder

	b.WriteString(`<h3>Order Items</h3>`)
	b.WriteString(`<table style="width: 100%; border-collapse: collapse;">`)
	b.WriteString(`<tr style="background: #f3f4f6;">`)
	b.WriteString(`<th style="padding: 8px; text-align: left;">Item</th>`)
	b.WriteString(`<th style="padding: 8px; text-align: right;">Qty</th>`)
	b.WriteString(`<th style="padding: 8px; text-align: right;">Price</th>`)
	b.WriteString(`</tr>`)

	for _, item := range items {
		name := item.ProductName
		if name == "" {
			name = fmt.Sprintf("Product #%d", item.ProductID)
		}
		fmt.Fprintf(&b, `<tr><td style="padding: 8px;">%s</td><td style="padding: 8px; text-align: right;">%d</td><td style="padding: 8px; text-align: right;">KSh %.2f</td></tr>`,
			html.EscapeString(name), item.Quantity, item.TotalPrice)
	}

	b.WriteString(`</table>`)

	return b.String()
}
