package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"slmarkets/internal/domain"
	"slmarkets/internal/errors"
)

type MySQLOrderRepository struct {
	db *sql.DB
}

func NewMySQLOrderRepository(db *sql.DB) *MySQLOrderRepository {
	return &MySQLOrderRepository{db: db}
}

const orderColumns = `
	id, order_code, customer_name, customer_phone, customer_email,
	delivery_address, county, town, total_amount, delivery_fee,
	status, payment_method, mpesa_transaction_code, mpesa_checkout_request_id,
	estimated_delivery_date, created_at, updated_at
`

func (r *MySQLOrderRepository) Insert(ctx context.Context, tx *sql.Tx, order domain.Order) (uint, error) {
	query := `
		INSERT INTO orders (
			order_code, customer_name, customer_phone, customer_email,
			delivery_address, county, town, total_amount, delivery_fee,
			status, payment_method
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := tx.ExecContext(ctx, query,
		order.Code, order.CustomerName, order.CustomerPhone, order.CustomerEmail,
		order.DeliveryAddress, order.County, order.Town, order.TotalAmount, order.DeliveryFee,
		order.Status, order.PaymentMethod,
	)
	if err != nil {
		return 0, fmt.Errorf("inserting order: %w", err)
	}

	lastInsertID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("getting last insert id: %w", err)
	}

	return uint(lastInsertID), nil
}

func (r *MySQLOrderRepository) FindByCode(ctx context.Context, code string) (*domain.Order, error) {
	query := `SELECT` + orderColumns + `FROM orders WHERE order_code = ?`

	return r.scanOne(r.db.QueryRowContext(ctx, query, code), code)
}

// FindByCodeAndPhone is the tracking lookup. The (code, phone) pair acts as a
// shared secret since orders are not tied to accounts.
func (r *MySQLOrderRepository) FindByCodeAndPhone(ctx context.Context, code, phone string) (*domain.Order, error) {
	query := `SELECT` + orderColumns + `FROM orders WHERE order_code = ? AND customer_phone = ?`

	return r.scanOne(r.db.QueryRowContext(ctx, query, code, phone), code)
}

func (r *MySQLOrderRepository) scanOne(row *sql.Row, code string) (*domain.Order, error) {
	var order domain.Order
	err := row.Scan(
		&order.ID, &order.Code, &order.CustomerName, &order.CustomerPhone, &order.CustomerEmail,
		&order.DeliveryAddress, &order.County, &order.Town, &order.TotalAmount, &order.DeliveryFee,
		&order.Status, &order.PaymentMethod, &order.MpesaTransactionCode, &order.MpesaCheckoutRequestID,
		&order.EstimatedDeliveryDate, &order.CreatedAt, &order.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError(fmt.Sprintf("order %s not found", code))
	}
	if err != nil {
		return nil, fmt.Errorf("querying order: %w", err)
	}

	return &order, nil
}

// UpdateStatusByCode overwrites the status unconditionally. There is no
// transition guard; two racing updates resolve last-write-wins.
func (r *MySQLOrderRepository) UpdateStatusByCode(ctx context.Context, code, status string) error {
	query := `UPDATE orders SET status = ?, updated_at = NOW() WHERE order_code = ?`

	result, err := r.db.ExecContext(ctx, query, status, code)
	if err != nil {
		return fmt.Errorf("updating order status: %w", err)
	}

	return r.requireMatch(result, code)
}

// SetCheckoutRequest stamps the payment-initiation token and resets the order
// to pending while the customer completes the prompt.
func (r *MySQLOrderRepository) SetCheckoutRequest(ctx context.Context, code, checkoutRequestID string) error {
	query := `
		UPDATE orders
		SET mpesa_checkout_request_id = ?, status = ?, updated_at = NOW()
		WHERE order_code = ?
	`

	result, err := r.db.ExecContext(ctx, query, checkoutRequestID, domain.OrderStatusPending, code)
	if err != nil {
		return fmt.Errorf("setting checkout request id: %w", err)
	}

	return r.requireMatch(result, code)
}

// ConfirmPayment records the transaction code, confirms the order and stamps
// the estimated delivery date. Calling it again with the same code is a
// harmless overwrite.
func (r *MySQLOrderRepository) ConfirmPayment(ctx context.Context, code, transactionCode string, estimatedDelivery time.Time) error {
	query := `
		UPDATE orders
		SET status = ?, mpesa_transaction_code = ?, estimated_delivery_date = ?, updated_at = NOW()
		WHERE order_code = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		domain.OrderStatusConfirmed, transactionCode, estimatedDelivery.Format("2006-01-02"), code,
	)
	if err != nil {
		return fmt.Errorf("confirming payment: %w", err)
	}

	return r.requireMatch(result, code)
}

func (r *MySQLOrderRepository) requireMatch(result sql.Result, code string) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return errors.NewNotFoundError(fmt.Sprintf("order %s not found", code))
	}

	return nil
}
