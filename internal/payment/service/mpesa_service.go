package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"slmarkets/internal/domain"
	"slmarkets/internal/dto"
	"slmarkets/internal/validate"
)

type OrderRepository interface {
	FindByCode(ctx context.Context, code string) (*domain.Order, error)
	SetCheckoutRequest(ctx context.Context, code, checkoutRequestID string) error
	ConfirmPayment(ctx context.Context, code, transactionCode string, estimatedDelivery time.Time) error
	UpdateStatusByCode(ctx context.Context, code, status string) error
}

// MpesaService simulates the mobile-money leg of checkout. No request ever
// reaches a payment network: initiation fabricates an accepted push, and
// verification trusts any well-formed transaction code. A production build
// must replace this with a real gateway integration (asynchronous initiation
// plus a signed confirmation webhook) behind the same three actions.
type MpesaService struct {
	orderRepo        OrderRepository
	deliveryLeadDays int
	logger           *zap.Logger
	now              func() time.Time
}

func NewMpesaService(orderRepo OrderRepository, deliveryLeadDays int, logger *zap.Logger) *MpesaService {
	return &MpesaService{
		orderRepo:        orderRepo,
		deliveryLeadDays: deliveryLeadDays,
		logger:           logger,
		now:              time.Now,
	}
}

const paymentInstructions = `1. Check your phone for the M-Pesa prompt
2. Enter your M-Pesa PIN to complete payment
3. You will receive an SMS confirmation
4. Your order will be confirmed automatically`

// Initiate stamps a fabricated checkout-request id onto the order and leaves
// it pending while the customer "completes" the prompt. The prompt charges
// the stored order total; a diverging request amount is logged, not trusted.
func (s *MpesaService) Initiate(ctx context.Context, orderCode, phone string, amount float64) (*dto.InitiatePaymentResponse, error) {
	order, err := s.orderRepo.FindByCode(ctx, orderCode)
	if err != nil {
		return nil, err
	}

	if amount != order.TotalAmount {
		s.logger.Warn("initiated amount differs from order total",
			zap.String("orderCode", orderCode),
			zap.Float64("requestAmount", amount),
			zap.Float64("orderTotal", order.TotalAmount))
	}

	checkoutRequestID := fmt.Sprintf("CR%d", s.now().UnixMilli())

	if err := s.orderRepo.SetCheckoutRequest(ctx, orderCode, checkoutRequestID); err != nil {
		return nil, err
	}

	s.logger.Info("stk push initiated",
		zap.String("orderCode", orderCode),
		zap.String("checkoutRequestId", checkoutRequestID),
		zap.Float64("amount", order.TotalAmount))

	return &dto.InitiatePaymentResponse{
		Success:           true,
		CheckoutRequestID: checkoutRequestID,
		CustomerMessage: fmt.Sprintf(
			"You will receive a prompt on %s to complete the payment of KSh %.0f. Please enter your M-Pesa PIN.",
			phone, order.TotalAmount),
		Instructions: paymentInstructions,
	}, nil
}

// Callback applies a success or failure signal. Success confirms the order,
// stores the transaction code uppercased and stamps the estimated delivery
// date; anything else cancels. Replaying a success payload is an idempotent
// overwrite.
func (s *MpesaService) Callback(ctx context.Context, orderCode, transactionCode, status, resultDesc string) (*dto.PaymentResponse, error) {
	if status != "success" {
		if err := s.orderRepo.UpdateStatusByCode(ctx, orderCode, domain.OrderStatusCancelled); err != nil {
			return nil, err
		}

		s.logger.Warn("payment callback reported failure",
			zap.String("orderCode", orderCode),
			zap.String("status", status),
			zap.String("resultDesc", resultDesc))

		return &dto.PaymentResponse{Success: true, Message: "Payment failed, order cancelled"}, nil
	}

	if err := s.confirm(ctx, orderCode, transactionCode); err != nil {
		return nil, err
	}

	return &dto.PaymentResponse{Success: true, Message: "Payment confirmed successfully"}, nil
}

// Verify confirms an order from a customer-supplied transaction code. Only
// the code's shape is checked; there is no upstream ledger lookup in this
// simulation, which is exactly why it must not guard real money.
func (s *MpesaService) Verify(ctx context.Context, orderCode, transactionCode string) (*dto.PaymentResponse, error) {
	if err := s.confirm(ctx, orderCode, transactionCode); err != nil {
		return nil, err
	}

	return &dto.PaymentResponse{Success: true, Message: "Transaction verified and order confirmed"}, nil
}

func (s *MpesaService) confirm(ctx context.Context, orderCode, transactionCode string) error {
	estimatedDelivery := s.now().AddDate(0, 0, s.deliveryLeadDays)

	err := s.orderRepo.ConfirmPayment(ctx, orderCode,
		validate.NormalizeMpesaCode(transactionCode), estimatedDelivery)
	if err != nil {
		return err
	}

	s.logger.Info("payment confirmed",
		zap.String("orderCode", orderCode),
		zap.String("transactionCode", validate.NormalizeMpesaCode(transactionCode)))

	return nil
}
