package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"slmarkets/internal/domain"
	apperrors "slmarkets/internal/errors"
)

type mockOrderRepo struct {
	findByCodeFn  func(ctx context.Context, code string) (*domain.Order, error)
	setCheckoutFn func(ctx context.Context, code, checkoutRequestID string) error
	confirmFn     func(ctx context.Context, code, transactionCode string, estimatedDelivery time.Time) error
	updateFn      func(ctx context.Context, code, status string) error

	setCheckoutCalls int
	confirmCalls     int
}

func (m *mockOrderRepo) FindByCode(ctx context.Context, code string) (*domain.Order, error) {
	if m.findByCodeFn != nil {
		return m.findByCodeFn(ctx, code)
	}
	return &domain.Order{Code: code, TotalAmount: 2500}, nil
}

func (m *mockOrderRepo) SetCheckoutRequest(ctx context.Context, code, checkoutRequestID string) error {
	m.setCheckoutCalls++
	if m.setCheckoutFn != nil {
		return m.setCheckoutFn(ctx, code, checkoutRequestID)
	}
	return nil
}

func (m *mockOrderRepo) ConfirmPayment(ctx context.Context, code, transactionCode string, estimatedDelivery time.Time) error {
	m.confirmCalls++
	if m.confirmFn != nil {
		return m.confirmFn(ctx, code, transactionCode, estimatedDelivery)
	}
	return nil
}

func (m *mockOrderRepo) UpdateStatusByCode(ctx context.Context, code, status string) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, code, status)
	}
	return nil
}

func fixedClock() time.Time {
	return time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
}

func newTestService(repo *mockOrderRepo) *MpesaService {
	svc := NewMpesaService(repo, 3, zap.NewNop())
	svc.now = fixedClock
	return svc
}

func TestMpesaService_Initiate(t *testing.T) {
	var gotCode, gotRequestID string
	repo := &mockOrderRepo{
		setCheckoutFn: func(_ context.Context, code, checkoutRequestID string) error {
			gotCode, gotRequestID = code, checkoutRequestID
			return nil
		},
	}

	svc := newTestService(repo)

	resp, err := svc.Initiate(context.Background(), "SLM123456", "254722123456", 2500)
	require.NoError(t, err)

	assert.True(t, resp.Success)
	assert.Equal(t, gotRequestID, resp.CheckoutRequestID)
	assert.Regexp(t, `^CR[0-9]+$`, resp.CheckoutRequestID)
	assert.Equal(t, "SLM123456", gotCode)
	assert.Contains(t, resp.CustomerMessage, "254722123456")
	assert.Contains(t, resp.CustomerMessage, "KSh 2500")
	assert.Contains(t, resp.Instructions, "M-Pesa PIN")
}

func TestMpesaService_Initiate_UnknownOrder(t *testing.T) {
	repo := &mockOrderRepo{
		findByCodeFn: func(context.Context, string) (*domain.Order, error) {
			return nil, apperrors.NewNotFoundError("order SLM999999 not found")
		},
	}

	_, err := newTestService(repo).Initiate(context.Background(), "SLM999999", "254722123456", 100)
	require.Error(t, err)
	_, ok := apperrors.IsNotFoundError(err)
	assert.True(t, ok)
	assert.Equal(t, 0, repo.setCheckoutCalls)
}

func TestMpesaService_Initiate_ChargesStoredTotal(t *testing.T) {
	repo := &mockOrderRepo{
		findByCodeFn: func(_ context.Context, code string) (*domain.Order, error) {
			return &domain.Order{Code: code, TotalAmount: 4200}, nil
		},
	}

	core, logged := observer.New(zap.WarnLevel)
	svc := NewMpesaService(repo, 3, zap.New(core))
	svc.now = fixedClock

	// The caller claims a lower amount than the order carries.
	resp, err := svc.Initiate(context.Background(), "SLM123456", "254722123456", 100)
	require.NoError(t, err)

	assert.Contains(t, resp.CustomerMessage, "KSh 4200")
	assert.NotContains(t, resp.CustomerMessage, "KSh 100")

	entries := logged.FilterMessage("initiated amount differs from order total").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, float64(100), fields["requestAmount"])
	assert.Equal(t, float64(4200), fields["orderTotal"])
}

func TestMpesaService_Callback_SuccessConfirms(t *testing.T) {
	var gotTxCode string
	var gotDelivery time.Time
	repo := &mockOrderRepo{
		confirmFn: func(_ context.Context, _, transactionCode string, estimatedDelivery time.Time) error {
			gotTxCode = transactionCode
			gotDelivery = estimatedDelivery
			return nil
		},
	}

	resp, err := newTestService(repo).Callback(context.Background(), "SLM123456", "qcx12345ab", "success", "")
	require.NoError(t, err)

	assert.True(t, resp.Success)
	assert.Equal(t, "Payment confirmed successfully", resp.Message)
	// Codes are stored uppercase regardless of how the payload spells them.
	assert.Equal(t, "QCX12345AB", gotTxCode)
	assert.Equal(t, fixedClock().AddDate(0, 0, 3), gotDelivery)
}

func TestMpesaService_Callback_FailureCancels(t *testing.T) {
	var gotStatus string
	repo := &mockOrderRepo{
		updateFn: func(_ context.Context, _, status string) error {
			gotStatus = status
			return nil
		},
	}

	core, logged := observer.New(zap.WarnLevel)
	svc := NewMpesaService(repo, 3, zap.New(core))
	svc.now = fixedClock

	resp, err := svc.Callback(context.Background(), "SLM123456", "QCX12345AB", "failed", "The user cancelled the request")
	require.NoError(t, err)

	assert.True(t, resp.Success)
	assert.Equal(t, "Payment failed, order cancelled", resp.Message)
	assert.Equal(t, domain.OrderStatusCancelled, gotStatus)
	assert.Equal(t, 0, repo.confirmCalls)

	entries := logged.FilterMessage("payment callback reported failure").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "The user cancelled the request", entries[0].ContextMap()["resultDesc"])
}

func TestMpesaService_Callback_ReplayIsIdempotent(t *testing.T) {
	repo := &mockOrderRepo{}
	svc := newTestService(repo)

	_, err := svc.Callback(context.Background(), "SLM123456", "QCX12345AB", "success", "")
	require.NoError(t, err)
	_, err = svc.Callback(context.Background(), "SLM123456", "QCX12345AB", "success", "")
	require.NoError(t, err)

	assert.Equal(t, 2, repo.confirmCalls)
}

func TestMpesaService_Verify(t *testing.T) {
	var gotTxCode string
	repo := &mockOrderRepo{
		confirmFn: func(_ context.Context, _, transactionCode string, _ time.Time) error {
			gotTxCode = transactionCode
			return nil
		},
	}

	resp, err := newTestService(repo).Verify(context.Background(), "SLM123456", "abc123def4")
	require.NoError(t, err)

	assert.True(t, resp.Success)
	assert.Equal(t, "Transaction verified and order confirmed", resp.Message)
	assert.Equal(t, "ABC123DEF4", gotTxCode)
}
