package usecase

import (
	"context"

	"go.uber.org/zap"

	"slmarkets/internal/domain"
	"slmarkets/internal/dto"
	"slmarkets/internal/validate"
)

type CheckoutService interface {
	CreateOrder(ctx context.Context, order domain.Order, items []domain.OrderItem) (*domain.Order, []domain.OrderItem, error)
}

type NotificationPublisher interface {
	PublishOrderCreated(ctx context.Context, order domain.Order, items []domain.OrderItem) error
}

type CreateOrderUseCase struct {
	checkoutSvc CheckoutService
	itemReader  OrderItemRepository
	notifier    NotificationPublisher
	logger      *zap.Logger
}

func NewCreateOrderUseCase(
	checkoutSvc CheckoutService,
	itemReader OrderItemRepository,
	notifier NotificationPublisher,
	logger *zap.Logger,
) *CreateOrderUseCase {
	return &CreateOrderUseCase{
		checkoutSvc: checkoutSvc,
		itemReader:  itemReader,
		notifier:    notifier,
		logger:      logger,
	}
}

// CreateOrder persists a validated checkout request. The caller has already
// applied the validation policy; this layer sanitizes, persists and kicks off
// the best-effort notifications.
//
// The stored total is the caller-supplied figure. It is NOT recomputed from
// the line items server-side; the storefront computes it and the workflow
// trusts it (a documented gap of the current design).
func (uc *CreateOrderUseCase) CreateOrder(ctx context.Context, req dto.CreateOrderRequest) (*domain.Order, []domain.OrderItem, error) {
	uc.logger.Info("checkout started",
		zap.String("customerPhone", validate.NormalizePhone(req.CustomerPhone)),
		zap.Int("itemCount", len(req.Items)))

	order := domain.Order{
		CustomerName:    validate.Sanitize(req.CustomerName),
		CustomerPhone:   validate.NormalizePhone(validate.Sanitize(req.CustomerPhone)),
		DeliveryAddress: validate.Sanitize(req.DeliveryAddress),
		County:          validate.Sanitize(req.County),
		Town:            validate.Sanitize(req.Town),
		TotalAmount:     req.TotalAmount,
		DeliveryFee:     req.DeliveryFee,
		Status:          domain.OrderStatusPending,
		PaymentMethod:   domain.PaymentMethodMpesa,
	}

	if req.CustomerEmail != "" {
		email := validate.Sanitize(req.CustomerEmail)
		order.CustomerEmail = &email
	}

	items := make([]domain.OrderItem, len(req.Items))
	for i, item := range req.Items {
		items[i] = domain.OrderItem{
			ProductID:  item.ProductID,
			Quantity:   item.Quantity,
			UnitPrice:  item.UnitPrice,
			TotalPrice: item.TotalPrice,
		}
	}

	created, createdItems, err := uc.checkoutSvc.CreateOrder(ctx, order, items)
	if err != nil {
		return nil, nil, err
	}

	// Re-read the committed items so product names are resolved for the
	// response and the notification emails. Falls back to the bare items if
	// the read fails; the order itself is already safe.
	if named, err := uc.itemReader.FindByOrderID(ctx, created.ID); err == nil {
		createdItems = named
	} else {
		uc.logger.Warn("loading created order items failed",
			zap.String("orderCode", created.Code), zap.Error(err))
	}

	// Notifications are best-effort: a dead broker must not fail a checkout
	// that already committed.
	if err := uc.notifier.PublishOrderCreated(ctx, *created, createdItems); err != nil {
		uc.logger.Warn("order notification dispatch failed",
			zap.String("orderCode", created.Code), zap.Error(err))
	}

	return created, createdItems, nil
}
