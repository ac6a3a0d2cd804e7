package usecase

import (
	"context"

	"go.uber.org/zap"

	"slmarkets/internal/domain"
)

type OrderRepository interface {
	FindByCodeAndPhone(ctx context.Context, code, phone string) (*domain.Order, error)
}

type OrderItemRepository interface {
	FindByOrderID(ctx context.Context, orderID uint) ([]domain.OrderItem, error)
}

type TrackOrderUseCase struct {
	orderRepo     OrderRepository
	orderItemRepo OrderItemRepository
	logger        *zap.Logger
}

func NewTrackOrderUseCase(
	orderRepo OrderRepository,
	orderItemRepo OrderItemRepository,
	logger *zap.Logger,
) *TrackOrderUseCase {
	return &TrackOrderUseCase{
		orderRepo:     orderRepo,
		orderItemRepo: orderItemRepo,
		logger:        logger,
	}
}

// TrackOrder looks an order up by its code and the phone used at checkout.
// Both must match a single record; a mismatch surfaces as NotFoundError,
// which the controller renders as an empty result rather than an error.
func (uc *TrackOrderUseCase) TrackOrder(ctx context.Context, code, phone string) (*domain.Order, []domain.OrderItem, error) {
	order, err := uc.orderRepo.FindByCodeAndPhone(ctx, code, phone)
	if err != nil {
		return nil, nil, err
	}

	items, err := uc.orderItemRepo.FindByOrderID(ctx, order.ID)
	if err != nil {
		return nil, nil, err
	}

	uc.logger.Debug("order tracked",
		zap.String("orderCode", order.Code), zap.Int("itemCount", len(items)))

	return order, items, nil
}
