package usecase

import (
	"context"

	"go.uber.org/zap"

	"slmarkets/internal/domain"
	apperrors "slmarkets/internal/errors"
)

type StatusRepository interface {
	UpdateStatusByCode(ctx context.Context, code, status string) error
}

type UpdateStatusUseCase struct {
	orderRepo StatusRepository
	logger    *zap.Logger
}

func NewUpdateStatusUseCase(orderRepo StatusRepository, logger *zap.Logger) *UpdateStatusUseCase {
	return &UpdateStatusUseCase{
		orderRepo: orderRepo,
		logger:    logger,
	}
}

// UpdateStatus overwrites an order's status with any of the five valid
// values. The current status is not consulted: the admin panel is allowed to
// move an order backwards to correct mistakes.
func (uc *UpdateStatusUseCase) UpdateStatus(ctx context.Context, code, status string) error {
	if !domain.ValidOrderStatus(status) {
		return apperrors.NewValidationError("invalid status", apperrors.ValidationDetail{
			Field:   "status",
			Message: "status must be one of pending, confirmed, shipped, delivered, cancelled",
		})
	}

	if err := uc.orderRepo.UpdateStatusByCode(ctx, code, status); err != nil {
		return err
	}

	uc.logger.Info("order status updated",
		zap.String("orderCode", code), zap.String("status", status))

	return nil
}
