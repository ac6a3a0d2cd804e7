package order

import (
	"database/sql"

	"go.uber.org/zap"

	"slmarkets/internal/config"
	"slmarkets/internal/order/controller"
	"slmarkets/internal/order/repository"
	"slmarkets/internal/order/service"
	"slmarkets/internal/order/usecase"
)

func NewModule(db *sql.DB, notifier usecase.NotificationPublisher, cfg *config.Config, logger *zap.Logger) *controller.OrderController {
	orderRepo := repository.NewMySQLOrderRepository(db)
	orderItemRepo := repository.NewMySQLOrderItemRepository(db)

	checkoutSvc := service.NewCheckoutService(db, orderRepo, orderItemRepo, logger)

	createUC := usecase.NewCreateOrderUseCase(checkoutSvc, orderItemRepo, notifier, logger)
	trackUC := usecase.NewTrackOrderUseCase(orderRepo, orderItemRepo, logger)
	statusUC := usecase.NewUpdateStatusUseCase(orderRepo, logger)

	return controller.NewOrderController(createUC, trackUC, statusUC, cfg.Order, logger)
}
