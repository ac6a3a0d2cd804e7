package payment

import (
	"database/sql"

	"go.uber.org/zap"

	"slmarkets/internal/config"
	orderrepo "slmarkets/internal/order/repository"
	"slmarkets/internal/payment/controller"
	"slmarkets/internal/payment/service"
)

func NewModule(db *sql.DB, cfg *config.Config, logger *zap.Logger) *controller.PaymentController {
	orderRepo := orderrepo.NewMySQLOrderRepository(db)

	mpesaSvc := service.NewMpesaService(orderRepo, cfg.Order.DeliveryLeadDays, logger)

	return controller.NewPaymentController(mpesaSvc, cfg.Order, logger)
}
