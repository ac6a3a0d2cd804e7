package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/go-sql-driver/mysql"
	"go.uber.org/zap"

	"slmarkets/internal/domain"
	apperrors "slmarkets/internal/errors"
)

type TransactionManager interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error)
}

type OrderRepository interface {
	Insert(ctx context.Context, tx *sql.Tx, order domain.Order) (uint, error)
}

type OrderItemRepository interface {
	Insert(ctx context.Context, tx *sql.Tx, item domain.OrderItem) (uint, error)
}

// CheckoutService persists an order and its line items as one unit. Either
// everything commits or nothing does, so a failed item insert can never leave
// an orphaned order behind.
type CheckoutService struct {
	db            TransactionManager
	orderRepo     OrderRepository
	orderItemRepo OrderItemRepository
	logger        *zap.Logger
}

const codeGenerationAttempts = 3

func NewCheckoutService(
	db TransactionManager,
	orderRepo OrderRepository,
	orderItemRepo OrderItemRepository,
	logger *zap.Logger,
) *CheckoutService {
	return &CheckoutService{
		db:            db,
		orderRepo:     orderRepo,
		orderItemRepo: orderItemRepo,
		logger:        logger,
	}
}

func (s *CheckoutService) CreateOrder(
	ctx context.Context,
	order domain.Order,
	items []domain.OrderItem,
) (*domain.Order, []domain.OrderItem, error) {
	txCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	tx, err := s.db.BeginTx(txCtx, nil)
	if err != nil {
		s.logger.Error("failed to begin transaction", zap.Error(err))
		return nil, nil, apperrors.NewPersistenceError("beginning checkout transaction", err)
	}
	// Rollback on any exit path. MySQL ignores it after a commit.
	defer tx.Rollback()

	orderID, code, err := s.insertWithFreshCode(txCtx, tx, order)
	if err != nil {
		return nil, nil, err
	}

	order.ID = orderID
	order.Code = code

	created := make([]domain.OrderItem, 0, len(items))
	for _, item := range items {
		item.OrderID = orderID
		itemID, err := s.orderItemRepo.Insert(txCtx, tx, item)
		if err != nil {
			s.logger.Error("order item insert failed, rolling back",
				zap.String("orderCode", code), zap.Uint("productId", item.ProductID), zap.Error(err))
			return nil, nil, apperrors.NewPersistenceError("inserting order items", err)
		}
		item.ID = itemID
		created = append(created, item)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("failed to commit checkout transaction", zap.String("orderCode", code), zap.Error(err))
		return nil, nil, apperrors.NewPersistenceError("committing checkout transaction", err)
	}

	s.logger.Info("order created",
		zap.String("orderCode", code),
		zap.Int("itemCount", len(created)),
		zap.Float64("totalAmount", order.TotalAmount))

	return &order, created, nil
}

// insertWithFreshCode generates a human-readable order code and retries on a
// duplicate-key collision. The code space is small enough that collisions
// happen, and rare enough that a couple of retries always clear them.
func (s *CheckoutService) insertWithFreshCode(ctx context.Context, tx *sql.Tx, order domain.Order) (uint, string, error) {
	var lastErr error

	for attempt := 1; attempt <= codeGenerationAttempts; attempt++ {
		order.Code = generateOrderCode()

		id, err := s.orderRepo.Insert(ctx, tx, order)
		if err == nil {
			return id, order.Code, nil
		}

		if isDuplicateKeyError(err) {
			s.logger.Warn("order code collision, regenerating",
				zap.String("orderCode", order.Code), zap.Int("attempt", attempt))
			lastErr = err
			continue
		}

		return 0, "", apperrors.NewPersistenceError("inserting order", err)
	}

	return 0, "", apperrors.NewPersistenceError("generating unique order code", lastErr)
}

func generateOrderCode() string {
	return fmt.Sprintf("SLM%06d", rand.Intn(1_000_000))
}

func isDuplicateKeyError(err error) bool {
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		return mysqlErr.Number == 1062
	}
	return false
}
