package service

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"go.uber.org/zap"

	"littlelemon/internal/domain"
	"littlelemon/internal/errors"
)

type TransactionManager interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error)
}

type CartRepository interface {
	FindByUserForUpdate(ctx context.Context, tx *sql.Tx, userID uint) ([]domain.CartLine, error)
	DeleteByIDs(ctx context.Context, tx *sql.Tx, userID uint, ids []uint) (int64, error)
}

type OrderRepository interface {
	Insert(ctx context.Context, tx *sql.Tx, order domain.Order) (uint, error)
}

type OrderItemRepository interface {
	Insert(ctx context.Context, tx *sql.Tx, item domain.OrderItem) (uint, error)
}

type CheckoutService struct {
	db            TransactionManager
	cartRepo      CartRepository
	orderRepo     OrderRepository
	orderItemRepo OrderItemRepository
	logger        *zap.Logger
	txTimeout     time.Duration
	now           func() time.Time
}

func NewCheckoutService(
	db TransactionManager,
	cartRepo CartRepository,
	orderRepo OrderRepository,
	orderItemRepo OrderItemRepository,
	logger *zap.Logger,
	txTimeout time.Duration,
) *CheckoutService {
	return &CheckoutService{
		db:            db,
		cartRepo:      cartRepo,
		orderRepo:     orderRepo,
		orderItemRepo: orderItemRepo,
		logger:        logger,
		txTimeout:     txTimeout,
		now:           time.Now,
	}
}

// PlaceOrder turns the user's cart into an order in a single transaction.
// The cart lines are locked while they are read, so lines added after the
// read are left in the cart and lines read are never counted twice. Any
// failure after the transaction starts rolls everything back.
func (s *CheckoutService) PlaceOrder(ctx context.Context, userID uint) (*domain.Order, error) {
	txCtx, cancel := context.WithTimeout(ctx, s.txTimeout)
	defer cancel()

	tx, err := s.db.BeginTx(txCtx, &sql.TxOptions{Isolation: sql.LevelRepeatableRead})
	if err != nil {
		s.logger.Error("failed to begin transaction", zap.Uint("userId", userID), zap.Error(err))
		return nil, errors.NewInternalError("beginning checkout", err)
	}
	// Rollback after Commit is a no-op.
	defer tx.Rollback()

	lines, err := s.cartRepo.FindByUserForUpdate(txCtx, tx, userID)
	if err != nil {
		s.logger.Error("failed to read cart", zap.Uint("userId", userID), zap.Error(err))
		return nil, errors.NewInternalError("reading cart", err)
	}

	if len(lines) == 0 {
		s.logger.Info("checkout rejected, cart is empty", zap.Uint("userId", userID))
		return nil, errors.NewEmptyCartError(userID)
	}

	order := domain.Order{
		UserID:    userID,
		Status:    domain.OrderStatusOutForDelivery,
		Total:     domain.CartTotal(lines),
		CreatedAt: s.now().UTC().Truncate(time.Microsecond),
	}

	orderID, err := s.orderRepo.Insert(txCtx, tx, order)
	if err != nil {
		s.logger.Error("failed to insert order", zap.Uint("userId", userID), zap.Error(err))
		return nil, errors.NewInternalError("creating order", err)
	}
	order.ID = orderID

	lineIDs := make([]uint, 0, len(lines))
	for _, line := range lines {
		item := domain.NewOrderItem(orderID, line)
		itemID, err := s.orderItemRepo.Insert(txCtx, tx, item)
		if err != nil {
			s.logger.Error("failed to insert order item", zap.Uint("orderId", orderID), zap.Uint("menuItemId", line.MenuItemID), zap.Error(err))
			return nil, errors.NewInternalError("creating order item", err)
		}
		item.ID = itemID
		order.Items = append(order.Items, item)
		lineIDs = append(lineIDs, line.ID)
	}

	removed, err := s.cartRepo.DeleteByIDs(txCtx, tx, userID, lineIDs)
	if err != nil {
		s.logger.Error("failed to clear cart", zap.Uint("orderId", orderID), zap.Error(err))
		return nil, errors.NewInternalError("clearing cart", err)
	}
	if removed != int64(len(lineIDs)) {
		s.logger.Error("cart changed during checkout", zap.Uint("orderId", orderID), zap.Int64("removed", removed), zap.Int("expected", len(lineIDs)))
		return nil, errors.NewInternalError("clearing cart", fmt.Errorf("removed %d of %d cart lines", removed, len(lineIDs)))
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("failed to commit checkout", zap.Uint("orderId", orderID), zap.Error(err))
		return nil, errors.NewInternalError("committing checkout", err)
	}

	s.logger.Info("order placed",
		zap.Uint("orderId", orderID),
		zap.Uint("userId", userID),
		zap.Int("itemCount", len(order.Items)),
		zap.String("total", order.Total.StringFixed(2)),
	)

	return &order, nil
}
