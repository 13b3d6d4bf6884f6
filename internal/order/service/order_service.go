package service

import (
	"context"
	"database/sql"

	"go.uber.org/zap"

	"littlelemon/internal/domain"
	"littlelemon/internal/errors"
)

type OrderStore interface {
	FindByID(ctx context.Context, id uint) (*domain.Order, error)
	FindByIDAndUser(ctx context.Context, id uint, userID uint) (*domain.Order, error)
	FindByUser(ctx context.Context, userID uint) ([]domain.Order, error)
	Update(ctx context.Context, id uint, update domain.OrderUpdate) error
	Delete(ctx context.Context, tx *sql.Tx, id uint) error
}

type OrderItemStore interface {
	FindByOrderIDs(ctx context.Context, orderIDs []uint) (map[uint][]domain.OrderItem, error)
	DeleteByOrder(ctx context.Context, tx *sql.Tx, orderID uint) error
}

type UserFinder interface {
	FindByID(ctx context.Context, id uint) (*domain.User, error)
}

type OrderService struct {
	db     TransactionManager
	orders OrderStore
	items  OrderItemStore
	users  UserFinder
	logger *zap.Logger
}

func NewOrderService(db TransactionManager, orders OrderStore, items OrderItemStore, users UserFinder, logger *zap.Logger) *OrderService {
	return &OrderService{
		db:     db,
		orders: orders,
		items:  items,
		users:  users,
		logger: logger,
	}
}

// ListOrders returns the user's own orders, oldest first, with their lines.
func (s *OrderService) ListOrders(ctx context.Context, userID uint) ([]domain.Order, error) {
	orders, err := s.orders.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := s.attachItems(ctx, orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// GetOrder returns one of the user's orders. Orders of other users are
// reported as not found.
func (s *OrderService) GetOrder(ctx context.Context, userID uint, orderID uint) (*domain.Order, error) {
	order, err := s.orders.FindByIDAndUser(ctx, orderID, userID)
	if err != nil {
		return nil, err
	}

	return s.withItems(ctx, order)
}

func (s *OrderService) UpdateOrder(ctx context.Context, actor domain.Principal, orderID uint, update domain.OrderUpdate) (*domain.Order, error) {
	if !actor.HasRole(domain.RoleManager) {
		return nil, errors.NewForbiddenError("only managers can update orders")
	}

	if update.Status != nil && !update.Status.Valid() {
		return nil, errors.NewValidationError("validation failed", errors.ValidationDetail{
			Field:   "status",
			Message: "status must be one of OUT_FOR_DELIVERY, DELIVERED",
		})
	}

	if update.ClearDeliveryCrew && update.DeliveryCrewID != nil {
		return nil, errors.NewValidationError("validation failed", errors.ValidationDetail{
			Field:   "delivery_crew_id",
			Message: "delivery_crew_id cannot be both set and cleared",
		})
	}

	if update.DeliveryCrewID != nil {
		if _, err := s.users.FindByID(ctx, *update.DeliveryCrewID); err != nil {
			return nil, err
		}
	}

	if update.Empty() {
		order, err := s.orders.FindByID(ctx, orderID)
		if err != nil {
			return nil, err
		}
		return s.withItems(ctx, order)
	}

	if err := s.orders.Update(ctx, orderID, update); err != nil {
		return nil, err
	}

	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("order updated",
		zap.Uint("orderId", orderID),
		zap.Uint("actorId", actor.UserID()),
		zap.String("status", string(order.Status)),
	)

	return s.withItems(ctx, order)
}

// DeleteOrder removes an order and its lines in one transaction.
func (s *OrderService) DeleteOrder(ctx context.Context, actor domain.Principal, orderID uint) error {
	if !actor.HasRole(domain.RoleManager) {
		return errors.NewForbiddenError("only managers can delete orders")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("failed to begin transaction", zap.Uint("orderId", orderID), zap.Error(err))
		return errors.NewInternalError("beginning order deletion", err)
	}
	defer tx.Rollback()

	if err := s.items.DeleteByOrder(ctx, tx, orderID); err != nil {
		return errors.NewInternalError("deleting order items", err)
	}

	if err := s.orders.Delete(ctx, tx, orderID); err != nil {
		if _, ok := errors.IsNotFoundError(err); ok {
			return err
		}
		return errors.NewInternalError("deleting order", err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("failed to commit order deletion", zap.Uint("orderId", orderID), zap.Error(err))
		return errors.NewInternalError("committing order deletion", err)
	}

	s.logger.Info("order deleted", zap.Uint("orderId", orderID), zap.Uint("actorId", actor.UserID()))
	return nil
}

func (s *OrderService) withItems(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	orders := []domain.Order{*order}
	if err := s.attachItems(ctx, orders); err != nil {
		return nil, err
	}
	return &orders[0], nil
}

func (s *OrderService) attachItems(ctx context.Context, orders []domain.Order) error {
	if len(orders) == 0 {
		return nil
	}

	ids := make([]uint, len(orders))
	for i, o := range orders {
		ids[i] = o.ID
	}

	byOrder, err := s.items.FindByOrderIDs(ctx, ids)
	if err != nil {
		return err
	}

	for i := range orders {
		orders[i].Items = byOrder[orders[i].ID]
	}
	return nil
}
