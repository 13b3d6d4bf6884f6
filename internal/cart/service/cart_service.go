package service

import (
	"context"

	"go.uber.org/zap"

	"littlelemon/internal/domain"
	"littlelemon/internal/errors"
)

const defaultQuantity = 1

type CartRepository interface {
	Upsert(ctx context.Context, userID uint, menuItemID uint, quantity int) error
	FindByUser(ctx context.Context, userID uint) ([]domain.CartLine, error)
	DeleteByUser(ctx context.Context, userID uint) (int64, error)
}

type MenuItemRepository interface {
	FindByID(ctx context.Context, id uint) (*domain.MenuItem, error)
}

type CartService struct {
	cartRepo CartRepository
	menuRepo MenuItemRepository
	logger   *zap.Logger
}

func NewCartService(cartRepo CartRepository, menuRepo MenuItemRepository, logger *zap.Logger) *CartService {
	return &CartService{
		cartRepo: cartRepo,
		menuRepo: menuRepo,
		logger:   logger,
	}
}

// AddItem adds quantity of a menu item to the user's cart. A nil quantity means one.
func (s *CartService) AddItem(ctx context.Context, userID uint, menuItemID uint, quantity *int) (*domain.MenuItem, error) {
	qty := defaultQuantity
	if quantity != nil {
		qty = *quantity
	}

	var details []errors.ValidationDetail
	if menuItemID == 0 {
		details = append(details, errors.ValidationDetail{Field: "menu_item_id", Message: "menu_item_id is required"})
	}
	if qty < 1 || qty > domain.MaxCartQuantity {
		details = append(details, errors.ValidationDetail{Field: "quantity", Message: "quantity must be between 1 and 10000"})
	}
	if len(details) > 0 {
		return nil, errors.NewValidationError("validation failed", details...)
	}

	item, err := s.menuRepo.FindByID(ctx, menuItemID)
	if err != nil {
		return nil, err
	}

	if err := s.cartRepo.Upsert(ctx, userID, menuItemID, qty); err != nil {
		return nil, err
	}

	s.logger.Debug("cart item added", zap.Uint("userId", userID), zap.Uint("menuItemId", menuItemID), zap.Int("quantity", qty))
	return item, nil
}

func (s *CartService) ListItems(ctx context.Context, userID uint) ([]domain.CartLine, error) {
	return s.cartRepo.FindByUser(ctx, userID)
}

// Clear empties the user's cart. Clearing an empty cart succeeds.
func (s *CartService) Clear(ctx context.Context, userID uint) error {
	removed, err := s.cartRepo.DeleteByUser(ctx, userID)
	if err != nil {
		return err
	}

	s.logger.Debug("cart cleared", zap.Uint("userId", userID), zap.Int64("removed", removed))
	return nil
}
