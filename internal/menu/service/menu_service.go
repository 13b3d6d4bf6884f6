package service

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"littlelemon/internal/domain"
	"littlelemon/internal/errors"
)

const maxNameLength = 100

var maxPrice = decimal.RequireFromString("9999.99")

type Repository interface {
	FindAll(ctx context.Context) ([]domain.MenuItem, error)
	FindByID(ctx context.Context, id uint) (*domain.MenuItem, error)
	Insert(ctx context.Context, item domain.MenuItem) (uint, error)
	Update(ctx context.Context, item domain.MenuItem) error
	Delete(ctx context.Context, id uint) error
}

// ItemChanges holds the fields of a partial menu item update.
type ItemChanges struct {
	Name        *string
	Price       *decimal.Decimal
	Description *string
}

type MenuService struct {
	repo   Repository
	logger *zap.Logger
}

func NewMenuService(repo Repository, logger *zap.Logger) *MenuService {
	return &MenuService{repo: repo, logger: logger}
}

func (s *MenuService) ListItems(ctx context.Context) ([]domain.MenuItem, error) {
	return s.repo.FindAll(ctx)
}

func (s *MenuService) GetItem(ctx context.Context, id uint) (*domain.MenuItem, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *MenuService) CreateItem(ctx context.Context, actor domain.Principal, item domain.MenuItem) (*domain.MenuItem, error) {
	if !actor.IsStaff() {
		return nil, errors.NewForbiddenError("you do not have permission to add menu items")
	}

	item.Name = strings.TrimSpace(item.Name)
	if err := validateItem(item); err != nil {
		return nil, err
	}
	item.Price = item.Price.Round(2)

	id, err := s.repo.Insert(ctx, item)
	if err != nil {
		return nil, err
	}
	item.ID = id

	s.logger.Info("menu item created", zap.Uint("menuItemId", id), zap.Uint("actorId", actor.UserID()))
	return &item, nil
}

func (s *MenuService) UpdateItem(ctx context.Context, actor domain.Principal, id uint, changes ItemChanges) (*domain.MenuItem, error) {
	if !actor.IsStaff() {
		return nil, errors.NewForbiddenError("you do not have permission to modify menu items")
	}

	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if changes.Name != nil {
		item.Name = strings.TrimSpace(*changes.Name)
	}
	if changes.Price != nil {
		item.Price = *changes.Price
	}
	if changes.Description != nil {
		item.Description = *changes.Description
	}

	if err := validateItem(*item); err != nil {
		return nil, err
	}
	item.Price = item.Price.Round(2)

	if err := s.repo.Update(ctx, *item); err != nil {
		return nil, err
	}

	s.logger.Info("menu item updated", zap.Uint("menuItemId", id), zap.Uint("actorId", actor.UserID()))
	return item, nil
}

func (s *MenuService) DeleteItem(ctx context.Context, actor domain.Principal, id uint) error {
	if !actor.IsStaff() {
		return errors.NewForbiddenError("you do not have permission to delete menu items")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("menu item deleted", zap.Uint("menuItemId", id), zap.Uint("actorId", actor.UserID()))
	return nil
}

func validateItem(item domain.MenuItem) error {
	var details []errors.ValidationDetail

	if item.Name == "" {
		details = append(details, errors.ValidationDetail{Field: "name", Message: "name is required"})
	} else if len(item.Name) > maxNameLength {
		details = append(details, errors.ValidationDetail{Field: "name", Message: "name must be at most 100 characters"})
	}

	if item.Price.IsNegative() {
		details = append(details, errors.ValidationDetail{Field: "price", Message: "price must be non-negative"})
	} else if item.Price.GreaterThan(maxPrice) {
		details = append(details, errors.ValidationDetail{Field: "price", Message: "price must not exceed 9999.99"})
	}

	if strings.TrimSpace(item.Description) == "" {
		details = append(details, errors.ValidationDetail{Field: "description", Message: "description is required"})
	}

	if len(details) > 0 {
		return errors.NewValidationError("validation failed", details...)
	}
	return nil
}
