package controller

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"littlelemon/internal/auth"
	"littlelemon/internal/commons"
	"littlelemon/internal/domain"
	"littlelemon/internal/dto"
	apperrors "littlelemon/internal/errors"
)

type CartService interface {
	AddItem(ctx context.Context, userID uint, menuItemID uint, quantity *int) (*domain.MenuItem, error)
	ListItems(ctx context.Context, userID uint) ([]domain.CartLine, error)
	Clear(ctx context.Context, userID uint) error
}

type CartController struct {
	service CartService
	logger  *zap.Logger
}

func NewCartController(service CartService, logger *zap.Logger) *CartController {
	return &CartController{
		service: service,
		logger:  logger,
	}
}

func (c *CartController) ListItems(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()

	principal, ok := auth.PrincipalFrom(r.Context())
	if !ok {
		commons.WriteError(w, traceID, apperrors.NewUnauthorizedError("authentication required"), c.logger)
		return
	}

	lines, err := c.service.ListItems(r.Context(), principal.UserID())
	if err != nil {
		commons.WriteError(w, traceID, err, c.logger)
		return
	}

	commons.WriteJSON(w, http.StatusOK, dto.NewCartResponse(lines), c.logger)
}

func (c *CartController) AddItem(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	principal, ok := auth.PrincipalFrom(r.Context())
	if !ok {
		commons.WriteError(w, traceID, apperrors.NewUnauthorizedError("authentication required"), logger)
		return
	}

	var req dto.AddCartItemRequest
	if err := commons.DecodeJSON(r, &req); err != nil {
		commons.WriteError(w, traceID, err, logger)
		return
	}

	item, err := c.service.AddItem(r.Context(), principal.UserID(), req.MenuItemID, req.Quantity)
	if err != nil {
		commons.WriteError(w, traceID, err, logger)
		return
	}

	commons.WriteJSON(w, http.StatusCreated, dto.MessageResponse{
		Message: fmt.Sprintf("%s added to cart.", item.Name),
	}, logger)
}

func (c *CartController) Clear(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()

	principal, ok := auth.PrincipalFrom(r.Context())
	if !ok {
		commons.WriteError(w, traceID, apperrors.NewUnauthorizedError("authentication required"), c.logger)
		return
	}

	if err := c.service.Clear(r.Context(), principal.UserID()); err != nil {
		commons.WriteError(w, traceID, err, c.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
