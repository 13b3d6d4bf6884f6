package controller

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"littlelemon/internal/auth"
	"littlelemon/internal/commons"
	"littlelemon/internal/domain"
	"littlelemon/internal/dto"
	apperrors "littlelemon/internal/errors"
	"littlelemon/internal/menu/service"
)

type MenuService interface {
	ListItems(ctx context.Context) ([]domain.MenuItem, error)
	GetItem(ctx context.Context, id uint) (*domain.MenuItem, error)
	CreateItem(ctx context.Context, actor domain.Principal, item domain.MenuItem) (*domain.MenuItem, error)
	UpdateItem(ctx context.Context, actor domain.Principal, id uint, changes service.ItemChanges) (*domain.MenuItem, error)
	DeleteItem(ctx context.Context, actor domain.Principal, id uint) error
}

type MenuController struct {
	service MenuService
	logger  *zap.Logger
}

func NewMenuController(service MenuService, logger *zap.Logger) *MenuController {
	return &MenuController{
		service: service,
		logger:  logger,
	}
}

func (c *MenuController) ListItems(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()

	items, err := c.service.ListItems(r.Context())
	if err != nil {
		commons.WriteError(w, traceID, err, c.logger)
		return
	}

	out := make([]dto.MenuItemDTO, 0, len(items))
	for _, item := range items {
		out = append(out, dto.NewMenuItemDTO(item))
	}
	commons.WriteJSON(w, http.StatusOK, out, c.logger)
}

func (c *MenuController) CreateItem(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	principal, ok := auth.PrincipalFrom(r.Context())
	if !ok {
		commons.WriteError(w, traceID, apperrors.NewUnauthorizedError("authentication required"), logger)
		return
	}

	var req dto.CreateMenuItemRequest
	if err := commons.DecodeJSON(r, &req); err != nil {
		commons.WriteError(w, traceID, err, logger)
		return
	}

	if req.Price == nil {
		commons.WriteValidationError(w, traceID, "validation failed", logger, apperrors.ValidationDetail{
			Field:   "price",
			Message: "price is required",
		})
		return
	}

	item, err := c.service.CreateItem(r.Context(), principal, domain.MenuItem{
		Name:        req.Name,
		Price:       *req.Price,
		Description: req.Description,
	})
	if err != nil {
		commons.WriteError(w, traceID, err, logger)
		return
	}

	commons.WriteJSON(w, http.StatusCreated, dto.NewMenuItemDTO(*item), logger)
}

func (c *MenuController) GetItem(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()

	id, err := commons.IDParam(r, "id")
	if err != nil {
		commons.WriteError(w, traceID, err, c.logger)
		return
	}

	item, err := c.service.GetItem(r.Context(), id)
	if err != nil {
		commons.WriteError(w, traceID, err, c.logger)
		return
	}

	commons.WriteJSON(w, http.StatusOK, dto.NewMenuItemDTO(*item), c.logger)
}

func (c *MenuController) UpdateItem(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	principal, ok := auth.PrincipalFrom(r.Context())
	if !ok {
		commons.WriteError(w, traceID, apperrors.NewUnauthorizedError("authentication required"), logger)
		return
	}

	id, err := commons.IDParam(r, "id")
	if err != nil {
		commons.WriteError(w, traceID, err, logger)
		return
	}

	var req dto.UpdateMenuItemRequest
	if err := commons.DecodeJSON(r, &req); err != nil {
		commons.WriteError(w, traceID, err, logger)
		return
	}

	item, err := c.service.UpdateItem(r.Context(), principal, id, service.ItemChanges{
		Name:        req.Name,
		Price:       req.Price,
		Description: req.Description,
	})
	if err != nil {
		commons.WriteError(w, traceID, err, logger)
		return
	}

	commons.WriteJSON(w, http.StatusOK, dto.NewMenuItemDTO(*item), logger)
}

func (c *MenuController) DeleteItem(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	principal, ok := auth.PrincipalFrom(r.Context())
	if !ok {
		commons.WriteError(w, traceID, apperrors.NewUnauthorizedError("authentication required"), logger)
		return
	}

	id, err := commons.IDParam(r, "id")
	if err != nil {
		commons.WriteError(w, traceID, err, logger)
		return
	}

	if err := c.service.DeleteItem(r.Context(), principal, id); err != nil {
		commons.WriteError(w, traceID, err, logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
