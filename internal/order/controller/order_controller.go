package controller

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"littlelemon/internal/auth"
	"littlelemon/internal/commons"
	"littlelemon/internal/domain"
	"littlelemon/internal/dto"
	apperrors "littlelemon/internal/errors"
)

type PlaceOrderUseCase interface {
	PlaceOrder(ctx context.Context, userID uint) (*domain.Order, error)
}

type OrderService interface {
	ListOrders(ctx context.Context, userID uint) ([]domain.Order, error)
	GetOrder(ctx context.Context, userID uint, orderID uint) (*domain.Order, error)
	UpdateOrder(ctx context.Context, actor domain.Principal, orderID uint, update domain.OrderUpdate) (*domain.Order, error)
	DeleteOrder(ctx context.Context, actor domain.Principal, orderID uint) error
}

type OrderController struct {
	useCase PlaceOrderUseCase
	service OrderService
	logger  *zap.Logger
}

func NewOrderController(useCase PlaceOrderUseCase, service OrderService, logger *zap.Logger) *OrderController {
	return &OrderController{
		useCase: useCase,
		service: service,
		logger:  logger,
	}
}

func (c *OrderController) ListOrders(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()

	principal, ok := auth.PrincipalFrom(r.Context())
	if !ok {
		commons.WriteError(w, traceID, apperrors.NewUnauthorizedError("authentication required"), c.logger)
		return
	}

	orders, err := c.service.ListOrders(r.Context(), principal.UserID())
	if err != nil {
		commons.WriteError(w, traceID, err, c.logger)
		return
	}

	out := make([]dto.OrderDTO, 0, len(orders))
	for _, o := range orders {
		out = append(out, dto.NewOrderDTO(o))
	}
	commons.WriteJSON(w, http.StatusOK, out, c.logger)
}

func (c *OrderController) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	principal, ok := auth.PrincipalFrom(r.Context())
	if !ok {
		commons.WriteError(w, traceID, apperrors.NewUnauthorizedError("authentication required"), logger)
		return
	}

	order, err := c.useCase.PlaceOrder(r.Context(), principal.UserID())
	if err != nil {
		commons.WriteError(w, traceID, err, logger)
		return
	}

	commons.WriteJSON(w, http.StatusCreated, dto.NewOrderDTO(*order), logger)
}

func (c *OrderController) GetOrder(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()

	principal, ok := auth.PrincipalFrom(r.Context())
	if !ok {
		commons.WriteError(w, traceID, apperrors.NewUnauthorizedError("authentication required"), c.logger)
		return
	}

	orderID, err := commons.IDParam(r, "id")
	if err != nil {
		commons.WriteError(w, traceID, err, c.logger)
		return
	}

	order, err := c.service.GetOrder(r.Context(), principal.UserID(), orderID)
	if err != nil {
		commons.WriteError(w, traceID, err, c.logger)
		return
	}

	commons.WriteJSON(w, http.StatusOK, dto.NewOrderDTO(*order), c.logger)
}

func (c *OrderController) UpdateOrder(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	principal, ok := auth.PrincipalFrom(r.Context())
	if !ok {
		commons.WriteError(w, traceID, apperrors.NewUnauthorizedError("authentication required"), logger)
		return
	}

	orderID, err := commons.IDParam(r, "id")
	if err != nil {
		commons.WriteError(w, traceID, err, logger)
		return
	}

	var req dto.UpdateOrderRequest
	if err := commons.DecodeJSON(r, &req); err != nil {
		commons.WriteError(w, traceID, err, logger)
		return
	}

	var update domain.OrderUpdate
	if req.Status != nil {
		status := domain.OrderStatus(strings.ToUpper(strings.TrimSpace(*req.Status)))
		update.Status = &status
	}
	if req.DeliveryCrewID.Set {
		update.DeliveryCrewID = req.DeliveryCrewID.Value
		update.ClearDeliveryCrew = req.DeliveryCrewID.Value == nil
	}

	order, err := c.service.UpdateOrder(r.Context(), principal, orderID, update)
	if err != nil {
		commons.WriteError(w, traceID, err, logger)
		return
	}

	commons.WriteJSON(w, http.StatusOK, dto.NewOrderDTO(*order), logger)
}

func (c *OrderController) DeleteOrder(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	principal, ok := auth.PrincipalFrom(r.Context())
	if !ok {
		commons.WriteError(w, traceID, apperrors.NewUnauthorizedError("authentication required"), logger)
		return
	}

	orderID, err := commons.IDParam(r, "id")
	if err != nil {
		commons.WriteError(w, traceID, err, logger)
		return
	}

	if err := c.service.DeleteOrder(r.Context(), principal, orderID); err != nil {
		commons.WriteError(w, traceID, err, logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
