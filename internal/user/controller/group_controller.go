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

type GroupService interface {
	ListMembers(ctx context.Context, actor domain.Principal, group string) ([]domain.User, error)
	AddMember(ctx context.Context, actor domain.Principal, group string, userID uint) (*domain.User, error)
	RemoveMember(ctx context.Context, actor domain.Principal, group string, userID uint) error
}

// GroupController serves the membership endpoints of one group per handler set.
type GroupController struct {
	service GroupService
	logger  *zap.Logger
}

func NewGroupController(service GroupService, logger *zap.Logger) *GroupController {
	return &GroupController{
		service: service,
		logger:  logger,
	}
}

func (c *GroupController) ListMembers(group string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		traceID := uuid.New().String()

		principal, ok := auth.PrincipalFrom(r.Context())
		if !ok {
			commons.WriteError(w, traceID, apperrors.NewUnauthorizedError("authentication required"), c.logger)
			return
		}

		members, err := c.service.ListMembers(r.Context(), principal, group)
		if err != nil {
			commons.WriteError(w, traceID, err, c.logger)
			return
		}

		out := make([]dto.GroupMemberDTO, 0, len(members))
		for _, m := range members {
			out = append(out, dto.NewGroupMemberDTO(m))
		}
		commons.WriteJSON(w, http.StatusOK, out, c.logger)
	}
}

func (c *GroupController) AddMember(group string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		traceID := uuid.New().String()
		logger := c.logger.With(zap.String("traceId", traceID), zap.String("group", group))

		principal, ok := auth.PrincipalFrom(r.Context())
		if !ok {
			commons.WriteError(w, traceID, apperrors.NewUnauthorizedError("authentication required"), logger)
			return
		}

		var req dto.AddGroupMemberRequest
		if err := commons.DecodeJSON(r, &req); err != nil {
			commons.WriteError(w, traceID, err, logger)
			return
		}

		user, err := c.service.AddMember(r.Context(), principal, group, req.UserID)
		if err != nil {
			commons.WriteError(w, traceID, err, logger)
			return
		}

		commons.WriteJSON(w, http.StatusCreated, dto.NewGroupMemberDTO(*user), logger)
	}
}

func (c *GroupController) RemoveMember(group string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		traceID := uuid.New().String()
		logger := c.logger.With(zap.String("traceId", traceID), zap.String("group", group))

		principal, ok := auth.PrincipalFrom(r.Context())
		if !ok {
			commons.WriteError(w, traceID, apperrors.NewUnauthorizedError("authentication required"), logger)
			return
		}

		userID, err := commons.IDParam(r, "userId")
		if err != nil {
			commons.WriteError(w, traceID, err, logger)
			return
		}

		if err := c.service.RemoveMember(r.Context(), principal, group, userID); err != nil {
			commons.WriteError(w, traceID, err, logger)
			return
		}

		commons.WriteJSON(w, http.StatusOK, dto.MessageResponse{
			Message: fmt.Sprintf("user %d removed from %s group", userID, group),
		}, logger)
	}
}
