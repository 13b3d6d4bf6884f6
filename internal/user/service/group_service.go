package service

import (
	"context"

	"go.uber.org/zap"

	"littlelemon/internal/domain"
	"littlelemon/internal/errors"
)

type GroupRepository interface {
	FindIDByName(ctx context.Context, name string) (uint, error)
	ListMembers(ctx context.Context, groupID uint) ([]domain.User, error)
	AddMember(ctx context.Context, groupID uint, userID uint) error
	RemoveMember(ctx context.Context, groupID uint, userID uint) (bool, error)
}

type UserFinder interface {
	FindByID(ctx context.Context, id uint) (*domain.User, error)
}

// GroupService administers Manager and Delivery Crew membership. Every
// operation requires a staff or Manager caller.
type GroupService struct {
	groups GroupRepository
	users  UserFinder
	logger *zap.Logger
}

func NewGroupService(groups GroupRepository, users UserFinder, logger *zap.Logger) *GroupService {
	return &GroupService{
		groups: groups,
		users:  users,
		logger: logger,
	}
}

func (s *GroupService) ListMembers(ctx context.Context, actor domain.Principal, group string) ([]domain.User, error) {
	groupID, err := s.authorize(ctx, actor, group)
	if err != nil {
		return nil, err
	}
	return s.groups.ListMembers(ctx, groupID)
}

func (s *GroupService) AddMember(ctx context.Context, actor domain.Principal, group string, userID uint) (*domain.User, error) {
	groupID, err := s.authorize(ctx, actor, group)
	if err != nil {
		return nil, err
	}

	if userID == 0 {
		return nil, errors.NewValidationError("validation failed", errors.ValidationDetail{
			Field:   "user_id",
			Message: "user_id is required",
		})
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := s.groups.AddMember(ctx, groupID, userID); err != nil {
		return nil, err
	}

	s.logger.Info("group member added", zap.String("group", group), zap.Uint("userId", userID), zap.Uint("actorId", actor.UserID()))
	return user, nil
}

// RemoveMember succeeds when the user exists but is not a member.
func (s *GroupService) RemoveMember(ctx context.Context, actor domain.Principal, group string, userID uint) error {
	groupID, err := s.authorize(ctx, actor, group)
	if err != nil {
		return err
	}

	if _, err := s.users.FindByID(ctx, userID); err != nil {
		return err
	}

	removed, err := s.groups.RemoveMember(ctx, groupID, userID)
	if err != nil {
		return err
	}

	s.logger.Info("group member removed", zap.String("group", group), zap.Uint("userId", userID), zap.Bool("wasMember", removed))
	return nil
}

func (s *GroupService) authorize(ctx context.Context, actor domain.Principal, group string) (uint, error) {
	if !domain.CanManageGroups(actor) {
		return 0, errors.NewForbiddenError("only staff or managers can manage groups")
	}
	return s.groups.FindIDByName(ctx, group)
}
