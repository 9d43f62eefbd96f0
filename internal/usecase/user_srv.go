package usecase

import (
	"context"
	"fmt"
	"time"

	"karigar/internal/data/entity"
	"karigar/internal/data/repository"
	"karigar/internal/dto/request"
	"karigar/internal/dto/response"
	"karigar/pkg/apperror"
	"karigar/pkg/utils"

	"go.uber.org/zap"
)

type UserService interface {
	GetProfile(ctx context.Context, actor utils.Actor) (*response.UserResponse, error)
	ListUsers(ctx context.Context, actor utils.Actor, role string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.UserResponse], error)
	DeactivateUser(ctx context.Context, actor utils.Actor, userID string) error
}

type userService struct {
	repo *repository.Repository
	now  func() time.Time
	log  *zap.Logger
}

func NewUserService(repo *repository.Repository, log *zap.Logger) UserService {
	return &userService{
		repo: repo,
		now:  time.Now,
		log:  log.With(zap.String("service", "user")),
	}
}

func (us *userService) GetProfile(ctx context.Context, actor utils.Actor) (*response.UserResponse, error) {
	user, err := us.repo.User.FindByID(ctx, actor.UserID)
	if err != nil {
		us.log.Error("Failed to find user", zap.Error(err), zap.String("user_id", actor.UserID.String()))
		return nil, fmt.Errorf("get profile: %w", err)
	}
	if user == nil {
		return nil, apperror.NotFound("user")
	}

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (us *userService) ListUsers(ctx context.Context, actor utils.Actor, role string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.UserResponse], error) {
	if err := requireRole(actor, entity.RoleAdmin); err != nil {
		return nil, err
	}
	switch entity.UserRole(role) {
	case "", entity.RoleCustomer, entity.RoleProvider, entity.RoleAdmin:
	default:
		return nil, apperror.Validation(fmt.Sprintf("unknown role %q", role))
	}
	req.Normalize()

	users, total, err := us.repo.User.List(ctx, entity.UserRole(role), req.Limit(), req.Offset())
	if err != nil {
		us.log.Error("Failed to list users", zap.Error(err), zap.Int("page", req.Page))
		return nil, fmt.Errorf("list users: %w", err)
	}

	items := make([]response.UserResponse, len(users))
	for i, u := range users {
		items[i] = response.UserToResponse(u)
	}

	return response.NewPaginatedResponse(items, req.Page, req.PerPage, total), nil
}

// DeactivateUser blocks the account and revokes every session it holds.
func (us *userService) DeactivateUser(ctx context.Context, actor utils.Actor, userID string) error {
	if err := requireRole(actor, entity.RoleAdmin); err != nil {
		return err
	}
	id, err := parseID(userID, "user")
	if err != nil {
		return err
	}
	if id == actor.UserID {
		return apperror.Validation("admins cannot deactivate themselves")
	}

	user, err := us.repo.User.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		return apperror.NotFound("user")
	}
	if !user.IsActive {
		return nil
	}

	if err := us.repo.User.SetActive(ctx, id, false, us.now()); err != nil {
		us.log.Error("Failed to deactivate user", zap.Error(err), zap.String("user_id", userID))
		return fmt.Errorf("deactivate user: %w", err)
	}
	if err := us.repo.Session.RevokeAllUserSessions(ctx, id); err != nil {
		return fmt.Errorf("revoke sessions: %w", err)
	}

	us.log.Info("User deactivated", zap.String("user_id", userID), zap.String("by", actor.UserID.String()))
	return nil
}
