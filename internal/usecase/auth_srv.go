package usecase

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"
	"time"

	"karigar/internal/data/entity"
	"karigar/internal/data/repository"
	"karigar/internal/dto/request"
	"karigar/internal/dto/response"
	"karigar/pkg/apperror"
	"karigar/pkg/token"
	"karigar/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AuthService interface {
	Register(ctx context.Context, req *request.RegisterRequest) (*response.AuthResponse, error)
	// RegisterAdmin needs an admin actor in ctx or the configured bootstrap secret.
	RegisterAdmin(ctx context.Context, req *request.RegisterAdminRequest) (*response.AuthResponse, error)
	Login(ctx context.Context, req *request.LoginRequest) (*response.AuthResponse, error)
	Logout(ctx context.Context, actor utils.Actor) error
	Verify(ctx context.Context, tokenStr string) (utils.Actor, error)
}

type authService struct {
	repo   *repository.Repository
	config *utils.Config
	tokens *token.Manager
	now    func() time.Time
	log    *zap.Logger
}

func NewAuthService(
	repo *repository.Repository,
	config *utils.Config,
	tokens *token.Manager,
	log *zap.Logger,
) AuthService {
	return &authService{
		repo:   repo,
		config: config,
		tokens: tokens,
		now:    time.Now,
		log:    log.With(zap.String("service", "auth")),
	}
}

func (s *authService) Register(ctx context.Context, req *request.RegisterRequest) (*response.AuthResponse, error) {
	// 1. Validate input
	req.Email = normalizeEmail(req.Email)
	if err := validateRequest(s.log, "Register", req); err != nil {
		return nil, err
	}
	role := entity.UserRole(req.Role)
	if role == entity.RoleProvider {
		if errs := providerFieldErrors(req); len(errs) > 0 {
			s.log.Warn("Register validation failed", zap.Any("errors", errs))
			return nil, apperror.ValidationFields("validation failed: "+utils.FormatValidationErrors(errs), errs)
		}
	}

	// 2. Hash password
	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		s.log.Error("Failed to hash password", zap.Error(err))
		return nil, fmt.Errorf("hash password: %w", err)
	}

	// 3. Build user
	now := s.now()
	user := &entity.User{
		Base:         entity.NewBase(now),
		Name:         strings.TrimSpace(req.Name),
		Email:        normalizeEmail(req.Email),
		PasswordHash: hashed,
		Phone:        req.Phone,
		Role:         role,
		City:         strings.TrimSpace(req.City),
		Area:         strings.TrimSpace(req.Area),
		IsActive:     true,
	}

	// 4. Save, providers together with their profile
	if role == entity.RoleProvider {
		profile := &entity.ProviderProfile{
			UserID:          user.ID,
			BusinessName:    strings.TrimSpace(req.BusinessName),
			ServiceCategory: entity.ServiceCategory(req.ServiceCategory),
			Address:         strings.TrimSpace(req.Address),
			City:            user.City,
			Bio:             strings.TrimSpace(req.Bio),
			AcceptedTerms:   req.AcceptedTerms,
			CreatedAt:       now,
			UpdatedAt:       now,
		}
		err = s.repo.User.CreateProvider(ctx, user, profile)
	} else {
		err = s.repo.User.Create(ctx, user)
	}
	if err != nil {
		return nil, s.createUserError(err, user.Email)
	}

	s.log.Info("User registered",
		zap.String("user_id", user.ID.String()),
		zap.String("role", string(user.Role)),
	)

	// 5. Auto login
	return s.issue(ctx, user)
}

func (s *authService) RegisterAdmin(ctx context.Context, req *request.RegisterAdminRequest) (*response.AuthResponse, error) {
	req.Email = normalizeEmail(req.Email)
	if err := validateRequest(s.log, "Register admin", req); err != nil {
		return nil, err
	}

	// Either an admin is calling or the bootstrap secret matches
	actor, ok := utils.GetActorFromContext(ctx)
	byAdmin := ok && isRole(actor, entity.RoleAdmin)
	secret := s.config.App.AdminBootstrapSecret
	bySecret := secret != "" && subtle.ConstantTimeCompare([]byte(secret), []byte(req.BootstrapSecret)) == 1
	if !byAdmin && !bySecret {
		s.log.Warn("Admin registration refused", zap.String("email", req.Email))
		return nil, apperror.Forbidden("admin registration requires an admin or the bootstrap secret")
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &entity.User{
		Base:         entity.NewBase(s.now()),
		Name:         strings.TrimSpace(req.Name),
		Email:        normalizeEmail(req.Email),
		PasswordHash: hashed,
		Role:         entity.RoleAdmin,
		IsActive:     true,
	}
	if err := s.repo.User.Create(ctx, user); err != nil {
		return nil, s.createUserError(err, user.Email)
	}

	s.log.Info("Admin registered", zap.String("user_id", user.ID.String()), zap.Bool("by_admin", byAdmin))
	return s.issue(ctx, user)
}

func (s *authService) createUserError(err error, email string) error {
	if errors.Is(err, repository.ErrDuplicateKey) {
		s.log.Warn("Email already registered", zap.String("email", email))
		return apperror.ErrDuplicateEmail
	}
	s.log.Error("Failed to create user", zap.Error(err), zap.String("email", email))
	return fmt.Errorf("create user: %w", err)
}

func (s *authService) Login(ctx context.Context, req *request.LoginRequest) (*response.AuthResponse, error) {
	// 1. Validate
	req.Email = normalizeEmail(req.Email)
	if err := validateRequest(s.log, "Login", req); err != nil {
		return nil, err
	}

	// 2. Find user
	user, err := s.repo.User.FindByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}

	// 3. Unknown email and wrong password look the same
	if user == nil || !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		s.log.Warn("Invalid login attempt", zap.String("email", req.Email))
		return nil, apperror.ErrInvalidCredentials
	}

	// 4. Deactivated accounts cannot log in
	if !user.IsActive {
		s.log.Warn("Inactive user tried to login", zap.String("user_id", user.ID.String()))
		return nil, apperror.Forbidden("account is deactivated")
	}

	resp, err := s.issue(ctx, user)
	if err != nil {
		return nil, err
	}

	s.log.Info("User logged in", zap.String("user_id", user.ID.String()))
	return resp, nil
}

// issue signs a token and records its session so it can be revoked.
func (s *authService) issue(ctx context.Context, user *entity.User) (*response.AuthResponse, error) {
	now := s.now()
	signed, claims, err := s.tokens.Issue(user.ID, string(user.Role), now)
	if err != nil {
		s.log.Error("Failed to sign token", zap.Error(err), zap.String("user_id", user.ID.String()))
		return nil, fmt.Errorf("issue token: %w", err)
	}

	session := &entity.Session{
		BaseSimple: entity.NewBaseSimple(now),
		UserID:     user.ID,
		TokenID:    claims.ID,
		ExpiresAt:  claims.ExpiresAt.Time,
	}
	if err := s.repo.Session.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	resp := response.AuthToResponse(user, signed, session.ExpiresAt)
	return &resp, nil
}

func (s *authService) Logout(ctx context.Context, actor utils.Actor) error {
	if actor.TokenID == "" {
		return apperror.Unauthorized("missing session")
	}

	if err := s.repo.Session.Revoke(ctx, actor.TokenID); err != nil {
		s.log.Warn("Failed to revoke session", zap.Error(err), zap.String("user_id", actor.UserID.String()))
		return apperror.Unauthorized("session not found or already revoked")
	}

	s.log.Info("User logged out", zap.String("user_id", actor.UserID.String()))
	return nil
}

func (s *authService) Verify(ctx context.Context, tokenStr string) (utils.Actor, error) {
	claims, err := s.tokens.Parse(tokenStr)
	if err != nil {
		return utils.Actor{}, apperror.Unauthorized("invalid or expired token")
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return utils.Actor{}, apperror.Unauthorized("invalid or expired token")
	}

	session, err := s.repo.Session.FindValidSession(ctx, claims.ID)
	if err != nil {
		return utils.Actor{}, fmt.Errorf("find session: %w", err)
	}
	if session == nil || session.UserID != userID {
		return utils.Actor{}, apperror.Unauthorized("session expired or revoked")
	}

	return utils.Actor{UserID: userID, Role: claims.Role, TokenID: claims.ID}, nil
}

// providerFieldErrors checks the fields only providers must fill in.
func providerFieldErrors(req *request.RegisterRequest) map[string]string {
	errs := map[string]string{}
	if strings.TrimSpace(req.BusinessName) == "" {
		errs["business_name"] = "This field is required"
	}
	if req.ServiceCategory == "" {
		errs["service_category"] = "This field is required"
	}
	if strings.TrimSpace(req.Address) == "" {
		errs["address"] = "This field is required"
	}
	if !req.AcceptedTerms {
		errs["accepted_terms"] = "Terms must be accepted"
	}
	return errs
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
