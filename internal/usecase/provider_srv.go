package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"karigar/internal/data/entity"
	"karigar/internal/data/repository"
	"karigar/internal/dto/request"
	"karigar/internal/dto/response"
	"karigar/pkg/apperror"
	"karigar/pkg/utils"

	"go.uber.org/zap"
)

type ProviderService interface {
	SearchProviders(ctx context.Context, req *request.SearchProvidersRequest) (*response.PaginatedResponse[response.ProviderResponse], error)
	GetProvider(ctx context.Context, providerID string) (*response.ProviderDetailResponse, error)
	UpdateProfile(ctx context.Context, actor utils.Actor, req *request.ProviderProfileRequest) (*response.ProviderResponse, error)
}

type providerService struct {
	repo *repository.Repository
	now  func() time.Time
	log  *zap.Logger
}

func NewProviderService(repo *repository.Repository, log *zap.Logger) ProviderService {
	return &providerService{
		repo: repo,
		now:  time.Now,
		log:  log.With(zap.String("service", "provider")),
	}
}

func (s *providerService) SearchProviders(ctx context.Context, req *request.SearchProvidersRequest) (*response.PaginatedResponse[response.ProviderResponse], error) {
	if err := validateRequest(s.log, "Search providers", req); err != nil {
		return nil, err
	}
	req.Normalize()

	listings, total, err := s.repo.Provider.Search(ctx, repository.ProviderFilter{
		Category: entity.ServiceCategory(req.Category),
		Location: req.Location,
		Keywords: req.Keywords,
		Limit:    req.Limit(),
		Offset:   req.Offset(),
	})
	if err != nil {
		s.log.Error("Failed to search providers", zap.Error(err))
		return nil, fmt.Errorf("search providers: %w", err)
	}

	items := make([]response.ProviderResponse, len(listings))
	for i, l := range listings {
		items[i] = response.ProviderToResponse(l)
	}

	s.log.Debug("Providers searched",
		zap.String("category", req.Category),
		zap.String("location", req.Location),
		zap.Int64("total", total),
	)

	return response.NewPaginatedResponse(items, req.Page, req.PerPage, total), nil
}

func (s *providerService) GetProvider(ctx context.Context, providerID string) (*response.ProviderDetailResponse, error) {
	id, err := parseID(providerID, "provider")
	if err != nil {
		return nil, err
	}

	listing, err := s.repo.Provider.FindListing(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find provider: %w", err)
	}
	if listing == nil || !listing.User.IsActive {
		return nil, apperror.NotFound("provider")
	}

	services, err := s.repo.Service.ListByProvider(ctx, id, publicStatuses)
	if err != nil {
		return nil, fmt.Errorf("list provider services: %w", err)
	}

	resp := &response.ProviderDetailResponse{
		ProviderResponse: response.ProviderToResponse(listing),
		Services:         make([]response.ServiceResponse, len(services)),
	}
	for i, svc := range services {
		resp.Services[i] = response.ServiceToResponse(svc)
	}
	return resp, nil
}

func (s *providerService) UpdateProfile(ctx context.Context, actor utils.Actor, req *request.ProviderProfileRequest) (*response.ProviderResponse, error) {
	if err := validateRequest(s.log, "Update provider profile", req); err != nil {
		return nil, err
	}
	if err := requireRole(actor, entity.RoleProvider); err != nil {
		return nil, err
	}

	listing, err := s.repo.Provider.FindListing(ctx, actor.UserID)
	if err != nil {
		return nil, fmt.Errorf("find provider: %w", err)
	}
	if listing == nil {
		return nil, apperror.NotFound("provider profile")
	}

	profile := listing.Profile
	if req.BusinessName != nil {
		profile.BusinessName = strings.TrimSpace(*req.BusinessName)
	}
	if req.ServiceCategory != nil {
		profile.ServiceCategory = entity.ServiceCategory(*req.ServiceCategory)
	}
	if req.Address != nil {
		profile.Address = strings.TrimSpace(*req.Address)
	}
	if req.City != nil {
		profile.City = strings.TrimSpace(*req.City)
	}
	if req.Bio != nil {
		profile.Bio = strings.TrimSpace(*req.Bio)
	}
	profile.UpdatedAt = s.now()

	if err := s.repo.Provider.UpdateProfile(ctx, &profile); err != nil {
		s.log.Error("Failed to update provider profile", zap.Error(err), zap.String("user_id", actor.UserID.String()))
		return nil, fmt.Errorf("update profile: %w", err)
	}

	listing.Profile = profile
	resp := response.ProviderToResponse(listing)
	return &resp, nil
}
