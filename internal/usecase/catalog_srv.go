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

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CatalogService interface {
	ListProviderServices(ctx context.Context, providerID string) ([]response.ServiceResponse, error)
	ListMyServices(ctx context.Context, actor utils.Actor) ([]response.ServiceResponse, error)
	CreateService(ctx context.Context, actor utils.Actor, req *request.ServiceRequest) (*response.ServiceResponse, error)
	UpdateService(ctx context.Context, actor utils.Actor, serviceID string, req *request.ServiceUpdateRequest) (*response.ServiceResponse, error)
	DeleteService(ctx context.Context, actor utils.Actor, serviceID string) error
}

type catalogService struct {
	repo *repository.Repository
	now  func() time.Time
	log  *zap.Logger
}

func NewCatalogService(repo *repository.Repository, log *zap.Logger) CatalogService {
	return &catalogService{
		repo: repo,
		now:  time.Now,
		log:  log.With(zap.String("service", "catalog")),
	}
}

var (
	publicStatuses = []entity.ServiceStatus{entity.ServiceStatusActive}
	ownerStatuses  = []entity.ServiceStatus{entity.ServiceStatusActive, entity.ServiceStatusInactive}
)

func (s *catalogService) list(ctx context.Context, providerID uuid.UUID, statuses []entity.ServiceStatus) ([]response.ServiceResponse, error) {
	services, err := s.repo.Service.ListByProvider(ctx, providerID, statuses)
	if err != nil {
		return nil, fmt.Errorf("list services: %w", err)
	}

	result := make([]response.ServiceResponse, len(services))
	for i, svc := range services {
		result[i] = response.ServiceToResponse(svc)
	}
	return result, nil
}

func (s *catalogService) ListProviderServices(ctx context.Context, providerID string) ([]response.ServiceResponse, error) {
	id, err := parseID(providerID, "provider")
	if err != nil {
		return nil, err
	}
	return s.list(ctx, id, publicStatuses)
}

func (s *catalogService) ListMyServices(ctx context.Context, actor utils.Actor) ([]response.ServiceResponse, error) {
	if err := requireRole(actor, entity.RoleProvider); err != nil {
		return nil, err
	}
	return s.list(ctx, actor.UserID, ownerStatuses)
}

func (s *catalogService) CreateService(ctx context.Context, actor utils.Actor, req *request.ServiceRequest) (*response.ServiceResponse, error) {
	// 1. Validate
	if err := validateRequest(s.log, "Create service", req); err != nil {
		return nil, err
	}

	// 2. Providers only
	if err := requireRole(actor, entity.RoleProvider); err != nil {
		return nil, err
	}

	// 3. Build & save
	service := &entity.Service{
		Base:            entity.NewBase(s.now()),
		ProviderID:      actor.UserID,
		Name:            strings.TrimSpace(req.Name),
		Category:        entity.ServiceCategory(req.Category),
		Description:     strings.TrimSpace(req.Description),
		BasePrice:       req.BasePrice,
		PricingType:     entity.PricingType(req.PricingType),
		DurationMinutes: req.DurationMinutes,
		Status:          entity.ServiceStatusActive,
	}

	if err := s.repo.Service.Create(ctx, service); err != nil {
		return nil, fmt.Errorf("create service: %w", err)
	}

	s.log.Info("Service created",
		zap.String("service_id", service.ID.String()),
		zap.String("provider_id", actor.UserID.String()),
		zap.String("name", service.Name),
	)

	resp := response.ServiceToResponse(service)
	return &resp, nil
}

// owned loads a service the actor may change. Removed services count as missing.
func (s *catalogService) owned(ctx context.Context, actor utils.Actor, serviceID string) (*entity.Service, error) {
	if err := requireRole(actor, entity.RoleProvider); err != nil {
		return nil, err
	}
	id, err := parseID(serviceID, "service")
	if err != nil {
		return nil, err
	}

	service, err := s.repo.Service.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find service: %w", err)
	}
	if service == nil || service.Status == entity.ServiceStatusRemoved {
		return nil, apperror.NotFound("service")
	}
	if service.ProviderID != actor.UserID {
		return nil, apperror.Forbidden("service belongs to another provider")
	}
	return service, nil
}

func (s *catalogService) UpdateService(ctx context.Context, actor utils.Actor, serviceID string, req *request.ServiceUpdateRequest) (*response.ServiceResponse, error) {
	if err := validateRequest(s.log, "Update service", req); err != nil {
		return nil, err
	}

	service, err := s.owned(ctx, actor, serviceID)
	if err != nil {
		return nil, err
	}

	// Partial update
	if req.Name != nil {
		service.Name = strings.TrimSpace(*req.Name)
	}
	if req.Category != nil {
		service.Category = entity.ServiceCategory(*req.Category)
	}
	if req.Description != nil {
		service.Description = strings.TrimSpace(*req.Description)
	}
	if req.BasePrice != nil {
		service.BasePrice = *req.BasePrice
	}
	if req.PricingType != nil {
		service.PricingType = entity.PricingType(*req.PricingType)
	}
	if req.DurationMinutes != nil {
		service.DurationMinutes = *req.DurationMinutes
	}
	if req.Status != nil {
		service.Status = entity.ServiceStatus(*req.Status)
	}
	service.UpdatedAt = s.now()

	if err := s.repo.Service.Update(ctx, service); err != nil {
		return nil, fmt.Errorf("update service: %w", err)
	}

	resp := response.ServiceToResponse(service)
	return &resp, nil
}

// DeleteService hides the service. Existing bookings keep their snapshot.
func (s *catalogService) DeleteService(ctx context.Context, actor utils.Actor, serviceID string) error {
	service, err := s.owned(ctx, actor, serviceID)
	if err != nil {
		return err
	}

	service.Status = entity.ServiceStatusRemoved
	service.UpdatedAt = s.now()
	if err := s.repo.Service.Update(ctx, service); err != nil {
		return fmt.Errorf("remove service: %w", err)
	}

	s.log.Info("Service removed", zap.String("service_id", serviceID))
	return nil
}
