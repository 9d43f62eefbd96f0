package repository

import (
	"context"
	"errors"
	"fmt"

	"karigar/internal/data/entity"
	"karigar/pkg/database"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type ServiceRepository interface {
	Create(ctx context.Context, service *entity.Service) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Service, error)
	Update(ctx context.Context, service *entity.Service) error
	ListByProvider(ctx context.Context, providerID uuid.UUID, statuses []entity.ServiceStatus) ([]*entity.Service, error)
}

type serviceRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewServiceRepository(db database.PgxIface, log *zap.Logger) ServiceRepository {
	return &serviceRepository{
		db:  db,
		log: log.With(zap.String("repository", "service")),
	}
}

var serviceColumns = []string{
	"id", "provider_id", "name", "category", "description", "base_price",
	"pricing_type", "duration_minutes", "status", "created_at", "updated_at",
}

func scanService(row scanner) (*entity.Service, error) {
	var s entity.Service
	err := row.Scan(
		&s.ID,
		&s.ProviderID,
		&s.Name,
		&s.Category,
		&s.Description,
		&s.BasePrice,
		&s.PricingType,
		&s.DurationMinutes,
		&s.Status,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *serviceRepository) Create(ctx context.Context, s *entity.Service) error {
	query, args, err := psql.Insert("services").
		Columns(serviceColumns...).
		Values(
			s.ID,
			s.ProviderID,
			s.Name,
			s.Category,
			s.Description,
			s.BasePrice,
			s.PricingType,
			s.DurationMinutes,
			s.Status,
			s.CreatedAt,
			s.UpdatedAt,
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert service query: %w", err)
	}

	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		r.log.Error("Failed to create service",
			zap.Error(err),
			zap.String("provider_id", s.ProviderID.String()),
			zap.String("name", s.Name),
		)
		return fmt.Errorf("create service %s: %w", s.Name, err)
	}

	return nil
}

func (r *serviceRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Service, error) {
	query, args, err := psql.Select(serviceColumns...).From("services").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build find service query: %w", err)
	}

	s, err := scanService(r.db.QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find service by ID", zap.Error(err), zap.String("service_id", id.String()))
		return nil, fmt.Errorf("find service by ID %s: %w", id, err)
	}

	return s, nil
}

func (r *serviceRepository) Update(ctx context.Context, s *entity.Service) error {
	query, args, err := psql.Update("services").
		SetMap(map[string]any{
			"name":             s.Name,
			"category":         s.Category,
			"description":      s.Description,
			"base_price":       s.BasePrice,
			"pricing_type":     s.PricingType,
			"duration_minutes": s.DurationMinutes,
			"status":           s.Status,
			"updated_at":       s.UpdatedAt,
		}).
		Where(squirrel.Eq{"id": s.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update service query: %w", err)
	}

	result, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to update service", zap.Error(err), zap.String("service_id", s.ID.String()))
		return fmt.Errorf("update service %s: %w", s.ID, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("service %s not found", s.ID)
	}

	return nil
}

func (r *serviceRepository) ListByProvider(ctx context.Context, providerID uuid.UUID, statuses []entity.ServiceStatus) ([]*entity.Service, error) {
	query, args, err := psql.Select(serviceColumns...).
		From("services").
		Where(squirrel.Eq{"provider_id": providerID, "status": statuses}).
		OrderBy("created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list services query: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to list provider services", zap.Error(err), zap.String("provider_id", providerID.String()))
		return nil, fmt.Errorf("list services of provider %s: %w", providerID, err)
	}
	defer rows.Close()

	var services []*entity.Service
	for rows.Next() {
		s, err := scanService(rows)
		if err != nil {
			r.log.Error("Failed to scan service row", zap.Error(err))
			return nil, fmt.Errorf("scan service row: %w", err)
		}
		services = append(services, s)
	}

	return services, rows.Err()
}
