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

type AvailabilityRepository interface {
	// FindWeekly returns nil when the provider never saved availability.
	FindWeekly(ctx context.Context, providerID uuid.UUID) (*entity.WeeklyAvailability, error)
	// SaveWeekly inserts (expectedVersion 0) or updates the document if the
	// stored version matches, then bumps w.Version. Returns ErrVersionConflict otherwise.
	SaveWeekly(ctx context.Context, w *entity.WeeklyAvailability, expectedVersion int) error

	CreateBlocked(ctx context.Context, p *entity.BlockedPeriod) error
	FindBlockedByID(ctx context.Context, id uuid.UUID) (*entity.BlockedPeriod, error)
	ListBlocked(ctx context.Context, providerID uuid.UUID) ([]*entity.BlockedPeriod, error)
	DeleteBlocked(ctx context.Context, id uuid.UUID) error
}

type availabilityRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewAvailabilityRepository(db database.PgxIface, log *zap.Logger) AvailabilityRepository {
	return &availabilityRepository{
		db:  db,
		log: log.With(zap.String("repository", "availability")),
	}
}

func (r *availabilityRepository) FindWeekly(ctx context.Context, providerID uuid.UUID) (*entity.WeeklyAvailability, error) {
	query := `SELECT provider_id, days, version, updated_at FROM weekly_availability WHERE provider_id = $1`

	var w entity.WeeklyAvailability
	err := r.db.QueryRow(ctx, query, providerID).Scan(&w.ProviderID, &w.Days, &w.Version, &w.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find weekly availability", zap.Error(err), zap.String("provider_id", providerID.String()))
		return nil, fmt.Errorf("find weekly availability %s: %w", providerID, err)
	}

	w.Normalize()
	return &w, nil
}

func (r *availabilityRepository) SaveWeekly(ctx context.Context, w *entity.WeeklyAvailability, expectedVersion int) error {
	var query string
	var args []any
	if expectedVersion == 0 {
		query = `
			INSERT INTO weekly_availability (provider_id, days, version, updated_at)
			VALUES ($1, $2, 1, $3)
			ON CONFLICT (provider_id) DO NOTHING
			RETURNING version
		`
		args = []any{w.ProviderID, w.Days, w.UpdatedAt}
	} else {
		query = `
			UPDATE weekly_availability
			SET days = $2, version = version + 1, updated_at = $3
			WHERE provider_id = $1 AND version = $4
			RETURNING version
		`
		args = []any{w.ProviderID, w.Days, w.UpdatedAt, expectedVersion}
	}

	var version int
	err := r.db.QueryRow(ctx, query, args...).Scan(&version)
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("save availability %s at version %d: %w", w.ProviderID, expectedVersion, ErrVersionConflict)
	}
	if err != nil {
		r.log.Error("Failed to save weekly availability", zap.Error(err), zap.String("provider_id", w.ProviderID.String()))
		return fmt.Errorf("save weekly availability %s: %w", w.ProviderID, err)
	}

	w.Version = version
	return nil
}

var blockedColumns = []string{"id", "provider_id", "start_date", "end_date", "reason", "created_at"}

func scanBlocked(row scanner) (*entity.BlockedPeriod, error) {
	var p entity.BlockedPeriod
	if err := row.Scan(&p.ID, &p.ProviderID, &p.StartDate, &p.EndDate, &p.Reason, &p.CreatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *availabilityRepository) CreateBlocked(ctx context.Context, p *entity.BlockedPeriod) error {
	query, args, err := psql.Insert("blocked_periods").
		Columns(blockedColumns...).
		Values(p.ID, p.ProviderID, p.StartDate, p.EndDate, p.Reason, p.CreatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert blocked period query: %w", err)
	}

	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		r.log.Error("Failed to create blocked period", zap.Error(err), zap.String("provider_id", p.ProviderID.String()))
		return fmt.Errorf("create blocked period: %w", err)
	}
	return nil
}

func (r *availabilityRepository) FindBlockedByID(ctx context.Context, id uuid.UUID) (*entity.BlockedPeriod, error) {
	query, args, err := psql.Select(blockedColumns...).From("blocked_periods").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build find blocked period query: %w", err)
	}

	p, err := scanBlocked(r.db.QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find blocked period", zap.Error(err), zap.String("id", id.String()))
		return nil, fmt.Errorf("find blocked period %s: %w", id, err)
	}
	return p, nil
}

func (r *availabilityRepository) ListBlocked(ctx context.Context, providerID uuid.UUID) ([]*entity.BlockedPeriod, error) {
	query, args, err := psql.Select(blockedColumns...).
		From("blocked_periods").
		Where(squirrel.Eq{"provider_id": providerID}).
		OrderBy("start_date").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list blocked periods query: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to list blocked periods", zap.Error(err), zap.String("provider_id", providerID.String()))
		return nil, fmt.Errorf("list blocked periods: %w", err)
	}
	defer rows.Close()

	var periods []*entity.BlockedPeriod
	for rows.Next() {
		p, err := scanBlocked(rows)
		if err != nil {
			return nil, fmt.Errorf("scan blocked period row: %w", err)
		}
		periods = append(periods, p)
	}
	return periods, rows.Err()
}

func (r *availabilityRepository) DeleteBlocked(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.Exec(ctx, `DELETE FROM blocked_periods WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to delete blocked period", zap.Error(err), zap.String("id", id.String()))
		return fmt.Errorf("delete blocked period %s: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("delete blocked period %s: %w", id, ErrNotFound)
	}

	r.log.Info("Blocked period deleted", zap.String("id", id.String()))
	return nil
}
