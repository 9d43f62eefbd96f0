package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"karigar/internal/data/entity"
	"karigar/pkg/database"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// BookingFilter selects bookings for history listings. Zero values are ignored.
type BookingFilter struct {
	CustomerID       uuid.UUID
	ProviderID       uuid.UUID
	Status           entity.BookingStatus
	ExcludeRequested bool
	FromDate         *time.Time
	ToDate           *time.Time
	Limit            int
	Offset           int
}

type BookingRepository interface {
	Create(ctx context.Context, booking *entity.Booking) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error)
	// Update stores booking only if its stored version still equals
	// expectedVersion, then bumps booking.Version. Returns ErrVersionConflict otherwise.
	Update(ctx context.Context, booking *entity.Booking, expectedVersion int) error
	List(ctx context.Context, filter BookingFilter) ([]*entity.Booking, int64, error)
	ListActiveByProviderDate(ctx context.Context, providerID uuid.UUID, date time.Time) ([]*entity.Booking, error)
}

type bookingRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewBookingRepository(db database.PgxIface, log *zap.Logger) BookingRepository {
	return &bookingRepository{
		db:  db,
		log: log.With(zap.String("repository", "booking")),
	}
}

var bookingColumns = []string{
	"id", "reference", "customer_id", "provider_id", "service_id", "service_name",
	"service_category", "pricing_type", "scheduled_date", "scheduled_time", "location",
	"price", "notes", "status", "cancel_reason", "version", "created_at", "updated_at",
}

func scanBooking(row scanner) (*entity.Booking, error) {
	var b entity.Booking
	err := row.Scan(
		&b.ID,
		&b.Reference,
		&b.CustomerID,
		&b.ProviderID,
		&b.ServiceID,
		&b.ServiceName,
		&b.ServiceCategory,
		&b.PricingType,
		&b.ScheduledDate,
		&b.ScheduledTime,
		&b.Location,
		&b.Price,
		&b.Notes,
		&b.Status,
		&b.CancelReason,
		&b.Version,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *bookingRepository) Create(ctx context.Context, b *entity.Booking) error {
	query, args, err := psql.Insert("bookings").
		Columns(bookingColumns...).
		Values(
			b.ID,
			b.Reference,
			b.CustomerID,
			b.ProviderID,
			b.ServiceID,
			b.ServiceName,
			b.ServiceCategory,
			b.PricingType,
			b.ScheduledDate,
			b.ScheduledTime,
			b.Location,
			b.Price,
			b.Notes,
			b.Status,
			b.CancelReason,
			b.Version,
			b.CreatedAt,
			b.UpdatedAt,
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert booking query: %w", err)
	}

	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		r.log.Error("Failed to create booking",
			zap.Error(err),
			zap.String("reference", b.Reference),
			zap.String("customer_id", b.CustomerID.String()),
		)
		return fmt.Errorf("create booking %s: %w", b.Reference, err)
	}

	return nil
}

func (r *bookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	query, args, err := psql.Select(bookingColumns...).From("bookings").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build find booking query: %w", err)
	}

	b, err := scanBooking(r.db.QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking by ID", zap.Error(err), zap.String("booking_id", id.String()))
		return nil, fmt.Errorf("find booking by ID %s: %w", id, err)
	}

	return b, nil
}

func (r *bookingRepository) Update(ctx context.Context, b *entity.Booking, expectedVersion int) error {
	query := `
		UPDATE bookings
		SET scheduled_date = $3, scheduled_time = $4, status = $5, cancel_reason = $6,
		    updated_at = $7, version = version + 1
		WHERE id = $1 AND version = $2
		RETURNING version
	`

	var version int
	err := r.db.QueryRow(ctx, query,
		b.ID,
		expectedVersion,
		b.ScheduledDate,
		b.ScheduledTime,
		b.Status,
		b.CancelReason,
		b.UpdatedAt,
	).Scan(&version)

	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("update booking %s at version %d: %w", b.ID, expectedVersion, ErrVersionConflict)
	}
	if err != nil {
		r.log.Error("Failed to update booking",
			zap.Error(err),
			zap.String("booking_id", b.ID.String()),
			zap.String("status", string(b.Status)),
		)
		return fmt.Errorf("update booking %s: %w", b.ID, err)
	}

	b.Version = version
	return nil
}

func (r *bookingRepository) List(ctx context.Context, f BookingFilter) ([]*entity.Booking, int64, error) {
	where := squirrel.And{}
	if f.CustomerID != uuid.Nil {
		where = append(where, squirrel.Eq{"customer_id": f.CustomerID})
	}
	if f.ProviderID != uuid.Nil {
		where = append(where, squirrel.Eq{"provider_id": f.ProviderID})
	}
	if f.Status != "" {
		where = append(where, squirrel.Eq{"status": f.Status})
	}
	if f.ExcludeRequested {
		where = append(where, squirrel.NotEq{"status": entity.BookingStatusRequested})
	}
	if f.FromDate != nil {
		where = append(where, squirrel.GtOrEq{"scheduled_date": *f.FromDate})
	}
	if f.ToDate != nil {
		where = append(where, squirrel.LtOrEq{"scheduled_date": *f.ToDate})
	}

	countQuery, countArgs, err := psql.Select("COUNT(*)").From("bookings").Where(where).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build count bookings query: %w", err)
	}
	var total int64
	if err := r.db.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		r.log.Error("Failed to count bookings", zap.Error(err))
		return nil, 0, fmt.Errorf("count bookings: %w", err)
	}

	query, args, err := psql.Select(bookingColumns...).
		From("bookings").
		Where(where).
		OrderBy("scheduled_date DESC", "scheduled_time DESC").
		Limit(uint64(f.Limit)).
		Offset(uint64(f.Offset)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list bookings query: %w", err)
	}

	bookings, err := r.query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	return bookings, total, nil
}

func (r *bookingRepository) ListActiveByProviderDate(ctx context.Context, providerID uuid.UUID, date time.Time) ([]*entity.Booking, error) {
	query, args, err := psql.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{
			"provider_id":    providerID,
			"scheduled_date": date,
			"status":         []entity.BookingStatus{entity.BookingStatusRequested, entity.BookingStatusConfirmed},
		}).
		OrderBy("scheduled_time").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build active bookings query: %w", err)
	}

	return r.query(ctx, query, args...)
}

func (r *bookingRepository) query(ctx context.Context, query string, args ...any) ([]*entity.Booking, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to query bookings", zap.Error(err))
		return nil, fmt.Errorf("query bookings: %w", err)
	}
	defer rows.Close()

	var bookings []*entity.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			r.log.Error("Failed to scan booking row", zap.Error(err))
			return nil, fmt.Errorf("scan booking row: %w", err)
		}
		bookings = append(bookings, b)
	}

	return bookings, rows.Err()
}
