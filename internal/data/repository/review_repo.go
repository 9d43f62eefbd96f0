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

// ReviewFilter selects reviews for a service or a provider.
type ReviewFilter struct {
	ServiceID   uuid.UUID
	ProviderID  uuid.UUID
	OnlyVisible bool
	Limit       int
	Offset      int
}

type ReviewRepository interface {
	Create(ctx context.Context, review *entity.Review) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Review, error)
	FindByBookingID(ctx context.Context, bookingID uuid.UUID) (*entity.Review, error)
	List(ctx context.Context, filter ReviewFilter) ([]*entity.Review, int64, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status entity.ReviewStatus) error
}

type reviewRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewReviewRepository(db database.PgxIface, log *zap.Logger) ReviewRepository {
	return &reviewRepository{
		db:  db,
		log: log.With(zap.String("repository", "review")),
	}
}

var reviewColumns = []string{
	"id", "booking_id", "service_id", "provider_id", "customer_id", "rating", "comment", "status", "created_at",
}

func scanReview(row scanner) (*entity.Review, error) {
	var rv entity.Review
	err := row.Scan(
		&rv.ID,
		&rv.BookingID,
		&rv.ServiceID,
		&rv.ProviderID,
		&rv.CustomerID,
		&rv.Rating,
		&rv.Comment,
		&rv.Status,
		&rv.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &rv, nil
}

func (r *reviewRepository) Create(ctx context.Context, rv *entity.Review) error {
	query, args, err := psql.Insert("reviews").
		Columns(reviewColumns...).
		Values(rv.ID, rv.BookingID, rv.ServiceID, rv.ProviderID, rv.CustomerID, rv.Rating, rv.Comment, rv.Status, rv.CreatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert review query: %w", err)
	}

	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("create review for booking %s: %w", rv.BookingID, ErrDuplicateKey)
		}
		r.log.Error("Failed to create review", zap.Error(err), zap.String("booking_id", rv.BookingID.String()))
		return fmt.Errorf("create review for booking %s: %w", rv.BookingID, err)
	}

	return nil
}

func (r *reviewRepository) findOne(ctx context.Context, where squirrel.Eq) (*entity.Review, error) {
	query, args, err := psql.Select(reviewColumns...).From("reviews").Where(where).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build find review query: %w", err)
	}

	rv, err := scanReview(r.db.QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find review", zap.Error(err), zap.Any("where", where))
		return nil, fmt.Errorf("find review: %w", err)
	}
	return rv, nil
}

func (r *reviewRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Review, error) {
	return r.findOne(ctx, squirrel.Eq{"id": id})
}

func (r *reviewRepository) FindByBookingID(ctx context.Context, bookingID uuid.UUID) (*entity.Review, error) {
	return r.findOne(ctx, squirrel.Eq{"booking_id": bookingID})
}

func (r *reviewRepository) List(ctx context.Context, f ReviewFilter) ([]*entity.Review, int64, error) {
	where := squirrel.And{}
	if f.ServiceID != uuid.Nil {
		where = append(where, squirrel.Eq{"service_id": f.ServiceID})
	}
	if f.ProviderID != uuid.Nil {
		where = append(where, squirrel.Eq{"provider_id": f.ProviderID})
	}
	if f.OnlyVisible {
		where = append(where, squirrel.Eq{"status": entity.ReviewVisible})
	}

	countQuery, countArgs, err := psql.Select("COUNT(*)").From("reviews").Where(where).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build count reviews query: %w", err)
	}
	var total int64
	if err := r.db.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		r.log.Error("Failed to count reviews", zap.Error(err))
		return nil, 0, fmt.Errorf("count reviews: %w", err)
	}

	query, args, err := psql.Select(reviewColumns...).
		From("reviews").
		Where(where).
		OrderBy("created_at DESC").
		Limit(uint64(f.Limit)).
		Offset(uint64(f.Offset)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list reviews query: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to list reviews", zap.Error(err))
		return nil, 0, fmt.Errorf("list reviews: %w", err)
	}
	defer rows.Close()

	var reviews []*entity.Review
	for rows.Next() {
		rv, err := scanReview(rows)
		if err != nil {
			r.log.Error("Failed to scan review row", zap.Error(err))
			return nil, 0, fmt.Errorf("scan review row: %w", err)
		}
		reviews = append(reviews, rv)
	}

	return reviews, total, rows.Err()
}

func (r *reviewRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.ReviewStatus) error {
	result, err := r.db.Exec(ctx, `UPDATE reviews SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		r.log.Error("Failed to update review status", zap.Error(err), zap.String("review_id", id.String()))
		return fmt.Errorf("update review %s status: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("review %s not found", id)
	}

	return nil
}
