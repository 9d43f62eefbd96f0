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

type ReportRepository interface {
	Create(ctx context.Context, report *entity.Report) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Report, error)
	List(ctx context.Context, status entity.ReportStatus, limit, offset int) ([]*entity.Report, int64, error)
	// UpdateStatus closes a report only while it is still PENDING.
	UpdateStatus(ctx context.Context, report *entity.Report) error
}

type reportRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewReportRepository(db database.PgxIface, log *zap.Logger) ReportRepository {
	return &reportRepository{
		db:  db,
		log: log.With(zap.String("repository", "report")),
	}
}

var reportColumns = []string{
	"id", "reporter_id", "reported_user_id", "booking_id", "issue_type", "description",
	"status", "admin_action", "created_at", "updated_at",
}

func scanReport(row scanner) (*entity.Report, error) {
	var rp entity.Report
	err := row.Scan(
		&rp.ID,
		&rp.ReporterID,
		&rp.ReportedUserID,
		&rp.BookingID,
		&rp.IssueType,
		&rp.Description,
		&rp.Status,
		&rp.AdminAction,
		&rp.CreatedAt,
		&rp.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &rp, nil
}

func (r *reportRepository) Create(ctx context.Context, rp *entity.Report) error {
	query, args, err := psql.Insert("reports").
		Columns(reportColumns...).
		Values(rp.ID, rp.ReporterID, rp.ReportedUserID, rp.BookingID, rp.IssueType, rp.Description,
			rp.Status, rp.AdminAction, rp.CreatedAt, rp.UpdatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert report query: %w", err)
	}

	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		r.log.Error("Failed to create report", zap.Error(err), zap.String("reporter_id", rp.ReporterID.String()))
		return fmt.Errorf("create report: %w", err)
	}
	return nil
}

func (r *reportRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Report, error) {
	query, args, err := psql.Select(reportColumns...).From("reports").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build find report query: %w", err)
	}

	rp, err := scanReport(r.db.QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find report", zap.Error(err), zap.String("report_id", id.String()))
		return nil, fmt.Errorf("find report %s: %w", id, err)
	}
	return rp, nil
}

func (r *reportRepository) List(ctx context.Context, status entity.ReportStatus, limit, offset int) ([]*entity.Report, int64, error) {
	where := squirrel.And{}
	if status != "" {
		where = append(where, squirrel.Eq{"status": status})
	}

	countQuery, countArgs, err := psql.Select("COUNT(*)").From("reports").Where(where).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build count reports query: %w", err)
	}
	var total int64
	if err := r.db.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		r.log.Error("Failed to count reports", zap.Error(err))
		return nil, 0, fmt.Errorf("count reports: %w", err)
	}

	query, args, err := psql.Select(reportColumns...).
		From("reports").
		Where(where).
		OrderBy("created_at DESC").
		Limit(uint64(limit)).
		Offset(uint64(offset)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list reports query: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to list reports", zap.Error(err))
		return nil, 0, fmt.Errorf("list reports: %w", err)
	}
	defer rows.Close()

	var reports []*entity.Report
	for rows.Next() {
		rp, err := scanReport(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan report row: %w", err)
		}
		reports = append(reports, rp)
	}
	return reports, total, rows.Err()
}

func (r *reportRepository) UpdateStatus(ctx context.Context, rp *entity.Report) error {
	query := `
		UPDATE reports
		SET status = $2, admin_action = $3, updated_at = $4
		WHERE id = $1 AND status = 'PENDING'
	`

	result, err := r.db.Exec(ctx, query, rp.ID, rp.Status, rp.AdminAction, rp.UpdatedAt)
	if err != nil {
		r.log.Error("Failed to update report", zap.Error(err), zap.String("report_id", rp.ID.String()))
		return fmt.Errorf("update report %s: %w", rp.ID, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("update report %s: %w", rp.ID, ErrVersionConflict)
	}
	return nil
}
