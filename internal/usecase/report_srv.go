package usecase

import (
	"context"
	"errors"
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

type ReportService interface {
	CreateReport(ctx context.Context, actor utils.Actor, req *request.CreateReportRequest) (*response.ReportResponse, error)
	ListReports(ctx context.Context, actor utils.Actor, req *request.ListReportsRequest) (*response.PaginatedResponse[response.ReportResponse], error)
	ResolveReport(ctx context.Context, actor utils.Actor, reportID string, req *request.CloseReportRequest) (*response.ReportResponse, error)
	DismissReport(ctx context.Context, actor utils.Actor, reportID string, req *request.CloseReportRequest) (*response.ReportResponse, error)
}

type reportService struct {
	repo *repository.Repository
	now  func() time.Time
	log  *zap.Logger
}

func NewReportService(repo *repository.Repository, log *zap.Logger) ReportService {
	return &reportService{
		repo: repo,
		now:  time.Now,
		log:  log.With(zap.String("service", "report")),
	}
}

func optionalID(value *string, what string) (*uuid.UUID, error) {
	if value == nil || *value == "" {
		return nil, nil
	}
	id, err := parseID(*value, what)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func (s *reportService) CreateReport(ctx context.Context, actor utils.Actor, req *request.CreateReportRequest) (*response.ReportResponse, error) {
	if err := validateRequest(s.log, "Create report", req); err != nil {
		return nil, err
	}

	reportedUserID, err := optionalID(req.ReportedUserID, "reported user")
	if err != nil {
		return nil, err
	}
	bookingID, err := optionalID(req.BookingID, "booking")
	if err != nil {
		return nil, err
	}

	// A referenced booking must involve the reporter
	if bookingID != nil {
		booking, err := s.repo.Booking.FindByID(ctx, *bookingID)
		if err != nil {
			return nil, fmt.Errorf("find booking: %w", err)
		}
		if booking == nil {
			return nil, apperror.NotFound("booking")
		}
		if booking.CustomerID != actor.UserID && booking.ProviderID != actor.UserID {
			return nil, apperror.Forbidden("not a party of this booking")
		}
	}

	report := &entity.Report{
		Base:           entity.NewBase(s.now()),
		ReporterID:     actor.UserID,
		ReportedUserID: reportedUserID,
		BookingID:      bookingID,
		IssueType:      entity.IssueType(req.IssueType),
		Description:    strings.TrimSpace(req.Description),
		Status:         entity.ReportPending,
	}
	if err := s.repo.Report.Create(ctx, report); err != nil {
		return nil, fmt.Errorf("create report: %w", err)
	}

	s.log.Info("Report filed",
		zap.String("report_id", report.ID.String()),
		zap.String("reporter_id", actor.UserID.String()),
		zap.String("issue_type", req.IssueType),
	)

	resp := response.ReportToResponse(report)
	return &resp, nil
}

func (s *reportService) ListReports(ctx context.Context, actor utils.Actor, req *request.ListReportsRequest) (*response.PaginatedResponse[response.ReportResponse], error) {
	if err := validateRequest(s.log, "List reports", req); err != nil {
		return nil, err
	}
	if err := requireRole(actor, entity.RoleAdmin); err != nil {
		return nil, err
	}
	req.Normalize()

	reports, total, err := s.repo.Report.List(ctx, entity.ReportStatus(req.Status), req.Limit(), req.Offset())
	if err != nil {
		s.log.Error("Failed to list reports", zap.Error(err))
		return nil, fmt.Errorf("list reports: %w", err)
	}

	items := make([]response.ReportResponse, len(reports))
	for i, r := range reports {
		items[i] = response.ReportToResponse(r)
	}
	return response.NewPaginatedResponse(items, req.Page, req.PerPage, total), nil
}

func (s *reportService) ResolveReport(ctx context.Context, actor utils.Actor, reportID string, req *request.CloseReportRequest) (*response.ReportResponse, error) {
	return s.close(ctx, actor, reportID, req, func(r *entity.Report, now time.Time) error {
		return r.Resolve(req.Action, now)
	})
}

func (s *reportService) DismissReport(ctx context.Context, actor utils.Actor, reportID string, req *request.CloseReportRequest) (*response.ReportResponse, error) {
	return s.close(ctx, actor, reportID, req, func(r *entity.Report, now time.Time) error {
		return r.Dismiss(req.Action, now)
	})
}

func (s *reportService) close(
	ctx context.Context,
	actor utils.Actor,
	reportID string,
	req *request.CloseReportRequest,
	apply func(r *entity.Report, now time.Time) error,
) (*response.ReportResponse, error) {
	if err := validateRequest(s.log, "Close report", req); err != nil {
		return nil, err
	}
	if err := requireRole(actor, entity.RoleAdmin); err != nil {
		return nil, err
	}
	id, err := parseID(reportID, "report")
	if err != nil {
		return nil, err
	}

	report, err := s.repo.Report.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find report: %w", err)
	}
	if report == nil {
		return nil, apperror.NotFound("report")
	}

	if err := apply(report, s.now()); err != nil {
		return nil, err
	}

	if err := s.repo.Report.UpdateStatus(ctx, report); err != nil {
		if errors.Is(err, repository.ErrVersionConflict) {
			return nil, apperror.InvalidTransition("report already closed")
		}
		return nil, fmt.Errorf("update report: %w", err)
	}

	s.log.Info("Report closed",
		zap.String("report_id", reportID),
		zap.String("status", string(report.Status)),
		zap.String("admin_id", actor.UserID.String()),
	)

	resp := response.ReportToResponse(report)
	return &resp, nil
}
