package usecase

import (
	"context"
	"testing"

	"karigar/internal/data/entity"
	"karigar/internal/dto/request"
	"karigar/pkg/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newReportService(fx *fixture) *reportService {
	s := NewReportService(fx.repo, fx.log).(*reportService)
	s.now = fixedClock
	return s
}

func TestCreateReport(t *testing.T) {
	fx := newFixture(t)
	svc := newReportService(fx)
	ctx := context.Background()
	c1 := fx.seedUser(entity.RoleCustomer, "c1@example.com")
	c2 := fx.seedUser(entity.RoleCustomer, "c2@example.com")
	p1 := fx.seedUser(entity.RoleProvider, "p1@example.com")
	b := fx.seedBooking(c1, p1, entity.BookingStatusCompleted, "2025-05-20", "11:00")
	bookingID := b.ID.String()
	providerID := p1.UserID.String()

	report, err := svc.CreateReport(ctx, c1, &request.CreateReportRequest{
		ReportedUserID: &providerID,
		BookingID:      &bookingID,
		IssueType:      "SERVICE_ISSUE",
		Description:    "Left the leak half fixed",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.ReportPending, report.Status)
	require.NotNil(t, report.BookingID)
	assert.Equal(t, bookingID, *report.BookingID)

	_, err = svc.CreateReport(ctx, c2, &request.CreateReportRequest{BookingID: &bookingID, IssueType: "OTHER", Description: "not mine"})
	assert.ErrorIs(t, err, apperror.ErrForbidden)

	_, err = svc.CreateReport(ctx, c1, &request.CreateReportRequest{IssueType: "SPAM", Description: "x"})
	assert.ErrorIs(t, err, apperror.ErrValidation)
}

func TestCloseReport(t *testing.T) {
	fx := newFixture(t)
	svc := newReportService(fx)
	ctx := context.Background()
	c1 := fx.seedUser(entity.RoleCustomer, "c1@example.com")
	admin := fx.seedUser(entity.RoleAdmin, "admin@example.com")

	first, err := svc.CreateReport(ctx, c1, &request.CreateReportRequest{IssueType: "PAYMENT_DISPUTE", Description: "Charged twice"})
	require.NoError(t, err)
	second, err := svc.CreateReport(ctx, c1, &request.CreateReportRequest{IssueType: "OTHER", Description: "Spam messages"})
	require.NoError(t, err)

	_, err = svc.ResolveReport(ctx, c1, first.ID, &request.CloseReportRequest{Action: "refunded"})
	assert.ErrorIs(t, err, apperror.ErrForbidden)

	_, err = svc.ResolveReport(ctx, admin, first.ID, &request.CloseReportRequest{Action: " "})
	assert.ErrorIs(t, err, apperror.ErrValidation)

	resolved, err := svc.ResolveReport(ctx, admin, first.ID, &request.CloseReportRequest{Action: "Refunded second charge"})
	require.NoError(t, err)
	assert.Equal(t, entity.ReportResolved, resolved.Status)
	require.NotNil(t, resolved.AdminAction)
	assert.Equal(t, "Refunded second charge", *resolved.AdminAction)

	_, err = svc.DismissReport(ctx, admin, first.ID, &request.CloseReportRequest{})
	assert.ErrorIs(t, err, apperror.ErrInvalidTransition)

	dismissed, err := svc.DismissReport(ctx, admin, second.ID, &request.CloseReportRequest{})
	require.NoError(t, err)
	assert.Equal(t, entity.ReportDismissed, dismissed.Status)
	assert.Nil(t, dismissed.AdminAction)

	pending, err := svc.ListReports(ctx, admin, &request.ListReportsRequest{Status: "PENDING"})
	require.NoError(t, err)
	assert.Equal(t, int64(0), pending.Pagination.Total)

	all, err := svc.ListReports(ctx, admin, &request.ListReportsRequest{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), all.Pagination.Total)

	_, err = svc.ListReports(ctx, c1, &request.ListReportsRequest{})
	assert.ErrorIs(t, err, apperror.ErrForbidden)
}
