package entity

import (
	"strings"
	"time"

	"karigar/pkg/apperror"

	"github.com/google/uuid"
)

type IssueType string

const (
	IssueServiceIssue   IssueType = "SERVICE_ISSUE"
	IssuePaymentDispute IssueType = "PAYMENT_DISPUTE"
	IssueMisbehavior    IssueType = "MISBEHAVIOR"
	IssueOther          IssueType = "OTHER"
)

type ReportStatus string

const (
	ReportPending   ReportStatus = "PENDING"
	ReportResolved  ReportStatus = "RESOLVED"
	ReportDismissed ReportStatus = "DISMISSED"
)

// Report is a complaint filed by a user for admin review.
type Report struct {
	Base
	ReporterID     uuid.UUID    `db:"reporter_id"`
	ReportedUserID *uuid.UUID   `db:"reported_user_id"`
	BookingID      *uuid.UUID   `db:"booking_id"`
	IssueType      IssueType    `db:"issue_type"`
	Description    string       `db:"description"`
	Status         ReportStatus `db:"status"`
	AdminAction    *string      `db:"admin_action"`
}

func (r *Report) close(to ReportStatus, action string, now time.Time) error {
	if r.Status != ReportPending {
		return apperror.InvalidTransition("report already %s", strings.ToLower(string(r.Status)))
	}
	if action = strings.TrimSpace(action); action != "" {
		r.AdminAction = &action
	}
	r.Status = to
	r.UpdatedAt = now
	return nil
}

// Resolve closes a pending report. The action taken is mandatory.
func (r *Report) Resolve(action string, now time.Time) error {
	if strings.TrimSpace(action) == "" {
		return apperror.Validation("admin action is required to resolve a report")
	}
	return r.close(ReportResolved, action, now)
}

func (r *Report) Dismiss(note string, now time.Time) error {
	return r.close(ReportDismissed, note, now)
}
