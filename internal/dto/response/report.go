package response

import (
	"time"

	"karigar/internal/data/entity"
)

type ReportResponse struct {
	ID             string              `json:"id"`
	ReporterID     string              `json:"reporter_id"`
	ReportedUserID *string             `json:"reported_user_id,omitempty"`
	BookingID      *string             `json:"booking_id,omitempty"`
	IssueType      entity.IssueType    `json:"issue_type"`
	Description    string              `json:"description"`
	Status         entity.ReportStatus `json:"status"`
	AdminAction    *string             `json:"admin_action,omitempty"`
	CreatedAt      time.Time           `json:"created_at"`
	UpdatedAt      time.Time           `json:"updated_at"`
}

func ReportToResponse(r *entity.Report) ReportResponse {
	resp := ReportResponse{
		ID:          r.ID.String(),
		ReporterID:  r.ReporterID.String(),
		IssueType:   r.IssueType,
		Description: r.Description,
		Status:      r.Status,
		AdminAction: r.AdminAction,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
	if r.ReportedUserID != nil {
		id := r.ReportedUserID.String()
		resp.ReportedUserID = &id
	}
	if r.BookingID != nil {
		id := r.BookingID.String()
		resp.BookingID = &id
	}
	return resp
}
