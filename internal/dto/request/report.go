package request

type CreateReportRequest struct {
	ReportedUserID *string `json:"reported_user_id,omitempty" validate:"omitempty,uuid"`
	BookingID      *string `json:"booking_id,omitempty" validate:"omitempty,uuid"`
	IssueType      string  `json:"issue_type" validate:"required,oneof=SERVICE_ISSUE PAYMENT_DISPUTE MISBEHAVIOR OTHER"`
	Description    string  `json:"description" validate:"required,notblank,max=2000"`
}

type CloseReportRequest struct {
	Action string `json:"action" validate:"max=1000"`
}

type ListReportsRequest struct {
	PaginatedRequest
	Status string `json:"status" validate:"omitempty,oneof=PENDING RESOLVED DISMISSED"`
}
