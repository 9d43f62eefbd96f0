package request

type CreateBookingRequest struct {
	ProviderID    string  `json:"provider_id" validate:"required,uuid"`
	ServiceID     string  `json:"service_id" validate:"required,uuid"`
	ScheduledDate string  `json:"scheduled_date" validate:"required,datetime=2006-01-02"`
	ScheduledTime string  `json:"scheduled_time" validate:"required,datetime=15:04"`
	Location      string  `json:"location" validate:"required,notblank,max=255"`
	Notes         *string `json:"notes,omitempty" validate:"omitempty,max=1000"`
}

type RejectBookingRequest struct {
	Reason string `json:"reason" validate:"required,notblank,max=500"`
}

type RescheduleBookingRequest struct {
	Date string `json:"date" validate:"required,datetime=2006-01-02"`
	Time string `json:"time" validate:"required,datetime=15:04"`
}

// BookingHistoryRequest filters the booking list. View "history" hides
// requests that were never answered.
type BookingHistoryRequest struct {
	PaginatedRequest
	Status   string `json:"status" validate:"omitempty,oneof=REQUESTED CONFIRMED COMPLETED CANCELLED"`
	FromDate string `json:"from_date" validate:"omitempty,datetime=2006-01-02"`
	ToDate   string `json:"to_date" validate:"omitempty,datetime=2006-01-02"`
	View     string `json:"view" validate:"omitempty,oneof=all history"`
}
