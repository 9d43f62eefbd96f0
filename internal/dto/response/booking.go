package response

import (
	"time"

	"karigar/internal/data/entity"
)

type BookingResponse struct {
	ID              string                 `json:"id"`
	Reference       string                 `json:"reference"`
	CustomerID      string                 `json:"customer_id"`
	ProviderID      string                 `json:"provider_id"`
	ServiceID       string                 `json:"service_id"`
	ServiceName     string                 `json:"service_name"`
	ServiceCategory entity.ServiceCategory `json:"service_category"`
	PricingType     entity.PricingType     `json:"pricing_type"`
	ScheduledDate   string                 `json:"scheduled_date"`
	ScheduledTime   string                 `json:"scheduled_time"`
	Location        string                 `json:"location"`
	Price           float64                `json:"price"`
	Notes           *string                `json:"notes,omitempty"`
	Status          entity.BookingStatus   `json:"status"`
	CancelReason    *string                `json:"cancel_reason,omitempty"`
	Version         int                    `json:"version"`
	CreatedAt       time.Time              `json:"created_at"`
	UpdatedAt       time.Time              `json:"updated_at"`
}

func BookingToResponse(b *entity.Booking) BookingResponse {
	return BookingResponse{
		ID:              b.ID.String(),
		Reference:       b.Reference,
		CustomerID:      b.CustomerID.String(),
		ProviderID:      b.ProviderID.String(),
		ServiceID:       b.ServiceID.String(),
		ServiceName:     b.ServiceName,
		ServiceCategory: b.ServiceCategory,
		PricingType:     b.PricingType,
		ScheduledDate:   b.ScheduledDate.Format(entity.DateLayout),
		ScheduledTime:   b.ScheduledTime,
		Location:        b.Location,
		Price:           b.Price,
		Notes:           b.Notes,
		Status:          b.Status,
		CancelReason:    b.CancelReason,
		Version:         b.Version,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}
}
