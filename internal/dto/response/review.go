package response

import (
	"time"

	"karigar/internal/data/entity"
)

type ReviewResponse struct {
	ID         string              `json:"id"`
	BookingID  string              `json:"booking_id"`
	ServiceID  string              `json:"service_id"`
	ProviderID string              `json:"provider_id"`
	CustomerID string              `json:"customer_id"`
	Rating     int                 `json:"rating"`
	Comment    *string             `json:"comment,omitempty"`
	Status     entity.ReviewStatus `json:"status"`
	CreatedAt  time.Time           `json:"created_at"`
}

func ReviewToResponse(r *entity.Review) ReviewResponse {
	return ReviewResponse{
		ID:         r.ID.String(),
		BookingID:  r.BookingID.String(),
		ServiceID:  r.ServiceID.String(),
		ProviderID: r.ProviderID.String(),
		CustomerID: r.CustomerID.String(),
		Rating:     r.Rating,
		Comment:    r.Comment,
		Status:     r.Status,
		CreatedAt:  r.CreatedAt,
	}
}
