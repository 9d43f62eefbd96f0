package response

import (
	"time"

	"karigar/internal/data/entity"
)

type ServiceResponse struct {
	ID              string                 `json:"id"`
	ProviderID      string                 `json:"provider_id"`
	Name            string                 `json:"name"`
	Category        entity.ServiceCategory `json:"category"`
	Description     string                 `json:"description"`
	BasePrice       float64                `json:"base_price"`
	PricingType     entity.PricingType     `json:"pricing_type"`
	DurationMinutes int                    `json:"duration_minutes"`
	Status          entity.ServiceStatus   `json:"status"`
	CreatedAt       time.Time              `json:"created_at"`
	UpdatedAt       time.Time              `json:"updated_at"`
}

func ServiceToResponse(s *entity.Service) ServiceResponse {
	return ServiceResponse{
		ID:              s.ID.String(),
		ProviderID:      s.ProviderID.String(),
		Name:            s.Name,
		Category:        s.Category,
		Description:     s.Description,
		BasePrice:       s.BasePrice,
		PricingType:     s.PricingType,
		DurationMinutes: s.DurationMinutes,
		Status:          s.Status,
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
	}
}
