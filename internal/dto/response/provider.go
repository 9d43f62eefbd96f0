package response

import (
	"math"

	"karigar/internal/data/entity"
)

type ProviderResponse struct {
	ID              string                 `json:"id"`
	Name            string                 `json:"name"`
	BusinessName    string                 `json:"business_name"`
	ServiceCategory entity.ServiceCategory `json:"service_category"`
	Address         string                 `json:"address"`
	City            string                 `json:"city"`
	Area            string                 `json:"area,omitempty"`
	Bio             string                 `json:"bio,omitempty"`
	Phone           *string                `json:"phone,omitempty"`
	AverageRating   float64                `json:"average_rating"`
	ReviewCount     int                    `json:"review_count"`
}

type ProviderDetailResponse struct {
	ProviderResponse
	Services []ServiceResponse `json:"services"`
}

func ProviderToResponse(l *entity.ProviderListing) ProviderResponse {
	return ProviderResponse{
		ID:              l.User.ID.String(),
		Name:            l.User.Name,
		BusinessName:    l.Profile.BusinessName,
		ServiceCategory: l.Profile.ServiceCategory,
		Address:         l.Profile.Address,
		City:            l.Profile.City,
		Area:            l.User.Area,
		Bio:             l.Profile.Bio,
		Phone:           l.User.Phone,
		AverageRating:   math.Round(l.AverageRating*10) / 10,
		ReviewCount:     l.ReviewCount,
	}
}
