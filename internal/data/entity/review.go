package entity

import (
	"github.com/google/uuid"
)

type ReviewStatus string

const (
	ReviewVisible ReviewStatus = "VISIBLE"
	ReviewHidden  ReviewStatus = "HIDDEN"
)

type Review struct {
	BaseSimple
	BookingID  uuid.UUID    `db:"booking_id"`
	ServiceID  uuid.UUID    `db:"service_id"`
	ProviderID uuid.UUID    `db:"provider_id"`
	CustomerID uuid.UUID    `db:"customer_id"`
	Rating     int          `db:"rating"` // 1-5
	Comment    *string      `db:"comment"`
	Status     ReviewStatus `db:"status"`
}
