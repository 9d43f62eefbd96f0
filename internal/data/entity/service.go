package entity

import (
	"github.com/google/uuid"
)

type ServiceCategory string

const (
	CategoryPlumbing        ServiceCategory = "plumbing"
	CategoryElectrical      ServiceCategory = "electrical"
	CategoryCarpentry       ServiceCategory = "carpentry"
	CategoryCleaning        ServiceCategory = "cleaning"
	CategoryPainting        ServiceCategory = "painting"
	CategoryACRepair        ServiceCategory = "ac-repair"
	CategoryApplianceRepair ServiceCategory = "appliance-repair"
	CategoryBeautySalon     ServiceCategory = "beauty-salon"
	CategoryPestControl     ServiceCategory = "pest-control"
	CategoryOther           ServiceCategory = "other"
)

type PricingType string

const (
	PricingFixed  PricingType = "fixed"
	PricingHourly PricingType = "hourly"
)

type ServiceStatus string

const (
	ServiceStatusActive   ServiceStatus = "ACTIVE"
	ServiceStatusInactive ServiceStatus = "INACTIVE"
	ServiceStatusRemoved  ServiceStatus = "REMOVED"
)

// Service is an offering listed by a provider.
type Service struct {
	Base
	ProviderID      uuid.UUID       `db:"provider_id"`
	Name            string          `db:"name"`
	Category        ServiceCategory `db:"category"`
	Description     string          `db:"description"`
	BasePrice       float64         `db:"base_price"`
	PricingType     PricingType     `db:"pricing_type"`
	DurationMinutes int             `db:"duration_minutes"`
	Status          ServiceStatus   `db:"status"`
}

func (s *Service) IsBookable() bool {
	return s.Status == ServiceStatusActive
}
