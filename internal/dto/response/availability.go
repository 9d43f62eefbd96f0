package response

import (
	"karigar/internal/data/entity"
)

type BlockedPeriodResponse struct {
	ID        string `json:"id"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Reason    string `json:"reason"`
}

// AvailabilityResponse is cached as-is, keep it JSON round-trippable.
type AvailabilityResponse struct {
	ProviderID     string                              `json:"provider_id"`
	Days           map[entity.Weekday]entity.DayConfig `json:"days"`
	BlockedPeriods []BlockedPeriodResponse             `json:"blocked_periods"`
	IsDefault      bool                                `json:"is_default"`
	Version        int                                 `json:"version"`
}

type DayOffResponse struct {
	Day      entity.Weekday `json:"day"`
	IsDayOff bool           `json:"is_day_off"`
}

type OpenSlotResponse struct {
	ID    string `json:"id"`
	Start string `json:"start"`
	End   string `json:"end"`
	Taken bool   `json:"taken"`
}

type OpenSlotsResponse struct {
	ProviderID string             `json:"provider_id"`
	Date       string             `json:"date"`
	Day        entity.Weekday     `json:"day"`
	BlockedBy  *string            `json:"blocked_by,omitempty"`
	Slots      []OpenSlotResponse `json:"slots"`
}

func BlockedPeriodToResponse(p *entity.BlockedPeriod) BlockedPeriodResponse {
	return BlockedPeriodResponse{
		ID:        p.ID.String(),
		StartDate: p.StartDate.Format(entity.DateLayout),
		EndDate:   p.EndDate.Format(entity.DateLayout),
		Reason:    p.Reason,
	}
}

func AvailabilityToResponse(w *entity.WeeklyAvailability, blocked []*entity.BlockedPeriod, isDefault bool) AvailabilityResponse {
	periods := make([]BlockedPeriodResponse, len(blocked))
	for i, p := range blocked {
		periods[i] = BlockedPeriodToResponse(p)
	}
	return AvailabilityResponse{
		ProviderID:     w.ProviderID.String(),
		Days:           w.Days,
		BlockedPeriods: periods,
		IsDefault:      isDefault,
		Version:        w.Version,
	}
}
