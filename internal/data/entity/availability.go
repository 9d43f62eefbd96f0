package entity

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"karigar/pkg/apperror"

	"github.com/google/uuid"
)

type Weekday string

const (
	Monday    Weekday = "monday"
	Tuesday   Weekday = "tuesday"
	Wednesday Weekday = "wednesday"
	Thursday  Weekday = "thursday"
	Friday    Weekday = "friday"
	Saturday  Weekday = "saturday"
	Sunday    Weekday = "sunday"
)

var Weekdays = []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

func ParseWeekday(s string) (Weekday, error) {
	d := Weekday(strings.ToLower(strings.TrimSpace(s)))
	if !slices.Contains(Weekdays, d) {
		return "", apperror.Validation(fmt.Sprintf("unknown day %q", s))
	}
	return d, nil
}

// WeekdayOf returns the day key for a calendar date.
func WeekdayOf(date time.Time) Weekday {
	// time.Weekday starts at Sunday
	return Weekdays[(int(date.Weekday())+6)%7]
}

type TimeSlot struct {
	ID    string `json:"id"`
	Start string `json:"start"`
	End   string `json:"end"`
}

type DayConfig struct {
	IsDayOff bool       `json:"isDayOff"`
	Slots    []TimeSlot `json:"slots"`
}

// WeeklyAvailability is a provider's recurring schedule, one entry per weekday.
type WeeklyAvailability struct {
	ProviderID uuid.UUID             `db:"provider_id"`
	Days       map[Weekday]DayConfig `db:"days"`
	Version    int                   `db:"version"`
	UpdatedAt  time.Time             `db:"updated_at"`
}

// DefaultWeeklyAvailability is the template used until a provider saves their own.
func DefaultWeeklyAvailability(providerID uuid.UUID) *WeeklyAvailability {
	w := &WeeklyAvailability{ProviderID: providerID, Days: map[Weekday]DayConfig{}}
	w.Normalize()
	w.Days[Monday] = DayConfig{Slots: []TimeSlot{{ID: "1", Start: "10:00", End: "18:00"}}}
	w.Days[Saturday] = DayConfig{IsDayOff: true, Slots: []TimeSlot{}}
	w.Days[Sunday] = DayConfig{IsDayOff: true, Slots: []TimeSlot{}}
	return w
}

// Normalize makes sure every weekday key is present.
func (w *WeeklyAvailability) Normalize() {
	if w.Days == nil {
		w.Days = map[Weekday]DayConfig{}
	}
	for _, d := range Weekdays {
		cfg := w.Days[d]
		if cfg.Slots == nil {
			cfg.Slots = []TimeSlot{}
		}
		w.Days[d] = cfg
	}
}

func (w *WeeklyAvailability) Clone() *WeeklyAvailability {
	c := *w
	c.Days = make(map[Weekday]DayConfig, len(w.Days))
	for d, cfg := range w.Days {
		c.Days[d] = DayConfig{IsDayOff: cfg.IsDayOff, Slots: slices.Clone(cfg.Slots)}
	}
	return &c
}

// AddSlot appends [start, end) to day. The day must be on and the slot must
// not overlap existing ones; touching boundaries are fine.
func (w *WeeklyAvailability) AddSlot(day Weekday, start, end string) (TimeSlot, error) {
	startMin, err := ParseClock(start)
	if err != nil {
		return TimeSlot{}, err
	}
	endMin, err := ParseClock(end)
	if err != nil {
		return TimeSlot{}, err
	}

	cfg := w.Days[day]
	if cfg.IsDayOff {
		return TimeSlot{}, apperror.Validation(fmt.Sprintf("%s is marked as day off", day))
	}
	if startMin >= endMin {
		return TimeSlot{}, apperror.Validation("end time must be after start time")
	}
	if Overlaps(cfg.Slots, start, end) {
		return TimeSlot{}, apperror.Validation("time slot overlaps with an existing slot")
	}

	slot := TimeSlot{ID: uuid.NewString(), Start: startMin.String(), End: endMin.String()}
	cfg.Slots = append(slices.Clone(cfg.Slots), slot)
	w.Days[day] = cfg
	return slot, nil
}

func (w *WeeklyAvailability) DeleteSlot(day Weekday, slotID string) error {
	cfg := w.Days[day]
	i := slices.IndexFunc(cfg.Slots, func(s TimeSlot) bool { return s.ID == slotID })
	if i < 0 {
		return apperror.NotFound("time slot")
	}
	cfg.Slots = slices.Delete(slices.Clone(cfg.Slots), i, i+1)
	w.Days[day] = cfg
	return nil
}

// ToggleDayOff flips the day-off flag and returns the new value. Slots are
// cleared either way: switching off drops them, switching on starts empty.
func (w *WeeklyAvailability) ToggleDayOff(day Weekday) bool {
	cfg := w.Days[day]
	cfg.IsDayOff = !cfg.IsDayOff
	cfg.Slots = []TimeSlot{}
	w.Days[day] = cfg
	return cfg.IsDayOff
}

// SlotsOn returns the configured slots for the weekday of date, or nil on a day off.
func (w *WeeklyAvailability) SlotsOn(date time.Time) []TimeSlot {
	cfg := w.Days[WeekdayOf(date)]
	if cfg.IsDayOff {
		return nil
	}
	return cfg.Slots
}

// Covers reports whether at falls inside one of the slots of date's weekday.
// Slot starts are inclusive, ends exclusive.
func (w *WeeklyAvailability) Covers(date time.Time, at Clock) bool {
	for _, s := range w.SlotsOn(date) {
		start, err1 := ParseClock(s.Start)
		end, err2 := ParseClock(s.End)
		if err1 != nil || err2 != nil {
			continue
		}
		if at >= start && at < end {
			return true
		}
	}
	return false
}

// Overlaps reports whether [start, end) intersects any existing slot.
// An unparsable candidate counts as overlapping so it is never stored.
func Overlaps(existing []TimeSlot, start, end string) bool {
	newStart, err1 := ParseClock(start)
	newEnd, err2 := ParseClock(end)
	if err1 != nil || err2 != nil {
		return true
	}
	for _, s := range existing {
		sStart, err1 := ParseClock(s.Start)
		sEnd, err2 := ParseClock(s.End)
		if err1 != nil || err2 != nil {
			continue
		}
		if !(newEnd <= sStart || newStart >= sEnd) {
			return true
		}
	}
	return false
}

const DefaultBlockedReason = "Unavailable"

// BlockedPeriod is an inclusive date range when the provider takes no work.
type BlockedPeriod struct {
	BaseSimple
	ProviderID uuid.UUID `db:"provider_id"`
	StartDate  time.Time `db:"start_date"`
	EndDate    time.Time `db:"end_date"`
	Reason     string    `db:"reason"`
}

func NewBlockedPeriod(providerID uuid.UUID, start, end time.Time, reason string, now time.Time) (*BlockedPeriod, error) {
	if start.IsZero() || end.IsZero() {
		return nil, apperror.Validation("start and end dates are required")
	}
	start, end = DateOnly(start), DateOnly(end)
	if end.Before(start) {
		return nil, apperror.Validation("end date must not be before start date")
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		reason = DefaultBlockedReason
	}
	return &BlockedPeriod{
		BaseSimple: NewBaseSimple(now),
		ProviderID: providerID,
		StartDate:  start,
		EndDate:    end,
		Reason:     reason,
	}, nil
}

func (p *BlockedPeriod) Contains(date time.Time) bool {
	d := DateOnly(date)
	return !d.Before(DateOnly(p.StartDate)) && !d.After(DateOnly(p.EndDate))
}

// BlockedOn returns the first period covering date, if any.
func BlockedOn(periods []*BlockedPeriod, date time.Time) *BlockedPeriod {
	for _, p := range periods {
		if p.Contains(date) {
			return p
		}
	}
	return nil
}
