package entity

import (
	"slices"
	"strings"
	"time"

	"karigar/pkg/apperror"

	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingStatusRequested BookingStatus = "REQUESTED"
	BookingStatusConfirmed BookingStatus = "CONFIRMED"
	BookingStatusCompleted BookingStatus = "COMPLETED"
	BookingStatusCancelled BookingStatus = "CANCELLED"
)

func (s BookingStatus) IsValid() bool {
	switch s {
	case BookingStatusRequested, BookingStatusConfirmed, BookingStatusCompleted, BookingStatusCancelled:
		return true
	}
	return false
}

func (s BookingStatus) IsTerminal() bool {
	return s == BookingStatusCompleted || s == BookingStatusCancelled
}

// IsActive reports whether the booking still holds the provider's time.
func (s BookingStatus) IsActive() bool {
	return s == BookingStatusRequested || s == BookingStatusConfirmed
}

// BookingAction names a provider operation on an existing booking.
type BookingAction string

const (
	ActionAccept     BookingAction = "accept"
	ActionReject     BookingAction = "reject"
	ActionReschedule BookingAction = "reschedule"
	ActionComplete   BookingAction = "complete"
	ActionCancel     BookingAction = "cancel"
)

type transition struct {
	from []BookingStatus
	to   BookingStatus
}

var bookingTransitions = map[BookingAction]transition{
	ActionAccept:     {from: []BookingStatus{BookingStatusRequested}, to: BookingStatusConfirmed},
	ActionReject:     {from: []BookingStatus{BookingStatusRequested}, to: BookingStatusCancelled},
	ActionReschedule: {from: []BookingStatus{BookingStatusRequested, BookingStatusConfirmed}, to: BookingStatusConfirmed},
	ActionComplete:   {from: []BookingStatus{BookingStatusConfirmed}, to: BookingStatusCompleted},
	ActionCancel:     {from: []BookingStatus{BookingStatusConfirmed}, to: BookingStatusCancelled},
}

type Booking struct {
	Base
	Reference       string          `db:"reference"`
	CustomerID      uuid.UUID       `db:"customer_id"`
	ProviderID      uuid.UUID       `db:"provider_id"`
	ServiceID       uuid.UUID       `db:"service_id"`
	ServiceName     string          `db:"service_name"`
	ServiceCategory ServiceCategory `db:"service_category"`
	PricingType     PricingType     `db:"pricing_type"`
	ScheduledDate   time.Time       `db:"scheduled_date"`
	ScheduledTime   string          `db:"scheduled_time"`
	Location        string          `db:"location"`
	Price           float64         `db:"price"`
	Notes           *string         `db:"notes"`
	Status          BookingStatus   `db:"status"`
	CancelReason    *string         `db:"cancel_reason"`
	Version         int             `db:"version"`
}

// Can reports whether action is allowed from the booking's current status.
func (b *Booking) Can(action BookingAction) bool {
	t, ok := bookingTransitions[action]
	return ok && slices.Contains(t.from, b.Status)
}

// ScheduledAt is the booked instant in loc.
func (b *Booking) ScheduledAt(loc *time.Location) (time.Time, error) {
	c, err := ParseClock(b.ScheduledTime)
	if err != nil {
		return time.Time{}, err
	}
	return At(b.ScheduledDate, c, loc), nil
}

func (b *Booking) invalid(action BookingAction) error {
	return apperror.InvalidTransition("cannot %s booking in status %s", action, b.Status)
}

func (b *Booking) apply(action BookingAction, now time.Time) error {
	if !b.Can(action) {
		return b.invalid(action)
	}
	b.Status = bookingTransitions[action].to
	b.UpdatedAt = now
	return nil
}

// Accept confirms a requested booking whose time has not passed yet.
func (b *Booking) Accept(now time.Time, loc *time.Location) error {
	if !b.Can(ActionAccept) {
		return b.invalid(ActionAccept)
	}
	at, err := b.ScheduledAt(loc)
	if err != nil {
		return err
	}
	if !at.After(now) {
		return apperror.Validation("scheduled time has already passed")
	}
	return b.apply(ActionAccept, now)
}

// Reject cancels a requested booking and records the trimmed reason.
func (b *Booking) Reject(reason string, now time.Time) error {
	if !b.Can(ActionReject) {
		return b.invalid(ActionReject)
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return apperror.Validation("rejection reason is required")
	}
	b.CancelReason = &reason
	return b.apply(ActionReject, now)
}

// Reschedule moves the booking to a new date and time and confirms it.
// Future and working-hours checks belong to the caller.
func (b *Booking) Reschedule(date time.Time, at Clock, now time.Time) error {
	if err := b.apply(ActionReschedule, now); err != nil {
		return err
	}
	b.ScheduledDate = DateOnly(date)
	b.ScheduledTime = at.String()
	return nil
}

func (b *Booking) Complete(now time.Time) error {
	return b.apply(ActionComplete, now)
}

// Cancel cancels a confirmed booking. No reason is recorded.
func (b *Booking) Cancel(now time.Time) error {
	return b.apply(ActionCancel, now)
}
