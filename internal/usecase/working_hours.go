package usecase

import (
	"fmt"
	"time"

	"karigar/internal/data/entity"
	"karigar/pkg/apperror"
	"karigar/pkg/utils"
)

const (
	PolicyAvailability = "availability"
	PolicyFixed        = "fixed"
)

// workingHours decides whether a provider works at a given date and time.
type workingHours struct {
	policy string
	start  int
	end    int
}

func newWorkingHours(cfg utils.WorkingHoursConfig) workingHours {
	w := workingHours{policy: cfg.Policy, start: cfg.Start, end: cfg.End}
	if w.policy != PolicyFixed {
		w.policy = PolicyAvailability
	}
	if w.start <= 0 && w.end <= 0 {
		w.start, w.end = 9, 21
	}
	return w
}

// check returns a validation error when at on date falls outside the
// provider's working time. weekly is nil when the provider never saved one.
func (w workingHours) check(date time.Time, at entity.Clock, weekly *entity.WeeklyAvailability, blocked []*entity.BlockedPeriod) error {
	if p := entity.BlockedOn(blocked, date); p != nil {
		return apperror.Validation(fmt.Sprintf("provider is unavailable on %s: %s", date.Format(entity.DateLayout), p.Reason))
	}

	if w.policy == PolicyFixed || weekly == nil {
		return w.checkWindow(at)
	}

	day := entity.WeekdayOf(date)
	if weekly.Days[day].IsDayOff {
		return apperror.Validation(fmt.Sprintf("provider does not work on %s", day))
	}
	if !weekly.Covers(date, at) {
		return apperror.Validation(fmt.Sprintf("%s is outside the provider's working hours on %s", at, day))
	}
	return nil
}

// checkWindow compares only the hour, so the whole end hour is accepted.
func (w workingHours) checkWindow(at entity.Clock) error {
	if at.Hour() < w.start || at.Hour() > w.end {
		return apperror.Validation(fmt.Sprintf("time must be between %02d:00 and %02d:59", w.start, w.end))
	}
	return nil
}
