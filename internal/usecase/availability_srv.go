package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"karigar/internal/data/entity"
	"karigar/internal/data/repository"
	"karigar/internal/dto/request"
	"karigar/internal/dto/response"
	"karigar/pkg/apperror"
	"karigar/pkg/cache"
	"karigar/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AvailabilityService interface {
	// Public
	GetAvailability(ctx context.Context, providerID string) (*response.AvailabilityResponse, error)
	ListOpenSlots(ctx context.Context, providerID, date string) (*response.OpenSlotsResponse, error)

	// Provider owns their own schedule
	AddSlot(ctx context.Context, actor utils.Actor, day string, req *request.AddSlotRequest) (*entity.TimeSlot, error)
	DeleteSlot(ctx context.Context, actor utils.Actor, day, slotID string) error
	ToggleDayOff(ctx context.Context, actor utils.Actor, day string) (*response.DayOffResponse, error)
	AddBlockedPeriod(ctx context.Context, actor utils.Actor, req *request.BlockedPeriodRequest) (*response.BlockedPeriodResponse, error)
	DeleteBlockedPeriod(ctx context.Context, actor utils.Actor, periodID string) error
}

type availabilityService struct {
	repo  *repository.Repository
	cache cache.Cache
	now   func() time.Time
	log   *zap.Logger
}

func NewAvailabilityService(repo *repository.Repository, c cache.Cache, log *zap.Logger) AvailabilityService {
	if c == nil {
		c = cache.Noop{}
	}
	return &availabilityService{
		repo:  repo,
		cache: c,
		now:   time.Now,
		log:   log.With(zap.String("service", "availability")),
	}
}

func (s *availabilityService) findProvider(ctx context.Context, providerID string) (uuid.UUID, error) {
	id, err := parseID(providerID, "provider")
	if err != nil {
		return uuid.Nil, err
	}
	user, err := s.repo.User.FindByID(ctx, id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("find provider: %w", err)
	}
	if user == nil || user.Role != entity.RoleProvider || !user.IsActive {
		return uuid.Nil, apperror.NotFound("provider")
	}
	return id, nil
}

// weekly returns the stored schedule, or the default template with isDefault set.
func (s *availabilityService) weekly(ctx context.Context, providerID uuid.UUID) (*entity.WeeklyAvailability, bool, error) {
	w, err := s.repo.Availability.FindWeekly(ctx, providerID)
	if err != nil {
		return nil, false, fmt.Errorf("find availability: %w", err)
	}
	if w == nil {
		return entity.DefaultWeeklyAvailability(providerID), true, nil
	}
	return w, false, nil
}

func (s *availabilityService) GetAvailability(ctx context.Context, providerID string) (*response.AvailabilityResponse, error) {
	id, err := s.findProvider(ctx, providerID)
	if err != nil {
		return nil, err
	}

	key := cache.AvailabilityKey(id.String())
	var cached response.AvailabilityResponse
	if ok, err := s.cache.Get(ctx, key, &cached); err != nil {
		s.log.Warn("Availability cache read failed", zap.Error(err), zap.String("provider_id", providerID))
	} else if ok {
		return &cached, nil
	}

	w, isDefault, err := s.weekly(ctx, id)
	if err != nil {
		return nil, err
	}
	blocked, err := s.repo.Availability.ListBlocked(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("list blocked periods: %w", err)
	}

	resp := response.AvailabilityToResponse(w, blocked, isDefault)
	if err := s.cache.Set(ctx, key, resp); err != nil {
		s.log.Warn("Availability cache write failed", zap.Error(err), zap.String("provider_id", providerID))
	}
	return &resp, nil
}

func (s *availabilityService) ListOpenSlots(ctx context.Context, providerID, date string) (*response.OpenSlotsResponse, error) {
	id, err := s.findProvider(ctx, providerID)
	if err != nil {
		return nil, err
	}
	day, err := entity.ParseDate(date)
	if err != nil {
		return nil, err
	}

	resp := &response.OpenSlotsResponse{
		ProviderID: id.String(),
		Date:       day.Format(entity.DateLayout),
		Day:        entity.WeekdayOf(day),
		Slots:      []response.OpenSlotResponse{},
	}

	blocked, err := s.repo.Availability.ListBlocked(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("list blocked periods: %w", err)
	}
	if p := entity.BlockedOn(blocked, day); p != nil {
		resp.BlockedBy = &p.Reason
		return resp, nil
	}

	w, _, err := s.weekly(ctx, id)
	if err != nil {
		return nil, err
	}
	slots := w.SlotsOn(day)
	if len(slots) == 0 {
		return resp, nil
	}

	bookings, err := s.repo.Booking.ListActiveByProviderDate(ctx, id, day)
	if err != nil {
		return nil, fmt.Errorf("list active bookings: %w", err)
	}
	booked, err := s.bookedIntervals(ctx, bookings)
	if err != nil {
		return nil, err
	}

	for _, slot := range slots {
		start, err1 := entity.ParseClock(slot.Start)
		end, err2 := entity.ParseClock(slot.End)
		if err1 != nil || err2 != nil {
			continue
		}
		taken := false
		for _, iv := range booked {
			if iv.start < end && iv.end > start {
				taken = true
				break
			}
		}
		resp.Slots = append(resp.Slots, response.OpenSlotResponse{
			ID:    slot.ID,
			Start: slot.Start,
			End:   slot.End,
			Taken: taken,
		})
	}

	return resp, nil
}

type interval struct {
	start, end entity.Clock
}

// bookedIntervals turns active bookings into [start, start+duration) ranges
// using the duration of the booked service. A booking whose service can no
// longer be found only occupies its start minute.
func (s *availabilityService) bookedIntervals(ctx context.Context, bookings []*entity.Booking) ([]interval, error) {
	durations := make(map[uuid.UUID]int)
	out := make([]interval, 0, len(bookings))
	for _, b := range bookings {
		start, err := entity.ParseClock(b.ScheduledTime)
		if err != nil {
			continue
		}

		minutes, ok := durations[b.ServiceID]
		if !ok {
			svc, err := s.repo.Service.FindByID(ctx, b.ServiceID)
			if err != nil {
				return nil, fmt.Errorf("find booked service: %w", err)
			}
			if svc != nil {
				minutes = svc.DurationMinutes
			}
			durations[b.ServiceID] = minutes
		}
		if minutes < 1 {
			minutes = 1
		}

		out = append(out, interval{start: start, end: start + entity.Clock(minutes)})
	}
	return out, nil
}

// updateWeekly applies fn to a copy of the provider's schedule and stores it
// with a version check.
func (s *availabilityService) updateWeekly(ctx context.Context, providerID uuid.UUID, fn func(w *entity.WeeklyAvailability) error) error {
	current, err := s.repo.Availability.FindWeekly(ctx, providerID)
	if err != nil {
		return fmt.Errorf("find availability: %w", err)
	}

	expected := 0
	if current == nil {
		current = entity.DefaultWeeklyAvailability(providerID)
	} else {
		expected = current.Version
	}

	next := current.Clone()
	if err := fn(next); err != nil {
		return err
	}
	next.UpdatedAt = s.now()

	if err := s.repo.Availability.SaveWeekly(ctx, next, expected); err != nil {
		if errors.Is(err, repository.ErrVersionConflict) {
			s.log.Warn("Concurrent availability update", zap.String("provider_id", providerID.String()))
			return apperror.ErrConcurrentOperation
		}
		s.log.Error("Failed to save availability", zap.Error(err), zap.String("provider_id", providerID.String()))
		return fmt.Errorf("save availability: %w", err)
	}

	s.invalidate(ctx, providerID)
	return nil
}

func (s *availabilityService) invalidate(ctx context.Context, providerID uuid.UUID) {
	if err := s.cache.Delete(ctx, cache.AvailabilityKey(providerID.String())); err != nil {
		s.log.Warn("Availability cache invalidation failed", zap.Error(err), zap.String("provider_id", providerID.String()))
	}
}

func (s *availabilityService) AddSlot(ctx context.Context, actor utils.Actor, day string, req *request.AddSlotRequest) (*entity.TimeSlot, error) {
	if err := validateRequest(s.log, "Add slot", req); err != nil {
		return nil, err
	}
	if err := requireRole(actor, entity.RoleProvider); err != nil {
		return nil, err
	}
	weekday, err := entity.ParseWeekday(day)
	if err != nil {
		return nil, err
	}

	var slot entity.TimeSlot
	err = s.updateWeekly(ctx, actor.UserID, func(w *entity.WeeklyAvailability) error {
		var err error
		slot, err = w.AddSlot(weekday, req.Start, req.End)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("Time slot added",
		zap.String("provider_id", actor.UserID.String()),
		zap.String("day", string(weekday)),
		zap.String("start", slot.Start),
		zap.String("end", slot.End),
	)
	return &slot, nil
}

func (s *availabilityService) DeleteSlot(ctx context.Context, actor utils.Actor, day, slotID string) error {
	if err := requireRole(actor, entity.RoleProvider); err != nil {
		return err
	}
	weekday, err := entity.ParseWeekday(day)
	if err != nil {
		return err
	}

	return s.updateWeekly(ctx, actor.UserID, func(w *entity.WeeklyAvailability) error {
		return w.DeleteSlot(weekday, slotID)
	})
}

func (s *availabilityService) ToggleDayOff(ctx context.Context, actor utils.Actor, day string) (*response.DayOffResponse, error) {
	if err := requireRole(actor, entity.RoleProvider); err != nil {
		return nil, err
	}
	weekday, err := entity.ParseWeekday(day)
	if err != nil {
		return nil, err
	}

	var off bool
	err = s.updateWeekly(ctx, actor.UserID, func(w *entity.WeeklyAvailability) error {
		off = w.ToggleDayOff(weekday)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &response.DayOffResponse{Day: weekday, IsDayOff: off}, nil
}

func (s *availabilityService) AddBlockedPeriod(ctx context.Context, actor utils.Actor, req *request.BlockedPeriodRequest) (*response.BlockedPeriodResponse, error) {
	if err := validateRequest(s.log, "Add blocked period", req); err != nil {
		return nil, err
	}
	if err := requireRole(actor, entity.RoleProvider); err != nil {
		return nil, err
	}

	start, err := entity.ParseDate(req.StartDate)
	if err != nil {
		return nil, err
	}
	end, err := entity.ParseDate(req.EndDate)
	if err != nil {
		return nil, err
	}

	period, err := entity.NewBlockedPeriod(actor.UserID, start, end, req.Reason, s.now())
	if err != nil {
		return nil, err
	}

	if err := s.repo.Availability.CreateBlocked(ctx, period); err != nil {
		return nil, fmt.Errorf("create blocked period: %w", err)
	}
	s.invalidate(ctx, actor.UserID)

	s.log.Info("Blocked period added",
		zap.String("provider_id", actor.UserID.String()),
		zap.String("start", req.StartDate),
		zap.String("end", req.EndDate),
	)

	resp := response.BlockedPeriodToResponse(period)
	return &resp, nil
}

func (s *availabilityService) DeleteBlockedPeriod(ctx context.Context, actor utils.Actor, periodID string) error {
	if err := requireRole(actor, entity.RoleProvider); err != nil {
		return err
	}
	id, err := parseID(periodID, "blocked period")
	if err != nil {
		return err
	}

	period, err := s.repo.Availability.FindBlockedByID(ctx, id)
	if err != nil {
		return fmt.Errorf("find blocked period: %w", err)
	}
	if period == nil {
		return apperror.NotFound("blocked period")
	}
	if period.ProviderID != actor.UserID {
		return apperror.Forbidden("blocked period belongs to another provider")
	}

	if err := s.repo.Availability.DeleteBlocked(ctx, id); err != nil {
		// removed by a concurrent request after the ownership check
		if errors.Is(err, repository.ErrNotFound) {
			return apperror.NotFound("blocked period")
		}
		return fmt.Errorf("delete blocked period: %w", err)
	}
	s.invalidate(ctx, actor.UserID)
	return nil
}
