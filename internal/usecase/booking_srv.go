package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"karigar/internal/data/entity"
	"karigar/internal/data/repository"
	"karigar/internal/dto/request"
	"karigar/internal/dto/response"
	"karigar/pkg/apperror"
	"karigar/pkg/metrics"
	"karigar/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type BookingService interface {
	// Customer
	RequestBooking(ctx context.Context, actor utils.Actor, req *request.CreateBookingRequest) (*response.BookingResponse, error)

	// Owning provider
	AcceptRequest(ctx context.Context, actor utils.Actor, bookingID string) (*response.BookingResponse, error)
	RejectRequest(ctx context.Context, actor utils.Actor, bookingID string, req *request.RejectBookingRequest) (*response.BookingResponse, error)
	RescheduleRequest(ctx context.Context, actor utils.Actor, bookingID string, req *request.RescheduleBookingRequest) (*response.BookingResponse, error)
	CompleteRequest(ctx context.Context, actor utils.Actor, bookingID string) (*response.BookingResponse, error)
	CancelRequest(ctx context.Context, actor utils.Actor, bookingID string) (*response.BookingResponse, error)

	// Any party of the booking, or admin
	GetBooking(ctx context.Context, actor utils.Actor, bookingID string) (*response.BookingResponse, error)
	ListBookings(ctx context.Context, actor utils.Actor, req *request.BookingHistoryRequest) (*response.PaginatedResponse[response.BookingResponse], error)
}

type bookingService struct {
	repo    *repository.Repository
	hours   workingHours
	loc     *time.Location
	metrics *metrics.Metrics
	now     func() time.Time
	log     *zap.Logger
}

func NewBookingService(
	repo *repository.Repository,
	hours utils.WorkingHoursConfig,
	loc *time.Location,
	m *metrics.Metrics,
	log *zap.Logger,
) BookingService {
	if loc == nil {
		loc = time.UTC
	}
	return &bookingService{
		repo:    repo,
		hours:   newWorkingHours(hours),
		loc:     loc,
		metrics: m,
		now:     time.Now,
		log:     log.With(zap.String("service", "booking")),
	}
}

func (s *bookingService) RequestBooking(ctx context.Context, actor utils.Actor, req *request.CreateBookingRequest) (*response.BookingResponse, error) {
	// 1. Validate request shape
	if err := validateRequest(s.log, "Create booking", req); err != nil {
		return nil, err
	}

	// 2. Only customers create requests
	if err := requireRole(actor, entity.RoleCustomer); err != nil {
		return nil, err
	}

	providerID, err := parseID(req.ProviderID, "provider")
	if err != nil {
		return nil, err
	}
	serviceID, err := parseID(req.ServiceID, "service")
	if err != nil {
		return nil, err
	}
	date, err := entity.ParseDate(req.ScheduledDate)
	if err != nil {
		return nil, err
	}
	at, err := entity.ParseClock(req.ScheduledTime)
	if err != nil {
		return nil, err
	}

	// 3. Requested time must be ahead of now
	now := s.now()
	if !entity.At(date, at, s.loc).After(now) {
		return nil, apperror.Validation("scheduled date and time must be in the future")
	}

	// 4. Service must be bookable and offered by this provider
	service, err := s.repo.Service.FindByID(ctx, serviceID)
	if err != nil {
		return nil, fmt.Errorf("find service: %w", err)
	}
	if service == nil || !service.IsBookable() || service.ProviderID != providerID {
		return nil, apperror.NotFound("service")
	}

	// 5. Provider account must still be active
	provider, err := s.repo.User.FindByID(ctx, providerID)
	if err != nil {
		return nil, fmt.Errorf("find provider: %w", err)
	}
	if provider == nil || !provider.IsActive || provider.Role != entity.RoleProvider {
		return nil, apperror.NotFound("provider")
	}

	// 6. Snapshot the service so later catalog edits do not change the booking
	var notes *string
	if req.Notes != nil {
		if n := strings.TrimSpace(*req.Notes); n != "" {
			notes = &n
		}
	}
	booking := &entity.Booking{
		Base:            entity.NewBase(now),
		Reference:       utils.GenerateBookingRef(now),
		CustomerID:      actor.UserID,
		ProviderID:      providerID,
		ServiceID:       service.ID,
		ServiceName:     service.Name,
		ServiceCategory: service.Category,
		PricingType:     service.PricingType,
		ScheduledDate:   date,
		ScheduledTime:   at.String(),
		Location:        strings.TrimSpace(req.Location),
		Price:           service.BasePrice,
		Notes:           notes,
		Status:          entity.BookingStatusRequested,
		Version:         1,
	}

	// 7. Save
	if err := s.repo.Booking.Create(ctx, booking); err != nil {
		s.log.Error("Failed to create booking",
			zap.Error(err),
			zap.String("customer_id", actor.UserID.String()),
			zap.String("service_id", req.ServiceID),
		)
		return nil, fmt.Errorf("create booking: %w", err)
	}

	s.log.Info("Booking requested",
		zap.String("booking_id", booking.ID.String()),
		zap.String("reference", booking.Reference),
		zap.String("customer_id", actor.UserID.String()),
		zap.String("provider_id", providerID.String()),
		zap.Float64("price", booking.Price),
	)

	resp := response.BookingToResponse(booking)
	return &resp, nil
}

func (s *bookingService) AcceptRequest(ctx context.Context, actor utils.Actor, bookingID string) (*response.BookingResponse, error) {
	return s.mutate(ctx, actor, bookingID, entity.ActionAccept, func(_ context.Context, b *entity.Booking) error {
		return b.Accept(s.now(), s.loc)
	})
}

func (s *bookingService) RejectRequest(ctx context.Context, actor utils.Actor, bookingID string, req *request.RejectBookingRequest) (*response.BookingResponse, error) {
	if err := validateRequest(s.log, "Reject booking", req); err != nil {
		return nil, err
	}
	return s.mutate(ctx, actor, bookingID, entity.ActionReject, func(_ context.Context, b *entity.Booking) error {
		return b.Reject(req.Reason, s.now())
	})
}

func (s *bookingService) RescheduleRequest(ctx context.Context, actor utils.Actor, bookingID string, req *request.RescheduleBookingRequest) (*response.BookingResponse, error) {
	if err := validateRequest(s.log, "Reschedule booking", req); err != nil {
		return nil, err
	}
	date, err := entity.ParseDate(req.Date)
	if err != nil {
		return nil, err
	}
	at, err := entity.ParseClock(req.Time)
	if err != nil {
		return nil, err
	}

	return s.mutate(ctx, actor, bookingID, entity.ActionReschedule, func(ctx context.Context, b *entity.Booking) error {
		if !b.Can(entity.ActionReschedule) {
			return apperror.InvalidTransition("cannot %s booking in status %s", entity.ActionReschedule, b.Status)
		}

		now := s.now()
		if !entity.At(date, at, s.loc).After(now) {
			return apperror.Validation("new date and time must be in the future")
		}

		weekly, err := s.repo.Availability.FindWeekly(ctx, b.ProviderID)
		if err != nil {
			return fmt.Errorf("load availability: %w", err)
		}
		blocked, err := s.repo.Availability.ListBlocked(ctx, b.ProviderID)
		if err != nil {
			return fmt.Errorf("load blocked periods: %w", err)
		}
		if err := s.hours.check(date, at, weekly, blocked); err != nil {
			return err
		}

		return b.Reschedule(date, at, now)
	})
}

func (s *bookingService) CompleteRequest(ctx context.Context, actor utils.Actor, bookingID string) (*response.BookingResponse, error) {
	return s.mutate(ctx, actor, bookingID, entity.ActionComplete, func(_ context.Context, b *entity.Booking) error {
		return b.Complete(s.now())
	})
}

func (s *bookingService) CancelRequest(ctx context.Context, actor utils.Actor, bookingID string) (*response.BookingResponse, error) {
	return s.mutate(ctx, actor, bookingID, entity.ActionCancel, func(_ context.Context, b *entity.Booking) error {
		return b.Cancel(s.now())
	})
}

// mutate runs one provider operation: capability check, load, apply on a
// copy, versioned store. A lost race is reported against the fresh state.
func (s *bookingService) mutate(
	ctx context.Context,
	actor utils.Actor,
	bookingID string,
	action entity.BookingAction,
	apply func(ctx context.Context, b *entity.Booking) error,
) (resp *response.BookingResponse, err error) {
	defer func() { s.observe(action, err) }()

	// 1. Role
	if err := requireRole(actor, entity.RoleProvider); err != nil {
		return nil, err
	}

	id, err := parseID(bookingID, "booking")
	if err != nil {
		return nil, err
	}

	// 2. Load
	current, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find booking: %w", err)
	}
	if current == nil {
		return nil, apperror.NotFound("booking")
	}

	// 3. Ownership
	if current.ProviderID != actor.UserID {
		s.log.Warn("Provider tried to modify foreign booking",
			zap.String("booking_id", bookingID),
			zap.String("provider_id", actor.UserID.String()),
			zap.String("action", string(action)),
		)
		return nil, apperror.Forbidden("booking belongs to another provider")
	}

	// 4. Transition on a copy
	next := *current
	if err := apply(ctx, &next); err != nil {
		return nil, err
	}

	// 5. Store only if nobody changed it meanwhile
	if err := s.repo.Booking.Update(ctx, &next, current.Version); err != nil {
		if errors.Is(err, repository.ErrVersionConflict) {
			return nil, s.resolveConflict(ctx, id, action)
		}
		s.log.Error("Failed to update booking", zap.Error(err), zap.String("booking_id", bookingID))
		return nil, fmt.Errorf("update booking: %w", err)
	}

	s.log.Info("Booking updated",
		zap.String("booking_id", bookingID),
		zap.String("action", string(action)),
		zap.String("from", string(current.Status)),
		zap.String("to", string(next.Status)),
	)

	r := response.BookingToResponse(&next)
	return &r, nil
}

func (s *bookingService) resolveConflict(ctx context.Context, id uuid.UUID, action entity.BookingAction) error {
	fresh, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("reload booking: %w", err)
	}
	if fresh == nil {
		return apperror.NotFound("booking")
	}
	if !fresh.Can(action) {
		return apperror.InvalidTransition("cannot %s booking in status %s", action, fresh.Status)
	}
	s.log.Warn("Concurrent booking update", zap.String("booking_id", id.String()), zap.String("action", string(action)))
	return apperror.ErrConcurrentOperation
}

func (s *bookingService) observe(action entity.BookingAction, err error) {
	outcome := "ok"
	if err != nil {
		outcome = apperror.KindOf(err).String()
	}
	s.metrics.ObserveTransition(string(action), outcome)
}

func (s *bookingService) GetBooking(ctx context.Context, actor utils.Actor, bookingID string) (*response.BookingResponse, error) {
	id, err := parseID(bookingID, "booking")
	if err != nil {
		return nil, err
	}

	booking, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find booking: %w", err)
	}
	if booking == nil {
		return nil, apperror.NotFound("booking")
	}

	switch {
	case isRole(actor, entity.RoleAdmin):
	case isRole(actor, entity.RoleCustomer) && booking.CustomerID == actor.UserID:
	case isRole(actor, entity.RoleProvider) && booking.ProviderID == actor.UserID:
	default:
		return nil, apperror.Forbidden("not a party of this booking")
	}

	resp := response.BookingToResponse(booking)
	return &resp, nil
}

func (s *bookingService) ListBookings(ctx context.Context, actor utils.Actor, req *request.BookingHistoryRequest) (*response.PaginatedResponse[response.BookingResponse], error) {
	if err := validateRequest(s.log, "List bookings", req); err != nil {
		return nil, err
	}
	req.Normalize()

	filter := repository.BookingFilter{
		Status:           entity.BookingStatus(req.Status),
		ExcludeRequested: req.View == "history",
		Limit:            req.Limit(),
		Offset:           req.Offset(),
	}

	// Scope by role
	switch entity.UserRole(actor.Role) {
	case entity.RoleCustomer:
		filter.CustomerID = actor.UserID
	case entity.RoleProvider:
		filter.ProviderID = actor.UserID
	case entity.RoleAdmin:
	default:
		return nil, apperror.Forbidden("unknown role")
	}

	if req.FromDate != "" {
		from, err := entity.ParseDate(req.FromDate)
		if err != nil {
			return nil, err
		}
		filter.FromDate = &from
	}
	if req.ToDate != "" {
		to, err := entity.ParseDate(req.ToDate)
		if err != nil {
			return nil, err
		}
		filter.ToDate = &to
	}
	if filter.FromDate != nil && filter.ToDate != nil && filter.ToDate.Before(*filter.FromDate) {
		return nil, apperror.Validation("to_date must not be before from_date")
	}

	bookings, total, err := s.repo.Booking.List(ctx, filter)
	if err != nil {
		s.log.Error("Failed to list bookings", zap.Error(err), zap.String("user_id", actor.UserID.String()))
		return nil, fmt.Errorf("list bookings: %w", err)
	}

	items := make([]response.BookingResponse, len(bookings))
	for i, b := range bookings {
		items[i] = response.BookingToResponse(b)
	}

	return response.NewPaginatedResponse(items, req.Page, req.PerPage, total), nil
}
