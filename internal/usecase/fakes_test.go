package usecase

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sort"
	"sync"
	"time"

	"karigar/internal/data/entity"
	"karigar/internal/data/repository"

	"github.com/google/uuid"
)

// In-memory repositories. Every read and write copies so callers never share state.

func page[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return nil
	}
	end := min(offset+limit, len(items))
	return items[offset:end]
}

type fakeUserRepo struct {
	mu       sync.Mutex
	users    map[uuid.UUID]entity.User
	profiles map[uuid.UUID]entity.ProviderProfile
}

func (r *fakeUserRepo) create(u *entity.User) error {
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return fmt.Errorf("create user %s: %w", u.Email, repository.ErrDuplicateKey)
		}
	}
	r.users[u.ID] = *u
	return nil
}

func (r *fakeUserRepo) Create(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.create(u)
}

func (r *fakeUserRepo) CreateProvider(_ context.Context, u *entity.User, p *entity.ProviderProfile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.create(u); err != nil {
		return err
	}
	r.profiles[p.UserID] = *p
	return nil
}

func (r *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) List(_ context.Context, role entity.UserRole, limit, offset int) ([]*entity.User, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var all []*entity.User
	for _, u := range r.users {
		if role == "" || u.Role == role {
			all = append(all, &u)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Email < all[j].Email })
	return page(all, limit, offset), int64(len(all)), nil
}

func (r *fakeUserRepo) SetActive(_ context.Context, id uuid.UUID, active bool, now time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return fmt.Errorf("user %s not found", id)
	}
	u.IsActive = active
	u.UpdatedAt = now
	r.users[id] = u
	return nil
}

// fakeProviderRepo reads through the user fake.
type fakeProviderRepo struct {
	users   *fakeUserRepo
	reviews *fakeReviewRepo
}

func (r *fakeProviderRepo) FindProfile(ctx context.Context, userID uuid.UUID) (*entity.ProviderProfile, error) {
	l, err := r.FindListing(ctx, userID)
	if err != nil || l == nil {
		return nil, err
	}
	return &l.Profile, nil
}

func (r *fakeProviderRepo) UpdateProfile(_ context.Context, p *entity.ProviderProfile) error {
	r.users.mu.Lock()
	defer r.users.mu.Unlock()
	if _, ok := r.users.profiles[p.UserID]; !ok {
		return fmt.Errorf("provider profile %s not found", p.UserID)
	}
	r.users.profiles[p.UserID] = *p
	return nil
}

func (r *fakeProviderRepo) FindListing(_ context.Context, userID uuid.UUID) (*entity.ProviderListing, error) {
	r.users.mu.Lock()
	u, okU := r.users.users[userID]
	p, okP := r.users.profiles[userID]
	r.users.mu.Unlock()
	if !okU || !okP {
		return nil, nil
	}
	avg, count := r.reviews.stats(userID)
	return &entity.ProviderListing{User: u, Profile: p, AverageRating: avg, ReviewCount: count}, nil
}

func (r *fakeProviderRepo) Search(ctx context.Context, f repository.ProviderFilter) ([]*entity.ProviderListing, int64, error) {
	r.users.mu.Lock()
	var ids []uuid.UUID
	for id, u := range r.users.users {
		p, ok := r.users.profiles[id]
		if !ok || !u.IsActive || u.Role != entity.RoleProvider {
			continue
		}
		if f.Category != "" && p.ServiceCategory != f.Category {
			continue
		}
		ids = append(ids, id)
	}
	r.users.mu.Unlock()

	var all []*entity.ProviderListing
	for _, id := range ids {
		l, _ := r.FindListing(ctx, id)
		all = append(all, l)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Profile.BusinessName < all[j].Profile.BusinessName })
	return page(all, f.Limit, f.Offset), int64(len(all)), nil
}

type fakeSessionRepo struct {
	mu       sync.Mutex
	sessions map[string]entity.Session
}

func (r *fakeSessionRepo) Create(_ context.Context, s *entity.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[s.TokenID] = *s
	return nil
}

func (r *fakeSessionRepo) FindValidSession(_ context.Context, tokenID string) (*entity.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[tokenID]
	if !ok || !s.IsValid(time.Now()) {
		return nil, nil
	}
	return &s, nil
}

func (r *fakeSessionRepo) Revoke(_ context.Context, tokenID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[tokenID]
	if !ok || s.RevokedAt != nil {
		return errors.New("session not found or already revoked")
	}
	now := time.Now()
	s.RevokedAt = &now
	r.sessions[tokenID] = s
	return nil
}

func (r *fakeSessionRepo) RevokeAllUserSessions(_ context.Context, userID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	for id, s := range r.sessions {
		if s.UserID == userID && s.RevokedAt == nil {
			s.RevokedAt = &now
			r.sessions[id] = s
		}
	}
	return nil
}

type fakeServiceRepo struct {
	mu       sync.Mutex
	services map[uuid.UUID]entity.Service
}

func (r *fakeServiceRepo) Create(_ context.Context, s *entity.Service) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.services[s.ID] = *s
	return nil
}

func (r *fakeServiceRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Service, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.services[id]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (r *fakeServiceRepo) Update(_ context.Context, s *entity.Service) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.services[s.ID]; !ok {
		return fmt.Errorf("service %s not found", s.ID)
	}
	r.services[s.ID] = *s
	return nil
}

func (r *fakeServiceRepo) ListByProvider(_ context.Context, providerID uuid.UUID, statuses []entity.ServiceStatus) ([]*entity.Service, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Service
	for _, s := range r.services {
		if s.ProviderID == providerID && slices.Contains(statuses, s.Status) {
			out = append(out, &s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

type fakeBookingRepo struct {
	mu       sync.Mutex
	bookings map[uuid.UUID]entity.Booking
}

func (r *fakeBookingRepo) Create(_ context.Context, b *entity.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bookings[b.ID] = *b
	return nil
}

func (r *fakeBookingRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok {
		return nil, nil
	}
	return &b, nil
}

func (r *fakeBookingRepo) Update(_ context.Context, b *entity.Booking, expectedVersion int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.bookings[b.ID]
	if !ok || stored.Version != expectedVersion {
		return fmt.Errorf("update booking %s: %w", b.ID, repository.ErrVersionConflict)
	}
	b.Version = expectedVersion + 1
	r.bookings[b.ID] = *b
	return nil
}

func (r *fakeBookingRepo) List(_ context.Context, f repository.BookingFilter) ([]*entity.Booking, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var all []*entity.Booking
	for _, b := range r.bookings {
		switch {
		case f.CustomerID != uuid.Nil && b.CustomerID != f.CustomerID,
			f.ProviderID != uuid.Nil && b.ProviderID != f.ProviderID,
			f.Status != "" && b.Status != f.Status,
			f.ExcludeRequested && b.Status == entity.BookingStatusRequested,
			f.FromDate != nil && b.ScheduledDate.Before(*f.FromDate),
			f.ToDate != nil && b.ScheduledDate.After(*f.ToDate):
			continue
		}
		all = append(all, &b)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ScheduledDate.After(all[j].ScheduledDate) })
	return page(all, f.Limit, f.Offset), int64(len(all)), nil
}

func (r *fakeBookingRepo) ListActiveByProviderDate(_ context.Context, providerID uuid.UUID, date time.Time) ([]*entity.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Booking
	for _, b := range r.bookings {
		if b.ProviderID == providerID && b.ScheduledDate.Equal(date) && b.Status.IsActive() {
			out = append(out, &b)
		}
	}
	return out, nil
}

type fakeAvailabilityRepo struct {
	mu      sync.Mutex
	weekly  map[uuid.UUID]*entity.WeeklyAvailability
	blocked map[uuid.UUID]entity.BlockedPeriod
}

func (r *fakeAvailabilityRepo) FindWeekly(_ context.Context, providerID uuid.UUID) (*entity.WeeklyAvailability, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	w, ok := r.weekly[providerID]
	if !ok {
		return nil, nil
	}
	return w.Clone(), nil
}

func (r *fakeAvailabilityRepo) SaveWeekly(_ context.Context, w *entity.WeeklyAvailability, expectedVersion int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.weekly[w.ProviderID]
	switch {
	case expectedVersion == 0 && ok,
		expectedVersion != 0 && (!ok || stored.Version != expectedVersion):
		return fmt.Errorf("save availability: %w", repository.ErrVersionConflict)
	}
	w.Version = expectedVersion + 1
	r.weekly[w.ProviderID] = w.Clone()
	return nil
}

func (r *fakeAvailabilityRepo) CreateBlocked(_ context.Context, p *entity.BlockedPeriod) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.blocked[p.ID] = *p
	return nil
}

func (r *fakeAvailabilityRepo) FindBlockedByID(_ context.Context, id uuid.UUID) (*entity.BlockedPeriod, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.blocked[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r *fakeAvailabilityRepo) ListBlocked(_ context.Context, providerID uuid.UUID) ([]*entity.BlockedPeriod, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.BlockedPeriod
	for _, p := range r.blocked {
		if p.ProviderID == providerID {
			out = append(out, &p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartDate.Before(out[j].StartDate) })
	return out, nil
}

func (r *fakeAvailabilityRepo) DeleteBlocked(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.blocked[id]; !ok {
		return fmt.Errorf("delete blocked period %s: %w", id, repository.ErrNotFound)
	}
	delete(r.blocked, id)
	return nil
}

type fakeReviewRepo struct {
	mu      sync.Mutex
	reviews map[uuid.UUID]entity.Review
}

func (r *fakeReviewRepo) stats(providerID uuid.UUID) (float64, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	sum, n := 0, 0
	for _, rv := range r.reviews {
		if rv.ProviderID == providerID && rv.Status == entity.ReviewVisible {
			sum += rv.Rating
			n++
		}
	}
	if n == 0 {
		return 0, 0
	}
	return float64(sum) / float64(n), n
}

func (r *fakeReviewRepo) Create(_ context.Context, rv *entity.Review) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.reviews {
		if existing.BookingID == rv.BookingID {
			return fmt.Errorf("create review: %w", repository.ErrDuplicateKey)
		}
	}
	r.reviews[rv.ID] = *rv
	return nil
}

func (r *fakeReviewRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rv, ok := r.reviews[id]
	if !ok {
		return nil, nil
	}
	return &rv, nil
}

func (r *fakeReviewRepo) FindByBookingID(_ context.Context, bookingID uuid.UUID) (*entity.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, rv := range r.reviews {
		if rv.BookingID == bookingID {
			return &rv, nil
		}
	}
	return nil, nil
}

func (r *fakeReviewRepo) List(_ context.Context, f repository.ReviewFilter) ([]*entity.Review, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var all []*entity.Review
	for _, rv := range r.reviews {
		switch {
		case f.ServiceID != uuid.Nil && rv.ServiceID != f.ServiceID,
			f.ProviderID != uuid.Nil && rv.ProviderID != f.ProviderID,
			f.OnlyVisible && rv.Status != entity.ReviewVisible:
			continue
		}
		all = append(all, &rv)
	}
	return page(all, f.Limit, f.Offset), int64(len(all)), nil
}

func (r *fakeReviewRepo) UpdateStatus(_ context.Context, id uuid.UUID, status entity.ReviewStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	rv, ok := r.reviews[id]
	if !ok {
		return fmt.Errorf("review %s not found", id)
	}
	rv.Status = status
	r.reviews[id] = rv
	return nil
}

type fakeReportRepo struct {
	mu      sync.Mutex
	reports map[uuid.UUID]entity.Report
}

func (r *fakeReportRepo) Create(_ context.Context, rp *entity.Report) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reports[rp.ID] = *rp
	return nil
}

func (r *fakeReportRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Report, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rp, ok := r.reports[id]
	if !ok {
		return nil, nil
	}
	return &rp, nil
}

func (r *fakeReportRepo) List(_ context.Context, status entity.ReportStatus, limit, offset int) ([]*entity.Report, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var all []*entity.Report
	for _, rp := range r.reports {
		if status == "" || rp.Status == status {
			all = append(all, &rp)
		}
	}
	return page(all, limit, offset), int64(len(all)), nil
}

func (r *fakeReportRepo) UpdateStatus(_ context.Context, rp *entity.Report) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.reports[rp.ID]
	if !ok || stored.Status != entity.ReportPending {
		return fmt.Errorf("update report: %w", repository.ErrVersionConflict)
	}
	r.reports[rp.ID] = *rp
	return nil
}

type fakes struct {
	users        *fakeUserRepo
	sessions     *fakeSessionRepo
	services     *fakeServiceRepo
	bookings     *fakeBookingRepo
	availability *fakeAvailabilityRepo
	reviews      *fakeReviewRepo
	reports      *fakeReportRepo
}

func newFakeRepository() (*repository.Repository, *fakes) {
	f := &fakes{
		users:        &fakeUserRepo{users: map[uuid.UUID]entity.User{}, profiles: map[uuid.UUID]entity.ProviderProfile{}},
		sessions:     &fakeSessionRepo{sessions: map[string]entity.Session{}},
		services:     &fakeServiceRepo{services: map[uuid.UUID]entity.Service{}},
		bookings:     &fakeBookingRepo{bookings: map[uuid.UUID]entity.Booking{}},
		availability: &fakeAvailabilityRepo{weekly: map[uuid.UUID]*entity.WeeklyAvailability{}, blocked: map[uuid.UUID]entity.BlockedPeriod{}},
		reviews:      &fakeReviewRepo{reviews: map[uuid.UUID]entity.Review{}},
		reports:      &fakeReportRepo{reports: map[uuid.UUID]entity.Report{}},
	}
	return &repository.Repository{
		User:         f.users,
		Provider:     &fakeProviderRepo{users: f.users, reviews: f.reviews},
		Session:      f.sessions,
		Service:      f.services,
		Booking:      f.bookings,
		Availability: f.availability,
		Review:       f.reviews,
		Report:       f.reports,
	}, f
}
