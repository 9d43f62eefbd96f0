package usecase

import (
	"context"
	"testing"
	"time"

	"karigar/internal/data/entity"
	"karigar/internal/data/repository"
	"karigar/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var testNow = time.Date(2025, 5, 30, 10, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return testNow }

type fixture struct {
	t    *testing.T
	repo *repository.Repository
	f    *fakes
	log  *zap.Logger
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	repo, f := newFakeRepository()
	return &fixture{t: t, repo: repo, f: f, log: zap.NewNop()}
}

func (fx *fixture) bookingService(policy string) *bookingService {
	svc := NewBookingService(fx.repo, utils.WorkingHoursConfig{Policy: policy, Start: 9, End: 21}, time.UTC, nil, fx.log)
	s := svc.(*bookingService)
	s.now = fixedClock
	return s
}

func (fx *fixture) availabilityService() *availabilityService {
	s := NewAvailabilityService(fx.repo, nil, fx.log).(*availabilityService)
	s.now = fixedClock
	return s
}

func (fx *fixture) seedUser(role entity.UserRole, email string) utils.Actor {
	fx.t.Helper()
	u := &entity.User{
		Base:     entity.NewBase(testNow),
		Name:     string(role) + " user",
		Email:    email,
		Role:     role,
		City:     "Lahore",
		IsActive: true,
	}
	if role == entity.RoleProvider {
		require.NoError(fx.t, fx.f.users.CreateProvider(context.Background(), u, &entity.ProviderProfile{
			UserID:          u.ID,
			BusinessName:    "Fix It " + email,
			ServiceCategory: entity.CategoryPlumbing,
			Address:         "12 Mall Road",
			City:            "Lahore",
			AcceptedTerms:   true,
		}))
	} else {
		require.NoError(fx.t, fx.f.users.Create(context.Background(), u))
	}
	return utils.Actor{UserID: u.ID, Role: string(role), TokenID: uuid.NewString()}
}

func (fx *fixture) seedService(provider utils.Actor, price float64) *entity.Service {
	fx.t.Helper()
	s := &entity.Service{
		Base:            entity.NewBase(testNow),
		ProviderID:      provider.UserID,
		Name:            "Pipe repair",
		Category:        entity.CategoryPlumbing,
		Description:     "Leaks and blockages",
		BasePrice:       price,
		PricingType:     entity.PricingFixed,
		DurationMinutes: 60,
		Status:          entity.ServiceStatusActive,
	}
	require.NoError(fx.t, fx.f.services.Create(context.Background(), s))
	return s
}

// seedBooking stores a booking directly, bypassing request validation.
func (fx *fixture) seedBooking(customer, provider utils.Actor, status entity.BookingStatus, date, at string) *entity.Booking {
	fx.t.Helper()
	d, err := entity.ParseDate(date)
	require.NoError(fx.t, err)
	b := &entity.Booking{
		Base:          entity.NewBase(testNow),
		Reference:     utils.GenerateBookingRef(testNow),
		CustomerID:    customer.UserID,
		ProviderID:    provider.UserID,
		ServiceID:     uuid.New(),
		ServiceName:   "Pipe repair",
		ScheduledDate: d,
		ScheduledTime: at,
		Location:      "House 4, Street 9",
		Price:         1500,
		Status:        status,
		Version:       1,
	}
	require.NoError(fx.t, fx.f.bookings.Create(context.Background(), b))
	return b
}
