package usecase

import (
	"time"

	"karigar/internal/data/repository"
	"karigar/pkg/cache"
	"karigar/pkg/metrics"
	"karigar/pkg/token"
	"karigar/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth         AuthService
	User         UserService
	Provider     ProviderService
	Catalog      CatalogService
	Booking      BookingService
	Availability AvailabilityService
	Review       ReviewService
	Report       ReportService
}

func NewService(
	repo *repository.Repository,
	config *utils.Config,
	c cache.Cache,
	m *metrics.Metrics,
	log *zap.Logger,
) *Service {
	loc := loadLocation(config.App.Timezone, log)
	tokens := token.NewManager(config.JWT.Secret, time.Duration(config.JWT.ExpiryHours)*time.Hour, config.App.Name)

	return &Service{
		Auth:         NewAuthService(repo, config, tokens, log),
		User:         NewUserService(repo, log),
		Provider:     NewProviderService(repo, log),
		Catalog:      NewCatalogService(repo, log),
		Booking:      NewBookingService(repo, config.WorkingHours, loc, m, log),
		Availability: NewAvailabilityService(repo, c, log),
		Review:       NewReviewService(repo, log),
		Report:       NewReportService(repo, log),
	}
}

// loadLocation resolves the zone bookings are scheduled in. Falls back to UTC.
func loadLocation(name string, log *zap.Logger) *time.Location {
	if name == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		log.Warn("Unknown timezone, using UTC", zap.String("timezone", name), zap.Error(err))
		return time.UTC
	}
	return loc
}
