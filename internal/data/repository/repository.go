package repository

import (
	"karigar/pkg/database"

	"github.com/Masterminds/squirrel"
	"go.uber.org/zap"
)

// psql builds postgres flavoured statements for the dynamic list queries.
var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

type Repository struct {
	User         UserRepository
	Provider     ProviderRepository
	Session      SessionRepository
	Service      ServiceRepository
	Booking      BookingRepository
	Availability AvailabilityRepository
	Review       ReviewRepository
	Report       ReportRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		User:         NewUserRepository(db, log),
		Provider:     NewProviderRepository(db, log),
		Session:      NewSessionRepository(db, log),
		Service:      NewServiceRepository(db, log),
		Booking:      NewBookingRepository(db, log),
		Availability: NewAvailabilityRepository(db, log),
		Review:       NewReviewRepository(db, log),
		Report:       NewReportRepository(db, log),
	}
}

// scanner is satisfied by both pgx.Row and pgx.Rows.
type scanner interface {
	Scan(dest ...any) error
}
