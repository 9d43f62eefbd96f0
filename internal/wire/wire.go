package wire

import (
	"net/http"

	"karigar/internal/adaptor"
	"karigar/internal/data/repository"
	"karigar/internal/usecase"
	"karigar/pkg/cache"
	"karigar/pkg/metrics"
	"karigar/pkg/middleware"
	"karigar/pkg/utils"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// App holds the wired router and services
type App struct {
	Router  *chi.Mux
	Service *usecase.Service
}

// Wiring builds services, handlers and the router from the shared dependencies
func Wiring(
	repo *repository.Repository,
	config *utils.Config,
	c cache.Cache,
	reg *prometheus.Registry,
	logger *zap.Logger,
) *App {
	m := metrics.New(reg)

	service := usecase.NewService(repo, config, c, m, logger)
	handler := adaptor.NewHandler(service, logger)

	router := setupRouter(handler, service.Auth, config, m, reg, logger)

	return &App{
		Router:  router,
		Service: service,
	}
}

func setupRouter(
	handler *adaptor.Handler,
	verifier middleware.TokenVerifier,
	config *utils.Config,
	m *metrics.Metrics,
	reg *prometheus.Registry,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS())
	r.Use(middleware.Metrics(m))

	auth := middleware.Authenticate(verifier, logger)

	wireAuth(r, handler.Auth, auth, verifier, config, logger)
	wireUser(r, handler.User, auth, logger)
	wireProvider(r, handler.Provider, handler.Catalog, auth, logger)
	wireAvailability(r, handler.Availability, auth, logger)
	wireBooking(r, handler.Booking, auth)
	wireReview(r, handler.Review, auth, logger)
	wireReport(r, handler.Report, auth, logger)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	return r
}
