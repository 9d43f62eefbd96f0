package wire

import (
	"net/http"

	"karigar/internal/adaptor"
	"karigar/internal/data/entity"
	"karigar/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireReport(
	r chi.Router,
	reportHandler *adaptor.ReportHandler,
	auth func(http.Handler) http.Handler,
	log *zap.Logger,
) {
	// Any signed-in party of a booking can file a report
	r.With(auth).Post("/api/reports", reportHandler.CreateReport)

	// ==================== ADMIN ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(auth)
		r.Use(middleware.RequireRole(log, string(entity.RoleAdmin)))

		r.Get("/api/admin/reports", reportHandler.ListReports) // ?status=PENDING
		r.Put("/api/admin/reports/{id}/resolve", reportHandler.ResolveReport)
		r.Put("/api/admin/reports/{id}/dismiss", reportHandler.DismissReport)
	})
}
