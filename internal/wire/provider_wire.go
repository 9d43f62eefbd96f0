package wire

import (
	"net/http"

	"karigar/internal/adaptor"
	"karigar/internal/data/entity"
	"karigar/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// wireProvider configures discovery and the provider's own profile and catalog
func wireProvider(
	r chi.Router,
	providerHandler *adaptor.ProviderHandler,
	catalogHandler *adaptor.CatalogHandler,
	auth func(http.Handler) http.Handler,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	r.Get("/api/providers", providerHandler.SearchProviders)
	r.Get("/api/providers/{id}", providerHandler.GetProvider)
	r.Get("/api/providers/{id}/services", catalogHandler.ListProviderServices)

	// ==================== PROVIDER ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(auth)
		r.Use(middleware.RequireRole(log, string(entity.RoleProvider)))

		r.Put("/api/provider/profile", providerHandler.UpdateProfile)

		r.Get("/api/provider/services", catalogHandler.ListMyServices)
		r.Post("/api/provider/services", catalogHandler.CreateService)
		r.Put("/api/provider/services/{id}", catalogHandler.UpdateService)
		r.Delete("/api/provider/services/{id}", catalogHandler.DeleteService)
	})
}
