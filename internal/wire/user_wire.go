package wire

import (
	"net/http"

	"karigar/internal/adaptor"
	"karigar/internal/data/entity"
	"karigar/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// wireUser configures profile and admin user management routes
func wireUser(
	r chi.Router,
	userHandler *adaptor.UserHandler,
	auth func(http.Handler) http.Handler,
	log *zap.Logger,
) {
	r.With(auth).Get("/api/users/me", userHandler.GetProfile)

	// ==================== ADMIN ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(auth)
		r.Use(middleware.RequireRole(log, string(entity.RoleAdmin)))

		r.Get("/api/admin/users", userHandler.ListUsers)                      // ?role=&page=&per_page=
		r.Put("/api/admin/users/{id}/deactivate", userHandler.DeactivateUser) // soft deactivate
	})
}
