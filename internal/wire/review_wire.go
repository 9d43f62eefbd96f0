package wire

import (
	"net/http"

	"karigar/internal/adaptor"
	"karigar/internal/data/entity"
	"karigar/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireReview(
	r chi.Router,
	reviewHandler *adaptor.ReviewHandler,
	auth func(http.Handler) http.Handler,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	r.Get("/api/services/{id}/reviews", reviewHandler.ListServiceReviews)
	r.Get("/api/providers/{id}/reviews", reviewHandler.ListProviderReviews)

	// ==================== PROTECTED ROUTES ====================
	r.With(auth, middleware.RequireRole(log, string(entity.RoleCustomer))).Post("/api/reviews", reviewHandler.CreateReview)

	// ==================== ADMIN ROUTES ====================
	r.With(auth, middleware.RequireRole(log, string(entity.RoleAdmin))).
		Put("/api/admin/reviews/{id}/visibility", reviewHandler.SetVisibility)
}
