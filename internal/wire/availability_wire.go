package wire

import (
	"net/http"

	"karigar/internal/adaptor"
	"karigar/internal/data/entity"
	"karigar/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireAvailability(
	r chi.Router,
	availabilityHandler *adaptor.AvailabilityHandler,
	auth func(http.Handler) http.Handler,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	r.Get("/api/providers/{id}/availability", availabilityHandler.GetAvailability)
	r.Get("/api/providers/{id}/open-slots", availabilityHandler.ListOpenSlots) // ?date=2025-06-09

	// ==================== PROVIDER ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(auth)
		r.Use(middleware.RequireRole(log, string(entity.RoleProvider)))

		r.Post("/api/provider/availability/{day}/slots", availabilityHandler.AddSlot)
		r.Delete("/api/provider/availability/{day}/slots/{slotId}", availabilityHandler.DeleteSlot)
		r.Put("/api/provider/availability/{day}/day-off", availabilityHandler.ToggleDayOff)

		r.Post("/api/provider/blocked-periods", availabilityHandler.AddBlockedPeriod)
		r.Delete("/api/provider/blocked-periods/{id}", availabilityHandler.DeleteBlockedPeriod)
	})
}
