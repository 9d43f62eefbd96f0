package adaptor

import (
	"net/http"

	"karigar/internal/dto/request"
	"karigar/internal/usecase"
	"karigar/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type AvailabilityHandler struct {
	service usecase.AvailabilityService
	log     *zap.Logger
}

func NewAvailabilityHandler(service usecase.AvailabilityService, log *zap.Logger) *AvailabilityHandler {
	return &AvailabilityHandler{
		service: service,
		log:     log.With(zap.String("handler", "availability")),
	}
}

// GetAvailability handles GET /api/providers/{id}/availability (public)
func (h *AvailabilityHandler) GetAvailability(w http.ResponseWriter, r *http.Request) {
	availability, err := h.service.GetAvailability(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(h.log, w, err, "get availability")
		return
	}

	utils.ResponseSuccess(w, "success", availability)
}

// ListOpenSlots handles GET /api/providers/{id}/open-slots?date=YYYY-MM-DD (public)
func (h *AvailabilityHandler) ListOpenSlots(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		utils.ResponseBadRequest(w, "Query parameter date is required", nil)
		return
	}

	slots, err := h.service.ListOpenSlots(r.Context(), chi.URLParam(r, "id"), date)
	if err != nil {
		writeError(h.log, w, err, "list open slots")
		return
	}

	utils.ResponseSuccess(w, "success", slots)
}

// AddSlot handles POST /api/provider/availability/{day}/slots
func (h *AvailabilityHandler) AddSlot(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentActor(w, r)
	if !ok {
		return
	}

	var req request.AddSlotRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	slot, err := h.service.AddSlot(r.Context(), actor, chi.URLParam(r, "day"), &req)
	if err != nil {
		writeError(h.log, w, err, "add slot")
		return
	}

	utils.ResponseCreated(w, "Time slot added", slot)
}

// DeleteSlot handles DELETE /api/provider/availability/{day}/slots/{slotId}
func (h *AvailabilityHandler) DeleteSlot(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentActor(w, r)
	if !ok {
		return
	}

	if err := h.service.DeleteSlot(r.Context(), actor, chi.URLParam(r, "day"), chi.URLParam(r, "slotId")); err != nil {
		writeError(h.log, w, err, "delete slot")
		return
	}

	utils.ResponseSuccess(w, "Time slot removed", nil)
}

// ToggleDayOff handles PUT /api/provider/availability/{day}/day-off
func (h *AvailabilityHandler) ToggleDayOff(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentActor(w, r)
	if !ok {
		return
	}

	resp, err := h.service.ToggleDayOff(r.Context(), actor, chi.URLParam(r, "day"))
	if err != nil {
		writeError(h.log, w, err, "toggle day off")
		return
	}

	utils.ResponseSuccess(w, "Day updated", resp)
}

// AddBlockedPeriod handles POST /api/provider/blocked-periods
func (h *AvailabilityHandler) AddBlockedPeriod(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentActor(w, r)
	if !ok {
		return
	}

	var req request.BlockedPeriodRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	period, err := h.service.AddBlockedPeriod(r.Context(), actor, &req)
	if err != nil {
		writeError(h.log, w, err, "add blocked period")
		return
	}

	utils.ResponseCreated(w, "Blocked period added", period)
}

// DeleteBlockedPeriod handles DELETE /api/provider/blocked-periods/{id}
func (h *AvailabilityHandler) DeleteBlockedPeriod(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentActor(w, r)
	if !ok {
		return
	}

	if err := h.service.DeleteBlockedPeriod(r.Context(), actor, chi.URLParam(r, "id")); err != nil {
		writeError(h.log, w, err, "delete blocked period")
		return
	}

	utils.ResponseSuccess(w, "Blocked period removed", nil)
}
