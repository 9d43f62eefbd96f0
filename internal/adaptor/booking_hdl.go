package adaptor

import (
	"net/http"

	"karigar/internal/dto/request"
	"karigar/internal/usecase"
	"karigar/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type BookingHandler struct {
	service usecase.BookingService
	log     *zap.Logger
}

func NewBookingHandler(service usecase.BookingService, log *zap.Logger) *BookingHandler {
	return &BookingHandler{
		service: service,
		log:     log.With(zap.String("handler", "booking")),
	}
}

// CreateBooking handles POST /api/bookings (customer)
func (h *BookingHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentActor(w, r)
	if !ok {
		return
	}

	var req request.CreateBookingRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	booking, err := h.service.RequestBooking(r.Context(), actor, &req)
	if err != nil {
		writeError(h.log, w, err, "create booking")
		return
	}

	utils.ResponseCreated(w, "Booking requested", booking)
}

// ListBookings handles GET /api/bookings. Customers see their own bookings,
// providers the ones addressed to them, admins everything.
func (h *BookingHandler) ListBookings(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentActor(w, r)
	if !ok {
		return
	}

	query := r.URL.Query()
	req := &request.BookingHistoryRequest{
		PaginatedRequest: paginationFromQuery(r),
		Status:           query.Get("status"),
		FromDate:         query.Get("from_date"),
		ToDate:           query.Get("to_date"),
		View:             query.Get("view"),
	}

	bookings, err := h.service.ListBookings(r.Context(), actor, req)
	if err != nil {
		writeError(h.log, w, err, "list bookings")
		return
	}

	utils.ResponseSuccess(w, "success", bookings)
}

// GetBooking handles GET /api/bookings/{id}
func (h *BookingHandler) GetBooking(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentActor(w, r)
	if !ok {
		return
	}

	booking, err := h.service.GetBooking(r.Context(), actor, chi.URLParam(r, "id"))
	if err != nil {
		writeError(h.log, w, err, "get booking")
		return
	}

	utils.ResponseSuccess(w, "success", booking)
}

// AcceptBooking handles PUT /api/bookings/{id}/accept
func (h *BookingHandler) AcceptBooking(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentActor(w, r)
	if !ok {
		return
	}

	booking, err := h.service.AcceptRequest(r.Context(), actor, chi.URLParam(r, "id"))
	if err != nil {
		writeError(h.log, w, err, "accept booking")
		return
	}

	utils.ResponseSuccess(w, "Booking confirmed", booking)
}

// RejectBooking handles PUT /api/bookings/{id}/reject
func (h *BookingHandler) RejectBooking(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentActor(w, r)
	if !ok {
		return
	}

	var req request.RejectBookingRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	booking, err := h.service.RejectRequest(r.Context(), actor, chi.URLParam(r, "id"), &req)
	if err != nil {
		writeError(h.log, w, err, "reject booking")
		return
	}

	utils.ResponseSuccess(w, "Booking rejected", booking)
}

// RescheduleBooking handles PUT /api/bookings/{id}/reschedule
func (h *BookingHandler) RescheduleBooking(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentActor(w, r)
	if !ok {
		return
	}

	var req request.RescheduleBookingRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	booking, err := h.service.RescheduleRequest(r.Context(), actor, chi.URLParam(r, "id"), &req)
	if err != nil {
		writeError(h.log, w, err, "reschedule booking")
		return
	}

	utils.ResponseSuccess(w, "Booking rescheduled", booking)
}

// CompleteBooking handles PUT /api/bookings/{id}/complete
func (h *BookingHandler) CompleteBooking(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentActor(w, r)
	if !ok {
		return
	}

	booking, err := h.service.CompleteRequest(r.Context(), actor, chi.URLParam(r, "id"))
	if err != nil {
		writeError(h.log, w, err, "complete booking")
		return
	}

	utils.ResponseSuccess(w, "Booking completed", booking)
}

// CancelBooking handles PUT /api/bookings/{id}/cancel
func (h *BookingHandler) CancelBooking(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentActor(w, r)
	if !ok {
		return
	}

	booking, err := h.service.CancelRequest(r.Context(), actor, chi.URLParam(r, "id"))
	if err != nil {
		writeError(h.log, w, err, "cancel booking")
		return
	}

	utils.ResponseSuccess(w, "Booking cancelled", booking)
}
