package wire

import (
	"net/http"

	"karigar/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

// wireBooking configures the booking lifecycle routes. Role and ownership
// checks live in the booking service since they depend on the booking itself.
func wireBooking(
	r chi.Router,
	bookingHandler *adaptor.BookingHandler,
	auth func(http.Handler) http.Handler,
) {
	r.Route("/api/bookings", func(r chi.Router) {
		r.Use(auth)

		r.Post("/", bookingHandler.CreateBooking)
		r.Get("/", bookingHandler.ListBookings) // ?status=&from_date=&to_date=&view=
		r.Get("/{id}", bookingHandler.GetBooking)

		r.Put("/{id}/accept", bookingHandler.AcceptBooking)
		r.Put("/{id}/reject", bookingHandler.RejectBooking)
		r.Put("/{id}/reschedule", bookingHandler.RescheduleBooking)
		r.Put("/{id}/complete", bookingHandler.CompleteBooking)
		r.Put("/{id}/cancel", bookingHandler.CancelBooking)
	})
}
