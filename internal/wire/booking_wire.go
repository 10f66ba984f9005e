package wire

import (
	"lodge-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireBooking(r chi.Router, bookingHandler *adaptor.BookingHandler) {
	// POST /api/booking - Reserve a stay (pending, held for the grace window)
	r.Post("/api/booking", bookingHandler.CreateBooking)

	// POST /api/booking/{id}/confirm - Confirm a pending booking with payment
	r.Post("/api/booking/{id}/confirm", bookingHandler.ConfirmBooking)

	// PUT /api/booking/{id}/cancel - Cancel a booking
	r.Put("/api/booking/{id}/cancel", bookingHandler.CancelBooking)

	// GET /api/booking/{id} - Booking details
	r.Get("/api/booking/{id}", bookingHandler.GetBookingByID)

	// GET /api/user/{userId}/bookings - Booking history
	r.Get("/api/user/{userId}/bookings", bookingHandler.GetUserBookings)
}
