package wire

import (
	"lodge-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireAvailability(r chi.Router, availabilityHandler *adaptor.AvailabilityHandler) {
	// GET /api/availability?ids=a,b&check_in=2026-01-01&check_out=2026-01-08
	r.Get("/api/availability", availabilityHandler.GetAvailability)
}
