package wire

import (
	"lodge-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wirePricing(r chi.Router, pricingHandler *adaptor.PricingHandler) {
	// POST /api/pricing/quote - Price a stay without reserving it
	r.Post("/api/pricing/quote", pricingHandler.Quote)
}
