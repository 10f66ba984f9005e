package wire

import (
	"lodge-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireAuction(r chi.Router, auctionHandler *adaptor.AuctionHandler) {
	// GET /api/auction/{id}/price - Current auction price (optional ?at=RFC3339)
	r.Get("/api/auction/{id}/price", auctionHandler.GetPrice)

	// POST /api/auction/{id}/purchase - Buy at the current price, first caller wins
	r.Post("/api/auction/{id}/purchase", auctionHandler.Purchase)
}
