package adaptor

import (
	"lodge-booking/internal/usecase"

	"go.uber.org/zap"
)

type Handler struct {
	Availability *AvailabilityHandler
	Booking      *BookingHandler
	Auction      *AuctionHandler
	Pricing      *PricingHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Availability: NewAvailabilityHandler(service.Availability, log),
		Booking:      NewBookingHandler(service.Booking, log),
		Auction:      NewAuctionHandler(service.Auction, log),
		Pricing:      NewPricingHandler(service.Pricing, log),
	}
}
