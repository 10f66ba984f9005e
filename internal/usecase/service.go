package usecase

import (
	"lodge-booking/internal/data/repository"
	"lodge-booking/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Pricing      PricingService
	Availability AvailabilityService
	Booking      BookingService
	Auction      AuctionService
}

func NewService(repo *repository.Repository, config *utils.Config, logger *zap.Logger) *Service {
	return &Service{
		Pricing:      NewPricingService(logger),
		Availability: NewAvailabilityService(repo, config, logger),
		Booking:      NewBookingService(repo, config, logger),
		Auction:      NewAuctionService(repo, config, logger),
	}
}
