package usecase

import (
	"context"
	"fmt"

	"lodge-booking/internal/dto/request"
	"lodge-booking/internal/dto/response"
	"lodge-booking/internal/pricing"
	"lodge-booking/pkg/utils"

	"go.uber.org/zap"
)

type PricingService interface {
	Quote(ctx context.Context, req *request.PricingQuoteRequest) (*response.PricingQuoteResponse, error)
}

type pricingService struct {
	log *zap.Logger
}

func NewPricingService(log *zap.Logger) PricingService {
	return &pricingService{
		log: log.With(zap.String("service", "pricing")),
	}
}

func (s *pricingService) Quote(ctx context.Context, req *request.PricingQuoteRequest) (*response.PricingQuoteResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Pricing quote validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	checkIn, err := utils.ParseDate(req.CheckIn)
	if err != nil {
		return nil, fmt.Errorf("invalid check-in date %s: %w", req.CheckIn, err)
	}
	checkOut, err := utils.ParseDate(req.CheckOut)
	if err != nil {
		return nil, fmt.Errorf("invalid check-out date %s: %w", req.CheckOut, err)
	}

	quote := pricing.Compute(req.BaseWeeklyPrice, checkIn, checkOut, req.Category)

	return &response.PricingQuoteResponse{
		TotalPrice:          quote.TotalPrice,
		WeeklyPrice:         quote.WeeklyPrice,
		NightlyRate:         quote.NightlyRate,
		Nights:              quote.Nights,
		SeasonalDiscountPct: quote.SeasonalPct,
		DurationDiscountPct: quote.DurationPct,
		CombinedDiscountPct: quote.CombinedPct,
	}, nil
}
