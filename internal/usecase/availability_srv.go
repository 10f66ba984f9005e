package usecase

import (
	"context"
	"fmt"
	"time"

	"lodge-booking/internal/data/repository"
	"lodge-booking/internal/dto/request"
	"lodge-booking/internal/dto/response"
	"lodge-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AvailabilityService interface {
	// GetAvailability is the display read: eventually consistent, safe to
	// call outside any transaction. The authoritative check happens again
	// inside the reservation transaction.
	GetAvailability(ctx context.Context, req *request.AvailabilityRequest) ([]response.AvailabilityResponse, error)
}

type availabilityService struct {
	repo  *repository.Repository
	grace time.Duration
	log   *zap.Logger
	now   func() time.Time
}

func NewAvailabilityService(repo *repository.Repository, config *utils.Config, log *zap.Logger) AvailabilityService {
	return &availabilityService{
		repo:  repo,
		grace: time.Duration(config.Booking.GraceMinutes) * time.Minute,
		log:   log.With(zap.String("service", "availability")),
		now:   time.Now,
	}
}

func (s *availabilityService) GetAvailability(ctx context.Context, req *request.AvailabilityRequest) ([]response.AvailabilityResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Availability validation failed", zap.Any("errors", errs))
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
	if !checkIn.Before(checkOut) {
		return nil, fmt.Errorf("invalid date range: check-in %s is not before check-out %s", req.CheckIn, req.CheckOut)
	}

	ids := make([]uuid.UUID, len(req.AccommodationIDs))
	for i, idStr := range req.AccommodationIDs {
		id, err := uuid.Parse(idStr)
		if err != nil {
			return nil, fmt.Errorf("invalid accommodation ID format %s: %w", idStr, err)
		}
		ids[i] = id
	}

	accommodations, err := s.repo.Accommodation.FindByIDs(ctx, ids)
	if err != nil {
		s.log.Error("Failed to load accommodations", zap.Error(err))
		return nil, fmt.Errorf("load accommodations: %w", err)
	}

	// Pending holds older than the grace window are hidden from display
	// reads; they still block the authoritative in-transaction check until
	// the sweeper cancels them. Better to briefly show "sold out" than to
	// oversell.
	pendingSince := s.now().Add(-s.grace)

	results := make([]response.AvailabilityResponse, 0, len(accommodations))
	for _, accommodation := range accommodations {
		result := response.AvailabilityResponse{
			AccommodationID: accommodation.ID.String(),
		}

		switch {
		case accommodation.IsInAuction:
			// Auction units are bought, not reserved.
			result.IsAvailable = false

		case accommodation.Unlimited():
			result.IsAvailable = true
			result.Unlimited = true

		default:
			held, err := s.repo.Booking.CountOverlappingLive(ctx, accommodation.ID, checkIn, checkOut, pendingSince)
			if err != nil {
				return nil, fmt.Errorf("count holds for %s: %w", accommodation.ID.String(), err)
			}

			capacity := *accommodation.TotalInventory - held
			if capacity < 0 {
				capacity = 0
			}
			result.AvailableCapacity = capacity
			result.IsAvailable = capacity > 0
		}

		results = append(results, result)
	}

	return results, nil
}
