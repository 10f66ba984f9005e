package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"lodge-booking/internal/data/repository"
	"lodge-booking/internal/dto/request"
	"lodge-booking/internal/dto/response"
	"lodge-booking/internal/pricing"
	"lodge-booking/pkg/metrics"
	"lodge-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AuctionService interface {
	// GetPrice recomputes the current price from config and the clock. The
	// result a client displays is only a prediction; the sale price is the
	// one recomputed inside Purchase.
	GetPrice(ctx context.Context, accommodationID string, at *time.Time) (*response.AuctionPriceResponse, error)

	Purchase(ctx context.Context, accommodationID string, req *request.PurchaseAuctionRequest) (*response.PurchaseResponse, error)
}

type auctionService struct {
	repo *repository.Repository
	// fallbackDropHours is used when the stored config has no interval.
	fallbackDropHours int
	log               *zap.Logger
	now               func() time.Time
}

func NewAuctionService(repo *repository.Repository, config *utils.Config, log *zap.Logger) AuctionService {
	fallback := config.Auction.DropIntervalHours
	if fallback < 1 {
		fallback = 1
	}
	return &auctionService{
		repo:              repo,
		fallbackDropHours: fallback,
		log:               log.With(zap.String("service", "auction")),
		now:               time.Now,
	}
}

func (s *auctionService) GetPrice(ctx context.Context, accommodationID string, at *time.Time) (*response.AuctionPriceResponse, error) {
	id, err := uuid.Parse(accommodationID)
	if err != nil {
		return nil, fmt.Errorf("invalid accommodation ID format %s: %w", accommodationID, err)
	}

	accommodation, err := s.repo.Accommodation.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("accommodation %s not found", accommodationID)
		}
		return nil, fmt.Errorf("load accommodation: %w", err)
	}
	if !accommodation.IsInAuction || accommodation.AuctionStart == nil || accommodation.AuctionFloor == nil {
		return nil, repository.ErrNotAuctionItem
	}

	resp := &response.AuctionPriceResponse{
		AccommodationID: accommodation.ID.String(),
		StartPrice:      *accommodation.AuctionStart,
		FloorPrice:      *accommodation.AuctionFloor,
	}
	if accommodation.AuctionTier != nil {
		resp.Tier = *accommodation.AuctionTier
	}

	if accommodation.Sold() {
		resp.Sold = true
		resp.CurrentPrice = *accommodation.PurchasePrice
		resp.At = *accommodation.PurchasedAt
		return resp, nil
	}

	queryTime := s.now()
	if at != nil {
		queryTime = *at
	}

	price, err := s.currentPrice(ctx, accommodation.AuctionStart, accommodation.AuctionFloor, queryTime)
	if err != nil {
		return nil, err
	}

	resp.CurrentPrice = price
	resp.At = queryTime

	// Refresh the display cache opportunistically; a failure here never
	// fails the read.
	if err := s.repo.Accommodation.RefreshAuctionPrice(ctx, id, price); err != nil {
		s.log.Debug("Auction price cache refresh failed",
			zap.Error(err),
			zap.String("accommodation_id", accommodationID),
		)
	}

	return resp, nil
}

// Purchase recomputes the authoritative price at the transaction instant and
// attaches the buyer with a compare-and-swap. Losing the race is an expected
// outcome, reported as ErrAlreadySold.
func (s *auctionService) Purchase(ctx context.Context, accommodationID string, req *request.PurchaseAuctionRequest) (*response.PurchaseResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Purchase validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	id, err := uuid.Parse(accommodationID)
	if err != nil {
		return nil, fmt.Errorf("invalid accommodation ID format %s: %w", accommodationID, err)
	}
	buyerID, err := uuid.Parse(req.UserID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID format %s: %w", req.UserID, err)
	}

	accommodation, err := s.repo.Accommodation.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("accommodation %s not found", accommodationID)
		}
		return nil, fmt.Errorf("load accommodation: %w", err)
	}
	if !accommodation.IsInAuction || accommodation.AuctionStart == nil || accommodation.AuctionFloor == nil {
		return nil, repository.ErrNotAuctionItem
	}
	if accommodation.Sold() {
		metrics.IncAuctionPurchase("already_sold")
		return nil, repository.ErrAlreadySold
	}

	now := s.now()
	price, err := s.currentPrice(ctx, accommodation.AuctionStart, accommodation.AuctionFloor, now)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Accommodation.Purchase(ctx, id, buyerID, price, now); err != nil {
		if errors.Is(err, repository.ErrAlreadySold) {
			metrics.IncAuctionPurchase("already_sold")
			s.log.Info("Auction purchase lost race",
				zap.String("accommodation_id", accommodationID),
				zap.String("buyer_id", req.UserID),
			)
			return nil, err
		}
		metrics.IncAuctionPurchase("error")
		s.log.Error("Failed to purchase auction item",
			zap.Error(err),
			zap.String("accommodation_id", accommodationID),
			zap.String("buyer_id", req.UserID),
		)
		return nil, err
	}
	metrics.IncAuctionPurchase("won")

	s.log.Info("Auction item purchased",
		zap.String("accommodation_id", accommodationID),
		zap.String("buyer_id", req.UserID),
		zap.Float64("price", price),
	)

	return &response.PurchaseResponse{
		AccommodationID: accommodationID,
		BuyerID:         req.UserID,
		PurchasePrice:   price,
		PurchasedAt:     now,
	}, nil
}

func (s *auctionService) currentPrice(ctx context.Context, startPrice, floorPrice *float64, at time.Time) (float64, error) {
	config, err := s.repo.AuctionConfig.FindActive(ctx)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return 0, fmt.Errorf("no active auction config: %w", err)
		}
		return 0, fmt.Errorf("load auction config: %w", err)
	}

	interval := config.DropIntervalHours
	if interval < 1 {
		interval = s.fallbackDropHours
	}

	return pricing.AuctionPrice(*startPrice, *floorPrice, config.StartTime, config.EndTime, interval, at), nil
}
