package usecase

import (
	"context"
	"testing"
	"time"

	"lodge-booking/internal/data/entity"
	"lodge-booking/internal/data/repository"
	"lodge-booking/internal/dto/request"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestAuctionService(repo *repository.Repository, now time.Time) *auctionService {
	svc := NewAuctionService(repo, testConfig(), zap.NewNop()).(*auctionService)
	svc.now = func() time.Time { return now }
	return svc
}

func auctionAccommodation(start, floor float64) *entity.Accommodation {
	tier := "gold"
	return &entity.Accommodation{
		Base:         entity.Base{ID: uuid.New()},
		Name:         "Summit Lodge",
		IsInAuction:  true,
		AuctionTier:  &tier,
		AuctionStart: &start,
		AuctionFloor: &floor,
	}
}

func activeAuctionConfig(start time.Time, days, intervalHours int) *entity.AuctionConfig {
	return &entity.AuctionConfig{
		ID:                uuid.New(),
		StartTime:         start,
		EndTime:           start.AddDate(0, 0, days),
		DropIntervalHours: intervalHours,
		IsActive:          true,
	}
}

func TestGetPrice_MidAuction(t *testing.T) {
	auctionStart := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	now := auctionStart.AddDate(0, 0, 15)

	m, repo := newMockRepos()
	svc := newTestAuctionService(repo, now)

	accommodation := auctionAccommodation(15000, 3000)
	m.accommodation.On("FindByID", mock.Anything, accommodation.ID).Return(accommodation, nil)
	m.auctionConfig.On("FindActive", mock.Anything).Return(activeAuctionConfig(auctionStart, 30, 1), nil)
	m.accommodation.On("RefreshAuctionPrice", mock.Anything, accommodation.ID, mock.Anything).Return(nil)

	resp, err := svc.GetPrice(context.Background(), accommodation.ID.String(), nil)

	require.NoError(t, err)
	assert.False(t, resp.Sold)
	assert.Equal(t, "gold", resp.Tier)
	assert.InDelta(t, 9000, resp.CurrentPrice, 0.01, "halfway through a linear decay")
	assert.Equal(t, now, resp.At)
}

func TestGetPrice_ExplicitTimestamp(t *testing.T) {
	auctionStart := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)

	m, repo := newMockRepos()
	svc := newTestAuctionService(repo, auctionStart)

	accommodation := auctionAccommodation(15000, 3000)
	m.accommodation.On("FindByID", mock.Anything, accommodation.ID).Return(accommodation, nil)
	m.auctionConfig.On("FindActive", mock.Anything).Return(activeAuctionConfig(auctionStart, 30, 1), nil)
	m.accommodation.On("RefreshAuctionPrice", mock.Anything, accommodation.ID, mock.Anything).Return(nil)

	at := auctionStart.AddDate(0, 0, 40)
	resp, err := svc.GetPrice(context.Background(), accommodation.ID.String(), &at)

	require.NoError(t, err)
	assert.Equal(t, 3000.0, resp.CurrentPrice, "past the window the price is the floor")
	assert.Equal(t, at, resp.At)
}

func TestGetPrice_SoldItemReturnsPurchasePrice(t *testing.T) {
	m, repo := newMockRepos()
	svc := newTestAuctionService(repo, time.Now())

	accommodation := auctionAccommodation(15000, 3000)
	buyerID := uuid.New()
	price := 8500.0
	purchasedAt := time.Date(2026, time.March, 10, 9, 30, 0, 0, time.UTC)
	accommodation.BuyerID = &buyerID
	accommodation.PurchasePrice = &price
	accommodation.PurchasedAt = &purchasedAt

	m.accommodation.On("FindByID", mock.Anything, accommodation.ID).Return(accommodation, nil)

	resp, err := svc.GetPrice(context.Background(), accommodation.ID.String(), nil)

	require.NoError(t, err)
	assert.True(t, resp.Sold)
	assert.Equal(t, 8500.0, resp.CurrentPrice)
	assert.Equal(t, purchasedAt, resp.At)
	m.auctionConfig.AssertNotCalled(t, "FindActive", mock.Anything)
}

func TestGetPrice_NotAuctionItem(t *testing.T) {
	m, repo := newMockRepos()
	svc := newTestAuctionService(repo, time.Now())

	accommodation := testAccommodation(1, 700)
	m.accommodation.On("FindByID", mock.Anything, accommodation.ID).Return(accommodation, nil)

	_, err := svc.GetPrice(context.Background(), accommodation.ID.String(), nil)

	assert.ErrorIs(t, err, repository.ErrNotAuctionItem)
}

func TestGetPrice_CacheRefreshFailureDoesNotFailRead(t *testing.T) {
	auctionStart := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)

	m, repo := newMockRepos()
	svc := newTestAuctionService(repo, auctionStart.AddDate(0, 0, 1))

	accommodation := auctionAccommodation(15000, 3000)
	m.accommodation.On("FindByID", mock.Anything, accommodation.ID).Return(accommodation, nil)
	m.auctionConfig.On("FindActive", mock.Anything).Return(activeAuctionConfig(auctionStart, 30, 1), nil)
	m.accommodation.On("RefreshAuctionPrice", mock.Anything, accommodation.ID, mock.Anything).
		Return(assert.AnError)

	_, err := svc.GetPrice(context.Background(), accommodation.ID.String(), nil)

	assert.NoError(t, err)
}

func TestPurchase_Won(t *testing.T) {
	auctionStart := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	now := auctionStart.AddDate(0, 0, 15)

	m, repo := newMockRepos()
	svc := newTestAuctionService(repo, now)

	accommodation := auctionAccommodation(15000, 3000)
	buyerID := uuid.New()

	m.accommodation.On("FindByID", mock.Anything, accommodation.ID).Return(accommodation, nil)
	m.auctionConfig.On("FindActive", mock.Anything).Return(activeAuctionConfig(auctionStart, 30, 1), nil)
	m.accommodation.On("Purchase", mock.Anything, accommodation.ID, buyerID, mock.MatchedBy(func(p float64) bool {
		return p > 8999 && p < 9001
	}), now).Return(nil)

	resp, err := svc.Purchase(context.Background(), accommodation.ID.String(), &request.PurchaseAuctionRequest{
		UserID: buyerID.String(),
	})

	require.NoError(t, err)
	assert.Equal(t, buyerID.String(), resp.BuyerID)
	assert.InDelta(t, 9000, resp.PurchasePrice, 0.01)
	assert.Equal(t, now, resp.PurchasedAt)
	m.accommodation.AssertExpectations(t)
}

func TestPurchase_AlreadySoldPreCheck(t *testing.T) {
	m, repo := newMockRepos()
	svc := newTestAuctionService(repo, time.Now())

	accommodation := auctionAccommodation(15000, 3000)
	buyerID := uuid.New()
	price := 7000.0
	soldAt := time.Now()
	accommodation.BuyerID = &buyerID
	accommodation.PurchasePrice = &price
	accommodation.PurchasedAt = &soldAt

	m.accommodation.On("FindByID", mock.Anything, accommodation.ID).Return(accommodation, nil)

	_, err := svc.Purchase(context.Background(), accommodation.ID.String(), &request.PurchaseAuctionRequest{
		UserID: uuid.NewString(),
	})

	assert.ErrorIs(t, err, repository.ErrAlreadySold)
	m.accommodation.AssertNotCalled(t, "Purchase", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestPurchase_LostRace(t *testing.T) {
	auctionStart := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	now := auctionStart.AddDate(0, 0, 15)

	m, repo := newMockRepos()
	svc := newTestAuctionService(repo, now)

	accommodation := auctionAccommodation(15000, 3000)
	m.accommodation.On("FindByID", mock.Anything, accommodation.ID).Return(accommodation, nil)
	m.auctionConfig.On("FindActive", mock.Anything).Return(activeAuctionConfig(auctionStart, 30, 1), nil)
	m.accommodation.On("Purchase", mock.Anything, accommodation.ID, mock.Anything, mock.Anything, now).
		Return(repository.ErrAlreadySold)

	_, err := svc.Purchase(context.Background(), accommodation.ID.String(), &request.PurchaseAuctionRequest{
		UserID: uuid.NewString(),
	})

	assert.ErrorIs(t, err, repository.ErrAlreadySold)
}

func TestPurchase_NoActiveConfig(t *testing.T) {
	m, repo := newMockRepos()
	svc := newTestAuctionService(repo, time.Now())

	accommodation := auctionAccommodation(15000, 3000)
	m.accommodation.On("FindByID", mock.Anything, accommodation.ID).Return(accommodation, nil)
	m.auctionConfig.On("FindActive", mock.Anything).Return(nil, repository.ErrNotFound)

	_, err := svc.Purchase(context.Background(), accommodation.ID.String(), &request.PurchaseAuctionRequest{
		UserID: uuid.NewString(),
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no active auction config")
}
