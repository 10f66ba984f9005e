package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"lodge-booking/internal/data/entity"
	"lodge-booking/internal/data/repository"
	"lodge-booking/internal/dto/request"
	"lodge-booking/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testConfig() *utils.Config {
	return &utils.Config{
		Booking: utils.BookingConfig{
			GraceMinutes:         5,
			SweepIntervalSeconds: 60,
			ConfirmMaxAttempts:   3,
		},
		Auction: utils.AuctionSettings{
			DropIntervalHours: 1,
		},
	}
}

func newTestBookingService(repo *repository.Repository) *bookingService {
	svc := NewBookingService(repo, testConfig(), zap.NewNop()).(*bookingService)
	svc.retryDelay = 0
	svc.now = func() time.Time {
		return time.Date(2026, time.January, 2, 12, 0, 0, 0, time.UTC)
	}
	return svc
}

func testAccommodation(inventory int, weeklyPrice float64) *entity.Accommodation {
	return &entity.Accommodation{
		Base:            entity.Base{ID: uuid.New()},
		Name:            "Fjellstua Cabin",
		Category:        "cabin",
		TotalInventory:  &inventory,
		BaseWeeklyPrice: weeklyPrice,
	}
}

func TestCreateBooking_Success(t *testing.T) {
	m, repo := newMockRepos()
	svc := newTestBookingService(repo)

	accommodation := testAccommodation(2, 700)
	userID := uuid.New()

	m.accommodation.On("FindByID", mock.Anything, accommodation.ID).Return(accommodation, nil)
	m.booking.On("Reserve", mock.Anything, mock.MatchedBy(func(b *entity.Booking) bool {
		return b.Status == entity.BookingStatusPending &&
			*b.AccommodationID == accommodation.ID &&
			b.UserID == userID
	})).Return(nil)
	m.audit.On("Append", mock.Anything, mock.MatchedBy(func(r *entity.AuditRecord) bool {
		return r.Action == entity.AuditActionReserve
	})).Return(nil)

	resp, err := svc.CreateBooking(context.Background(), &request.CreateBookingRequest{
		AccommodationID: accommodation.ID.String(),
		UserID:          userID.String(),
		CheckIn:         "2026-01-05",
		CheckOut:        "2026-01-12",
	})

	require.NoError(t, err)
	assert.Equal(t, entity.BookingStatusPending, resp.Status)
	assert.Equal(t, "Fjellstua Cabin", resp.AccommodationName)
	assert.Equal(t, 7, resp.Nights)
	// 7 January nights: 25% seasonal, 5% duration.
	assert.Equal(t, 498.75, resp.TotalPrice)
	assert.Equal(t, 25.0, resp.SeasonalDiscountPct)
	assert.Equal(t, 5.0, resp.DurationDiscountPct)
	m.booking.AssertExpectations(t)
}

func TestCreateBooking_NoAvailability(t *testing.T) {
	m, repo := newMockRepos()
	svc := newTestBookingService(repo)

	accommodation := testAccommodation(1, 700)
	m.accommodation.On("FindByID", mock.Anything, accommodation.ID).Return(accommodation, nil)
	m.booking.On("Reserve", mock.Anything, mock.Anything).Return(repository.ErrNoAvailability)

	_, err := svc.CreateBooking(context.Background(), &request.CreateBookingRequest{
		AccommodationID: accommodation.ID.String(),
		UserID:          uuid.NewString(),
		CheckIn:         "2026-01-05",
		CheckOut:        "2026-01-12",
	})

	assert.ErrorIs(t, err, repository.ErrNoAvailability)
	m.audit.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
}

func TestCreateBooking_AuctionUnitRejected(t *testing.T) {
	m, repo := newMockRepos()
	svc := newTestBookingService(repo)

	accommodation := testAccommodation(1, 700)
	accommodation.IsInAuction = true
	m.accommodation.On("FindByID", mock.Anything, accommodation.ID).Return(accommodation, nil)

	_, err := svc.CreateBooking(context.Background(), &request.CreateBookingRequest{
		AccommodationID: accommodation.ID.String(),
		UserID:          uuid.NewString(),
		CheckIn:         "2026-01-05",
		CheckOut:        "2026-01-12",
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "sold by auction")
	m.booking.AssertNotCalled(t, "Reserve", mock.Anything, mock.Anything)
}

func TestCreateBooking_InvalidDateRange(t *testing.T) {
	_, repo := newMockRepos()
	svc := newTestBookingService(repo)

	_, err := svc.CreateBooking(context.Background(), &request.CreateBookingRequest{
		AccommodationID: uuid.NewString(),
		UserID:          uuid.NewString(),
		CheckIn:         "2026-01-12",
		CheckOut:        "2026-01-05",
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid date range")
}

func TestCreateBooking_InsufficientCredits(t *testing.T) {
	m, repo := newMockRepos()
	svc := newTestBookingService(repo)

	accommodation := testAccommodation(1, 700)
	userID := uuid.New()
	m.accommodation.On("FindByID", mock.Anything, accommodation.ID).Return(accommodation, nil)
	m.credit.On("FindByUserID", mock.Anything, userID).Return(&entity.CreditAccount{
		UserID:  userID,
		Balance: 10,
	}, nil)

	_, err := svc.CreateBooking(context.Background(), &request.CreateBookingRequest{
		AccommodationID: accommodation.ID.String(),
		UserID:          userID.String(),
		CheckIn:         "2026-01-05",
		CheckOut:        "2026-01-12",
		CreditsToApply:  100,
	})

	assert.ErrorIs(t, err, repository.ErrInsufficientCredit)
	m.booking.AssertNotCalled(t, "Reserve", mock.Anything, mock.Anything)
}

func TestCreateBooking_FreeAccommodationAutoConfirms(t *testing.T) {
	m, repo := newMockRepos()
	svc := newTestBookingService(repo)

	accommodation := testAccommodation(1, 0)
	userID := uuid.New()
	m.accommodation.On("FindByID", mock.Anything, accommodation.ID).Return(accommodation, nil)
	m.booking.On("Reserve", mock.Anything, mock.Anything).Return(nil)
	m.audit.On("Append", mock.Anything, mock.Anything).Return(nil)
	m.booking.On("Confirm", mock.Anything, mock.Anything, mock.MatchedBy(func(ref string) bool {
		return len(ref) > len("zero-cost:") && ref[:len("zero-cost:")] == "zero-cost:"
	}), 0.0).Return(&entity.Booking{
		Base:            entity.Base{ID: uuid.New()},
		AccommodationID: &accommodation.ID,
		UserID:          userID,
		CheckIn:         time.Date(2026, time.January, 5, 0, 0, 0, 0, time.UTC),
		CheckOut:        time.Date(2026, time.January, 12, 0, 0, 0, 0, time.UTC),
		Status:          entity.BookingStatusConfirmed,
	}, nil)

	resp, err := svc.CreateBooking(context.Background(), &request.CreateBookingRequest{
		AccommodationID: accommodation.ID.String(),
		UserID:          userID.String(),
		CheckIn:         "2026-01-05",
		CheckOut:        "2026-01-12",
	})

	require.NoError(t, err)
	assert.Equal(t, entity.BookingStatusConfirmed, resp.Status)
	assert.Equal(t, 0.0, resp.TotalPrice)
	m.booking.AssertExpectations(t)
}

func TestConfirmBooking_Success(t *testing.T) {
	m, repo := newMockRepos()
	svc := newTestBookingService(repo)

	bookingID := uuid.New()
	m.booking.On("Confirm", mock.Anything, bookingID, "pay-123", 498.75).Return(&entity.Booking{
		Base:   entity.Base{ID: bookingID},
		UserID: uuid.New(),
		Status: entity.BookingStatusConfirmed,
	}, nil).Once()

	resp, err := svc.ConfirmBooking(context.Background(), bookingID.String(), &request.ConfirmBookingRequest{
		ExternalPaymentRef: "pay-123",
		Amount:             498.75,
	})

	require.NoError(t, err)
	assert.Equal(t, entity.BookingStatusConfirmed, resp.Status)
	m.booking.AssertExpectations(t)
}

func TestConfirmBooking_TerminalErrorsNotRetried(t *testing.T) {
	terminal := []error{
		repository.ErrNotFound,
		repository.ErrInsufficientCredit,
		repository.ErrPaymentRefMismatch,
		repository.ErrBookingCancelled,
	}

	for _, want := range terminal {
		t.Run(want.Error(), func(t *testing.T) {
			m, repo := newMockRepos()
			svc := newTestBookingService(repo)

			bookingID := uuid.New()
			m.booking.On("Confirm", mock.Anything, bookingID, "pay-123", 100.0).Return(nil, want).Once()

			_, err := svc.ConfirmBooking(context.Background(), bookingID.String(), &request.ConfirmBookingRequest{
				ExternalPaymentRef: "pay-123",
				Amount:             100,
			})

			assert.ErrorIs(t, err, want)
			m.booking.AssertNumberOfCalls(t, "Confirm", 1)
		})
	}
}

func TestConfirmBooking_RetriesThenReconciles(t *testing.T) {
	m, repo := newMockRepos()
	svc := newTestBookingService(repo)

	bookingID := uuid.New()
	m.booking.On("Confirm", mock.Anything, bookingID, "pay-123", 100.0).
		Return(nil, errors.New("deadlock detected")).Times(3)
	m.payment.On("FindByExternalRef", mock.Anything, "pay-123").Return(&entity.Payment{
		Base:      entity.Base{ID: uuid.New()},
		BookingID: bookingID,
		Status:    entity.PaymentStatusCompleted,
	}, nil)
	m.booking.On("FindByID", mock.Anything, bookingID).Return(&entity.Booking{
		Base:   entity.Base{ID: bookingID},
		UserID: uuid.New(),
		Status: entity.BookingStatusConfirmed,
	}, nil)

	resp, err := svc.ConfirmBooking(context.Background(), bookingID.String(), &request.ConfirmBookingRequest{
		ExternalPaymentRef: "pay-123",
		Amount:             100,
	})

	require.NoError(t, err, "a concurrent finalize under the same ref counts as success")
	assert.Equal(t, entity.BookingStatusConfirmed, resp.Status)
	m.booking.AssertExpectations(t)
}

func TestConfirmBooking_EscalatesWhenPaidButNotBooked(t *testing.T) {
	m, repo := newMockRepos()
	svc := newTestBookingService(repo)

	bookingID := uuid.New()
	m.booking.On("Confirm", mock.Anything, bookingID, "pay-123", 100.0).
		Return(nil, errors.New("connection reset")).Times(3)
	m.payment.On("FindByExternalRef", mock.Anything, "pay-123").Return(nil, repository.ErrNotFound)

	_, err := svc.ConfirmBooking(context.Background(), bookingID.String(), &request.ConfirmBookingRequest{
		ExternalPaymentRef: "pay-123",
		Amount:             100,
	})

	assert.ErrorIs(t, err, ErrPaymentSucceededBookingFailed)
	m.booking.AssertNumberOfCalls(t, "Confirm", 3)
}

func TestCancelBooking(t *testing.T) {
	m, repo := newMockRepos()
	svc := newTestBookingService(repo)

	bookingID := uuid.New()
	m.booking.On("Cancel", mock.Anything, bookingID).Return(&entity.Booking{
		Base:    entity.Base{ID: bookingID},
		OrderID: "STAY-20260102-120000-0001",
		UserID:  uuid.New(),
		Status:  entity.BookingStatusCancelled,
	}, nil)

	resp, err := svc.CancelBooking(context.Background(), bookingID.String())

	require.NoError(t, err)
	assert.Equal(t, entity.BookingStatusCancelled, resp.Status)
}

func TestCancelBooking_NotFound(t *testing.T) {
	m, repo := newMockRepos()
	svc := newTestBookingService(repo)

	bookingID := uuid.New()
	m.booking.On("Cancel", mock.Anything, bookingID).Return(nil, repository.ErrNotFound)

	_, err := svc.CancelBooking(context.Background(), bookingID.String())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestGetUserBookings_Paginated(t *testing.T) {
	m, repo := newMockRepos()
	svc := newTestBookingService(repo)

	userID := uuid.New()
	bookings := []*entity.Booking{
		{Base: entity.Base{ID: uuid.New()}, UserID: userID, Status: entity.BookingStatusConfirmed},
		{Base: entity.Base{ID: uuid.New()}, UserID: userID, Status: entity.BookingStatusPending},
	}
	m.booking.On("FindByUserID", mock.Anything, userID, 10, 0).Return(bookings, nil)
	m.booking.On("CountByUserID", mock.Anything, userID).Return(int64(12), nil)

	resp, err := svc.GetUserBookings(context.Background(), userID.String(), &request.PaginatedRequest{
		Page:    1,
		PerPage: 10,
	})

	require.NoError(t, err)
	assert.Len(t, resp.Data, 2)
	assert.Equal(t, int64(12), resp.Pagination.Total)
	assert.Equal(t, 2, resp.Pagination.TotalPages)
}
