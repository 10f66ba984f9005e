package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"lodge-booking/internal/data/entity"
	"lodge-booking/internal/data/repository"
	"lodge-booking/internal/dto/request"
	"lodge-booking/internal/dto/response"
	"lodge-booking/internal/pricing"
	"lodge-booking/pkg/metrics"
	"lodge-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrPaymentSucceededBookingFailed marks the most dangerous failure in the
// system: money moved but the booking could not be confirmed even after
// retries and reconciliation. It must reach an operator, never a log filter.
var ErrPaymentSucceededBookingFailed = errors.New("payment succeeded but booking confirmation failed")

type BookingService interface {
	CreateBooking(ctx context.Context, req *request.CreateBookingRequest) (*response.BookingResponse, error)
	ConfirmBooking(ctx context.Context, bookingID string, req *request.ConfirmBookingRequest) (*response.BookingResponse, error)
	CancelBooking(ctx context.Context, bookingID string) (*response.BookingResponse, error)
	GetBookingByID(ctx context.Context, bookingID string) (*response.BookingResponse, error)
	GetUserBookings(ctx context.Context, userID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error)
}

type bookingService struct {
	repo            *repository.Repository
	confirmAttempts int
	log             *zap.Logger
	now             func() time.Time
	// retryDelay is the pause between confirm attempts.
	retryDelay time.Duration
}

func NewBookingService(repo *repository.Repository, config *utils.Config, log *zap.Logger) BookingService {
	attempts := config.Booking.ConfirmMaxAttempts
	if attempts < 1 {
		attempts = 1
	}
	return &bookingService{
		repo:            repo,
		confirmAttempts: attempts,
		log:             log.With(zap.String("service", "booking")),
		now:             time.Now,
		retryDelay:      200 * time.Millisecond,
	}
}

func (s *bookingService) CreateBooking(ctx context.Context, req *request.CreateBookingRequest) (*response.BookingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create booking validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID format %s: %w", req.UserID, err)
	}
	accommodationID, err := uuid.Parse(req.AccommodationID)
	if err != nil {
		return nil, fmt.Errorf("invalid accommodation ID format %s: %w", req.AccommodationID, err)
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

	accommodation, err := s.repo.Accommodation.FindByID(ctx, accommodationID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("accommodation %s not found", req.AccommodationID)
		}
		return nil, fmt.Errorf("load accommodation: %w", err)
	}
	if accommodation.IsInAuction {
		return nil, fmt.Errorf("cannot reserve accommodation %s: it is sold by auction", req.AccommodationID)
	}

	// Price is computed server-side from the stored base rate; the client
	// never supplies a price.
	quote := pricing.Compute(accommodation.BaseWeeklyPrice, checkIn, checkOut, accommodation.Category)

	credits := req.CreditsToApply
	if credits > 0 {
		account, err := s.repo.Credit.FindByUserID(ctx, userID)
		if err != nil {
			return nil, fmt.Errorf("load credit account: %w", err)
		}
		if account.Balance < credits {
			return nil, repository.ErrInsufficientCredit
		}
		if credits > quote.TotalPrice {
			credits = quote.TotalPrice
		}
	}

	now := s.now()
	booking := &entity.Booking{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		OrderID:         utils.GenerateOrderID(),
		AccommodationID: &accommodationID,
		UserID:          userID,
		CheckIn:         checkIn,
		CheckOut:        checkOut,
		Status:          entity.BookingStatusPending,
		TotalPrice:      pricing.Round2(quote.TotalPrice - credits),
		BasePrice:       quote.TotalPrice,
		SeasonalPct:     quote.SeasonalPct,
		DurationPct:     quote.DurationPct,
		CreditsApplied:  credits,
	}

	if err := s.repo.Booking.Reserve(ctx, booking); err != nil {
		if errors.Is(err, repository.ErrNoAvailability) {
			metrics.IncReservation("rejected")
			s.log.Info("Reservation rejected, no availability",
				zap.String("accommodation_id", req.AccommodationID),
				zap.String("user_id", req.UserID),
				zap.String("check_in", req.CheckIn),
				zap.String("check_out", req.CheckOut),
			)
			return nil, err
		}
		metrics.IncReservation("error")
		s.log.Error("Failed to reserve booking",
			zap.Error(err),
			zap.String("accommodation_id", req.AccommodationID),
			zap.String("user_id", req.UserID),
		)
		return nil, fmt.Errorf("reserve booking: %w", err)
	}
	metrics.IncReservation("created")

	if err := s.repo.Audit.Append(ctx, &entity.AuditRecord{
		BaseSimple:      entity.BaseSimple{ID: uuid.New(), CreatedAt: now},
		AccommodationID: &accommodationID,
		BookingID:       &booking.ID,
		ActorID:         userID,
		Action:          entity.AuditActionReserve,
		Price:           booking.TotalPrice,
	}); err != nil {
		// The hold itself is already committed; the trail gap is logged
		// inside the repository.
		s.log.Warn("Reserve audit append failed", zap.String("booking_id", booking.ID.String()))
	}

	// Zero-cost bookings (free accommodations or fully covered by credits)
	// skip the payment round-trip and confirm immediately.
	if booking.TotalPrice == 0 {
		confirmed, err := s.repo.Booking.Confirm(ctx, booking.ID, "zero-cost:"+booking.OrderID, 0)
		if err != nil {
			s.log.Error("Failed to auto-confirm zero-cost booking",
				zap.Error(err),
				zap.String("booking_id", booking.ID.String()),
			)
			return nil, fmt.Errorf("auto-confirm zero-cost booking: %w", err)
		}
		booking = confirmed
	}

	s.log.Info("Booking created",
		zap.String("booking_id", booking.ID.String()),
		zap.String("order_id", booking.OrderID),
		zap.String("user_id", req.UserID),
		zap.String("status", string(booking.Status)),
		zap.Float64("total_price", booking.TotalPrice),
	)

	return s.buildBookingResponse(ctx, booking, accommodation.Name), nil
}

// ConfirmBooking finalises a booking against a verified external payment.
// The repository transaction is idempotent, so retrying here is safe. If
// every attempt fails, reconciliation checks whether a concurrent finalize
// (webhook path) already landed before escalating: payment succeeded but
// booking failed is never reported quietly.
func (s *bookingService) ConfirmBooking(ctx context.Context, bookingID string, req *request.ConfirmBookingRequest) (*response.BookingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Confirm booking validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	id, err := uuid.Parse(bookingID)
	if err != nil {
		return nil, fmt.Errorf("invalid booking ID format %s: %w", bookingID, err)
	}

	var lastErr error
	for attempt := 1; attempt <= s.confirmAttempts; attempt++ {
		booking, err := s.repo.Booking.Confirm(ctx, id, req.ExternalPaymentRef, req.Amount)
		if err == nil {
			s.log.Info("Booking confirmed",
				zap.String("booking_id", bookingID),
				zap.String("external_ref", req.ExternalPaymentRef),
				zap.Int("attempt", attempt),
			)
			return s.buildBookingResponse(ctx, booking, ""), nil
		}

		// Caller errors and terminal states are not transient; retrying
		// them would just repeat the rejection.
		if errors.Is(err, repository.ErrNotFound) ||
			errors.Is(err, repository.ErrInsufficientCredit) ||
			errors.Is(err, repository.ErrPaymentRefMismatch) ||
			errors.Is(err, repository.ErrBookingCancelled) {
			return nil, err
		}

		lastErr = err
		s.log.Warn("Confirm attempt failed",
			zap.Error(err),
			zap.String("booking_id", bookingID),
			zap.Int("attempt", attempt),
			zap.Int("max_attempts", s.confirmAttempts),
		)
		if attempt < s.confirmAttempts {
			time.Sleep(time.Duration(attempt) * s.retryDelay)
		}
	}

	// Reconciliation: a webhook-equivalent may have finalized the booking
	// concurrently under the same reference.
	if payment, err := s.repo.Payment.FindByExternalRef(ctx, req.ExternalPaymentRef); err == nil && payment.BookingID == id {
		if booking, err := s.repo.Booking.FindByID(ctx, id); err == nil && booking.Status == entity.BookingStatusConfirmed {
			s.log.Info("Confirm reconciled against concurrent finalize",
				zap.String("booking_id", bookingID),
				zap.String("external_ref", req.ExternalPaymentRef),
			)
			return s.buildBookingResponse(ctx, booking, ""), nil
		}
	}

	metrics.IncPaidNotBooked()
	s.log.Error("PAYMENT SUCCEEDED BUT BOOKING NOT CONFIRMED - operator action required",
		zap.Error(lastErr),
		zap.String("booking_id", bookingID),
		zap.String("external_ref", req.ExternalPaymentRef),
		zap.Float64("amount", req.Amount),
	)

	return nil, fmt.Errorf("%w: booking %s, ref %s: %v",
		ErrPaymentSucceededBookingFailed, bookingID, req.ExternalPaymentRef, lastErr)
}

func (s *bookingService) CancelBooking(ctx context.Context, bookingID string) (*response.BookingResponse, error) {
	id, err := uuid.Parse(bookingID)
	if err != nil {
		return nil, fmt.Errorf("invalid booking ID format %s: %w", bookingID, err)
	}

	booking, err := s.repo.Booking.Cancel(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("booking %s not found", bookingID)
		}
		s.log.Error("Failed to cancel booking",
			zap.Error(err),
			zap.String("booking_id", bookingID),
		)
		return nil, fmt.Errorf("cancel booking %s: %w", bookingID, err)
	}

	s.log.Info("Booking cancelled",
		zap.String("booking_id", bookingID),
		zap.String("order_id", booking.OrderID),
	)

	return s.buildBookingResponse(ctx, booking, ""), nil
}

func (s *bookingService) GetBookingByID(ctx context.Context, bookingID string) (*response.BookingResponse, error) {
	id, err := uuid.Parse(bookingID)
	if err != nil {
		return nil, fmt.Errorf("invalid booking ID format %s: %w", bookingID, err)
	}

	booking, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("booking %s not found", bookingID)
		}
		return nil, fmt.Errorf("get booking %s: %w", bookingID, err)
	}

	return s.buildBookingResponse(ctx, booking, ""), nil
}

func (s *bookingService) GetUserBookings(ctx context.Context, userID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID format %s: %w", userID, err)
	}

	bookings, err := s.repo.Booking.FindByUserID(ctx, userUUID, req.Limit(), req.Offset())
	if err != nil {
		s.log.Error("Failed to get user bookings",
			zap.Error(err),
			zap.String("user_id", userID),
		)
		return nil, fmt.Errorf("get user bookings: %w", err)
	}

	total, err := s.repo.Booking.CountByUserID(ctx, userUUID)
	if err != nil {
		s.log.Error("Failed to count user bookings", zap.Error(err))
		return nil, fmt.Errorf("count user bookings: %w", err)
	}

	bookingResponses := make([]response.BookingResponse, len(bookings))
	for i, booking := range bookings {
		bookingResponses[i] = *s.buildBookingResponse(ctx, booking, "")
	}

	return response.NewPaginatedResponse(bookingResponses, req.Page, req.PerPage, total), nil
}

// ==================== HELPER METHODS ====================

func (s *bookingService) buildBookingResponse(ctx context.Context, booking *entity.Booking, accommodationName string) *response.BookingResponse {
	if accommodationName == "" && booking.AccommodationID != nil {
		accommodation, err := s.repo.Accommodation.FindByID(ctx, *booking.AccommodationID)
		if err == nil {
			accommodationName = accommodation.Name
		}
	}

	var payment *entity.Payment
	if booking.PaymentID != nil {
		payment, _ = s.repo.Payment.FindByBookingID(ctx, booking.ID)
	}

	resp := response.BookingToResponse(booking, accommodationName, payment)
	return &resp
}
