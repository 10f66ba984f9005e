package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"lodge-booking/internal/data/entity"
	"lodge-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

type BookingRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error)
	FindByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Booking, error)
	CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error)

	// CountOverlappingLive counts bookings holding capacity against the
	// range for display reads. Pending bookings created before pendingSince
	// are treated as abandoned and excluded; they still block the
	// authoritative check until the sweeper cancels them.
	CountOverlappingLive(ctx context.Context, accommodationID uuid.UUID, checkIn, checkOut, pendingSince time.Time) (int, error)

	// Reserve is the atomic reservation coordinator: it locks the
	// accommodation row, recounts overlapping holds, and inserts the pending
	// booking in one transaction. Returns ErrNoAvailability when capacity is
	// exhausted.
	Reserve(ctx context.Context, booking *entity.Booking) error

	// Confirm transitions pending -> confirmed idempotently, debiting
	// applied credits and recording the payment in the same transaction.
	Confirm(ctx context.Context, bookingID uuid.UUID, externalRef string, amount float64) (*entity.Booking, error)

	// Cancel transitions pending/confirmed -> cancelled, refunding credits
	// that a confirmed booking had debited.
	Cancel(ctx context.Context, bookingID uuid.UUID) (*entity.Booking, error)

	// SweepExpired cancels pending bookings created before cutoff, freeing
	// their capacity. Returns the number cancelled.
	SweepExpired(ctx context.Context, cutoff time.Time) (int, error)
}

type bookingRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewBookingRepository(db database.PgxIface, log *zap.Logger) BookingRepository {
	return &bookingRepository{
		db:  db,
		log: log.With(zap.String("repository", "booking")),
	}
}

const bookingColumns = `
	id, order_id, accommodation_id, user_id, check_in, check_out, status,
	total_price, base_price, seasonal_discount_pct, duration_discount_pct,
	credits_applied, payment_id, created_at, updated_at
`

func scanBooking(row pgx.Row) (*entity.Booking, error) {
	var b entity.Booking
	err := row.Scan(
		&b.ID,
		&b.OrderID,
		&b.AccommodationID,
		&b.UserID,
		&b.CheckIn,
		&b.CheckOut,
		&b.Status,
		&b.TotalPrice,
		&b.BasePrice,
		&b.SeasonalPct,
		&b.DurationPct,
		&b.CreditsApplied,
		&b.PaymentID,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *bookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`

	booking, err := scanBooking(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		r.log.Error("Failed to find booking by ID",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return nil, fmt.Errorf("find booking by ID %s: %w", id.String(), err)
	}

	return booking, nil
}

func (r *bookingRepository) FindByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, userID, limit, offset)
	if err != nil {
		r.log.Error("Failed to find bookings by user ID",
			zap.Error(err),
			zap.String("user_id", userID.String()),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("find bookings by user ID %s: %w", userID.String(), err)
	}
	defer rows.Close()

	var bookings []*entity.Booking
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			r.log.Error("Failed to scan booking row", zap.Error(err))
			return nil, fmt.Errorf("scan booking row: %w", err)
		}
		bookings = append(bookings, booking)
	}

	return bookings, rows.Err()
}

func (r *bookingRepository) CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error) {
	query := `SELECT COUNT(*) FROM bookings WHERE user_id = $1`

	var count int64
	err := r.db.QueryRow(ctx, query, userID).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count bookings by user ID",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return 0, fmt.Errorf("count bookings by user ID %s: %w", userID.String(), err)
	}

	return count, nil
}

// Half-open overlap: booking [check_in, check_out) overlaps requested
// [$2, $3) iff check_in < $3 AND check_out > $2.
func (r *bookingRepository) CountOverlappingLive(ctx context.Context, accommodationID uuid.UUID, checkIn, checkOut, pendingSince time.Time) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM bookings
		WHERE accommodation_id = $1
		  AND check_in < $3 AND check_out > $2
		  AND (status = 'confirmed' OR (status = 'pending' AND created_at > $4))
	`

	var count int
	err := r.db.QueryRow(ctx, query, accommodationID, checkIn, checkOut, pendingSince).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count overlapping bookings",
			zap.Error(err),
			zap.String("accommodation_id", accommodationID.String()),
		)
		return 0, fmt.Errorf("count overlapping bookings for %s: %w", accommodationID.String(), err)
	}

	return count, nil
}

// Reserve serialises contending callers on the accommodation row.
//
// Without the lock, two transactions can both read "1 unit free" before
// either inserts, and the accommodation oversells. SELECT ... FOR UPDATE
// blocks the second caller until the first commits, so the recount below
// always sees every committed hold. The lock is held only for this short
// read-check-write; payment happens later against the pending row.
func (r *bookingRepository) Reserve(ctx context.Context, booking *entity.Booking) error {
	if booking.AccommodationID == nil {
		// Addon-only booking holds no capacity; plain insert.
		return r.insertBooking(ctx, r.db, booking)
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin reserve transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var totalInventory *int
	var isInAuction bool
	err = tx.QueryRow(ctx,
		`SELECT total_inventory, is_in_auction FROM accommodations WHERE id = $1 FOR UPDATE`,
		*booking.AccommodationID,
	).Scan(&totalInventory, &isInAuction)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("lock accommodation row: %w", err)
	}
	if isInAuction {
		return ErrNotAuctionItem
	}

	// Recheck availability under the lock. All pending bookings count here,
	// regardless of age: until the sweeper cancels a stale hold it still
	// occupies capacity.
	if totalInventory != nil {
		var held int
		err = tx.QueryRow(ctx,
			`SELECT COUNT(*)
			 FROM bookings
			 WHERE accommodation_id = $1
			   AND check_in < $3 AND check_out > $2
			   AND status IN ('pending', 'confirmed')`,
			*booking.AccommodationID, booking.CheckIn, booking.CheckOut,
		).Scan(&held)
		if err != nil {
			return fmt.Errorf("recount overlapping bookings: %w", err)
		}

		if held >= *totalInventory {
			return ErrNoAvailability
		}
	}

	if err := r.insertBooking(ctx, tx, booking); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit reserve transaction: %w", err)
	}

	return nil
}

// execer is satisfied by both database.PgxIface and pgx.Tx.
type execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

func (r *bookingRepository) insertBooking(ctx context.Context, db execer, booking *entity.Booking) error {
	query := `
		INSERT INTO bookings (id, order_id, accommodation_id, user_id, check_in, check_out,
		                      status, total_price, base_price, seasonal_discount_pct,
		                      duration_discount_pct, credits_applied, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`

	_, err := db.Exec(ctx, query,
		booking.ID,
		booking.OrderID,
		booking.AccommodationID,
		booking.UserID,
		booking.CheckIn,
		booking.CheckOut,
		booking.Status,
		booking.TotalPrice,
		booking.BasePrice,
		booking.SeasonalPct,
		booking.DurationPct,
		booking.CreditsApplied,
		booking.CreatedAt,
		booking.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to insert booking",
			zap.Error(err),
			zap.String("order_id", booking.OrderID),
			zap.String("user_id", booking.UserID.String()),
		)
		return fmt.Errorf("insert booking %s: %w", booking.OrderID, err)
	}

	return nil
}

// Confirm finalises payment for a booking. Credit debit, payment record, and
// the status flip commit together, so there is no window where money moved
// but the booking did not: either everything lands or nothing does.
//
// Idempotency: a booking already confirmed against the same external
// reference is a no-op success. A different reference on a confirmed booking
// is a real conflict and is reported, never silently absorbed.
func (r *bookingRepository) Confirm(ctx context.Context, bookingID uuid.UUID, externalRef string, amount float64) (*entity.Booking, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin confirm transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	booking, err := scanBooking(tx.QueryRow(ctx,
		`SELECT `+bookingColumns+` FROM bookings WHERE id = $1 FOR UPDATE`, bookingID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("lock booking row %s: %w", bookingID.String(), err)
	}

	switch booking.Status {
	case entity.BookingStatusCancelled:
		return nil, ErrBookingCancelled

	case entity.BookingStatusConfirmed:
		// Replayed confirmation. Same reference means the earlier attempt
		// already landed; report success without touching credits again.
		var existingRef string
		err = tx.QueryRow(ctx,
			`SELECT external_ref FROM payments WHERE booking_id = $1 AND status = 'completed'`,
			bookingID,
		).Scan(&existingRef)
		if err != nil && !errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("look up existing payment: %w", err)
		}
		if existingRef == externalRef {
			return booking, nil
		}
		return nil, ErrPaymentRefMismatch
	}

	now := time.Now()

	if booking.CreditsApplied > 0 {
		result, err := tx.Exec(ctx,
			`UPDATE credit_accounts
			 SET balance = balance - $2, updated_at = $3
			 WHERE user_id = $1 AND balance >= $2`,
			booking.UserID, booking.CreditsApplied, now,
		)
		if err != nil {
			return nil, fmt.Errorf("debit credits for booking %s: %w", bookingID.String(), err)
		}
		if result.RowsAffected() == 0 {
			return nil, ErrInsufficientCredit
		}
	}

	paymentID := uuid.New()
	_, err = tx.Exec(ctx,
		`INSERT INTO payments (id, booking_id, external_ref, amount, status, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $6)`,
		paymentID, bookingID, externalRef, amount, entity.PaymentStatusCompleted, now,
	)
	if err != nil {
		return nil, fmt.Errorf("record payment for booking %s: %w", bookingID.String(), err)
	}

	_, err = tx.Exec(ctx,
		`UPDATE bookings SET status = $2, payment_id = $3, updated_at = $4 WHERE id = $1`,
		bookingID, entity.BookingStatusConfirmed, paymentID, now,
	)
	if err != nil {
		return nil, fmt.Errorf("confirm booking %s: %w", bookingID.String(), err)
	}

	if err := appendAudit(ctx, tx, &entity.AuditRecord{
		BaseSimple:      entity.BaseSimple{ID: uuid.New(), CreatedAt: now},
		AccommodationID: booking.AccommodationID,
		BookingID:       &booking.ID,
		ActorID:         booking.UserID,
		Action:          entity.AuditActionConfirm,
		Price:           booking.TotalPrice,
	}); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit confirm transaction: %w", err)
	}

	booking.Status = entity.BookingStatusConfirmed
	booking.PaymentID = &paymentID
	booking.UpdatedAt = now

	return booking, nil
}

// Cancel releases a booking's capacity. A confirmed booking that had debited
// credits gets them refunded in the same transaction that flips the status.
func (r *bookingRepository) Cancel(ctx context.Context, bookingID uuid.UUID) (*entity.Booking, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin cancel transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	booking, err := scanBooking(tx.QueryRow(ctx,
		`SELECT `+bookingColumns+` FROM bookings WHERE id = $1 FOR UPDATE`, bookingID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("lock booking row %s: %w", bookingID.String(), err)
	}

	if booking.Status == entity.BookingStatusCancelled {
		return booking, nil
	}

	now := time.Now()

	if booking.Status == entity.BookingStatusConfirmed && booking.CreditsApplied > 0 {
		_, err = tx.Exec(ctx,
			`UPDATE credit_accounts
			 SET balance = balance + $2, updated_at = $3
			 WHERE user_id = $1`,
			booking.UserID, booking.CreditsApplied, now,
		)
		if err != nil {
			return nil, fmt.Errorf("refund credits for booking %s: %w", bookingID.String(), err)
		}
	}

	_, err = tx.Exec(ctx,
		`UPDATE bookings SET status = $2, updated_at = $3 WHERE id = $1`,
		bookingID, entity.BookingStatusCancelled, now,
	)
	if err != nil {
		return nil, fmt.Errorf("cancel booking %s: %w", bookingID.String(), err)
	}

	if err := appendAudit(ctx, tx, &entity.AuditRecord{
		BaseSimple:      entity.BaseSimple{ID: uuid.New(), CreatedAt: now},
		AccommodationID: booking.AccommodationID,
		BookingID:       &booking.ID,
		ActorID:         booking.UserID,
		Action:          entity.AuditActionCancel,
		Price:           booking.TotalPrice,
	}); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit cancel transaction: %w", err)
	}

	booking.Status = entity.BookingStatusCancelled
	booking.UpdatedAt = now

	return booking, nil
}

// SweepExpired cancels pending bookings older than cutoff. Grouped into one
// transaction so the audit trail matches what was actually released.
func (r *bookingRepository) SweepExpired(ctx context.Context, cutoff time.Time) (int, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin sweep transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	now := time.Now()

	rows, err := tx.Query(ctx,
		`UPDATE bookings
		 SET status = 'cancelled', updated_at = $2
		 WHERE status = 'pending' AND created_at < $1
		 RETURNING id, accommodation_id, user_id, total_price`,
		cutoff, now,
	)
	if err != nil {
		return 0, fmt.Errorf("sweep expired bookings: %w", err)
	}

	type swept struct {
		id              uuid.UUID
		accommodationID *uuid.UUID
		userID          uuid.UUID
		totalPrice      float64
	}
	var cancelled []swept
	for rows.Next() {
		var s swept
		if err := rows.Scan(&s.id, &s.accommodationID, &s.userID, &s.totalPrice); err != nil {
			rows.Close()
			return 0, fmt.Errorf("scan swept booking: %w", err)
		}
		cancelled = append(cancelled, s)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return 0, fmt.Errorf("sweep expired bookings: %w", err)
	}

	for _, s := range cancelled {
		bookingID := s.id
		if err := appendAudit(ctx, tx, &entity.AuditRecord{
			BaseSimple:      entity.BaseSimple{ID: uuid.New(), CreatedAt: now},
			AccommodationID: s.accommodationID,
			BookingID:       &bookingID,
			ActorID:         s.userID,
			Action:          entity.AuditActionSweep,
			Price:           s.totalPrice,
		}); err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit sweep transaction: %w", err)
	}

	if len(cancelled) > 0 {
		r.log.Info("Swept expired pending bookings",
			zap.Int("count", len(cancelled)),
			zap.Time("cutoff", cutoff),
		)
	}

	return len(cancelled), nil
}
