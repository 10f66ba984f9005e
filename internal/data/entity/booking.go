package entity

import (
	"time"

	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// Booking holds a date range against an accommodation. A pending booking
// counts against inventory until it is confirmed or cancelled. CheckIn and
// CheckOut form a half-open range: night N is occupied iff CheckIn <= N < CheckOut.
type Booking struct {
	Base
	OrderID         string        `db:"order_id"`
	AccommodationID *uuid.UUID    `db:"accommodation_id"`
	UserID          uuid.UUID     `db:"user_id"`
	CheckIn         time.Time     `db:"check_in"`
	CheckOut        time.Time     `db:"check_out"`
	Status          BookingStatus `db:"status"`
	TotalPrice      float64       `db:"total_price"`
	BasePrice       float64       `db:"base_price"`
	SeasonalPct     float64       `db:"seasonal_discount_pct"`
	DurationPct     float64       `db:"duration_discount_pct"`
	CreditsApplied  float64       `db:"credits_applied"`
	PaymentID       *uuid.UUID    `db:"payment_id"`
}

// Overlaps reports whether the booking's range overlaps [checkIn, checkOut).
func (b *Booking) Overlaps(checkIn, checkOut time.Time) bool {
	return b.CheckIn.Before(checkOut) && checkIn.Before(b.CheckOut)
}
