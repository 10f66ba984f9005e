package entity

import (
	"github.com/google/uuid"
)

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
)

// Payment records the external processor result a booking was confirmed
// against. ExternalRef is the processor's reference and is what makes
// confirmation idempotent.
type Payment struct {
	Base
	BookingID   uuid.UUID     `db:"booking_id"`
	ExternalRef string        `db:"external_ref"`
	Amount      float64       `db:"amount"`
	Status      PaymentStatus `db:"status"`
}
