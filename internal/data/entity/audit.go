package entity

import (
	"github.com/google/uuid"
)

type AuditAction string

const (
	AuditActionReserve  AuditAction = "reserve"
	AuditActionConfirm  AuditAction = "confirm"
	AuditActionCancel   AuditAction = "cancel"
	AuditActionSweep    AuditAction = "sweep"
	AuditActionPurchase AuditAction = "purchase"
)

// AuditRecord is an append-only trail entry. Required for dispute resolution
// on auction items, where the price is a moving target.
type AuditRecord struct {
	BaseSimple
	AccommodationID *uuid.UUID  `db:"accommodation_id"`
	BookingID       *uuid.UUID  `db:"booking_id"`
	ActorID         uuid.UUID   `db:"actor_id"`
	Action          AuditAction `db:"action"`
	Price           float64     `db:"price"`
}
