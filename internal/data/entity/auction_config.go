package entity

import (
	"time"

	"github.com/google/uuid"
)

// AuctionConfig is the schedule governing all auction tiers: one active
// config defines the window and the fixed drop interval.
type AuctionConfig struct {
	ID                uuid.UUID `db:"id"`
	StartTime         time.Time `db:"start_time"`
	EndTime           time.Time `db:"end_time"`
	DropIntervalHours int       `db:"drop_interval_hours"`
	IsActive          bool      `db:"is_active"`
}
