package entity

import (
	"time"

	"github.com/google/uuid"
)

// Accommodation is one bookable inventory item. TotalInventory is the number
// of units that may be held concurrently for any single night; nil means
// unlimited. Auction units carry exactly one unit and are sold through the
// single-winner purchase path instead of the reservation path.
type Accommodation struct {
	Base
	Name            string   `db:"name"`
	Category        string   `db:"category"`
	TotalInventory  *int     `db:"total_inventory"`
	BaseWeeklyPrice float64  `db:"base_weekly_price"`
	IsInAuction     bool     `db:"is_in_auction"`
	AuctionTier     *string  `db:"auction_tier"`
	AuctionStart    *float64 `db:"auction_start_price"`
	AuctionFloor    *float64 `db:"auction_floor_price"`
	// AuctionCurrent is a display cache only. The calculator recomputes the
	// authoritative price from config and wall-clock time on every read.
	AuctionCurrent *float64   `db:"auction_current_price"`
	BuyerID        *uuid.UUID `db:"buyer_id"`
	PurchasePrice  *float64   `db:"purchase_price"`
	PurchasedAt    *time.Time `db:"purchased_at"`
}

// Unlimited reports whether the accommodation has no inventory cap.
func (a *Accommodation) Unlimited() bool {
	return a.TotalInventory == nil
}

// Sold reports whether an auction unit already has a buyer.
func (a *Accommodation) Sold() bool {
	return a.BuyerID != nil
}
