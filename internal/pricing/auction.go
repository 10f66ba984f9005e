package pricing

import (
	"math"
	"time"
)

// AuctionPrice computes the current Dutch-auction price of an item.
//
// The price starts at startPrice, drops by a fixed amount every
// dropIntervalHours, and never goes below floorPrice. Before the window the
// price is startPrice; at or after the end it is floorPrice. The function is
// deterministic and idempotent in (config, now): the stored current-price
// column is only a display cache and must never be trusted at purchase time.
//
// A degenerate config (interval longer than the window, zero-length window,
// or a non-positive interval) degrades to a single drop from start to floor
// at auctionEnd instead of dividing by zero.
func AuctionPrice(startPrice, floorPrice float64, auctionStart, auctionEnd time.Time, dropIntervalHours int, now time.Time) float64 {
	if floorPrice > startPrice {
		floorPrice = startPrice
	}
	if now.Before(auctionStart) {
		return startPrice
	}
	if !now.Before(auctionEnd) {
		return floorPrice
	}

	totalHours := auctionEnd.Sub(auctionStart).Hours()
	if dropIntervalHours <= 0 {
		return startPrice
	}

	totalDrops := math.Floor(totalHours / float64(dropIntervalHours))
	if totalDrops <= 0 {
		// Single drop to floor at auctionEnd; until then the price holds.
		return startPrice
	}

	elapsed := now.Sub(auctionStart).Hours()
	drops := math.Floor(elapsed / float64(dropIntervalHours))
	pricePerDrop := (startPrice - floorPrice) / totalDrops

	price := startPrice - drops*pricePerDrop
	if price < floorPrice {
		return floorPrice
	}
	if price > startPrice {
		return startPrice
	}
	return price
}
