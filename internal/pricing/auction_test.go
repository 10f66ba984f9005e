package pricing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAuctionPrice_MidWindow(t *testing.T) {
	start := date(2026, time.March, 1)
	end := start.AddDate(0, 0, 30)

	// 720 total hours, hourly drops: 720 drops of (15000-3000)/720 = 16.666...
	// At 15 days, 360 drops have happened: 15000 - 360*16.666... = 9000.
	got := AuctionPrice(15000, 3000, start, end, 1, start.AddDate(0, 0, 15))
	assert.InDelta(t, 9000, got, 0.01)
}

func TestAuctionPrice_BeforeAndAfterWindow(t *testing.T) {
	start := date(2026, time.March, 1)
	end := start.AddDate(0, 0, 30)

	assert.Equal(t, 15000.0, AuctionPrice(15000, 3000, start, end, 1, start.Add(-time.Hour)))
	assert.Equal(t, 15000.0, AuctionPrice(15000, 3000, start, end, 1, start), "price holds at start until first interval elapses")
	assert.Equal(t, 3000.0, AuctionPrice(15000, 3000, start, end, 1, end), "end boundary is floor")
	assert.Equal(t, 3000.0, AuctionPrice(15000, 3000, start, end, 1, end.AddDate(0, 0, 10)))
}

func TestAuctionPrice_MonotonicNonIncreasing(t *testing.T) {
	start := date(2026, time.March, 1)
	end := start.AddDate(0, 0, 30)

	prev := AuctionPrice(15000, 3000, start, end, 6, start)
	for h := 1; h <= 30*24; h++ {
		cur := AuctionPrice(15000, 3000, start, end, 6, start.Add(time.Duration(h)*time.Hour))
		assert.LessOrEqual(t, cur, prev, "price rose at hour %d", h)
		assert.GreaterOrEqual(t, cur, 3000.0, "price fell below floor at hour %d", h)
		prev = cur
	}
}

func TestAuctionPrice_DiscreteSteps(t *testing.T) {
	start := date(2026, time.March, 1)
	end := start.Add(10 * time.Hour)

	// 10 drops of (1000-0)/10 = 100 each.
	assert.Equal(t, 1000.0, AuctionPrice(1000, 0, start, end, 1, start.Add(59*time.Minute)))
	assert.Equal(t, 900.0, AuctionPrice(1000, 0, start, end, 1, start.Add(time.Hour)))
	assert.Equal(t, 900.0, AuctionPrice(1000, 0, start, end, 1, start.Add(119*time.Minute)))
	assert.Equal(t, 800.0, AuctionPrice(1000, 0, start, end, 1, start.Add(2*time.Hour)))
}

func TestAuctionPrice_DegenerateConfigs(t *testing.T) {
	start := date(2026, time.March, 1)

	// Interval longer than the window: price holds at start, then floor at end.
	end := start.Add(2 * time.Hour)
	assert.Equal(t, 1000.0, AuctionPrice(1000, 100, start, end, 5, start.Add(time.Hour)))
	assert.Equal(t, 100.0, AuctionPrice(1000, 100, start, end, 5, end))

	// Non-positive interval never divides by zero.
	assert.Equal(t, 1000.0, AuctionPrice(1000, 100, start, end, 0, start.Add(time.Hour)))
	assert.Equal(t, 1000.0, AuctionPrice(1000, 100, start, end, -3, start.Add(time.Hour)))

	// Floor above start clamps to start.
	assert.Equal(t, 500.0, AuctionPrice(500, 9000, start, end, 1, start.Add(time.Hour)))

	// Zero-length window.
	assert.Equal(t, 100.0, AuctionPrice(1000, 100, start, start, 1, start))
}
