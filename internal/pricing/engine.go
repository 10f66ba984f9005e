// Package pricing holds the pure price computations: the discount engine for
// regular stays and the Dutch-auction price calculator. Nothing in this
// package performs I/O; callers inject all configuration and the current time.
package pricing

import (
	"math"
	"strings"
	"time"
)

// TestCategoryPrice is the fixed sentinel total for "test" category
// accommodations, used for payment-integration smoke tests. It bypasses all
// discount math.
const TestCategoryPrice = 1.00

// Quote is the reproducible output of Compute. SeasonalPct is the value that
// was rounded to 2 decimals before being multiplied into the price; persisting
// and displaying exactly this value keeps breakdowns consistent with charges.
type Quote struct {
	TotalPrice  float64
	WeeklyPrice float64
	NightlyRate float64
	Nights      int
	SeasonalPct float64
	DurationPct float64
	CombinedPct float64
}

// seasonalPctForNight maps one night to its seasonal discount percentage.
// Curve: deep winter discounts taper to none in high summer.
func seasonalPctForNight(night time.Time) float64 {
	switch night.Month() {
	case time.November, time.December, time.January, time.February:
		return 25
	case time.March, time.April, time.October:
		return 15
	case time.May, time.June, time.September:
		return 10
	default: // July, August
		return 0
	}
}

// durationPctForWeeks is a step function of complete weeks stayed,
// monotonically non-decreasing.
func durationPctForWeeks(weeks int) float64 {
	switch {
	case weeks >= 4:
		return 15
	case weeks >= 2:
		return 10
	case weeks >= 1:
		return 5
	default:
		return 0
	}
}

// seasonalExempt reports whether a category gets no seasonal discount.
// Dorms are priced flat year round.
func seasonalExempt(category string) bool {
	return strings.Contains(strings.ToLower(category), "dorm")
}

// Round2 rounds to 2 decimal places. Exported because persisted prices and
// discount percentages must round at exactly one point and be reused verbatim.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Compute prices a stay from the base weekly price and the date range.
//
// The seasonal percentage is computed per night (each night may fall in a
// different season), averaged over the stay, and rounded to 2 decimals
// before it is multiplied into the price. The duration percentage is keyed
// on complete weeks; trailing partial days bill as nights but do not count
// toward the week total. Discounts stack multiplicatively:
// combined = 1 - (1-s)(1-d).
//
// Zero or negative base price, or an empty/inverted range, yields a zero-cost
// quote rather than an error: free accommodations are a first-class case.
func Compute(baseWeeklyPrice float64, checkIn, checkOut time.Time, category string) Quote {
	if strings.EqualFold(strings.TrimSpace(category), "test") {
		return Quote{
			TotalPrice:  TestCategoryPrice,
			WeeklyPrice: TestCategoryPrice,
			NightlyRate: TestCategoryPrice,
			Nights:      nightsBetween(checkIn, checkOut),
		}
	}

	nights := nightsBetween(checkIn, checkOut)
	if baseWeeklyPrice <= 0 || nights <= 0 {
		return Quote{Nights: max(nights, 0)}
	}

	seasonalPct := 0.0
	if !seasonalExempt(category) {
		sum := 0.0
		for i := 0; i < nights; i++ {
			sum += seasonalPctForNight(checkIn.AddDate(0, 0, i))
		}
		// Rounding happens here, once. Everything downstream reuses the
		// rounded value.
		seasonalPct = Round2(sum / float64(nights))
	}

	durationPct := durationPctForWeeks(nights / 7)

	combined := 1 - (1-seasonalPct/100)*(1-durationPct/100)
	combinedPct := Round2(combined * 100)

	nightly := baseWeeklyPrice / 7
	total := Round2(nightly * float64(nights) * (1 - seasonalPct/100) * (1 - durationPct/100))

	return Quote{
		TotalPrice:  total,
		WeeklyPrice: Round2(baseWeeklyPrice * (1 - seasonalPct/100) * (1 - durationPct/100)),
		NightlyRate: Round2(nightly),
		Nights:      nights,
		SeasonalPct: seasonalPct,
		DurationPct: durationPct,
		CombinedPct: combinedPct,
	}
}

// nightsBetween counts nights in the half-open range [checkIn, checkOut).
func nightsBetween(checkIn, checkOut time.Time) int {
	return int(checkOut.Sub(checkIn).Hours() / 24)
}

// Overlaps reports whether the half-open ranges [a, b) and [c, d) share a
// night: a < d && c < b. This is the single overlap convention used
// everywhere, including the SQL overlap counts.
func Overlaps(a, b, c, d time.Time) bool {
	return a.Before(d) && c.Before(b)
}
