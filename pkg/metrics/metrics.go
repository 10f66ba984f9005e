package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	reservations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "lodge_booking",
			Name:      "reservations_total",
			Help:      "Reservation attempts by result.",
		},
		[]string{"result"},
	)

	auctionPurchases = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "lodge_booking",
			Name:      "auction_purchases_total",
			Help:      "Auction purchase attempts by result.",
		},
		[]string{"result"},
	)

	sweeperCancelled = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "lodge_booking",
			Name:      "sweeper_cancelled_total",
			Help:      "Pending bookings cancelled by the grace-window sweeper.",
		},
	)

	paidNotBooked = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "lodge_booking",
			Name:      "paid_not_booked_total",
			Help:      "Payments that succeeded but whose booking could not be confirmed. Alert on any increase.",
		},
	)
)

// Register registers Prometheus metrics. Safe to call multiple times.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(reservations, auctionPurchases, sweeperCancelled, paidNotBooked)
	})
}

// IncReservation increments the reservation counter for a result label.
func IncReservation(result string) {
	reservations.WithLabelValues(result).Inc()
}

// IncAuctionPurchase increments the purchase counter for a result label.
func IncAuctionPurchase(result string) {
	auctionPurchases.WithLabelValues(result).Inc()
}

// AddSweeperCancelled records bookings cancelled by one sweep pass.
func AddSweeperCancelled(n int) {
	sweeperCancelled.Add(float64(n))
}

// IncPaidNotBooked records a paid-but-not-booked escalation.
func IncPaidNotBooked() {
	paidNotBooked.Inc()
}
