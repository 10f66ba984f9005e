package repository

import (
	"lodge-booking/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	Accommodation AccommodationRepository
	Booking       BookingRepository
	Payment       PaymentRepository
	Credit        CreditRepository
	AuctionConfig AuctionConfigRepository
	Audit         AuditRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		Accommodation: NewAccommodationRepository(db, log),
		Booking:       NewBookingRepository(db, log),
		Payment:       NewPaymentRepository(db, log),
		Credit:        NewCreditRepository(db, log),
		AuctionConfig: NewAuctionConfigRepository(db, log),
		Audit:         NewAuditRepository(db, log),
	}
}
