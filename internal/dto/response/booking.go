package response

import (
	"time"

	"lodge-booking/internal/data/entity"
)

type BookingResponse struct {
	ID                  string               `json:"id"`
	OrderID             string               `json:"order_id"`
	AccommodationID     string               `json:"accommodation_id,omitempty"`
	AccommodationName   string               `json:"accommodation_name,omitempty"`
	UserID              string               `json:"user_id"`
	CheckIn             string               `json:"check_in"`
	CheckOut            string               `json:"check_out"`
	Nights              int                  `json:"nights"`
	Status              entity.BookingStatus `json:"status"`
	TotalPrice          float64              `json:"total_price"`
	BasePrice           float64              `json:"base_price"`
	SeasonalDiscountPct float64              `json:"seasonal_discount_pct"`
	DurationDiscountPct float64              `json:"duration_discount_pct"`
	CreditsApplied      float64              `json:"credits_applied"`
	Payment             *PaymentResponse     `json:"payment,omitempty"`
	CreatedAt           time.Time            `json:"created_at"`
}

type PaymentResponse struct {
	ID          string               `json:"id"`
	ExternalRef string               `json:"external_ref"`
	Amount      float64              `json:"amount"`
	Status      entity.PaymentStatus `json:"status"`
	CreatedAt   time.Time            `json:"created_at"`
}

func PaymentToResponse(payment *entity.Payment) PaymentResponse {
	return PaymentResponse{
		ID:          payment.ID.String(),
		ExternalRef: payment.ExternalRef,
		Amount:      payment.Amount,
		Status:      payment.Status,
		CreatedAt:   payment.CreatedAt,
	}
}

func BookingToResponse(booking *entity.Booking, accommodationName string, payment *entity.Payment) BookingResponse {
	resp := BookingResponse{
		ID:                  booking.ID.String(),
		OrderID:             booking.OrderID,
		AccommodationName:   accommodationName,
		UserID:              booking.UserID.String(),
		CheckIn:             booking.CheckIn.Format("2006-01-02"),
		CheckOut:            booking.CheckOut.Format("2006-01-02"),
		Nights:              int(booking.CheckOut.Sub(booking.CheckIn).Hours() / 24),
		Status:              booking.Status,
		TotalPrice:          booking.TotalPrice,
		BasePrice:           booking.BasePrice,
		SeasonalDiscountPct: booking.SeasonalPct,
		DurationDiscountPct: booking.DurationPct,
		CreditsApplied:      booking.CreditsApplied,
		CreatedAt:           booking.CreatedAt,
	}

	if booking.AccommodationID != nil {
		resp.AccommodationID = booking.AccommodationID.String()
	}
	if payment != nil {
		paymentResp := PaymentToResponse(payment)
		resp.Payment = &paymentResp
	}

	return resp
}
