package request

type CreateBookingRequest struct {
	AccommodationID string  `json:"accommodation_id" validate:"required,uuid"`
	UserID          string  `json:"user_id" validate:"required,uuid"`
	CheckIn         string  `json:"check_in" validate:"required,datetime=2006-01-02"`
	CheckOut        string  `json:"check_out" validate:"required,datetime=2006-01-02"`
	CreditsToApply  float64 `json:"credits_to_apply" validate:"gte=0"`
}

type ConfirmBookingRequest struct {
	// ExternalPaymentRef is the payment processor's reference; confirming
	// twice with the same reference is a no-op success.
	ExternalPaymentRef string  `json:"external_payment_ref" validate:"required"`
	Amount             float64 `json:"amount" validate:"gte=0"`
}

type PaginatedRequest struct {
	Page    int `json:"page" validate:"min=1"`
	PerPage int `json:"per_page" validate:"min=1,max=100"`
}

func (p PaginatedRequest) Offset() int {
	if p.Page < 1 {
		return 0
	}
	return (p.Page - 1) * p.PerPage
}

func (p PaginatedRequest) Limit() int {
	if p.PerPage < 1 {
		return 10
	}
	if p.PerPage > 100 {
		return 100
	}
	return p.PerPage
}
