package request

type PricingQuoteRequest struct {
	BaseWeeklyPrice float64 `json:"base_weekly_price"`
	CheckIn         string  `json:"check_in" validate:"required,datetime=2006-01-02"`
	CheckOut        string  `json:"check_out" validate:"required,datetime=2006-01-02"`
	Category        string  `json:"category"`
}
