package response

type PricingQuoteResponse struct {
	TotalPrice          float64 `json:"total_price"`
	WeeklyPrice         float64 `json:"weekly_price"`
	NightlyRate         float64 `json:"nightly_rate"`
	Nights              int     `json:"nights"`
	SeasonalDiscountPct float64 `json:"seasonal_discount_pct"`
	DurationDiscountPct float64 `json:"duration_discount_pct"`
	CombinedDiscountPct float64 `json:"combined_discount_pct"`
}
