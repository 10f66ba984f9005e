package request

// AvailabilityRequest is parsed from query parameters.
type AvailabilityRequest struct {
	AccommodationIDs []string `validate:"required,min=1,dive,uuid"`
	CheckIn          string   `validate:"required,datetime=2006-01-02"`
	CheckOut         string   `validate:"required,datetime=2006-01-02"`
}
