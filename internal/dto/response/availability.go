package response

type AvailabilityResponse struct {
	AccommodationID   string `json:"accommodation_id"`
	IsAvailable       bool   `json:"is_available"`
	AvailableCapacity int    `json:"available_capacity"`
	Unlimited         bool   `json:"unlimited"`
}
