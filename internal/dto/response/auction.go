package response

import "time"

type AuctionPriceResponse struct {
	AccommodationID string    `json:"accommodation_id"`
	Tier            string    `json:"tier,omitempty"`
	CurrentPrice    float64   `json:"current_price"`
	StartPrice      float64   `json:"start_price"`
	FloorPrice      float64   `json:"floor_price"`
	Sold            bool      `json:"sold"`
	At              time.Time `json:"at"`
}

type PurchaseResponse struct {
	AccommodationID string    `json:"accommodation_id"`
	BuyerID         string    `json:"buyer_id"`
	PurchasePrice   float64   `json:"purchase_price"`
	PurchasedAt     time.Time `json:"purchased_at"`
}
