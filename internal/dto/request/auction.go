package request

type PurchaseAuctionRequest struct {
	UserID string `json:"user_id" validate:"required,uuid"`
}
