package adaptor

import (
	"encoding/json"
	"net/http"
	"time"

	"lodge-booking/internal/dto/request"
	"lodge-booking/internal/usecase"
	"lodge-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type AuctionHandler struct {
	service usecase.AuctionService
	log     *zap.Logger
}

func NewAuctionHandler(service usecase.AuctionService, log *zap.Logger) *AuctionHandler {
	return &AuctionHandler{
		service: service,
		log:     log.With(zap.String("handler", "auction")),
	}
}

// GetPrice handles GET /api/auction/{id}/price
func (h *AuctionHandler) GetPrice(w http.ResponseWriter, r *http.Request) {
	accommodationID := chi.URLParam(r, "id")
	if accommodationID == "" {
		utils.ResponseBadRequest(w, "Accommodation ID is required", nil)
		return
	}

	var at *time.Time
	if atParam := r.URL.Query().Get("at"); atParam != "" {
		parsed, err := time.Parse(time.RFC3339, atParam)
		if err != nil {
			utils.ResponseBadRequest(w, "Invalid 'at' timestamp, use RFC3339", nil)
			return
		}
		at = &parsed
	}

	price, err := h.service.GetPrice(r.Context(), accommodationID, at)
	if err != nil {
		handleServiceError(w, h.log, err, "get auction price")
		return
	}

	utils.ResponseSuccess(w, "success", price)
}

// Purchase handles POST /api/auction/{id}/purchase
func (h *AuctionHandler) Purchase(w http.ResponseWriter, r *http.Request) {
	accommodationID := chi.URLParam(r, "id")
	if accommodationID == "" {
		utils.ResponseBadRequest(w, "Accommodation ID is required", nil)
		return
	}

	var req request.PurchaseAuctionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	purchase, err := h.service.Purchase(r.Context(), accommodationID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "purchase auction item")
		return
	}

	utils.ResponseCreated(w, "success", purchase)
}
