package adaptor

import (
	"net/http"
	"strings"

	"lodge-booking/internal/dto/request"
	"lodge-booking/internal/usecase"
	"lodge-booking/pkg/utils"

	"go.uber.org/zap"
)

type AvailabilityHandler struct {
	service usecase.AvailabilityService
	log     *zap.Logger
}

func NewAvailabilityHandler(service usecase.AvailabilityService, log *zap.Logger) *AvailabilityHandler {
	return &AvailabilityHandler{
		service: service,
		log:     log.With(zap.String("handler", "availability")),
	}
}

// GetAvailability handles GET /api/availability?ids=a,b&check_in=...&check_out=...
func (h *AvailabilityHandler) GetAvailability(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	idsParam := query.Get("ids")
	if idsParam == "" {
		utils.ResponseBadRequest(w, "ids query parameter is required", nil)
		return
	}

	req := &request.AvailabilityRequest{
		AccommodationIDs: strings.Split(idsParam, ","),
		CheckIn:          query.Get("check_in"),
		CheckOut:         query.Get("check_out"),
	}

	results, err := h.service.GetAvailability(r.Context(), req)
	if err != nil {
		handleServiceError(w, h.log, err, "get availability")
		return
	}

	utils.ResponseSuccess(w, "success", results)
}
