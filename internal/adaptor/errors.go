package adaptor

import (
	"errors"
	"net/http"
	"strings"

	"lodge-booking/internal/data/repository"
	"lodge-booking/internal/usecase"
	"lodge-booking/pkg/utils"

	"go.uber.org/zap"
)

// handleServiceError maps service errors to HTTP responses. The typed
// concurrency rejections are expected traffic, not failures: they log at
// Info/Warn and come back as 409 so the client refreshes and retries.
func handleServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	switch {
	case errors.Is(err, repository.ErrNoAvailability):
		log.Info(operation+" rejected - no availability", zap.Error(err))
		utils.ResponseConflict(w, err.Error())

	case errors.Is(err, repository.ErrAlreadySold):
		log.Info(operation+" rejected - already sold", zap.Error(err))
		utils.ResponseConflict(w, err.Error())

	case errors.Is(err, repository.ErrPaymentRefMismatch):
		log.Warn(operation+" rejected - payment ref mismatch", zap.Error(err))
		utils.ResponseConflict(w, err.Error())

	case errors.Is(err, repository.ErrInsufficientCredit),
		errors.Is(err, repository.ErrNotAuctionItem),
		errors.Is(err, repository.ErrBookingCancelled):
		log.Warn(operation+" rejected", zap.Error(err))
		utils.ResponseBadRequest(w, err.Error(), nil)

	case errors.Is(err, usecase.ErrPaymentSucceededBookingFailed):
		// Already escalated inside the service; the client still needs to
		// know its money moved.
		log.Error(operation+" failed after payment", zap.Error(err))
		utils.ResponseInternalError(w, err.Error())

	case errors.Is(err, repository.ErrNotFound) || strings.Contains(err.Error(), "not found"):
		log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, err.Error())

	case strings.Contains(err.Error(), "validation failed"),
		strings.Contains(err.Error(), "invalid"),
		strings.Contains(err.Error(), "cannot"):
		log.Warn(operation+" failed - bad request", zap.Error(err))
		utils.ResponseBadRequest(w, err.Error(), nil)

	default:
		log.Error("Failed to "+operation, zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
