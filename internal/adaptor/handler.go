package adaptor

import (
	"errors"
	"net/http"

	"appointment-booking/internal/usecase"
	"appointment-booking/pkg/utils"

	"go.uber.org/zap"
)

type Handler struct {
	Booking  *BookingHandler
	Admin    *AdminHandler
	Auth     *AuthHandler
	Feedback *FeedbackHandler
}

// NewHandler builds every handler. uploadLimit caps multipart bodies.
func NewHandler(service *usecase.Service, uploadLimit int64, log *zap.Logger) *Handler {
	return &Handler{
		Booking:  NewBookingHandler(service.Booking, uploadLimit, log),
		Admin:    NewAdminHandler(service.Admin, log),
		Auth:     NewAuthHandler(service.Auth, log),
		Feedback: NewFeedbackHandler(service.Feedback, uploadLimit, log),
	}
}

// handleServiceError maps service errors onto the response envelope.
func handleServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	var validationErr *usecase.ValidationError

	switch {
	case errors.As(err, &validationErr):
		log.Warn(operation+" validation failed", zap.Error(err))
		utils.ResponseBadRequest(w, "Validation failed", validationErr.Fields)

	case errors.Is(err, usecase.ErrValidation):
		log.Warn(operation+" validation failed", zap.Error(err))
		utils.ResponseBadRequest(w, err.Error(), nil)

	case errors.Is(err, usecase.ErrUnauthorized):
		log.Warn(operation+" failed - unauthorized", zap.Error(err))
		utils.ResponseUnauthorized(w, usecase.ErrUnauthorized.Error())

	case errors.Is(err, usecase.ErrNotFound):
		log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, err.Error())

	case errors.Is(err, usecase.ErrCapacityReached):
		log.Info(operation+" rejected - capacity reached", zap.Error(err))
		utils.ResponseConflict(w, err.Error())

	case errors.Is(err, usecase.ErrFeedbackExists):
		log.Warn(operation+" failed - already exists", zap.Error(err))
		utils.ResponseConflict(w, usecase.ErrFeedbackExists.Error())

	case errors.Is(err, usecase.ErrUploadTooLarge):
		log.Warn(operation+" failed - upload too large", zap.Error(err))
		utils.ResponseTooLarge(w, err.Error())

	case errors.Is(err, usecase.ErrInvalidUpload):
		log.Warn(operation+" failed - invalid upload", zap.Error(err))
		utils.ResponseBadRequest(w, err.Error(), nil)

	default:
		log.Error("Failed to "+operation, zap.Error(err), zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
