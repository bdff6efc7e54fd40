package adaptor

import (
	"errors"
	"net/http"

	"appointment-booking/internal/dto/request"
	"appointment-booking/internal/usecase"
	"appointment-booking/pkg/utils"

	"go.uber.org/zap"
)

type BookingHandler struct {
	service     usecase.BookingService
	uploadLimit int64
	log         *zap.Logger
}

func NewBookingHandler(service usecase.BookingService, uploadLimit int64, log *zap.Logger) *BookingHandler {
	return &BookingHandler{
		service:     service,
		uploadLimit: uploadLimit,
		log:         log.With(zap.String("handler", "booking")),
	}
}

// SubmitAppointment handles POST /api/appointments
func (h *BookingHandler) SubmitAppointment(w http.ResponseWriter, r *http.Request) {
	var req request.SubmitAppointmentRequest

	video, err := decodeBody(w, r, &req, h.uploadLimit)
	if err != nil {
		writeBodyError(w, h.log, err)
		return
	}

	appointment, err := h.service.SubmitAppointment(r.Context(), &req, video)
	if err != nil {
		handleServiceError(w, h.log, err, "submit appointment")
		return
	}

	utils.ResponseCreated(w, "Appointment submitted successfully", appointment)
}

// CountByDate handles GET /api/appointments/count?date=YYYY-MM-DD
func (h *BookingHandler) CountByDate(w http.ResponseWriter, r *http.Request) {
	count, err := h.service.CountByDate(r.Context(), r.URL.Query().Get("date"))
	if err != nil {
		handleServiceError(w, h.log, err, "count appointments")
		return
	}

	utils.ResponseSuccess(w, "Appointment count retrieved", count)
}

func writeBodyError(w http.ResponseWriter, log *zap.Logger, err error) {
	if errors.Is(err, errBodyTooLarge) {
		log.Warn("Request body too large", zap.Error(err))
		utils.ResponseTooLarge(w, "Upload exceeds the size limit")
		return
	}
	log.Warn("Invalid request body", zap.Error(err))
	utils.ResponseBadRequest(w, "Invalid request body", nil)
}
