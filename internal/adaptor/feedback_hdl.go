package adaptor

import (
	"net/http"

	"appointment-booking/internal/dto/request"
	"appointment-booking/internal/usecase"
	"appointment-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type FeedbackHandler struct {
	service     usecase.FeedbackService
	uploadLimit int64
	log         *zap.Logger
}

func NewFeedbackHandler(service usecase.FeedbackService, uploadLimit int64, log *zap.Logger) *FeedbackHandler {
	return &FeedbackHandler{
		service:     service,
		uploadLimit: uploadLimit,
		log:         log.With(zap.String("handler", "feedback")),
	}
}

// AddFeedback handles POST /api/appointments/{id}/feedback
func (h *FeedbackHandler) AddFeedback(w http.ResponseWriter, r *http.Request) {
	var req request.FeedbackRequest

	video, err := decodeBody(w, r, &req, h.uploadLimit)
	if err != nil {
		writeBodyError(w, h.log, err)
		return
	}

	feedback, err := h.service.AddFeedback(r.Context(), chi.URLParam(r, "id"), &req, video)
	if err != nil {
		handleServiceError(w, h.log, err, "add feedback")
		return
	}

	utils.ResponseCreated(w, "Feedback submitted successfully", feedback)
}

// ListFeedback handles GET /api/admin/feedbacks
func (h *FeedbackHandler) ListFeedback(w http.ResponseWriter, r *http.Request) {
	feedbacks, err := h.service.ListFeedback(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "list feedback")
		return
	}

	utils.ResponseSuccess(w, "Feedback retrieved", feedbacks)
}
