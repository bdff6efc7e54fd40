package wire

import (
	"net/http"

	"appointment-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireFeedback(r chi.Router, feedbackHandler *adaptor.FeedbackHandler, auth func(http.Handler) http.Handler) {
	// Public: visitors attach feedback to their own booking
	r.Post("/api/appointments/{id}/feedback", feedbackHandler.AddFeedback)

	// Admin only
	r.With(auth).Get("/api/admin/feedbacks", feedbackHandler.ListFeedback)
}
