package response

import (
	"time"

	"appointment-booking/internal/data/entity"
)

type FeedbackResponse struct {
	ID            int64     `json:"id"`
	AppointmentID int64     `json:"appointment_id"`
	FeedbackText  *string   `json:"feedback_text,omitempty"`
	Rating        *string   `json:"rating,omitempty"`
	VideoPath     *string   `json:"video_path,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

func FeedbackToResponse(f *entity.Feedback) FeedbackResponse {
	return FeedbackResponse{
		ID:            f.ID,
		AppointmentID: f.AppointmentID,
		FeedbackText:  f.FeedbackText,
		Rating:        f.Rating,
		VideoPath:     f.VideoPath,
		CreatedAt:     f.CreatedAt,
	}
}
