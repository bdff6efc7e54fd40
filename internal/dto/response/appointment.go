package response

import (
	"time"

	"appointment-booking/internal/data/entity"
	"appointment-booking/pkg/utils"
)

type AppointmentResponse struct {
	ID              int64                    `json:"id"`
	Date            string                   `json:"date"`
	TimeSlot        *string                  `json:"time_slot,omitempty"`
	AppointmentType entity.AppointmentType   `json:"appointment_type"`
	FullName        string                   `json:"full_name"`
	StreetAddress   string                   `json:"street_address"`
	Area            string                   `json:"area"`
	Phone           string                   `json:"phone"`
	Email           string                   `json:"email"`
	MeetingPurpose  string                   `json:"meeting_purpose"`
	Status          entity.AppointmentStatus `json:"status"`
	CreatedAt       time.Time                `json:"created_at"`
	Feedback        *FeedbackResponse        `json:"feedback,omitempty"`
}

type DailyCountResponse struct {
	Date             string `json:"date"`
	Online           int    `json:"online"`
	Physical         int    `json:"physical"`
	OnlineCapacity   int    `json:"online_capacity"`
	PhysicalCapacity int    `json:"physical_capacity"`
}

// Helper converters
func AppointmentToResponse(a *entity.Appointment, f *entity.Feedback) AppointmentResponse {
	resp := AppointmentResponse{
		ID:              a.ID,
		Date:            a.Date.Format(utils.DateLayout),
		TimeSlot:        a.TimeSlot,
		AppointmentType: a.AppointmentType,
		FullName:        a.FullName,
		StreetAddress:   a.StreetAddress,
		Area:            a.Area,
		Phone:           a.Phone,
		Email:           a.Email,
		MeetingPurpose:  a.MeetingPurpose,
		Status:          a.Status,
		CreatedAt:       a.CreatedAt,
	}

	if !f.IsEmpty() {
		fb := FeedbackToResponse(f)
		resp.Feedback = &fb
	}

	return resp
}
