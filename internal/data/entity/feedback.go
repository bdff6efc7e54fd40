package entity

type Feedback struct {
	BaseSimple
	AppointmentID int64   `db:"appointment_id"`
	FeedbackText  *string `db:"feedback_text"`
	Rating        *string `db:"rating"`
	VideoPath     *string `db:"video_path"`
}

// IsEmpty reports whether nothing worth storing was provided.
func (f *Feedback) IsEmpty() bool {
	return f == nil || (f.FeedbackText == nil && f.Rating == nil && f.VideoPath == nil)
}
