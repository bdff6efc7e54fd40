package request

type FeedbackRequest struct {
	Feedback string `json:"feedback,omitempty" schema:"feedback"`
	Rating   string `json:"rating,omitempty" schema:"rating" validate:"max=50"`
}
