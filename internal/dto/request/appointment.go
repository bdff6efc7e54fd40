package request

import "encoding/json"

// SubmitAppointmentRequest is accepted as JSON or as multipart form fields;
// the optional video travels as the "video" file part.
type SubmitAppointmentRequest struct {
	Date            string `json:"date" schema:"date" validate:"required,datetime=2006-01-02"`
	TimeSlot        string `json:"time_slot,omitempty" schema:"time_slot" validate:"max=50"`
	AppointmentType string `json:"appointment_type" schema:"appointment_type" validate:"required"`
	FullName        string `json:"full_name" schema:"full_name" validate:"required"`
	StreetAddress   string `json:"street_address" schema:"street_address" validate:"required"`
	Area            string `json:"area" schema:"area" validate:"required"`
	Phone           string `json:"phone" schema:"phone" validate:"required"`
	Email           string `json:"email" schema:"email" validate:"required"`
	MeetingPurpose  string `json:"meeting_purpose" schema:"meeting_purpose" validate:"required"`

	// Optional feedback stored with the appointment
	Feedback string `json:"feedback,omitempty" schema:"feedback"`
	Rating   string `json:"rating,omitempty" schema:"rating" validate:"max=50"`
}

// submitAliases maps the field names used by the older booking form to the
// current ones. The current name wins when a body carries both.
var submitAliases = map[string]string{
	"type":           "appointment_type",
	"fullName":       "full_name",
	"streetAddress":  "street_address",
	"gmail":          "email",
	"meetingPurpose": "meeting_purpose",
}

// FieldAliases lets form decoding accept the older field names.
func (SubmitAppointmentRequest) FieldAliases() map[string]string {
	return submitAliases
}

func (r *SubmitAppointmentRequest) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	for alias, name := range submitAliases {
		value, ok := fields[alias]
		if !ok {
			continue
		}
		if _, set := fields[name]; !set {
			fields[name] = value
		}
		delete(fields, alias)
	}

	canonical, err := json.Marshal(fields)
	if err != nil {
		return err
	}

	type plain SubmitAppointmentRequest
	return json.Unmarshal(canonical, (*plain)(r))
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}
