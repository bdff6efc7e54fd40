package entity

import (
	"fmt"
	"strings"
	"time"
)

type AppointmentType string

const (
	AppointmentTypeOnline   AppointmentType = "online"
	AppointmentTypePhysical AppointmentType = "physical"
)

// AppointmentTypes lists every type in display order.
var AppointmentTypes = []AppointmentType{AppointmentTypeOnline, AppointmentTypePhysical}

// ParseAppointmentType maps the labels used by the booking forms onto the
// stored enum, so "Online" and "Online (Zoom)" count against the same ceiling.
func ParseAppointmentType(raw string) (AppointmentType, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "online", "online (zoom)", "zoom":
		return AppointmentTypeOnline, nil
	case "physical":
		return AppointmentTypePhysical, nil
	default:
		return "", fmt.Errorf("invalid appointment type %q", raw)
	}
}

type AppointmentStatus string

const (
	AppointmentStatusPending  AppointmentStatus = "pending"
	AppointmentStatusApproved AppointmentStatus = "approved"
	AppointmentStatusRejected AppointmentStatus = "rejected"
)

var AppointmentStatuses = []AppointmentStatus{
	AppointmentStatusPending,
	AppointmentStatusApproved,
	AppointmentStatusRejected,
}

func ParseAppointmentStatus(raw string) (AppointmentStatus, error) {
	status := AppointmentStatus(strings.ToLower(strings.TrimSpace(raw)))
	if _, ok := statusTransitions[status]; !ok {
		return "", fmt.Errorf("invalid status %q", raw)
	}
	return status, nil
}

// statusTransitions lists the allowed targets per current status. Review is
// reversible, so every status reaches every other one.
var statusTransitions = map[AppointmentStatus][]AppointmentStatus{
	AppointmentStatusPending:  {AppointmentStatusPending, AppointmentStatusApproved, AppointmentStatusRejected},
	AppointmentStatusApproved: {AppointmentStatusPending, AppointmentStatusApproved, AppointmentStatusRejected},
	AppointmentStatusRejected: {AppointmentStatusPending, AppointmentStatusApproved, AppointmentStatusRejected},
}

func CanTransition(from, to AppointmentStatus) bool {
	for _, target := range statusTransitions[from] {
		if target == to {
			return true
		}
	}
	return false
}

type Appointment struct {
	BaseSimple
	Date            time.Time         `db:"date"`
	TimeSlot        *string           `db:"time_slot"`
	AppointmentType AppointmentType   `db:"appointment_type"`
	FullName        string            `db:"full_name"`
	StreetAddress   string            `db:"street_address"`
	Area            string            `db:"area"`
	Phone           string            `db:"phone"`
	Email           string            `db:"email"`
	MeetingPurpose  string            `db:"meeting_purpose"`
	Status          AppointmentStatus `db:"status"`
}

// AppointmentWithFeedback is one row of the admin listing; Feedback is nil
// when none was left.
type AppointmentWithFeedback struct {
	Appointment
	Feedback *Feedback
}

// DailyCount is the number of bookings per type on one date.
type DailyCount struct {
	Online   int
	Physical int
}

func (c DailyCount) For(t AppointmentType) int {
	if t == AppointmentTypeOnline {
		return c.Online
	}
	return c.Physical
}
