package repository

import "errors"

var (
	// ErrAppointmentNotFound is returned when no appointment has the given id.
	ErrAppointmentNotFound = errors.New("repository: appointment not found")

	// ErrSlotFull is returned by a guarded insert when the date+type ceiling is met.
	ErrSlotFull = errors.New("repository: appointment slot is full")

	// ErrFeedbackExists is returned when the appointment already has feedback.
	ErrFeedbackExists = errors.New("repository: feedback already exists")
)
