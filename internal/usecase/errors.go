package usecase

import (
	"errors"

	"appointment-booking/pkg/utils"
)

var (
	ErrValidation      = errors.New("validation failed")
	ErrCapacityReached = errors.New("no slots left for this date and appointment type")
	ErrUnauthorized    = errors.New("invalid credentials")
	ErrNotFound        = errors.New("not found")
	ErrFeedbackExists  = errors.New("feedback already submitted for this appointment")
	ErrUploadTooLarge  = errors.New("upload too large")
	ErrInvalidUpload   = errors.New("invalid upload")
)

// ValidationError carries the per-field messages of a rejected request.
// errors.Is(err, ErrValidation) holds for every ValidationError.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return ErrValidation.Error() + ": " + utils.FormatValidationErrors(e.Fields)
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

func newValidationError(fields map[string]string) error {
	return &ValidationError{Fields: fields}
}

func invalidField(field, message string) error {
	return newValidationError(map[string]string{field: message})
}

// optional maps an empty form value to NULL.
func optional(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}
