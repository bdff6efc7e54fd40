package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type sampleRequest struct {
	Date   string `json:"date" validate:"required,datetime=2006-01-02"`
	Name   string `json:"full_name" validate:"required"`
	Status string `json:"status,omitempty" validate:"omitempty,oneof=pending approved"`
}

func TestValidateStructUsesJSONNames(t *testing.T) {
	errs := ValidateStruct(sampleRequest{Date: "01/06/2024", Status: "done"})

	assert.Equal(t, map[string]string{
		"date":      "Must match layout 2006-01-02",
		"full_name": "This field is required",
		"status":    "Must be one of: pending, approved",
	}, errs)
}

func TestValidateStructValid(t *testing.T) {
	assert.Nil(t, ValidateStruct(&sampleRequest{Date: "2024-06-01", Name: "Ada"}))
}

func TestFormatValidationErrorsIsSorted(t *testing.T) {
	msg := FormatValidationErrors(map[string]string{
		"phone": "This field is required",
		"area":  "This field is required",
	})
	assert.Equal(t, "area: This field is required; phone: This field is required", msg)
}
