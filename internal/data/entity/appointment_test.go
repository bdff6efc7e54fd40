package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAppointmentType(t *testing.T) {
	tests := []struct {
		raw  string
		want AppointmentType
	}{
		{"online", AppointmentTypeOnline},
		{"Online", AppointmentTypeOnline},
		{"Online (Zoom)", AppointmentTypeOnline},
		{" zoom ", AppointmentTypeOnline},
		{"physical", AppointmentTypePhysical},
		{"Physical", AppointmentTypePhysical},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := ParseAppointmentType(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseAppointmentType("phone call")
	assert.Error(t, err)

	_, err = ParseAppointmentType("")
	assert.Error(t, err)
}

func TestParseAppointmentStatus(t *testing.T) {
	got, err := ParseAppointmentStatus(" Approved ")
	require.NoError(t, err)
	assert.Equal(t, AppointmentStatusApproved, got)

	_, err = ParseAppointmentStatus("cancelled")
	assert.Error(t, err)
}

func TestCanTransitionAllowsEveryPair(t *testing.T) {
	for _, from := range AppointmentStatuses {
		for _, to := range AppointmentStatuses {
			assert.True(t, CanTransition(from, to), "%s -> %s", from, to)
		}
	}

	assert.False(t, CanTransition("archived", AppointmentStatusPending))
	assert.False(t, CanTransition(AppointmentStatusPending, "archived"))
}

func TestDailyCountFor(t *testing.T) {
	c := DailyCount{Online: 3, Physical: 7}
	assert.Equal(t, 3, c.For(AppointmentTypeOnline))
	assert.Equal(t, 7, c.For(AppointmentTypePhysical))
}

func TestFeedbackIsEmpty(t *testing.T) {
	var nilFeedback *Feedback
	assert.True(t, nilFeedback.IsEmpty())
	assert.True(t, (&Feedback{AppointmentID: 1}).IsEmpty())

	rating := "good"
	assert.False(t, (&Feedback{Rating: &rating}).IsEmpty())
}
