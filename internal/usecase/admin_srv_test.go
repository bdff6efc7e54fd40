package usecase

import (
	"context"
	"strconv"
	"testing"

	"appointment-booking/internal/data/entity"
	"appointment-booking/internal/data/repository/repotest"
	"appointment-booking/internal/dto/request"
	"appointment-booking/internal/dto/response"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newAdminFixture(t *testing.T, dates ...string) (AdminService, []int64) {
	store := repotest.NewStore()
	booking := newBookingService(store, testBooking)

	ids := make([]int64, 0, len(dates))
	for _, date := range dates {
		resp, err := booking.SubmitAppointment(context.Background(), submitRequest(date, "physical"), nil)
		require.NoError(t, err)
		ids = append(ids, resp.ID)
	}
	return NewAdminService(store.Repository(), nil, zap.NewNop()), ids
}

func idOf(id int64) string {
	return strconv.FormatInt(id, 10)
}

func responseIDs(rows []response.AppointmentResponse) []int64 {
	ids := make([]int64, 0, len(rows))
	for _, r := range rows {
		ids = append(ids, r.ID)
	}
	return ids
}

func TestUpdateStatusUnknownID(t *testing.T) {
	svc, _ := newAdminFixture(t, "2024-06-01")

	_, err := svc.UpdateStatus(context.Background(), "999", &request.UpdateStatusRequest{Status: "approved"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateStatusValidation(t *testing.T) {
	svc, ids := newAdminFixture(t, "2024-06-01")
	ctx := context.Background()

	_, err := svc.UpdateStatus(ctx, "abc", &request.UpdateStatusRequest{Status: "approved"})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.UpdateStatus(ctx, "0", &request.UpdateStatusRequest{Status: "approved"})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.UpdateStatus(ctx, idOf(ids[0]), &request.UpdateStatusRequest{Status: "cancelled"})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.UpdateStatus(ctx, idOf(ids[0]), &request.UpdateStatusRequest{})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestUpdateStatusAnyToAny(t *testing.T) {
	svc, ids := newAdminFixture(t, "2024-06-01")
	ctx := context.Background()
	id := idOf(ids[0])

	for _, from := range entity.AppointmentStatuses {
		for _, to := range entity.AppointmentStatuses {
			_, err := svc.UpdateStatus(ctx, id, &request.UpdateStatusRequest{Status: string(from)})
			require.NoError(t, err)

			resp, err := svc.UpdateStatus(ctx, id, &request.UpdateStatusRequest{Status: string(to)})
			require.NoError(t, err, "%s -> %s", from, to)
			assert.Equal(t, to, resp.Status)

			rows, err := svc.ListAppointments(ctx, string(to))
			require.NoError(t, err)
			assert.Equal(t, []int64{ids[0]}, responseIDs(rows))
		}
	}
}

func TestUpdateStatusAcceptsMixedCase(t *testing.T) {
	svc, ids := newAdminFixture(t, "2024-06-01")

	resp, err := svc.UpdateStatus(context.Background(), idOf(ids[0]), &request.UpdateStatusRequest{Status: "Approved"})
	require.NoError(t, err)
	assert.Equal(t, entity.AppointmentStatusApproved, resp.Status)
}

func TestListAppointmentsFilter(t *testing.T) {
	svc, ids := newAdminFixture(t, "2024-06-01", "2024-06-03", "2024-06-02", "2024-06-03")
	ctx := context.Background()

	_, err := svc.UpdateStatus(ctx, idOf(ids[0]), &request.UpdateStatusRequest{Status: "approved"})
	require.NoError(t, err)
	_, err = svc.UpdateStatus(ctx, idOf(ids[1]), &request.UpdateStatusRequest{Status: "rejected"})
	require.NoError(t, err)

	all, err := svc.ListAppointments(ctx, "")
	require.NoError(t, err)
	// date DESC, then newest first
	assert.Equal(t, []int64{ids[3], ids[1], ids[2], ids[0]}, responseIDs(all))

	approved, err := svc.ListAppointments(ctx, "approved")
	require.NoError(t, err)
	require.Len(t, approved, 1)
	assert.Equal(t, ids[0], approved[0].ID)
	assert.Equal(t, entity.AppointmentStatusApproved, approved[0].Status)

	var union []int64
	for _, status := range entity.AppointmentStatuses {
		rows, err := svc.ListAppointments(ctx, string(status))
		require.NoError(t, err)
		for _, row := range rows {
			assert.Equal(t, status, row.Status)
		}
		union = append(union, responseIDs(rows)...)
	}
	assert.ElementsMatch(t, responseIDs(all), union)

	_, err = svc.ListAppointments(ctx, "archived")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestListAppointmentsIncludesFeedback(t *testing.T) {
	store := repotest.NewStore()
	booking := newBookingService(store, testBooking)

	req := submitRequest("2024-06-01", "online")
	req.Rating = "good"
	_, err := booking.SubmitAppointment(context.Background(), req, nil)
	require.NoError(t, err)
	_, err = booking.SubmitAppointment(context.Background(), submitRequest("2024-06-01", "online"), nil)
	require.NoError(t, err)

	svc := NewAdminService(store.Repository(), nil, zap.NewNop())
	rows, err := svc.ListAppointments(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Nil(t, rows[0].Feedback)
	require.NotNil(t, rows[1].Feedback)
	assert.Equal(t, "good", *rows[1].Feedback.Rating)
}
