package usecase

import (
	"context"
	"testing"

	"appointment-booking/internal/data/repository/repotest"
	"appointment-booking/internal/dto/request"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newFeedbackFixture(t *testing.T, appointments int) (FeedbackService, *repotest.Store) {
	store := repotest.NewStore()
	booking := newBookingService(store, testBooking)
	for i := 0; i < appointments; i++ {
		_, err := booking.SubmitAppointment(context.Background(), submitRequest("2024-06-01", "online"), nil)
		require.NoError(t, err)
	}
	return NewFeedbackService(store.Repository(), nil, zap.NewNop()), store
}

func TestAddFeedback(t *testing.T) {
	svc, _ := newFeedbackFixture(t, 1)
	ctx := context.Background()

	resp, err := svc.AddFeedback(ctx, "1", &request.FeedbackRequest{Feedback: "Very helpful", Rating: "5 stars"}, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.AppointmentID)
	assert.Equal(t, "Very helpful", *resp.FeedbackText)
	assert.Nil(t, resp.VideoPath)

	_, err = svc.AddFeedback(ctx, "1", &request.FeedbackRequest{Rating: "again"}, nil)
	assert.ErrorIs(t, err, ErrFeedbackExists)
}

func TestAddFeedbackErrors(t *testing.T) {
	svc, _ := newFeedbackFixture(t, 1)
	ctx := context.Background()

	_, err := svc.AddFeedback(ctx, "42", &request.FeedbackRequest{Rating: "ok"}, nil)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.AddFeedback(ctx, "1", &request.FeedbackRequest{}, nil)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.AddFeedback(ctx, "x", &request.FeedbackRequest{Rating: "ok"}, nil)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestAddFeedbackAfterIntakeFeedback(t *testing.T) {
	store := repotest.NewStore()
	booking := newBookingService(store, testBooking)

	req := submitRequest("2024-06-01", "online")
	req.Feedback = "left at booking"
	resp, err := booking.SubmitAppointment(context.Background(), req, nil)
	require.NoError(t, err)

	svc := NewFeedbackService(store.Repository(), nil, zap.NewNop())
	_, err = svc.AddFeedback(context.Background(), idOf(resp.ID), &request.FeedbackRequest{Rating: "ok"}, nil)
	assert.ErrorIs(t, err, ErrFeedbackExists)
}

func TestAddFeedbackWithVideo(t *testing.T) {
	store := repotest.NewStore()
	booking := newBookingService(store, testBooking)
	_, err := booking.SubmitAppointment(context.Background(), submitRequest("2024-06-01", "online"), nil)
	require.NoError(t, err)

	videos, dir := newVideoStore(t)
	svc := NewFeedbackService(store.Repository(), videos, zap.NewNop())

	resp, err := svc.AddFeedback(context.Background(), "1", &request.FeedbackRequest{}, fileHeader(t, "thanks.mp4", mp4Bytes()))
	require.NoError(t, err)
	require.NotNil(t, resp.VideoPath)
	assert.Len(t, dirEntries(t, dir), 1)
}

func TestListFeedbackNewestFirst(t *testing.T) {
	svc, _ := newFeedbackFixture(t, 3)
	ctx := context.Background()

	for _, id := range []string{"2", "1", "3"} {
		_, err := svc.AddFeedback(ctx, id, &request.FeedbackRequest{Rating: "ok"}, nil)
		require.NoError(t, err)
	}

	feedbacks, err := svc.ListFeedback(ctx)
	require.NoError(t, err)
	require.Len(t, feedbacks, 3)
	assert.Equal(t, int64(3), feedbacks[0].AppointmentID)
	assert.Equal(t, int64(1), feedbacks[1].AppointmentID)
	assert.Equal(t, int64(2), feedbacks[2].AppointmentID)
}
