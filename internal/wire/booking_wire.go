package wire

import (
	"appointment-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireBooking(r chi.Router, bookingHandler *adaptor.BookingHandler) {
	r.Post("/api/appointments", bookingHandler.SubmitAppointment)
	r.Get("/api/appointments/count", bookingHandler.CountByDate)
}
