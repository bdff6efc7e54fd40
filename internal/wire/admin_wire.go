package wire

import (
	"net/http"

	"appointment-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireAdmin(r chi.Router, adminHandler *adaptor.AdminHandler, auth func(http.Handler) http.Handler) {
	r.Group(func(r chi.Router) {
		r.Use(auth)

		r.Get("/api/admin/appointments", adminHandler.ListAppointments)
		r.Patch("/api/admin/appointments/{id}/status", adminHandler.UpdateStatus)
		r.Put("/api/admin/appointments/{id}/status", adminHandler.UpdateStatus)
	})
}
