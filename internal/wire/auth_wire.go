package wire

import (
	"net/http"

	"appointment-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireAuth(r chi.Router, authHandler *adaptor.AuthHandler, auth func(http.Handler) http.Handler) {
	r.Post("/api/admin/login", authHandler.Login)
	r.With(auth).Post("/api/admin/logout", authHandler.Logout)
}
