package adaptor

import (
	"encoding/json"
	"net/http"

	"appointment-booking/internal/dto/request"
	"appointment-booking/internal/usecase"
	"appointment-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type AdminHandler struct {
	service usecase.AdminService
	log     *zap.Logger
}

func NewAdminHandler(service usecase.AdminService, log *zap.Logger) *AdminHandler {
	return &AdminHandler{
		service: service,
		log:     log.With(zap.String("handler", "admin")),
	}
}

// ListAppointments handles GET /api/admin/appointments?status=
func (h *AdminHandler) ListAppointments(w http.ResponseWriter, r *http.Request) {
	appointments, err := h.service.ListAppointments(r.Context(), r.URL.Query().Get("status"))
	if err != nil {
		handleServiceError(w, h.log, err, "list appointments")
		return
	}

	utils.ResponseSuccess(w, "Appointments retrieved", appointments)
}

// UpdateStatus handles PATCH/PUT /api/admin/appointments/{id}/status
func (h *AdminHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req request.UpdateStatusRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	appointment, err := h.service.UpdateStatus(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update appointment status")
		return
	}

	utils.ResponseSuccess(w, "Appointment status updated", appointment)
}
