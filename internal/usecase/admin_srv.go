package usecase

import (
	"context"
	"errors"
	"fmt"

	"appointment-booking/internal/data/entity"
	"appointment-booking/internal/data/repository"
	"appointment-booking/internal/dto/request"
	"appointment-booking/internal/dto/response"
	"appointment-booking/pkg/metrics"
	"appointment-booking/pkg/utils"

	"go.uber.org/zap"
)

type AdminService interface {
	// ListAppointments returns every appointment when status is empty.
	ListAppointments(ctx context.Context, status string) ([]response.AppointmentResponse, error)
	UpdateStatus(ctx context.Context, id string, req *request.UpdateStatusRequest) (*response.AppointmentResponse, error)
}

type adminService struct {
	repo    *repository.Repository
	metrics *metrics.Metrics
	log     *zap.Logger
}

func NewAdminService(repo *repository.Repository, m *metrics.Metrics, log *zap.Logger) AdminService {
	return &adminService{
		repo:    repo,
		metrics: m,
		log:     log.With(zap.String("service", "admin")),
	}
}

func (s *adminService) ListAppointments(ctx context.Context, rawStatus string) ([]response.AppointmentResponse, error) {
	var filter *entity.AppointmentStatus
	if rawStatus != "" {
		status, err := entity.ParseAppointmentStatus(rawStatus)
		if err != nil {
			return nil, invalidField("status", "Must be one of: pending, approved, rejected")
		}
		filter = &status
	}

	rows, err := s.repo.Appointment.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list appointments: %w", err)
	}

	result := make([]response.AppointmentResponse, 0, len(rows))
	for _, row := range rows {
		result = append(result, response.AppointmentToResponse(&row.Appointment, row.Feedback))
	}
	return result, nil
}

func (s *adminService) UpdateStatus(ctx context.Context, rawID string, req *request.UpdateStatusRequest) (*response.AppointmentResponse, error) {
	id, err := utils.ParseID(rawID)
	if err != nil {
		return nil, invalidField("id", "Must be a positive integer")
	}

	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, newValidationError(errs)
	}

	target, err := entity.ParseAppointmentStatus(req.Status)
	if err != nil {
		return nil, invalidField("status", "Must be one of: pending, approved, rejected")
	}

	appointment, err := s.repo.Appointment.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find appointment %d: %w", id, err)
	}
	if appointment == nil {
		return nil, fmt.Errorf("appointment %d %w", id, ErrNotFound)
	}

	if !entity.CanTransition(appointment.Status, target) {
		return nil, invalidField("status", fmt.Sprintf("Cannot change %s to %s", appointment.Status, target))
	}

	if err := s.repo.Appointment.UpdateStatus(ctx, id, target); err != nil {
		if errors.Is(err, repository.ErrAppointmentNotFound) {
			return nil, fmt.Errorf("appointment %d %w", id, ErrNotFound)
		}
		s.log.Error("Failed to update appointment status", zap.Error(err), zap.Int64("appointment_id", id))
		return nil, fmt.Errorf("update appointment %d: %w", id, err)
	}

	s.log.Info("Appointment status updated",
		zap.Int64("appointment_id", id),
		zap.String("from", string(appointment.Status)),
		zap.String("to", string(target)),
	)
	s.metrics.ObserveStatusUpdate(string(target))

	appointment.Status = target
	resp := response.AppointmentToResponse(appointment, nil)
	return &resp, nil
}
