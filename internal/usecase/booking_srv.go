package usecase

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"

	"appointment-booking/internal/data/entity"
	"appointment-booking/internal/data/repository"
	"appointment-booking/internal/dto/request"
	"appointment-booking/internal/dto/response"
	"appointment-booking/pkg/metrics"
	"appointment-booking/pkg/storage"
	"appointment-booking/pkg/utils"

	"go.uber.org/zap"
)

type BookingService interface {
	// Public endpoints
	SubmitAppointment(ctx context.Context, req *request.SubmitAppointmentRequest, video *multipart.FileHeader) (*response.AppointmentResponse, error)
	CountByDate(ctx context.Context, date string) (*response.DailyCountResponse, error)
}

type bookingService struct {
	repo    *repository.Repository
	config  utils.BookingConfig
	videos  storage.VideoStore
	metrics *metrics.Metrics
	log     *zap.Logger
}

func NewBookingService(
	repo *repository.Repository,
	config utils.BookingConfig,
	videos storage.VideoStore,
	m *metrics.Metrics,
	log *zap.Logger,
) BookingService {
	return &bookingService{
		repo:    repo,
		config:  config,
		videos:  videos,
		metrics: m,
		log:     log.With(zap.String("service", "booking")),
	}
}

func (s *bookingService) ceiling(t entity.AppointmentType) int {
	if t == entity.AppointmentTypeOnline {
		return s.config.OnlineCapacity
	}
	return s.config.PhysicalCapacity
}

func (s *bookingService) SubmitAppointment(ctx context.Context, req *request.SubmitAppointmentRequest, video *multipart.FileHeader) (*response.AppointmentResponse, error) {
	// Validate request
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Submit appointment validation failed", zap.Any("errors", errs))
		return nil, newValidationError(errs)
	}

	date, err := utils.ParseDate(req.Date)
	if err != nil {
		return nil, invalidField("date", "Must match layout "+utils.DateLayout)
	}

	appointmentType, err := entity.ParseAppointmentType(req.AppointmentType)
	if err != nil {
		return nil, invalidField("appointment_type", "Must be one of: online, physical")
	}

	// Pre-check capacity before touching the upload
	ceiling := s.ceiling(appointmentType)
	count, err := s.repo.Appointment.CountByDateAndType(ctx, date, appointmentType)
	if err != nil {
		return nil, fmt.Errorf("check capacity: %w", err)
	}
	if count >= ceiling {
		s.log.Info("Appointment rejected, slot full",
			zap.String("date", req.Date),
			zap.String("type", string(appointmentType)),
			zap.Int("count", count),
			zap.Int("ceiling", ceiling),
		)
		s.metrics.ObserveSubmission(string(appointmentType), "full")
		return nil, fmt.Errorf("%w: %d of %d %s slots taken on %s",
			ErrCapacityReached, count, ceiling, appointmentType, req.Date)
	}

	videoPath, err := storeVideo(s.videos, video)
	if err != nil {
		s.log.Warn("Video upload rejected", zap.Error(err))
		return nil, err
	}

	appointment := &entity.Appointment{
		Date:            date,
		TimeSlot:        optional(req.TimeSlot),
		AppointmentType: appointmentType,
		FullName:        req.FullName,
		StreetAddress:   req.StreetAddress,
		Area:            req.Area,
		Phone:           req.Phone,
		Email:           req.Email,
		MeetingPurpose:  req.MeetingPurpose,
		Status:          entity.AppointmentStatusPending,
	}
	feedback := &entity.Feedback{
		FeedbackText: optional(req.Feedback),
		Rating:       optional(req.Rating),
		VideoPath:    videoPath,
	}

	// Strict mode repeats the count under a lock inside the insert transaction
	guard := 0
	if s.config.StrictCapacity {
		guard = ceiling
	}

	if err := s.repo.Appointment.Create(ctx, appointment, feedback, guard); err != nil {
		discardVideo(s.videos, videoPath)

		if errors.Is(err, repository.ErrSlotFull) {
			s.metrics.ObserveSubmission(string(appointmentType), "full")
			return nil, fmt.Errorf("%w: %s %s", ErrCapacityReached, appointmentType, req.Date)
		}
		s.log.Error("Failed to create appointment", zap.Error(err))
		s.metrics.ObserveSubmission(string(appointmentType), "error")
		return nil, fmt.Errorf("create appointment: %w", err)
	}

	s.metrics.ObserveSubmission(string(appointmentType), "accepted")
	s.log.Info("Appointment submitted",
		zap.Int64("appointment_id", appointment.ID),
		zap.String("date", req.Date),
		zap.String("type", string(appointmentType)),
	)

	resp := response.AppointmentToResponse(appointment, feedback)
	return &resp, nil
}

func (s *bookingService) CountByDate(ctx context.Context, rawDate string) (*response.DailyCountResponse, error) {
	if rawDate == "" {
		return nil, invalidField("date", "This field is required")
	}
	date, err := utils.ParseDate(rawDate)
	if err != nil {
		return nil, invalidField("date", "Must match layout "+utils.DateLayout)
	}

	count, err := s.repo.Appointment.CountByDate(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("count appointments: %w", err)
	}

	return &response.DailyCountResponse{
		Date:             date.Format(utils.DateLayout),
		Online:           count.Online,
		Physical:         count.Physical,
		OnlineCapacity:   s.config.OnlineCapacity,
		PhysicalCapacity: s.config.PhysicalCapacity,
	}, nil
}
