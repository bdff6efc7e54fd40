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
	"appointment-booking/pkg/storage"
	"appointment-booking/pkg/utils"

	"go.uber.org/zap"
)

type FeedbackService interface {
	AddFeedback(ctx context.Context, appointmentID string, req *request.FeedbackRequest, video *multipart.FileHeader) (*response.FeedbackResponse, error)
	ListFeedback(ctx context.Context) ([]response.FeedbackResponse, error)
}

type feedbackService struct {
	repo   *repository.Repository
	videos storage.VideoStore
	log    *zap.Logger
}

func NewFeedbackService(repo *repository.Repository, videos storage.VideoStore, log *zap.Logger) FeedbackService {
	return &feedbackService{
		repo:   repo,
		videos: videos,
		log:    log.With(zap.String("service", "feedback")),
	}
}

func (s *feedbackService) AddFeedback(ctx context.Context, rawID string, req *request.FeedbackRequest, video *multipart.FileHeader) (*response.FeedbackResponse, error) {
	id, err := utils.ParseID(rawID)
	if err != nil {
		return nil, invalidField("id", "Must be a positive integer")
	}

	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, newValidationError(errs)
	}
	if req.Feedback == "" && req.Rating == "" && video == nil {
		return nil, invalidField("feedback", "Provide feedback text, a rating or a video")
	}

	appointment, err := s.repo.Appointment.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find appointment %d: %w", id, err)
	}
	if appointment == nil {
		return nil, fmt.Errorf("appointment %d %w", id, ErrNotFound)
	}

	existing, err := s.repo.Feedback.FindByAppointmentID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find feedback: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("appointment %d: %w", id, ErrFeedbackExists)
	}

	videoPath, err := storeVideo(s.videos, video)
	if err != nil {
		s.log.Warn("Video upload rejected", zap.Error(err))
		return nil, err
	}

	feedback := &entity.Feedback{
		AppointmentID: id,
		FeedbackText:  optional(req.Feedback),
		Rating:        optional(req.Rating),
		VideoPath:     videoPath,
	}

	if err := s.repo.Feedback.Create(ctx, feedback); err != nil {
		discardVideo(s.videos, videoPath)

		if errors.Is(err, repository.ErrFeedbackExists) {
			return nil, fmt.Errorf("appointment %d: %w", id, ErrFeedbackExists)
		}
		s.log.Error("Failed to create feedback", zap.Error(err), zap.Int64("appointment_id", id))
		return nil, fmt.Errorf("create feedback: %w", err)
	}

	s.log.Info("Feedback added", zap.Int64("appointment_id", id), zap.Bool("video", videoPath != nil))

	resp := response.FeedbackToResponse(feedback)
	return &resp, nil
}

func (s *feedbackService) ListFeedback(ctx context.Context) ([]response.FeedbackResponse, error) {
	feedbacks, err := s.repo.Feedback.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list feedback: %w", err)
	}

	result := make([]response.FeedbackResponse, 0, len(feedbacks))
	for _, f := range feedbacks {
		result = append(result, response.FeedbackToResponse(f))
	}
	return result, nil
}
