package usecase

import (
	"appointment-booking/internal/data/repository"
	"appointment-booking/pkg/metrics"
	"appointment-booking/pkg/storage"
	"appointment-booking/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Booking  BookingService
	Admin    AdminService
	Auth     AuthService
	Feedback FeedbackService
}

// NewService builds every service. videos and m may be nil: uploads are then
// refused and nothing is recorded.
func NewService(
	repo *repository.Repository,
	config *utils.Config,
	videos storage.VideoStore,
	tokens *utils.TokenManager,
	m *metrics.Metrics,
	log *zap.Logger,
) *Service {
	return &Service{
		Booking:  NewBookingService(repo, config.Booking, videos, m, log),
		Admin:    NewAdminService(repo, m, log),
		Auth:     NewAuthService(repo, config.Admin, tokens, m, log),
		Feedback: NewFeedbackService(repo, videos, log),
	}
}
