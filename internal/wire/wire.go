package wire

import (
	"net/http"
	"time"

	"appointment-booking/internal/adaptor"
	"appointment-booking/internal/data/repository"
	"appointment-booking/internal/usecase"
	"appointment-booking/pkg/metrics"
	"appointment-booking/pkg/middleware"
	"appointment-booking/pkg/storage"
	"appointment-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// App holds the wired HTTP surface
type App struct {
	Router *chi.Mux
}

// Wiring builds services, handlers and routes. videos and m may be nil.
func Wiring(
	repo *repository.Repository,
	config *utils.Config,
	logger *zap.Logger,
	videos storage.VideoStore,
	m *metrics.Metrics,
) *App {
	tokens := utils.NewTokenManager(config.JWT.Secret, time.Duration(config.JWT.ExpiryHours)*time.Hour)

	service := usecase.NewService(repo, config, videos, tokens, m, logger)
	handler := adaptor.NewHandler(service, config.Upload.MaxBytes(), logger)

	router := setupRouter(handler, repo, tokens, config, m, logger)

	return &App{
		Router: router,
	}
}

func setupRouter(
	handler *adaptor.Handler,
	repo *repository.Repository,
	tokens *utils.TokenManager,
	config *utils.Config,
	m *metrics.Metrics,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimw.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS(config.App.CORSOrigins))
	r.Use(m.Middleware)

	auth := middleware.AuthJWT(tokens, repo.Token, logger)

	wireBooking(r, handler.Booking)
	wireFeedback(r, handler.Feedback, auth)
	wireAuth(r, handler.Auth, auth)
	wireAdmin(r, handler.Admin, auth)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	if m != nil {
		r.Method(http.MethodGet, "/metrics", m.Handler())
	}

	return r
}
