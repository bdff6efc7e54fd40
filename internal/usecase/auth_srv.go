package usecase

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"appointment-booking/internal/data/repository"
	"appointment-booking/internal/dto/request"
	"appointment-booking/internal/dto/response"
	"appointment-booking/pkg/metrics"
	"appointment-booking/pkg/utils"

	"go.uber.org/zap"
)

// staticAdmin names the subject of tokens issued for the shared password.
const staticAdmin = "admin"

type AuthService interface {
	Login(ctx context.Context, req *request.LoginRequest) (*response.AuthResponse, error)
	Logout(ctx context.Context, claims *utils.TokenClaims) error
}

type authService struct {
	repo    *repository.Repository
	config  utils.AdminConfig
	tokens  *utils.TokenManager
	metrics *metrics.Metrics
	now     func() time.Time
	log     *zap.Logger
}

func NewAuthService(
	repo *repository.Repository,
	config utils.AdminConfig,
	tokens *utils.TokenManager,
	m *metrics.Metrics,
	log *zap.Logger,
) AuthService {
	return &authService{
		repo:    repo,
		config:  config,
		tokens:  tokens,
		metrics: m,
		now:     time.Now,
		log:     log.With(zap.String("service", "auth")),
	}
}

func (s *authService) Login(ctx context.Context, req *request.LoginRequest) (*response.AuthResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, newValidationError(errs)
	}

	subject, username, err := s.authenticate(ctx, req)
	if err != nil {
		s.metrics.ObserveLogin("failure")
		return nil, err
	}

	token, claims, err := s.tokens.Issue(subject, username)
	if err != nil {
		s.log.Error("Failed to issue token", zap.Error(err))
		return nil, fmt.Errorf("issue token: %w", err)
	}

	s.metrics.ObserveLogin("success")
	s.log.Info("Admin logged in", zap.String("username", username), zap.String("jti", claims.ID))

	resp := &response.AuthResponse{
		Token:     token,
		TokenType: "Bearer",
		Username:  username,
	}
	if claims.ExpiresAt != nil {
		expiresAt := claims.ExpiresAt.Time
		resp.ExpiresAt = &expiresAt
	}
	return resp, nil
}

// authenticate checks the shared password when no username is given,
// otherwise the admin account.
func (s *authService) authenticate(ctx context.Context, req *request.LoginRequest) (string, string, error) {
	if req.Username == "" {
		if !utils.CheckStaticPassword(req.Password, s.config.Password) {
			s.log.Warn("Admin login failed", zap.String("method", "password"))
			return "", "", ErrUnauthorized
		}
		return staticAdmin, staticAdmin, nil
	}

	admin, err := s.repo.Admin.FindByUsername(ctx, req.Username)
	if err != nil {
		return "", "", fmt.Errorf("find admin: %w", err)
	}
	if admin == nil || !utils.CheckPasswordHash(req.Password, admin.PasswordHash) {
		s.log.Warn("Admin login failed", zap.String("method", "account"), zap.String("username", req.Username))
		return "", "", ErrUnauthorized
	}
	return strconv.FormatInt(admin.ID, 10), admin.Username, nil
}

func (s *authService) Logout(ctx context.Context, claims *utils.TokenClaims) error {
	if claims == nil {
		return ErrUnauthorized
	}

	if !s.repo.Token.Enabled() {
		s.log.Info("Logout without revocation backend", zap.String("jti", claims.ID))
		return nil
	}

	if err := s.repo.Token.Revoke(ctx, claims.ID, claims.TTL(s.now())); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}

	s.log.Info("Admin logged out", zap.String("username", claims.Username), zap.String("jti", claims.ID))
	return nil
}
