package middleware

import (
	"net/http"
	"strings"

	"appointment-booking/internal/data/repository"
	"appointment-booking/pkg/utils"

	"go.uber.org/zap"
)

// AuthJWT guards admin routes with a signed bearer token. Revoked tokens are
// rejected when a denylist backend is configured.
func AuthJWT(tokens *utils.TokenManager, denylist repository.TokenDenylist, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				utils.ResponseUnauthorized(w, "Missing authorization token")
				return
			}

			parts := strings.Fields(authHeader)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				utils.ResponseUnauthorized(w, "Invalid token format. Use: Bearer <token>")
				return
			}

			claims, err := tokens.Parse(parts[1])
			if err != nil {
				logger.Warn("Invalid admin token",
					zap.String("path", r.URL.Path),
					zap.Error(err))
				utils.ResponseUnauthorized(w, "Invalid or expired token")
				return
			}

			revoked, err := denylist.IsRevoked(r.Context(), claims.ID)
			if err != nil {
				logger.Error("Failed to check token revocation",
					zap.String("jti", claims.ID),
					zap.Error(err))
				utils.ResponseInternalError(w, "Internal server error")
				return
			}
			if revoked {
				logger.Warn("Revoked token used", zap.String("jti", claims.ID))
				utils.ResponseUnauthorized(w, "Token has been revoked")
				return
			}

			ctx := utils.SetClaimsContext(r.Context(), claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
