package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"appointment-booking/internal/data/repository/repotest"
	"appointment-booking/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestAuthJWT(t *testing.T) {
	tokens := utils.NewTokenManager("middleware-secret", time.Hour)
	denylist := repotest.NewStore().Repository().Token

	valid, _, err := tokens.Issue("admin", "admin")
	require.NoError(t, err)

	revoked, revokedClaims, err := tokens.Issue("admin", "admin")
	require.NoError(t, err)
	require.NoError(t, denylist.Revoke(context.Background(), revokedClaims.ID, time.Hour))

	foreign, _, err := utils.NewTokenManager("other-secret", time.Hour).Issue("admin", "admin")
	require.NoError(t, err)

	var seen *utils.TokenClaims
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = utils.GetClaimsFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})
	handler := AuthJWT(tokens, denylist, zap.NewNop())(next)

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Token " + valid, http.StatusUnauthorized},
		{"no token", "Bearer", http.StatusUnauthorized},
		{"garbage", "Bearer not-a-jwt", http.StatusUnauthorized},
		{"wrong secret", "Bearer " + foreign, http.StatusUnauthorized},
		{"revoked", "Bearer " + revoked, http.StatusUnauthorized},
		{"valid", "Bearer " + valid, http.StatusNoContent},
		{"lowercase scheme", "bearer " + valid, http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seen = nil
			req := httptest.NewRequest(http.MethodGet, "/api/admin/appointments", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.want, rec.Code)
			if tt.want == http.StatusNoContent {
				require.NotNil(t, seen)
				assert.Equal(t, "admin", seen.Subject)
			} else {
				assert.Nil(t, seen)
			}
		})
	}
}

func TestRecoverWritesEnvelope(t *testing.T) {
	handler := Recover(zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"success":false,"message":"Internal server error"}`, rec.Body.String())
}
