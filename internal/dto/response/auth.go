package response

import (
	"time"
)

type AuthResponse struct {
	Token     string     `json:"token"`
	TokenType string     `json:"token_type"`
	Username  string     `json:"username,omitempty"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}
