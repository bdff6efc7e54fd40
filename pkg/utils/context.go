package utils

import (
	"context"
)

type contextKey string

const ClaimsKey contextKey = "claims"

// SetClaimsContext stores the verified admin token claims.
func SetClaimsContext(ctx context.Context, claims *TokenClaims) context.Context {
	return context.WithValue(ctx, ClaimsKey, claims)
}

func GetClaimsFromContext(ctx context.Context) (*TokenClaims, bool) {
	claims, ok := ctx.Value(ClaimsKey).(*TokenClaims)
	return claims, ok && claims != nil
}
