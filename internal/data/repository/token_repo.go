package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// TokenDenylist records revoked bearer token IDs until they would have
// expired anyway.
type TokenDenylist interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
	Enabled() bool
}

type redisTokenDenylist struct {
	rdb *redis.Client
	log *zap.Logger
}

func NewTokenDenylist(rdb *redis.Client, log *zap.Logger) TokenDenylist {
	log = log.With(zap.String("repository", "token_denylist"))
	if rdb == nil {
		log.Warn("Redis not configured, token revocation disabled")
		return noopTokenDenylist{}
	}
	return &redisTokenDenylist{rdb: rdb, log: log}
}

func revokedKey(tokenID string) string {
	return "revoked_token:" + tokenID
}

// Revoke with ttl 0 keeps the entry forever, matching tokens without exp.
func (d *redisTokenDenylist) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if err := d.rdb.Set(ctx, revokedKey(tokenID), 1, ttl).Err(); err != nil {
		d.log.Error("Failed to revoke token", zap.Error(err), zap.String("jti", tokenID))
		return fmt.Errorf("revoke token %s: %w", tokenID, err)
	}
	return nil
}

func (d *redisTokenDenylist) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := d.rdb.Exists(ctx, revokedKey(tokenID)).Result()
	if err != nil {
		d.log.Error("Failed to check revoked token", zap.Error(err), zap.String("jti", tokenID))
		return false, fmt.Errorf("check token %s: %w", tokenID, err)
	}
	return n > 0, nil
}

func (d *redisTokenDenylist) Enabled() bool { return true }

type noopTokenDenylist struct{}

func (noopTokenDenylist) Revoke(context.Context, string, time.Duration) error { return nil }

func (noopTokenDenylist) IsRevoked(context.Context, string) (bool, error) { return false, nil }

func (noopTokenDenylist) Enabled() bool { return false }
