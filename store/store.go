package store

import (
	"context"
	"time"
)

// TokenStore holds short-lived auth artifacts: refresh tokens mapped to a
// user id, revocation marks for access-token ids, and CSRF tokens.
// Implementations: Redis-backed, in-memory, and a failover wrapper.
type TokenStore interface {
	SaveRefreshToken(ctx context.Context, token string, userID uint, ttl time.Duration) error
	UserIDForRefreshToken(ctx context.Context, token string) (uint, bool, error)
	DeleteRefreshToken(ctx context.Context, token string) error

	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)

	SaveCSRFToken(ctx context.Context, token string, ttl time.Duration) error
	ValidCSRFToken(ctx context.Context, token string) (bool, error)
}
