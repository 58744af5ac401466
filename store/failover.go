package store

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

// FailoverTokenStore routes calls to a primary store and falls back to a
// secondary one when the primary errors. After a failure the primary is
// retried at most once a minute.
type FailoverTokenStore struct {
	primary  TokenStore
	fallback TokenStore
	logger   zerolog.Logger

	isDown    atomic.Bool
	mu        sync.Mutex
	lastCheck time.Time
}

func NewFailoverTokenStore(primary, fallback TokenStore, logger zerolog.Logger) *FailoverTokenStore {
	return &FailoverTokenStore{
		primary:  primary,
		fallback: fallback,
		logger:   logger,
	}
}

// usePrimary reports whether the primary should be attempted for this call.
func (s *FailoverTokenStore) usePrimary() bool {
	if !s.isDown.Load() {
		return true
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if time.Since(s.lastCheck) > time.Minute {
		s.lastCheck = time.Now()
		return true
	}
	return false
}

func (s *FailoverTokenStore) markDown(err error) {
	if !s.isDown.Swap(true) {
		s.logger.Error().Err(err).Msg("primary token store failed, falling back to memory")
	}
	s.mu.Lock()
	s.lastCheck = time.Now()
	s.mu.Unlock()
}

func (s *FailoverTokenStore) markUp() {
	if s.isDown.Swap(false) {
		s.logger.Info().Msg("primary token store recovered")
	}
}

func (s *FailoverTokenStore) SaveRefreshToken(ctx context.Context, token string, userID uint, ttl time.Duration) error {
	if s.usePrimary() {
		if err := s.primary.SaveRefreshToken(ctx, token, userID, ttl); err == nil {
			s.markUp()
			return nil
		} else {
			s.markDown(err)
		}
	}
	return s.fallback.SaveRefreshToken(ctx, token, userID, ttl)
}

func (s *FailoverTokenStore) UserIDForRefreshToken(ctx context.Context, token string) (uint, bool, error) {
	if s.usePrimary() {
		id, ok, err := s.primary.UserIDForRefreshToken(ctx, token)
		if err == nil {
			s.markUp()
			return id, ok, nil
		}
		s.markDown(err)
	}
	return s.fallback.UserIDForRefreshToken(ctx, token)
}

func (s *FailoverTokenStore) DeleteRefreshToken(ctx context.Context, token string) error {
	if s.usePrimary() {
		if err := s.primary.DeleteRefreshToken(ctx, token); err == nil {
			s.markUp()
			return nil
		} else {
			s.markDown(err)
		}
	}
	return s.fallback.DeleteRefreshToken(ctx, token)
}

func (s *FailoverTokenStore) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if s.usePrimary() {
		if err := s.primary.Revoke(ctx, tokenID, ttl); err == nil {
			s.markUp()
			return nil
		} else {
			s.markDown(err)
		}
	}
	return s.fallback.Revoke(ctx, tokenID, ttl)
}

func (s *FailoverTokenStore) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	if s.usePrimary() {
		revoked, err := s.primary.IsRevoked(ctx, tokenID)
		if err == nil {
			s.markUp()
			return revoked, nil
		}
		s.markDown(err)
	}
	return s.fallback.IsRevoked(ctx, tokenID)
}

func (s *FailoverTokenStore) SaveCSRFToken(ctx context.Context, token string, ttl time.Duration) error {
	if s.usePrimary() {
		if err := s.primary.SaveCSRFToken(ctx, token, ttl); err == nil {
			s.markUp()
			return nil
		} else {
			s.markDown(err)
		}
	}
	return s.fallback.SaveCSRFToken(ctx, token, ttl)
}

func (s *FailoverTokenStore) ValidCSRFToken(ctx context.Context, token string) (bool, error) {
	if s.usePrimary() {
		valid, err := s.primary.ValidCSRFToken(ctx, token)
		if err == nil {
			s.markUp()
			return valid, nil
		}
		s.markDown(err)
	}
	return s.fallback.ValidCSRFToken(ctx, token)
}
