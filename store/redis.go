package store

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

type RedisTokenStore struct {
	client *redis.Client
}

// NewRedisClient creates a Redis client from address/password/db settings.
func NewRedisClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
}

func NewRedisTokenStore(client *redis.Client) *RedisTokenStore {
	return &RedisTokenStore{client: client}
}

func refreshKey(token string) string { return "refresh_token:" + token }
func revokedKey(id string) string    { return "revoked_token:" + id }
func csrfKey(token string) string    { return "csrf_token:" + token }

func (s *RedisTokenStore) SaveRefreshToken(ctx context.Context, token string, userID uint, ttl time.Duration) error {
	if err := s.client.Set(ctx, refreshKey(token), strconv.FormatUint(uint64(userID), 10), ttl).Err(); err != nil {
		return fmt.Errorf("failed to save refresh token: %w", err)
	}
	return nil
}

func (s *RedisTokenStore) UserIDForRefreshToken(ctx context.Context, token string) (uint, bool, error) {
	val, err := s.client.Get(ctx, refreshKey(token)).Result()
	if err == redis.Nil {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("failed to get refresh token: %w", err)
	}
	id, err := strconv.ParseUint(val, 10, 64)
	if err != nil {
		return 0, false, fmt.Errorf("corrupt refresh token value: %w", err)
	}
	return uint(id), true, nil
}

func (s *RedisTokenStore) DeleteRefreshToken(ctx context.Context, token string) error {
	if err := s.client.Del(ctx, refreshKey(token)).Err(); err != nil {
		return fmt.Errorf("failed to delete refresh token: %w", err)
	}
	return nil
}

func (s *RedisTokenStore) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if err := s.client.Set(ctx, revokedKey(tokenID), "1", ttl).Err(); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	return nil
}

func (s *RedisTokenStore) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	_, err := s.client.Get(ctx, revokedKey(tokenID)).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check revocation: %w", err)
	}
	return true, nil
}

func (s *RedisTokenStore) SaveCSRFToken(ctx context.Context, token string, ttl time.Duration) error {
	if err := s.client.Set(ctx, csrfKey(token), "1", ttl).Err(); err != nil {
		return fmt.Errorf("failed to save csrf token: %w", err)
	}
	return nil
}

func (s *RedisTokenStore) ValidCSRFToken(ctx context.Context, token string) (bool, error) {
	_, err := s.client.Get(ctx, csrfKey(token)).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check csrf token: %w", err)
	}
	return true, nil
}
