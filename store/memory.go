package store

import (
	"context"
	"strconv"
	"sync"
	"time"
)

type memoryEntry struct {
	value     string
	expiresAt time.Time
}

// MemoryTokenStore is the in-process fallback used when Redis is not
// configured or unreachable. Entries expire lazily on read.
type MemoryTokenStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
}

func NewMemoryTokenStore() *MemoryTokenStore {
	return &MemoryTokenStore{entries: make(map[string]memoryEntry)}
}

func (s *MemoryTokenStore) set(key, value string, ttl time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry := memoryEntry{value: value}
	if ttl > 0 {
		entry.expiresAt = time.Now().Add(ttl)
	}
	s.entries[key] = entry
}

func (s *MemoryTokenStore) get(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.entries[key]
	if !ok {
		return "", false
	}
	if !entry.expiresAt.IsZero() && time.Now().After(entry.expiresAt) {
		delete(s.entries, key)
		return "", false
	}
	return entry.value, true
}

func (s *MemoryTokenStore) delete(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key)
}

func (s *MemoryTokenStore) SaveRefreshToken(ctx context.Context, token string, userID uint, ttl time.Duration) error {
	s.set(refreshKey(token), strconv.FormatUint(uint64(userID), 10), ttl)
	return nil
}

func (s *MemoryTokenStore) UserIDForRefreshToken(ctx context.Context, token string) (uint, bool, error) {
	val, ok := s.get(refreshKey(token))
	if !ok {
		return 0, false, nil
	}
	id, err := strconv.ParseUint(val, 10, 64)
	if err != nil {
		return 0, false, err
	}
	return uint(id), true, nil
}

func (s *MemoryTokenStore) DeleteRefreshToken(ctx context.Context, token string) error {
	s.delete(refreshKey(token))
	return nil
}

func (s *MemoryTokenStore) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	s.set(revokedKey(tokenID), "1", ttl)
	return nil
}

func (s *MemoryTokenStore) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	_, ok := s.get(revokedKey(tokenID))
	return ok, nil
}

func (s *MemoryTokenStore) SaveCSRFToken(ctx context.Context, token string, ttl time.Duration) error {
	s.set(csrfKey(token), "1", ttl)
	return nil
}

func (s *MemoryTokenStore) ValidCSRFToken(ctx context.Context, token string) (bool, error) {
	_, ok := s.get(csrfKey(token))
	return ok, nil
}
