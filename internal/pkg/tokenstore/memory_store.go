package tokenstore

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"
)

// MemoryStore backs single-process deployments and tests.
type MemoryStore struct {
	cache *cache.Cache
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		cache: cache.New(10*time.Hour, 30*time.Minute),
	}
}

func (s *MemoryStore) Revoke(ctx context.Context, token string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	s.cache.Set(hashToken(token), struct{}{}, ttl)
	return nil
}

func (s *MemoryStore) IsRevoked(ctx context.Context, token string) (bool, error) {
	_, found := s.cache.Get(hashToken(token))
	return found, nil
}

var _ RevocationStore = (*MemoryStore)(nil)
