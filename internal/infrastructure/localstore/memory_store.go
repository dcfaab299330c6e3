package localstore

import (
	"context"

	"github.com/riskibarqy/matchday-favorites/internal/platform/cache"
)

// MemoryStore keeps device entries in process memory. Entries never expire.
type MemoryStore struct {
	store *cache.Store
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{store: cache.NewStore(0)}
}

func (s *MemoryStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	value, ok := s.store.Get(ctx, key)
	if !ok {
		return nil, false, nil
	}
	raw, _ := value.([]byte)
	return append([]byte(nil), raw...), true, nil
}

func (s *MemoryStore) Set(ctx context.Context, key string, value []byte) error {
	s.store.Set(ctx, key, append([]byte(nil), value...))
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, key string) error {
	s.store.Delete(ctx, key)
	return nil
}

func (s *MemoryStore) Close() error {
	return nil
}
