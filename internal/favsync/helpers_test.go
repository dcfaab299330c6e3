package favsync

import (
	"context"
	"sync"
	"time"

	"github.com/riskibarqy/matchday-favorites/internal/domain/favorite"
	"github.com/riskibarqy/matchday-favorites/internal/platform/logging"
)

type memKV struct {
	mu     sync.Mutex
	data   map[string][]byte
	getErr error
	setErr error
}

func newMemKV() *memKV {
	return &memKV{data: make(map[string][]byte)}
}

func (m *memKV) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return nil, false, m.getErr
	}
	raw, ok := m.data[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), raw...), true, nil
}

func (m *memKV) Set(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.setErr != nil {
		return m.setErr
	}
	m.data[key] = append([]byte(nil), value...)
	return nil
}

func (m *memKV) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

const (
	testUserID   = "user-1"
	testDeviceID = "device-a"
)

var testBase = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

func testFavorite(entityType favorite.EntityType, entityID string, createdAt time.Time) favorite.Favorite {
	return favorite.Favorite{
		UserID:      testUserID,
		EntityType:  entityType,
		EntityID:    entityID,
		Preferences: favorite.Preferences{favorite.PreferenceNotifications: true},
		CreatedAt:   createdAt,
		UpdatedAt:   createdAt,
	}
}

func newTestCache(kv KVStore) *LocalCache {
	return NewLocalCache(kv, testUserID, logging.NewNop())
}

func entityIDs(items []favorite.Favorite) map[string]bool {
	out := make(map[string]bool, len(items))
	for _, item := range items {
		out[item.EntityID] = true
	}
	return out
}
