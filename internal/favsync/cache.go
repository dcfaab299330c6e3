package favsync

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/bytedance/sonic"
	"github.com/riskibarqy/matchday-favorites/internal/domain/favorite"
	"github.com/riskibarqy/matchday-favorites/internal/platform/logging"
)

// KVStore is the device-local persistence the cache writes through to.
type KVStore interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

const cacheKeyPrefix = "favorites:v1:"

type cacheRecord struct {
	Favorites         []favorite.Favorite `json:"favorites"`
	LastSyncTimestamp *time.Time          `json:"lastSyncTimestamp,omitempty"`
}

// LocalCache is the offline snapshot of one user's favorites plus the sync
// cursor. It is disposable: unreadable data is treated as empty.
type LocalCache struct {
	kv     KVStore
	key    string
	logger *logging.Logger

	mu sync.Mutex
}

func NewLocalCache(kv KVStore, userID string, logger *logging.Logger) *LocalCache {
	if logger == nil {
		logger = logging.Default()
	}
	return &LocalCache{
		kv:     kv,
		key:    cacheKeyPrefix + userID,
		logger: logger,
	}
}

// Get returns the cached favorites. Missing or corrupt data yields an empty set.
func (c *LocalCache) Get(ctx context.Context) []favorite.Favorite {
	c.mu.Lock()
	defer c.mu.Unlock()

	record := c.readLocked(ctx)
	return favorite.CloneAll(record.Favorites)
}

// Set replaces the cached set. Tombstones are dropped; the cursor is kept.
func (c *LocalCache) Set(ctx context.Context, items []favorite.Favorite) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	record := c.readLocked(ctx)
	record.Favorites = liveOnly(items)
	return c.writeLocked(ctx, record)
}

// setIf is Set when cond holds. cond runs under the cache lock, so no other
// cache write can land between the check and the write.
func (c *LocalCache) setIf(ctx context.Context, items []favorite.Favorite, cond func() bool) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !cond() {
		return false, nil
	}
	record := c.readLocked(ctx)
	record.Favorites = liveOnly(items)
	return true, c.writeLocked(ctx, record)
}

func (c *LocalCache) Clear(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.kv.Delete(ctx, c.key); err != nil {
		return fmt.Errorf("clear favorites cache: %w", err)
	}
	return nil
}

// LastSyncTimestamp returns nil when the device has never synced.
func (c *LocalCache) LastSyncTimestamp(ctx context.Context) *time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	record := c.readLocked(ctx)
	if record.LastSyncTimestamp == nil {
		return nil
	}
	ts := *record.LastSyncTimestamp
	return &ts
}

func (c *LocalCache) SetLastSyncTimestamp(ctx context.Context, ts time.Time) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	record := c.readLocked(ctx)
	ts = favorite.Timestamp(ts)
	record.LastSyncTimestamp = &ts
	return c.writeLocked(ctx, record)
}

// Commit stores favorites and cursor in a single write so a crash never
// leaves a new cursor next to an old snapshot.
func (c *LocalCache) Commit(ctx context.Context, items []favorite.Favorite, ts time.Time) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	ts = favorite.Timestamp(ts)
	return c.writeLocked(ctx, cacheRecord{
		Favorites:         liveOnly(items),
		LastSyncTimestamp: &ts,
	})
}

// update applies fn to the cached set under the cache lock.
func (c *LocalCache) update(ctx context.Context, fn func([]favorite.Favorite) []favorite.Favorite) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	record := c.readLocked(ctx)
	record.Favorites = liveOnly(fn(record.Favorites))
	return c.writeLocked(ctx, record)
}

func (c *LocalCache) readLocked(ctx context.Context) cacheRecord {
	raw, ok, err := c.kv.Get(ctx, c.key)
	if err != nil {
		c.logger.WarnContext(ctx, "read favorites cache failed, treating as empty", "key", c.key, "error", err)
		return cacheRecord{}
	}
	if !ok || len(raw) == 0 {
		return cacheRecord{}
	}

	var record cacheRecord
	if err := sonic.Unmarshal(raw, &record); err != nil {
		c.logger.WarnContext(ctx, "favorites cache is corrupt, treating as empty", "key", c.key, "error", err)
		return cacheRecord{}
	}
	return record
}

func (c *LocalCache) writeLocked(ctx context.Context, record cacheRecord) error {
	if record.Favorites == nil {
		record.Favorites = []favorite.Favorite{}
	}
	raw, err := sonic.Marshal(record)
	if err != nil {
		return fmt.Errorf("encode favorites cache: %w", err)
	}
	if err := c.kv.Set(ctx, c.key, raw); err != nil {
		return fmt.Errorf("write favorites cache: %w", err)
	}
	return nil
}

func liveOnly(items []favorite.Favorite) []favorite.Favorite {
	out := make([]favorite.Favorite, 0, len(items))
	for _, item := range items {
		if item.IsDeleted() {
			continue
		}
		out = append(out, item.Clone())
	}
	return out
}
