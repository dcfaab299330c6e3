package favsync

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/riskibarqy/matchday-favorites/internal/domain/favorite"
	"github.com/riskibarqy/matchday-favorites/internal/platform/logging"
	"github.com/sourcegraph/conc"
)

const defaultRefreshTimeout = 15 * time.Second

type ControllerConfig struct {
	UserID string
	// RefreshTimeout bounds the background refresh started by a cached load.
	RefreshTimeout time.Duration
}

// Controller is the screen-facing view of a user's favorites. It serves the
// in-memory list and writes every change through to the server first, then to
// memory and the local cache.
type Controller struct {
	cfg    ControllerConfig
	remote Remote
	cache  *LocalCache
	engine *Engine
	logger *logging.Logger

	mu        sync.RWMutex
	favorites []favorite.Favorite
	// version increments on every local mutation so a background refresh
	// that started earlier does not overwrite it.
	version uint64

	refreshing atomic.Bool
	background conc.WaitGroup
}

func NewController(cfg ControllerConfig, remote Remote, cache *LocalCache, engine *Engine, logger *logging.Logger) *Controller {
	if cfg.RefreshTimeout <= 0 {
		cfg.RefreshTimeout = defaultRefreshTimeout
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Controller{
		cfg:    cfg,
		remote: remote,
		cache:  cache,
		engine: engine,
		logger: logger.With("component", "favsync.controller", "user_id", cfg.UserID),
	}
}

// Load fills the in-memory list. With useCache and a non-empty cache it
// returns immediately and refreshes in the background; otherwise it reads the
// server and falls back to the cache on transient failures.
func (c *Controller) Load(ctx context.Context, useCache bool) ([]favorite.Favorite, error) {
	if useCache {
		if cached := c.cache.Get(ctx); len(cached) > 0 {
			version := c.replace(cached)
			c.refreshInBackground(ctx, version)
			return c.Favorites(), nil
		}
	}

	fresh, err := c.remote.ListDetailed(ctx, c.cfg.UserID, nil)
	if err != nil {
		if isPropagated(err) {
			return nil, fmt.Errorf("load favorites: %w", err)
		}
		c.logger.WarnContext(ctx, "load favorites from server failed, serving cache", "error", err)
		c.replace(c.cache.Get(ctx))
		return c.Favorites(), nil
	}

	if err := c.cache.Set(ctx, fresh); err != nil {
		c.logger.WarnContext(ctx, "persist favorites cache failed", "error", err)
	}
	c.replace(fresh)
	return c.Favorites(), nil
}

func (c *Controller) refreshInBackground(ctx context.Context, version uint64) {
	if !c.refreshing.CompareAndSwap(false, true) {
		return
	}

	bgCtx := context.WithoutCancel(ctx)
	c.background.Go(func() {
		defer c.refreshing.Store(false)

		refreshCtx, cancel := context.WithTimeout(bgCtx, c.cfg.RefreshTimeout)
		defer cancel()

		fresh, err := c.remote.ListDetailed(refreshCtx, c.cfg.UserID, nil)
		if err != nil {
			c.logger.WarnContext(refreshCtx, "background favorites refresh failed", "error", err)
			return
		}

		// Lock order is cache then memory; apply takes them one at a time.
		written, err := c.cache.setIf(refreshCtx, fresh, func() bool {
			c.mu.Lock()
			defer c.mu.Unlock()

			if c.version != version {
				return false
			}
			c.favorites = liveOnly(fresh)
			c.version++
			return true
		})
		switch {
		case err != nil:
			c.logger.WarnContext(refreshCtx, "persist refreshed favorites failed", "error", err)
		case !written:
			c.logger.DebugContext(refreshCtx, "favorites changed during refresh, discarding result")
		}
	})
}

// Favorites returns a copy of the in-memory list.
func (c *Controller) Favorites() []favorite.Favorite {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return favorite.CloneAll(c.favorites)
}

func (c *Controller) IsFavorite(entityType favorite.EntityType, entityID string) bool {
	key := favorite.Key{UserID: c.cfg.UserID, EntityType: entityType, EntityID: entityID}

	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, item := range c.favorites {
		if item.Key() == key {
			return true
		}
	}
	return false
}

// Add creates the favorite on the server. A duplicate is not an error: the
// existing record is looked up and kept.
func (c *Controller) Add(ctx context.Context, entityType favorite.EntityType, entityID string, preferences favorite.Preferences) (favorite.Favorite, error) {
	key := favorite.Key{UserID: c.cfg.UserID, EntityType: entityType, EntityID: entityID}
	if err := key.Validate(); err != nil {
		return favorite.Favorite{}, err
	}

	created, err := c.remote.Create(ctx, key.UserID, key.EntityType, key.EntityID, preferences)
	if errors.Is(err, favorite.ErrDuplicateFavorite) {
		created, err = c.existing(ctx, key, preferences)
	}
	if err != nil {
		return favorite.Favorite{}, fmt.Errorf("add favorite %s: %w", key, err)
	}

	c.apply(ctx, func(items []favorite.Favorite) []favorite.Favorite {
		return upsert(items, created)
	})
	return created.Clone(), nil
}

// Remove deletes the favorite on the server. A record already gone counts as removed.
func (c *Controller) Remove(ctx context.Context, entityType favorite.EntityType, entityID string) error {
	key := favorite.Key{UserID: c.cfg.UserID, EntityType: entityType, EntityID: entityID}
	if err := key.Validate(); err != nil {
		return err
	}

	if err := c.remote.Delete(ctx, key.UserID, key.EntityType, key.EntityID); err != nil && !errors.Is(err, favorite.ErrNotFound) {
		return fmt.Errorf("remove favorite %s: %w", key, err)
	}

	c.apply(ctx, func(items []favorite.Favorite) []favorite.Favorite {
		return without(items, key)
	})
	return nil
}

func (c *Controller) UpdatePreferences(ctx context.Context, entityType favorite.EntityType, entityID string, preferences favorite.Preferences) (favorite.Favorite, error) {
	key := favorite.Key{UserID: c.cfg.UserID, EntityType: entityType, EntityID: entityID}
	if err := key.Validate(); err != nil {
		return favorite.Favorite{}, err
	}

	updated, err := c.remote.UpdatePreferences(ctx, key.UserID, key.EntityType, key.EntityID, preferences)
	if err != nil {
		return favorite.Favorite{}, fmt.Errorf("update favorite preferences %s: %w", key, err)
	}

	c.apply(ctx, func(items []favorite.Favorite) []favorite.Favorite {
		return upsert(items, updated)
	})
	return updated.Clone(), nil
}

func (c *Controller) Stats(ctx context.Context) (favorite.Stats, error) {
	return c.remote.Stats(ctx, c.cfg.UserID)
}

func (c *Controller) Feed(ctx context.Context, limit, offset int) (favorite.FeedPage, error) {
	return c.remote.Feed(ctx, c.cfg.UserID, limit, offset)
}

// Sync runs the engine and reloads memory from the cache it wrote. A
// *ConflictError still refreshes memory before being returned.
func (c *Controller) Sync(ctx context.Context) (SyncOutcome, error) {
	out, err := c.engine.Sync(ctx)
	if err != nil && !errors.Is(err, ErrConflictDetected) {
		return out, err
	}
	c.replace(c.cache.Get(ctx))
	return out, err
}

func (c *Controller) ForceSync(ctx context.Context) (SyncOutcome, error) {
	out, err := c.engine.ForceSync(ctx)
	if err != nil {
		return out, err
	}
	c.replace(c.cache.Get(ctx))
	return out, nil
}

func (c *Controller) Resolve(ctx context.Context, conflictID string, resolution favorite.Resolution, favoriteData *favorite.Favorite) (favorite.Favorite, error) {
	resolved, err := c.engine.Resolve(ctx, conflictID, resolution, favoriteData)
	if err != nil {
		return favorite.Favorite{}, err
	}
	c.replace(c.cache.Get(ctx))
	return resolved, nil
}

// HandleToggle keeps memory and cache in line with a settled toggle.
func (c *Controller) HandleToggle(ctx context.Context, change ToggleChange) {
	if !change.IsFavorite {
		c.apply(ctx, func(items []favorite.Favorite) []favorite.Favorite {
			return without(items, change.Key)
		})
		return
	}

	record := change.Favorite
	if record == nil {
		found, err := c.existing(ctx, change.Key, nil)
		if err != nil {
			c.logger.WarnContext(ctx, "lookup toggled favorite failed", "key", change.Key.String(), "error", err)
			return
		}
		record = &found
	}
	added := *record
	c.apply(ctx, func(items []favorite.Favorite) []favorite.Favorite {
		return upsert(items, added)
	})
}

// Close waits for background refreshes to finish.
func (c *Controller) Close() {
	c.background.Wait()
}

// existing finds the server record for key after a duplicate add. When the
// lookup itself fails the in-memory record is used, or a provisional one the
// next sync will replace.
func (c *Controller) existing(ctx context.Context, key favorite.Key, preferences favorite.Preferences) (favorite.Favorite, error) {
	entityType := key.EntityType
	items, err := c.remote.List(ctx, key.UserID, &entityType)
	if err == nil {
		for _, item := range items {
			if item.Key() == key {
				return item, nil
			}
		}
		return favorite.Favorite{}, fmt.Errorf("%w: duplicate reported but record not listed", favorite.ErrNotFound)
	}
	if isPropagated(err) {
		return favorite.Favorite{}, err
	}

	c.mu.RLock()
	for _, item := range c.favorites {
		if item.Key() == key {
			c.mu.RUnlock()
			return item.Clone(), nil
		}
	}
	c.mu.RUnlock()

	now := favorite.Timestamp(time.Now())
	return favorite.Favorite{
		UserID:      key.UserID,
		EntityType:  key.EntityType,
		EntityID:    key.EntityID,
		Preferences: preferences.Clone(),
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

func (c *Controller) replace(items []favorite.Favorite) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.favorites = liveOnly(items)
	c.version++
	return c.version
}

// apply mutates memory and the cache with the same function. A cache write
// failure is logged; the server already holds the change.
func (c *Controller) apply(ctx context.Context, fn func([]favorite.Favorite) []favorite.Favorite) {
	c.mu.Lock()
	c.favorites = fn(c.favorites)
	c.version++
	c.mu.Unlock()

	if err := c.cache.update(ctx, fn); err != nil {
		c.logger.WarnContext(ctx, "persist favorites cache failed", "error", err)
	}
}
