package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/riskibarqy/matchday-favorites/internal/domain/favorite"
)

// FavoriteRepository keeps live rows and tombstones in one map keyed by the
// favorite tuple, so a re-created favorite replaces its tombstone.
type FavoriteRepository struct {
	mu    sync.RWMutex
	items map[favorite.Key]favorite.Favorite
}

func NewFavoriteRepository() *FavoriteRepository {
	return &FavoriteRepository{items: make(map[favorite.Key]favorite.Favorite)}
}

func (r *FavoriteRepository) ListByUser(_ context.Context, userID string, entityType *favorite.EntityType) ([]favorite.Favorite, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]favorite.Favorite, 0)
	for key, item := range r.items {
		if key.UserID != userID || item.IsDeleted() {
			continue
		}
		if entityType != nil && key.EntityType != *entityType {
			continue
		}
		out = append(out, item.Clone())
	}

	favorite.SortLatestFirst(out)
	return out, nil
}

func (r *FavoriteRepository) Get(_ context.Context, key favorite.Key) (favorite.Favorite, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[key]
	if !ok || item.IsDeleted() {
		return favorite.Favorite{}, false, nil
	}
	return item.Clone(), true, nil
}

func (r *FavoriteRepository) GetIncludingDeleted(_ context.Context, key favorite.Key) (favorite.Favorite, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[key]
	if !ok {
		return favorite.Favorite{}, false, nil
	}
	return item.Clone(), true, nil
}

func (r *FavoriteRepository) Create(_ context.Context, item favorite.Favorite) error {
	if err := item.Validate(); err != nil {
		return fmt.Errorf("validate favorite: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	key := item.Key()
	if existing, ok := r.items[key]; ok && !existing.IsDeleted() {
		return fmt.Errorf("%w: %s", favorite.ErrDuplicateFavorite, key)
	}

	stored := item.Clone()
	stored.DeletedAt = nil
	r.items[key] = stored
	return nil
}

func (r *FavoriteRepository) UpdatePreferences(_ context.Context, key favorite.Key, preferences favorite.Preferences, deviceID string, updatedAt time.Time) (favorite.Favorite, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.items[key]
	if !ok || item.IsDeleted() {
		return favorite.Favorite{}, fmt.Errorf("%w: %s", favorite.ErrNotFound, key)
	}

	item.Preferences = preferences.Clone()
	item.UpdatedAt = updatedAt
	item.UpdatedByDevice = deviceID
	r.items[key] = item
	return item.Clone(), nil
}

func (r *FavoriteRepository) Delete(_ context.Context, key favorite.Key, deviceID string, deletedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.items[key]
	if !ok || item.IsDeleted() {
		return fmt.Errorf("%w: %s", favorite.ErrNotFound, key)
	}

	item.DeletedAt = &deletedAt
	item.UpdatedAt = deletedAt
	item.UpdatedByDevice = deviceID
	r.items[key] = item
	return nil
}
