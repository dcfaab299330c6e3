package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/riskibarqy/matchday-favorites/internal/domain/favorite"
)

type ConflictRepository struct {
	mu     sync.RWMutex
	byUser map[string]map[string]favorite.Conflict
}

func NewConflictRepository() *ConflictRepository {
	return &ConflictRepository{byUser: make(map[string]map[string]favorite.Conflict)}
}

func (r *ConflictRepository) Save(_ context.Context, item favorite.Conflict) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	items, ok := r.byUser[item.UserID]
	if !ok {
		items = make(map[string]favorite.Conflict)
		r.byUser[item.UserID] = items
	}
	items[item.ID] = cloneConflict(item)
	return nil
}

func (r *ConflictRepository) Get(_ context.Context, userID, conflictID string) (favorite.Conflict, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.byUser[userID][conflictID]
	if !ok {
		return favorite.Conflict{}, false, nil
	}
	return cloneConflict(item), true, nil
}

func (r *ConflictRepository) ListByUser(_ context.Context, userID string) ([]favorite.Conflict, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]favorite.Conflict, 0, len(r.byUser[userID]))
	for _, item := range r.byUser[userID] {
		out = append(out, cloneConflict(item))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].DetectedAt.Equal(out[j].DetectedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].DetectedAt.Before(out[j].DetectedAt)
	})
	return out, nil
}

func (r *ConflictRepository) Delete(_ context.Context, userID, conflictID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.byUser[userID], conflictID)
	return nil
}

func cloneConflict(item favorite.Conflict) favorite.Conflict {
	copied := item
	copied.ServerVersion = item.ServerVersion.Clone()
	copied.ClientVersion = item.ClientVersion.Clone()
	return copied
}
