package favorite

import (
	"context"
	"time"
)

// Repository describes favorite persistence needs from use cases.
// Delete keeps a tombstone so incremental sync can report removals.
type Repository interface {
	ListByUser(ctx context.Context, userID string, entityType *EntityType) ([]Favorite, error)
	Get(ctx context.Context, key Key) (Favorite, bool, error)
	GetIncludingDeleted(ctx context.Context, key Key) (Favorite, bool, error)
	Create(ctx context.Context, item Favorite) error
	UpdatePreferences(ctx context.Context, key Key, preferences Preferences, deviceID string, updatedAt time.Time) (Favorite, error)
	Delete(ctx context.Context, key Key, deviceID string, deletedAt time.Time) error
}

// ConflictRepository stores conflicts until the user resolves them.
type ConflictRepository interface {
	Save(ctx context.Context, item Conflict) error
	Get(ctx context.Context, userID, conflictID string) (Conflict, bool, error)
	ListByUser(ctx context.Context, userID string) ([]Conflict, error)
	Delete(ctx context.Context, userID, conflictID string) error
}
