package favsync

import (
	"context"
	"time"

	"github.com/riskibarqy/matchday-favorites/internal/domain/favorite"
)

// Remote is the authoritative favorites service as seen by the client.
//
// Implementations report favorite.ErrNotFound and favorite.ErrDuplicateFavorite
// for the corresponding server outcomes, ErrNetworkFailure for transport
// problems, ErrUnauthorized for rejected credentials and ErrMalformedPayload
// for bodies that cannot be decoded.
type Remote interface {
	List(ctx context.Context, userID string, entityType *favorite.EntityType) ([]favorite.Favorite, error)
	ListDetailed(ctx context.Context, userID string, entityType *favorite.EntityType) ([]favorite.Favorite, error)
	Create(ctx context.Context, userID string, entityType favorite.EntityType, entityID string, preferences favorite.Preferences) (favorite.Favorite, error)
	Delete(ctx context.Context, userID string, entityType favorite.EntityType, entityID string) error
	Exists(ctx context.Context, userID string, entityType favorite.EntityType, entityID string) (bool, error)
	UpdatePreferences(ctx context.Context, userID string, entityType favorite.EntityType, entityID string, preferences favorite.Preferences) (favorite.Favorite, error)
	IncrementalSync(ctx context.Context, userID, deviceID string, since time.Time, local []favorite.Favorite) (favorite.SyncResult, error)
	ForceSync(ctx context.Context, userID, deviceID string) (favorite.FullSnapshot, error)
	ResolveConflict(ctx context.Context, userID, conflictID string, resolution favorite.Resolution, favoriteData *favorite.Favorite) (favorite.Favorite, error)
	Stats(ctx context.Context, userID string) (favorite.Stats, error)
	Feed(ctx context.Context, userID string, limit, offset int) (favorite.FeedPage, error)
}
