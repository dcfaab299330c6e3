package favoritesapi

import (
	"time"

	"github.com/riskibarqy/matchday-favorites/internal/domain/favorite"
)

type responseEnvelope[T any] struct {
	APIVersion string    `json:"apiVersion"`
	Data       T         `json:"data"`
	Error      *apiError `json:"error,omitempty"`
}

type apiError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Status  string `json:"status"`
}

type createRequest struct {
	UserID      string               `json:"userId"`
	EntityType  string               `json:"entityType"`
	EntityID    string               `json:"entityId"`
	Preferences favorite.Preferences `json:"preferences,omitempty"`
}

type preferencesRequest struct {
	Preferences favorite.Preferences `json:"preferences"`
}

type checkResponse struct {
	IsFavorite bool `json:"isFavorite"`
}

type syncRequest struct {
	DeviceID          string              `json:"deviceId"`
	LastSyncTimestamp time.Time           `json:"lastSyncTimestamp"`
	Favorites         []favorite.Favorite `json:"favorites"`
}

type forceSyncRequest struct {
	DeviceID string `json:"deviceId"`
}

type resolveRequest struct {
	ConflictID   string             `json:"conflictId"`
	Resolution   string             `json:"resolution"`
	FavoriteData *favorite.Favorite `json:"favoriteData,omitempty"`
}
