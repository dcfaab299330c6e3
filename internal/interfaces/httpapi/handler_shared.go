package httpapi

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/riskibarqy/matchday-favorites/internal/domain/favorite"
	"github.com/riskibarqy/matchday-favorites/internal/usecase"
)

type createFavoriteRequest struct {
	UserID      string               `json:"userId" validate:"required,max=128"`
	EntityType  string               `json:"entityType" validate:"required,oneof=team player league match"`
	EntityID    string               `json:"entityId" validate:"required,max=128"`
	Preferences favorite.Preferences `json:"preferences"`
}

type updatePreferencesRequest struct {
	Preferences favorite.Preferences `json:"preferences" validate:"required"`
}

type incrementalSyncRequest struct {
	DeviceID          string              `json:"deviceId" validate:"required,max=128"`
	LastSyncTimestamp time.Time           `json:"lastSyncTimestamp"`
	Favorites         []favorite.Favorite `json:"favorites"`
}

type forceSyncRequest struct {
	DeviceID string `json:"deviceId" validate:"required,max=128"`
}

type resolveConflictRequest struct {
	ConflictID   string             `json:"conflictId" validate:"required"`
	Resolution   string             `json:"resolution" validate:"required"`
	FavoriteData *favorite.Favorite `json:"favoriteData"`
}

type checkFavoriteDTO struct {
	IsFavorite bool `json:"isFavorite"`
}

type deleteFavoriteDTO struct {
	Deleted bool `json:"deleted"`
}

func pathUserID(r *http.Request) (string, error) {
	userID := strings.TrimSpace(r.PathValue("userID"))
	if userID == "" {
		return "", fmt.Errorf("%w: user id is required", usecase.ErrInvalidInput)
	}
	return userID, nil
}

func pathFavoriteKey(r *http.Request) (favorite.Key, error) {
	userID, err := pathUserID(r)
	if err != nil {
		return favorite.Key{}, err
	}
	entityType, err := favorite.ParseEntityType(r.PathValue("entityType"))
	if err != nil {
		return favorite.Key{}, fmt.Errorf("%w: %w", usecase.ErrInvalidInput, err)
	}
	return favorite.Key{
		UserID:     userID,
		EntityType: entityType,
		EntityID:   strings.TrimSpace(r.PathValue("entityID")),
	}, nil
}

// queryEntityType returns nil when the filter is absent.
func queryEntityType(r *http.Request) (*favorite.EntityType, error) {
	raw := strings.TrimSpace(r.URL.Query().Get("entityType"))
	if raw == "" {
		return nil, nil
	}
	entityType, err := favorite.ParseEntityType(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", usecase.ErrInvalidInput, err)
	}
	return &entityType, nil
}

func queryInt(r *http.Request, name string) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid %s=%q", usecase.ErrInvalidInput, name, raw)
	}
	return v, nil
}
