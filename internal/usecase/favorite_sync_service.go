package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/matchday-favorites/internal/domain/favorite"
	idgen "github.com/riskibarqy/matchday-favorites/internal/platform/id"
	"github.com/riskibarqy/matchday-favorites/internal/platform/logging"
	"go.opentelemetry.io/otel/attribute"
)

type IncrementalSyncInput struct {
	UserID            string
	DeviceID          string
	LastSyncTimestamp time.Time
	Favorites         []favorite.Favorite
}

type ResolveConflictInput struct {
	UserID       string
	DeviceID     string
	ConflictID   string
	Resolution   favorite.Resolution
	FavoriteData *favorite.Favorite
}

// FavoriteSyncService reconciles a device snapshot with the stored favorites.
type FavoriteSyncService struct {
	favoriteRepo favorite.Repository
	conflictRepo favorite.ConflictRepository
	favorites    *FavoriteService
	idGenerator  idgen.Generator
	logger       *logging.Logger
	now          func() time.Time
}

func NewFavoriteSyncService(
	favoriteRepo favorite.Repository,
	conflictRepo favorite.ConflictRepository,
	favorites *FavoriteService,
	idGenerator idgen.Generator,
	logger *logging.Logger,
) *FavoriteSyncService {
	if logger == nil {
		logger = logging.Default()
	}
	if idGenerator == nil {
		idGenerator = idgen.NewUUIDGenerator()
	}

	return &FavoriteSyncService{
		favoriteRepo: favoriteRepo,
		conflictRepo: conflictRepo,
		favorites:    favorites,
		idGenerator:  idGenerator,
		logger:       logger,
		now:          time.Now,
	}
}

// IncrementalSync reports every difference between the device snapshot and the
// live server rows. A server row that differs is a conflict, not just a change,
// when both sides were edited since the device's last sync by different
// devices and their preferences disagree.
func (s *FavoriteSyncService) IncrementalSync(ctx context.Context, input IncrementalSyncInput) (favorite.SyncResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FavoriteSyncService.IncrementalSync",
		attribute.String("favorites.device_id", input.DeviceID),
		attribute.Int("favorites.local_count", len(input.Favorites)),
	)
	defer span.End()

	userID, err := requireUserID(input.UserID)
	if err != nil {
		return favorite.SyncResult{}, err
	}
	deviceID := strings.TrimSpace(input.DeviceID)
	if deviceID == "" {
		return favorite.SyncResult{}, fmt.Errorf("%w: device id is required", ErrInvalidInput)
	}
	for _, item := range input.Favorites {
		if item.UserID != userID {
			return favorite.SyncResult{}, fmt.Errorf("%w: favorite %s does not belong to user=%s", ErrInvalidInput, item.Key(), userID)
		}
		if err := item.Key().Validate(); err != nil {
			return favorite.SyncResult{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
		}
	}

	now := favorite.Timestamp(s.now())
	since := input.LastSyncTimestamp

	serverItems, err := s.favoriteRepo.ListByUser(ctx, userID, nil)
	if err != nil {
		return favorite.SyncResult{}, fmt.Errorf("list favorites: %w", err)
	}
	openConflicts, err := s.conflictRepo.ListByUser(ctx, userID)
	if err != nil {
		return favorite.SyncResult{}, fmt.Errorf("list conflicts: %w", err)
	}
	openByKey := make(map[favorite.Key]string, len(openConflicts))
	for _, item := range openConflicts {
		openByKey[item.Key()] = item.ID
	}

	clientByKey := favorite.Index(input.Favorites)
	serverByKey := favorite.Index(serverItems)
	result := favorite.SyncResult{
		ServerChanges: []favorite.Favorite{},
		Conflicts:     []favorite.Conflict{},
		SyncTimestamp: now,
	}

	for _, server := range serverItems {
		client, known := clientByKey[server.Key()]
		if known && client.UpdatedAt.Equal(server.UpdatedAt) && !client.IsDeleted() {
			continue
		}
		result.ServerChanges = append(result.ServerChanges, server)

		if !known || !isConcurrentEdit(server, client, deviceID, since) {
			continue
		}
		conflict, err := s.recordConflict(ctx, openByKey[server.Key()], server, client, now)
		if err != nil {
			return favorite.SyncResult{}, err
		}
		result.Conflicts = append(result.Conflicts, conflict)
	}

	for key, client := range clientByKey {
		if _, live := serverByKey[key]; live || client.IsDeleted() {
			continue
		}
		tombstone, err := s.tombstone(ctx, key, now)
		if err != nil {
			return favorite.SyncResult{}, err
		}
		result.ServerChanges = append(result.ServerChanges, tombstone)
	}
	favorite.SortLatestFirst(result.ServerChanges)

	span.SetAttributes(
		attribute.Int("sync.server_changes", len(result.ServerChanges)),
		attribute.Int("sync.conflicts", len(result.Conflicts)),
	)
	s.logger.InfoContext(ctx, "incremental sync completed",
		"user_id", userID,
		"device_id", deviceID,
		"server_changes", len(result.ServerChanges),
		"conflicts", len(result.Conflicts),
	)
	return result, nil
}

func (s *FavoriteSyncService) ForceSync(ctx context.Context, userID, deviceID string) (favorite.FullSnapshot, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FavoriteSyncService.ForceSync")
	defer span.End()

	now := favorite.Timestamp(s.now())
	items, err := s.favorites.ListDetailed(ctx, userID, nil)
	if err != nil {
		return favorite.FullSnapshot{}, err
	}

	s.logger.InfoContext(ctx, "force sync completed",
		"user_id", userID,
		"device_id", deviceID,
		"favorites", len(items),
	)
	return favorite.FullSnapshot{Favorites: items, SyncTimestamp: now}, nil
}

// ResolveConflict applies the user's choice and closes the conflict.
func (s *FavoriteSyncService) ResolveConflict(ctx context.Context, input ResolveConflictInput) (favorite.Favorite, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FavoriteSyncService.ResolveConflict",
		attribute.String("favorites.resolution", string(input.Resolution)),
	)
	defer span.End()

	userID, err := requireUserID(input.UserID)
	if err != nil {
		return favorite.Favorite{}, err
	}
	if !input.Resolution.Valid() {
		return favorite.Favorite{}, fmt.Errorf("%w: %w: %q", ErrInvalidInput, favorite.ErrInvalidResolution, input.Resolution)
	}

	conflict, exists, err := s.conflictRepo.Get(ctx, userID, strings.TrimSpace(input.ConflictID))
	if err != nil {
		return favorite.Favorite{}, fmt.Errorf("get conflict: %w", err)
	}
	if !exists {
		return favorite.Favorite{}, fmt.Errorf("%w: %w: conflict=%s", ErrNotFound, favorite.ErrConflictNotFound, input.ConflictID)
	}

	key := conflict.Key()
	current, live, err := s.favoriteRepo.Get(ctx, key)
	if err != nil {
		return favorite.Favorite{}, fmt.Errorf("get favorite: %w", err)
	}
	if !live {
		if err := s.conflictRepo.Delete(ctx, userID, conflict.ID); err != nil {
			return favorite.Favorite{}, fmt.Errorf("delete conflict: %w", err)
		}
		return favorite.Favorite{}, fmt.Errorf("%w: %w: %s was removed", ErrNotFound, favorite.ErrNotFound, key)
	}

	client := conflict.ClientVersion
	if input.FavoriteData != nil {
		client = *input.FavoriteData
	}

	resolved := current
	switch input.Resolution {
	case favorite.ResolutionKeepServer:
	case favorite.ResolutionKeepClient:
		resolved, err = s.favoriteRepo.UpdatePreferences(ctx, key, client.Preferences.Clone(), input.DeviceID, favorite.Timestamp(s.now()))
	case favorite.ResolutionMerge:
		resolved, err = s.favoriteRepo.UpdatePreferences(ctx, key, favorite.MergePreferences(current, client), input.DeviceID, favorite.Timestamp(s.now()))
	}
	if err != nil {
		return favorite.Favorite{}, translateFavoriteErr("apply conflict resolution", err)
	}

	if err := s.conflictRepo.Delete(ctx, userID, conflict.ID); err != nil {
		return favorite.Favorite{}, fmt.Errorf("delete conflict: %w", err)
	}

	s.logger.InfoContext(ctx, "sync conflict resolved",
		"user_id", userID,
		"conflict_id", conflict.ID,
		"resolution", input.Resolution,
		"entity_type", key.EntityType,
		"entity_id", key.EntityID,
	)
	return s.favorites.withEntityData(ctx, resolved), nil
}

func (s *FavoriteSyncService) recordConflict(ctx context.Context, existingID string, server, client favorite.Favorite, now time.Time) (favorite.Conflict, error) {
	conflictID := existingID
	if conflictID == "" {
		generated, err := s.idGenerator.NewID()
		if err != nil {
			return favorite.Conflict{}, fmt.Errorf("generate conflict id: %w", err)
		}
		conflictID = generated
	}

	conflict := favorite.Conflict{
		ID:            conflictID,
		UserID:        server.UserID,
		EntityType:    server.EntityType,
		EntityID:      server.EntityID,
		ServerVersion: server.Clone(),
		ClientVersion: client.Clone(),
		DetectedAt:    now,
	}
	if err := s.conflictRepo.Save(ctx, conflict); err != nil {
		return favorite.Conflict{}, fmt.Errorf("save conflict: %w", err)
	}
	return conflict, nil
}

// tombstone returns the stored row for key, or a synthetic tombstone when the
// row never existed on the server.
func (s *FavoriteSyncService) tombstone(ctx context.Context, key favorite.Key, now time.Time) (favorite.Favorite, error) {
	stored, exists, err := s.favoriteRepo.GetIncludingDeleted(ctx, key)
	if err != nil {
		return favorite.Favorite{}, fmt.Errorf("get favorite tombstone: %w", err)
	}
	if exists {
		// A live row here was re-created after the listing; report it as is.
		return stored, nil
	}

	deletedAt := now
	return favorite.Favorite{
		UserID:     key.UserID,
		EntityType: key.EntityType,
		EntityID:   key.EntityID,
		CreatedAt:  now,
		UpdatedAt:  now,
		DeletedAt:  &deletedAt,
	}, nil
}

func isConcurrentEdit(server, client favorite.Favorite, deviceID string, since time.Time) bool {
	if since.IsZero() || client.IsDeleted() {
		return false
	}
	if !client.UpdatedAt.After(since) || !server.UpdatedAt.After(client.UpdatedAt) {
		return false
	}
	if server.UpdatedByDevice == "" || server.UpdatedByDevice == deviceID {
		return false
	}
	return !favorite.PreferencesEqual(server.Preferences, client.Preferences)
}
