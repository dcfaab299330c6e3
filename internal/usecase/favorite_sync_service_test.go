package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/matchday-favorites/internal/domain/favorite"
	"github.com/riskibarqy/matchday-favorites/internal/infrastructure/repository/memory"
	idgen "github.com/riskibarqy/matchday-favorites/internal/platform/id"
	"github.com/riskibarqy/matchday-favorites/internal/platform/logging"
)

type testClock struct {
	now time.Time
}

func (c *testClock) Now() time.Time {
	return c.now
}

func (c *testClock) Advance(d time.Duration) time.Time {
	c.now = c.now.Add(d)
	return c.now
}

type syncFixture struct {
	clock     *testClock
	favorites *FavoriteService
	sync      *FavoriteSyncService
	conflicts *memory.ConflictRepository
}

func newSyncFixture(t *testing.T) syncFixture {
	t.Helper()

	clock := &testClock{now: time.Date(2026, 10, 19, 8, 0, 0, 0, time.UTC)}
	favoriteRepo := memory.NewFavoriteRepository()
	conflictRepo := memory.NewConflictRepository()
	catalog := NewEntityCatalog(
		memory.NewLeagueRepository(memory.SeedLeagues()),
		memory.NewTeamRepository(memory.SeedTeams()),
		memory.NewPlayerRepository(memory.SeedPlayers()),
		memory.NewFixtureRepository(memory.SeedFixtures()),
	)

	favorites := NewFavoriteService(favoriteRepo, catalog, FavoriteServiceConfig{}, logging.NewNop())
	favorites.now = clock.Now
	syncSvc := NewFavoriteSyncService(
		favoriteRepo,
		conflictRepo,
		favorites,
		&idgen.StaticGenerator{IDs: []string{"conflict-1", "conflict-2"}},
		logging.NewNop(),
	)
	syncSvc.now = clock.Now

	return syncFixture{clock: clock, favorites: favorites, sync: syncSvc, conflicts: conflictRepo}
}

func (f syncFixture) add(t *testing.T, entityType favorite.EntityType, entityID, deviceID string) favorite.Favorite {
	t.Helper()

	item, err := f.favorites.Create(context.Background(), CreateFavoriteInput{
		UserID:      "user-1",
		EntityType:  entityType,
		EntityID:    entityID,
		Preferences: favorite.Preferences{favorite.PreferenceNotifications: true},
		DeviceID:    deviceID,
	})
	if err != nil {
		t.Fatalf("create %s/%s: %v", entityType, entityID, err)
	}
	return item
}

func TestFavoriteSyncService_IncrementalSync_ObservesCrossDeviceDelete(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	fx := newSyncFixture(t)
	arsenal := fx.add(t, favorite.EntityTypeTeam, "eng-ars", "device-a")
	liverpool := fx.add(t, favorite.EntityTypeTeam, "eng-liv", "device-a")
	since := fx.clock.Advance(time.Minute)

	fx.clock.Advance(time.Minute)
	if err := fx.favorites.Delete(ctx, liverpool.Key(), "device-b"); err != nil {
		t.Fatalf("delete from device b: %v", err)
	}
	syncAt := fx.clock.Advance(time.Minute)

	result, err := fx.sync.IncrementalSync(ctx, IncrementalSyncInput{
		UserID:            "user-1",
		DeviceID:          "device-a",
		LastSyncTimestamp: since,
		Favorites:         []favorite.Favorite{arsenal, liverpool},
	})
	if err != nil {
		t.Fatalf("incremental sync: %v", err)
	}
	if len(result.Conflicts) != 0 {
		t.Fatalf("expected no conflicts, got %+v", result.Conflicts)
	}
	if len(result.ServerChanges) != 1 {
		t.Fatalf("expected only the tombstone, got %+v", result.ServerChanges)
	}
	change := result.ServerChanges[0]
	if change.Key() != liverpool.Key() || !change.IsDeleted() || change.UpdatedByDevice != "device-b" {
		t.Fatalf("unexpected change: %+v", change)
	}
	if !result.SyncTimestamp.Equal(syncAt) {
		t.Fatalf("expected sync timestamp %v, got %v", syncAt, result.SyncTimestamp)
	}
}

func TestFavoriteSyncService_IncrementalSync_ReportsAdditionsAndSyntheticTombstones(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	fx := newSyncFixture(t)
	since := fx.clock.Advance(time.Minute)
	fx.clock.Advance(time.Minute)
	added := fx.add(t, favorite.EntityTypePlayer, "eng-fwd-02", "device-b")

	ghost := favorite.Favorite{
		UserID:     "user-1",
		EntityType: favorite.EntityTypeMatch,
		EntityID:   "fx-unknown",
		CreatedAt:  since,
		UpdatedAt:  since,
	}
	result, err := fx.sync.IncrementalSync(ctx, IncrementalSyncInput{
		UserID:            "user-1",
		DeviceID:          "device-a",
		LastSyncTimestamp: since,
		Favorites:         []favorite.Favorite{ghost},
	})
	if err != nil {
		t.Fatalf("incremental sync: %v", err)
	}

	byKey := favorite.Index(result.ServerChanges)
	if got, ok := byKey[added.Key()]; !ok || got.IsDeleted() {
		t.Fatalf("expected live addition, got %+v", result.ServerChanges)
	}
	if got, ok := byKey[ghost.Key()]; !ok || !got.IsDeleted() {
		t.Fatalf("expected synthetic tombstone, got %+v", result.ServerChanges)
	}
}

func TestFavoriteSyncService_ConflictThenMerge(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	fx := newSyncFixture(t)
	original := fx.add(t, favorite.EntityTypeTeam, "eng-ars", "device-a")
	since := fx.clock.Advance(time.Minute)

	clientCopy := original.Clone()
	clientCopy.UpdatedAt = fx.clock.Advance(time.Minute)
	clientCopy.Preferences = favorite.Preferences{favorite.PreferenceNotifications: true, "sound": "goal"}

	fx.clock.Advance(time.Minute)
	if _, err := fx.favorites.UpdatePreferences(ctx, original.Key(), favorite.Preferences{favorite.PreferenceNotifications: false}, "device-b"); err != nil {
		t.Fatalf("update from device b: %v", err)
	}
	fx.clock.Advance(time.Minute)

	result, err := fx.sync.IncrementalSync(ctx, IncrementalSyncInput{
		UserID:            "user-1",
		DeviceID:          "device-a",
		LastSyncTimestamp: since,
		Favorites:         []favorite.Favorite{clientCopy},
	})
	if err != nil {
		t.Fatalf("incremental sync: %v", err)
	}
	if len(result.Conflicts) != 1 || result.Conflicts[0].ID != "conflict-1" {
		t.Fatalf("expected one conflict, got %+v", result.Conflicts)
	}
	if len(result.ServerChanges) != 1 || result.ServerChanges[0].Preferences[favorite.PreferenceNotifications] != false {
		t.Fatalf("expected server version among changes, got %+v", result.ServerChanges)
	}

	resolved, err := fx.sync.ResolveConflict(ctx, ResolveConflictInput{
		UserID:     "user-1",
		DeviceID:   "device-a",
		ConflictID: "conflict-1",
		Resolution: favorite.ResolutionMerge,
	})
	if err != nil {
		t.Fatalf("resolve conflict: %v", err)
	}
	if resolved.Preferences[favorite.PreferenceNotifications] != false || resolved.Preferences["sound"] != "goal" {
		t.Fatalf("unexpected merged preferences: %+v", resolved.Preferences)
	}
	if resolved.EntityData["name"] != "Arsenal" {
		t.Fatalf("expected hydrated favorite, got %+v", resolved.EntityData)
	}

	if _, ok, _ := fx.conflicts.Get(ctx, "user-1", "conflict-1"); ok {
		t.Fatalf("expected conflict closed after resolution")
	}
	if _, err := fx.sync.ResolveConflict(ctx, ResolveConflictInput{
		UserID:     "user-1",
		ConflictID: "conflict-1",
		Resolution: favorite.ResolutionKeepServer,
	}); !errors.Is(err, ErrNotFound) || !errors.Is(err, favorite.ErrConflictNotFound) {
		t.Fatalf("expected resolved conflict to be gone, got %v", err)
	}
}

func TestFavoriteSyncService_SameDeviceEditIsNotAConflict(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	fx := newSyncFixture(t)
	original := fx.add(t, favorite.EntityTypeTeam, "eng-ars", "device-a")
	since := fx.clock.Advance(time.Minute)

	clientCopy := original.Clone()
	clientCopy.UpdatedAt = fx.clock.Advance(time.Minute)
	fx.clock.Advance(time.Minute)
	if _, err := fx.favorites.UpdatePreferences(ctx, original.Key(), favorite.Preferences{favorite.PreferenceNotifications: false}, "device-a"); err != nil {
		t.Fatalf("update: %v", err)
	}

	result, err := fx.sync.IncrementalSync(ctx, IncrementalSyncInput{
		UserID:            "user-1",
		DeviceID:          "device-a",
		LastSyncTimestamp: since,
		Favorites:         []favorite.Favorite{clientCopy},
	})
	if err != nil {
		t.Fatalf("incremental sync: %v", err)
	}
	if len(result.Conflicts) != 0 || len(result.ServerChanges) != 1 {
		t.Fatalf("expected a plain change, got changes=%d conflicts=%d", len(result.ServerChanges), len(result.Conflicts))
	}
}

func TestFavoriteSyncService_ResolveKeepClientOverDeletedFavorite(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	fx := newSyncFixture(t)
	item := fx.add(t, favorite.EntityTypeLeague, memory.LeagueIDPremierLeague, "device-a")
	if err := fx.conflicts.Save(ctx, favorite.Conflict{
		ID:            "conflict-9",
		UserID:        "user-1",
		EntityType:    item.EntityType,
		EntityID:      item.EntityID,
		ServerVersion: item,
		ClientVersion: item,
		DetectedAt:    fx.clock.Now(),
	}); err != nil {
		t.Fatalf("save conflict: %v", err)
	}
	if err := fx.favorites.Delete(ctx, item.Key(), "device-b"); err != nil {
		t.Fatalf("delete: %v", err)
	}

	_, err := fx.sync.ResolveConflict(ctx, ResolveConflictInput{
		UserID:     "user-1",
		ConflictID: "conflict-9",
		Resolution: favorite.ResolutionKeepClient,
	})
	if !errors.Is(err, ErrNotFound) || !errors.Is(err, favorite.ErrNotFound) {
		t.Fatalf("expected not found for deleted favorite, got %v", err)
	}
	if _, ok, _ := fx.conflicts.Get(ctx, "user-1", "conflict-9"); ok {
		t.Fatalf("expected stale conflict dropped")
	}
}

func TestFavoriteSyncService_ResolveRejectsUnknownResolution(t *testing.T) {
	t.Parallel()

	fx := newSyncFixture(t)
	_, err := fx.sync.ResolveConflict(context.Background(), ResolveConflictInput{
		UserID:     "user-1",
		ConflictID: "conflict-1",
		Resolution: favorite.Resolution("coin_flip"),
	})
	if !errors.Is(err, ErrInvalidInput) || !errors.Is(err, favorite.ErrInvalidResolution) {
		t.Fatalf("expected invalid resolution, got %v", err)
	}
}

func TestFavoriteSyncService_ForceSyncReturnsDetailedLiveSet(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	fx := newSyncFixture(t)
	fx.add(t, favorite.EntityTypeTeam, "eng-ars", "device-a")
	fx.clock.Advance(time.Second)
	removed := fx.add(t, favorite.EntityTypeTeam, "eng-che", "device-a")
	if err := fx.favorites.Delete(ctx, removed.Key(), "device-a"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	syncAt := fx.clock.Advance(time.Second)

	snapshot, err := fx.sync.ForceSync(ctx, "user-1", "device-c")
	if err != nil {
		t.Fatalf("force sync: %v", err)
	}
	if len(snapshot.Favorites) != 1 || snapshot.Favorites[0].EntityData["name"] != "Arsenal" {
		t.Fatalf("unexpected snapshot: %+v", snapshot.Favorites)
	}
	if !snapshot.SyncTimestamp.Equal(syncAt) {
		t.Fatalf("expected sync timestamp %v, got %v", syncAt, snapshot.SyncTimestamp)
	}
}

func TestFavoriteSyncService_RejectsForeignFavorites(t *testing.T) {
	t.Parallel()

	fx := newSyncFixture(t)
	_, err := fx.sync.IncrementalSync(context.Background(), IncrementalSyncInput{
		UserID:   "user-1",
		DeviceID: "device-a",
		Favorites: []favorite.Favorite{
			{UserID: "user-2", EntityType: favorite.EntityTypeTeam, EntityID: "eng-ars"},
		},
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
}
