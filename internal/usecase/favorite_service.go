package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/matchday-favorites/internal/domain/favorite"
	"github.com/riskibarqy/matchday-favorites/internal/domain/fixture"
	"github.com/riskibarqy/matchday-favorites/internal/platform/logging"
	"go.opentelemetry.io/otel/attribute"
)

const (
	defaultDetailWorkers = 8
	defaultFeedLimit     = 20
	defaultFeedMaxLimit  = 100
)

type FavoriteServiceConfig struct {
	DetailWorkers int
	FeedMaxLimit  int
}

type CreateFavoriteInput struct {
	UserID      string
	EntityType  favorite.EntityType
	EntityID    string
	Preferences favorite.Preferences
	DeviceID    string
}

type FavoriteService struct {
	favoriteRepo favorite.Repository
	catalog      *EntityCatalog
	cfg          FavoriteServiceConfig
	logger       *logging.Logger
	now          func() time.Time
}

func NewFavoriteService(
	favoriteRepo favorite.Repository,
	catalog *EntityCatalog,
	cfg FavoriteServiceConfig,
	logger *logging.Logger,
) *FavoriteService {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.DetailWorkers <= 0 {
		cfg.DetailWorkers = defaultDetailWorkers
	}
	if cfg.FeedMaxLimit <= 0 {
		cfg.FeedMaxLimit = defaultFeedMaxLimit
	}

	return &FavoriteService{
		favoriteRepo: favoriteRepo,
		catalog:      catalog,
		cfg:          cfg,
		logger:       logger,
		now:          time.Now,
	}
}

func (s *FavoriteService) List(ctx context.Context, userID string, entityType *favorite.EntityType) ([]favorite.Favorite, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FavoriteService.List")
	defer span.End()

	userID, err := requireUserID(userID)
	if err != nil {
		return nil, err
	}
	if entityType != nil && !entityType.Valid() {
		return nil, fmt.Errorf("%w: %w: %q", ErrInvalidInput, favorite.ErrInvalidEntityType, *entityType)
	}

	items, err := s.favoriteRepo.ListByUser(ctx, userID, entityType)
	if err != nil {
		return nil, fmt.Errorf("list favorites: %w", err)
	}
	return items, nil
}

// ListDetailed is List with entityData joined from the catalog.
func (s *FavoriteService) ListDetailed(ctx context.Context, userID string, entityType *favorite.EntityType) ([]favorite.Favorite, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FavoriteService.ListDetailed")
	defer span.End()

	items, err := s.List(ctx, userID, entityType)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.Int("favorites.count", len(items)))

	if err := s.hydrate(ctx, items); err != nil {
		return nil, err
	}
	return items, nil
}

func (s *FavoriteService) Create(ctx context.Context, input CreateFavoriteInput) (favorite.Favorite, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FavoriteService.Create")
	defer span.End()

	now := favorite.Timestamp(s.now())
	item := favorite.Favorite{
		UserID:          strings.TrimSpace(input.UserID),
		EntityType:      input.EntityType,
		EntityID:        strings.TrimSpace(input.EntityID),
		Preferences:     input.Preferences.Clone(),
		CreatedAt:       now,
		UpdatedAt:       now,
		UpdatedByDevice: strings.TrimSpace(input.DeviceID),
	}
	if err := item.Validate(); err != nil {
		return favorite.Favorite{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	if err := s.favoriteRepo.Create(ctx, item); err != nil {
		return favorite.Favorite{}, fmt.Errorf("create favorite: %w", err)
	}

	s.logger.InfoContext(ctx, "favorite created",
		"user_id", item.UserID,
		"entity_type", item.EntityType,
		"entity_id", item.EntityID,
		"device_id", item.UpdatedByDevice,
	)
	return s.withEntityData(ctx, item), nil
}

func (s *FavoriteService) Delete(ctx context.Context, key favorite.Key, deviceID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.FavoriteService.Delete")
	defer span.End()

	if err := key.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	deletedAt := favorite.Timestamp(s.now())
	if err := s.favoriteRepo.Delete(ctx, key, strings.TrimSpace(deviceID), deletedAt); err != nil {
		return translateFavoriteErr("delete favorite", err)
	}

	s.logger.InfoContext(ctx, "favorite deleted",
		"user_id", key.UserID,
		"entity_type", key.EntityType,
		"entity_id", key.EntityID,
		"device_id", deviceID,
	)
	return nil
}

func (s *FavoriteService) Exists(ctx context.Context, key favorite.Key) (bool, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FavoriteService.Exists")
	defer span.End()

	if err := key.Validate(); err != nil {
		return false, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	_, exists, err := s.favoriteRepo.Get(ctx, key)
	if err != nil {
		return false, fmt.Errorf("get favorite: %w", err)
	}
	return exists, nil
}

func (s *FavoriteService) UpdatePreferences(ctx context.Context, key favorite.Key, preferences favorite.Preferences, deviceID string) (favorite.Favorite, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FavoriteService.UpdatePreferences")
	defer span.End()

	if err := key.Validate(); err != nil {
		return favorite.Favorite{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	item, err := s.favoriteRepo.UpdatePreferences(ctx, key, preferences.Clone(), strings.TrimSpace(deviceID), favorite.Timestamp(s.now()))
	if err != nil {
		return favorite.Favorite{}, translateFavoriteErr("update favorite preferences", err)
	}
	return s.withEntityData(ctx, item), nil
}

func (s *FavoriteService) Stats(ctx context.Context, userID string) (favorite.Stats, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FavoriteService.Stats")
	defer span.End()

	items, err := s.List(ctx, userID, nil)
	if err != nil {
		return favorite.Stats{}, err
	}
	return favorite.BuildStats(items), nil
}

// Feed pages through favorite items and upcoming fixtures, newest first.
func (s *FavoriteService) Feed(ctx context.Context, userID string, limit, offset int) (favorite.FeedPage, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FavoriteService.Feed")
	defer span.End()

	if offset < 0 {
		return favorite.FeedPage{}, fmt.Errorf("%w: offset must be >= 0", ErrInvalidInput)
	}
	if limit < 0 {
		return favorite.FeedPage{}, fmt.Errorf("%w: limit must be >= 0", ErrInvalidInput)
	}
	if limit == 0 {
		limit = defaultFeedLimit
	}
	if limit > s.cfg.FeedMaxLimit {
		limit = s.cfg.FeedMaxLimit
	}

	items, err := s.ListDetailed(ctx, userID, nil)
	if err != nil {
		return favorite.FeedPage{}, err
	}

	fixtures, err := s.catalog.UpcomingFixtures(ctx, items, s.now())
	if err != nil {
		return favorite.FeedPage{}, fmt.Errorf("%w: %w", ErrDependencyUnavailable, err)
	}

	feed := make([]favorite.FeedItem, 0, len(items)+len(fixtures))
	for _, item := range items {
		feed = append(feed, favoriteFeedItem(item))
	}
	for _, match := range fixtures {
		feed = append(feed, fixtureFeedItem(match))
	}
	sort.SliceStable(feed, func(i, j int) bool {
		if !feed[i].OccursAt.Equal(feed[j].OccursAt) {
			return feed[i].OccursAt.After(feed[j].OccursAt)
		}
		return feed[i].ID < feed[j].ID
	})

	page := favorite.FeedPage{Items: []favorite.FeedItem{}, Limit: limit, Offset: offset}
	if offset < len(feed) {
		end := min(offset+limit, len(feed))
		page.Items = feed[offset:end]
		page.HasMore = end < len(feed)
	}
	return page, nil
}

// hydrate fills entityData in place. Unknown entities keep whatever the row had.
func (s *FavoriteService) hydrate(ctx context.Context, items []favorite.Favorite) error {
	if len(items) == 0 {
		return nil
	}

	pool, err := ants.NewPool(min(s.cfg.DetailWorkers, len(items)))
	if err != nil {
		return fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var workers sync.WaitGroup
	for idx := range items {
		idx := idx
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()
			items[idx] = s.withEntityData(ctx, items[idx])
		}); err != nil {
			workers.Done()
			workers.Wait()
			return fmt.Errorf("submit hydrate task to worker pool: %w", err)
		}
	}
	workers.Wait()
	return nil
}

func (s *FavoriteService) withEntityData(ctx context.Context, item favorite.Favorite) favorite.Favorite {
	data, exists, err := s.catalog.EntityData(ctx, item.EntityType, item.EntityID)
	switch {
	case err != nil:
		s.logger.WarnContext(ctx, "resolve favorite entity data failed",
			"entity_type", item.EntityType,
			"entity_id", item.EntityID,
			"error", err,
		)
	case exists:
		item.EntityData = data
	}
	return item
}

func favoriteFeedItem(item favorite.Favorite) favorite.FeedItem {
	title := item.EntityID
	if name, ok := item.EntityData["name"].(string); ok && name != "" {
		title = name
	}
	return favorite.FeedItem{
		ID:         favorite.FeedItemFavorite + ":" + string(item.EntityType) + ":" + item.EntityID,
		Kind:       favorite.FeedItemFavorite,
		EntityType: item.EntityType,
		EntityID:   item.EntityID,
		Title:      title,
		Subtitle:   "Added to favorites",
		Data:       item.EntityData.Clone(),
		OccursAt:   item.CreatedAt,
	}
}

func fixtureFeedItem(item fixture.Fixture) favorite.FeedItem {
	return favorite.FeedItem{
		ID:         favorite.FeedItemFixture + ":" + item.ID,
		Kind:       favorite.FeedItemFixture,
		EntityType: favorite.EntityTypeMatch,
		EntityID:   item.ID,
		Title:      item.HomeTeam + " vs " + item.AwayTeam,
		Subtitle:   item.Venue,
		Data:       fixtureData(item),
		OccursAt:   item.KickoffAt.UTC(),
	}
}

func requireUserID(userID string) (string, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return "", fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	return userID, nil
}

func translateFavoriteErr(op string, err error) error {
	if errors.Is(err, favorite.ErrNotFound) {
		return fmt.Errorf("%s: %w: %w", op, ErrNotFound, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}
