package cache

import (
	"context"
	"slices"

	"github.com/riskibarqy/matchday-favorites/internal/domain/fixture"
	"github.com/riskibarqy/matchday-favorites/internal/domain/league"
	"github.com/riskibarqy/matchday-favorites/internal/domain/player"
	"github.com/riskibarqy/matchday-favorites/internal/domain/team"
	basecache "github.com/riskibarqy/matchday-favorites/internal/platform/cache"
)

// found caches misses as well as hits so unknown ids stop reaching the source.
type found[T any] struct {
	value T
	ok    bool
}

func getByID[T any](ctx context.Context, store *basecache.Store, key string, load func(context.Context) (T, bool, error)) (T, bool, error) {
	v, err := store.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		value, ok, err := load(ctx)
		if err != nil {
			return nil, err
		}
		return found[T]{value: value, ok: ok}, nil
	})
	if err != nil {
		var zero T
		return zero, false, err
	}
	hit, _ := v.(found[T])
	return hit.value, hit.ok, nil
}

// list returns a copy so callers cannot mutate the cached slice.
func list[T any](ctx context.Context, store *basecache.Store, key string, load func(context.Context) ([]T, error)) ([]T, error) {
	v, err := store.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		items, err := load(ctx)
		if err != nil {
			return nil, err
		}
		return slices.Clone(items), nil
	})
	if err != nil {
		return nil, err
	}
	items, _ := v.([]T)
	return slices.Clone(items), nil
}

type LeagueRepository struct {
	next  league.Repository
	store *basecache.Store
}

func NewLeagueRepository(next league.Repository, store *basecache.Store) *LeagueRepository {
	return &LeagueRepository{next: next, store: store}
}

func (r *LeagueRepository) GetByID(ctx context.Context, leagueID string) (league.League, bool, error) {
	return getByID(ctx, r.store, "league:"+leagueID, func(ctx context.Context) (league.League, bool, error) {
		return r.next.GetByID(ctx, leagueID)
	})
}

type TeamRepository struct {
	next  team.Repository
	store *basecache.Store
}

func NewTeamRepository(next team.Repository, store *basecache.Store) *TeamRepository {
	return &TeamRepository{next: next, store: store}
}

func (r *TeamRepository) GetByID(ctx context.Context, teamID string) (team.Team, bool, error) {
	return getByID(ctx, r.store, "team:"+teamID, func(ctx context.Context) (team.Team, bool, error) {
		return r.next.GetByID(ctx, teamID)
	})
}

type PlayerRepository struct {
	next  player.Repository
	store *basecache.Store
}

func NewPlayerRepository(next player.Repository, store *basecache.Store) *PlayerRepository {
	return &PlayerRepository{next: next, store: store}
}

func (r *PlayerRepository) GetByID(ctx context.Context, playerID string) (player.Player, bool, error) {
	return getByID(ctx, r.store, "player:"+playerID, func(ctx context.Context) (player.Player, bool, error) {
		return r.next.GetByID(ctx, playerID)
	})
}

type FixtureRepository struct {
	next  fixture.Repository
	store *basecache.Store
}

func NewFixtureRepository(next fixture.Repository, store *basecache.Store) *FixtureRepository {
	return &FixtureRepository{next: next, store: store}
}

func (r *FixtureRepository) GetByID(ctx context.Context, fixtureID string) (fixture.Fixture, bool, error) {
	return getByID(ctx, r.store, "fixture:"+fixtureID, func(ctx context.Context) (fixture.Fixture, bool, error) {
		return r.next.GetByID(ctx, fixtureID)
	})
}

func (r *FixtureRepository) ListByLeague(ctx context.Context, leagueID string) ([]fixture.Fixture, error) {
	return list(ctx, r.store, "fixtures:league:"+leagueID, func(ctx context.Context) ([]fixture.Fixture, error) {
		return r.next.ListByLeague(ctx, leagueID)
	})
}

func (r *FixtureRepository) ListByTeam(ctx context.Context, teamID string) ([]fixture.Fixture, error) {
	return list(ctx, r.store, "fixtures:team:"+teamID, func(ctx context.Context) ([]fixture.Fixture, error) {
		return r.next.ListByTeam(ctx, teamID)
	})
}
