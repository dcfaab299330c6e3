package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/matchday-favorites/internal/domain/league"
	"github.com/riskibarqy/matchday-favorites/internal/domain/player"
	"github.com/riskibarqy/matchday-favorites/internal/domain/team"
)

// entityIndex is a read-mostly id lookup shared by the catalog repositories.
// A later item with the same id replaces the earlier one.
type entityIndex[T any] struct {
	mu   sync.RWMutex
	byID map[string]T
}

func newEntityIndex[T any](items []T, id func(T) string) entityIndex[T] {
	byID := make(map[string]T, len(items))
	for _, item := range items {
		byID[id(item)] = item
	}
	return entityIndex[T]{byID: byID}
}

func (x *entityIndex[T]) get(id string) (T, bool, error) {
	x.mu.RLock()
	defer x.mu.RUnlock()

	item, ok := x.byID[id]
	return item, ok, nil
}

// put upserts an entity, for tests and reseeding.
func (x *entityIndex[T]) put(id string, item T) {
	x.mu.Lock()
	defer x.mu.Unlock()

	x.byID[id] = item
}

type LeagueRepository struct{ index entityIndex[league.League] }

func NewLeagueRepository(items []league.League) *LeagueRepository {
	return &LeagueRepository{index: newEntityIndex(items, func(l league.League) string { return l.ID })}
}

func (r *LeagueRepository) GetByID(_ context.Context, leagueID string) (league.League, bool, error) {
	return r.index.get(leagueID)
}

func (r *LeagueRepository) Put(item league.League) { r.index.put(item.ID, item) }

type TeamRepository struct{ index entityIndex[team.Team] }

func NewTeamRepository(items []team.Team) *TeamRepository {
	return &TeamRepository{index: newEntityIndex(items, func(t team.Team) string { return t.ID })}
}

func (r *TeamRepository) GetByID(_ context.Context, teamID string) (team.Team, bool, error) {
	return r.index.get(teamID)
}

func (r *TeamRepository) Put(item team.Team) { r.index.put(item.ID, item) }

type PlayerRepository struct{ index entityIndex[player.Player] }

func NewPlayerRepository(items []player.Player) *PlayerRepository {
	return &PlayerRepository{index: newEntityIndex(items, func(p player.Player) string { return p.ID })}
}

func (r *PlayerRepository) GetByID(_ context.Context, playerID string) (player.Player, bool, error) {
	return r.index.get(playerID)
}

func (r *PlayerRepository) Put(item player.Player) { r.index.put(item.ID, item) }
