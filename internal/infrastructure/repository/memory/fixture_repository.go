package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/riskibarqy/matchday-favorites/internal/domain/fixture"
)

type FixtureRepository struct {
	mu       sync.RWMutex
	byID     map[string]fixture.Fixture
	fixtures []fixture.Fixture
}

// NewFixtureRepository keeps fixtures ordered by kickoff.
func NewFixtureRepository(fixtures []fixture.Fixture) *FixtureRepository {
	items := append([]fixture.Fixture(nil), fixtures...)
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].KickoffAt.Before(items[j].KickoffAt)
	})

	byID := make(map[string]fixture.Fixture, len(items))
	for _, item := range items {
		byID[item.ID] = item
	}

	return &FixtureRepository{byID: byID, fixtures: items}
}

func (r *FixtureRepository) GetByID(_ context.Context, fixtureID string) (fixture.Fixture, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.byID[fixtureID]
	return item, ok, nil
}

func (r *FixtureRepository) ListByLeague(_ context.Context, leagueID string) ([]fixture.Fixture, error) {
	return r.filter(func(item fixture.Fixture) bool { return item.LeagueID == leagueID }), nil
}

func (r *FixtureRepository) ListByTeam(_ context.Context, teamID string) ([]fixture.Fixture, error) {
	return r.filter(func(item fixture.Fixture) bool { return item.Involves(teamID) }), nil
}

func (r *FixtureRepository) filter(keep func(fixture.Fixture) bool) []fixture.Fixture {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]fixture.Fixture, 0)
	for _, item := range r.fixtures {
		if keep(item) {
			out = append(out, item)
		}
	}
	return out
}
