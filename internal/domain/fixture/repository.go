package fixture

import "context"

// Repository exposes fixture read operations.
type Repository interface {
	GetByID(ctx context.Context, fixtureID string) (Fixture, bool, error)
	ListByLeague(ctx context.Context, leagueID string) ([]Fixture, error)
	ListByTeam(ctx context.Context, teamID string) ([]Fixture, error)
}
