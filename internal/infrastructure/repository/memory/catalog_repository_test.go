package memory

import (
	"context"
	"testing"
)

func TestSeedCatalog_IsConsistent(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	leagues := NewLeagueRepository(SeedLeagues())
	teams := NewTeamRepository(SeedTeams())

	for _, item := range SeedTeams() {
		if err := item.Validate(); err != nil {
			t.Fatalf("team %s: %v", item.ID, err)
		}
		if _, ok, _ := leagues.GetByID(ctx, item.LeagueID); !ok {
			t.Fatalf("team %s references unknown league %s", item.ID, item.LeagueID)
		}
	}
	for _, item := range SeedPlayers() {
		if err := item.Validate(); err != nil {
			t.Fatalf("player %s: %v", item.ID, err)
		}
		if _, ok, _ := teams.GetByID(ctx, item.TeamID); !ok {
			t.Fatalf("player %s references unknown team %s", item.ID, item.TeamID)
		}
	}
	for _, item := range SeedFixtures() {
		for _, teamID := range []string{item.HomeTeamID, item.AwayTeamID} {
			if _, ok, _ := teams.GetByID(ctx, teamID); !ok {
				t.Fatalf("fixture %s references unknown team %s", item.ID, teamID)
			}
		}
	}
}

func TestFixtureRepository_ListByTeamOrdersByKickoff(t *testing.T) {
	t.Parallel()

	repo := NewFixtureRepository(SeedFixtures())
	items, err := repo.ListByTeam(context.Background(), "eng-ars")
	if err != nil {
		t.Fatalf("list by team: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 arsenal fixtures, got %d", len(items))
	}
	if !items[0].KickoffAt.Before(items[1].KickoffAt) {
		t.Fatalf("expected kickoff order, got %v then %v", items[0].KickoffAt, items[1].KickoffAt)
	}

	item, ok, _ := repo.GetByID(context.Background(), "fx-eng-104")
	if !ok || item.HomeTeam != "Manchester City" {
		t.Fatalf("unexpected fixture lookup: %+v ok=%v", item, ok)
	}
}

func TestCatalogRepository_PutReplacesEntity(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewTeamRepository(SeedTeams())

	item, ok, err := repo.GetByID(ctx, "eng-ars")
	if err != nil || !ok {
		t.Fatalf("expected seeded team, ok=%v err=%v", ok, err)
	}
	item.Name = "Arsenal FC"
	repo.Put(item)

	got, _, _ := repo.GetByID(ctx, "eng-ars")
	if got.Name != "Arsenal FC" {
		t.Fatalf("expected replaced name, got %q", got.Name)
	}
	if _, ok, _ := repo.GetByID(ctx, "eng-tot"); ok {
		t.Fatalf("expected unknown team to miss")
	}
}
