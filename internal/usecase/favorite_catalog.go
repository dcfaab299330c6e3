package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/riskibarqy/matchday-favorites/internal/domain/favorite"
	"github.com/riskibarqy/matchday-favorites/internal/domain/fixture"
	"github.com/riskibarqy/matchday-favorites/internal/domain/league"
	"github.com/riskibarqy/matchday-favorites/internal/domain/player"
	"github.com/riskibarqy/matchday-favorites/internal/domain/team"
)

// EntityCatalog resolves the denormalized entityData snapshot of a favorite.
type EntityCatalog struct {
	leagueRepo  league.Repository
	teamRepo    team.Repository
	playerRepo  player.Repository
	fixtureRepo fixture.Repository
}

func NewEntityCatalog(
	leagueRepo league.Repository,
	teamRepo team.Repository,
	playerRepo player.Repository,
	fixtureRepo fixture.Repository,
) *EntityCatalog {
	return &EntityCatalog{
		leagueRepo:  leagueRepo,
		teamRepo:    teamRepo,
		playerRepo:  playerRepo,
		fixtureRepo: fixtureRepo,
	}
}

// EntityData returns nil, false when the catalog does not know the entity.
func (c *EntityCatalog) EntityData(ctx context.Context, entityType favorite.EntityType, entityID string) (favorite.EntityData, bool, error) {
	switch entityType {
	case favorite.EntityTypeTeam:
		item, exists, err := c.teamRepo.GetByID(ctx, entityID)
		if err != nil || !exists {
			return nil, false, wrapCatalogErr("team", entityID, err)
		}
		return teamData(item), true, nil
	case favorite.EntityTypePlayer:
		item, exists, err := c.playerRepo.GetByID(ctx, entityID)
		if err != nil || !exists {
			return nil, false, wrapCatalogErr("player", entityID, err)
		}
		data := playerData(item)
		if club, ok, err := c.teamRepo.GetByID(ctx, item.TeamID); err == nil && ok {
			data["teamName"] = club.Name
		}
		return data, true, nil
	case favorite.EntityTypeLeague:
		item, exists, err := c.leagueRepo.GetByID(ctx, entityID)
		if err != nil || !exists {
			return nil, false, wrapCatalogErr("league", entityID, err)
		}
		return leagueData(item), true, nil
	case favorite.EntityTypeMatch:
		item, exists, err := c.fixtureRepo.GetByID(ctx, entityID)
		if err != nil || !exists {
			return nil, false, wrapCatalogErr("fixture", entityID, err)
		}
		return fixtureData(item), true, nil
	default:
		return nil, false, fmt.Errorf("%w: %q", favorite.ErrInvalidEntityType, entityType)
	}
}

// UpcomingFixtures collects upcoming fixtures touching the given favorites,
// deduplicated by fixture id.
func (c *EntityCatalog) UpcomingFixtures(ctx context.Context, items []favorite.Favorite, now time.Time) ([]fixture.Fixture, error) {
	seen := make(map[string]struct{})
	out := make([]fixture.Fixture, 0)
	add := func(candidates ...fixture.Fixture) {
		for _, candidate := range candidates {
			if _, dup := seen[candidate.ID]; dup || !candidate.IsUpcoming(now) {
				continue
			}
			seen[candidate.ID] = struct{}{}
			out = append(out, candidate)
		}
	}

	for _, item := range items {
		switch item.EntityType {
		case favorite.EntityTypeTeam:
			fixtures, err := c.fixtureRepo.ListByTeam(ctx, item.EntityID)
			if err != nil {
				return nil, fmt.Errorf("list fixtures by team=%s: %w", item.EntityID, err)
			}
			add(fixtures...)
		case favorite.EntityTypeLeague:
			fixtures, err := c.fixtureRepo.ListByLeague(ctx, item.EntityID)
			if err != nil {
				return nil, fmt.Errorf("list fixtures by league=%s: %w", item.EntityID, err)
			}
			add(fixtures...)
		case favorite.EntityTypeMatch:
			match, exists, err := c.fixtureRepo.GetByID(ctx, item.EntityID)
			if err != nil {
				return nil, fmt.Errorf("get fixture=%s: %w", item.EntityID, err)
			}
			if exists {
				add(match)
			}
		case favorite.EntityTypePlayer:
			athlete, exists, err := c.playerRepo.GetByID(ctx, item.EntityID)
			if err != nil {
				return nil, fmt.Errorf("get player=%s: %w", item.EntityID, err)
			}
			if !exists {
				continue
			}
			fixtures, err := c.fixtureRepo.ListByTeam(ctx, athlete.TeamID)
			if err != nil {
				return nil, fmt.Errorf("list fixtures by team=%s: %w", athlete.TeamID, err)
			}
			add(fixtures...)
		}
	}

	return out, nil
}

func wrapCatalogErr(kind, id string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: get %s=%s: %w", ErrDependencyUnavailable, kind, id, err)
}

func teamData(item team.Team) favorite.EntityData {
	return compactData(favorite.EntityData{
		"name":      item.Name,
		"shortName": item.ShortName,
		"leagueId":  item.LeagueID,
		"country":   item.Country,
		"logoUrl":   item.LogoURL,
	})
}

func playerData(item player.Player) favorite.EntityData {
	return compactData(favorite.EntityData{
		"name":        item.Name,
		"position":    string(item.Position),
		"teamId":      item.TeamID,
		"leagueId":    item.LeagueID,
		"nationality": item.Nationality,
		"imageUrl":    item.ImageURL,
	})
}

func leagueData(item league.League) favorite.EntityData {
	return compactData(favorite.EntityData{
		"name":        item.Name,
		"countryCode": item.CountryCode,
		"season":      item.Season,
		"logoUrl":     item.LogoURL,
	})
}

func fixtureData(item fixture.Fixture) favorite.EntityData {
	data := compactData(favorite.EntityData{
		"name":       item.HomeTeam + " vs " + item.AwayTeam,
		"leagueId":   item.LeagueID,
		"round":      item.Round,
		"homeTeamId": item.HomeTeamID,
		"awayTeamId": item.AwayTeamID,
		"homeTeam":   item.HomeTeam,
		"awayTeam":   item.AwayTeam,
		"venue":      item.Venue,
		"status":     fixture.NormalizeStatus(item.Status),
		"kickoffAt":  item.KickoffAt.UTC().Format(time.RFC3339),
	})
	if item.HomeScore != nil {
		data["homeScore"] = *item.HomeScore
	}
	if item.AwayScore != nil {
		data["awayScore"] = *item.AwayScore
	}
	return data
}

func compactData(data favorite.EntityData) favorite.EntityData {
	for key, value := range data {
		if s, ok := value.(string); ok && s == "" {
			delete(data, key)
		}
	}
	return data
}
