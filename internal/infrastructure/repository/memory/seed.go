package memory

import (
	"time"

	"github.com/riskibarqy/matchday-favorites/internal/domain/fixture"
	"github.com/riskibarqy/matchday-favorites/internal/domain/league"
	"github.com/riskibarqy/matchday-favorites/internal/domain/player"
	"github.com/riskibarqy/matchday-favorites/internal/domain/team"
)

const (
	LeagueIDLiga1Indonesia = "idn-liga-1-2026"
	LeagueIDPremierLeague  = "eng-premier-league-2026"
)

func SeedLeagues() []league.League {
	return []league.League{
		{ID: LeagueIDLiga1Indonesia, Name: "Liga 1 Indonesia", CountryCode: "ID", Season: "2026/2027"},
		{ID: LeagueIDPremierLeague, Name: "Premier League", CountryCode: "GB", Season: "2026/2027"},
	}
}

func SeedTeams() []team.Team {
	return []team.Team{
		{ID: "idn-persija", LeagueID: LeagueIDLiga1Indonesia, Name: "Persija Jakarta", ShortName: "PSJ", Country: "ID"},
		{ID: "idn-persib", LeagueID: LeagueIDLiga1Indonesia, Name: "Persib Bandung", ShortName: "PSB", Country: "ID"},
		{ID: "idn-persebaya", LeagueID: LeagueIDLiga1Indonesia, Name: "Persebaya Surabaya", ShortName: "PRB", Country: "ID"},
		{ID: "idn-baliutd", LeagueID: LeagueIDLiga1Indonesia, Name: "Bali United", ShortName: "BU", Country: "ID"},
		{ID: "eng-ars", LeagueID: LeagueIDPremierLeague, Name: "Arsenal", ShortName: "ARS", Country: "GB"},
		{ID: "eng-liv", LeagueID: LeagueIDPremierLeague, Name: "Liverpool", ShortName: "LIV", Country: "GB"},
		{ID: "eng-che", LeagueID: LeagueIDPremierLeague, Name: "Chelsea", ShortName: "CHE", Country: "GB"},
		{ID: "eng-mci", LeagueID: LeagueIDPremierLeague, Name: "Manchester City", ShortName: "MCI", Country: "GB"},
	}
}

func SeedPlayers() []player.Player {
	return []player.Player{
		{ID: "idn-gk-01", LeagueID: LeagueIDLiga1Indonesia, TeamID: "idn-persija", Name: "Andritany Ardhiyasa", Position: player.PositionGoalkeeper, Nationality: "ID"},
		{ID: "idn-def-02", LeagueID: LeagueIDLiga1Indonesia, TeamID: "idn-persib", Name: "Nick Kuipers", Position: player.PositionDefender, Nationality: "NL"},
		{ID: "idn-mid-02", LeagueID: LeagueIDLiga1Indonesia, TeamID: "idn-persib", Name: "Marc Klok", Position: player.PositionMidfielder, Nationality: "ID"},
		{ID: "idn-fwd-01", LeagueID: LeagueIDLiga1Indonesia, TeamID: "idn-persija", Name: "Gustavo Almeida", Position: player.PositionForward, Nationality: "BR"},
		{ID: "idn-fwd-03", LeagueID: LeagueIDLiga1Indonesia, TeamID: "idn-persebaya", Name: "Paulo Henrique", Position: player.PositionForward, Nationality: "BR"},
		{ID: "eng-gk-01", LeagueID: LeagueIDPremierLeague, TeamID: "eng-ars", Name: "David Raya", Position: player.PositionGoalkeeper, Nationality: "ES"},
		{ID: "eng-def-01", LeagueID: LeagueIDPremierLeague, TeamID: "eng-ars", Name: "William Saliba", Position: player.PositionDefender, Nationality: "FR"},
		{ID: "eng-mid-01", LeagueID: LeagueIDPremierLeague, TeamID: "eng-liv", Name: "Dominik Szoboszlai", Position: player.PositionMidfielder, Nationality: "HU"},
		{ID: "eng-mid-02", LeagueID: LeagueIDPremierLeague, TeamID: "eng-che", Name: "Cole Palmer", Position: player.PositionMidfielder, Nationality: "GB"},
		{ID: "eng-fwd-02", LeagueID: LeagueIDPremierLeague, TeamID: "eng-mci", Name: "Erling Haaland", Position: player.PositionForward, Nationality: "NO"},
	}
}

func SeedFixtures() []fixture.Fixture {
	return []fixture.Fixture{
		seedFixture("fx-idn-101", LeagueIDLiga1Indonesia, "12", "idn-persija", "Persija Jakarta", "idn-persib", "Persib Bandung",
			time.Date(2026, 11, 7, 12, 30, 0, 0, time.UTC), "Jakarta International Stadium"),
		seedFixture("fx-idn-102", LeagueIDLiga1Indonesia, "12", "idn-persebaya", "Persebaya Surabaya", "idn-baliutd", "Bali United",
			time.Date(2026, 11, 8, 12, 30, 0, 0, time.UTC), "Gelora Bung Tomo"),
		seedFixture("fx-idn-103", LeagueIDLiga1Indonesia, "13", "idn-persib", "Persib Bandung", "idn-persebaya", "Persebaya Surabaya",
			time.Date(2026, 11, 14, 12, 30, 0, 0, time.UTC), "Gelora Bandung Lautan Api"),
		seedFixture("fx-idn-104", LeagueIDLiga1Indonesia, "13", "idn-baliutd", "Bali United", "idn-persija", "Persija Jakarta",
			time.Date(2026, 11, 15, 12, 30, 0, 0, time.UTC), "Kapten I Wayan Dipta"),
		seedFixture("fx-eng-101", LeagueIDPremierLeague, "11", "eng-ars", "Arsenal", "eng-liv", "Liverpool",
			time.Date(2026, 11, 7, 17, 30, 0, 0, time.UTC), "Emirates Stadium"),
		seedFixture("fx-eng-102", LeagueIDPremierLeague, "11", "eng-che", "Chelsea", "eng-mci", "Manchester City",
			time.Date(2026, 11, 8, 16, 30, 0, 0, time.UTC), "Stamford Bridge"),
		seedFixture("fx-eng-103", LeagueIDPremierLeague, "12", "eng-liv", "Liverpool", "eng-che", "Chelsea",
			time.Date(2026, 11, 21, 15, 0, 0, 0, time.UTC), "Anfield"),
		seedFixture("fx-eng-104", LeagueIDPremierLeague, "12", "eng-mci", "Manchester City", "eng-ars", "Arsenal",
			time.Date(2026, 11, 22, 16, 30, 0, 0, time.UTC), "Etihad Stadium"),
	}
}

func seedFixture(id, leagueID, round, homeID, home, awayID, away string, kickoff time.Time, venue string) fixture.Fixture {
	return fixture.Fixture{
		ID:         id,
		LeagueID:   leagueID,
		Round:      round,
		HomeTeamID: homeID,
		HomeTeam:   home,
		AwayTeamID: awayID,
		AwayTeam:   away,
		KickoffAt:  kickoff,
		Venue:      venue,
		Status:     fixture.StatusScheduled,
	}
}
