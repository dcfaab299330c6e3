package fixture

import (
	"strings"
	"time"
)

const (
	StatusScheduled = "SCHEDULED"
	StatusLive      = "LIVE"
	StatusFinished  = "FINISHED"
	StatusCancelled = "CANCELLED"
	StatusPostponed = "POSTPONED"
)

// Fixture represents one match. A favorite of type "match" points at a fixture id.
type Fixture struct {
	ID         string
	LeagueID   string
	Round      string
	HomeTeamID string
	AwayTeamID string
	HomeTeam   string
	AwayTeam   string
	KickoffAt  time.Time
	Venue      string
	HomeScore  *int
	AwayScore  *int
	Status     string
}

func NormalizeStatus(value string) string {
	status := strings.ToUpper(strings.TrimSpace(value))
	if status == "" {
		return StatusScheduled
	}
	return status
}

func IsLiveStatus(status string) bool {
	switch NormalizeStatus(status) {
	case StatusLive, "IN_PLAY", "HT", "1H", "2H", "ET":
		return true
	default:
		return false
	}
}

func IsFinishedStatus(status string) bool {
	switch NormalizeStatus(status) {
	case StatusFinished, "FT", "AET", "PEN":
		return true
	default:
		return false
	}
}

func IsCancelledLikeStatus(status string) bool {
	switch NormalizeStatus(status) {
	case StatusCancelled, StatusPostponed, "ABANDONED":
		return true
	default:
		return false
	}
}

// IsUpcoming reports whether the match is still worth surfacing at now:
// not finished, not called off, and either live or kicking off later.
func (f Fixture) IsUpcoming(now time.Time) bool {
	if IsFinishedStatus(f.Status) || IsCancelledLikeStatus(f.Status) {
		return false
	}
	return IsLiveStatus(f.Status) || !f.KickoffAt.Before(now)
}

func (f Fixture) Involves(teamID string) bool {
	return teamID != "" && (f.HomeTeamID == teamID || f.AwayTeamID == teamID)
}
