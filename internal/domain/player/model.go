package player

import "github.com/go-playground/validator/v10"

var validate = validator.New(validator.WithRequiredStructEnabled())

type Position string

const (
	PositionGoalkeeper Position = "GK"
	PositionDefender   Position = "DEF"
	PositionMidfielder Position = "MID"
	PositionForward    Position = "FWD"
)

// Player is followed on their own; the feed shows their club's fixtures.
type Player struct {
	ID          string   `validate:"required"`
	LeagueID    string   `validate:"required"`
	TeamID      string   `validate:"required"`
	Name        string   `validate:"required"`
	Position    Position `validate:"oneof=GK DEF MID FWD"`
	Nationality string   `validate:"omitempty,iso3166_1_alpha2"`
	ImageURL    string   `validate:"omitempty,url"`
}

func (p Player) Validate() error {
	return validate.Struct(p)
}
