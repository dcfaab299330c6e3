package team

import "github.com/go-playground/validator/v10"

var validate = validator.New(validator.WithRequiredStructEnabled())

// Team is a club. Ids are unique across leagues.
type Team struct {
	ID        string `validate:"required"`
	LeagueID  string `validate:"required"`
	Name      string `validate:"required"`
	ShortName string `validate:"omitempty,max=4"`
	Country   string `validate:"omitempty,iso3166_1_alpha2"`
	LogoURL   string `validate:"omitempty,url"`
}

func (t Team) Validate() error {
	return validate.Struct(t)
}
