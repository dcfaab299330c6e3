package league

import "github.com/go-playground/validator/v10"

var validate = validator.New(validator.WithRequiredStructEnabled())

// League is a competition season. Following a league surfaces all of its
// fixtures in the feed.
type League struct {
	ID          string `validate:"required"`
	Name        string `validate:"required"`
	CountryCode string `validate:"omitempty,iso3166_1_alpha2"`
	Season      string `validate:"required"`
	LogoURL     string `validate:"omitempty,url"`
}

func (l League) Validate() error {
	return validate.Struct(l)
}
