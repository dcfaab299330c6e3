package favorite

import "errors"

var (
	ErrNotFound          = errors.New("favorite not found")
	ErrDuplicateFavorite = errors.New("favorite already exists")
	ErrInvalidEntityType = errors.New("invalid entity type")
	ErrInvalidResolution = errors.New("invalid conflict resolution")
	ErrConflictNotFound  = errors.New("sync conflict not found")
)
