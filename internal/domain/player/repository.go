package player

import "context"

type Repository interface {
	GetByID(ctx context.Context, playerID string) (Player, bool, error)
}
