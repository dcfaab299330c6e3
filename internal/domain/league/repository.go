package league

import "context"

type Repository interface {
	GetByID(ctx context.Context, leagueID string) (League, bool, error)
}
