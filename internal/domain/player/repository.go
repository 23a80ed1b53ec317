package player

import "context"

type Repository interface {
	GetByID(ctx context.Context, playerID string) (Player, bool, error)
	// GetByUserAndStatuses returns the user's players currently in one of the
	// given statuses. Used to enforce the one-live-player-per-user rule.
	GetByUserAndStatuses(ctx context.Context, userID string, statuses []Status) ([]Player, error)
	ListByStatus(ctx context.Context, status Status) ([]Player, error)
	ListByLeague(ctx context.Context, league League) ([]Player, error)
}
