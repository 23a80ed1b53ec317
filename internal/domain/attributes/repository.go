package attributes

import (
	"context"

	"github.com/avenratt/league-portal/internal/domain/player"
)

// Repository loads the attribute sheet for a player. The shape of the
// sheet (skater or goalie) follows the stored position.
type Repository interface {
	GetByPlayer(ctx context.Context, playerID string, position player.Position) (Set, bool, error)
}
