package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/avenratt/league-portal/internal/domain/attributes"
	"github.com/avenratt/league-portal/internal/domain/player"
)

type AttributeRepository struct {
	db *sqlx.DB
}

func NewAttributeRepository(db *sqlx.DB) *AttributeRepository {
	return &AttributeRepository{db: db}
}

func (r *AttributeRepository) GetByPlayer(ctx context.Context, playerID string, position player.Position) (attributes.Set, bool, error) {
	if position == player.PositionGoalie {
		const query = `
SELECT player_id, blocker, glove, passing, poke_check, positioning, rebound,
       recovery, puckhandling, low_shots, reflexes, skating, mental_toughness,
       aggression, determination, team_player, leadership, professionalism
FROM goalie_attributes
WHERE player_id = $1`

		var row goalieTableModel
		if err := r.db.GetContext(ctx, &row, query, playerID); err != nil {
			if isNotFound(err) {
				return attributes.Set{}, false, nil
			}
			return attributes.Set{}, false, fmt.Errorf("get goalie attributes: %w", err)
		}
		goalie := row.toDomain()
		return attributes.Set{Goalie: &goalie}, true, nil
	}

	const query = `
SELECT player_id, screening, getting_open, passing, puckhandling, shooting_accuracy,
       shooting_range, offensive_read, checking, hitting, positioning, stickchecking,
       shot_blocking, faceoffs, defensive_read, acceleration, agility, balance, speed,
       stamina, strength, determination, team_player, leadership, professionalism
FROM skater_attributes
WHERE player_id = $1`

	var row skaterTableModel
	if err := r.db.GetContext(ctx, &row, query, playerID); err != nil {
		if isNotFound(err) {
			return attributes.Set{}, false, nil
		}
		return attributes.Set{}, false, fmt.Errorf("get skater attributes: %w", err)
	}
	skater := row.toDomain()
	return attributes.Set{Skater: &skater}, true, nil
}
