package memory

import (
	"context"

	"github.com/avenratt/league-portal/internal/domain/player"
)

type PlayerRepository struct {
	store *Store
}

func NewPlayerRepository(store *Store) *PlayerRepository {
	return &PlayerRepository{store: store}
}

func (r *PlayerRepository) GetByID(_ context.Context, playerID string) (player.Player, bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	p, ok := r.store.players[playerID]
	if !ok {
		return player.Player{}, false, nil
	}
	return clonePlayer(p), true, nil
}

func (r *PlayerRepository) GetByUserAndStatuses(_ context.Context, userID string, statuses []player.Status) ([]player.Player, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	wanted := make(map[player.Status]struct{}, len(statuses))
	for _, status := range statuses {
		wanted[status] = struct{}{}
	}

	var out []player.Player
	for _, p := range r.store.players {
		if p.UserID != userID {
			continue
		}
		if _, ok := wanted[p.Status]; ok {
			out = append(out, clonePlayer(p))
		}
	}
	return out, nil
}

func (r *PlayerRepository) ListByStatus(_ context.Context, status player.Status) ([]player.Player, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var out []player.Player
	for _, p := range r.store.players {
		if p.Status == status {
			out = append(out, clonePlayer(p))
		}
	}
	return out, nil
}

func (r *PlayerRepository) ListByLeague(_ context.Context, league player.League) ([]player.Player, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var out []player.Player
	for _, p := range r.store.players {
		if p.CurrentLeague != nil && *p.CurrentLeague == league {
			out = append(out, clonePlayer(p))
		}
	}
	return out, nil
}
