package memory

import (
	"fmt"

	"github.com/avenratt/league-portal/internal/domain/player"
)

// AssignRoster places a player in a league with a draft season. Roster
// moves come from the draft and trade processes, which live outside this
// service; the memory store exposes the write directly for dev and test
// setups.
func (s *Store) AssignRoster(playerID string, league player.League, draftSeason int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.players[playerID]
	if !ok {
		return fmt.Errorf("player %s not found", playerID)
	}
	p.CurrentLeague = &league
	p.DraftSeason = &draftSeason
	s.players[playerID] = p
	return nil
}
