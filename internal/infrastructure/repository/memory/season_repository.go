package memory

import (
	"context"
	"fmt"

	"github.com/avenratt/league-portal/internal/domain/season"
)

type SeasonRepository struct {
	store *Store
}

func NewSeasonRepository(store *Store) *SeasonRepository {
	return &SeasonRepository{store: store}
}

func (r *SeasonRepository) Current(_ context.Context) (season.Season, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	if len(r.store.seasons) == 0 {
		return season.Season{}, fmt.Errorf("no seasons recorded")
	}

	current := r.store.seasons[0]
	for _, s := range r.store.seasons[1:] {
		if s.Number > current.Number {
			current = s
		}
	}
	return current, nil
}

func (r *SeasonRepository) Create(_ context.Context, s season.Season) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, existing := range r.store.seasons {
		if existing.Number >= s.Number {
			return fmt.Errorf("season %d is not after season %d", s.Number, existing.Number)
		}
	}
	r.store.seasons = append(r.store.seasons, s)
	return nil
}
