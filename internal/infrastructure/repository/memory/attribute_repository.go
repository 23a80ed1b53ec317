package memory

import (
	"context"

	"github.com/avenratt/league-portal/internal/domain/attributes"
	"github.com/avenratt/league-portal/internal/domain/player"
)

type AttributeRepository struct {
	store *Store
}

func NewAttributeRepository(store *Store) *AttributeRepository {
	return &AttributeRepository{store: store}
}

func (r *AttributeRepository) GetByPlayer(_ context.Context, playerID string, _ player.Position) (attributes.Set, bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	set, ok := r.store.sheets[playerID]
	if !ok {
		return attributes.Set{}, false, nil
	}
	return cloneSet(set), true, nil
}
