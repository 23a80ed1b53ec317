package memory

import (
	"context"

	"github.com/avenratt/league-portal/internal/domain/events"
)

type EventRepository struct {
	store *Store
}

func NewEventRepository(store *Store) *EventRepository {
	return &EventRepository{store: store}
}

func (r *EventRepository) ListByPlayer(_ context.Context, playerID string) ([]events.UpdateEvent, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var out []events.UpdateEvent
	for _, event := range r.store.events {
		if event.PlayerID == playerID {
			out = append(out, event)
		}
	}
	return out, nil
}

func (r *EventRepository) HasTransition(_ context.Context, playerID, oldValue, newValue string) (bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, event := range r.store.events {
		if event.PlayerID == playerID &&
			event.Field == events.FieldStatus &&
			event.OldValue == oldValue &&
			event.NewValue == newValue {
			return true, nil
		}
	}
	return false, nil
}
