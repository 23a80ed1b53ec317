package memory

import (
	"context"

	"github.com/avenratt/league-portal/internal/domain/tpe"
)

type LedgerRepository struct {
	store *Store
}

func NewLedgerRepository(store *Store) *LedgerRepository {
	return &LedgerRepository{store: store}
}

func (r *LedgerRepository) ListByPlayer(_ context.Context, playerID string) ([]tpe.LedgerEntry, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var out []tpe.LedgerEntry
	for _, entry := range r.store.ledger {
		if entry.PlayerID == playerID {
			out = append(out, entry)
		}
	}
	return out, nil
}

func (r *LedgerRepository) TotalEarned(_ context.Context, playerID string) (int, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	total := 0
	for _, entry := range r.store.ledger {
		if entry.PlayerID == playerID {
			total += entry.Delta
		}
	}
	return total, nil
}
