package memory

import (
	"context"

	"github.com/avenratt/league-portal/internal/domain/bank"
)

type BankRepository struct {
	store *Store
}

func NewBankRepository(store *Store) *BankRepository {
	return &BankRepository{store: store}
}

func (r *BankRepository) Balance(_ context.Context, userID string) (int64, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var balance int64
	for _, tx := range r.store.transactions {
		if tx.UserID == userID && tx.Status == bank.StatusCompleted {
			balance += tx.Amount
		}
	}
	return balance, nil
}

func (r *BankRepository) HasAny(_ context.Context, userID string) (bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, tx := range r.store.transactions {
		if tx.UserID == userID {
			return true, nil
		}
	}
	return false, nil
}

func (r *BankRepository) ListByUser(_ context.Context, userID string) ([]bank.Transaction, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var out []bank.Transaction
	for _, tx := range r.store.transactions {
		if tx.UserID == userID {
			out = append(out, tx)
		}
	}
	return out, nil
}

func (r *BankRepository) ListByPlayer(_ context.Context, playerID string) ([]bank.Transaction, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var out []bank.Transaction
	for _, tx := range r.store.transactions {
		if tx.PlayerID != nil && *tx.PlayerID == playerID {
			out = append(out, tx)
		}
	}
	return out, nil
}
