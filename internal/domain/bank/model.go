package bank

import (
	"context"
	"fmt"
	"time"
)

// StartingBalance is granted once per user, on their first approved player.
const StartingBalance int64 = 3_000_000

type TransactionType string

const (
	TypeSeed           TransactionType = "seed"
	TypeRedistribution TransactionType = "redistribution"
	TypeTaskReward     TransactionType = "task-reward"
)

type TransactionStatus string

const (
	StatusPending   TransactionStatus = "pending"
	StatusCompleted TransactionStatus = "completed"
	StatusReversed  TransactionStatus = "reversed"
)

// Transaction is one signed movement on a user's bank account. Balance is
// the sum of completed transaction amounts, never a stored cell.
type Transaction struct {
	ID          string            `json:"id" db:"id"`
	UserID      string            `json:"userId" db:"user_id"`
	PlayerID    *string           `json:"playerId,omitempty" db:"player_id"`
	Amount      int64             `json:"amount" db:"amount"`
	Type        TransactionType   `json:"type" db:"type"`
	Status      TransactionStatus `json:"status" db:"status"`
	Description string            `json:"description" db:"description"`
	CreatedAt   time.Time         `json:"createdAt" db:"created_at"`
}

func (t Transaction) Validate() error {
	if t.UserID == "" {
		return fmt.Errorf("bank transaction missing user id")
	}
	switch t.Type {
	case TypeSeed, TypeRedistribution, TypeTaskReward:
	default:
		return fmt.Errorf("unknown bank transaction type %q", t.Type)
	}
	return nil
}

type Repository interface {
	// Balance sums completed transactions for the user. A user with no
	// transactions has balance zero, not an error.
	Balance(ctx context.Context, userID string) (int64, error)
	HasAny(ctx context.Context, userID string) (bool, error)
	ListByUser(ctx context.Context, userID string) ([]Transaction, error)
	ListByPlayer(ctx context.Context, playerID string) ([]Transaction, error)
}
