package tpe

import (
	"context"
	"fmt"
	"time"
)

// Category tags a ledger entry with the rule that produced it.
type Category string

const (
	CategoryCreate   Category = "Create"
	CategoryTask     Category = "Task"
	CategoryUnretire Category = "Unretire"
)

// LedgerEntry is one immutable point-changing event. A player's lifetime
// earned total is the running sum of all entries; corrections are made by
// appending offsetting entries, never by editing history.
type LedgerEntry struct {
	ID                int64
	PlayerID          string
	Delta             int
	Category          Category
	Description       string
	SubmittedBy       string
	GroupID           string
	BankTransactionID string
	CreatedAt         time.Time
}

func (e LedgerEntry) Validate() error {
	if e.PlayerID == "" {
		return fmt.Errorf("ledger entry player id is required")
	}
	if e.Category == "" {
		return fmt.Errorf("ledger entry category is required")
	}
	if e.SubmittedBy == "" {
		return fmt.Errorf("ledger entry submitter is required")
	}
	return nil
}

// Repository reads the append-only ledger. Writes happen only inside the
// progression store's atomic units.
type Repository interface {
	ListByPlayer(ctx context.Context, playerID string) ([]LedgerEntry, error)
	// TotalEarned is the sum of all deltas for the player. It must equal
	// the replayed sum of ListByPlayer at all times.
	TotalEarned(ctx context.Context, playerID string) (int, error)
}
