package progression

import (
	"context"
	"time"

	"github.com/avenratt/league-portal/internal/domain/attributes"
	"github.com/avenratt/league-portal/internal/domain/bank"
	"github.com/avenratt/league-portal/internal/domain/events"
	"github.com/avenratt/league-portal/internal/domain/player"
	"github.com/avenratt/league-portal/internal/domain/tpe"
)

// Store executes the multi-row writes behind each progression operation.
// Every method is one atomic unit: either all rows land or none do, and
// storage errors surface without partial state.
type Store interface {
	CreatePlayer(ctx context.Context, rec CreatePlayerRecord) error
	ApplyChanges(ctx context.Context, rec ApplyChangesRecord) error
	SetStatus(ctx context.Context, rec StatusChangeRecord) error
	AppendGrants(ctx context.Context, rec GrantBatchRecord) error
	// AppendEvents writes audit-only events that change no other rows,
	// such as season-rollover overspend flags.
	AppendEvents(ctx context.Context, evs []events.UpdateEvent) error
}

// CreatePlayerRecord inserts a new pending player with its attribute
// sheet, the Create ledger entry, the first-player bank seed when
// applicable, and the approval-pending audit event.
type CreatePlayerRecord struct {
	Player     player.Player
	Attributes attributes.Set
	Ledger     tpe.LedgerEntry
	SeedBank   *bank.Transaction
	Event      events.UpdateEvent
}

// ApplyChangesRecord persists a validated attribute batch: the updated
// sheet, one audit event per change, and for redistribution the lifetime
// counter bump plus the currency debit.
type ApplyChangesRecord struct {
	PlayerID            string
	Position            player.Position
	Attributes          attributes.Set
	Events              []events.UpdateEvent
	RedistributionDelta int
	BankDebit           *bank.Transaction
}

// StatusChangeRecord covers retire, unretire and the approval queue.
// Ledger is set only for the one-time unretirement penalty.
type StatusChangeRecord struct {
	PlayerID   string
	FromStatus player.Status
	ToStatus   player.Status
	RetiredAt  *time.Time
	Ledger     *tpe.LedgerEntry
	Event      events.UpdateEvent
}

// GrantBatchRecord appends earned-TPE ledger entries, optionally paying
// linked bank rewards, all under one group id.
type GrantBatchRecord struct {
	Entries     []tpe.LedgerEntry
	BankCredits []bank.Transaction
}
