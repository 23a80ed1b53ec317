package events

import (
	"context"
	"time"
)

// ApprovalStatus tracks whether an update event still needs an admin
// decision. Routine attribute spends are recorded as not-required.
type ApprovalStatus string

const (
	ApprovalPending     ApprovalStatus = "pending"
	ApprovalApproved    ApprovalStatus = "approved"
	ApprovalDenied      ApprovalStatus = "denied"
	ApprovalNotRequired ApprovalStatus = "not-required"
)

// Field names used for status transitions, so unretirement checks can
// scan the event log rather than a dedicated flag.
const (
	FieldStatus  = "status"
	FieldCreated = "created"
	// FieldRegressionFlag marks a season-rollover audit finding: the
	// player's applied spend exceeds the new season's ceiling and a
	// regression is owed. OldValue carries the applied spend, NewValue
	// the ceiling it must come down to.
	FieldRegressionFlag = "regressionRequired"
)

// UpdateEvent is one line of the per-player audit trail: a field moved
// from OldValue to NewValue, performed by a user, optionally tied to a
// bank transaction.
type UpdateEvent struct {
	ID                int64          `json:"id" db:"id"`
	PlayerID          string         `json:"playerId" db:"player_id"`
	Field             string         `json:"field" db:"field"`
	OldValue          string         `json:"oldValue" db:"old_value"`
	NewValue          string         `json:"newValue" db:"new_value"`
	PerformedBy       string         `json:"performedBy" db:"performed_by"`
	ApprovalStatus    ApprovalStatus `json:"approvalStatus" db:"approval_status"`
	BankTransactionID *string        `json:"bankTransactionId,omitempty" db:"bank_transaction_id"`
	CreatedAt         time.Time      `json:"createdAt" db:"created_at"`
}

type Repository interface {
	ListByPlayer(ctx context.Context, playerID string) ([]UpdateEvent, error)
	// HasTransition reports whether the player's log already contains a
	// Field=status event moving between the given values. Used to make
	// unretirement a once-per-career operation.
	HasTransition(ctx context.Context, playerID, oldValue, newValue string) (bool, error)
}
