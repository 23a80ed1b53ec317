package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/avenratt/league-portal/internal/domain/events"
)

type EventRepository struct {
	db *sqlx.DB
}

func NewEventRepository(db *sqlx.DB) *EventRepository {
	return &EventRepository{db: db}
}

type eventTableModel struct {
	ID                int64     `db:"id"`
	PlayerID          string    `db:"player_id"`
	Field             string    `db:"field"`
	OldValue          string    `db:"old_value"`
	NewValue          string    `db:"new_value"`
	PerformedBy       string    `db:"performed_by"`
	ApprovalStatus    string    `db:"approval_status"`
	BankTransactionID *string   `db:"bank_transaction_id"`
	CreatedAt         time.Time `db:"created_at"`
}

func (m eventTableModel) toDomain() events.UpdateEvent {
	return events.UpdateEvent{
		ID:                m.ID,
		PlayerID:          m.PlayerID,
		Field:             m.Field,
		OldValue:          m.OldValue,
		NewValue:          m.NewValue,
		PerformedBy:       m.PerformedBy,
		ApprovalStatus:    events.ApprovalStatus(m.ApprovalStatus),
		BankTransactionID: m.BankTransactionID,
		CreatedAt:         m.CreatedAt,
	}
}

func (r *EventRepository) ListByPlayer(ctx context.Context, playerID string) ([]events.UpdateEvent, error) {
	const query = `
SELECT id, player_id, field, old_value, new_value, performed_by, approval_status,
       bank_transaction_id, created_at
FROM update_events
WHERE player_id = $1
ORDER BY id`

	var rows []eventTableModel
	if err := r.db.SelectContext(ctx, &rows, query, playerID); err != nil {
		return nil, fmt.Errorf("select update events: %w", err)
	}

	out := make([]events.UpdateEvent, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *EventRepository) HasTransition(ctx context.Context, playerID, oldValue, newValue string) (bool, error) {
	const query = `
SELECT EXISTS (
    SELECT 1
    FROM update_events
    WHERE player_id = $1
      AND field = $2
      AND old_value = $3
      AND new_value = $4
)`

	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, playerID, events.FieldStatus, oldValue, newValue); err != nil {
		return false, fmt.Errorf("check status transition: %w", err)
	}
	return exists, nil
}
