package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/avenratt/league-portal/internal/domain/tpe"
)

type LedgerRepository struct {
	db *sqlx.DB
}

func NewLedgerRepository(db *sqlx.DB) *LedgerRepository {
	return &LedgerRepository{db: db}
}

type ledgerTableModel struct {
	ID                int64          `db:"id"`
	PlayerID          string         `db:"player_id"`
	Delta             int            `db:"delta"`
	Category          string         `db:"category"`
	Description       string         `db:"description"`
	SubmittedBy       string         `db:"submitted_by"`
	GroupID           sql.NullString `db:"group_id"`
	BankTransactionID sql.NullString `db:"bank_transaction_id"`
	CreatedAt         time.Time      `db:"created_at"`
}

func (m ledgerTableModel) toDomain() tpe.LedgerEntry {
	return tpe.LedgerEntry{
		ID:                m.ID,
		PlayerID:          m.PlayerID,
		Delta:             m.Delta,
		Category:          tpe.Category(m.Category),
		Description:       m.Description,
		SubmittedBy:       m.SubmittedBy,
		GroupID:           m.GroupID.String,
		BankTransactionID: m.BankTransactionID.String,
		CreatedAt:         m.CreatedAt,
	}
}

func (r *LedgerRepository) ListByPlayer(ctx context.Context, playerID string) ([]tpe.LedgerEntry, error) {
	const query = `
SELECT id, player_id, delta, category, description, submitted_by, group_id,
       bank_transaction_id, created_at
FROM tpe_ledger
WHERE player_id = $1
ORDER BY id`

	var rows []ledgerTableModel
	if err := r.db.SelectContext(ctx, &rows, query, playerID); err != nil {
		return nil, fmt.Errorf("select ledger entries: %w", err)
	}

	out := make([]tpe.LedgerEntry, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *LedgerRepository) TotalEarned(ctx context.Context, playerID string) (int, error) {
	const query = `
SELECT COALESCE(SUM(delta), 0)
FROM tpe_ledger
WHERE player_id = $1`

	var total int
	if err := r.db.GetContext(ctx, &total, query, playerID); err != nil {
		return 0, fmt.Errorf("sum ledger deltas: %w", err)
	}
	return total, nil
}
