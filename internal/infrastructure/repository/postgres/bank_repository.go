package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/avenratt/league-portal/internal/domain/bank"
)

type BankRepository struct {
	db *sqlx.DB
}

func NewBankRepository(db *sqlx.DB) *BankRepository {
	return &BankRepository{db: db}
}

type bankTableModel struct {
	ID          string    `db:"id"`
	UserID      string    `db:"user_id"`
	PlayerID    *string   `db:"player_id"`
	Amount      int64     `db:"amount"`
	Type        string    `db:"type"`
	Status      string    `db:"status"`
	Description string    `db:"description"`
	CreatedAt   time.Time `db:"created_at"`
}

func (m bankTableModel) toDomain() bank.Transaction {
	return bank.Transaction{
		ID:          m.ID,
		UserID:      m.UserID,
		PlayerID:    m.PlayerID,
		Amount:      m.Amount,
		Type:        bank.TransactionType(m.Type),
		Status:      bank.TransactionStatus(m.Status),
		Description: m.Description,
		CreatedAt:   m.CreatedAt,
	}
}

func (r *BankRepository) Balance(ctx context.Context, userID string) (int64, error) {
	const query = `
SELECT COALESCE(SUM(amount), 0)
FROM bank_transactions
WHERE user_id = $1
  AND status = $2`

	var balance int64
	if err := r.db.GetContext(ctx, &balance, query, userID, string(bank.StatusCompleted)); err != nil {
		return 0, fmt.Errorf("sum bank transactions: %w", err)
	}
	return balance, nil
}

func (r *BankRepository) HasAny(ctx context.Context, userID string) (bool, error) {
	const query = `
SELECT EXISTS (
    SELECT 1
    FROM bank_transactions
    WHERE user_id = $1
)`

	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, userID); err != nil {
		return false, fmt.Errorf("check bank account: %w", err)
	}
	return exists, nil
}

func (r *BankRepository) ListByUser(ctx context.Context, userID string) ([]bank.Transaction, error) {
	const query = `
SELECT id, user_id, player_id, amount, type, status, description, created_at
FROM bank_transactions
WHERE user_id = $1
ORDER BY created_at, id`

	var rows []bankTableModel
	if err := r.db.SelectContext(ctx, &rows, query, userID); err != nil {
		return nil, fmt.Errorf("select bank transactions by user: %w", err)
	}

	out := make([]bank.Transaction, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *BankRepository) ListByPlayer(ctx context.Context, playerID string) ([]bank.Transaction, error) {
	const query = `
SELECT id, user_id, player_id, amount, type, status, description, created_at
FROM bank_transactions
WHERE player_id = $1
ORDER BY created_at, id`

	var rows []bankTableModel
	if err := r.db.SelectContext(ctx, &rows, query, playerID); err != nil {
		return nil, fmt.Errorf("select bank transactions by player: %w", err)
	}

	out := make([]bank.Transaction, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}
