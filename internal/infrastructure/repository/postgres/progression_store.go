package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/avenratt/league-portal/internal/domain/attributes"
	"github.com/avenratt/league-portal/internal/domain/bank"
	"github.com/avenratt/league-portal/internal/domain/events"
	"github.com/avenratt/league-portal/internal/domain/player"
	"github.com/avenratt/league-portal/internal/domain/progression"
	"github.com/avenratt/league-portal/internal/domain/tpe"
	qb "github.com/avenratt/league-portal/internal/platform/querybuilder"
)

// ProgressionStore is the transactional write side. Every method runs
// its statements on one BeginTxx transaction so a failing insert rolls
// the whole operation back.
type ProgressionStore struct {
	db *sqlx.DB
}

func NewProgressionStore(db *sqlx.DB) *ProgressionStore {
	return &ProgressionStore{db: db}
}

var _ progression.Store = (*ProgressionStore)(nil)

func (s *ProgressionStore) CreatePlayer(ctx context.Context, rec progression.CreatePlayerRecord) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx for create player: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if err := insertPlayer(ctx, tx, rec.Player); err != nil {
		return err
	}
	if err := upsertSheet(ctx, tx, rec.Player.ID, rec.Player.Position, rec.Attributes); err != nil {
		return err
	}
	if err := insertLedgerEntry(ctx, tx, rec.Ledger); err != nil {
		return err
	}
	if rec.SeedBank != nil {
		if err := insertBankTransaction(ctx, tx, *rec.SeedBank); err != nil {
			return err
		}
	}
	if err := insertEvent(ctx, tx, rec.Event); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit create player: %w", err)
	}
	return nil
}

func (s *ProgressionStore) ApplyChanges(ctx context.Context, rec progression.ApplyChangesRecord) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx for apply changes: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if err := upsertSheet(ctx, tx, rec.PlayerID, rec.Position, rec.Attributes); err != nil {
		return err
	}
	if rec.RedistributionDelta != 0 {
		const query = `
UPDATE players
SET used_redistribution = used_redistribution + $1,
    updated_at = NOW()
WHERE id = $2`
		if _, err := tx.ExecContext(ctx, query, rec.RedistributionDelta, rec.PlayerID); err != nil {
			return fmt.Errorf("bump used redistribution: %w", err)
		}
	}
	if rec.BankDebit != nil {
		if err := insertBankTransaction(ctx, tx, *rec.BankDebit); err != nil {
			return err
		}
	}
	for _, event := range rec.Events {
		if err := insertEvent(ctx, tx, event); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit apply changes: %w", err)
	}
	return nil
}

func (s *ProgressionStore) SetStatus(ctx context.Context, rec progression.StatusChangeRecord) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx for status change: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	// The status predicate makes the transition safe against a
	// concurrent change: zero rows means someone got there first.
	const query = `
UPDATE players
SET status = $1,
    retired_at = $2,
    updated_at = NOW()
WHERE id = $3
  AND status = $4`
	result, err := tx.ExecContext(ctx, query,
		string(rec.ToStatus), rec.RetiredAt, rec.PlayerID, string(rec.FromStatus))
	if err != nil {
		return fmt.Errorf("update player status: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update player status rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("player %s is no longer %s", rec.PlayerID, rec.FromStatus)
	}

	if rec.Ledger != nil {
		if err := insertLedgerEntry(ctx, tx, *rec.Ledger); err != nil {
			return err
		}
	}
	if err := insertEvent(ctx, tx, rec.Event); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit status change: %w", err)
	}
	return nil
}

func (s *ProgressionStore) AppendGrants(ctx context.Context, rec progression.GrantBatchRecord) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx for grant batch: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, credit := range rec.BankCredits {
		if err := insertBankTransaction(ctx, tx, credit); err != nil {
			return err
		}
	}
	for _, entry := range rec.Entries {
		if err := insertLedgerEntry(ctx, tx, entry); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit grant batch: %w", err)
	}
	return nil
}

func (s *ProgressionStore) AppendEvents(ctx context.Context, evs []events.UpdateEvent) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx for audit events: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, event := range evs {
		if err := insertEvent(ctx, tx, event); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit audit events: %w", err)
	}
	return nil
}

func insertPlayer(ctx context.Context, tx *sqlx.Tx, p player.Player) error {
	query, args, err := qb.InsertModel("players", playerToModel(p), "")
	if err != nil {
		return fmt.Errorf("build insert player query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert player: %w", err)
	}
	return nil
}

func upsertSheet(ctx context.Context, tx *sqlx.Tx, playerID string, position player.Position, set attributes.Set) error {
	if position == player.PositionGoalie {
		if set.Goalie == nil {
			return fmt.Errorf("goalie sheet is missing for player %s", playerID)
		}
		model := goalieToModel(playerID, *set.Goalie)
		query, args, err := qb.InsertModel("goalie_attributes", model, upsertSuffix("player_id", goalieSheetColumns))
		if err != nil {
			return fmt.Errorf("build upsert goalie attributes query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("upsert goalie attributes: %w", err)
		}
		return nil
	}

	if set.Skater == nil {
		return fmt.Errorf("skater sheet is missing for player %s", playerID)
	}
	model := skaterToModel(playerID, *set.Skater)
	query, args, err := qb.InsertModel("skater_attributes", model, upsertSuffix("player_id", skaterSheetColumns))
	if err != nil {
		return fmt.Errorf("build upsert skater attributes query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert skater attributes: %w", err)
	}
	return nil
}

func insertLedgerEntry(ctx context.Context, tx *sqlx.Tx, entry tpe.LedgerEntry) error {
	const query = `
INSERT INTO tpe_ledger (player_id, delta, category, description, submitted_by, group_id, bank_transaction_id, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := tx.ExecContext(ctx, query,
		entry.PlayerID,
		entry.Delta,
		string(entry.Category),
		entry.Description,
		entry.SubmittedBy,
		nullableString(entry.GroupID),
		nullableString(entry.BankTransactionID),
		createdAtOrNow(entry.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("insert ledger entry: %w", err)
	}
	return nil
}

func insertEvent(ctx context.Context, tx *sqlx.Tx, event events.UpdateEvent) error {
	const query = `
INSERT INTO update_events (player_id, field, old_value, new_value, performed_by, approval_status, bank_transaction_id, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := tx.ExecContext(ctx, query,
		event.PlayerID,
		event.Field,
		event.OldValue,
		event.NewValue,
		event.PerformedBy,
		string(event.ApprovalStatus),
		event.BankTransactionID,
		createdAtOrNow(event.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("insert update event: %w", err)
	}
	return nil
}

func insertBankTransaction(ctx context.Context, tx *sqlx.Tx, transaction bank.Transaction) error {
	const query = `
INSERT INTO bank_transactions (id, user_id, player_id, amount, type, status, description, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := tx.ExecContext(ctx, query,
		transaction.ID,
		transaction.UserID,
		transaction.PlayerID,
		transaction.Amount,
		string(transaction.Type),
		string(transaction.Status),
		transaction.Description,
		createdAtOrNow(transaction.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("insert bank transaction: %w", err)
	}
	return nil
}

var skaterSheetColumns = []string{
	"screening", "getting_open", "passing", "puckhandling", "shooting_accuracy",
	"shooting_range", "offensive_read", "checking", "hitting", "positioning",
	"stickchecking", "shot_blocking", "faceoffs", "defensive_read", "acceleration",
	"agility", "balance", "speed", "stamina", "strength", "determination",
	"team_player", "leadership", "professionalism",
}

var goalieSheetColumns = []string{
	"blocker", "glove", "passing", "poke_check", "positioning", "rebound",
	"recovery", "puckhandling", "low_shots", "reflexes", "skating",
	"mental_toughness", "aggression", "determination", "team_player",
	"leadership", "professionalism",
}

func upsertSuffix(conflictColumn string, columns []string) string {
	assignments := make([]string, 0, len(columns))
	for _, column := range columns {
		assignments = append(assignments, column+" = EXCLUDED."+column)
	}
	return fmt.Sprintf("ON CONFLICT (%s) DO UPDATE SET %s",
		conflictColumn, strings.Join(assignments, ", "))
}

func nullableString(value string) sql.NullString {
	return sql.NullString{String: value, Valid: value != ""}
}

func createdAtOrNow(at time.Time) time.Time {
	if at.IsZero() {
		return time.Now()
	}
	return at
}
