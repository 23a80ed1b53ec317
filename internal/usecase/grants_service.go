package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/avenratt/league-portal/internal/domain/bank"
	"github.com/avenratt/league-portal/internal/domain/player"
	"github.com/avenratt/league-portal/internal/domain/progression"
	"github.com/avenratt/league-portal/internal/domain/tpe"
	"github.com/avenratt/league-portal/internal/domain/user"
	"github.com/avenratt/league-portal/internal/platform/id"
)

// GrantInput is one earned-TPE award inside a batch. BankReward, when
// positive, pays the player's owner alongside the points.
type GrantInput struct {
	PlayerID    string `json:"playerId" validate:"required"`
	Delta       int    `json:"delta" validate:"required"`
	Description string `json:"description" validate:"required"`
	BankReward  int64  `json:"bankReward" validate:"gte=0"`
}

type GrantBatchInput struct {
	Principal user.Principal
	Grants    []GrantInput
}

type GrantBatchResult struct {
	GroupID string            `json:"groupId"`
	Entries []tpe.LedgerEntry `json:"entries"`
}

// GrantsService appends point-task results to player ledgers in batches.
// A whole batch shares one group id and lands atomically.
type GrantsService struct {
	playerRepo player.Repository
	store      progression.Store
	ids        id.Generator
	logger     *slog.Logger
	now        func() time.Time
}

func NewGrantsService(playerRepo player.Repository, store progression.Store, ids id.Generator, logger *slog.Logger) *GrantsService {
	return &GrantsService{
		playerRepo: playerRepo,
		store:      store,
		ids:        ids,
		logger:     logger,
		now:        time.Now,
	}
}

func (s *GrantsService) Append(ctx context.Context, input GrantBatchInput) (GrantBatchResult, error) {
	ctx, span := startUsecaseSpan(ctx, "GrantsService.Append")
	defer span.End()

	if !input.Principal.HasRole(user.RolePT) {
		return GrantBatchResult{}, fmt.Errorf("%w: pt role required", ErrForbidden)
	}
	if len(input.Grants) == 0 {
		return GrantBatchResult{}, fmt.Errorf("%w: grant batch is empty", ErrInvalidInput)
	}

	groupID, err := s.ids.NewID()
	if err != nil {
		return GrantBatchResult{}, fmt.Errorf("generate group id: %w", err)
	}

	now := s.now()
	rec := progression.GrantBatchRecord{}
	for _, grant := range input.Grants {
		grant.Description = strings.TrimSpace(grant.Description)
		if grant.PlayerID == "" || grant.Delta == 0 || grant.Description == "" {
			return GrantBatchResult{}, fmt.Errorf("%w: grant needs player, non-zero delta and description", ErrInvalidInput)
		}

		p, found, err := s.playerRepo.GetByID(ctx, grant.PlayerID)
		if err != nil {
			return GrantBatchResult{}, fmt.Errorf("get player by id: %w", err)
		}
		if !found {
			return GrantBatchResult{}, fmt.Errorf("%w: player %s", ErrNotFound, grant.PlayerID)
		}
		if p.Status != player.StatusActive {
			return GrantBatchResult{}, fmt.Errorf("%w: player %s is %s, not active", ErrConflict, p.ID, p.Status)
		}

		entry := tpe.LedgerEntry{
			PlayerID:    p.ID,
			Delta:       grant.Delta,
			Category:    tpe.CategoryTask,
			Description: grant.Description,
			SubmittedBy: input.Principal.UserID,
			GroupID:     groupID,
			CreatedAt:   now,
		}

		if grant.BankReward > 0 {
			txID, err := s.ids.NewID()
			if err != nil {
				return GrantBatchResult{}, fmt.Errorf("generate transaction id: %w", err)
			}
			playerID := p.ID
			rec.BankCredits = append(rec.BankCredits, bank.Transaction{
				ID:          txID,
				UserID:      p.UserID,
				PlayerID:    &playerID,
				Amount:      grant.BankReward,
				Type:        bank.TypeTaskReward,
				Status:      bank.StatusCompleted,
				Description: grant.Description,
				CreatedAt:   now,
			})
			entry.BankTransactionID = txID
		}

		rec.Entries = append(rec.Entries, entry)
	}

	if err := s.store.AppendGrants(ctx, rec); err != nil {
		return GrantBatchResult{}, fmt.Errorf("append grants: %w", err)
	}

	s.logger.InfoContext(ctx, "tpe grants appended",
		"group_id", groupID,
		"grants", len(rec.Entries),
		"submitted_by", input.Principal.UserID,
	)
	return GrantBatchResult{GroupID: groupID, Entries: rec.Entries}, nil
}
