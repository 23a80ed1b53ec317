package usecase

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/avenratt/league-portal/internal/domain/bank"
	"github.com/avenratt/league-portal/internal/domain/player"
	"github.com/avenratt/league-portal/internal/domain/progression"
	"github.com/avenratt/league-portal/internal/domain/tpe"
	"github.com/avenratt/league-portal/internal/domain/user"
	playermock "github.com/avenratt/league-portal/internal/mocks/domain/player"
	progressionmock "github.com/avenratt/league-portal/internal/mocks/domain/progression"
)

func TestGrantsService_Append_SuccessUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	playerRepo := playermock.NewRepository(t)
	store := progressionmock.NewStore(t)

	ids := &sequenceIDGenerator{prefix: "grant"}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	service := NewGrantsService(playerRepo, store, ids, logger)

	active := player.Player{ID: "player-1", UserID: "user-1", Name: "Test Player", Status: player.StatusActive}

	playerRepo.
		On("GetByID", mock.MatchedBy(func(v context.Context) bool { return v != nil }), "player-1").
		Return(active, true, nil).
		Once()
	store.
		On("AppendGrants", mock.Anything, mock.MatchedBy(func(rec progression.GrantBatchRecord) bool {
			if len(rec.Entries) != 1 || len(rec.BankCredits) != 1 {
				return false
			}
			entry := rec.Entries[0]
			credit := rec.BankCredits[0]
			return entry.Category == tpe.CategoryTask &&
				entry.GroupID != "" &&
				entry.BankTransactionID == credit.ID &&
				credit.Type == bank.TypeTaskReward &&
				credit.Amount == 75_000
		})).
		Return(nil).
		Once()

	result, err := service.Append(ctx, GrantBatchInput{
		Principal: user.Principal{UserID: "grader-1", Roles: []string{user.RolePT}},
		Grants: []GrantInput{
			{PlayerID: "player-1", Delta: 8, Description: "Podcast answers", BankReward: 75_000},
		},
	})
	if err != nil {
		t.Fatalf("append grants: %v", err)
	}
	if len(result.Entries) != 1 {
		t.Fatalf("unexpected entry count: got=%d want=1", len(result.Entries))
	}
	if result.Entries[0].GroupID != result.GroupID {
		t.Fatalf("entry group id %q does not match batch group id %q", result.Entries[0].GroupID, result.GroupID)
	}
}

func TestGrantsService_Append_PlayerNotFoundUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	playerRepo := playermock.NewRepository(t)
	store := progressionmock.NewStore(t)

	ids := &sequenceIDGenerator{prefix: "grant"}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	service := NewGrantsService(playerRepo, store, ids, logger)

	playerRepo.
		On("GetByID", mock.MatchedBy(func(v context.Context) bool { return v != nil }), "missing-player").
		Return(player.Player{}, false, nil).
		Once()

	_, err := service.Append(ctx, GrantBatchInput{
		Principal: user.Principal{UserID: "grader-1", Roles: []string{user.RolePT}},
		Grants: []GrantInput{
			{PlayerID: "missing-player", Delta: 4, Description: "Podcast answers"},
		},
	})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
