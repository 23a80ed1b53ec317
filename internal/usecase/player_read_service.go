package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/avenratt/league-portal/internal/domain/attributes"
	"github.com/avenratt/league-portal/internal/domain/bank"
	"github.com/avenratt/league-portal/internal/domain/events"
	"github.com/avenratt/league-portal/internal/domain/player"
	"github.com/avenratt/league-portal/internal/domain/progression"
	"github.com/avenratt/league-portal/internal/domain/season"
	"github.com/avenratt/league-portal/internal/domain/tpe"
	"github.com/avenratt/league-portal/internal/domain/user"
)

// PlayerProfile is the public read model: the player row, their current
// attribute sheet, and the resolved TPE state.
type PlayerProfile struct {
	Player     player.Player  `json:"player"`
	Attributes attributes.Set `json:"attributes"`
	TPE        TPESummary     `json:"tpe"`
}

type PlayerReadService struct {
	playerRepo player.Repository
	attrRepo   attributes.Repository
	ledgerRepo tpe.Repository
	eventRepo  events.Repository
	bankRepo   bank.Repository
	seasonRepo season.Repository
	logger     *slog.Logger
}

func NewPlayerReadService(
	playerRepo player.Repository,
	attrRepo attributes.Repository,
	ledgerRepo tpe.Repository,
	eventRepo events.Repository,
	bankRepo bank.Repository,
	seasonRepo season.Repository,
	logger *slog.Logger,
) *PlayerReadService {
	return &PlayerReadService{
		playerRepo: playerRepo,
		attrRepo:   attrRepo,
		ledgerRepo: ledgerRepo,
		eventRepo:  eventRepo,
		bankRepo:   bankRepo,
		seasonRepo: seasonRepo,
		logger:     logger,
	}
}

func (s *PlayerReadService) Profile(ctx context.Context, playerID string) (PlayerProfile, error) {
	ctx, span := startUsecaseSpan(ctx, "PlayerReadService.Profile")
	defer span.End()

	p, set, err := s.load(ctx, playerID)
	if err != nil {
		return PlayerProfile{}, err
	}
	summary, err := s.TPE(ctx, playerID)
	if err != nil {
		return PlayerProfile{}, err
	}
	return PlayerProfile{Player: p, Attributes: set, TPE: summary}, nil
}

// TPE resolves the player's point state from the ledger, their sheet and
// the current season's cap rules.
func (s *PlayerReadService) TPE(ctx context.Context, playerID string) (TPESummary, error) {
	ctx, span := startUsecaseSpan(ctx, "PlayerReadService.TPE")
	defer span.End()

	p, set, err := s.load(ctx, playerID)
	if err != nil {
		return TPESummary{}, err
	}
	lifetime, err := s.ledgerRepo.TotalEarned(ctx, p.ID)
	if err != nil {
		return TPESummary{}, fmt.Errorf("load lifetime TPE: %w", err)
	}
	applied, err := progression.AppliedCost(p.Position, set)
	if err != nil {
		return TPESummary{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	currentSeason, err := s.seasonRepo.Current(ctx)
	if err != nil {
		return TPESummary{}, fmt.Errorf("load current season: %w", err)
	}
	return summarizeTPE(p, lifetime, applied, currentSeason.Number), nil
}

func (s *PlayerReadService) Ledger(ctx context.Context, playerID string) ([]tpe.LedgerEntry, error) {
	ctx, span := startUsecaseSpan(ctx, "PlayerReadService.Ledger")
	defer span.End()

	if _, _, err := s.load(ctx, playerID); err != nil {
		return nil, err
	}
	entries, err := s.ledgerRepo.ListByPlayer(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("list ledger: %w", err)
	}
	return entries, nil
}

func (s *PlayerReadService) Events(ctx context.Context, playerID string) ([]events.UpdateEvent, error) {
	ctx, span := startUsecaseSpan(ctx, "PlayerReadService.Events")
	defer span.End()

	if _, _, err := s.load(ctx, playerID); err != nil {
		return nil, err
	}
	history, err := s.eventRepo.ListByPlayer(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("list update events: %w", err)
	}
	return history, nil
}

func (s *PlayerReadService) Bank(ctx context.Context, playerID string) ([]bank.Transaction, error) {
	ctx, span := startUsecaseSpan(ctx, "PlayerReadService.Bank")
	defer span.End()

	if _, _, err := s.load(ctx, playerID); err != nil {
		return nil, err
	}
	transactions, err := s.bankRepo.ListByPlayer(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("list bank transactions: %w", err)
	}
	return transactions, nil
}

// ListPending is the admin approval queue, oldest submission first.
func (s *PlayerReadService) ListPending(ctx context.Context, principal user.Principal) ([]player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "PlayerReadService.ListPending")
	defer span.End()

	if !principal.HasRole(user.RoleAdmin) {
		return nil, fmt.Errorf("%w: admin role required", ErrForbidden)
	}
	pending, err := s.playerRepo.ListByStatus(ctx, player.StatusPending)
	if err != nil {
		return nil, fmt.Errorf("list pending players: %w", err)
	}
	sort.Slice(pending, func(i, j int) bool {
		return pending[i].CreatedAt.Before(pending[j].CreatedAt)
	})
	return pending, nil
}

func (s *PlayerReadService) load(ctx context.Context, playerID string) (player.Player, attributes.Set, error) {
	if strings.TrimSpace(playerID) == "" {
		return player.Player{}, attributes.Set{}, fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}
	p, found, err := s.playerRepo.GetByID(ctx, playerID)
	if err != nil {
		return player.Player{}, attributes.Set{}, fmt.Errorf("get player by id: %w", err)
	}
	if !found {
		return player.Player{}, attributes.Set{}, fmt.Errorf("%w: player %s", ErrNotFound, playerID)
	}
	set, found, err := s.attrRepo.GetByPlayer(ctx, p.ID, p.Position)
	if err != nil {
		return player.Player{}, attributes.Set{}, fmt.Errorf("get attributes: %w", err)
	}
	if !found {
		return player.Player{}, attributes.Set{}, fmt.Errorf("%w: attribute sheet for player %s", ErrNotFound, playerID)
	}
	return p, set, nil
}
