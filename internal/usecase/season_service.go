package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/avenratt/league-portal/internal/domain/attributes"
	"github.com/avenratt/league-portal/internal/domain/events"
	"github.com/avenratt/league-portal/internal/domain/player"
	"github.com/avenratt/league-portal/internal/domain/progression"
	"github.com/avenratt/league-portal/internal/domain/season"
	"github.com/avenratt/league-portal/internal/domain/tpe"
	"github.com/avenratt/league-portal/internal/domain/user"
)

const defaultAuditWorkers = 8

type AdvanceSeasonInput struct {
	Principal  user.Principal
	MaxWorkers int
}

type AdvanceSeasonResult struct {
	Season       season.Season `json:"season"`
	AuditedCount int           `json:"audit_count"`
	FlaggedCount int           `json:"flagged_count"`
	FailedCount  int           `json:"failed_count"`
	WorkerCount  int           `json:"worker_count"`
}

// SeasonService owns the league clock. Advancing the season re-audits
// every active developmental-league player against the ceiling the new
// season puts them under, flagging overspent sheets for regression.
type SeasonService struct {
	seasonRepo season.Repository
	playerRepo player.Repository
	attrRepo   attributes.Repository
	ledgerRepo tpe.Repository
	store      progression.Store
	logger     *slog.Logger
	now        func() time.Time
}

func NewSeasonService(
	seasonRepo season.Repository,
	playerRepo player.Repository,
	attrRepo attributes.Repository,
	ledgerRepo tpe.Repository,
	store progression.Store,
	logger *slog.Logger,
) *SeasonService {
	return &SeasonService{
		seasonRepo: seasonRepo,
		playerRepo: playerRepo,
		attrRepo:   attrRepo,
		ledgerRepo: ledgerRepo,
		store:      store,
		logger:     logger,
		now:        time.Now,
	}
}

func (s *SeasonService) Current(ctx context.Context) (season.Season, error) {
	ctx, span := startUsecaseSpan(ctx, "SeasonService.Current")
	defer span.End()

	current, err := s.seasonRepo.Current(ctx)
	if err != nil {
		return season.Season{}, fmt.Errorf("load current season: %w", err)
	}
	return current, nil
}

func (s *SeasonService) Advance(ctx context.Context, input AdvanceSeasonInput) (AdvanceSeasonResult, error) {
	ctx, span := startUsecaseSpan(ctx, "SeasonService.Advance")
	defer span.End()

	if !input.Principal.HasRole(user.RoleAdmin) {
		return AdvanceSeasonResult{}, fmt.Errorf("%w: admin role required", ErrForbidden)
	}

	current, err := s.seasonRepo.Current(ctx)
	if err != nil {
		return AdvanceSeasonResult{}, fmt.Errorf("load current season: %w", err)
	}
	next := season.Season{Number: current.Number + 1, StartedAt: s.now()}
	if err := s.seasonRepo.Create(ctx, next); err != nil {
		return AdvanceSeasonResult{}, fmt.Errorf("create season: %w", err)
	}

	result, err := s.auditOverspend(ctx, input.Principal, next, input.MaxWorkers)
	if err != nil {
		return AdvanceSeasonResult{}, err
	}
	result.Season = next

	s.logger.InfoContext(ctx, "season advanced",
		"season", next.Number,
		"audited", result.AuditedCount,
		"flagged", result.FlaggedCount,
		"failed", result.FailedCount,
	)
	return result, nil
}

// auditOverspend fans the cap check out over a worker pool. The new
// sophomore ceiling can put last season's rookies over their spend, so
// every active developmental-league player gets re-checked.
func (s *SeasonService) auditOverspend(ctx context.Context, principal user.Principal, next season.Season, maxWorkers int) (AdvanceSeasonResult, error) {
	result := AdvanceSeasonResult{}

	players, err := s.playerRepo.ListByLeague(ctx, player.LeagueSMJHL)
	if err != nil {
		return result, fmt.Errorf("list developmental-league players: %w", err)
	}
	targets := players[:0:0]
	for _, p := range players {
		if p.Status == player.StatusActive {
			targets = append(targets, p)
		}
	}
	result.AuditedCount = len(targets)
	if len(targets) == 0 {
		result.WorkerCount = 0
		return result, nil
	}

	workerCount := maxWorkers
	if workerCount <= 0 {
		workerCount = defaultAuditWorkers
	}
	if workerCount > len(targets) {
		workerCount = len(targets)
	}
	result.WorkerCount = workerCount

	pool, err := ants.NewPool(workerCount)
	if err != nil {
		return result, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	flags := make(chan events.UpdateEvent, len(targets))
	var failedCount atomic.Int32
	now := s.now()

	var workers sync.WaitGroup
	for _, target := range targets {
		target := target
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			flag, flagged, err := s.checkPlayer(ctx, target, next.Number, principal.UserID, now)
			if err != nil {
				failedCount.Add(1)
				s.logger.WarnContext(ctx, "season audit check failed",
					"player_id", target.ID,
					"error", err,
				)
				return
			}
			if flagged {
				flags <- flag
			}
		}); err != nil {
			workers.Done()
			return result, fmt.Errorf("submit audit task to worker pool: %w", err)
		}
	}

	workers.Wait()
	close(flags)

	var flagEvents []events.UpdateEvent
	for flag := range flags {
		flagEvents = append(flagEvents, flag)
	}
	result.FlaggedCount = len(flagEvents)
	result.FailedCount = int(failedCount.Load())

	if len(flagEvents) > 0 {
		if err := s.store.AppendEvents(ctx, flagEvents); err != nil {
			return result, fmt.Errorf("record audit flags: %w", err)
		}
	}
	return result, nil
}

func (s *SeasonService) checkPlayer(ctx context.Context, p player.Player, seasonNumber int, performedBy string, at time.Time) (events.UpdateEvent, bool, error) {
	set, found, err := s.attrRepo.GetByPlayer(ctx, p.ID, p.Position)
	if err != nil {
		return events.UpdateEvent{}, false, fmt.Errorf("get attributes: %w", err)
	}
	if !found {
		return events.UpdateEvent{}, false, fmt.Errorf("attribute sheet missing for player %s", p.ID)
	}
	applied, err := progression.AppliedCost(p.Position, set)
	if err != nil {
		return events.UpdateEvent{}, false, err
	}
	lifetime, err := s.ledgerRepo.TotalEarned(ctx, p.ID)
	if err != nil {
		return events.UpdateEvent{}, false, fmt.Errorf("load lifetime TPE: %w", err)
	}

	capped := tpe.Effective(p, lifetime, applied, seasonNumber)
	if applied <= capped.TotalTPE {
		return events.UpdateEvent{}, false, nil
	}

	return events.UpdateEvent{
		PlayerID:       p.ID,
		Field:          events.FieldRegressionFlag,
		OldValue:       strconv.Itoa(applied),
		NewValue:       strconv.Itoa(capped.TotalTPE),
		PerformedBy:    performedBy,
		ApprovalStatus: events.ApprovalPending,
		CreatedAt:      at,
	}, true, nil
}
