package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/avenratt/league-portal/internal/domain/attributes"
	"github.com/avenratt/league-portal/internal/domain/bank"
	"github.com/avenratt/league-portal/internal/domain/events"
	"github.com/avenratt/league-portal/internal/domain/player"
	"github.com/avenratt/league-portal/internal/domain/progression"
	"github.com/avenratt/league-portal/internal/domain/season"
	"github.com/avenratt/league-portal/internal/domain/tpe"
	"github.com/avenratt/league-portal/internal/domain/user"
	"github.com/avenratt/league-portal/internal/platform/id"
)

type CreatePlayerInput struct {
	Principal  user.Principal
	Name       string
	Position   string
	Attributes *attributes.Set
}

// AttributeChangeInput is one proposed rating move as submitted on the
// wire. From is the client's last-known value and doubles as the
// optimistic lock against concurrent edits.
type AttributeChangeInput struct {
	Attribute string `json:"attribute" validate:"required"`
	From      int    `json:"from"`
	To        int    `json:"to"`
}

type AttributeBatchInput struct {
	Principal user.Principal
	PlayerID  string
	Changes   []AttributeChangeInput
}

type RetirementInput struct {
	Principal user.Principal
	PlayerID  string
}

type ApprovalInput struct {
	Principal user.Principal
	PlayerID  string
	Approve   bool
}

// ProgressionService orchestrates every state-changing player operation.
// Validation happens up front against repository reads; the actual write
// always goes through one atomic store unit.
type ProgressionService struct {
	playerRepo player.Repository
	attrRepo   attributes.Repository
	ledgerRepo tpe.Repository
	eventRepo  events.Repository
	bankRepo   bank.Repository
	seasonRepo season.Repository
	store      progression.Store
	ids        id.Generator
	logger     *slog.Logger
	now        func() time.Time
}

func NewProgressionService(
	playerRepo player.Repository,
	attrRepo attributes.Repository,
	ledgerRepo tpe.Repository,
	eventRepo events.Repository,
	bankRepo bank.Repository,
	seasonRepo season.Repository,
	store progression.Store,
	ids id.Generator,
	logger *slog.Logger,
) *ProgressionService {
	return &ProgressionService{
		playerRepo: playerRepo,
		attrRepo:   attrRepo,
		ledgerRepo: ledgerRepo,
		eventRepo:  eventRepo,
		bankRepo:   bankRepo,
		seasonRepo: seasonRepo,
		store:      store,
		ids:        ids,
		logger:     logger,
		now:        time.Now,
	}
}

// Create submits a new player for approval. The player starts pending
// with the standard point grant; the user's first player also seeds
// their bank account.
func (s *ProgressionService) Create(ctx context.Context, input CreatePlayerInput) (player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "ProgressionService.Create")
	defer span.End()

	input.Name = strings.TrimSpace(input.Name)
	if input.Principal.UserID == "" {
		return player.Player{}, fmt.Errorf("%w: missing caller identity", ErrUnauthorized)
	}
	if input.Name == "" {
		return player.Player{}, fmt.Errorf("%w: player name is required", ErrInvalidInput)
	}
	position := player.Position(input.Position)
	if _, ok := player.AllPositions[position]; !ok {
		return player.Player{}, fmt.Errorf("%w: unknown position %q", ErrInvalidInput, input.Position)
	}

	// One live player per user. Denied submissions also block so a
	// rejected build goes back through an admin, not around one.
	existing, err := s.playerRepo.GetByUserAndStatuses(ctx, input.Principal.UserID, []player.Status{
		player.StatusPending, player.StatusActive, player.StatusDenied,
	})
	if err != nil {
		return player.Player{}, fmt.Errorf("list players for user: %w", err)
	}
	if len(existing) > 0 {
		return player.Player{}, fmt.Errorf("%w: user already has a player in progress", ErrConflict)
	}

	set := attributes.DefaultFor(position)
	if input.Attributes != nil {
		set = *input.Attributes
	}
	if err := set.Validate(position); err != nil {
		return player.Player{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := progression.ValidateSpend(tpe.StartingTPE, position, set); err != nil {
		return player.Player{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	playerID, err := s.ids.NewID()
	if err != nil {
		return player.Player{}, fmt.Errorf("generate player id: %w", err)
	}

	now := s.now()
	created := player.Player{
		ID:        playerID,
		UserID:    input.Principal.UserID,
		Name:      input.Name,
		Position:  position,
		Status:    player.StatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := created.Validate(); err != nil {
		return player.Player{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	rec := progression.CreatePlayerRecord{
		Player:     created,
		Attributes: set,
		Ledger: tpe.LedgerEntry{
			PlayerID:    playerID,
			Delta:       tpe.StartingTPE,
			Category:    tpe.CategoryCreate,
			Description: "Initial player grant",
			SubmittedBy: input.Principal.UserID,
			CreatedAt:   now,
		},
		Event: events.UpdateEvent{
			PlayerID:       playerID,
			Field:          events.FieldCreated,
			OldValue:       "",
			NewValue:       string(player.StatusPending),
			PerformedBy:    input.Principal.UserID,
			ApprovalStatus: events.ApprovalPending,
			CreatedAt:      now,
		},
	}

	hasAccount, err := s.bankRepo.HasAny(ctx, input.Principal.UserID)
	if err != nil {
		return player.Player{}, fmt.Errorf("check bank account: %w", err)
	}
	if !hasAccount {
		seedID, err := s.ids.NewID()
		if err != nil {
			return player.Player{}, fmt.Errorf("generate transaction id: %w", err)
		}
		rec.SeedBank = &bank.Transaction{
			ID:          seedID,
			UserID:      input.Principal.UserID,
			PlayerID:    &playerID,
			Amount:      bank.StartingBalance,
			Type:        bank.TypeSeed,
			Status:      bank.StatusCompleted,
			Description: "Starting bank balance",
			CreatedAt:   now,
		}
	}

	if err := s.store.CreatePlayer(ctx, rec); err != nil {
		return player.Player{}, fmt.Errorf("create player: %w", err)
	}

	s.logger.InfoContext(ctx, "player created",
		"player_id", playerID,
		"user_id", input.Principal.UserID,
		"position", string(position),
	)
	return created, nil
}

// Update spends available TPE on attribute increases.
func (s *ProgressionService) Update(ctx context.Context, input AttributeBatchInput) (attributes.Set, error) {
	ctx, span := startUsecaseSpan(ctx, "ProgressionService.Update")
	defer span.End()

	p, set, err := s.loadOwnedPlayer(ctx, input.Principal, input.PlayerID)
	if err != nil {
		return attributes.Set{}, err
	}
	if p.Status != player.StatusActive {
		return attributes.Set{}, fmt.Errorf("%w: player is %s, not active", ErrConflict, p.Status)
	}

	changes, err := s.parseChanges(p.Position, input.Changes)
	if err != nil {
		return attributes.Set{}, err
	}
	if err := progression.ValidateIncrease(p, set, changes); err != nil {
		return attributes.Set{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	updated, err := progression.Apply(p, set, changes)
	if err != nil {
		return attributes.Set{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	summary, err := s.resolveTPE(ctx, p, set)
	if err != nil {
		return attributes.Set{}, err
	}
	usable := summary.AppliedTPE + summary.AvailableTPE
	if err := progression.ValidateSpend(usable, p.Position, updated); err != nil {
		return attributes.Set{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	now := s.now()
	rec := progression.ApplyChangesRecord{
		PlayerID:   p.ID,
		Position:   p.Position,
		Attributes: updated,
		Events:     changeEvents(p.ID, input.Principal.UserID, changes, now),
	}
	if err := s.store.ApplyChanges(ctx, rec); err != nil {
		return attributes.Set{}, fmt.Errorf("apply attribute changes: %w", err)
	}

	s.logger.InfoContext(ctx, "attributes updated",
		"player_id", p.ID,
		"changes", len(input.Changes),
	)
	return updated, nil
}

// Regression lowers attributes to clear an over-spend after a cap
// tightened or a penalty landed. Restricted to the regression role and
// only available while the player has nothing left to spend.
func (s *ProgressionService) Regression(ctx context.Context, input AttributeBatchInput) (attributes.Set, error) {
	ctx, span := startUsecaseSpan(ctx, "ProgressionService.Regression")
	defer span.End()

	if !input.Principal.HasRole(user.RoleRegression) {
		return attributes.Set{}, fmt.Errorf("%w: regression role required", ErrForbidden)
	}

	p, set, err := s.loadPlayer(ctx, input.PlayerID)
	if err != nil {
		return attributes.Set{}, err
	}
	if p.Status != player.StatusActive {
		return attributes.Set{}, fmt.Errorf("%w: player is %s, not active", ErrConflict, p.Status)
	}

	summary, err := s.resolveTPE(ctx, p, set)
	if err != nil {
		return attributes.Set{}, err
	}
	if summary.AvailableTPE > tpe.RegressionThreshold {
		return attributes.Set{}, fmt.Errorf("%w: %v", ErrInvalidInput, progression.ErrRegressionNotAllowed)
	}

	changes, err := s.parseChanges(p.Position, input.Changes)
	if err != nil {
		return attributes.Set{}, err
	}
	if err := progression.ValidateDecrease(p, set, changes); err != nil {
		return attributes.Set{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	updated, err := progression.Apply(p, set, changes)
	if err != nil {
		return attributes.Set{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	now := s.now()
	rec := progression.ApplyChangesRecord{
		PlayerID:   p.ID,
		Position:   p.Position,
		Attributes: updated,
		Events:     changeEvents(p.ID, input.Principal.UserID, changes, now),
	}
	if err := s.store.ApplyChanges(ctx, rec); err != nil {
		return attributes.Set{}, fmt.Errorf("apply regression: %w", err)
	}

	s.logger.InfoContext(ctx, "regression applied",
		"player_id", p.ID,
		"performed_by", input.Principal.UserID,
	)
	return updated, nil
}

// Redistribute converts applied points back into spendable TPE at a
// currency cost, bounded by a lifetime ceiling.
func (s *ProgressionService) Redistribute(ctx context.Context, input AttributeBatchInput) (attributes.Set, error) {
	ctx, span := startUsecaseSpan(ctx, "ProgressionService.Redistribute")
	defer span.End()

	p, set, err := s.loadOwnedPlayer(ctx, input.Principal, input.PlayerID)
	if err != nil {
		return attributes.Set{}, err
	}
	if p.Status != player.StatusActive {
		return attributes.Set{}, fmt.Errorf("%w: player is %s, not active", ErrConflict, p.Status)
	}

	changes, err := s.parseChanges(p.Position, input.Changes)
	if err != nil {
		return attributes.Set{}, err
	}
	if err := progression.ValidateDecrease(p, set, changes); err != nil {
		return attributes.Set{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	refund, err := progression.Refund(p.Position, changes)
	if err != nil {
		return attributes.Set{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if p.UsedRedistribution+refund > progression.MaxRedistribution {
		return attributes.Set{}, fmt.Errorf("%w: %v (used %d of %d)",
			ErrInvalidInput, progression.ErrRedistributionCap, p.UsedRedistribution, progression.MaxRedistribution)
	}

	currentSeason, err := s.seasonRepo.Current(ctx)
	if err != nil {
		return attributes.Set{}, fmt.Errorf("load current season: %w", err)
	}
	rate := progression.RedistributionRate(p, currentSeason.Number)
	cost := int64(rate) * int64(refund)

	now := s.now()
	rec := progression.ApplyChangesRecord{
		PlayerID:            p.ID,
		Position:            p.Position,
		RedistributionDelta: refund,
		Events:              changeEvents(p.ID, input.Principal.UserID, changes, now),
	}

	if cost > 0 {
		balance, err := s.bankRepo.Balance(ctx, p.UserID)
		if err != nil {
			return attributes.Set{}, fmt.Errorf("load bank balance: %w", err)
		}
		if balance < cost {
			return attributes.Set{}, fmt.Errorf("%w: %v (cost %d, balance %d)",
				ErrInvalidInput, progression.ErrInsufficientBalance, cost, balance)
		}
		txID, err := s.ids.NewID()
		if err != nil {
			return attributes.Set{}, fmt.Errorf("generate transaction id: %w", err)
		}
		debit := bank.Transaction{
			ID:          txID,
			UserID:      p.UserID,
			PlayerID:    &p.ID,
			Amount:      -cost,
			Type:        bank.TypeRedistribution,
			Status:      bank.StatusCompleted,
			Description: fmt.Sprintf("Redistribution of %d TPE", refund),
			CreatedAt:   now,
		}
		rec.BankDebit = &debit
		for i := range rec.Events {
			rec.Events[i].BankTransactionID = &debit.ID
		}
	}

	updated, err := progression.Apply(p, set, changes)
	if err != nil {
		return attributes.Set{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	rec.Attributes = updated

	if err := s.store.ApplyChanges(ctx, rec); err != nil {
		return attributes.Set{}, fmt.Errorf("apply redistribution: %w", err)
	}

	s.logger.InfoContext(ctx, "redistribution applied",
		"player_id", p.ID,
		"refund", refund,
		"cost", cost,
	)
	return updated, nil
}

// Retire moves an active player to retired.
func (s *ProgressionService) Retire(ctx context.Context, input RetirementInput) (player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "ProgressionService.Retire")
	defer span.End()

	p, _, err := s.loadOwnedPlayer(ctx, input.Principal, input.PlayerID)
	if err != nil {
		return player.Player{}, err
	}
	if p.Status != player.StatusActive {
		return player.Player{}, fmt.Errorf("%w: only active players can retire", ErrConflict)
	}

	now := s.now()
	rec := progression.StatusChangeRecord{
		PlayerID:   p.ID,
		FromStatus: player.StatusActive,
		ToStatus:   player.StatusRetired,
		RetiredAt:  &now,
		Event: events.UpdateEvent{
			PlayerID:       p.ID,
			Field:          events.FieldStatus,
			OldValue:       string(player.StatusActive),
			NewValue:       string(player.StatusRetired),
			PerformedBy:    input.Principal.UserID,
			ApprovalStatus: events.ApprovalNotRequired,
			CreatedAt:      now,
		},
	}
	if err := s.store.SetStatus(ctx, rec); err != nil {
		return player.Player{}, fmt.Errorf("retire player: %w", err)
	}

	p.Status = player.StatusRetired
	p.RetiredAt = &now
	p.UpdatedAt = now
	s.logger.InfoContext(ctx, "player retired", "player_id", p.ID)
	return p, nil
}

// Unretire brings a retired player back, once per career, at the price
// of a permanent ledger penalty against lifetime earnings.
func (s *ProgressionService) Unretire(ctx context.Context, input RetirementInput) (player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "ProgressionService.Unretire")
	defer span.End()

	p, _, err := s.loadOwnedPlayer(ctx, input.Principal, input.PlayerID)
	if err != nil {
		return player.Player{}, err
	}
	if p.Status != player.StatusRetired {
		return player.Player{}, fmt.Errorf("%w: only retired players can unretire", ErrConflict)
	}

	returned, err := s.eventRepo.HasTransition(ctx, p.ID,
		string(player.StatusRetired), string(player.StatusActive))
	if err != nil {
		return player.Player{}, fmt.Errorf("check unretirement history: %w", err)
	}
	if returned {
		return player.Player{}, fmt.Errorf("%w: player already unretired once", ErrConflict)
	}

	lifetime, err := s.ledgerRepo.TotalEarned(ctx, p.ID)
	if err != nil {
		return player.Player{}, fmt.Errorf("load lifetime TPE: %w", err)
	}
	penalty := tpe.UnretirePenalty(lifetime)

	now := s.now()
	rec := progression.StatusChangeRecord{
		PlayerID:   p.ID,
		FromStatus: player.StatusRetired,
		ToStatus:   player.StatusActive,
		RetiredAt:  nil,
		Ledger: &tpe.LedgerEntry{
			PlayerID:    p.ID,
			Delta:       penalty,
			Category:    tpe.CategoryUnretire,
			Description: "Unretirement penalty",
			SubmittedBy: input.Principal.UserID,
			CreatedAt:   now,
		},
		Event: events.UpdateEvent{
			PlayerID:       p.ID,
			Field:          events.FieldStatus,
			OldValue:       string(player.StatusRetired),
			NewValue:       string(player.StatusActive),
			PerformedBy:    input.Principal.UserID,
			ApprovalStatus: events.ApprovalNotRequired,
			CreatedAt:      now,
		},
	}
	if err := s.store.SetStatus(ctx, rec); err != nil {
		return player.Player{}, fmt.Errorf("unretire player: %w", err)
	}

	p.Status = player.StatusActive
	p.RetiredAt = nil
	p.UpdatedAt = now
	s.logger.InfoContext(ctx, "player unretired",
		"player_id", p.ID,
		"penalty", penalty,
	)
	return p, nil
}

// Decide resolves a pending player submission. Admin only.
func (s *ProgressionService) Decide(ctx context.Context, input ApprovalInput) (player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "ProgressionService.Decide")
	defer span.End()

	if !input.Principal.HasRole(user.RoleAdmin) {
		return player.Player{}, fmt.Errorf("%w: admin role required", ErrForbidden)
	}

	p, _, err := s.loadPlayer(ctx, input.PlayerID)
	if err != nil {
		return player.Player{}, err
	}
	if p.Status != player.StatusPending {
		return player.Player{}, fmt.Errorf("%w: player is %s, not pending", ErrConflict, p.Status)
	}

	target := player.StatusDenied
	approval := events.ApprovalDenied
	if input.Approve {
		target = player.StatusActive
		approval = events.ApprovalApproved
	}

	now := s.now()
	rec := progression.StatusChangeRecord{
		PlayerID:   p.ID,
		FromStatus: player.StatusPending,
		ToStatus:   target,
		Event: events.UpdateEvent{
			PlayerID:       p.ID,
			Field:          events.FieldStatus,
			OldValue:       string(player.StatusPending),
			NewValue:       string(target),
			PerformedBy:    input.Principal.UserID,
			ApprovalStatus: approval,
			CreatedAt:      now,
		},
	}
	if err := s.store.SetStatus(ctx, rec); err != nil {
		return player.Player{}, fmt.Errorf("decide player approval: %w", err)
	}

	p.Status = target
	p.UpdatedAt = now
	s.logger.InfoContext(ctx, "player approval decided",
		"player_id", p.ID,
		"status", string(target),
		"decided_by", input.Principal.UserID,
	)
	return p, nil
}

func (s *ProgressionService) loadPlayer(ctx context.Context, playerID string) (player.Player, attributes.Set, error) {
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

func (s *ProgressionService) loadOwnedPlayer(ctx context.Context, principal user.Principal, playerID string) (player.Player, attributes.Set, error) {
	if principal.UserID == "" {
		return player.Player{}, attributes.Set{}, fmt.Errorf("%w: missing caller identity", ErrUnauthorized)
	}
	p, set, err := s.loadPlayer(ctx, playerID)
	if err != nil {
		return player.Player{}, attributes.Set{}, err
	}
	if p.UserID != principal.UserID && !principal.HasRole(user.RoleAdmin) {
		return player.Player{}, attributes.Set{}, fmt.Errorf("%w: player belongs to another user", ErrForbidden)
	}
	return p, set, nil
}

func (s *ProgressionService) resolveTPE(ctx context.Context, p player.Player, set attributes.Set) (TPESummary, error) {
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

func (s *ProgressionService) parseChanges(position player.Position, inputs []AttributeChangeInput) (progression.ChangeSet, error) {
	if len(inputs) == 0 {
		return progression.ChangeSet{}, fmt.Errorf("%w: %v", ErrInvalidInput, progression.ErrEmptyChangeSet)
	}

	var changes progression.ChangeSet
	for _, in := range inputs {
		if position == player.PositionGoalie {
			attr, err := attributes.ParseGoalieAttribute(in.Attribute)
			if err != nil {
				return progression.ChangeSet{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
			}
			changes.Goalie = append(changes.Goalie, progression.GoalieChange{Attribute: attr, From: in.From, To: in.To})
			continue
		}
		attr, err := attributes.ParseSkaterAttribute(in.Attribute)
		if err != nil {
			return progression.ChangeSet{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		changes.Skater = append(changes.Skater, progression.SkaterChange{Attribute: attr, From: in.From, To: in.To})
	}
	return changes, nil
}

func changeEvents(playerID, performedBy string, changes progression.ChangeSet, at time.Time) []events.UpdateEvent {
	out := make([]events.UpdateEvent, 0, len(changes.Skater)+len(changes.Goalie))
	for _, change := range changes.Skater {
		out = append(out, events.UpdateEvent{
			PlayerID:       playerID,
			Field:          string(change.Attribute),
			OldValue:       strconv.Itoa(change.From),
			NewValue:       strconv.Itoa(change.To),
			PerformedBy:    performedBy,
			ApprovalStatus: events.ApprovalNotRequired,
			CreatedAt:      at,
		})
	}
	for _, change := range changes.Goalie {
		out = append(out, events.UpdateEvent{
			PlayerID:       playerID,
			Field:          string(change.Attribute),
			OldValue:       strconv.Itoa(change.From),
			NewValue:       strconv.Itoa(change.To),
			PerformedBy:    performedBy,
			ApprovalStatus: events.ApprovalNotRequired,
			CreatedAt:      at,
		})
	}
	return out
}
