package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/avenratt/league-portal/internal/domain/attributes"
	"github.com/avenratt/league-portal/internal/domain/player"
	"github.com/avenratt/league-portal/internal/domain/progression"
	"github.com/avenratt/league-portal/internal/domain/season"
	"github.com/avenratt/league-portal/internal/domain/tpe"
	"github.com/avenratt/league-portal/internal/domain/user"
	"github.com/avenratt/league-portal/internal/infrastructure/repository/memory"
)

type sequenceIDGenerator struct {
	prefix string
	next   int
}

func (g *sequenceIDGenerator) NewID() (string, error) {
	g.next++
	return fmt.Sprintf("%s-%03d", g.prefix, g.next), nil
}

type fixture struct {
	store       *memory.Store
	players     *memory.PlayerRepository
	attrs       *memory.AttributeRepository
	ledger      *memory.LedgerRepository
	events      *memory.EventRepository
	bank        *memory.BankRepository
	seasons     *memory.SeasonRepository
	progression *ProgressionService
	reads       *PlayerReadService
	grants      *GrantsService
	seasonSvc   *SeasonService
}

func newFixture(t *testing.T, seasonNumber int) *fixture {
	t.Helper()

	store := memory.NewStore()
	f := &fixture{
		store:   store,
		players: memory.NewPlayerRepository(store),
		attrs:   memory.NewAttributeRepository(store),
		ledger:  memory.NewLedgerRepository(store),
		events:  memory.NewEventRepository(store),
		bank:    memory.NewBankRepository(store),
		seasons: memory.NewSeasonRepository(store),
	}

	if err := f.seasons.Create(context.Background(), season.Season{
		Number:    seasonNumber,
		StartedAt: time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC),
	}); err != nil {
		t.Fatalf("seed season: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ids := &sequenceIDGenerator{prefix: "id"}
	f.progression = NewProgressionService(f.players, f.attrs, f.ledger, f.events, f.bank, f.seasons, store, ids, logger)
	f.reads = NewPlayerReadService(f.players, f.attrs, f.ledger, f.events, f.bank, f.seasons, logger)
	f.grants = NewGrantsService(f.players, store, ids, logger)
	f.seasonSvc = NewSeasonService(f.seasons, f.players, f.attrs, f.ledger, store, logger)
	return f
}

func (f *fixture) createActivePlayer(t *testing.T, owner user.Principal, name, position string) player.Player {
	t.Helper()

	created, err := f.progression.Create(t.Context(), CreatePlayerInput{
		Principal: owner,
		Name:      name,
		Position:  position,
	})
	if err != nil {
		t.Fatalf("create player: %v", err)
	}
	admin := user.Principal{UserID: "admin-1", Roles: []string{user.RoleAdmin}}
	approved, err := f.progression.Decide(t.Context(), ApprovalInput{
		Principal: admin,
		PlayerID:  created.ID,
		Approve:   true,
	})
	if err != nil {
		t.Fatalf("approve player: %v", err)
	}
	return approved
}

func (f *fixture) assignLeague(t *testing.T, playerID string, draftSeason int) {
	t.Helper()
	if err := f.store.AssignRoster(playerID, player.LeagueSMJHL, draftSeason); err != nil {
		t.Fatalf("assign roster: %v", err)
	}
}

func TestCreateGrantsStartingTPEAndSeedsBank(t *testing.T) {
	f := newFixture(t, 70)
	owner := user.Principal{UserID: "user-1"}

	created, err := f.progression.Create(t.Context(), CreatePlayerInput{
		Principal: owner,
		Name:      "Miro Lehtinen",
		Position:  "C",
	})
	if err != nil {
		t.Fatalf("create player: %v", err)
	}
	if created.Status != player.StatusPending {
		t.Fatalf("status = %s, want pending", created.Status)
	}

	lifetime, err := f.ledger.TotalEarned(t.Context(), created.ID)
	if err != nil {
		t.Fatalf("TotalEarned: %v", err)
	}
	if lifetime != tpe.StartingTPE {
		t.Fatalf("lifetime = %d, want %d", lifetime, tpe.StartingTPE)
	}

	balance, err := f.bank.Balance(t.Context(), owner.UserID)
	if err != nil {
		t.Fatalf("Balance: %v", err)
	}
	if balance != 3_000_000 {
		t.Fatalf("balance = %d, want 3000000", balance)
	}

	// A default sheet costs nothing, so the whole grant is available.
	summary, err := f.reads.TPE(t.Context(), created.ID)
	if err != nil {
		t.Fatalf("TPE: %v", err)
	}
	if summary.AppliedTPE != 0 {
		t.Fatalf("applied = %d, want 0", summary.AppliedTPE)
	}
	if summary.AvailableTPE != tpe.StartingTPE {
		t.Fatalf("available = %d, want %d", summary.AvailableTPE, tpe.StartingTPE)
	}
}

func TestCreateRejectsSecondLivePlayer(t *testing.T) {
	f := newFixture(t, 70)
	owner := user.Principal{UserID: "user-1"}

	if _, err := f.progression.Create(t.Context(), CreatePlayerInput{
		Principal: owner, Name: "First Build", Position: "LW",
	}); err != nil {
		t.Fatalf("first create: %v", err)
	}
	_, err := f.progression.Create(t.Context(), CreatePlayerInput{
		Principal: owner, Name: "Second Build", Position: "G",
	})
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("got %v, want ErrConflict", err)
	}

	// A second account is unaffected, and only the first of their
	// players seeds a bank account.
	other := user.Principal{UserID: "user-2"}
	if _, err := f.progression.Create(t.Context(), CreatePlayerInput{
		Principal: other, Name: "Other Build", Position: "RD",
	}); err != nil {
		t.Fatalf("other user create: %v", err)
	}
}

func TestUpdateSpendsExactMarginalCost(t *testing.T) {
	f := newFixture(t, 70)
	owner := user.Principal{UserID: "user-1"}
	p := f.createActivePlayer(t, owner, "Miro Lehtinen", "C")

	before, err := f.reads.TPE(t.Context(), p.ID)
	if err != nil {
		t.Fatalf("TPE before: %v", err)
	}

	// One level of screening from the floor costs 2 points.
	updated, err := f.progression.Update(t.Context(), AttributeBatchInput{
		Principal: owner,
		PlayerID:  p.ID,
		Changes:   []AttributeChangeInput{{Attribute: "screening", From: 5, To: 6}},
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Skater.Screening != 6 {
		t.Fatalf("screening = %d, want 6", updated.Skater.Screening)
	}

	after, err := f.reads.TPE(t.Context(), p.ID)
	if err != nil {
		t.Fatalf("TPE after: %v", err)
	}
	if after.AvailableTPE != before.AvailableTPE-2 {
		t.Fatalf("available = %d, want %d", after.AvailableTPE, before.AvailableTPE-2)
	}

	// Each change leaves one audit event behind.
	history, err := f.reads.Events(t.Context(), p.ID)
	if err != nil {
		t.Fatalf("Events: %v", err)
	}
	found := false
	for _, event := range history {
		if event.Field == "screening" && event.OldValue == "5" && event.NewValue == "6" {
			found = true
		}
	}
	if !found {
		t.Fatalf("no screening update event recorded")
	}
}

func TestUpdateRejectsOverspendWithoutWrites(t *testing.T) {
	f := newFixture(t, 70)
	owner := user.Principal{UserID: "user-1"}
	p := f.createActivePlayer(t, owner, "Miro Lehtinen", "C")

	// 155 starting TPE cannot buy two maxed attributes (204 each).
	_, err := f.progression.Update(t.Context(), AttributeBatchInput{
		Principal: owner,
		PlayerID:  p.ID,
		Changes: []AttributeChangeInput{
			{Attribute: "passing", From: 5, To: 20},
			{Attribute: "speed", From: 5, To: 20},
		},
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("got %v, want ErrInvalidInput", err)
	}

	set, found, err := f.attrs.GetByPlayer(t.Context(), p.ID, p.Position)
	if err != nil || !found {
		t.Fatalf("GetByPlayer: found=%v err=%v", found, err)
	}
	if set.Skater.Passing != 5 || set.Skater.Speed != 5 {
		t.Fatalf("rejected batch mutated sheet: passing=%d speed=%d", set.Skater.Passing, set.Skater.Speed)
	}
}

func TestUpdateForbiddenForNonOwner(t *testing.T) {
	f := newFixture(t, 70)
	owner := user.Principal{UserID: "user-1"}
	p := f.createActivePlayer(t, owner, "Miro Lehtinen", "C")

	_, err := f.progression.Update(t.Context(), AttributeBatchInput{
		Principal: user.Principal{UserID: "user-2"},
		PlayerID:  p.ID,
		Changes:   []AttributeChangeInput{{Attribute: "screening", From: 5, To: 6}},
	})
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("got %v, want ErrForbidden", err)
	}
}

func TestRetireThenUnretireOnce(t *testing.T) {
	f := newFixture(t, 70)
	owner := user.Principal{UserID: "user-1"}
	p := f.createActivePlayer(t, owner, "Miro Lehtinen", "C")

	// Raise lifetime earnings so the penalty is visible.
	admin := user.Principal{UserID: "admin-1", Roles: []string{user.RoleAdmin}}
	if _, err := f.grants.Append(t.Context(), GrantBatchInput{
		Principal: admin,
		Grants:    []GrantInput{{PlayerID: p.ID, Delta: 345, Description: "Point task backlog"}},
	}); err != nil {
		t.Fatalf("grant: %v", err)
	}

	retired, err := f.progression.Retire(t.Context(), RetirementInput{Principal: owner, PlayerID: p.ID})
	if err != nil {
		t.Fatalf("Retire: %v", err)
	}
	if retired.Status != player.StatusRetired || retired.RetiredAt == nil {
		t.Fatalf("retire result: status=%s retiredAt=%v", retired.Status, retired.RetiredAt)
	}

	// Lifetime is 155 + 345 = 500; the one-time penalty is -75.
	back, err := f.progression.Unretire(t.Context(), RetirementInput{Principal: owner, PlayerID: p.ID})
	if err != nil {
		t.Fatalf("Unretire: %v", err)
	}
	if back.Status != player.StatusActive || back.RetiredAt != nil {
		t.Fatalf("unretire result: status=%s retiredAt=%v", back.Status, back.RetiredAt)
	}

	entries, err := f.ledger.ListByPlayer(t.Context(), p.ID)
	if err != nil {
		t.Fatalf("ListByPlayer: %v", err)
	}
	negatives := 0
	for _, entry := range entries {
		if entry.Category == tpe.CategoryUnretire {
			negatives++
			if entry.Delta != -75 {
				t.Fatalf("penalty delta = %d, want -75", entry.Delta)
			}
		}
	}
	if negatives != 1 {
		t.Fatalf("unretire entries = %d, want 1", negatives)
	}

	// Second round trip is rejected and the ledger stays untouched.
	if _, err := f.progression.Retire(t.Context(), RetirementInput{Principal: owner, PlayerID: p.ID}); err != nil {
		t.Fatalf("second retire: %v", err)
	}
	_, err = f.progression.Unretire(t.Context(), RetirementInput{Principal: owner, PlayerID: p.ID})
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("got %v, want ErrConflict", err)
	}
	after, err := f.ledger.ListByPlayer(t.Context(), p.ID)
	if err != nil {
		t.Fatalf("ListByPlayer after: %v", err)
	}
	if len(after) != len(entries) {
		t.Fatalf("ledger grew on rejected unretire: %d -> %d", len(entries), len(after))
	}
}

func TestRedistributionCeilingRejectedBeforeWrites(t *testing.T) {
	f := newFixture(t, 70)
	owner := user.Principal{UserID: "user-1"}
	p := f.createActivePlayer(t, owner, "Miro Lehtinen", "C")

	// Spend up high enough that undoing it would clear the lifetime
	// redistribution ceiling in one request.
	admin := user.Principal{UserID: "admin-1", Roles: []string{user.RoleAdmin}}
	if _, err := f.grants.Append(t.Context(), GrantBatchInput{
		Principal: admin,
		Grants:    []GrantInput{{PlayerID: p.ID, Delta: 300, Description: "Point task backlog"}},
	}); err != nil {
		t.Fatalf("grant: %v", err)
	}
	if _, err := f.progression.Update(t.Context(), AttributeBatchInput{
		Principal: owner,
		PlayerID:  p.ID,
		Changes: []AttributeChangeInput{
			{Attribute: "passing", From: 5, To: 20},     // 204 applied
			{Attribute: "speed", From: 5, To: 15},       // 64 applied
		},
	}); err != nil {
		t.Fatalf("Update: %v", err)
	}

	_, err := f.progression.Redistribute(t.Context(), AttributeBatchInput{
		Principal: owner,
		PlayerID:  p.ID,
		Changes: []AttributeChangeInput{
			{Attribute: "passing", From: 20, To: 5},
		},
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("got %v, want ErrInvalidInput", err)
	}

	set, found, err := f.attrs.GetByPlayer(t.Context(), p.ID, p.Position)
	if err != nil || !found {
		t.Fatalf("GetByPlayer: found=%v err=%v", found, err)
	}
	if set.Skater.Passing != 20 {
		t.Fatalf("rejected redistribution mutated sheet: passing=%d", set.Skater.Passing)
	}
	after, _, err := f.players.GetByID(t.Context(), p.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if after.UsedRedistribution != 0 {
		t.Fatalf("usedRedistribution = %d, want 0", after.UsedRedistribution)
	}
}

func TestRedistributionRefundsAndDebitsBank(t *testing.T) {
	f := newFixture(t, 70)
	owner := user.Principal{UserID: "user-1"}
	p := f.createActivePlayer(t, owner, "Miro Lehtinen", "C")

	if _, err := f.progression.Update(t.Context(), AttributeBatchInput{
		Principal: owner,
		PlayerID:  p.ID,
		Changes:   []AttributeChangeInput{{Attribute: "passing", From: 5, To: 7}}, // 4 applied
	}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	before, err := f.reads.TPE(t.Context(), p.ID)
	if err != nil {
		t.Fatalf("TPE before: %v", err)
	}

	updated, err := f.progression.Redistribute(t.Context(), AttributeBatchInput{
		Principal: owner,
		PlayerID:  p.ID,
		Changes:   []AttributeChangeInput{{Attribute: "passing", From: 7, To: 5}},
	})
	if err != nil {
		t.Fatalf("Redistribute: %v", err)
	}
	if updated.Skater.Passing != 5 {
		t.Fatalf("passing = %d, want 5", updated.Skater.Passing)
	}

	after, err := f.reads.TPE(t.Context(), p.ID)
	if err != nil {
		t.Fatalf("TPE after: %v", err)
	}
	if after.AvailableTPE != before.AvailableTPE+4 {
		t.Fatalf("available = %d, want %d", after.AvailableTPE, before.AvailableTPE+4)
	}

	// Undrafted players pay the standard rate per refunded point.
	balance, err := f.bank.Balance(t.Context(), owner.UserID)
	if err != nil {
		t.Fatalf("Balance: %v", err)
	}
	wantBalance := int64(3_000_000) - 4*int64(progression.RedistributionStandardRate)
	if balance != wantBalance {
		t.Fatalf("balance = %d, want %d", balance, wantBalance)
	}

	playerAfter, _, err := f.players.GetByID(t.Context(), p.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if playerAfter.UsedRedistribution != 4 {
		t.Fatalf("usedRedistribution = %d, want 4", playerAfter.UsedRedistribution)
	}
}

func TestRegressionRequiresRoleAndOverspend(t *testing.T) {
	f := newFixture(t, 70)
	owner := user.Principal{UserID: "user-1"}
	p := f.createActivePlayer(t, owner, "Miro Lehtinen", "C")

	regressor := user.Principal{UserID: "user-9", Roles: []string{user.RoleRegression}}
	changes := []AttributeChangeInput{{Attribute: "passing", From: 5, To: 5}}

	_, err := f.progression.Regression(t.Context(), AttributeBatchInput{
		Principal: owner, PlayerID: p.ID, Changes: changes,
	})
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("got %v, want ErrForbidden", err)
	}

	// The player still has TPE available, so there is nothing to regress.
	_, err = f.progression.Regression(t.Context(), AttributeBatchInput{
		Principal: regressor, PlayerID: p.ID, Changes: changes,
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("got %v, want ErrInvalidInput", err)
	}
}

func TestRegressionClearsUnretirePenaltyOverspend(t *testing.T) {
	f := newFixture(t, 70)
	owner := user.Principal{UserID: "user-1"}
	p := f.createActivePlayer(t, owner, "Miro Lehtinen", "C")

	// Spend the full grant, then shrink lifetime earnings with an
	// unretire penalty so the sheet is over budget.
	if _, err := f.progression.Update(t.Context(), AttributeBatchInput{
		Principal: owner,
		PlayerID:  p.ID,
		Changes: []AttributeChangeInput{
			{Attribute: "passing", From: 5, To: 15},  // 64
			{Attribute: "speed", From: 5, To: 15},    // 64
			{Attribute: "checking", From: 5, To: 10}, // 18
		},
	}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if _, err := f.progression.Retire(t.Context(), RetirementInput{Principal: owner, PlayerID: p.ID}); err != nil {
		t.Fatalf("Retire: %v", err)
	}
	if _, err := f.progression.Unretire(t.Context(), RetirementInput{Principal: owner, PlayerID: p.ID}); err != nil {
		t.Fatalf("Unretire: %v", err)
	}

	summary, err := f.reads.TPE(t.Context(), p.ID)
	if err != nil {
		t.Fatalf("TPE: %v", err)
	}
	if summary.AvailableTPE >= 0 {
		t.Fatalf("available = %d, want negative after penalty", summary.AvailableTPE)
	}

	regressor := user.Principal{UserID: "user-9", Roles: []string{user.RoleRegression}}
	updated, err := f.progression.Regression(t.Context(), AttributeBatchInput{
		Principal: regressor,
		PlayerID:  p.ID,
		Changes:   []AttributeChangeInput{{Attribute: "passing", From: 15, To: 10}},
	})
	if err != nil {
		t.Fatalf("Regression: %v", err)
	}
	if updated.Skater.Passing != 10 {
		t.Fatalf("passing = %d, want 10", updated.Skater.Passing)
	}
}

func TestDecideDeniedPlayer(t *testing.T) {
	f := newFixture(t, 70)
	owner := user.Principal{UserID: "user-1"}

	created, err := f.progression.Create(t.Context(), CreatePlayerInput{
		Principal: owner, Name: "Denied Build", Position: "G",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	admin := user.Principal{UserID: "admin-1", Roles: []string{user.RoleAdmin}}
	denied, err := f.progression.Decide(t.Context(), ApprovalInput{
		Principal: admin, PlayerID: created.ID, Approve: false,
	})
	if err != nil {
		t.Fatalf("Decide: %v", err)
	}
	if denied.Status != player.StatusDenied {
		t.Fatalf("status = %s, want denied", denied.Status)
	}

	// Non-admins cannot decide.
	second, err := f.progression.Create(t.Context(), CreatePlayerInput{
		Principal: user.Principal{UserID: "user-2"}, Name: "Another Build", Position: "C",
	})
	if err != nil {
		t.Fatalf("create second: %v", err)
	}
	_, err = f.progression.Decide(t.Context(), ApprovalInput{
		Principal: owner, PlayerID: second.ID, Approve: true,
	})
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("got %v, want ErrForbidden", err)
	}
}

func TestCreateWithCustomSheetValidatedAgainstStartingTPE(t *testing.T) {
	f := newFixture(t, 70)
	owner := user.Principal{UserID: "user-1"}

	sheet := attributes.DefaultSkater()
	sheet.Passing = 20 // 204 > 155
	set := attributes.Set{Skater: &sheet}
	_, err := f.progression.Create(t.Context(), CreatePlayerInput{
		Principal:  owner,
		Name:       "Hot Start",
		Position:   "C",
		Attributes: &set,
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("got %v, want ErrInvalidInput", err)
	}

	affordable := attributes.DefaultSkater()
	affordable.Passing = 15 // 64 applied
	okSet := attributes.Set{Skater: &affordable}
	created, err := f.progression.Create(t.Context(), CreatePlayerInput{
		Principal:  owner,
		Name:       "Hot Start",
		Position:   "C",
		Attributes: &okSet,
	})
	if err != nil {
		t.Fatalf("create with affordable sheet: %v", err)
	}
	set2, found, err := f.attrs.GetByPlayer(t.Context(), created.ID, created.Position)
	if err != nil || !found {
		t.Fatalf("GetByPlayer: found=%v err=%v", found, err)
	}
	if set2.Skater.Passing != 15 {
		t.Fatalf("stored passing = %d, want 15", set2.Skater.Passing)
	}
}
