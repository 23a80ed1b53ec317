package usecase

import (
	"errors"
	"testing"

	"github.com/avenratt/league-portal/internal/domain/events"
	"github.com/avenratt/league-portal/internal/domain/user"
)

func TestAdvanceSeasonFlagsOverspentRookies(t *testing.T) {
	f := newFixture(t, 70)
	admin := user.Principal{UserID: "admin-1", Roles: []string{user.RoleAdmin}}

	// A rookie drafted this season, rostered in the developmental
	// league, granted up to the rookie ceiling and fully spent.
	owner := user.Principal{UserID: "user-1"}
	p := f.createActivePlayer(t, owner, "Capped Rookie", "C")
	if _, err := f.grants.Append(t.Context(), GrantBatchInput{
		Principal: admin,
		Grants:    []GrantInput{{PlayerID: p.ID, Delta: 195, Description: "Point task backlog"}},
	}); err != nil {
		t.Fatalf("grant: %v", err)
	}
	f.assignLeague(t, p.ID, 70)
	if _, err := f.progression.Update(t.Context(), AttributeBatchInput{
		Principal: owner,
		PlayerID:  p.ID,
		Changes: []AttributeChangeInput{
			{Attribute: "passing", From: 5, To: 20}, // 204
			{Attribute: "speed", From: 5, To: 17},   // 104
			{Attribute: "agility", From: 5, To: 13}, // 40
		},
	}); err != nil {
		t.Fatalf("Update: %v", err)
	}

	// Advancing the season raises nothing for a sophomore: 348 applied
	// sits under the 425 ceiling. Advancing does flag players whose cap
	// shrank; force that by shrinking lifetime earnings first.
	if _, err := f.progression.Retire(t.Context(), RetirementInput{Principal: owner, PlayerID: p.ID}); err != nil {
		t.Fatalf("Retire: %v", err)
	}
	if _, err := f.progression.Unretire(t.Context(), RetirementInput{Principal: owner, PlayerID: p.ID}); err != nil {
		t.Fatalf("Unretire: %v", err)
	}

	result, err := f.seasonSvc.Advance(t.Context(), AdvanceSeasonInput{Principal: admin})
	if err != nil {
		t.Fatalf("Advance: %v", err)
	}
	if result.Season.Number != 71 {
		t.Fatalf("season = %d, want 71", result.Season.Number)
	}
	if result.AuditedCount != 1 {
		t.Fatalf("audited = %d, want 1", result.AuditedCount)
	}
	if result.FlaggedCount != 1 {
		t.Fatalf("flagged = %d, want 1", result.FlaggedCount)
	}

	history, err := f.events.ListByPlayer(t.Context(), p.ID)
	if err != nil {
		t.Fatalf("ListByPlayer: %v", err)
	}
	flagged := false
	for _, event := range history {
		if event.Field == events.FieldRegressionFlag && event.ApprovalStatus == events.ApprovalPending {
			flagged = true
		}
	}
	if !flagged {
		t.Fatalf("no regression flag event recorded")
	}

	current, err := f.seasonSvc.Current(t.Context())
	if err != nil {
		t.Fatalf("Current: %v", err)
	}
	if current.Number != 71 {
		t.Fatalf("current season = %d, want 71", current.Number)
	}
}

func TestAdvanceSeasonRequiresAdmin(t *testing.T) {
	f := newFixture(t, 70)
	_, err := f.seasonSvc.Advance(t.Context(), AdvanceSeasonInput{
		Principal: user.Principal{UserID: "user-1"},
	})
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("got %v, want ErrForbidden", err)
	}
}

func TestAdvanceSeasonNoTargets(t *testing.T) {
	f := newFixture(t, 70)
	admin := user.Principal{UserID: "admin-1", Roles: []string{user.RoleAdmin}}

	result, err := f.seasonSvc.Advance(t.Context(), AdvanceSeasonInput{Principal: admin})
	if err != nil {
		t.Fatalf("Advance: %v", err)
	}
	if result.AuditedCount != 0 || result.FlaggedCount != 0 {
		t.Fatalf("empty league audited=%d flagged=%d", result.AuditedCount, result.FlaggedCount)
	}
}
