package progression

import (
	"errors"
	"testing"

	"github.com/avenratt/league-portal/internal/domain/attributes"
	"github.com/avenratt/league-portal/internal/domain/costscale"
	"github.com/avenratt/league-portal/internal/domain/player"
)

func TestRefundMatchesMarginalSpend(t *testing.T) {
	// Raising 5 to 7 and redistributing 7 back to 5 must cancel exactly.
	up := costscale.TotalCostAt(costscale.ScaleSkater, 7) - costscale.TotalCostAt(costscale.ScaleSkater, 5)
	refund, err := Refund(player.PositionCenter, ChangeSet{Skater: []SkaterChange{
		{Attribute: attributes.SkaterPassing, From: 7, To: 5},
	}})
	if err != nil {
		t.Fatalf("Refund: %v", err)
	}
	if refund != up {
		t.Fatalf("refund = %d, spend = %d; round trip must cancel", refund, up)
	}
}

func TestRefundSumsAcrossChanges(t *testing.T) {
	refund, err := Refund(player.PositionCenter, ChangeSet{Skater: []SkaterChange{
		{Attribute: attributes.SkaterPassing, From: 10, To: 8},
		{Attribute: attributes.SkaterSpeed, From: 6, To: 6}, // no-op contributes zero
	}})
	if err != nil {
		t.Fatalf("Refund: %v", err)
	}
	// 10->9 and 9->8 marginal steps.
	want := 6 + 4
	if refund != want {
		t.Fatalf("refund = %d, want %d", refund, want)
	}
}

func TestRefundGoalieUsesGoalieScale(t *testing.T) {
	refund, err := Refund(player.PositionGoalie, ChangeSet{Goalie: []GoalieChange{
		{Attribute: attributes.GoalieGlove, From: 11, To: 9},
	}})
	if err != nil {
		t.Fatalf("Refund: %v", err)
	}
	// Goalie marginals at 11 and 10 are 5 each.
	if refund != 10 {
		t.Fatalf("refund = %d, want 10", refund)
	}
}

func TestRefundFailsClosedOnUnmappedLevel(t *testing.T) {
	_, err := Refund(player.PositionCenter, ChangeSet{Skater: []SkaterChange{
		{Attribute: attributes.SkaterPassing, From: 7, To: 3},
	}})
	if !errors.Is(err, ErrUnmappedScaleLevel) {
		t.Fatalf("got %v, want ErrUnmappedScaleLevel", err)
	}
}

func TestRefundRejectsMismatchedShape(t *testing.T) {
	_, err := Refund(player.PositionGoalie, ChangeSet{Skater: []SkaterChange{
		{Attribute: attributes.SkaterPassing, From: 7, To: 5},
	}})
	if !errors.Is(err, ErrMismatchedChangeSet) {
		t.Fatalf("got %v, want ErrMismatchedChangeSet", err)
	}
}

func TestRedistributionRate(t *testing.T) {
	season := 12
	p := player.Player{}
	if got := RedistributionRate(p, 13); got != RedistributionStandardRate {
		t.Fatalf("undrafted rate = %d, want standard", got)
	}
	p.DraftSeason = &season
	if got := RedistributionRate(p, 12); got != RedistributionSophomoreRate {
		t.Fatalf("draft-season rate = %d, want sophomore", got)
	}
	if got := RedistributionRate(p, 13); got != RedistributionStandardRate {
		t.Fatalf("post-draft rate = %d, want standard", got)
	}
}
