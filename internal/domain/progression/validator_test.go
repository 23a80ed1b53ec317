package progression

import (
	"errors"
	"testing"

	"github.com/avenratt/league-portal/internal/domain/attributes"
	"github.com/avenratt/league-portal/internal/domain/costscale"
	"github.com/avenratt/league-portal/internal/domain/player"
)

func newSkater(position player.Position) (player.Player, attributes.Set) {
	p := player.Player{ID: "p1", UserID: "u1", Name: "Test Skater", Position: position, Status: player.StatusActive}
	return p, attributes.DefaultFor(position)
}

func TestDefaultSheetCostsNothing(t *testing.T) {
	_, set := newSkater(player.PositionCenter)
	cost, err := AppliedCost(player.PositionCenter, set)
	if err != nil {
		t.Fatalf("AppliedCost: %v", err)
	}
	if cost != 0 {
		t.Fatalf("fresh sheet applied cost = %d, want 0", cost)
	}

	g := attributes.DefaultFor(player.PositionGoalie)
	cost, err = AppliedCost(player.PositionGoalie, g)
	if err != nil {
		t.Fatalf("AppliedCost goalie: %v", err)
	}
	if cost != 0 {
		t.Fatalf("fresh goalie applied cost = %d, want 0", cost)
	}
}

func TestAppliedCostSkipsDisabledAndUsesStaminaCurve(t *testing.T) {
	_, set := newSkater(player.PositionCenter)
	set.Skater.Leadership = 20 // disabled, must stay free
	set.Skater.Stamina = 16
	set.Skater.Passing = 10

	cost, err := AppliedCost(player.PositionCenter, set)
	if err != nil {
		t.Fatalf("AppliedCost: %v", err)
	}
	want := costscale.StaminaCostAt(16) + costscale.TotalCostAt(costscale.ScaleSkater, 10)
	if cost != want {
		t.Fatalf("applied cost = %d, want %d", cost, want)
	}
}

func TestValidateSpendRejectsOverspend(t *testing.T) {
	_, set := newSkater(player.PositionCenter)
	set.Skater.Passing = 20 // 204 applied

	if err := ValidateSpend(204, player.PositionCenter, set); err != nil {
		t.Fatalf("exact fit rejected: %v", err)
	}
	err := ValidateSpend(203, player.PositionCenter, set)
	if !errors.Is(err, ErrExceedsAvailableTPE) {
		t.Fatalf("got %v, want ErrExceedsAvailableTPE", err)
	}
}

func TestValidateIncreaseStaleBaseFailsWholeBatch(t *testing.T) {
	p, set := newSkater(player.PositionCenter)
	changes := ChangeSet{Skater: []SkaterChange{
		{Attribute: attributes.SkaterPassing, From: 5, To: 7},
		{Attribute: attributes.SkaterSpeed, From: 6, To: 8}, // stored is 5
	}}
	err := ValidateIncrease(p, set, changes)
	if !errors.Is(err, ErrStaleValue) {
		t.Fatalf("got %v, want ErrStaleValue", err)
	}
}

func TestValidateIncreaseRequiresStrictIncrease(t *testing.T) {
	p, set := newSkater(player.PositionCenter)
	changes := ChangeSet{Skater: []SkaterChange{
		{Attribute: attributes.SkaterPassing, From: 5, To: 5},
	}}
	err := ValidateIncrease(p, set, changes)
	if !errors.Is(err, ErrWrongDirection) {
		t.Fatalf("got %v, want ErrWrongDirection", err)
	}
}

func TestValidateIncreaseLimitedAttributes(t *testing.T) {
	// Defensemen may not push shooting range past the restricted maximum.
	p, set := newSkater(player.PositionLeftDefense)
	err := ValidateIncrease(p, set, ChangeSet{Skater: []SkaterChange{
		{Attribute: attributes.SkaterShootingRange, From: 5, To: 13},
	}})
	if !errors.Is(err, ErrLimitedAttribute) {
		t.Fatalf("got %v, want ErrLimitedAttribute", err)
	}
	if err := ValidateIncrease(p, set, ChangeSet{Skater: []SkaterChange{
		{Attribute: attributes.SkaterShootingRange, From: 5, To: 12},
	}}); err != nil {
		t.Fatalf("at-limit raise rejected: %v", err)
	}

	// Same attribute is unrestricted for forwards, which are instead
	// restricted on shot blocking.
	f, fset := newSkater(player.PositionCenter)
	if err := ValidateIncrease(f, fset, ChangeSet{Skater: []SkaterChange{
		{Attribute: attributes.SkaterShootingRange, From: 5, To: 13},
	}}); err != nil {
		t.Fatalf("forward shooting range raise rejected: %v", err)
	}
	err = ValidateIncrease(f, fset, ChangeSet{Skater: []SkaterChange{
		{Attribute: attributes.SkaterShotBlocking, From: 5, To: 13},
	}})
	if !errors.Is(err, ErrLimitedAttribute) {
		t.Fatalf("got %v, want ErrLimitedAttribute", err)
	}
}

func TestValidateDecreaseRejectsAnyIncrease(t *testing.T) {
	p, set := newSkater(player.PositionCenter)
	set.Skater.Passing = 10
	err := ValidateDecrease(p, set, ChangeSet{Skater: []SkaterChange{
		{Attribute: attributes.SkaterPassing, From: 10, To: 8},
		{Attribute: attributes.SkaterSpeed, From: 5, To: 6},
	}})
	if !errors.Is(err, ErrWrongDirection) {
		t.Fatalf("got %v, want ErrWrongDirection", err)
	}
}

func TestValidateMismatchedShape(t *testing.T) {
	p, set := newSkater(player.PositionGoalie)
	err := ValidateIncrease(p, set, ChangeSet{Skater: []SkaterChange{
		{Attribute: attributes.SkaterPassing, From: 5, To: 6},
	}})
	if !errors.Is(err, ErrMismatchedChangeSet) {
		t.Fatalf("got %v, want ErrMismatchedChangeSet", err)
	}
}

func TestValidateEmptyChangeSet(t *testing.T) {
	p, set := newSkater(player.PositionCenter)
	if err := ValidateIncrease(p, set, ChangeSet{}); !errors.Is(err, ErrEmptyChangeSet) {
		t.Fatalf("got %v, want ErrEmptyChangeSet", err)
	}
	if err := ValidateDecrease(p, set, ChangeSet{}); !errors.Is(err, ErrEmptyChangeSet) {
		t.Fatalf("got %v, want ErrEmptyChangeSet", err)
	}
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	p, set := newSkater(player.PositionCenter)
	updated, err := Apply(p, set, ChangeSet{Skater: []SkaterChange{
		{Attribute: attributes.SkaterPassing, From: 5, To: 9},
	}})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if updated.Skater.Passing != 9 {
		t.Fatalf("updated passing = %d, want 9", updated.Skater.Passing)
	}
	if set.Skater.Passing != 5 {
		t.Fatalf("input sheet mutated: passing = %d", set.Skater.Passing)
	}
}

func TestApplyGoalie(t *testing.T) {
	p, set := newSkater(player.PositionGoalie)
	updated, err := Apply(p, set, ChangeSet{Goalie: []GoalieChange{
		{Attribute: attributes.GoalieGlove, From: 5, To: 8},
	}})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if updated.Goalie.Glove != 8 {
		t.Fatalf("updated glove = %d, want 8", updated.Goalie.Glove)
	}
	if set.Goalie.Glove != 5 {
		t.Fatalf("input sheet mutated: glove = %d", set.Goalie.Glove)
	}
}
