package progression

import (
	"fmt"

	"github.com/avenratt/league-portal/internal/domain/attributes"
	"github.com/avenratt/league-portal/internal/domain/costscale"
	"github.com/avenratt/league-portal/internal/domain/player"
)

// AppliedCost sums the cumulative cost of every non-disabled rating on
// the sheet. A rating outside the scale domain contributes zero; spend
// validation fails open on unmapped levels by long-standing behavior.
func AppliedCost(position player.Position, set attributes.Set) (int, error) {
	if position == player.PositionGoalie {
		if set.Goalie == nil {
			return 0, fmt.Errorf("%w: goalie sheet is missing", ErrMismatchedChangeSet)
		}
		return GoalieAppliedCost(*set.Goalie), nil
	}
	if set.Skater == nil {
		return 0, fmt.Errorf("%w: skater sheet is missing", ErrMismatchedChangeSet)
	}
	return SkaterAppliedCost(*set.Skater), nil
}

func SkaterAppliedCost(s attributes.Skater) int {
	total := 0
	for _, attr := range attributes.SkaterAttributes {
		if attr.Disabled() {
			continue
		}
		value, _ := s.Value(attr)
		if attr == attributes.SkaterStamina {
			total += costscale.StaminaCostAt(value)
			continue
		}
		total += costscale.TotalCostAt(costscale.ScaleSkater, value)
	}
	return total
}

func GoalieAppliedCost(g attributes.Goalie) int {
	total := 0
	for _, attr := range attributes.GoalieAttributes {
		if attr.Disabled() {
			continue
		}
		value, _ := g.Value(attr)
		total += costscale.TotalCostAt(costscale.ScaleGoalie, value)
	}
	return total
}

// ValidateSpend accepts a full proposed sheet iff its applied cost fits
// inside the available (capped) TPE.
func ValidateSpend(availableTPE int, position player.Position, set attributes.Set) error {
	applied, err := AppliedCost(position, set)
	if err != nil {
		return err
	}
	if applied > availableTPE {
		return fmt.Errorf("%w: cost=%d available=%d", ErrExceedsAvailableTPE, applied, availableTPE)
	}
	return nil
}

// ValidateIncrease checks an upgrade batch: every change strictly up,
// every From matching storage, limited maxima honored. One violation
// invalidates the entire batch.
func ValidateIncrease(p player.Player, set attributes.Set, changes ChangeSet) error {
	if changes.Empty() {
		return ErrEmptyChangeSet
	}

	if p.Position == player.PositionGoalie {
		if len(changes.Skater) > 0 || set.Goalie == nil {
			return ErrMismatchedChangeSet
		}
		for _, change := range changes.Goalie {
			if err := checkGoalieBase(*set.Goalie, change); err != nil {
				return err
			}
			if change.To <= change.From {
				return fmt.Errorf("%w: %s must strictly increase", ErrWrongDirection, change.Attribute)
			}
		}
		return nil
	}

	if len(changes.Goalie) > 0 || set.Skater == nil {
		return ErrMismatchedChangeSet
	}
	group := p.Position.Group()
	for _, change := range changes.Skater {
		if err := checkSkaterBase(*set.Skater, change); err != nil {
			return err
		}
		if change.To <= change.From {
			return fmt.Errorf("%w: %s must strictly increase", ErrWrongDirection, change.Attribute)
		}
		if max, limited := attributes.SkaterLimitedMax(group, change.Attribute); limited && change.To > max {
			return fmt.Errorf("%w: %s max %d for %s", ErrLimitedAttribute, change.Attribute, max, group)
		}
	}
	return nil
}

// ValidateDecrease checks a regression/redistribution batch: every change
// must move down or stay put; any increase invalidates the whole batch.
func ValidateDecrease(p player.Player, set attributes.Set, changes ChangeSet) error {
	if changes.Empty() {
		return ErrEmptyChangeSet
	}

	if p.Position == player.PositionGoalie {
		if len(changes.Skater) > 0 || set.Goalie == nil {
			return ErrMismatchedChangeSet
		}
		for _, change := range changes.Goalie {
			if err := checkGoalieBase(*set.Goalie, change); err != nil {
				return err
			}
			if change.To > change.From {
				return fmt.Errorf("%w: %s cannot increase", ErrWrongDirection, change.Attribute)
			}
		}
		return nil
	}

	if len(changes.Goalie) > 0 || set.Skater == nil {
		return ErrMismatchedChangeSet
	}
	for _, change := range changes.Skater {
		if err := checkSkaterBase(*set.Skater, change); err != nil {
			return err
		}
		if change.To > change.From {
			return fmt.Errorf("%w: %s cannot increase", ErrWrongDirection, change.Attribute)
		}
	}
	return nil
}

func checkSkaterBase(s attributes.Skater, change SkaterChange) error {
	stored, ok := s.Value(change.Attribute)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownAttribute, change.Attribute)
	}
	if stored != change.From {
		return fmt.Errorf("%w: %s stored=%d submitted=%d", ErrStaleValue, change.Attribute, stored, change.From)
	}
	return nil
}

func checkGoalieBase(g attributes.Goalie, change GoalieChange) error {
	stored, ok := g.Value(change.Attribute)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownAttribute, change.Attribute)
	}
	if stored != change.From {
		return fmt.Errorf("%w: %s stored=%d submitted=%d", ErrStaleValue, change.Attribute, stored, change.From)
	}
	return nil
}

// Apply writes a validated change set onto a copy of the sheet and
// returns the updated set.
func Apply(p player.Player, set attributes.Set, changes ChangeSet) (attributes.Set, error) {
	if p.Position == player.PositionGoalie {
		if set.Goalie == nil {
			return attributes.Set{}, ErrMismatchedChangeSet
		}
		updated := *set.Goalie
		for _, change := range changes.Goalie {
			if err := updated.Set(change.Attribute, change.To); err != nil {
				return attributes.Set{}, fmt.Errorf("%w: %s", ErrUnknownAttribute, change.Attribute)
			}
		}
		return attributes.Set{Goalie: &updated}, nil
	}

	if set.Skater == nil {
		return attributes.Set{}, ErrMismatchedChangeSet
	}
	updated := *set.Skater
	for _, change := range changes.Skater {
		if err := updated.Set(change.Attribute, change.To); err != nil {
			return attributes.Set{}, fmt.Errorf("%w: %s", ErrUnknownAttribute, change.Attribute)
		}
	}
	return attributes.Set{Skater: &updated}, nil
}
