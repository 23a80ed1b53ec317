package attributes

import (
	"fmt"

	"github.com/avenratt/league-portal/internal/domain/costscale"
	"github.com/avenratt/league-portal/internal/domain/player"
)

// Set is the attribute sheet owned 1:1 by a player. Exactly one of the
// two shapes is present, matching the player's position.
type Set struct {
	Skater *Skater
	Goalie *Goalie
}

func DefaultFor(position player.Position) Set {
	if position == player.PositionGoalie {
		g := DefaultGoalie()
		return Set{Goalie: &g}
	}
	s := DefaultSkater()
	return Set{Skater: &s}
}

// Validate checks the set shape against the position and that every
// non-disabled rating sits inside the purchasable scale domain.
func (s Set) Validate(position player.Position) error {
	if position == player.PositionGoalie {
		if s.Goalie == nil || s.Skater != nil {
			return fmt.Errorf("goalie requires exactly one goalie attribute sheet")
		}
		for _, attr := range GoalieAttributes {
			value, _ := s.Goalie.Value(attr)
			if err := validateRating(string(attr), value, attr.Disabled()); err != nil {
				return err
			}
		}
		return nil
	}

	if s.Skater == nil || s.Goalie != nil {
		return fmt.Errorf("skater requires exactly one skater attribute sheet")
	}
	for _, attr := range SkaterAttributes {
		value, _ := s.Skater.Value(attr)
		if err := validateRating(string(attr), value, attr.Disabled()); err != nil {
			return err
		}
	}
	return nil
}

func validateRating(name string, value int, disabled bool) error {
	if disabled {
		if value < 1 || value > costscale.Ceiling {
			return fmt.Errorf("attribute %s out of range: %d", name, value)
		}
		return nil
	}
	if value < costscale.Floor || value > costscale.Ceiling {
		return fmt.Errorf("attribute %s out of range: %d", name, value)
	}
	return nil
}

// ParseSkaterAttribute resolves a wire-level attribute name to its closed
// identifier. Unknown names are rejected, never coerced.
func ParseSkaterAttribute(name string) (SkaterAttribute, error) {
	for _, attr := range SkaterAttributes {
		if string(attr) == name {
			return attr, nil
		}
	}
	return "", fmt.Errorf("unknown skater attribute: %s", name)
}

func ParseGoalieAttribute(name string) (GoalieAttribute, error) {
	for _, attr := range GoalieAttributes {
		if string(attr) == name {
			return attr, nil
		}
	}
	return "", fmt.Errorf("unknown goalie attribute: %s", name)
}
