package progression

import (
	"fmt"

	"github.com/avenratt/league-portal/internal/domain/costscale"
	"github.com/avenratt/league-portal/internal/domain/player"
)

const (
	// MaxRedistribution is the lifetime ceiling of points a player may
	// ever convert back into spendable TPE.
	MaxRedistribution = 150

	// Redistribution is paid for in bank currency per refunded point.
	// The sophomore rate applies while the current season equals the
	// player's draft season.
	RedistributionStandardRate  = 25_000
	RedistributionSophomoreRate = 12_500
)

// RedistributionRate picks the currency cost per refunded point.
func RedistributionRate(p player.Player, currentSeason int) int {
	if p.DraftSeason != nil && *p.DraftSeason == currentSeason {
		return RedistributionSophomoreRate
	}
	return RedistributionStandardRate
}

// Refund computes the points returned by lowering attributes, stepping
// down one level at a time and summing each step's marginal cost. The
// marginal costs are not constant, so the difference of cumulative
// totals would be wrong for any drop spanning multiple price bands.
//
// Unlike spend validation, an unmapped level is an error here: a refund
// must never over-credit because of missing scale data.
func Refund(position player.Position, changes ChangeSet) (int, error) {
	if position == player.PositionGoalie {
		if len(changes.Skater) > 0 {
			return 0, ErrMismatchedChangeSet
		}
		total := 0
		for _, change := range changes.Goalie {
			refund, err := marginalRefund(costscale.ScaleGoalie, change.From, change.To)
			if err != nil {
				return 0, fmt.Errorf("%s: %w", change.Attribute, err)
			}
			total += refund
		}
		return total, nil
	}

	if len(changes.Goalie) > 0 {
		return 0, ErrMismatchedChangeSet
	}
	total := 0
	for _, change := range changes.Skater {
		refund, err := marginalRefund(costscale.ScaleSkater, change.From, change.To)
		if err != nil {
			return 0, fmt.Errorf("%s: %w", change.Attribute, err)
		}
		total += refund
	}
	return total, nil
}

func marginalRefund(scale costscale.Scale, from, to int) (int, error) {
	if to >= from {
		return 0, nil
	}
	total := 0
	for level := from; level > to; level-- {
		cost, ok := costscale.PointCostAt(scale, level)
		if !ok {
			return 0, fmt.Errorf("%w: level %d", ErrUnmappedScaleLevel, level)
		}
		total += cost
	}
	return total, nil
}
