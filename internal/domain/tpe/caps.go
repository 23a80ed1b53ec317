package tpe

import (
	"math"

	"github.com/avenratt/league-portal/internal/domain/player"
)

const (
	// StartingTPE is granted to every new player by the Create entry.
	StartingTPE = 155

	// RookieCap and SophomoreCap limit how much lifetime TPE a
	// developmental-league player may apply to attributes.
	RookieCap    = 350
	SophomoreCap = 425

	// UnretirePenaltyRate is charged once per player, ever, against the
	// lifetime earned total at the moment of unretirement.
	UnretirePenaltyRate = 0.15

	// RegressionThreshold gates the regression flow: it is only for
	// correcting over-spend, so remaining TPE must already be at or
	// below this value.
	RegressionThreshold = 0
)

// Capped is the effective usable TPE for a player.
type Capped struct {
	TotalTPE int
	IsCapped bool
}

// Effective resolves the usable TPE per the league's cap rules.
//
// IsCapped reports that the player has spent exactly up to the ceiling;
// it is never set for top-league players and is not implied by lifetime
// earnings alone.
func Effective(p player.Player, totalTPE, appliedTPE, currentSeason int) Capped {
	if p.DraftSeason == nil || p.CurrentLeague == nil {
		return capAt(totalTPE, appliedTPE, RookieCap)
	}
	if p.InTopLeague() {
		return Capped{TotalTPE: totalTPE, IsCapped: false}
	}
	if currentSeason <= *p.DraftSeason {
		return capAt(totalTPE, appliedTPE, RookieCap)
	}
	return capAt(totalTPE, appliedTPE, SophomoreCap)
}

func capAt(totalTPE, appliedTPE, cap int) Capped {
	capped := Capped{TotalTPE: totalTPE, IsCapped: appliedTPE == cap}
	if totalTPE > cap {
		capped.TotalTPE = cap
	}
	return capped
}

// UnretirePenalty is the one-time negative ledger delta applied when a
// retired player returns, computed on lifetime earnings.
func UnretirePenalty(totalTPE int) int {
	return -int(math.Round(float64(totalTPE) * UnretirePenaltyRate))
}
