package usecase

import (
	"github.com/avenratt/league-portal/internal/domain/player"
	"github.com/avenratt/league-portal/internal/domain/tpe"
)

// TPESummary is the resolved point state of one player: lifetime
// earnings from the ledger, the cap-adjusted usable total, what the
// sheet currently consumes, and what is left to spend. Available can go
// negative after a cap tightens or an unretirement penalty lands; the
// regression flow exists to bring it back to zero.
type TPESummary struct {
	LifetimeEarned int  `json:"lifetimeEarned"`
	TotalTPE       int  `json:"totalTpe"`
	AppliedTPE     int  `json:"appliedTpe"`
	AvailableTPE   int  `json:"availableTpe"`
	IsCapped       bool `json:"isCapped"`
}

func summarizeTPE(p player.Player, lifetimeEarned, appliedTPE, currentSeason int) TPESummary {
	capped := tpe.Effective(p, lifetimeEarned, appliedTPE, currentSeason)
	return TPESummary{
		LifetimeEarned: lifetimeEarned,
		TotalTPE:       capped.TotalTPE,
		AppliedTPE:     appliedTPE,
		AvailableTPE:   capped.TotalTPE - appliedTPE,
		IsCapped:       capped.IsCapped,
	}
}
