package attributes

import (
	"fmt"

	"github.com/avenratt/league-portal/internal/domain/costscale"
)

// GoalieAttribute is the closed identifier set for goalie ratings.
type GoalieAttribute string

const (
	GoalieBlocker         GoalieAttribute = "blocker"
	GoalieGlove           GoalieAttribute = "glove"
	GoaliePassing         GoalieAttribute = "passing"
	GoaliePokeCheck       GoalieAttribute = "pokeCheck"
	GoaliePositioning     GoalieAttribute = "positioning"
	GoalieRebound         GoalieAttribute = "rebound"
	GoalieRecovery        GoalieAttribute = "recovery"
	GoaliePuckhandling    GoalieAttribute = "puckhandling"
	GoalieLowShots        GoalieAttribute = "lowShots"
	GoalieReflexes        GoalieAttribute = "reflexes"
	GoalieSkating         GoalieAttribute = "skating"
	GoalieMentalToughness GoalieAttribute = "mentalToughness"
	GoalieAggression      GoalieAttribute = "aggression"
	GoalieDetermination   GoalieAttribute = "determination"
	GoalieTeamPlayer      GoalieAttribute = "teamPlayer"
	GoalieLeadership      GoalieAttribute = "leadership"
	GoalieProfessionalism GoalieAttribute = "professionalism"
)

var GoalieAttributes = []GoalieAttribute{
	GoalieBlocker,
	GoalieGlove,
	GoaliePassing,
	GoaliePokeCheck,
	GoaliePositioning,
	GoalieRebound,
	GoalieRecovery,
	GoaliePuckhandling,
	GoalieLowShots,
	GoalieReflexes,
	GoalieSkating,
	GoalieMentalToughness,
	GoalieAggression,
	GoalieDetermination,
	GoalieTeamPlayer,
	GoalieLeadership,
	GoalieProfessionalism,
}

var goalieDisabled = map[GoalieAttribute]struct{}{
	GoalieAggression:      {},
	GoalieDetermination:   {},
	GoalieTeamPlayer:      {},
	GoalieLeadership:      {},
	GoalieProfessionalism: {},
}

func (a GoalieAttribute) Disabled() bool {
	_, ok := goalieDisabled[a]
	return ok
}

// Goalie holds the full rating sheet for a goaltender.
type Goalie struct {
	Blocker         int
	Glove           int
	Passing         int
	PokeCheck       int
	Positioning     int
	Rebound         int
	Recovery        int
	Puckhandling    int
	LowShots        int
	Reflexes        int
	Skating         int
	MentalToughness int
	Aggression      int
	Determination   int
	TeamPlayer      int
	Leadership      int
	Professionalism int
}

func DefaultGoalie() Goalie {
	g := Goalie{}
	for _, attr := range GoalieAttributes {
		if attr.Disabled() {
			g.set(attr, disabledDefault)
			continue
		}
		g.set(attr, costscale.Floor)
	}
	return g
}

func (g Goalie) Value(attr GoalieAttribute) (int, bool) {
	switch attr {
	case GoalieBlocker:
		return g.Blocker, true
	case GoalieGlove:
		return g.Glove, true
	case GoaliePassing:
		return g.Passing, true
	case GoaliePokeCheck:
		return g.PokeCheck, true
	case GoaliePositioning:
		return g.Positioning, true
	case GoalieRebound:
		return g.Rebound, true
	case GoalieRecovery:
		return g.Recovery, true
	case GoaliePuckhandling:
		return g.Puckhandling, true
	case GoalieLowShots:
		return g.LowShots, true
	case GoalieReflexes:
		return g.Reflexes, true
	case GoalieSkating:
		return g.Skating, true
	case GoalieMentalToughness:
		return g.MentalToughness, true
	case GoalieAggression:
		return g.Aggression, true
	case GoalieDetermination:
		return g.Determination, true
	case GoalieTeamPlayer:
		return g.TeamPlayer, true
	case GoalieLeadership:
		return g.Leadership, true
	case GoalieProfessionalism:
		return g.Professionalism, true
	default:
		return 0, false
	}
}

func (g *Goalie) Set(attr GoalieAttribute, value int) error {
	if !g.set(attr, value) {
		return fmt.Errorf("unknown goalie attribute: %s", attr)
	}
	return nil
}

func (g *Goalie) set(attr GoalieAttribute, value int) bool {
	switch attr {
	case GoalieBlocker:
		g.Blocker = value
	case GoalieGlove:
		g.Glove = value
	case GoaliePassing:
		g.Passing = value
	case GoaliePokeCheck:
		g.PokeCheck = value
	case GoaliePositioning:
		g.Positioning = value
	case GoalieRebound:
		g.Rebound = value
	case GoalieRecovery:
		g.Recovery = value
	case GoaliePuckhandling:
		g.Puckhandling = value
	case GoalieLowShots:
		g.LowShots = value
	case GoalieReflexes:
		g.Reflexes = value
	case GoalieSkating:
		g.Skating = value
	case GoalieMentalToughness:
		g.MentalToughness = value
	case GoalieAggression:
		g.Aggression = value
	case GoalieDetermination:
		g.Determination = value
	case GoalieTeamPlayer:
		g.TeamPlayer = value
	case GoalieLeadership:
		g.Leadership = value
	case GoalieProfessionalism:
		g.Professionalism = value
	default:
		return false
	}
	return true
}
