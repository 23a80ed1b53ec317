package attributes

import (
	"fmt"

	"github.com/avenratt/league-portal/internal/domain/costscale"
	"github.com/avenratt/league-portal/internal/domain/player"
)

// SkaterAttribute is a closed identifier for one skater rating. Attribute
// updates travel as identifiers instead of free-form field names so that
// the mapping to struct fields and scale lookups stays exhaustive.
type SkaterAttribute string

const (
	SkaterScreening        SkaterAttribute = "screening"
	SkaterGettingOpen      SkaterAttribute = "gettingOpen"
	SkaterPassing          SkaterAttribute = "passing"
	SkaterPuckhandling     SkaterAttribute = "puckhandling"
	SkaterShootingAccuracy SkaterAttribute = "shootingAccuracy"
	SkaterShootingRange    SkaterAttribute = "shootingRange"
	SkaterOffensiveRead    SkaterAttribute = "offensiveRead"
	SkaterChecking         SkaterAttribute = "checking"
	SkaterHitting          SkaterAttribute = "hitting"
	SkaterPositioning      SkaterAttribute = "positioning"
	SkaterStickchecking    SkaterAttribute = "stickchecking"
	SkaterShotBlocking     SkaterAttribute = "shotBlocking"
	SkaterFaceoffs         SkaterAttribute = "faceoffs"
	SkaterDefensiveRead    SkaterAttribute = "defensiveRead"
	SkaterAcceleration     SkaterAttribute = "acceleration"
	SkaterAgility          SkaterAttribute = "agility"
	SkaterBalance          SkaterAttribute = "balance"
	SkaterSpeed            SkaterAttribute = "speed"
	SkaterStamina          SkaterAttribute = "stamina"
	SkaterStrength         SkaterAttribute = "strength"
	SkaterDetermination    SkaterAttribute = "determination"
	SkaterTeamPlayer       SkaterAttribute = "teamPlayer"
	SkaterLeadership       SkaterAttribute = "leadership"
	SkaterProfessionalism  SkaterAttribute = "professionalism"
)

// SkaterAttributes is the canonical iteration order.
var SkaterAttributes = []SkaterAttribute{
	SkaterScreening,
	SkaterGettingOpen,
	SkaterPassing,
	SkaterPuckhandling,
	SkaterShootingAccuracy,
	SkaterShootingRange,
	SkaterOffensiveRead,
	SkaterChecking,
	SkaterHitting,
	SkaterPositioning,
	SkaterStickchecking,
	SkaterShotBlocking,
	SkaterFaceoffs,
	SkaterDefensiveRead,
	SkaterAcceleration,
	SkaterAgility,
	SkaterBalance,
	SkaterSpeed,
	SkaterStamina,
	SkaterStrength,
	SkaterDetermination,
	SkaterTeamPlayer,
	SkaterLeadership,
	SkaterProfessionalism,
}

// skaterDisabled ratings are team-chemistry style attributes that never
// cost points and are excluded from every cost computation.
var skaterDisabled = map[SkaterAttribute]struct{}{
	SkaterDetermination:   {},
	SkaterTeamPlayer:      {},
	SkaterLeadership:      {},
	SkaterProfessionalism: {},
}

func (a SkaterAttribute) Disabled() bool {
	_, ok := skaterDisabled[a]
	return ok
}

const (
	disabledDefault       = 15
	skaterStaminaDefault  = 14
	limitedAttributeLimit = 12
)

// SkaterLimitedMax returns the position-restricted ceiling for attributes
// that may not be raised freely by every position group.
func SkaterLimitedMax(group player.Group, attr SkaterAttribute) (int, bool) {
	switch {
	case group == player.GroupDefense && attr == SkaterShootingRange:
		return limitedAttributeLimit, true
	case group == player.GroupForward && attr == SkaterShotBlocking:
		return limitedAttributeLimit, true
	default:
		return 0, false
	}
}

// Skater holds the full rating sheet for a non-goalie player.
type Skater struct {
	Screening        int
	GettingOpen      int
	Passing          int
	Puckhandling     int
	ShootingAccuracy int
	ShootingRange    int
	OffensiveRead    int
	Checking         int
	Hitting          int
	Positioning      int
	Stickchecking    int
	ShotBlocking     int
	Faceoffs         int
	DefensiveRead    int
	Acceleration     int
	Agility          int
	Balance          int
	Speed            int
	Stamina          int
	Strength         int
	Determination    int
	TeamPlayer       int
	Leadership       int
	Professionalism  int
}

// DefaultSkater is the attribute sheet a new skater is created with:
// everything at the floor, stamina on its own baseline, chemistry
// ratings at the conventional default.
func DefaultSkater() Skater {
	s := Skater{}
	for _, attr := range SkaterAttributes {
		switch {
		case attr == SkaterStamina:
			s.set(attr, skaterStaminaDefault)
		case attr.Disabled():
			s.set(attr, disabledDefault)
		default:
			s.set(attr, costscale.Floor)
		}
	}
	return s
}

func (s Skater) Value(attr SkaterAttribute) (int, bool) {
	switch attr {
	case SkaterScreening:
		return s.Screening, true
	case SkaterGettingOpen:
		return s.GettingOpen, true
	case SkaterPassing:
		return s.Passing, true
	case SkaterPuckhandling:
		return s.Puckhandling, true
	case SkaterShootingAccuracy:
		return s.ShootingAccuracy, true
	case SkaterShootingRange:
		return s.ShootingRange, true
	case SkaterOffensiveRead:
		return s.OffensiveRead, true
	case SkaterChecking:
		return s.Checking, true
	case SkaterHitting:
		return s.Hitting, true
	case SkaterPositioning:
		return s.Positioning, true
	case SkaterStickchecking:
		return s.Stickchecking, true
	case SkaterShotBlocking:
		return s.ShotBlocking, true
	case SkaterFaceoffs:
		return s.Faceoffs, true
	case SkaterDefensiveRead:
		return s.DefensiveRead, true
	case SkaterAcceleration:
		return s.Acceleration, true
	case SkaterAgility:
		return s.Agility, true
	case SkaterBalance:
		return s.Balance, true
	case SkaterSpeed:
		return s.Speed, true
	case SkaterStamina:
		return s.Stamina, true
	case SkaterStrength:
		return s.Strength, true
	case SkaterDetermination:
		return s.Determination, true
	case SkaterTeamPlayer:
		return s.TeamPlayer, true
	case SkaterLeadership:
		return s.Leadership, true
	case SkaterProfessionalism:
		return s.Professionalism, true
	default:
		return 0, false
	}
}

func (s *Skater) Set(attr SkaterAttribute, value int) error {
	if !s.set(attr, value) {
		return fmt.Errorf("unknown skater attribute: %s", attr)
	}
	return nil
}

func (s *Skater) set(attr SkaterAttribute, value int) bool {
	switch attr {
	case SkaterScreening:
		s.Screening = value
	case SkaterGettingOpen:
		s.GettingOpen = value
	case SkaterPassing:
		s.Passing = value
	case SkaterPuckhandling:
		s.Puckhandling = value
	case SkaterShootingAccuracy:
		s.ShootingAccuracy = value
	case SkaterShootingRange:
		s.ShootingRange = value
	case SkaterOffensiveRead:
		s.OffensiveRead = value
	case SkaterChecking:
		s.Checking = value
	case SkaterHitting:
		s.Hitting = value
	case SkaterPositioning:
		s.Positioning = value
	case SkaterStickchecking:
		s.Stickchecking = value
	case SkaterShotBlocking:
		s.ShotBlocking = value
	case SkaterFaceoffs:
		s.Faceoffs = value
	case SkaterDefensiveRead:
		s.DefensiveRead = value
	case SkaterAcceleration:
		s.Acceleration = value
	case SkaterAgility:
		s.Agility = value
	case SkaterBalance:
		s.Balance = value
	case SkaterSpeed:
		s.Speed = value
	case SkaterStamina:
		s.Stamina = value
	case SkaterStrength:
		s.Strength = value
	case SkaterDetermination:
		s.Determination = value
	case SkaterTeamPlayer:
		s.TeamPlayer = value
	case SkaterLeadership:
		s.Leadership = value
	case SkaterProfessionalism:
		s.Professionalism = value
	default:
		return false
	}
	return true
}
