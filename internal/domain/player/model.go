package player

import (
	"fmt"
	"time"
)

// Position represents the hockey positions a player can be created at.
type Position string

const (
	PositionCenter       Position = "C"
	PositionLeftWing     Position = "LW"
	PositionRightWing    Position = "RW"
	PositionWinger       Position = "W"
	PositionLeftDefense  Position = "LD"
	PositionRightDefense Position = "RD"
	PositionGoalie       Position = "G"
)

var AllPositions = map[Position]struct{}{
	PositionCenter:       {},
	PositionLeftWing:     {},
	PositionRightWing:    {},
	PositionWinger:       {},
	PositionLeftDefense:  {},
	PositionRightDefense: {},
	PositionGoalie:       {},
}

// Group splits positions into the three progression groups. Forwards and
// defensemen share the skater attribute set but differ on limited maxima.
type Group string

const (
	GroupForward Group = "forward"
	GroupDefense Group = "defense"
	GroupGoalie  Group = "goalie"
)

func (p Position) Group() Group {
	switch p {
	case PositionLeftDefense, PositionRightDefense:
		return GroupDefense
	case PositionGoalie:
		return GroupGoalie
	default:
		return GroupForward
	}
}

func (p Position) IsSkater() bool {
	return p != PositionGoalie
}

// Status is the player lifecycle state.
type Status string

const (
	StatusPending Status = "pending"
	StatusActive  Status = "active"
	StatusRetired Status = "retired"
	StatusDenied  Status = "denied"
)

var AllStatuses = map[Status]struct{}{
	StatusPending: {},
	StatusActive:  {},
	StatusRetired: {},
	StatusDenied:  {},
}

// League identifies where a player is currently rostered.
type League string

const (
	LeagueSHL   League = "SHL"
	LeagueSMJHL League = "SMJHL"
)

// Player is one player character owned by a portal user.
type Player struct {
	ID                 string
	UserID             string
	Name               string
	Position           Position
	Status             Status
	DraftSeason        *int
	CurrentLeague      *League
	TeamID             string
	UsedRedistribution int
	PositionChanged    bool
	RetiredAt          *time.Time
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

func (p Player) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("player id is required")
	}
	if p.UserID == "" {
		return fmt.Errorf("player user id is required")
	}
	if p.Name == "" {
		return fmt.Errorf("player name is required")
	}
	if _, ok := AllPositions[p.Position]; !ok {
		return fmt.Errorf("invalid player position: %s", p.Position)
	}
	if _, ok := AllStatuses[p.Status]; !ok {
		return fmt.Errorf("invalid player status: %s", p.Status)
	}
	if p.UsedRedistribution < 0 {
		return fmt.Errorf("used redistribution cannot be negative")
	}

	return nil
}

// InTopLeague reports whether the player is rostered in the uncapped league.
func (p Player) InTopLeague() bool {
	return p.CurrentLeague != nil && *p.CurrentLeague == LeagueSHL
}
