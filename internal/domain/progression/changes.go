package progression

import (
	"errors"

	"github.com/avenratt/league-portal/internal/domain/attributes"
)

var (
	ErrUnknownAttribute     = errors.New("attribute not present on player sheet")
	ErrStaleValue           = errors.New("submitted base value does not match stored value")
	ErrWrongDirection       = errors.New("change direction not allowed for this operation")
	ErrLimitedAttribute     = errors.New("position-restricted attribute maximum exceeded")
	ErrExceedsAvailableTPE  = errors.New("spend exceeds available TPE")
	ErrUnmappedScaleLevel   = errors.New("attribute level outside cost scale domain")
	ErrRedistributionCap    = errors.New("lifetime redistribution ceiling exceeded")
	ErrInsufficientBalance  = errors.New("bank balance does not cover redistribution cost")
	ErrEmptyChangeSet       = errors.New("no attribute changes submitted")
	ErrMismatchedChangeSet  = errors.New("change set shape does not match player position")
	ErrRegressionNotAllowed = errors.New("player is not over their applied-TPE ceiling")
)

// SkaterChange proposes moving one skater rating From its last-known
// stored value To a new value. From doubles as the optimistic-concurrency
// guard: a mismatch with storage invalidates the whole batch.
type SkaterChange struct {
	Attribute attributes.SkaterAttribute
	From      int
	To        int
}

type GoalieChange struct {
	Attribute attributes.GoalieAttribute
	From      int
	To        int
}

// ChangeSet carries exactly one shape of proposed changes.
type ChangeSet struct {
	Skater []SkaterChange
	Goalie []GoalieChange
}

func (c ChangeSet) Empty() bool {
	return len(c.Skater) == 0 && len(c.Goalie) == 0
}
