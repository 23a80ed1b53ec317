package costscale

// Cost is the price of owning an attribute at a specific level.
//
// PointCost is the marginal cost of the step from the previous level.
// TotalCost is the cumulative cost of the level from the attribute floor.
// StamCost is the cumulative cost for skater stamina, which is charged on
// its own curve; it is zero for goalie rows.
type Cost struct {
	PointCost int
	TotalCost int
	StamCost  int
}

// Scale selects which lookup table applies.
type Scale string

const (
	ScaleSkater Scale = "skater"
	ScaleGoalie Scale = "goalie"
)

const (
	// Floor and Ceiling bound every purchasable attribute level.
	Floor   = 5
	Ceiling = 20
)

// Lookup returns the cost entry for the given level. The boolean reports
// whether the level exists in the table; most spend-validation callers
// treat a missing level as free (see TotalCostAt), while redistribution
// refuses to refund unmapped levels.
func Lookup(scale Scale, level int) (Cost, bool) {
	table := skaterScale
	if scale == ScaleGoalie {
		table = goalieScale
	}
	cost, ok := table[level]
	return cost, ok
}

// TotalCostAt returns the cumulative cost of owning level, or 0 when the
// level is outside the table. The fail-open zero matches long-standing
// portal behavior and is relied on for disabled-default levels.
func TotalCostAt(scale Scale, level int) int {
	cost, ok := Lookup(scale, level)
	if !ok {
		return 0
	}
	return cost.TotalCost
}

// StaminaCostAt is TotalCostAt for the skater stamina curve.
func StaminaCostAt(level int) int {
	cost, ok := Lookup(ScaleSkater, level)
	if !ok {
		return 0
	}
	return cost.StamCost
}

// PointCostAt returns the marginal cost of the step up to level. The
// boolean is false for unmapped levels so refund math can fail closed.
func PointCostAt(scale Scale, level int) (int, bool) {
	cost, ok := Lookup(scale, level)
	if !ok {
		return 0, false
	}
	return cost.PointCost, true
}
