package costscale

// Immutable reference data. Levels below the floor or above the ceiling
// are deliberately absent. TotalCost must stay non-decreasing per scale;
// the scale tests enforce it.

var skaterScale = map[int]Cost{
	5:  {PointCost: 0, TotalCost: 0, StamCost: 0},
	6:  {PointCost: 2, TotalCost: 2, StamCost: 0},
	7:  {PointCost: 2, TotalCost: 4, StamCost: 0},
	8:  {PointCost: 4, TotalCost: 8, StamCost: 0},
	9:  {PointCost: 4, TotalCost: 12, StamCost: 0},
	10: {PointCost: 6, TotalCost: 18, StamCost: 0},
	11: {PointCost: 6, TotalCost: 24, StamCost: 0},
	12: {PointCost: 8, TotalCost: 32, StamCost: 0},
	13: {PointCost: 8, TotalCost: 40, StamCost: 0},
	14: {PointCost: 12, TotalCost: 52, StamCost: 0},
	15: {PointCost: 12, TotalCost: 64, StamCost: 5},
	16: {PointCost: 20, TotalCost: 84, StamCost: 15},
	17: {PointCost: 20, TotalCost: 104, StamCost: 30},
	18: {PointCost: 30, TotalCost: 134, StamCost: 50},
	19: {PointCost: 30, TotalCost: 164, StamCost: 75},
	20: {PointCost: 40, TotalCost: 204, StamCost: 105},
}

var goalieScale = map[int]Cost{
	5:  {PointCost: 0, TotalCost: 0},
	6:  {PointCost: 2, TotalCost: 2},
	7:  {PointCost: 2, TotalCost: 4},
	8:  {PointCost: 4, TotalCost: 8},
	9:  {PointCost: 4, TotalCost: 12},
	10: {PointCost: 5, TotalCost: 17},
	11: {PointCost: 5, TotalCost: 22},
	12: {PointCost: 8, TotalCost: 30},
	13: {PointCost: 8, TotalCost: 38},
	14: {PointCost: 10, TotalCost: 48},
	15: {PointCost: 10, TotalCost: 58},
	16: {PointCost: 15, TotalCost: 73},
	17: {PointCost: 15, TotalCost: 88},
	18: {PointCost: 25, TotalCost: 113},
	19: {PointCost: 25, TotalCost: 138},
	20: {PointCost: 35, TotalCost: 173},
}
