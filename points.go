package seriesmanager

import "math"

// RacePoints is the points-by-position table for race type sessions.
// It is the Formula 1 points system.
var RacePoints = []float64{
	25,
	18,
	15,
	12,
	10,
	8,
	6,
	4,
	2,
	1,
}

// CalculateSessionPoints awards the points for a finishing position in a
// session. Qualifying types award a single point for pole and ignore the
// multiplier. Race types use the RacePoints table with the multiplier
// applied; positions beyond the table score zero. Unknown session types
// score zero rather than erroring.
func CalculateSessionPoints(sessionType SessionType, position int, multiplier PointsMultiplier) float64 {
	switch sessionType {
	case SessionTypeQualifying, SessionTypeFinalQualifying:
		if position == 1 {
			return 1
		}

		return 0
	case SessionTypeRace, SessionTypeFinalRace:
		if position < 1 || position > len(RacePoints) {
			return 0
		}

		base := RacePoints[position-1]

		switch multiplier {
		case MultiplierHalf:
			return roundToTwoPlaces(base / 2)
		case MultiplierDouble:
			return base * 2
		default:
			return base
		}
	default:
		return 0
	}
}

func roundToTwoPlaces(v float64) float64 {
	return math.Round(v*100) / 100
}
