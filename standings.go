package seriesmanager

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/google/uuid"
)

// A Standing is one driver's place in a computed standings table.
type Standing struct {
	DriverID   uuid.UUID
	DriverName string

	Points float64
	Wins   int

	// RoundBreakdown is only populated for championship scope, in round
	// chronological order. Display only; it never affects ranking.
	RoundBreakdown []RoundPoints
}

type RoundPoints struct {
	RoundID   uuid.UUID
	RoundName string
	Points    float64
}

// TieKey identifies a set of drivers tied on points and wins. It is a
// structured value internally and only becomes the wire form
// "points:<p>|wins:<w>" at the API boundary, so float formatting can't
// drift between client and server.
type TieKey struct {
	Points float64
	Wins   int
}

func (t TieKey) String() string {
	points := strconv.FormatFloat(roundToTwoPlaces(t.Points), 'f', -1, 64)

	return fmt.Sprintf("points:%s|wins:%d", points, t.Wins)
}

func (s *Standing) TieKey() TieKey {
	return TieKey{Points: s.Points, Wins: s.Wins}
}

// ComputeChampionshipStandings folds every session result under the
// championship's rounds, plus championship-scoped point adjustments,
// into ranked per-driver totals. Ordering is points descending with
// ties broken by any matching reorder override, then full name
// ascending. Overrides only ever reorder drivers sharing the same
// (points, wins) key; drivers on different totals are never swapped by
// one.
func ComputeChampionshipStandings(championship *Championship, rounds []*Round, adjustments []*DriverPointAdjustment, drivers []*Driver) []*Standing {
	byDriver := make(map[uuid.UUID]*Standing)

	namesByID := make(map[uuid.UUID]string)

	for _, driver := range drivers {
		namesByID[driver.ID] = driver.FullName()
	}

	standingFor := func(driverID uuid.UUID) *Standing {
		standing, ok := byDriver[driverID]

		if !ok {
			standing = &Standing{
				DriverID:   driverID,
				DriverName: namesByID[driverID],
			}

			byDriver[driverID] = standing
		}

		return standing
	}

	chronological := make([]*Round, len(rounds))

	copy(chronological, rounds)

	sort.Slice(chronological, func(i, j int) bool {
		return chronological[i].Date.Before(chronological[j].Date)
	})

	roundTotals := make(map[uuid.UUID]map[uuid.UUID]float64)

	for _, round := range chronological {
		totals := make(map[uuid.UUID]float64)
		roundTotals[round.ID] = totals

		for _, session := range round.Sessions {
			for _, result := range session.Results {
				standing := standingFor(result.DriverID)
				standing.Points += result.Points
				totals[result.DriverID] += result.Points

				if session.Type.IsRace() && result.Position == 1 {
					standing.Wins++
				}
			}
		}
	}

	for _, adjustment := range adjustments {
		if adjustment.ChampionshipID != championship.ID || adjustment.RoundID != uuid.Nil {
			continue
		}

		standingFor(adjustment.DriverID).Points += float64(adjustment.Delta)
	}

	var out []*Standing

	for _, standing := range byDriver {
		for _, round := range chronological {
			standing.RoundBreakdown = append(standing.RoundBreakdown, RoundPoints{
				RoundID:   round.ID,
				RoundName: round.Name,
				Points:    roundTotals[round.ID][standing.DriverID],
			})
		}

		out = append(out, standing)
	}

	sortStandings(out, championship.Overrides)

	return out
}

// ComputeRoundStandings ranks drivers on a single round's results plus
// any round-scoped adjustments. Ties are broken by name only.
func ComputeRoundStandings(round *Round, adjustments []*DriverPointAdjustment, drivers []*Driver) []*Standing {
	byDriver := make(map[uuid.UUID]*Standing)

	namesByID := make(map[uuid.UUID]string)

	for _, driver := range drivers {
		namesByID[driver.ID] = driver.FullName()
	}

	standingFor := func(driverID uuid.UUID) *Standing {
		standing, ok := byDriver[driverID]

		if !ok {
			standing = &Standing{
				DriverID:   driverID,
				DriverName: namesByID[driverID],
			}

			byDriver[driverID] = standing
		}

		return standing
	}

	for _, session := range round.Sessions {
		for _, result := range session.Results {
			standing := standingFor(result.DriverID)
			standing.Points += result.Points

			if session.Type.IsRace() && result.Position == 1 {
				standing.Wins++
			}
		}
	}

	for _, adjustment := range adjustments {
		if adjustment.RoundID != round.ID {
			continue
		}

		standingFor(adjustment.DriverID).Points += float64(adjustment.Delta)
	}

	var out []*Standing

	for _, standing := range byDriver {
		out = append(out, standing)
	}

	sortStandings(out, nil)

	return out
}

func sortStandings(standings []*Standing, overrides map[string][]uuid.UUID) {
	overrideIndex := make(map[string]map[uuid.UUID]int)

	for key, driverIDs := range overrides {
		index := make(map[uuid.UUID]int)

		for i, driverID := range driverIDs {
			index[driverID] = i
		}

		overrideIndex[key] = index
	}

	sort.Slice(standings, func(i, j int) bool {
		a, b := standings[i], standings[j]

		if a.Points != b.Points {
			return a.Points > b.Points
		}

		if a.Wins == b.Wins {
			if index, ok := overrideIndex[a.TieKey().String()]; ok {
				aIndex, aOK := index[a.DriverID]
				bIndex, bOK := index[b.DriverID]

				if aOK && bOK {
					return aIndex < bIndex
				}
			}
		}

		return a.DriverName < b.DriverName
	})
}

// ValidateStandingsReorder checks an admin's explicit driver order
// against freshly computed standings: the submitted tie key must match
// every listed driver's actual (points, wins) key. Client-supplied keys
// are never trusted.
func ValidateStandingsReorder(standings []*Standing, tieKey string, orderedDriverIDs []uuid.UUID) error {
	if len(orderedDriverIDs) == 0 {
		return ValidationError("no drivers supplied for reorder")
	}

	byID := make(map[uuid.UUID]*Standing)

	for _, standing := range standings {
		byID[standing.DriverID] = standing
	}

	for _, driverID := range orderedDriverIDs {
		standing, ok := byID[driverID]

		if !ok {
			return ValidationError(fmt.Sprintf("driver %s has no standing in this championship", driverID))
		}

		if standing.TieKey().String() != tieKey {
			return ValidationError(fmt.Sprintf("tie key %q does not match the current standings for driver %s", tieKey, driverID))
		}
	}

	return nil
}
