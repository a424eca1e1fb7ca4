package seriesmanager

import (
	"fmt"
	"sort"

	"github.com/google/uuid"
)

// A ResultSubmission is the body of a results upload for one session.
type ResultSubmission struct {
	PointsMultiplier PointsMultiplier  `json:"pointsMultiplier,omitempty"`
	Results          []SubmittedResult `json:"results"`
}

type SubmittedResult struct {
	DriverID uuid.UUID `json:"driverId"`
	Position int       `json:"position"`
}

// eligibleDrivers resolves the driver set a submission must cover
// exactly. Group sessions take that group's assignments. Ungrouped
// sessions take the whole round roster: for the final sessions the real
// eligibility comes from the qualification chain, but the full-roster
// check is kept as a safety net on top of it.
func eligibleDrivers(round *Round, session *Session) map[uuid.UUID]bool {
	eligible := make(map[uuid.UUID]bool)

	for _, assignment := range round.Assignments {
		if session.Group == "" || assignment.Group == session.Group {
			eligible[assignment.DriverID] = true
		}
	}

	return eligible
}

// ValidateAndScoreResults checks a submission against the session's
// eligible driver set, verifies the positions form a contiguous 1..N
// permutation, resolves the multiplier, and computes each result's
// points. All validation happens before any mutation; the caller
// persists the returned results in a single transaction, replacing any
// prior results for the session, so resubmission is idempotent.
func ValidateAndScoreResults(round *Round, session *Session, multiplier PointsMultiplier, submitted []SubmittedResult) ([]*SessionResult, PointsMultiplier, error) {
	eligible := eligibleDrivers(round, session)

	seenDrivers := make(map[uuid.UUID]bool)
	seenPositions := make(map[int]bool)

	for _, result := range submitted {
		if seenDrivers[result.DriverID] {
			return nil, "", ValidationError(fmt.Sprintf("duplicate result for driver %s", result.DriverID))
		}

		seenDrivers[result.DriverID] = true

		if !eligible[result.DriverID] {
			return nil, "", ValidationError(fmt.Sprintf("driver %s is not eligible for this session", result.DriverID))
		}
	}

	if len(seenDrivers) != len(eligible) {
		return nil, "", ValidationError(fmt.Sprintf("results submission is missing %d eligible driver(s)", len(eligible)-len(seenDrivers)))
	}

	for _, result := range submitted {
		if result.Position < 1 || result.Position > len(submitted) {
			return nil, "", ValidationError(fmt.Sprintf("position %d is out of range, positions must cover 1 to %d", result.Position, len(submitted)))
		}

		if seenPositions[result.Position] {
			return nil, "", ValidationError(fmt.Sprintf("position %d appears more than once", result.Position))
		}

		seenPositions[result.Position] = true
	}

	if session.Type.IsRace() {
		if !multiplier.Valid() {
			return nil, "", ValidationError("race sessions require a points multiplier of NORMAL, HALF or DOUBLE")
		}
	} else {
		// qualifying sessions never carry a multiplier, whatever was sent
		multiplier = ""
	}

	results := make([]*SessionResult, 0, len(submitted))

	for _, result := range submitted {
		results = append(results, &SessionResult{
			DriverID: result.DriverID,
			Position: result.Position,
			Points:   CalculateSessionPoints(session.Type, result.Position, multiplier),
		})
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].Position < results[j].Position
	})

	return results, multiplier, nil
}
