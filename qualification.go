package seriesmanager

import (
	"github.com/google/uuid"
)

// finalQualifyingSpots is how many drivers each group sends through to
// the final qualifying session.
const finalQualifyingSpots = 3

// A FinalEntrant is a driver who has qualified for one of the round's
// final sessions, annotated with their originally assigned group for
// display.
type FinalEntrant struct {
	DriverID uuid.UUID
	Group    string
	Position int
}

// groupQualifyingSession maps a group to its qualifying heat. Heats are
// ungrouped for legacy display reasons; group i (A = 0) corresponds to
// the i-th heat in order.
func groupQualifyingSession(round *Round, groupIndex int) *Session {
	qualifying := round.QualifyingSessions()

	if groupIndex >= len(qualifying) {
		return nil
	}

	return qualifying[groupIndex]
}

// FinalQualifyingEligibility derives which drivers take part in the
// final qualifying session: the top finishers of each group's
// qualifying heat, concatenated group by group. The chain is not ready
// until every group's heat has at least one result; any results already
// stored on the final session play no part in readiness.
func FinalQualifyingEligibility(round *Round) ([]*FinalEntrant, bool) {
	var eligible []*FinalEntrant

	for i, group := range round.GroupLabels() {
		session := groupQualifyingSession(round, i)

		if session == nil || !session.HasResults() {
			return nil, false
		}

		results := session.SortedResults()

		for j := 0; j < finalQualifyingSpots && j < len(results); j++ {
			eligible = append(eligible, &FinalEntrant{
				DriverID: results[j].DriverID,
				Group:    group,
				Position: results[j].Position,
			})
		}
	}

	return eligible, true
}

// FinalRaceEligibility derives the final race's grid: exactly the
// drivers with a final qualifying result, in finishing order, annotated
// with their originally assigned group.
func FinalRaceEligibility(round *Round) ([]*FinalEntrant, bool) {
	finalQualifying := round.RoundWideSessionOfType(SessionTypeFinalQualifying)

	if finalQualifying == nil || !finalQualifying.HasResults() {
		return nil, false
	}

	var eligible []*FinalEntrant

	for _, result := range finalQualifying.SortedResults() {
		entrant := &FinalEntrant{
			DriverID: result.DriverID,
			Position: result.Position,
		}

		if assignment := round.AssignmentForDriver(result.DriverID); assignment != nil {
			entrant.Group = assignment.Group
		}

		eligible = append(eligible, entrant)
	}

	return eligible, true
}

// ResolveFinalQualifyingStatus derives the final qualifying session's
// status from the qualifying chain. The stored status is only a cache
// that RegenerateFinalQualifying refreshes.
func ResolveFinalQualifyingStatus(round *Round) SessionStatus {
	if _, ready := FinalQualifyingEligibility(round); !ready {
		return SessionStatusPending
	}

	finalQualifying := round.RoundWideSessionOfType(SessionTypeFinalQualifying)

	if finalQualifying != nil && finalQualifying.HasResults() {
		return SessionStatusCompleted
	}

	return SessionStatusReady
}
