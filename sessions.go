package seriesmanager

import (
	"sort"

	"github.com/google/uuid"
)

type SessionType string

const (
	SessionTypeQualifying      SessionType = "QUALIFYING"
	SessionTypeRace            SessionType = "RACE"
	SessionTypeFinalQualifying SessionType = "FINAL_QUALIFYING"
	SessionTypeFinalRace       SessionType = "FINAL_RACE"
)

func (s SessionType) IsRace() bool {
	return s == SessionTypeRace || s == SessionTypeFinalRace
}

func (s SessionType) IsQualifying() bool {
	return s == SessionTypeQualifying || s == SessionTypeFinalQualifying
}

func (s SessionType) IsFinal() bool {
	return s == SessionTypeFinalQualifying || s == SessionTypeFinalRace
}

type PointsMultiplier string

const (
	MultiplierNormal PointsMultiplier = "NORMAL"
	MultiplierHalf   PointsMultiplier = "HALF"
	MultiplierDouble PointsMultiplier = "DOUBLE"
)

func (m PointsMultiplier) Valid() bool {
	return m == MultiplierNormal || m == MultiplierHalf || m == MultiplierDouble
}

type SessionStatus string

const (
	SessionStatusPending   SessionStatus = "PENDING"
	SessionStatusReady     SessionStatus = "READY"
	SessionStatusCompleted SessionStatus = "COMPLETED"
)

// A Session is a single timed outing within a Round. Group is empty for
// round-wide sessions (the legacy qualifying heats and the finals).
type Session struct {
	ID    uuid.UUID
	Name  string
	Type  SessionType
	Group string
	Order int

	// PointsMultiplier only applies to race type sessions. It is always
	// empty for qualifying types.
	PointsMultiplier PointsMultiplier

	// Status is a cache. The authoritative value is derived from the
	// round's stored facts, see ResolveFinalQualifyingStatus.
	Status SessionStatus

	Results []*SessionResult
}

// A SessionResult is one driver's finishing position in a Session, with
// points computed at submission time.
type SessionResult struct {
	DriverID uuid.UUID
	Position int
	Points   float64
}

func (s *Session) HasResults() bool {
	return len(s.Results) > 0
}

// Complete reports whether a session counts as finished for the purpose
// of deriving round status.
func (s *Session) Complete() bool {
	return s.Status == SessionStatusCompleted || s.HasResults()
}

func (s *Session) ResultForDriver(driverID uuid.UUID) *SessionResult {
	for _, result := range s.Results {
		if result.DriverID == driverID {
			return result
		}
	}

	return nil
}

// SortedResults returns the session's results ordered by finishing
// position.
func (s *Session) SortedResults() []*SessionResult {
	results := make([]*SessionResult, len(s.Results))

	copy(results, s.Results)

	sort.Slice(results, func(i, j int) bool {
		return results[i].Position < results[j].Position
	})

	return results
}
