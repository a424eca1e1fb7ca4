package seriesmanager

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

var ErrRoundNotFound = errors.New("seriesmanager: round not found")

// NewRound creates a Round with a given name and date, creating a UUID
// for the round as well.
func NewRound(name string, date time.Time) *Round {
	return &Round{
		ID:      uuid.New(),
		Name:    name,
		Date:    date,
		Created: time.Now(),
	}
}

// A Round is a single race day in a Championship. Before setup an admin
// picks the participating drivers, the number of groups and the kart
// pool. Setup freezes all three and builds the round's sessions.
type Round struct {
	ID      uuid.UUID
	Created time.Time
	Updated time.Time
	Deleted time.Time

	Name string
	Date time.Time

	TrackID        uuid.UUID
	ChampionshipID uuid.UUID

	NumberOfGroups int
	AvailableKarts []int
	SetupCompleted bool

	// Drivers is the participating driver list, fixed once SetupCompleted
	// is true.
	Drivers []uuid.UUID

	Assignments []*GroupAssignment
	Sessions    []*Session
}

// A GroupAssignment places one driver in one group with one kart for a
// round. Kart numbers are unique across the whole round.
type GroupAssignment struct {
	DriverID   uuid.UUID
	Group      string
	KartNumber int
}

func (r *Round) HasChampionship() bool {
	return r.ChampionshipID != uuid.Nil
}

func (r *Round) HasDriver(driverID uuid.UUID) bool {
	for _, id := range r.Drivers {
		if id == driverID {
			return true
		}
	}

	return false
}

var ErrSessionNotFound = errors.New("seriesmanager: session not found")

// SessionByID finds a Session in the round by its ID string.
func (r *Round) SessionByID(id string) (*Session, error) {
	for _, session := range r.Sessions {
		if session.ID.String() == id {
			return session, nil
		}
	}

	return nil, ErrSessionNotFound
}

// SortedSessions returns the round's sessions in display order.
func (r *Round) SortedSessions() []*Session {
	sessions := make([]*Session, len(r.Sessions))

	copy(sessions, r.Sessions)

	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].Order < sessions[j].Order
	})

	return sessions
}

// QualifyingSessions returns the round's qualifying heats in order.
func (r *Round) QualifyingSessions() []*Session {
	var qualifying []*Session

	for _, session := range r.SortedSessions() {
		if session.Type == SessionTypeQualifying {
			qualifying = append(qualifying, session)
		}
	}

	return qualifying
}

// RoundWideSessionOfType finds the first ungrouped session of the given
// type, used for the final qualifying and final race sessions.
func (r *Round) RoundWideSessionOfType(sessionType SessionType) *Session {
	for _, session := range r.SortedSessions() {
		if session.Type == sessionType && session.Group == "" {
			return session
		}
	}

	return nil
}

// GroupLabels returns the round's group labels, "A" onwards.
func (r *Round) GroupLabels() []string {
	labels := make([]string, 0, r.NumberOfGroups)

	for i := 0; i < r.NumberOfGroups; i++ {
		labels = append(labels, groupLabel(i))
	}

	return labels
}

func groupLabel(i int) string {
	return string(rune('A' + i))
}

func (r *Round) AssignmentForDriver(driverID uuid.UUID) *GroupAssignment {
	for _, assignment := range r.Assignments {
		if assignment.DriverID == driverID {
			return assignment
		}
	}

	return nil
}

func (r *Round) AssignmentsForGroup(group string) []*GroupAssignment {
	var assignments []*GroupAssignment

	for _, assignment := range r.Assignments {
		if assignment.Group == group {
			assignments = append(assignments, assignment)
		}
	}

	return assignments
}

// relevantSessions are the sessions which count towards round
// completion. Group-scoped final sessions are a legacy shape from older
// rounds and are excluded.
func (r *Round) relevantSessions() []*Session {
	var relevant []*Session

	for _, session := range r.Sessions {
		if session.Type.IsFinal() && session.Group != "" {
			continue
		}

		relevant = append(relevant, session)
	}

	return relevant
}

// AllSessionsComplete reports whether every relevant session in the
// round has completed.
func (r *Round) AllSessionsComplete() bool {
	sessions := r.relevantSessions()

	if len(sessions) == 0 {
		return false
	}

	for _, session := range sessions {
		if !session.Complete() {
			return false
		}
	}

	return true
}

type RoundStatus string

const (
	RoundStatusUpcoming   RoundStatus = "UPCOMING"
	RoundStatusPending    RoundStatus = "PENDING"
	RoundStatusInProgress RoundStatus = "IN_PROGRESS"
	RoundStatusCompleted  RoundStatus = "COMPLETED"
)

// RoundStatusFacts is the read-only snapshot a round's display status is
// derived from.
type RoundStatusFacts struct {
	Date                time.Time
	NumberOfGroups      int
	SetupCompleted      bool
	DriverCount         int
	AllSessionsComplete bool
}

func (r *Round) StatusFacts() RoundStatusFacts {
	return RoundStatusFacts{
		Date:                r.Date,
		NumberOfGroups:      r.NumberOfGroups,
		SetupCompleted:      r.SetupCompleted,
		DriverCount:         len(r.Drivers),
		AllSessionsComplete: r.AllSessionsComplete(),
	}
}

// ResolveRoundStatus derives a round's display status. The status is
// never persisted; callers recompute it from current facts on every
// read. First match wins.
func ResolveRoundStatus(facts RoundStatusFacts, now time.Time) RoundStatus {
	if !facts.SetupCompleted {
		return RoundStatusPending
	}

	endOfToday := time.Date(now.Year(), now.Month(), now.Day(), 23, 59, 59, int(999*time.Millisecond), now.Location())

	if facts.Date.After(endOfToday) {
		return RoundStatusUpcoming
	}

	if facts.DriverCount == 0 || facts.NumberOfGroups == 0 {
		return RoundStatusPending
	}

	if facts.AllSessionsComplete {
		return RoundStatusCompleted
	}

	return RoundStatusInProgress
}

// Status derives the round's current display status.
func (r *Round) Status(now time.Time) RoundStatus {
	return ResolveRoundStatus(r.StatusFacts(), now)
}
