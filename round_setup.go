package seriesmanager

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

var (
	ErrRoundAlreadySetUp      = errors.New("seriesmanager: round is already set up")
	ErrRoundHasNoChampionship = errors.New("seriesmanager: round does not belong to a championship")
	ErrRoundHasNoDrivers      = errors.New("seriesmanager: round has no participating drivers")
	ErrRoundHasNoGroups       = errors.New("seriesmanager: round has no groups configured")
	ErrNotEnoughKarts         = errors.New("seriesmanager: round has fewer available karts than drivers")
)

// numQualifyingHeats is fixed regardless of the group count. Qualifying
// heats are ungrouped; their numbering is kept for display.
const numQualifyingHeats = 4

// A Shuffler produces the permutations used for group and kart
// assignment. It exists so tests can fix the seed.
type Shuffler interface {
	Shuffle(n int, swap func(i, j int))
}

type randShuffler struct {
	rand *rand.Rand
}

func (r *randShuffler) Shuffle(n int, swap func(i, j int)) {
	r.rand.Shuffle(n, swap)
}

func NewShuffler() Shuffler {
	return NewSeededShuffler(time.Now().UnixNano())
}

func NewSeededShuffler(seed int64) Shuffler {
	return &randShuffler{rand: rand.New(rand.NewSource(seed))}
}

// GenerateRoundSetup assigns every participating driver a group and a
// kart, builds the round's session skeleton and marks the round as set
// up. The round is mutated in memory only; the caller persists it in a
// single transaction so a failed setup is never partially applied.
//
// Drivers and karts are shuffled independently, then drivers are placed
// into groups round-robin so group sizes are balanced to within one.
// Karts are a round-wide pool: no kart number is used twice.
func GenerateRoundSetup(round *Round, shuffler Shuffler) error {
	if round.SetupCompleted {
		return ErrRoundAlreadySetUp
	}

	if !round.HasChampionship() {
		return ErrRoundHasNoChampionship
	}

	if len(round.Drivers) == 0 {
		return ErrRoundHasNoDrivers
	}

	if round.NumberOfGroups < 1 {
		return ErrRoundHasNoGroups
	}

	if len(round.AvailableKarts) < len(round.Drivers) {
		return ErrNotEnoughKarts
	}

	drivers := make([]uuid.UUID, len(round.Drivers))
	copy(drivers, round.Drivers)

	karts := make([]int, len(round.AvailableKarts))
	copy(karts, round.AvailableKarts)

	shuffler.Shuffle(len(drivers), func(i, j int) {
		drivers[i], drivers[j] = drivers[j], drivers[i]
	})

	shuffler.Shuffle(len(karts), func(i, j int) {
		karts[i], karts[j] = karts[j], karts[i]
	})

	assignments := make([]*GroupAssignment, 0, len(drivers))

	for i, driverID := range drivers {
		assignments = append(assignments, &GroupAssignment{
			DriverID:   driverID,
			Group:      groupLabel(i % round.NumberOfGroups),
			KartNumber: karts[i],
		})
	}

	round.Assignments = assignments
	round.Sessions = buildSessionSkeleton(round.NumberOfGroups)
	round.SetupCompleted = true

	return nil
}

func buildSessionSkeleton(numberOfGroups int) []*Session {
	var sessions []*Session

	order := 0

	for i := 0; i < numQualifyingHeats; i++ {
		sessions = append(sessions, &Session{
			ID:     uuid.New(),
			Name:   fmt.Sprintf("Qualifying %d", i+1),
			Type:   SessionTypeQualifying,
			Order:  order,
			Status: SessionStatusPending,
		})

		order++
	}

	for i := 0; i < numberOfGroups; i++ {
		sessions = append(sessions, &Session{
			ID:     uuid.New(),
			Name:   fmt.Sprintf("Race Group %s", groupLabel(i)),
			Type:   SessionTypeRace,
			Group:  groupLabel(i),
			Order:  order,
			Status: SessionStatusPending,
		})

		order++
	}

	sessions = append(sessions, &Session{
		ID:     uuid.New(),
		Name:   "Final Qualifying",
		Type:   SessionTypeFinalQualifying,
		Order:  order,
		Status: SessionStatusPending,
	})

	order++

	sessions = append(sessions, &Session{
		ID:     uuid.New(),
		Name:   "Final Race",
		Type:   SessionTypeFinalRace,
		Order:  order,
		Status: SessionStatusPending,
	})

	return sessions
}
