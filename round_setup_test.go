package seriesmanager

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func testRoundWithDrivers(numDrivers, numGroups, numKarts int) *Round {
	round := NewRound("Test Round", time.Now())
	round.ChampionshipID = uuid.New()
	round.NumberOfGroups = numGroups

	for i := 0; i < numDrivers; i++ {
		round.Drivers = append(round.Drivers, uuid.New())
	}

	for i := 0; i < numKarts; i++ {
		round.AvailableKarts = append(round.AvailableKarts, i+1)
	}

	return round
}

func TestGenerateRoundSetup(t *testing.T) {
	round := testRoundWithDrivers(10, 2, 15)

	if err := GenerateRoundSetup(round, NewSeededShuffler(42)); err != nil {
		t.Fatalf("expected setup to succeed, got: %s", err)
	}

	if !round.SetupCompleted {
		t.Error("expected round to be marked as set up")
	}

	if len(round.Assignments) != 10 {
		t.Fatalf("expected 10 assignments, got %d", len(round.Assignments))
	}

	groupCounts := make(map[string]int)
	seenKarts := make(map[int]bool)
	seenDrivers := make(map[uuid.UUID]bool)

	for _, assignment := range round.Assignments {
		groupCounts[assignment.Group]++

		if seenKarts[assignment.KartNumber] {
			t.Errorf("kart %d assigned twice", assignment.KartNumber)
		}

		seenKarts[assignment.KartNumber] = true

		if seenDrivers[assignment.DriverID] {
			t.Errorf("driver %s assigned twice", assignment.DriverID)
		}

		seenDrivers[assignment.DriverID] = true

		if !round.HasDriver(assignment.DriverID) {
			t.Errorf("driver %s is not in the round", assignment.DriverID)
		}
	}

	if groupCounts["A"] != 5 || groupCounts["B"] != 5 {
		t.Errorf("expected balanced groups of 5, got A=%d B=%d", groupCounts["A"], groupCounts["B"])
	}
}

func TestGenerateRoundSetupBalancesUnevenGroups(t *testing.T) {
	round := testRoundWithDrivers(11, 3, 11)

	if err := GenerateRoundSetup(round, NewSeededShuffler(7)); err != nil {
		t.Fatalf("expected setup to succeed, got: %s", err)
	}

	groupCounts := make(map[string]int)

	for _, assignment := range round.Assignments {
		groupCounts[assignment.Group]++
	}

	for _, label := range round.GroupLabels() {
		if groupCounts[label] < 3 || groupCounts[label] > 4 {
			t.Errorf("group %s has %d drivers, expected group sizes within one of each other", label, groupCounts[label])
		}
	}
}

func TestGenerateRoundSetupSessionSkeleton(t *testing.T) {
	round := testRoundWithDrivers(8, 2, 8)

	if err := GenerateRoundSetup(round, NewSeededShuffler(1)); err != nil {
		t.Fatalf("expected setup to succeed, got: %s", err)
	}

	// 4 qualifying heats, one race per group, final qualifying, final race
	if len(round.Sessions) != 8 {
		t.Fatalf("expected 8 sessions, got %d", len(round.Sessions))
	}

	qualifying := round.QualifyingSessions()

	if len(qualifying) != 4 {
		t.Errorf("expected 4 qualifying heats, got %d", len(qualifying))
	}

	for _, session := range qualifying {
		if session.Group != "" {
			t.Errorf("expected qualifying heat %s to be ungrouped", session.Name)
		}
	}

	seenOrders := make(map[int]bool)

	for _, session := range round.Sessions {
		if session.Status != SessionStatusPending {
			t.Errorf("expected session %s to start pending, got %s", session.Name, session.Status)
		}

		if seenOrders[session.Order] {
			t.Errorf("session order %d used twice", session.Order)
		}

		seenOrders[session.Order] = true
	}

	if round.RoundWideSessionOfType(SessionTypeFinalQualifying) == nil {
		t.Error("expected a round-wide final qualifying session")
	}

	if round.RoundWideSessionOfType(SessionTypeFinalRace) == nil {
		t.Error("expected a round-wide final race session")
	}
}

func TestGenerateRoundSetupPreconditions(t *testing.T) {
	fixtures := []struct {
		name string

		setup func(*Round)

		expected error
	}{
		{
			name: "already set up",
			setup: func(r *Round) {
				r.SetupCompleted = true
			},
			expected: ErrRoundAlreadySetUp,
		},
		{
			name: "no championship",
			setup: func(r *Round) {
				r.ChampionshipID = uuid.Nil
			},
			expected: ErrRoundHasNoChampionship,
		},
		{
			name: "no drivers",
			setup: func(r *Round) {
				r.Drivers = nil
			},
			expected: ErrRoundHasNoDrivers,
		},
		{
			name: "no groups",
			setup: func(r *Round) {
				r.NumberOfGroups = 0
			},
			expected: ErrRoundHasNoGroups,
		},
		{
			name: "not enough karts",
			setup: func(r *Round) {
				r.AvailableKarts = r.AvailableKarts[:3]
			},
			expected: ErrNotEnoughKarts,
		},
	}

	for _, fixture := range fixtures {
		t.Run(fixture.name, func(t *testing.T) {
			round := testRoundWithDrivers(6, 2, 6)
			fixture.setup(round)

			err := GenerateRoundSetup(round, NewSeededShuffler(1))

			if err != fixture.expected {
				t.Errorf("expected error %v, got %v", fixture.expected, err)
			}

			if round.SetupCompleted && fixture.expected != ErrRoundAlreadySetUp {
				t.Error("expected a failed setup to leave the round untouched")
			}
		})
	}
}
