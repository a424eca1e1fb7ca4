package seriesmanager

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func namedDriver(first, last string) *Driver {
	driver := NewDriver()
	driver.FirstName = first
	driver.LastName = last

	return driver
}

func completedRound(name string, date time.Time, championshipID uuid.UUID, raceResults []*SessionResult) *Round {
	round := NewRound(name, date)
	round.ChampionshipID = championshipID
	round.Sessions = []*Session{
		{
			ID:      uuid.New(),
			Name:    "Race Group A",
			Type:    SessionTypeRace,
			Group:   "A",
			Results: raceResults,
		},
	}

	return round
}

func TestComputeChampionshipStandings(t *testing.T) {
	alice := namedDriver("Alice", "Archer")
	bruno := namedDriver("Bruno", "Berg")
	carla := namedDriver("Carla", "Costa")

	drivers := []*Driver{alice, bruno, carla}

	championship := NewChampionship("Winter Cup")
	championship.Drivers = []uuid.UUID{alice.ID, bruno.ID, carla.ID}

	round1 := completedRound("Round 1", time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), championship.ID, []*SessionResult{
		{DriverID: alice.ID, Position: 1, Points: 25},
		{DriverID: bruno.ID, Position: 2, Points: 18},
		{DriverID: carla.ID, Position: 3, Points: 15},
	})

	round2 := completedRound("Round 2", time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC), championship.ID, []*SessionResult{
		{DriverID: bruno.ID, Position: 1, Points: 25},
		{DriverID: alice.ID, Position: 2, Points: 18},
		{DriverID: carla.ID, Position: 3, Points: 15},
	})

	standings := ComputeChampionshipStandings(championship, []*Round{round2, round1}, nil, drivers)

	if len(standings) != 3 {
		t.Fatalf("expected 3 standings, got %d", len(standings))
	}

	if standings[0].DriverName != "Alice Archer" || standings[0].Points != 43 {
		t.Errorf("expected Alice Archer leading on 43, got %s on %.1f", standings[0].DriverName, standings[0].Points)
	}

	// Alice and Bruno are tied on points and wins; name breaks the tie
	if standings[1].DriverName != "Bruno Berg" || standings[1].Points != 43 {
		t.Errorf("expected Bruno Berg second on 43, got %s on %.1f", standings[1].DriverName, standings[1].Points)
	}

	if standings[0].Wins != 1 || standings[1].Wins != 1 {
		t.Errorf("expected one win each for the leaders, got %d and %d", standings[0].Wins, standings[1].Wins)
	}

	breakdown := standings[0].RoundBreakdown

	if len(breakdown) != 2 {
		t.Fatalf("expected a 2 round breakdown, got %d", len(breakdown))
	}

	// breakdown is chronological even though rounds were passed reversed
	if breakdown[0].RoundName != "Round 1" || breakdown[0].Points != 25 {
		t.Errorf("expected Round 1 first with 25 points, got %s with %.1f", breakdown[0].RoundName, breakdown[0].Points)
	}

	if breakdown[1].RoundName != "Round 2" || breakdown[1].Points != 18 {
		t.Errorf("expected Round 2 with 18 points, got %s with %.1f", breakdown[1].RoundName, breakdown[1].Points)
	}
}

func TestChampionshipAdjustmentsAndOverrides(t *testing.T) {
	alice := namedDriver("Alice", "Archer")
	bruno := namedDriver("Bruno", "Berg")

	drivers := []*Driver{alice, bruno}

	championship := NewChampionship("Winter Cup")
	championship.Drivers = []uuid.UUID{alice.ID, bruno.ID}

	round1 := completedRound("Round 1", time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), championship.ID, []*SessionResult{
		{DriverID: alice.ID, Position: 1, Points: 25},
		{DriverID: bruno.ID, Position: 2, Points: 18},
	})

	round2 := completedRound("Round 2", time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC), championship.ID, []*SessionResult{
		{DriverID: bruno.ID, Position: 1, Points: 25},
		{DriverID: alice.ID, Position: 2, Points: 18},
	})

	rounds := []*Round{round1, round2}

	t.Run("championship scoped adjustments count", func(t *testing.T) {
		penalty := NewDriverPointAdjustment(alice.ID, -1)
		penalty.ChampionshipID = championship.ID

		standings := ComputeChampionshipStandings(championship, rounds, []*DriverPointAdjustment{penalty}, drivers)

		if standings[0].DriverName != "Bruno Berg" || standings[0].Points != 43 {
			t.Errorf("expected Bruno Berg leading on 43 after Alice's penalty, got %s on %.1f", standings[0].DriverName, standings[0].Points)
		}

		if standings[1].Points != 42 {
			t.Errorf("expected Alice on 42 after the penalty, got %.1f", standings[1].Points)
		}
	})

	t.Run("round scoped adjustments are ignored", func(t *testing.T) {
		penalty := NewDriverPointAdjustment(alice.ID, -1)
		penalty.RoundID = round1.ID

		standings := ComputeChampionshipStandings(championship, rounds, []*DriverPointAdjustment{penalty}, drivers)

		if standings[0].Points != 43 || standings[1].Points != 43 {
			t.Error("expected round scoped adjustments to stay out of championship totals")
		}
	})

	t.Run("override reorders tied drivers", func(t *testing.T) {
		tieKey := TieKey{Points: 43, Wins: 1}.String()

		championship.SetOverride(tieKey, []uuid.UUID{bruno.ID, alice.ID})
		defer championship.RemoveOverride(tieKey)

		standings := ComputeChampionshipStandings(championship, rounds, nil, drivers)

		if standings[0].DriverID != bruno.ID {
			t.Errorf("expected the override to put Bruno Berg first, got %s", standings[0].DriverName)
		}
	})

	t.Run("override on a different tie key does nothing", func(t *testing.T) {
		championship.SetOverride(TieKey{Points: 99, Wins: 0}.String(), []uuid.UUID{bruno.ID, alice.ID})
		defer championship.RemoveOverride(TieKey{Points: 99, Wins: 0}.String())

		standings := ComputeChampionshipStandings(championship, rounds, nil, drivers)

		if standings[0].DriverID != alice.ID {
			t.Errorf("expected name order to hold, got %s first", standings[0].DriverName)
		}
	})
}

func TestTieKeyString(t *testing.T) {
	fixtures := []struct {
		key      TieKey
		expected string
	}{
		{TieKey{Points: 25, Wins: 1}, "points:25|wins:1"},
		{TieKey{Points: 12.5, Wins: 0}, "points:12.5|wins:0"},
		{TieKey{Points: 12.504999, Wins: 2}, "points:12.5|wins:2"},
		{TieKey{Points: 0, Wins: 0}, "points:0|wins:0"},
	}

	for _, fixture := range fixtures {
		if got := fixture.key.String(); got != fixture.expected {
			t.Errorf("expected %q, got %q", fixture.expected, got)
		}
	}
}

func TestValidateStandingsReorder(t *testing.T) {
	alice := namedDriver("Alice", "Archer")
	bruno := namedDriver("Bruno", "Berg")

	standings := []*Standing{
		{DriverID: alice.ID, DriverName: alice.FullName(), Points: 43, Wins: 1},
		{DriverID: bruno.ID, DriverName: bruno.FullName(), Points: 43, Wins: 1},
	}

	tieKey := TieKey{Points: 43, Wins: 1}.String()

	if err := ValidateStandingsReorder(standings, tieKey, []uuid.UUID{bruno.ID, alice.ID}); err != nil {
		t.Errorf("expected reorder of tied drivers to validate, got: %s", err)
	}

	if err := ValidateStandingsReorder(standings, tieKey, nil); err == nil {
		t.Error("expected an empty reorder to be rejected")
	}

	if err := ValidateStandingsReorder(standings, tieKey, []uuid.UUID{uuid.New()}); err == nil {
		t.Error("expected an unknown driver to be rejected")
	}

	staleKey := TieKey{Points: 40, Wins: 1}.String()

	if err := ValidateStandingsReorder(standings, staleKey, []uuid.UUID{bruno.ID, alice.ID}); err == nil {
		t.Error("expected a stale tie key to be rejected")
	}
}

func TestComputeRoundStandings(t *testing.T) {
	alice := namedDriver("Alice", "Archer")
	bruno := namedDriver("Bruno", "Berg")

	drivers := []*Driver{alice, bruno}

	round := completedRound("Round 1", time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), uuid.New(), []*SessionResult{
		{DriverID: alice.ID, Position: 1, Points: 25},
		{DriverID: bruno.ID, Position: 2, Points: 18},
	})

	bonus := NewDriverPointAdjustment(bruno.ID, 1)
	bonus.RoundID = round.ID

	otherRoundPenalty := NewDriverPointAdjustment(alice.ID, -1)
	otherRoundPenalty.RoundID = uuid.New()

	standings := ComputeRoundStandings(round, []*DriverPointAdjustment{bonus, otherRoundPenalty}, drivers)

	if standings[0].DriverID != alice.ID || standings[0].Points != 25 {
		t.Errorf("expected Alice on 25, got %s on %.1f", standings[0].DriverName, standings[0].Points)
	}

	if standings[1].DriverID != bruno.ID || standings[1].Points != 19 {
		t.Errorf("expected Bruno on 19 after the bonus, got %s on %.1f", standings[1].DriverName, standings[1].Points)
	}
}
