package seriesmanager

import (
	"testing"

	"github.com/google/uuid"
)

func testRoundWithQualifyingResults(t *testing.T, driversPerGroup int) (*Round, map[string][]uuid.UUID) {
	t.Helper()

	round := testRoundWithDrivers(driversPerGroup*2, 2, driversPerGroup*2)

	if err := GenerateRoundSetup(round, NewSeededShuffler(3)); err != nil {
		t.Fatalf("could not set up round: %s", err)
	}

	driversByGroup := make(map[string][]uuid.UUID)

	for _, label := range round.GroupLabels() {
		for _, assignment := range round.AssignmentsForGroup(label) {
			driversByGroup[label] = append(driversByGroup[label], assignment.DriverID)
		}
	}

	return round, driversByGroup
}

func resultsForDrivers(drivers []uuid.UUID) []*SessionResult {
	var results []*SessionResult

	for i, driverID := range drivers {
		results = append(results, &SessionResult{
			DriverID: driverID,
			Position: i + 1,
		})
	}

	return results
}

func TestFinalQualifyingEligibility(t *testing.T) {
	t.Run("not ready until every group's heat has results", func(t *testing.T) {
		round, driversByGroup := testRoundWithQualifyingResults(t, 5)

		if _, ready := FinalQualifyingEligibility(round); ready {
			t.Error("expected no eligibility before any results")
		}

		round.QualifyingSessions()[0].Results = resultsForDrivers(driversByGroup["A"])

		if _, ready := FinalQualifyingEligibility(round); ready {
			t.Error("expected no eligibility while group B's heat is empty")
		}
	})

	t.Run("top three per group concatenated in group order", func(t *testing.T) {
		round, driversByGroup := testRoundWithQualifyingResults(t, 5)

		round.QualifyingSessions()[0].Results = resultsForDrivers(driversByGroup["A"])
		round.QualifyingSessions()[1].Results = resultsForDrivers(driversByGroup["B"])

		eligible, ready := FinalQualifyingEligibility(round)

		if !ready {
			t.Fatal("expected eligibility to be ready")
		}

		if len(eligible) != 6 {
			t.Fatalf("expected 6 final qualifying entrants, got %d", len(eligible))
		}

		for i := 0; i < 3; i++ {
			if eligible[i].Group != "A" || eligible[i].DriverID != driversByGroup["A"][i] {
				t.Errorf("entrant %d: expected group A driver %s, got %s (%s)", i, driversByGroup["A"][i], eligible[i].DriverID, eligible[i].Group)
			}

			if eligible[i+3].Group != "B" || eligible[i+3].DriverID != driversByGroup["B"][i] {
				t.Errorf("entrant %d: expected group B driver %s, got %s (%s)", i+3, driversByGroup["B"][i], eligible[i+3].DriverID, eligible[i+3].Group)
			}
		}
	})

	t.Run("small groups send everyone through", func(t *testing.T) {
		round, driversByGroup := testRoundWithQualifyingResults(t, 2)

		round.QualifyingSessions()[0].Results = resultsForDrivers(driversByGroup["A"])
		round.QualifyingSessions()[1].Results = resultsForDrivers(driversByGroup["B"])

		eligible, ready := FinalQualifyingEligibility(round)

		if !ready {
			t.Fatal("expected eligibility to be ready")
		}

		if len(eligible) != 4 {
			t.Errorf("expected all 4 drivers through, got %d", len(eligible))
		}
	})
}

func TestFinalRaceEligibility(t *testing.T) {
	round, driversByGroup := testRoundWithQualifyingResults(t, 5)

	if _, ready := FinalRaceEligibility(round); ready {
		t.Error("expected no final race grid before final qualifying results")
	}

	finalQualifying := round.RoundWideSessionOfType(SessionTypeFinalQualifying)

	// group B's fastest takes pole, then group A's top two
	finalQualifying.Results = []*SessionResult{
		{DriverID: driversByGroup["B"][0], Position: 1},
		{DriverID: driversByGroup["A"][0], Position: 2},
		{DriverID: driversByGroup["A"][1], Position: 3},
	}

	grid, ready := FinalRaceEligibility(round)

	if !ready {
		t.Fatal("expected final race grid to be ready")
	}

	if len(grid) != 3 {
		t.Fatalf("expected 3 drivers on the grid, got %d", len(grid))
	}

	if grid[0].DriverID != driversByGroup["B"][0] || grid[0].Group != "B" {
		t.Errorf("expected pole for group B's fastest, got %s (%s)", grid[0].DriverID, grid[0].Group)
	}

	if grid[1].Group != "A" || grid[2].Group != "A" {
		t.Error("expected grid annotations to carry the drivers' assigned groups")
	}
}

func TestResolveFinalQualifyingStatus(t *testing.T) {
	round, driversByGroup := testRoundWithQualifyingResults(t, 5)

	if status := ResolveFinalQualifyingStatus(round); status != SessionStatusPending {
		t.Errorf("expected pending before heats complete, got %s", status)
	}

	round.QualifyingSessions()[0].Results = resultsForDrivers(driversByGroup["A"])
	round.QualifyingSessions()[1].Results = resultsForDrivers(driversByGroup["B"])

	if status := ResolveFinalQualifyingStatus(round); status != SessionStatusReady {
		t.Errorf("expected ready once every heat has results, got %s", status)
	}

	round.RoundWideSessionOfType(SessionTypeFinalQualifying).Results = []*SessionResult{
		{DriverID: driversByGroup["A"][0], Position: 1},
	}

	if status := ResolveFinalQualifyingStatus(round); status != SessionStatusCompleted {
		t.Errorf("expected completed once the final has results, got %s", status)
	}
}
