package seriesmanager

import (
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// ChampionshipManager handles championship CRUD, standings and the
// standings reorder overrides.
type ChampionshipManager struct {
	store Store
}

func NewChampionshipManager(store Store) *ChampionshipManager {
	return &ChampionshipManager{store: store}
}

func (cm *ChampionshipManager) ListChampionships() ([]*Championship, error) {
	return cm.store.ListChampionships()
}

func (cm *ChampionshipManager) LoadChampionship(id string) (*Championship, error) {
	return cm.store.LoadChampionship(id)
}

func (cm *ChampionshipManager) UpsertChampionship(championship *Championship) error {
	for _, driverID := range championship.Drivers {
		if _, err := cm.store.FindDriverByID(driverID.String()); err != nil {
			return err
		}
	}

	return cm.store.UpsertChampionship(championship)
}

func (cm *ChampionshipManager) DeleteChampionship(id string) error {
	return cm.store.DeleteChampionship(id)
}

// ChampionshipStandings computes the championship's current standings
// from every round's results, the championship-scoped point adjustments
// and any reorder overrides.
func (cm *ChampionshipManager) ChampionshipStandings(id string) ([]*Standing, error) {
	championship, err := cm.store.LoadChampionship(id)

	if err != nil {
		return nil, err
	}

	rounds, err := cm.store.ListRoundsForChampionship(id)

	if err != nil {
		return nil, err
	}

	adjustments, err := cm.store.ListPointAdjustments()

	if err != nil {
		return nil, err
	}

	drivers, err := cm.store.ListDrivers()

	if err != nil {
		return nil, err
	}

	return ComputeChampionshipStandings(championship, rounds, adjustments, drivers), nil
}

// ReorderStandings stores an explicit order for a set of tied drivers.
// The submitted tie key is checked against freshly computed standings,
// so a reorder made against a stale table is rejected rather than
// silently applied to the wrong drivers.
func (cm *ChampionshipManager) ReorderStandings(championshipID, tieKey string, orderedDriverIDs []uuid.UUID) error {
	championship, err := cm.store.LoadChampionship(championshipID)

	if err != nil {
		return err
	}

	standings, err := cm.ChampionshipStandings(championshipID)

	if err != nil {
		return err
	}

	if err := ValidateStandingsReorder(standings, tieKey, orderedDriverIDs); err != nil {
		return err
	}

	championship.SetOverride(tieKey, orderedDriverIDs)

	if err := cm.store.UpsertChampionship(championship); err != nil {
		return err
	}

	logrus.Infof("Standings reorder stored for championship %s, tie key %q", championship.Name, tieKey)

	return nil
}

// UndoReorder removes the override for a tie key, reverting its drivers
// to name ordering.
func (cm *ChampionshipManager) UndoReorder(championshipID, tieKey string) error {
	championship, err := cm.store.LoadChampionship(championshipID)

	if err != nil {
		return err
	}

	championship.RemoveOverride(tieKey)

	return cm.store.UpsertChampionship(championship)
}

// CreatePointAdjustment validates and stores a manual one point bonus or
// penalty, scoped to exactly one of a championship or a round.
func (cm *ChampionshipManager) CreatePointAdjustment(driverID, championshipID, roundID string, delta int) (*DriverPointAdjustment, error) {
	if delta != 1 && delta != -1 {
		return nil, ValidationError("adjustment delta must be +1 or -1")
	}

	if (championshipID == "") == (roundID == "") {
		return nil, ValidationError("an adjustment must target exactly one of a championship or a round")
	}

	driver, err := cm.store.FindDriverByID(driverID)

	if err != nil {
		return nil, err
	}

	adjustment := NewDriverPointAdjustment(driver.ID, delta)

	if championshipID != "" {
		championship, err := cm.store.LoadChampionship(championshipID)

		if err != nil {
			return nil, err
		}

		adjustment.ChampionshipID = championship.ID
	} else {
		round, err := cm.store.LoadRound(roundID)

		if err != nil {
			return nil, err
		}

		adjustment.RoundID = round.ID
	}

	if err := cm.store.UpsertPointAdjustment(adjustment); err != nil {
		return nil, err
	}

	logrus.Infof("Point adjustment of %+d recorded for driver %s", delta, driver.FullName())

	return adjustment, nil
}

func (cm *ChampionshipManager) ListPointAdjustments() ([]*DriverPointAdjustment, error) {
	return cm.store.ListPointAdjustments()
}

func (cm *ChampionshipManager) DeletePointAdjustment(id string) error {
	return cm.store.DeletePointAdjustment(id)
}
