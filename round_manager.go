package seriesmanager

import (
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// RoundManager handles the round lifecycle: creation, setup, result
// submission and the final qualifying chain.
type RoundManager struct {
	store    Store
	shuffler Shuffler
}

func NewRoundManager(store Store) *RoundManager {
	return &RoundManager{
		store:    store,
		shuffler: NewShuffler(),
	}
}

func (rm *RoundManager) ListRounds() ([]*Round, error) {
	return rm.store.ListRounds()
}

func (rm *RoundManager) LoadRound(id string) (*Round, error) {
	return rm.store.LoadRound(id)
}

func (rm *RoundManager) UpsertRound(round *Round) error {
	if round.HasChampionship() {
		if _, err := rm.store.LoadChampionship(round.ChampionshipID.String()); err != nil {
			return err
		}
	}

	if round.TrackID != uuid.Nil {
		if _, err := rm.store.FindTrackByID(round.TrackID.String()); err != nil {
			return err
		}
	}

	return rm.store.UpsertRound(round)
}

func (rm *RoundManager) DeleteRound(id string) error {
	return rm.store.DeleteRound(id)
}

// SetupRound generates groups, kart assignments and the session skeleton
// for a round, then persists the whole round in one write so the setup
// either fully applies or not at all.
func (rm *RoundManager) SetupRound(id string) (*Round, error) {
	round, err := rm.store.LoadRound(id)

	if err != nil {
		return nil, err
	}

	if err := GenerateRoundSetup(round, rm.shuffler); err != nil {
		return nil, err
	}

	if err := rm.store.UpsertRound(round); err != nil {
		return nil, err
	}

	logrus.Infof("Round %s (%s) set up: %d drivers in %d groups", round.Name, round.ID, len(round.Drivers), round.NumberOfGroups)

	return round, nil
}

// SubmitSessionResults validates and scores an uploaded result sheet for
// one session, replacing any results the session already had. The parent
// round is persisted in one write.
func (rm *RoundManager) SubmitSessionResults(sessionID string, submission *ResultSubmission) (*Round, *Session, error) {
	round, err := rm.store.LoadRoundBySessionID(sessionID)

	if err != nil {
		return nil, nil, err
	}

	session, err := round.SessionByID(sessionID)

	if err != nil {
		return nil, nil, err
	}

	results, multiplier, err := ValidateAndScoreResults(round, session, submission.PointsMultiplier, submission.Results)

	if err != nil {
		return nil, nil, err
	}

	session.Results = results
	session.PointsMultiplier = multiplier
	session.Status = SessionStatusCompleted

	if err := rm.store.UpsertRound(round); err != nil {
		return nil, nil, err
	}

	logrus.Infof("Results recorded for session %s (%s), %d drivers", session.Name, session.ID, len(results))

	return round, session, nil
}

// RegenerateFinalQualifying recomputes the final qualifying session's
// status from the qualifying heats. A ready chain clears any stale
// results; an unready one leaves them untouched. Only final qualifying
// sessions can be regenerated.
func (rm *RoundManager) RegenerateFinalQualifying(sessionID string) (*Round, *Session, error) {
	round, err := rm.store.LoadRoundBySessionID(sessionID)

	if err != nil {
		return nil, nil, err
	}

	session, err := round.SessionByID(sessionID)

	if err != nil {
		return nil, nil, err
	}

	if session.Type != SessionTypeFinalQualifying {
		return nil, nil, ValidationError("only final qualifying sessions can be regenerated")
	}

	if _, ready := FinalQualifyingEligibility(round); ready {
		session.Results = nil
		session.Status = SessionStatusReady
	} else {
		session.Status = SessionStatusPending
	}

	if err := rm.store.UpsertRound(round); err != nil {
		return nil, nil, err
	}

	logrus.Infof("Final qualifying for round %s regenerated, status now %s", round.Name, session.Status)

	return round, session, nil
}

// RoundStandings computes the standings for a single round from its
// results and any round-scoped point adjustments.
func (rm *RoundManager) RoundStandings(id string) ([]*Standing, error) {
	round, err := rm.store.LoadRound(id)

	if err != nil {
		return nil, err
	}

	adjustments, err := rm.store.ListPointAdjustments()

	if err != nil {
		return nil, err
	}

	drivers, err := rm.store.ListDrivers()

	if err != nil {
		return nil, err
	}

	return ComputeRoundStandings(round, adjustments, drivers), nil
}
