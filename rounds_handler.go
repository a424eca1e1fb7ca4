package seriesmanager

import (
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/google/uuid"
)

type RoundsHandler struct {
	*BaseHandler

	roundManager *RoundManager
}

func NewRoundsHandler(baseHandler *BaseHandler, roundManager *RoundManager) *RoundsHandler {
	return &RoundsHandler{
		BaseHandler:  baseHandler,
		roundManager: roundManager,
	}
}

// roundResponse wraps a Round with its derived status. Status never
// lives in the store; it is recomputed on every read.
type roundResponse struct {
	*Round

	Status RoundStatus `json:"Status"`
}

func newRoundResponse(round *Round) *roundResponse {
	return &roundResponse{
		Round:  round,
		Status: round.Status(time.Now().In(SeriesLocation())),
	}
}

func (rh *RoundsHandler) list(w http.ResponseWriter, r *http.Request) {
	rounds, err := rh.roundManager.ListRounds()

	if err != nil {
		rh.respondError(w, r, err)
		return
	}

	out := make([]*roundResponse, 0, len(rounds))

	for _, round := range rounds {
		out = append(out, newRoundResponse(round))
	}

	rh.respondJSON(w, http.StatusOK, out)
}

func (rh *RoundsHandler) view(w http.ResponseWriter, r *http.Request) {
	round, err := rh.roundManager.LoadRound(chi.URLParam(r, "roundID"))

	if err != nil {
		rh.respondError(w, r, err)
		return
	}

	rh.respondJSON(w, http.StatusOK, newRoundResponse(round))
}

type roundRequest struct {
	Name           string      `json:"name"`
	Date           time.Time   `json:"date"`
	TrackID        uuid.UUID   `json:"trackId"`
	ChampionshipID uuid.UUID   `json:"championshipId"`
	NumberOfGroups int         `json:"numberOfGroups"`
	AvailableKarts []int       `json:"availableKarts"`
	Drivers        []uuid.UUID `json:"drivers"`
}

func (req *roundRequest) validate() error {
	if req.Name == "" {
		return ValidationError("a round needs a name")
	}

	if req.Date.IsZero() {
		return ValidationError("a round needs a date")
	}

	seenKarts := make(map[int]bool)

	for _, kart := range req.AvailableKarts {
		if seenKarts[kart] {
			return ValidationError("kart numbers must be unique")
		}

		seenKarts[kart] = true
	}

	return nil
}

func (req *roundRequest) apply(round *Round) {
	round.Name = req.Name
	round.Date = req.Date
	round.TrackID = req.TrackID
	round.ChampionshipID = req.ChampionshipID
	round.NumberOfGroups = req.NumberOfGroups
	round.AvailableKarts = req.AvailableKarts
	round.Drivers = req.Drivers
}

func (rh *RoundsHandler) create(w http.ResponseWriter, r *http.Request) {
	var req roundRequest

	if err := rh.decodeBody(r, &req); err != nil {
		rh.respondError(w, r, err)
		return
	}

	if err := req.validate(); err != nil {
		rh.respondError(w, r, err)
		return
	}

	round := NewRound(req.Name, req.Date)
	req.apply(round)

	if err := rh.roundManager.UpsertRound(round); err != nil {
		rh.respondError(w, r, err)
		return
	}

	rh.respondJSON(w, http.StatusCreated, newRoundResponse(round))
}

func (rh *RoundsHandler) update(w http.ResponseWriter, r *http.Request) {
	round, err := rh.roundManager.LoadRound(chi.URLParam(r, "roundID"))

	if err != nil {
		rh.respondError(w, r, err)
		return
	}

	var req roundRequest

	if err := rh.decodeBody(r, &req); err != nil {
		rh.respondError(w, r, err)
		return
	}

	if err := req.validate(); err != nil {
		rh.respondError(w, r, err)
		return
	}

	if round.SetupCompleted {
		rh.respondError(w, r, ValidationError("a round cannot be edited once it is set up"))
		return
	}

	req.apply(round)

	if err := rh.roundManager.UpsertRound(round); err != nil {
		rh.respondError(w, r, err)
		return
	}

	rh.respondJSON(w, http.StatusOK, newRoundResponse(round))
}

func (rh *RoundsHandler) delete(w http.ResponseWriter, r *http.Request) {
	if err := rh.roundManager.DeleteRound(chi.URLParam(r, "roundID")); err != nil {
		rh.respondError(w, r, err)
		return
	}

	rh.respondJSON(w, http.StatusNoContent, nil)
}

func (rh *RoundsHandler) setup(w http.ResponseWriter, r *http.Request) {
	round, err := rh.roundManager.SetupRound(chi.URLParam(r, "roundID"))

	if err != nil {
		rh.respondError(w, r, err)
		return
	}

	rh.respondJSON(w, http.StatusOK, newRoundResponse(round))
}

func (rh *RoundsHandler) standings(w http.ResponseWriter, r *http.Request) {
	standings, err := rh.roundManager.RoundStandings(chi.URLParam(r, "roundID"))

	if err != nil {
		rh.respondError(w, r, err)
		return
	}

	rh.respondJSON(w, http.StatusOK, standings)
}

func (rh *RoundsHandler) submitSessionResults(w http.ResponseWriter, r *http.Request) {
	var submission ResultSubmission

	if err := rh.decodeBody(r, &submission); err != nil {
		rh.respondError(w, r, err)
		return
	}

	_, session, err := rh.roundManager.SubmitSessionResults(chi.URLParam(r, "sessionID"), &submission)

	if err != nil {
		rh.respondError(w, r, err)
		return
	}

	rh.respondJSON(w, http.StatusOK, session)
}

func (rh *RoundsHandler) regenerateFinalQualifying(w http.ResponseWriter, r *http.Request) {
	_, session, err := rh.roundManager.RegenerateFinalQualifying(chi.URLParam(r, "sessionID"))

	if err != nil {
		rh.respondError(w, r, err)
		return
	}

	rh.respondJSON(w, http.StatusOK, session)
}
