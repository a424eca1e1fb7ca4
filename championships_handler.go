package seriesmanager

import (
	"net/http"

	"github.com/go-chi/chi"
	"github.com/google/uuid"
)

type ChampionshipsHandler struct {
	*BaseHandler

	championshipManager *ChampionshipManager
}

func NewChampionshipsHandler(baseHandler *BaseHandler, championshipManager *ChampionshipManager) *ChampionshipsHandler {
	return &ChampionshipsHandler{
		BaseHandler:         baseHandler,
		championshipManager: championshipManager,
	}
}

func (ch *ChampionshipsHandler) list(w http.ResponseWriter, r *http.Request) {
	championships, err := ch.championshipManager.ListChampionships()

	if err != nil {
		ch.respondError(w, r, err)
		return
	}

	ch.respondJSON(w, http.StatusOK, championships)
}

func (ch *ChampionshipsHandler) view(w http.ResponseWriter, r *http.Request) {
	championship, err := ch.championshipManager.LoadChampionship(chi.URLParam(r, "championshipID"))

	if err != nil {
		ch.respondError(w, r, err)
		return
	}

	ch.respondJSON(w, http.StatusOK, championship)
}

type championshipRequest struct {
	Name    string      `json:"name"`
	Season  string      `json:"season"`
	Drivers []uuid.UUID `json:"drivers"`
}

func (req *championshipRequest) validate() error {
	if req.Name == "" {
		return ValidationError("a championship needs a name")
	}

	return nil
}

func (ch *ChampionshipsHandler) create(w http.ResponseWriter, r *http.Request) {
	var req championshipRequest

	if err := ch.decodeBody(r, &req); err != nil {
		ch.respondError(w, r, err)
		return
	}

	if err := req.validate(); err != nil {
		ch.respondError(w, r, err)
		return
	}

	championship := NewChampionship(req.Name)
	championship.Season = req.Season
	championship.Drivers = req.Drivers

	if err := ch.championshipManager.UpsertChampionship(championship); err != nil {
		ch.respondError(w, r, err)
		return
	}

	ch.respondJSON(w, http.StatusCreated, championship)
}

func (ch *ChampionshipsHandler) update(w http.ResponseWriter, r *http.Request) {
	championship, err := ch.championshipManager.LoadChampionship(chi.URLParam(r, "championshipID"))

	if err != nil {
		ch.respondError(w, r, err)
		return
	}

	var req championshipRequest

	if err := ch.decodeBody(r, &req); err != nil {
		ch.respondError(w, r, err)
		return
	}

	if err := req.validate(); err != nil {
		ch.respondError(w, r, err)
		return
	}

	championship.Name = req.Name
	championship.Season = req.Season
	championship.Drivers = req.Drivers

	if err := ch.championshipManager.UpsertChampionship(championship); err != nil {
		ch.respondError(w, r, err)
		return
	}

	ch.respondJSON(w, http.StatusOK, championship)
}

func (ch *ChampionshipsHandler) delete(w http.ResponseWriter, r *http.Request) {
	if err := ch.championshipManager.DeleteChampionship(chi.URLParam(r, "championshipID")); err != nil {
		ch.respondError(w, r, err)
		return
	}

	ch.respondJSON(w, http.StatusNoContent, nil)
}

func (ch *ChampionshipsHandler) standings(w http.ResponseWriter, r *http.Request) {
	standings, err := ch.championshipManager.ChampionshipStandings(chi.URLParam(r, "championshipID"))

	if err != nil {
		ch.respondError(w, r, err)
		return
	}

	ch.respondJSON(w, http.StatusOK, standings)
}

type reorderRequest struct {
	TieKey           string      `json:"tieKey"`
	OrderedDriverIDs []uuid.UUID `json:"orderedDriverIds"`
}

func (ch *ChampionshipsHandler) reorderStandings(w http.ResponseWriter, r *http.Request) {
	var req reorderRequest

	if err := ch.decodeBody(r, &req); err != nil {
		ch.respondError(w, r, err)
		return
	}

	championshipID := chi.URLParam(r, "championshipID")

	if err := ch.championshipManager.ReorderStandings(championshipID, req.TieKey, req.OrderedDriverIDs); err != nil {
		ch.respondError(w, r, err)
		return
	}

	standings, err := ch.championshipManager.ChampionshipStandings(championshipID)

	if err != nil {
		ch.respondError(w, r, err)
		return
	}

	ch.respondJSON(w, http.StatusOK, standings)
}

type undoReorderRequest struct {
	TieKey string `json:"tieKey"`
}

func (ch *ChampionshipsHandler) undoReorderStandings(w http.ResponseWriter, r *http.Request) {
	var req undoReorderRequest

	if err := ch.decodeBody(r, &req); err != nil {
		ch.respondError(w, r, err)
		return
	}

	championshipID := chi.URLParam(r, "championshipID")

	if err := ch.championshipManager.UndoReorder(championshipID, req.TieKey); err != nil {
		ch.respondError(w, r, err)
		return
	}

	standings, err := ch.championshipManager.ChampionshipStandings(championshipID)

	if err != nil {
		ch.respondError(w, r, err)
		return
	}

	ch.respondJSON(w, http.StatusOK, standings)
}

type pointAdjustmentRequest struct {
	DriverID       string `json:"driverId"`
	ChampionshipID string `json:"championshipId,omitempty"`
	RoundID        string `json:"roundId,omitempty"`
	Delta          int    `json:"delta"`
}

func (ch *ChampionshipsHandler) createPointAdjustment(w http.ResponseWriter, r *http.Request) {
	var req pointAdjustmentRequest

	if err := ch.decodeBody(r, &req); err != nil {
		ch.respondError(w, r, err)
		return
	}

	adjustment, err := ch.championshipManager.CreatePointAdjustment(req.DriverID, req.ChampionshipID, req.RoundID, req.Delta)

	if err != nil {
		ch.respondError(w, r, err)
		return
	}

	ch.respondJSON(w, http.StatusCreated, adjustment)
}

func (ch *ChampionshipsHandler) listPointAdjustments(w http.ResponseWriter, r *http.Request) {
	adjustments, err := ch.championshipManager.ListPointAdjustments()

	if err != nil {
		ch.respondError(w, r, err)
		return
	}

	ch.respondJSON(w, http.StatusOK, adjustments)
}

func (ch *ChampionshipsHandler) deletePointAdjustment(w http.ResponseWriter, r *http.Request) {
	if err := ch.championshipManager.DeletePointAdjustment(chi.URLParam(r, "adjustmentID")); err != nil {
		ch.respondError(w, r, err)
		return
	}

	ch.respondJSON(w, http.StatusNoContent, nil)
}
