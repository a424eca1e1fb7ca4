package seriesmanager

import (
	"net/http"

	"github.com/go-chi/chi"
)

type TracksHandler struct {
	*BaseHandler

	trackManager *TrackManager
}

func NewTracksHandler(baseHandler *BaseHandler, trackManager *TrackManager) *TracksHandler {
	return &TracksHandler{
		BaseHandler:  baseHandler,
		trackManager: trackManager,
	}
}

func (th *TracksHandler) list(w http.ResponseWriter, r *http.Request) {
	tracks, err := th.trackManager.ListTracks()

	if err != nil {
		th.respondError(w, r, err)
		return
	}

	th.respondJSON(w, http.StatusOK, tracks)
}

func (th *TracksHandler) view(w http.ResponseWriter, r *http.Request) {
	track, err := th.trackManager.FindTrackByID(chi.URLParam(r, "trackID"))

	if err != nil {
		th.respondError(w, r, err)
		return
	}

	th.respondJSON(w, http.StatusOK, track)
}

type trackRequest struct {
	Name         string `json:"name"`
	City         string `json:"city"`
	Country      string `json:"country"`
	LengthMeters int    `json:"lengthMeters"`
}

func (req *trackRequest) validate() error {
	if req.Name == "" {
		return ValidationError("a track needs a name")
	}

	return nil
}

func (th *TracksHandler) create(w http.ResponseWriter, r *http.Request) {
	var req trackRequest

	if err := th.decodeBody(r, &req); err != nil {
		th.respondError(w, r, err)
		return
	}

	if err := req.validate(); err != nil {
		th.respondError(w, r, err)
		return
	}

	track := NewTrack()
	track.Name = req.Name
	track.City = req.City
	track.Country = req.Country
	track.LengthMeters = req.LengthMeters

	if err := th.trackManager.UpsertTrack(track); err != nil {
		th.respondError(w, r, err)
		return
	}

	th.respondJSON(w, http.StatusCreated, track)
}

func (th *TracksHandler) update(w http.ResponseWriter, r *http.Request) {
	track, err := th.trackManager.FindTrackByID(chi.URLParam(r, "trackID"))

	if err != nil {
		th.respondError(w, r, err)
		return
	}

	var req trackRequest

	if err := th.decodeBody(r, &req); err != nil {
		th.respondError(w, r, err)
		return
	}

	if err := req.validate(); err != nil {
		th.respondError(w, r, err)
		return
	}

	track.Name = req.Name
	track.City = req.City
	track.Country = req.Country
	track.LengthMeters = req.LengthMeters

	if err := th.trackManager.UpsertTrack(track); err != nil {
		th.respondError(w, r, err)
		return
	}

	th.respondJSON(w, http.StatusOK, track)
}

func (th *TracksHandler) delete(w http.ResponseWriter, r *http.Request) {
	if err := th.trackManager.DeleteTrack(chi.URLParam(r, "trackID")); err != nil {
		th.respondError(w, r, err)
		return
	}

	th.respondJSON(w, http.StatusNoContent, nil)
}
