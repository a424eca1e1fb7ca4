package seriesmanager

import (
	"encoding/json"
	"net/http"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// A ValidationError describes a request the server understood but the
// domain rules reject. Handlers map it to a 400.
type ValidationError string

func (e ValidationError) Error() string {
	return string(e)
}

type Resolver struct {
	store Store

	driverManager       *DriverManager
	trackManager        *TrackManager
	roundManager        *RoundManager
	championshipManager *ChampionshipManager
	accountManager      *AccountManager

	// handlers
	baseHandler          *BaseHandler
	driversHandler       *DriversHandler
	tracksHandler        *TracksHandler
	roundsHandler        *RoundsHandler
	championshipsHandler *ChampionshipsHandler
	accountHandler       *AccountHandler
	auditLogHandler      *AuditLogHandler
	calendarHandler      *CalendarHandler
	healthCheck          *HealthCheck
}

func NewResolver(store Store) *Resolver {
	return &Resolver{
		store: store,
	}
}

func (r *Resolver) ResolveStore() Store {
	return r.store
}

func (r *Resolver) resolveDriverManager() *DriverManager {
	if r.driverManager != nil {
		return r.driverManager
	}

	r.driverManager = NewDriverManager(r.store)

	return r.driverManager
}

func (r *Resolver) resolveTrackManager() *TrackManager {
	if r.trackManager != nil {
		return r.trackManager
	}

	r.trackManager = NewTrackManager(r.store)

	return r.trackManager
}

func (r *Resolver) resolveRoundManager() *RoundManager {
	if r.roundManager != nil {
		return r.roundManager
	}

	r.roundManager = NewRoundManager(r.store)

	return r.roundManager
}

func (r *Resolver) resolveChampionshipManager() *ChampionshipManager {
	if r.championshipManager != nil {
		return r.championshipManager
	}

	r.championshipManager = NewChampionshipManager(r.store)

	return r.championshipManager
}

func (r *Resolver) resolveAccountManager() *AccountManager {
	if r.accountManager != nil {
		return r.accountManager
	}

	r.accountManager = NewAccountManager(r.store, NewMemoryLoginThrottle())

	return r.accountManager
}

func (r *Resolver) resolveBaseHandler() *BaseHandler {
	if r.baseHandler != nil {
		return r.baseHandler
	}

	r.baseHandler = NewBaseHandler()

	return r.baseHandler
}

func (r *Resolver) resolveDriversHandler() *DriversHandler {
	if r.driversHandler != nil {
		return r.driversHandler
	}

	r.driversHandler = NewDriversHandler(r.resolveBaseHandler(), r.resolveDriverManager())

	return r.driversHandler
}

func (r *Resolver) resolveTracksHandler() *TracksHandler {
	if r.tracksHandler != nil {
		return r.tracksHandler
	}

	r.tracksHandler = NewTracksHandler(r.resolveBaseHandler(), r.resolveTrackManager())

	return r.tracksHandler
}

func (r *Resolver) resolveRoundsHandler() *RoundsHandler {
	if r.roundsHandler != nil {
		return r.roundsHandler
	}

	r.roundsHandler = NewRoundsHandler(r.resolveBaseHandler(), r.resolveRoundManager())

	return r.roundsHandler
}

func (r *Resolver) resolveChampionshipsHandler() *ChampionshipsHandler {
	if r.championshipsHandler != nil {
		return r.championshipsHandler
	}

	r.championshipsHandler = NewChampionshipsHandler(r.resolveBaseHandler(), r.resolveChampionshipManager())

	return r.championshipsHandler
}

func (r *Resolver) resolveAccountHandler() *AccountHandler {
	if r.accountHandler != nil {
		return r.accountHandler
	}

	r.accountHandler = NewAccountHandler(r.resolveBaseHandler(), r.store, r.resolveAccountManager())

	return r.accountHandler
}

func (r *Resolver) resolveAuditLogHandler() *AuditLogHandler {
	if r.auditLogHandler != nil {
		return r.auditLogHandler
	}

	r.auditLogHandler = NewAuditLogHandler(r.resolveBaseHandler(), r.store)

	return r.auditLogHandler
}

func (r *Resolver) resolveCalendarHandler() *CalendarHandler {
	if r.calendarHandler != nil {
		return r.calendarHandler
	}

	r.calendarHandler = NewCalendarHandler(r.resolveBaseHandler(), r.store)

	return r.calendarHandler
}

func (r *Resolver) resolveHealthCheck() *HealthCheck {
	if r.healthCheck != nil {
		return r.healthCheck
	}

	r.healthCheck = NewHealthCheck(r.store)

	return r.healthCheck
}

func (r *Resolver) ResolveRouter() http.Handler {
	return Router(
		r.resolveAccountHandler(),
		r.resolveAuditLogHandler(),
		r.resolveCalendarHandler(),
		r.resolveChampionshipsHandler(),
		r.resolveDriversHandler(),
		r.resolveHealthCheck(),
		r.resolveRoundsHandler(),
		r.resolveTracksHandler(),
	)
}

// BaseHandler carries the response helpers every handler shares.
type BaseHandler struct{}

func NewBaseHandler() *BaseHandler {
	return &BaseHandler{}
}

func (bh *BaseHandler) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if data == nil {
		return
	}

	if err := json.NewEncoder(w).Encode(data); err != nil {
		logrus.WithError(err).Error("Could not encode response")
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

// respondError maps domain errors onto HTTP statuses. Not found
// sentinels become 404s, validation and precondition failures become
// 400s, anything else is logged and reported as a generic 500 so
// internals never leak to the client.
func (bh *BaseHandler) respondError(w http.ResponseWriter, r *http.Request, err error) {
	cause := errors.Cause(err)

	switch cause {
	case ErrDriverNotFound, ErrTrackNotFound, ErrChampionshipNotFound,
		ErrRoundNotFound, ErrSessionNotFound, ErrPointAdjustmentNotFound,
		ErrAccountNotFound:

		bh.respondJSON(w, http.StatusNotFound, errorResponse{Error: cause.Error()})
		return
	case ErrRoundAlreadySetUp, ErrRoundHasNoChampionship, ErrRoundHasNoDrivers,
		ErrRoundHasNoGroups, ErrNotEnoughKarts:

		bh.respondJSON(w, http.StatusBadRequest, errorResponse{Error: cause.Error()})
		return
	}

	if validationErr, ok := cause.(ValidationError); ok {
		bh.respondJSON(w, http.StatusBadRequest, errorResponse{Error: validationErr.Error()})
		return
	}

	logrus.WithError(err).Errorf("Request to %s failed", r.URL.Path)

	bh.respondJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
}

func (bh *BaseHandler) decodeBody(r *http.Request, out interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(out); err != nil {
		return ValidationError("request body is not valid JSON")
	}

	return nil
}
