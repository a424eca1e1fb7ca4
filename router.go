package seriesmanager

import (
	"io"
	"net/http"
	"os"

	"github.com/cj123/sessions"
	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/sirupsen/logrus"
)

var (
	logMultiWriter io.Writer = os.Stdout

	Debug = os.Getenv("DEBUG") == "true"
)

func InitLogging() {
	if !Debug {
		logrus.SetLevel(logrus.InfoLevel)
	} else {
		logrus.SetLevel(logrus.DebugLevel)
	}

	logFile, err := os.OpenFile("series-manager.log", os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0666)

	if err == nil {
		logMultiWriter = io.MultiWriter(os.Stdout, logFile)
	} else {
		logrus.WithError(err).Errorf("Could not create series manager log file")
		logMultiWriter = os.Stdout
	}

	logrus.SetOutput(logMultiWriter)
}

func Router(
	accountHandler *AccountHandler,
	auditLogHandler *AuditLogHandler,
	calendarHandler *CalendarHandler,
	championshipsHandler *ChampionshipsHandler,
	driversHandler *DriversHandler,
	healthCheck *HealthCheck,
	roundsHandler *RoundsHandler,
	tracksHandler *TracksHandler,
) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(panicHandler)

	r.Post("/login", accountHandler.login)
	r.Post("/logout", accountHandler.logout)
	r.Handle("/metrics", prometheusMonitoringHandler())
	r.Handle("/healthcheck", healthCheck)

	if Debug {
		r.Mount("/debug/", middleware.Profiler())
	}

	// public reads
	r.Group(func(r chi.Router) {
		r.Get("/drivers", driversHandler.list)
		r.Get("/drivers/{driverID}", driversHandler.view)

		r.Get("/tracks", tracksHandler.list)
		r.Get("/tracks/{trackID}", tracksHandler.view)

		r.Get("/championships", championshipsHandler.list)
		r.Get("/championships/{championshipID}", championshipsHandler.view)
		r.Get("/championships/{championshipID}/standings", championshipsHandler.standings)

		r.Get("/rounds", roundsHandler.list)
		r.Get("/rounds/{roundID}", roundsHandler.view)
		r.Get("/rounds/{roundID}/standings", roundsHandler.standings)

		r.Get("/point-adjustments", championshipsHandler.listPointAdjustments)

		r.Get("/calendar.ics", calendarHandler.allRoundsICal)
	})

	// admins
	r.Group(func(r chi.Router) {
		r.Use(accountHandler.AdminAccessMiddleware)
		r.Use(auditLogHandler.Middleware)

		r.Post("/drivers", driversHandler.create)
		r.Put("/drivers/{driverID}", driversHandler.update)
		r.Delete("/drivers/{driverID}", driversHandler.delete)

		r.Post("/tracks", tracksHandler.create)
		r.Put("/tracks/{trackID}", tracksHandler.update)
		r.Delete("/tracks/{trackID}", tracksHandler.delete)

		r.Post("/championships", championshipsHandler.create)
		r.Put("/championships/{championshipID}", championshipsHandler.update)
		r.Delete("/championships/{championshipID}", championshipsHandler.delete)
		r.Post("/championships/{championshipID}/standings/reorder", championshipsHandler.reorderStandings)
		r.Post("/championships/{championshipID}/standings/reorder/undo", championshipsHandler.undoReorderStandings)

		r.Post("/rounds", roundsHandler.create)
		r.Put("/rounds/{roundID}", roundsHandler.update)
		r.Delete("/rounds/{roundID}", roundsHandler.delete)
		r.Post("/rounds/{roundID}/setup", roundsHandler.setup)

		r.Put("/sessions/{sessionID}/results", roundsHandler.submitSessionResults)
		r.Post("/sessions/{sessionID}/regenerate", roundsHandler.regenerateFinalQualifying)

		r.Post("/point-adjustments", championshipsHandler.createPointAdjustment)
		r.Delete("/point-adjustments/{adjustmentID}", championshipsHandler.deletePointAdjustment)

		r.Get("/audit-logs", auditLogHandler.list)

		r.Get("/accounts", accountHandler.listAccounts)
		r.Post("/accounts", accountHandler.createAccount)
		r.Post("/accounts/{accountID}/reset-password", accountHandler.resetPassword)
		r.Delete("/accounts/{accountID}", accountHandler.deleteAccount)
	})

	// any logged in account can set its own password
	r.Group(func(r chi.Router) {
		r.Use(func(next http.Handler) http.Handler {
			return accountHandler.MustLoginMiddleware(GroupRead, next)
		})

		r.Post("/accounts/new-password", accountHandler.newPassword)
	})

	return prometheusMonitoringWrapper(r)
}

var sessionsStore sessions.Store

func getSession(r *http.Request) *sessions.Session {
	session, _ := sessionsStore.Get(r, "seriesmanager")

	return session
}
