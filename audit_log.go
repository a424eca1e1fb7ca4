package seriesmanager

import (
	"net/http"
	"sort"
	"time"

	"github.com/sirupsen/logrus"
)

type AuditEntry struct {
	UserGroup Group
	Method    string
	Url       string
	User      string
	Time      time.Time
}

var ignoredURLS = [2]string{
	"/audit-logs",
	"/healthcheck",
}

type AuditLogHandler struct {
	*BaseHandler

	store Store
}

func NewAuditLogHandler(baseHandler *BaseHandler, store Store) *AuditLogHandler {
	return &AuditLogHandler{
		BaseHandler: baseHandler,
		store:       store,
	}
}

// Middleware records every admin mutation against the logged in account.
func (alh *AuditLogHandler) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		for _, url := range ignoredURLS {
			if url == r.URL.String() {
				next.ServeHTTP(w, r)
				return
			}
		}

		account := AccountFromRequest(r)

		if account == nil {
			next.ServeHTTP(w, r)
			return
		}

		entry := &AuditEntry{
			UserGroup: account.Group,
			Method:    r.Method,
			Url:       r.URL.String(),
			User:      account.Name,
			Time:      time.Now(),
		}

		if err := alh.store.AddAuditEntry(entry); err != nil {
			logrus.WithError(err).Error("Couldn't add audit entry for request")
		}

		next.ServeHTTP(w, r)
	})
}

func (alh *AuditLogHandler) list(w http.ResponseWriter, r *http.Request) {
	auditLogs, err := alh.store.GetAuditEntries()

	if err != nil && err != ErrValueNotSet {
		alh.respondError(w, r, err)
		return
	}

	// sort to newest first
	sort.Slice(auditLogs, func(i, j int) bool {
		return auditLogs[i].Time.After(auditLogs[j].Time)
	})

	alh.respondJSON(w, http.StatusOK, auditLogs)
}
