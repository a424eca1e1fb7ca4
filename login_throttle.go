package seriesmanager

import (
	"sync"
	"time"

	"github.com/pkg/errors"
)

var ErrTooManyLoginAttempts = errors.New("seriesmanager: too many failed login attempts, try again later")

// A LoginThrottle limits how fast failed logins for one username can be
// retried.
type LoginThrottle interface {
	// Allow returns ErrTooManyLoginAttempts if the username is locked out.
	Allow(username string) error
	// Failure records a failed login attempt.
	Failure(username string)
	// Success clears the username's failure history.
	Success(username string)
}

const (
	loginMaxFailures  = 5
	loginFailureDecay = 15 * time.Minute
)

type loginFailures struct {
	count       int
	lastFailure time.Time
}

// MemoryLoginThrottle tracks login failures in memory. Failures expire
// after loginFailureDecay, so a lockout lifts on its own.
type MemoryLoginThrottle struct {
	mutex    sync.Mutex
	failures map[string]*loginFailures

	now func() time.Time
}

func NewMemoryLoginThrottle() *MemoryLoginThrottle {
	return &MemoryLoginThrottle{
		failures: make(map[string]*loginFailures),
		now:      time.Now,
	}
}

func (t *MemoryLoginThrottle) Allow(username string) error {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	failures, ok := t.failures[username]

	if !ok {
		return nil
	}

	if t.now().Sub(failures.lastFailure) > loginFailureDecay {
		delete(t.failures, username)
		return nil
	}

	if failures.count >= loginMaxFailures {
		return ErrTooManyLoginAttempts
	}

	return nil
}

func (t *MemoryLoginThrottle) Failure(username string) {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	failures, ok := t.failures[username]

	if !ok || t.now().Sub(failures.lastFailure) > loginFailureDecay {
		failures = &loginFailures{}
		t.failures[username] = failures
	}

	failures.count++
	failures.lastFailure = t.now()
}

func (t *MemoryLoginThrottle) Success(username string) {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	delete(t.failures, username)
}
