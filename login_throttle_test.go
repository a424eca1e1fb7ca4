package seriesmanager

import (
	"testing"
	"time"
)

func TestMemoryLoginThrottle(t *testing.T) {
	now := time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)

	throttle := NewMemoryLoginThrottle()
	throttle.now = func() time.Time { return now }

	t.Run("allows fresh usernames", func(t *testing.T) {
		if err := throttle.Allow("alice"); err != nil {
			t.Errorf("expected fresh username to be allowed, got: %s", err)
		}
	})

	t.Run("locks out after repeated failures", func(t *testing.T) {
		for i := 0; i < loginMaxFailures; i++ {
			if err := throttle.Allow("bruno"); err != nil {
				t.Fatalf("expected attempt %d to be allowed, got: %s", i+1, err)
			}

			throttle.Failure("bruno")
		}

		if err := throttle.Allow("bruno"); err != ErrTooManyLoginAttempts {
			t.Errorf("expected lockout, got: %v", err)
		}

		// other usernames are unaffected
		if err := throttle.Allow("carla"); err != nil {
			t.Errorf("expected other usernames to be allowed, got: %s", err)
		}
	})

	t.Run("lockout expires", func(t *testing.T) {
		now = now.Add(loginFailureDecay + time.Minute)

		if err := throttle.Allow("bruno"); err != nil {
			t.Errorf("expected lockout to have expired, got: %s", err)
		}
	})

	t.Run("success clears the failure count", func(t *testing.T) {
		throttle.Failure("dora")
		throttle.Failure("dora")
		throttle.Success("dora")

		for i := 0; i < loginMaxFailures-1; i++ {
			throttle.Failure("dora")
		}

		if err := throttle.Allow("dora"); err != nil {
			t.Errorf("expected username below the failure limit to be allowed, got: %s", err)
		}
	})
}
