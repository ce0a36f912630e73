// Package keepalive decides when the next ping is due.
package keepalive

import (
	"time"

	"github.com/atomicstack/portal-keepalive/internal/session"
)

// DefaultInterval is the spacing between ping attempts.
const DefaultInterval = 50 * time.Second

// Scheduler applies a fixed interval with no backoff: failures are retried
// on the same cadence as successes.
type Scheduler struct {
	Interval time.Duration
}

// New returns a scheduler; non-positive intervals use DefaultInterval.
func New(interval time.Duration) Scheduler {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return Scheduler{Interval: interval}
}

// Due reports whether a ping should be issued at now.
func (s Scheduler) Due(now time.Time, sess *session.Session) bool {
	if !s.eligible(sess) {
		return false
	}
	return now.Sub(sess.LastPingAttemptAt) >= s.Interval
}

// NextAt returns when the next ping becomes due, or false when none will be.
func (s Scheduler) NextAt(sess *session.Session) (time.Time, bool) {
	if !s.eligible(sess) {
		return time.Time{}, false
	}
	return sess.LastPingAttemptAt.Add(s.Interval), true
}

func (s Scheduler) eligible(sess *session.Session) bool {
	if sess == nil {
		return false
	}
	if sess.State == session.Uninitialized || !sess.HasToken() || sess.Unavailable {
		return false
	}
	return !sess.LastPingAttemptAt.IsZero()
}
