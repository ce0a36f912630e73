package keepalive

import (
	"testing"
	"time"

	"github.com/atomicstack/portal-keepalive/internal/session"
)

func TestDueAtInterval(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	sched := New(50 * time.Second)
	cases := []struct {
		ago  time.Duration
		want bool
	}{
		{49 * time.Second, false},
		{50 * time.Second, true},
		{51 * time.Second, true},
	}
	for _, tc := range cases {
		sess := &session.Session{State: session.Connected, Token: "tok", LastPingAttemptAt: now.Add(-tc.ago)}
		if got := sched.Due(now, sess); got != tc.want {
			t.Fatalf("ago=%s: expected due=%v, got %v", tc.ago, tc.want, got)
		}
	}
}

func TestDueIgnoresOutcome(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	sched := New(50 * time.Second)
	sess := &session.Session{State: session.Disconnected, Token: "tok", LastPingAttemptAt: now.Add(-50 * time.Second), LastError: "down"}
	if !sched.Due(now, sess) {
		t.Fatalf("expected failed sessions to keep the same cadence")
	}
}

func TestNotDueWithoutPrerequisites(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	old := now.Add(-time.Hour)
	sched := New(50 * time.Second)
	cases := map[string]*session.Session{
		"nil":           nil,
		"uninitialized": {State: session.Uninitialized, Token: "tok", LastPingAttemptAt: old},
		"no token":      {State: session.Disconnected, LastPingAttemptAt: old},
		"no attempt":    {State: session.Connected, Token: "tok"},
		"unavailable":   {State: session.Connected, Token: "tok", LastPingAttemptAt: old, Unavailable: true},
	}
	for name, sess := range cases {
		if sched.Due(now, sess) {
			t.Fatalf("%s: expected not due", name)
		}
		if _, ok := sched.NextAt(sess); ok {
			t.Fatalf("%s: expected no next ping", name)
		}
	}
}

func TestNextAt(t *testing.T) {
	last := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	sess := &session.Session{State: session.Connected, Token: "tok", LastPingAttemptAt: last}
	next, ok := New(0).NextAt(sess)
	if !ok || !next.Equal(last.Add(DefaultInterval)) {
		t.Fatalf("expected next ping at %v, got %v (%v)", last.Add(DefaultInterval), next, ok)
	}
}
