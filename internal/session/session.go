// Package session owns the connection lifecycle: the Session record and the
// transitions that login, ping, reconnect and logout results drive.
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/atomicstack/portal-keepalive/internal/backend"
	"github.com/atomicstack/portal-keepalive/internal/logging/events"
)

// State is the connection lifecycle state.
type State int

const (
	Uninitialized State = iota
	Connecting
	Connected
	Disconnected
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Connecting:
		return "connecting"
	case Connected:
		return "connected"
	case Disconnected:
		return "disconnected"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Session is the single connection record. Zero times mean "never".
type Session struct {
	Username string
	Password string
	Token    string
	State    State

	LastLoginAt       time.Time
	LastPingAttemptAt time.Time
	LastPingSuccessAt time.Time
	LastError         string

	// Unavailable is set once the backend executable could not be started.
	Unavailable bool
}

// HasToken reports whether ping and logout have something to send.
func (s *Session) HasToken() bool {
	return s.Token != ""
}

// Invoker runs one backend request.
type Invoker interface {
	Invoke(ctx context.Context, req backend.Request) backend.Result
}

// InvokerFunc adapts a function to Invoker.
type InvokerFunc func(ctx context.Context, req backend.Request) backend.Result

func (f InvokerFunc) Invoke(ctx context.Context, req backend.Request) backend.Result {
	return f(ctx, req)
}

// BeginLogin moves to Connecting, remembers the credentials and returns the
// login request to run.
func BeginLogin(s *Session, username, password string, now time.Time) backend.Request {
	from := s.State
	s.Username = username
	s.Password = password
	s.Token = ""
	s.State = Connecting
	s.LastLoginAt = now
	events.Connection.Transition("login", from.String(), s.State.String(), "")
	return backend.LoginRequest(username, password)
}

// ApplyLogin folds a login result into the session.
func ApplyLogin(s *Session, res backend.Result, now time.Time) {
	from := s.State
	noteAvailability(s, res)
	if !res.OK {
		fail(s, res.Message())
		events.Connection.Transition("login.result", from.String(), s.State.String(), s.LastError)
		return
	}
	token, err := res.Token()
	if err != nil {
		fail(s, malformedLogin(res, err))
		events.Connection.Transition("login.result", from.String(), s.State.String(), s.LastError)
		return
	}
	s.Token = token
	s.State = Connected
	s.LastPingAttemptAt = laterOf(s.LastPingAttemptAt, now)
	s.LastPingSuccessAt = now
	s.LastError = ""
	events.Connection.Transition("login.result", from.String(), s.State.String(), "")
}

// BeginPing records the attempt time and returns the ping request. It
// returns false when there is no token to ping with.
func BeginPing(s *Session, now time.Time) (backend.Request, bool) {
	if !s.HasToken() {
		return backend.Request{}, false
	}
	s.LastPingAttemptAt = laterOf(s.LastPingAttemptAt, now)
	return backend.PingRequest(s.Username, s.Token), true
}

// ApplyPing folds a ping result into the session. A failed ping keeps the
// token so the operator decides whether to reconnect.
func ApplyPing(s *Session, res backend.Result, now time.Time) {
	from := s.State
	noteAvailability(s, res)
	if !res.OK {
		fail(s, res.Message())
		events.Connection.Transition("ping.result", from.String(), s.State.String(), s.LastError)
		return
	}
	s.State = Connected
	s.LastPingSuccessAt = now
	s.LastError = ""
	events.Connection.Transition("ping.result", from.String(), s.State.String(), "")
}

// BeginReconnect discards the token and starts a fresh login with the
// remembered credentials.
func BeginReconnect(s *Session, now time.Time) backend.Request {
	return BeginLogin(s, s.Username, s.Password, now)
}

// BeginLogout returns the logout request, or false without a token.
func BeginLogout(s *Session) (backend.Request, bool) {
	if !s.HasToken() {
		return backend.Request{}, false
	}
	return backend.LogoutRequest(s.Username, s.Token), true
}

// ApplyLogout records a logout outcome. It never changes the state: the
// process is about to exit either way.
func ApplyLogout(s *Session, res backend.Result) {
	noteAvailability(s, res)
	if !res.OK {
		events.Connection.Transition("logout.result", s.State.String(), s.State.String(), res.Message())
		return
	}
	events.Connection.Transition("logout.result", s.State.String(), s.State.String(), "")
}

// MarkUnavailable records a startup probe failure.
func MarkUnavailable(s *Session, err error) {
	if err == nil {
		return
	}
	s.Unavailable = true
	s.LastError = err.Error()
	events.Connection.Unavailable(err.Error())
}

func fail(s *Session, message string) {
	s.State = Disconnected
	s.LastError = message
}

func noteAvailability(s *Session, res backend.Result) {
	if res.Unavailable() {
		s.Unavailable = true
		events.Connection.Unavailable(res.Message())
		return
	}
	if res.Err == nil {
		s.Unavailable = false
	}
}

func malformedLogin(res backend.Result, err error) string {
	if errors.Is(err, backend.ErrMissingToken) && res.Output != "" {
		return fmt.Sprintf("%v: %s", err, res.Output)
	}
	return err.Error()
}

func laterOf(prev, next time.Time) time.Time {
	if next.Before(prev) {
		return prev
	}
	return next
}
