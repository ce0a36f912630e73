package session

import (
	"context"
	"time"
)

// Machine runs transitions synchronously against an Invoker. The UI drives
// the same Begin/Apply steps asynchronously.
type Machine struct {
	Session *Session
	invoker Invoker
	now     func() time.Time
}

// NewMachine wraps s. A nil clock uses time.Now.
func NewMachine(s *Session, invoker Invoker, now func() time.Time) *Machine {
	if now == nil {
		now = time.Now
	}
	return &Machine{Session: s, invoker: invoker, now: now}
}

func (m *Machine) Login(ctx context.Context, username, password string) {
	req := BeginLogin(m.Session, username, password, m.now())
	res := m.invoker.Invoke(ctx, req)
	ApplyLogin(m.Session, res, m.now())
}

// Ping is a no-op without a token.
func (m *Machine) Ping(ctx context.Context) {
	req, ok := BeginPing(m.Session, m.now())
	if !ok {
		return
	}
	res := m.invoker.Invoke(ctx, req)
	ApplyPing(m.Session, res, m.now())
}

func (m *Machine) Reconnect(ctx context.Context) {
	req := BeginReconnect(m.Session, m.now())
	res := m.invoker.Invoke(ctx, req)
	ApplyLogin(m.Session, res, m.now())
}

// Logout is best effort and reports whether a request was sent.
func (m *Machine) Logout(ctx context.Context) bool {
	req, ok := BeginLogout(m.Session)
	if !ok {
		return false
	}
	ApplyLogout(m.Session, m.invoker.Invoke(ctx, req))
	return true
}
