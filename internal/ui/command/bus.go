package command

import (
	"context"
	"fmt"

	"github.com/atomicstack/portal-keepalive/internal/backend"
	"github.com/atomicstack/portal-keepalive/internal/logging/events"
	"github.com/atomicstack/portal-keepalive/internal/session"
	tea "github.com/charmbracelet/bubbletea"
)

// Kind says which session transition a backend result belongs to.
type Kind int

const (
	KindLogin Kind = iota
	KindReconnect
	KindPing
	KindLogout
)

func (k Kind) String() string {
	switch k {
	case KindLogin:
		return "login"
	case KindReconnect:
		return "reconnect"
	case KindPing:
		return "ping"
	case KindLogout:
		return "logout"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Call is an in-flight backend invocation.
type Call struct {
	ID     string
	Kind   Kind
	cancel context.CancelFunc
}

// Cancel abandons the call; its result will still arrive and must be
// discarded by ID.
func (c *Call) Cancel() {
	if c == nil || c.cancel == nil {
		return
	}
	events.Command.Cancel(c.ID, c.Kind.String())
	c.cancel()
}

// ResultMsg carries a finished call back into the update loop.
type ResultMsg struct {
	ID     string
	Kind   Kind
	Result backend.Result
}

// Bus runs backend requests as Bubble Tea commands.
type Bus struct {
	invoker session.Invoker
}

// New initialises a command bus over invoker.
func New(invoker session.Invoker) *Bus {
	return &Bus{invoker: invoker}
}

// Execute wraps req into a command while emitting trace logs. The returned
// Call cancels the request's context.
func (b *Bus) Execute(kind Kind, req backend.Request) (*Call, tea.Cmd) {
	ctx, cancel := context.WithCancel(context.Background())
	call := &Call{ID: req.ID, Kind: kind, cancel: cancel}
	events.Command.Queue(req.ID, kind.String())
	invoker := b.invoker
	return call, func() tea.Msg {
		defer cancel()
		var res backend.Result
		if invoker == nil {
			res = backend.Failed(req, fmt.Errorf("%w: no backend client", backend.ErrUnavailable))
		} else {
			res = invoker.Invoke(ctx, req)
		}
		events.Command.Result(req.ID, kind.String(), res.OK)
		return ResultMsg{ID: req.ID, Kind: kind, Result: res}
	}
}
