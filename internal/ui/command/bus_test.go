package command

import (
	"context"
	"errors"
	"testing"

	"github.com/atomicstack/portal-keepalive/internal/backend"
	"github.com/atomicstack/portal-keepalive/internal/session"
)

func TestExecuteReturnsResultForRequest(t *testing.T) {
	var seen []string
	bus := New(session.InvokerFunc(func(_ context.Context, req backend.Request) backend.Result {
		seen = req.Args
		return backend.Result{RequestID: req.ID, OK: true, Output: "pong"}
	}))
	req := backend.PingRequest("alice", "tok")
	call, cmd := bus.Execute(KindPing, req)
	if call.ID != req.ID || call.Kind != KindPing {
		t.Fatalf("unexpected call %#v", call)
	}
	msg, ok := cmd().(ResultMsg)
	if !ok {
		t.Fatalf("expected ResultMsg")
	}
	if msg.ID != req.ID || msg.Kind != KindPing || !msg.Result.OK {
		t.Fatalf("unexpected result %#v", msg)
	}
	if len(seen) != 3 || seen[0] != "ping" {
		t.Fatalf("unexpected request args %v", seen)
	}
}

func TestCancelPropagatesToInvoker(t *testing.T) {
	var ctxErr error
	bus := New(session.InvokerFunc(func(ctx context.Context, req backend.Request) backend.Result {
		ctxErr = ctx.Err()
		return backend.Failed(req, backend.ErrCanceled)
	}))
	call, cmd := bus.Execute(KindLogin, backend.LoginRequest("alice", "pw"))
	call.Cancel()
	cmd()
	if !errors.Is(ctxErr, context.Canceled) {
		t.Fatalf("expected canceled context, got %v", ctxErr)
	}
}

func TestExecuteWithoutInvoker(t *testing.T) {
	_, cmd := New(nil).Execute(KindLogin, backend.LoginRequest("alice", "pw"))
	msg := cmd().(ResultMsg)
	if msg.Result.OK || !msg.Result.Unavailable() {
		t.Fatalf("expected unavailable failure, got %#v", msg.Result)
	}
}
