package ui

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/atomicstack/portal-keepalive/internal/backend"
	"github.com/atomicstack/portal-keepalive/internal/credentials"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

func init() {
	lipgloss.SetColorProfile(termenv.Ascii)
}

type fakeClock struct{ t time.Time }

func newClock() *fakeClock {
	return &fakeClock{t: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

// fakeBackend answers by operation; a missing answer is a failure.
type fakeBackend struct {
	mu       sync.Mutex
	answers  map[string][]backend.Result
	requests [][]string
	ctxs     []context.Context
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{answers: map[string][]backend.Result{}}
}

func (f *fakeBackend) queue(op string, res backend.Result) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.answers[op] = append(f.answers[op], res)
}

func (f *fakeBackend) Invoke(ctx context.Context, req backend.Request) backend.Result {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, req.Args)
	f.ctxs = append(f.ctxs, ctx)
	op := req.Op()
	queued := f.answers[op]
	if len(queued) == 0 {
		return backend.Result{RequestID: req.ID, ExitCode: 1, Output: "unexpected " + op}
	}
	res := queued[0]
	f.answers[op] = queued[1:]
	res.RequestID = req.ID
	return res
}

func (f *fakeBackend) ops() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	ops := make([]string, 0, len(f.requests))
	for _, args := range f.requests {
		ops = append(ops, strings.Join(args, " "))
	}
	return ops
}

func okOutput(lines ...string) backend.Result {
	return backend.Result{OK: true, Output: strings.Join(lines, "\n")}
}

func failOutput(output string) backend.Result {
	return backend.Result{ExitCode: 1, Output: output}
}

type fakeStore struct {
	saved     []credentials.Credentials
	forgotten int
	saveErr   error
}

func (s *fakeStore) Save(c credentials.Credentials) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.saved = append(s.saved, c)
	return nil
}

func (s *fakeStore) Forget() error {
	s.forgotten++
	return nil
}

var errDiskFull = errors.New("disk full")

type fixture struct {
	clock   *fakeClock
	backend *fakeBackend
	store   *fakeStore
	harness *Harness
}

func newFixture(saved credentials.Credentials, mutate ...func(*Options)) *fixture {
	f := &fixture{clock: newClock(), backend: newFakeBackend(), store: &fakeStore{}}
	opts := Options{
		Invoker:      f.backend,
		Store:        f.store,
		Saved:        saved,
		PingInterval: 50 * time.Second,
		Width:        80,
		Height:       30,
		Now:          f.clock.Now,
	}
	for _, fn := range mutate {
		fn(&opts)
	}
	f.harness = NewHarness(NewModel(opts))
	return f
}

var savedAlice = credentials.Credentials{Username: "alice", Password: "pw"}
