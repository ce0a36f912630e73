package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/atomicstack/portal-keepalive/internal/backend"
	"github.com/atomicstack/portal-keepalive/internal/credentials"
	"github.com/atomicstack/portal-keepalive/internal/session"
	"github.com/atomicstack/portal-keepalive/internal/ui"
	tea "github.com/charmbracelet/bubbletea"
)

// Config describes user-provided application options.
type Config struct {
	BackendPath     string
	CredentialsPath string
	PingInterval    time.Duration
	TickInterval    time.Duration
	Timeout         time.Duration
	Width           int
	Height          int
	ShowFooter      bool
}

// Run bootstraps and executes the Bubble Tea program. A backend that cannot
// be resolved is reported inside the UI rather than aborting startup.
func Run(cfg Config) error {
	store := credentials.NewStore(cfg.CredentialsPath)
	saved, stale, err := store.Load()
	if err != nil {
		return fmt.Errorf("load credentials: %w", err)
	}
	client, resolveErr := newClient(cfg)
	model := ui.NewModel(ui.Options{
		Invoker:      client,
		Store:        store,
		Saved:        saved,
		Stale:        stale,
		BackendErr:   resolveErr,
		PingInterval: cfg.PingInterval,
		TickInterval: cfg.TickInterval,
		Width:        cfg.Width,
		Height:       cfg.Height,
		ShowFooter:   cfg.ShowFooter,
		Realtime:     true,
	})
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err = program.Run()
	if errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	return err
}

func newClient(cfg Config) (*backend.Client, error) {
	path, err := backend.Resolve(cfg.BackendPath)
	if err != nil {
		path = cfg.BackendPath
	}
	return backend.NewClient(path, backend.WithTimeout(cfg.Timeout)), err
}

// Forget clears the saved credentials.
func Forget(cfg Config, w io.Writer) error {
	store := credentials.NewStore(cfg.CredentialsPath)
	if err := store.Forget(); err != nil {
		return fmt.Errorf("forget credentials: %w", err)
	}
	fmt.Fprintf(w, "Forgot saved credentials in %s\n", store.Path())
	return nil
}

// Check resolves the backend and reports where it lives. With login set it
// also logs in with the saved credentials and logs straight back out.
func Check(ctx context.Context, cfg Config, w io.Writer, login bool) error {
	client, err := newClient(cfg)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "backend: %s\n", client.Path())
	if !login {
		return nil
	}
	saved, _, err := credentials.NewStore(cfg.CredentialsPath).Load()
	if err != nil {
		return fmt.Errorf("load credentials: %w", err)
	}
	if !saved.Complete() {
		return errors.New("no saved credentials to check with")
	}
	machine := session.NewMachine(&session.Session{}, client, nil)
	machine.Login(ctx, saved.Username, saved.Password)
	sess := machine.Session
	if sess.State != session.Connected {
		return fmt.Errorf("login as %s failed: %s", saved.Username, sess.LastError)
	}
	fmt.Fprintf(w, "login: ok (%s)\n", saved.Username)
	if machine.Logout(ctx) {
		fmt.Fprintln(w, "logout: sent")
	}
	return nil
}
