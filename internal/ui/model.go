package ui

import (
	"reflect"
	"time"

	"github.com/atomicstack/portal-keepalive/internal/credentials"
	"github.com/atomicstack/portal-keepalive/internal/keepalive"
	"github.com/atomicstack/portal-keepalive/internal/logging/events"
	"github.com/atomicstack/portal-keepalive/internal/session"
	"github.com/atomicstack/portal-keepalive/internal/theme"
	"github.com/atomicstack/portal-keepalive/internal/ui/command"
	uistate "github.com/atomicstack/portal-keepalive/internal/ui/state"
	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

const DefaultTickInterval = time.Second

var styles = theme.Default()

type msgHandler func(tea.Msg) tea.Cmd

// CredentialStore persists credentials chosen in the UI.
type CredentialStore interface {
	Save(credentials.Credentials) error
	Forget() error
}

// Options configures a Model. Realtime starts the tick clock and
// animations; tests leave it off and deliver ticks themselves.
type Options struct {
	Invoker      session.Invoker
	Store        CredentialStore
	Saved        credentials.Credentials
	Stale        bool
	BackendErr   error
	PingInterval time.Duration
	TickInterval time.Duration
	Width        int
	Height       int
	ShowFooter   bool
	Realtime     bool
	Now          func() time.Time
}

type tickMsg struct {
	at time.Time
}

// Model implements the Bubble Tea model for the session controller.
type Model struct {
	sess      *session.Session
	nav       *uistate.Navigator
	scheduler keepalive.Scheduler
	store     CredentialStore
	bus       *command.Bus
	pending   *command.Call

	username textinput.Model
	password textinput.Model
	spinner  spinner.Model
	spinning bool

	infoMsg    string
	infoExpire time.Time
	backendErr string

	width        int
	height       int
	fixedWidth   bool
	fixedHeight  bool
	showFooter   bool
	realtime     bool
	tickInterval time.Duration
	now          func() time.Time
	quitting     bool

	handlers map[reflect.Type]msgHandler
}

// NewModel initialises the controller on the Home screen.
func NewModel(opts Options) *Model {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	tick := opts.TickInterval
	if tick <= 0 {
		tick = DefaultTickInterval
	}
	m := &Model{
		sess:         &session.Session{},
		nav:          uistate.NewNavigator(opts.Saved.Username, opts.Saved.Password),
		scheduler:    keepalive.New(opts.PingInterval),
		store:        opts.Store,
		bus:          command.New(opts.Invoker),
		showFooter:   opts.ShowFooter,
		realtime:     opts.Realtime,
		tickInterval: tick,
		now:          now,
	}
	if opts.Width > 0 {
		m.width = opts.Width
		m.fixedWidth = true
	}
	if opts.Height > 0 {
		m.height = opts.Height
		m.fixedHeight = true
	}
	m.username = m.newInput("username", textinput.EchoNormal)
	m.password = m.newInput("password", textinput.EchoPassword)
	m.spinner = spinner.New(spinner.WithSpinner(spinner.Dot))
	if styles.Spinner != nil {
		m.spinner.Style = *styles.Spinner
	}
	if opts.BackendErr != nil {
		session.MarkUnavailable(m.sess, opts.BackendErr)
		m.backendErr = opts.BackendErr.Error()
		events.UI.Error(opts.BackendErr)
	}
	if opts.Stale {
		m.setInfo("Saved credentials were written by another version and have been cleared.")
	}
	m.registerHandlers()
	return m
}

func (m *Model) newInput(placeholder string, echo textinput.EchoMode) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = ""
	ti.CharLimit = 256
	ti.EchoMode = echo
	ti.EchoCharacter = '•'
	if styles.Cursor != nil {
		ti.Cursor.Style = *styles.Cursor
	}
	if styles.Prompt != nil {
		ti.PromptStyle = *styles.Prompt
	}
	if styles.Placeholder != nil {
		ti.PlaceholderStyle = *styles.Placeholder
	}
	if !m.realtime {
		ti.Cursor.SetMode(cursor.CursorStatic)
	}
	return ti
}

// Init is part of the tea.Model interface.
func (m *Model) Init() tea.Cmd {
	if !m.realtime {
		return nil
	}
	return m.scheduleTick()
}

// Update responds to Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmds := make([]tea.Cmd, 0, 4)
	if handler := m.handlerFor(msg); handler != nil {
		if cmd := handler(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return m, m.finishUpdate(cmds)
}

func (m *Model) registerHandlers() {
	m.handlers = map[reflect.Type]msgHandler{
		reflect.TypeOf(tea.KeyMsg{}):        m.handleKeyMsg,
		reflect.TypeOf(tea.WindowSizeMsg{}): m.handleWindowSizeMsg,
		reflect.TypeOf(tickMsg{}):           m.handleTickMsg,
		reflect.TypeOf(command.ResultMsg{}): m.handleResultMsg,
		reflect.TypeOf(spinner.TickMsg{}):   m.handleSpinnerTickMsg,
	}
}

func (m *Model) handlerFor(msg tea.Msg) msgHandler {
	if msg == nil || m.handlers == nil {
		return nil
	}
	t := reflect.TypeOf(msg)
	if handler, ok := m.handlers[t]; ok {
		return handler
	}
	if t.Kind() == reflect.Ptr {
		if handler, ok := m.handlers[t.Elem()]; ok {
			return handler
		}
	}
	return nil
}

// finishUpdate keeps the Status menu in step with the connection state and
// quits once the navigator reaches Exit.
func (m *Model) finishUpdate(cmds []tea.Cmd) tea.Cmd {
	m.nav.SyncStatusMenu(m.sess.State)
	if m.nav.Screen() == uistate.ScreenExit && !m.quitting {
		m.quitting = true
		if m.pending != nil {
			m.pending.Cancel()
			m.pending = nil
		}
		events.App.Exit(m.nav.Screen().String(), nil)
		cmds = append(cmds, tea.Quit)
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

func (m *Model) scheduleTick() tea.Cmd {
	return tea.Tick(m.tickInterval, func(t time.Time) tea.Msg {
		return tickMsg{at: t}
	})
}

// Session returns a copy of the current session.
func (m *Model) Session() session.Session {
	return *m.sess
}

// Screen reports the current screen.
func (m *Model) Screen() uistate.Screen {
	return m.nav.Screen()
}

// Pending reports whether a backend call is in flight.
func (m *Model) Pending() bool {
	return m.pending != nil
}
