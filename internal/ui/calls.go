package ui

import (
	"fmt"

	"github.com/atomicstack/portal-keepalive/internal/backend"
	"github.com/atomicstack/portal-keepalive/internal/credentials"
	"github.com/atomicstack/portal-keepalive/internal/logging"
	"github.com/atomicstack/portal-keepalive/internal/logging/events"
	"github.com/atomicstack/portal-keepalive/internal/session"
	"github.com/atomicstack/portal-keepalive/internal/ui/command"
	uistate "github.com/atomicstack/portal-keepalive/internal/ui/state"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// runEffects carries out navigator effects in order.
func (m *Model) runEffects(effects []uistate.Effect) tea.Cmd {
	cmds := make([]tea.Cmd, 0, len(effects))
	for _, effect := range effects {
		switch effect.Kind {
		case uistate.EffectSaveCredentials:
			m.saveCredentials(credentials.Credentials{Username: effect.Username, Password: effect.Password})
		case uistate.EffectForgetCredentials:
			m.forgetCredentials()
		case uistate.EffectLogin:
			req := session.BeginLogin(m.sess, effect.Username, effect.Password, m.now())
			cmds = append(cmds, m.startCall(command.KindLogin, req))
		case uistate.EffectReconnect:
			req := session.BeginReconnect(m.sess, m.now())
			cmds = append(cmds, m.startCall(command.KindReconnect, req))
		case uistate.EffectDisconnect:
			req, ok := session.BeginLogout(m.sess)
			if !ok {
				m.nav.Exit()
				continue
			}
			cmds = append(cmds, m.startCall(command.KindLogout, req))
		}
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

func (m *Model) saveCredentials(creds credentials.Credentials) {
	if m.store == nil {
		return
	}
	if err := m.store.Save(creds); err != nil {
		logging.Error(fmt.Errorf("save credentials: %w", err))
		m.setInfo(fmt.Sprintf("Could not save credentials: %v", err))
	}
}

func (m *Model) forgetCredentials() {
	if m.store == nil {
		return
	}
	if err := m.store.Forget(); err != nil {
		logging.Error(fmt.Errorf("forget credentials: %w", err))
	}
}

// startCall hands req to the bus. Only one call is in flight at a time.
func (m *Model) startCall(kind command.Kind, req backend.Request) tea.Cmd {
	m.cancelPending()
	call, cmd := m.bus.Execute(kind, req)
	m.pending = call
	if m.realtime && !m.spinning {
		m.spinning = true
		return tea.Batch(cmd, m.spinner.Tick)
	}
	return cmd
}

func (m *Model) handleResultMsg(msg tea.Msg) tea.Cmd {
	result, ok := msg.(command.ResultMsg)
	if !ok {
		return nil
	}
	if m.pending == nil || m.pending.ID != result.ID {
		pendingID := ""
		if m.pending != nil {
			pendingID = m.pending.ID
		}
		events.Command.Stale(result.ID, pendingID)
		return nil
	}
	m.pending = nil
	now := m.now()
	switch result.Kind {
	case command.KindLogin, command.KindReconnect:
		session.ApplyLogin(m.sess, result.Result, now)
	case command.KindPing:
		session.ApplyPing(m.sess, result.Result, now)
	case command.KindLogout:
		session.ApplyLogout(m.sess, result.Result)
		m.nav.Exit()
	}
	if !result.Result.OK {
		logging.Error(fmt.Errorf("%s failed: %s", result.Kind, result.Result.Message()))
	}
	return nil
}

func (m *Model) handleTickMsg(msg tea.Msg) tea.Cmd {
	if _, ok := msg.(tickMsg); !ok {
		return nil
	}
	var cmds []tea.Cmd
	if m.realtime && !m.quitting {
		cmds = append(cmds, m.scheduleTick())
	}
	if cmd := m.maybePing(); cmd != nil {
		cmds = append(cmds, cmd)
	}
	return tea.Batch(cmds...)
}

// maybePing issues a keepalive ping when one is due and nothing else is in
// flight.
func (m *Model) maybePing() tea.Cmd {
	if m.pending != nil || m.quitting {
		return nil
	}
	switch m.nav.Screen() {
	case uistate.ScreenDisconnecting, uistate.ScreenExit:
		return nil
	}
	now := m.now()
	if !m.scheduler.Due(now, m.sess) {
		return nil
	}
	events.Connection.PingDue(m.sess.Username, now.Sub(m.sess.LastPingAttemptAt).String())
	req, ok := session.BeginPing(m.sess, now)
	if !ok {
		return nil
	}
	return m.startCall(command.KindPing, req)
}

func (m *Model) handleSpinnerTickMsg(msg tea.Msg) tea.Cmd {
	tick, ok := msg.(spinner.TickMsg)
	if !ok {
		return nil
	}
	if m.pending == nil {
		m.spinning = false
		return nil
	}
	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(tick)
	return cmd
}
