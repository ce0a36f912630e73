package ui

import (
	"github.com/atomicstack/portal-keepalive/internal/logging/events"
	uistate "github.com/atomicstack/portal-keepalive/internal/ui/state"
	tea "github.com/charmbracelet/bubbletea"
)

func translateKey(msg tea.KeyMsg) uistate.Key {
	switch msg.String() {
	case "esc":
		return uistate.KeyEsc
	case "q":
		return uistate.KeyQuit
	case "enter":
		return uistate.KeyEnter
	case "up", "k":
		return uistate.KeyUp
	case "down", "j":
		return uistate.KeyDown
	case "home", "g":
		return uistate.KeyFirst
	case "end", "G":
		return uistate.KeyLast
	case "left", "h":
		return uistate.KeyDeselect
	default:
		return uistate.KeyOther
	}
}

func (m *Model) handleKeyMsg(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	if keyMsg.String() == "ctrl+c" {
		m.cancelPending()
		m.nav.Exit()
		return nil
	}
	before := m.nav.Screen()
	var cmd tea.Cmd
	if before == uistate.ScreenCredentials {
		cmd = m.handleCredentialKey(keyMsg)
	} else {
		cmd = m.handleMenuKey(keyMsg)
	}
	if after := m.nav.Screen(); after != before && after == uistate.ScreenCredentials {
		return tea.Batch(cmd, m.startCredentialEntry())
	}
	return cmd
}

func (m *Model) handleMenuKey(msg tea.KeyMsg) tea.Cmd {
	key := translateKey(msg)
	if m.pending != nil {
		switch {
		case key == uistate.KeyEsc:
			m.cancelPending()
		case key == uistate.KeyQuit && m.quitCancelsCall():
			m.cancelPending()
		default:
			events.UI.KeyIgnored(msg.String(), "call in flight")
			return nil
		}
	}
	return m.runEffects(m.nav.Press(key))
}

// quitCancelsCall reports whether q may abandon the in-flight call: on
// Status it turns into a disconnect, on Disconnecting it exits.
func (m *Model) quitCancelsCall() bool {
	screen := m.nav.Screen()
	return screen == uistate.ScreenStatus || screen == uistate.ScreenDisconnecting
}

func (m *Model) handleCredentialKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		m.nav.Press(uistate.KeyEsc)
		return nil
	case "enter":
		if m.nav.Step() == uistate.StepUsername {
			m.nav.SubmitUsername()
			m.username.Blur()
			return m.password.Focus()
		}
		m.password.Blur()
		return m.runEffects(m.nav.SubmitPassword(m.username.Value(), m.password.Value()))
	}
	var cmd tea.Cmd
	if m.nav.Step() == uistate.StepUsername {
		m.username, cmd = m.username.Update(msg)
	} else {
		m.password, cmd = m.password.Update(msg)
	}
	return cmd
}

func (m *Model) startCredentialEntry() tea.Cmd {
	m.username.Reset()
	m.password.Reset()
	m.password.Blur()
	return m.username.Focus()
}

func (m *Model) cancelPending() {
	if m.pending == nil {
		return
	}
	m.pending.Cancel()
	m.pending = nil
}
