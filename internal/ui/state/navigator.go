package state

import (
	"github.com/atomicstack/portal-keepalive/internal/logging/events"
	"github.com/atomicstack/portal-keepalive/internal/session"
)

const (
	homeMenuID   = "home"
	statusMenuID = "status"
)

// Navigator is the screen state machine. It never performs I/O; transitions
// return the effects the controller must carry out.
type Navigator struct {
	screen Screen
	step   Step

	home      *Menu
	status    *Menu
	statusFor session.State

	savedUsername string
	savedPassword string
}

// NewNavigator starts on Home with options derived from the saved
// credentials.
func NewNavigator(savedUsername, savedPassword string) *Navigator {
	n := &Navigator{
		screen:        ScreenHome,
		savedUsername: savedUsername,
		savedPassword: savedPassword,
		status:        NewMenu(statusMenuID, OptionDisconnect),
		statusFor:     session.Uninitialized,
	}
	n.home = NewMenu(homeMenuID, n.homeOptions()...)
	return n
}

func (n *Navigator) homeOptions() []Option {
	if n.savedUsername != "" && n.savedPassword != "" {
		return []Option{OptionReuseSaved, OptionEnterCredentials, OptionForgetCredentials, OptionQuit}
	}
	return []Option{OptionEnterCredentials, OptionQuit}
}

func (n *Navigator) Screen() Screen { return n.screen }
func (n *Navigator) Step() Step     { return n.step }
func (n *Navigator) Home() *Menu    { return n.home }
func (n *Navigator) Status() *Menu  { return n.status }

// ActiveMenu returns the menu the cursor keys act on, if any.
func (n *Navigator) ActiveMenu() *Menu {
	switch n.screen {
	case ScreenHome:
		return n.home
	case ScreenStatus:
		return n.status
	default:
		return nil
	}
}

// Press applies a key to the current screen.
func (n *Navigator) Press(key Key) []Effect {
	if n.screen == ScreenExit {
		return nil
	}
	if key == KeyEsc {
		n.Exit()
		return nil
	}
	switch n.screen {
	case ScreenHome:
		return n.pressHome(key)
	case ScreenStatus:
		return n.pressStatus(key)
	case ScreenDisconnecting:
		if key == KeyQuit {
			n.Exit()
		}
	}
	return nil
}

func (n *Navigator) pressHome(key Key) []Effect {
	switch key {
	case KeyQuit:
		n.Exit()
		return nil
	case KeyEnter:
		opt, ok := n.home.Selected()
		if !ok {
			return nil
		}
		events.UI.MenuEnter(n.home.ID, opt.Label())
		switch opt {
		case OptionReuseSaved:
			n.setScreen(ScreenStatus)
			return []Effect{{Kind: EffectLogin, Username: n.savedUsername, Password: n.savedPassword}}
		case OptionEnterCredentials:
			n.step = StepUsername
			n.setScreen(ScreenCredentials)
			return nil
		case OptionForgetCredentials:
			n.savedUsername, n.savedPassword = "", ""
			n.home.SetOptions(n.homeOptions())
			n.Exit()
			return []Effect{{Kind: EffectForgetCredentials}}
		default:
			n.Exit()
			return nil
		}
	default:
		n.moveCursor(n.home, key)
		return nil
	}
}

func (n *Navigator) pressStatus(key Key) []Effect {
	switch key {
	case KeyQuit:
		n.setScreen(ScreenDisconnecting)
		return []Effect{{Kind: EffectDisconnect}}
	case KeyEnter:
		opt, ok := n.status.Selected()
		if !ok {
			return nil
		}
		events.UI.MenuEnter(n.status.ID, opt.Label())
		switch opt {
		case OptionDisconnect:
			n.setScreen(ScreenDisconnecting)
			return []Effect{{Kind: EffectDisconnect}}
		case OptionReconnect:
			return []Effect{{Kind: EffectReconnect}}
		}
		return nil
	default:
		n.moveCursor(n.status, key)
		return nil
	}
}

func (n *Navigator) moveCursor(menu *Menu, key Key) {
	var moved bool
	switch key {
	case KeyUp:
		moved = menu.MoveCursorUp()
	case KeyDown:
		moved = menu.MoveCursorDown()
	case KeyFirst:
		moved = menu.MoveCursorHome()
	case KeyLast:
		moved = menu.MoveCursorEnd()
	case KeyDeselect:
		moved = menu.Deselect()
	}
	if moved {
		events.UI.MenuCursor(menu.ID, menu.Cursor)
	}
}

// SubmitUsername advances the credential editor to the password step.
func (n *Navigator) SubmitUsername() {
	if n.screen != ScreenCredentials {
		return
	}
	n.step = StepPassword
}

// SubmitPassword finishes the credential flow: the values are saved and
// exactly one login is requested.
func (n *Navigator) SubmitPassword(username, password string) []Effect {
	if n.screen != ScreenCredentials || n.step != StepPassword {
		return nil
	}
	n.savedUsername, n.savedPassword = username, password
	n.home.SetOptions(n.homeOptions())
	n.setScreen(ScreenStatus)
	return []Effect{
		{Kind: EffectSaveCredentials, Username: username, Password: password},
		{Kind: EffectLogin, Username: username, Password: password},
	}
}

// SyncStatusMenu rebuilds the Status options when conn differs from the
// state they were built for. Uninitialized keeps the current options. It
// reports whether the options were rebuilt.
func (n *Navigator) SyncStatusMenu(conn session.State) bool {
	if conn == session.Uninitialized || conn == n.statusFor {
		return false
	}
	n.statusFor = conn
	var options []Option
	switch conn {
	case session.Connected:
		options = []Option{OptionDisconnect}
	case session.Disconnected:
		options = []Option{OptionReconnect, OptionDisconnect}
	}
	n.status.SetOptions(options)
	return true
}

// Exit moves to the terminal screen.
func (n *Navigator) Exit() {
	n.setScreen(ScreenExit)
}

func (n *Navigator) setScreen(next Screen) {
	if n.screen == next {
		return
	}
	events.UI.Screen(n.screen.String(), next.String())
	n.screen = next
}
