package state

import "fmt"

// Screen is the current top-level view.
type Screen int

const (
	ScreenHome Screen = iota
	ScreenCredentials
	ScreenStatus
	ScreenDisconnecting
	ScreenExit
)

func (s Screen) String() string {
	switch s {
	case ScreenHome:
		return "home"
	case ScreenCredentials:
		return "credentials"
	case ScreenStatus:
		return "status"
	case ScreenDisconnecting:
		return "disconnecting"
	case ScreenExit:
		return "exit"
	default:
		return fmt.Sprintf("screen(%d)", int(s))
	}
}

// Step is the credential field being edited.
type Step int

const (
	StepUsername Step = iota
	StepPassword
)

// Key is an input event after key-binding translation.
type Key int

const (
	KeyOther Key = iota
	KeyEsc
	KeyQuit
	KeyEnter
	KeyUp
	KeyDown
	KeyFirst
	KeyLast
	KeyDeselect
)

// EffectKind names work the controller must perform after a transition.
type EffectKind int

const (
	EffectLogin EffectKind = iota
	EffectReconnect
	EffectDisconnect
	EffectSaveCredentials
	EffectForgetCredentials
)

func (k EffectKind) String() string {
	switch k {
	case EffectLogin:
		return "login"
	case EffectReconnect:
		return "reconnect"
	case EffectDisconnect:
		return "disconnect"
	case EffectSaveCredentials:
		return "save-credentials"
	case EffectForgetCredentials:
		return "forget-credentials"
	default:
		return fmt.Sprintf("effect(%d)", int(k))
	}
}

// Effect is a side effect requested by the navigator.
type Effect struct {
	Kind     EffectKind
	Username string
	Password string
}
