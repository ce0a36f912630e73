package state

import "fmt"

// Option is one selectable menu entry.
type Option int

const (
	OptionReuseSaved Option = iota
	OptionEnterCredentials
	OptionForgetCredentials
	OptionQuit
	OptionReconnect
	OptionDisconnect
)

// Label is the text shown for the option.
func (o Option) Label() string {
	switch o {
	case OptionReuseSaved:
		return "Log in with saved credentials"
	case OptionEnterCredentials:
		return "Enter credentials"
	case OptionForgetCredentials:
		return "Forget saved credentials"
	case OptionQuit:
		return "Quit"
	case OptionReconnect:
		return "Reconnect"
	case OptionDisconnect:
		return "Disconnect"
	default:
		return fmt.Sprintf("option(%d)", int(o))
	}
}

// Menu is an ordered option list with a cursor. Cursor is -1 when nothing
// is highlighted.
type Menu struct {
	ID      string
	Options []Option
	Cursor  int
}

// NewMenu highlights the first option when there is one.
func NewMenu(id string, options ...Option) *Menu {
	m := &Menu{ID: id}
	m.SetOptions(options)
	return m
}

// SetOptions replaces the options and resets the cursor.
func (m *Menu) SetOptions(options []Option) {
	m.Options = append([]Option(nil), options...)
	if len(m.Options) == 0 {
		m.Cursor = -1
		return
	}
	m.Cursor = 0
}

// Selected returns the highlighted option.
func (m *Menu) Selected() (Option, bool) {
	if m == nil || m.Cursor < 0 || m.Cursor >= len(m.Options) {
		return 0, false
	}
	return m.Options[m.Cursor], true
}

// Equal reports whether the menu already holds exactly options.
func (m *Menu) Equal(options []Option) bool {
	if len(m.Options) != len(options) {
		return false
	}
	for i := range options {
		if m.Options[i] != options[i] {
			return false
		}
	}
	return true
}
