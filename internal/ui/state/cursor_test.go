package state

import "testing"

func newTestMenu(options ...Option) *Menu {
	return NewMenu("test", options...)
}

func TestNewMenuHighlightsFirst(t *testing.T) {
	if m := newTestMenu(OptionEnterCredentials, OptionQuit); m.Cursor != 0 {
		t.Fatalf("expected cursor 0, got %d", m.Cursor)
	}
	if m := newTestMenu(); m.Cursor != -1 {
		t.Fatalf("expected no highlight for empty menu, got %d", m.Cursor)
	}
}

func TestMoveCursorDownClamps(t *testing.T) {
	m := newTestMenu(OptionReconnect, OptionDisconnect)
	if !m.MoveCursorDown() || m.Cursor != 1 {
		t.Fatalf("expected cursor 1, got %d", m.Cursor)
	}
	if m.MoveCursorDown() {
		t.Fatalf("expected no movement past the last entry")
	}
	if m.Cursor != 1 {
		t.Fatalf("expected cursor to stay at 1, got %d", m.Cursor)
	}
}

func TestMoveCursorUpClamps(t *testing.T) {
	m := newTestMenu(OptionReconnect, OptionDisconnect)
	if m.MoveCursorUp() {
		t.Fatalf("expected no movement above the first entry")
	}
	if m.Cursor != 0 {
		t.Fatalf("expected cursor 0, got %d", m.Cursor)
	}
}

func TestMoveFromNoSelection(t *testing.T) {
	m := newTestMenu(OptionReuseSaved, OptionEnterCredentials, OptionForgetCredentials, OptionQuit)
	m.Deselect()
	if !m.MoveCursorDown() || m.Cursor != 0 {
		t.Fatalf("expected down from none to select first, got %d", m.Cursor)
	}
	m.Deselect()
	if !m.MoveCursorUp() || m.Cursor != 3 {
		t.Fatalf("expected up from none to select last, got %d", m.Cursor)
	}
}

func TestMoveCursorHomeEnd(t *testing.T) {
	m := newTestMenu(OptionReuseSaved, OptionEnterCredentials, OptionQuit)
	if !m.MoveCursorEnd() || m.Cursor != 2 {
		t.Fatalf("expected cursor 2, got %d", m.Cursor)
	}
	if !m.MoveCursorHome() || m.Cursor != 0 {
		t.Fatalf("expected cursor 0, got %d", m.Cursor)
	}

	empty := newTestMenu()
	if empty.MoveCursorHome() || empty.MoveCursorEnd() || empty.MoveCursorUp() || empty.MoveCursorDown() {
		t.Fatalf("expected no movement for empty menu")
	}
	if empty.Cursor != -1 {
		t.Fatalf("expected cursor -1, got %d", empty.Cursor)
	}
}

func TestSelected(t *testing.T) {
	m := newTestMenu(OptionEnterCredentials, OptionQuit)
	m.MoveCursorDown()
	if opt, ok := m.Selected(); !ok || opt != OptionQuit {
		t.Fatalf("expected quit selected, got %v %v", opt, ok)
	}
	m.Deselect()
	if _, ok := m.Selected(); ok {
		t.Fatalf("expected nothing selected")
	}
}
