package state

// MoveCursorUp moves one entry up, stopping at the first. With nothing
// highlighted it jumps to the last entry.
func (m *Menu) MoveCursorUp() bool {
	n := len(m.Options)
	if n == 0 {
		m.Cursor = -1
		return false
	}
	old := m.Cursor
	switch {
	case m.Cursor < 0 || m.Cursor >= n:
		m.Cursor = n - 1
	case m.Cursor > 0:
		m.Cursor--
	}
	return old != m.Cursor
}

// MoveCursorDown moves one entry down, stopping at the last. With nothing
// highlighted it jumps to the first entry.
func (m *Menu) MoveCursorDown() bool {
	n := len(m.Options)
	if n == 0 {
		m.Cursor = -1
		return false
	}
	old := m.Cursor
	switch {
	case m.Cursor < 0:
		m.Cursor = 0
	case m.Cursor < n-1:
		m.Cursor++
	default:
		m.Cursor = n - 1
	}
	return old != m.Cursor
}

// MoveCursorHome moves the cursor to the first entry.
func (m *Menu) MoveCursorHome() bool {
	if len(m.Options) == 0 {
		m.Cursor = -1
		return false
	}
	old := m.Cursor
	m.Cursor = 0
	return old != m.Cursor
}

// MoveCursorEnd moves the cursor to the last entry.
func (m *Menu) MoveCursorEnd() bool {
	n := len(m.Options)
	if n == 0 {
		m.Cursor = -1
		return false
	}
	old := m.Cursor
	m.Cursor = n - 1
	return old != m.Cursor
}

// Deselect clears the highlight.
func (m *Menu) Deselect() bool {
	old := m.Cursor
	m.Cursor = -1
	return old != m.Cursor
}
