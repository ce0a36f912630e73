package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/atomicstack/portal-keepalive/internal/format/table"
	"github.com/atomicstack/portal-keepalive/internal/session"
	uistate "github.com/atomicstack/portal-keepalive/internal/ui/state"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
)

const (
	appTitle        = "portal-keepalive"
	headerSeparator = " → "
	timeLayout      = "2006-01-02 15:04:05"
	maxErrorLines   = 3
	infoDuration    = 5 * time.Second
)

type styledLine struct {
	text          string
	style         *lipgloss.Style
	prefixStyle   *lipgloss.Style
	highlightFrom int
	raw           bool // text contains ANSI escapes; skip style wrapping, use ANSI-aware truncation
}

// View implements tea.Model.
func (m *Model) View() string {
	screen := m.nav.Screen()
	if screen == uistate.ScreenExit {
		return ""
	}
	lines := make([]styledLine, 0, 24)
	lines = append(lines, styledLine{text: m.header(), style: styles.Header})
	if m.backendErr != "" {
		lines = append(lines, styledLine{text: "Backend unavailable: " + m.backendErr, style: styles.Error})
	}
	lines = append(lines, styledLine{})
	switch screen {
	case uistate.ScreenHome:
		lines = append(lines, m.homeLines()...)
	case uistate.ScreenCredentials:
		lines = append(lines, m.credentialLines()...)
	case uistate.ScreenStatus:
		lines = append(lines, m.statusLines()...)
	case uistate.ScreenDisconnecting:
		lines = append(lines, styledLine{text: "Disconnecting…", style: styles.Title})
	}
	if m.pending != nil {
		lines = append(lines, styledLine{})
		lines = append(lines, styledLine{
			text: m.spinner.View() + " calling backend (" + m.pending.Kind.String() + ")…",
			raw:  true,
		})
	}
	if errLines := m.errorLines(); len(errLines) > 0 {
		lines = append(lines, styledLine{})
		lines = append(lines, errLines...)
	}
	if info := m.currentInfo(); info != "" {
		lines = append(lines, styledLine{})
		lines = append(lines, styledLine{text: info, style: styles.Warning})
	}
	if m.showFooter {
		lines = append(lines, styledLine{})
		lines = append(lines, styledLine{text: footerText(screen, m.nav.Step()), style: styles.Footer})
	}
	lines = limitHeight(lines, m.height, m.width)
	lines = applyWidth(lines, m.width)
	return renderLines(lines)
}

func (m *Model) header() string {
	return appTitle + headerSeparator + m.nav.Screen().String()
}

func (m *Model) homeLines() []styledLine {
	lines := []styledLine{{text: "Captive portal login", style: styles.Title}}
	return append(lines, m.menuLines(m.nav.Home(), "")...)
}

func (m *Model) menuLines(menu *uistate.Menu, empty string) []styledLine {
	if menu == nil || len(menu.Options) == 0 {
		if empty == "" {
			return nil
		}
		return []styledLine{{text: empty, style: styles.Info}}
	}
	lines := make([]styledLine, 0, len(menu.Options))
	for i, opt := range menu.Options {
		lines = append(lines, buildItemLine(opt.Label(), i == menu.Cursor, m.width))
	}
	return lines
}

// buildItemLine constructs a single styledLine for a menu option. When width
// is known the text is padded so the selected background spans the row.
func buildItemLine(label string, selected bool, width int) styledLine {
	lineStyle := styles.Item
	indicatorStyle := styles.ItemIndicator
	if selected {
		indicatorStyle = styles.SelectedItemIndicator
		lineStyle = styles.SelectedItem
	}
	fullText := "▌ " + label
	if width > 0 {
		if pad := width - len([]rune(fullText)); pad > 0 {
			fullText += strings.Repeat(" ", pad)
		}
	}
	return styledLine{
		text:          fullText,
		style:         lineStyle,
		prefixStyle:   indicatorStyle,
		highlightFrom: 1,
	}
}

func (m *Model) credentialLines() []styledLine {
	lines := []styledLine{{text: "Enter your portal credentials", style: styles.Title}}
	rows := [][]string{
		{"Username", m.username.View()},
	}
	if m.nav.Step() == uistate.StepPassword {
		rows = append(rows, []string{"Password", m.password.View()})
	}
	return append(lines, tableLines(rows)...)
}

func (m *Model) statusLines() []styledLine {
	now := m.now()
	sess := m.sess
	rows := [][]string{
		{"Status", stateStyle(sess.State).Render(sess.State.String())},
		{"User", renderValue(sess.Username)},
		{"Last login", renderValue(formatTime(sess.LastLoginAt, now))},
		{"Last ping", renderValue(formatTime(sess.LastPingSuccessAt, now))},
	}
	if sess.State != session.Connected && !sess.LastPingAttemptAt.IsZero() {
		rows = append(rows, []string{"Last attempt", renderValue(formatTime(sess.LastPingAttemptAt, now))})
	}
	if next, ok := m.scheduler.NextAt(sess); ok && m.pending == nil {
		wait := next.Sub(now).Truncate(time.Second)
		if wait < 0 {
			wait = 0
		}
		rows = append(rows, []string{"Next ping", renderValue("in " + wait.String())})
	}
	lines := tableLines(rows)
	lines = append(lines, styledLine{})
	return append(lines, m.menuLines(m.nav.Status(), "(no actions while connecting)")...)
}

// tableLines lays out label/value rows with right-aligned labels.
func tableLines(rows [][]string) []styledLine {
	for _, row := range rows {
		if styles.Label != nil {
			row[0] = styles.Label.Render(row[0])
		}
	}
	formatted := table.Format(rows, []table.Alignment{table.AlignRight, table.AlignLeft})
	lines := make([]styledLine, 0, len(formatted))
	for _, row := range formatted {
		lines = append(lines, styledLine{text: row, raw: true})
	}
	return lines
}

func renderValue(text string) string {
	if styles.Value == nil {
		return text
	}
	return styles.Value.Render(text)
}

func stateStyle(state session.State) lipgloss.Style {
	var style *lipgloss.Style
	switch state {
	case session.Connected:
		style = styles.Connected
	case session.Connecting:
		style = styles.Connecting
	case session.Disconnected:
		style = styles.Disconnected
	}
	if style == nil {
		return lipgloss.NewStyle()
	}
	return *style
}

func formatTime(t, now time.Time) string {
	if t.IsZero() {
		return "never"
	}
	ago := now.Sub(t).Truncate(time.Second)
	if ago < 0 {
		ago = 0
	}
	return fmt.Sprintf("%s (%s ago)", t.Format(timeLayout), ago)
}

func (m *Model) errorLines() []styledLine {
	text := m.sess.LastError
	if text == "" || text == m.backendErr {
		return nil
	}
	raw := strings.Split(strings.TrimSpace(text), "\n")
	lines := make([]styledLine, 0, maxErrorLines+1)
	for i, line := range raw {
		if i == maxErrorLines {
			lines = append(lines, styledLine{text: fmt.Sprintf("(%d more lines in log)", len(raw)-maxErrorLines), style: styles.Info})
			break
		}
		prefix := "       "
		if i == 0 {
			prefix = "Error: "
		}
		lines = append(lines, styledLine{text: prefix + strings.TrimSpace(line), style: styles.Error})
	}
	return lines
}

func footerText(screen uistate.Screen, step uistate.Step) string {
	switch screen {
	case uistate.ScreenHome:
		return "↑/↓ move  enter select  q quit  esc exit"
	case uistate.ScreenCredentials:
		if step == uistate.StepUsername {
			return "type username  enter next  esc exit"
		}
		return "type password  enter log in  esc exit"
	case uistate.ScreenStatus:
		return "↑/↓ move  enter select  q disconnect  esc exit"
	case uistate.ScreenDisconnecting:
		return "q/esc exit without waiting"
	default:
		return ""
	}
}

func (m *Model) handleWindowSizeMsg(msg tea.Msg) tea.Cmd {
	resize, ok := msg.(tea.WindowSizeMsg)
	if !ok {
		return nil
	}
	if !m.fixedWidth {
		m.width = resize.Width
	}
	if !m.fixedHeight {
		m.height = resize.Height
	}
	return nil
}

func (m *Model) setInfo(message string) {
	m.infoMsg = message
	m.infoExpire = m.now().Add(infoDuration)
}

func (m *Model) currentInfo() string {
	if m.infoMsg != "" && !m.infoExpire.IsZero() && m.now().After(m.infoExpire) {
		m.infoMsg = ""
		m.infoExpire = time.Time{}
	}
	return m.infoMsg
}

func limitHeight(lines []styledLine, height, width int) []styledLine {
	if height <= 0 || len(lines) <= height {
		return lines
	}
	if height == 1 {
		return []styledLine{{text: truncateText("…", width)}}
	}
	trimmed := make([]styledLine, 0, height)
	trimmed = append(trimmed, lines[:height-1]...)
	trimmed = append(trimmed, styledLine{text: truncateText("…", width)})
	return trimmed
}

func applyWidth(lines []styledLine, width int) []styledLine {
	if width <= 0 {
		return lines
	}
	result := make([]styledLine, len(lines))
	for i, line := range lines {
		text := line.text
		if line.raw {
			if lipgloss.Width(text) > width {
				text = truncate.StringWithTail(text, uint(width-1), "…")
			}
		} else {
			text = truncateText(text, width)
		}
		line.text = text
		result[i] = line
	}
	return result
}

func renderLines(lines []styledLine) string {
	out := make([]string, len(lines))
	for i, line := range lines {
		text := line.text
		if line.raw {
			out[i] = text
			continue
		}
		runes := []rune(text)
		if line.highlightFrom > 0 && line.highlightFrom < len(runes) {
			head := string(runes[:line.highlightFrom])
			tail := string(runes[line.highlightFrom:])
			if line.prefixStyle != nil {
				head = line.prefixStyle.Render(head)
			}
			if line.style != nil {
				tail = line.style.Render(tail)
			}
			text = head + tail
		} else if line.style != nil {
			text = line.style.Render(text)
		}
		out[i] = text
	}
	return strings.Join(out, "\n")
}

func truncateText(text string, width int) string {
	if width <= 0 {
		return text
	}
	runes := []rune(text)
	if len(runes) <= width {
		return text
	}
	if width == 1 {
		return string(runes[:1])
	}
	return string(runes[:width-1]) + "…"
}
