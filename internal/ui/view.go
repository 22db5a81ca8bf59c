package ui

import (
	"strings"

	"github.com/atomicstack/sysex-shell/internal/session"
	uistate "github.com/atomicstack/sysex-shell/internal/ui/state"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

const headerSeparator = " │ "

// View implements tea.Model.
func (m *Model) View() string {
	rows := []string{m.header(), m.viewport.View(), m.input.View()}
	if footer := m.footer(); footer != "" {
		rows = append(rows, footer)
	}
	return strings.Join(rows, "\n")
}

// layout sizes the scrollback and the input row to the current window.
func (m *Model) layout() {
	height := m.height - m.chromeHeight()
	if height < 1 {
		height = 1
	}
	m.viewport.Width = m.width
	m.viewport.Height = height
	width := m.width - ansi.StringWidth(promptText) - 1
	if width < 1 {
		width = 1
	}
	m.input.Width = width
	m.help.Width = m.width
	m.dirty = true
	m.syncScrollback()
}

func (m *Model) chromeHeight() int {
	rows := 2
	if m.showFooter {
		rows++
	}
	return rows
}

// syncScrollback re-renders the viewport content when the shell changed and
// follows the newest line unless the user has scrolled back.
func (m *Model) syncScrollback() {
	version := m.shell.Version()
	if version == m.rendered && !m.dirty {
		return
	}
	m.rendered = version
	m.dirty = false
	lines := m.shell.Lines()
	rendered := make([]string, len(lines))
	for i, line := range lines {
		text := ansi.Truncate(line.Text, m.width, "")
		if style := styles.Line(line.Color); style != nil {
			text = style.Render(text)
		}
		rendered[i] = text
	}
	m.viewport.SetContent(strings.Join(rendered, "\n"))
	if !m.scrolled {
		m.viewport.GotoBottom()
	}
}

func (m *Model) header() string {
	filter := "Filter: " + m.filter.Label()
	link := m.linkStatus()
	available := m.width - ansi.StringWidth(filter) - 2*ansi.StringWidth(headerSeparator)
	if link != "" {
		available -= ansi.StringWidth(link) + ansi.StringWidth(headerSeparator)
	}
	each := available / 2
	if each < 8 {
		each = 8
	}
	parts := []string{
		m.renderSelector(uistate.NewSelector("Receive", m.rx.List()), each),
		m.renderSelector(uistate.NewSelector("Transmit", m.tx.List()), each),
		render(styles.Header, filter),
	}
	if link != "" {
		style := styles.Status
		if m.session.Status() == session.Unavailable {
			style = styles.Alert
		}
		parts = append(parts, render(style, link))
	}
	return ansi.Truncate(strings.Join(parts, render(styles.Header, headerSeparator)), m.width, "")
}

// linkStatus names the transport state while lines cannot be transmitted.
func (m *Model) linkStatus() string {
	if m.interpreter.Available() {
		return ""
	}
	if m.session.Status() == session.Unavailable {
		return "offline"
	}
	return "connecting"
}

func (m *Model) renderSelector(sel uistate.Selector, width int) string {
	label := sel.Label(width)
	if sel.Empty() {
		return render(styles.SelectorEmpty, label)
	}
	return render(styles.Selector, label)
}

func (m *Model) footer() string {
	if !m.showFooter {
		return ""
	}
	if m.infoMsg != "" {
		style := styles.Info
		if m.infoAlert {
			style = styles.Alert
		}
		return render(style, ansi.Truncate(m.infoMsg, m.width, "…"))
	}
	return m.help.ShortHelpView(m.keys.ShortHelp())
}

func render(style *lipgloss.Style, text string) string {
	if style == nil {
		return text
	}
	return style.Render(text)
}
