package ui

import (
	"github.com/atomicstack/sysex-shell/internal/logging/events"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

func (m *Model) handleKeyMsg(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	switch {
	case key.Matches(keyMsg, m.keys.Quit):
		return tea.Quit
	case key.Matches(keyMsg, m.keys.Submit):
		m.submit()
		return nil
	case key.Matches(keyMsg, m.keys.Prev):
		m.recall(m.shell.Up(m.input.Value()))
		return nil
	case key.Matches(keyMsg, m.keys.Next):
		m.recall(m.shell.Down(m.input.Value()))
		return nil
	case key.Matches(keyMsg, m.keys.Receive):
		m.clearInfo()
		m.rx.Cycle(1)
		return nil
	case key.Matches(keyMsg, m.keys.Transmit):
		m.clearInfo()
		m.tx.Cycle(1)
		return nil
	case key.Matches(keyMsg, m.keys.Filter):
		m.filter = m.filter.Next()
		events.Filter.Change(m.filter.String())
		return nil
	case key.Matches(keyMsg, m.keys.PageUp):
		m.scroll(-1)
		return nil
	case key.Matches(keyMsg, m.keys.PageDown):
		m.scroll(1)
		return nil
	case key.Matches(keyMsg, m.keys.Clear):
		m.shell.Clear()
		return nil
	case key.Matches(keyMsg, m.keys.Copy):
		m.copyLastReceived()
		return nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(keyMsg)
	return cmd
}

func (m *Model) submit() {
	line := m.input.Value()
	m.input.Reset()
	m.clearInfo()
	m.scrolled = false
	m.shell.Submit(line)
}

func (m *Model) recall(line string) {
	m.input.SetValue(line)
	m.input.CursorEnd()
}

func (m *Model) scroll(direction int) {
	page := m.viewport.Height
	if page < 1 {
		page = 1
	}
	m.viewport.SetYOffset(m.viewport.YOffset + direction*page)
	m.scrolled = !m.viewport.AtBottom()
}

func (m *Model) copyLastReceived() {
	if m.lastReceived == "" {
		m.setInfo("Nothing received yet", false)
		return
	}
	if err := m.copy(m.lastReceived); err != nil {
		m.setInfo("Copy failed: "+err.Error(), true)
		return
	}
	m.setInfo("Copied: "+m.lastReceived, false)
}
