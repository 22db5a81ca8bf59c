package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// defaultGrace is how long the harness waits on a command before treating it
// as a long-running pump.
const defaultGrace = 20 * time.Millisecond

// Harness drives the UI model programmatically for integration tests.
// Commands run synchronously; one that outlives the grace period (an event
// pump blocked on its channel) is parked, and its message is delivered by
// the next Flush.
type Harness struct {
	model   *Model
	grace   time.Duration
	pending chan tea.Msg
}

// NewHarness creates a harness for the provided model.
func NewHarness(model *Model) *Harness {
	return &Harness{model: model, grace: defaultGrace, pending: make(chan tea.Msg, 64)}
}

// Start runs the model's Init command to completion and delivers its message.
func (h *Harness) Start() {
	if h.model == nil {
		return
	}
	if cmd := h.model.Init(); cmd != nil {
		h.Send(cmd())
	}
}

// Send routes a message through the model and executes any returned commands.
func (h *Harness) Send(msg tea.Msg) {
	if h.model == nil {
		return
	}
	mdl, cmd := h.model.Update(msg)
	if updated, ok := mdl.(*Model); ok {
		h.model = updated
	}
	h.processCmd(cmd)
}

// Flush delivers messages from parked commands until none arrives within
// wait, and returns how many were delivered.
func (h *Harness) Flush(wait time.Duration) int {
	delivered := 0
	for {
		select {
		case msg := <-h.pending:
			delivered++
			h.Send(msg)
		case <-time.After(wait):
			return delivered
		}
	}
}

func (h *Harness) processCmd(cmd tea.Cmd) {
	queue := []tea.Cmd{cmd}
	for len(queue) > 0 {
		next := queue[0]
		queue = queue[1:]
		if next == nil {
			continue
		}
		msg, done := h.run(next)
		if !done || msg == nil {
			continue
		}
		if batch, ok := msg.(tea.BatchMsg); ok {
			queue = append(queue, batch...)
			continue
		}
		mdl, follow := h.model.Update(msg)
		if updated, ok := mdl.(*Model); ok {
			h.model = updated
		}
		queue = append(queue, follow)
	}
}

func (h *Harness) run(cmd tea.Cmd) (tea.Msg, bool) {
	out := make(chan tea.Msg, 1)
	go func() { out <- cmd() }()
	select {
	case msg := <-out:
		return msg, true
	case <-time.After(h.grace):
		go func() {
			if msg := <-out; msg != nil {
				h.pending <- msg
			}
		}()
		return nil, false
	}
}

// View returns the current view string.
func (h *Harness) View() string {
	if h.model == nil {
		return ""
	}
	return h.model.View()
}

// Model exposes the underlying model.
func (h *Harness) Model() *Model {
	return h.model
}
