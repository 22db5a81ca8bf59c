package ui

import (
	"context"

	"github.com/atomicstack/sysex-shell/internal/logging"
	"github.com/atomicstack/sysex-shell/internal/logging/events"
	"github.com/atomicstack/sysex-shell/internal/midi"
	"github.com/atomicstack/sysex-shell/internal/session"
	"github.com/atomicstack/sysex-shell/internal/shell"
	"github.com/atomicstack/sysex-shell/internal/transport"
	tea "github.com/charmbracelet/bubbletea"
)

type accessMsg struct {
	access transport.Access
	err    error
}

type transportEventMsg struct {
	event transport.StateChange
}

type transportDoneMsg struct{}

type receivedMsg struct {
	received session.Received
}

func requestAccess(ctx context.Context, request session.Requester) tea.Cmd {
	return func() tea.Msg {
		if request == nil {
			return accessMsg{}
		}
		access, err := request(ctx)
		return accessMsg{access: access, err: err}
	}
}

func waitForTransportEvent(ch <-chan transport.StateChange) tea.Cmd {
	return func() tea.Msg {
		evt, ok := <-ch
		if !ok {
			return transportDoneMsg{}
		}
		return transportEventMsg{event: evt}
	}
}

func waitForReceived(ch <-chan session.Received) tea.Cmd {
	return func() tea.Msg {
		return receivedMsg{received: <-ch}
	}
}

// enqueue is the session's receive hook. It runs on driver threads and must
// never block them, so a full queue drops the message.
func (m *Model) enqueue(r session.Received) {
	select {
	case m.incoming <- r:
	default:
		events.Receive.Dropped(r.PortID, events.DropOverflow)
		logging.Warn("receive.overflow", map[string]interface{}{
			"port":  r.PortID,
			"bytes": len(r.Data),
		})
	}
}

func (m *Model) handleAccessMsg(msg tea.Msg) tea.Cmd {
	granted, ok := msg.(accessMsg)
	if !ok {
		return nil
	}
	if granted.err != nil || granted.access == nil {
		m.session.Fail(granted.err)
		m.interpreter.SetSender(nil)
		m.printWarning(midi.ErrTransportUnavailable)
		return nil
	}
	m.interpreter.SetSender(m.session.Attach(granted.access))
	if len(granted.access.Inputs()) == 0 {
		m.printWarning(midi.ErrNoInputs)
	}
	if len(granted.access.Outputs()) == 0 {
		m.printWarning(midi.ErrNoOutputs)
	}
	cmds := []tea.Cmd{waitForReceived(m.incoming)}
	if ch := granted.access.StateChanges(); ch != nil {
		m.changes = ch
		cmds = append(cmds, waitForTransportEvent(ch))
	}
	return tea.Batch(cmds...)
}

func (m *Model) handleTransportEventMsg(msg tea.Msg) tea.Cmd {
	eventMsg, ok := msg.(transportEventMsg)
	if !ok {
		return nil
	}
	res := m.session.HandleStateChange(eventMsg.event)
	if res.InputsUpdated || res.OutputsUpdated {
		m.clearInfo()
	}
	if m.changes != nil {
		return waitForTransportEvent(m.changes)
	}
	return nil
}

func (m *Model) handleTransportDoneMsg(tea.Msg) tea.Cmd {
	m.changes = nil
	return nil
}

func (m *Model) handleReceivedMsg(msg tea.Msg) tea.Cmd {
	in, ok := msg.(receivedMsg)
	if !ok {
		return nil
	}
	m.display(in.received)
	return waitForReceived(m.incoming)
}

func (m *Model) display(r session.Received) {
	if !m.session.Current(r) {
		events.Receive.Dropped(r.PortID, events.DropStale)
		return
	}
	if !m.filter.Accepts(r.Data) {
		events.Receive.Dropped(r.PortID, events.DropFiltered)
		return
	}
	line := midi.Format(r.Data)
	events.Receive.Message(r.PortID, len(r.Data))
	m.shell.Print(line, shell.ColorAffirmative)
	m.lastReceived = line
}
