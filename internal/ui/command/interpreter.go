// Package command turns submitted shell lines into MIDI transmissions.
package command

import (
	"github.com/atomicstack/sysex-shell/internal/format/table"
	"github.com/atomicstack/sysex-shell/internal/logging/events"
	"github.com/atomicstack/sysex-shell/internal/midi"
	"github.com/atomicstack/sysex-shell/internal/session"
	"github.com/atomicstack/sysex-shell/internal/shell"
	"github.com/atomicstack/sysex-shell/internal/state"
)

// Options configures an Interpreter.
type Options struct {
	// Strict enforces the status-byte check; see midi.Validate.
	Strict  bool
	Inputs  *state.PortList
	Outputs *state.PortList
}

// Interpreter validates lines and hands accepted bytes to the Sender. Every
// failure is printed to the shell in the alert color; nothing propagates.
type Interpreter struct {
	shell  *shell.Shell
	sender session.Sender
	opts   Options
}

// New creates an interpreter printing to sh. It has no Sender until
// SetSender is called, so lines validate but are not transmitted.
func New(sh *shell.Shell, opts Options) *Interpreter {
	return &Interpreter{shell: sh, opts: opts}
}

// SetSender installs the transmit function; nil disables transmission.
func (i *Interpreter) SetSender(sender session.Sender) {
	i.sender = sender
}

// Available reports whether a Sender is installed.
func (i *Interpreter) Available() bool {
	return i.sender != nil
}

// Send interprets one submitted line.
func (i *Interpreter) Send(line string) {
	words := midi.Tokenize(line)
	if len(words) > 0 {
		switch words[0] {
		case "clear":
			events.Command.Builtin("clear")
			i.shell.Clear()
			return
		case "ports":
			events.Command.Builtin("ports")
			i.printPorts()
			return
		}
	}

	msg, err := midi.ParseCommand(line, i.opts.Strict)
	if err != nil {
		i.fail(line, err)
		return
	}
	if i.sender == nil || len(msg) == 0 {
		return
	}
	events.Command.Send(line, len(msg))
	if err := i.sender(msg); err != nil {
		i.fail(line, midi.RejectTransmit(line))
	}
}

func (i *Interpreter) fail(line string, err error) {
	events.Command.Rejected(line, err)
	i.shell.Print(err.Error(), shell.ColorAlert)
}

func (i *Interpreter) printPorts() {
	rows := [][]string{{"", "direction", "name", "id"}}
	rows = appendPortRows(rows, "receive", i.opts.Inputs)
	rows = appendPortRows(rows, "transmit", i.opts.Outputs)
	if len(rows) == 1 {
		i.shell.Print("(no MIDI ports)", shell.ColorDefault)
		return
	}
	for _, line := range table.Format(rows, nil) {
		i.shell.Print(line, shell.ColorDefault)
	}
}

func appendPortRows(rows [][]string, direction string, list *state.PortList) [][]string {
	if list == nil {
		return rows
	}
	selected := list.Selected()
	for _, entry := range list.Entries() {
		marker := " "
		if entry.ID == selected {
			marker = "*"
		}
		rows = append(rows, []string{marker, direction, entry.Name, entry.ID})
	}
	return rows
}
