package events

import "github.com/atomicstack/sysex-shell/internal/logging"

type ShellTracer struct{}

type CommandTracer struct{}

type ReceiveTracer struct{}

type FilterTracer struct{}

type dropReason string

const (
	DropStale    dropReason = "stale"
	DropFiltered dropReason = "filtered"
	DropOverflow dropReason = "overflow"
)

var (
	Shell   = ShellTracer{}
	Command = CommandTracer{}
	Receive = ReceiveTracer{}
	Filter  = FilterTracer{}
)

func (ShellTracer) Submit(line string, recorded bool) {
	logging.Trace("shell.submit", map[string]interface{}{"line": line, "recorded": recorded})
}

func (ShellTracer) History(index, length int) {
	logging.Trace("shell.history", map[string]interface{}{"index": index, "length": length})
}

func (ShellTracer) Clear(lines int) {
	logging.Trace("shell.clear", map[string]interface{}{"lines": lines})
}

func (CommandTracer) Send(line string, size int) {
	logging.Trace("command.send", map[string]interface{}{"line": line, "bytes": size})
}

func (CommandTracer) Rejected(line string, err error) {
	payload := map[string]interface{}{"line": line}
	if err != nil {
		payload["error"] = err.Error()
	}
	logging.Trace("command.rejected", payload)
}

func (CommandTracer) Builtin(name string) {
	logging.Trace("command.builtin", map[string]interface{}{"name": name})
}

func (ReceiveTracer) Message(id string, size int) {
	logging.Trace("receive.message", map[string]interface{}{"id": id, "bytes": size})
}

func (ReceiveTracer) Dropped(id string, reason dropReason) {
	logging.Trace("receive.drop", map[string]interface{}{"id": id, "reason": string(reason)})
}

func (FilterTracer) Change(mode string) {
	logging.Trace("filter.change", map[string]interface{}{"mode": mode})
}
