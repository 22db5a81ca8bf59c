package events

import "github.com/atomicstack/sysex-shell/internal/logging"

type SessionTracer struct{}

var Session = SessionTracer{}

func (SessionTracer) Ready(inputs, outputs int) {
	logging.Trace("session.ready", map[string]interface{}{"inputs": inputs, "outputs": outputs})
}

func (SessionTracer) Unavailable(err error) {
	payload := map[string]interface{}{}
	if err != nil {
		payload["error"] = err.Error()
	}
	logging.Trace("session.unavailable", payload)
}

func (SessionTracer) BindInput(previous, id string, listening bool) {
	logging.Trace("session.bind.input", map[string]interface{}{"previous": previous, "id": id, "listening": listening})
}

func (SessionTracer) BindOutput(id string) {
	logging.Trace("session.bind.output", map[string]interface{}{"id": id})
}

func (SessionTracer) Send(id string, size int) {
	logging.Trace("session.send", map[string]interface{}{"id": id, "bytes": size})
}

func (SessionTracer) SendSkipped(size int) {
	logging.Trace("session.send.skip", map[string]interface{}{"bytes": size})
}
