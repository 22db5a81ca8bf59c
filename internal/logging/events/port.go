package events

import "github.com/atomicstack/sysex-shell/internal/logging"

type PortTracer struct{}

var Port = PortTracer{}

func (PortTracer) Connected(direction, id, name string) {
	logging.Trace("port.connected", map[string]interface{}{"direction": direction, "id": id, "name": name})
}

func (PortTracer) Disconnected(direction, id string) {
	logging.Trace("port.disconnected", map[string]interface{}{"direction": direction, "id": id})
}

func (PortTracer) Renamed(list, id, name string) {
	logging.Trace("port.rename", map[string]interface{}{"list": list, "id": id, "name": name})
}

func (PortTracer) Chosen(list, id string) {
	logging.Trace("port.chosen", map[string]interface{}{"list": list, "id": id})
}

func (PortTracer) Preferred(list, pattern, id string) {
	logging.Trace("port.preferred", map[string]interface{}{"list": list, "pattern": pattern, "id": id})
}

func (PortTracer) ScanError(err error) {
	if err == nil {
		return
	}
	logging.Trace("port.scan.error", map[string]interface{}{"error": err.Error()})
}
