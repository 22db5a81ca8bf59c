package dispatcher

import (
	"github.com/atomicstack/sysex-shell/internal/state"
	"github.com/atomicstack/sysex-shell/internal/transport"
)

// Result reports which list a hot-plug event touched.
type Result struct {
	InputsUpdated  bool
	OutputsUpdated bool
}

// Dispatcher keeps the receive and transmit lists in step with the device
// registry: it primes both from the initial enumeration and routes each
// hot-plug event to the updater for the port's direction.
type Dispatcher struct {
	inputs  state.Updater
	outputs state.Updater
}

func New(inputs, outputs state.Updater) *Dispatcher {
	return &Dispatcher{inputs: inputs, outputs: outputs}
}

// Prime registers every port of an initial enumeration.
func (d *Dispatcher) Prime(ports []transport.Port) {
	for _, port := range ports {
		d.Handle(transport.StateChange{Port: port})
	}
}

// Handle forwards one state change. A connected port with a name is an add or
// rename; anything else removes it.
func (d *Dispatcher) Handle(evt transport.StateChange) Result {
	var res Result
	port := evt.Port
	name := ""
	if port.State == transport.Connected {
		name = port.Name
	}
	switch port.Direction {
	case transport.Input:
		if d.inputs != nil {
			d.inputs(port.ID, name)
			res.InputsUpdated = true
		}
	case transport.Output:
		if d.outputs != nil {
			d.outputs(port.ID, name)
			res.OutputsUpdated = true
		}
	}
	return res
}
