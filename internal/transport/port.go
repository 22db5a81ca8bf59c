package transport

import (
	"fmt"
	"strings"
)

// Direction distinguishes receive endpoints from transmit endpoints.
type Direction int

const (
	Input Direction = iota
	Output
)

func (d Direction) String() string {
	switch d {
	case Input:
		return "input"
	case Output:
		return "output"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

// State is the connection state reported for a port.
type State int

const (
	Disconnected State = iota
	Connected
)

func (s State) String() string {
	if s == Connected {
		return "connected"
	}
	return "disconnected"
}

// Port describes one endpoint. ID is stable for as long as the device keeps
// its name; Name and State change with hot-plug events.
type Port struct {
	ID        string
	Name      string
	State     State
	Direction Direction
}

// StateChange reports a hot-plug transition for a single port.
type StateChange struct {
	Port Port
}

// InPort is a bound receive endpoint.
type InPort interface {
	Info() Port
	// Listen delivers every incoming message to fn until stop is called. fn may
	// run on a driver thread.
	Listen(fn func(msg []byte)) (stop func(), err error)
}

// OutPort is a bound transmit endpoint.
type OutPort interface {
	Info() Port
	Send(msg []byte) error
}

// Access is a granted handle on the MIDI subsystem.
type Access interface {
	Inputs() []Port
	Outputs() []Port
	Input(id string) (InPort, bool)
	Output(id string) (OutPort, bool)
	// StateChanges is closed once the access is closed.
	StateChanges() <-chan StateChange
	Close() error
}

// portIDs derives identifiers from port names. gomidi drivers expose no
// device identity beyond the name and an enumeration index, so devices that
// share a name are told apart by their order: "input:Synth", "input:Synth#2".
// Those suffixes are positional; when such a group grows or shrinks the
// watcher reissues the whole group (see reissuedNames).
func portIDs(prefix string, names []string) []string {
	seen := make(map[string]int, len(names))
	ids := make([]string, len(names))
	for i, name := range names {
		key := nameKey(name)
		seen[key]++
		id := prefix + ":" + key
		if n := seen[key]; n > 1 {
			id = fmt.Sprintf("%s#%d", id, n)
		}
		ids[i] = id
	}
	return ids
}

func nameKey(name string) string {
	return strings.TrimSpace(name)
}
