// Package session binds the chosen receive and transmit ports of a granted
// MIDI access and keeps those bindings current as selections and devices
// change.
//
// A Session moves from Uninitialized to either Ready or Unavailable exactly
// once. Unavailable is terminal: the caller gets a nil Sender and the shell
// treats transmission as permanently disabled. In Ready the Sender is always
// non-nil, and sending while no output is chosen is a silent no-op.
//
// Bindings change only on the caller's event loop (selection callbacks and
// hot-plug handling). Driver threads only ever call the receive hook, so the
// mutex guards the bound pair against the occasional off-loop reader.
package session

import (
	"context"
	"fmt"
	"sync"

	"github.com/atomicstack/sysex-shell/internal/data/dispatcher"
	"github.com/atomicstack/sysex-shell/internal/logging"
	"github.com/atomicstack/sysex-shell/internal/logging/events"
	"github.com/atomicstack/sysex-shell/internal/midi"
	"github.com/atomicstack/sysex-shell/internal/state"
	"github.com/atomicstack/sysex-shell/internal/transport"
)

// Status is the lifecycle state of a Session.
type Status int

const (
	Uninitialized Status = iota
	Ready
	Unavailable
)

func (s Status) String() string {
	switch s {
	case Ready:
		return "ready"
	case Unavailable:
		return "unavailable"
	default:
		return "uninitialized"
	}
}

// Sender transmits one message on the bound output port.
type Sender func(msg []byte) error

// Requester negotiates access with the MIDI subsystem.
type Requester func(ctx context.Context) (transport.Access, error)

// Received is one message from the bound input. Generation identifies the
// binding it arrived under so stale deliveries can be discarded.
type Received struct {
	PortID     string
	Generation uint64
	Data       []byte
}

// ReceiveFunc is invoked for every incoming message, possibly off-loop.
type ReceiveFunc func(Received)

// Session owns the bound input/output pair.
type Session struct {
	rx      *state.Binding
	tx      *state.Binding
	receive ReceiveFunc

	mu         sync.Mutex
	status     Status
	access     transport.Access
	dispatcher *dispatcher.Dispatcher
	inputID    string
	stop       func()
	generation uint64
	output     transport.OutPort
}

// New prepares a session for the two selector bindings. receive may be nil,
// in which case inputs are bound but never listened to.
func New(rx, tx *state.Binding, receive ReceiveFunc) *Session {
	return &Session{rx: rx, tx: tx, receive: receive}
}

// Open requests access and attaches to it. It returns a nil Sender and an
// error wrapping midi.ErrTransportUnavailable when access is refused.
func (s *Session) Open(ctx context.Context, request Requester) (Sender, error) {
	if request == nil {
		return nil, s.Fail(nil)
	}
	access, err := request(ctx)
	if err != nil || access == nil {
		return nil, s.Fail(err)
	}
	return s.Attach(access), nil
}

// Fail moves the session to Unavailable.
func (s *Session) Fail(cause error) error {
	s.mu.Lock()
	s.status = Unavailable
	s.mu.Unlock()
	events.Session.Unavailable(cause)
	if cause == nil {
		return midi.ErrTransportUnavailable
	}
	logging.Error(cause)
	return fmt.Errorf("%w: %v", midi.ErrTransportUnavailable, cause)
}

// Attach binds the selectors to access, registers every existing port and
// returns the Sender. Call it on the event loop.
func (s *Session) Attach(access transport.Access) Sender {
	s.mu.Lock()
	if s.status != Uninitialized {
		ready := s.status == Ready
		s.mu.Unlock()
		if ready {
			return s.send
		}
		return nil
	}
	s.access = access
	s.status = Ready
	s.mu.Unlock()

	s.dispatcher = dispatcher.New(s.rx.Bind(s.bindInput), s.tx.Bind(s.bindOutput))
	inputs := access.Inputs()
	outputs := access.Outputs()
	s.dispatcher.Prime(inputs)
	s.dispatcher.Prime(outputs)
	events.Session.Ready(len(inputs), len(outputs))
	return s.send
}

// Status reports the lifecycle state.
func (s *Session) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// HandleStateChange routes a hot-plug event to the selectors, which may
// rebind ports as a side effect. Call it on the event loop.
func (s *Session) HandleStateChange(evt transport.StateChange) dispatcher.Result {
	if s.dispatcher == nil {
		return dispatcher.Result{}
	}
	return s.dispatcher.Handle(evt)
}

// Current reports whether r arrived under the binding that is still active.
func (s *Session) Current(r Received) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return r.PortID != "" && r.PortID == s.inputID && r.Generation == s.generation
}

// InputID returns the bound receive port id.
func (s *Session) InputID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inputID
}

// OutputID returns the bound transmit port id.
func (s *Session) OutputID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.output == nil {
		return ""
	}
	return s.output.Info().ID
}

func (s *Session) bindInput(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if id != "" && id == s.inputID {
		return
	}
	previous := s.inputID
	if s.stop != nil {
		s.stop()
		s.stop = nil
	}
	s.generation++
	s.inputID = ""
	if id == "" || s.access == nil {
		events.Session.BindInput(previous, "", false)
		return
	}
	in, ok := s.access.Input(id)
	if !ok {
		events.Session.BindInput(previous, "", false)
		return
	}
	s.inputID = id
	if s.receive == nil {
		events.Session.BindInput(previous, id, false)
		return
	}
	generation := s.generation
	receive := s.receive
	stop, err := in.Listen(func(msg []byte) {
		receive(Received{PortID: id, Generation: generation, Data: msg})
	})
	if err != nil {
		logging.Error(err)
		events.Session.BindInput(previous, id, false)
		return
	}
	s.stop = stop
	events.Session.BindInput(previous, id, true)
}

func (s *Session) bindOutput(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.output = nil
	if id != "" && s.access != nil {
		if out, ok := s.access.Output(id); ok {
			s.output = out
		}
	}
	events.Session.BindOutput(id)
}

func (s *Session) send(msg []byte) error {
	s.mu.Lock()
	out := s.output
	s.mu.Unlock()
	if out == nil {
		events.Session.SendSkipped(len(msg))
		return nil
	}
	events.Session.Send(out.Info().ID, len(msg))
	if err := out.Send(msg); err != nil {
		logging.Error(err)
		return fmt.Errorf("%w: %v", midi.ErrTransmitRejected, err)
	}
	return nil
}

// Close detaches the input listener and releases the access.
func (s *Session) Close() error {
	s.mu.Lock()
	if s.stop != nil {
		s.stop()
		s.stop = nil
	}
	s.inputID = ""
	s.output = nil
	access := s.access
	s.mu.Unlock()
	if access == nil {
		return nil
	}
	return access.Close()
}
