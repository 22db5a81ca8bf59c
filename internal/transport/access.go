package transport

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/atomicstack/sysex-shell/internal/logging"
	"github.com/atomicstack/sysex-shell/internal/midi"
	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
)

const (
	defaultPollInterval = time.Second
	defaultScanTimeout  = 3 * time.Second
)

// Options tunes a DriverAccess.
type Options struct {
	PollInterval time.Duration
	// ScanTimeout bounds a single enumeration; a hung backend skips the scan.
	ScanTimeout time.Duration
	// VirtualIns and VirtualOuts are extra ports opened by this process, such
	// as rtmidi virtual ports, listed alongside the driver's own.
	VirtualIns  []drivers.In
	VirtualOuts []drivers.Out
}

func (o Options) withDefaults() Options {
	if o.PollInterval <= 0 {
		o.PollInterval = defaultPollInterval
	}
	if o.ScanTimeout <= 0 {
		o.ScanTimeout = defaultScanTimeout
	}
	return o
}

type snapshot struct {
	inputs  []Port
	outputs []Port
	ins     map[string]drivers.In
	outs    map[string]drivers.Out
}

// DriverAccess implements Access on top of a gomidi driver.
type DriverAccess struct {
	driver drivers.Driver
	opts   Options

	mu   sync.RWMutex
	snap snapshot

	watcher *Watcher
}

// RequestAccess enumerates the driver once and starts hot-plug polling. Any
// failure to enumerate is reported as midi.ErrTransportUnavailable.
func RequestAccess(ctx context.Context, drv drivers.Driver, opts Options) (*DriverAccess, error) {
	if drv == nil {
		return nil, fmt.Errorf("%w: no MIDI driver", midi.ErrTransportUnavailable)
	}
	a := &DriverAccess{driver: drv, opts: opts.withDefaults()}
	snap, err := a.scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", midi.ErrTransportUnavailable, err)
	}
	a.snap = snap
	a.watcher = newWatcher(snap, a.opts.PollInterval, a.scan, a.store)
	return a, nil
}

func (a *DriverAccess) scan(ctx context.Context) (snapshot, error) {
	type result struct {
		snap snapshot
		err  error
	}
	ch := make(chan result, 1)
	go func() {
		snap, err := a.enumerate()
		ch <- result{snap: snap, err: err}
	}()
	timer := time.NewTimer(a.opts.ScanTimeout)
	defer timer.Stop()
	select {
	case r := <-ch:
		return r.snap, r.err
	case <-timer.C:
		return snapshot{}, fmt.Errorf("port scan timed out after %s", a.opts.ScanTimeout)
	case <-ctx.Done():
		return snapshot{}, ctx.Err()
	}
}

func (a *DriverAccess) enumerate() (snapshot, error) {
	ins, err := a.driver.Ins()
	if err != nil {
		return snapshot{}, fmt.Errorf("list inputs: %w", err)
	}
	outs, err := a.driver.Outs()
	if err != nil {
		return snapshot{}, fmt.Errorf("list outputs: %w", err)
	}
	ins = append(append([]drivers.In(nil), ins...), a.opts.VirtualIns...)
	outs = append(append([]drivers.Out(nil), outs...), a.opts.VirtualOuts...)

	snap := snapshot{
		inputs:  make([]Port, 0, len(ins)),
		outputs: make([]Port, 0, len(outs)),
		ins:     make(map[string]drivers.In, len(ins)),
		outs:    make(map[string]drivers.Out, len(outs)),
	}
	inNames := make([]string, len(ins))
	for i, in := range ins {
		inNames[i] = in.String()
	}
	for i, id := range portIDs(Input.String(), inNames) {
		snap.inputs = append(snap.inputs, Port{ID: id, Name: inNames[i], State: Connected, Direction: Input})
		snap.ins[id] = ins[i]
	}
	outNames := make([]string, len(outs))
	for i, out := range outs {
		outNames[i] = out.String()
	}
	for i, id := range portIDs(Output.String(), outNames) {
		snap.outputs = append(snap.outputs, Port{ID: id, Name: outNames[i], State: Connected, Direction: Output})
		snap.outs[id] = outs[i]
	}
	return snap, nil
}

func (a *DriverAccess) store(snap snapshot) {
	a.mu.Lock()
	a.snap = snap
	a.mu.Unlock()
}

// Inputs lists the currently connected receive ports.
func (a *DriverAccess) Inputs() []Port {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return append([]Port(nil), a.snap.inputs...)
}

// Outputs lists the currently connected transmit ports.
func (a *DriverAccess) Outputs() []Port {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return append([]Port(nil), a.snap.outputs...)
}

// Input resolves a receive port by id.
func (a *DriverAccess) Input(id string) (InPort, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	in, ok := a.snap.ins[id]
	if !ok {
		return nil, false
	}
	for _, p := range a.snap.inputs {
		if p.ID == id {
			return &inPort{info: p, in: in}, true
		}
	}
	return nil, false
}

// Output resolves a transmit port by id.
func (a *DriverAccess) Output(id string) (OutPort, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	out, ok := a.snap.outs[id]
	if !ok {
		return nil, false
	}
	for _, p := range a.snap.outputs {
		if p.ID == id {
			return &outPort{info: p, out: out}, true
		}
	}
	return nil, false
}

// StateChanges streams hot-plug events.
func (a *DriverAccess) StateChanges() <-chan StateChange {
	return a.watcher.Events()
}

// Close stops polling and closes the driver.
func (a *DriverAccess) Close() error {
	a.watcher.Stop()
	a.watcher.Wait()
	var errs []error
	for _, in := range a.opts.VirtualIns {
		if err := in.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	for _, out := range a.opts.VirtualOuts {
		if err := out.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if err := a.driver.Close(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

type inPort struct {
	info Port
	in   drivers.In
}

func (p *inPort) Info() Port {
	return p.info
}

func (p *inPort) Listen(fn func(msg []byte)) (func(), error) {
	stop, err := gomidi.ListenTo(p.in, func(msg gomidi.Message, _ int32) {
		fn(append([]byte(nil), msg...))
	},
		gomidi.UseSysEx(),
		gomidi.UseTimeCode(),
		gomidi.UseActiveSense(),
		gomidi.HandleError(func(err error) {
			logging.Error(fmt.Errorf("listen %s: %w", p.info.ID, err))
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("listen %s: %w", p.info.ID, err)
	}
	return stop, nil
}

type outPort struct {
	info Port
	out  drivers.Out

	once sync.Once
	send func(gomidi.Message) error
	err  error
}

func (p *outPort) Info() Port {
	return p.info
}

// Send writes msg, which may hold several complete messages back to back.
// Malformed input is refused before anything reaches the driver.
func (p *outPort) Send(msg []byte) error {
	parts, err := midi.SplitMessages(msg)
	if err != nil {
		return fmt.Errorf("send %s: %w", p.info.ID, err)
	}
	p.once.Do(func() {
		p.send, p.err = gomidi.SendTo(p.out)
	})
	if p.err != nil {
		return fmt.Errorf("open %s: %w", p.info.ID, p.err)
	}
	for _, part := range parts {
		if err := p.send(gomidi.Message(part)); err != nil {
			return fmt.Errorf("send %s: %w", p.info.ID, err)
		}
	}
	return nil
}
