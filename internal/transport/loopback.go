package transport

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/atomicstack/sysex-shell/internal/logging"
	"gitlab.com/gomidi/midi/v2/drivers"
)

// ErrPortClosed is returned when sending to a closed or unplugged loopback port.
var ErrPortClosed = errors.New("port closed")

// Loopback is an in-process drivers.Driver exposing one output whose
// messages arrive on one input of the same name. It serves the --loopback
// mode and tests that need a real driver without hardware.
type Loopback struct {
	name string

	mu        sync.Mutex
	plugged   bool
	closed    bool
	listeners map[int]loopListener
	nextID    int
	opened    time.Time

	in  *loopIn
	out *loopOut
}

type loopListener struct {
	fn     func(msg []byte, milliseconds int32)
	config drivers.ListenConfig
}

// NewLoopback creates a plugged-in loopback pair.
func NewLoopback(name string) *Loopback {
	l := &Loopback{
		name:      name,
		plugged:   true,
		listeners: make(map[int]loopListener),
		opened:    time.Now(),
	}
	l.in = &loopIn{loopPort{owner: l}}
	l.out = &loopOut{loopPort{owner: l}}
	return l
}

// SetPlugged simulates attaching or detaching the device.
func (l *Loopback) SetPlugged(plugged bool) {
	l.mu.Lock()
	l.plugged = plugged
	if !plugged {
		l.listeners = make(map[int]loopListener)
	}
	l.mu.Unlock()
}

func (l *Loopback) Ins() ([]drivers.In, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed || !l.plugged {
		return nil, nil
	}
	return []drivers.In{l.in}, nil
}

func (l *Loopback) Outs() ([]drivers.Out, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed || !l.plugged {
		return nil, nil
	}
	return []drivers.Out{l.out}, nil
}

func (l *Loopback) String() string {
	return "loopback"
}

func (l *Loopback) Close() error {
	l.mu.Lock()
	l.closed = true
	l.listeners = make(map[int]loopListener)
	l.mu.Unlock()
	return nil
}

// deliver hands a copy of msg to every listener whose config admits it.
// Listeners run synchronously on the sender's goroutine.
func (l *Loopback) deliver(msg []byte) error {
	l.mu.Lock()
	if l.closed || !l.plugged {
		l.mu.Unlock()
		return ErrPortClosed
	}
	targets := make([]loopListener, 0, len(l.listeners))
	for i := 0; i < l.nextID; i++ {
		if ln, ok := l.listeners[i]; ok {
			targets = append(targets, ln)
		}
	}
	ms := int32(time.Since(l.opened) / time.Millisecond)
	l.mu.Unlock()

	for _, ln := range targets {
		if !admits(ln.config, msg) {
			continue
		}
		l.dispatch(ln, append([]byte(nil), msg...), ms)
	}
	return nil
}

// dispatch runs one listener. A listener that panics is logged and skipped
// so the sender survives, as it would with a driver thread in between.
func (l *Loopback) dispatch(ln loopListener, msg []byte, ms int32) {
	defer func() {
		if r := recover(); r != nil {
			logging.Error(fmt.Errorf("loopback %s listener: %v", l.name, r))
		}
	}()
	ln.fn(msg, ms)
}

// admits mirrors the message classes a hardware driver ignores unless asked.
func admits(cfg drivers.ListenConfig, msg []byte) bool {
	if len(msg) == 0 {
		return true
	}
	switch msg[0] {
	case 0xf0:
		return cfg.SysEx
	case 0xf1:
		return cfg.TimeCode
	case 0xfe:
		return cfg.ActiveSense
	}
	return true
}

type loopPort struct {
	owner *Loopback
	open  bool
}

func (p *loopPort) Open() error {
	p.owner.mu.Lock()
	defer p.owner.mu.Unlock()
	if p.owner.closed {
		return ErrPortClosed
	}
	p.open = true
	return nil
}

func (p *loopPort) Close() error {
	p.owner.mu.Lock()
	p.open = false
	p.owner.mu.Unlock()
	return nil
}

func (p *loopPort) IsOpen() bool {
	p.owner.mu.Lock()
	defer p.owner.mu.Unlock()
	return p.open
}

func (p *loopPort) Number() int {
	return 0
}

func (p *loopPort) String() string {
	return p.owner.name
}

func (p *loopPort) Underlying() interface{} {
	return p.owner
}

type loopIn struct {
	loopPort
}

func (p *loopIn) Listen(onMsg func(msg []byte, milliseconds int32), config drivers.ListenConfig) (func(), error) {
	l := p.owner
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed || !l.plugged {
		return nil, ErrPortClosed
	}
	id := l.nextID
	l.nextID++
	l.listeners[id] = loopListener{fn: onMsg, config: config}
	return func() {
		l.mu.Lock()
		delete(l.listeners, id)
		l.mu.Unlock()
	}, nil
}

type loopOut struct {
	loopPort
}

func (p *loopOut) Send(data []byte) error {
	return p.owner.deliver(data)
}
