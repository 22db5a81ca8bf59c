package transport

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/atomicstack/sysex-shell/internal/logging"
	"github.com/atomicstack/sysex-shell/internal/logging/events"
)

// Watcher polls the driver at a fixed interval and publishes the difference
// between consecutive port snapshots as StateChange events. The gomidi
// drivers have no native hot-plug notification, so polling stands in for it.
type Watcher struct {
	interval time.Duration
	scan     func(context.Context) (snapshot, error)
	apply    func(snapshot)
	prev     snapshot

	ctx    context.Context
	cancel context.CancelFunc

	events chan StateChange
	wg     sync.WaitGroup
}

func newWatcher(baseline snapshot, interval time.Duration, scan func(context.Context) (snapshot, error), apply func(snapshot)) *Watcher {
	ctx, cancel := context.WithCancel(context.Background())
	w := &Watcher{
		interval: interval,
		scan:     scan,
		apply:    apply,
		prev:     baseline,
		ctx:      ctx,
		cancel:   cancel,
		events:   make(chan StateChange, 16),
	}

	w.wg.Add(1)
	go w.poll()

	go func() {
		w.wg.Wait()
		close(w.events)
	}()

	return w
}

// Events returns the hot-plug stream. It is closed after Stop.
func (w *Watcher) Events() <-chan StateChange {
	return w.events
}

// Stop cancels the watcher. The poller exits after its current scan.
func (w *Watcher) Stop() {
	w.cancel()
}

// Wait blocks until the poller has exited and the events channel is closed.
func (w *Watcher) Wait() {
	w.wg.Wait()
}

func (w *Watcher) poll() {
	defer w.wg.Done()

	throttle := newThrottle(w.interval / 2)
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.ctx.Done():
			return
		case <-ticker.C:
			if !throttle.wait(w.ctx) {
				return
			}
			if !w.rescan() {
				return
			}
		}
	}
}

// rescan applies one snapshot and emits its changes. It returns false once the
// watcher has been stopped.
func (w *Watcher) rescan() bool {
	next, err := w.scan(w.ctx)
	if err != nil {
		if w.ctx.Err() != nil {
			return false
		}
		events.Port.ScanError(err)
		logging.Error(fmt.Errorf("port scan: %w", err))
		return true
	}
	changes := diffSnapshots(w.prev, next)
	w.apply(next)
	w.prev = next
	for _, change := range changes {
		if change.Port.State == Connected {
			events.Port.Connected(change.Port.Direction.String(), change.Port.ID, change.Port.Name)
		} else {
			events.Port.Disconnected(change.Port.Direction.String(), change.Port.ID)
		}
		select {
		case <-w.ctx.Done():
			return false
		case w.events <- change:
		}
	}
	return true
}

// diffSnapshots lists disconnects before connects, inputs before outputs, each
// in enumeration order. Within one direction every disconnect precedes every
// connect, so a reissued id is removed before it is added back.
func diffSnapshots(prev, next snapshot) []StateChange {
	var changes []StateChange
	changes = appendDiff(changes, prev.inputs, next.inputs)
	changes = appendDiff(changes, prev.outputs, next.outputs)
	return changes
}

func appendDiff(changes []StateChange, prev, next []Port) []StateChange {
	reissued := reissuedNames(prev, next)
	nextByID := indexPorts(next)
	for _, p := range prev {
		if _, ok := nextByID[p.ID]; ok && !reissued[nameKey(p.Name)] {
			continue
		}
		p.State = Disconnected
		changes = append(changes, StateChange{Port: p})
	}
	prevByID := indexPorts(prev)
	for _, p := range next {
		if reissued[nameKey(p.Name)] {
			changes = append(changes, StateChange{Port: p})
			continue
		}
		if old, ok := prevByID[p.ID]; ok && old.Name == p.Name && old.State == p.State {
			continue
		}
		changes = append(changes, StateChange{Port: p})
	}
	return changes
}

// reissuedNames returns the names shared by several ports whose group changed
// size between snapshots. Their positional ids may now point at different
// devices, so every port of the group is reported gone and connected again.
func reissuedNames(prev, next []Port) map[string]bool {
	before := countNames(prev)
	after := countNames(next)
	out := make(map[string]bool)
	for _, counts := range []map[string]int{before, after} {
		for name := range counts {
			n, m := before[name], after[name]
			if n != m && (n > 1 || m > 1) {
				out[name] = true
			}
		}
	}
	return out
}

func countNames(ports []Port) map[string]int {
	out := make(map[string]int, len(ports))
	for _, p := range ports {
		out[nameKey(p.Name)]++
	}
	return out
}

func indexPorts(ports []Port) map[string]Port {
	out := make(map[string]Port, len(ports))
	for _, p := range ports {
		out[p.ID] = p
	}
	return out
}
