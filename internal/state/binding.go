package state

import (
	"github.com/atomicstack/sysex-shell/internal/logging/events"
	"github.com/lithammer/fuzzysearch/fuzzy"
)

// Updater reconciles a single entry of a bound list. An empty name means the
// port is gone.
type Updater func(id, name string)

// Binding connects a PortList to the registry feed on one side and to the
// consumer of the current choice on the other.
type Binding struct {
	name     string
	list     *PortList
	onChosen func(id string)
	prefer   string
}

// NewBinding wraps list. name labels trace output ("rx", "tx").
func NewBinding(name string, list *PortList) *Binding {
	if list == nil {
		list = NewPortList()
	}
	return &Binding{name: name, list: list}
}

// List exposes the underlying port list.
func (b *Binding) List() *PortList {
	return b.list
}

// Prefer makes newly appearing ports whose name fuzzy-matches pattern take
// the selection, unless the current choice already matches.
func (b *Binding) Prefer(pattern string) {
	b.prefer = pattern
}

// Bind registers the choice consumer and returns the updater for the
// registry to call.
func (b *Binding) Bind(onChosen func(id string)) Updater {
	b.onChosen = onChosen
	return b.Update
}

// Update adds, renames or removes id. Every change re-broadcasts the effective
// choice, since a removal can silently move it; an update that changes
// nothing is not broadcast.
func (b *Binding) Update(id, name string) {
	if idx := b.list.Index(id); idx >= 0 {
		if name != "" {
			if b.list.rename(idx, name) {
				events.Port.Renamed(b.name, id, name)
				b.broadcast()
			}
			return
		}
		b.list.removeAt(idx)
		b.broadcast()
		return
	}
	if name == "" {
		return
	}
	b.list.append(id, name)
	if b.preferred(name) {
		if current, ok := b.list.SelectedEntry(); !ok || !b.preferred(current.Name) {
			b.list.Select(id)
			events.Port.Preferred(b.name, b.prefer, id)
		}
	}
	b.broadcast()
}

// Choose records a direct user choice and broadcasts it.
func (b *Binding) Choose(id string) {
	b.list.Select(id)
	b.broadcast()
}

// Cycle moves the user's choice by delta and broadcasts it.
func (b *Binding) Cycle(delta int) {
	if b.list.Cycle(delta) {
		b.broadcast()
	}
}

func (b *Binding) preferred(name string) bool {
	return b.prefer != "" && fuzzy.MatchNormalizedFold(b.prefer, name)
}

func (b *Binding) broadcast() {
	id := b.list.Selected()
	events.Port.Chosen(b.name, id)
	if b.onChosen != nil {
		b.onChosen(id)
	}
}
