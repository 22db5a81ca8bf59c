package dispatcher

import (
	"testing"

	"github.com/atomicstack/sysex-shell/internal/state"
	"github.com/atomicstack/sysex-shell/internal/transport"
)

func TestPrimeRoutesByDirection(t *testing.T) {
	rx := state.NewBinding("rx", nil)
	tx := state.NewBinding("tx", nil)
	d := New(rx.Bind(nil), tx.Bind(nil))

	d.Prime([]transport.Port{
		{ID: "input:A", Name: "A", State: transport.Connected, Direction: transport.Input},
		{ID: "output:B", Name: "B", State: transport.Connected, Direction: transport.Output},
		{ID: "input:C", Name: "C", State: transport.Connected, Direction: transport.Input},
	})

	if rx.List().Len() != 2 || tx.List().Len() != 1 {
		t.Fatalf("expected 2 inputs and 1 output, got %d and %d", rx.List().Len(), tx.List().Len())
	}
	if rx.List().Selected() != "input:A" || tx.List().Selected() != "output:B" {
		t.Fatalf("unexpected selections %q %q", rx.List().Selected(), tx.List().Selected())
	}
}

func TestHandleDisconnectRemovesEntry(t *testing.T) {
	rx := state.NewBinding("rx", nil)
	var chosen []string
	d := New(rx.Bind(func(id string) { chosen = append(chosen, id) }), nil)
	port := transport.Port{ID: "input:X", Name: "X", State: transport.Connected, Direction: transport.Input}
	d.Handle(transport.StateChange{Port: port})

	port.State = transport.Disconnected
	res := d.Handle(transport.StateChange{Port: port})
	if !res.InputsUpdated || res.OutputsUpdated {
		t.Fatalf("unexpected result %#v", res)
	}
	if rx.List().Len() != 0 {
		t.Fatalf("expected disconnected port removed")
	}
	if last := chosen[len(chosen)-1]; last != "" {
		t.Fatalf("expected empty selection broadcast, got %q", last)
	}
}

func TestHandleConnectedWithoutNameRemoves(t *testing.T) {
	tx := state.NewBinding("tx", nil)
	d := New(nil, tx.Bind(nil))
	d.Handle(transport.StateChange{Port: transport.Port{ID: "output:Y", Name: "Y", State: transport.Connected, Direction: transport.Output}})
	d.Handle(transport.StateChange{Port: transport.Port{ID: "output:Y", State: transport.Connected, Direction: transport.Output}})
	if tx.List().Len() != 0 {
		t.Fatalf("expected nameless port to be removed")
	}
}
