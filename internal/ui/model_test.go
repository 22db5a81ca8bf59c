package ui

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/atomicstack/sysex-shell/internal/midi"
	"github.com/atomicstack/sysex-shell/internal/session"
	"github.com/atomicstack/sysex-shell/internal/shell"
	"github.com/atomicstack/sysex-shell/internal/transport"
	tea "github.com/charmbracelet/bubbletea"
)

type emptyAccess struct{}

func (emptyAccess) Inputs() []transport.Port                   { return nil }
func (emptyAccess) Outputs() []transport.Port                  { return nil }
func (emptyAccess) Input(string) (transport.InPort, bool)      { return nil, false }
func (emptyAccess) Output(string) (transport.OutPort, bool)    { return nil, false }
func (emptyAccess) StateChanges() <-chan transport.StateChange { return nil }
func (emptyAccess) Close() error                               { return nil }

func keyPress(t tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: t}
}

func typeText(h *Harness, text string) {
	h.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
}

func texts(lines []shell.Line) []string {
	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = line.Text
	}
	return out
}

func TestRefusedAccessPrintsWarning(t *testing.T) {
	m := NewModel(Options{Request: func(context.Context) (transport.Access, error) {
		return nil, errors.New("no backend")
	}})
	h := NewHarness(m)
	h.Start()

	lines := m.Shell().Lines()
	if len(lines) != 1 || lines[0].Text != midi.ErrTransportUnavailable.Error() || lines[0].Color != shell.ColorAlert {
		t.Fatalf("expected unavailable warning, got %#v", lines)
	}
	if got := m.Session().Status(); got != session.Unavailable {
		t.Fatalf("expected unavailable session, got %s", got)
	}
	if m.interpreter.Available() {
		t.Fatalf("expected no sender after refusal")
	}
	if !strings.Contains(h.View(), "offline") {
		t.Fatalf("expected offline marker in header, got %q", h.View())
	}
}

func TestMissingRequesterIsUnavailable(t *testing.T) {
	m := NewModel(Options{})
	NewHarness(m).Start()
	if got := m.Session().Status(); got != session.Unavailable {
		t.Fatalf("expected unavailable session, got %s", got)
	}
}

func TestEmptyAccessWarnsAboutPorts(t *testing.T) {
	m := NewModel(Options{Request: func(context.Context) (transport.Access, error) {
		return emptyAccess{}, nil
	}})
	h := NewHarness(m)
	h.Start()

	got := texts(m.Shell().Lines())
	want := []string{midi.ErrNoInputs.Error(), midi.ErrNoOutputs.Error()}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Fatalf("expected %v, got %v", want, got)
	}
	if m.Session().Status() != session.Ready {
		t.Fatalf("expected ready session")
	}
	if !m.interpreter.Available() {
		t.Fatalf("expected sender installed")
	}
	if view := h.View(); strings.Contains(view, "connecting") || strings.Contains(view, "offline") {
		t.Fatalf("expected no link marker once ready, got %q", view)
	}
}

func TestHistoryNavigation(t *testing.T) {
	m := NewModel(Options{})
	h := NewHarness(m)
	typeText(h, "f0 01 f7")
	h.Send(keyPress(tea.KeyEnter))
	typeText(h, "90 3c")
	h.Send(keyPress(tea.KeyEnter))

	if m.input.Value() != "" {
		t.Fatalf("expected input cleared after submit, got %q", m.input.Value())
	}
	h.Send(keyPress(tea.KeyUp))
	if got := m.input.Value(); got != "90 3c" {
		t.Fatalf("expected newest entry, got %q", got)
	}
	h.Send(keyPress(tea.KeyUp))
	if got := m.input.Value(); got != "f0 01 f7" {
		t.Fatalf("expected oldest entry, got %q", got)
	}
	h.Send(keyPress(tea.KeyDown))
	h.Send(keyPress(tea.KeyDown))
	if got := m.input.Value(); got != "" {
		t.Fatalf("expected empty edit slot, got %q", got)
	}
}

func TestSubmitEchoesAndReportsErrors(t *testing.T) {
	m := NewModel(Options{})
	h := NewHarness(m)
	typeText(h, "f0 01")
	h.Send(keyPress(tea.KeyEnter))

	lines := m.Shell().Lines()
	if len(lines) != 2 {
		t.Fatalf("expected echo and error, got %#v", lines)
	}
	if lines[0].Text != "> f0 01" {
		t.Fatalf("unexpected echo %q", lines[0].Text)
	}
	if lines[1].Text != midi.ErrUnterminatedSysEx.Error() || lines[1].Color != shell.ColorAlert {
		t.Fatalf("unexpected error line %#v", lines[1])
	}
}

func TestClearKeyEmptiesScrollback(t *testing.T) {
	m := NewModel(Options{})
	h := NewHarness(m)
	typeText(h, "gg")
	h.Send(keyPress(tea.KeyEnter))
	if len(m.Shell().Lines()) == 0 {
		t.Fatalf("expected output before clearing")
	}
	h.Send(keyPress(tea.KeyCtrlL))
	if len(m.Shell().Lines()) != 0 {
		t.Fatalf("expected cleared scrollback")
	}
	if len(m.Shell().History()) != 1 {
		t.Fatalf("expected history kept")
	}
}

func TestFilterKeyCycles(t *testing.T) {
	m := NewModel(Options{})
	h := NewHarness(m)
	if m.Filter() != midi.FilterExclusive {
		t.Fatalf("expected default exclusive filter")
	}
	h.Send(keyPress(tea.KeyCtrlF))
	if m.Filter() != midi.FilterCommon {
		t.Fatalf("expected common filter, got %s", m.Filter())
	}
	if !strings.Contains(h.View(), "Filter: "+midi.FilterCommon.Label()) {
		t.Fatalf("expected header to show filter, got %q", h.View())
	}
}

func TestStaleDeliveryIsDropped(t *testing.T) {
	m := NewModel(Options{})
	m.display(session.Received{PortID: "input:Gone", Generation: 7, Data: []byte{0xf0, 0xf7}})
	if len(m.Shell().Lines()) != 0 {
		t.Fatalf("expected stale delivery dropped, got %#v", m.Shell().Lines())
	}
}

func TestCopyLastReceived(t *testing.T) {
	m := NewModel(Options{ShowFooter: true})
	var copied string
	m.copy = func(text string) error {
		copied = text
		return nil
	}
	h := NewHarness(m)
	h.Send(keyPress(tea.KeyCtrlY))
	if copied != "" || !strings.Contains(h.View(), "Nothing received yet") {
		t.Fatalf("expected nothing copied, view %q", h.View())
	}

	m.lastReceived = "f0 7e f7"
	h.Send(keyPress(tea.KeyCtrlY))
	if copied != "f0 7e f7" {
		t.Fatalf("expected last received copied, got %q", copied)
	}

	m.copy = func(string) error { return errors.New("no clipboard") }
	h.Send(keyPress(tea.KeyCtrlY))
	if !strings.Contains(h.View(), "Copy failed: no clipboard") {
		t.Fatalf("expected failure in footer, got %q", h.View())
	}
}

func TestQuitKeys(t *testing.T) {
	m := NewModel(Options{})
	for _, k := range []tea.KeyType{tea.KeyCtrlC, tea.KeyEsc} {
		_, cmd := m.Update(keyPress(k))
		if cmd == nil {
			t.Fatalf("expected quit command for %v", k)
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Fatalf("expected tea.QuitMsg for %v", k)
		}
	}
}

func TestViewLayout(t *testing.T) {
	m := NewModel(Options{ShowFooter: true})
	h := NewHarness(m)
	h.Send(tea.WindowSizeMsg{Width: 100, Height: 12})
	if m.viewport.Height != 9 {
		t.Fatalf("expected viewport height 9, got %d", m.viewport.Height)
	}
	view := h.View()
	for _, want := range []string{"Receive: (none)", "Transmit: (none)", "Filter: System Exclusive", "connecting", "quit"} {
		if !strings.Contains(view, want) {
			t.Fatalf("expected %q in view %q", want, view)
		}
	}

	hidden := NewModel(Options{Height: 12})
	if hidden.viewport.Height != 10 {
		t.Fatalf("expected footerless viewport height 10, got %d", hidden.viewport.Height)
	}
	hidden.Update(tea.WindowSizeMsg{Width: 50, Height: 30})
	if hidden.viewport.Height != 10 {
		t.Fatalf("expected fixed height preserved, got %d", hidden.viewport.Height)
	}
}

func TestPageKeysScrollBack(t *testing.T) {
	m := NewModel(Options{Height: 6})
	h := NewHarness(m)
	for i := 0; i < 20; i++ {
		m.Shell().Print("line", shell.ColorDefault)
	}
	h.Send(tea.WindowSizeMsg{Width: 80, Height: 6})
	if !m.viewport.AtBottom() {
		t.Fatalf("expected viewport to follow output")
	}
	h.Send(keyPress(tea.KeyPgUp))
	if m.viewport.AtBottom() || !m.scrolled {
		t.Fatalf("expected scrolled back")
	}
	m.Shell().Print("new", shell.ColorDefault)
	h.Send(tea.WindowSizeMsg{Width: 80, Height: 6})
	if m.viewport.AtBottom() {
		t.Fatalf("expected scroll position kept while reading back")
	}
	for i := 0; i < 10; i++ {
		h.Send(keyPress(tea.KeyPgDown))
	}
	if m.scrolled {
		t.Fatalf("expected follow mode restored at bottom")
	}
}

func TestHarnessParksBlockingCommands(t *testing.T) {
	m := NewModel(Options{})
	h := NewHarness(m)
	block := make(chan session.Received)
	h.processCmd(waitForReceived(block))
	go func() {
		block <- session.Received{PortID: "input:X", Data: []byte{0xf0, 0xf7}}
	}()
	if n := h.Flush(200 * time.Millisecond); n != 1 {
		t.Fatalf("expected one parked message delivered, got %d", n)
	}
}

func TestReceiveOverflowDrops(t *testing.T) {
	m := NewModel(Options{})
	for i := 0; i < receiveQueue+5; i++ {
		m.enqueue(session.Received{PortID: "input:Loop", Data: []byte{0xf8}})
	}
	if got := len(m.incoming); got != receiveQueue {
		t.Fatalf("expected a full queue of %d, got %d", receiveQueue, got)
	}
}
