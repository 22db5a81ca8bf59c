package ui

import (
	"context"
	"reflect"

	"github.com/atomicstack/sysex-shell/internal/midi"
	"github.com/atomicstack/sysex-shell/internal/session"
	"github.com/atomicstack/sysex-shell/internal/shell"
	"github.com/atomicstack/sysex-shell/internal/state"
	"github.com/atomicstack/sysex-shell/internal/theme"
	"github.com/atomicstack/sysex-shell/internal/transport"
	"github.com/atomicstack/sysex-shell/internal/ui/command"
	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	defaultWidth  = 80
	defaultHeight = 24
	promptText    = "> "
	// receiveQueue bounds the messages buffered between the driver callback
	// and the event loop; overflow is dropped and traced.
	receiveQueue = 256
)

var styles = theme.Default()

type msgHandler func(tea.Msg) tea.Cmd

// Options configures a Model.
type Options struct {
	Context         context.Context
	Request         session.Requester
	PreferredInput  string
	PreferredOutput string
	Filter          midi.FilterMode
	Strict          bool
	HistoryLimit    int
	ShowFooter      bool
	Width           int
	Height          int
}

// Model implements the Bubble Tea model for the SysEx shell.
type Model struct {
	ctx     context.Context
	request session.Requester

	shell       *shell.Shell
	interpreter *command.Interpreter
	session     *session.Session
	rx          *state.Binding
	tx          *state.Binding
	filter      midi.FilterMode

	incoming chan session.Received
	changes  <-chan transport.StateChange

	input    textinput.Model
	viewport viewport.Model
	help     help.Model
	keys     keyMap

	width       int
	height      int
	fixedWidth  bool
	fixedHeight bool
	showFooter  bool
	rendered    uint64
	dirty       bool
	scrolled    bool

	lastReceived string
	infoMsg      string
	infoAlert    bool
	copy         func(string) error

	handlers map[reflect.Type]msgHandler
}

// NewModel wires the shell, interpreter and session together. No MIDI access
// is requested until Init runs.
func NewModel(opts Options) *Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	rx := state.NewBinding("rx", nil)
	rx.Prefer(opts.PreferredInput)
	tx := state.NewBinding("tx", nil)
	tx.Prefer(opts.PreferredOutput)

	m := &Model{
		ctx:        ctx,
		request:    opts.Request,
		rx:         rx,
		tx:         tx,
		filter:     opts.Filter,
		incoming:   make(chan session.Received, receiveQueue),
		help:       help.New(),
		keys:       defaultKeyMap(),
		showFooter: opts.ShowFooter,
		copy:       clipboard.WriteAll,
		width:      defaultWidth,
		height:     defaultHeight,
	}
	m.shell = shell.New(opts.HistoryLimit, nil)
	m.interpreter = command.New(m.shell, command.Options{
		Strict:  opts.Strict,
		Inputs:  rx.List(),
		Outputs: tx.List(),
	})
	m.shell.SetHandler(m.interpreter.Send)
	m.session = session.New(rx, tx, m.enqueue)

	if opts.Width > 0 {
		m.width = opts.Width
		m.fixedWidth = true
	}
	if opts.Height > 0 {
		m.height = opts.Height
		m.fixedHeight = true
	}

	in := textinput.New()
	in.Prompt = promptText
	in.Placeholder = "f0 7e 7f 06 01 f7"
	if styles.Prompt != nil {
		in.PromptStyle = styles.Prompt.Copy()
	}
	if styles.Output != nil {
		in.TextStyle = styles.Output.Copy()
	}
	if styles.Placeholder != nil {
		in.PlaceholderStyle = styles.Placeholder.Copy()
	}
	if styles.Cursor != nil {
		in.Cursor.Style = styles.Cursor.Copy()
	}
	in.Cursor.SetMode(cursor.CursorStatic)
	in.Focus()
	m.input = in
	m.viewport = viewport.New(m.width, 1)
	m.layout()
	m.registerHandlers()
	return m
}

// Init is part of the tea.Model interface.
func (m *Model) Init() tea.Cmd {
	return requestAccess(m.ctx, m.request)
}

// Update responds to Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmds := make([]tea.Cmd, 0, 2)
	if handler := m.handlerFor(msg); handler != nil {
		if cmd := handler(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return m, m.finishUpdate(cmds)
}

// Close releases the session and its MIDI access.
func (m *Model) Close() error {
	return m.session.Close()
}

// Shell exposes the console model.
func (m *Model) Shell() *shell.Shell {
	return m.shell
}

// Session exposes the transport session.
func (m *Model) Session() *session.Session {
	return m.session
}

// Filter returns the active display filter.
func (m *Model) Filter() midi.FilterMode {
	return m.filter
}

func (m *Model) registerHandlers() {
	m.handlers = map[reflect.Type]msgHandler{
		reflect.TypeOf(tea.KeyMsg{}):        m.handleKeyMsg,
		reflect.TypeOf(tea.WindowSizeMsg{}): m.handleWindowSizeMsg,
		reflect.TypeOf(accessMsg{}):         m.handleAccessMsg,
		reflect.TypeOf(transportEventMsg{}): m.handleTransportEventMsg,
		reflect.TypeOf(transportDoneMsg{}):  m.handleTransportDoneMsg,
		reflect.TypeOf(receivedMsg{}):       m.handleReceivedMsg,
	}
}

func (m *Model) handlerFor(msg tea.Msg) msgHandler {
	if msg == nil || m.handlers == nil {
		return nil
	}
	t := reflect.TypeOf(msg)
	if handler, ok := m.handlers[t]; ok {
		return handler
	}
	if t.Kind() == reflect.Ptr {
		if handler, ok := m.handlers[t.Elem()]; ok {
			return handler
		}
	}
	return nil
}

func (m *Model) finishUpdate(cmds []tea.Cmd) tea.Cmd {
	m.syncScrollback()
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

func (m *Model) handleWindowSizeMsg(msg tea.Msg) tea.Cmd {
	size, ok := msg.(tea.WindowSizeMsg)
	if !ok {
		return nil
	}
	if !m.fixedWidth {
		m.width = size.Width
	}
	if !m.fixedHeight {
		m.height = size.Height
	}
	m.layout()
	return nil
}

func (m *Model) setInfo(text string, alert bool) {
	m.infoMsg = text
	m.infoAlert = alert
}

func (m *Model) clearInfo() {
	m.infoMsg = ""
	m.infoAlert = false
}

func (m *Model) printWarning(err error) {
	m.shell.Print(err.Error(), shell.ColorAlert)
}
