package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/atomicstack/sysex-shell/internal/logging"
	"github.com/atomicstack/sysex-shell/internal/logging/events"
	"github.com/atomicstack/sysex-shell/internal/midi"
	"github.com/atomicstack/sysex-shell/internal/session"
	"github.com/atomicstack/sysex-shell/internal/transport"
	"github.com/atomicstack/sysex-shell/internal/ui"
	tea "github.com/charmbracelet/bubbletea"
	"gitlab.com/gomidi/midi/v2/drivers"
	"gitlab.com/gomidi/midi/v2/drivers/rtmididrv"
)

const loopbackName = "SysEx Shell Loopback"

// Config describes user-provided application options.
type Config struct {
	PreferredInput  string
	PreferredOutput string
	Filter          midi.FilterMode
	StrictStatus    bool
	PollInterval    time.Duration
	Loopback        bool
	VirtualName     string
	HistoryLimit    int
	ShowFooter      bool
}

// Run bootstraps and executes the Bubble Tea program.
func Run(cfg Config) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	model := ui.NewModel(ui.Options{
		Context:         ctx,
		Request:         Requester(cfg),
		PreferredInput:  cfg.PreferredInput,
		PreferredOutput: cfg.PreferredOutput,
		Filter:          cfg.Filter,
		Strict:          cfg.StrictStatus,
		HistoryLimit:    cfg.HistoryLimit,
		ShowFooter:      cfg.ShowFooter,
	})
	defer func() {
		if err := model.Close(); err != nil {
			logging.Error(fmt.Errorf("close midi access: %w", err))
		}
	}()

	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err := program.Run()
	if errors.Is(err, tea.ErrProgramKilled) {
		events.App.Stop("killed")
		return nil
	}
	if err != nil {
		events.App.Stop("error")
		return err
	}
	events.App.Stop("quit")
	return nil
}

// Requester returns how the session obtains MIDI access for cfg: the
// in-process loopback pair, or the system rtmidi driver with an optional
// virtual port pair.
func Requester(cfg Config) session.Requester {
	opts := transport.Options{PollInterval: cfg.PollInterval}
	if cfg.Loopback {
		return func(ctx context.Context) (transport.Access, error) {
			access, err := transport.RequestAccess(ctx, transport.NewLoopback(loopbackName), opts)
			if err != nil {
				return nil, err
			}
			return access, nil
		}
	}
	return func(ctx context.Context) (transport.Access, error) {
		drv, err := rtmididrv.New()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", midi.ErrTransportUnavailable, err)
		}
		if cfg.VirtualName != "" {
			if err := openVirtual(drv, cfg.VirtualName, &opts); err != nil {
				_ = drv.Close()
				return nil, err
			}
		}
		access, err := transport.RequestAccess(ctx, drv, opts)
		if err != nil {
			_ = drv.Close()
			return nil, err
		}
		return access, nil
	}
}

func openVirtual(drv *rtmididrv.Driver, name string, opts *transport.Options) error {
	in, err := drv.OpenVirtualIn(name)
	if err != nil {
		return fmt.Errorf("open virtual input %q: %w", name, err)
	}
	out, err := drv.OpenVirtualOut(name)
	if err != nil {
		_ = in.Close()
		return fmt.Errorf("open virtual output %q: %w", name, err)
	}
	opts.VirtualIns = []drivers.In{in}
	opts.VirtualOuts = []drivers.Out{out}
	return nil
}
