package main

import (
	"fmt"
	"os"

	"github.com/atomicstack/sysex-shell/internal/app"
	"github.com/atomicstack/sysex-shell/internal/config"
	"github.com/atomicstack/sysex-shell/internal/logging"
	"github.com/atomicstack/sysex-shell/internal/logging/events"
	"golang.org/x/term"
)

func main() {
	runtimeCfg := config.MustLoad()
	if err := config.Validate(runtimeCfg); err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	logging.Configure(runtimeCfg.Logging.FilePath)
	logging.SetTraceEnabled(runtimeCfg.Logging.Trace)

	events.App.Start(startupTracePayload(runtimeCfg, stdoutScreen()))

	if err := app.Run(runtimeCfg.App); err != nil {
		logging.Error(err)
		logging.Close()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	logging.Close()
}

// screen describes the terminal the alt-screen UI will draw on.
type screen struct {
	Terminal bool   `json:"terminal"`
	Width    int    `json:"width,omitempty"`
	Height   int    `json:"height,omitempty"`
	Error    string `json:"error,omitempty"`
}

func stdoutScreen() screen {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return screen{}
	}
	width, height, err := term.GetSize(fd)
	if err != nil {
		return screen{Terminal: true, Error: err.Error()}
	}
	return screen{Terminal: true, Width: width, Height: height}
}

// transportMode names the MIDI backend the session will request.
func transportMode(cfg app.Config) string {
	switch {
	case cfg.Loopback:
		return "loopback"
	case cfg.VirtualName != "":
		return "virtual:" + cfg.VirtualName
	default:
		return "rtmidi"
	}
}

// startupTracePayload records how this run was configured.
func startupTracePayload(cfg config.Config, scr screen) map[string]interface{} {
	flags := make(map[string]interface{}, len(cfg.Flags))
	for k, v := range cfg.Flags {
		flags[k] = v
	}
	payload := map[string]interface{}{
		"argv":  cfg.Args,
		"flags": flags,
		"transport": map[string]interface{}{
			"mode":         transportMode(cfg.App),
			"pollInterval": cfg.App.PollInterval.String(),
			"rx":           cfg.App.PreferredInput,
			"tx":           cfg.App.PreferredOutput,
		},
		"filter":       cfg.App.Filter.Label(),
		"strictStatus": cfg.App.StrictStatus,
		"history":      cfg.App.HistoryLimit,
		"logFile":      cfg.Logging.FilePath,
		"screen":       scr,
	}
	if exe, err := os.Executable(); err == nil {
		payload["executable"] = exe
	}
	return payload
}
