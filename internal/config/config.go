package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/atomicstack/sysex-shell/internal/app"
	"github.com/atomicstack/sysex-shell/internal/midi"
)

// Config captures runtime configuration for the application.
type Config struct {
	App     app.Config
	Logging Logging
	Flags   map[string]string
	Args    []string
}

type Logging struct {
	FilePath string
	Trace    bool
}

const (
	envReceive      = "SYSEX_SHELL_RX"
	envTransmit     = "SYSEX_SHELL_TX"
	envFilter       = "SYSEX_SHELL_FILTER"
	envStrictStatus = "SYSEX_SHELL_STRICT_STATUS"
	envPollInterval = "SYSEX_SHELL_POLL_INTERVAL"
	envLoopback     = "SYSEX_SHELL_LOOPBACK"
	envVirtual      = "SYSEX_SHELL_VIRTUAL"
	envHistory      = "SYSEX_SHELL_HISTORY"
	envShowFooter   = "SYSEX_SHELL_FOOTER"
	envTrace        = "SYSEX_SHELL_TRACE"
	envLogFile      = "SYSEX_SHELL_LOG_FILE"
)

const (
	defaultPollInterval = time.Second
	defaultHistory      = 500
	defaultLogFile      = "sysex-shell.log"
)

// Load parses configuration from CLI arguments and environment variables.
func Load() (Config, error) {
	return LoadArgs(os.Args[1:], os.Environ())
}

// LoadArgs allows tests to supply specific args/environment.
func LoadArgs(args []string, environ []string) (Config, error) {
	env := parseEnv(environ)

	fs := flag.NewFlagSet("sysex-shell", flag.ContinueOnError)
	fs.SetOutput(new(strings.Builder))

	rx := fs.String("rx", envOrDefault(env, envReceive, ""), "preferred receive port (fuzzy match on name)")
	tx := fs.String("tx", envOrDefault(env, envTransmit, ""), "preferred transmit port (fuzzy match on name)")
	filter := fs.String("filter", envOrDefault(env, envFilter, midi.FilterExclusive.String()), "initial display filter: exclusive, common or realtime")
	strict := fs.Bool("strict-status", envOrBool(env, envStrictStatus, false), "reject commands whose first byte is not a status byte")
	poll := fs.Duration("poll-interval", envOrDuration(env, envPollInterval, defaultPollInterval), "interval between MIDI port scans")
	loopback := fs.Bool("loopback", envOrBool(env, envLoopback, false), "use an in-process loopback port pair instead of system MIDI")
	virtual := fs.String("virtual", envOrDefault(env, envVirtual, ""), "open a virtual input/output pair with this name")
	history := fs.Int("history", envOrInt(env, envHistory, defaultHistory), "maximum retained history entries (0 keeps everything)")
	footer := fs.Bool("footer", envOrBool(env, envShowFooter, true), "show the key hint row")
	trace := fs.Bool("trace", envOrBool(env, envTrace, false), "enable verbose JSON trace logging")
	logFile := fs.String("log-file", envOrDefault(env, envLogFile, defaultLogFile), "path to the log file")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	mode, err := midi.ParseFilterMode(*filter)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		App: app.Config{
			PreferredInput:  strings.TrimSpace(*rx),
			PreferredOutput: strings.TrimSpace(*tx),
			Filter:          mode,
			StrictStatus:    *strict,
			PollInterval:    *poll,
			Loopback:        *loopback,
			VirtualName:     strings.TrimSpace(*virtual),
			HistoryLimit:    *history,
			ShowFooter:      *footer,
		},
		Logging: Logging{
			FilePath: *logFile,
			Trace:    *trace,
		},
		Flags: map[string]string{
			"rx":           *rx,
			"tx":           *tx,
			"filter":       mode.String(),
			"strictStatus": strconv.FormatBool(*strict),
			"pollInterval": poll.String(),
			"loopback":     strconv.FormatBool(*loopback),
			"virtual":      *virtual,
			"history":      strconv.Itoa(*history),
			"footer":       strconv.FormatBool(*footer),
			"trace":        strconv.FormatBool(*trace),
			"logFile":      *logFile,
		},
		Args: append([]string(nil), args...),
	}

	return cfg, nil
}

func parseEnv(environ []string) map[string]string {
	values := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) != 2 {
			continue
		}
		values[parts[0]] = parts[1]
	}
	return values
}

func envOrDefault(env map[string]string, key, fallback string) string {
	if v, ok := env[key]; ok {
		return v
	}
	return fallback
}

func envOrInt(env map[string]string, key string, fallback int) int {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrBool(env map[string]string, key string, fallback bool) bool {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrDuration(env map[string]string, key string, fallback time.Duration) time.Duration {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(strings.TrimSpace(v))
	if err != nil {
		return fallback
	}
	return parsed
}

// MustLoad returns configuration or exits.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	return cfg
}

// Validate rejects option combinations the application cannot honour.
func Validate(cfg Config) error {
	var errs []error
	if cfg.App.PollInterval <= 0 {
		errs = append(errs, fmt.Errorf("poll-interval must be > 0 (got %s)", cfg.App.PollInterval))
	}
	if cfg.App.HistoryLimit < 0 {
		errs = append(errs, fmt.Errorf("history must be >= 0 (got %d)", cfg.App.HistoryLimit))
	}
	if cfg.App.Loopback && cfg.App.VirtualName != "" {
		errs = append(errs, errors.New("virtual ports cannot be combined with loopback"))
	}
	return errors.Join(errs...)
}
