package config

import (
	"strings"
	"testing"
	"time"

	"github.com/atomicstack/sysex-shell/internal/midi"
)

func TestLoadArgsDefaults(t *testing.T) {
	cfg, err := LoadArgs(nil, nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.App.Filter != midi.FilterExclusive {
		t.Fatalf("expected exclusive filter, got %s", cfg.App.Filter)
	}
	if cfg.App.PollInterval != time.Second {
		t.Fatalf("expected 1s poll interval, got %s", cfg.App.PollInterval)
	}
	if cfg.App.HistoryLimit != 500 || !cfg.App.ShowFooter {
		t.Fatalf("unexpected defaults %#v", cfg.App)
	}
	if cfg.App.StrictStatus || cfg.App.Loopback || cfg.Logging.Trace {
		t.Fatalf("expected boolean features off, got %#v", cfg)
	}
	if cfg.Logging.FilePath != "sysex-shell.log" {
		t.Fatalf("unexpected log file %q", cfg.Logging.FilePath)
	}
	if err := Validate(cfg); err != nil {
		t.Fatalf("expected defaults to validate: %v", err)
	}
}

func TestLoadArgsFlagsOverrideEnv(t *testing.T) {
	env := []string{
		envReceive + "=Env Synth",
		envFilter + "=common",
		envPollInterval + "=250ms",
		envHistory + "=10",
		envShowFooter + "=false",
		envStrictStatus + "=true",
		"malformed",
	}
	args := []string{"--rx", "Flag Synth", "--filter", "realtime", "--trace"}
	cfg, err := LoadArgs(args, env)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.App.PreferredInput != "Flag Synth" {
		t.Fatalf("expected flag to win, got %q", cfg.App.PreferredInput)
	}
	if cfg.App.Filter != midi.FilterRealtime {
		t.Fatalf("expected realtime filter, got %s", cfg.App.Filter)
	}
	if cfg.App.PollInterval != 250*time.Millisecond {
		t.Fatalf("expected env poll interval, got %s", cfg.App.PollInterval)
	}
	if cfg.App.HistoryLimit != 10 || cfg.App.ShowFooter || !cfg.App.StrictStatus {
		t.Fatalf("expected env values applied, got %#v", cfg.App)
	}
	if !cfg.Logging.Trace {
		t.Fatalf("expected trace enabled")
	}
	if cfg.Flags["filter"] != "realtime" || cfg.Flags["rx"] != "Flag Synth" {
		t.Fatalf("unexpected flag snapshot %#v", cfg.Flags)
	}
	if len(cfg.Args) != len(args) {
		t.Fatalf("expected args retained, got %#v", cfg.Args)
	}
}

func TestLoadArgsIgnoresMalformedEnv(t *testing.T) {
	cfg, err := LoadArgs(nil, []string{envHistory + "=lots", envPollInterval + "=soon", envLoopback + "=maybe"})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.App.HistoryLimit != 500 || cfg.App.PollInterval != time.Second || cfg.App.Loopback {
		t.Fatalf("expected fallbacks, got %#v", cfg.App)
	}
}

func TestLoadArgsRejectsUnknownFilter(t *testing.T) {
	if _, err := LoadArgs([]string{"--filter", "sysex"}, nil); err == nil {
		t.Fatalf("expected unknown filter rejected")
	}
	if _, err := LoadArgs([]string{"--no-such-flag"}, nil); err == nil {
		t.Fatalf("expected unknown flag rejected")
	}
}

func TestValidate(t *testing.T) {
	cfg, err := LoadArgs([]string{"--poll-interval", "0s", "--history", "-1", "--loopback", "--virtual", "Shell"}, nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	err = Validate(cfg)
	if err == nil {
		t.Fatalf("expected validation failure")
	}
	for _, want := range []string{"poll-interval", "history", "loopback"} {
		if !strings.Contains(err.Error(), want) {
			t.Fatalf("expected %q in %v", want, err)
		}
	}
}
