package midi

import (
	"fmt"
	"strings"
)

// FilterMode decides which incoming messages reach the scrollback.
type FilterMode int

const (
	FilterExclusive FilterMode = iota
	FilterCommon
	FilterRealtime
)

var filterNames = [...]string{
	FilterExclusive: "exclusive",
	FilterCommon:    "common",
	FilterRealtime:  "realtime",
}

var filterLabels = [...]string{
	FilterExclusive: "System Exclusive",
	FilterCommon:    "Channel & Common",
	FilterRealtime:  "All Messages",
}

func (m FilterMode) valid() bool {
	return m >= FilterExclusive && m <= FilterRealtime
}

func (m FilterMode) String() string {
	if !m.valid() {
		return fmt.Sprintf("FilterMode(%d)", int(m))
	}
	return filterNames[m]
}

// Label is the human readable name shown in the header.
func (m FilterMode) Label() string {
	if !m.valid() {
		return m.String()
	}
	return filterLabels[m]
}

// Next cycles exclusive -> common -> realtime -> exclusive.
func (m FilterMode) Next() FilterMode {
	if !m.valid() {
		return FilterExclusive
	}
	return (m + 1) % (FilterRealtime + 1)
}

// ParseFilterMode accepts the lowercase mode names.
func ParseFilterMode(s string) (FilterMode, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, candidate := range filterNames {
		if candidate == name {
			return FilterMode(i), nil
		}
	}
	return FilterExclusive, fmt.Errorf("unknown filter mode %q (want exclusive, common or realtime)", s)
}

// Accepts reports whether a message is rendered under this mode. Exclusive
// shows only SysEx, common hides system realtime bytes (0xf8 and above), and
// realtime shows everything, including empty messages.
func (m FilterMode) Accepts(msg []byte) bool {
	switch m {
	case FilterExclusive:
		return len(msg) > 0 && msg[0] == SysExStart
	case FilterCommon:
		return len(msg) > 0 && msg[0] < RealtimeFirst
	default:
		return true
	}
}

// Format renders bytes as space separated two-digit lowercase hex.
func Format(msg []byte) string {
	return fmt.Sprintf("% x", msg)
}
