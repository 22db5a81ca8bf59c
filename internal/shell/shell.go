// Package shell holds the line-oriented console behind the input row: the
// scrollback of printed lines, the submitted history, and the per-position
// edit buffer used while walking that history with the arrow keys.
package shell

import (
	"strings"

	"github.com/atomicstack/sysex-shell/internal/logging/events"
)

// Color selects how a scrollback line is styled.
type Color int

const (
	ColorDefault Color = iota
	ColorAlert
	ColorAffirmative
)

// Line is one read-only scrollback entry.
type Line struct {
	Text  string
	Color Color
}

// Handler receives every non-blank submitted line, untrimmed.
type Handler func(line string)

// Shell is not safe for concurrent use; drive it from one event loop.
type Shell struct {
	lines   []Line
	history []string
	// buffer holds one edit slot per history entry plus one for the line
	// being composed; index points into it.
	buffer  []string
	index   int
	limit   int
	handler Handler
	version uint64
}

// New creates a shell. limit caps the retained history; 0 keeps everything.
func New(limit int, handler Handler) *Shell {
	if limit < 0 {
		limit = 0
	}
	return &Shell{buffer: []string{""}, limit: limit, handler: handler}
}

// SetHandler replaces the line handler.
func (s *Shell) SetHandler(handler Handler) {
	s.handler = handler
}

// Submit echoes raw to the scrollback and, when it is not blank, records it
// and passes it to the handler. Navigation restarts past the newest entry.
func (s *Shell) Submit(raw string) {
	s.Print("> "+raw, ColorDefault)
	recorded := strings.TrimSpace(raw) != ""
	events.Shell.Submit(raw, recorded)
	if recorded {
		s.history = append(s.history, raw)
		if s.limit > 0 && len(s.history) > s.limit {
			s.history = append([]string(nil), s.history[len(s.history)-s.limit:]...)
		}
	}
	s.buffer = append(append(make([]string, 0, len(s.history)+1), s.history...), "")
	s.index = len(s.history)
	if recorded && s.handler != nil {
		s.handler(raw)
	}
}

// Up stores current in the active slot and returns the previous entry, or
// current unchanged at the oldest entry.
func (s *Shell) Up(current string) string {
	s.buffer[s.index] = current
	if s.index > 0 {
		s.index--
	}
	events.Shell.History(s.index, len(s.history))
	return s.buffer[s.index]
}

// Down stores current in the active slot and returns the next entry; past the
// newest entry it returns the in-progress edit.
func (s *Shell) Down(current string) string {
	s.buffer[s.index] = current
	if s.index+1 < len(s.buffer) {
		s.index++
	}
	events.Shell.History(s.index, len(s.history))
	return s.buffer[s.index]
}

// Print appends a line to the scrollback.
func (s *Shell) Print(message string, color Color) {
	s.lines = append(s.lines, Line{Text: message, Color: color})
	s.version++
}

// Clear empties the scrollback. History is kept.
func (s *Shell) Clear() {
	events.Shell.Clear(len(s.lines))
	s.lines = nil
	s.version++
}

// Lines returns a copy of the scrollback.
func (s *Shell) Lines() []Line {
	return append([]Line(nil), s.lines...)
}

// History returns a copy of the submitted lines, oldest first.
func (s *Shell) History() []string {
	return append([]string(nil), s.history...)
}

// Cursor returns the navigation position; len(History()) is the edit slot.
func (s *Shell) Cursor() int {
	return s.index
}

// Version changes whenever the scrollback does.
func (s *Shell) Version() uint64 {
	return s.version
}
