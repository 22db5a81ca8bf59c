// Package state holds view-models the Bubble Tea layer renders from.
package state

import (
	"fmt"

	portstate "github.com/atomicstack/sysex-shell/internal/state"
	"github.com/charmbracelet/x/ansi"
)

const (
	emptyChoice   = "(none)"
	truncatedTail = "…"
)

// Selector projects a port list into a header widget.
type Selector struct {
	Title string
	List  *portstate.PortList
}

// NewSelector creates a selector titled title over list.
func NewSelector(title string, list *portstate.PortList) Selector {
	return Selector{Title: title, List: list}
}

// Empty reports whether nothing can be chosen.
func (s Selector) Empty() bool {
	return s.List == nil || s.List.Len() == 0
}

// Choice returns the displayed name of the selected entry.
func (s Selector) Choice() string {
	if s.List == nil {
		return emptyChoice
	}
	entry, ok := s.List.SelectedEntry()
	if !ok {
		return emptyChoice
	}
	return entry.Name
}

// Position renders "n/total" for the current choice, or "" when the list has
// fewer than two entries.
func (s Selector) Position() string {
	if s.List == nil || s.List.Len() < 2 {
		return ""
	}
	return fmt.Sprintf("%d/%d", s.List.SelectedIndex()+1, s.List.Len())
}

// Label renders "Title: choice [n/total]" truncated to width cells. A
// non-positive width disables truncation.
func (s Selector) Label(width int) string {
	label := s.Title + ": " + s.Choice()
	if pos := s.Position(); pos != "" {
		label += " [" + pos + "]"
	}
	if width > 0 && ansi.StringWidth(label) > width {
		label = ansi.Truncate(label, width, truncatedTail)
	}
	return label
}
