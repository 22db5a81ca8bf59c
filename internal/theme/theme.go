package theme

import (
	"github.com/atomicstack/sysex-shell/internal/shell"
	"github.com/charmbracelet/lipgloss"
)

// Styles describes reusable Lip Gloss styles shared across the UI.
type Styles struct {
	Output        *lipgloss.Style
	Alert         *lipgloss.Style
	Affirmative   *lipgloss.Style
	Prompt        *lipgloss.Style
	Placeholder   *lipgloss.Style
	Cursor        *lipgloss.Style
	Header        *lipgloss.Style
	Selector      *lipgloss.Style
	SelectorEmpty *lipgloss.Style
	Status        *lipgloss.Style
	Info          *lipgloss.Style
	Footer        *lipgloss.Style
}

var defaultStyles = Styles{
	Output: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	Alert: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
	),
	Affirmative: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("34")),
	),
	Prompt: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("34")).Bold(true),
	),
	Placeholder: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	),
	Cursor: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("33")),
	),
	Header: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Bold(true),
	),
	Selector: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("238")),
	),
	SelectorEmpty: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Background(lipgloss.Color("236")).Italic(true),
	),
	Status: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("33")).Italic(true),
	),
	Info: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	Footer: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	),
}

// Default exposes the standard style set used across the application.
func Default() *Styles {
	return &defaultStyles
}

// Line returns the style for a scrollback line of the given color.
func (s *Styles) Line(color shell.Color) *lipgloss.Style {
	switch color {
	case shell.ColorAlert:
		return s.Alert
	case shell.ColorAffirmative:
		return s.Affirmative
	default:
		return s.Output
	}
}

func ptr(style lipgloss.Style) *lipgloss.Style {
	return &style
}
