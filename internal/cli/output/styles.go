package output

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Styles holds the lipgloss styles used by commands.
type Styles struct {
	Header1   lipgloss.Style
	Header2   lipgloss.Style
	Bold      lipgloss.Style
	Muted     lipgloss.Style
	Success   lipgloss.Style
	Error     lipgloss.Style
	Warning   lipgloss.Style
	Info      lipgloss.Style
	FilePath  lipgloss.Style
	Highlight lipgloss.Style
}

// newStyles builds styles bound to a lipgloss renderer. Without a TTY, or
// when NO_COLOR is set, styles render plain text.
func newStyles(lr *lipgloss.Renderer, isTTY bool) *Styles {
	if !isTTY || termenv.EnvNoColor() {
		lr.SetColorProfile(termenv.Ascii)
	}
	return &Styles{
		Header1:   lr.NewStyle().Bold(true).Foreground(lipgloss.Color("12")).Underline(true),
		Header2:   lr.NewStyle().Bold(true).Foreground(lipgloss.Color("14")),
		Bold:      lr.NewStyle().Bold(true),
		Muted:     lr.NewStyle().Foreground(lipgloss.Color("8")),
		Success:   lr.NewStyle().Foreground(lipgloss.Color("10")),
		Error:     lr.NewStyle().Bold(true).Foreground(lipgloss.Color("9")),
		Warning:   lr.NewStyle().Foreground(lipgloss.Color("11")),
		Info:      lr.NewStyle().Foreground(lipgloss.Color("12")),
		FilePath:  lr.NewStyle().Bold(true).Underline(true),
		Highlight: lr.NewStyle().Reverse(true),
	}
}
