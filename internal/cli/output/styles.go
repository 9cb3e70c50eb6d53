package output

import "github.com/charmbracelet/lipgloss"

// Styles holds the lipgloss styles used by text-mode rendering.
type Styles struct {
	Header1  lipgloss.Style
	Header2  lipgloss.Style
	Bold     lipgloss.Style
	Muted    lipgloss.Style
	Error    lipgloss.Style
	Warning  lipgloss.Style
	Info     lipgloss.Style
	Success  lipgloss.Style
	FilePath lipgloss.Style
}

// DefaultStyles returns the standard style set.
func DefaultStyles() *Styles {
	return &Styles{
		Header1:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		Header2:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14")),
		Bold:     lipgloss.NewStyle().Bold(true),
		Muted:    lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Error:    lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		Warning:  lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		Info:     lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		Success:  lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		FilePath: lipgloss.NewStyle().Underline(true),
	}
}

// plainStyles renders without color or decoration, for markdown mode
// and non-TTY output.
func plainStyles() *Styles {
	plain := lipgloss.NewStyle()
	return &Styles{
		Header1: plain, Header2: plain, Bold: plain, Muted: plain,
		Error: plain, Warning: plain, Info: plain, Success: plain,
		FilePath: plain,
	}
}
