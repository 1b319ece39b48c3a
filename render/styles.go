package render

import "github.com/charmbracelet/lipgloss"

// Color palette.
var (
	accentColor = lipgloss.Color("#7C3AED") // Purple
	mutedColor  = lipgloss.Color("#6B7280") // Gray
	errorColor  = lipgloss.Color("#EF4444") // Red
)

// Styles is the style set for everything the client prints around the
// streamed reply text. The reply itself is never styled.
type Styles struct {
	// Header styles the one-line model header.
	Header lipgloss.Style
	// Meta styles the elapsed-time line and stream notices.
	Meta lipgloss.Style
	// Error styles error messages.
	Error lipgloss.Style
}

// DefaultStyles returns the colored style set for TTY output.
func DefaultStyles() Styles {
	return Styles{
		Header: lipgloss.NewStyle().Bold(true).Foreground(accentColor),
		Meta:   lipgloss.NewStyle().Foreground(mutedColor),
		Error:  lipgloss.NewStyle().Foreground(errorColor),
	}
}

// PlainStyles returns an unstyled set for pipes and --no-color.
func PlainStyles() Styles {
	return Styles{
		Header: lipgloss.NewStyle(),
		Meta:   lipgloss.NewStyle(),
		Error:  lipgloss.NewStyle(),
	}
}
