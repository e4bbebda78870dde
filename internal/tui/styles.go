package tui

import "github.com/charmbracelet/lipgloss"

// Colors defines the color palette for the console.
var Colors = struct {
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Muted     lipgloss.Color
	Error     lipgloss.Color
	Success   lipgloss.Color
	Warning   lipgloss.Color
	Text      lipgloss.Color
}{
	Primary:   lipgloss.Color("#6C5CE7"), // Purple
	Secondary: lipgloss.Color("#A29BFE"), // Lavender
	Muted:     lipgloss.Color("#636E72"), // Gray
	Error:     lipgloss.Color("#D63031"), // Red
	Success:   lipgloss.Color("#00B894"), // Green
	Warning:   lipgloss.Color("#FDCB6E"), // Yellow
	Text:      lipgloss.Color("#DFE6E9"), // Light gray
}

// Styles contains the lipgloss styles for the console.
type Styles struct {
	Header         lipgloss.Style
	Transcript     lipgloss.Style
	BotPrefix      lipgloss.Style
	UserPrefix     lipgloss.Style
	Timestamp      lipgloss.Style
	Button         lipgloss.Style
	ButtonSelected lipgloss.Style
	Link           lipgloss.Style
	Input          lipgloss.Style
	Error          lipgloss.Style
	Footer         lipgloss.Style
}

// DefaultStyles returns the default styles.
func DefaultStyles() Styles {
	return Styles{
		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(Colors.Text).
			Background(Colors.Primary).
			Padding(0, 1),
		Transcript: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Colors.Muted),
		BotPrefix:  lipgloss.NewStyle().Foreground(Colors.Success).Bold(true),
		UserPrefix: lipgloss.NewStyle().Foreground(Colors.Secondary).Bold(true),
		Timestamp:  lipgloss.NewStyle().Foreground(Colors.Muted),
		Button: lipgloss.NewStyle().
			Foreground(Colors.Text).
			Border(lipgloss.NormalBorder()).
			BorderForeground(Colors.Muted).
			Padding(0, 1),
		ButtonSelected: lipgloss.NewStyle().
			Foreground(Colors.Warning).
			Border(lipgloss.NormalBorder()).
			BorderForeground(Colors.Warning).
			Bold(true).
			Padding(0, 1),
		Link:   lipgloss.NewStyle().Foreground(Colors.Secondary).Underline(true),
		Input:  lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(Colors.Primary),
		Error:  lipgloss.NewStyle().Foreground(Colors.Error),
		Footer: lipgloss.NewStyle().Foreground(Colors.Muted),
	}
}
