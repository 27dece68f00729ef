package style

import "github.com/charmbracelet/lipgloss"

// Palette.
var (
	Base    = lipgloss.Color("#1e1e2e")
	Text    = lipgloss.Color("#cdd6f4")
	Subtext = lipgloss.Color("#a6adc8")
	Overlay = lipgloss.Color("#6c7086")
	Surface = lipgloss.Color("#313244")

	Mauve    = lipgloss.Color("#cba6f7")
	Red      = lipgloss.Color("#f38ba8")
	Peach    = lipgloss.Color("#fab387")
	Yellow   = lipgloss.Color("#f9e2af")
	Green    = lipgloss.Color("#a6e3a1")
	Teal     = lipgloss.Color("#94e2d5")
	Blue     = lipgloss.Color("#89b4fa")
	Lavender = lipgloss.Color("#b4befe")

	AccentColor    = Mauve
	SecondaryColor = Lavender
	SuccessColor   = Green
	WarningColor   = Yellow
	ErrorColor     = Red
	FaintColor     = Overlay

	BorderColor       = Surface
	ActiveBorderColor = AccentColor
)

// statusColors maps lower-cased watch statuses to their badge color.
var statusColors = map[string]lipgloss.Color{
	"watching":      Blue,
	"completed":     Green,
	"plan to watch": Lavender,
	"on hold":       Yellow,
	"on-hold":       Yellow,
	"dropped":       Red,
}

// StatusColor returns the badge color of a watch status.
func StatusColor(status string) lipgloss.Color {
	if c, ok := statusColors[lower(status)]; ok {
		return c
	}
	return Teal
}
