// Package color holds the ANSI colors of command line output.
// The TUI palette lives in style.
package color

import "github.com/charmbracelet/lipgloss"

// New wraps a color value: an ANSI code such as "62" or a hex string.
func New(value string) lipgloss.Color {
	return lipgloss.Color(value)
}

// Terminal colors. They follow the user's terminal theme.
var (
	Red    = New("1") // errors, unknown keys
	Green  = New("2") // success marks
	Yellow = New("3") // values, flags
	Blue   = New("4")
	Purple = New("5") // config keys, app name
	Cyan   = New("6")

	HiPurple = New("13")
	HiCyan   = New("14")
)

// Orange marks the actions that change tracking data, like rating or adding to the watchlist.
var Orange = New("#ffb703")
