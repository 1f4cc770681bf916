// Package color holds the ANSI colors used for CLI output.
// The TUI palette lives in style.
package color

import "github.com/charmbracelet/lipgloss"

// New wraps an ANSI index or hex string.
func New(value string) lipgloss.Color {
	return lipgloss.Color(value)
}

var (
	Red    = New("1")
	Green  = New("2")
	Yellow = New("3")
	Blue   = New("4")
	Purple = New("5")
	Cyan   = New("6")

	HiRed    = New("9")
	HiPurple = New("13")
	HiCyan   = New("14")
)

// Orange marks key hints.
var Orange = New("#ffb703")
