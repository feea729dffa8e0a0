// Package color provides a curated palette of colors.
package color

import "github.com/charmbracelet/lipgloss"

// New initializes a lipgloss.Color from a string value.
func New(value string) lipgloss.Color {
	return lipgloss.Color(value)
}

// Standard ANSI 8-color palette.
var (
	Red    = New("1")
	Green  = New("2")
	Yellow = New("3")
	Blue   = New("4")
	Purple = New("5")
	Cyan   = New("6")
	White  = New("7")
	Black  = New("8")
)

// High-intensity ANSI palette extension.
var (
	HiRed    = New("9")
	HiPurple = New("13")
	HiCyan   = New("14")
	HiWhite  = New("15")
)

// Hex-defined accent and semantic colors.
var (
	// Brand is the progress and spinner accent.
	Brand  = New("#1DB954")
	Orange = New("#ffb703")
	Gray   = New("#808080")
	// Scrim shades the card behind overlays; Dim is the fully faded foreground.
	Scrim = New("#1e1e1e")
	Dim   = New("#3a3a3a")
)
