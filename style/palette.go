package style

import "github.com/charmbracelet/lipgloss"

// Palette defines the application's color scheme.
var (
	Text    = lipgloss.Color("#cdd6f4")
	Subtext = lipgloss.Color("#a6adc8")
	Overlay = lipgloss.Color("#6c7086")
	Surface = lipgloss.Color("#313244")
	Mauve   = lipgloss.Color("#cba6f7")
	Red     = lipgloss.Color("#f38ba8")

	AccentColor = Mauve
	HiRed       = Red
	FaintColor  = Overlay
	BorderColor = Surface
)
