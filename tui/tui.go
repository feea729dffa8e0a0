// Package tui provides the primary terminal user interface implementation.
package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/tevify/tevify/engine"
)

// Options encapsulates the runtime configuration for the terminal user interface.
type Options struct {
	// Catalog is a path or http(s) URL; the built-in catalog is used when empty.
	Catalog string
	// NewEngine creates the engine of each mounted card.
	NewEngine func() engine.Engine
}

// Run initializes and executes the primary Bubble Tea application loop.
func Run(options *Options) error {
	bubble := newBubble(options)
	bubble.setState(loadingState)

	_, err := tea.NewProgram(bubble, tea.WithAltScreen()).Run()
	bubble.release()
	return err
}
