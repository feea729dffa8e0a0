package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Init starts the catalog load.
func (b *statefulBubble) Init() tea.Cmd {
	return tea.Batch(b.spinnerC.Tick, b.loadCatalog())
}
