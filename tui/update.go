package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

func (b *statefulBubble) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	// Ephemeral notifications (`string` and `ui.ClearNotificationMsg`).
	if uiCmd := b.notifier.Update(msg); uiCmd != nil {
		cmd = uiCmd
	}

	switch msg := msg.(type) {
	case error:
		b.raiseError(msg)
		return b, cmd
	case catalogLoadedMsg:
		return b, tea.Batch(cmd, b.onCatalogLoaded(msg.catalog))
	case tea.WindowSizeMsg:
		b.resize(msg.Width, msg.Height)
	case tea.KeyMsg:
		if key.Matches(msg, b.keymap.forceQuit) {
			return b, tea.Sequence(b.unmount(), tea.Quit)
		}
	}

	switch b.state {
	case loadingState:
		return b, tea.Batch(cmd, b.updateLoading(msg))
	case feedState:
		return b, tea.Batch(cmd, b.updateFeed(msg))
	case cardState:
		return b.updateCard(msg, cmd)
	case errorState:
		return b, tea.Batch(cmd, b.updateError(msg))
	}

	return b, cmd
}

func (b *statefulBubble) updateLoading(msg tea.Msg) tea.Cmd {
	if msg, ok := msg.(spinner.TickMsg); ok {
		var cmd tea.Cmd
		b.spinnerC, cmd = b.spinnerC.Update(msg)
		return cmd
	}
	return nil
}

func (b *statefulBubble) updateFeed(msg tea.Msg) tea.Cmd {
	if msg, ok := msg.(tea.KeyMsg); ok && b.feedC.FilterState() != list.Filtering {
		if key.Matches(msg, b.keymap.confirm) {
			if item, ok := b.feedC.SelectedItem().(*listItem); ok {
				return b.mount(item)
			}
			return nil
		}
	}

	var cmd tea.Cmd
	b.feedC, cmd = b.feedC.Update(msg)
	return cmd
}

func (b *statefulBubble) updateCard(msg tea.Msg, cmd tea.Cmd) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, b.keymap.back):
			return b, tea.Batch(cmd, b.dismount())
		case key.Matches(msg, b.keymap.quit):
			return b, tea.Sequence(b.unmount(), tea.Quit)
		}
	}

	return b, tea.Batch(cmd, b.card.Update(msg))
}

func (b *statefulBubble) updateError(msg tea.Msg) tea.Cmd {
	if msg, ok := msg.(tea.KeyMsg); ok && key.Matches(msg, b.keymap.quit) {
		return tea.Quit
	}
	return nil
}
