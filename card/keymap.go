package card

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/tevify/tevify/color"
	"github.com/tevify/tevify/style"
)

type keymap struct {
	tap, playPause, mute, seekBack, seekForward key.Binding
}

func newKeymap() keymap {
	return keymap{
		tap: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "controls"),
		),
		playPause: key.NewBinding(
			key.WithKeys("p", "enter"),
			key.WithHelp(style.Fg(color.Orange)("p"), style.Fg(color.Orange)("play/pause")),
		),
		mute: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "mute"),
		),
		seekBack: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←", "-10s"),
		),
		seekForward: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→", "+10s"),
		),
	}
}

func (k keymap) ShortHelp() []key.Binding {
	return []key.Binding{k.tap, k.playPause, k.mute, k.seekBack, k.seekForward}
}

func (k keymap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
