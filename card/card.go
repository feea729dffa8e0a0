// Package card implements the video card: one playback session, its engine
// and the overlays drawn on top of it.
package card

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/tevify/tevify/color"
	"github.com/tevify/tevify/engine"
	"github.com/tevify/tevify/playback"
)

const defaultWidth = 60

// Props are the inputs of a card.
type Props struct {
	SourceURI string
	Title     string
	Subtitles []string
	AutoPlay  bool
}

// Model is a mounted video card. It is not safe for concurrent use; the
// bubbletea program that owns it is its only caller.
type Model struct {
	props   Props
	session *playback.Session

	keymap   keymap
	spinner  spinner.Model
	progress progress.Model
	help     help.Model

	width int
}

// New mounts a card for props on eng. The card owns eng from now on.
func New(eng engine.Engine, props Props, opts ...playback.Option) *Model {
	session := playback.New(eng, playback.Media{
		URI:      props.SourceURI,
		Title:    props.Title,
		AutoPlay: props.AutoPlay,
	}, opts...)

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = s.Style.Foreground(color.Brand)

	m := &Model{
		props:    props,
		session:  session,
		keymap:   newKeymap(),
		spinner:  s,
		progress: progress.New(progress.WithSolidFill(string(color.Brand)), progress.WithoutPercentage()),
		help:     help.New(),
	}
	m.SetWidth(defaultWidth)

	return m
}

// SetWidth resizes the card.
func (m *Model) SetWidth(width int) {
	if width < 20 {
		width = 20
	}
	m.width = width
	m.progress.Width = width - 4
	m.help.Width = width
}

// Props returns the inputs the card was mounted with.
func (m *Model) Props() Props {
	return m.props
}

// State exposes the playback state for rendering decisions outside the card.
func (m *Model) State() playback.State {
	return m.session.State()
}

// Init opens the media and subscribes to the engine.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.session.Init(), m.session.Listen(), m.spinner.Tick)
}

// Close unmounts the card; the returned command releases the engine.
func (m *Model) Close() tea.Cmd {
	return m.session.Close()
}

// Update routes key presses to playback intents and everything else to the session.
func (m *Model) Update(msg tea.Msg) tea.Cmd {
	if m.session.Closed() {
		return nil
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return cmd

	case playback.EventMsg:
		cmd := m.session.Update(msg)
		if !msg.For(m.session) {
			return cmd
		}
		return tea.Batch(cmd, m.session.Listen())
	}

	return m.session.Update(msg)
}

// handleKey only forwards intents whose control is currently on screen.
func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	st := m.session.State()

	switch {
	case key.Matches(msg, m.keymap.tap):
		return m.session.TapControls()
	case key.Matches(msg, m.keymap.playPause):
		if st.ControlsVisible || playOverlay(st) {
			return m.session.TogglePlayPause()
		}
	case key.Matches(msg, m.keymap.mute):
		if st.ControlsVisible || muteBadge(st) {
			return m.session.ToggleMute()
		}
	case key.Matches(msg, m.keymap.seekBack):
		if st.ControlsVisible {
			return m.session.SeekBackward()
		}
	case key.Matches(msg, m.keymap.seekForward):
		if st.ControlsVisible {
			return m.session.SeekForward()
		}
	}

	return nil
}

// HelpView renders the key hints.
func (m *Model) HelpView() string {
	return m.help.View(m.keymap)
}

func loadingOverlay(st playback.State) bool {
	return st.Loading && !st.HasLoadedOnce
}

func playOverlay(st playback.State) bool {
	return !st.Playing && !st.Loading
}

func muteBadge(st playback.State) bool {
	return st.Playing && !st.ControlsVisible
}
