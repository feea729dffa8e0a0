package card

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/tevify/tevify/engine"
	"github.com/tevify/tevify/playback"
)

var quitKey = key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"))

// standalone runs a single card as a full program.
type standalone struct {
	card *Model
}

func (s standalone) Init() tea.Cmd {
	return s.card.Init()
}

func (s standalone) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, quitKey) {
			return s, tea.Sequence(s.card.Close(), tea.Quit)
		}
	case tea.WindowSizeMsg:
		s.card.SetWidth(msg.Width - 2)
		return s, nil
	}

	return s, s.card.Update(msg)
}

func (s standalone) View() string {
	return lipgloss.NewStyle().Padding(1, 1).Render(s.card.View() + "\n\n" + s.card.HelpView())
}

// Run plays props on eng until the user quits.
func Run(eng engine.Engine, props Props, width int, opts ...playback.Option) error {
	c := New(eng, props, opts...)
	if width > 0 {
		c.SetWidth(width)
	}

	_, err := tea.NewProgram(standalone{card: c}).Run()
	// Close is idempotent; this covers exits that bypassed the quit key.
	_ = eng.Close()
	return err
}
