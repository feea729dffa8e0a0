package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/tevify/tevify/card"
	"github.com/tevify/tevify/catalog"
	"github.com/tevify/tevify/color"
	"github.com/tevify/tevify/engine"
	"github.com/tevify/tevify/internal/ui"
	"github.com/tevify/tevify/style"
)

// statefulBubble is the feed application: a list of videos and at most one mounted card.
type statefulBubble struct {
	state state

	keymap *statefulKeymap

	// components
	spinnerC spinner.Model
	feedC    list.Model
	helpC    help.Model

	catalog *catalog.Catalog
	card    *card.Model

	lastError     error
	width, height int
	notifier      *ui.Model

	options *Options
}

// raiseError dispatches a terminal error and transitions the application to the failure view.
func (b *statefulBubble) raiseError(err error) {
	b.lastError = err
	b.setState(errorState)
}

// setState performs a synchronous transition of both the application workflow and its associated keymap.
func (b *statefulBubble) setState(s state) {
	b.state = s
	b.keymap.setState(s)
}

// resize propagates terminal dimension changes to all child component models.
func (b *statefulBubble) resize(width, height int) {
	x, y := paddingStyle.GetFrameSize()
	xx, yy := listExtraPaddingStyle.GetFrameSize()

	listWidth := width - xx
	listHeight := height - yy

	b.feedC.SetSize(listWidth, listHeight)
	b.feedC.Help.Width = listWidth

	b.width = width - x
	b.height = height - y
	b.helpC.Width = listWidth

	if b.card != nil {
		b.card.SetWidth(b.width)
	}
}

// unmount closes the mounted card, if any, and returns the command releasing its engine.
func (b *statefulBubble) unmount() tea.Cmd {
	if b.card == nil {
		return nil
	}

	cmd := b.card.Close()
	b.card = nil
	return cmd
}

// release closes a card that outlived the program.
func (b *statefulBubble) release() {
	if cmd := b.unmount(); cmd != nil {
		cmd()
	}
}

func newBubble(options *Options) *statefulBubble {
	if options.NewEngine == nil {
		options.NewEngine = func() engine.Engine {
			return engine.FromConfig()
		}
	}

	keymap := newStatefulKeymap()
	bubble := statefulBubble{
		keymap:   keymap,
		notifier: &ui.Model{},
		options:  options,
	}

	bubble.spinnerC = spinner.New()
	bubble.spinnerC.Spinner = spinner.Dot
	bubble.spinnerC.Style = style.New().Foreground(color.Brand)

	bubble.helpC = help.New()

	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(color.Brand).BorderForeground(color.Brand)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.Foreground(color.Gray).BorderForeground(color.Brand)

	bubble.feedC = list.New(nil, delegate, 0, 0)
	bubble.feedC.KeyMap = keymap.forList()
	bubble.feedC.AdditionalShortHelpKeys = keymap.feedHelp
	bubble.feedC.AdditionalFullHelpKeys = keymap.feedHelp
	bubble.feedC.Filter = fuzzyFilter
	bubble.feedC.Styles.Title = bubble.feedC.Styles.Title.Background(color.Brand)
	bubble.feedC.SetStatusBarItemName("video", "videos")

	return &bubble
}
