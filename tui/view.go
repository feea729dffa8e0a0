package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wrap"
	"github.com/tevify/tevify/catalog"
	"github.com/tevify/tevify/icon"
	"github.com/tevify/tevify/style"
)

var (
	listExtraPaddingStyle = lipgloss.NewStyle().Padding(1, 2, 1, 0)
	paddingStyle          = lipgloss.NewStyle().Padding(1, 2)
)

// now is swapped in tests.
var now = time.Now

func (b *statefulBubble) View() string {
	var output string

	switch b.state {
	case loadingState:
		output = b.viewLoading()
	case feedState:
		output = b.viewFeed()
	case cardState:
		output = b.viewCard()
	case errorState:
		output = b.viewError()
	default:
		output = "Unknown state"
	}

	return b.notifier.View(output)
}

func (b *statefulBubble) viewLoading() string {
	return b.renderLines(
		true,
		[]string{
			style.Title("Loading"),
			"",
			b.spinnerC.View() + " Fetching the catalog",
		},
	)
}

func (b *statefulBubble) viewFeed() string {
	return listExtraPaddingStyle.Render(b.feedC.View())
}

func (b *statefulBubble) viewCard() string {
	lines := append(
		[]string{style.Title(greeting(now().Hour())), ""},
		strings.Split(b.card.View(), "\n")...,
	)
	lines = append(lines, "", b.card.HelpView())

	return b.renderLines(true, lines)
}

func (b *statefulBubble) viewError() string {
	errorStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	errorBody := errorStyle.Render(fmt.Sprintf("Critical Failure: %v", b.lastError.Error()))
	errorMsg := wrap.String(errorBody, b.width)
	return b.renderLines(
		true,
		[]string{
			style.ErrorTitle("Error"),
			"",
			icon.Get(icon.Fail) + " An error occurred:",
			"",
			errorMsg,
		},
	)
}

func (b *statefulBubble) renderLines(addHelp bool, lines []string) string {
	h := len(lines)
	l := strings.Join(lines, "\n")
	if addHelp {
		if b.height > h {
			l += strings.Repeat("\n", b.height-h)
		}
		l += b.helpC.View(b.keymap)
	}

	return paddingStyle.Render(l)
}

func feedTitle(c *catalog.Catalog) string {
	if c.Name == "" {
		return greeting(now().Hour())
	}
	return fmt.Sprintf("%s · %s", greeting(now().Hour()), c.Name)
}

// greeting follows the time of day.
func greeting(hour int) string {
	switch {
	case hour >= 17:
		return "Good evening"
	case hour >= 12:
		return "Good afternoon"
	default:
		return "Good morning"
	}
}
