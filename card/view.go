package card

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
	"github.com/muesli/reflow/wrap"
	"github.com/samber/lo"
	"github.com/tevify/tevify/color"
	"github.com/tevify/tevify/icon"
	"github.com/tevify/tevify/playback"
	"github.com/tevify/tevify/style"
	"github.com/tevify/tevify/util"
)

const screenHeight = 7

// fadeSteps approximate opacity with foreground shades, dimmest first.
var fadeSteps = []lipgloss.Color{
	color.Dim,
	color.New("240"),
	color.New("244"),
	color.New("248"),
	color.New("252"),
	style.Text,
}

func fade(opacity float64) lipgloss.Color {
	i := int(math.Round(util.Clamp(opacity, 0, 1) * float64(len(fadeSteps)-1)))
	return fadeSteps[i]
}

// View renders the card.
func (m *Model) View() string {
	st := m.session.State()

	lines := []string{
		style.Bold(truncate.StringWithTail(m.props.Title, uint(m.width), "…")),
	}
	if len(m.props.Subtitles) > 0 {
		lines = append(lines, style.Faint(truncate.StringWithTail(strings.Join(m.props.Subtitles, " • "), uint(m.width), "…")))
	}

	lines = append(lines, m.viewScreen(st))

	if st.ControlsOpacity > 0 {
		lines = append(lines, m.viewControls(st))
	} else {
		lines = append(lines, "", "")
	}

	if st.Err != nil {
		lines = append(lines, style.Fg(color.Red)(wrap.String(icon.Get(icon.Fail)+" "+st.Err.Error(), m.width)))
	}

	return strings.Join(lines, "\n")
}

func (m *Model) viewScreen(st playback.State) string {
	var center string
	switch {
	case loadingOverlay(st):
		center = m.spinner.View() + " Loading"
	case playOverlay(st):
		center = style.Fg(style.Text)(icon.Get(icon.Play) + " Paused")
	default:
		center = style.Faint("playing")
	}

	var badges []string
	if st.Buffering {
		badges = append(badges, style.Tag(color.HiWhite, color.Scrim)(m.spinner.View()+" "+icon.Get(icon.Buffering)+"buffering"))
	}
	if muteBadge(st) {
		badges = append(badges, style.Tag(color.HiWhite, color.Scrim)(muteLabel(st.Muted)))
	}

	inner := m.width - 2
	body := lipgloss.Place(inner, screenHeight-2, lipgloss.Center, lipgloss.Center, center)
	if len(badges) > 0 {
		top := lipgloss.PlaceHorizontal(inner, lipgloss.Right, strings.Join(badges, " "))
		rows := strings.Split(body, "\n")
		rows[0] = top
		body = strings.Join(rows, "\n")
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lo.Ternary(st.Playing, color.Brand, style.BorderColor)).
		Render(body)
}

func (m *Model) viewControls(st playback.State) string {
	fg := style.Fg(fade(st.ControlsOpacity))

	transport := lo.Ternary(st.Playing, icon.Get(icon.Pause)+" pause", icon.Get(icon.Play)+" play")
	buttons := strings.Join([]string{
		icon.Get(icon.SeekBack) + " -10s",
		transport,
		icon.Get(icon.SeekForward) + " +10s",
		muteLabel(st.Muted),
	}, "   ")

	times := fmt.Sprintf("%s / %s", util.FormatMillis(st.PositionMillis), util.FormatMillis(st.DurationMillis))
	bar := m.progress.ViewAs(st.ProgressRatio())

	return lipgloss.JoinVertical(
		lipgloss.Left,
		fg(buttons),
		fg(times)+" "+bar,
	)
}

func muteLabel(muted bool) string {
	if muted {
		return icon.Get(icon.Muted) + " muted"
	}
	return icon.Get(icon.Unmuted) + " sound"
}
