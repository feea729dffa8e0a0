package playback

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Phase is the state of the transport-controls overlay.
//
//	        tap               fade done
//	Hidden ─────► Showing ─────────────► Visible
//	  ▲              │ tap                  │ tap / auto-hide
//	  │ fade done    ▼                      ▼
//	  └────────── Hiding ◄──────────────────┘
//
// A tap in Hiding restarts the fade-out from the current opacity.
type Phase int

const (
	Hidden Phase = iota
	Showing
	Visible
	Hiding
)

func (p Phase) String() string {
	switch p {
	case Hidden:
		return "hidden"
	case Showing:
		return "showing"
	case Visible:
		return "visible"
	case Hiding:
		return "hiding"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

type controlsFrameMsg struct {
	id   int
	tag  int
	step time.Duration
}

type autoHideMsg struct {
	id  int
	tag int
}

// controls animates the overlay opacity and owns the auto-hide timer.
// Each transition bumps tag, which retires every frame and timer issued before it.
type controls struct {
	id       int
	fade     time.Duration
	autoHide time.Duration
	frame    time.Duration
	schedule Scheduler

	phase   Phase
	opacity float64

	from, to float64
	elapsed  time.Duration
	tag      int
}

// visible is the coarse intent; opacity only follows it.
func (c *controls) visible() bool {
	return c.phase == Showing || c.phase == Visible
}

// tap flips the intent: Hidden shows, anything else hides now.
func (c *controls) tap() tea.Cmd {
	if c.phase == Hidden {
		return c.animate(1, Showing)
	}
	return c.animate(0, Hiding)
}

func (c *controls) animate(target float64, phase Phase) tea.Cmd {
	c.tag++
	c.phase = phase
	c.from = c.opacity
	c.to = target
	c.elapsed = 0

	if c.fade <= 0 {
		return c.settle()
	}
	return c.nextFrame()
}

func (c *controls) nextFrame() tea.Cmd {
	step := c.frame
	if remaining := c.fade - c.elapsed; step <= 0 || step > remaining {
		step = remaining
	}
	return c.schedule(step, controlsFrameMsg{id: c.id, tag: c.tag, step: step})
}

// advance applies one animation frame.
func (c *controls) advance(msg controlsFrameMsg) tea.Cmd {
	if msg.tag != c.tag || (c.phase != Showing && c.phase != Hiding) {
		return nil
	}

	c.elapsed += msg.step
	if c.elapsed >= c.fade {
		return c.settle()
	}

	progress := float64(c.elapsed) / float64(c.fade)
	c.opacity = c.from + (c.to-c.from)*progress
	return c.nextFrame()
}

// settle ends the running animation and arms the auto-hide timer after a fade-in.
func (c *controls) settle() tea.Cmd {
	c.opacity = c.to
	if c.to == 0 {
		c.phase = Hidden
		return nil
	}

	c.phase = Visible
	return c.schedule(c.autoHide, autoHideMsg{id: c.id, tag: c.tag})
}

func (c *controls) expire(msg autoHideMsg) tea.Cmd {
	if msg.tag != c.tag || c.phase != Visible {
		return nil
	}
	return c.animate(0, Hiding)
}

// stop retires every pending frame and timer.
func (c *controls) stop() {
	c.tag++
}
