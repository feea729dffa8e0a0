package playback

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

type bufferingTimeoutMsg struct {
	id  int
	tag int
}

// debouncer surfaces engine buffering only once it has held for delay.
// Onset is delayed, clearing is immediate.
type debouncer struct {
	id       int
	delay    time.Duration
	schedule Scheduler

	engineBuffering bool // last raw reading
	visible         bool // the debounced indicator
	tag             int  // identifies the one live timer
}

// observe feeds a raw engine reading and returns the timer to start, if any.
func (d *debouncer) observe(buffering bool) tea.Cmd {
	was := d.engineBuffering
	d.engineBuffering = buffering

	if !buffering {
		d.tag++
		d.visible = false
		return nil
	}

	if was || d.visible {
		return nil
	}

	d.tag++
	if d.delay <= 0 {
		d.visible = true
		return nil
	}
	return d.schedule(d.delay, bufferingTimeoutMsg{id: d.id, tag: d.tag})
}

// expire handles a fired timer, reporting whether the indicator changed.
func (d *debouncer) expire(msg bufferingTimeoutMsg) bool {
	if msg.tag != d.tag || !d.engineBuffering || d.visible {
		return false
	}
	d.visible = true
	return true
}

// cancel invalidates any pending timer.
func (d *debouncer) cancel() {
	d.tag++
}
