package playback

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/tevify/tevify/engine"
)

// SeekForward moves playback SeekStep milliseconds ahead, stopping at the end.
func (s *Session) SeekForward() tea.Cmd {
	return s.seek(s.cfg.SeekStep)
}

// SeekBackward moves playback SeekStep milliseconds back, stopping at the start.
func (s *Session) SeekBackward() tea.Cmd {
	return s.seek(-s.cfg.SeekStep)
}

// seek reads the live position from the engine so consecutive seeks never
// compound a stale cached one. Nothing is sent while the media is unloaded.
func (s *Session) seek(delta int) tea.Cmd {
	if s.closed {
		return nil
	}

	ctx, eng, id := s.ctx, s.engine, s.id
	return func() tea.Msg {
		status, err := eng.Status(ctx)
		if err != nil {
			return seekMsg{id: id, err: err}
		}
		if !status.Loaded {
			return seekMsg{id: id, skipped: true}
		}

		target := seekTarget(status, delta)
		return seekMsg{id: id, target: target, err: eng.SeekTo(ctx, target)}
	}
}

// seekTarget clamps position+delta to [0, duration]; an unknown duration has no upper bound.
func seekTarget(status engine.Status, delta int) int {
	target := status.PositionMillis + delta
	if target < 0 {
		target = 0
	}
	if d, ok := status.DurationMillis.Get(); ok && target > d {
		target = d
	}
	return target
}
