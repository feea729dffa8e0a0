package playback

import "github.com/tevify/tevify/engine"

// EventMsg carries one engine event to the session that subscribed to it.
type EventMsg struct {
	id    int
	Event engine.Event
}

// NewEventMsg addresses ev to s.
func NewEventMsg(s *Session, ev engine.Event) EventMsg {
	return EventMsg{id: s.id, Event: ev}
}

// For reports whether the message belongs to s.
func (m EventMsg) For(s *Session) bool {
	return m.id == s.id
}

type openMsg struct {
	id  int
	err error
}

type preloadMsg struct {
	id  int
	err error
}

type transportMsg struct {
	id      int
	playing bool
	err     error
}

type muteMsg struct {
	id    int
	muted bool
	err   error
}

type seekMsg struct {
	id      int
	target  int
	skipped bool
	err     error
}

type closedMsg struct {
	id int
}
