package card

import (
	"github.com/tevify/tevify/engine"
	"github.com/tevify/tevify/playback"
)

func playbackEvent(m *Model, ev engine.Event) playback.EventMsg {
	return playback.NewEventMsg(m.session, ev)
}
