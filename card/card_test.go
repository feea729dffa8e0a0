package card

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/tevify/tevify/engine"
	"github.com/tevify/tevify/playback"
)

type fakeEngine struct {
	calls  []string
	status engine.Status
	events chan engine.Event
	closed bool
}

func newFakeEngine() *fakeEngine {
	return &fakeEngine{events: make(chan engine.Event, 4)}
}

func (f *fakeEngine) Open(context.Context, engine.Source) error { f.calls = append(f.calls, "open"); return nil }
func (f *fakeEngine) Prefetch(context.Context, string) error {
	f.calls = append(f.calls, "prefetch")
	return errors.New("offline")
}
func (f *fakeEngine) Play(context.Context) error  { f.calls = append(f.calls, "play"); return nil }
func (f *fakeEngine) Pause(context.Context) error { f.calls = append(f.calls, "pause"); return nil }
func (f *fakeEngine) SetMuted(_ context.Context, muted bool) error {
	f.calls = append(f.calls, map[bool]string{true: "mute", false: "unmute"}[muted])
	return nil
}
func (f *fakeEngine) Status(context.Context) (engine.Status, error) {
	f.calls = append(f.calls, "status")
	return f.status, nil
}
func (f *fakeEngine) SeekTo(context.Context, int) error { f.calls = append(f.calls, "seek"); return nil }
func (f *fakeEngine) Events() <-chan engine.Event       { return f.events }
func (f *fakeEngine) Close() error {
	f.closed = true
	return nil
}

func (f *fakeEngine) called(call string) bool {
	for _, c := range f.calls {
		if c == call {
			return true
		}
	}
	return false
}

// drive runs cmd and feeds its messages back into the card. Timers are
// dropped and the engine subscription is left closed so nothing blocks.
func drive(m *Model, cmd tea.Cmd) {
	if cmd == nil {
		return
	}
	switch msg := cmd().(type) {
	case nil, spinner.TickMsg:
	case tea.BatchMsg:
		for _, c := range msg {
			drive(m, c)
		}
	default:
		drive(m, m.Update(msg))
	}
}

func noTimers(time.Duration, tea.Msg) tea.Cmd {
	return nil
}

func press(keys string) tea.KeyMsg {
	if keys == " " {
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune(" ")}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(keys)}
}

func newCard(eng *fakeEngine) *Model {
	close(eng.events)
	m := New(eng, Props{
		SourceURI: "https://example.com/clip.mp4",
		Title:     "Big Buck Bunny",
		Subtitles: []string{"12.4M views", "2 days ago"},
	}, playback.WithScheduler(noTimers))
	drive(m, m.Init())
	return m
}

func TestCard(t *testing.T) {
	Convey("Given a mounted card whose media is still loading", t, func() {
		eng := newFakeEngine()
		m := newCard(eng)

		Convey("Then the media is opened and the loading overlay is shown", func() {
			So(eng.called("open"), ShouldBeTrue)
			So(m.View(), ShouldContainSubstring, "Loading")
			So(m.View(), ShouldContainSubstring, "Big Buck Bunny")
			So(m.View(), ShouldContainSubstring, "12.4M views")
		})

		Convey("When play is pressed over the loading overlay", func() {
			drive(m, m.Update(press("p")))

			Convey("Then nothing is sent", func() {
				So(eng.called("play"), ShouldBeFalse)
			})
		})

		Convey("When the media becomes ready", func() {
			drive(m, m.Update(playbackEvent(m, engine.Event{Kind: engine.Load})))

			Convey("Then the play overlay replaces the loading one", func() {
				So(m.View(), ShouldNotContainSubstring, "Loading")
				So(m.View(), ShouldContainSubstring, "Paused")
			})

			Convey("And play is pressed", func() {
				drive(m, m.Update(press("p")))

				Convey("Then the engine plays", func() {
					So(eng.called("play"), ShouldBeTrue)
					So(m.State().Playing, ShouldBeTrue)
				})

				Convey("And the floating mute badge accepts mute", func() {
					drive(m, m.Update(press("m")))
					So(eng.called("unmute"), ShouldBeTrue)
				})

				Convey("And seeking is ignored while the controls are hidden", func() {
					drive(m, m.Update(tea.KeyMsg{Type: tea.KeyRight}))
					So(eng.called("status"), ShouldBeFalse)
				})
			})

			Convey("And the controls are tapped", func() {
				drive(m, m.Update(press(" ")))

				Convey("Then they are showing", func() {
					So(m.State().ControlsVisible, ShouldBeTrue)
				})

				Convey("Then seeking is accepted", func() {
					eng.status = engine.Status{Loaded: true, PositionMillis: 1000}
					drive(m, m.Update(tea.KeyMsg{Type: tea.KeyRight}))
					So(eng.called("seek"), ShouldBeTrue)
				})
			})
		})

		Convey("When the card is closed", func() {
			drive(m, m.Close())

			Convey("Then the engine is released and input ignored", func() {
				So(eng.closed, ShouldBeTrue)
				So(m.Update(press(" ")), ShouldBeNil)
			})
		})
	})
}

func TestFade(t *testing.T) {
	Convey("Given controls opacity", t, func() {
		So(fade(0), ShouldEqual, fadeSteps[0])
		So(fade(1), ShouldEqual, fadeSteps[len(fadeSteps)-1])
		So(fade(2), ShouldEqual, fadeSteps[len(fadeSteps)-1])
		So(fade(-1), ShouldEqual, fadeSteps[0])
	})
}
