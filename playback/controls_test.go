package playback

import (
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

func TestControls(t *testing.T) {
	Convey("Given a session with hidden controls", t, func() {
		s, tl := newHarness(newFakeEngine(), Media{URI: "a.mp4"})

		Convey("When the controls are tapped", func() {
			tl.run(s.TapControls())

			Convey("Then they start showing", func() {
				So(s.State().ControlsVisible, ShouldBeTrue)
				So(s.State().ControlsPhase, ShouldEqual, Showing)
			})

			Convey("Then opacity rises monotonically and completes at the fade duration", func() {
				previous := 0.0
				monotonic := true
				for i := 0; i < 199; i++ {
					tl.advance(time.Millisecond)
					if o := s.State().ControlsOpacity; o < previous {
						monotonic = false
					} else {
						previous = o
					}
				}
				So(monotonic, ShouldBeTrue)
				So(s.State().ControlsPhase, ShouldEqual, Showing)

				tl.advance(time.Millisecond)
				So(s.State().ControlsPhase, ShouldEqual, Visible)
				So(s.State().ControlsOpacity, ShouldEqual, 1)
			})

			Convey("And left alone", func() {
				tl.advance(200 * time.Millisecond)
				tl.advance(2999 * time.Millisecond)

				Convey("Then they stay visible until the auto-hide delay", func() {
					So(s.State().ControlsPhase, ShouldEqual, Visible)
				})

				Convey("Then they hide after it", func() {
					tl.advance(time.Millisecond)
					So(s.State().ControlsVisible, ShouldBeFalse)
					So(s.State().ControlsPhase, ShouldEqual, Hiding)

					tl.advance(200 * time.Millisecond)
					So(s.State().ControlsPhase, ShouldEqual, Hidden)
					So(s.State().ControlsOpacity, ShouldEqual, 0)
				})
			})

			Convey("And tapped again once visible", func() {
				tl.advance(200 * time.Millisecond)
				tl.advance(time.Second)
				tl.run(s.TapControls())

				Convey("Then they hide", func() {
					So(s.State().ControlsVisible, ShouldBeFalse)
					tl.advance(200 * time.Millisecond)
					So(s.State().ControlsPhase, ShouldEqual, Hidden)
				})

				Convey("Then the old auto-hide timer is inert", func() {
					tl.advance(200 * time.Millisecond)
					tl.advance(5 * time.Second)
					So(s.State().ControlsPhase, ShouldEqual, Hidden)
					So(tl.pending, ShouldBeEmpty)
				})

				Convey("And tapped once more after hiding", func() {
					tl.advance(200 * time.Millisecond)
					tl.run(s.TapControls())
					tl.advance(200 * time.Millisecond)

					Convey("Then the auto-hide restarts from the new show", func() {
						tl.advance(2999 * time.Millisecond)
						So(s.State().ControlsPhase, ShouldEqual, Visible)
						tl.advance(time.Millisecond)
						So(s.State().ControlsPhase, ShouldEqual, Hiding)
					})
				})
			})

			Convey("And tapped again mid-animation", func() {
				tl.advance(100 * time.Millisecond)
				mid := s.State().ControlsOpacity
				tl.run(s.TapControls())

				Convey("Then they fade out from the current opacity", func() {
					So(mid, ShouldBeBetween, 0.0, 1.0)
					So(s.State().ControlsPhase, ShouldEqual, Hiding)
					So(s.State().ControlsOpacity, ShouldEqual, mid)

					tl.advance(100 * time.Millisecond)
					So(s.State().ControlsOpacity, ShouldBeLessThan, mid)

					tl.advance(100 * time.Millisecond)
					So(s.State().ControlsPhase, ShouldEqual, Hidden)
					So(s.State().ControlsOpacity, ShouldEqual, 0)
				})

				Convey("Then no auto-hide is left behind", func() {
					tl.advance(5 * time.Second)
					So(s.State().ControlsPhase, ShouldEqual, Hidden)
				})
			})
		})
	})
}

func TestControlsWithoutFade(t *testing.T) {
	Convey("Given controls without a fade", t, func() {
		tl := &timeline{}
		c := controls{fade: 0, autoHide: time.Second, frame: time.Millisecond, schedule: tl.schedule}

		Convey("When tapped", func() {
			c.tap()

			Convey("Then they are visible at once and the auto-hide is armed", func() {
				So(c.phase, ShouldEqual, Visible)
				So(c.opacity, ShouldEqual, 1)
				So(tl.pending, ShouldHaveLength, 1)
			})

			Convey("And tapped again they are hidden at once", func() {
				c.tap()
				So(c.phase, ShouldEqual, Hidden)
				So(c.opacity, ShouldEqual, 0)
			})
		})
	})
}

func TestPhaseString(t *testing.T) {
	Convey("Phases have readable names", t, func() {
		So(Hidden.String(), ShouldEqual, "hidden")
		So(Hiding.String(), ShouldEqual, "hiding")
		So(Phase(9).String(), ShouldEqual, "Phase(9)")
	})
}
