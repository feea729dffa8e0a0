package engine

import (
	"encoding/json"
	"math"
	"net"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestTranslate(t *testing.T) {
	Convey("Given a listener for paused media", t, func() {
		el := &eventListener{paused: true}

		Convey("start-file resets the snapshot and reports LoadStart", func() {
			el.status.PositionMillis = 5000
			events := el.translate(mpvEvent{Event: "start-file"})
			So(events, ShouldHaveLength, 1)
			So(events[0].Kind, ShouldEqual, LoadStart)
			So(events[0].Status.PositionMillis, ShouldEqual, 0)
		})

		Convey("file-loaded reports Load followed by a status", func() {
			events := el.translate(mpvEvent{Event: "file-loaded"})
			So(events, ShouldHaveLength, 2)
			So(events[0].Kind, ShouldEqual, Load)
			So(events[1].Kind, ShouldEqual, StatusUpdate)
			So(events[1].Status.Loaded, ShouldBeTrue)
			So(events[1].Status.Playing, ShouldBeFalse)

			Convey("and unpausing makes it playing", func() {
				events := el.translate(mpvEvent{Event: "property-change", Name: "pause", Data: false})
				So(events, ShouldHaveLength, 1)
				So(events[0].Status.Playing, ShouldBeTrue)
			})
		})

		Convey("property changes update position, duration and buffering", func() {
			el.translate(mpvEvent{Event: "property-change", Name: "time-pos", Data: 1.5})
			el.translate(mpvEvent{Event: "property-change", Name: "duration", Data: 241.859})
			events := el.translate(mpvEvent{Event: "property-change", Name: "paused-for-cache", Data: true})

			status := events[0].Status
			So(status.PositionMillis, ShouldEqual, 1500)
			So(status.DurationMillis.MustGet(), ShouldEqual, 241859)
			So(status.Buffering, ShouldBeTrue)
		})

		Convey("an unknown duration clears the optional value", func() {
			el.translate(mpvEvent{Event: "property-change", Name: "duration", Data: 10.0})
			events := el.translate(mpvEvent{Event: "property-change", Name: "duration", Data: nil})
			So(events[0].Status.DurationMillis.IsPresent(), ShouldBeFalse)
		})

		Convey("replies and unobserved properties produce nothing", func() {
			So(el.translate(mpvEvent{}), ShouldBeEmpty)
			So(el.translate(mpvEvent{Event: "property-change", Name: "volume", Data: 50.0}), ShouldBeEmpty)
			So(el.translate(mpvEvent{Event: "playback-restart"}), ShouldBeEmpty)
		})
	})
}

func TestEventListener(t *testing.T) {
	Convey("Given a listener attached to an mpv connection", t, func() {
		client, server := net.Pipe()
		out := make(chan Event, 8)

		observed := make(chan []string, 1)
		go func() {
			decoder := json.NewDecoder(server)
			var names []string
			for range observedProperties {
				var cmd ipcCommand
				if err := decoder.Decode(&cmd); err != nil {
					break
				}
				names = append(names, cmd.Command[2].(string))
			}
			observed <- names

			encoder := json.NewEncoder(server)
			_ = encoder.Encode(map[string]interface{}{"error": "success"})
			_ = encoder.Encode(map[string]interface{}{"event": "start-file"})
			_ = encoder.Encode(map[string]interface{}{"event": "file-loaded"})
			_ = encoder.Encode(map[string]interface{}{"event": "property-change", "name": "time-pos", "data": 2.0})
			_ = server.Close()
		}()

		el, err := newEventListener(client, out, false)
		So(err, ShouldBeNil)
		defer el.Stop()

		Convey("It observes every property and forwards events in order", func() {
			So(<-observed, ShouldResemble, observedProperties)

			var kinds []EventKind
			var last Event
			for ev := range out {
				kinds = append(kinds, ev.Kind)
				last = ev
			}

			So(kinds, ShouldResemble, []EventKind{LoadStart, Load, StatusUpdate, StatusUpdate})
			So(last.Status.PositionMillis, ShouldEqual, 2000)
			So(last.Status.Playing, ShouldBeTrue)
		})
	})
}

func TestSecondsToMillis(t *testing.T) {
	Convey("secondsToMillis", t, func() {
		So(secondsToMillis(1.5), ShouldEqual, 1500)
		So(secondsToMillis(241.8594), ShouldEqual, 241859)

		Convey("maps values mpv cannot mean as a position to 0", func() {
			for _, bad := range []float64{0, -3, math.NaN(), math.Inf(1), math.Inf(-1)} {
				So(secondsToMillis(bad), ShouldEqual, 0)
			}
		})
	})
}
