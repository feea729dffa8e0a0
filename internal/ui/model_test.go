package ui

import (
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestModel(t *testing.T) {
	Convey("Given a notifier", t, func() {
		m := &Model{}

		Convey("When nothing was notified", func() {
			Convey("Then the content is untouched", func() {
				So(m.View("a\nb"), ShouldEqual, "a\nb")
			})
		})

		Convey("When a notification arrives", func() {
			cmd := m.Update(Notify("Stopped clip")())

			Convey("Then it is appended to the last line and a clear is scheduled", func() {
				So(cmd, ShouldNotBeNil)
				So(m.Notification(), ShouldEqual, "Stopped clip")
				lines := strings.Split(m.View("a\nb"), "\n")
				So(lines[0], ShouldEqual, "a")
				So(lines[1], ShouldContainSubstring, "Stopped clip")
			})

			Convey("And its clear fires", func() {
				m.Update(ClearNotificationMsg{at: m.notifiedAt})
				So(m.Notification(), ShouldBeEmpty)
			})

			Convey("And a stale clear fires", func() {
				m.Update(ClearNotificationMsg{})
				So(m.Notification(), ShouldEqual, "Stopped clip")
			})
		})
	})
}
