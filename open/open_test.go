package open

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/tevify/tevify/constant"
)

func TestCommand(t *testing.T) {
	Convey("Given a target directory", t, func() {
		target := "/tmp/tevify"

		Convey("Linux uses xdg-open", func() {
			cmd, err := Command(constant.Linux, target)
			So(err, ShouldBeNil)
			So(cmd.Args, ShouldResemble, []string{"xdg-open", target})
		})

		Convey("macOS uses open", func() {
			cmd, err := Command(constant.Darwin, target)
			So(err, ShouldBeNil)
			So(cmd.Args, ShouldResemble, []string{"open", target})
		})

		Convey("Android uses termux-open", func() {
			cmd, err := Command(constant.Android, target)
			So(err, ShouldBeNil)
			So(cmd.Args[0], ShouldEqual, "termux-open")
		})

		Convey("Unknown systems are rejected", func() {
			_, err := Command("plan9", target)
			So(err, ShouldNotBeNil)
		})
	})
}
