package util

import (
	"testing"

	"github.com/samber/lo"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/tevify/tevify/filesystem"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestQuantify(t *testing.T) {
	Convey("Quantify", t, func() {
		So(Quantify(1, "video", "videos"), ShouldEqual, "1 video")
		So(Quantify(4, "video", "videos"), ShouldEqual, "4 videos")
	})
}

func TestClamp(t *testing.T) {
	Convey("Clamp", t, func() {
		So(Clamp(245000, 0, 241859), ShouldEqual, 241859)
		So(Clamp(-5000, 0, 241859), ShouldEqual, 0)
		So(Clamp(0.5, 0.0, 1.0), ShouldEqual, 0.5)
	})
}

func TestFormatMillis(t *testing.T) {
	Convey("FormatMillis", t, func() {
		So(FormatMillis(0), ShouldEqual, "0:00")
		So(FormatMillis(9999), ShouldEqual, "0:09")
		So(FormatMillis(241859), ShouldEqual, "4:01")
		So(FormatMillis(-1), ShouldEqual, "0:00")
	})
}

func TestDelete(t *testing.T) {
	Convey("Given a directory with a file", t, func() {
		fs := filesystem.API()
		So(fs.MkdirAll("/tmp/tevify/sock", 0755), ShouldBeNil)
		So(fs.WriteFile("/tmp/tevify/sock/a.sock", []byte("x"), 0644), ShouldBeNil)

		Convey("Delete removes it recursively", func() {
			So(Delete("/tmp/tevify"), ShouldBeNil)
			So(lo.Must(fs.Exists("/tmp/tevify/sock/a.sock")), ShouldBeFalse)
		})

		Convey("Delete of a missing path errors", func() {
			So(Delete("/does/not/exist"), ShouldNotBeNil)
		})
	})
}
