package version

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/tevify/tevify/filesystem"
	"github.com/tevify/tevify/where"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestSemver(t *testing.T) {
	Convey("Given release tags", t, func() {
		Convey("Then numeric components are compared numerically", func() {
			So(newer("1.0.0", "0.9.9"), ShouldBeTrue)
			So(newer("0.10.0", "0.2.0"), ShouldBeTrue)
			So(newer("v0.1.1", "0.1.1"), ShouldBeFalse)
		})

		Convey("Then a release is ahead of its pre-release", func() {
			So(newer("0.2.0", "0.2.0-rc.1"), ShouldBeTrue)
			So(newer("0.2.0-rc.2", "0.2.0-rc.1"), ShouldBeTrue)
			So(newer("0.2.0-rc.1", "0.1.9"), ShouldBeTrue)
		})

		Convey("Then short tags and build metadata are normalized", func() {
			v, err := Canonical("1.2")
			So(err, ShouldBeNil)
			So(v, ShouldEqual, "v1.2.0")

			v, err = Canonical("v1.2.3+build.7")
			So(err, ShouldBeNil)
			So(v, ShouldEqual, "v1.2.3")
		})

		Convey("Then garbage is an error", func() {
			_, err := Newer("latest", "0.1.0")
			So(err, ShouldNotBeNil)

			_, err = Canonical("1.2.3.4")
			So(err, ShouldNotBeNil)
		})
	})
}

func newer(latest, current string) bool {
	ok, _ := Newer(latest, current)
	return ok
}

func TestLatest(t *testing.T) {
	Convey("Given a releases endpoint", t, func() {
		_ = filesystem.API().Remove(filepath.Join(where.Cache(), "version.json"))

		hits := 0
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			hits++
			_, _ = fmt.Fprint(w, `{"tag_name":"v1.2.3"}`)
		}))
		defer server.Close()

		previous := ReleasesURL
		ReleasesURL = server.URL
		defer func() { ReleasesURL = previous }()

		Convey("When asked twice", func() {
			first, err := Latest(context.Background())
			So(err, ShouldBeNil)
			second, err := Latest(context.Background())
			So(err, ShouldBeNil)

			Convey("Then the tag is stripped and cached", func() {
				So(first, ShouldEqual, "1.2.3")
				So(second, ShouldEqual, "1.2.3")
				So(hits, ShouldEqual, 1)
			})
		})
	})
}
