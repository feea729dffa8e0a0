package engine

import (
	"context"
	"encoding/json"
	"net"
	"path/filepath"
	"sync"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

// fakeMPV answers JSON-IPC commands the way mpv does, one command per connection.
type fakeMPV struct {
	listener   net.Listener
	properties map[string]interface{}

	mu       sync.Mutex
	received [][]interface{}
}

func newFakeMPV(t *testing.T, properties map[string]interface{}) (*fakeMPV, string) {
	path := filepath.Join(t.TempDir(), "mpv.sock")
	l, err := net.Listen("unix", path)
	if err != nil {
		t.Fatalf("listen: %v", err)
	}

	f := &fakeMPV{listener: l, properties: properties}
	go f.serve()
	return f, path
}

func (f *fakeMPV) serve() {
	for {
		conn, err := f.listener.Accept()
		if err != nil {
			return
		}
		go f.handle(conn)
	}
}

func (f *fakeMPV) handle(conn net.Conn) {
	defer conn.Close()

	var cmd ipcCommand
	if err := json.NewDecoder(conn).Decode(&cmd); err != nil {
		return
	}

	f.mu.Lock()
	f.received = append(f.received, cmd.Command)
	f.mu.Unlock()

	encoder := json.NewEncoder(conn)
	// An unrelated event is interleaved before the reply, as mpv does.
	_ = encoder.Encode(map[string]interface{}{"event": "playback-restart"})

	resp := ipcResponse{Error: "success", RequestID: cmd.RequestID}
	if cmd.Command[0] == "get_property" {
		value, ok := f.properties[cmd.Command[1].(string)]
		if ok {
			resp.Data = value
		} else {
			resp.Error = errPropertyUnavailable
		}
	}
	_ = encoder.Encode(resp)
}

func (f *fakeMPV) last() []interface{} {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.received) == 0 {
		return nil
	}
	return f.received[len(f.received)-1]
}

func (f *fakeMPV) Close() {
	_ = f.listener.Close()
}

func connectedMPV(path string) *MPV {
	m := NewMPV(Options{CommandTimeout: time.Second})
	m.socketPath = path
	return m
}

func TestMPVCommands(t *testing.T) {
	Convey("Given an mpv instance with loaded media", t, func() {
		fake, path := newFakeMPV(t, map[string]interface{}{
			"time-pos":         235.0,
			"duration":         241.859,
			"pause":            false,
			"paused-for-cache": true,
		})
		defer fake.Close()

		m := connectedMPV(path)
		ctx := context.Background()

		Convey("Status reports the transport state in milliseconds", func() {
			status, err := m.Status(ctx)
			So(err, ShouldBeNil)
			So(status.Loaded, ShouldBeTrue)
			So(status.Playing, ShouldBeTrue)
			So(status.Buffering, ShouldBeTrue)
			So(status.PositionMillis, ShouldEqual, 235000)
			So(status.DurationMillis.MustGet(), ShouldEqual, 241859)
		})

		Convey("SetMuted sets the mute property", func() {
			So(m.SetMuted(ctx, true), ShouldBeNil)
			So(fake.last(), ShouldResemble, []interface{}{"set_property", "mute", true})
		})

		Convey("Pause and Play flip the pause property", func() {
			So(m.Pause(ctx), ShouldBeNil)
			So(fake.last(), ShouldResemble, []interface{}{"set_property", "pause", true})
			So(m.Play(ctx), ShouldBeNil)
			So(fake.last(), ShouldResemble, []interface{}{"set_property", "pause", false})
		})

		Convey("SeekTo issues an absolute seek in seconds", func() {
			So(m.SeekTo(ctx, 241859), ShouldBeNil)
			So(fake.last(), ShouldResemble, []interface{}{"seek", 241.859, "absolute"})
		})
	})

	Convey("Given an mpv instance with nothing loaded", t, func() {
		fake, path := newFakeMPV(t, map[string]interface{}{})
		defer fake.Close()

		m := connectedMPV(path)

		Convey("Status reports an unloaded snapshot without error", func() {
			status, err := m.Status(context.Background())
			So(err, ShouldBeNil)
			So(status.Loaded, ShouldBeFalse)
			So(status.DurationMillis.IsPresent(), ShouldBeFalse)
		})
	})

	Convey("Given an engine that was never opened", t, func() {
		m := NewMPV(Options{})

		Convey("Commands report ErrNotLoaded", func() {
			So(m.Play(context.Background()), ShouldEqual, ErrNotLoaded)
			_, err := m.Status(context.Background())
			So(err, ShouldEqual, ErrNotLoaded)
		})

		Convey("Close is idempotent and closes the event channel", func() {
			So(m.Close(), ShouldBeNil)
			So(m.Close(), ShouldBeNil)
			_, ok := <-m.Events()
			So(ok, ShouldBeFalse)
			So(m.Play(context.Background()), ShouldEqual, ErrClosed)
		})
	})
}

func TestSanitize(t *testing.T) {
	Convey("sanitizeMediaTarget", t, func() {
		Convey("accepts http(s) URLs and local paths", func() {
			got, err := sanitizeMediaTarget(" https://cdn.example/video.mp4 ")
			So(err, ShouldBeNil)
			So(got, ShouldEqual, "https://cdn.example/video.mp4")

			got, err = sanitizeMediaTarget("videos/../clip.mp4")
			So(err, ShouldBeNil)
			So(got, ShouldEqual, "clip.mp4")
		})

		Convey("rejects flags, control characters and foreign schemes", func() {
			for _, bad := range []string{"", "--script=evil.lua", "a\nb", "ftp://host/file"} {
				_, err := sanitizeMediaTarget(bad)
				So(err, ShouldNotBeNil)
			}
		})
	})

	Convey("sanitizeTitle flattens whitespace", t, func() {
		So(sanitizeTitle(" Flowers\n\tLive\x00 "), ShouldEqual, "Flowers  Live")
	})
}
