package engine

import (
	"encoding/json"
	"fmt"
	"math"
	"net"
	"sync"

	"github.com/samber/mo"
	"github.com/tevify/tevify/log"
)

// observedProperties are subscribed on the listener's own connection; mpv
// only reports property changes to the client that asked for them.
var observedProperties = []string{
	"pause",
	"paused-for-cache",
	"time-pos",
	"duration",
}

// mpvEvent is a single line from the persistent mpv connection.
type mpvEvent struct {
	Event string      `json:"event"`
	Name  string      `json:"name"`
	Data  interface{} `json:"data"`
}

// eventListener turns mpv's push notifications into engine Events.
//
// It owns the status snapshot; readLoop is its only writer, so snapshots
// leave the listener in the order mpv produced them.
type eventListener struct {
	conn   net.Conn
	out    chan<- Event
	stopCh chan struct{}
	once   sync.Once

	status Status
	paused bool
}

// newEventListener subscribes to property changes on conn and starts the read loop.
// The out channel is closed when the loop ends.
func newEventListener(conn net.Conn, out chan<- Event, initiallyPaused bool) (*eventListener, error) {
	el := &eventListener{
		conn:   conn,
		out:    out,
		stopCh: make(chan struct{}),
		paused: initiallyPaused,
	}

	encoder := json.NewEncoder(conn)
	for i, prop := range observedProperties {
		// observe_property <id> <property>
		if err := encoder.Encode(ipcCommand{Command: []interface{}{"observe_property", i + 1, prop}}); err != nil {
			return nil, fmt.Errorf("observe %s: %w", prop, err)
		}
	}

	go el.readLoop()
	return el, nil
}

// Stop terminates the listener; safe to call more than once.
func (el *eventListener) Stop() {
	el.once.Do(func() {
		close(el.stopCh)
		_ = el.conn.Close()
	})
}

// readLoop decodes newline-delimited JSON until the connection closes.
func (el *eventListener) readLoop() {
	defer close(el.out)

	decoder := json.NewDecoder(el.conn)
	for {
		var ev mpvEvent
		if err := decoder.Decode(&ev); err != nil {
			select {
			case <-el.stopCh:
			default:
				log.Warnf("engine event listener stopped: %v", err)
			}
			return
		}

		for _, out := range el.translate(ev) {
			select {
			case el.out <- out:
			case <-el.stopCh:
				return
			}
		}
	}
}

// translate folds a raw mpv event into the snapshot and returns the engine events it implies.
func (el *eventListener) translate(ev mpvEvent) []Event {
	switch ev.Event {
	case "":
		// Command replies carry no event name.
		return nil
	case "start-file":
		el.status = Status{}
		return []Event{{Kind: LoadStart, Status: el.snapshot()}}
	case "file-loaded":
		el.status.Loaded = true
		return []Event{{Kind: Load, Status: el.snapshot()}, {Kind: StatusUpdate, Status: el.snapshot()}}
	case "end-file":
		el.status.Loaded = false
		return []Event{{Kind: StatusUpdate, Status: el.snapshot()}}
	case "property-change":
		if !el.apply(ev.Name, ev.Data) {
			return nil
		}
		return []Event{{Kind: StatusUpdate, Status: el.snapshot()}}
	default:
		return nil
	}
}

// apply records a property change, reporting whether it touched the snapshot.
func (el *eventListener) apply(name string, data interface{}) bool {
	switch name {
	case "pause":
		paused, ok := data.(bool)
		if !ok {
			return false
		}
		el.paused = paused
	case "paused-for-cache":
		buffering, _ := data.(bool)
		el.status.Buffering = buffering
	case "time-pos":
		seconds, ok := data.(float64)
		if !ok {
			return false
		}
		el.status.PositionMillis = secondsToMillis(seconds)
	case "duration":
		seconds, _ := data.(float64)
		if millis := secondsToMillis(seconds); millis > 0 {
			el.status.DurationMillis = mo.Some(millis)
		} else {
			el.status.DurationMillis = mo.None[int]()
		}
	default:
		return false
	}
	return true
}

func (el *eventListener) snapshot() Status {
	s := el.status
	s.Playing = s.Loaded && !el.paused
	return s
}

func secondsToMillis(seconds float64) int {
	if seconds <= 0 || math.IsNaN(seconds) || math.IsInf(seconds, 0) {
		return 0
	}
	return int(math.Round(seconds * 1000))
}
