package playback

import (
	"context"
	"sort"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/samber/mo"
	"github.com/tevify/tevify/engine"
)

// fakeEngine records calls and answers from canned values.
type fakeEngine struct {
	mu sync.Mutex

	calls  []string
	seeks  []int
	opened engine.Source
	closed bool

	status    engine.Status
	statusErr error

	openErr, prefetchErr, playErr, pauseErr, muteErr, seekErr error

	events chan engine.Event
}

var _ engine.Engine = (*fakeEngine)(nil)

func newFakeEngine() *fakeEngine {
	return &fakeEngine{events: make(chan engine.Event, 8)}
}

func (f *fakeEngine) record(call string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
}

func (f *fakeEngine) count(call string) (n int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.calls {
		if c == call {
			n++
		}
	}
	return n
}

func (f *fakeEngine) Open(_ context.Context, src engine.Source) error {
	f.record("open")
	f.opened = src
	return f.openErr
}

func (f *fakeEngine) Prefetch(context.Context, string) error {
	f.record("prefetch")
	return f.prefetchErr
}

func (f *fakeEngine) Play(context.Context) error {
	f.record("play")
	return f.playErr
}

func (f *fakeEngine) Pause(context.Context) error {
	f.record("pause")
	return f.pauseErr
}

func (f *fakeEngine) SetMuted(_ context.Context, muted bool) error {
	if muted {
		f.record("mute")
	} else {
		f.record("unmute")
	}
	return f.muteErr
}

func (f *fakeEngine) Status(context.Context) (engine.Status, error) {
	f.record("status")
	return f.status, f.statusErr
}

func (f *fakeEngine) SeekTo(_ context.Context, millis int) error {
	f.record("seek")
	f.seeks = append(f.seeks, millis)
	return f.seekErr
}

func (f *fakeEngine) Events() <-chan engine.Event {
	return f.events
}

func (f *fakeEngine) Close() error {
	f.record("close")
	f.closed = true
	return nil
}

type scheduled struct {
	at  time.Duration
	seq int
	msg tea.Msg
}

// timeline is a virtual clock: scheduled messages are delivered by advance,
// every other command runs synchronously and its message goes straight to the session.
type timeline struct {
	now     time.Duration
	seq     int
	pending []scheduled
	session *Session
}

func (tl *timeline) schedule(d time.Duration, msg tea.Msg) tea.Cmd {
	tl.seq++
	tl.pending = append(tl.pending, scheduled{at: tl.now + d, seq: tl.seq, msg: msg})
	return nil
}

func (tl *timeline) run(cmd tea.Cmd) {
	if cmd == nil {
		return
	}
	tl.dispatch(cmd())
}

func (tl *timeline) dispatch(msg tea.Msg) {
	switch msg := msg.(type) {
	case nil:
	case tea.BatchMsg:
		for _, cmd := range msg {
			tl.run(cmd)
		}
	default:
		tl.run(tl.session.Update(msg))
	}
}

// advance moves the clock forward by d, delivering every message due on the way in order.
func (tl *timeline) advance(d time.Duration) {
	end := tl.now + d
	for {
		sort.SliceStable(tl.pending, func(i, j int) bool {
			if tl.pending[i].at != tl.pending[j].at {
				return tl.pending[i].at < tl.pending[j].at
			}
			return tl.pending[i].seq < tl.pending[j].seq
		})
		if len(tl.pending) == 0 || tl.pending[0].at > end {
			break
		}

		next := tl.pending[0]
		tl.pending = tl.pending[1:]
		tl.now = next.at
		tl.dispatch(next.msg)
	}
	tl.now = end
}

func (tl *timeline) event(ev engine.Event) {
	tl.dispatch(EventMsg{id: tl.session.id, Event: ev})
}

func (tl *timeline) status(st engine.Status) {
	tl.event(engine.Event{Kind: engine.StatusUpdate, Status: st})
}

func newHarness(eng *fakeEngine, media Media) (*Session, *timeline) {
	tl := &timeline{}
	s := New(eng, media, WithScheduler(tl.schedule), WithConfig(DefaultConfig()))
	tl.session = s
	return s, tl
}

func loaded(playing, buffering bool, pos, dur int) engine.Status {
	st := engine.Status{Loaded: true, Playing: playing, Buffering: buffering, PositionMillis: pos}
	if dur > 0 {
		st.DurationMillis = mo.Some(dur)
	}
	return st
}
