// Package playback implements the per-card playback session: the state a
// video card renders and the rules that move it in response to user intents,
// engine events and timers.
//
// A Session is owned by a single bubbletea model. Its exported intents return
// commands; the messages those commands produce must be fed back into Update.
// Engine calls run inside commands, so the owner never blocks on the engine.
package playback

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/samber/lo"
	"github.com/tevify/tevify/engine"
	"github.com/tevify/tevify/log"
	"github.com/tevify/tevify/util"
)

var lastID int64

func nextID() int {
	return int(atomic.AddInt64(&lastID, 1))
}

// Scheduler delivers msg after d.
type Scheduler func(d time.Duration, msg tea.Msg) tea.Cmd

// Tick is the wall-clock Scheduler.
func Tick(d time.Duration, msg tea.Msg) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return msg
	})
}

// Option customizes a Session.
type Option func(*Session)

// WithScheduler replaces the wall-clock Scheduler.
func WithScheduler(schedule Scheduler) Option {
	return func(s *Session) {
		s.schedule = schedule
	}
}

// WithConfig overrides the timing constants.
func WithConfig(cfg Config) Option {
	return func(s *Session) {
		s.cfg = cfg
	}
}

// Media identifies what a session plays.
type Media struct {
	URI      string
	Title    string
	AutoPlay bool
}

// State is a snapshot of everything a card renders.
type State struct {
	Playing         bool
	Muted           bool
	Loading         bool
	HasLoadedOnce   bool
	Buffering       bool
	PositionMillis  int
	DurationMillis  int
	ControlsVisible bool
	ControlsPhase   Phase
	ControlsOpacity float64
	// Err is the last engine failure, cleared by the next successful command.
	Err error
}

// ProgressRatio is position over duration in [0, 1]; 0 while the duration is unknown.
func (st State) ProgressRatio() float64 {
	if st.DurationMillis <= 0 {
		return 0
	}
	return util.Clamp(float64(st.PositionMillis)/float64(st.DurationMillis), 0, 1)
}

// Session is the playback state machine of one video card.
type Session struct {
	id       int
	engine   engine.Engine
	media    engine.Source
	autoPlay bool
	cfg      Config
	schedule Scheduler
	log      *log.Entry

	ctx    context.Context
	cancel context.CancelFunc
	closed bool

	playing       bool
	muted         bool
	loading       bool
	hasLoadedOnce bool
	position      int
	duration      int
	err           error

	togglePending  bool
	mutePending    bool
	autoPlayIssued bool

	buffering debouncer
	controls  controls
}

// New creates a session for media on eng. Nothing is sent to the engine until Init.
func New(eng engine.Engine, media Media, opts ...Option) *Session {
	ctx, cancel := context.WithCancel(context.Background())

	s := &Session{
		id:       nextID(),
		engine:   eng,
		autoPlay: media.AutoPlay,
		cfg:      DefaultConfig(),
		schedule: Tick,
		ctx:      ctx,
		cancel:   cancel,
		playing:  media.AutoPlay,
		muted:    true,
		loading:  true,
	}

	for _, opt := range opts {
		opt(s)
	}

	s.media = engine.Source{
		URI:    media.URI,
		Title:  media.Title,
		Paused: true,
		Muted:  true,
		Loop:   s.cfg.Loop,
	}
	s.log = log.WithFields(log.Fields{"session": s.id, "title": media.Title})

	s.buffering = debouncer{
		id:       s.id,
		delay:    s.cfg.BufferingDebounce,
		schedule: s.schedule,
	}
	s.controls = controls{
		id:       s.id,
		fade:     s.cfg.FadeDuration,
		autoHide: s.cfg.AutoHide,
		frame:    s.cfg.FrameInterval,
		schedule: s.schedule,
	}

	return s
}

// ID identifies the session in its messages.
func (s *Session) ID() int {
	return s.id
}

// State returns a snapshot of the observable state.
func (s *Session) State() State {
	return State{
		Playing:         s.playing,
		Muted:           s.muted,
		Loading:         s.loading,
		HasLoadedOnce:   s.hasLoadedOnce,
		Buffering:       s.buffering.visible,
		PositionMillis:  s.position,
		DurationMillis:  s.duration,
		ControlsVisible: s.controls.visible(),
		ControlsPhase:   s.controls.phase,
		ControlsOpacity: s.controls.opacity,
		Err:             s.err,
	}
}

// Closed reports whether Close has been called.
func (s *Session) Closed() bool {
	return s.closed
}

// Init opens the media paused and muted and warms it up.
func (s *Session) Init() tea.Cmd {
	if s.closed {
		return nil
	}

	ctx, eng, id, src := s.ctx, s.engine, s.id, s.media
	open := func() tea.Msg {
		return openMsg{id: id, err: eng.Open(ctx, src)}
	}

	return tea.Batch(open, s.Preload())
}

// Listen waits for the next engine event. The owner re-issues it after each EventMsg.
func (s *Session) Listen() tea.Cmd {
	if s.closed {
		return nil
	}

	events, id := s.engine.Events(), s.id
	return func() tea.Msg {
		ev, ok := <-events
		if !ok {
			return nil
		}
		return EventMsg{id: id, Event: ev}
	}
}

// Preload asks the engine to warm the media up. Success marks the media as loaded once.
func (s *Session) Preload() tea.Cmd {
	if s.closed {
		return nil
	}

	ctx, eng, id, uri := s.ctx, s.engine, s.id, s.media.URI
	return func() tea.Msg {
		return preloadMsg{id: id, err: eng.Prefetch(ctx, uri)}
	}
}

// TogglePlayPause plays when paused and pauses when playing.
// It is dropped while a previous toggle is still in flight.
func (s *Session) TogglePlayPause() tea.Cmd {
	if s.closed || s.togglePending {
		return nil
	}
	return s.transport(!s.playing)
}

func (s *Session) transport(play bool) tea.Cmd {
	s.togglePending = true

	ctx, eng, id := s.ctx, s.engine, s.id
	return func() tea.Msg {
		var err error
		if play {
			err = eng.Play(ctx)
		} else {
			err = eng.Pause(ctx)
		}
		return transportMsg{id: id, playing: play, err: err}
	}
}

// ToggleMute flips the audio mute flag. It is dropped while a previous toggle is in flight.
func (s *Session) ToggleMute() tea.Cmd {
	if s.closed || s.mutePending {
		return nil
	}
	s.mutePending = true

	ctx, eng, id, muted := s.ctx, s.engine, s.id, !s.muted
	return func() tea.Msg {
		return muteMsg{id: id, muted: muted, err: eng.SetMuted(ctx, muted)}
	}
}

// TapControls flips the controls between shown and hidden.
func (s *Session) TapControls() tea.Cmd {
	if s.closed {
		return nil
	}
	return s.controls.tap()
}

// Close tears the session down: every pending timer becomes a no-op, in-flight
// engine commands are cancelled and the returned command releases the engine.
func (s *Session) Close() tea.Cmd {
	if s.closed {
		return nil
	}

	s.closed = true
	s.cancel()
	s.buffering.cancel()
	s.controls.stop()

	eng, id := s.engine, s.id
	return func() tea.Msg {
		if err := eng.Close(); err != nil {
			s.log.Warnf("closing engine: %v", err)
		}
		return closedMsg{id: id}
	}
}

// Update applies msg and returns the follow-up command, if any.
// Messages addressed to another session, or arriving after Close, are ignored.
func (s *Session) Update(msg tea.Msg) tea.Cmd {
	if s.closed {
		return nil
	}

	switch msg := msg.(type) {
	case EventMsg:
		if msg.id != s.id {
			return nil
		}
		return s.onEvent(msg.Event)

	case openMsg:
		if msg.id != s.id {
			return nil
		}
		if msg.err != nil {
			s.fail("open", msg.err)
		}

	case preloadMsg:
		if msg.id != s.id {
			return nil
		}
		return s.onPreload(msg.err)

	case transportMsg:
		if msg.id != s.id {
			return nil
		}
		s.togglePending = false
		if msg.err != nil {
			s.fail(lo.Ternary(msg.playing, "play", "pause"), msg.err)
			return nil
		}
		s.err = nil
		s.playing = msg.playing

	case muteMsg:
		if msg.id != s.id {
			return nil
		}
		s.mutePending = false
		if msg.err != nil {
			s.fail("mute", msg.err)
			return nil
		}
		s.err = nil
		s.muted = msg.muted

	case seekMsg:
		if msg.id != s.id {
			return nil
		}
		switch {
		case msg.err != nil:
			s.fail("seek", msg.err)
		case msg.skipped:
			s.log.Debugf("seek skipped: media not loaded")
		default:
			s.log.Debugf("seeked to %d ms", msg.target)
		}

	case bufferingTimeoutMsg:
		if msg.id != s.id {
			return nil
		}
		if s.buffering.expire(msg) {
			s.log.Debugf("buffering")
		}

	case controlsFrameMsg:
		if msg.id != s.id {
			return nil
		}
		return s.controls.advance(msg)

	case autoHideMsg:
		if msg.id != s.id {
			return nil
		}
		return s.controls.expire(msg)
	}

	return nil
}

func (s *Session) onEvent(ev engine.Event) tea.Cmd {
	switch ev.Kind {
	case engine.LoadStart:
		s.onLoadStart()
	case engine.Load:
		return s.onReady()
	case engine.StatusUpdate:
		return s.onStatus(ev.Status)
	}
	return nil
}

// onLoadStart marks the media as loading, unless it already loaded once.
func (s *Session) onLoadStart() {
	if !s.hasLoadedOnce {
		s.loading = true
	}
}

// onReady ends the initial loading phase for good.
func (s *Session) onReady() tea.Cmd {
	s.loading = false
	return s.loaded()
}

func (s *Session) onPreload(err error) tea.Cmd {
	switch {
	case errors.Is(err, engine.ErrPrefetchDisabled):
		s.log.Debugf("preload skipped: %v", err)
		return nil
	case errors.Is(err, context.Canceled):
		return nil
	case err != nil:
		s.log.Warnf("preload failed: %v", err)
		return nil
	}

	s.loading = false
	return s.loaded()
}

// loaded records the first successful load and issues the one autoplay command.
func (s *Session) loaded() tea.Cmd {
	s.hasLoadedOnce = true

	if !s.autoPlay || s.autoPlayIssued {
		return nil
	}
	s.autoPlayIssued = true

	// A toggle still in flight is the user's call; autoplay yields to it.
	if s.togglePending {
		s.log.Debugf("autoplay skipped: toggle in flight")
		return nil
	}

	s.log.Debugf("autoplay")
	return s.transport(true)
}

// onStatus reconciles the session with an engine snapshot.
// Snapshots of unloaded media only feed the buffering reading.
func (s *Session) onStatus(status engine.Status) tea.Cmd {
	if !status.Loaded {
		return s.buffering.observe(status.Buffering)
	}

	s.playing = status.Playing
	s.position = lo.Max([]int{status.PositionMillis, 0})
	if d, ok := status.DurationMillis.Get(); ok && d > 0 {
		s.duration = d
	}

	return s.buffering.observe(status.Buffering)
}

func (s *Session) fail(op string, err error) {
	if errors.Is(err, context.Canceled) {
		return
	}
	s.err = err
	s.log.Warnf("%s failed: %v", op, err)
}
