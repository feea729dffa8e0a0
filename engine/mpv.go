package engine

import (
	"context"
	"crypto/rand"
	"fmt"
	"net"
	"net/url"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/samber/mo"
	"github.com/tevify/tevify/constant"
	"github.com/tevify/tevify/log"
	"github.com/tevify/tevify/where"
)

const (
	socketWaitDelay = 100 * time.Millisecond
	eventBuffer     = 64
	quitGrace       = 3 * time.Second
)

// Options configures an MPV engine.
type Options struct {
	// Binary is the mpv executable; "mpv" when empty.
	Binary string
	// CommandTimeout bounds every IPC command that arrives without a deadline.
	CommandTimeout time.Duration
	// Prefetcher warms content up; nil disables warm-up.
	Prefetcher *Prefetcher
}

// MPV implements Engine by launching an mpv process and talking JSON-IPC to it.
type MPV struct {
	opts Options

	socketPath string
	cmd        *exec.Cmd
	exited     chan struct{} // closed when the mpv process exits

	events     chan Event
	eventsOnce sync.Once
	listener   *eventListener

	mu        sync.Mutex // serializes IPC commands
	lifecycle sync.Mutex // guards launch and close
	closed    bool
}

var _ Engine = (*MPV)(nil)

// NewMPV creates an idle MPV engine; no process is started until Open.
func NewMPV(opts Options) *MPV {
	if opts.Binary == "" {
		opts.Binary = "mpv"
	}

	exited := make(chan struct{})
	close(exited)

	return &MPV{
		opts:   opts,
		exited: exited,
		events: make(chan Event, eventBuffer),
	}
}

// Open starts mpv if needed and loads src into it.
func (m *MPV) Open(ctx context.Context, src Source) error {
	target, err := sanitizeMediaTarget(src.URI)
	if err != nil {
		return fmt.Errorf("invalid media target: %w", err)
	}

	if err := m.launch(ctx, src); err != nil {
		return err
	}

	ctx, cancel := m.withTimeout(ctx)
	defer cancel()

	if _, err := m.sendCommand(ctx, "set_property", "force-media-title", sanitizeTitle(src.Title)); err != nil {
		return fmt.Errorf("set title: %w", err)
	}
	if _, err := m.sendCommand(ctx, "loadfile", target, "replace"); err != nil {
		return fmt.Errorf("loadfile: %w", err)
	}

	log.Infof("mpv loading %s on %s", redact(target), m.socketPath)
	return nil
}

// launch starts the mpv process and the event listener once per engine.
func (m *MPV) launch(ctx context.Context, src Source) error {
	m.lifecycle.Lock()
	defer m.lifecycle.Unlock()

	if m.closed {
		return ErrClosed
	}
	if m.running() {
		return nil
	}

	if m.socketPath == "" {
		randomBytes := make([]byte, 4)
		if _, err := rand.Read(randomBytes); err != nil {
			return fmt.Errorf("generate socket name: %w", err)
		}
		m.socketPath = filepath.Join(where.Temp(), fmt.Sprintf("%s-%x.sock", constant.Tevify, randomBytes))
	}

	// Respect the user's mpv.conf: only transport options are passed.
	args := []string{
		"--no-terminal",
		"--really-quiet",
		"--idle=yes",
		"--force-window=yes",
		fmt.Sprintf("--input-ipc-server=%s", m.socketPath),
		fmt.Sprintf("--pause=%s", yesNo(src.Paused)),
		fmt.Sprintf("--mute=%s", yesNo(src.Muted)),
		fmt.Sprintf("--loop-file=%s", pick(src.Loop, "inf", "no")),
	}

	m.cmd = exec.Command(m.opts.Binary, args...)
	m.cmd.SysProcAttr = sysProcAttr()
	m.cmd.Stdout = nil
	m.cmd.Stderr = nil
	m.cmd.Stdin = nil

	if err := m.cmd.Start(); err != nil {
		return fmt.Errorf("start %s: %w", m.opts.Binary, err)
	}

	exited := make(chan struct{})
	m.exited = exited
	cmd := m.cmd
	go func() {
		_ = cmd.Wait()
		close(exited)
	}()

	conn, err := m.waitForSocket(ctx)
	if err != nil {
		select {
		case <-m.exited:
		default:
			log.Warnf("killing mpv: socket never became ready")
			_ = killProcess(m.cmd)
		}
		return fmt.Errorf("mpv socket not ready: %w", err)
	}

	listener, err := newEventListener(conn, m.events, src.Paused)
	if err != nil {
		conn.Close()
		_ = killProcess(m.cmd)
		return err
	}
	m.listener = listener

	return nil
}

// waitForSocket polls until the IPC socket accepts a connection, which becomes the event connection.
func (m *MPV) waitForSocket(ctx context.Context) (net.Conn, error) {
	var dialer net.Dialer
	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-m.exited:
			return nil, fmt.Errorf("mpv exited before socket was ready")
		case <-time.After(socketWaitDelay):
		}

		conn, err := dialer.DialContext(ctx, "unix", m.socketPath)
		if err == nil {
			return conn, nil
		}
	}
}

func (m *MPV) running() bool {
	select {
	case <-m.exited:
		return false
	default:
		return true
	}
}

// Prefetch warms up uri through the configured Prefetcher.
func (m *MPV) Prefetch(ctx context.Context, uri string) error {
	return m.opts.Prefetcher.Prefetch(ctx, uri)
}

// Play resumes playback.
func (m *MPV) Play(ctx context.Context) error {
	return m.set(ctx, "pause", false)
}

// Pause suspends playback.
func (m *MPV) Pause(ctx context.Context) error {
	return m.set(ctx, "pause", true)
}

// SetMuted sets the audio mute flag.
func (m *MPV) SetMuted(ctx context.Context, muted bool) error {
	return m.set(ctx, "mute", muted)
}

// SeekTo moves playback to an absolute position.
func (m *MPV) SeekTo(ctx context.Context, millis int) error {
	if err := m.ready(); err != nil {
		return err
	}

	ctx, cancel := m.withTimeout(ctx)
	defer cancel()

	_, err := m.sendCommand(ctx, "seek", float64(millis)/1000, "absolute")
	if isUnavailable(err) {
		return ErrNotLoaded
	}
	return err
}

// Status queries the current transport state. Unloaded media is reported as
// a zero Status with Loaded=false rather than as an error.
func (m *MPV) Status(ctx context.Context) (Status, error) {
	if err := m.ready(); err != nil {
		return Status{}, err
	}

	ctx, cancel := m.withTimeout(ctx)
	defer cancel()

	pos, err := m.sendCommand(ctx, "get_property", "time-pos")
	if isUnavailable(err) || (err == nil && pos == nil) {
		return Status{}, nil
	}
	if err != nil {
		return Status{}, err
	}

	status := Status{Loaded: true}
	if seconds, ok := pos.(float64); ok {
		status.PositionMillis = secondsToMillis(seconds)
	}

	paused, err := m.sendCommand(ctx, "get_property", "pause")
	if err != nil {
		return Status{}, err
	}
	isPaused, _ := paused.(bool)
	status.Playing = !isPaused

	if buffering, err := m.sendCommand(ctx, "get_property", "paused-for-cache"); err == nil {
		status.Buffering, _ = buffering.(bool)
	}

	if dur, err := m.sendCommand(ctx, "get_property", "duration"); err == nil {
		if seconds, ok := dur.(float64); ok {
			if millis := secondsToMillis(seconds); millis > 0 {
				status.DurationMillis = mo.Some(millis)
			}
		}
	}

	return status, nil
}

// Events returns the engine subscription.
func (m *MPV) Events() <-chan Event {
	return m.events
}

// Close shuts mpv down and removes the IPC socket. It is idempotent.
func (m *MPV) Close() error {
	m.lifecycle.Lock()
	defer m.lifecycle.Unlock()

	if m.closed {
		return nil
	}
	m.closed = true

	if m.listener != nil {
		m.listener.Stop()
	} else {
		m.eventsOnce.Do(func() { close(m.events) })
	}

	if !m.running() {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	_, _ = m.sendCommand(ctx, "quit")
	cancel()

	select {
	case <-m.exited:
	case <-time.After(quitGrace):
		_ = killProcess(m.cmd)
	}

	_ = os.Remove(m.socketPath)
	return nil
}

// Socket returns the IPC socket path.
func (m *MPV) Socket() string {
	return m.socketPath
}

func (m *MPV) set(ctx context.Context, property string, value interface{}) error {
	if err := m.ready(); err != nil {
		return err
	}

	ctx, cancel := m.withTimeout(ctx)
	defer cancel()

	_, err := m.sendCommand(ctx, "set_property", property, value)
	return err
}

func (m *MPV) ready() error {
	m.lifecycle.Lock()
	defer m.lifecycle.Unlock()

	switch {
	case m.closed:
		return ErrClosed
	case m.socketPath == "":
		return ErrNotLoaded
	default:
		return nil
	}
}

func (m *MPV) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, ok := ctx.Deadline(); ok || m.opts.CommandTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, m.opts.CommandTimeout)
}

func isUnavailable(err error) bool {
	return err != nil && strings.Contains(err.Error(), errPropertyUnavailable)
}

func yesNo(b bool) string {
	return pick(b, "yes", "no")
}

func pick(cond bool, a, b string) string {
	if cond {
		return a
	}
	return b
}

// sanitizeMediaTarget validates that a URL is safe to pass to mpv.
func sanitizeMediaTarget(link string) (string, error) {
	l := strings.TrimSpace(link)
	if l == "" {
		return "", fmt.Errorf("empty URL")
	}

	if strings.ContainsAny(l, "\x00\n\r") {
		return "", fmt.Errorf("invalid control characters in URL")
	}

	// URLs must not look like flags.
	if strings.HasPrefix(l, "-") {
		return "", fmt.Errorf("url must not start with '-' (looks like a flag)")
	}

	if strings.Contains(l, "://") {
		u, err := url.Parse(l)
		if err != nil {
			return "", fmt.Errorf("invalid URL: %w", err)
		}
		switch strings.ToLower(u.Scheme) {
		case "http", "https":
			return l, nil
		default:
			return "", fmt.Errorf("unsupported URL scheme: %s", u.Scheme)
		}
	}

	return filepath.Clean(l), nil
}

// sanitizeTitle flattens the title onto one line for mpv.
func sanitizeTitle(title string) string {
	t := strings.NewReplacer("\n", " ", "\r", " ", "\t", " ", "\x00", "").Replace(title)
	return strings.TrimSpace(t)
}
