// Package engine defines the media engine capability consumed by a video card, with an
// implementation that drives mpv over its JSON-IPC interface.
package engine

import (
	"context"
	"errors"
	"fmt"

	"github.com/samber/mo"
)

var (
	// ErrNotLoaded is returned when a command needs loaded media and none is.
	ErrNotLoaded = errors.New("engine: media not loaded")
	// ErrClosed is returned by every command issued after Close.
	ErrClosed = errors.New("engine: closed")
)

// Source describes the media an engine should open.
type Source struct {
	URI   string
	Title string
	// Paused and Muted are the initial transport states; a card opens paused and muted.
	Paused bool
	Muted  bool
	Loop   bool
}

// Status is a snapshot of the engine's transport state.
type Status struct {
	Loaded         bool
	Playing        bool
	Buffering      bool
	PositionMillis int
	// DurationMillis is absent until the engine knows the media length.
	DurationMillis mo.Option[int]
}

func (s Status) String() string {
	return fmt.Sprintf(
		"loaded=%t playing=%t buffering=%t pos=%d dur=%d",
		s.Loaded, s.Playing, s.Buffering, s.PositionMillis, s.DurationMillis.OrElse(0),
	)
}

// EventKind enumerates the engine notifications.
type EventKind int

const (
	// LoadStart is emitted when the engine begins (re)loading media.
	LoadStart EventKind = iota
	// Load is emitted once the media is loaded and playable.
	Load
	// StatusUpdate carries a fresh Status snapshot.
	StatusUpdate
)

func (k EventKind) String() string {
	switch k {
	case LoadStart:
		return "load-start"
	case Load:
		return "load"
	case StatusUpdate:
		return "status"
	default:
		return fmt.Sprintf("EventKind(%d)", int(k))
	}
}

// Event is a single notification from the engine subscription.
type Event struct {
	Kind   EventKind
	Status Status
}

// Engine is the asynchronous media engine capability.
//
// Every method may block until the engine acknowledges and must honour ctx.
// Events are delivered in the order the engine produced them; the channel is
// closed when the engine shuts down.
type Engine interface {
	Open(ctx context.Context, src Source) error
	Prefetch(ctx context.Context, uri string) error
	Play(ctx context.Context) error
	Pause(ctx context.Context) error
	SetMuted(ctx context.Context, muted bool) error
	Status(ctx context.Context) (Status, error)
	SeekTo(ctx context.Context, millis int) error
	Events() <-chan Event
	Close() error
}
