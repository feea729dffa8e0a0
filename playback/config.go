package playback

import (
	"time"

	"github.com/spf13/viper"
	"github.com/tevify/tevify/key"
)

// Config holds the timing constants of a session.
type Config struct {
	// BufferingDebounce is how long the engine must report buffering before it is surfaced.
	BufferingDebounce time.Duration
	// SeekStep is the offset applied by SeekForward and SeekBackward, in milliseconds.
	SeekStep int
	// FadeDuration is the length of the controls fade in either direction.
	FadeDuration time.Duration
	// AutoHide is the inactivity delay before visible controls hide themselves.
	AutoHide time.Duration
	// FrameInterval is the step between two opacity updates.
	FrameInterval time.Duration
	// Loop makes the engine restart the media when it ends.
	Loop bool
}

// DefaultConfig returns the stock timings.
func DefaultConfig() Config {
	return Config{
		BufferingDebounce: time.Second,
		SeekStep:          10000,
		FadeDuration:      200 * time.Millisecond,
		AutoHide:          3 * time.Second,
		FrameInterval:     time.Second / 60,
		Loop:              true,
	}
}

// ConfigFromViper snapshots the playback settings from the global configuration.
func ConfigFromViper() Config {
	cfg := Config{
		BufferingDebounce: millis(key.PlaybackBufferingDebounce),
		SeekStep:          viper.GetInt(key.PlaybackSeekStep),
		FadeDuration:      millis(key.ControlsFadeDuration),
		AutoHide:          millis(key.ControlsAutoHide),
		FrameInterval:     DefaultConfig().FrameInterval,
		Loop:              viper.GetBool(key.PlaybackLoop),
	}

	if fps := viper.GetInt(key.ControlsFrameRate); fps > 0 {
		cfg.FrameInterval = time.Second / time.Duration(fps)
	}

	return cfg
}

func millis(k string) time.Duration {
	return time.Duration(viper.GetInt(k)) * time.Millisecond
}
