// Package key defines the canonical set of configuration identifiers used for centralized settings management.
package key

// Playback - these keys tune the per-card playback state machine.
const (
	PlaybackBufferingDebounce = "playback.buffering_debounce"
	PlaybackSeekStep          = "playback.seek_step"
	PlaybackAutoplay          = "playback.autoplay"
	PlaybackLoop              = "playback.loop"
)

// Controls Overlay - these keys govern the transport-control overlay animation and auto-hide.
const (
	ControlsFadeDuration = "controls.fade_duration"
	ControlsAutoHide     = "controls.auto_hide"
	ControlsFrameRate    = "controls.frame_rate"
)

// Media Engine - these keys select and bound the external media engine.
const (
	EnginePlayer         = "engine.player"
	EngineCommandTimeout = "engine.command_timeout"
)

// Prefetch - these keys configure the content warm-up issued when a card mounts.
const (
	PrefetchEnable     = "prefetch.enable"
	PrefetchBytes      = "prefetch.bytes"
	PrefetchBrowserTLS = "prefetch.browser_tls"
)

// Feed - these keys locate the video catalog rendered on the home feed.
const (
	FeedCatalog    = "feed.catalog"
	FeedCatalogTTL = "feed.catalog_ttl"
)

// Iconography - these keys manage the visual rendering of UI symbols.
const (
	IconsVariant = "icons.variant"
)

// Logging Infrastructure - these keys manage the application's internal diagnostics system.
const (
	LogsWrite = "logs.write"
	LogsLevel = "logs.level"
	LogsJson  = "logs.json"
)

// CLI Execution Environment - these flags and settings govern the non-TUI application behavior.
const (
	CliColored      = "cli.colored"
	CliVersionCheck = "cli.version_check"
)
