package config

import "github.com/tevify/tevify/key"

// Default holds the map of all configuration fields.
var Default = make(map[string]Field)

// EnvExposed holds keys that are bound to environment variables.
var EnvExposed []string

func init() {
	// register validates and adds a new configuration field to the global registry.
	register := func(k string, v any, desc string) {
		if _, exists := Default[k]; exists {
			panic("Duplicate config key: " + k)
		}
		Default[k] = Field{Key: k, Value: v, Description: desc}
		EnvExposed = append(EnvExposed, k)
	}

	register(key.PlaybackBufferingDebounce, 1000, "Milliseconds the engine must report buffering before the indicator is shown")
	register(key.PlaybackSeekStep, 10000, "Milliseconds skipped by a single seek forward or backward")
	register(key.PlaybackAutoplay, false, "Start playback as soon as a card has loaded")
	register(key.PlaybackLoop, true, "Loop the video when it reaches the end")
	register(key.ControlsFadeDuration, 200, "Milliseconds taken by the controls overlay to fade in or out")
	register(key.ControlsAutoHide, 3000, "Milliseconds of inactivity before the controls overlay hides itself")
	register(key.ControlsFrameRate, 60, "Frames per second used to animate the controls overlay")
	register(key.EnginePlayer, "mpv", "Media engine executable to drive over JSON-IPC")
	register(key.EngineCommandTimeout, 2000, "Milliseconds to wait for the media engine to acknowledge a command")
	register(key.PrefetchEnable, true, "Warm up remote content when a card is mounted")
	register(key.PrefetchBytes, 1<<20, "Number of leading bytes fetched during warm-up")
	register(key.PrefetchBrowserTLS, true, "Use a browser TLS fingerprint for warm-up requests.\nSome video CDNs reject the default Go client")
	register(key.FeedCatalog, "", "Path or http(s) URL of the video catalog.\nThe built-in catalog is used when empty")
	register(key.FeedCatalogTTL, 24, "Hours a remote catalog stays cached")
	register(key.IconsVariant, "plain", "Icons variant.\nAvailable options are: emoji, kaomoji, plain, squares, nerd (nerd-font required)")
	register(key.LogsWrite, false, "Write logs")
	register(key.LogsLevel, "info", "Available options are: (from less to most verbose)\npanic, fatal, error, warn, info, debug, trace")
	register(key.LogsJson, false, "Use json format for logs")
	register(key.CliColored, true, "Enable colored CLI output")
	register(key.CliVersionCheck, true, "Check for a newer release when showing help and version")
}
