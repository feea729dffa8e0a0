package engine

import (
	"time"

	"github.com/spf13/viper"
	"github.com/tevify/tevify/key"
	"github.com/tevify/tevify/network"
)

// FromConfig builds an MPV engine from the global configuration.
func FromConfig() *MPV {
	opts := Options{
		Binary:         viper.GetString(key.EnginePlayer),
		CommandTimeout: time.Duration(viper.GetInt(key.EngineCommandTimeout)) * time.Millisecond,
	}

	if viper.GetBool(key.PrefetchEnable) {
		client := network.Client
		if viper.GetBool(key.PrefetchBrowserTLS) {
			client = network.BrowserClient
		}
		opts.Prefetcher = &Prefetcher{
			Client: client,
			Bytes:  viper.GetInt64(key.PrefetchBytes),
		}
	}

	return NewMPV(opts)
}
