package catalog

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/metafates/gache"
	"github.com/spf13/viper"
	"github.com/tevify/tevify/constant"
	"github.com/tevify/tevify/filesystem"
	"github.com/tevify/tevify/key"
	"github.com/tevify/tevify/log"
	"github.com/tevify/tevify/network"
	"github.com/tevify/tevify/util"
	"github.com/tevify/tevify/where"
)

// cached is what lands on disk for a remote catalog.
type cached struct {
	Location string   `json:"location"`
	Catalog  *Catalog `json:"catalog"`
}

func newCacher() *gache.Cache[*cached] {
	return gache.New[*cached](&gache.Options{
		Path:       where.Catalog(),
		Lifetime:   time.Duration(viper.GetInt(key.FeedCatalogTTL)) * time.Hour,
		FileSystem: &filesystem.GacheFs{},
	})
}

// FromConfig loads the catalog named by feed.catalog.
func FromConfig(ctx context.Context) (*Catalog, error) {
	return Load(ctx, viper.GetString(key.FeedCatalog))
}

// Load reads a catalog from an http(s) URL, a local file, or the built-in one when location is empty.
// Remote catalogs are cached for feed.catalog_ttl hours.
func Load(ctx context.Context, location string) (*Catalog, error) {
	location = strings.TrimSpace(location)

	switch {
	case location == "":
		return Default(), nil
	case strings.HasPrefix(location, "http://"), strings.HasPrefix(location, "https://"):
		return loadRemote(ctx, location)
	default:
		return loadFile(location)
	}
}

func loadFile(path string) (*Catalog, error) {
	file, err := filesystem.API().Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer util.Ignore(file.Close)

	return Parse(file)
}

func loadRemote(ctx context.Context, location string) (*Catalog, error) {
	cacher := newCacher()

	entry, expired, err := cacher.Get()
	if err != nil {
		log.Warnf("reading catalog cache: %v", err)
	}
	if err == nil && !expired && entry != nil && entry.Location == location && entry.Catalog != nil {
		log.Debugf("catalog served from cache")
		return entry.Catalog, nil
	}

	c, err := fetch(ctx, location)
	if err != nil {
		return nil, err
	}

	if err := cacher.Set(&cached{Location: location, Catalog: c}); err != nil {
		log.Warnf("caching catalog: %v", err)
	}
	return c, nil
}

func fetch(ctx context.Context, location string) (*Catalog, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, location, nil)
	if err != nil {
		return nil, fmt.Errorf("catalog request: %w", err)
	}
	req.Header.Set("User-Agent", constant.UserAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := network.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch catalog: %w", err)
	}
	defer util.Ignore(resp.Body.Close)

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch catalog: unexpected status %s", resp.Status)
	}

	log.Infof("fetched catalog from %s", location)
	return Parse(resp.Body)
}
