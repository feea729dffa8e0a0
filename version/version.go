// Package version provides release discovery and version comparison.
package version

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/metafates/gache"
	"github.com/tevify/tevify/constant"
	"github.com/tevify/tevify/filesystem"
	"github.com/tevify/tevify/network"
	"github.com/tevify/tevify/util"
	"github.com/tevify/tevify/where"
)

// ReleasesURL is the GitHub API endpoint of the latest release.
var ReleasesURL = "https://api.github.com/repos/tevify/tevify/releases/latest"

const lifetime = 48 * time.Hour

func newCacher() *gache.Cache[string] {
	return gache.New[string](&gache.Options{
		Path:       filepath.Join(where.Cache(), "version.json"),
		Lifetime:   lifetime,
		FileSystem: &filesystem.GacheFs{},
	})
}

// Latest returns the most recent release version, cached for two days.
func Latest(ctx context.Context) (string, error) {
	cacher := newCacher()

	ver, expired, err := cacher.Get()
	if err != nil {
		return "", err
	}
	if !expired && ver != "" {
		return ver, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ReleasesURL, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", constant.UserAgent)

	resp, err := network.Client.Do(req)
	if err != nil {
		return "", err
	}
	defer util.Ignore(resp.Body.Close)

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("releases: unexpected status %s", resp.Status)
	}

	var release struct {
		TagName string `json:"tag_name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		return "", err
	}

	if release.TagName == "" {
		return "", errors.New("empty tag name")
	}

	ver = strings.TrimPrefix(release.TagName, "v")
	_ = cacher.Set(ver)
	return ver, nil
}
