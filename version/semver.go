package version

import (
	"fmt"
	"strings"

	"golang.org/x/mod/semver"
)

// Canonical normalizes a release tag to vMAJOR.MINOR.PATCH[-PRERELEASE].
// The leading v is optional and build metadata is dropped.
func Canonical(tag string) (string, error) {
	v := strings.TrimSpace(tag)
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	if !semver.IsValid(v) {
		return "", fmt.Errorf("invalid version %q", tag)
	}
	return semver.Canonical(v), nil
}

// Newer reports whether latest is ahead of current. A pre-release sorts before its release.
func Newer(latest, current string) (bool, error) {
	l, err := Canonical(latest)
	if err != nil {
		return false, err
	}
	c, err := Canonical(current)
	if err != nil {
		return false, err
	}
	return semver.Compare(l, c) > 0, nil
}
