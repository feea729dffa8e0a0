package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/tevify/tevify/constant"
	"github.com/tevify/tevify/filesystem"
)

// ErrPrefetchDisabled is returned by Prefetch when warm-up is switched off.
var ErrPrefetchDisabled = errors.New("engine: prefetch disabled")

// Prefetcher warms up media content ahead of playback.
//
// Remote sources are warmed with a ranged GET of the leading bytes, which
// primes CDN edges and validates reachability; local files are only stat'ed.
type Prefetcher struct {
	Client *http.Client
	Bytes  int64
}

// Prefetch warms up uri. A nil Prefetcher reports ErrPrefetchDisabled.
func (p *Prefetcher) Prefetch(ctx context.Context, uri string) error {
	if p == nil {
		return ErrPrefetchDisabled
	}

	target, err := sanitizeMediaTarget(uri)
	if err != nil {
		return fmt.Errorf("prefetch: %w", err)
	}

	if !strings.Contains(target, "://") {
		if _, err := filesystem.API().Stat(target); err != nil {
			return fmt.Errorf("prefetch: %w", err)
		}
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return fmt.Errorf("prefetch: %w", err)
	}
	req.Header.Set("User-Agent", constant.UserAgent)
	if p.Bytes > 0 {
		req.Header.Set("Range", fmt.Sprintf("bytes=0-%d", p.Bytes-1))
	}

	resp, err := p.Client.Do(req)
	if err != nil {
		return fmt.Errorf("prefetch %s: %w", redact(target), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusPartialContent {
		return fmt.Errorf("prefetch %s: unexpected status %s", redact(target), resp.Status)
	}

	// Servers that ignore Range send the whole file; stop at the budget.
	limit := p.Bytes
	if limit <= 0 {
		limit = 1 << 20
	}
	if _, err := io.CopyN(io.Discard, resp.Body, limit); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("prefetch %s: %w", redact(target), err)
	}

	return nil
}

// redact strips the query string, which on signed CDN URLs carries credentials.
func redact(target string) string {
	u, err := url.Parse(target)
	if err != nil {
		return target
	}
	u.RawQuery = ""
	return u.String()
}
