// Package catalog provides the list of videos shown on the feed.
package catalog

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/invopop/jsonschema"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/samber/lo"
	"github.com/samber/mo"
)

//go:embed default.json
var defaultCatalog []byte

// ErrEmpty is returned for a catalog without videos.
var ErrEmpty = errors.New("catalog has no videos")

// Video is a single feed entry.
type Video struct {
	ID       int    `json:"id,omitempty" jsonschema:"description=Stable identifier; assigned from the position when omitted"`
	Title    string `json:"title" jsonschema:"required,description=Title shown on the card"`
	URI      string `json:"uri" jsonschema:"required,description=http(s) URL or local path of the media"`
	Views    string `json:"views,omitempty" jsonschema:"description=Free-form view count label"`
	Uploaded string `json:"uploaded,omitempty" jsonschema:"description=Free-form upload date label"`
	// AutoPlay overrides playback.autoplay for this entry.
	AutoPlay mo.Option[bool] `json:"autoplay,omitempty" jsonschema:"type=boolean,description=Start playing as soon as the media is loaded"`
}

// Subtitles are the secondary lines of the card.
func (v Video) Subtitles() []string {
	return lo.Filter([]string{v.Views, v.Uploaded}, func(s string, _ int) bool {
		return s != ""
	})
}

// FilterValue is used by the feed list filter.
func (v Video) FilterValue() string {
	return v.Title
}

// Catalog is a named list of videos.
type Catalog struct {
	Name   string  `json:"name,omitempty" jsonschema:"description=Heading of the feed"`
	Videos []Video `json:"videos" jsonschema:"required,minItems=1"`
}

// Default returns the built-in catalog.
func Default() *Catalog {
	c, err := Parse(strings.NewReader(string(defaultCatalog)))
	if err != nil {
		panic(fmt.Errorf("built-in catalog: %w", err))
	}
	return c
}

// Parse decodes and validates a catalog.
func Parse(r io.Reader) (*Catalog, error) {
	var c Catalog
	if err := json.NewDecoder(r).Decode(&c); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}

	if err := c.validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Catalog) validate() error {
	if len(c.Videos) == 0 {
		return ErrEmpty
	}

	seen := make(map[int]struct{}, len(c.Videos))
	for i := range c.Videos {
		v := &c.Videos[i]
		if strings.TrimSpace(v.Title) == "" {
			return fmt.Errorf("video #%d: missing title", i+1)
		}
		if strings.TrimSpace(v.URI) == "" {
			return fmt.Errorf("video %q: missing uri", v.Title)
		}

		if v.ID == 0 {
			v.ID = i + 1
		}
		if _, ok := seen[v.ID]; ok {
			return fmt.Errorf("video %q: duplicate id %d", v.Title, v.ID)
		}
		seen[v.ID] = struct{}{}
	}

	return nil
}

// Filter returns the videos whose title fuzzily matches query, best matches first.
// An empty query returns every video.
func (c *Catalog) Filter(query string) []Video {
	if query == "" {
		return c.Videos
	}

	titles := lo.Map(c.Videos, func(v Video, _ int) string {
		return v.Title
	})

	ranks := fuzzy.RankFindNormalizedFold(query, titles)
	sort.Stable(ranks)

	return lo.Map(ranks, func(r fuzzy.Rank, _ int) Video {
		return c.Videos[r.OriginalIndex]
	})
}

// Find returns the video with the given id.
func (c *Catalog) Find(id int) mo.Option[Video] {
	v, ok := lo.Find(c.Videos, func(v Video) bool {
		return v.ID == id
	})
	if !ok {
		return mo.None[Video]()
	}
	return mo.Some(v)
}

// Schema describes the catalog file format.
func Schema() *jsonschema.Schema {
	r := jsonschema.Reflector{
		DoNotReference: true,
	}
	schema := r.Reflect(&Catalog{})
	schema.Title = "Tevify catalog"
	return schema
}
