package config

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
	"github.com/tevify/tevify/icon"
	"github.com/tevify/tevify/key"
)

// ErrUnknownKey is returned for keys that are not registered.
var ErrUnknownKey = errors.New("unknown config key")

// check validates a parsed value before it is stored.
type check func(v any) error

var checks = map[string]check{
	key.PlaybackBufferingDebounce: atLeast(0),
	key.PlaybackSeekStep:          atLeast(1),
	key.ControlsFadeDuration:      atLeast(0),
	key.ControlsAutoHide:          atLeast(1),
	key.ControlsFrameRate:         between(1, 240),
	key.EngineCommandTimeout:      atLeast(1),
	key.PrefetchBytes:             atLeast(1),
	key.FeedCatalogTTL:            atLeast(0),
	key.EnginePlayer:              nonEmpty,
	key.IconsVariant: func(v any) error {
		_, err := icon.ParseVariant(v.(string))
		return err
	},
	key.LogsLevel: func(v any) error {
		_, err := logrus.ParseLevel(v.(string))
		return err
	},
}

// Parse converts raw command-line values into the type of k's default
// and validates the result.
func Parse(k string, raw []string) (any, error) {
	field, ok := Default[k]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownKey, k)
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("%s: value required", k)
	}

	var (
		v   any
		err error
	)
	switch field.Value.(type) {
	case string:
		v = raw[0]
	case int:
		v, err = strconv.Atoi(raw[0])
	case bool:
		v, err = strconv.ParseBool(raw[0])
	case []string:
		v = raw
	default:
		return nil, fmt.Errorf("%s: unsupported type %T", k, field.Value)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: expected %s, got %q", k, field.typeName(), raw[0])
	}

	if c, ok := checks[k]; ok {
		if err := c(v); err != nil {
			return nil, fmt.Errorf("%s: %w", k, err)
		}
	}
	return v, nil
}

func atLeast(min int) check {
	return func(v any) error {
		if n := v.(int); n < min {
			return fmt.Errorf("must be at least %d, got %d", min, n)
		}
		return nil
	}
}

func between(min, max int) check {
	return func(v any) error {
		if n := v.(int); n < min || n > max {
			return fmt.Errorf("must be between %d and %d, got %d", min, max, n)
		}
		return nil
	}
}

func nonEmpty(v any) error {
	if strings.TrimSpace(v.(string)) == "" {
		return errors.New("must not be empty")
	}
	return nil
}

// Section returns the group a key belongs to, e.g. "playback" for playback.seek_step.
func (f *Field) Section() string {
	section, _, _ := strings.Cut(f.Key, ".")
	return section
}

// sectionOrder lists the sections from the playback core outwards.
var sectionOrder = []string{"playback", "controls", "engine", "prefetch", "feed", "icons", "logs", "cli"}

// Group is a section of related fields.
type Group struct {
	Name   string
	Fields []Field
}

// Sections groups fields by section in display order, keys sorted within each.
func Sections(fields []Field) []Group {
	bySection := lo.GroupBy(fields, func(f Field) string { return f.Section() })

	names := lo.Keys(bySection)
	slices.SortFunc(names, func(a, b string) int {
		ia, ib := slices.Index(sectionOrder, a), slices.Index(sectionOrder, b)
		if ia == ib {
			return strings.Compare(a, b)
		}
		// unknown sections go last
		if ia < 0 {
			return 1
		}
		if ib < 0 {
			return -1
		}
		return ia - ib
	})

	return lo.Map(names, func(name string, _ int) Group {
		group := bySection[name]
		slices.SortFunc(group, func(a, b Field) int { return strings.Compare(a.Key, b.Key) })
		return Group{Name: name, Fields: group}
	})
}
