// Package icon renders the status glyphs used by the card, the feed and the CLI.
//
// The glyph set is picked by the icons.variant setting; an unset or unknown
// variant falls back to plain text so output is never blank.
package icon

import (
	"fmt"

	"github.com/samber/lo"
	"github.com/spf13/viper"
	"github.com/tevify/tevify/key"
)

// Variant names a glyph set.
type Variant string

const (
	emoji   Variant = "emoji"
	nerd    Variant = "nerd"
	plain   Variant = "plain"
	kaomoji Variant = "kaomoji"
	squares Variant = "squares"
)

var variants = []Variant{emoji, nerd, plain, kaomoji, squares}

// AvailableVariants lists the accepted icons.variant values.
func AvailableVariants() []string {
	return lo.Map(variants, func(v Variant, _ int) string { return string(v) })
}

// ParseVariant validates a configured variant name.
func ParseVariant(name string) (Variant, error) {
	if v := Variant(name); lo.Contains(variants, v) {
		return v, nil
	}
	return plain, fmt.Errorf("unknown icons variant %q, expected one of %v", name, AvailableVariants())
}

// Current is the configured variant, plain when the setting is invalid.
func Current() Variant {
	v, _ := ParseVariant(viper.GetString(key.IconsVariant))
	return v
}

type glyphs map[Variant]string

// Get renders i in the current variant.
func Get(i Icon) string {
	g, ok := icons[i]
	if !ok {
		return ""
	}
	if s, ok := g[Current()]; ok {
		return s
	}
	return g[plain]
}
