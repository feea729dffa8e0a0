package config

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/spf13/viper"
	"github.com/tevify/tevify/color"
	"github.com/tevify/tevify/constant"
	"github.com/tevify/tevify/style"
)

// Field is a registered setting and its built-in default.
type Field struct {
	Key         string
	Value       any
	Description string
}

// Env is the environment variable that overrides the field.
func (f *Field) Env() string {
	return strings.ToUpper(constant.Tevify + "_" + EnvKeyReplacer.Replace(f.Key))
}

// Current is the effective value after file and environment overrides.
func (f *Field) Current() any {
	return viper.Get(f.Key)
}

// Changed reports whether the effective value differs from the default.
func (f *Field) Changed() bool {
	return fmt.Sprint(f.Current()) != fmt.Sprint(f.Value)
}

// Pretty renders the field for `config info`.
func (f *Field) Pretty() string {
	label := style.Fg(color.Blue)
	value := highlight(f.Current())
	if f.Changed() {
		value += " " + style.Faint("(default "+fmt.Sprint(f.Value)+")")
	}

	return strings.Join([]string{
		style.Faint(f.Description),
		label("Key:") + "   " + style.Fg(color.Purple)(f.Key),
		label("Env:") + "   " + f.Env(),
		label("Value:") + " " + value,
		label("Type:") + "  " + f.typeName(),
	}, "\n")
}

func highlight(v any) string {
	switch value := v.(type) {
	case bool:
		s := strconv.FormatBool(value)
		if value {
			return style.Fg(color.Green)(s)
		}
		return style.Fg(color.Red)(s)
	case string:
		if value == "" {
			return style.Faint(`""`)
		}
		return style.Fg(color.Yellow)(value)
	default:
		return fmt.Sprint(value)
	}
}

func (f *Field) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Key         string `json:"key"`
		Section     string `json:"section"`
		Value       any    `json:"value"`
		Default     any    `json:"default"`
		Changed     bool   `json:"changed"`
		Description string `json:"description"`
		Type        string `json:"type"`
		Env         string `json:"env"`
	}{
		Key:         f.Key,
		Section:     f.Section(),
		Value:       f.Current(),
		Default:     f.Value,
		Changed:     f.Changed(),
		Description: f.Description,
		Type:        f.typeName(),
		Env:         f.Env(),
	})
}

func (f *Field) typeName() string {
	if f.Value == nil {
		return "unknown"
	}
	return reflect.TypeOf(f.Value).String()
}
