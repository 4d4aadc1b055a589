package options

import (
	"fmt"
	"reflect"

	"github.com/go-viper/mapstructure/v2"
)

// StringList is a multi-valued option. At decode time it accepts either a
// single scalar or a sequence; a nil StringList means the option is absent.
type StringList []string

// Raw is the loose option bag handed over by a CLI or programmatic caller.
// Singular and plural spellings of the same option may both be present;
// Normalize folds them into Options.
type Raw struct {
	Cwd       string `mapstructure:"cwd"`
	Filename  string `mapstructure:"filename"`
	Reporter  string `mapstructure:"reporter"`
	Fix       *bool  `mapstructure:"fix"`
	Semicolon *bool  `mapstructure:"semicolon"`
	ESNext    *bool  `mapstructure:"esnext"`

	// Space is a bool, a number or a numeric string.
	Space any `mapstructure:"space"`

	Env     StringList `mapstructure:"env"`
	Envs    StringList `mapstructure:"envs"`
	Global  StringList `mapstructure:"global"`
	Globals StringList `mapstructure:"globals"`
	Ignore  StringList `mapstructure:"ignore"`
	Ignores StringList `mapstructure:"ignores"`
	Plugin  StringList `mapstructure:"plugin"`
	Plugins StringList `mapstructure:"plugins"`
	Extend  StringList `mapstructure:"extend"`
	Extends StringList `mapstructure:"extends"`

	Rule  map[string]any `mapstructure:"rule"`
	Rules map[string]any `mapstructure:"rules"`

	Overrides []RawOverride `mapstructure:"overrides"`
}

// RawOverride is an override rule before normalization: a file selector plus
// a partial option bag.
type RawOverride struct {
	Files StringList `mapstructure:"files"`
	Raw   `mapstructure:",squash"`
}

// Decode converts a generic map (from flags, env, YAML or JSON) into a Raw.
// Unknown keys are ignored.
func Decode(m map[string]any) (Raw, error) {
	var raw Raw
	if len(m) == 0 {
		return raw, nil
	}

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       stringListHook,
		WeaklyTypedInput: true,
		Result:           &raw,
	})
	if err != nil {
		return Raw{}, fmt.Errorf("xoconf: building option decoder: %w", err)
	}
	if err := dec.Decode(m); err != nil {
		return Raw{}, fmt.Errorf("%w: %v", ErrBadOption, err)
	}
	return raw, nil
}

var stringListType = reflect.TypeOf(StringList(nil))

// stringListHook lets a single scalar stand in for a one-element list.
func stringListHook(_ reflect.Type, to reflect.Type, data any) (any, error) {
	if to != stringListType {
		return data, nil
	}
	switch v := data.(type) {
	case string:
		return StringList{v}, nil
	case bool, int, int64, float64:
		return StringList{fmt.Sprint(v)}, nil
	}
	return data, nil
}

// Fill returns r with every unset field taken from base. Fields set in r
// always win; this is a shallow merge, so a set list or map replaces the
// base one wholesale.
func (r Raw) Fill(base Raw) Raw {
	out := r
	if out.Cwd == "" {
		out.Cwd = base.Cwd
	}
	if out.Filename == "" {
		out.Filename = base.Filename
	}
	if out.Reporter == "" {
		out.Reporter = base.Reporter
	}
	if out.Fix == nil {
		out.Fix = base.Fix
	}
	if out.Semicolon == nil {
		out.Semicolon = base.Semicolon
	}
	if out.ESNext == nil {
		out.ESNext = base.ESNext
	}
	if out.Space == nil {
		out.Space = base.Space
	}
	fillList(&out.Env, base.Env)
	fillList(&out.Envs, base.Envs)
	fillList(&out.Global, base.Global)
	fillList(&out.Globals, base.Globals)
	fillList(&out.Ignore, base.Ignore)
	fillList(&out.Ignores, base.Ignores)
	fillList(&out.Plugin, base.Plugin)
	fillList(&out.Plugins, base.Plugins)
	fillList(&out.Extend, base.Extend)
	fillList(&out.Extends, base.Extends)
	if out.Rule == nil {
		out.Rule = base.Rule
	}
	if out.Rules == nil {
		out.Rules = base.Rules
	}
	if out.Overrides == nil {
		out.Overrides = base.Overrides
	}
	return out
}

func fillList(dst *StringList, base StringList) {
	if *dst == nil {
		*dst = base
	}
}
