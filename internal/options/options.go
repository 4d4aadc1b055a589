// Package options defines the canonical lint option bag and the steps that
// produce it: decoding a loose bag, folding singular/plural aliases,
// discovering project manifest settings and merging override fragments.
package options

import (
	"errors"
	"slices"

	"github.com/Wladim1r/xoconf/internal/value"
)

// DefaultIndent is the indentation width used when space indentation is
// requested without an explicit width.
const DefaultIndent = 2

var (
	// ErrBadOption reports an option value of the wrong shape.
	ErrBadOption = errors.New("xoconf: invalid option")
	// ErrCwd reports a working directory that cannot be used.
	ErrCwd = errors.New("xoconf: invalid working directory")
)

// Indent is the normalized form of the space option.
type Indent struct {
	Enabled bool
	// Width is the requested width; zero means DefaultIndent.
	Width int
}

// Size returns the effective indentation width.
func (i Indent) Size() int {
	if i.Width > 0 {
		return i.Width
	}
	return DefaultIndent
}

// Options is the canonical option bag. Every multi-valued option uses its
// plural name; a nil field means the option was not supplied.
type Options struct {
	Cwd      string
	Filename string
	Reporter string

	Fix       *bool
	Semicolon *bool
	ESNext    *bool
	Space     *Indent

	Envs    []string
	Globals []string
	Ignores []string
	Plugins []string
	Extends []string

	Rules map[string]value.Value

	Overrides []Override
}

// Override is an ordered override rule: when a path matches Files, Options
// is merged over the base options for that path.
type Override struct {
	Files   []string
	Options Options
}

// SpaceEnabled reports whether space indentation is switched on.
func (o Options) SpaceEnabled() bool {
	return o.Space != nil && o.Space.Enabled
}

// SemicolonDisabled reports whether semicolons were explicitly turned off.
func (o Options) SemicolonDisabled() bool {
	return o.Semicolon != nil && !*o.Semicolon
}

// ESNextEnabled reports whether the ESNext rule set was requested.
func (o Options) ESNextEnabled() bool {
	return o.ESNext != nil && *o.ESNext
}

// FixEnabled reports whether fix mode was requested.
func (o Options) FixEnabled() bool {
	return o.Fix != nil && *o.Fix
}

// Clone returns a deep copy of o.
func (o Options) Clone() Options {
	out := o
	out.Fix = cloneBool(o.Fix)
	out.Semicolon = cloneBool(o.Semicolon)
	out.ESNext = cloneBool(o.ESNext)
	if o.Space != nil {
		s := *o.Space
		out.Space = &s
	}
	out.Envs = slices.Clone(o.Envs)
	out.Globals = slices.Clone(o.Globals)
	out.Ignores = slices.Clone(o.Ignores)
	out.Plugins = slices.Clone(o.Plugins)
	out.Extends = slices.Clone(o.Extends)
	out.Rules = value.CloneMap(o.Rules)
	if o.Overrides != nil {
		out.Overrides = make([]Override, len(o.Overrides))
		for i, ov := range o.Overrides {
			out.Overrides[i] = Override{
				Files:   slices.Clone(ov.Files),
				Options: ov.Options.Clone(),
			}
		}
	}
	return out
}

// Merge deep-merges fragment over o and returns the result. Scalars and
// lists set in fragment replace those of o; rule settings are merged per rule
// name, recursing into mappings and replacing sequences.
func (o Options) Merge(fragment Options) Options {
	out := o.Clone()
	f := fragment.Clone()

	if f.Cwd != "" {
		out.Cwd = f.Cwd
	}
	if f.Filename != "" {
		out.Filename = f.Filename
	}
	if f.Reporter != "" {
		out.Reporter = f.Reporter
	}
	if f.Fix != nil {
		out.Fix = f.Fix
	}
	if f.Semicolon != nil {
		out.Semicolon = f.Semicolon
	}
	if f.ESNext != nil {
		out.ESNext = f.ESNext
	}
	if f.Space != nil {
		out.Space = f.Space
	}
	if f.Envs != nil {
		out.Envs = f.Envs
	}
	if f.Globals != nil {
		out.Globals = f.Globals
	}
	if f.Ignores != nil {
		out.Ignores = f.Ignores
	}
	if f.Plugins != nil {
		out.Plugins = f.Plugins
	}
	if f.Extends != nil {
		out.Extends = f.Extends
	}
	if f.Rules != nil {
		out.Rules = value.MergeMaps(out.Rules, f.Rules, value.Replace)
	}
	if f.Overrides != nil {
		out.Overrides = f.Overrides
	}
	return out
}

func cloneBool(b *bool) *bool {
	if b == nil {
		return nil
	}
	v := *b
	return &v
}
