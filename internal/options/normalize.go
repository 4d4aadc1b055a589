package options

import (
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/Wladim1r/xoconf/internal/value"
)

// Normalize folds the singular/plural aliases of raw into the canonical
// Options. For env, global, ignore, plugin and extend the plural spelling is
// authoritative when both are present; otherwise the singular one is used.
// Either way the value ends up as a list under the plural field, and an
// option given under neither name stays absent.
//
// rule and rules are folded the same way into Rules, but the value remains a
// mapping of rule name to setting; it is never turned into a list.
//
// Override fragments are normalized with the same rules. raw is not
// modified.
func Normalize(raw Raw) (Options, error) {
	opts := Options{
		Cwd:       raw.Cwd,
		Filename:  raw.Filename,
		Reporter:  raw.Reporter,
		Fix:       cloneBool(raw.Fix),
		Semicolon: cloneBool(raw.Semicolon),
		ESNext:    cloneBool(raw.ESNext),
		Envs:      pluralize(raw.Envs, raw.Env),
		Globals:   pluralize(raw.Globals, raw.Global),
		Ignores:   pluralize(raw.Ignores, raw.Ignore),
		Plugins:   pluralize(raw.Plugins, raw.Plugin),
		Extends:   pluralize(raw.Extends, raw.Extend),
	}

	space, err := parseIndent(raw.Space)
	if err != nil {
		return Options{}, err
	}
	opts.Space = space

	rules := raw.Rules
	if rules == nil {
		rules = raw.Rule
	}
	if rules != nil {
		opts.Rules = make(map[string]value.Value, len(rules))
		for name, setting := range rules {
			v, err := value.FromAny(setting)
			if err != nil {
				return Options{}, fmt.Errorf("%w: rule %q: %v", ErrBadOption, name, err)
			}
			opts.Rules[name] = v
		}
	}

	if raw.Overrides != nil {
		opts.Overrides = make([]Override, 0, len(raw.Overrides))
		for i, ro := range raw.Overrides {
			fragment, err := Normalize(ro.Raw)
			if err != nil {
				return Options{}, fmt.Errorf("override %d: %w", i, err)
			}
			opts.Overrides = append(opts.Overrides, Override{
				Files:   slices.Clone([]string(ro.Files)),
				Options: fragment,
			})
		}
	}

	return opts, nil
}

func pluralize(plural, singular StringList) []string {
	if plural != nil {
		return slices.Clone([]string(plural))
	}
	if singular != nil {
		return slices.Clone([]string(singular))
	}
	return nil
}

// parseIndent interprets the space option. true (or an empty string, as
// produced by a bare --space flag) selects the default width, a positive
// number selects that width, and false or 0 switch indentation off.
func parseIndent(v any) (*Indent, error) {
	switch s := v.(type) {
	case nil:
		return nil, nil
	case bool:
		return &Indent{Enabled: s}, nil
	case int:
		return indentWidth(s)
	case int64:
		return indentWidth(int(s))
	case uint64:
		return indentWidth(int(s))
	case float64:
		if s != math.Trunc(s) {
			return nil, fmt.Errorf("%w: space must be a whole number, got %v", ErrBadOption, s)
		}
		return indentWidth(int(s))
	case string:
		switch strings.ToLower(strings.TrimSpace(s)) {
		case "", "true":
			return &Indent{Enabled: true}, nil
		case "false":
			return &Indent{}, nil
		}
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return nil, fmt.Errorf("%w: space %q is neither a boolean nor a number", ErrBadOption, s)
		}
		return indentWidth(n)
	}
	return nil, fmt.Errorf("%w: space has unsupported type %T", ErrBadOption, v)
}

func indentWidth(n int) (*Indent, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: space must not be negative, got %d", ErrBadOption, n)
	}
	if n == 0 {
		return &Indent{}, nil
	}
	return &Indent{Enabled: true, Width: n}, nil
}
