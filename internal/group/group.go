// Package group partitions a file list into batches that share one resolved
// option set, so that a linting engine runs once per distinct configuration
// instead of once per file.
package group

import (
	"github.com/Wladim1r/xoconf/internal/logging"
	"github.com/Wladim1r/xoconf/internal/options"
	"github.com/Wladim1r/xoconf/internal/override"
)

// Group is a batch of paths to which exactly the same override rules apply.
type Group struct {
	Mask    override.Mask
	Paths   []string
	Options options.Options
}

// Files partitions paths by override mask.
//
// Groups appear in the order their mask is first seen while scanning paths,
// and paths keep their input order inside a group. A group's options are
// base merged with each applicable override fragment in rule order, with the
// override list itself cleared. The zero mask (no rule applies) forms an
// ordinary group holding base unchanged.
func Files(paths []string, base options.Options, rules []options.Override) ([]Group, error) {
	var groups []Group
	index := make(map[string]int)

	for _, path := range paths {
		res, err := override.Match(path, rules)
		if err != nil {
			return nil, err
		}

		key := res.Mask.Key()
		i, ok := index[key]
		if !ok {
			opts := base.Clone()
			for _, rule := range res.Applicable {
				opts = opts.Merge(rule.Options)
			}
			opts.Overrides = nil

			groups = append(groups, Group{Mask: res.Mask, Options: opts})
			i = len(groups) - 1
			index[key] = i

			logging.Debug().
				Stringer("mask", res.Mask).
				Int("overrides", len(res.Applicable)).
				Str("first", path).
				Msg("new option group")
		}
		groups[i].Paths = append(groups[i].Paths, path)
	}

	return groups, nil
}

// Paths flattens groups back into one path list, group by group.
func Paths(groups []Group) []string {
	var out []string
	for _, g := range groups {
		out = append(out, g.Paths...)
	}
	return out
}

// Plan is Files with a shortcut: without override rules every path shares
// base, so the paths form a single zero-mask group.
func Plan(paths []string, base options.Options, rules []options.Override) ([]Group, error) {
	if len(rules) > 0 {
		return Files(paths, base, rules)
	}
	if len(paths) == 0 {
		return nil, nil
	}
	opts := base.Clone()
	opts.Overrides = nil
	return []Group{{
		Mask:    override.Mask{},
		Paths:   append([]string(nil), paths...),
		Options: opts,
	}}, nil
}
