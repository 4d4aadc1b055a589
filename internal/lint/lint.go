// Package lint ties option resolution, file discovery, grouping and the
// linting engine together.
package lint

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/Wladim1r/xoconf/internal/config"
	"github.com/Wladim1r/xoconf/internal/engine"
	"github.com/Wladim1r/xoconf/internal/files"
	"github.com/Wladim1r/xoconf/internal/group"
	"github.com/Wladim1r/xoconf/internal/logging"
	"github.com/Wladim1r/xoconf/internal/options"
	"github.com/Wladim1r/xoconf/internal/override"
	"github.com/Wladim1r/xoconf/internal/resolve"
)

// Deps are the collaborators a lint run needs. Zero fields get defaults.
type Deps struct {
	// Builder resolves group configurations; nil means DefaultBuilder.
	Builder engine.Builder
	// Engine lints groups; nil means an ESLint adapter in the working
	// directory.
	Engine engine.Engine
	// Concurrency bounds how many groups are linted at once; zero means no
	// bound.
	Concurrency int
}

// Prepared is a resolved run before the engine is invoked.
type Prepared struct {
	Options options.Options
	Paths   []string
	Groups  []group.Group
}

// Prepare resolves raw, collects the files selected by patterns and
// partitions them by the override rules that apply.
func Prepare(ctx context.Context, patterns []string, raw options.Raw) (*Prepared, error) {
	opts, err := options.Preprocess(raw)
	if err != nil {
		return nil, err
	}

	paths, err := files.Collect(ctx, opts.Cwd, patterns, opts.Ignores)
	if err != nil {
		return nil, err
	}

	base := opts.Clone()
	base.Overrides = nil
	groups, err := group.Plan(paths, base, opts.Overrides)
	if err != nil {
		return nil, err
	}

	logging.Debug().
		Str("cwd", opts.Cwd).
		Int("files", len(paths)).
		Int("overrides", len(opts.Overrides)).
		Int("groups", len(groups)).
		Msg("prepared lint run")
	return &Prepared{Options: opts, Paths: paths, Groups: groups}, nil
}

// Files lints the files selected by patterns.
func Files(ctx context.Context, patterns []string, raw options.Raw, deps Deps) (*engine.Report, error) {
	p, err := Prepare(ctx, patterns, raw)
	if err != nil {
		return nil, err
	}

	b := deps.Builder
	if b == nil {
		if b, err = DefaultBuilder(); err != nil {
			return nil, err
		}
	}
	eng := deps.Engine
	if eng == nil {
		eng = engine.NewESLint(p.Options.Cwd)
	}

	return engine.Run(ctx, eng, b, p.Groups, deps.Concurrency)
}

// PlannedGroup is a group together with the configuration it resolves to.
type PlannedGroup struct {
	Mask   string         `json:"mask" yaml:"mask"`
	Paths  []string       `json:"paths" yaml:"paths"`
	Config *config.Config `json:"config" yaml:"config"`
}

// Plan resolves the groups for patterns and their configurations without
// running the engine.
func Plan(ctx context.Context, patterns []string, raw options.Raw, b engine.Builder) ([]PlannedGroup, error) {
	p, err := Prepare(ctx, patterns, raw)
	if err != nil {
		return nil, err
	}
	if b == nil {
		if b, err = DefaultBuilder(); err != nil {
			return nil, err
		}
	}

	out := make([]PlannedGroup, 0, len(p.Groups))
	for i, g := range p.Groups {
		cfg, err := b.Build(g.Options)
		if err != nil {
			return nil, fmt.Errorf("group %d (%s): %w", i, g.Mask, err)
		}
		out = append(out, PlannedGroup{Mask: g.Mask.String(), Paths: g.Paths, Config: cfg})
	}
	return out, nil
}

// ConfigFor returns the configuration that applies to a single file. path
// may be absolute or relative to the working directory.
func ConfigFor(path string, raw options.Raw, b engine.Builder) (*config.Config, error) {
	opts, err := options.Preprocess(raw)
	if err != nil {
		return nil, err
	}

	rel := path
	if filepath.IsAbs(path) {
		rel, err = filepath.Rel(opts.Cwd, path)
		if err != nil || strings.HasPrefix(rel, "..") {
			return nil, fmt.Errorf("%w: %s is outside %s", options.ErrBadOption, path, opts.Cwd)
		}
	}
	rel = override.NormalizePath(rel)

	base := opts.Clone()
	base.Overrides = nil
	groups, err := group.Files([]string{rel}, base, opts.Overrides)
	if err != nil {
		return nil, err
	}

	if b == nil {
		if b, err = DefaultBuilder(); err != nil {
			return nil, err
		}
	}
	return b.Build(groups[0].Options)
}

// DefaultBuilder returns a config builder using Node module resolution,
// the user's cache directory and the bundled rule sets materialized next
// to it.
func DefaultBuilder() (*config.Builder, error) {
	cache := config.DefaultCache()
	sets, err := config.WriteRuleSets(filepath.Join(cache.Root, config.CacheDirName, "rulesets"))
	if err != nil {
		return nil, err
	}
	return config.NewBuilder(resolve.NodeResolver{}, cache, sets), nil
}
