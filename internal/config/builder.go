package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/Wladim1r/xoconf/internal/logging"
	"github.com/Wladim1r/xoconf/internal/options"
	"github.com/Wladim1r/xoconf/internal/resolve"
	"github.com/Wladim1r/xoconf/internal/value"
)

// ErrUnresolvedExtend reports an extends entry that names neither an
// existing path nor a resolvable shareable config.
var ErrUnresolvedExtend = errors.New("xoconf: cannot resolve extended config")

// Builder turns normalized options into a Config. A Builder holds no
// mutable state and may be shared by concurrent callers.
type Builder struct {
	Resolver resolve.Resolver
	Cache    CacheStore
	RuleSets RuleSets
}

// NewBuilder returns a Builder with the given capabilities.
func NewBuilder(r resolve.Resolver, cache CacheStore, sets RuleSets) *Builder {
	return &Builder{Resolver: r, Cache: cache, RuleSets: sets}
}

// Build resolves the configuration for opts. See the package documentation
// for the layer order. The only failure is an extends entry that cannot be
// resolved; a missing React plugin just skips the JSX indentation rules.
func (b *Builder) Build(opts options.Options) (*Config, error) {
	cfg := DefaultConfig(b.Cache, b.RuleSets)
	cfg.Cwd = opts.Cwd

	cfg.Envs = slices.Clone(opts.Envs)
	cfg.Globals = slices.Clone(opts.Globals)
	if opts.Plugins != nil {
		cfg.Plugins = slices.Clone(opts.Plugins)
	}
	cfg.Fix = opts.FixEnabled()

	if opts.SpaceEnabled() {
		width := opts.Space.Size()
		cfg.Rules["indent"] = value.Seq(
			value.Int(2),
			value.Int(width),
			value.Map(map[string]value.Value{"SwitchCase": value.Int(1)}),
		)

		if opts.Cwd != "" && b.hasModule(opts.Cwd, ReactModule) {
			cfg.Plugins = append(cfg.Plugins, ReactPlugin)
			cfg.Rules["react/jsx-indent-props"] = value.Seq(value.Int(2), value.Int(width))
			cfg.Rules["react/jsx-indent"] = value.Seq(value.Int(2), value.Int(width))
		}
	}

	if opts.SemicolonDisabled() {
		cfg.Rules["semi"] = value.Seq(value.Int(2), value.String("never"))
		cfg.Rules["semi-spacing"] = value.Seq(
			value.Int(2),
			value.Map(map[string]value.Value{
				"before": value.Bool(false),
				"after":  value.Bool(true),
			}),
		)
	}

	if opts.ESNextEnabled() {
		cfg.BaseConfig.Extends = []string{ESNextRuleSet, b.RuleSets.Plugins()}
	}

	if opts.Rules != nil {
		value.Assign(cfg.Rules, opts.Rules)
	}

	if len(opts.Extends) > 0 {
		refs, err := b.resolveExtends(opts.Cwd, opts.Extends)
		if err != nil {
			return nil, err
		}
		cfg.BaseConfig.Extends = append(cfg.BaseConfig.Extends, refs...)
	}

	return cfg, nil
}

// resolveExtends maps each extends entry to a reference the engine can
// load. Existing paths are used verbatim; other names get the shareable
// config prefix if they lack it and are resolved from cwd.
func (b *Builder) resolveExtends(cwd string, names []string) ([]string, error) {
	refs := make([]string, 0, len(names))
	for _, name := range names {
		if existingPath(cwd, name) {
			refs = append(refs, name)
			continue
		}

		module := name
		if !strings.Contains(module, ConfigPrefix) {
			module = ConfigPrefix + module
		}
		ref, err := b.Resolver.Resolve(cwd, module)
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %w", ErrUnresolvedExtend, name, err)
		}
		refs = append(refs, ref)
	}
	return refs, nil
}

func (b *Builder) hasModule(cwd, name string) bool {
	_, err := b.Resolver.Resolve(cwd, name)
	if err != nil {
		logging.Debug().Str("module", name).Str("cwd", cwd).Err(err).Msg("optional module not available")
		return false
	}
	return true
}

func existingPath(cwd, name string) bool {
	if filepath.IsAbs(name) || cwd == "" {
		return resolve.PathExists(name)
	}
	return resolve.PathExists(filepath.Join(cwd, name))
}
