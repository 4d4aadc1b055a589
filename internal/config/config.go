// Package config builds the final configuration handed to the linting
// engine for one batch of files.
//
// The configuration is assembled in a fixed order, later layers overriding
// earlier ones:
//
//  1. built-in defaults (no config-file discovery, result caching, the base
//     rule set plus the bundled overrides and plugin fragments);
//  2. the caller's environments, globals, plugins and fix flag;
//  3. indentation rules derived from the space option;
//  4. semicolon rules when semicolons are turned off;
//  5. the ESNext base rule set;
//  6. explicit rule settings;
//  7. extra shareable configs named by extends.
package config

import (
	"maps"
	"path/filepath"
	"slices"
	"strings"

	"github.com/Wladim1r/xoconf/internal/resolve"
	"github.com/Wladim1r/xoconf/internal/value"
)

// Rule set and module names used while building a configuration.
const (
	BaseRuleSet   = "xo"
	ESNextRuleSet = "xo/esnext"
	ConfigPrefix  = "eslint-config-"
	ReactModule   = "eslint-plugin-react"
	ReactPlugin   = "react"
)

// Config is the resolved option set for one engine invocation. Its JSON form
// matches the engine's programmatic options.
type Config struct {
	Cwd           string                 `json:"cwd,omitempty" yaml:"cwd,omitempty"`
	UseEslintrc   bool                   `json:"useEslintrc" yaml:"useEslintrc"`
	Cache         bool                   `json:"cache" yaml:"cache"`
	CacheLocation string                 `json:"cacheLocation" yaml:"cacheLocation"`
	BaseConfig    BaseConfig             `json:"baseConfig" yaml:"baseConfig"`
	Envs          []string               `json:"envs,omitempty" yaml:"envs,omitempty"`
	Globals       []string               `json:"globals,omitempty" yaml:"globals,omitempty"`
	Plugins       []string               `json:"plugins" yaml:"plugins"`
	Rules         map[string]value.Value `json:"rules" yaml:"rules"`
	Fix           bool                   `json:"fix" yaml:"fix"`
}

// BaseConfig lists the shareable configs the engine extends, in order.
type BaseConfig struct {
	Extends []string `json:"extends" yaml:"extends"`
}

// DefaultConfig returns the built-in defaults: config-file discovery off,
// caching on at the store's location, and the base rule set followed by the
// bundled overrides and plugin fragments.
func DefaultConfig(cache CacheStore, sets RuleSets) *Config {
	return &Config{
		UseEslintrc:   false,
		Cache:         true,
		CacheLocation: cache.Location(),
		BaseConfig: BaseConfig{
			Extends: []string{BaseRuleSet, sets.Overrides(), sets.Plugins()},
		},
		Plugins: []string{},
		Rules:   map[string]value.Value{},
	}
}

// RC is the configuration-file form of a Config, as written for an engine
// run from the command line.
type RC struct {
	Root    bool                   `json:"root"`
	Extends []string               `json:"extends,omitempty"`
	Env     map[string]bool        `json:"env,omitempty"`
	Globals map[string]bool        `json:"globals,omitempty"`
	Plugins []string               `json:"plugins,omitempty"`
	Rules   map[string]value.Value `json:"rules,omitempty"`
}

// RC converts c to configuration-file form. A global written as "name:true"
// is writable; any other global is read-only. Extends entries naming a file
// or directory under Cwd become absolute, since the engine resolves relative
// entries against the configuration file's own directory.
func (c *Config) RC() RC {
	rc := RC{
		Root:    true,
		Extends: c.absExtends(),
		Plugins: slices.Clone(c.Plugins),
		Rules:   maps.Clone(c.Rules),
	}
	if len(c.Envs) > 0 {
		rc.Env = make(map[string]bool, len(c.Envs))
		for _, env := range c.Envs {
			rc.Env[env] = true
		}
	}
	if len(c.Globals) > 0 {
		rc.Globals = make(map[string]bool, len(c.Globals))
		for _, g := range c.Globals {
			name, writable, _ := strings.Cut(g, ":")
			rc.Globals[name] = writable == "true"
		}
	}
	return rc
}

func (c *Config) absExtends() []string {
	out := slices.Clone(c.BaseConfig.Extends)
	if c.Cwd == "" {
		return out
	}
	for i, ref := range out {
		if ref == BaseRuleSet || ref == ESNextRuleSet || filepath.IsAbs(ref) {
			continue
		}
		if p := filepath.Join(c.Cwd, ref); resolve.PathExists(p) {
			out[i] = p
		}
	}
	return out
}
