package config

import (
	"bytes"
	"embed"
	"fmt"
	"os"
	"path/filepath"
)

//go:embed rulesets/*.json
var bundled embed.FS

const (
	overridesFile = "overrides.json"
	pluginsFile   = "plugins.json"
)

// RuleSets locates the two bundled rule-set fragments that every
// configuration extends: operational overrides of the base rule set, and the
// plugin declarations.
type RuleSets interface {
	Overrides() string
	Plugins() string
}

// StaticRuleSets is a RuleSets with fixed paths.
type StaticRuleSets struct {
	OverridesPath string
	PluginsPath   string
}

// Overrides implements RuleSets.
func (s StaticRuleSets) Overrides() string { return s.OverridesPath }

// Plugins implements RuleSets.
func (s StaticRuleSets) Plugins() string { return s.PluginsPath }

// BundledRuleSets returns the paths the bundled fragments occupy under dir,
// without writing anything.
func BundledRuleSets(dir string) StaticRuleSets {
	return StaticRuleSets{
		OverridesPath: filepath.Join(dir, overridesFile),
		PluginsPath:   filepath.Join(dir, pluginsFile),
	}
}

// WriteRuleSets materializes the bundled fragments under dir so the engine
// can load them, leaving files that already hold the same content alone.
func WriteRuleSets(dir string) (StaticRuleSets, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return StaticRuleSets{}, fmt.Errorf("xoconf: creating rule set dir: %w", err)
	}
	for _, name := range []string{overridesFile, pluginsFile} {
		data, err := bundled.ReadFile("rulesets/" + name)
		if err != nil {
			return StaticRuleSets{}, fmt.Errorf("xoconf: reading bundled %s: %w", name, err)
		}
		dst := filepath.Join(dir, name)
		if cur, err := os.ReadFile(dst); err == nil && bytes.Equal(cur, data) {
			continue
		}
		if err := os.WriteFile(dst, data, 0o644); err != nil {
			return StaticRuleSets{}, fmt.Errorf("xoconf: writing %s: %w", dst, err)
		}
	}
	return BundledRuleSets(dir), nil
}
