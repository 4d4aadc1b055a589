package config_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Wladim1r/xoconf/internal/config"
	"github.com/Wladim1r/xoconf/internal/options"
	"github.com/Wladim1r/xoconf/internal/resolve"
	"github.com/Wladim1r/xoconf/internal/testutil"
	"github.com/Wladim1r/xoconf/internal/value"
)

var sets = config.StaticRuleSets{OverridesPath: "/assets/overrides.json", PluginsPath: "/assets/plugins.json"}

// noModules resolves nothing.
var noModules = resolve.Func(func(_, name string) (string, error) {
	return "", resolve.ErrNotFound
})

func newBuilder(r resolve.Resolver) *config.Builder {
	return config.NewBuilder(r, config.StaticCache("/cache/.xo-cache/"), sets)
}

func boolPtr(b bool) *bool { return &b }

func TestBuild_Defaults(t *testing.T) {
	t.Parallel()

	cfg, err := newBuilder(noModules).Build(options.Options{})
	require.NoError(t, err)

	assert.False(t, cfg.UseEslintrc)
	assert.True(t, cfg.Cache)
	assert.Equal(t, "/cache/.xo-cache/", cfg.CacheLocation)
	assert.Equal(t, []string{"xo", "/assets/overrides.json", "/assets/plugins.json"}, cfg.BaseConfig.Extends)
	assert.Equal(t, []string{}, cfg.Plugins)
	assert.Empty(t, cfg.Rules)
	assert.NotNil(t, cfg.Rules)
	assert.False(t, cfg.Fix)
}

func TestBuild_CallerLayer(t *testing.T) {
	t.Parallel()

	cfg, err := newBuilder(noModules).Build(options.Options{
		Envs:    []string{"node", "mocha"},
		Globals: []string{"$"},
		Plugins: []string{"unicorn"},
		Fix:     boolPtr(true),
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"node", "mocha"}, cfg.Envs)
	assert.Equal(t, []string{"$"}, cfg.Globals)
	assert.Equal(t, []string{"unicorn"}, cfg.Plugins)
	assert.True(t, cfg.Fix)
}

func TestBuild_Space(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		space *options.Indent
		want  any
	}{
		{"default width", &options.Indent{Enabled: true}, []any{2, 2, map[string]any{"SwitchCase": 1}}},
		{"explicit width", &options.Indent{Enabled: true, Width: 4}, []any{2, 4, map[string]any{"SwitchCase": 1}}},
		{"disabled", &options.Indent{}, nil},
		{"absent", nil, nil},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			cfg, err := newBuilder(noModules).Build(options.Options{Cwd: "/p", Space: tc.space})
			require.NoError(t, err)

			indent, ok := cfg.Rules["indent"]
			if tc.want == nil {
				assert.False(t, ok)
				return
			}
			require.True(t, ok)
			assert.Equal(t, tc.want, indent.Interface())
			assert.NotContains(t, cfg.Plugins, config.ReactPlugin)
		})
	}
}

func TestBuild_SpaceWithReact(t *testing.T) {
	t.Parallel()

	dir := testutil.WriteTree(t, `
-- node_modules/eslint-plugin-react/index.js --
module.exports = {};
`)

	cfg, err := newBuilder(resolve.NodeResolver{}).Build(options.Options{
		Cwd:     dir,
		Space:   &options.Indent{Enabled: true, Width: 3},
		Plugins: []string{"unicorn"},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"unicorn", "react"}, cfg.Plugins)
	assert.Equal(t, []any{2, 3}, cfg.Rules["react/jsx-indent"].Interface())
	assert.Equal(t, []any{2, 3}, cfg.Rules["react/jsx-indent-props"].Interface())
}

func TestBuild_ReactNeedsSpace(t *testing.T) {
	t.Parallel()

	dir := testutil.WriteTree(t, `
-- node_modules/eslint-plugin-react/index.js --
`)
	cfg, err := newBuilder(resolve.NodeResolver{}).Build(options.Options{Cwd: dir})
	require.NoError(t, err)
	assert.NotContains(t, cfg.Rules, "react/jsx-indent")
	assert.Empty(t, cfg.Plugins)
}

func TestBuild_Semicolon(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		semicolon *bool
		wantRules bool
	}{
		{"false forbids semicolons", boolPtr(false), true},
		{"true installs nothing", boolPtr(true), false},
		{"omitted installs nothing", nil, false},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			cfg, err := newBuilder(noModules).Build(options.Options{Semicolon: tc.semicolon})
			require.NoError(t, err)

			if !tc.wantRules {
				assert.NotContains(t, cfg.Rules, "semi")
				assert.NotContains(t, cfg.Rules, "semi-spacing")
				return
			}
			assert.Equal(t, []any{2, "never"}, cfg.Rules["semi"].Interface())
			assert.Equal(t,
				[]any{2, map[string]any{"before": false, "after": true}},
				cfg.Rules["semi-spacing"].Interface())
		})
	}
}

func TestBuild_ESNext(t *testing.T) {
	t.Parallel()

	cfg, err := newBuilder(noModules).Build(options.Options{ESNext: boolPtr(true)})
	require.NoError(t, err)
	assert.Equal(t, []string{"xo/esnext", "/assets/plugins.json"}, cfg.BaseConfig.Extends)
}

func TestBuild_CallerRulesWin(t *testing.T) {
	t.Parallel()

	cfg, err := newBuilder(noModules).Build(options.Options{
		Space:     &options.Indent{Enabled: true},
		Semicolon: boolPtr(false),
		Rules: map[string]value.Value{
			"indent": value.Int(0),
			"quotes": value.MustFromAny([]any{2, "single"}),
		},
	})
	require.NoError(t, err)

	assert.Equal(t, 0, cfg.Rules["indent"].Scalar())
	assert.Equal(t, []any{2, "single"}, cfg.Rules["quotes"].Interface())
	assert.Contains(t, cfg.Rules, "semi")
}

func TestBuild_Extends(t *testing.T) {
	t.Parallel()

	dir := testutil.WriteTree(t, `
-- node_modules/eslint-config-my-config/index.js --
-- node_modules/eslint-config-other/index.js --
-- configs/local.js --
`)
	b := newBuilder(resolve.NodeResolver{})

	cfg, err := b.Build(options.Options{
		Cwd:     dir,
		ESNext:  boolPtr(true),
		Extends: []string{"my-config", "configs/local.js", "eslint-config-other"},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{
		"xo/esnext",
		"/assets/plugins.json",
		filepath.Join(dir, "node_modules", "eslint-config-my-config", "index.js"),
		"configs/local.js",
		filepath.Join(dir, "node_modules", "eslint-config-other", "index.js"),
	}, cfg.BaseConfig.Extends)
}

func TestBuild_ExtendsPrefixing(t *testing.T) {
	t.Parallel()

	var asked []string
	r := resolve.Func(func(_, name string) (string, error) {
		asked = append(asked, name)
		return "/resolved/" + name, nil
	})

	cfg, err := newBuilder(r).Build(options.Options{Cwd: t.TempDir(), Extends: []string{"my-config"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"eslint-config-my-config"}, asked)
	assert.Equal(t, "/resolved/eslint-config-my-config", cfg.BaseConfig.Extends[3])
}

func TestBuild_ExtendsUnresolved(t *testing.T) {
	t.Parallel()

	_, err := newBuilder(resolve.NodeResolver{}).Build(options.Options{
		Cwd:     t.TempDir(),
		Extends: []string{"missing"},
	})
	require.ErrorIs(t, err, config.ErrUnresolvedExtend)
	assert.ErrorIs(t, err, resolve.ErrNotFound)
	assert.ErrorContains(t, err, `"missing"`)
}

func TestBuild_Independent(t *testing.T) {
	t.Parallel()

	b := newBuilder(noModules)
	first, err := b.Build(options.Options{Semicolon: boolPtr(false)})
	require.NoError(t, err)
	first.Rules["mutated"] = value.Int(1)
	first.BaseConfig.Extends[0] = "changed"

	second, err := b.Build(options.Options{})
	require.NoError(t, err)
	assert.NotContains(t, second.Rules, "mutated")
	assert.NotContains(t, second.Rules, "semi")
	assert.Equal(t, "xo", second.BaseConfig.Extends[0])
}

func TestRC(t *testing.T) {
	t.Parallel()

	cfg, err := newBuilder(noModules).Build(options.Options{
		Envs:    []string{"node"},
		Globals: []string{"$", "app:true"},
	})
	require.NoError(t, err)

	rc := cfg.RC()
	assert.True(t, rc.Root)
	assert.Equal(t, map[string]bool{"node": true}, rc.Env)
	assert.Equal(t, map[string]bool{"$": false, "app": true}, rc.Globals)
	assert.Equal(t, cfg.BaseConfig.Extends, rc.Extends)
}

func TestRC_LocalExtendsAreAbsolute(t *testing.T) {
	t.Parallel()

	dir := testutil.WriteTree(t, `
-- shared.js --
-- configs/local.js --
-- xo/readme --
`)
	cfg, err := newBuilder(noModules).Build(options.Options{
		Cwd:     dir,
		Extends: []string{"./shared.js", "configs/local.js"},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"xo", "/assets/overrides.json", "/assets/plugins.json", "./shared.js", "configs/local.js"},
		cfg.BaseConfig.Extends)
	assert.Equal(t, []string{
		"xo",
		"/assets/overrides.json",
		"/assets/plugins.json",
		filepath.Join(dir, "shared.js"),
		filepath.Join(dir, "configs", "local.js"),
	}, cfg.RC().Extends)
}
