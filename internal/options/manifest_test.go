package options_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Wladim1r/xoconf/internal/options"
	"github.com/Wladim1r/xoconf/internal/testutil"
)

func TestFindManifest_PackageJSON(t *testing.T) {
	t.Parallel()

	dir := testutil.WriteTree(t, `
-- package.json --
{
  // comments are tolerated
  "name": "demo",
  "xo": {"space": 4, "envs": ["node"]}
}
-- src/lib/a.js --
`)

	m, err := options.FindManifest(filepath.Join(dir, "src", "lib"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "package.json"), m.Path)
	assert.Equal(t, float64(4), m.Fragment["space"])
	assert.Equal(t, []any{"node"}, m.Fragment["envs"])
}

func TestFindManifest_YAMLBeatsPackageJSONInSameDir(t *testing.T) {
	t.Parallel()

	dir := testutil.WriteTree(t, `
-- .xo-config.yaml --
semicolon: false
rules:
  quotes: [2, single]
-- package.json --
{"xo": {"semicolon": true}}
`)

	m, err := options.FindManifest(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, ".xo-config.yaml"), m.Path)
	assert.Equal(t, false, m.Fragment["semicolon"])
}

func TestFindManifest_NearestWithoutSection(t *testing.T) {
	t.Parallel()

	dir := testutil.WriteTree(t, `
-- package.json --
{"xo": {"space": true}}
-- pkg/package.json --
{"name": "inner"}
`)

	m, err := options.FindManifest(filepath.Join(dir, "pkg"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "pkg", "package.json"), m.Path)
	assert.Empty(t, m.Fragment)
	assert.NotNil(t, m.Fragment)
}

func TestFindManifest_Errors(t *testing.T) {
	t.Parallel()

	_, err := options.FindManifest(filepath.Join(t.TempDir(), "missing"))
	assert.ErrorIs(t, err, options.ErrCwd)

	dir := testutil.WriteTree(t, `
-- package.json --
{"xo": [1, 2]}
`)
	_, err = options.FindManifest(dir)
	assert.Error(t, err)

	dir = testutil.WriteTree(t, `
-- package.json --
{"xo":
`)
	_, err = options.FindManifest(dir)
	assert.ErrorContains(t, err, "parsing manifest")
}

func TestMergeWithManifest_CallerWins(t *testing.T) {
	t.Parallel()

	dir := testutil.WriteTree(t, `
-- package.json --
{"xo": {"space": 4, "envs": ["node"], "esnext": true}}
`)

	no := false
	got, err := options.MergeWithManifest(options.Raw{
		Cwd:    dir,
		Space:  2,
		ESNext: &no,
	})
	require.NoError(t, err)

	assert.Equal(t, dir, got.Cwd)
	assert.Equal(t, 2, got.Space)
	require.NotNil(t, got.ESNext)
	assert.False(t, *got.ESNext)
	assert.Equal(t, options.StringList{"node"}, got.Envs)
}

func TestPreprocess(t *testing.T) {
	t.Parallel()

	dir := testutil.WriteTree(t, `
-- .xo-config.yml --
ignore: build/**
env: browser
-- a.js --
`)

	opts, err := options.Preprocess(options.Raw{Cwd: dir})
	require.NoError(t, err)

	assert.Equal(t, []string{"browser"}, opts.Envs)
	require.Len(t, opts.Ignores, len(options.DefaultIgnore)+1)
	assert.Equal(t, options.DefaultIgnore, opts.Ignores[:len(options.DefaultIgnore)])
	assert.Equal(t, "build/**", opts.Ignores[len(opts.Ignores)-1])
}
