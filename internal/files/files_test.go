package files_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Wladim1r/xoconf/internal/files"
	"github.com/Wladim1r/xoconf/internal/options"
	"github.com/Wladim1r/xoconf/internal/override"
	"github.com/Wladim1r/xoconf/internal/testutil"
)

const project = `
-- index.js --
-- lib/util.js --
-- lib/view.jsx --
-- lib/readme.md --
-- lib/app.min.js --
-- test/a.js --
-- test/fixtures/broken.js --
-- node_modules/dep/index.js --
-- dist/bundle.js --
-- vendor/x.js --
`

func TestCollect(t *testing.T) {
	t.Parallel()

	dir := testutil.WriteTree(t, project)

	tests := []struct {
		name     string
		patterns []string
		ignores  []string
		want     []string
	}{
		{
			name:    "default pattern with default ignores",
			ignores: options.DefaultIgnore,
			want:    []string{"index.js", "lib/util.js", "lib/view.jsx", "test/a.js"},
		},
		{
			name: "no ignores",
			want: []string{
				"dist/bundle.js", "index.js", "lib/app.min.js", "lib/util.js", "lib/view.jsx",
				"node_modules/dep/index.js", "test/a.js", "test/fixtures/broken.js", "vendor/x.js",
			},
		},
		{
			name:     "explicit patterns",
			patterns: []string{"lib/*", "./index.js"},
			ignores:  options.DefaultIgnore,
			want:     []string{"index.js", "lib/util.js", "lib/view.jsx"},
		},
		{
			name:     "negated pattern",
			patterns: []string{"lib/**", "!**/*.jsx"},
			want:     []string{"lib/app.min.js", "lib/util.js"},
		},
		{
			name:     "directory pattern",
			patterns: []string{"test"},
			ignores:  options.DefaultIgnore,
			want:     []string{"test/a.js"},
		},
		{
			name:     "overlapping patterns are unique",
			patterns: []string{"lib/*.js", "lib/util.js", "**/util.js"},
			want:     []string{"lib/app.min.js", "lib/util.js"},
		},
		{
			name:     "absolute pattern",
			patterns: []string{filepath.Join(dir, "lib", "util.js")},
			want:     []string{"lib/util.js"},
		},
		{
			name:     "nothing matches",
			patterns: []string{"src/**"},
			want:     []string{},
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, err := files.Collect(context.Background(), dir, tc.patterns, tc.ignores)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestCollect_Errors(t *testing.T) {
	t.Parallel()

	dir := testutil.WriteTree(t, project)

	_, err := files.Collect(context.Background(), filepath.Join(dir, "missing"), nil, nil)
	assert.ErrorIs(t, err, options.ErrCwd)

	_, err = files.Collect(context.Background(), filepath.Join(dir, "index.js"), nil, nil)
	assert.ErrorIs(t, err, options.ErrCwd)

	_, err = files.Collect(context.Background(), dir, []string{"[a-"}, nil)
	assert.ErrorIs(t, err, override.ErrBadPattern)

	_, err = files.Collect(context.Background(), dir, nil, []string{"{a"})
	assert.ErrorIs(t, err, override.ErrBadPattern)

	_, err = files.Collect(context.Background(), dir, []string{"/elsewhere/*.js"}, nil)
	assert.ErrorIs(t, err, override.ErrBadPattern)
}

func TestCollect_Canceled(t *testing.T) {
	t.Parallel()

	dir := testutil.WriteTree(t, project)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := files.Collect(ctx, dir, nil, nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCollect_RelativeCwd(t *testing.T) {
	t.Parallel()

	dir := testutil.WriteTree(t, project)
	wd, err := os.Getwd()
	require.NoError(t, err)
	rel, err := filepath.Rel(wd, dir)
	require.NoError(t, err)

	got, err := files.Collect(context.Background(), rel, []string{filepath.Join(dir, "lib", "util.js")}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"lib/util.js"}, got)
}
