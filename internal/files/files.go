// Package files expands lint patterns into the list of source files to
// check.
package files

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/Wladim1r/xoconf/internal/logging"
	"github.com/Wladim1r/xoconf/internal/options"
	"github.com/Wladim1r/xoconf/internal/override"
)

// DefaultPattern is used when no positive pattern is given.
const DefaultPattern = "**/*.{js,jsx}"

// Extensions lists the file extensions that are linted.
var Extensions = []string{".js", ".jsx"}

// Collect returns the files under cwd selected by patterns, minus those
// matching any ignore pattern. A pattern prefixed with "!" excludes files; a
// pattern naming a directory selects the lintable files beneath it.
// Results are relative to cwd, slash-separated, sorted and unique.
func Collect(ctx context.Context, cwd string, patterns, ignores []string) ([]string, error) {
	cwd, err := filepath.Abs(cwd)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", options.ErrCwd, err)
	}
	st, err := os.Stat(cwd)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", options.ErrCwd, err)
	}
	if !st.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", options.ErrCwd, cwd)
	}

	var include, exclude []string
	for _, p := range patterns {
		neg := strings.HasPrefix(p, "!")
		p, err = relPattern(cwd, strings.TrimPrefix(p, "!"))
		if err != nil {
			return nil, err
		}
		if neg {
			exclude = append(exclude, p)
			continue
		}
		if isDir(filepath.Join(cwd, filepath.FromSlash(p))) {
			p = path.Join(p, DefaultPattern)
		}
		include = append(include, p)
	}
	if len(include) == 0 {
		include = []string{DefaultPattern}
	}
	exclude = append(exclude, ignores...)

	for _, p := range exclude {
		if !doublestar.ValidatePattern(p) {
			return nil, fmt.Errorf("%w: ignore %q", override.ErrBadPattern, p)
		}
	}

	fsys := os.DirFS(cwd)
	seen := make(map[string]struct{})
	for _, pattern := range include {
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("%w: %q", override.ErrBadPattern, pattern)
		}
		err := doublestar.GlobWalk(fsys, pattern, func(p string, d fs.DirEntry) error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if d.IsDir() || !slices.Contains(Extensions, path.Ext(p)) {
				return nil
			}
			if ignored(p, exclude) {
				return nil
			}
			seen[p] = struct{}{}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("xoconf: expanding %q: %w", pattern, err)
		}
	}

	out := make([]string, 0, len(seen))
	for p := range seen {
		out = append(out, p)
	}
	slices.Sort(out)

	logging.Debug().Str("cwd", cwd).Int("files", len(out)).Msg("collected files")
	return out, nil
}

func ignored(p string, patterns []string) bool {
	for _, pattern := range patterns {
		if ok, _ := doublestar.Match(pattern, p); ok {
			return true
		}
	}
	return false
}

func isDir(p string) bool {
	st, err := os.Stat(p)
	return err == nil && st.IsDir()
}

// relPattern rewrites an absolute pattern relative to cwd and strips a
// leading "./".
func relPattern(cwd, pattern string) (string, error) {
	if filepath.IsAbs(pattern) {
		rel, err := filepath.Rel(cwd, pattern)
		if err != nil || strings.HasPrefix(rel, "..") {
			return "", fmt.Errorf("%w: %q is outside %s", override.ErrBadPattern, pattern, cwd)
		}
		pattern = rel
	}
	return override.NormalizePath(pattern), nil
}
