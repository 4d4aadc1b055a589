// Package resolve locates shareable configs and plugins the way Node's
// module resolution does: relative names against the starting directory,
// bare names through node_modules directories walking upward.
package resolve

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/jsonc"
)

// ErrNotFound reports a module that could not be located.
var ErrNotFound = errors.New("module not found")

// Resolver resolves a module name relative to a directory.
type Resolver interface {
	Resolve(fromDir, name string) (string, error)
}

// Func adapts a plain function to Resolver.
type Func func(fromDir, name string) (string, error)

// Resolve calls f.
func (f Func) Resolve(fromDir, name string) (string, error) { return f(fromDir, name) }

// extensions tried when a module path names a file without extension.
var extensions = []string{".js", ".json"}

// NodeResolver resolves modules from the filesystem.
type NodeResolver struct{}

// Resolve returns the file that name refers to when required from fromDir.
func (NodeResolver) Resolve(fromDir, name string) (string, error) {
	if fromDir == "" {
		return "", fmt.Errorf("resolve %q: %w: empty base directory", name, ErrNotFound)
	}
	base, err := filepath.Abs(fromDir)
	if err != nil {
		return "", fmt.Errorf("resolve %q: %w", name, err)
	}
	if name == "" {
		return "", fmt.Errorf("resolve: %w: empty module name", ErrNotFound)
	}

	if isPathLike(name) {
		target := filepath.FromSlash(name)
		if !filepath.IsAbs(target) {
			target = filepath.Join(base, target)
		}
		if p, ok := loadFileOrDir(target); ok {
			return p, nil
		}
		return "", fmt.Errorf("resolve %q from %s: %w", name, base, ErrNotFound)
	}

	for dir := base; ; {
		if filepath.Base(dir) != "node_modules" {
			candidate := filepath.Join(dir, "node_modules", filepath.FromSlash(name))
			if p, ok := loadFileOrDir(candidate); ok {
				return p, nil
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", fmt.Errorf("resolve %q from %s: %w", name, base, ErrNotFound)
}

// PathExists reports whether path names an existing file or directory.
func PathExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func isPathLike(name string) bool {
	return strings.HasPrefix(name, "./") ||
		strings.HasPrefix(name, "../") ||
		name == "." || name == ".." ||
		filepath.IsAbs(name)
}

func loadFileOrDir(path string) (string, bool) {
	if p, ok := loadFile(path); ok {
		return p, true
	}
	return loadDir(path)
}

func loadFile(path string) (string, bool) {
	if isFile(path) {
		return path, true
	}
	for _, ext := range extensions {
		if isFile(path + ext) {
			return path + ext, true
		}
	}
	return "", false
}

func loadDir(dir string) (string, bool) {
	if main := packageMain(dir); main != "" {
		target := filepath.Join(dir, filepath.FromSlash(main))
		if p, ok := loadFile(target); ok {
			return p, true
		}
		if p, ok := loadIndex(target); ok {
			return p, true
		}
	}
	return loadIndex(dir)
}

func loadIndex(dir string) (string, bool) {
	for _, ext := range extensions {
		p := filepath.Join(dir, "index"+ext)
		if isFile(p) {
			return p, true
		}
	}
	return "", false
}

// packageMain returns the "main" entry of dir/package.json, if any.
func packageMain(dir string) string {
	data, err := os.ReadFile(filepath.Join(dir, "package.json"))
	if err != nil {
		return ""
	}
	var pkg struct {
		Main string `json:"main"`
	}
	if err := json.Unmarshal(jsonc.ToJSON(data), &pkg); err != nil {
		return ""
	}
	return pkg.Main
}

func isFile(path string) bool {
	st, err := os.Stat(path)
	return err == nil && st.Mode().IsRegular()
}
