// Package testutil holds helpers shared by package tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/tools/txtar"
)

// WriteTree materializes a txtar archive in a fresh temporary directory and
// returns the directory. File names in the archive are slash-separated and
// relative to that directory.
//
//	dir := testutil.WriteTree(t, `
//	-- package.json --
//	{"xo": {"space": true}}
//	-- src/a.js --
//	`)
func WriteTree(t testing.TB, archive string) string {
	t.Helper()

	dir := t.TempDir()
	ar := txtar.Parse([]byte(archive))
	for _, f := range ar.Files {
		path := filepath.Join(dir, filepath.FromSlash(f.Name))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("WriteTree: %v", err)
		}
		if err := os.WriteFile(path, f.Data, 0o600); err != nil {
			t.Fatalf("WriteTree: %v", err)
		}
	}
	return dir
}
