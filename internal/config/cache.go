package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// CacheDirName is the directory, under the cache root, where the engine
// keeps its result cache.
const CacheDirName = ".xo-cache"

// CacheStore tells the builder where the engine's result cache lives. The
// builder only records the location; the engine owns the contents.
type CacheStore interface {
	Location() string
}

// DirCache places the cache under Root.
type DirCache struct {
	Root string
}

// DefaultCache roots the cache in the user's home directory, or the system
// temporary directory when there is no home.
func DefaultCache() DirCache {
	return DirCache{Root: HomeOrTmp()}
}

// Location implements CacheStore. The trailing separator marks a directory
// for the engine.
func (c DirCache) Location() string {
	return filepath.Join(c.Root, CacheDirName) + string(filepath.Separator)
}

// Clear removes the cache directory and everything in it.
func (c DirCache) Clear() error {
	if err := os.RemoveAll(filepath.Join(c.Root, CacheDirName)); err != nil {
		return fmt.Errorf("xoconf: clearing cache: %w", err)
	}
	return nil
}

// StaticCache is a fixed cache location.
type StaticCache string

// Location implements CacheStore.
func (s StaticCache) Location() string { return string(s) }

// HomeOrTmp returns the user's home directory, falling back to the
// temporary directory.
func HomeOrTmp() string {
	if home, err := os.UserHomeDir(); err == nil && home != "" {
		return home
	}
	return os.TempDir()
}
