// Package override decides which override rules apply to a file path.
//
// Each rule carries an ordered list of doublestar glob patterns. A pattern
// prefixed with "!" is a negation: the list is evaluated left to right, a
// positive pattern that matches selects the path and a negated pattern that
// matches deselects it again. A rule applies when the path is still selected
// after the whole list.
package override

import (
	"errors"
	"fmt"
	"math/big"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/Wladim1r/xoconf/internal/options"
)

// ErrBadPattern reports a malformed glob in an override file selector.
var ErrBadPattern = errors.New("xoconf: malformed override pattern")

// Result is the outcome of matching one path against the override rules.
type Result struct {
	Mask Mask
	// Applicable holds the matching rules in declaration order.
	Applicable []options.Override
}

// Match evaluates every rule against path. It keeps no state between calls,
// so the same arguments always produce the same Result.
func Match(path string, rules []options.Override) (Result, error) {
	target := NormalizePath(path)
	acc := new(big.Int)
	var applicable []options.Override

	for i, rule := range rules {
		acc.Lsh(acc, 1)

		ok, err := Selects(rule.Files, target)
		if err != nil {
			return Result{}, fmt.Errorf("override %d: %w", i, err)
		}
		if ok {
			acc.SetBit(acc, 0, 1)
			applicable = append(applicable, rule)
		}
	}

	return Result{
		Mask:       Mask{bits: acc, width: len(rules)},
		Applicable: applicable,
	}, nil
}

// Selects reports whether the ordered pattern list selects path. path must
// already be normalized with NormalizePath.
func Selects(patterns []string, path string) (bool, error) {
	selected := false
	for _, p := range patterns {
		pattern, negated := strings.CutPrefix(p, "!")
		if !doublestar.ValidatePattern(pattern) {
			return false, fmt.Errorf("%w: %q", ErrBadPattern, p)
		}
		ok, err := doublestar.Match(pattern, path)
		if err != nil {
			return false, fmt.Errorf("%w: %q: %v", ErrBadPattern, p, err)
		}
		if ok {
			selected = !negated
		}
	}
	return selected, nil
}

// NormalizePath converts path to forward slashes and drops a leading "./".
func NormalizePath(path string) string {
	p := filepath.ToSlash(path)
	for strings.HasPrefix(p, "./") {
		p = p[2:]
	}
	return p
}
