// Package fileutil provides file and path utility functions.
package fileutil

import (
	"fmt"
	"path/filepath"
)

// Canonicalize resolves a path to its absolute form with symlinks evaluated.
// The file must exist.
func Canonicalize(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolving %q: %w", path, err)
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", fmt.Errorf("resolving %q: %w", path, err)
	}
	return resolved, nil
}
