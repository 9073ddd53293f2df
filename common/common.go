// Package common holds helpers shared by the commands and loaders.
package common

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrNotFound is returned by FindUpward when no candidate exists.
var ErrNotFound = errors.New("not found")

// FindUpward searches the directory of target and each of its parents for a
// file with one of the given names and returns the first path found. Names
// are tried in order within each directory.
func FindUpward(target string, names ...string) (string, error) {
	abs, err := filepath.Abs(target)
	if err != nil {
		return "", fmt.Errorf("unable to determine absolute path: %w", err)
	}
	dir := abs
	if info, err := os.Stat(abs); err != nil || !info.IsDir() {
		dir = filepath.Dir(abs)
	}
	for {
		for _, name := range names {
			candidate := filepath.Join(dir, name)
			if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
				return candidate, nil
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break // Reached the root directory
		}
		dir = parent
	}
	return "", fmt.Errorf("%w: none of %v above %s", ErrNotFound, names, target)
}
