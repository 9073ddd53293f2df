// Package source finds the Python files to lint.
package source

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// Discovery selects files by extension and skips paths matching an exclude
// pattern.
type Discovery struct {
	Extensions []string
	// Exclude holds glob patterns matched against slash separated paths
	// relative to the walked root. "**" matches any number of directories.
	Exclude []string
}

// Discover returns the files to lint under root. A root naming a file is
// returned as is, whatever its extension. Directories are walked in lexical
// order; entries that cannot be read are skipped.
func (d *Discovery) Discover(root string) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("cannot access %s: %w", root, err)
	}
	if !info.IsDir() {
		return []string{root}, nil
	}

	var files []string
	err = filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			return nil
		}
		if path == root {
			return nil
		}
		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return nil
		}
		rel = filepath.ToSlash(rel)
		if entry.IsDir() {
			if d.isExcluded(rel) {
				return filepath.SkipDir
			}
			return nil
		}
		if !entry.Type().IsRegular() && entry.Type()&fs.ModeSymlink == 0 {
			return nil
		}
		if d.hasExtension(path) && !d.isExcluded(rel) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", root, err)
	}
	return files, nil
}

// DiscoverAll runs Discover on every root and concatenates the results,
// dropping paths already seen.
func (d *Discovery) DiscoverAll(roots []string) ([]string, error) {
	var files []string
	seen := make(map[string]bool)
	for _, root := range roots {
		found, err := d.Discover(root)
		if err != nil {
			return nil, err
		}
		for _, file := range found {
			key := filepath.Clean(file)
			if seen[key] {
				continue
			}
			seen[key] = true
			files = append(files, file)
		}
	}
	return files, nil
}

func (d *Discovery) hasExtension(path string) bool {
	return slices.ContainsFunc(d.Extensions, func(ext string) bool {
		return strings.HasSuffix(path, ext)
	})
}

func (d *Discovery) isExcluded(rel string) bool {
	return slices.ContainsFunc(d.Exclude, func(pattern string) bool {
		return matchGlob(pattern, rel)
	})
}
