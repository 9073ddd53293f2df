package source

import (
	"path"
	"strings"
)

// matchGlob matches a slash separated relative path against pattern. Patterns
// without "**" match either the whole path or its last element; "dir/**"
// matches dir and everything below it; "**/x" matches x at any depth and
// "a/**/b" matches b at any depth below a.
func matchGlob(pattern, rel string) bool {
	if !strings.Contains(pattern, "**") {
		if matched, _ := path.Match(pattern, rel); matched {
			return true
		}
		matched, _ := path.Match(pattern, path.Base(rel))
		return matched
	}

	if prefix, ok := strings.CutSuffix(pattern, "/**"); ok && !strings.Contains(prefix, "**") {
		if rel == prefix || strings.HasPrefix(rel, prefix+"/") {
			return true
		}
	}
	if suffix, ok := strings.CutPrefix(pattern, "**/"); ok {
		if matchAnySuffix(suffix, rel) {
			return true
		}
	}
	if prefix, suffix, ok := strings.Cut(pattern, "/**/"); ok {
		if rest, found := strings.CutPrefix(rel, prefix+"/"); found && matchAnySuffix(suffix, rest) {
			return true
		}
	}
	return false
}

// matchAnySuffix reports whether pattern matches rel or any trailing run of
// its path elements.
func matchAnySuffix(pattern, rel string) bool {
	parts := strings.Split(rel, "/")
	for i := range parts {
		if matched, _ := path.Match(pattern, strings.Join(parts[i:], "/")); matched {
			return true
		}
	}
	return false
}
