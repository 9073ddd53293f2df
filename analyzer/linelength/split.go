package linelength

import (
	"strings"
	"unicode/utf8"
)

// SplitLines splits s at every line boundary Python recognises, dropping the
// boundaries. A trailing boundary does not start a new line, so "a\n" is one
// line and "" is none.
func SplitLines(s string) []string {
	lines := make([]string, 0, strings.Count(s, "\n")+1)
	start := 0
	for i := 0; i < len(s); {
		r, size := rune(s[i]), 1
		if r >= 0x80 {
			r, size = utf8.DecodeRuneInString(s[i:])
		}
		width := 0
		switch r {
		case '\r':
			width = 1
			if i+1 < len(s) && s[i+1] == '\n' {
				width = 2
			}
		case '\n', '\v', '\f', '\x1c', '\x1d', '\x1e', '\u0085', '\u2028', '\u2029':
			width = size
		}
		if width == 0 {
			i += size
			continue
		}
		lines = append(lines, s[start:i])
		i += width
		start = i
	}
	if start < len(s) {
		lines = append(lines, s[start:])
	}
	return lines
}
