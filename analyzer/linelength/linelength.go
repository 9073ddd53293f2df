// Package linelength implements analyzer.Analyzer for lines longer than the
// profile's limit.
package linelength

import (
	"context"
	"fmt"
	"unicode/utf8"

	"github.com/ChainSafe/pysniff/analyzer"
	"github.com/ChainSafe/pysniff/profile"
	"github.com/ChainSafe/pysniff/pyparser"
)

type lineLength struct {
	profile *profile.LintProfile
}

func NewAnalyser(profile *profile.LintProfile) analyzer.Analyzer {
	return &lineLength{profile: profile}
}

// Analyze reports every line with more characters than the limit. Length is
// measured in code points, line endings excluded.
func (l *lineLength) Analyze(_ context.Context, path string, content []byte) ([]*analyzer.Issue, error) {
	if !utf8.Valid(content) {
		return nil, fmt.Errorf("%w: %s is not valid UTF-8", pyparser.ErrInvalidContent, path)
	}
	limit := l.profile.MaxLineLength
	issues := make([]*analyzer.Issue, 0)
	for i, line := range SplitLines(string(content)) {
		if utf8.RuneCountInString(line) <= limit {
			continue
		}
		lineno := i + 1
		issues = append(issues, &analyzer.Issue{
			File:    path,
			Line:    lineno,
			Kind:    analyzer.IssueKindLineTooLong,
			Message: fmt.Sprintf("Line %d exceeds %d characters", lineno, limit),
		})
	}
	return issues, nil
}
