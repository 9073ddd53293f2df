// Package syntax implements analyzer.Analyzer for the checks that need the
// syntax tree: missing docstrings, unused or wildcard imports and unused
// variables.
package syntax

import (
	"context"

	"github.com/ChainSafe/pysniff/analyzer"
	"github.com/ChainSafe/pysniff/profile"
	"github.com/ChainSafe/pysniff/pyparser"
)

type syntaxAnalyser struct {
	profile *profile.LintProfile
	parser  pyparser.Parser
}

// NewAnalyser initializes an analyser parsing sources with parser.
func NewAnalyser(profile *profile.LintProfile, parser pyparser.Parser) analyzer.Analyzer {
	return &syntaxAnalyser{profile: profile, parser: parser}
}

// Analyze parses content and runs the rule visitor over the tree. A source
// that does not parse yields the parser's error and no issues.
func (a *syntaxAnalyser) Analyze(ctx context.Context, path string, content []byte) ([]*analyzer.Issue, error) {
	module, err := a.parser.Parse(ctx, path, content)
	if err != nil {
		return nil, err
	}
	return Check(path, module, a.profile.StrictUsage), nil
}
