package syntax_test

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ChainSafe/pysniff/analyzer"
	"github.com/ChainSafe/pysniff/analyzer/syntax"
	"github.com/ChainSafe/pysniff/profile"
	"github.com/ChainSafe/pysniff/pyparser"
	"github.com/ChainSafe/pysniff/pyparser/treesitter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/tools/txtar"
)

// fixture is a testdata archive holding input.py and the expected messages
// in want, one per line. A "mode: strict" line in the archive comment turns
// on strict usage.
type fixture struct {
	source []byte
	want   []string
	strict bool
}

func loadFixture(t *testing.T, path string) fixture {
	t.Helper()
	ar, err := txtar.ParseFile(path)
	require.NoError(t, err)

	var fx fixture
	for _, line := range strings.Split(string(ar.Comment), "\n") {
		if strings.TrimSpace(line) == "mode: strict" {
			fx.strict = true
		}
	}
	for _, f := range ar.Files {
		switch f.Name {
		case "input.py":
			fx.source = f.Data
		case "want":
			for _, line := range strings.Split(string(f.Data), "\n") {
				if line != "" {
					fx.want = append(fx.want, line)
				}
			}
		}
	}
	require.NotNil(t, fx.source, "%s has no input.py", path)
	return fx
}

func messages(issues []*analyzer.Issue) []string {
	out := make([]string, 0, len(issues))
	for _, issue := range issues {
		out = append(out, issue.Message)
	}
	return out
}

func TestAnalyzeFixtures(t *testing.T) {
	paths, err := filepath.Glob(filepath.Join("testdata", "*.txtar"))
	require.NoError(t, err)
	require.NotEmpty(t, paths)

	for _, path := range paths {
		name := strings.TrimSuffix(filepath.Base(path), ".txtar")
		t.Run(name, func(t *testing.T) {
			fx := loadFixture(t, path)
			lint := profile.Default()
			lint.StrictUsage = fx.strict

			issues, err := syntax.NewAnalyser(lint, treesitter.NewParser()).
				Analyze(context.Background(), name+".py", fx.source)
			require.NoError(t, err)
			if fx.want == nil {
				assert.Empty(t, issues)
				return
			}
			assert.Equal(t, fx.want, messages(issues))
			for _, issue := range issues {
				assert.Equal(t, name+".py", issue.File)
			}
		})
	}
}

func TestAnalyzeIssueKinds(t *testing.T) {
	src := "from os import *\nimport sys\nx = 1\n\n\ndef f():\n    pass\n"
	issues, err := syntax.NewAnalyser(profile.Default(), treesitter.NewParser()).
		Analyze(context.Background(), "kinds.py", []byte(src))
	require.NoError(t, err)
	require.Len(t, issues, 4)

	assert.Equal(t, analyzer.IssueKindWildcardImport, issues[0].Kind)
	assert.Equal(t, 1, issues[0].Line)
	assert.Equal(t, analyzer.IssueKindUnusedImport, issues[1].Kind)
	assert.Equal(t, 2, issues[1].Line)
	assert.Equal(t, analyzer.IssueKindUnusedVariable, issues[2].Kind)
	assert.Equal(t, 3, issues[2].Line)
	assert.Equal(t, analyzer.IssueKindMissingDocstring, issues[3].Kind)
	assert.Equal(t, 6, issues[3].Line)
}

func TestAnalyzeSyntaxError(t *testing.T) {
	issues, err := syntax.NewAnalyser(profile.Default(), treesitter.NewParser()).
		Analyze(context.Background(), "broken.py", []byte("def broken(:\n    pass\n"))
	require.Error(t, err)
	assert.Nil(t, issues)
	assert.True(t, errors.Is(err, pyparser.ErrSyntax))

	var syntaxErr *pyparser.SyntaxError
	require.ErrorAs(t, err, &syntaxErr)
	assert.Equal(t, "broken.py", syntaxErr.File)
	assert.Equal(t, 1, syntaxErr.Line)
}

func TestAnalyzeIsStateless(t *testing.T) {
	a := syntax.NewAnalyser(profile.Default(), treesitter.NewParser())
	src := []byte("import os\n")

	first, err := a.Analyze(context.Background(), "a.py", src)
	require.NoError(t, err)
	second, err := a.Analyze(context.Background(), "b.py", src)
	require.NoError(t, err)

	require.Len(t, first, 1)
	require.Len(t, second, 1)
	assert.Equal(t, "a.py", first[0].File)
	assert.Equal(t, "b.py", second[0].File)
}

func TestAnalyzePython2Source(t *testing.T) {
	for _, src := range []string{"print \"hi\"\n", "exec \"code\"\n", "def f(x, **k, y):\n    pass\n"} {
		issues, err := syntax.NewAnalyser(profile.Default(), treesitter.NewParser()).
			Analyze(context.Background(), "legacy.py", []byte(src))
		assert.ErrorIs(t, err, pyparser.ErrSyntax, src)
		assert.Empty(t, issues, src)
	}
}
