package runner_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/ChainSafe/pysniff/analyzer"
	"github.com/ChainSafe/pysniff/analyzer/linelength"
	"github.com/ChainSafe/pysniff/analyzer/runner"
	"github.com/ChainSafe/pysniff/analyzer/syntax"
	"github.com/ChainSafe/pysniff/profile"
	"github.com/ChainSafe/pysniff/pyparser/treesitter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRunner(logs *bytes.Buffer) *runner.Runner {
	lint := profile.Default()
	logger := slog.New(slog.NewTextHandler(logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return runner.New(logger,
		syntax.NewAnalyser(lint, treesitter.NewParser()),
		linelength.NewAnalyser(lint),
	)
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func messages(report *analyzer.Report) []string {
	out := make([]string, 0, len(report.Issues))
	for _, issue := range report.Issues {
		out = append(out, issue.Message)
	}
	return out
}

func TestAnalyzeFileOrdersTreeIssuesFirst(t *testing.T) {
	dir := t.TempDir()
	long := "# " + string(bytes.Repeat([]byte("x"), 90))
	path := writeFile(t, dir, "sample.py", long+"\nimport os\n")

	var logs bytes.Buffer
	report := newRunner(&logs).AnalyzeFile(context.Background(), path)

	assert.False(t, report.Failed())
	assert.Equal(t, path, report.File)
	assert.Equal(t, []string{
		"Unused import 'os' at line 2",
		"Line 1 exceeds 79 characters",
	}, messages(report))
	assert.Contains(t, logs.String(), "analyzed file")
}

func TestAnalyzeFileClean(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "clean.py", "\"\"\"Clean module.\"\"\"\n")

	report := newRunner(&bytes.Buffer{}).AnalyzeFile(context.Background(), path)
	assert.False(t, report.Failed())
	assert.NotNil(t, report.Issues)
	assert.Empty(t, report.Issues)
}

func TestAnalyzeFilesIsolatesFailures(t *testing.T) {
	dir := t.TempDir()
	broken := writeFile(t, dir, "broken.py", "def broken(:\n    pass\n")
	good := writeFile(t, dir, "good.py", "x = 1\n")
	missing := filepath.Join(dir, "missing.py")

	var logs bytes.Buffer
	reports, err := newRunner(&logs).AnalyzeFiles(context.Background(), []string{broken, missing, good})
	require.NoError(t, err)
	require.Len(t, reports, 3)

	assert.True(t, reports[0].Failed())
	assert.Contains(t, reports[0].Error, "invalid syntax")
	assert.Empty(t, reports[0].Issues)

	assert.True(t, reports[1].Failed())
	assert.Contains(t, reports[1].Error, "unable to read file")

	assert.False(t, reports[2].Failed())
	assert.Equal(t, []string{"Unused variable 'x' at line 1"}, messages(reports[2]))

	assert.Contains(t, logs.String(), "could not analyze file")
}

type failingAnalyzer struct{}

func (failingAnalyzer) Analyze(context.Context, string, []byte) ([]*analyzer.Issue, error) {
	return nil, errors.New("boom")
}

func TestAnalyzeSourceDropsPartialIssues(t *testing.T) {
	lint := profile.Default()
	r := runner.New(nil, linelength.NewAnalyser(lint), failingAnalyzer{})

	long := string(bytes.Repeat([]byte("y"), 100))
	report := r.AnalyzeSource(context.Background(), "partial.py", []byte(long))
	assert.Equal(t, "boom", report.Error)
	assert.Empty(t, report.Issues)
}

func TestAnalyzeFilesCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	reports, err := newRunner(&bytes.Buffer{}).AnalyzeFiles(ctx, []string{"a.py"})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, reports)
}
