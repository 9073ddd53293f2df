package linelength_test

import (
	"context"
	"strings"
	"testing"

	"github.com/ChainSafe/pysniff/analyzer"
	"github.com/ChainSafe/pysniff/analyzer/linelength"
	"github.com/ChainSafe/pysniff/profile"
	"github.com/ChainSafe/pysniff/pyparser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitLines(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", []string{}},
		{"a", []string{"a"}},
		{"a\n", []string{"a"}},
		{"a\nb", []string{"a", "b"}},
		{"a\r\nb\rc", []string{"a", "b", "c"}},
		{"\n\n", []string{"", ""}},
		{"a\vb\fc", []string{"a", "b", "c"}},
		{"a\x1cb\u0085c\u2028d\u2029", []string{"a", "b", "c", "d"}},
		{"a\r", []string{"a"}},
		{"a\r\r\n", []string{"a", ""}},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, linelength.SplitLines(tt.in), "%q", tt.in)
	}
}

func TestAnalyze(t *testing.T) {
	src := strings.Join([]string{
		strings.Repeat("a", 79),
		strings.Repeat("b", 80),
		"",
		"# " + strings.Repeat("c", 100),
	}, "\n") + "\n"

	issues, err := linelength.NewAnalyser(profile.Default()).
		Analyze(context.Background(), "long.py", []byte(src))
	require.NoError(t, err)
	require.Len(t, issues, 2)

	assert.Equal(t, &analyzer.Issue{
		File:    "long.py",
		Line:    2,
		Kind:    analyzer.IssueKindLineTooLong,
		Message: "Line 2 exceeds 79 characters",
	}, issues[0])
	assert.Equal(t, "Line 4 exceeds 79 characters", issues[1].Message)
}

func TestAnalyzeCountsCodePoints(t *testing.T) {
	// 79 two-byte characters are within the limit.
	src := strings.Repeat("\u00e9", 79) + "\n" + strings.Repeat("\u00e9", 80) + "\n"

	issues, err := linelength.NewAnalyser(profile.Default()).
		Analyze(context.Background(), "accents.py", []byte(src))
	require.NoError(t, err)
	require.Len(t, issues, 1)
	assert.Equal(t, 2, issues[0].Line)
}

func TestAnalyzeCustomLimit(t *testing.T) {
	lint := profile.Default()
	lint.MaxLineLength = 10

	issues, err := linelength.NewAnalyser(lint).
		Analyze(context.Background(), "short.py", []byte("x = 1\ny = 'twelve chars'\n"))
	require.NoError(t, err)
	require.Len(t, issues, 1)
	assert.Equal(t, "Line 2 exceeds 10 characters", issues[0].Message)
}

func TestAnalyzeEmpty(t *testing.T) {
	issues, err := linelength.NewAnalyser(profile.Default()).
		Analyze(context.Background(), "empty.py", nil)
	require.NoError(t, err)
	assert.NotNil(t, issues)
	assert.Empty(t, issues)
}

func TestAnalyzeInvalidUTF8(t *testing.T) {
	_, err := linelength.NewAnalyser(profile.Default()).
		Analyze(context.Background(), "bad.py", []byte{'a', 0xff, '\n'})
	assert.ErrorIs(t, err, pyparser.ErrInvalidContent)
}
