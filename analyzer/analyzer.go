// Package analyzer provides an interface for analyzing Python source files for lint issues.
package analyzer

import "context"

// Analyzer represents the interface for the analyzer.
type Analyzer interface {
	// Analyze analyzes the provided source code of the file at path and
	// returns the issues found, in discovery order.
	Analyze(ctx context.Context, path string, content []byte) ([]*Issue, error)
}

// IssueKind identifies the check that produced an issue.
type IssueKind string

const (
	IssueKindMissingDocstring IssueKind = "missing-docstring"
	IssueKindUnusedImport     IssueKind = "unused-import"
	IssueKindWildcardImport   IssueKind = "wildcard-import"
	IssueKindUnusedVariable   IssueKind = "unused-variable"
	IssueKindLineTooLong      IssueKind = "line-too-long"
)

// Issue represents a single issue found by the analyzer.
type Issue struct {
	File    string    `json:"file"`
	Line    int       `json:"line"` // The 1-based line number where the issue was found.
	Kind    IssueKind `json:"kind"`
	Message string    `json:"message"` // A description of the issue, line included.
}

// Report holds everything found in one file. Error is set when the file
// could not be read or parsed; Issues is then empty.
type Report struct {
	File   string   `json:"file"`
	Issues []*Issue `json:"issues"`
	Error  string   `json:"error,omitempty"`
}

// Failed reports whether the file could not be analyzed.
func (r *Report) Failed() bool {
	return r.Error != ""
}
