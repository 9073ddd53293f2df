// Package runner drives the analysers over files and gathers one report per
// file.
package runner

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/ChainSafe/pysniff/analyzer"
)

// Runner runs a fixed list of analysers on each file it is given. Issues of
// a file are ordered by analyser, then by discovery order within one.
type Runner struct {
	logger    *slog.Logger
	analyzers []analyzer.Analyzer
}

func New(logger *slog.Logger, analyzers ...analyzer.Analyzer) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{logger: logger, analyzers: analyzers}
}

// AnalyzeFile reads and analyses one file. Failures are recorded on the
// report rather than returned: a file that cannot be read or parsed has an
// Error and no issues.
func (r *Runner) AnalyzeFile(ctx context.Context, path string) *analyzer.Report {
	report := &analyzer.Report{File: path, Issues: make([]*analyzer.Issue, 0)}

	content, err := os.ReadFile(path)
	if err != nil {
		return r.fail(report, fmt.Errorf("unable to read file: %w", err))
	}
	return r.AnalyzeSource(ctx, path, content)
}

// AnalyzeSource analyses content as if read from path.
func (r *Runner) AnalyzeSource(ctx context.Context, path string, content []byte) *analyzer.Report {
	report := &analyzer.Report{File: path, Issues: make([]*analyzer.Issue, 0)}
	r.logger.Debug("analyzing file", slog.String("file", path), slog.Int("size_bytes", len(content)))

	for _, a := range r.analyzers {
		issues, err := a.Analyze(ctx, path, content)
		if err != nil {
			return r.fail(report, err)
		}
		report.Issues = append(report.Issues, issues...)
	}
	r.logger.Debug("analyzed file", slog.String("file", path), slog.Int("issues", len(report.Issues)))
	return report
}

// AnalyzeFiles analyses paths in order. It stops early only when ctx is
// done, returning the reports gathered so far with the context error.
func (r *Runner) AnalyzeFiles(ctx context.Context, paths []string) ([]*analyzer.Report, error) {
	reports := make([]*analyzer.Report, 0, len(paths))
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return reports, err
		}
		reports = append(reports, r.AnalyzeFile(ctx, path))
	}
	return reports, nil
}

func (r *Runner) fail(report *analyzer.Report, err error) *analyzer.Report {
	r.logger.Warn("could not analyze file", slog.String("file", report.File), slog.Any("error", err))
	report.Issues = make([]*analyzer.Issue, 0)
	report.Error = err.Error()
	return report
}
