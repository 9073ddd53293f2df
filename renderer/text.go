// Package renderer provides a way to render lint reports in different formats.
package renderer

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ChainSafe/pysniff/analyzer"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// TextRenderer writes one block per file:
//
//	No issues found in <file>
//
// or
//
//	Issues found in <file>:
//	<message>
//	...
//
// Headers are styled and file names hyperlinked only when output is a
// terminal and color is enabled.
type TextRenderer struct {
	color bool
}

// NewTextRenderer creates a new instance of TextRenderer.
func NewTextRenderer(color bool) Renderer {
	return &TextRenderer{color: color}
}

// Render formats and writes the reports to output.
func (r *TextRenderer) Render(reports []*analyzer.Report, output io.Writer) error {
	st := newStyles(output, r.color && isTerminal(output))

	var report strings.Builder
	for _, rep := range reports {
		file := st.link(rep.File)
		switch {
		case rep.Failed():
			report.WriteString(st.failure("Could not analyze ") + file + st.failure(": "+rep.Error))
			report.WriteString("\n")
		case len(rep.Issues) == 0:
			report.WriteString(st.clean("No issues found in ") + file)
			report.WriteString("\n")
		default:
			report.WriteString(st.header("Issues found in ") + file + st.header(":"))
			report.WriteString("\n")
			for _, issue := range rep.Issues {
				report.WriteString(issue.Message)
				report.WriteString("\n")
			}
		}
	}

	_, err := io.WriteString(output, report.String())
	return err
}

// Format returns the format type.
func (r *TextRenderer) Format() string {
	return "text"
}

type styles struct {
	header  func(string) string
	clean   func(string) string
	failure func(string) string
	link    func(string) string
}

func newStyles(output io.Writer, styled bool) styles {
	plain := func(s string) string { return s }
	if !styled {
		return styles{header: plain, clean: plain, failure: plain, link: plain}
	}

	lg := lipgloss.NewRenderer(output)
	bold := lg.NewStyle().Bold(true)
	green := lg.NewStyle().Foreground(lipgloss.Color("2"))
	red := lg.NewStyle().Bold(true).Foreground(lipgloss.Color("1"))
	return styles{
		header:  func(s string) string { return bold.Render(s) },
		clean:   func(s string) string { return green.Render(s) },
		failure: func(s string) string { return red.Render(s) },
		link:    hyperlink,
	}
}

// hyperlink wraps a file name in an OSC 8 link to its absolute path.
func hyperlink(file string) string {
	abs, err := filepath.Abs(file)
	if err != nil {
		return file
	}
	return termenv.Hyperlink("file://"+filepath.ToSlash(abs), file)
}

func isTerminal(output io.Writer) bool {
	f, ok := output.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
