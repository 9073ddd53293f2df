package renderer

import (
	"io"

	"github.com/ChainSafe/pysniff/analyzer"
)

// Renderer defines the interface for rendering lint results in different formats.
type Renderer interface {
	// Render writes the reports, in the given order, to output.
	Render(reports []*analyzer.Report, output io.Writer) error

	// Format returns the name of the output format (e.g., "json", "text").
	Format() string
}

// New returns the renderer for format.
func New(format string, color bool) (Renderer, bool) {
	switch format {
	case "", "text":
		return NewTextRenderer(color), true
	case "json":
		return NewJSONRenderer(), true
	default:
		return nil, false
	}
}
