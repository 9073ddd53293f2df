package renderer

import (
	"encoding/json"
	"io"

	"github.com/ChainSafe/pysniff/analyzer"
)

// JSONRenderer renders reports in JSON format.
type JSONRenderer struct{}

func NewJSONRenderer() Renderer {
	return &JSONRenderer{}
}

func (r *JSONRenderer) Render(reports []*analyzer.Report, output io.Writer) error {
	if reports == nil {
		reports = make([]*analyzer.Report, 0)
	}
	encoder := json.NewEncoder(output)
	encoder.SetIndent("", "  ")
	return encoder.Encode(reports)
}

func (r *JSONRenderer) Format() string {
	return "json"
}
