package surface

import (
	"encoding/json"
	"io"

	"github.com/depscope/depscope/internal/pipeline"
	"github.com/depscope/depscope/pkg/smells"
)

// JSONRenderer marshals results to indented JSON.
type JSONRenderer struct{}

type findingsDocument struct {
	Location string           `json:"location"`
	Findings []smells.Finding `json:"findings"`
}

func (r *JSONRenderer) RenderReport(w io.Writer, report *pipeline.Report) error {
	return encode(w, report)
}

func (r *JSONRenderer) RenderComparison(w io.Writer, cmp *pipeline.Comparison) error {
	return encode(w, cmp)
}

func (r *JSONRenderer) RenderPath(w io.Writer, path *pipeline.PathReport) error {
	return encode(w, path)
}

func (r *JSONRenderer) RenderFindings(w io.Writer, location string, findings []smells.Finding) error {
	if findings == nil {
		findings = []smells.Finding{}
	}
	return encode(w, findingsDocument{Location: location, Findings: findings})
}

func encode(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
