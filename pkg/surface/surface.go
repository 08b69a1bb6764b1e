// Package surface defines output rendering for depscope results.
// Implementations handle different output targets: terminal and JSON.
package surface

import (
	"fmt"
	"io"

	"github.com/depscope/depscope/internal/pipeline"
	"github.com/depscope/depscope/pkg/smells"
)

// Renderer produces formatted output from pipeline results.
type Renderer interface {
	RenderReport(w io.Writer, report *pipeline.Report) error
	RenderComparison(w io.Writer, cmp *pipeline.Comparison) error
	RenderPath(w io.Writer, path *pipeline.PathReport) error
	RenderFindings(w io.Writer, location string, findings []smells.Finding) error
}

// New returns the renderer for an output format ("text" or "json").
func New(format string, colored bool) (Renderer, error) {
	switch format {
	case "text", "":
		return &TerminalRenderer{Color: colored}, nil
	case "json":
		return &JSONRenderer{}, nil
	default:
		return nil, fmt.Errorf("unknown output format %q (want text or json)", format)
	}
}
