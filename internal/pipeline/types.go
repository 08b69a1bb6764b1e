package pipeline

import (
	"time"

	"github.com/depscope/depscope/pkg/graph"
	"github.com/depscope/depscope/pkg/graphquery"
	"github.com/depscope/depscope/pkg/smells"
)

// Report is the result of analyzing one graph document.
type Report struct {
	RunID       string                   `json:"runId"`
	Location    string                   `json:"location"`
	Fingerprint string                   `json:"fingerprint"`
	GeneratedAt time.Time                `json:"generatedAt"`
	Metrics     graph.Metrics            `json:"metrics"`
	Modules     []string                 `json:"modules"`
	Analysis    *graphquery.GraphMetrics `json:"analysis"`
	Findings    []smells.Finding         `json:"findings"`
	Summary     *graphquery.Summary      `json:"summary"`

	// Graph is kept for renderers that need node details; it is not
	// serialized.
	Graph *graph.Graph `json:"-"`
}

// Comparison is the result of diffing a baseline against a candidate.
type Comparison struct {
	RunID                string           `json:"runId"`
	Baseline             string           `json:"baseline"`
	Candidate            string           `json:"candidate"`
	BaselineFingerprint  string           `json:"baselineFingerprint"`
	CandidateFingerprint string           `json:"candidateFingerprint"`
	BaselineMetrics      graph.Metrics    `json:"baselineMetrics"`
	CandidateMetrics     graph.Metrics    `json:"candidateMetrics"`
	GeneratedAt          time.Time        `json:"generatedAt"`
	Diff                 *graph.GraphDiff `json:"diff"`
	IntroducedFindings   []smells.Finding `json:"introducedFindings"`
	ResolvedFindings     []smells.Finding `json:"resolvedFindings"`
}

// Identical reports whether both documents describe the same graph.
func (c *Comparison) Identical() bool {
	return c.BaselineFingerprint == c.CandidateFingerprint
}

// PathReport is the result of a shortest-path query.
type PathReport struct {
	Location string       `json:"location"`
	From     string       `json:"from"`
	To       string       `json:"to"`
	Found    bool         `json:"found"`
	Path     []string     `json:"path"`
	Hops     int          `json:"hops"`
	Nodes    []graph.Node `json:"nodes"`
}
