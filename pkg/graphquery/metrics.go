package graphquery

import (
	"slices"

	"github.com/depscope/depscope/pkg/graph"
)

// DefaultTopN is the length of the fan-in and fan-out rankings.
const DefaultTopN = 10

// FanInEntry is one row of the fan-in ranking.
type FanInEntry struct {
	NodeID string `json:"nodeId"`
	FanIn  int    `json:"fanIn"`
}

// FanOutEntry is one row of the fan-out ranking.
type FanOutEntry struct {
	NodeID string `json:"nodeId"`
	FanOut int    `json:"fanOut"`
}

// GraphMetrics is the analysis report for one graph.
type GraphMetrics struct {
	HighFanInNodes              []FanInEntry                       `json:"highFanInNodes"`
	HighFanOutNodes             []FanOutEntry                      `json:"highFanOutNodes"`
	LongestPaths                []Path                             `json:"longestPaths"`
	StronglyConnectedComponents []graph.StronglyConnectedComponent `json:"stronglyConnectedComponents"`
	WeakComponents              int                                `json:"weakComponents"`
	LongestPathsSkipped         bool                               `json:"longestPathsSkipped,omitempty"`
}

// Options tunes ComputeMetrics. Zero values select the defaults.
type Options struct {
	TopN         int
	LongestPaths int
	// SkipLongestPaths disables the longest-path heuristic, e.g. when the
	// graph is larger than the caller's budget.
	SkipLongestPaths bool
}

// ComputeMetrics ranks nodes by fan-in and fan-out, runs the longest-path
// heuristic and lists every strongly connected component.
func ComputeMetrics(g *graph.Graph, opts Options) *GraphMetrics {
	topN := opts.TopN
	if topN <= 0 {
		topN = DefaultTopN
	}

	m := &GraphMetrics{
		HighFanInNodes:              []FanInEntry{},
		HighFanOutNodes:             []FanOutEntry{},
		LongestPaths:                []Path{},
		StronglyConnectedComponents: graph.StronglyConnectedComponents(g),
		WeakComponents:              len(WeakComponents(g)),
		LongestPathsSkipped:         opts.SkipLongestPaths,
	}
	if m.StronglyConnectedComponents == nil {
		m.StronglyConnectedComponents = []graph.StronglyConnectedComponent{}
	}

	byIn := slices.Clone(g.Nodes)
	slices.SortStableFunc(byIn, func(a, b graph.Node) int { return b.FanIn - a.FanIn })
	for _, n := range byIn[:min(topN, len(byIn))] {
		m.HighFanInNodes = append(m.HighFanInNodes, FanInEntry{NodeID: n.ID, FanIn: n.FanIn})
	}

	byOut := slices.Clone(g.Nodes)
	slices.SortStableFunc(byOut, func(a, b graph.Node) int { return b.FanOut - a.FanOut })
	for _, n := range byOut[:min(topN, len(byOut))] {
		m.HighFanOutNodes = append(m.HighFanOutNodes, FanOutEntry{NodeID: n.ID, FanOut: n.FanOut})
	}

	if !opts.SkipLongestPaths {
		m.LongestPaths = LongestPaths(g, opts.LongestPaths)
	}

	return m
}

// Bucket is one bar of a degree histogram.
type Bucket struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// Summary holds the distribution counts shown alongside a report.
type Summary struct {
	NodesByKind     map[graph.NodeKind]int `json:"nodesByKind"`
	EdgesByKind     map[graph.EdgeKind]int `json:"edgesByKind"`
	NodesByModule   map[string]int         `json:"nodesByModule"`
	FanInHistogram  []Bucket               `json:"fanInHistogram"`
	FanOutHistogram []Bucket               `json:"fanOutHistogram"`
}

var bucketLabels = []string{"0", "1-2", "3-5", "6+"}

func bucketIndex(v int) int {
	switch {
	case v <= 0:
		return 0
	case v <= 2:
		return 1
	case v <= 5:
		return 2
	default:
		return 3
	}
}

func newHistogram() []Bucket {
	h := make([]Bucket, len(bucketLabels))
	for i, l := range bucketLabels {
		h[i].Label = l
	}
	return h
}

// Summarize counts nodes and edges by kind and module and buckets the
// degree distribution.
func Summarize(g *graph.Graph) *Summary {
	s := &Summary{
		NodesByKind:     make(map[graph.NodeKind]int),
		EdgesByKind:     make(map[graph.EdgeKind]int),
		NodesByModule:   make(map[string]int),
		FanInHistogram:  newHistogram(),
		FanOutHistogram: newHistogram(),
	}
	for _, n := range g.Nodes {
		s.NodesByKind[n.Kind()]++
		if n.Module != "" {
			s.NodesByModule[n.Module]++
		}
		s.FanInHistogram[bucketIndex(n.FanIn)].Count++
		s.FanOutHistogram[bucketIndex(n.FanOut)].Count++
	}
	for _, e := range g.Edges {
		s.EdgesByKind[e.Kind]++
	}
	return s
}
