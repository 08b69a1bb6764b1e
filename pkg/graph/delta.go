package graph

// GraphDiff is the structural difference between two graph snapshots.
type GraphDiff struct {
	AddedNodes   []Node        `json:"addedNodes"`
	RemovedNodes []Node        `json:"removedNodes"`
	ChangedNodes []ChangedNode `json:"changedNodes"`
	AddedEdges   []Edge        `json:"addedEdges"`
	RemovedEdges []Edge        `json:"removedEdges"`
	MetricsDelta MetricsDelta  `json:"metricsDelta"`
}

// ChangedNode pairs the baseline and candidate records of a node whose
// attributes differ between snapshots.
type ChangedNode struct {
	Before Node `json:"before"`
	After  Node `json:"after"`
}

// MetricsDelta holds signed differences (candidate - baseline).
type MetricsDelta struct {
	NodeCountDelta  int `json:"nodeCountDelta"`
	EdgeCountDelta  int `json:"edgeCountDelta"`
	CycleCountDelta int `json:"cycleCountDelta"`
	MaxDepthDelta   int `json:"maxDepthDelta"`
}

// IsZero reports whether no metric moved.
func (m MetricsDelta) IsZero() bool {
	return m == MetricsDelta{}
}

// Empty reports whether the diff found no structural change at all.
func (d *GraphDiff) Empty() bool {
	return len(d.AddedNodes) == 0 && len(d.RemovedNodes) == 0 &&
		len(d.ChangedNodes) == 0 && len(d.AddedEdges) == 0 &&
		len(d.RemovedEdges) == 0 && d.MetricsDelta.IsZero()
}

// Diff computes the structural difference between a baseline and a
// candidate graph. Nodes are matched by id, edges by (source, target, kind).
// Output lists follow the order of the graph they come from; an edge that
// appears twice in one list is reported once per occurrence.
func Diff(baseline, candidate *Graph) *GraphDiff {
	d := &GraphDiff{
		AddedNodes:   []Node{},
		RemovedNodes: []Node{},
		ChangedNodes: []ChangedNode{},
		AddedEdges:   []Edge{},
		RemovedEdges: []Edge{},
	}

	// Node diff
	for _, n := range candidate.Nodes {
		before, ok := baseline.Node(n.ID)
		if !ok {
			d.AddedNodes = append(d.AddedNodes, n)
			continue
		}
		if !before.Equal(n) {
			d.ChangedNodes = append(d.ChangedNodes, ChangedNode{Before: before, After: n})
		}
	}
	for _, n := range baseline.Nodes {
		if !candidate.HasNode(n.ID) {
			d.RemovedNodes = append(d.RemovedNodes, n)
		}
	}

	// Edge diff using set operations on edge keys
	baseEdges := edgeKeys(baseline.Edges)
	candEdges := edgeKeys(candidate.Edges)
	for _, e := range candidate.Edges {
		if !baseEdges[e.Key()] {
			d.AddedEdges = append(d.AddedEdges, e)
		}
	}
	for _, e := range baseline.Edges {
		if !candEdges[e.Key()] {
			d.RemovedEdges = append(d.RemovedEdges, e)
		}
	}

	d.MetricsDelta = MetricsDelta{
		NodeCountDelta:  candidate.Metrics.NodeCount - baseline.Metrics.NodeCount,
		EdgeCountDelta:  candidate.Metrics.EdgeCount - baseline.Metrics.EdgeCount,
		CycleCountDelta: candidate.Metrics.CycleCount - baseline.Metrics.CycleCount,
		MaxDepthDelta:   candidate.Metrics.MaxDepth - baseline.Metrics.MaxDepth,
	}

	return d
}

func edgeKeys(edges []Edge) map[EdgeKey]bool {
	keys := make(map[EdgeKey]bool, len(edges))
	for _, e := range edges {
		keys[e.Key()] = true
	}
	return keys
}
