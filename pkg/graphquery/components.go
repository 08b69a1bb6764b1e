package graphquery

import (
	"cmp"
	"slices"

	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"

	"github.com/depscope/depscope/pkg/graph"
)

// WeakComponents returns the weakly connected components of g, ignoring
// edge direction. Members are listed in node order and components are
// ordered by their first member. Edges to ids that are not nodes are
// ignored.
func WeakComponents(g *graph.Graph) [][]string {
	ug := simple.NewUndirectedGraph()
	ids := make(map[string]int64, len(g.Nodes))
	for i, n := range g.Nodes {
		ids[n.ID] = int64(i)
		ug.AddNode(simple.Node(int64(i)))
	}

	// simple graphs reject self-loops and collapse parallel edges
	for _, e := range g.Edges {
		from, fromOK := ids[e.Source]
		to, toOK := ids[e.Target]
		if !fromOK || !toOK || from == to {
			continue
		}
		if !ug.HasEdgeBetween(from, to) {
			ug.SetEdge(simple.Edge{F: simple.Node(from), T: simple.Node(to)})
		}
	}

	raw := topo.ConnectedComponents(ug)
	positions := make([][]int64, 0, len(raw))
	for _, comp := range raw {
		members := make([]int64, len(comp))
		for i, n := range comp {
			members[i] = n.ID()
		}
		slices.Sort(members)
		positions = append(positions, members)
	}
	slices.SortFunc(positions, func(a, b []int64) int { return cmp.Compare(a[0], b[0]) })

	out := make([][]string, len(positions))
	for i, members := range positions {
		out[i] = make([]string, len(members))
		for j, pos := range members {
			out[i][j] = g.Nodes[pos].ID
		}
	}
	return out
}
