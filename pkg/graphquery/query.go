// Package graphquery provides read-only queries over built depscope graphs:
// path searches, filtered subgraphs, neighborhoods and report metrics.
// Nothing in this package mutates the graph it is given.
package graphquery

import (
	"slices"
	"strings"

	"github.com/depscope/depscope/pkg/graph"
)

// Direction selects which edges a neighborhood query follows.
type Direction string

const (
	DirectionDeps  Direction = "deps"  // follow outgoing edges
	DirectionRdeps Direction = "rdeps" // follow incoming edges
	DirectionBoth  Direction = "both"
)

// DefaultMaxNodes caps neighborhood results when the caller passes 0.
const DefaultMaxNodes = 500

// SubgraphResult holds the result of a filter or neighborhood query.
// Nodes and edges keep the order of the source graph.
type SubgraphResult struct {
	Nodes     []graph.Node `json:"nodes"`
	Edges     []graph.Edge `json:"edges"`
	Truncated bool         `json:"truncated,omitempty"`
}

// Filter selects part of a graph. Empty sets allow everything.
type Filter struct {
	Search    string           // case-insensitive substring of the label
	NodeKinds []graph.NodeKind // allowed node kinds
	EdgeKinds []graph.EdgeKind // allowed edge kinds
	Modules   []string         // allowed modules, applied to nodes that have one
	Packages  []string         // allowed packages, applied to nodes that have one
}

func setOf[T comparable](items []T) map[T]bool {
	if len(items) == 0 {
		return nil
	}
	s := make(map[T]bool, len(items))
	for _, it := range items {
		s[it] = true
	}
	return s
}

// Apply returns the nodes matching f and the edges of an allowed kind whose
// endpoints both survived.
func Apply(g *graph.Graph, f Filter) *SubgraphResult {
	kinds := setOf(f.NodeKinds)
	edgeKinds := setOf(f.EdgeKinds)
	modules := setOf(f.Modules)
	packages := setOf(f.Packages)
	search := strings.ToLower(f.Search)

	kept := make(map[string]bool, len(g.Nodes))
	result := &SubgraphResult{Nodes: []graph.Node{}, Edges: []graph.Edge{}}

	for _, n := range g.Nodes {
		if search != "" && !strings.Contains(strings.ToLower(n.Label), search) {
			continue
		}
		if kinds != nil && !kinds[n.Kind()] {
			continue
		}
		if modules != nil && n.Module != "" && !modules[n.Module] {
			continue
		}
		if packages != nil && n.Package != "" && !packages[n.Package] {
			continue
		}
		kept[n.ID] = true
		result.Nodes = append(result.Nodes, n)
	}

	for _, e := range g.Edges {
		if edgeKinds != nil && !edgeKinds[e.Kind] {
			continue
		}
		if kept[e.Source] && kept[e.Target] {
			result.Edges = append(result.Edges, e)
		}
	}

	return result
}

// Neighborhood computes the ego graph of a node with directional control.
// The target resolves to an exact node id first, then to every node whose
// owner is target, then to every node in package target. maxNodes caps the
// result size (0 means DefaultMaxNodes).
func Neighborhood(g *graph.Graph, target string, depth int, direction Direction, maxNodes int) *SubgraphResult {
	if direction == "" {
		direction = DirectionBoth
	}
	if maxNodes <= 0 {
		maxNodes = DefaultMaxNodes
	}

	fwd := make(map[string][]string)
	rev := make(map[string][]string)
	for _, e := range g.Edges {
		fwd[e.Source] = append(fwd[e.Source], e.Target)
		rev[e.Target] = append(rev[e.Target], e.Source)
	}

	visited := make(map[string]bool)
	queue := resolveRoots(g, target)
	for _, id := range queue {
		visited[id] = true
	}
	if len(queue) == 0 {
		return &SubgraphResult{Nodes: []graph.Node{}, Edges: []graph.Edge{}}
	}

	truncated := false
	visit := func(id string, next *[]string) {
		if visited[id] || len(visited) >= maxNodes {
			if !visited[id] {
				truncated = true
			}
			return
		}
		visited[id] = true
		*next = append(*next, id)
	}

	for d := 0; d < depth && len(queue) > 0; d++ {
		var next []string
		for _, id := range queue {
			if direction == DirectionDeps || direction == DirectionBoth {
				for _, to := range fwd[id] {
					visit(to, &next)
				}
			}
			if direction == DirectionRdeps || direction == DirectionBoth {
				for _, from := range rev[id] {
					visit(from, &next)
				}
			}
		}
		queue = next
	}

	result := &SubgraphResult{Nodes: []graph.Node{}, Edges: []graph.Edge{}, Truncated: truncated}
	for _, n := range g.Nodes {
		if visited[n.ID] {
			result.Nodes = append(result.Nodes, n)
		}
	}
	for _, e := range g.Edges {
		if visited[e.Source] && visited[e.Target] {
			result.Edges = append(result.Edges, e)
		}
	}
	return result
}

func resolveRoots(g *graph.Graph, target string) []string {
	if g.HasNode(target) {
		return []string{target}
	}
	var roots []string
	for _, n := range g.Nodes {
		if n.Owner == target {
			roots = append(roots, n.ID)
		}
	}
	if len(roots) > 0 {
		return roots
	}
	for _, n := range g.Nodes {
		if n.Package == target {
			roots = append(roots, n.ID)
		}
	}
	return roots
}

// ShortestPath finds a shortest directed path from one id to another using
// breadth-first search. It returns false when to is unreachable.
// A path from a node to itself is just that node.
func ShortestPath(g *graph.Graph, from, to string) ([]string, bool) {
	adj := g.Adjacency()

	queue := []string{from}
	visited := map[string]bool{from: true}
	parent := make(map[string]string)

	for head := 0; head < len(queue); head++ {
		current := queue[head]
		if current == to {
			var path []string
			for node := to; node != from; node = parent[node] {
				path = append(path, node)
			}
			path = append(path, from)
			slices.Reverse(path)
			return path, true
		}
		for _, next := range adj[current] {
			if !visited[next] {
				visited[next] = true
				parent[next] = current
				queue = append(queue, next)
			}
		}
	}

	return nil, false
}
