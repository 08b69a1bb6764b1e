package graphquery

import "github.com/depscope/depscope/pkg/graph"

const (
	// DefaultLongestPaths is the number of paths LongestPaths returns when
	// asked for 0.
	DefaultLongestPaths = 5

	// maxPathNodes bounds a single explored path. Longer extensions are
	// abandoned without being recorded.
	maxPathNodes = 20

	// explorationFactor stops starting new roots once this many times the
	// requested number of paths has been recorded.
	explorationFactor = 10
)

// Path is a discovered simple path. Length counts nodes, not hops.
type Path struct {
	Path   []string `json:"path"`
	Length int      `json:"length"`
}

type pathFrame struct {
	id       string
	next     int
	extended bool
}

// LongestPaths is a bounded heuristic for reporting long dependency chains.
// It runs a depth-first search from every node, extending a path only to
// neighbors not already on that path, and records a path whenever it cannot
// be extended and has more than one node. The search abandons extensions
// beyond maxPathNodes nodes and stops starting new roots once
// explorationFactor*n paths have been recorded.
//
// The result is neither exhaustive nor guaranteed to contain the true
// longest simple path. Paths are returned longest first, ties in discovery
// order, at most n of them.
func LongestPaths(g *graph.Graph, n int) []Path {
	if n <= 0 {
		n = DefaultLongestPaths
	}
	adj := g.Adjacency()

	top := make([]Path, 0, n)
	recorded := 0
	record := func(p []string) {
		recorded++
		// insert after every path of equal or greater length
		pos := len(top)
		for pos > 0 && top[pos-1].Length < len(p) {
			pos--
		}
		if pos >= n {
			return
		}
		entry := Path{Path: append([]string(nil), p...), Length: len(p)}
		if len(top) < n {
			top = append(top, Path{})
		}
		copy(top[pos+1:], top[pos:len(top)-1])
		top[pos] = entry
	}

	onPath := make(map[string]bool)
	var path []string
	var frames []pathFrame

	for _, root := range g.NodeIDs() {
		if recorded >= n*explorationFactor {
			break
		}

		path = append(path[:0], root)
		onPath[root] = true
		frames = append(frames[:0], pathFrame{id: root})

		for len(frames) > 0 {
			f := &frames[len(frames)-1]
			succ := adj[f.id]

			descended := false
			for f.next < len(succ) {
				w := succ[f.next]
				f.next++
				if onPath[w] {
					continue
				}
				f.extended = true
				if len(path)+1 > maxPathNodes {
					continue
				}
				path = append(path, w)
				onPath[w] = true
				frames = append(frames, pathFrame{id: w})
				descended = true
				break
			}
			if descended {
				continue
			}

			if !f.extended && len(path) > 1 {
				record(path)
			}
			onPath[f.id] = false
			path = path[:len(path)-1]
			frames = frames[:len(frames)-1]
		}
	}

	return top
}
