package graph

// MaxDepth returns the longest layered chain found by Kahn-style
// topological processing. Nodes with in-degree 0 start at depth 0; a node
// is enqueued at depth+1 once all of its incoming edges have been consumed.
//
// Only acyclic regions contribute: nodes inside a cycle never reach
// in-degree 0 and are skipped. A graph without edges has depth 0.
func MaxDepth(g *Graph) int {
	adj := g.Adjacency()

	inDegree := make(map[string]int, len(g.Nodes))
	order := make([]string, 0, len(g.Nodes))
	for _, n := range g.Nodes {
		if _, ok := inDegree[n.ID]; !ok {
			order = append(order, n.ID)
		}
		inDegree[n.ID] = 0
	}
	for _, e := range g.Edges {
		if _, ok := inDegree[e.Target]; !ok {
			order = append(order, e.Target)
		}
		inDegree[e.Target]++
	}

	depth := make(map[string]int, len(order))
	queue := make([]string, 0, len(order))
	for _, id := range order {
		if inDegree[id] == 0 {
			queue = append(queue, id)
			depth[id] = 0
		}
	}

	maxDepth := 0
	for head := 0; head < len(queue); head++ {
		current := queue[head]
		d := depth[current]
		if d > maxDepth {
			maxDepth = d
		}
		for _, next := range adj[current] {
			inDegree[next]--
			if inDegree[next] == 0 {
				queue = append(queue, next)
				depth[next] = d + 1
			}
		}
	}

	return maxDepth
}
