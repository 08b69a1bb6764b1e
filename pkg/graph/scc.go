package graph

import "fmt"

// StronglyConnectedComponent is a maximal set of mutually reachable nodes.
type StronglyConnectedComponent struct {
	ID    string   `json:"id"`
	Nodes []string `json:"nodes"`
	Size  int      `json:"size"`
}

// IsCycle reports whether the component counts as a dependency cycle.
// Singleton components (self-loops included) do not.
func (c StronglyConnectedComponent) IsCycle() bool {
	return c.Size > 1
}

// sccFrame is one level of the explicit DFS stack: the vertex being
// expanded and the position of the next successor to look at.
type sccFrame struct {
	id   string
	next int
}

// StronglyConnectedComponents runs Tarjan's algorithm over the directed
// edges of g. The traversal uses an explicit frame stack, so arbitrarily
// deep graphs cannot exhaust the goroutine stack.
//
// Roots are taken in node order and successors in edge order, which makes
// the output order stable for a given input. Edge targets that are not
// nodes are visited and come back as singleton components.
func StronglyConnectedComponents(g *Graph) []StronglyConnectedComponent {
	adj := g.Adjacency()

	index := make(map[string]int, len(g.Nodes))
	lowlink := make(map[string]int, len(g.Nodes))
	onStack := make(map[string]bool, len(g.Nodes))
	stack := make([]string, 0, len(g.Nodes))
	var work []sccFrame
	var components []StronglyConnectedComponent
	counter := 0

	visit := func(id string) {
		index[id] = counter
		lowlink[id] = counter
		counter++
		stack = append(stack, id)
		onStack[id] = true
		work = append(work, sccFrame{id: id})
	}

	for _, root := range g.NodeIDs() {
		if _, seen := index[root]; seen {
			continue
		}
		visit(root)

		for len(work) > 0 {
			top := &work[len(work)-1]
			succ := adj[top.id]

			if top.next < len(succ) {
				w := succ[top.next]
				top.next++
				if _, seen := index[w]; !seen {
					visit(w)
				} else if onStack[w] && index[w] < lowlink[top.id] {
					lowlink[top.id] = index[w]
				}
				continue
			}

			v := top.id
			work = work[:len(work)-1]

			if lowlink[v] == index[v] {
				var members []string
				for {
					w := stack[len(stack)-1]
					stack = stack[:len(stack)-1]
					onStack[w] = false
					members = append(members, w)
					if w == v {
						break
					}
				}
				components = append(components, StronglyConnectedComponent{
					ID:    fmt.Sprintf("scc-%d", len(components)),
					Nodes: members,
					Size:  len(members),
				})
			}

			if len(work) > 0 {
				parent := work[len(work)-1].id
				if lowlink[v] < lowlink[parent] {
					lowlink[parent] = lowlink[v]
				}
			}
		}
	}

	return components
}

// CountCycles returns the number of components with more than one member.
func CountCycles(components []StronglyConnectedComponent) int {
	n := 0
	for _, c := range components {
		if c.IsCycle() {
			n++
		}
	}
	return n
}

// Cycles returns only the components that form cycles.
func Cycles(components []StronglyConnectedComponent) []StronglyConnectedComponent {
	var out []StronglyConnectedComponent
	for _, c := range components {
		if c.IsCycle() {
			out = append(out, c)
		}
	}
	return out
}
