package graph

import (
	"fmt"
	"strings"
)

// Build normalizes a scanner document into a Graph, computing fan-in,
// fan-out and summary metrics. It is total and deterministic.
//
// Nodes are created from types, then providers, then consumers. A later
// entry whose id collides with an earlier one replaces it in place (last
// write wins). Edges that reference unknown ids are kept, but their fan
// contributions on the missing side are dropped.
func Build(doc *Document) *Graph {
	g := &Graph{index: make(map[string]int)}
	if doc == nil {
		g.Modules = []string{}
		g.Packages = []string{}
		g.Nodes = []Node{}
		g.Edges = []Edge{}
		return g
	}

	put := func(n Node) {
		if i, ok := g.index[n.ID]; ok {
			g.Nodes[i] = n
			return
		}
		g.index[n.ID] = len(g.Nodes)
		g.Nodes = append(g.Nodes, n)
	}

	for _, t := range doc.Types {
		put(Node{
			ID:      t.ID,
			Label:   Label(t.ID),
			Module:  t.Module,
			Package: t.Package,
			Detail:  TypeDetail{},
		})
	}
	for _, p := range doc.Providers {
		put(Node{
			ID:     p.ID,
			Label:  Label(p.ID),
			Module: p.Module,
			Owner:  p.Owner,
			Detail: ProviderDetail{ProvidesType: p.Type, Requires: p.Requires},
		})
	}
	for _, c := range doc.Consumers {
		put(Node{
			ID:     c.ID,
			Label:  Label(c.ID),
			Module: c.Module,
			Owner:  c.Owner,
			Detail: ConsumerDetail{NeedsType: c.Needs},
		})
	}

	g.Edges = make([]Edge, 0, len(doc.Edges))
	for i, e := range doc.Edges {
		g.Edges = append(g.Edges, Edge{
			ID:     fmt.Sprintf("edge-%d", i),
			Source: e.From,
			Target: e.To,
			Kind:   e.Kind,
		})
		if si, ok := g.index[e.From]; ok {
			g.Nodes[si].FanOut++
		}
		if ti, ok := g.index[e.To]; ok {
			g.Nodes[ti].FanIn++
		}
	}
	if g.Nodes == nil {
		g.Nodes = []Node{}
	}

	g.Modules = distinct(g.Nodes, func(n Node) string { return n.Module })
	g.Packages = distinct(g.Nodes, func(n Node) string { return n.Package })

	g.Metrics = Metrics{
		NodeCount:    len(g.Nodes),
		EdgeCount:    len(g.Edges),
		ModuleCount:  len(g.Modules),
		PackageCount: len(g.Packages),
		CycleCount:   CountCycles(StronglyConnectedComponents(g)),
		MaxDepth:     MaxDepth(g),
	}

	return g
}

// Label derives a short display name from a dotted id: the last two
// segments as "Owner.Member", with a "<init>" member collapsing to "Owner".
// Ids without a dot are returned unchanged.
func Label(id string) string {
	parts := strings.Split(id, ".")
	if len(parts) < 2 {
		return id
	}
	owner := parts[len(parts)-2]
	member := parts[len(parts)-1]
	if member == "<init>" {
		return owner
	}
	return owner + "." + member
}

func distinct(nodes []Node, field func(Node) string) []string {
	seen := make(map[string]bool)
	out := []string{}
	for _, n := range nodes {
		v := field(n)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}
