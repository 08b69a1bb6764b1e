// Package graph defines the structural data model for depscope: the
// dependency-injection graph built from a scanner document, plus the
// builder, connectivity primitives and snapshot diffing that operate on it.
// These types are the shared vocabulary across all modules.
package graph

import (
	"slices"
	"sync"
)

// NodeKind discriminates the three node variants.
type NodeKind string

const (
	KindType     NodeKind = "type"
	KindProvider NodeKind = "provider"
	KindConsumer NodeKind = "consumer"
)

// EdgeKind classifies a dependency relationship.
type EdgeKind string

const (
	EdgeProvides EdgeKind = "provides"
	EdgeRequires EdgeKind = "requires"
	EdgeNeeds    EdgeKind = "needs"
)

// Detail is the kind-specific payload of a node. The concrete type decides
// the node's kind, so a type node can never carry provider fields.
type Detail interface {
	Kind() NodeKind
	equal(other Detail) bool
}

// TypeDetail marks a node as a dependency type. It carries no payload.
type TypeDetail struct{}

func (TypeDetail) Kind() NodeKind { return KindType }

func (TypeDetail) equal(other Detail) bool {
	_, ok := other.(TypeDetail)
	return ok
}

// ProviderDetail is the payload of something that supplies a dependency.
type ProviderDetail struct {
	ProvidesType string
	Requires     []string // constructor parameter types (fqName)
}

func (ProviderDetail) Kind() NodeKind { return KindProvider }

func (d ProviderDetail) equal(other Detail) bool {
	o, ok := other.(ProviderDetail)
	return ok && o.ProvidesType == d.ProvidesType && slices.Equal(o.Requires, d.Requires)
}

// ConsumerDetail is the payload of something that requires a dependency.
type ConsumerDetail struct {
	NeedsType string
}

func (ConsumerDetail) Kind() NodeKind { return KindConsumer }

func (d ConsumerDetail) equal(other Detail) bool {
	o, ok := other.(ConsumerDetail)
	return ok && o.NeedsType == d.NeedsType
}

// Node is a single vertex of the dependency graph.
// FanIn and FanOut are derived by the builder and never change afterwards.
type Node struct {
	ID      string // fully-qualified name, unique within a graph
	Label   string // short display name, see Label
	Module  string
	Package string
	Owner   string
	Detail  Detail
	FanIn   int
	FanOut  int
}

// Kind returns the node kind implied by its detail.
func (n Node) Kind() NodeKind {
	if n.Detail == nil {
		return ""
	}
	return n.Detail.Kind()
}

// Provider returns the provider payload when the node is a provider.
func (n Node) Provider() (ProviderDetail, bool) {
	d, ok := n.Detail.(ProviderDetail)
	return d, ok
}

// Consumer returns the consumer payload when the node is a consumer.
func (n Node) Consumer() (ConsumerDetail, bool) {
	d, ok := n.Detail.(ConsumerDetail)
	return d, ok
}

// Equal reports whether two nodes have the same full attribute record,
// derived counters included.
func (n Node) Equal(o Node) bool {
	if n.ID != o.ID || n.Label != o.Label || n.Module != o.Module ||
		n.Package != o.Package || n.Owner != o.Owner ||
		n.FanIn != o.FanIn || n.FanOut != o.FanOut {
		return false
	}
	if n.Detail == nil || o.Detail == nil {
		return n.Detail == nil && o.Detail == nil
	}
	return n.Detail.equal(o.Detail)
}

// Edge represents a dependency relationship between two nodes.
// Endpoints are not guaranteed to exist in the graph.
type Edge struct {
	ID     string   `json:"id"`     // synthetic: "edge-<ordinal>"
	Source string   `json:"source"` // source node id
	Target string   `json:"target"` // target node id
	Kind   EdgeKind `json:"kind"`
}

// EdgeKey identifies an edge for set operations, ignoring its synthetic id.
type EdgeKey struct {
	Source string
	Target string
	Kind   EdgeKind
}

// Key returns the (source, target, kind) identity of the edge.
func (e Edge) Key() EdgeKey {
	return EdgeKey{Source: e.Source, Target: e.Target, Kind: e.Kind}
}

// Metrics holds summary counts for a built graph. All values are
// recomputed by the builder; advisory counts in the input are ignored.
type Metrics struct {
	NodeCount    int `json:"nodeCount"`
	EdgeCount    int `json:"edgeCount"`
	ModuleCount  int `json:"moduleCount"`
	PackageCount int `json:"packageCount"`
	CycleCount   int `json:"cycleCount"`
	MaxDepth     int `json:"maxDepth"`
}

// Graph is the canonical in-memory representation of one snapshot.
// Graphs are immutable once built; callers must not modify the slices.
type Graph struct {
	Nodes    []Node   `json:"nodes"`
	Edges    []Edge   `json:"edges"`
	Modules  []string `json:"modules"`
	Packages []string `json:"packages"`
	Metrics  Metrics  `json:"metrics"`

	index     map[string]int
	indexOnce sync.Once
}

// Node looks up a node by id.
func (g *Graph) Node(id string) (Node, bool) {
	i, ok := g.lookup()[id]
	if !ok {
		return Node{}, false
	}
	return g.Nodes[i], true
}

// HasNode reports whether id names a node of the graph.
func (g *Graph) HasNode(id string) bool {
	_, ok := g.lookup()[id]
	return ok
}

// lookup returns the id index. Graphs assembled by hand or decoded from
// JSON get theirs built once, on first use.
func (g *Graph) lookup() map[string]int {
	g.indexOnce.Do(func() {
		if g.index != nil {
			return
		}
		g.index = make(map[string]int, len(g.Nodes))
		for i, n := range g.Nodes {
			g.index[n.ID] = i
		}
	})
	return g.index
}

// Adjacency returns a fresh directed adjacency list (source -> targets in
// edge order). Every node has an entry; sources that are not nodes are
// included as well.
func (g *Graph) Adjacency() map[string][]string {
	adj := make(map[string][]string, len(g.Nodes))
	for _, n := range g.Nodes {
		adj[n.ID] = nil
	}
	for _, e := range g.Edges {
		adj[e.Source] = append(adj[e.Source], e.Target)
	}
	return adj
}

// NodeIDs returns node ids in graph order.
func (g *Graph) NodeIDs() []string {
	ids := make([]string, len(g.Nodes))
	for i, n := range g.Nodes {
		ids[i] = n.ID
	}
	return ids
}
