package graphquery

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/depscope/depscope/pkg/graph"
)

// testGraph builds a small DI graph:
//
//	Service.repo --needs--> Repo <--provides-- Repo.<init> --requires--> DB
//	DB.<init> --provides--> DB
//	Cache (isolated, module "infra")
func testGraph() *graph.Graph {
	return graph.Build(&graph.Document{
		Types: []graph.TypeEntry{
			{ID: "app.Repo", Module: "data", Package: "app"},
			{ID: "app.DB", Module: "data", Package: "app"},
			{ID: "infra.Cache", Module: "infra", Package: "infra"},
		},
		Providers: []graph.ProviderEntry{
			{ID: "app.Repo.<init>", Type: "app.Repo", Owner: "app.Repo", Module: "data", Requires: []string{"app.DB"}},
			{ID: "app.DB.<init>", Type: "app.DB", Owner: "app.DB", Module: "data"},
		},
		Consumers: []graph.ConsumerEntry{
			{ID: "app.Service.repo", Needs: "app.Repo", Owner: "app.Service", Module: "web"},
		},
		Edges: []graph.EdgeEntry{
			{From: "app.Service.repo", To: "app.Repo", Kind: graph.EdgeNeeds},
			{From: "app.Repo.<init>", To: "app.Repo", Kind: graph.EdgeProvides},
			{From: "app.Repo.<init>", To: "app.DB", Kind: graph.EdgeRequires},
			{From: "app.DB.<init>", To: "app.DB", Kind: graph.EdgeProvides},
		},
	})
}

// chain builds type nodes connected by requires edges given as pairs.
func chain(ids []string, edges ...[2]string) *graph.Graph {
	doc := &graph.Document{}
	for _, id := range ids {
		doc.Types = append(doc.Types, graph.TypeEntry{ID: id})
	}
	for _, e := range edges {
		doc.Edges = append(doc.Edges, graph.EdgeEntry{From: e[0], To: e[1], Kind: graph.EdgeRequires})
	}
	return graph.Build(doc)
}

func ids(nodes []graph.Node) []string {
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = n.ID
	}
	return out
}

func TestShortestPath(t *testing.T) {
	g := chain(
		[]string{"A", "B", "C", "D", "X"},
		[2]string{"A", "B"}, [2]string{"B", "C"}, [2]string{"C", "D"},
	)

	t.Run("chain", func(t *testing.T) {
		path, ok := ShortestPath(g, "A", "D")
		require.True(t, ok)
		assert.Equal(t, []string{"A", "B", "C", "D"}, path)
	})

	t.Run("disconnected", func(t *testing.T) {
		path, ok := ShortestPath(g, "A", "X")
		assert.False(t, ok)
		assert.Nil(t, path)
	})

	t.Run("against edge direction", func(t *testing.T) {
		_, ok := ShortestPath(g, "D", "A")
		assert.False(t, ok)
	})

	t.Run("same node", func(t *testing.T) {
		path, ok := ShortestPath(g, "B", "B")
		require.True(t, ok)
		assert.Equal(t, []string{"B"}, path)
	})

	t.Run("prefers fewer hops", func(t *testing.T) {
		g := chain(
			[]string{"A", "B", "C", "D"},
			[2]string{"A", "B"}, [2]string{"B", "C"}, [2]string{"C", "D"}, [2]string{"A", "D"},
		)
		path, ok := ShortestPath(g, "A", "D")
		require.True(t, ok)
		assert.Equal(t, []string{"A", "D"}, path)
	})

	t.Run("through a cycle", func(t *testing.T) {
		g := chain(
			[]string{"A", "B", "C"},
			[2]string{"A", "B"}, [2]string{"B", "A"}, [2]string{"B", "C"},
		)
		path, ok := ShortestPath(g, "A", "C")
		require.True(t, ok)
		assert.Equal(t, []string{"A", "B", "C"}, path)
	})
}

func TestApply(t *testing.T) {
	g := testGraph()

	tests := []struct {
		name      string
		filter    Filter
		wantNodes []string
		wantEdges int
	}{
		{
			name:      "empty filter keeps everything",
			filter:    Filter{},
			wantNodes: g.NodeIDs(),
			wantEdges: 4,
		},
		{
			name:      "search is case-insensitive on label",
			filter:    Filter{Search: "REPO"},
			wantNodes: []string{"app.Repo", "app.Repo.<init>", "app.Service.repo"},
			wantEdges: 2,
		},
		{
			name:      "node kinds",
			filter:    Filter{NodeKinds: []graph.NodeKind{graph.KindType}},
			wantNodes: []string{"app.Repo", "app.DB", "infra.Cache"},
			wantEdges: 0,
		},
		{
			name:      "edge kinds keep nodes",
			filter:    Filter{EdgeKinds: []graph.EdgeKind{graph.EdgeProvides}},
			wantNodes: g.NodeIDs(),
			wantEdges: 2,
		},
		{
			name:      "modules",
			filter:    Filter{Modules: []string{"data"}},
			wantNodes: []string{"app.Repo", "app.DB", "app.Repo.<init>", "app.DB.<init>"},
			wantEdges: 3,
		},
		{
			name:      "packages skip nodes without one",
			filter:    Filter{Packages: []string{"infra"}},
			wantNodes: []string{"infra.Cache", "app.Repo.<init>", "app.DB.<init>", "app.Service.repo"},
			wantEdges: 0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Apply(g, tt.filter)
			assert.Equal(t, tt.wantNodes, ids(result.Nodes))
			assert.Len(t, result.Edges, tt.wantEdges)

			kept := make(map[string]bool)
			for _, n := range result.Nodes {
				kept[n.ID] = true
			}
			for _, e := range result.Edges {
				assert.True(t, kept[e.Source] && kept[e.Target], "edge %s has a filtered endpoint", e.ID)
			}
		})
	}
}

func TestNeighborhood(t *testing.T) {
	g := testGraph()

	t.Run("deps depth 1", func(t *testing.T) {
		result := Neighborhood(g, "app.Repo.<init>", 1, DirectionDeps, 0)
		assert.Equal(t, []string{"app.Repo", "app.DB", "app.Repo.<init>"}, ids(result.Nodes))
		assert.Len(t, result.Edges, 2)
		assert.False(t, result.Truncated)
	})

	t.Run("rdeps depth 2", func(t *testing.T) {
		result := Neighborhood(g, "app.DB", 2, DirectionRdeps, 0)
		assert.Equal(t, []string{"app.DB", "app.Repo.<init>", "app.DB.<init>"}, ids(result.Nodes))
	})

	t.Run("both directions", func(t *testing.T) {
		result := Neighborhood(g, "app.Repo", 1, "", 0)
		assert.Equal(t, []string{"app.Repo", "app.Repo.<init>", "app.Service.repo"}, ids(result.Nodes))
	})

	t.Run("owner match", func(t *testing.T) {
		result := Neighborhood(g, "app.Service", 0, DirectionBoth, 0)
		assert.Equal(t, []string{"app.Service.repo"}, ids(result.Nodes))
	})

	t.Run("package match", func(t *testing.T) {
		result := Neighborhood(g, "infra", 3, DirectionBoth, 0)
		assert.Equal(t, []string{"infra.Cache"}, ids(result.Nodes))
	})

	t.Run("unknown target", func(t *testing.T) {
		result := Neighborhood(g, "nope", 3, DirectionBoth, 0)
		assert.Empty(t, result.Nodes)
		assert.Empty(t, result.Edges)
	})

	t.Run("truncated", func(t *testing.T) {
		result := Neighborhood(g, "app.Repo", 5, DirectionBoth, 2)
		assert.Len(t, result.Nodes, 2)
		assert.True(t, result.Truncated)
	})
}
