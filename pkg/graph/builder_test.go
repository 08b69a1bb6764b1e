package graph

import (
	"fmt"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testdataPath(name string) string {
	_, filename, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(filename), "..", "..", "testdata", name)
}

// chainDoc returns a document of type nodes named by ids, connected by
// "requires" edges given as from/to pairs.
func chainDoc(ids []string, edges ...[2]string) *Document {
	doc := &Document{}
	for _, id := range ids {
		doc.Types = append(doc.Types, TypeEntry{ID: id})
	}
	for _, e := range edges {
		doc.Edges = append(doc.Edges, EdgeEntry{From: e[0], To: e[1], Kind: EdgeRequires})
	}
	return doc
}

func TestBuild_Testdata(t *testing.T) {
	doc, err := LoadDocument(testdataPath("base.json"))
	require.NoError(t, err)

	g := Build(doc)

	assert.Equal(t, Metrics{
		NodeCount:    6,
		EdgeCount:    4,
		ModuleCount:  2,
		PackageCount: 2,
		CycleCount:   0,
		MaxDepth:     1,
	}, g.Metrics, "advisory metrics in the document must be ignored")
	assert.Equal(t, []string{"core", "app"}, g.Modules)
	assert.Equal(t, []string{"com.example.core", "com.example.app"}, g.Packages)

	user, ok := g.Node("com.example.core.User")
	require.True(t, ok)
	assert.Equal(t, KindType, user.Kind())
	assert.Equal(t, 2, user.FanIn)
	assert.Equal(t, 0, user.FanOut)

	repoInit, ok := g.Node("com.example.core.UserRepository.<init>")
	require.True(t, ok)
	assert.Equal(t, "UserRepository", repoInit.Label)
	p, ok := repoInit.Provider()
	require.True(t, ok)
	assert.Equal(t, "com.example.core.UserRepository", p.ProvidesType)
	assert.Equal(t, []string{"com.example.core.User"}, p.Requires)
	assert.Equal(t, 2, repoInit.FanOut)

	consumer, ok := g.Node("com.example.app.UserService.repository")
	require.True(t, ok)
	c, ok := consumer.Consumer()
	require.True(t, ok)
	assert.Equal(t, "com.example.core.UserRepository", c.NeedsType)
	assert.Equal(t, "com.example.app.UserService", consumer.Owner)

	for i, e := range g.Edges {
		assert.Equal(t, fmt.Sprintf("edge-%d", i), e.ID)
	}
}

func TestBuild_NilDocument(t *testing.T) {
	g := Build(nil)
	assert.Empty(t, g.Nodes)
	assert.Empty(t, g.Edges)
	assert.Equal(t, Metrics{}, g.Metrics)
}

func TestBuild_FanSumsMatchEdgeCount(t *testing.T) {
	doc := chainDoc(
		[]string{"a", "b", "c", "d"},
		[2]string{"a", "b"}, [2]string{"a", "c"}, [2]string{"b", "c"},
		[2]string{"c", "d"}, [2]string{"d", "a"}, [2]string{"a", "a"},
	)
	g := Build(doc)

	var in, out int
	for _, n := range g.Nodes {
		in += n.FanIn
		out += n.FanOut
	}
	assert.Equal(t, g.Metrics.EdgeCount, in)
	assert.Equal(t, g.Metrics.EdgeCount, out)
}

func TestBuild_DanglingEdges(t *testing.T) {
	doc := chainDoc([]string{"a"}, [2]string{"a", "ghost"}, [2]string{"phantom", "a"})
	g := Build(doc)

	require.Len(t, g.Edges, 2)
	a, _ := g.Node("a")
	assert.Equal(t, 1, a.FanOut)
	assert.Equal(t, 1, a.FanIn)
	assert.False(t, g.HasNode("ghost"))
	assert.Equal(t, 1, g.Metrics.NodeCount)
}

func TestBuild_DuplicateIDLastWriteWins(t *testing.T) {
	doc := &Document{
		Types: []TypeEntry{{ID: "x", Module: "types"}, {ID: "y"}},
		Providers: []ProviderEntry{
			{ID: "x", Type: "y", Owner: "x", Module: "providers"},
		},
	}
	g := Build(doc)

	require.Len(t, g.Nodes, 2)
	assert.Equal(t, "x", g.Nodes[0].ID, "replaced node keeps its first position")
	assert.Equal(t, KindProvider, g.Nodes[0].Kind())
	assert.Equal(t, "providers", g.Nodes[0].Module)
	assert.Equal(t, []string{"providers"}, g.Modules)
}

func TestLabel(t *testing.T) {
	tests := []struct {
		id   string
		want string
	}{
		{"com.example.UserService.repository", "UserService.repository"},
		{"com.example.User.<init>", "User"},
		{"com.example.User", "example.User"},
		{"User", "User"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			assert.Equal(t, tt.want, Label(tt.id))
		})
	}
}

func TestBuild_Deterministic(t *testing.T) {
	doc, err := LoadDocument(testdataPath("candidate.yaml"))
	require.NoError(t, err)

	a := Build(doc)
	b := Build(doc)
	assert.Equal(t, a.NodeIDs(), b.NodeIDs())
	assert.Equal(t, a.Edges, b.Edges)
	assert.Equal(t, Fingerprint(a), Fingerprint(b))
}
