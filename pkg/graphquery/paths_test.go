package graphquery

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLongestPaths(t *testing.T) {
	t.Run("no edges records nothing", func(t *testing.T) {
		g := chain([]string{"a", "b"})
		assert.Empty(t, LongestPaths(g, 5))
	})

	t.Run("chain", func(t *testing.T) {
		g := chain([]string{"a", "b", "c"}, [2]string{"a", "b"}, [2]string{"b", "c"})
		paths := LongestPaths(g, 5)
		require.Len(t, paths, 2)
		assert.Equal(t, Path{Path: []string{"a", "b", "c"}, Length: 3}, paths[0])
		assert.Equal(t, Path{Path: []string{"b", "c"}, Length: 2}, paths[1])
	})

	t.Run("ties keep discovery order", func(t *testing.T) {
		g := chain(
			[]string{"root", "x", "y"},
			[2]string{"root", "x"}, [2]string{"root", "y"},
		)
		paths := LongestPaths(g, 5)
		require.Len(t, paths, 2)
		assert.Equal(t, []string{"root", "x"}, paths[0].Path)
		assert.Equal(t, []string{"root", "y"}, paths[1].Path)
	})

	t.Run("cycle is cut at the repeated node", func(t *testing.T) {
		g := chain([]string{"a", "b"}, [2]string{"a", "b"}, [2]string{"b", "a"})
		paths := LongestPaths(g, 5)
		require.Len(t, paths, 2)
		assert.Equal(t, []string{"a", "b"}, paths[0].Path)
		assert.Equal(t, []string{"b", "a"}, paths[1].Path)
	})

	t.Run("top n", func(t *testing.T) {
		g := chain(
			[]string{"a", "b", "c", "d"},
			[2]string{"a", "b"}, [2]string{"b", "c"}, [2]string{"c", "d"},
		)
		paths := LongestPaths(g, 1)
		require.Len(t, paths, 1)
		assert.Equal(t, 4, paths[0].Length)
	})

	t.Run("default n", func(t *testing.T) {
		nodes := make([]string, 12)
		var edges [][2]string
		for i := range nodes {
			nodes[i] = fmt.Sprintf("n%02d", i)
			if i > 0 {
				edges = append(edges, [2]string{nodes[i-1], nodes[i]})
			}
		}
		paths := LongestPaths(chain(nodes, edges...), 0)
		require.Len(t, paths, DefaultLongestPaths)
		for i := 1; i < len(paths); i++ {
			assert.GreaterOrEqual(t, paths[i-1].Length, paths[i].Length)
		}
	})

	t.Run("paths never exceed the node cap", func(t *testing.T) {
		nodes := make([]string, 30)
		var edges [][2]string
		for i := range nodes {
			nodes[i] = fmt.Sprintf("n%02d", i)
			if i > 0 {
				edges = append(edges, [2]string{nodes[i-1], nodes[i]})
			}
		}
		paths := LongestPaths(chain(nodes, edges...), 5)
		for _, p := range paths {
			assert.LessOrEqual(t, p.Length, maxPathNodes)
		}
		// Roots n00..n09 are too far from the sink to reach a dead end within
		// the cap, so the longest recorded path starts at n10.
		require.NotEmpty(t, paths)
		assert.Equal(t, "n10", paths[0].Path[0])
		assert.Equal(t, 20, paths[0].Length)
	})

	t.Run("exploration stops starting roots", func(t *testing.T) {
		// a fan of 10 leaves under each of two roots; n=1 caps at 10 paths,
		// reached by the first root alone.
		ids := []string{"r1", "r2"}
		var edges [][2]string
		for i := 0; i < 10; i++ {
			leaf := fmt.Sprintf("l%d", i)
			ids = append(ids, leaf)
			edges = append(edges, [2]string{"r1", leaf}, [2]string{"r2", leaf})
		}
		paths := LongestPaths(chain(ids, edges...), 1)
		require.Len(t, paths, 1)
		assert.Equal(t, []string{"r1", "l0"}, paths[0].Path)
	})
}
