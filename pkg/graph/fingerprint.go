package graph

import (
	"fmt"
	"strconv"

	"github.com/cespare/xxhash/v2"
)

// Fingerprint returns a stable hex digest of a graph's node and edge
// content. Two graphs built from equivalent documents share a fingerprint;
// synthetic edge ids do not participate.
func Fingerprint(g *Graph) string {
	h := xxhash.New()
	write := func(fields ...string) {
		for _, f := range fields {
			_, _ = h.WriteString(f)
			_, _ = h.Write([]byte{0})
		}
		_, _ = h.Write([]byte{'\n'})
	}

	for _, n := range g.Nodes {
		write("n", n.ID, string(n.Kind()), n.Module, n.Package, n.Owner)
		switch d := n.Detail.(type) {
		case ProviderDetail:
			write(append([]string{"p", d.ProvidesType, strconv.Itoa(len(d.Requires))}, d.Requires...)...)
		case ConsumerDetail:
			write("c", d.NeedsType)
		}
	}
	for _, e := range g.Edges {
		write("e", e.Source, e.Target, string(e.Kind))
	}

	return fmt.Sprintf("%016x", h.Sum64())
}
