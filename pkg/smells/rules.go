package smells

import (
	"fmt"
	"strings"

	"github.com/depscope/depscope/pkg/graph"
)

// DuplicateProvidersRule flags types supplied by more than one provider when
// those providers live in more than one module.
type DuplicateProvidersRule struct{}

func (DuplicateProvidersRule) Key() Type    { return TypeDuplicateProviders }
func (DuplicateProvidersRule) Name() string { return "Duplicate providers" }

func (r DuplicateProvidersRule) Evaluate(g *graph.Graph) []Finding {
	var order []string
	groups := make(map[string][]graph.Node)
	for _, n := range g.Nodes {
		p, ok := n.Provider()
		if !ok || p.ProvidesType == "" {
			continue
		}
		if _, seen := groups[p.ProvidesType]; !seen {
			order = append(order, p.ProvidesType)
		}
		groups[p.ProvidesType] = append(groups[p.ProvidesType], n)
	}

	var findings []Finding
	for _, typ := range order {
		providers := groups[typ]
		if len(providers) < 2 {
			continue
		}

		var modules []string
		seen := make(map[string]bool)
		for _, p := range providers {
			if p.Module == "" || seen[p.Module] {
				continue
			}
			seen[p.Module] = true
			modules = append(modules, p.Module)
		}
		if len(modules) < 2 {
			continue
		}

		ids := make([]string, len(providers))
		for i, p := range providers {
			ids[i] = p.ID
		}
		findings = append(findings, Finding{
			Type:        r.Key(),
			Description: fmt.Sprintf("Multiple providers for %s across modules: %s", typ, strings.Join(modules, ", ")),
			NodeIDs:     ids,
		})
	}
	return findings
}

// HighFanOutRule flags nodes with too many outgoing edges (god objects).
type HighFanOutRule struct{}

func (HighFanOutRule) Key() Type    { return TypeHighFanOut }
func (HighFanOutRule) Name() string { return "High fan-out" }

func (r HighFanOutRule) Evaluate(g *graph.Graph) []Finding {
	var findings []Finding
	for _, n := range g.Nodes {
		if n.FanOut <= FanOutThreshold {
			continue
		}
		findings = append(findings, Finding{
			Type:        r.Key(),
			Description: fmt.Sprintf("High fan-out (%d) suggests potential god object", n.FanOut),
			NodeIDs:     []string{n.ID},
		})
	}
	return findings
}

// HighFanInRule flags nodes with too many incoming edges (bottlenecks).
type HighFanInRule struct{}

func (HighFanInRule) Key() Type    { return TypeHighFanIn }
func (HighFanInRule) Name() string { return "High fan-in" }

func (r HighFanInRule) Evaluate(g *graph.Graph) []Finding {
	var findings []Finding
	for _, n := range g.Nodes {
		if n.FanIn <= FanInThreshold {
			continue
		}
		findings = append(findings, Finding{
			Type:        r.Key(),
			Description: fmt.Sprintf("High fan-in (%d) suggests potential bottleneck", n.FanIn),
			NodeIDs:     []string{n.ID},
		})
	}
	return findings
}
