// Package smells flags structural warnings in a built dependency graph:
// types provided from several modules, god objects and bottlenecks.
// Findings are heuristics, not correctness errors, and carry no severity.
package smells

// Type classifies a finding.
type Type string

const (
	TypeDuplicateProviders Type = "duplicate_providers"
	TypeHighFanOut         Type = "high_fan_out"
	TypeHighFanIn          Type = "high_fan_in"
)

// Fixed rule thresholds. A node is flagged when its degree exceeds them.
const (
	FanOutThreshold = 5
	FanInThreshold  = 5
)

// Finding is a single smell with the nodes it refers to.
type Finding struct {
	Type        Type     `json:"type"`
	Description string   `json:"description"`
	NodeIDs     []string `json:"nodeIds"`
}

// CountByType tallies findings per type.
func CountByType(findings []Finding) map[Type]int {
	counts := make(map[Type]int)
	for _, f := range findings {
		counts[f.Type]++
	}
	return counts
}
