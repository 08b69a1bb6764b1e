package smells

import "github.com/depscope/depscope/pkg/graph"

// Rule is the interface that all smell rules implement.
type Rule interface {
	// Key returns the finding type the rule emits.
	Key() Type
	// Name returns the human-readable rule name.
	Name() string
	// Evaluate returns the rule's findings for g, in node order.
	Evaluate(g *graph.Graph) []Finding
}

// Detector runs a fixed list of rules against a graph.
type Detector struct {
	rules []Rule
}

// NewDetector creates a detector with the given rules.
func NewDetector(rules ...Rule) *Detector {
	return &Detector{rules: rules}
}

// DefaultRules returns the standard rule set in reporting order.
func DefaultRules() []Rule {
	return []Rule{
		DuplicateProvidersRule{},
		HighFanOutRule{},
		HighFanInRule{},
	}
}

// Detect evaluates every rule in order and concatenates their findings.
// The result is never nil.
func (d *Detector) Detect(g *graph.Graph) []Finding {
	findings := []Finding{}
	for _, r := range d.rules {
		findings = append(findings, r.Evaluate(g)...)
	}
	return findings
}

// Detect runs the default rule set.
func Detect(g *graph.Graph) []Finding {
	return NewDetector(DefaultRules()...).Detect(g)
}
