package graph

// Document is the raw graph export produced by the external scanner.
// It is validated at the boundary (see ParseDocument) before Build sees it.
type Document struct {
	Types     []TypeEntry      `json:"types" yaml:"types" validate:"dive"`
	Providers []ProviderEntry  `json:"providers" yaml:"providers" validate:"dive"`
	Consumers []ConsumerEntry  `json:"consumers" yaml:"consumers" validate:"dive"`
	Edges     []EdgeEntry      `json:"edges" yaml:"edges" validate:"dive"`
	Metrics   *AdvisoryMetrics `json:"metrics,omitempty" yaml:"metrics,omitempty"`
}

// TypeEntry describes a dependency type, e.g. "com.example.User".
type TypeEntry struct {
	ID      string `json:"id" yaml:"id" validate:"required"`
	Module  string `json:"module,omitempty" yaml:"module,omitempty"`
	Package string `json:"package,omitempty" yaml:"package,omitempty"`
}

// ProviderEntry describes something that supplies a type, e.g. "User.<init>".
type ProviderEntry struct {
	ID       string   `json:"id" yaml:"id" validate:"required"`
	Type     string   `json:"type" yaml:"type" validate:"required"`
	Owner    string   `json:"owner" yaml:"owner" validate:"required"`
	Module   string   `json:"module,omitempty" yaml:"module,omitempty"`
	Requires []string `json:"requires" yaml:"requires"`
}

// ConsumerEntry describes an injection site, e.g. "UserService.user".
type ConsumerEntry struct {
	ID     string `json:"id" yaml:"id" validate:"required"`
	Needs  string `json:"needs" yaml:"needs" validate:"required"`
	Owner  string `json:"owner" yaml:"owner" validate:"required"`
	Module string `json:"module,omitempty" yaml:"module,omitempty"`
}

// EdgeEntry is a raw edge between two ids.
type EdgeEntry struct {
	From string   `json:"from" yaml:"from" validate:"required"`
	To   string   `json:"to" yaml:"to" validate:"required"`
	Kind EdgeKind `json:"kind" yaml:"kind" validate:"required,oneof=provides requires needs"`
}

// AdvisoryMetrics are counts the scanner may include for convenience.
// They are never trusted; Build recomputes everything.
type AdvisoryMetrics struct {
	GeneratedAt string `json:"generatedAt,omitempty" yaml:"generatedAt,omitempty"`
	ModuleCount *int   `json:"moduleCount,omitempty" yaml:"moduleCount,omitempty"`
	NodeCount   *int   `json:"nodeCount,omitempty" yaml:"nodeCount,omitempty"`
	EdgeCount   *int   `json:"edgeCount,omitempty" yaml:"edgeCount,omitempty"`
}
