package graph

import (
	"encoding/json"
	"fmt"
)

// nodeJSON is the flat wire shape of a node consumed by presentation layers.
type nodeJSON struct {
	ID       string   `json:"id"`
	Label    string   `json:"label"`
	Kind     NodeKind `json:"kind"`
	Module   string   `json:"module,omitempty"`
	Package  string   `json:"package,omitempty"`
	Owner    string   `json:"owner,omitempty"`
	Provides string   `json:"provides,omitempty"`
	Requires []string `json:"requires,omitempty"`
	Needs    string   `json:"needs,omitempty"`
	FanIn    int      `json:"fanIn"`
	FanOut   int      `json:"fanOut"`
}

// MarshalJSON flattens the detail variant into provides/requires/needs fields.
func (n Node) MarshalJSON() ([]byte, error) {
	out := nodeJSON{
		ID:      n.ID,
		Label:   n.Label,
		Kind:    n.Kind(),
		Module:  n.Module,
		Package: n.Package,
		Owner:   n.Owner,
		FanIn:   n.FanIn,
		FanOut:  n.FanOut,
	}
	switch d := n.Detail.(type) {
	case ProviderDetail:
		out.Provides = d.ProvidesType
		out.Requires = d.Requires
	case ConsumerDetail:
		out.Needs = d.NeedsType
	}
	return json.Marshal(out)
}

// UnmarshalJSON restores the detail variant from the kind discriminant.
func (n *Node) UnmarshalJSON(data []byte) error {
	var in nodeJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}

	var detail Detail
	switch in.Kind {
	case KindType:
		detail = TypeDetail{}
	case KindProvider:
		detail = ProviderDetail{ProvidesType: in.Provides, Requires: in.Requires}
	case KindConsumer:
		detail = ConsumerDetail{NeedsType: in.Needs}
	default:
		return fmt.Errorf("node %q: unknown kind %q", in.ID, in.Kind)
	}

	*n = Node{
		ID:      in.ID,
		Label:   in.Label,
		Module:  in.Module,
		Package: in.Package,
		Owner:   in.Owner,
		Detail:  detail,
		FanIn:   in.FanIn,
		FanOut:  in.FanOut,
	}
	return nil
}
