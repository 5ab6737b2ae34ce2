package domain

import "sort"

// DefaultStartNodeID is used when a graph document does not declare a start node.
const DefaultStartNodeID = "opening"

// LookupTable is a two-level string table keyed by category, then by key.
// e.g. pricing["fiber"]["starting"] or inserts["55plus"]["wireless"].
type LookupTable map[string]map[string]string

// Lookup returns the entry for category/key.
func (t LookupTable) Lookup(category, key string) (string, bool) {
	if t == nil {
		return "", false
	}
	row, ok := t[category]
	if !ok {
		return "", false
	}
	v, ok := row[key]
	return v, ok
}

// RedirectRule substitutes a different node id before lookup when the
// requested id equals Target and the When predicate holds for the context.
type RedirectRule struct {
	Name   string `json:"name" yaml:"name"`
	Target string `json:"target" yaml:"target"`
	When   string `json:"when" yaml:"when"`
	To     string `json:"to" yaml:"to"`
}

// Graph is the scripted call. It is loaded once and never mutated.
type Graph struct {
	StartNodeID string          `json:"startNode" yaml:"startNode"`
	Nodes       map[string]Node `json:"nodes" yaml:"nodes"`
	Pricing     LookupTable     `json:"pricing,omitempty" yaml:"pricing,omitempty"`
	Inserts     LookupTable     `json:"conditionalInserts,omitempty" yaml:"conditionalInserts,omitempty"`

	// Redirects overrides the engine's default redirection rules when non-nil.
	Redirects []RedirectRule `json:"redirects,omitempty" yaml:"redirects,omitempty"`
}

// Node returns a deep copy of the node with the given id, so callers cannot
// reach the graph's maps or slices. The copy's ID is the map key when the
// node does not declare one.
func (g *Graph) Node(id string) (*Node, bool) {
	n, ok := g.Nodes[id]
	if !ok {
		return nil, false
	}
	n = n.Clone()
	if n.ID == "" {
		n.ID = id
	}
	return &n, true
}

// NodeIDs returns all node ids in deterministic order.
func (g *Graph) NodeIDs() []string {
	ids := make([]string, 0, len(g.Nodes))
	for id := range g.Nodes {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
