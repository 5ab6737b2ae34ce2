package dsl

import (
	"errors"
	"fmt"

	"github.com/drelynlikescode26/callflow-assist/pkg/domain"
	"github.com/drelynlikescode26/callflow-assist/pkg/schema"
)

// Builder manages the graph construction.
type Builder struct {
	start     string
	order     []string
	nodes     map[string]*NodeBuilder
	pricing   domain.LookupTable
	inserts   domain.LookupTable
	redirects []domain.RedirectRule
	errs      []error
}

// New creates a new graph builder.
func New() *Builder {
	return &Builder{
		nodes: make(map[string]*NodeBuilder),
	}
}

// Start sets the start node. Defaults to domain.DefaultStartNodeID.
func (b *Builder) Start(id string) *Builder {
	b.start = id
	return b
}

// Add creates a new node in the graph.
// If the node already exists, it returns the existing builder.
func (b *Builder) Add(id string) *NodeBuilder {
	if nb, ok := b.nodes[id]; ok {
		return nb
	}
	nb := &NodeBuilder{
		node: domain.Node{
			ID: id,
		},
		builder: b,
	}
	b.nodes[id] = nb
	b.order = append(b.order, id)
	return nb
}

// Pricing adds an entry to the pricing table, e.g. ("fiber", "starting", "$55/mo").
func (b *Builder) Pricing(category, key, value string) *Builder {
	b.pricing = setEntry(b.pricing, category, key, value)
	return b
}

// Insert adds an entry to the conditional insert table, e.g. ("55plus", "wireless", "...").
func (b *Builder) Insert(category, key, value string) *Builder {
	b.inserts = setEntry(b.inserts, category, key, value)
	return b
}

// Redirect appends a redirection rule. Declaring any rule replaces the
// engine defaults for the built graph.
func (b *Builder) Redirect(name, target, when, to string) *Builder {
	b.redirects = append(b.redirects, domain.RedirectRule{Name: name, Target: target, When: when, To: to})
	return b
}

// Build assembles and checks the graph.
// Structural problems are reported as a *domain.ConfigError.
func (b *Builder) Build() (*domain.Graph, error) {
	if len(b.errs) > 0 {
		return nil, &domain.ConfigError{Reason: "graph builder", Err: errors.Join(b.errs...)}
	}

	g := &domain.Graph{
		StartNodeID: b.start,
		Nodes:       make(map[string]domain.Node, len(b.nodes)),
		Pricing:     b.pricing,
		Inserts:     b.inserts,
		Redirects:   b.redirects,
	}
	for _, id := range b.order {
		g.Nodes[id] = b.nodes[id].Build()
	}
	if g.StartNodeID == "" {
		g.StartNodeID = domain.DefaultStartNodeID
	}

	if err := schema.CheckGraph(g); err != nil {
		return nil, &domain.ConfigError{Reason: "graph failed validation", Err: err}
	}
	return g, nil
}

func (b *Builder) fail(format string, args ...any) {
	b.errs = append(b.errs, fmt.Errorf(format, args...))
}

func setEntry(t domain.LookupTable, category, key, value string) domain.LookupTable {
	if t == nil {
		t = make(domain.LookupTable)
	}
	if t[category] == nil {
		t[category] = make(map[string]string)
	}
	t[category][key] = value
	return t
}
