package memory

import (
	"context"

	"github.com/drelynlikescode26/callflow-assist/pkg/domain"
	"github.com/drelynlikescode26/callflow-assist/pkg/schema"
)

// Loader implements ports.GraphLoader over a graph built in memory.
type Loader struct {
	graph *domain.Graph
}

// NewLoader wraps g. The graph is checked on every Load.
func NewLoader(g *domain.Graph) *Loader {
	return &Loader{graph: g}
}

// Load checks and returns the wrapped graph.
func (l *Loader) Load(ctx context.Context) (*domain.Graph, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := schema.CheckGraph(l.graph); err != nil {
		return nil, &domain.ConfigError{Reason: "graph failed validation", Err: err}
	}
	return l.graph, nil
}
