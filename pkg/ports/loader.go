package ports

import (
	"context"

	"github.com/drelynlikescode26/callflow-assist/pkg/domain"
)

// GraphLoader defines how the host obtains the call-flow graph.
// The graph is loaded once, before any navigation call.
type GraphLoader interface {
	// Load returns a validated graph.
	// Malformed or inconsistent sources yield a *domain.ConfigError.
	Load(ctx context.Context) (*domain.Graph, error)
}
