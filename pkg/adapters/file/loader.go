package file

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/drelynlikescode26/callflow-assist/internal/logging"
	"github.com/drelynlikescode26/callflow-assist/pkg/domain"
	"github.com/drelynlikescode26/callflow-assist/pkg/schema"
	"gopkg.in/yaml.v3"
)

// Loader implements ports.GraphLoader over a single document on disk.
type Loader struct {
	path   string
	logger *slog.Logger
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithLogger sets the logger used to report load progress.
func WithLogger(logger *slog.Logger) LoaderOption {
	return func(l *Loader) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// NewLoader creates a loader for the document at path.
func NewLoader(path string, opts ...LoaderOption) *Loader {
	l := &Loader{path: path, logger: logging.NewNop()}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Path returns the document path.
func (l *Loader) Path() string {
	return l.path
}

// Load reads, validates and decodes the document.
func (l *Loader) Load(ctx context.Context) (*domain.Graph, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	raw, err := os.ReadFile(l.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read graph document: %w", err)
	}
	g, err := Parse(raw)
	if err != nil {
		return nil, err
	}
	l.logger.Debug("graph loaded", "path", l.path, "nodes", len(g.Nodes), "start", g.StartNodeID)
	return g, nil
}

// Parse decodes a YAML or JSON graph document. The document is checked
// against the graph JSON Schema and then structurally; any failure is a
// *domain.ConfigError.
func Parse(raw []byte) (*domain.Graph, error) {
	doc, err := schema.DecodeDocument(raw)
	if err != nil {
		return nil, &domain.ConfigError{Reason: "malformed graph document", Err: err}
	}
	if err := schema.ValidateDocument(doc); err != nil {
		return nil, &domain.ConfigError{Reason: "graph document failed schema validation", Err: err}
	}

	var g domain.Graph
	if err := yaml.Unmarshal(raw, &g); err != nil {
		return nil, &domain.ConfigError{Reason: "malformed graph document", Err: err}
	}
	if g.StartNodeID == "" {
		g.StartNodeID = domain.DefaultStartNodeID
	}
	for id, n := range g.Nodes {
		if n.ID == "" {
			n.ID = id
			g.Nodes[id] = n
		}
	}

	if err := schema.CheckGraph(&g); err != nil {
		return nil, &domain.ConfigError{Reason: "graph document is inconsistent", Err: err}
	}
	return &g, nil
}
