package callflow

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/drelynlikescode26/callflow-assist/internal/logging"
	"github.com/drelynlikescode26/callflow-assist/internal/runtime"
	"github.com/drelynlikescode26/callflow-assist/pkg/adapters/file"
	"github.com/drelynlikescode26/callflow-assist/pkg/adapters/memory"
	"github.com/drelynlikescode26/callflow-assist/pkg/domain"
	"github.com/drelynlikescode26/callflow-assist/pkg/ports"
	"github.com/drelynlikescode26/callflow-assist/pkg/summary"
)

// Engine is the high-level entry point of the library.
// It wraps the internal runtime and the graph source it was loaded from.
type Engine struct {
	runtime     *runtime.Engine
	loader      ports.GraphLoader
	runtimeOpts []runtime.EngineOption
	hooks       domain.LifecycleHooks
	logger      *slog.Logger
	Name        string
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithLoader injects a custom GraphLoader, bypassing the document loader.
func WithLoader(l ports.GraphLoader) Option {
	return func(e *Engine) {
		e.loader = l
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithRedirectRules replaces the default and document redirection rules.
func WithRedirectRules(rules []domain.RedirectRule) Option {
	return func(e *Engine) {
		e.runtimeOpts = append(e.runtimeOpts, runtime.WithRedirectRules(rules))
	}
}

// WithStrictEnums makes summaries fail on context values without a label.
func WithStrictEnums(strict bool) Option {
	return func(e *Engine) {
		e.runtimeOpts = append(e.runtimeOpts, runtime.WithStrictEnums(strict))
	}
}

// WithStickyFields names context fields kept across every reset.
func WithStickyFields(fields ...string) Option {
	return func(e *Engine) {
		e.runtimeOpts = append(e.runtimeOpts, runtime.WithStickyFields(fields...))
	}
}

// WithClock overrides the event timestamp source.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.runtimeOpts = append(e.runtimeOpts, runtime.WithClock(now))
	}
}

// WithCallIDGenerator overrides how call ids are minted.
func WithCallIDGenerator(gen func() string) Option {
	return func(e *Engine) {
		e.runtimeOpts = append(e.runtimeOpts, runtime.WithCallIDGenerator(gen))
	}
}

// New loads the graph document at path and returns an idle engine.
// If WithLoader is provided, path is only used as a descriptive name.
func New(path string, opts ...Option) (*Engine, error) {
	return newEngine(context.Background(), path, nil, opts)
}

// Load is New with a context for the graph load.
func Load(ctx context.Context, path string, opts ...Option) (*Engine, error) {
	return newEngine(ctx, path, nil, opts)
}

// NewFromGraph returns an idle engine over a graph built in code.
func NewFromGraph(g *domain.Graph, opts ...Option) (*Engine, error) {
	return newEngine(context.Background(), "", memory.NewLoader(g), opts)
}

func newEngine(ctx context.Context, path string, loader ports.GraphLoader, opts []Option) (*Engine, error) {
	eng := &Engine{loader: loader}
	for _, opt := range opts {
		opt(eng)
	}
	if eng.logger == nil {
		eng.logger = logging.NewNop()
	}

	if eng.loader == nil {
		if path == "" {
			return nil, fmt.Errorf("path is required when no custom loader is provided")
		}
		eng.loader = file.NewLoader(path, file.WithLogger(eng.logger))
	}
	if path != "" {
		eng.Name = filepath.Base(path)
		eng.logger = eng.logger.With("graph", eng.Name)
	}

	graph, err := eng.loader.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load graph: %w", err)
	}

	runtimeOpts := []runtime.EngineOption{
		runtime.WithLifecycleHooks(eng.hooks),
		runtime.WithLogger(eng.logger),
	}
	runtimeOpts = append(runtimeOpts, eng.runtimeOpts...)

	rt, err := runtime.NewEngine(graph, runtimeOpts...)
	if err != nil {
		return nil, err
	}
	eng.runtime = rt
	return eng, nil
}

// Start begins a new call from the start node with initial as the context.
func (e *Engine) Start(initial domain.CallContext) (*domain.ResolvedView, error) {
	return e.runtime.Start(initial)
}

// NavigateTo enters nodeID after applying redirection.
func (e *Engine) NavigateTo(nodeID string) (*domain.ResolvedView, error) {
	return e.runtime.NavigateTo(nodeID)
}

// Choose applies the option's context patch and follows it.
func (e *Engine) Choose(opt domain.Option) (*domain.ResolvedView, error) {
	return e.runtime.Choose(opt)
}

// ChooseIndex follows the i-th visible option of the current view.
func (e *Engine) ChooseIndex(i int) (*domain.ResolvedView, error) {
	return e.runtime.ChooseIndex(i)
}

// Back returns to the previous step with the context it had.
func (e *Engine) Back() (*domain.ResolvedView, error) {
	return e.runtime.Back()
}

// Reset abandons the call, keeping sticky fields and the named ones.
func (e *Engine) Reset(preserve ...string) error {
	return e.runtime.Reset(preserve...)
}

// Restart resets the call and starts it again.
func (e *Engine) Restart(preserve ...string) (*domain.ResolvedView, error) {
	return e.runtime.Restart(preserve...)
}

// View renders the current node again.
func (e *Engine) View() (*domain.ResolvedView, error) {
	return e.runtime.View()
}

// Summary returns the end-of-call summary; non-empty callNotes replace the
// notes stored in the context.
func (e *Engine) Summary(callNotes string) (*summary.Summary, error) {
	return e.runtime.Summary(callNotes)
}

// ShortSummary returns the one-line summary of the call so far.
func (e *Engine) ShortSummary() (string, error) {
	return e.runtime.ShortSummary()
}

// Context returns a copy of the live call context.
func (e *Engine) Context() domain.CallContext {
	return e.runtime.Context()
}

// State returns a copy of the navigation state.
func (e *Engine) State() domain.NavigationState {
	return e.runtime.State()
}

// Started reports whether a call is in progress.
func (e *Engine) Started() bool {
	return e.runtime.Started()
}

// Graph returns the loaded graph. Callers must not modify it.
func (e *Engine) Graph() *domain.Graph {
	return e.runtime.Graph()
}

// RedirectRules returns the effective redirection rules in evaluation order.
func (e *Engine) RedirectRules() []domain.RedirectRule {
	return e.runtime.RedirectRules()
}

// Loader returns the GraphLoader the engine was built from.
func (e *Engine) Loader() ports.GraphLoader {
	return e.loader
}
