package runtime

import (
	"log/slog"
	"time"

	"github.com/drelynlikescode26/callflow-assist/internal/logging"
	"github.com/drelynlikescode26/callflow-assist/pkg/domain"
	"github.com/drelynlikescode26/callflow-assist/pkg/schema"
	"github.com/drelynlikescode26/callflow-assist/pkg/script"
	"github.com/drelynlikescode26/callflow-assist/pkg/summary"
	"github.com/google/uuid"
)

// Engine walks a call-flow graph for a single call. It owns the live context
// and the navigation history; the graph is shared and never mutated.
//
// Every operation is atomic: it either completes and commits, or fails and
// leaves the engine exactly as it was. The engine is not safe for concurrent
// use; a host serializes calls.
type Engine struct {
	graph     *domain.Graph
	resolver  *script.Resolver
	summaries *summary.Generator
	rules     []compiledRule
	hooks     domain.LifecycleHooks
	logger    *slog.Logger
	sticky    []string
	strict    bool
	now       func() time.Time
	newCallID func() string

	customRules []domain.RedirectRule
	hasRules    bool

	started bool
	state   domain.NavigationState
	live    domain.CallContext
}

// EngineOption configures the Engine.
type EngineOption func(*Engine)

// WithLogger sets the structured logger. Defaults to a discard logger.
func WithLogger(logger *slog.Logger) EngineOption {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) EngineOption {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithRedirectRules replaces both the default rules and any rules declared
// by the graph document. An empty slice disables redirection.
func WithRedirectRules(rules []domain.RedirectRule) EngineOption {
	return func(e *Engine) {
		e.customRules = rules
		e.hasRules = true
	}
}

// WithStrictEnums makes summaries fail with *domain.UnmappedEnumError on
// context values missing from the label tables.
func WithStrictEnums(strict bool) EngineOption {
	return func(e *Engine) {
		e.strict = strict
	}
}

// WithStickyFields names context fields that survive every Reset and Restart.
func WithStickyFields(fields ...string) EngineOption {
	return func(e *Engine) {
		e.sticky = append(e.sticky, fields...)
	}
}

// WithClock overrides the event timestamp source.
func WithClock(now func() time.Time) EngineOption {
	return func(e *Engine) {
		e.now = now
	}
}

// WithCallIDGenerator overrides how call ids are minted on Start.
func WithCallIDGenerator(gen func() string) EngineOption {
	return func(e *Engine) {
		e.newCallID = gen
	}
}

// NewEngine compiles the redirection rules for graph and returns an idle
// engine. Call Start before navigating.
func NewEngine(graph *domain.Graph, opts ...EngineOption) (*Engine, error) {
	if graph == nil {
		return nil, &domain.ConfigError{Reason: "graph is nil"}
	}

	e := &Engine{
		graph:     graph,
		logger:    logging.NewNop(),
		now:       time.Now,
		newCallID: uuid.NewString,
		live:      domain.NewCallContext(),
	}
	for _, opt := range opts {
		opt(e)
	}

	for _, f := range e.sticky {
		if _, err := schema.Preserve(domain.NewCallContext(), []string{f}); err != nil {
			return nil, &domain.ConfigError{Reason: "invalid sticky field", Err: err}
		}
	}

	rules := DefaultRedirectRules()
	switch {
	case e.hasRules:
		rules = e.customRules
	case graph.Redirects != nil:
		rules = graph.Redirects
	}
	compiled, err := compileRules(rules)
	if err != nil {
		return nil, err
	}
	e.rules = compiled

	e.summaries = summary.New(summary.WithStrict(e.strict), summary.WithLogger(e.logger))
	e.resolver = script.New(graph.Pricing, graph.Inserts,
		script.WithSummaryGenerator(e.summaries),
		script.WithLogger(e.logger),
	)
	return e, nil
}

// Start begins a new call: history is cleared, the live context becomes
// initial and the start node is entered.
func (e *Engine) Start(initial domain.CallContext) (*domain.ResolvedView, error) {
	startID := e.startNodeID()
	if _, ok := e.graph.Node(startID); !ok {
		err := &domain.ConfigError{NodeID: startID, Reason: "start node is not defined"}
		e.emitError(e.state.CallID, startID, err)
		return nil, err
	}
	if err := schema.ValidateContext(initial); err != nil {
		return nil, &domain.ConfigError{Reason: "invalid initial context", Err: err}
	}

	callID := e.newCallID()
	t, err := e.navigate(callID, nil, initial, startID)
	if err != nil {
		e.emitError(callID, startID, err)
		return nil, err
	}

	e.started = true
	e.state.CallID = callID
	e.commit(t)
	e.logger.Debug("call started", "call_id", callID, "node_id", t.nodeID)
	return t.view, nil
}

// NavigateTo enters requestedID, applying redirection first.
func (e *Engine) NavigateTo(requestedID string) (*domain.ResolvedView, error) {
	if !e.started {
		return nil, domain.ErrNotStarted
	}
	t, err := e.navigate(e.state.CallID, e.state.History, e.live, requestedID)
	if err != nil {
		e.emitError(e.state.CallID, requestedID, err)
		return nil, err
	}
	e.commit(t)
	return t.view, nil
}

// Choose applies the option's context patch and navigates to its target.
// Nothing is applied when the option has no target or the target cannot be
// entered.
func (e *Engine) Choose(opt domain.Option) (*domain.ResolvedView, error) {
	if !e.started {
		return nil, domain.ErrNotStarted
	}
	if opt.Next == "" {
		err := &domain.InvalidOptionError{
			NodeID: e.state.CurrentNodeID,
			Index:  -1,
			Text:   opt.Text,
			Reason: "option has no target",
		}
		e.emitError(e.state.CallID, e.state.CurrentNodeID, err)
		return nil, err
	}

	patched, err := schema.ApplyPatch(e.live, opt.Set)
	if err != nil {
		cerr := &domain.ConfigError{NodeID: e.state.CurrentNodeID, Reason: "invalid context patch on option " + quote(opt.Text), Err: err}
		e.emitError(e.state.CallID, e.state.CurrentNodeID, cerr)
		return nil, cerr
	}

	t, err := e.navigate(e.state.CallID, e.state.History, patched, opt.Next)
	if err != nil {
		e.emitError(e.state.CallID, opt.Next, err)
		return nil, err
	}
	e.commit(t)
	return t.view, nil
}

// ChooseIndex selects the i-th visible option of the current view.
func (e *Engine) ChooseIndex(i int) (*domain.ResolvedView, error) {
	if !e.started {
		return nil, domain.ErrNotStarted
	}
	node, ok := e.graph.Node(e.state.CurrentNodeID)
	if !ok {
		return nil, &domain.NodeNotFoundError{NodeID: e.state.CurrentNodeID}
	}
	visible := e.visibleOptions(node, e.live)
	if i < 0 || i >= len(visible) {
		err := &domain.InvalidOptionError{
			NodeID: node.ID,
			Index:  i,
			Reason: "no such option",
		}
		e.emitError(e.state.CallID, node.ID, err)
		return nil, err
	}
	return e.Choose(visible[i].Option)
}

// Back replays the previous navigation with the context stored for it.
//
// The current entry and the one before it are popped, the live context is
// restored from the earlier snapshot and its node id is navigated to again.
// Redirection is therefore re-evaluated, so the node shown can differ from
// the one originally displayed when rules depend on fields that changed.
// With one entry or fewer, Back returns the current view unchanged.
func (e *Engine) Back() (*domain.ResolvedView, error) {
	if !e.started {
		return nil, domain.ErrNotStarted
	}
	n := len(e.state.History)
	if n <= 1 {
		return e.View()
	}

	prev := e.state.History[n-2]
	t, err := e.navigate(e.state.CallID, e.state.History[:n-2], prev.Context, prev.NodeID)
	if err != nil {
		e.emitError(e.state.CallID, prev.NodeID, err)
		return nil, err
	}
	e.commit(t)

	if e.hooks.OnBack != nil {
		e.hooks.OnBack(e.nodeEvent(domain.EventBack, t))
	}
	e.logger.Debug("navigated back", "call_id", e.state.CallID, "node_id", t.nodeID, "requested_id", prev.NodeID)
	return t.view, nil
}

// Reset abandons the call. History is cleared and the live context is rebuilt
// from defaults, keeping the sticky fields and the fields named in preserve.
// Start must be called again before navigating.
func (e *Engine) Reset(preserve ...string) error {
	fresh, err := schema.Preserve(e.live, e.preserveSet(preserve))
	if err != nil {
		return &domain.ConfigError{Reason: "invalid reset field", Err: err}
	}

	callID := e.state.CallID
	e.started = false
	e.state = domain.NavigationState{}
	e.live = fresh

	if e.hooks.OnReset != nil {
		e.hooks.OnReset(&domain.EventBase{Timestamp: e.now(), Type: domain.EventReset, CallID: callID})
	}
	e.logger.Debug("call reset", "call_id", callID)
	return nil
}

// Restart resets the call and starts it again with the preserved fields.
func (e *Engine) Restart(preserve ...string) (*domain.ResolvedView, error) {
	if err := e.Reset(preserve...); err != nil {
		return nil, err
	}
	return e.Start(e.live)
}

// View renders the current node against the live context again.
func (e *Engine) View() (*domain.ResolvedView, error) {
	if !e.started {
		return nil, domain.ErrNotStarted
	}
	node, ok := e.graph.Node(e.state.CurrentNodeID)
	if !ok {
		return nil, &domain.NodeNotFoundError{NodeID: e.state.CurrentNodeID}
	}
	return e.render(node, e.live, len(e.state.History) > 1)
}

// Summary derives the structured end-of-call summary from the live context.
// Non-empty callNotes replace the context's notes.
func (e *Engine) Summary(callNotes string) (*summary.Summary, error) {
	return e.summaries.Full(e.live, callNotes)
}

// ShortSummary returns the one-line summary of the live context.
func (e *Engine) ShortSummary() (string, error) {
	return e.summaries.Short(e.live)
}

// Context returns a copy of the live context.
func (e *Engine) Context() domain.CallContext {
	return e.live
}

// State returns a copy of the navigation state.
func (e *Engine) State() domain.NavigationState {
	s := e.state
	s.History = cloneHistory(e.state.History)
	return s
}

// Started reports whether a call is in progress.
func (e *Engine) Started() bool {
	return e.started
}

// Graph returns the graph the engine walks.
func (e *Engine) Graph() *domain.Graph {
	return e.graph
}

// RedirectRules returns the effective rules in evaluation order. Unnamed
// rules carry their positional name.
func (e *Engine) RedirectRules() []domain.RedirectRule {
	rules := make([]domain.RedirectRule, len(e.rules))
	for i, cr := range e.rules {
		rules[i] = cr.rule
	}
	return rules
}

func (e *Engine) startNodeID() string {
	if e.graph.StartNodeID == "" {
		return domain.DefaultStartNodeID
	}
	return e.graph.StartNodeID
}

func (e *Engine) preserveSet(extra []string) []string {
	if len(e.sticky) == 0 {
		return extra
	}
	seen := make(map[string]struct{}, len(e.sticky)+len(extra))
	fields := make([]string, 0, len(e.sticky)+len(extra))
	for _, f := range append(append([]string{}, e.sticky...), extra...) {
		if _, dup := seen[f]; dup {
			continue
		}
		seen[f] = struct{}{}
		fields = append(fields, f)
	}
	return fields
}

func quote(s string) string {
	return "'" + s + "'"
}
