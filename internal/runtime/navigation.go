package runtime

import (
	"github.com/drelynlikescode26/callflow-assist/pkg/domain"
)

// transition is a fully computed navigation waiting to be committed.
type transition struct {
	history  []domain.HistoryEntry
	live     domain.CallContext
	nodeID   string
	node     *domain.Node
	view     *domain.ResolvedView
	redirect *domain.RedirectEvent
}

// navigate computes the result of entering requestedID from history with
// context c. It never touches engine state, so a failure leaves nothing to
// undo.
func (e *Engine) navigate(callID string, history []domain.HistoryEntry, c domain.CallContext, requestedID string) (*transition, error) {
	resolvedID, rule, err := e.redirect(requestedID, c)
	if err != nil {
		return nil, err
	}

	node, ok := e.graph.Node(resolvedID)
	if !ok {
		return nil, &domain.NodeNotFoundError{NodeID: resolvedID, RequestedID: requestedID}
	}

	if c.UpgradeType != "" && !c.UpgradeApplies() {
		e.logger.Debug("clearing upgrade type", "call_id", callID, "node_id", resolvedID, "lead_type", c.LeadType)
		c.UpgradeType = ""
	}

	next := make([]domain.HistoryEntry, len(history), len(history)+1)
	copy(next, history)
	next = append(next, domain.HistoryEntry{NodeID: resolvedID, Context: c})

	view, err := e.render(node, c, len(next) > 1)
	if err != nil {
		return nil, err
	}

	t := &transition{
		history: next,
		live:    c,
		nodeID:  resolvedID,
		node:    node,
		view:    view,
	}
	if rule != nil {
		t.redirect = &domain.RedirectEvent{
			EventBase:   domain.EventBase{Type: domain.EventRedirect, CallID: callID},
			Rule:        rule.Name,
			RequestedID: requestedID,
			NodeID:      resolvedID,
		}
	}
	return t, nil
}

// commit installs a computed transition and notifies hooks.
func (e *Engine) commit(t *transition) {
	e.state.History = t.history
	e.state.CurrentNodeID = t.nodeID
	e.live = t.live

	if t.redirect != nil {
		e.logger.Debug("redirected", "call_id", e.state.CallID, "rule", t.redirect.Rule,
			"requested_id", t.redirect.RequestedID, "node_id", t.redirect.NodeID)
		if e.hooks.OnRedirect != nil {
			t.redirect.Timestamp = e.now()
			e.hooks.OnRedirect(t.redirect)
		}
	}
	if e.hooks.OnNodeEnter != nil {
		e.hooks.OnNodeEnter(e.nodeEvent(domain.EventNodeEnter, t))
	}
}

func (e *Engine) nodeEvent(typ domain.EventType, t *transition) *domain.NodeEvent {
	return &domain.NodeEvent{
		EventBase: domain.EventBase{Timestamp: e.now(), Type: typ, CallID: e.state.CallID},
		NodeID:    t.nodeID,
		NodeKind:  t.node.Kind,
		Depth:     len(t.history),
	}
}

func (e *Engine) emitError(callID, nodeID string, err error) {
	e.logger.Warn("navigation failed", "call_id", callID, "node_id", nodeID, "error", err)
	if e.hooks.OnError != nil {
		e.hooks.OnError(&domain.ErrorEvent{
			EventBase: domain.EventBase{Timestamp: e.now(), Type: domain.EventError, CallID: callID},
			NodeID:    nodeID,
			Err:       err,
		})
	}
}

func cloneHistory(src []domain.HistoryEntry) []domain.HistoryEntry {
	if src == nil {
		return nil
	}
	dst := make([]domain.HistoryEntry, len(src))
	copy(dst, src)
	return dst
}
