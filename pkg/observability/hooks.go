package observability

import (
	"log/slog"

	"github.com/drelynlikescode26/callflow-assist/pkg/domain"
)

// LoggingHooks logs every engine event with slog.
func LoggingHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnNodeEnter: func(e *domain.NodeEvent) {
			logger.Info("node_enter", "call_id", e.CallID, "node_id", e.NodeID, "kind", e.NodeKind, "depth", e.Depth)
		},
		OnRedirect: func(e *domain.RedirectEvent) {
			logger.Info("redirect", "call_id", e.CallID, "rule", e.Rule, "requested_id", e.RequestedID, "node_id", e.NodeID)
		},
		OnBack: func(e *domain.NodeEvent) {
			logger.Info("back", "call_id", e.CallID, "node_id", e.NodeID)
		},
		OnReset: func(e *domain.EventBase) {
			logger.Info("reset", "call_id", e.CallID)
		},
		OnError: func(e *domain.ErrorEvent) {
			logger.Error("navigation_error", "call_id", e.CallID, "node_id", e.NodeID, "error", e.Err)
		},
	}
}

// Combine fans every event out to each hook set in order.
func Combine(sets ...domain.LifecycleHooks) domain.LifecycleHooks {
	var out domain.LifecycleHooks
	for _, s := range sets {
		s := s
		out.OnNodeEnter = chain(out.OnNodeEnter, s.OnNodeEnter)
		out.OnRedirect = chain(out.OnRedirect, s.OnRedirect)
		out.OnBack = chain(out.OnBack, s.OnBack)
		out.OnReset = chain(out.OnReset, s.OnReset)
		out.OnError = chain(out.OnError, s.OnError)
	}
	return out
}

func chain[E any](first, next func(E)) func(E) {
	switch {
	case first == nil:
		return next
	case next == nil:
		return first
	}
	return func(e E) {
		first(e)
		next(e)
	}
}
