package domain

import "time"

// EventType defines the category of the event.
type EventType string

const (
	EventNodeEnter EventType = "node_enter"
	EventRedirect  EventType = "redirect"
	EventBack      EventType = "back"
	EventReset     EventType = "reset"
	EventError     EventType = "error"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	CallID    string    `json:"call_id"`
}

// NodeEvent represents entry into a node.
type NodeEvent struct {
	EventBase
	NodeID   string   `json:"node_id"`
	NodeKind NodeKind `json:"node_kind"`
	Depth    int      `json:"depth"`
}

// RedirectEvent is emitted when a redirection rule substitutes the target.
type RedirectEvent struct {
	EventBase
	Rule        string `json:"rule"`
	RequestedID string `json:"requested_id"`
	NodeID      string `json:"node_id"`
}

// ErrorEvent is emitted when a navigation call fails.
type ErrorEvent struct {
	EventBase
	NodeID string `json:"node_id"`
	Err    error  `json:"-"`
}

// LifecycleHooks defines callbacks for engine observability.
// All callbacks are optional.
type LifecycleHooks struct {
	OnNodeEnter func(*NodeEvent)
	OnRedirect  func(*RedirectEvent)
	OnBack      func(*NodeEvent)
	OnReset     func(*EventBase)
	OnError     func(*ErrorEvent)
}
