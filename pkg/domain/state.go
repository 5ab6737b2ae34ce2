package domain

// HistoryEntry records a visited node and the context as it was on arrival.
type HistoryEntry struct {
	NodeID  string      `json:"node_id"`
	Context CallContext `json:"context"`
}

// NavigationState is the engine-owned position of a call.
type NavigationState struct {
	// CallID identifies the call in logs and events.
	CallID string `json:"call_id"`

	// CurrentNodeID is the identifier of the displayed node.
	CurrentNodeID string `json:"current_node_id"`

	// History is append-only except on back, which pops entries.
	History []HistoryEntry `json:"history"`
}

// Path returns the visited node ids in order.
func (s NavigationState) Path() []string {
	ids := make([]string, len(s.History))
	for i, h := range s.History {
		ids[i] = h.NodeID
	}
	return ids
}
