package domain

// ViewOption is an option ready for display.
type ViewOption struct {
	// Index is the position among the visible options of the view.
	Index int `json:"index"`
	// Label is the option text after token substitution.
	Label  string `json:"label"`
	Option Option `json:"option"`
}

// ResolvedView is the data-only output of every navigation call.
type ResolvedView struct {
	NodeID   string       `json:"node_id"`
	Kind     NodeKind     `json:"kind"`
	Progress string       `json:"progress"`
	Text     string       `json:"text"`
	Options  []ViewOption `json:"options"`

	// Terminal is true when the node declares no options at all. A non-terminal
	// node may still present an empty list when every option is hidden.
	Terminal  bool `json:"terminal"`
	CanGoBack bool `json:"can_go_back"`
}
