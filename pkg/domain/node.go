package domain

import "maps"

// NodeKind classifies a script step. It drives progress labeling only and has
// no effect on branching.
type NodeKind string

const (
	KindPermission NodeKind = "permission"
	KindIntro      NodeKind = "intro"
	KindPitch      NodeKind = "pitch"
	KindDetails    NodeKind = "details"
	KindQualifier  NodeKind = "qualifier"
	KindTransition NodeKind = "transition"
	KindClose      NodeKind = "close"
	KindSuccess    NodeKind = "success"
	KindReschedule NodeKind = "reschedule"
)

var progressLabels = map[NodeKind]string{
	KindPermission: "Opening",
	KindIntro:      "Opening",
	KindPitch:      "Pitch",
	KindDetails:    "Details",
	KindQualifier:  "Qualifying",
	KindTransition: "In Progress",
	KindClose:      "Closing",
	KindSuccess:    "Closing",
	KindReschedule: "Rescheduling",
}

// Valid reports whether k is one of the known node kinds.
func (k NodeKind) Valid() bool {
	_, ok := progressLabels[k]
	return ok
}

// Progress returns the human-readable progress label for the kind.
func (k NodeKind) Progress() string {
	if label, ok := progressLabels[k]; ok {
		return label
	}
	return "In Progress"
}

// Node represents one step of the scripted call.
type Node struct {
	ID   string   `json:"id" yaml:"id"`
	Kind NodeKind `json:"kind" yaml:"kind"`

	// Script is the text template. It may contain {{NAME}} placeholder tokens.
	Script string `json:"script" yaml:"script"`

	// Variants maps a branch key (the lead type) to a full replacement script.
	Variants map[string]string `json:"variants,omitempty" yaml:"variants,omitempty"`

	// Options are the outgoing choices in display order. Empty means terminal.
	Options []Option `json:"options,omitempty" yaml:"options,omitempty"`
}

// Clone returns a copy of n that shares no maps or slices with it.
func (n Node) Clone() Node {
	n.Variants = maps.Clone(n.Variants)
	if n.Options != nil {
		opts := make([]Option, len(n.Options))
		for i, o := range n.Options {
			opts[i] = o.Clone()
		}
		n.Options = opts
	}
	return n
}

// IsTerminal reports whether the node offers no further choices.
func (n *Node) IsTerminal() bool {
	return len(n.Options) == 0
}

// Option is a user-selectable choice leading to another node.
type Option struct {
	Text string `json:"text" yaml:"text"`

	// Next is the target node id. An option without a target is malformed;
	// terminal nodes are modeled by an empty option list instead.
	Next string `json:"next,omitempty" yaml:"next,omitempty"`

	// Set is merged into the call context (field overwrite) before navigating.
	Set map[string]any `json:"set,omitempty" yaml:"set,omitempty"`

	// VisibleWhen names a boolean context field that must be true for the
	// option to be presented.
	VisibleWhen string `json:"visibleWhen,omitempty" yaml:"visibleWhen,omitempty"`
}

// Clone returns a copy of o with its own Set map.
func (o Option) Clone() Option {
	o.Set = maps.Clone(o.Set)
	return o
}
