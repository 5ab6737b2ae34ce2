package dsl

import "github.com/drelynlikescode26/callflow-assist/pkg/domain"

// NodeBuilder provides a fluent API for configuring a node.
type NodeBuilder struct {
	node    domain.Node
	builder *Builder
}

// Kind sets the node kind, which drives the progress label.
func (n *NodeBuilder) Kind(kind domain.NodeKind) *NodeBuilder {
	n.node.Kind = kind
	return n
}

// Script sets the default text template of the node.
func (n *NodeBuilder) Script(text string) *NodeBuilder {
	n.node.Script = text
	return n
}

// Variant sets the full replacement script for a branch key (lead type).
func (n *NodeBuilder) Variant(branch, text string) *NodeBuilder {
	if n.node.Variants == nil {
		n.node.Variants = make(map[string]string)
	}
	n.node.Variants[branch] = text
	return n
}

// Option appends a choice leading to next. Set and VisibleWhen apply to the
// most recently added option.
func (n *NodeBuilder) Option(text, next string) *NodeBuilder {
	n.node.Options = append(n.node.Options, domain.Option{Text: text, Next: next})
	return n
}

// Set adds a context patch entry to the last option.
func (n *NodeBuilder) Set(field string, value any) *NodeBuilder {
	opt := n.last("Set")
	if opt == nil {
		return n
	}
	if opt.Set == nil {
		opt.Set = make(map[string]any)
	}
	opt.Set[field] = value
	return n
}

// VisibleWhen shows the last option only while the named flag is true.
func (n *NodeBuilder) VisibleWhen(flag string) *NodeBuilder {
	if opt := n.last("VisibleWhen"); opt != nil {
		opt.VisibleWhen = flag
	}
	return n
}

// Terminal marks the node as a terminal node (end of the call).
func (n *NodeBuilder) Terminal() *NodeBuilder {
	n.node.Options = nil
	return n
}

// Build returns the underlying domain.Node.
// This is primarily used by the Builder, but exposed for advanced usage.
func (n *NodeBuilder) Build() domain.Node {
	return n.node
}

func (n *NodeBuilder) last(method string) *domain.Option {
	if len(n.node.Options) == 0 {
		n.builder.fail("node %s: %s called before Option", n.node.ID, method)
		return nil
	}
	return &n.node.Options[len(n.node.Options)-1]
}
