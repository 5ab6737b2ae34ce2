package schema

import (
	"fmt"

	"github.com/drelynlikescode26/callflow-assist/pkg/domain"
)

// CheckGraph performs the structural checks a JSON Schema cannot express:
// node ids agree with their keys, every option target exists, every
// visibleWhen names a boolean field, every patch applies cleanly and the
// start node is defined. Failures are collected into one *AggregateError.
func CheckGraph(g *domain.Graph) error {
	if g == nil {
		return &AggregateError{Errors: []error{&ValidationError{Reason: "graph is nil"}}}
	}

	var errs []error
	add := func(path, format string, args ...any) {
		errs = append(errs, &ValidationError{Path: path, Reason: fmt.Sprintf(format, args...)})
	}

	if len(g.Nodes) == 0 {
		add("nodes", "graph has no nodes")
	}

	start := g.StartNodeID
	if start == "" {
		start = domain.DefaultStartNodeID
	}
	if len(g.Nodes) > 0 {
		if _, ok := g.Nodes[start]; !ok {
			add("startNode", "start node %q is not defined", start)
		}
	}

	for _, id := range g.NodeIDs() {
		n := g.Nodes[id]
		path := "nodes/" + id
		if n.ID != "" && n.ID != id {
			add(path+"/id", "id %q does not match key %q", n.ID, id)
		}
		if n.Kind != "" && !n.Kind.Valid() {
			add(path+"/kind", "unknown node kind %q", n.Kind)
		}
		for i, opt := range n.Options {
			optPath := fmt.Sprintf("%s/options/%d", path, i)
			if opt.Next == "" {
				add(optPath+"/next", "option %q has no target", opt.Text)
			} else if _, ok := g.Nodes[opt.Next]; !ok {
				add(optPath+"/next", "target %q is not defined", opt.Next)
			}
			if opt.VisibleWhen != "" && !domain.IsFlagField(opt.VisibleWhen) {
				add(optPath+"/visibleWhen", "%q is not a boolean context field", opt.VisibleWhen)
			}
			if _, err := ApplyPatch(domain.CallContext{}, opt.Set); err != nil {
				add(optPath+"/set", "%v", err)
			}
		}
	}

	for i, r := range g.Redirects {
		path := fmt.Sprintf("redirects/%d", i)
		if r.Target == "" {
			add(path+"/target", "redirect rule has no target")
		}
		if r.To == "" {
			add(path+"/to", "redirect rule has no destination")
		}
	}

	if len(errs) > 0 {
		return &AggregateError{Errors: errs}
	}
	return nil
}
