// Package validator inspects a call-flow graph for problems that are legal
// in the document format but break or degrade a live call.
package validator

import (
	"fmt"
	"sort"
	"strings"

	"github.com/drelynlikescode26/callflow-assist/pkg/domain"
	"github.com/drelynlikescode26/callflow-assist/pkg/script"
)

// Severity ranks an Issue.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Issue is one finding, located by node id.
type Issue struct {
	Severity Severity `json:"severity"`
	NodeID   string   `json:"node_id,omitempty"`
	Message  string   `json:"message"`
}

func (i Issue) String() string {
	if i.NodeID == "" {
		return fmt.Sprintf("[%s] %s", i.Severity, i.Message)
	}
	return fmt.Sprintf("[%s] %s: %s", i.Severity, i.NodeID, i.Message)
}

// Report collects the findings of ValidateGraph.
type Report struct {
	Issues []Issue `json:"issues"`

	// Reachable lists the node ids reachable from the start node, sorted.
	Reachable []string `json:"reachable"`
}

// Errors returns the error-level issues.
func (r *Report) Errors() []Issue { return r.filter(SeverityError) }

// Warnings returns the warning-level issues.
func (r *Report) Warnings() []Issue { return r.filter(SeverityWarning) }

func (r *Report) filter(s Severity) []Issue {
	var out []Issue
	for _, i := range r.Issues {
		if i.Severity == s {
			out = append(out, i)
		}
	}
	return out
}

// Err returns nil when the report has no errors.
func (r *Report) Err() error {
	errs := r.Errors()
	if len(errs) == 0 {
		return nil
	}
	lines := make([]string, len(errs))
	for i, e := range errs {
		lines[i] = e.String()
	}
	return fmt.Errorf("found %d errors:\n- %s", len(errs), strings.Join(lines, "\n- "))
}

func (r *Report) add(s Severity, nodeID, format string, args ...any) {
	r.Issues = append(r.Issues, Issue{Severity: s, NodeID: nodeID, Message: fmt.Sprintf(format, args...)})
}

// ValidateGraph crawls g from its start node, following option targets and
// the redirection edges of rules.
//
// Errors: a missing start node, an option pointing at a missing node, a rule
// redirecting to a missing node. Warnings: unreachable nodes, rules whose
// target is not a node, and unknown template tokens.
func ValidateGraph(g *domain.Graph, rules []domain.RedirectRule) *Report {
	r := &Report{}

	redirects := make(map[string][]domain.RedirectRule)
	for _, rule := range rules {
		if _, ok := g.Nodes[rule.Target]; !ok {
			r.add(SeverityWarning, "", "redirect rule %s targets unknown node '%s'", rule.Name, rule.Target)
		}
		if _, ok := g.Nodes[rule.To]; !ok {
			r.add(SeverityError, "", "redirect rule %s leads to missing node '%s'", rule.Name, rule.To)
		}
		redirects[rule.Target] = append(redirects[rule.Target], rule)
	}

	startID := g.StartNodeID
	if startID == "" {
		startID = domain.DefaultStartNodeID
	}
	if _, ok := g.Nodes[startID]; !ok {
		r.add(SeverityError, startID, "start node is not defined")
		return r
	}

	visited := map[string]bool{}
	queue := []string{startID}
	for len(queue) > 0 {
		currentID := queue[0]
		queue = queue[1:]

		if visited[currentID] {
			continue
		}
		visited[currentID] = true

		enqueue := func(id string) {
			if _, ok := g.Nodes[id]; ok && !visited[id] {
				queue = append(queue, id)
			}
		}
		for _, rule := range redirects[currentID] {
			enqueue(rule.To)
		}

		node := g.Nodes[currentID]
		for i, opt := range node.Options {
			if opt.Next == "" {
				r.add(SeverityError, currentID, "option %d has no target", i)
				continue
			}
			if _, ok := g.Nodes[opt.Next]; !ok {
				r.add(SeverityError, currentID, "option %q leads to missing node '%s'", opt.Text, opt.Next)
				continue
			}
			enqueue(opt.Next)
		}
	}

	for _, id := range g.NodeIDs() {
		if visited[id] {
			r.Reachable = append(r.Reachable, id)
			checkTokens(r, id, g.Nodes[id])
			continue
		}
		r.add(SeverityWarning, id, "node is unreachable from '%s'", startID)
	}
	return r
}

func checkTokens(r *Report, id string, n domain.Node) {
	texts := []string{n.Script}
	keys := make([]string, 0, len(n.Variants))
	for k := range n.Variants {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		texts = append(texts, n.Variants[k])
	}
	for _, o := range n.Options {
		texts = append(texts, o.Text)
	}

	seen := map[string]bool{}
	for _, text := range texts {
		for _, tok := range script.Tokens(text) {
			if !script.IsKnownToken(tok) && !seen[tok] {
				seen[tok] = true
				r.add(SeverityWarning, id, "unknown template token %s", tok)
			}
		}
	}
}
