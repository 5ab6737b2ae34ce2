package graph

import (
	"fmt"
	"strings"

	"github.com/drelynlikescode26/callflow-assist/pkg/domain"
)

// GraphOverlay contains call state to visualize on the graph.
type GraphOverlay struct {
	VisitedNodes []string
	CurrentNode  string
}

// OverlayFromState builds an overlay from a navigation state.
func OverlayFromState(s domain.NavigationState) *GraphOverlay {
	return &GraphOverlay{VisitedNodes: s.Path(), CurrentNode: s.CurrentNodeID}
}

// GenerateMermaid produces a Mermaid flowchart for g.
// Node shapes follow the node kind:
// - Start: ((Circle))
// - Qualifier: {Rhombus}
// - Close/Success: ([Stadium])
// - Default: [Rectangle]
// Redirection rules are drawn as dotted edges labeled with the rule name.
func GenerateMermaid(g *domain.Graph, rules []domain.RedirectRule, overlay *GraphOverlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	startID := g.StartNodeID
	if startID == "" {
		startID = domain.DefaultStartNodeID
	}

	for _, id := range g.NodeIDs() {
		node := g.Nodes[id]
		safeID := sanitizeMermaidID(id)

		opener, closer := "[", "]"
		switch {
		case id == startID:
			opener, closer = "((", "))"
		case node.Kind == domain.KindQualifier:
			opener, closer = "{", "}"
		case node.Kind == domain.KindClose || node.Kind == domain.KindSuccess:
			opener, closer = "([", "])"
		}
		sb.WriteString(fmt.Sprintf("    %s%s\"%s\"%s\n", safeID, opener, id, closer))

		for _, opt := range node.Options {
			if opt.Next == "" {
				continue
			}
			label := strings.ReplaceAll(opt.Text, "\"", "'")
			arrow := fmt.Sprintf("-- \"%s\" -->", label)
			if opt.VisibleWhen != "" {
				arrow = fmt.Sprintf("-- \"%s (if %s)\" -->", label, opt.VisibleWhen)
			}
			sb.WriteString(fmt.Sprintf("    %s %s %s\n", safeID, arrow, sanitizeMermaidID(opt.Next)))
		}
	}

	if len(rules) > 0 {
		sb.WriteString("\n    %% Redirects\n")
		for _, r := range rules {
			sb.WriteString(fmt.Sprintf("    %s -. \"%s\" .-> %s\n",
				sanitizeMermaidID(r.Target), strings.ReplaceAll(r.Name, "\"", "'"), sanitizeMermaidID(r.To)))
		}
	}

	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text (color:#000) for high-contrast on light backgrounds, regardless of theme.
		sb.WriteString("    classDef visited fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")

		visitedSet := make(map[string]bool)
		for _, id := range overlay.VisitedNodes {
			safeID := sanitizeMermaidID(id)
			if !visitedSet[safeID] && safeID != "" {
				visitedSet[safeID] = true
				sb.WriteString(fmt.Sprintf("    class %s visited;\n", safeID))
			}
		}

		if overlay.CurrentNode != "" {
			sb.WriteString(fmt.Sprintf("    class %s current;\n", sanitizeMermaidID(overlay.CurrentNode)))
		}
	}

	return sb.String()
}

var mermaidIDReplacer = strings.NewReplacer(".", "_", "-", "_", "/", "_", "\\", "_", " ", "_")

func sanitizeMermaidID(id string) string {
	return mermaidIDReplacer.Replace(id)
}
