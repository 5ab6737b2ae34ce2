package runtime

import (
	"github.com/drelynlikescode26/callflow-assist/pkg/domain"
)

// render builds the data-only view of node for context c.
func (e *Engine) render(node *domain.Node, c domain.CallContext, canGoBack bool) (*domain.ResolvedView, error) {
	rendered, err := e.resolver.Resolve(node, c)
	if err != nil {
		return nil, err
	}
	return &domain.ResolvedView{
		NodeID:    node.ID,
		Kind:      node.Kind,
		Progress:  node.Kind.Progress(),
		Text:      rendered.Text,
		Options:   e.visibleOptions(node, c),
		Terminal:  node.IsTerminal(),
		CanGoBack: canGoBack,
	}, nil
}

// visibleOptions filters options by their visibleWhen flag. Indexes are
// positions in the filtered list.
func (e *Engine) visibleOptions(node *domain.Node, c domain.CallContext) []domain.ViewOption {
	out := make([]domain.ViewOption, 0, len(node.Options))
	for _, opt := range node.Options {
		if opt.VisibleWhen != "" {
			if on, _ := c.Flag(opt.VisibleWhen); !on {
				continue
			}
		}
		out = append(out, domain.ViewOption{
			Index:  len(out),
			Label:  e.resolver.OptionLabel(opt, c),
			Option: opt.Clone(),
		})
	}
	return out
}
