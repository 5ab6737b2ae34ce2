package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/drelynlikescode26/callflow-assist/pkg/domain"
	"github.com/drelynlikescode26/callflow-assist/pkg/summary"
)

// NewRenderer returns a function that renders markdown using glamour.
// The style follows the terminal background.
func NewRenderer() func(string) (string, error) {
	r, _ := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
	)
	return func(markdown string) (string, error) {
		return r.Render(markdown)
	}
}

// NewPlainRenderer renders markdown without ANSI styling, for pipes and logs.
func NewPlainRenderer() func(string) (string, error) {
	r, _ := glamour.NewTermRenderer(
		glamour.WithStandardStyle("notty"),
		glamour.WithWordWrap(0),
	)
	return func(markdown string) (string, error) {
		return r.Render(markdown)
	}
}

// ViewMarkdown formats a resolved view: the script as a quote followed by
// the numbered options.
func ViewMarkdown(v *domain.ResolvedView) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "> %s\n\n", v.Text)

	switch {
	case v.Terminal:
		sb.WriteString("*End of script.* Press **s** for the summary or **r** to reset.\n")
	case len(v.Options) == 0:
		sb.WriteString("*No options available.* Press **b** to go back.\n")
	default:
		for _, o := range v.Options {
			fmt.Fprintf(&sb, "%d. %s\n", o.Index+1, o.Label)
		}
	}
	return sb.String()
}

// SummaryMarkdown formats the end-of-call summary with its export templates.
func SummaryMarkdown(s *summary.Summary) string {
	var sb strings.Builder
	sb.WriteString("## Call Summary\n\n")
	for _, item := range s.Items {
		fmt.Fprintf(&sb, "- **%s:** %s\n", item.Label, item.Value)
	}
	sb.WriteString("\n### CRM Note\n\n```\n")
	sb.WriteString(s.CRM)
	sb.WriteString("\n```\n\n### Confirmation Text\n\n")
	sb.WriteString(s.Confirmation)
	sb.WriteString("\n\n### Voicemail Script\n\n")
	sb.WriteString(s.Voicemail)
	sb.WriteString("\n")
	return sb.String()
}
