// Package summary derives end-of-call summaries and export templates from a
// call context.
package summary

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/drelynlikescode26/callflow-assist/pkg/domain"
)

// Separator joins the fragments of the short summary.
const Separator = " • "

const notAvailable = "N/A"

// Item is one label/value pair for display.
type Item struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Summary is the structured end-of-call output.
type Summary struct {
	Items []Item `json:"items"`

	// CRM is the note pasted into the CRM, one "Label: Value" per line.
	CRM string `json:"crm"`

	// Confirmation is the appointment confirmation message.
	Confirmation string `json:"confirmation"`

	// Voicemail is the script for leaving a voicemail.
	Voicemail string `json:"voicemail"`
}

// Generator builds summaries. The zero value is not usable; call New.
type Generator struct {
	strict bool
	logger *slog.Logger
}

// Option configures a Generator.
type Option func(*Generator)

// WithStrict makes unmapped enum values fail with *domain.UnmappedEnumError
// instead of degrading to a visible placeholder.
func WithStrict(strict bool) Option {
	return func(g *Generator) {
		g.strict = strict
	}
}

// WithLogger sets the logger used to report placeholders in lenient mode.
func WithLogger(logger *slog.Logger) Option {
	return func(g *Generator) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// New creates a Generator. It is lenient by default.
func New(opts ...Option) *Generator {
	g := &Generator{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// label maps an enum value through table. Empty values map to "".
func label[K ~string](g *Generator, field string, table map[K]string, v K) (string, error) {
	if v == "" {
		return "", nil
	}
	if l, ok := table[v]; ok {
		return l, nil
	}
	err := &domain.UnmappedEnumError{Field: field, Value: string(v)}
	if g.strict {
		return "", err
	}
	g.logger.Warn("unmapped enum value", "field", field, "value", string(v))
	return fmt.Sprintf("[%s: %s]", field, string(v)), nil
}

// labels holds every enum of a context already mapped to display text.
type labels struct {
	lead        string
	upgrade     string
	appointment string
	callback    string
	reschedule  string
	visit       string
	outcome     string
}

func (g *Generator) labelsFor(c domain.CallContext) (labels, error) {
	var (
		l   labels
		err error
	)
	if l.lead, err = label(g, domain.FieldLeadType, leadTypeLabels, c.LeadType); err != nil {
		return l, err
	}
	if l.upgrade, err = label(g, domain.FieldUpgradeType, upgradeTypeLabels, c.UpgradeType); err != nil {
		return l, err
	}
	if l.appointment, err = label(g, domain.FieldAppointmentTime, timeSlotLabels, c.AppointmentTime); err != nil {
		return l, err
	}
	if l.callback, err = label(g, domain.FieldCallbackTime, timeSlotLabels, c.CallbackTime); err != nil {
		return l, err
	}
	if l.reschedule, err = label(g, domain.FieldRescheduleTime, timeSlotLabels, c.RescheduleTime); err != nil {
		return l, err
	}
	if l.visit, err = label(g, domain.FieldVisitType, visitTypeLabels, c.EffectiveVisitType()); err != nil {
		return l, err
	}
	if l.outcome, err = label(g, domain.FieldOutcome, outcomeLabels, c.Outcome); err != nil {
		return l, err
	}
	return l, nil
}

// Short returns the one-line recap: customer, lead type, 55+ eligibility,
// upgrade and appointment time, in that order, skipping absent fragments.
// It returns "" when nothing is known yet.
func (g *Generator) Short(c domain.CallContext) (string, error) {
	l, err := g.labelsFor(c)
	if err != nil {
		return "", err
	}

	var parts []string
	if name := strings.TrimSpace(c.CustomerName); name != "" {
		parts = append(parts, name)
	}
	if l.lead != "" {
		parts = append(parts, l.lead)
	}
	if c.Is55Plus {
		parts = append(parts, "55+ Eligible")
	}
	if l.upgrade != "" {
		parts = append(parts, "Upgrade: "+l.upgrade)
	}
	if l.appointment != "" {
		parts = append(parts, "Appointment: "+l.appointment)
	}
	return strings.Join(parts, Separator), nil
}

// Full builds the structured summary. callNotes, when non-empty, replaces the
// notes recorded in the context.
func (g *Generator) Full(c domain.CallContext, callNotes string) (*Summary, error) {
	l, err := g.labelsFor(c)
	if err != nil {
		return nil, err
	}

	notes := strings.TrimSpace(callNotes)
	if notes == "" {
		notes = strings.TrimSpace(c.Notes)
	}

	outcome := l.outcome
	if outcome == "" {
		outcome = "In Progress"
	}

	var items []Item
	add := func(label, value string) {
		items = append(items, Item{Label: label, Value: value})
	}

	add("Outcome", outcome)
	add("Rep", orNA(c.RepName))
	add("Customer", orNA(c.CustomerName))
	add("Lead Type", orNA(l.lead))

	switch c.Outcome {
	case domain.OutcomeBooked:
		add("Appointment", orNA(l.appointment))
		add("Visit Type", l.visit)
	case domain.OutcomeCallback:
		add("Callback", orNA(l.callback))
	}
	if l.reschedule != "" {
		add("Reschedule", l.reschedule)
	}
	if c.Is55Plus {
		add("55+", "Yes")
	}
	if l.upgrade != "" {
		add("Upgrade", l.upgrade)
	}
	if c.EventSale {
		add("Event Sale", "Yes")
	}

	display := make([]Item, len(items))
	copy(display, items)
	if notes != "" {
		display = append(display, Item{Label: "Notes", Value: notes})
	}

	return &Summary{
		Items:        display,
		CRM:          crmNote(items, notes),
		Confirmation: confirmation(c, l),
		Voicemail:    voicemail(c, l),
	}, nil
}

func crmNote(items []Item, notes string) string {
	var sb strings.Builder
	for _, it := range items {
		sb.WriteString(it.Label)
		sb.WriteString(": ")
		sb.WriteString(it.Value)
		sb.WriteString("\n")
	}
	if notes != "" {
		sb.WriteString("Notes: ")
		sb.WriteString(notes)
		sb.WriteString("\n")
	}
	return sb.String()
}

func orNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return notAvailable
	}
	return s
}
