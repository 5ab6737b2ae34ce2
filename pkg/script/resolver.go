package script

import (
	"io"
	"log/slog"
	"regexp"
	"strings"

	"github.com/drelynlikescode26/callflow-assist/pkg/domain"
	"github.com/drelynlikescode26/callflow-assist/pkg/summary"
)

// Placeholder tokens understood by the resolver.
const (
	TokenCustomerName   = "{{CUSTOMER_NAME}}"
	TokenRepName        = "{{REP_NAME}}"
	TokenWirelessPrice  = "{{WIRELESS_PRICE}}"
	TokenFiberPrice     = "{{FIBER_PRICE}}"
	Token55PlusWireless = "{{55PLUS_WIRELESS}}"
	Token55PlusFiber    = "{{55PLUS_FIBER}}"
	TokenUpgradeInfo    = "{{UPGRADE_INFO}}"
	TokenUpgradeDetails = "{{UPGRADE_DETAILS}}"
	TokenVisitDetails   = "{{VISIT_DETAILS}}"
	TokenVisitAction    = "{{VISIT_ACTION}}"
	TokenSummary        = "{{SUMMARY}}"
	TokenEventCTA       = "{{EVENT_CTA}}"
)

// Table categories and keys.
const (
	CategoryWireless = "wireless"
	CategoryFiber    = "fiber"
	CategoryUpgrades = "upgrades"
	Category55Plus   = "55plus"
	KeyStarting      = "starting"
)

const defaultCustomerName = "there"

type visitPhrases struct {
	details string
	action  string
}

var visitPhrasesByType = map[domain.VisitType]visitPhrases{
	domain.VisitStore: {
		details: "at your local store, where a specialist will walk you through everything in person",
		action:  "stop by the store",
	},
	domain.VisitMobile: {
		details: "with our mobile team, who will come right to your home or office",
		action:  "have our mobile team come to you",
	},
}

const (
	eventCTA   = "Lock In Event Pricing"
	regularCTA = "Book Appointment"
)

var (
	tokenPattern      = regexp.MustCompile(`\{\{[^{}]*\}\}`)
	whitespacePattern = regexp.MustCompile(`\s+`)
)

// Rendered is the outcome of resolving a node.
type Rendered struct {
	Text string
	// Unresolved lists tokens that survived every substitution step and were
	// stripped. They indicate a graph/table mismatch, never a fatal error.
	Unresolved []string
}

// Resolver renders node text from a graph's tables.
type Resolver struct {
	pricing   domain.LookupTable
	inserts   domain.LookupTable
	summaries *summary.Generator
	logger    *slog.Logger
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithSummaryGenerator sets the generator used for {{SUMMARY}}.
func WithSummaryGenerator(g *summary.Generator) Option {
	return func(r *Resolver) {
		if g != nil {
			r.summaries = g
		}
	}
}

// WithLogger sets the logger used to report unresolved tokens.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Resolver) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// New creates a Resolver over the pricing and conditional insert tables.
func New(pricing, inserts domain.LookupTable, opts ...Option) *Resolver {
	r := &Resolver{
		pricing:   pricing,
		inserts:   inserts,
		summaries: summary.New(),
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve renders the display text of node for context c.
// The only error source is the summary generator in strict mode.
func (r *Resolver) Resolve(node *domain.Node, c domain.CallContext) (Rendered, error) {
	text := node.Script
	if key := c.BranchKey(); key != "" {
		if variant, ok := node.Variants[key]; ok {
			text = variant
		}
	}

	name := strings.TrimSpace(c.CustomerName)
	if name == "" {
		name = defaultCustomerName
	}
	text = strings.ReplaceAll(text, TokenCustomerName, name)
	text = strings.ReplaceAll(text, TokenRepName, c.RepName)

	text = r.replaceLookup(text, TokenWirelessPrice, r.pricing, CategoryWireless, KeyStarting)
	text = r.replaceLookup(text, TokenFiberPrice, r.pricing, CategoryFiber, KeyStarting)

	if c.Is55Plus {
		text = r.replaceLookup(text, Token55PlusWireless, r.inserts, Category55Plus, CategoryWireless)
		text = r.replaceLookup(text, Token55PlusFiber, r.inserts, Category55Plus, CategoryFiber)
	} else {
		text = strings.ReplaceAll(text, Token55PlusWireless, "")
		text = strings.ReplaceAll(text, Token55PlusFiber, "")
	}

	if c.UpgradeType != "" && c.UpgradeType != domain.UpgradeNotSure {
		text = r.replaceLookup(text, TokenUpgradeInfo, r.pricing, CategoryUpgrades, string(c.UpgradeType))
		text = r.replaceLookup(text, TokenUpgradeDetails, r.pricing, CategoryUpgrades, string(c.UpgradeType))
	} else {
		text = strings.ReplaceAll(text, TokenUpgradeInfo, "")
		text = strings.ReplaceAll(text, TokenUpgradeDetails, "")
	}

	visit := visitPhrasesByType[c.EffectiveVisitType()]
	text = strings.ReplaceAll(text, TokenVisitDetails, visit.details)
	text = strings.ReplaceAll(text, TokenVisitAction, visit.action)

	if strings.Contains(text, TokenSummary) {
		short, err := r.summaries.Short(c)
		if err != nil {
			return Rendered{}, err
		}
		text = strings.ReplaceAll(text, TokenSummary, short)
	}

	out := cleanup(text)
	if len(out.Unresolved) > 0 {
		r.logger.Warn("unresolved template tokens", "node_id", node.ID, "tokens", out.Unresolved)
	}
	return out, nil
}

// OptionLabel renders an option's button text. Only {{EVENT_CTA}} is
// substituted; any other token is stripped.
func (r *Resolver) OptionLabel(opt domain.Option, c domain.CallContext) string {
	cta := regularCTA
	if c.EventSale {
		cta = eventCTA
	}
	return cleanup(strings.ReplaceAll(opt.Text, TokenEventCTA, cta)).Text
}

// replaceLookup substitutes token with table[category][key]. A missing entry
// leaves the token in place so the cleanup pass reports it.
func (r *Resolver) replaceLookup(text, token string, table domain.LookupTable, category, key string) string {
	if !strings.Contains(text, token) {
		return text
	}
	v, ok := table.Lookup(category, key)
	if !ok {
		return text
	}
	return strings.ReplaceAll(text, token, v)
}

// cleanup strips leftover tokens until none remain (stripping can join the
// halves of a nested token), then drops stray openers and collapses whitespace.
func cleanup(text string) Rendered {
	var unresolved []string
	for tokenPattern.MatchString(text) {
		unresolved = append(unresolved, tokenPattern.FindAllString(text, -1)...)
		text = tokenPattern.ReplaceAllString(text, "")
	}
	if strings.Contains(text, "{{") {
		unresolved = append(unresolved, "{{")
		text = strings.ReplaceAll(text, "{{", "")
	}
	text = whitespacePattern.ReplaceAllString(text, " ")
	return Rendered{
		Text:       strings.TrimSpace(text),
		Unresolved: unresolved,
	}
}

var knownTokens = map[string]bool{
	TokenCustomerName:   true,
	TokenRepName:        true,
	TokenWirelessPrice:  true,
	TokenFiberPrice:     true,
	Token55PlusWireless: true,
	Token55PlusFiber:    true,
	TokenUpgradeInfo:    true,
	TokenUpgradeDetails: true,
	TokenVisitDetails:   true,
	TokenVisitAction:    true,
	TokenSummary:        true,
	TokenEventCTA:       true,
}

// Tokens returns the placeholder tokens found in text, in order.
func Tokens(text string) []string {
	return tokenPattern.FindAllString(text, -1)
}

// IsKnownToken reports whether token is substituted by the resolver.
func IsKnownToken(token string) bool {
	return knownTokens[token]
}
