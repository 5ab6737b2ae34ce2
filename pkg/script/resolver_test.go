package script_test

import (
	"strings"
	"testing"

	"github.com/drelynlikescode26/callflow-assist/pkg/domain"
	"github.com/drelynlikescode26/callflow-assist/pkg/script"
	"github.com/drelynlikescode26/callflow-assist/pkg/summary"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	pricing = domain.LookupTable{
		"wireless": {"starting": "$30/line"},
		"fiber":    {"starting": "$55/mo"},
		"upgrades": {"iphone": "the new iPhone for $0 down", "android": "the latest Galaxy for $5/mo"},
	}
	inserts = domain.LookupTable{
		"55plus": {"wireless": "Plus 55+ lines are discounted.", "fiber": "Plus a senior discount!"},
	}
)

func TestResolve_SeniorFiberScenario(t *testing.T) {
	r := script.New(
		domain.LookupTable{"fiber": {"starting": "$55/mo"}},
		domain.LookupTable{"55plus": {"fiber": "Plus a senior discount!"}},
	)
	node := &domain.Node{
		ID:     "fiber_pitch",
		Script: "Hi {{CUSTOMER_NAME}}, fiber runs {{FIBER_PRICE}}. {{55PLUS_FIBER}}",
	}

	out, err := r.Resolve(node, domain.CallContext{LeadType: domain.LeadFiber, Is55Plus: true})
	require.NoError(t, err)
	assert.Equal(t, "Hi there, fiber runs $55/mo. Plus a senior discount!", out.Text)
	assert.Empty(t, out.Unresolved)
}

func TestResolve(t *testing.T) {
	r := script.New(pricing, inserts, script.WithSummaryGenerator(summary.New(summary.WithStrict(true))))

	tests := []struct {
		name string
		node domain.Node
		ctx  domain.CallContext
		want string
	}{
		{
			name: "Branch Variant Replaces Template",
			node: domain.Node{
				Script:   "Generic pitch for {{CUSTOMER_NAME}}.",
				Variants: map[string]string{"wireless": "Wireless pitch for {{CUSTOMER_NAME}} at {{WIRELESS_PRICE}}."},
			},
			ctx:  domain.CallContext{LeadType: domain.LeadWireless, CustomerName: "Dana"},
			want: "Wireless pitch for Dana at $30/line.",
		},
		{
			name: "Variant Ignored For Other Branch",
			node: domain.Node{
				Script:   "Generic pitch.",
				Variants: map[string]string{"wireless": "Wireless pitch."},
			},
			ctx:  domain.CallContext{LeadType: domain.LeadFiber},
			want: "Generic pitch.",
		},
		{
			name: "Rep Name Has No Fallback",
			node: domain.Node{Script: "This is {{REP_NAME}} calling."},
			ctx:  domain.CallContext{},
			want: "This is calling.",
		},
		{
			name: "55+ Inserts Blank When Not Eligible",
			node: domain.Node{Script: "Fiber is {{FIBER_PRICE}}. {{55PLUS_FIBER}} {{55PLUS_WIRELESS}} Ready?"},
			ctx:  domain.CallContext{},
			want: "Fiber is $55/mo. Ready?",
		},
		{
			name: "Upgrade Info And Details Share Lookup",
			node: domain.Node{Script: "Good news: {{UPGRADE_INFO}}. Again, {{UPGRADE_DETAILS}}."},
			ctx:  domain.CallContext{LeadType: domain.LeadUpgrades, UpgradeType: domain.UpgradeIPhone},
			want: "Good news: the new iPhone for $0 down. Again, the new iPhone for $0 down.",
		},
		{
			name: "Upgrade Not Sure Blanks Tokens",
			node: domain.Node{Script: "Options: {{UPGRADE_INFO}} done."},
			ctx:  domain.CallContext{LeadType: domain.LeadUpgrades, UpgradeType: domain.UpgradeNotSure},
			want: "Options: done.",
		},
		{
			name: "Mobile Visit Phrases",
			node: domain.Node{Script: "We can meet {{VISIT_DETAILS}}. Or {{VISIT_ACTION}}."},
			ctx:  domain.CallContext{VisitType: domain.VisitMobile},
			want: "We can meet with our mobile team, who will come right to your home or office. Or have our mobile team come to you.",
		},
		{
			name: "Store Visit Is Default",
			node: domain.Node{Script: "Just {{VISIT_ACTION}}."},
			ctx:  domain.CallContext{},
			want: "Just stop by the store.",
		},
		{
			name: "Summary Token",
			node: domain.Node{Script: "Recap: {{SUMMARY}}"},
			ctx:  domain.CallContext{CustomerName: "Dana", LeadType: domain.LeadFiber},
			want: "Recap: Dana • Fiber",
		},
		{
			name: "Unknown Tokens Stripped And Whitespace Collapsed",
			node: domain.Node{Script: "  Hello   {{MYSTERY}}\n\n world  "},
			ctx:  domain.CallContext{},
			want: "Hello world",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := r.Resolve(&tt.node, tt.ctx)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out.Text)
		})
	}
}

func TestResolve_ReportsUnresolvedTokens(t *testing.T) {
	r := script.New(nil, nil)
	out, err := r.Resolve(&domain.Node{Script: "Price {{WIRELESS_PRICE}} and {{NOPE}}"}, domain.CallContext{})
	require.NoError(t, err)
	assert.Equal(t, "Price and", out.Text)
	assert.ElementsMatch(t, []string{"{{WIRELESS_PRICE}}", "{{NOPE}}"}, out.Unresolved)
}

func TestResolve_NeverLeavesTokenOpeners(t *testing.T) {
	r := script.New(pricing, inserts)
	inputs := []string{
		"{{{{NESTED}}}}",
		"{{A{{B}}C}}",
		"open {{ never closed",
		"{{{{{",
		"{{SUMMARY}}{{",
	}
	for _, in := range inputs {
		out, err := r.Resolve(&domain.Node{Script: in}, domain.CallContext{Is55Plus: true})
		require.NoError(t, err)
		assert.False(t, strings.Contains(out.Text, "{{"), "input %q produced %q", in, out.Text)
	}
}

func TestResolve_Deterministic(t *testing.T) {
	r := script.New(pricing, inserts)
	node := &domain.Node{Script: "Hi {{CUSTOMER_NAME}} {{WIRELESS_PRICE}} {{55PLUS_WIRELESS}} {{SUMMARY}}"}
	ctx := domain.CallContext{LeadType: domain.LeadWireless, Is55Plus: true, CustomerName: "Dana"}

	first, err := r.Resolve(node, ctx)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, err := r.Resolve(node, ctx)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestResolve_StrictSummaryError(t *testing.T) {
	r := script.New(nil, nil, script.WithSummaryGenerator(summary.New(summary.WithStrict(true))))
	_, err := r.Resolve(&domain.Node{Script: "{{SUMMARY}}"}, domain.CallContext{Outcome: domain.Outcome("lost")})
	assert.ErrorIs(t, err, domain.ErrUnmappedEnum)
}

func TestOptionLabel(t *testing.T) {
	r := script.New(nil, nil)
	opt := domain.Option{Text: "{{EVENT_CTA}} {{OTHER}}"}

	assert.Equal(t, "Lock In Event Pricing", r.OptionLabel(opt, domain.CallContext{EventSale: true}))
	assert.Equal(t, "Book Appointment", r.OptionLabel(opt, domain.CallContext{}))
	assert.Equal(t, "Hi", r.OptionLabel(domain.Option{Text: "Hi {{CUSTOMER_NAME}}"}, domain.CallContext{CustomerName: "Dana"}))
}

func TestTokens(t *testing.T) {
	tokens := script.Tokens("Hi {{CUSTOMER_NAME}}, {{MYSTERY}} at {{FIBER_PRICE}}")
	assert.Equal(t, []string{"{{CUSTOMER_NAME}}", "{{MYSTERY}}", "{{FIBER_PRICE}}"}, tokens)
	assert.True(t, script.IsKnownToken(tokens[0]))
	assert.False(t, script.IsKnownToken(tokens[1]))
	assert.Empty(t, script.Tokens("no tokens here"))
}
