package runtime_test

import (
	"testing"

	"github.com/drelynlikescode26/callflow-assist/internal/runtime"
	"github.com/drelynlikescode26/callflow-assist/pkg/domain"
	"github.com/drelynlikescode26/callflow-assist/pkg/dsl"
	"github.com/stretchr/testify/require"
)

// salesGraph is a compact version of the store call script.
func salesGraph(t *testing.T) *domain.Graph {
	t.Helper()
	b := dsl.New()

	b.Add("opening").
		Kind(domain.KindPermission).
		Script("Hi {{CUSTOMER_NAME}}, this is {{REP_NAME}}.").
		Option("Wireless", "pitch").Set(domain.FieldLeadType, "wireless").
		Option("Fiber", "pitch").Set(domain.FieldLeadType, "fiber").
		Option("Upgrade", "pitch").Set(domain.FieldLeadType, "upgrades").
		Option("Not sure", "pitch").Set(domain.FieldLeadType, "unknown").
		Option("55+ pricing", "senior").VisibleWhen(domain.FieldIs55Plus)

	b.Add("pitch").
		Kind(domain.KindPitch).
		Script("Plans start at {{WIRELESS_PRICE}}. {{55PLUS_WIRELESS}}").
		Variant("fiber", "Fiber runs {{FIBER_PRICE}}. {{55PLUS_FIBER}}").
		Variant("upgrades", "Your {{UPGRADE_INFO}} is ready.").
		Option("Book it", "close").Set(domain.FieldOutcome, "booked").
		Option("Call me later", "callback").Set(domain.FieldOutcome, "callback").
		Option("{{EVENT_CTA}}", "close").Set(domain.FieldOutcome, "booked").VisibleWhen(domain.FieldEventSale)

	b.Add("qualify_unknown").
		Kind(domain.KindQualifier).
		Script("Which service are you interested in?").
		Option("Wireless", "pitch").Set(domain.FieldLeadType, "wireless").
		Option("Fiber", "pitch").Set(domain.FieldLeadType, "fiber")

	b.Add("qualify_upgrade").
		Kind(domain.KindQualifier).
		Script("iPhone or Android?").
		Option("iPhone", "pitch").Set(domain.FieldUpgradeType, "iphone").
		Option("Android", "pitch").Set(domain.FieldUpgradeType, "android")

	b.Add("senior").
		Kind(domain.KindDetails).
		Script("{{55PLUS_WIRELESS}}").
		Option("Continue", "pitch").Set(domain.FieldLeadType, "wireless")

	b.Add("close").
		Kind(domain.KindClose).
		Script("So far: {{SUMMARY}}. When works best?").
		Option("Tomorrow morning", "success").Set(domain.FieldAppointmentTime, "tomorrow_morning")

	b.Add("callback").
		Kind(domain.KindReschedule).
		Script("When should we call {{CUSTOMER_NAME}} back?").
		Option("Tomorrow", "done").Set(domain.FieldCallbackTime, "tomorrow")

	b.Add("success").Kind(domain.KindSuccess).Script("You're booked!").Terminal()
	b.Add("done").Kind(domain.KindSuccess).Script("Talk soon.").Terminal()

	b.Pricing("wireless", "starting", "$25/mo").
		Pricing("fiber", "starting", "$55/mo").
		Pricing("upgrades", "iphone", "iPhone 16 offer").
		Pricing("upgrades", "android", "Galaxy S25 offer").
		Insert("55plus", "wireless", "Ask about 55+ lines.").
		Insert("55plus", "fiber", "Plus a senior discount!")

	g, err := b.Build()
	require.NoError(t, err)
	return g
}

func newEngine(t *testing.T, g *domain.Graph, opts ...runtime.EngineOption) *runtime.Engine {
	t.Helper()
	opts = append([]runtime.EngineOption{runtime.WithCallIDGenerator(func() string { return "call-1" })}, opts...)
	e, err := runtime.NewEngine(g, opts...)
	require.NoError(t, err)
	return e
}

func optionByText(t *testing.T, v *domain.ResolvedView, text string) domain.Option {
	t.Helper()
	for _, o := range v.Options {
		if o.Option.Text == text {
			return o.Option
		}
	}
	t.Fatalf("option %q not offered at %s", text, v.NodeID)
	return domain.Option{}
}

func labels(v *domain.ResolvedView) []string {
	out := make([]string, len(v.Options))
	for i, o := range v.Options {
		out[i] = o.Label
	}
	return out
}
