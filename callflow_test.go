package callflow_test

import (
	"context"
	"testing"

	"github.com/drelynlikescode26/callflow-assist"
	"github.com/drelynlikescode26/callflow-assist/internal/testutils"
	"github.com/drelynlikescode26/callflow-assist/pkg/adapters/memory"
	"github.com/drelynlikescode26/callflow-assist/pkg/domain"
	"github.com/drelynlikescode26/callflow-assist/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleScript = "examples/callflow.yaml"

func labelsOf(v *domain.ResolvedView) []string {
	out := make([]string, len(v.Options))
	for i, o := range v.Options {
		out[i] = o.Label
	}
	return out
}

func choose(t *testing.T, eng *callflow.Engine, v *domain.ResolvedView, label string) *domain.ResolvedView {
	t.Helper()
	for _, o := range v.Options {
		if o.Label == label {
			next, err := eng.ChooseIndex(o.Index)
			require.NoError(t, err)
			return next
		}
	}
	require.Failf(t, "option not found", "%q not in %v", label, labelsOf(v))
	return nil
}

func TestSampleScript_EventSaleBooking(t *testing.T) {
	eng, err := callflow.New(sampleScript, callflow.WithCallIDGenerator(func() string { return "call-1" }))
	require.NoError(t, err)
	assert.Equal(t, "callflow.yaml", eng.Name)

	v, err := eng.Start(domain.CallContext{CustomerName: "Dana", RepName: "Sam"})
	require.NoError(t, err)
	v = choose(t, eng, v, "Yes, go ahead")
	v = choose(t, eng, v, "Wireless")
	v = choose(t, eng, v, "No")

	require.Equal(t, "pitch", v.NodeID)
	assert.Equal(t, "Right now our wireless plans start at $25 per line a month. Would you like to hear how that works for you?", v.Text)

	v = choose(t, eng, v, "Sounds good, tell me more")
	assert.Equal(t, "We can set everything up at your local store, where a specialist will walk you through everything in person. It only takes about twenty minutes.", v.Text)

	v = choose(t, eng, v, "Mention this week's event sale")
	v = choose(t, eng, v, "Continue")
	v = choose(t, eng, v, "Mobile visit")

	require.Equal(t, "appointment", v.NodeID)
	assert.Equal(t, "Perfect. So I have: Dana • Wireless. When works best to have our mobile team come to you?", v.Text)
	assert.Equal(t, "Lock In Event Pricing: today evening", v.Options[0].Label)
	assert.Len(t, v.Options, 5)

	v = choose(t, eng, v, "Lock In Event Pricing: today evening")
	assert.Equal(t, "booked", v.NodeID)
	assert.True(t, v.Terminal)
	assert.Equal(t, "Closing", v.Progress)
	assert.Equal(t, "You're all set, Dana! Dana • Wireless • Appointment: Today Evening. You'll get a text confirmation shortly. Thanks for your time!", v.Text)

	s, err := eng.Summary("prefers texts")
	require.NoError(t, err)
	assert.Equal(t, "Outcome: Appointment Booked\nRep: Sam\nCustomer: Dana\nLead Type: Wireless\nAppointment: Today Evening\nVisit Type: Mobile Visit\nEvent Sale: Yes\nNotes: prefers texts\n", s.CRM)
	assert.Contains(t, s.Confirmation, "Hi Dana, this is Sam confirming your mobile visit appointment for today evening")
}

func TestSampleScript_UnknownLeadAndBack(t *testing.T) {
	eng, err := callflow.New(sampleScript)
	require.NoError(t, err)

	v, err := eng.Start(domain.CallContext{CustomerName: "Dana"})
	require.NoError(t, err)
	v = choose(t, eng, v, "Yes, go ahead")
	v = choose(t, eng, v, "Not sure yet")
	require.Equal(t, "qualify_unknown", v.NodeID)

	v = choose(t, eng, v, "Home internet")
	require.Equal(t, "pitch", v.NodeID)
	assert.Contains(t, v.Text, "$55 a month")

	v, err = eng.Back()
	require.NoError(t, err)
	assert.Equal(t, "qualify_unknown", v.NodeID)
	assert.Equal(t, domain.LeadUnknown, eng.Context().LeadType)
}

func TestSampleScript_UpgradeQualifier(t *testing.T) {
	eng, err := callflow.New(sampleScript)
	require.NoError(t, err)

	v, err := eng.Start(domain.CallContext{CustomerName: "Dana"})
	require.NoError(t, err)
	v = choose(t, eng, v, "Yes, go ahead")
	v = choose(t, eng, v, "Device upgrade")
	v = choose(t, eng, v, "No")
	require.Equal(t, "qualify_upgrade", v.NodeID)

	v = choose(t, eng, v, "iPhone")
	require.Equal(t, "pitch", v.NodeID)
	assert.Equal(t, "Good news, you're eligible for an upgrade. You can get the newest iPhone for $0 down with trade-in. Would you like to hear the details?", v.Text)
}

func TestSampleScript_Restart(t *testing.T) {
	eng, err := callflow.New(sampleScript, callflow.WithStickyFields(domain.FieldRepName))
	require.NoError(t, err)

	v, err := eng.Start(domain.CallContext{CustomerName: "Dana", RepName: "Sam"})
	require.NoError(t, err)
	choose(t, eng, v, "Wrong number")
	assert.Equal(t, domain.OutcomeWrongNumber, eng.Context().Outcome)

	v, err = eng.Restart()
	require.NoError(t, err)
	assert.Equal(t, "opening", v.NodeID)
	assert.Equal(t, "Sam", eng.Context().RepName)
	assert.Empty(t, eng.Context().CustomerName)
	assert.Contains(t, v.Text, "Hi, is this there?")
}

func TestNew_Errors(t *testing.T) {
	t.Run("path required", func(t *testing.T) {
		_, err := callflow.New("")
		assert.Error(t, err)
	})

	t.Run("invalid document", func(t *testing.T) {
		path := testutils.WriteDocument(t, "bad.yaml", "nodes:\n  opening:\n    kind: bogus\n    script: hi\n")
		_, err := callflow.New(path)
		assert.ErrorIs(t, err, domain.ErrConfig)
	})

	t.Run("bad redirect predicate", func(t *testing.T) {
		_, err := callflow.New(sampleScript, callflow.WithRedirectRules([]domain.RedirectRule{
			{Target: "pitch", When: "leadType ==", To: "opening"},
		}))
		assert.ErrorIs(t, err, domain.ErrConfig)
	})
}

func TestWithLoader(t *testing.T) {
	g := &domain.Graph{Nodes: map[string]domain.Node{
		"opening": {Kind: domain.KindIntro, Script: "Hello"},
	}}
	loader := memory.NewLoader(g)

	eng, err := callflow.New("in-memory", callflow.WithLoader(loader))
	require.NoError(t, err)
	assert.Same(t, loader, eng.Loader())

	v, err := eng.Start(domain.CallContext{})
	require.NoError(t, err)
	assert.True(t, v.Terminal)
}

func TestLoad_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := callflow.Load(ctx, sampleScript)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestMetricsHooks(t *testing.T) {
	m := observability.NewMetrics(prometheus.NewRegistry())
	eng, err := callflow.New(sampleScript, callflow.WithLifecycleHooks(m.Hooks()))
	require.NoError(t, err)

	v, err := eng.Start(domain.CallContext{})
	require.NoError(t, err)
	v = choose(t, eng, v, "Yes, go ahead")
	choose(t, eng, v, "Not sure yet")
	_, err = eng.Back()
	require.NoError(t, err)
	_, err = eng.NavigateTo("nowhere")
	require.Error(t, err)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Redirects.WithLabelValues("unknown-lead")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.NodeVisits.WithLabelValues("service_type", "intro")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Backs))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Errors.WithLabelValues("node_not_found")))
}
