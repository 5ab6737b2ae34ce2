package runtime_test

import (
	"errors"
	"testing"

	"github.com/drelynlikescode26/callflow-assist/internal/runtime"
	"github.com/drelynlikescode26/callflow-assist/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngine_Start(t *testing.T) {
	e := newEngine(t, salesGraph(t))

	v, err := e.Start(domain.CallContext{RepName: "Sam"})
	require.NoError(t, err)

	assert.Equal(t, "opening", v.NodeID)
	assert.Equal(t, domain.KindPermission, v.Kind)
	assert.Equal(t, "Opening", v.Progress)
	assert.Equal(t, "Hi there, this is Sam.", v.Text)
	assert.Equal(t, []string{"Wireless", "Fiber", "Upgrade", "Not sure"}, labels(v))
	assert.False(t, v.CanGoBack)
	assert.False(t, v.Terminal)

	state := e.State()
	assert.Equal(t, "call-1", state.CallID)
	assert.Equal(t, []string{"opening"}, state.Path())
	assert.True(t, e.Started())
}

func TestEngine_StartResetsHistory(t *testing.T) {
	e := newEngine(t, salesGraph(t))
	v, err := e.Start(domain.NewCallContext())
	require.NoError(t, err)
	_, err = e.Choose(optionByText(t, v, "Fiber"))
	require.NoError(t, err)

	_, err = e.Start(domain.CallContext{CustomerName: "Ari"})
	require.NoError(t, err)
	assert.Equal(t, []string{"opening"}, e.State().Path())
	assert.Equal(t, domain.CallContext{CustomerName: "Ari"}, e.Context())
}

func TestEngine_VisibleWhenFiltersOptions(t *testing.T) {
	e := newEngine(t, salesGraph(t))

	v, err := e.Start(domain.CallContext{Is55Plus: true})
	require.NoError(t, err)
	require.Len(t, v.Options, 5)
	assert.Equal(t, "55+ pricing", v.Options[4].Label)
	for i, o := range v.Options {
		assert.Equal(t, i, o.Index, "indexes are positions among visible options")
	}
}

func TestEngine_OptionLabelsUseEventCTA(t *testing.T) {
	e := newEngine(t, salesGraph(t))

	v, err := e.Start(domain.CallContext{EventSale: true})
	require.NoError(t, err)
	v, err = e.Choose(optionByText(t, v, "Wireless"))
	require.NoError(t, err)

	assert.Equal(t, []string{"Book it", "Call me later", "Lock In Event Pricing"}, labels(v))
}

func TestEngine_StartErrors(t *testing.T) {
	t.Run("missing start node is a config error", func(t *testing.T) {
		g := &domain.Graph{
			StartNodeID: "intro",
			Nodes:       map[string]domain.Node{"opening": {Script: "hi"}},
		}
		e := newEngine(t, g)

		_, err := e.Start(domain.NewCallContext())
		var cfg *domain.ConfigError
		require.ErrorAs(t, err, &cfg)
		assert.Equal(t, "intro", cfg.NodeID)
		assert.False(t, e.Started())

		_, err = e.View()
		assert.ErrorIs(t, err, domain.ErrNotStarted)
	})

	t.Run("default start node is opening", func(t *testing.T) {
		g := &domain.Graph{Nodes: map[string]domain.Node{"opening": {Script: "hi"}}}
		e := newEngine(t, g)

		v, err := e.Start(domain.NewCallContext())
		require.NoError(t, err)
		assert.Equal(t, "opening", v.NodeID)
	})

	t.Run("invalid initial context", func(t *testing.T) {
		e := newEngine(t, salesGraph(t))
		_, err := e.Start(domain.CallContext{LeadType: "satellite"})
		assert.ErrorIs(t, err, domain.ErrConfig)
	})

	t.Run("nil graph", func(t *testing.T) {
		_, err := runtime.NewEngine(nil)
		assert.ErrorIs(t, err, domain.ErrConfig)
	})
}

func TestEngine_NotStarted(t *testing.T) {
	e := newEngine(t, salesGraph(t))

	_, err := e.NavigateTo("pitch")
	assert.ErrorIs(t, err, domain.ErrNotStarted)
	_, err = e.Choose(domain.Option{Text: "x", Next: "pitch"})
	assert.ErrorIs(t, err, domain.ErrNotStarted)
	_, err = e.ChooseIndex(0)
	assert.ErrorIs(t, err, domain.ErrNotStarted)
	_, err = e.Back()
	assert.ErrorIs(t, err, domain.ErrNotStarted)
}

func TestEngine_ChooseAppliesPatch(t *testing.T) {
	e := newEngine(t, salesGraph(t))

	v, err := e.Start(domain.CallContext{Is55Plus: true})
	require.NoError(t, err)

	v, err = e.Choose(optionByText(t, v, "Fiber"))
	require.NoError(t, err)

	assert.Equal(t, "pitch", v.NodeID)
	assert.Equal(t, "Pitch", v.Progress)
	assert.Equal(t, "Fiber runs $55/mo. Plus a senior discount!", v.Text)
	assert.True(t, v.CanGoBack)
	assert.Equal(t, domain.LeadFiber, e.Context().LeadType)
	assert.True(t, e.Context().Is55Plus, "patch overwrites only the named fields")
}

func TestEngine_ChooseIndex(t *testing.T) {
	e := newEngine(t, salesGraph(t))

	_, err := e.Start(domain.NewCallContext())
	require.NoError(t, err)

	v, err := e.ChooseIndex(1)
	require.NoError(t, err)
	assert.Equal(t, domain.LeadFiber, e.Context().LeadType)
	assert.Equal(t, "pitch", v.NodeID)

	t.Run("hidden options cannot be selected by index", func(t *testing.T) {
		e := newEngine(t, salesGraph(t))
		_, err := e.Start(domain.NewCallContext())
		require.NoError(t, err)

		_, err = e.ChooseIndex(4)
		var inv *domain.InvalidOptionError
		require.ErrorAs(t, err, &inv)
		assert.Equal(t, 4, inv.Index)
		assert.Equal(t, "opening", inv.NodeID)
	})

	t.Run("negative index", func(t *testing.T) {
		e := newEngine(t, salesGraph(t))
		_, err := e.Start(domain.NewCallContext())
		require.NoError(t, err)
		_, err = e.ChooseIndex(-1)
		assert.ErrorIs(t, err, domain.ErrInvalidOption)
	})
}

func TestEngine_UpgradeLeadRedirectsToQualifier(t *testing.T) {
	e := newEngine(t, salesGraph(t))

	v, err := e.Start(domain.NewCallContext())
	require.NoError(t, err)

	v, err = e.Choose(optionByText(t, v, "Upgrade"))
	require.NoError(t, err)
	assert.Equal(t, "qualify_upgrade", v.NodeID, "an upgrade lead without a device must be qualified first")
	assert.Equal(t, []string{"opening", "qualify_upgrade"}, e.State().Path())

	v, err = e.Choose(optionByText(t, v, "iPhone"))
	require.NoError(t, err)
	assert.Equal(t, "pitch", v.NodeID)
	assert.Equal(t, "Your iPhone 16 offer is ready.", v.Text)
}

func TestEngine_UnknownLeadAlwaysRedirects(t *testing.T) {
	e := newEngine(t, salesGraph(t))

	_, err := e.Start(domain.CallContext{LeadType: domain.LeadUnknown})
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		v, err := e.NavigateTo("pitch")
		require.NoError(t, err)
		assert.Equal(t, "qualify_unknown", v.NodeID)
	}

	v, err := e.View()
	require.NoError(t, err)
	v, err = e.Choose(optionByText(t, v, "Wireless"))
	require.NoError(t, err)
	assert.Equal(t, "pitch", v.NodeID)
}

func TestEngine_RedirectsDoNotChain(t *testing.T) {
	g := &domain.Graph{Nodes: map[string]domain.Node{
		"opening": {Script: "a"},
		"b":       {Script: "b"},
		"c":       {Script: "c"},
	}}
	e := newEngine(t, g, runtime.WithRedirectRules([]domain.RedirectRule{
		{Name: "opening-to-b", Target: "opening", To: "b"},
		{Name: "b-to-c", Target: "b", To: "c"},
	}))

	v, err := e.Start(domain.NewCallContext())
	require.NoError(t, err)
	assert.Equal(t, "b", v.NodeID)
}

func TestEngine_RedirectRuleSources(t *testing.T) {
	base := func() *domain.Graph {
		return &domain.Graph{Nodes: map[string]domain.Node{
			"opening":         {Script: "a"},
			"pitch":           {Script: "p"},
			"qualify_unknown": {Script: "q"},
		}}
	}

	t.Run("document rules replace defaults", func(t *testing.T) {
		g := base()
		g.Redirects = []domain.RedirectRule{}
		e := newEngine(t, g)
		_, err := e.Start(domain.CallContext{LeadType: domain.LeadUnknown})
		require.NoError(t, err)

		v, err := e.NavigateTo("pitch")
		require.NoError(t, err)
		assert.Equal(t, "pitch", v.NodeID)
	})

	t.Run("option rules replace document rules", func(t *testing.T) {
		g := base()
		g.Redirects = []domain.RedirectRule{{Target: "pitch", To: "opening"}}
		e := newEngine(t, g, runtime.WithRedirectRules(runtime.DefaultRedirectRules()))
		_, err := e.Start(domain.CallContext{LeadType: domain.LeadUnknown})
		require.NoError(t, err)

		v, err := e.NavigateTo("pitch")
		require.NoError(t, err)
		assert.Equal(t, "qualify_unknown", v.NodeID)
	})

	t.Run("invalid predicate", func(t *testing.T) {
		_, err := runtime.NewEngine(base(), runtime.WithRedirectRules([]domain.RedirectRule{
			{Name: "typo", Target: "pitch", When: `leadTyp == "unknown"`, To: "opening"},
		}))
		var cfg *domain.ConfigError
		require.ErrorAs(t, err, &cfg)
		assert.Contains(t, cfg.Error(), "typo")
	})

	t.Run("predicate must be boolean", func(t *testing.T) {
		_, err := runtime.NewEngine(base(), runtime.WithRedirectRules([]domain.RedirectRule{
			{Target: "pitch", When: `leadType`, To: "opening"},
		}))
		assert.ErrorIs(t, err, domain.ErrConfig)
	})

	t.Run("incomplete rule", func(t *testing.T) {
		_, err := runtime.NewEngine(base(), runtime.WithRedirectRules([]domain.RedirectRule{{Target: "pitch"}}))
		assert.ErrorIs(t, err, domain.ErrConfig)
	})
}

func TestEngine_ClearsUpgradeTypeOutsideUpgradeBranches(t *testing.T) {
	e := newEngine(t, salesGraph(t))

	_, err := e.Start(domain.CallContext{LeadType: domain.LeadFiber, UpgradeType: domain.UpgradeIPhone})
	require.NoError(t, err)
	assert.Empty(t, e.Context().UpgradeType)
	assert.Empty(t, e.State().History[0].Context.UpgradeType)

	_, err = e.Start(domain.CallContext{LeadType: domain.LeadBoth, UpgradeType: domain.UpgradeAndroid})
	require.NoError(t, err)
	assert.Equal(t, domain.UpgradeAndroid, e.Context().UpgradeType)
}

func TestEngine_TerminalNodes(t *testing.T) {
	e := newEngine(t, salesGraph(t))

	v, err := e.Start(domain.CallContext{CustomerName: "Dana"})
	require.NoError(t, err)
	v, err = e.Choose(optionByText(t, v, "Fiber"))
	require.NoError(t, err)
	v, err = e.Choose(optionByText(t, v, "Book it"))
	require.NoError(t, err)
	assert.Equal(t, "So far: Dana • Fiber. When works best?", v.Text)
	assert.Equal(t, "Closing", v.Progress)

	v, err = e.Choose(optionByText(t, v, "Tomorrow morning"))
	require.NoError(t, err)
	assert.True(t, v.Terminal)
	assert.NotNil(t, v.Options)
	assert.Empty(t, v.Options, "terminal nodes offer no default continue option")

	_, err = e.ChooseIndex(0)
	assert.ErrorIs(t, err, domain.ErrInvalidOption)
}

func TestEngine_HiddenOptionsDoNotMakeNodeTerminal(t *testing.T) {
	g := &domain.Graph{Nodes: map[string]domain.Node{
		"opening": {Script: "a", Options: []domain.Option{{Text: "Seniors only", Next: "opening", VisibleWhen: domain.FieldIs55Plus}}},
	}}
	e := newEngine(t, g)

	v, err := e.Start(domain.NewCallContext())
	require.NoError(t, err)
	assert.Empty(t, v.Options)
	assert.False(t, v.Terminal)
}

func TestEngine_Summary(t *testing.T) {
	e := newEngine(t, salesGraph(t))

	v, err := e.Start(domain.CallContext{CustomerName: "Dana", RepName: "Sam"})
	require.NoError(t, err)
	v, err = e.Choose(optionByText(t, v, "Wireless"))
	require.NoError(t, err)
	v, err = e.Choose(optionByText(t, v, "Call me later"))
	require.NoError(t, err)
	_, err = e.Choose(optionByText(t, v, "Tomorrow"))
	require.NoError(t, err)

	s, err := e.Summary("prefers texts")
	require.NoError(t, err)
	assert.Contains(t, s.CRM, "Callback: Tomorrow")
	assert.Contains(t, s.CRM, "Notes: prefers texts")

	short, err := e.ShortSummary()
	require.NoError(t, err)
	assert.Equal(t, "Dana • Wireless", short)
}

func TestEngine_GraphIsNotMutated(t *testing.T) {
	g := salesGraph(t)
	before := len(g.Nodes)
	e := newEngine(t, g)

	v, err := e.Start(domain.NewCallContext())
	require.NoError(t, err)
	opt := optionByText(t, v, "Fiber")
	_, err = e.Choose(opt)
	require.NoError(t, err)

	assert.Len(t, g.Nodes, before)
	assert.Equal(t, map[string]any{"leadType": "fiber"}, g.Nodes["opening"].Options[1].Set)
	assert.Same(t, g, e.Graph())
}

func TestEngine_ViewOptionsDoNotAliasGraph(t *testing.T) {
	g := salesGraph(t)
	e := newEngine(t, g)

	v, err := e.Start(domain.NewCallContext())
	require.NoError(t, err)
	for i := range v.Options {
		if v.Options[i].Option.Set != nil {
			v.Options[i].Option.Set["bogus"] = 1
		}
	}

	assert.Equal(t, map[string]any{"leadType": "wireless"}, g.Nodes["opening"].Options[0].Set)

	next, err := e.ChooseIndex(0)
	require.NoError(t, err)
	assert.Equal(t, "pitch", next.NodeID)
	assert.Equal(t, domain.LeadWireless, e.Context().LeadType)
}

func TestEngine_ErrorsMatchSentinels(t *testing.T) {
	var nf error = &domain.NodeNotFoundError{NodeID: "x"}
	assert.True(t, errors.Is(nf, domain.ErrNodeNotFound))
	assert.False(t, errors.Is(nf, domain.ErrConfig))
}

func TestEngine_RedirectRules(t *testing.T) {
	e := newEngine(t, salesGraph(t))
	rules := e.RedirectRules()
	require.Len(t, rules, 2)
	assert.Equal(t, "unknown-lead", rules[0].Name)

	e = newEngine(t, salesGraph(t), runtime.WithRedirectRules([]domain.RedirectRule{{Target: "pitch", To: "close"}}))
	assert.Equal(t, []domain.RedirectRule{{Name: "#0", Target: "pitch", To: "close"}}, e.RedirectRules())
}
