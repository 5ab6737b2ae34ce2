package tests

import (
	"context"
	"errors"
	"testing"

	"github.com/drelynlikescode26/callflow-assist/pkg/domain"
	"github.com/drelynlikescode26/callflow-assist/pkg/ports"
)

// GraphLoaderContractTest is a reusable test suite that verifies if an adapter complies with ports.GraphLoader.
// expectedIDs lists the node ids the loaded graph must contain.
func GraphLoaderContractTest(t *testing.T, loader ports.GraphLoader, expectedIDs []string) {
	t.Helper()
	ctx := context.Background()

	t.Run("Load_Success", func(t *testing.T) {
		g, err := loader.Load(ctx)
		if err != nil {
			t.Fatalf("unexpected error loading graph: %v", err)
		}
		if len(g.Nodes) != len(expectedIDs) {
			t.Errorf("expected %d nodes, got %d", len(expectedIDs), len(g.Nodes))
		}
		for _, id := range expectedIDs {
			n, ok := g.Node(id)
			if !ok {
				t.Errorf("node %s missing from graph", id)
				continue
			}
			if n.ID != id {
				t.Errorf("node %s carries id %q", id, n.ID)
			}
		}
	})

	t.Run("Start_Node_Present", func(t *testing.T) {
		g, err := loader.Load(ctx)
		if err != nil {
			t.Fatalf("unexpected error loading graph: %v", err)
		}
		start := g.StartNodeID
		if start == "" {
			start = domain.DefaultStartNodeID
		}
		if _, ok := g.Node(start); !ok {
			t.Errorf("start node %s missing from graph", start)
		}
	})

	t.Run("Load_Is_Stable", func(t *testing.T) {
		a, err := loader.Load(ctx)
		if err != nil {
			t.Fatalf("unexpected error loading graph: %v", err)
		}
		b, err := loader.Load(ctx)
		if err != nil {
			t.Fatalf("unexpected error loading graph: %v", err)
		}
		if len(a.NodeIDs()) != len(b.NodeIDs()) {
			t.Errorf("consecutive loads disagree: %v vs %v", a.NodeIDs(), b.NodeIDs())
		}
	})
}

// ConfigErrorContractTest verifies that a loader built over a broken source
// reports a *domain.ConfigError.
func ConfigErrorContractTest(t *testing.T, loader ports.GraphLoader) {
	t.Helper()
	_, err := loader.Load(context.Background())
	if err == nil {
		t.Fatal("expected an error for a broken graph source")
	}
	if !errors.Is(err, domain.ErrConfig) {
		t.Errorf("expected ErrConfig, got %v", err)
	}
}
