package tests

import (
	"context"
	"errors"
	"testing"

	"github.com/aretw0/nfasim/pkg/domain"
	"github.com/aretw0/nfasim/pkg/ports"
)

// DefinitionLoaderContractTest is a reusable test suite that verifies if an adapter complies with ports.DefinitionLoader.
// setupData holds the definitions the loader is expected to serve, keyed by name.
func DefinitionLoaderContractTest(t *testing.T, loader ports.DefinitionLoader, setupData map[string]*domain.Definition) {
	t.Helper()
	ctx := context.Background()

	// 1. Test Load (Success)
	t.Run("Load_Success", func(t *testing.T) {
		for name, expected := range setupData {
			def, err := loader.Load(ctx, name)
			if err != nil {
				t.Fatalf("unexpected error loading %s: %v", name, err)
			}
			if def.Name != name {
				t.Errorf("name mismatch for %s: got %q", name, def.Name)
			}
			if len(def.States) != len(expected.States) {
				t.Errorf("states mismatch for %s. got %v, want %v", name, def.States, expected.States)
			}
			if len(def.Transitions) != len(expected.Transitions) {
				t.Errorf("transitions mismatch for %s. got %d, want %d", name, len(def.Transitions), len(expected.Transitions))
			}
		}
	})

	// 2. Test Load (NotFound)
	t.Run("Load_NotFound", func(t *testing.T) {
		_, err := loader.Load(ctx, "non-existent-automaton")
		if !errors.Is(err, domain.ErrDefinitionNotFound) {
			t.Errorf("expected ErrDefinitionNotFound, got %v", err)
		}
	})

	// 3. Test List
	t.Run("List", func(t *testing.T) {
		names, err := loader.List(ctx)
		if err != nil {
			t.Fatalf("unexpected error listing definitions: %v", err)
		}

		if len(names) != len(setupData) {
			t.Errorf("expected %d definitions, got %d", len(setupData), len(names))
		}

		lookup := make(map[string]bool)
		for _, name := range names {
			lookup[name] = true
		}

		for name := range setupData {
			if !lookup[name] {
				t.Errorf("definition %s missing from list", name)
			}
		}
	})
}
