package tests

import (
	"context"
	"errors"
	"reflect"
	"sort"
	"testing"

	"github.com/aretw0/lattice/pkg/markov"
	"github.com/aretw0/lattice/pkg/ports"
	"github.com/aretw0/lattice/pkg/schema"
)

func contractDoc(name string) *schema.Document {
	return &schema.Document{
		Name:       name,
		States:     []string{"Fair", "Loaded"},
		Symbols:    []string{"heads", "tails"},
		Initial:    []float64{0.5, 0.5},
		Transition: [][]float64{{0.9, 0.1}, {0.1, 0.9}},
		Emission:   [][]float64{{0.5, 0.5}, {0.75, 0.25}},
	}
}

// ModelStoreContractTest is a reusable test suite that verifies if an adapter
// complies with ports.ModelStore. The store must start empty.
func ModelStoreContractTest(t *testing.T, store ports.ModelStore) {
	t.Helper()
	ctx := context.Background()

	docA := contractDoc("alpha")
	docB := contractDoc("beta")

	t.Run("SaveLoad_RoundTrip", func(t *testing.T) {
		if err := store.Save(ctx, docA); err != nil {
			t.Fatalf("unexpected error saving document: %v", err)
		}

		got, err := store.Load(ctx, "alpha")
		if err != nil {
			t.Fatalf("unexpected error loading document: %v", err)
		}
		if !reflect.DeepEqual(got, docA) {
			t.Errorf("document mismatch. got %+v, want %+v", got, docA)
		}
	})

	t.Run("Load_NotFound", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-model")
		if !errors.Is(err, markov.ErrModelNotFound) {
			t.Errorf("expected ErrModelNotFound, got %v", err)
		}
	})

	t.Run("Save_Overwrite", func(t *testing.T) {
		updated := docA.Clone()
		updated.Description = "updated"
		if err := store.Save(ctx, updated); err != nil {
			t.Fatalf("unexpected error overwriting document: %v", err)
		}

		got, err := store.Load(ctx, "alpha")
		if err != nil {
			t.Fatalf("unexpected error loading document: %v", err)
		}
		if got.Description != "updated" {
			t.Errorf("overwrite not visible. got description %q", got.Description)
		}
	})

	t.Run("List_Sorted", func(t *testing.T) {
		if err := store.Save(ctx, docB); err != nil {
			t.Fatalf("unexpected error saving document: %v", err)
		}

		names, err := store.List(ctx)
		if err != nil {
			t.Fatalf("unexpected error listing documents: %v", err)
		}
		if !reflect.DeepEqual(names, []string{"alpha", "beta"}) {
			t.Errorf("expected [alpha beta], got %v", names)
		}
		if !sort.StringsAreSorted(names) {
			t.Errorf("names not sorted: %v", names)
		}
	})

	t.Run("Delete_Idempotent", func(t *testing.T) {
		if err := store.Delete(ctx, "beta"); err != nil {
			t.Fatalf("unexpected error deleting document: %v", err)
		}
		if err := store.Delete(ctx, "beta"); err != nil {
			t.Errorf("second delete should be a no-op, got %v", err)
		}
		if _, err := store.Load(ctx, "beta"); !errors.Is(err, markov.ErrModelNotFound) {
			t.Errorf("expected ErrModelNotFound after delete, got %v", err)
		}
	})
}

// LibraryContractTest is a reusable test suite that verifies if an adapter
// complies with ports.Library. wantNames are the documents the library is
// expected to serve.
func LibraryContractTest(t *testing.T, lib ports.Library, wantNames []string) {
	t.Helper()
	ctx := context.Background()

	t.Run("List", func(t *testing.T) {
		names, err := lib.List(ctx)
		if err != nil {
			t.Fatalf("unexpected error listing documents: %v", err)
		}

		lookup := make(map[string]bool)
		for _, name := range names {
			lookup[name] = true
		}
		for _, name := range wantNames {
			if !lookup[name] {
				t.Errorf("document %s missing from list", name)
			}
		}
		if len(names) != len(wantNames) {
			t.Errorf("expected %d documents, got %d", len(wantNames), len(names))
		}
	})

	t.Run("Get_Success", func(t *testing.T) {
		for _, name := range wantNames {
			doc, err := lib.Get(ctx, name)
			if err != nil {
				t.Fatalf("unexpected error getting document %s: %v", name, err)
			}
			if doc.Name != name {
				t.Errorf("document name mismatch. got %q, want %q", doc.Name, name)
			}
		}
	})

	t.Run("Get_NotFound", func(t *testing.T) {
		_, err := lib.Get(ctx, "non-existent-model")
		if !errors.Is(err, markov.ErrModelNotFound) {
			t.Errorf("expected ErrModelNotFound, got %v", err)
		}
	})
}
