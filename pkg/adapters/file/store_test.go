package file_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/lattice/pkg/adapters/file"
	"github.com/aretw0/lattice/pkg/ports/tests"
	"github.com/aretw0/lattice/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_Contract(t *testing.T) {
	tests.ModelStoreContractTest(t, file.New(t.TempDir()))
}

func TestStore_AsLibrary(t *testing.T) {
	store := file.New(t.TempDir())
	ctx := context.Background()

	for _, name := range []string{"coins", "weather"} {
		doc := &schema.Document{
			Name:       name,
			Initial:    []float64{1},
			Transition: [][]float64{{1}},
			Emission:   [][]float64{{0.5, 0.5}},
		}
		require.NoError(t, store.Save(ctx, doc))
	}

	tests.LibraryContractTest(t, store, []string{"coins", "weather"})
}

func TestStore_NameValidation(t *testing.T) {
	store := file.New(t.TempDir())
	ctx := context.Background()

	err := store.Save(ctx, &schema.Document{Name: "nested/escape"})
	assert.Error(t, err)

	_, err = store.Load(ctx, "../outside")
	assert.Error(t, err)

	err = store.Delete(ctx, "")
	assert.Error(t, err)
}

func TestStore_ListMissingDir(t *testing.T) {
	store := file.New(filepath.Join(t.TempDir(), "never-created"))

	names, err := store.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestStore_HandAuthoredFile(t *testing.T) {
	dir := t.TempDir()
	raw := []byte(`name: fair-coin
states: [Fair, Loaded]
symbols: [heads, tails]
initial: [0.5, 0.5]
transition:
  - [0.9, 0.1]
  - [0.1, 0.9]
emission:
  - [0.5, 0.5]
  - [0.75, 0.25]
`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "fair-coin.yaml"), raw, 0644))

	store := file.New(dir)
	doc, err := store.Load(context.Background(), "fair-coin")
	require.NoError(t, err)
	assert.Equal(t, "fair-coin", doc.Name)
	assert.Equal(t, []string{"heads", "tails"}, doc.Symbols)
	assert.Equal(t, 0.75, doc.Emission[1][0])

	names, err := store.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"fair-coin"}, names)
}
