package middleware

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/lattice/pkg/adapters/memory"
	"github.com/aretw0/lattice/pkg/markov"
	"github.com/aretw0/lattice/pkg/schema"
)

func testKey(b byte) []byte {
	return bytes.Repeat([]byte{b}, 32)
}

func testDoc() *schema.Document {
	return &schema.Document{
		Name:       "coins",
		States:     []string{"Fair", "Loaded"},
		Symbols:    []string{"H", "T"},
		Initial:    []float64{0.5, 0.5},
		Transition: [][]float64{{0.75, 0.25}, {0.25, 0.75}},
		Emission:   [][]float64{{0.5, 0.5}, {0.25, 0.75}},
	}
}

func TestEncryption_RoundTrip(t *testing.T) {
	ctx := context.Background()
	backing := memory.NewStore()
	store := Chain(backing, NewEncryption(EncryptionConfig{ActiveKey: testKey(1)}))

	require.NoError(t, store.Save(ctx, testDoc()))

	got, err := store.Load(ctx, "coins")
	require.NoError(t, err)
	assert.Equal(t, testDoc(), got)
}

func TestEncryption_AtRestIsOpaque(t *testing.T) {
	ctx := context.Background()
	backing := memory.NewStore()
	store := Chain(backing, NewEncryption(EncryptionConfig{ActiveKey: testKey(1)}))

	require.NoError(t, store.Save(ctx, testDoc()))

	// The wrapped store only sees the envelope: name plus ciphertext.
	raw, err := backing.Load(ctx, "coins")
	require.NoError(t, err)
	assert.Nil(t, raw.Initial)
	assert.Nil(t, raw.Transition)
	assert.Empty(t, raw.States)
	assert.NotEmpty(t, raw.Metadata[envelopeKey])
}

func TestEncryption_ListAndDeletePassThrough(t *testing.T) {
	ctx := context.Background()
	store := Chain(memory.NewStore(), NewEncryption(EncryptionConfig{ActiveKey: testKey(1)}))

	require.NoError(t, store.Save(ctx, testDoc()))

	names, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"coins"}, names)

	require.NoError(t, store.Delete(ctx, "coins"))
	_, err = store.Load(ctx, "coins")
	assert.ErrorIs(t, err, markov.ErrModelNotFound)
}

func TestEncryption_WrongKeyFails(t *testing.T) {
	ctx := context.Background()
	backing := memory.NewStore()

	writer := Chain(backing, NewEncryption(EncryptionConfig{ActiveKey: testKey(1)}))
	require.NoError(t, writer.Save(ctx, testDoc()))

	reader := Chain(backing, NewEncryption(EncryptionConfig{ActiveKey: testKey(2)}))
	_, err := reader.Load(ctx, "coins")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decrypt")
}

func TestEncryption_KeyRotation(t *testing.T) {
	ctx := context.Background()
	backing := memory.NewStore()

	oldStore := Chain(backing, NewEncryption(EncryptionConfig{ActiveKey: testKey(1)}))
	require.NoError(t, oldStore.Save(ctx, testDoc()))

	// New active key, old key demoted to fallback: existing data stays readable.
	rotated := Chain(backing, NewEncryption(EncryptionConfig{
		ActiveKey:    testKey(2),
		FallbackKeys: [][]byte{testKey(1)},
	}))

	got, err := rotated.Load(ctx, "coins")
	require.NoError(t, err)
	assert.Equal(t, "coins", got.Name)
}

func TestEncryption_RejectsPlaintextDocuments(t *testing.T) {
	ctx := context.Background()
	backing := memory.NewStore()
	require.NoError(t, backing.Save(ctx, testDoc()))

	store := Chain(backing, NewEncryption(EncryptionConfig{ActiveKey: testKey(1)}))
	_, err := store.Load(ctx, "coins")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "envelope")
}

func TestNewEncryption_BadKeyPanics(t *testing.T) {
	assert.Panics(t, func() {
		NewEncryption(EncryptionConfig{ActiveKey: []byte("short")})
	})
}
