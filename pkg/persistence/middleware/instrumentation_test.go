package middleware

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/lattice/pkg/adapters/memory"
	"github.com/aretw0/lattice/pkg/observability"
)

func TestInstrumentation_CountsOperations(t *testing.T) {
	ctx := context.Background()
	metrics := observability.NewStoreMetrics(prometheus.NewRegistry())
	store := Chain(memory.NewStore(), NewInstrumentation(metrics, nil))

	require.NoError(t, store.Save(ctx, testDoc()))
	_, err := store.Load(ctx, "coins")
	require.NoError(t, err)
	_, err = store.Load(ctx, "missing")
	require.Error(t, err)

	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.Operations.WithLabelValues("save", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.Operations.WithLabelValues("load", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.Operations.WithLabelValues("load", "error")))
}

func TestInstrumentation_NilMetricsIsSafe(t *testing.T) {
	ctx := context.Background()
	store := Chain(memory.NewStore(), NewInstrumentation(nil, nil))

	require.NoError(t, store.Save(ctx, testDoc()))
	names, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"coins"}, names)
}

func TestChain_Order(t *testing.T) {
	ctx := context.Background()
	backing := memory.NewStore()
	metrics := observability.NewStoreMetrics(prometheus.NewRegistry())

	// Instrumentation outermost, encryption next: the counter sees the
	// caller's operation, the backing store sees only envelopes.
	store := Chain(backing,
		NewInstrumentation(metrics, nil),
		NewEncryption(EncryptionConfig{ActiveKey: testKey(7)}),
	)

	require.NoError(t, store.Save(ctx, testDoc()))

	raw, err := backing.Load(ctx, "coins")
	require.NoError(t, err)
	assert.NotEmpty(t, raw.Metadata[envelopeKey])
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.Operations.WithLabelValues("save", "ok")))
}
