package observability_test

import (
	"testing"

	"github.com/aretw0/lattice/pkg/observability"
	"github.com/stretchr/testify/assert"
)

func TestPathStats(t *testing.T) {
	stats := observability.NewPathStats(2)

	stats.Observe([]int{0, 0, 1, 1, 1})
	stats.Observe([]int{1, 1, 1})

	assert.Equal(t, 2, stats.Sequences)
	assert.Equal(t, 8, stats.Length)
	assert.Equal(t, []int{2, 6}, stats.Counts)
	assert.Equal(t, 1, stats.Switches)

	assert.InDelta(t, 0.25, stats.Fraction(0), 1e-12)
	assert.InDelta(t, 0.75, stats.Fraction(1), 1e-12)
	assert.Equal(t, 1, stats.Dominant())
}

func TestPathStats_Empty(t *testing.T) {
	stats := observability.NewPathStats(3)

	assert.Equal(t, 0.0, stats.Fraction(0))
	assert.Equal(t, 0, stats.Dominant())

	stats.Observe(nil)
	assert.Equal(t, 1, stats.Sequences)
	assert.Equal(t, 0, stats.Length)
}

func TestPathStats_TieBreaksLow(t *testing.T) {
	stats := observability.NewPathStats(2)
	stats.Observe([]int{1, 0})

	assert.Equal(t, 0, stats.Dominant())
}

func TestPathStats_OutOfRangeStates(t *testing.T) {
	stats := observability.NewPathStats(1)
	stats.Observe([]int{0, 5, 0})

	assert.Equal(t, 3, stats.Length)
	assert.Equal(t, []int{2}, stats.Counts)
	assert.Equal(t, 2, stats.Switches)
}
