package markov_test

import (
	"math"
	"testing"

	"github.com/aretw0/lattice/pkg/markov"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validTables() ([]float64, [][]float64, [][]float64) {
	initial := []float64{0.5, 0.5}
	transition := [][]float64{
		{0.75, 0.25},
		{0.25, 0.75},
	}
	emission := [][]float64{
		{0.5, 0.5},
		{0.25, 0.75},
	}
	return initial, transition, emission
}

func TestNew_Valid(t *testing.T) {
	initial, transition, emission := validTables()

	m, err := markov.New(initial, transition, emission)
	require.NoError(t, err)

	assert.Equal(t, 2, m.NumStates())
	assert.Equal(t, 2, m.NumSymbols())
	assert.Equal(t, 0.5, m.Initial(0))
	assert.Equal(t, 0.75, m.Transition(1, 1))
	assert.Equal(t, 0.25, m.Emission(1, 0))
	assert.InDelta(t, math.Log(0.75), m.LogTransition(0, 0), 1e-12)
}

func TestNew_SingleState(t *testing.T) {
	m, err := markov.New(
		[]float64{1},
		[][]float64{{1}},
		[][]float64{{0.4, 0.6}},
	)
	require.NoError(t, err)
	assert.Equal(t, 1, m.NumStates())
	assert.Equal(t, 2, m.NumSymbols())
}

func TestNew_DimensionMismatch(t *testing.T) {
	t.Run("empty initial", func(t *testing.T) {
		_, err := markov.New(nil, nil, nil)
		var confErr *markov.ConfigurationError
		require.ErrorAs(t, err, &confErr)
		assert.Equal(t, "initial", confErr.Table)
	})

	t.Run("transition row count", func(t *testing.T) {
		initial, _, emission := validTables()
		_, err := markov.New(initial, [][]float64{{1, 0}}, emission)

		var confErr *markov.ConfigurationError
		require.ErrorAs(t, err, &confErr)
		assert.Equal(t, "transition", confErr.Table)
		assert.Contains(t, confErr.Error(), "2 rows")
	})

	t.Run("transition row width", func(t *testing.T) {
		initial, _, emission := validTables()
		_, err := markov.New(initial, [][]float64{{0.5, 0.5}, {1}}, emission)

		var confErr *markov.ConfigurationError
		require.ErrorAs(t, err, &confErr)
		assert.Equal(t, "transition", confErr.Table)
		assert.Equal(t, 1, confErr.Row)
	})

	t.Run("ragged emission", func(t *testing.T) {
		initial, transition, _ := validTables()
		_, err := markov.New(initial, transition, [][]float64{{0.5, 0.5}, {0.2, 0.3, 0.5}})

		var confErr *markov.ConfigurationError
		require.ErrorAs(t, err, &confErr)
		assert.Equal(t, "emission", confErr.Table)
		assert.Equal(t, 1, confErr.Row)
	})

	t.Run("empty emission row", func(t *testing.T) {
		_, err := markov.New([]float64{1}, [][]float64{{1}}, [][]float64{{}})
		var confErr *markov.ConfigurationError
		require.ErrorAs(t, err, &confErr)
		assert.Equal(t, "emission", confErr.Table)
	})
}

func TestNew_ProbabilityOutOfRange(t *testing.T) {
	cases := []struct {
		name  string
		value float64
	}{
		{"negative", -0.1},
		{"above one", 1.1},
		{"nan", math.NaN()},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			initial, transition, emission := validTables()
			transition[1][0] = tc.value

			_, err := markov.New(initial, transition, emission)
			var confErr *markov.ConfigurationError
			require.ErrorAs(t, err, &confErr)
			assert.Equal(t, "transition", confErr.Table)
			assert.Equal(t, 1, confErr.Row)
			assert.Equal(t, 0, confErr.Col)
		})
	}
}

func TestNew_RowSums(t *testing.T) {
	t.Run("initial sums to 0.6", func(t *testing.T) {
		_, transition, emission := validTables()
		_, err := markov.New([]float64{0.3, 0.3}, transition, emission)

		var confErr *markov.ConfigurationError
		require.ErrorAs(t, err, &confErr)
		assert.Equal(t, "initial", confErr.Table)
		assert.InDelta(t, 0.6, confErr.Value.(float64), 1e-12)
	})

	t.Run("transition row sums to 0.9", func(t *testing.T) {
		initial, _, emission := validTables()
		_, err := markov.New(initial, [][]float64{{0.65, 0.25}, {0.25, 0.75}}, emission)

		var confErr *markov.ConfigurationError
		require.ErrorAs(t, err, &confErr)
		assert.Equal(t, "transition", confErr.Table)
		assert.Equal(t, 0, confErr.Row)
		assert.InDelta(t, 0.9, confErr.Value.(float64), 1e-12)
	})

	t.Run("within epsilon passes", func(t *testing.T) {
		initial, transition, emission := validTables()
		initial[0] = 0.5 + 4e-7
		_, err := markov.New(initial, transition, emission)
		assert.NoError(t, err)
	})
}

func TestModel_Immutable(t *testing.T) {
	initial, transition, emission := validTables()
	m, err := markov.New(initial, transition, emission)
	require.NoError(t, err)

	// Mutating the caller's slices must not leak into the model.
	initial[0] = 0
	transition[0][0] = 0
	emission[1][1] = 0

	assert.Equal(t, 0.5, m.Initial(0))
	assert.Equal(t, 0.75, m.Transition(0, 0))
	assert.Equal(t, 0.75, m.Emission(1, 1))

	// Accessor copies must be detached as well.
	tm := m.TransitionMatrix()
	tm[0][0] = 0
	assert.Equal(t, 0.75, m.Transition(0, 0))

	iv := m.InitialVector()
	iv[0] = 0
	assert.Equal(t, 0.5, m.Initial(0))
}

func TestModel_ZeroProbabilityLogs(t *testing.T) {
	m, err := markov.New(
		[]float64{1, 0},
		[][]float64{{1, 0}, {0, 1}},
		[][]float64{{1, 0}, {0, 1}},
	)
	require.NoError(t, err)

	assert.True(t, math.IsInf(m.LogInitial(1), -1))
	assert.True(t, math.IsInf(m.LogTransition(0, 1), -1))
	assert.Equal(t, 0.0, m.LogEmission(0, 0))
}

func TestConfigurationError_Message(t *testing.T) {
	err := &markov.ConfigurationError{Table: "emission", Row: 1, Col: 3, Value: 1.7, Reason: "probability outside [0, 1]"}
	assert.Equal(t, "emission[1][3]: probability outside [0, 1] (got 1.7)", err.Error())

	err = &markov.ConfigurationError{Table: "initial", Row: -1, Col: 1, Value: -0.5, Reason: "probability outside [0, 1]"}
	assert.Equal(t, "initial[1]: probability outside [0, 1] (got -0.5)", err.Error())

	err = &markov.ConfigurationError{Table: "transition", Row: -1, Col: -1, Reason: "expected 2 rows"}
	assert.Equal(t, "transition: expected 2 rows", err.Error())
}

func TestDecodeError_Message(t *testing.T) {
	err := &markov.DecodeError{Position: 2, Symbol: 4, Symbols: 4}
	assert.Equal(t, "symbol 4 at position 2 is outside the alphabet [0, 4)", err.Error())
}
