package markov

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// Epsilon is the tolerance applied when checking that a probability row sums
// to 1. Rows whose sum deviates by more than this are rejected.
const Epsilon = 1e-6

// Model is an immutable first-order hidden Markov model over discrete
// observation symbols. It holds the initial-state distribution, the
// state-transition matrix and the emission matrix, all validated at
// construction time.
//
// A Model is safe for concurrent use: it is never mutated after New returns,
// so any number of decodes may share it without synchronization.
type Model struct {
	states  int
	symbols int

	// Linear tables, row-major: transition[i*states+j], emission[i*symbols+k].
	initial    []float64
	transition []float64
	emission   []float64

	// Natural-log views precomputed for the decoder. A zero probability maps
	// to -Inf, which orders below every finite score.
	logInitial    []float64
	logTransition []float64
	logEmission   []float64
}

// New builds a validated Model from the three probability tables.
//
// initial must have one entry per hidden state (N >= 1) and sum to 1 within
// Epsilon. transition must be N x N with each row summing to 1. emission must
// have N rows of a single consistent width M >= 1, each row summing to 1.
// Every value must lie in [0, 1]; NaN is rejected.
//
// Validation is all-or-nothing: on the first violated invariant New returns a
// *ConfigurationError describing it and no Model is produced. The inputs are
// copied, so the caller may reuse or mutate its slices afterwards.
func New(initial []float64, transition, emission [][]float64) (*Model, error) {
	n := len(initial)
	if n == 0 {
		return nil, &ConfigurationError{Table: "initial", Row: -1, Col: -1, Reason: "at least one state is required"}
	}
	if len(transition) != n {
		return nil, &ConfigurationError{
			Table: "transition", Row: -1, Col: -1,
			Reason: fmt.Sprintf("expected %d rows to match the %d states of initial, got %d", n, n, len(transition)),
		}
	}
	for i, row := range transition {
		if len(row) != n {
			return nil, &ConfigurationError{
				Table: "transition", Row: i, Col: -1,
				Reason: fmt.Sprintf("expected %d columns to match the %d states, got %d", n, n, len(row)),
			}
		}
	}
	if len(emission) != n {
		return nil, &ConfigurationError{
			Table: "emission", Row: -1, Col: -1,
			Reason: fmt.Sprintf("expected %d rows to match the %d states of initial, got %d", n, n, len(emission)),
		}
	}
	m := len(emission[0])
	if m == 0 {
		return nil, &ConfigurationError{Table: "emission", Row: 0, Col: -1, Reason: "at least one observation symbol is required"}
	}
	for i, row := range emission {
		if len(row) != m {
			return nil, &ConfigurationError{
				Table: "emission", Row: i, Col: -1,
				Reason: fmt.Sprintf("expected %d columns to match row 0, got %d", m, len(row)),
			}
		}
	}

	if err := checkRow("initial", -1, initial); err != nil {
		return nil, err
	}
	for i, row := range transition {
		if err := checkRow("transition", i, row); err != nil {
			return nil, err
		}
	}
	for i, row := range emission {
		if err := checkRow("emission", i, row); err != nil {
			return nil, err
		}
	}

	mod := &Model{
		states:     n,
		symbols:    m,
		initial:    append([]float64(nil), initial...),
		transition: flatten(transition, n),
		emission:   flatten(emission, m),
	}
	mod.logInitial = logTable(mod.initial)
	mod.logTransition = logTable(mod.transition)
	mod.logEmission = logTable(mod.emission)
	return mod, nil
}

// checkRow validates one probability row: every value in [0,1] and the row
// summing to 1 within Epsilon. row == -1 marks the initial vector, whose
// cells are reported by column only.
func checkRow(table string, row int, values []float64) error {
	for j, v := range values {
		if math.IsNaN(v) || v < 0 || v > 1 {
			return &ConfigurationError{Table: table, Row: row, Col: j, Value: v, Reason: "probability outside [0, 1]"}
		}
	}
	sum := floats.Sum(values)
	if math.Abs(sum-1) > Epsilon {
		return &ConfigurationError{
			Table: table, Row: row, Col: -1, Value: sum,
			Reason: fmt.Sprintf("row must sum to 1 within %g", Epsilon),
		}
	}
	return nil
}

func flatten(rows [][]float64, width int) []float64 {
	flat := make([]float64, len(rows)*width)
	for i, row := range rows {
		copy(flat[i*width:(i+1)*width], row)
	}
	return flat
}

func logTable(linear []float64) []float64 {
	logs := make([]float64, len(linear))
	for i, v := range linear {
		logs[i] = math.Log(v)
	}
	return logs
}

// NumStates returns N, the number of hidden states.
func (m *Model) NumStates() int { return m.states }

// NumSymbols returns M, the number of observation symbols.
func (m *Model) NumSymbols() int { return m.symbols }

// Initial returns P(state_0 = state).
func (m *Model) Initial(state int) float64 { return m.initial[state] }

// Transition returns P(state_{t+1} = to | state_t = from).
func (m *Model) Transition(from, to int) float64 { return m.transition[from*m.states+to] }

// Emission returns P(observation = symbol | state).
func (m *Model) Emission(state, symbol int) float64 { return m.emission[state*m.symbols+symbol] }

// LogInitial returns the natural log of Initial(state); -Inf for zero.
func (m *Model) LogInitial(state int) float64 { return m.logInitial[state] }

// LogTransition returns the natural log of Transition(from, to); -Inf for zero.
func (m *Model) LogTransition(from, to int) float64 { return m.logTransition[from*m.states+to] }

// LogEmission returns the natural log of Emission(state, symbol); -Inf for zero.
func (m *Model) LogEmission(state, symbol int) float64 { return m.logEmission[state*m.symbols+symbol] }

// InitialVector returns a copy of the initial-state distribution.
func (m *Model) InitialVector() []float64 {
	return append([]float64(nil), m.initial...)
}

// TransitionMatrix returns a copy of the transition matrix as N rows of N.
func (m *Model) TransitionMatrix() [][]float64 {
	return unflatten(m.transition, m.states, m.states)
}

// EmissionMatrix returns a copy of the emission matrix as N rows of M.
func (m *Model) EmissionMatrix() [][]float64 {
	return unflatten(m.emission, m.states, m.symbols)
}

func unflatten(flat []float64, rows, width int) [][]float64 {
	out := make([][]float64, rows)
	for i := range out {
		out[i] = append([]float64(nil), flat[i*width:(i+1)*width]...)
	}
	return out
}
