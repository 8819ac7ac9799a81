// Package viterbi implements maximum a posteriori state-path decoding for
// hidden Markov models.
package viterbi

import (
	"gonum.org/v1/gonum/floats"

	"github.com/aretw0/lattice/pkg/markov"
)

// Decode returns the most probable hidden-state path for the observation
// sequence under the model, one state index per observation.
//
// Scoring runs in natural-log space so long sequences cannot underflow; a
// zero-probability step contributes -Inf and loses against every reachable
// path. Ties resolve toward the smallest state index, both in the per-step
// predecessor choice and in the final state, which makes the result
// deterministic. The empty sequence decodes to an empty path.
//
// Any symbol outside [0, NumSymbols) fails the whole call with a
// *markov.DecodeError before scoring starts. Worst-case cost is O(T*N^2)
// time and O(T*N) memory for T observations and N states.
func Decode(m *markov.Model, observations []int) ([]int, error) {
	for pos, symbol := range observations {
		if symbol < 0 || symbol >= m.NumSymbols() {
			return nil, &markov.DecodeError{Position: pos, Symbol: symbol, Symbols: m.NumSymbols()}
		}
	}
	steps := len(observations)
	if steps == 0 {
		return []int{}, nil
	}

	// score[t*n+s] is the log probability of the best path ending in state s
	// after emitting observation t; backptr[t*n+s] is its predecessor.
	n := m.NumStates()
	score := make([]float64, steps*n)
	backptr := make([]int, steps*n)
	for s := 0; s < n; s++ {
		score[s] = m.LogInitial(s) + m.LogEmission(s, observations[0])
	}

	work := make([]float64, n)
	for t := 1; t < steps; t++ {
		prev := score[(t-1)*n : t*n]
		for s := 0; s < n; s++ {
			for sp := 0; sp < n; sp++ {
				work[sp] = prev[sp] + m.LogTransition(sp, s)
			}
			// MaxIdx keeps the first maximum, so equal candidates resolve to
			// the smallest state index.
			best := floats.MaxIdx(work)
			score[t*n+s] = work[best] + m.LogEmission(s, observations[t])
			backptr[t*n+s] = best
		}
	}

	path := make([]int, steps)
	path[steps-1] = floats.MaxIdx(score[(steps-1)*n:])
	for t := steps - 1; t > 0; t-- {
		path[t-1] = backptr[t*n+path[t]]
	}
	return path, nil
}
