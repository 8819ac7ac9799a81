package observability

// PathStats accumulates summary statistics over decoded state paths: how
// much time the model spends in each state and how often it switches. Not
// safe for concurrent use; give each worker its own accumulator.
type PathStats struct {
	Sequences int   // paths observed
	Length    int   // total states across all paths
	Counts    []int // per-state occupancy
	Switches  int   // adjacent pairs with different states
}

// NewPathStats creates an accumulator for a model with the given number of
// hidden states.
func NewPathStats(states int) *PathStats {
	return &PathStats{Counts: make([]int, states)}
}

// Observe folds one decoded path into the accumulator. States outside the
// configured range count toward Length but not occupancy.
func (p *PathStats) Observe(path []int) {
	p.Sequences++
	for i, state := range path {
		p.Length++
		if state >= 0 && state < len(p.Counts) {
			p.Counts[state]++
		}
		if i > 0 && path[i-1] != state {
			p.Switches++
		}
	}
}

// Fraction returns the share of all observed steps spent in state.
func (p *PathStats) Fraction(state int) float64 {
	if p.Length == 0 || state < 0 || state >= len(p.Counts) {
		return 0
	}
	return float64(p.Counts[state]) / float64(p.Length)
}

// Dominant returns the most occupied state, preferring the lowest index on
// ties. With no observations it returns 0.
func (p *PathStats) Dominant() int {
	best := 0
	for state, count := range p.Counts {
		if count > p.Counts[best] {
			best = state
		}
	}
	return best
}
